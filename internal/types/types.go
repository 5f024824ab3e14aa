// Package types defines all shared structs and typed constants used by the
// test generation pipeline. YAML and JSON struct tags match the on-disk
// schema of config.yaml and test_generation_report.json (snake_case names).
package types

// ---------------------------------------------------------------------------
// Typed constants
// ---------------------------------------------------------------------------

// WorkKind classifies the three units of work submitted to the retry
// orchestrator for each source file.
type WorkKind string

const (
	KindRefactor      WorkKind = "refactor"
	KindGenerateTests WorkKind = "generate_tests"
	KindRefineTests   WorkKind = "refine_tests"
)

// VerdictKind classifies the validation outcome of a single attempt.
type VerdictKind string

const (
	VerdictValid            VerdictKind = "valid"
	VerdictEmpty            VerdictKind = "empty"
	VerdictInvalidStructure VerdictKind = "invalid_structure"
	VerdictInvalidSyntax    VerdictKind = "invalid_syntax"
)

// ---------------------------------------------------------------------------
// Orchestration types
// ---------------------------------------------------------------------------

// WorkUnit is one logical task for the retry orchestrator. It is immutable
// across attempts: every retry of the same unit sees identical input.
type WorkUnit struct {
	// Kind selects the fallback policy applied when all attempts fail.
	Kind WorkKind

	// Input is the source code (refactor) or prior test code
	// (generate/refine) handed to the producer on every attempt.
	Input string

	// Rules is the YAML rule document included in the prompt for
	// generate_tests and refine_tests. Empty for refactor.
	Rules string

	// Target is the file name the unit concerns, used only for logging.
	Target string
}

// AttemptResult captures one producer invocation: the produced text, the
// validation verdict, and the issues found (empty when valid). A fresh
// result is created per attempt; prior results are never mutated.
type AttemptResult struct {
	Text    string
	Verdict VerdictKind
	Issues  []string
}

// Valid reports whether the attempt passed every enabled validator.
func (r AttemptResult) Valid() bool {
	return r.Verdict == VerdictValid
}

// Outcome is the final result of running a WorkUnit through the retry loop.
type Outcome struct {
	// Text is the accepted output, or the kind-specific fallback when
	// Success is false (original input for refactor, prior test code for
	// refine, empty for generate).
	Text string

	// Success reports whether any attempt passed all enabled validators.
	Success bool

	// Attempts is the number of producer invocations performed.
	Attempts int
}

// ---------------------------------------------------------------------------
// Analysis types
// ---------------------------------------------------------------------------

// FunctionSignature is a best-effort description of one function-like
// definition found in C++ source. Regex-derived: advisory only, never used
// for correctness-critical decisions.
type FunctionSignature struct {
	Name       string
	ReturnType string
	Signature  string
}

// ---------------------------------------------------------------------------
// Coverage types
// ---------------------------------------------------------------------------

// CoverageSummary holds overall line and function coverage parsed from the
// coverage tool's summary output. Built once after test execution.
type CoverageSummary struct {
	LineCoverage     float64 `json:"line_coverage"`
	LinesCovered     int     `json:"lines_covered"`
	LinesTotal       int     `json:"lines_total"`
	FunctionCoverage float64 `json:"function_coverage"`
	FunctionsCovered int     `json:"functions_covered"`
	FunctionsTotal   int     `json:"functions_total"`
}

// FileCoverage is per-file line coverage detail parsed from a .gcov file.
type FileCoverage struct {
	FilePath        string  `json:"file_path"`
	LinesTotal      int     `json:"lines_total"`
	LinesCovered    int     `json:"lines_covered"`
	CoveragePercent float64 `json:"coverage_percent"`
	UncoveredLines  []int   `json:"uncovered_lines"`
}

// ---------------------------------------------------------------------------
// Run report types
// ---------------------------------------------------------------------------

// RunStats holds the cumulative counters for one pipeline invocation.
// Counters are mutated only through the Logger's increment operations and
// read once at end of run to produce the report.
type RunStats struct {
	FilesProcessed  int `json:"files_processed"`
	TestsGenerated  int `json:"tests_generated"`
	RefactoredFiles int `json:"refactored_files"`
	Warnings        int `json:"warnings"`
	Errors          int `json:"errors"`
}

// RunReport is the structure persisted to test_generation_report.json.
type RunReport struct {
	Timestamp       string   `json:"timestamp"`
	DurationSeconds float64  `json:"duration_seconds"`
	Statistics      RunStats `json:"statistics"`
	StartTime       string   `json:"start_time"`
	EndTime         string   `json:"end_time"`
}
