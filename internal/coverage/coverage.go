// Package coverage wraps the gcov/lcov toolchain: compiling instrumented
// test binaries, executing them, and turning tool summary text into a
// structured result. All commands use exec.Command with an explicit args
// slice — no shell eval. Each step reports (success, message); the driver
// stops the sequence at the first failure.
package coverage

import (
	"encoding/json"
	"encoding/xml"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/itsviv0/Ai-gnu-unit-test-gen/internal/types"
)

// TestRunnerBinary is the name of the instrumented test binary built inside
// the coverage directory.
const TestRunnerBinary = "test_runner"

// Runner drives coverage compilation, test execution, and report generation
// for one project. The coverage directory is <projectRoot>/coverage.
type Runner struct {
	projectRoot string
	coverageDir string
}

// NewRunner creates a Runner rooted at projectRoot and ensures the coverage
// directory exists.
func NewRunner(projectRoot string) (*Runner, error) {
	dir := filepath.Join(projectRoot, "coverage")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create coverage directory: %w", err)
	}
	return &Runner{projectRoot: projectRoot, coverageDir: dir}, nil
}

// Dir returns the coverage artifact directory.
func (r *Runner) Dir() string {
	return r.coverageDir
}

// Compile builds source and test files into an instrumented test binary.
// Returns (false, diagnostics) on a nonzero compiler exit or invocation
// failure; the message is trimmed to the last 50 lines of output.
func (r *Runner) Compile(sourceFiles, testFiles []string) (bool, string) {
	args := []string{
		"-fprofile-arcs", "-ftest-coverage", "-O0", "-std=c++17",
	}
	args = append(args, sourceFiles...)
	args = append(args, testFiles...)
	args = append(args,
		"-lgtest", "-lgtest_main", "-pthread",
		"-o", filepath.Join(r.coverageDir, TestRunnerBinary),
		"--coverage",
	)

	cmd := exec.Command("g++", args...)
	cmd.Dir = r.projectRoot
	out, err := cmd.CombinedOutput()
	if err != nil {
		return false, "compilation failed: " + tailLines(out, 50)
	}
	return true, "compilation successful"
}

// RunTests executes the instrumented test binary from the coverage
// directory so the .gcda counters land next to the .gcno files.
func (r *Runner) RunTests() (bool, string) {
	binary := filepath.Join(r.coverageDir, TestRunnerBinary)
	if _, err := os.Stat(binary); err != nil {
		return false, fmt.Sprintf("test binary %s not found", binary)
	}

	cmd := exec.Command(binary)
	cmd.Dir = r.coverageDir
	out, err := cmd.CombinedOutput()
	if err != nil {
		return false, tailLines(out, 50)
	}
	return true, string(out)
}

// Report captures coverage data with lcov and produces a report in the
// requested format: "html" (a genhtml directory), "json", or "xml" (a
// structured summary file parsed from lcov --summary output). The returned
// message names the generated artifact.
func (r *Runner) Report(format string) (bool, string) {
	capture := exec.Command("lcov", "--directory", ".", "--capture", "--output-file", "coverage.info")
	capture.Dir = r.coverageDir
	if out, err := capture.CombinedOutput(); err != nil {
		return false, "lcov capture failed: " + tailLines(out, 50)
	}

	switch format {
	case "html":
		genhtml := exec.Command("genhtml", "coverage.info", "--output-directory", "html_report")
		genhtml.Dir = r.coverageDir
		if out, err := genhtml.CombinedOutput(); err != nil {
			return false, "genhtml failed: " + tailLines(out, 50)
		}
		return true, filepath.Join(r.coverageDir, "html_report", "index.html")

	case "json":
		summary, ok, msg := r.Summarize()
		if !ok {
			return false, msg
		}
		path := filepath.Join(r.coverageDir, "coverage_report.json")
		data, err := json.MarshalIndent(summary, "", "  ")
		if err != nil {
			return false, fmt.Sprintf("marshal coverage summary: %v", err)
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return false, fmt.Sprintf("write coverage report: %v", err)
		}
		return true, path

	case "xml":
		summary, ok, msg := r.Summarize()
		if !ok {
			return false, msg
		}
		path := filepath.Join(r.coverageDir, "coverage_report.xml")
		data, err := xml.MarshalIndent(xmlSummary{Summary: summary}, "", "  ")
		if err != nil {
			return false, fmt.Sprintf("marshal coverage summary: %v", err)
		}
		if err := os.WriteFile(path, append([]byte(xml.Header), data...), 0o644); err != nil {
			return false, fmt.Sprintf("write coverage report: %v", err)
		}
		return true, path

	default:
		return false, fmt.Sprintf("unsupported coverage format %q", format)
	}
}

// xmlSummary wraps CoverageSummary for XML output with a stable root element.
type xmlSummary struct {
	XMLName xml.Name              `xml:"coverage"`
	Summary types.CoverageSummary `xml:"summary"`
}

// Summarize runs lcov --summary on the captured data and parses it. It is
// valid only after Report (or a manual lcov capture) has produced
// coverage.info in the coverage directory.
func (r *Runner) Summarize() (types.CoverageSummary, bool, string) {
	cmd := exec.Command("lcov", "--summary", "coverage.info")
	cmd.Dir = r.coverageDir
	out, err := cmd.CombinedOutput()
	if err != nil {
		return types.CoverageSummary{}, false, "lcov summary failed: " + tailLines(out, 50)
	}
	return ParseSummary(string(out)), true, ""
}

// summaryValuePattern extracts "<percent>% ... (<covered> of <total>" from an
// lcov summary line.
var summaryValuePattern = regexp.MustCompile(`(\d+\.\d+)%.*\((\d+) of (\d+)`)

// ParseSummary extracts overall line and function coverage from lcov
// --summary output via fixed-shape pattern matching. Lines that do not match
// the expected shape are silently skipped; a fully unparseable input yields
// a zero summary rather than an error.
func ParseSummary(summaryOutput string) types.CoverageSummary {
	var summary types.CoverageSummary

	for _, line := range strings.Split(summaryOutput, "\n") {
		m := summaryValuePattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		percent, _ := strconv.ParseFloat(m[1], 64)
		covered, _ := strconv.Atoi(m[2])
		total, _ := strconv.Atoi(m[3])

		switch {
		case strings.Contains(line, "lines......:"):
			summary.LineCoverage = percent
			summary.LinesCovered = covered
			summary.LinesTotal = total
		case strings.Contains(line, "functions..:"):
			summary.FunctionCoverage = percent
			summary.FunctionsCovered = covered
			summary.FunctionsTotal = total
		}
	}

	return summary
}

// Cleanup removes instrumentation artifacts (.gcda, .gcno, .gcov) left under
// the project root. Errors are returned for the caller to log as warnings;
// cleanup failure never fails a run.
func (r *Runner) Cleanup() error {
	return filepath.WalkDir(r.projectRoot, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		switch filepath.Ext(path) {
		case ".gcda", ".gcno", ".gcov":
			return os.Remove(path)
		}
		return nil
	})
}

// tailLines returns the last n lines of command output as a string.
func tailLines(output []byte, n int) string {
	lines := strings.Split(string(output), "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, "\n")
}
