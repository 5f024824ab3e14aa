package coverage_test

import (
	"testing"

	"github.com/itsviv0/Ai-gnu-unit-test-gen/internal/coverage"
)

const lcovSummary = `Reading tracefile coverage.info
Summary coverage rate:
  lines......: 81.3% (157 of 193 lines)
  functions..: 90.0% (18 of 20 functions)
  branches...: no data found
`

func TestParseSummary(t *testing.T) {
	summary := coverage.ParseSummary(lcovSummary)

	if summary.LineCoverage != 81.3 {
		t.Errorf("LineCoverage: got %v, want 81.3", summary.LineCoverage)
	}
	if summary.LinesCovered != 157 || summary.LinesTotal != 193 {
		t.Errorf("lines: got %d of %d, want 157 of 193", summary.LinesCovered, summary.LinesTotal)
	}
	if summary.FunctionCoverage != 90.0 {
		t.Errorf("FunctionCoverage: got %v, want 90.0", summary.FunctionCoverage)
	}
	if summary.FunctionsCovered != 18 || summary.FunctionsTotal != 20 {
		t.Errorf("functions: got %d of %d, want 18 of 20", summary.FunctionsCovered, summary.FunctionsTotal)
	}
}

func TestParseSummary_UnparseableLinesSkipped(t *testing.T) {
	// Lines that do not match the fixed shape are silently skipped; a fully
	// unparseable input yields a zero summary, not an error.
	summary := coverage.ParseSummary("random text\nno coverage here\n")

	if summary.LineCoverage != 0 || summary.LinesTotal != 0 {
		t.Errorf("ParseSummary: expected zero summary, got %+v", summary)
	}
}

func TestParseSummary_PartialData(t *testing.T) {
	summary := coverage.ParseSummary("  lines......: 50.0% (1 of 2 lines)\n")

	if summary.LineCoverage != 50.0 {
		t.Errorf("LineCoverage: got %v, want 50.0", summary.LineCoverage)
	}
	if summary.FunctionsTotal != 0 {
		t.Errorf("FunctionsTotal: got %d, want 0 when absent", summary.FunctionsTotal)
	}
}
