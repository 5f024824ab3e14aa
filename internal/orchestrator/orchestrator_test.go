package orchestrator_test

import (
	"testing"

	"github.com/itsviv0/Ai-gnu-unit-test-gen/internal/log"
	"github.com/itsviv0/Ai-gnu-unit-test-gen/internal/orchestrator"
	"github.com/itsviv0/Ai-gnu-unit-test-gen/internal/types"
	"github.com/itsviv0/Ai-gnu-unit-test-gen/internal/validate"
)

// quietLogger returns a Logger that suppresses everything below ERROR so
// test output stays readable.
func quietLogger() *log.Logger {
	return log.New(log.LevelError, "")
}

// countingProducer wraps a producer and counts invocations.
type countingProducer struct {
	calls   int
	produce func(attempt int) string
}

func (c *countingProducer) fn(input, rules string) string {
	c.calls++
	return c.produce(c.calls)
}

// validTest is a test file passing every structural rule.
const validTest = "#include <gtest/gtest.h>\nTEST(A, B) {}\n// gtest_main\n"

// stubSyntax is a scripted syntax validator: verdicts[i] is the result of
// the i-th call.
type stubSyntax struct {
	calls    int
	verdicts []bool
}

func (s *stubSyntax) Check(code, fileKind string) (bool, string) {
	s.calls++
	if s.verdicts[s.calls-1] {
		return true, ""
	}
	return false, "error: expected ';'"
}

func TestRun_ExhaustsMaxAttemptsOnInvalidOutput(t *testing.T) {
	producer := &countingProducer{produce: func(int) string { return "not a test file" }}
	orch := orchestrator.New(4, nil, quietLogger())

	outcome := orch.Run(types.WorkUnit{
		Kind:   types.KindGenerateTests,
		Input:  "int add(int a, int b) { return a + b; }",
		Target: "math.cpp",
	}, producer.fn, []orchestrator.StructuralCheck{validate.Structure})

	if producer.calls != 4 {
		t.Errorf("Run: expected exactly 4 producer invocations, got %d", producer.calls)
	}
	if outcome.Success {
		t.Error("Run: expected failure after exhausting attempts")
	}
	if outcome.Attempts != 4 {
		t.Errorf("Run: expected attempt count 4, got %d", outcome.Attempts)
	}
	if outcome.Text != "" {
		t.Errorf("Run: generate fallback should yield no artifact, got %q", outcome.Text)
	}
}

func TestRun_RefactorFallsBackToOriginalInput(t *testing.T) {
	const original = "int main() { return 0; }"
	producer := &countingProducer{produce: func(int) string { return "" }}
	orch := orchestrator.New(3, nil, quietLogger())

	outcome := orch.Run(types.WorkUnit{
		Kind:   types.KindRefactor,
		Input:  original,
		Target: "main.cpp",
	}, producer.fn, nil)

	if outcome.Success {
		t.Error("Run: expected success=false for a producer that always fails")
	}
	if outcome.Text != original {
		t.Errorf("Run: refactor fallback should return the original input unchanged, got %q", outcome.Text)
	}
	if producer.calls != 3 {
		t.Errorf("Run: expected 3 producer invocations, got %d", producer.calls)
	}
}

func TestRun_RefineFallsBackToPriorTests(t *testing.T) {
	producer := &countingProducer{produce: func(int) string { return "garbage" }}
	orch := orchestrator.New(2, nil, quietLogger())

	outcome := orch.Run(types.WorkUnit{
		Kind:   types.KindRefineTests,
		Input:  validTest,
		Target: "math.cpp",
	}, producer.fn, []orchestrator.StructuralCheck{validate.Structure})

	if outcome.Success {
		t.Error("Run: expected soft failure for refine")
	}
	if outcome.Text != validTest {
		t.Errorf("Run: refine fallback should return the pre-refine text, got %q", outcome.Text)
	}
}

func TestRun_AcceptsFirstValidAttempt(t *testing.T) {
	// Invalid on attempt 1, valid on attempt 2: the orchestrator must stop
	// at attempt 2 and never invoke the producer again.
	producer := &countingProducer{produce: func(attempt int) string {
		if attempt == 1 {
			return "nope"
		}
		return validTest
	}}
	orch := orchestrator.New(5, nil, quietLogger())

	outcome := orch.Run(types.WorkUnit{
		Kind:   types.KindGenerateTests,
		Input:  "int f() { return 1; }",
		Target: "f.cpp",
	}, producer.fn, []orchestrator.StructuralCheck{validate.Structure})

	if !outcome.Success {
		t.Fatal("Run: expected success")
	}
	if outcome.Attempts != 2 {
		t.Errorf("Run: expected attempt count 2, got %d", outcome.Attempts)
	}
	if producer.calls != 2 {
		t.Errorf("Run: expected 2 producer invocations, got %d", producer.calls)
	}
}

func TestRun_EmptyOutputRetries(t *testing.T) {
	producer := &countingProducer{produce: func(attempt int) string {
		if attempt < 3 {
			return "   \n\t"
		}
		return validTest
	}}
	orch := orchestrator.New(5, nil, quietLogger())

	outcome := orch.Run(types.WorkUnit{
		Kind:   types.KindGenerateTests,
		Input:  "int f() { return 1; }",
		Target: "f.cpp",
	}, producer.fn, []orchestrator.StructuralCheck{validate.Structure})

	if !outcome.Success {
		t.Fatal("Run: expected success on attempt 3")
	}
	if outcome.Attempts != 3 {
		t.Errorf("Run: expected attempt count 3, got %d", outcome.Attempts)
	}
}

func TestRun_SyntaxMustPassInSameAttempt(t *testing.T) {
	// Structurally valid output every time; syntax fails on attempt 1 and
	// passes on attempt 2. Validation is per-attempt, so success lands on
	// attempt 2 — the structural pass from attempt 1 does not carry over.
	producer := &countingProducer{produce: func(int) string { return validTest }}
	syntax := &stubSyntax{verdicts: []bool{false, true}}
	orch := orchestrator.New(5, syntax, quietLogger())

	outcome := orch.Run(types.WorkUnit{
		Kind:   types.KindGenerateTests,
		Input:  "int f() { return 1; }",
		Target: "f.cpp",
	}, producer.fn, []orchestrator.StructuralCheck{validate.Structure})

	if !outcome.Success {
		t.Fatal("Run: expected success once syntax passes")
	}
	if outcome.Attempts != 2 {
		t.Errorf("Run: expected attempt count 2, got %d", outcome.Attempts)
	}
	if syntax.calls != 2 {
		t.Errorf("Run: expected 2 syntax checks, got %d", syntax.calls)
	}
}

func TestRun_SyntaxSkippedWhenStructureFails(t *testing.T) {
	producer := &countingProducer{produce: func(int) string { return "not a test" }}
	syntax := &stubSyntax{verdicts: []bool{true, true, true}}
	orch := orchestrator.New(3, syntax, quietLogger())

	orch.Run(types.WorkUnit{
		Kind:   types.KindGenerateTests,
		Input:  "int f() { return 1; }",
		Target: "f.cpp",
	}, producer.fn, []orchestrator.StructuralCheck{validate.Structure})

	if syntax.calls != 0 {
		t.Errorf("Run: syntax validation should not run when structural checks fail, got %d calls", syntax.calls)
	}
}

func TestRun_AllStructuralIssuesCollected(t *testing.T) {
	// Two failing checks: both issue lists must be gathered in one attempt,
	// not short-circuited after the first.
	var seen []string
	checkA := func(code string) (bool, []string) { return false, []string{"issue A"} }
	checkB := func(code string) (bool, []string) {
		seen = append(seen, "B ran")
		return false, []string{"issue B"}
	}

	producer := &countingProducer{produce: func(int) string { return "text with int marker" }}
	orch := orchestrator.New(1, nil, quietLogger())

	orch.Run(types.WorkUnit{
		Kind:   types.KindGenerateTests,
		Input:  "int f() { return 1; }",
		Target: "f.cpp",
	}, producer.fn, []orchestrator.StructuralCheck{checkA, checkB})

	if len(seen) != 1 {
		t.Error("Run: second structural check must run even when the first fails")
	}
}

func TestRun_ExtractsFencedCode(t *testing.T) {
	producer := &countingProducer{produce: func(int) string {
		return "Here you go:\n```cpp\n" + validTest + "```\nHope that helps!"
	}}
	orch := orchestrator.New(1, nil, quietLogger())

	outcome := orch.Run(types.WorkUnit{
		Kind:   types.KindGenerateTests,
		Input:  "int f() { return 1; }",
		Target: "f.cpp",
	}, producer.fn, []orchestrator.StructuralCheck{validate.Structure})

	if !outcome.Success {
		t.Fatal("Run: expected success")
	}
	if outcome.Text != "#include <gtest/gtest.h>\nTEST(A, B) {}\n// gtest_main" {
		t.Errorf("Run: expected fences stripped, got %q", outcome.Text)
	}
}
