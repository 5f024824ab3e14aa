// Package orchestrator implements the retry/validation loop at the heart of
// the pipeline: it repeatedly invokes an external producer for a unit of
// work, validates each attempt's output, and decides accept, retry, or
// fallback according to a fixed per-kind policy.
package orchestrator

import (
	"fmt"
	"strings"

	"github.com/itsviv0/Ai-gnu-unit-test-gen/internal/extract"
	"github.com/itsviv0/Ai-gnu-unit-test-gen/internal/log"
	"github.com/itsviv0/Ai-gnu-unit-test-gen/internal/types"
)

// Producer is the external text-generation collaborator invoked once per
// attempt. It may be slow, nondeterministic, or fail; failure is reported as
// an empty string, never as an error.
type Producer func(input, rules string) string

// StructuralCheck is one rule-based validator over produced code. It returns
// whether the code passed and the issues found when it did not.
type StructuralCheck func(code string) (bool, []string)

// SyntaxValidator is the compiler-backed syntax check. Satisfied by
// validate.SyntaxChecker; stubs satisfy it in tests.
type SyntaxValidator interface {
	Check(code, fileKind string) (bool, string)
}

// Orchestrator runs work units through the retry loop. MaxAttempts bounds
// every unit kind identically. Syntax validation runs only when Syntax is
// non-nil, after all structural checks pass in the same attempt.
type Orchestrator struct {
	MaxAttempts int
	Syntax      SyntaxValidator
	Logger      *log.Logger
}

// New returns an Orchestrator with the given attempt bound. Pass a nil
// syntax validator to disable compiler-backed checking.
func New(maxAttempts int, syntax SyntaxValidator, logger *log.Logger) *Orchestrator {
	return &Orchestrator{MaxAttempts: maxAttempts, Syntax: syntax, Logger: logger}
}

// Run executes up to MaxAttempts producer invocations for unit, validating
// each attempt independently. Validation is evaluated per attempt, never
// cumulatively: structural validity and syntax validity must hold in the
// same attempt for acceptance.
//
// Each attempt:
//  1. invoke the producer with the unit's (identical) input;
//  2. empty or whitespace output records an "empty output" issue and moves
//     to the next attempt;
//  3. extract the code artifact from the raw response (fence stripping);
//  4. run ALL structural checks, collecting every issue (no short-circuit)
//     so the log shows each problem at once;
//  5. if structural checks pass and syntax validation is enabled, run the
//     compiler check.
//
// Attempts are identical-input retries of a nondeterministic producer:
// validator issues are logged but never fed back into the next prompt.
//
// On exhaustion the fallback depends on the unit kind:
//   - refactor:       the original unmodified input (soft failure);
//   - generate_tests: no usable artifact — the caller must skip the file;
//   - refine_tests:   the pre-refine input text (soft failure).
func (o *Orchestrator) Run(unit types.WorkUnit, producer Producer, checks []StructuralCheck) types.Outcome {
	for attempt := 1; attempt <= o.MaxAttempts; attempt++ {
		o.Logger.Debug(fmt.Sprintf("%s attempt %d/%d for %s", unit.Kind, attempt, o.MaxAttempts, unit.Target))

		result := o.runAttempt(unit, producer, checks)
		if result.Valid() {
			return types.Outcome{Text: result.Text, Success: true, Attempts: attempt}
		}

		o.Logger.Warning(fmt.Sprintf("%s attempt %d/%d for %s failed (%s): %s",
			unit.Kind, attempt, o.MaxAttempts, unit.Target, result.Verdict,
			strings.Join(result.Issues, "; ")))
	}

	return o.fallback(unit)
}

// runAttempt performs one producer invocation and validates its output.
// Every attempt produces a fresh AttemptResult; nothing is carried between
// attempts beyond the counter in Run.
func (o *Orchestrator) runAttempt(unit types.WorkUnit, producer Producer, checks []StructuralCheck) types.AttemptResult {
	raw := producer(unit.Input, unit.Rules)
	if strings.TrimSpace(raw) == "" {
		return types.AttemptResult{
			Verdict: types.VerdictEmpty,
			Issues:  []string{"empty output"},
		}
	}

	code, reliable := extract.CodeBlock(raw)
	if !reliable {
		o.Logger.Warning(fmt.Sprintf("no recognizable code block in response for %s — using raw text", unit.Target))
	}

	var issues []string
	for _, check := range checks {
		if ok, found := check(code); !ok {
			issues = append(issues, found...)
		}
	}
	if len(issues) > 0 {
		return types.AttemptResult{
			Text:    code,
			Verdict: types.VerdictInvalidStructure,
			Issues:  issues,
		}
	}

	if o.Syntax != nil {
		if ok, msg := o.Syntax.Check(code, "cpp"); !ok {
			return types.AttemptResult{
				Text:    code,
				Verdict: types.VerdictInvalidSyntax,
				Issues:  []string{msg},
			}
		}
	}

	return types.AttemptResult{Text: code, Verdict: types.VerdictValid}
}

// fallback builds the deterministic outcome substituted when all attempts
// fail validation.
func (o *Orchestrator) fallback(unit types.WorkUnit) types.Outcome {
	switch unit.Kind {
	case types.KindRefactor:
		o.Logger.Warning(fmt.Sprintf("refactoring failed after %d attempts for %s — using original code",
			o.MaxAttempts, unit.Target))
		return types.Outcome{Text: unit.Input, Success: false, Attempts: o.MaxAttempts}

	case types.KindRefineTests:
		o.Logger.Warning(fmt.Sprintf("test refinement failed after %d attempts for %s — keeping generated tests",
			o.MaxAttempts, unit.Target))
		return types.Outcome{Text: unit.Input, Success: false, Attempts: o.MaxAttempts}

	default: // generate_tests: no usable artifact
		o.Logger.Error(fmt.Sprintf("failed to generate valid tests for %s after %d attempts",
			unit.Target, o.MaxAttempts))
		return types.Outcome{Success: false, Attempts: o.MaxAttempts}
	}
}
