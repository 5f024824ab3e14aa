// Package pipeline drives the end-to-end test generation run: it discovers
// eligible C++ files, runs the three retry-orchestrated work units for each
// (refactor, generate tests, refine tests), persists artifacts, aggregates
// run statistics, and finally hands off to the coverage phase.
//
// Execution is single-threaded and sequential: one file is processed fully
// before the next, and every external call blocks until it completes.
package pipeline

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/itsviv0/Ai-gnu-unit-test-gen/internal/config"
	"github.com/itsviv0/Ai-gnu-unit-test-gen/internal/extract"
	"github.com/itsviv0/Ai-gnu-unit-test-gen/internal/log"
	"github.com/itsviv0/Ai-gnu-unit-test-gen/internal/orchestrator"
	"github.com/itsviv0/Ai-gnu-unit-test-gen/internal/templates"
	"github.com/itsviv0/Ai-gnu-unit-test-gen/internal/types"
	"github.com/itsviv0/Ai-gnu-unit-test-gen/internal/validate"
)

// RulesFileName is the per-project rule document looked up in the project
// root. When absent, the embedded default rules are used.
const RulesFileName = "strict_test_rules.yaml"

// ErrNoSourceFiles is returned by Run when discovery finds nothing eligible.
// It is one of the two fatal, run-aborting conditions.
var ErrNoSourceFiles = errors.New("no C++ source files found in the project")

// Producers bundles the three external producer collaborators, one per work
// kind. Tests substitute deterministic stubs here.
type Producers struct {
	Refactor orchestrator.Producer
	Generate orchestrator.Producer
	Refine   orchestrator.Producer
}

// Driver owns one pipeline invocation over a project root.
type Driver struct {
	root      string
	cfg       *config.GeneratorConfig
	logger    *log.Logger
	orch      *orchestrator.Orchestrator
	producers Producers
	rules     string
}

// NewDriver constructs a Driver. The rule document is read from
// <root>/strict_test_rules.yaml when present, otherwise the embedded
// default rules are used.
func NewDriver(root string, cfg *config.GeneratorConfig, logger *log.Logger, orch *orchestrator.Orchestrator, producers Producers) *Driver {
	rules := templates.DefaultTestRules
	if data, err := os.ReadFile(filepath.Join(root, RulesFileName)); err == nil {
		rules = string(data)
	}

	return &Driver{
		root:      root,
		cfg:       cfg,
		logger:    logger,
		orch:      orch,
		producers: producers,
		rules:     rules,
	}
}

// Run executes the whole pipeline. It returns the number of successfully
// processed files; an error is returned only for the fatal conditions
// (discovery failure, zero eligible files). Per-file failures are logged
// and skipped.
func (d *Driver) Run() (int, error) {
	files, err := FindSourceFiles(d.root, d.cfg.SupportedExtensions, d.cfg.ExcludedDirs)
	if err != nil {
		return 0, fmt.Errorf("discover source files: %w", err)
	}
	if len(files) == 0 {
		return 0, ErrNoSourceFiles
	}

	d.logger.Info(fmt.Sprintf("found %d C++ files to process", len(files)))

	success := 0
	for i, file := range files {
		d.logger.Section(fmt.Sprintf("FILE %d/%d — %s", i+1, len(files), filepath.Base(file)))
		if d.ProcessFile(file) {
			success++
		} else {
			d.logger.Warning(fmt.Sprintf("skipped %s", filepath.Base(file)))
		}
	}

	d.logger.Info(fmt.Sprintf("successfully processed %d/%d files", success, len(files)))

	d.runCoverage()

	d.logger.PrintSummary()
	if err := d.logger.SaveReport(filepath.Join(d.root, "test_generation_report.json")); err != nil {
		d.logger.Warning(err.Error())
	}

	return success, nil
}

// ProcessFile runs the three work units for one source file and persists the
// artifacts. It reports whether the file produced a usable test file.
// Failures here are per-file: they are logged and the run continues.
func (d *Driver) ProcessFile(path string) bool {
	d.logger.FileProcessed()

	data, err := os.ReadFile(path)
	if err != nil {
		d.logger.Error(fmt.Sprintf("failed to read %s: %v", path, err))
		return false
	}
	original := string(data)
	if strings.TrimSpace(original) == "" {
		d.logger.Error(fmt.Sprintf("empty file: %s", path))
		return false
	}

	name := filepath.Base(path)
	if funcs := extract.Signatures(original); len(funcs) > 0 {
		d.logger.Debug(fmt.Sprintf("found %d functions in %s", len(funcs), name))
	}

	// Refactor. The fallback on failure is the original text, so the
	// pipeline always has code to generate tests against.
	code := original
	if d.cfg.TestFramework == "gtest" {
		outcome := d.orch.Run(types.WorkUnit{
			Kind:   types.KindRefactor,
			Input:  original,
			Target: name,
		}, d.producers.Refactor, nil)
		code = outcome.Text

		if outcome.Success && strings.TrimSpace(code) != strings.TrimSpace(original) {
			rel, relErr := filepath.Rel(d.root, path)
			if relErr != nil {
				rel = name
			}
			dst := filepath.Join(d.root, d.cfg.OutputRefactoredDir, rel)
			if err := writeFileAtomic(dst, code); err != nil {
				d.logger.Error(fmt.Sprintf("failed to write refactored file %s: %v", dst, err))
			} else {
				d.logger.Success(fmt.Sprintf("refactored %s", name))
				d.logger.FileRefactored()
			}
		}
	}

	// Generate tests. No fallback: an unusable outcome skips the file.
	genOutcome := d.orch.Run(types.WorkUnit{
		Kind:   types.KindGenerateTests,
		Input:  code,
		Rules:  d.rules,
		Target: name,
	}, d.producers.Generate, []orchestrator.StructuralCheck{validate.Structure})
	if !genOutcome.Success {
		return false
	}

	stem := strings.TrimSuffix(name, filepath.Ext(name))
	testPath := filepath.Join(d.root, d.cfg.OutputTestDir, "test_"+stem+".cpp")
	if err := writeFileAtomic(testPath, genOutcome.Text); err != nil {
		d.logger.Error(fmt.Sprintf("failed to write %s: %v", testPath, err))
		return false
	}

	// Refine tests. The fallback is the just-generated text, so a refine
	// failure is soft: the file still counts as processed.
	refOutcome := d.orch.Run(types.WorkUnit{
		Kind:   types.KindRefineTests,
		Input:  genOutcome.Text,
		Rules:  d.rules,
		Target: name,
	}, d.producers.Refine, []orchestrator.StructuralCheck{validate.Structure})

	if err := writeFileAtomic(testPath, refOutcome.Text); err != nil {
		d.logger.Error(fmt.Sprintf("failed to write %s: %v", testPath, err))
		return false
	}

	d.logger.Success(fmt.Sprintf("generated tests for %s", name))
	d.logger.TestGenerated()
	return true
}

// writeFileAtomic writes content to path through a .tmp sibling and a
// rename, creating parent directories as needed. The rename replaces the
// target in a single kernel call so readers never see a partial file.
func writeFileAtomic(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create directory for %s: %w", path, err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write temp file %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp) // best-effort cleanup on rename failure
		return fmt.Errorf("rename %s -> %s: %w", tmp, path, err)
	}
	return nil
}
