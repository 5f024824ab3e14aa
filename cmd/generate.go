package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/itsviv0/Ai-gnu-unit-test-gen/internal/config"
	"github.com/itsviv0/Ai-gnu-unit-test-gen/internal/llm"
	"github.com/itsviv0/Ai-gnu-unit-test-gen/internal/log"
	"github.com/itsviv0/Ai-gnu-unit-test-gen/internal/orchestrator"
	"github.com/itsviv0/Ai-gnu-unit-test-gen/internal/pipeline"
	"github.com/itsviv0/Ai-gnu-unit-test-gen/internal/templates"
	"github.com/itsviv0/Ai-gnu-unit-test-gen/internal/validate"
)

// generateFlags holds CLI flag values for the generate subcommand.
var generateFlags struct {
	logLevel     string
	createConfig bool
	dryRun       bool
}

var generateCmd = &cobra.Command{
	Use:   "generate <project_root> <config_path>",
	Short: "Generate unit tests for a C++ project",
	Long: "Refactor C++ source files with an LLM, generate and refine Google Test " +
		"unit tests for them, and optionally report coverage.",
	Args: cobra.MaximumNArgs(2),
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVar(&generateFlags.logLevel, "log-level", "INFO", "logging level (DEBUG|INFO|WARNING|ERROR)")
	generateCmd.Flags().BoolVar(&generateFlags.createConfig, "create-config", false, "create a default configuration file and exit")
	generateCmd.Flags().BoolVar(&generateFlags.dryRun, "dry-run", false, "analyze the project without generating tests")
}

// runGenerate wires the pipeline together and runs it.
//
// Sequence:
//  1. --create-config writes the embedded default config.yaml and exits 0.
//  2. Validate positional arguments (project root directory, config file).
//  3. Load config; parse the log level; open the run logger.
//  4. --dry-run lists discovered files and exits 0.
//  5. Construct the LLM client (missing GITHUB_TOKEN is fatal here, before
//     any work starts), the syntax checker when enabled, the orchestrator,
//     and the driver; then run.
//  6. Exit 0 when at least one file succeeded, 1 otherwise.
func runGenerate(cmd *cobra.Command, args []string) error {
	if generateFlags.createConfig {
		if err := os.WriteFile("config.yaml", []byte(templates.DefaultConfig), 0o644); err != nil {
			return fmt.Errorf("write config.yaml: %w", err)
		}
		fmt.Println("created default config.yaml — edit it to customize test generation settings")
		return nil
	}

	if len(args) != 2 {
		return errors.New("expected arguments: <project_root> <config_path>")
	}
	projectRoot, configPath := args[0], args[1]

	info, err := os.Stat(projectRoot)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("%s is not a directory", projectRoot)
	}
	if _, err := os.Stat(configPath); err != nil {
		return fmt.Errorf("%s does not exist (use --create-config to generate a default)", configPath)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	level, err := log.ParseLevel(generateFlags.logLevel)
	if err != nil {
		return err
	}

	if generateFlags.dryRun {
		files, err := pipeline.FindSourceFiles(projectRoot, cfg.SupportedExtensions, cfg.ExcludedDirs)
		if err != nil {
			return fmt.Errorf("discover source files: %w", err)
		}
		fmt.Printf("dry run — found %d C++ files:\n", len(files))
		for _, f := range files {
			fmt.Printf("  - %s\n", f)
		}
		return nil
	}

	logger := log.New(level, filepath.Join(projectRoot, "test_generation.log"))
	defer logger.Close()

	logger.Info(fmt.Sprintf("starting test generation for %s", projectRoot))
	logger.Info(fmt.Sprintf("configuration loaded from %s", configPath))

	client, err := llm.NewClient(cfg, logger)
	if err != nil {
		return err
	}

	var syntax orchestrator.SyntaxValidator
	if cfg.ValidateSyntax {
		syntax = validate.NewSyntaxChecker()
	}

	ctx := context.Background()
	orch := orchestrator.New(cfg.MaxRetries, syntax, logger)
	driver := pipeline.NewDriver(projectRoot, cfg, logger, orch, pipeline.Producers{
		Refactor: client.RefactorProducer(ctx),
		Generate: client.GenerateProducer(ctx),
		Refine:   client.RefineProducer(ctx),
	})

	success, err := driver.Run()
	if err != nil {
		return err
	}
	if success == 0 {
		return errors.New("no files were successfully processed")
	}
	return nil
}
