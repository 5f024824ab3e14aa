// Package config provides GeneratorConfig loading for the test generation
// pipeline. Config is read from a YAML file whose path is given on the
// command line. A missing file returns sane defaults without error. CLI
// flags (bound via cobra) override config file values at the highest
// precedence by mutating the returned struct after loading.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Default values for GeneratorConfig fields.
const (
	DefaultModel          = "xai/grok-3"
	DefaultTemperature    = 0.7
	DefaultTopP           = 0.95
	DefaultMaxRetries     = 3
	DefaultTimeoutSeconds = 120
	DefaultTestFramework  = "gtest"
	DefaultTargetCoverage = 80.0
	DefaultThreshold      = 75.0
	DefaultTestDir        = "tests"
	DefaultRefactoredDir  = "refactored"
	DefaultCoverageFormat = "html"
)

// GeneratorConfig holds all configuration for one pipeline invocation.
type GeneratorConfig struct {
	// LLM settings.
	Model          string  `yaml:"llm_model"`
	Temperature    float32 `yaml:"llm_temperature"`
	TopP           float32 `yaml:"llm_top_p"`
	MaxRetries     int     `yaml:"llm_max_retries"`
	TimeoutSeconds int     `yaml:"llm_timeout_seconds"`

	// Test generation.
	TestFramework       string  `yaml:"test_framework"`
	TargetCoverage      float64 `yaml:"target_coverage"`
	IncludeEdgeCases    bool    `yaml:"include_edge_cases"`
	IncludePerformance  bool    `yaml:"include_performance_tests"`
	MaxTestsPerFunction int     `yaml:"max_tests_per_function"`

	// File handling.
	ExcludedDirs        []string `yaml:"excluded_dirs"`
	SupportedExtensions []string `yaml:"supported_extensions"`
	OutputTestDir       string   `yaml:"output_test_dir"`
	OutputRefactoredDir string   `yaml:"output_refactored_dir"`

	// Validation.
	ValidateSyntax bool `yaml:"validate_syntax"`

	// Coverage.
	UseCoverage       bool    `yaml:"use_coverage"`
	CoverageFormat    string  `yaml:"coverage_format"`
	CoverageThreshold float64 `yaml:"coverage_threshold"`
}

// defaults returns a GeneratorConfig populated with sane defaults, matching
// the embedded config.yaml template.
func defaults() GeneratorConfig {
	return GeneratorConfig{
		Model:               DefaultModel,
		Temperature:         DefaultTemperature,
		TopP:                DefaultTopP,
		MaxRetries:          DefaultMaxRetries,
		TimeoutSeconds:      DefaultTimeoutSeconds,
		TestFramework:       DefaultTestFramework,
		TargetCoverage:      DefaultTargetCoverage,
		IncludeEdgeCases:    true,
		IncludePerformance:  false,
		MaxTestsPerFunction: 5,
		ExcludedDirs:        []string{"tests", "refactored", ".git", "build"},
		SupportedExtensions: []string{".cpp", ".cc", ".c"},
		OutputTestDir:       DefaultTestDir,
		OutputRefactoredDir: DefaultRefactoredDir,
		ValidateSyntax:      true,
		UseCoverage:         true,
		CoverageFormat:      DefaultCoverageFormat,
		CoverageThreshold:   DefaultThreshold,
	}
}

// partialConfig is used during YAML parsing to distinguish between a field
// being absent (nil pointer) and a field being explicitly set to its zero value.
type partialConfig struct {
	Model          *string  `yaml:"llm_model"`
	Temperature    *float32 `yaml:"llm_temperature"`
	TopP           *float32 `yaml:"llm_top_p"`
	MaxRetries     *int     `yaml:"llm_max_retries"`
	TimeoutSeconds *int     `yaml:"llm_timeout_seconds"`

	TestFramework       *string  `yaml:"test_framework"`
	TargetCoverage      *float64 `yaml:"target_coverage"`
	IncludeEdgeCases    *bool    `yaml:"include_edge_cases"`
	IncludePerformance  *bool    `yaml:"include_performance_tests"`
	MaxTestsPerFunction *int     `yaml:"max_tests_per_function"`

	ExcludedDirs        []string `yaml:"excluded_dirs"`
	SupportedExtensions []string `yaml:"supported_extensions"`
	OutputTestDir       *string  `yaml:"output_test_dir"`
	OutputRefactoredDir *string  `yaml:"output_refactored_dir"`

	ValidateSyntax *bool `yaml:"validate_syntax"`

	UseCoverage       *bool    `yaml:"use_coverage"`
	CoverageFormat    *string  `yaml:"coverage_format"`
	CoverageThreshold *float64 `yaml:"coverage_threshold"`
}

// validFormats is the set of accepted coverage_format values.
var validFormats = map[string]bool{
	"html": true,
	"xml":  true,
	"json": true,
}

// Load reads the YAML config at path and returns a GeneratorConfig.
// If the file does not exist, defaults are returned without error.
// Fields absent from the file are filled with their default values;
// fields present in the file override the corresponding default.
func Load(path string) (*GeneratorConfig, error) {
	cfg := defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &cfg, nil
		}
		return nil, err
	}

	var partial partialConfig
	if err := yaml.Unmarshal(data, &partial); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if partial.Model != nil {
		cfg.Model = *partial.Model
	}
	if partial.Temperature != nil {
		cfg.Temperature = *partial.Temperature
	}
	if partial.TopP != nil {
		cfg.TopP = *partial.TopP
	}
	if partial.MaxRetries != nil {
		cfg.MaxRetries = *partial.MaxRetries
	}
	if partial.TimeoutSeconds != nil {
		cfg.TimeoutSeconds = *partial.TimeoutSeconds
	}
	if partial.TestFramework != nil {
		cfg.TestFramework = *partial.TestFramework
	}
	if partial.TargetCoverage != nil {
		cfg.TargetCoverage = *partial.TargetCoverage
	}
	if partial.IncludeEdgeCases != nil {
		cfg.IncludeEdgeCases = *partial.IncludeEdgeCases
	}
	if partial.IncludePerformance != nil {
		cfg.IncludePerformance = *partial.IncludePerformance
	}
	if partial.MaxTestsPerFunction != nil {
		cfg.MaxTestsPerFunction = *partial.MaxTestsPerFunction
	}
	if partial.ExcludedDirs != nil {
		cfg.ExcludedDirs = partial.ExcludedDirs
	}
	if partial.SupportedExtensions != nil {
		cfg.SupportedExtensions = partial.SupportedExtensions
	}
	if partial.OutputTestDir != nil {
		cfg.OutputTestDir = *partial.OutputTestDir
	}
	if partial.OutputRefactoredDir != nil {
		cfg.OutputRefactoredDir = *partial.OutputRefactoredDir
	}
	if partial.ValidateSyntax != nil {
		cfg.ValidateSyntax = *partial.ValidateSyntax
	}
	if partial.UseCoverage != nil {
		cfg.UseCoverage = *partial.UseCoverage
	}
	if partial.CoverageFormat != nil {
		cfg.CoverageFormat = *partial.CoverageFormat
	}
	if partial.CoverageThreshold != nil {
		cfg.CoverageThreshold = *partial.CoverageThreshold
	}

	if !validFormats[cfg.CoverageFormat] {
		return nil, fmt.Errorf("config %s: invalid coverage_format %q (must be html, xml, or json)", path, cfg.CoverageFormat)
	}
	if cfg.MaxRetries < 1 {
		return nil, fmt.Errorf("config %s: llm_max_retries must be at least 1, got %d", path, cfg.MaxRetries)
	}

	return &cfg, nil
}
