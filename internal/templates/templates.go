// Package templates holds the embedded default files used by the generator.
// All templates are compiled into the binary at build time via //go:embed.
package templates

import _ "embed"

// DefaultConfig is the content written by `generate --create-config`.
//
//go:embed defaults/config.yaml
var DefaultConfig string

// DefaultTestRules is the YAML rule document included in generation and
// refinement prompts when the project does not provide its own
// strict_test_rules.yaml.
//
//go:embed defaults/strict_test_rules.yaml
var DefaultTestRules string
