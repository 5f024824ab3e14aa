package llm

import "fmt"

// refactorPrompt asks the model for a behavior-preserving cleanup of a whole
// C++ file. The response is expected as a single fenced code block, but the
// extractor tolerates commentary around it.
func refactorPrompt(code string) string {
	return fmt.Sprintf(`Refactor this C++ code for clarity and maintainability without changing its logic or behavior.
Return a complete C++ file. Do not modify the global structure unless absolutely necessary.

`+"```cpp\n%s\n```\n", code)
}

// generatePrompt asks the model for a complete Google Test file covering the
// given code, constrained by the YAML rule document.
func generatePrompt(code, rules string) string {
	return fmt.Sprintf(`You are a C++ unit test generator.

Strictly follow the rules below defined in YAML format. Use the Google Test framework unless specified otherwise.
Do not include duplicate tests or unnecessary includes. Include appropriate headers and follow best practices.

YAML Rules:
`+"```yaml\n%s\n```"+`

C++ code to test:
`+"```cpp\n%s\n```"+`

Generate the complete test file.
`, rules, code)
}

// refinePrompt asks the model to improve an existing generated test file
// while keeping it compliant with the YAML rule document.
func refinePrompt(tests, rules string) string {
	return fmt.Sprintf(`You are a C++ unit test reviewer.

Refine the Google Test file below: remove duplicate or redundant tests, improve assertions and test names,
and add missing edge cases. Keep the file self-contained and compilable. Strictly follow the YAML rules.

YAML Rules:
`+"```yaml\n%s\n```"+`

Current test file:
`+"```cpp\n%s\n```"+`

Return the complete refined test file.
`, rules, tests)
}
