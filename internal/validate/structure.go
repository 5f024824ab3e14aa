package validate

import (
	"regexp"
	"strings"
)

// RequiredInclude is the test-framework include that must appear as a
// literal substring in every generated test file.
const RequiredInclude = "#include <gtest/gtest.h>"

// testCasePattern recognizes a TEST(...)-shaped declaration.
var testCasePattern = regexp.MustCompile(`TEST\s*\(`)

// Structure checks generated test code against the fixed structural rule
// set. Every rule is evaluated — no short-circuit — so the caller sees all
// problems at once:
//
//  1. the required test-framework include must be present;
//  2. at least one TEST(...)-shaped case must be present;
//  3. either an explicit main function or the gtest_main marker (indicating
//     the framework supplies the entry point) must be present.
//
// The returned issues list holds one message per failing rule; the code is
// valid only when the list is empty.
func Structure(testCode string) (bool, []string) {
	var issues []string

	if !strings.Contains(testCode, RequiredInclude) {
		issues = append(issues, "missing required "+RequiredInclude)
	}

	if !testCasePattern.MatchString(testCode) {
		issues = append(issues, "no TEST cases found")
	}

	hasMain := strings.Contains(testCode, "int main")
	hasGtestMain := strings.Contains(testCode, "gtest_main")
	if !hasMain && !hasGtestMain {
		issues = append(issues, "no main function found and not using gtest_main")
	}

	return len(issues) == 0, issues
}
