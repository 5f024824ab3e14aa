// Package validate checks generated C++ code two ways: a structural rule set
// over required textual markers, and a syntax check delegated to the system
// compiler. Neither check raises a fatal fault; both report their verdict to
// the retry orchestrator, which decides accept, retry, or fallback.
package validate

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// DefaultCompiler is the compiler binary used for syntax validation.
const DefaultCompiler = "g++"

// SyntaxChecker validates C++ code by invoking a compiler in syntax-only
// mode against a scratch file. The compiler command is a field so tests can
// substitute a stub or a deliberately missing binary.
type SyntaxChecker struct {
	Compiler string
}

// NewSyntaxChecker returns a SyntaxChecker using the default compiler.
func NewSyntaxChecker() *SyntaxChecker {
	return &SyntaxChecker{Compiler: DefaultCompiler}
}

// Check writes code to a uniquely named scratch file with the given
// extension (e.g. "cpp") and runs `<compiler> -fsyntax-only -std=c++17` on
// it. It returns (true, "") on a zero exit status and (false, diagnostics)
// otherwise. Any invocation failure — missing compiler, scratch file I/O
// error — is reported as (false, description), never as a fatal fault.
//
// The scratch file is removed on every exit path. Names are unique per
// invocation, so concurrent checks cannot collide.
func (s *SyntaxChecker) Check(code, fileKind string) (bool, string) {
	scratch, err := os.CreateTemp("", "testgen-*."+fileKind)
	if err != nil {
		return false, fmt.Sprintf("validation error: create scratch file: %v", err)
	}
	defer os.Remove(scratch.Name())

	if _, err := scratch.WriteString(code); err != nil {
		scratch.Close()
		return false, fmt.Sprintf("validation error: write scratch file: %v", err)
	}
	if err := scratch.Close(); err != nil {
		return false, fmt.Sprintf("validation error: close scratch file: %v", err)
	}

	cmd := exec.Command(s.Compiler, "-fsyntax-only", "-std=c++17", scratch.Name())
	var stderr strings.Builder
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if _, ok := err.(*exec.ExitError); ok {
			return false, stderr.String()
		}
		return false, fmt.Sprintf("validation error: invoke %s: %v", s.Compiler, err)
	}

	return true, ""
}
