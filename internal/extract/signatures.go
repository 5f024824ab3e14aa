package extract

import (
	"regexp"
	"strings"

	"github.com/itsviv0/Ai-gnu-unit-test-gen/internal/types"
)

// functionPattern matches "returnType name(params) {" shapes. It is a
// deliberate approximation of the C++ grammar: it over-matches on some
// constructs (constructor initializer lists, macros) and misses others
// (multi-line declarations, templates). Results feed logging and metadata
// only, never correctness-critical decisions.
var functionPattern = regexp.MustCompile(`(\w+(?:\s*\*)?)\s+(\w+)\s*\([^)]*\)\s*\{`)

// signatureDenylist holds control-flow keywords and the program entry point,
// which the pattern above would otherwise report as functions.
var signatureDenylist = map[string]bool{
	"main":   true,
	"if":     true,
	"for":    true,
	"while":  true,
	"switch": true,
}

// Signatures scans C++ source text for function-like definitions and returns
// a best-effort inventory. The order follows source order; names on the
// denylist are skipped.
func Signatures(source string) []types.FunctionSignature {
	var funcs []types.FunctionSignature

	for _, m := range functionPattern.FindAllStringSubmatch(source, -1) {
		returnType := strings.TrimSpace(m[1])
		name := strings.TrimSpace(m[2])
		if signatureDenylist[name] {
			continue
		}
		funcs = append(funcs, types.FunctionSignature{
			Name:       name,
			ReturnType: returnType,
			Signature:  strings.TrimSpace(strings.TrimSuffix(m[0], "{")),
		})
	}

	return funcs
}
