// Package extract pulls C++ code artifacts out of free-form model output and
// scans C++ source for function signatures. Both operations are best-effort
// textual pattern matches, not parsers: they are pure, total, and degrade
// gracefully rather than failing.
package extract

import (
	"regexp"
	"strings"
)

// fencePatterns are tried in order, most specific language tag first, then an
// untagged fenced block. The first match whose content looks like C++ wins.
var fencePatterns = []*regexp.Regexp{
	regexp.MustCompile("(?s)```cpp\\s*\\n(.*?)```"),
	regexp.MustCompile("(?s)```c\\+\\+\\s*\\n(.*?)```"),
	regexp.MustCompile("(?s)```cc\\s*\\n(.*?)```"),
	regexp.MustCompile("(?s)```c\\s*\\n(.*?)```"),
	regexp.MustCompile("(?s)```\\s*\\n(.*?)```"),
}

// cppTokens is the fixed set of C++-indicative markers used by the
// plausibility filter. A candidate containing none of these is rejected.
var cppTokens = []string{
	"#include",
	"int ",
	"void ",
	"class ",
	"struct ",
	"namespace ",
	"template",
	"TEST(",
	"TEST (",
}

// looksLikeCpp reports whether s contains at least one C++-indicative token.
func looksLikeCpp(s string) bool {
	for _, tok := range cppTokens {
		if strings.Contains(s, tok) {
			return true
		}
	}
	return false
}

// CodeBlock extracts a single C++ code artifact from a raw model response
// that may contain markdown fencing and surrounding commentary.
//
// Resolution order:
//  1. Each fenced-block pattern in turn; the first match whose content passes
//     the plausibility filter is returned, trimmed, without the fences.
//  2. If no fenced block yields a plausible candidate but the full response
//     itself is plausible, the trimmed full response is returned.
//  3. Otherwise the trimmed raw text is returned verbatim and reliable is
//     false, signalling that extraction is a guess the caller should log.
//
// CodeBlock never fails: an empty input returns ("", true).
func CodeBlock(raw string) (code string, reliable bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", true
	}

	for _, pat := range fencePatterns {
		for _, m := range pat.FindAllStringSubmatch(raw, -1) {
			candidate := strings.TrimSpace(m[1])
			if candidate != "" && looksLikeCpp(candidate) {
				return candidate, true
			}
		}
	}

	if looksLikeCpp(trimmed) {
		return trimmed, true
	}

	return trimmed, false
}
