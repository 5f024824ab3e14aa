package extract_test

import (
	"testing"

	"github.com/itsviv0/Ai-gnu-unit-test-gen/internal/extract"
)

func TestCodeBlock_EmptyInput(t *testing.T) {
	code, reliable := extract.CodeBlock("")
	if code != "" {
		t.Errorf("CodeBlock(\"\"): expected empty string, got %q", code)
	}
	if !reliable {
		t.Error("CodeBlock(\"\"): expected reliable=true for empty input")
	}

	code, _ = extract.CodeBlock("   \n\t  ")
	if code != "" {
		t.Errorf("CodeBlock(whitespace): expected empty string, got %q", code)
	}
}

func TestCodeBlock_TaggedFence(t *testing.T) {
	raw := "Here is the refactored code:\n\n```cpp\n#include <iostream>\nint add(int a, int b) { return a + b; }\n```\n\nLet me know if you need changes."

	code, reliable := extract.CodeBlock(raw)
	want := "#include <iostream>\nint add(int a, int b) { return a + b; }"
	if code != want {
		t.Errorf("CodeBlock: got %q, want %q", code, want)
	}
	if !reliable {
		t.Error("CodeBlock: expected reliable=true for tagged fence")
	}
}

func TestCodeBlock_FencePreference(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "cpp tag",
			raw:  "```cpp\n#include <a.h>\n```",
			want: "#include <a.h>",
		},
		{
			name: "c++ tag",
			raw:  "```c++\nclass Foo {};\n```",
			want: "class Foo {};",
		},
		{
			name: "cc tag",
			raw:  "```cc\nstruct Bar {};\n```",
			want: "struct Bar {};",
		},
		{
			name: "c tag",
			raw:  "```c\nvoid f(void);\n```",
			want: "void f(void);",
		},
		{
			name: "untagged fence",
			raw:  "Some commentary.\n```\n#include <x.h>\nint g() { return 1; }\n```",
			want: "#include <x.h>\nint g() { return 1; }",
		},
		{
			name: "cpp tag wins over untagged",
			raw:  "```\nnot code at all\n```\n```cpp\nint h() { return 2; }\n```",
			want: "int h() { return 2; }",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, reliable := extract.CodeBlock(tt.raw)
			if code != tt.want {
				t.Errorf("CodeBlock: got %q, want %q", code, tt.want)
			}
			if !reliable {
				t.Error("CodeBlock: expected reliable=true")
			}
		})
	}
}

func TestCodeBlock_ImplausibleFenceSkipped(t *testing.T) {
	// The first fence contains no C++-indicative token; the plausible full
	// text should not win because a later fence does contain C++ code.
	raw := "```cpp\njust prose, nothing else\n```\n```cpp\n#include <real.h>\n```"

	code, reliable := extract.CodeBlock(raw)
	if code != "#include <real.h>" {
		t.Errorf("CodeBlock: got %q, want %q", code, "#include <real.h>")
	}
	if !reliable {
		t.Error("CodeBlock: expected reliable=true")
	}
}

func TestCodeBlock_WholeResponseFallback(t *testing.T) {
	// No fences at all, but the response itself looks like C++.
	raw := "#include <vector>\nint sum(std::vector<int> v) { return 0; }\n"

	code, reliable := extract.CodeBlock(raw)
	want := "#include <vector>\nint sum(std::vector<int> v) { return 0; }"
	if code != want {
		t.Errorf("CodeBlock: got %q, want %q", code, want)
	}
	if !reliable {
		t.Error("CodeBlock: expected reliable=true for plausible full response")
	}
}

func TestCodeBlock_UnreliableFallback(t *testing.T) {
	raw := "I'm sorry, I cannot help with that."

	code, reliable := extract.CodeBlock(raw)
	if code != raw {
		t.Errorf("CodeBlock: got %q, want the trimmed raw text %q", code, raw)
	}
	if reliable {
		t.Error("CodeBlock: expected reliable=false for implausible text")
	}
}

func TestCodeBlock_Idempotent(t *testing.T) {
	// Re-extracting already-extracted plain code returns it unchanged.
	plain := "#include <gtest/gtest.h>\nTEST(A, B) {}"

	first, _ := extract.CodeBlock(plain)
	second, _ := extract.CodeBlock(first)
	if second != first {
		t.Errorf("CodeBlock not idempotent: first %q, second %q", first, second)
	}
	if first != plain {
		t.Errorf("CodeBlock changed plain code: got %q, want %q", first, plain)
	}
}
