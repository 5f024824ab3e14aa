package extract_test

import (
	"testing"

	"github.com/itsviv0/Ai-gnu-unit-test-gen/internal/extract"
)

const sampleSource = `#include <iostream>

int add(int a, int b) {
    return a + b;
}

double divide(double a, double b) {
    if (b == 0) {
        return 0;
    }
    return a / b;
}

int main() {
    std::cout << add(1, 2) << std::endl;
    return 0;
}
`

func TestSignatures_TwoFunctions(t *testing.T) {
	funcs := extract.Signatures(sampleSource)

	if len(funcs) != 2 {
		t.Fatalf("Signatures: expected 2 functions, got %d: %+v", len(funcs), funcs)
	}

	if funcs[0].Name != "add" || funcs[0].ReturnType != "int" {
		t.Errorf("Signatures[0]: got name %q type %q, want add/int", funcs[0].Name, funcs[0].ReturnType)
	}
	if funcs[1].Name != "divide" || funcs[1].ReturnType != "double" {
		t.Errorf("Signatures[1]: got name %q type %q, want divide/double", funcs[1].Name, funcs[1].ReturnType)
	}
}

func TestSignatures_DenylistExcluded(t *testing.T) {
	source := `
int check(int x) {
    if (x > 0) {
        return 1;
    }
    while (x < 0) {
        x++;
    }
    return 0;
}

int main() {
    return check(5);
}
`
	funcs := extract.Signatures(source)
	if len(funcs) != 1 {
		t.Fatalf("Signatures: expected 1 function, got %d: %+v", len(funcs), funcs)
	}
	if funcs[0].Name != "check" {
		t.Errorf("Signatures: got %q, want check", funcs[0].Name)
	}
}

func TestSignatures_Empty(t *testing.T) {
	if funcs := extract.Signatures(""); len(funcs) != 0 {
		t.Errorf("Signatures(\"\"): expected no functions, got %+v", funcs)
	}
}

func TestSignatures_SignatureExcludesBrace(t *testing.T) {
	funcs := extract.Signatures("int add(int a, int b) {")
	if len(funcs) != 1 {
		t.Fatalf("Signatures: expected 1 function, got %d", len(funcs))
	}
	if want := "int add(int a, int b)"; funcs[0].Signature != want {
		t.Errorf("Signatures: got signature %q, want %q", funcs[0].Signature, want)
	}
}
