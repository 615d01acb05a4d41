//go:build cgo

package nesting

import (
	"context"
	"testing"

	"github.com/be-wise-be-kind/thailint/internal/token"
)

func findFunction(t *testing.T, results []FunctionNesting, name string) FunctionNesting {
	t.Helper()
	for _, fn := range results {
		if fn.Name == name {
			return fn
		}
	}
	t.Fatalf("function %q not found in %v", name, results)
	return FunctionNesting{}
}

func TestAnalyzeGo(t *testing.T) {
	source := []byte(`package main

func flat() {
	fmt.Println("ok")
}

func guard(x int) int {
	if x < 0 {
		return 0
	}
	return x
}

func deep(flags []bool, vals []int) int {
	total := 0
	if len(vals) > 0 {
		for i, v := range vals {
			if flags[i] {
				total += v
			}
		}
	}
	return total
}
`)

	analyzer := NewAnalyzer()
	results, err := analyzer.Analyze(context.Background(), source, token.LangGo)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("got %d functions, want 3", len(results))
	}

	if got := findFunction(t, results, "flat").MaxDepth; got != 0 {
		t.Errorf("flat depth = %d, want 0", got)
	}
	if got := findFunction(t, results, "guard").MaxDepth; got != 1 {
		t.Errorf("guard depth = %d, want 1", got)
	}
	if got := findFunction(t, results, "deep").MaxDepth; got != 3 {
		t.Errorf("deep depth = %d, want 3", got)
	}

	flat := findFunction(t, results, "flat")
	if flat.StartLine != 3 || flat.EndLine != 5 {
		t.Errorf("flat lines = %d-%d, want 3-5", flat.StartLine, flat.EndLine)
	}
}

func TestAnalyzeGoFunctionLiteral(t *testing.T) {
	source := []byte(`package main

func outer() func() int {
	inner := func() int {
		if time.Now().IsZero() {
			return 1
		}
		return 0
	}
	return inner
}
`)

	analyzer := NewAnalyzer()
	results, err := analyzer.Analyze(context.Background(), source, token.LangGo)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d functions, want 2", len(results))
	}

	// The literal is measured on its own; its if must not leak into outer.
	if got := findFunction(t, results, "outer").MaxDepth; got != 0 {
		t.Errorf("outer depth = %d, want 0", got)
	}
	if got := findFunction(t, results, "<anonymous>").MaxDepth; got != 1 {
		t.Errorf("literal depth = %d, want 1", got)
	}
}

func TestAnalyzePython(t *testing.T) {
	source := []byte(`def flat(x):
    return x + 1

def deep(items):
    if items:
        for item in items:
            if item:
                print(item)
    return items

def with_try(path):
    try:
        with open(path) as f:
            return f.read()
    except OSError:
        return None
`)

	analyzer := NewAnalyzer()
	results, err := analyzer.Analyze(context.Background(), source, token.LangPython)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("got %d functions, want 3", len(results))
	}

	if got := findFunction(t, results, "flat").MaxDepth; got != 0 {
		t.Errorf("flat depth = %d, want 0", got)
	}
	if got := findFunction(t, results, "deep").MaxDepth; got != 3 {
		t.Errorf("deep depth = %d, want 3", got)
	}
	if got := findFunction(t, results, "with_try").MaxDepth; got != 2 {
		t.Errorf("with_try depth = %d, want 2", got)
	}

	flat := findFunction(t, results, "flat")
	if flat.StartLine != 1 {
		t.Errorf("flat start line = %d, want 1", flat.StartLine)
	}
}

func TestAnalyzeUnsupportedLanguage(t *testing.T) {
	analyzer := NewAnalyzer()
	if _, err := analyzer.Analyze(context.Background(), []byte("x"), token.Language("cobol")); err == nil {
		t.Fatal("expected error for unsupported language")
	}
}

func TestIsAvailable(t *testing.T) {
	if !IsAvailable() {
		t.Error("IsAvailable should be true with cgo")
	}
}
