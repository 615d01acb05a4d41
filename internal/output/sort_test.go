package output

import (
	"testing"

	"github.com/be-wise-be-kind/thailint/internal/lint"
)

func TestSortViolations(t *testing.T) {
	violations := []lint.Violation{
		{FilePath: "c.py", Line: 3, Message: "m"},
		{FilePath: "a.py", Line: 10, Message: "m"},
		{FilePath: "a.py", Line: 2, Message: "z"},
		{FilePath: "a.py", Line: 2, Message: "a"},
		{FilePath: "b.py", Line: 1, Message: "m"},
	}

	SortViolations(violations)

	want := []struct {
		path    string
		line    int
		message string
	}{
		{"a.py", 2, "a"},
		{"a.py", 2, "z"},
		{"a.py", 10, "m"},
		{"b.py", 1, "m"},
		{"c.py", 3, "m"},
	}
	for i, w := range want {
		v := violations[i]
		if v.FilePath != w.path || v.Line != w.line || v.Message != w.message {
			t.Errorf("violations[%d] = %s:%d %q, want %s:%d %q",
				i, v.FilePath, v.Line, v.Message, w.path, w.line, w.message)
		}
	}
}

func TestSortViolationsKeepsGroupOrder(t *testing.T) {
	violations := []lint.Violation{
		{DuplicateGroup: &lint.DuplicateGroup{Hash: "first"}, Message: "m"},
		{DuplicateGroup: &lint.DuplicateGroup{Hash: "second"}, Message: "m"},
	}

	SortViolations(violations)

	if violations[0].DuplicateGroup.Hash != "first" || violations[1].DuplicateGroup.Hash != "second" {
		t.Error("stable sort should keep pre-ordered group violations in place")
	}
}
