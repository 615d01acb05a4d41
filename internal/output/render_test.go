package output

import (
	"testing"

	"github.com/be-wise-be-kind/thailint/internal/lint"
)

func sampleReport() *lint.Report {
	r := lint.NewReport()
	r.Add(lint.Violation{
		DuplicateGroup: &lint.DuplicateGroup{
			Hash:       "00000000deadbeef",
			LineCount:  4,
			TokenCount: 32,
			Occurrences: []lint.Occurrence{
				{FilePath: "src/a.py", LineStart: 2, LineEnd: 5},
				{FilePath: "src/b.py", LineStart: 10, LineEnd: 13},
			},
		},
		Message:    "Duplicate code found in 2 locations",
		Severity:   lint.SeverityWarning,
		Suggestion: "Extract duplicate code into a shared function or method",
	})
	r.CacheStats = &lint.CacheStats{Hits: 1, Misses: 1, HitRate: 0.5}
	return r
}

func TestRenderJSON(t *testing.T) {
	got, err := RenderJSON(sampleReport())
	if err != nil {
		t.Fatalf("RenderJSON: %v", err)
	}

	want := `{
  "violations": [
    {
      "duplicate_group": {
        "hash": "00000000deadbeef",
        "line_count": 4,
        "token_count": 32,
        "occurrences": [
          {
            "file_path": "src/a.py",
            "line_start": 2,
            "line_end": 5
          },
          {
            "file_path": "src/b.py",
            "line_start": 10,
            "line_end": 13
          }
        ]
      },
      "message": "Duplicate code found in 2 locations",
      "severity": "WARNING",
      "suggestion": "Extract duplicate code into a shared function or method"
    }
  ],
  "total": 1,
  "cache_stats": {
    "cache_hits": 1,
    "cache_misses": 1,
    "hit_rate": 0.5
  }
}
`
	if string(got) != want {
		t.Errorf("RenderJSON mismatch:\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestRenderJSONEmptyReport(t *testing.T) {
	got, err := RenderJSON(lint.NewReport())
	if err != nil {
		t.Fatalf("RenderJSON: %v", err)
	}

	want := `{
  "violations": [],
  "total": 0
}
`
	if string(got) != want {
		t.Errorf("RenderJSON mismatch:\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestRenderJSONDeterministic(t *testing.T) {
	a, err := RenderJSON(sampleReport())
	if err != nil {
		t.Fatalf("RenderJSON: %v", err)
	}
	b, err := RenderJSON(sampleReport())
	if err != nil {
		t.Fatalf("RenderJSON: %v", err)
	}
	if string(a) != string(b) {
		t.Error("identical reports should encode to identical bytes")
	}
}

func TestRenderText(t *testing.T) {
	got := RenderText(sampleReport())

	want := `WARNING src/a.py:2-5: Duplicate code found in 2 locations (4 lines, 32 tokens)
  also at src/b.py:10-13
  suggestion: Extract duplicate code into a shared function or method

Found 1 violation.
Cache: 1 hits, 1 misses (hit rate 0.5)
`
	if got != want {
		t.Errorf("RenderText mismatch:\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestRenderTextSingleLocation(t *testing.T) {
	r := lint.NewReport()
	r.Add(lint.Violation{
		RuleID:   "nesting",
		FilePath: "src/x.py",
		Line:     10,
		Message:  "function 'f' exceeds maximum nesting depth (4 > 3)",
		Severity: lint.SeverityError,
	})

	got := RenderText(r)
	want := `ERROR src/x.py:10: function 'f' exceeds maximum nesting depth (4 > 3)

Found 1 violation.
`
	if got != want {
		t.Errorf("RenderText mismatch:\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestRenderTextNoViolations(t *testing.T) {
	if got := RenderText(lint.NewReport()); got != "No violations found.\n" {
		t.Errorf("RenderText = %q", got)
	}
}
