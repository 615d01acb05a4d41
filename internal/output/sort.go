package output

import (
	"sort"

	"github.com/be-wise-be-kind/thailint/internal/lint"
)

// SortViolations orders single-location violations by file path, then line,
// then message. The sort is stable, so duplicate-group violations (which
// leave those fields empty) keep the order their engine produced.
func SortViolations(violations []lint.Violation) {
	sort.SliceStable(violations, func(i, j int) bool {
		a, b := violations[i], violations[j]
		if a.FilePath != b.FilePath {
			return a.FilePath < b.FilePath
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		return a.Message < b.Message
	})
}
