package dry

import (
	"fmt"

	"github.com/be-wise-be-kind/thailint/internal/lint"
)

// buildViolations converts resolved groups into violation records. It is a
// pure transformation: group order is preserved, one violation per group.
//
// The reported hash fingerprints the full maximal span, line_count comes
// from the first occurrence (members share token content but may wrap lines
// differently), and token_count is identical across members by
// construction.
func buildViolations(groups []Group, files []FileResult) []lint.Violation {
	violations := make([]lint.Violation, 0, len(groups))
	for _, g := range groups {
		first := g.Occurrences[0]
		tokens := files[first.File].Tokens

		occurrences := make([]lint.Occurrence, 0, len(g.Occurrences))
		for _, m := range g.Occurrences {
			toks := files[m.File].Tokens
			occurrences = append(occurrences, lint.Occurrence{
				FilePath:  files[m.File].Path,
				LineStart: toks[m.Start].StartLine,
				LineEnd:   toks[m.End-1].EndLine,
			})
		}

		violations = append(violations, lint.Violation{
			DuplicateGroup: &lint.DuplicateGroup{
				Hash:        fmt.Sprintf("%016x", spanHash(tokens, first.Start, first.End)),
				LineCount:   lineSpan(tokens, first.Start, first.End),
				TokenCount:  first.End - first.Start,
				Occurrences: occurrences,
			},
			Message:    fmt.Sprintf("Duplicate code found in %d locations", len(g.Occurrences)),
			Severity:   lint.SeverityWarning,
			Suggestion: "Extract duplicate code into a shared function or method",
		})
	}
	return violations
}
