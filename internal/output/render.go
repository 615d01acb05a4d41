package output

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/be-wise-be-kind/thailint/internal/lint"
)

// RenderJSON encodes a report as indented JSON with a trailing newline.
func RenderJSON(r *lint.Report) ([]byte, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding report: %w", err)
	}
	return append(data, '\n'), nil
}

// RenderText formats a report for terminal output.
func RenderText(r *lint.Report) string {
	var b strings.Builder

	for _, v := range r.Violations {
		writeViolation(&b, v)
	}

	switch r.Total {
	case 0:
		b.WriteString("No violations found.\n")
	case 1:
		b.WriteString("Found 1 violation.\n")
	default:
		fmt.Fprintf(&b, "Found %d violations.\n", r.Total)
	}

	if r.CacheStats != nil {
		fmt.Fprintf(&b, "Cache: %d hits, %d misses (hit rate %s)\n",
			r.CacheStats.Hits, r.CacheStats.Misses, FormatRate(r.CacheStats.HitRate))
	}
	return b.String()
}

func writeViolation(b *strings.Builder, v lint.Violation) {
	if g := v.DuplicateGroup; g != nil {
		first := g.Occurrences[0]
		fmt.Fprintf(b, "%s %s:%d-%d: %s (%d lines, %d tokens)\n",
			v.Severity, first.FilePath, first.LineStart, first.LineEnd,
			v.Message, g.LineCount, g.TokenCount)
		for _, occ := range g.Occurrences[1:] {
			fmt.Fprintf(b, "  also at %s:%d-%d\n", occ.FilePath, occ.LineStart, occ.LineEnd)
		}
	} else {
		fmt.Fprintf(b, "%s %s:%d: %s\n", v.Severity, v.FilePath, v.Line, v.Message)
	}
	if v.Suggestion != "" {
		fmt.Fprintf(b, "  suggestion: %s\n", v.Suggestion)
	}
	b.WriteString("\n")
}
