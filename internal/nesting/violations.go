package nesting

import (
	"fmt"

	"github.com/be-wise-be-kind/thailint/internal/lint"
)

// RuleID identifies the nesting rule in reports.
const RuleID = "nesting"

// BuildViolations converts one file's per-function results into violations
// against the given depth limit.
func BuildViolations(path string, functions []FunctionNesting, maxDepth int) []lint.Violation {
	var violations []lint.Violation
	for _, fn := range functions {
		if fn.MaxDepth <= maxDepth {
			continue
		}
		violations = append(violations, lint.Violation{
			RuleID:   RuleID,
			FilePath: path,
			Line:     fn.StartLine,
			Message: fmt.Sprintf("function '%s' exceeds maximum nesting depth (%d > %d)",
				fn.Name, fn.MaxDepth, maxDepth),
			Severity:   lint.SeverityError,
			Suggestion: "Use guard clauses or extract nested logic into helper functions",
		})
	}
	return violations
}
