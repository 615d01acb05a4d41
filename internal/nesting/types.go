// Package nesting reports functions whose control flow nests deeper than a
// configured limit.
package nesting

// FunctionNesting describes how deeply one function's control flow nests.
// Depth 0 means statements sit directly in the function body; each
// if/for/while/try level (and language equivalents) adds one. Nested
// function literals are measured separately and do not count toward the
// enclosing function.
type FunctionNesting struct {
	// Name is the function/method name, or <anonymous> for literals
	Name string `json:"name"`

	// StartLine is the line number where the function starts
	StartLine int `json:"startLine"`

	// EndLine is the line number where the function ends
	EndLine int `json:"endLine"`

	// MaxDepth is the deepest nesting level found in the function
	MaxDepth int `json:"maxDepth"`
}
