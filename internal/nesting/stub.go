//go:build !cgo

package nesting

import (
	"context"
	"errors"

	"github.com/be-wise-be-kind/thailint/internal/token"
)

// ErrNoCGO reports that nesting analysis is not part of this build. The
// tree-sitter grammars need cgo.
var ErrNoCGO = errors.New("nesting analysis requires CGO (tree-sitter)")

// Analyzer stands in for the tree-sitter analyzer in cgo-less builds.
type Analyzer struct{}

// NewAnalyzer returns an analyzer whose Analyze always fails.
func NewAnalyzer() *Analyzer {
	return nil
}

// Analyze always returns ErrNoCGO.
func (a *Analyzer) Analyze(ctx context.Context, source []byte, lang token.Language) ([]FunctionNesting, error) {
	return nil, ErrNoCGO
}

// IsAvailable reports whether the tree-sitter grammars were compiled in.
func IsAvailable() bool {
	return false
}
