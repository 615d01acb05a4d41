//go:build !cgo

package token

import (
	"context"
	"errors"
)

// ErrNoCGO reports that the tree-sitter grammars are not part of this
// build. Tokenization needs cgo.
var ErrNoCGO = errors.New("tokenization requires CGO (tree-sitter)")

// Tokenizer stands in for the tree-sitter tokenizer in cgo-less builds.
type Tokenizer struct{}

// NewTokenizer returns a tokenizer whose Tokenize always fails.
func NewTokenizer() *Tokenizer {
	return nil
}

// Tokenize always returns ErrNoCGO.
func (t *Tokenizer) Tokenize(ctx context.Context, source []byte, lang Language) ([]Token, error) {
	return nil, ErrNoCGO
}

// IsAvailable reports whether the tree-sitter grammars were compiled in.
func IsAvailable() bool {
	return false
}
