// Package token turns source files into normalized token streams.
// Duplicate detection and token-level rules consume these streams instead
// of reparsing source themselves.
package token

// Kind is a coarse lexical class. Rules use kinds to recognize structural
// patterns such as import blocks or keyword-argument lists.
type Kind uint8

const (
	KindOther Kind = iota
	KindIdentifier
	KindKeyword
	KindImport
	KindString
	KindNumber
	KindOperator
	KindPunct
)

// String returns a short name for the kind, for logs and test output.
func (k Kind) String() string {
	switch k {
	case KindIdentifier:
		return "identifier"
	case KindKeyword:
		return "keyword"
	case KindImport:
		return "import"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindOperator:
		return "operator"
	case KindPunct:
		return "punct"
	default:
		return "other"
	}
}

// Token is the smallest analyzable unit of a source file. Comments and
// whitespace are dropped during tokenization; Text is the exact source text
// of the token. Lines are 1-based, StartCol is a 0-based byte column.
//
// Tokens are serialized into cache entries, so the JSON tags are part of
// the cache format. Short keys keep entries small.
type Token struct {
	Kind      Kind   `json:"k"`
	Text      string `json:"t"`
	StartLine int    `json:"sl"`
	EndLine   int    `json:"el"`
	StartCol  int    `json:"sc"`
}
