package dry

import (
	"github.com/be-wise-be-kind/thailint/internal/token"
)

// FilterKind names a structural false-positive filter. The set is closed:
// a new filter means a new constant and a new case in Suppress.
type FilterKind uint8

const (
	FilterImportGroup FilterKind = iota
	FilterKeywordArgs
)

// Filters holds the per-run filter toggles. A disabled filter surfaces its
// pattern as an ordinary violation.
type Filters struct {
	ImportGroup bool
	KeywordArgs bool
}

// Suppress reports whether a group should be dropped entirely. Filters
// judge the nature of the matched span, so one occurrence is
// representative: all members have identical token content.
func (f Filters) Suppress(g Group, files []FileResult) bool {
	if !f.ImportGroup && !f.KeywordArgs {
		return false
	}
	first := g.Occurrences[0]
	tokens := files[first.File].Tokens[first.Start:first.End]
	if f.ImportGroup && isImportGroup(tokens) {
		return true
	}
	if f.KeywordArgs && isKeywordArgs(tokens) {
		return true
	}
	return false
}

// isImportGroup reports whether a span is nothing but import statements:
// every line starts with an import-family keyword, continues a
// parenthesized import list opened on an earlier line, or closes one.
// Import blocks recur across unrelated files and are not actionable
// duplication.
func isImportGroup(tokens []token.Token) bool {
	sawImport := false
	depth := 0
	line := 0
	for _, tk := range tokens {
		if tk.StartLine != line {
			line = tk.StartLine
			if tk.Kind == token.KindImport {
				sawImport = true
			} else if depth == 0 {
				return false
			}
		}
		switch tk.Text {
		case "(", "[", "{":
			depth++
		case ")", "]", "}":
			if depth > 0 {
				depth--
			}
		}
	}
	return sawImport
}

// isKeywordArgs reports whether a span is a run of name=value argument
// lines inside a single call: each line is `name = value,` (the final pair
// may end at the call's closing bracket), with an optional opening line
// that ends by opening the argument list. Requires at least two pairs.
func isKeywordArgs(tokens []token.Token) bool {
	lines := splitLines(tokens)
	pairs := 0
	for i, ln := range lines {
		switch {
		case isCloserLine(ln):
		case isKeywordPairLine(ln, i == len(lines)-1):
			pairs++
		case i == 0 && isOpenerLine(ln):
		default:
			return false
		}
	}
	return pairs >= 2
}

// splitLines groups a span's tokens by starting line, preserving order.
func splitLines(tokens []token.Token) [][]token.Token {
	var lines [][]token.Token
	line := 0
	for _, tk := range tokens {
		if tk.StartLine != line || len(lines) == 0 {
			line = tk.StartLine
			lines = append(lines, nil)
		}
		lines[len(lines)-1] = append(lines[len(lines)-1], tk)
	}
	return lines
}

// isCloserLine matches lines that only close an argument list, like `)` or `),`.
func isCloserLine(ln []token.Token) bool {
	for _, tk := range ln {
		switch tk.Text {
		case ")", "]", "}", ",", ";":
		default:
			return false
		}
	}
	return len(ln) > 0
}

// isKeywordPairLine matches `name = value` lines. A pair normally ends with
// a comma or the call's closing bracket; the span's final line may stop
// mid-list because windows cut on token boundaries.
func isKeywordPairLine(ln []token.Token, last bool) bool {
	if len(ln) < 3 {
		return false
	}
	if ln[0].Kind != token.KindIdentifier || ln[1].Text != "=" {
		return false
	}
	if last {
		return true
	}
	switch ln[len(ln)-1].Text {
	case ",", ")", "]", "}":
		return true
	default:
		return false
	}
}

// isOpenerLine matches a first line that opens the call's argument list,
// like `client = make_client(` or `request(`.
func isOpenerLine(ln []token.Token) bool {
	if len(ln) == 0 {
		return false
	}
	switch ln[len(ln)-1].Text {
	case "(", "[", "{":
		return true
	default:
		return false
	}
}
