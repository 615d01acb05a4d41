// Package magicnum flags numeric literals that should be named constants.
//
// The rule works on token streams, not syntax trees: a number token is a
// finding unless its value is on the allowed list or the surrounding
// tokens mark a constant definition. Unparseable literals (exotic suffix
// forms) are skipped rather than guessed at.
package magicnum

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/be-wise-be-kind/thailint/internal/lint"
	"github.com/be-wise-be-kind/thailint/internal/token"
)

// RuleID identifies the magic-number rule in reports.
const RuleID = "magic-numbers"

// constKeywords mark a line as a constant definition in some language.
// Final covers Python's typing.Final annotation.
var constKeywords = map[string]bool{
	"const": true,
	"final": true,
	"val":   true,
	"Final": true,
}

// Checker flags numeric literals outside the allowed set.
type Checker struct {
	allowed map[float64]bool
}

// NewChecker builds a checker. allowed lists values that never need a name
// (conventionally -1, 0, 1, 2 and round powers of ten).
func NewChecker(allowed []float64) *Checker {
	m := make(map[float64]bool, len(allowed))
	for _, n := range allowed {
		m[n] = true
	}
	return &Checker{allowed: m}
}

// Check scans one file's token stream and returns violations in source order.
func (c *Checker) Check(path string, tokens []token.Token) []lint.Violation {
	inConst := constRegions(tokens)

	var violations []lint.Violation
	for i, tok := range tokens {
		if tok.Kind != token.KindNumber {
			continue
		}
		value, ok := parseNumber(tok.Text)
		if !ok {
			continue
		}

		text := tok.Text
		if isUnaryMinus(tokens, i) {
			value = -value
			text = "-" + text
		}

		if c.allowed[value] || inConst[i] || constLine(tokens, i) {
			continue
		}

		violations = append(violations, lint.Violation{
			RuleID:     RuleID,
			FilePath:   path,
			Line:       tok.StartLine,
			Message:    fmt.Sprintf("magic number %s should be a named constant", text),
			Severity:   lint.SeverityWarning,
			Suggestion: fmt.Sprintf("Replace %s with a named constant that describes its meaning", text),
		})
	}
	return violations
}

// parseNumber evaluates a numeric literal. Base-prefixed integers (0x, 0o,
// 0b) and digit underscores are handled; a single trailing width/type
// suffix letter is tolerated.
func parseNumber(text string) (float64, bool) {
	if v, err := strconv.ParseInt(text, 0, 64); err == nil {
		return float64(v), true
	}
	if v, err := strconv.ParseFloat(text, 64); err == nil {
		return v, true
	}

	trimmed := strings.TrimRight(text, "fFlLuUdD")
	if trimmed == text || trimmed == "" {
		return 0, false
	}
	if v, err := strconv.ParseInt(trimmed, 0, 64); err == nil {
		return float64(v), true
	}
	if v, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return v, true
	}
	return 0, false
}

// isUnaryMinus reports whether the number at index i is negated. A minus is
// unary when nothing that could be a left operand precedes it.
func isUnaryMinus(tokens []token.Token, i int) bool {
	if i == 0 || tokens[i-1].Text != "-" {
		return false
	}
	if i == 1 {
		return true
	}
	switch tokens[i-2].Kind {
	case token.KindIdentifier, token.KindNumber, token.KindString:
		return false
	}
	return tokens[i-2].Text != ")" && tokens[i-2].Text != "]"
}

// constLine reports whether the number at index i sits on a line that
// defines a constant: a const/final/val keyword earlier on the line, or an
// ALL_CAPS name being assigned.
func constLine(tokens []token.Token, i int) bool {
	line := tokens[i].StartLine

	start := i
	for start > 0 && tokens[start-1].StartLine == line {
		start--
	}

	for j := start; j < i; j++ {
		if constKeywords[tokens[j].Text] {
			return true
		}
	}

	if tokens[start].Kind == token.KindIdentifier && isAllCaps(tokens[start].Text) && start+1 < i {
		next := tokens[start+1].Text
		if next == "=" || next == ":" {
			return true
		}
	}
	return false
}

// constRegions marks tokens inside a parenthesized const block
// (Go's `const ( ... )` form).
func constRegions(tokens []token.Token) []bool {
	inConst := make([]bool, len(tokens))
	depth := 0
	active := false
	for i, tok := range tokens {
		if active {
			inConst[i] = true
			switch tok.Text {
			case "(":
				depth++
			case ")":
				depth--
				if depth == 0 {
					active = false
				}
			}
			continue
		}
		if tok.Text == "const" && i+1 < len(tokens) && tokens[i+1].Text == "(" {
			active = true
			depth = 0
		}
	}
	return inConst
}

// isAllCaps reports whether name looks like a constant identifier:
// letters all upper case, digits and underscores allowed, at least one letter.
func isAllCaps(name string) bool {
	hasLetter := false
	for _, r := range name {
		switch {
		case r >= 'A' && r <= 'Z':
			hasLetter = true
		case r >= '0' && r <= '9', r == '_':
		default:
			return false
		}
	}
	return hasLetter
}
