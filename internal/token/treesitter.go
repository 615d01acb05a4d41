//go:build cgo

package token

import (
	"context"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/golang"
	"github.com/smacker/go-tree-sitter/java"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/kotlin"
	"github.com/smacker/go-tree-sitter/python"
	"github.com/smacker/go-tree-sitter/rust"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
)

// Tokenizer produces token streams via tree-sitter. Not safe for concurrent
// use; create one per worker.
type Tokenizer struct {
	parser *sitter.Parser
}

// NewTokenizer creates a new tree-sitter tokenizer.
func NewTokenizer() *Tokenizer {
	return &Tokenizer{
		parser: sitter.NewParser(),
	}
}

// Tokenize parses source and returns its tokens in source order. Comments
// and whitespace are omitted. Tokenization is deterministic: identical
// source always yields an identical stream.
func (t *Tokenizer) Tokenize(ctx context.Context, source []byte, lang Language) ([]Token, error) {
	tsLang, err := Grammar(lang)
	if err != nil {
		return nil, err
	}

	t.parser.SetLanguage(tsLang)
	tree, err := t.parser.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}

	tokens := make([]Token, 0, len(source)/8)
	collectTokens(tree.RootNode(), source, &tokens)
	return tokens, nil
}

// Grammar returns the tree-sitter grammar for a language.
func Grammar(lang Language) (*sitter.Language, error) {
	switch lang {
	case LangGo:
		return golang.GetLanguage(), nil
	case LangJavaScript:
		return javascript.GetLanguage(), nil
	case LangTypeScript:
		return typescript.GetLanguage(), nil
	case LangTSX:
		return tsx.GetLanguage(), nil
	case LangPython:
		return python.GetLanguage(), nil
	case LangRust:
		return rust.GetLanguage(), nil
	case LangJava:
		return java.GetLanguage(), nil
	case LangKotlin:
		return kotlin.GetLanguage(), nil
	default:
		return nil, fmt.Errorf("unsupported language: %s", lang)
	}
}

func collectTokens(node *sitter.Node, source []byte, out *[]Token) {
	if node == nil {
		return
	}

	typ := node.Type()
	if strings.Contains(typ, "comment") {
		return
	}

	// String-like nodes are emitted whole: several grammars do not expose
	// the literal's content as a child node, so descending would lose it.
	if node.ChildCount() == 0 || isStringType(typ) {
		text := string(source[node.StartByte():node.EndByte()])
		if strings.TrimSpace(text) == "" {
			return
		}
		*out = append(*out, Token{
			Kind:      classify(typ, text),
			Text:      text,
			StartLine: int(node.StartPoint().Row) + 1,
			EndLine:   int(node.EndPoint().Row) + 1,
			StartCol:  int(node.StartPoint().Column),
		})
		return
	}

	for i := uint32(0); i < node.ChildCount(); i++ {
		collectTokens(node.Child(int(i)), source, out)
	}
}

// importKeywords are keyword leaves that begin an import-family statement.
// Anonymous keyword leaves have their text as the node type, so an
// identifier that happens to be named "import" does not match.
var importKeywords = map[string]bool{
	"import":  true,
	"from":    true,
	"use":     true,
	"include": true,
	"require": true,
}

var punctTypes = map[string]bool{
	"(": true, ")": true, "[": true, "]": true, "{": true, "}": true,
	",": true, ";": true, ":": true, ".": true,
}

func classify(typ, text string) Kind {
	switch {
	case importKeywords[typ] && typ == text:
		return KindImport
	case strings.Contains(typ, "identifier"):
		return KindIdentifier
	case isStringType(typ):
		return KindString
	case isNumberType(typ):
		return KindNumber
	case punctTypes[typ]:
		return KindPunct
	case !isWordByte(text[0]):
		return KindOperator
	case typ == text:
		return KindKeyword
	default:
		return KindOther
	}
}

func isStringType(typ string) bool {
	switch typ {
	case "rune_literal", "char_literal", "character_literal":
		return true
	}
	return strings.Contains(typ, "string")
}

func isNumberType(typ string) bool {
	switch typ {
	case "int_literal", "float_literal", "imaginary_literal",
		"number", "integer", "float", "real_literal", "long_literal":
		return true
	}
	return strings.Contains(typ, "integer_literal") ||
		strings.Contains(typ, "floating_point_literal") ||
		strings.Contains(typ, "number_literal")
}

func isWordByte(b byte) bool {
	return b == '_' || b >= 0x80 ||
		(b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}

// IsAvailable reports whether the tree-sitter grammars were compiled in.
func IsAvailable() bool {
	return true
}
