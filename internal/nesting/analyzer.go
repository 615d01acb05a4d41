//go:build cgo

package nesting

import (
	"context"
	"fmt"
	"slices"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/be-wise-be-kind/thailint/internal/token"
)

// jsFunctions and jsNesting cover the JavaScript grammar family; the
// TypeScript and TSX grammars reuse its node names.
var jsFunctions = []string{
	"function_declaration", "function_expression", "arrow_function",
	"method_definition", "generator_function_declaration",
}

var jsNesting = []string{
	"if_statement", "for_statement", "for_in_statement", "while_statement",
	"do_statement", "switch_statement", "try_statement",
}

// functionNodes lists the node types that open a function scope. Each gets
// its own nesting measurement.
var functionNodes = map[token.Language][]string{
	token.LangGo:         {"function_declaration", "method_declaration", "func_literal"},
	token.LangJavaScript: jsFunctions,
	token.LangTypeScript: jsFunctions,
	token.LangTSX:        jsFunctions,
	token.LangPython:     {"function_definition", "lambda"},
	token.LangRust:       {"function_item", "closure_expression"},
	token.LangJava:       {"method_declaration", "constructor_declaration", "lambda_expression"},
	token.LangKotlin:     {"function_declaration", "lambda_literal", "anonymous_function"},
}

// nestingNodes lists the node types that deepen nesting by one level.
var nestingNodes = map[token.Language][]string{
	token.LangGo: {
		"if_statement", "for_statement", "select_statement",
		"type_switch_statement", "expression_switch_statement",
	},
	token.LangJavaScript: jsNesting,
	token.LangTypeScript: jsNesting,
	token.LangTSX:        jsNesting,
	token.LangPython: {
		"if_statement", "for_statement", "while_statement",
		"try_statement", "with_statement", "match_statement",
	},
	token.LangRust: {
		"if_expression", "match_expression", "while_expression",
		"loop_expression", "for_expression",
	},
	token.LangJava: {
		"if_statement", "for_statement", "enhanced_for_statement",
		"while_statement", "do_statement", "switch_expression",
		"try_statement",
	},
	token.LangKotlin: {
		"if_expression", "when_expression", "for_statement",
		"while_statement", "do_while_statement", "try_expression",
	},
}

// anonymousNodes are function forms that never carry a declared name.
var anonymousNodes = map[string]bool{
	"arrow_function":      true,
	"function_expression": true,
	"func_literal":        true,
	"lambda":              true,
	"lambda_expression":   true,
	"closure_expression":  true,
	"lambda_literal":      true,
	"anonymous_function":  true,
}

// Analyzer measures function nesting depth via tree-sitter.
type Analyzer struct {
	parser *sitter.Parser
}

// NewAnalyzer creates a nesting analyzer. Analyzers are not safe for
// concurrent use; create one per worker.
func NewAnalyzer() *Analyzer {
	return &Analyzer{parser: sitter.NewParser()}
}

// Analyze parses source code and returns one result per function, in
// source order.
func (a *Analyzer) Analyze(ctx context.Context, source []byte, lang token.Language) ([]FunctionNesting, error) {
	grammar, err := token.Grammar(lang)
	if err != nil {
		return nil, err
	}

	a.parser.SetLanguage(grammar)
	tree, err := a.parser.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}

	fnTypes := functionNodes[lang]
	nestTypes := nestingNodes[lang]

	var results []FunctionNesting
	for _, fn := range collectNodes(tree.RootNode(), fnTypes) {
		results = append(results, FunctionNesting{
			Name:      functionName(fn, source),
			StartLine: int(fn.StartPoint().Row) + 1,
			EndLine:   int(fn.EndPoint().Row) + 1,
			MaxDepth:  maxDepth(fn, fnTypes, nestTypes, 0),
		})
	}
	return results, nil
}

// maxDepth tracks the deepest chain of nesting constructs under node.
// Child function nodes are boundaries: they get their own result, so the
// walk does not descend into them.
func maxDepth(node *sitter.Node, fnTypes, nestTypes []string, depth int) int {
	deepest := depth
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if child == nil || slices.Contains(fnTypes, child.Type()) {
			continue
		}
		childDepth := depth
		if slices.Contains(nestTypes, child.Type()) {
			childDepth++
		}
		if d := maxDepth(child, fnTypes, nestTypes, childDepth); d > deepest {
			deepest = d
		}
	}
	return deepest
}

// functionName extracts the declared name. The Kotlin grammar exposes no
// name field, so a missing field falls back to the first simple_identifier
// child; other grammars never produce one.
func functionName(node *sitter.Node, source []byte) string {
	name := node.ChildByFieldName("name")
	if name == nil {
		for i := 0; i < int(node.ChildCount()); i++ {
			child := node.Child(i)
			if child != nil && child.Type() == "simple_identifier" {
				name = child
				break
			}
		}
	}
	if name != nil {
		return string(source[name.StartByte():name.EndByte()])
	}
	if anonymousNodes[node.Type()] {
		return "<anonymous>"
	}
	return "<unknown>"
}

// collectNodes gathers all nodes of the given types in preorder.
func collectNodes(root *sitter.Node, types []string) []*sitter.Node {
	var found []*sitter.Node
	stack := []*sitter.Node{root}
	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if slices.Contains(types, node.Type()) {
			found = append(found, node)
		}
		for i := int(node.ChildCount()) - 1; i >= 0; i-- {
			if child := node.Child(i); child != nil {
				stack = append(stack, child)
			}
		}
	}
	return found
}

// IsAvailable reports whether the tree-sitter grammars were compiled in.
func IsAvailable() bool {
	return true
}
