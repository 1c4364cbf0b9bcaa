package tung

import (
	"fmt"
	"strings"
)

// NodeKind labels a parse tree node. Binary-chain kinds (Logical, Comparison,
// Sum, Term) encode operator precedence through nesting.
type NodeKind int

const (
	NodeProgram NodeKind = iota
	NodeBlock
	NodeVarDecl
	NodeAssign
	NodeAugAssign
	NodePrint
	NodeExprStmt
	NodeIf
	NodeElif
	NodeElse
	NodeWhile

	NodeExpression
	NodeLogical
	NodeComparison
	NodeSum
	NodeTerm
	NodeUnary
	NodeOperator
	NodeNumber
	NodeString
	NodeBoolean
	NodeIdentifier
	NodeCall
	NodeArray
	NodeDict
	NodeDictEntry
	NodeIndex
)

var nodeKindNames = [...]string{
	NodeProgram:    "Program",
	NodeBlock:      "Block",
	NodeVarDecl:    "VarDecl",
	NodeAssign:     "Assign",
	NodeAugAssign:  "AugAssign",
	NodePrint:      "Print",
	NodeExprStmt:   "ExprStmt",
	NodeIf:         "If",
	NodeElif:       "Elif",
	NodeElse:       "Else",
	NodeWhile:      "While",
	NodeExpression: "Expression",
	NodeLogical:    "Logical",
	NodeComparison: "Comparison",
	NodeSum:        "Sum",
	NodeTerm:       "Term",
	NodeUnary:      "Unary",
	NodeOperator:   "Operator",
	NodeNumber:     "Number",
	NodeString:     "String",
	NodeBoolean:    "Boolean",
	NodeIdentifier: "Identifier",
	NodeCall:       "Call",
	NodeArray:      "Array",
	NodeDict:       "Dict",
	NodeDictEntry:  "DictEntry",
	NodeIndex:      "Index",
}

func (k NodeKind) String() string {
	if int(k) >= 0 && int(k) < len(nodeKindNames) && nodeKindNames[k] != "" {
		return nodeKindNames[k]
	}
	return fmt.Sprintf("NodeKind(%d)", int(k))
}

// Span locates a node in the source text.
type Span struct {
	Offset int
	Length int
	Line   int
	Column int
}

func (s Span) Pos() Position {
	return Position{Line: s.Line, Column: s.Column}
}

// Node is one labeled parse tree node.
type Node struct {
	Kind     NodeKind
	Text     string
	Span     Span
	Children []*Node
}

func newNode(kind NodeKind, text string, span Span, children ...*Node) *Node {
	return &Node{Kind: kind, Text: text, Span: span, Children: children}
}

// Child returns the i-th child or nil.
func (n *Node) Child(i int) *Node {
	if n == nil || i < 0 || i >= len(n.Children) {
		return nil
	}
	return n.Children[i]
}

// Source returns the slice of source the node spans.
func (n *Node) Source(source string) string {
	end := n.Span.Offset + n.Span.Length
	if n.Span.Offset < 0 || end > len(source) || end < n.Span.Offset {
		return ""
	}
	return source[n.Span.Offset:end]
}

// Dump renders the tree as an indented outline, one node per line.
func (n *Node) Dump() string {
	var b strings.Builder
	n.dump(&b, 0)
	return b.String()
}

func (n *Node) dump(b *strings.Builder, depth int) {
	b.WriteString(strings.Repeat("  ", depth))
	b.WriteString(n.Kind.String())
	if n.Text != "" {
		fmt.Fprintf(b, " %s", n.Text)
	}
	b.WriteByte('\n')
	for _, child := range n.Children {
		child.dump(b, depth+1)
	}
}

// spanning returns a span that covers from the start of first to the end of
// last.
func spanning(first, last Span) Span {
	end := last.Offset + last.Length
	if end < first.Offset {
		end = first.Offset + first.Length
	}
	return Span{Offset: first.Offset, Length: end - first.Offset, Line: first.Line, Column: first.Column}
}
