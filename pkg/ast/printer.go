package ast

import (
	"fmt"
	"strconv"
	"strings"
)

// Sexpr renders a node as a parenthesised prefix expression, e.g.
// `(* (- 123) (group 45.67))`. It is used for debugging and parser tests.
func Sexpr(node Node) string {
	var b strings.Builder
	writeSexpr(&b, node)
	return b.String()
}

func writeSexpr(b *strings.Builder, node Node) {
	switch n := node.(type) {
	case nil:
		b.WriteString("<nil>")
	case *Literal:
		b.WriteString(literalText(n.Value))
	case *Variable:
		b.WriteString(n.Name.Lexeme)
	case *Assign:
		parenthesize(b, "= "+n.Name.Lexeme, n.Value)
	case *Unary:
		parenthesize(b, n.Operator.Lexeme, n.Operand)
	case *Binary:
		parenthesize(b, n.Operator.Lexeme, n.Left, n.Right)
	case *Logical:
		parenthesize(b, n.Operator.Lexeme, n.Left, n.Right)
	case *Grouping:
		parenthesize(b, "group", n.Inner)
	case *Call:
		nodes := append([]Node{n.Callee}, exprNodes(n.Arguments)...)
		parenthesize(b, "call", nodes...)
	case *Get:
		parenthesize(b, "."+n.Name.Lexeme, n.Object)
	case *Set:
		parenthesize(b, "set ."+n.Name.Lexeme, n.Object, n.Value)
	case *This:
		b.WriteString("this")
	case *Expression:
		writeSexpr(b, n.Expression)
	case *Print:
		parenthesize(b, "print", n.Expression)
	case *Var:
		if n.Initializer == nil {
			fmt.Fprintf(b, "(var %s)", n.Name.Lexeme)
			return
		}
		parenthesize(b, "var "+n.Name.Lexeme, n.Initializer)
	case *Block:
		parenthesize(b, "block", stmtNodes(n.Statements)...)
	case *If:
		if n.Else == nil {
			parenthesize(b, "if", n.Condition, n.Then)
			return
		}
		parenthesize(b, "if", n.Condition, n.Then, n.Else)
	case *While:
		if n.Increment == nil {
			parenthesize(b, "while", n.Condition, n.Body)
			return
		}
		parenthesize(b, "while", n.Condition, n.Body, n.Increment)
	case *Function:
		params := make([]string, 0, len(n.Params))
		for _, p := range n.Params {
			params = append(params, p.Lexeme)
		}
		head := fmt.Sprintf("fun %s (%s)", n.Name.Lexeme, strings.Join(params, " "))
		parenthesize(b, head, stmtNodes(n.Body)...)
	case *Return:
		if n.Value == nil {
			b.WriteString("(return)")
			return
		}
		parenthesize(b, "return", n.Value)
	case *Class:
		nodes := make([]Node, 0, len(n.Methods))
		for _, m := range n.Methods {
			nodes = append(nodes, m)
		}
		parenthesize(b, "class "+n.Name.Lexeme, nodes...)
	case *Break:
		b.WriteString("(break)")
	case *Continue:
		b.WriteString("(continue)")
	default:
		fmt.Fprintf(b, "<%s>", node.NodeType())
	}
}

func parenthesize(b *strings.Builder, head string, nodes ...Node) {
	b.WriteString("(")
	b.WriteString(head)
	for _, n := range nodes {
		b.WriteString(" ")
		writeSexpr(b, n)
	}
	b.WriteString(")")
}

func literalText(value any) string {
	switch v := value.(type) {
	case nil:
		return "nil"
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case string:
		return strconv.Quote(v)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

func exprNodes(exprs []Expr) []Node {
	out := make([]Node, 0, len(exprs))
	for _, e := range exprs {
		out = append(out, e)
	}
	return out
}

func stmtNodes(stmts []Stmt) []Node {
	out := make([]Node, 0, len(stmts))
	for _, s := range stmts {
		out = append(out, s)
	}
	return out
}
