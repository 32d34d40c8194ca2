package ast

import (
	"testing"

	"github.com/lassejlv/cii/pkg/token"
)

func TestSexprNestedExpression(t *testing.T) {
	expr := NewBinary(
		NewUnary(token.New(token.Minus, "-", 1), Num(123)),
		token.New(token.Star, "*", 1),
		Group(Num(45.67)),
	)
	if got, want := Sexpr(expr), "(* (- 123) (group 45.67))"; got != want {
		t.Fatalf("Sexpr = %q, want %q", got, want)
	}
}

func TestSexprStatements(t *testing.T) {
	fn := Fn("add", []string{"a", "b"}, Ret(Bin("+", Ref("a"), Ref("b"))))
	if got, want := Sexpr(fn), "(fun add (a b) (return (+ a b)))"; got != want {
		t.Fatalf("Sexpr = %q, want %q", got, want)
	}

	loop := Loop(Bin("<", Ref("i"), Num(3)), Scope(PrintStmt(Ref("i")), Brk()))
	if got, want := Sexpr(loop), "(while (< i 3) (block (print i) (break)))"; got != want {
		t.Fatalf("Sexpr = %q, want %q", got, want)
	}

	decl := VarDecl("greeting", Str("hi"))
	if got, want := Sexpr(decl), `(var greeting "hi")`; got != want {
		t.Fatalf("Sexpr = %q, want %q", got, want)
	}
}

func TestNodeIdentityIsPointerIdentity(t *testing.T) {
	a := Ref("x")
	b := Ref("x")
	table := map[Expr]int{a: 0, b: 1}
	if len(table) != 2 {
		t.Fatalf("expected structurally equal nodes to stay distinct keys, got %d entries", len(table))
	}
	if table[a] != 0 || table[b] != 1 {
		t.Fatalf("unexpected lookups: %v", table)
	}
}
