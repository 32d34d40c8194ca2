package ast

import (
	"fmt"

	"github.com/lassejlv/cii/pkg/token"
)

// Builder helpers for constructing trees by hand. Every node built here
// reports line 1.

const dslLine = 1

var dslOperators = map[string]token.Kind{
	"-":   token.Minus,
	"+":   token.Plus,
	"/":   token.Slash,
	"*":   token.Star,
	"!":   token.Bang,
	"!=":  token.BangEqual,
	"==":  token.EqualEqual,
	">":   token.Greater,
	">=":  token.GreaterEqual,
	"<":   token.Less,
	"<=":  token.LessEqual,
	"and": token.And,
	"or":  token.Or,
}

func op(symbol string) token.Token {
	kind, ok := dslOperators[symbol]
	if !ok {
		panic(fmt.Sprintf("ast: unsupported operator %q", symbol))
	}
	return token.New(kind, symbol, dslLine)
}

func name(id string) token.Token {
	return token.Ident(id, dslLine)
}

// Literal helpers.

func Num(value float64) *Literal {
	return NewLiteral(value, dslLine)
}

func Str(value string) *Literal {
	return NewLiteral(value, dslLine)
}

func Bool(value bool) *Literal {
	return NewLiteral(value, dslLine)
}

func Nil() *Literal {
	return NewLiteral(nil, dslLine)
}

// Expression helpers.

func Ref(id string) *Variable {
	return NewVariable(name(id))
}

func AssignTo(id string, value Expr) *Assign {
	return NewAssign(name(id), value)
}

func Un(operator string, operand Expr) *Unary {
	return NewUnary(op(operator), operand)
}

func Bin(operator string, left, right Expr) *Binary {
	return NewBinary(left, op(operator), right)
}

func Group(inner Expr) *Grouping {
	return NewGrouping(inner, dslLine)
}

func And(left, right Expr) *Logical {
	return NewLogical(left, op("and"), right)
}

func Or(left, right Expr) *Logical {
	return NewLogical(left, op("or"), right)
}

func CallExpr(callee Expr, args ...Expr) *Call {
	return NewCall(callee, token.New(token.RightParen, ")", dslLine), args)
}

func CallNamed(id string, args ...Expr) *Call {
	return CallExpr(Ref(id), args...)
}

func Prop(object Expr, field string) *Get {
	return NewGet(object, name(field))
}

func SetProp(object Expr, field string, value Expr) *Set {
	return NewSet(object, name(field), value)
}

func Self() *This {
	return NewThis(token.New(token.This, "this", dslLine))
}

// Statement helpers.

func ExprStmt(expr Expr) *Expression {
	return NewExpression(expr)
}

func PrintStmt(expr Expr) *Print {
	return NewPrint(expr, dslLine)
}

func VarDecl(id string, initializer Expr) *Var {
	return NewVar(name(id), initializer)
}

func Scope(statements ...Stmt) *Block {
	return NewBlock(statements, dslLine)
}

func IfStmt(condition Expr, then, els Stmt) *If {
	return NewIf(condition, then, els, dslLine)
}

func Loop(condition Expr, body Stmt) *While {
	return NewWhile(condition, body, nil, dslLine)
}

func Fn(id string, params []string, body ...Stmt) *Function {
	tokens := make([]token.Token, 0, len(params))
	for _, p := range params {
		tokens = append(tokens, name(p))
	}
	return NewFunction(name(id), tokens, body)
}

func Ret(value Expr) *Return {
	return NewReturn(token.New(token.Return, "return", dslLine), value)
}

func ClassDecl(id string, methods ...*Function) *Class {
	return NewClass(name(id), methods)
}

func Brk() *Break {
	return NewBreak(token.New(token.Break, "break", dslLine))
}

func Cont() *Continue {
	return NewContinue(token.New(token.Continue, "continue", dslLine))
}

func Program(statements ...Stmt) []Stmt {
	return statements
}
