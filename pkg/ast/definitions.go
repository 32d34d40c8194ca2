package ast

import "github.com/lassejlv/cii/pkg/token"

// Statements

type Expression struct {
	nodeImpl
	stmtMarker

	Expression Expr
}

func NewExpression(expr Expr) *Expression {
	return &Expression{nodeImpl: newNodeImpl(NodeExpression, expr.Line()), Expression: expr}
}

type Print struct {
	nodeImpl
	stmtMarker

	Expression Expr
}

func NewPrint(expr Expr, line int) *Print {
	return &Print{nodeImpl: newNodeImpl(NodePrint, line), Expression: expr}
}

// Var declares a name in the current scope. A nil Initializer binds nil.
type Var struct {
	nodeImpl
	stmtMarker

	Name        token.Token
	Initializer Expr
}

func NewVar(name token.Token, initializer Expr) *Var {
	return &Var{nodeImpl: newNodeImpl(NodeVar, name.Line), Name: name, Initializer: initializer}
}

type Block struct {
	nodeImpl
	stmtMarker

	Statements []Stmt
}

func NewBlock(statements []Stmt, line int) *Block {
	return &Block{nodeImpl: newNodeImpl(NodeBlock, line), Statements: statements}
}

type If struct {
	nodeImpl
	stmtMarker

	Condition Expr
	Then      Stmt
	Else      Stmt
}

func NewIf(condition Expr, then, els Stmt, line int) *If {
	return &If{nodeImpl: newNodeImpl(NodeIf, line), Condition: condition, Then: then, Else: els}
}

// While loops while Condition is truthy. Increment is set for desugared `for`
// loops and runs after every iteration, including one cut short by continue.
type While struct {
	nodeImpl
	stmtMarker

	Condition Expr
	Body      Stmt
	Increment Expr
}

func NewWhile(condition Expr, body Stmt, increment Expr, line int) *While {
	return &While{nodeImpl: newNodeImpl(NodeWhile, line), Condition: condition, Body: body, Increment: increment}
}

type Function struct {
	nodeImpl
	stmtMarker

	Name   token.Token
	Params []token.Token
	Body   []Stmt
}

func NewFunction(name token.Token, params []token.Token, body []Stmt) *Function {
	return &Function{nodeImpl: newNodeImpl(NodeFunction, name.Line), Name: name, Params: params, Body: body}
}

// Return carries an optional value; a nil Value returns nil.
type Return struct {
	nodeImpl
	stmtMarker

	Keyword token.Token
	Value   Expr
}

func NewReturn(keyword token.Token, value Expr) *Return {
	return &Return{nodeImpl: newNodeImpl(NodeReturn, keyword.Line), Keyword: keyword, Value: value}
}

type Class struct {
	nodeImpl
	stmtMarker

	Name    token.Token
	Methods []*Function
}

func NewClass(name token.Token, methods []*Function) *Class {
	return &Class{nodeImpl: newNodeImpl(NodeClass, name.Line), Name: name, Methods: methods}
}

type Break struct {
	nodeImpl
	stmtMarker

	Keyword token.Token
}

func NewBreak(keyword token.Token) *Break {
	return &Break{nodeImpl: newNodeImpl(NodeBreak, keyword.Line), Keyword: keyword}
}

type Continue struct {
	nodeImpl
	stmtMarker

	Keyword token.Token
}

func NewContinue(keyword token.Token) *Continue {
	return &Continue{nodeImpl: newNodeImpl(NodeContinue, keyword.Line), Keyword: keyword}
}
