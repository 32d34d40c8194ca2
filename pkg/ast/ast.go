package ast

import "github.com/lassejlv/cii/pkg/token"

type NodeType string

const (
	NodeLiteral    NodeType = "Literal"
	NodeVariable   NodeType = "Variable"
	NodeAssign     NodeType = "Assign"
	NodeUnary      NodeType = "Unary"
	NodeBinary     NodeType = "Binary"
	NodeGrouping   NodeType = "Grouping"
	NodeLogical    NodeType = "Logical"
	NodeCall       NodeType = "Call"
	NodeGet        NodeType = "Get"
	NodeSet        NodeType = "Set"
	NodeThis       NodeType = "This"
	NodeExpression NodeType = "Expression"
	NodePrint      NodeType = "Print"
	NodeVar        NodeType = "Var"
	NodeBlock      NodeType = "Block"
	NodeIf         NodeType = "If"
	NodeWhile      NodeType = "While"
	NodeFunction   NodeType = "Function"
	NodeReturn     NodeType = "Return"
	NodeClass      NodeType = "Class"
	NodeBreak      NodeType = "Break"
	NodeContinue   NodeType = "Continue"
)

// Node is implemented by every AST node. Nodes are always handled through
// pointers so that a node's address identifies it for the resolver.
type Node interface {
	NodeType() NodeType
	Line() int
	isNode()
}

type nodeImpl struct {
	Type NodeType
	Pos  int
}

func newNodeImpl(kind NodeType, line int) nodeImpl {
	return nodeImpl{Type: kind, Pos: line}
}

func (n nodeImpl) NodeType() NodeType { return n.Type }
func (n nodeImpl) Line() int          { return n.Pos }
func (nodeImpl) isNode()              {}

// Marker interfaces.

type Expr interface {
	Node
	exprNode()
}

type exprMarker struct{}

func (exprMarker) exprNode() {}

type Stmt interface {
	Node
	stmtNode()
}

type stmtMarker struct{}

func (stmtMarker) stmtNode() {}

// Literal carries a constant: float64, string, bool or nil.
type Literal struct {
	nodeImpl
	exprMarker

	Value any
}

func NewLiteral(value any, line int) *Literal {
	return &Literal{nodeImpl: newNodeImpl(NodeLiteral, line), Value: value}
}

type Variable struct {
	nodeImpl
	exprMarker

	Name token.Token
}

func NewVariable(name token.Token) *Variable {
	return &Variable{nodeImpl: newNodeImpl(NodeVariable, name.Line), Name: name}
}

type Assign struct {
	nodeImpl
	exprMarker

	Name  token.Token
	Value Expr
}

func NewAssign(name token.Token, value Expr) *Assign {
	return &Assign{nodeImpl: newNodeImpl(NodeAssign, name.Line), Name: name, Value: value}
}

type Unary struct {
	nodeImpl
	exprMarker

	Operator token.Token
	Operand  Expr
}

func NewUnary(operator token.Token, operand Expr) *Unary {
	return &Unary{nodeImpl: newNodeImpl(NodeUnary, operator.Line), Operator: operator, Operand: operand}
}

type Binary struct {
	nodeImpl
	exprMarker

	Left     Expr
	Operator token.Token
	Right    Expr
}

func NewBinary(left Expr, operator token.Token, right Expr) *Binary {
	return &Binary{nodeImpl: newNodeImpl(NodeBinary, operator.Line), Left: left, Operator: operator, Right: right}
}

type Grouping struct {
	nodeImpl
	exprMarker

	Inner Expr
}

func NewGrouping(inner Expr, line int) *Grouping {
	return &Grouping{nodeImpl: newNodeImpl(NodeGrouping, line), Inner: inner}
}

// Logical is a short-circuiting `and` / `or`.
type Logical struct {
	nodeImpl
	exprMarker

	Left     Expr
	Operator token.Token
	Right    Expr
}

func NewLogical(left Expr, operator token.Token, right Expr) *Logical {
	return &Logical{nodeImpl: newNodeImpl(NodeLogical, operator.Line), Left: left, Operator: operator, Right: right}
}

type Call struct {
	nodeImpl
	exprMarker

	Callee    Expr
	Paren     token.Token
	Arguments []Expr
}

func NewCall(callee Expr, paren token.Token, args []Expr) *Call {
	return &Call{nodeImpl: newNodeImpl(NodeCall, paren.Line), Callee: callee, Paren: paren, Arguments: args}
}

type Get struct {
	nodeImpl
	exprMarker

	Object Expr
	Name   token.Token
}

func NewGet(object Expr, name token.Token) *Get {
	return &Get{nodeImpl: newNodeImpl(NodeGet, name.Line), Object: object, Name: name}
}

type Set struct {
	nodeImpl
	exprMarker

	Object Expr
	Name   token.Token
	Value  Expr
}

func NewSet(object Expr, name token.Token, value Expr) *Set {
	return &Set{nodeImpl: newNodeImpl(NodeSet, name.Line), Object: object, Name: name, Value: value}
}

type This struct {
	nodeImpl
	exprMarker

	Keyword token.Token
}

func NewThis(keyword token.Token) *This {
	return &This{nodeImpl: newNodeImpl(NodeThis, keyword.Line), Keyword: keyword}
}
