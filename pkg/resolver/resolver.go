package resolver

import (
	"fmt"
	"strings"

	"github.com/lassejlv/cii/pkg/ast"
)

// Locals maps a variable reference (by node identity) to the number of
// enclosing frames between its use and its declaration. References that are
// absent are globals and are looked up dynamically.
type Locals map[ast.Expr]int

// Merge copies every entry of other into l.
func (l Locals) Merge(other Locals) {
	for expr, distance := range other {
		l[expr] = distance
	}
}

// Diagnostic is a static scoping error found while resolving.
type Diagnostic struct {
	Message string
	Line    int
	Node    ast.Node
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("[line %d] %s", d.Line, d.Message)
}

// Error aggregates every diagnostic reported for one program.
type Error struct {
	Diagnostics []Diagnostic
}

func (e *Error) Error() string {
	if len(e.Diagnostics) == 1 {
		return e.Diagnostics[0].String()
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d resolution errors:", len(e.Diagnostics))
	for _, d := range e.Diagnostics {
		b.WriteString("\n- ")
		b.WriteString(d.String())
	}
	return b.String()
}

type functionKind int

const (
	functionNone functionKind = iota
	functionPlain
	functionMethod
	functionInitializer
)

type classKind int

const (
	classNone classKind = iota
	classPlain
)

// Resolver walks a program once, recording binding distances. It visits the
// whole tree even after an error so that every diagnostic is reported.
type Resolver struct {
	scopes          []map[string]bool
	locals          Locals
	diagnostics     []Diagnostic
	currentFunction functionKind
	currentClass    classKind
	loopDepth       int
}

// New returns a resolver instance.
func New() *Resolver {
	return &Resolver{}
}

// Resolve computes the binding table for stmts. The table is returned even
// when diagnostics were reported; the error is then a *Error.
func (r *Resolver) Resolve(stmts []ast.Stmt) (Locals, error) {
	r.scopes = nil
	r.locals = make(Locals)
	r.diagnostics = nil
	r.currentFunction = functionNone
	r.currentClass = classNone
	r.loopDepth = 0

	r.resolveStatements(stmts)

	if len(r.diagnostics) > 0 {
		return r.locals, &Error{Diagnostics: r.diagnostics}
	}
	return r.locals, nil
}

func (r *Resolver) resolveStatements(stmts []ast.Stmt) {
	for _, stmt := range stmts {
		r.resolveStatement(stmt)
	}
}

func (r *Resolver) resolveStatement(node ast.Stmt) {
	switch n := node.(type) {
	case *ast.Block:
		r.beginScope()
		r.resolveStatements(n.Statements)
		r.endScope()
	case *ast.Var:
		r.declare(n.Name.Lexeme)
		if n.Initializer != nil {
			r.resolveExpression(n.Initializer)
		}
		r.define(n.Name.Lexeme)
	case *ast.Function:
		r.declare(n.Name.Lexeme)
		r.define(n.Name.Lexeme)
		r.resolveFunction(n, functionPlain)
	case *ast.Class:
		r.resolveClass(n)
	case *ast.Expression:
		r.resolveExpression(n.Expression)
	case *ast.Print:
		r.resolveExpression(n.Expression)
	case *ast.If:
		r.resolveExpression(n.Condition)
		r.resolveStatement(n.Then)
		if n.Else != nil {
			r.resolveStatement(n.Else)
		}
	case *ast.While:
		r.resolveExpression(n.Condition)
		r.loopDepth++
		r.resolveStatement(n.Body)
		r.loopDepth--
		if n.Increment != nil {
			r.resolveExpression(n.Increment)
		}
	case *ast.Return:
		if r.currentFunction == functionNone {
			r.report(n, "Can't return from top-level code.")
		}
		if n.Value != nil {
			if r.currentFunction == functionInitializer {
				r.report(n, "Can't return a value from an initializer.")
			}
			r.resolveExpression(n.Value)
		}
	case *ast.Break:
		if r.loopDepth == 0 {
			r.report(n, "Can't use 'break' outside of a loop.")
		}
	case *ast.Continue:
		if r.loopDepth == 0 {
			r.report(n, "Can't use 'continue' outside of a loop.")
		}
	default:
		panic(fmt.Sprintf("resolver: unsupported statement %T", node))
	}
}

func (r *Resolver) resolveClass(class *ast.Class) {
	enclosingClass := r.currentClass
	r.currentClass = classPlain
	defer func() { r.currentClass = enclosingClass }()

	r.declare(class.Name.Lexeme)
	r.define(class.Name.Lexeme)

	r.beginScope()
	r.scopes[len(r.scopes)-1]["this"] = true
	for _, method := range class.Methods {
		kind := functionMethod
		if method.Name.Lexeme == "init" {
			kind = functionInitializer
		}
		r.resolveFunction(method, kind)
	}
	r.endScope()
}

// resolveFunction opens one scope for the parameters and resolves the body in
// that same scope, matching the single frame a call creates at run time.
func (r *Resolver) resolveFunction(fn *ast.Function, kind functionKind) {
	enclosingFunction := r.currentFunction
	enclosingLoop := r.loopDepth
	r.currentFunction = kind
	r.loopDepth = 0

	r.beginScope()
	for _, param := range fn.Params {
		r.declare(param.Lexeme)
		r.define(param.Lexeme)
	}
	r.resolveStatements(fn.Body)
	r.endScope()

	r.currentFunction = enclosingFunction
	r.loopDepth = enclosingLoop
}

func (r *Resolver) resolveExpression(node ast.Expr) {
	switch n := node.(type) {
	case *ast.Literal:
	case *ast.Variable:
		if len(r.scopes) > 0 {
			if ready, ok := r.scopes[len(r.scopes)-1][n.Name.Lexeme]; ok && !ready {
				r.report(n, "Can't read local variable in its own initializer.")
			}
		}
		r.resolveLocal(n, n.Name.Lexeme)
	case *ast.Assign:
		r.resolveExpression(n.Value)
		r.resolveLocal(n, n.Name.Lexeme)
	case *ast.Unary:
		r.resolveExpression(n.Operand)
	case *ast.Binary:
		r.resolveExpression(n.Left)
		r.resolveExpression(n.Right)
	case *ast.Logical:
		r.resolveExpression(n.Left)
		r.resolveExpression(n.Right)
	case *ast.Grouping:
		r.resolveExpression(n.Inner)
	case *ast.Call:
		r.resolveExpression(n.Callee)
		for _, arg := range n.Arguments {
			r.resolveExpression(arg)
		}
	case *ast.Get:
		r.resolveExpression(n.Object)
	case *ast.Set:
		r.resolveExpression(n.Value)
		r.resolveExpression(n.Object)
	case *ast.This:
		if r.currentClass == classNone {
			r.report(n, "Can't use 'this' outside of a class.")
			return
		}
		r.resolveLocal(n, "this")
	default:
		panic(fmt.Sprintf("resolver: unsupported expression %T", node))
	}
}

// resolveLocal records the distance to the innermost scope declaring name.
// Names found in no scope are left for dynamic lookup.
func (r *Resolver) resolveLocal(expr ast.Expr, name string) {
	depth := len(r.scopes)
	for i := depth - 1; i >= 0; i-- {
		if _, ok := r.scopes[i][name]; ok {
			r.locals[expr] = depth - 1 - i
			return
		}
	}
}

func (r *Resolver) beginScope() {
	r.scopes = append(r.scopes, make(map[string]bool))
}

func (r *Resolver) endScope() {
	if len(r.scopes) == 0 {
		panic("resolver: scope stack underflow")
	}
	r.scopes = r.scopes[:len(r.scopes)-1]
}

func (r *Resolver) declare(name string) {
	if len(r.scopes) == 0 {
		return
	}
	r.scopes[len(r.scopes)-1][name] = false
}

func (r *Resolver) define(name string) {
	if len(r.scopes) == 0 {
		return
	}
	r.scopes[len(r.scopes)-1][name] = true
}

func (r *Resolver) report(node ast.Node, message string) {
	r.diagnostics = append(r.diagnostics, Diagnostic{Message: message, Line: node.Line(), Node: node})
}
