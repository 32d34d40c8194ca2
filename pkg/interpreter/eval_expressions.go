package interpreter

import (
	"fmt"

	"github.com/lassejlv/cii/pkg/ast"
	"github.com/lassejlv/cii/pkg/runtime"
	"github.com/lassejlv/cii/pkg/token"
)

func (i *Interpreter) evaluate(node ast.Expr, env *runtime.Environment) (runtime.Value, error) {
	switch n := node.(type) {
	case *ast.Literal:
		return literalValue(n.Value), nil
	case *ast.Grouping:
		return i.evaluate(n.Inner, env)
	case *ast.Variable:
		return i.lookUpVariable(n.Name, n, env)
	case *ast.Assign:
		return i.evaluateAssign(n, env)
	case *ast.Unary:
		return i.evaluateUnary(n, env)
	case *ast.Binary:
		return i.evaluateBinary(n, env)
	case *ast.Logical:
		return i.evaluateLogical(n, env)
	case *ast.Call:
		return i.evaluateCall(n, env)
	case *ast.Get:
		return i.evaluateGet(n, env)
	case *ast.Set:
		return i.evaluateSet(n, env)
	case *ast.This:
		return i.lookUpVariable(n.Keyword, n, env)
	default:
		panic(fmt.Sprintf("interpreter: unsupported expression type %s", node.NodeType()))
	}
}

func literalValue(value any) runtime.Value {
	switch v := value.(type) {
	case nil:
		return runtime.Nil
	case float64:
		return runtime.NumberValue{Val: v}
	case string:
		return runtime.NewString(v)
	case bool:
		return runtime.Bool(v)
	case runtime.Value:
		return v
	default:
		panic(fmt.Sprintf("interpreter: unsupported literal %T", value))
	}
}

//-----------------------------------------------------------------------------
// Variables
//-----------------------------------------------------------------------------

// lookUpVariable reads a resolved local at its recorded distance. Unresolved
// references are globals, or, when running without resolution, are found by
// walking outward from env.
func (i *Interpreter) lookUpVariable(name token.Token, expr ast.Expr, env *runtime.Environment) (runtime.Value, error) {
	var (
		val runtime.Value
		ok  bool
	)
	if distance, resolved := i.locals[expr]; resolved {
		val, ok = env.GetAt(distance, name.Lexeme)
	} else {
		val, ok = i.unresolvedScope(env).Get(name.Lexeme)
	}
	if !ok {
		return nil, &UndeclaredVariableError{Position: Position{SourceLine: name.Line}, Name: name.Lexeme}
	}
	return val, nil
}

func (i *Interpreter) evaluateAssign(assign *ast.Assign, env *runtime.Environment) (runtime.Value, error) {
	val, err := i.evaluate(assign.Value, env)
	if err != nil {
		return nil, err
	}
	name := assign.Name.Lexeme
	if distance, resolved := i.locals[assign]; resolved {
		env.AssignAt(distance, name, val)
		return val, nil
	}
	if !i.unresolvedScope(env).Assign(name, val) {
		return nil, &UndeclaredVariableError{Position: Position{SourceLine: assign.Line()}, Name: name}
	}
	return val, nil
}

func (i *Interpreter) unresolvedScope(env *runtime.Environment) *runtime.Environment {
	if i.dynamic {
		return env
	}
	return i.globals
}

//-----------------------------------------------------------------------------
// Operators
//-----------------------------------------------------------------------------

func (i *Interpreter) evaluateUnary(expr *ast.Unary, env *runtime.Environment) (runtime.Value, error) {
	operand, err := i.evaluate(expr.Operand, env)
	if err != nil {
		return nil, err
	}
	switch expr.Operator.Kind {
	case token.Minus:
		num, ok := operand.(runtime.NumberValue)
		if !ok {
			return nil, &TypeError{
				Position: Position{SourceLine: expr.Line()},
				Case:     OperandNotNumber,
				Operator: expr.Operator.Lexeme,
				Operands: []string{runtime.TypeName(operand)},
			}
		}
		return runtime.NumberValue{Val: -num.Val}, nil
	case token.Bang:
		return runtime.IsFalsy(operand), nil
	default:
		panic(fmt.Sprintf("interpreter: unsupported unary operator %s", expr.Operator.Lexeme))
	}
}

func (i *Interpreter) evaluateBinary(expr *ast.Binary, env *runtime.Environment) (runtime.Value, error) {
	left, err := i.evaluate(expr.Left, env)
	if err != nil {
		return nil, err
	}
	right, err := i.evaluate(expr.Right, env)
	if err != nil {
		return nil, err
	}

	switch expr.Operator.Kind {
	case token.EqualEqual:
		return runtime.Bool(runtime.Equal(left, right)), nil
	case token.BangEqual:
		return runtime.Bool(!runtime.Equal(left, right)), nil
	}

	ln, lNum := left.(runtime.NumberValue)
	rn, rNum := right.(runtime.NumberValue)
	if lNum && rNum {
		return numericBinary(expr.Operator, ln.Val, rn.Val), nil
	}

	ls, lStr := left.(runtime.StringValue)
	rs, rStr := right.(runtime.StringValue)
	if lStr && rStr {
		switch expr.Operator.Kind {
		case token.Plus:
			return runtime.Concat(ls, rs), nil
		case token.Greater, token.GreaterEqual, token.Less, token.LessEqual:
			return stringComparison(expr.Operator, ls.Text(), rs.Text()), nil
		default:
			return nil, binaryTypeError(expr, OperandsNotNumbers, left, right)
		}
	}

	if (lNum && rStr) || (lStr && rNum) {
		return nil, binaryTypeError(expr, NumberStringMix, left, right)
	}
	switch expr.Operator.Kind {
	case token.Plus:
		return nil, binaryTypeError(expr, OperandsNotAddable, left, right)
	case token.Greater, token.GreaterEqual, token.Less, token.LessEqual:
		return nil, binaryTypeError(expr, OperandsNotComparable, left, right)
	default:
		return nil, binaryTypeError(expr, OperandsNotNumbers, left, right)
	}
}

func numericBinary(op token.Token, a, b float64) runtime.Value {
	switch op.Kind {
	case token.Plus:
		return runtime.NumberValue{Val: a + b}
	case token.Minus:
		return runtime.NumberValue{Val: a - b}
	case token.Star:
		return runtime.NumberValue{Val: a * b}
	case token.Slash:
		return runtime.NumberValue{Val: a / b}
	case token.Greater:
		return runtime.Bool(a > b)
	case token.GreaterEqual:
		return runtime.Bool(a >= b)
	case token.Less:
		return runtime.Bool(a < b)
	case token.LessEqual:
		return runtime.Bool(a <= b)
	default:
		panic(fmt.Sprintf("interpreter: unsupported binary operator %s", op.Lexeme))
	}
}

func stringComparison(op token.Token, a, b string) runtime.Value {
	switch op.Kind {
	case token.Greater:
		return runtime.Bool(a > b)
	case token.GreaterEqual:
		return runtime.Bool(a >= b)
	case token.Less:
		return runtime.Bool(a < b)
	default:
		return runtime.Bool(a <= b)
	}
}

func binaryTypeError(expr *ast.Binary, kind TypeErrorCase, left, right runtime.Value) *TypeError {
	return &TypeError{
		Position: Position{SourceLine: expr.Line()},
		Case:     kind,
		Operator: expr.Operator.Lexeme,
		Operands: []string{runtime.TypeName(left), runtime.TypeName(right)},
	}
}

// evaluateLogical short-circuits and yields the operand that decided the
// result, not a coerced boolean.
func (i *Interpreter) evaluateLogical(expr *ast.Logical, env *runtime.Environment) (runtime.Value, error) {
	left, err := i.evaluate(expr.Left, env)
	if err != nil {
		return nil, err
	}
	if expr.Operator.Kind == token.Or {
		if runtime.IsTruthy(left) {
			return left, nil
		}
	} else if !runtime.IsTruthy(left) {
		return left, nil
	}
	return i.evaluate(expr.Right, env)
}

//-----------------------------------------------------------------------------
// Calls
//-----------------------------------------------------------------------------

func (i *Interpreter) evaluateCall(call *ast.Call, env *runtime.Environment) (runtime.Value, error) {
	callee, err := i.evaluate(call.Callee, env)
	if err != nil {
		return nil, err
	}
	args := make([]runtime.Value, 0, len(call.Arguments))
	for _, arg := range call.Arguments {
		val, err := i.evaluate(arg, env)
		if err != nil {
			return nil, err
		}
		args = append(args, val)
	}

	pos := Position{SourceLine: call.Line()}
	fn, ok := callee.(runtime.Callable)
	if !ok {
		return nil, &TypeError{Position: pos, Case: NotCallable, Operands: []string{runtime.TypeName(callee)}}
	}
	if len(args) != fn.Arity() {
		return nil, &ArityError{Position: pos, Callee: runtime.ToDisplayString(fn), Expected: fn.Arity(), Got: len(args)}
	}

	if i.maxCallDepth > 0 && i.callDepth >= i.maxCallDepth {
		return nil, &StackOverflowError{Position: pos, Depth: i.maxCallDepth}
	}
	i.callDepth++
	defer func() { i.callDepth-- }()

	switch c := fn.(type) {
	case *runtime.FunctionValue:
		return i.callFunction(c, args)
	case *runtime.NativeFunctionValue:
		val, err := c.Impl(args)
		if err != nil {
			return nil, &NativeError{Position: pos, Name: c.Name(), Err: err}
		}
		return val, nil
	case *runtime.ClassValue:
		return i.instantiate(c, args)
	default:
		return nil, &TypeError{Position: pos, Case: NotCallable, Operands: []string{runtime.TypeName(callee)}}
	}
}

// callFunction runs the body in a fresh frame enclosing the function's
// closure. The frame outlives the call if anything captured it.
func (i *Interpreter) callFunction(fn *runtime.FunctionValue, args []runtime.Value) (runtime.Value, error) {
	env := fn.Closure.Enclose()
	for idx, param := range fn.Declaration.Params {
		env.Define(param.Lexeme, args[idx])
	}

	c, err := i.executeStatements(fn.Declaration.Body, env)
	if err != nil {
		return nil, err
	}
	switch c.kind {
	case completionBreak, completionContinue:
		return nil, &ControlFlowError{
			Position: Position{SourceLine: fn.Declaration.Line()},
			Keyword:  c.kind.keyword(),
			Context:  fmt.Sprintf("function %s outside of a loop", fn.Name()),
		}
	}

	if fn.IsInitializer {
		this, _ := fn.Closure.GetAt(0, "this")
		return this, nil
	}
	if c.kind == completionReturn {
		return c.value, nil
	}
	return runtime.Nil, nil
}

func (i *Interpreter) instantiate(class *runtime.ClassValue, args []runtime.Value) (runtime.Value, error) {
	instance := runtime.NewInstance(class)
	if init, ok := class.FindMethod("init"); ok {
		if _, err := i.callFunction(init.Bind(instance), args); err != nil {
			return nil, err
		}
	}
	return instance, nil
}

//-----------------------------------------------------------------------------
// Properties
//-----------------------------------------------------------------------------

func (i *Interpreter) evaluateGet(expr *ast.Get, env *runtime.Environment) (runtime.Value, error) {
	obj, err := i.evaluate(expr.Object, env)
	if err != nil {
		return nil, err
	}
	instance, ok := obj.(*runtime.InstanceValue)
	if !ok {
		return nil, &TypeError{Position: Position{SourceLine: expr.Line()}, Case: NotAnInstance, Operands: []string{runtime.TypeName(obj)}}
	}
	val, ok := instance.Get(expr.Name.Lexeme)
	if !ok {
		return nil, &UndefinedPropertyError{Position: Position{SourceLine: expr.Line()}, Name: expr.Name.Lexeme}
	}
	return val, nil
}

func (i *Interpreter) evaluateSet(expr *ast.Set, env *runtime.Environment) (runtime.Value, error) {
	obj, err := i.evaluate(expr.Object, env)
	if err != nil {
		return nil, err
	}
	instance, ok := obj.(*runtime.InstanceValue)
	if !ok {
		return nil, &TypeError{Position: Position{SourceLine: expr.Line()}, Case: NotAnInstance, Operands: []string{runtime.TypeName(obj)}}
	}
	val, err := i.evaluate(expr.Value, env)
	if err != nil {
		return nil, err
	}
	instance.Set(expr.Name.Lexeme, val)
	return val, nil
}
