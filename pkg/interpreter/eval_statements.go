package interpreter

import (
	"fmt"

	"github.com/lassejlv/cii/pkg/ast"
	"github.com/lassejlv/cii/pkg/runtime"
)

func (i *Interpreter) execute(node ast.Stmt, env *runtime.Environment) (completion, error) {
	switch n := node.(type) {
	case *ast.Expression:
		if _, err := i.evaluate(n.Expression, env); err != nil {
			return normal, err
		}
		return normal, nil
	case *ast.Print:
		val, err := i.evaluate(n.Expression, env)
		if err != nil {
			return normal, err
		}
		if _, err := fmt.Fprintln(i.out, runtime.ToDisplayString(val)); err != nil {
			return normal, &OutputError{Position: Position{SourceLine: n.Line()}, Err: err}
		}
		return normal, nil
	case *ast.Var:
		return i.executeVar(n, env)
	case *ast.Block:
		return i.executeStatements(n.Statements, env.Enclose())
	case *ast.If:
		return i.executeIf(n, env)
	case *ast.While:
		return i.executeWhile(n, env)
	case *ast.Function:
		env.Define(n.Name.Lexeme, &runtime.FunctionValue{Declaration: n, Closure: env})
		return normal, nil
	case *ast.Return:
		var val runtime.Value = runtime.Nil
		if n.Value != nil {
			v, err := i.evaluate(n.Value, env)
			if err != nil {
				return normal, err
			}
			val = v
		}
		return completion{kind: completionReturn, value: val}, nil
	case *ast.Class:
		return i.executeClass(n, env)
	case *ast.Break:
		return completion{kind: completionBreak}, nil
	case *ast.Continue:
		return completion{kind: completionContinue}, nil
	default:
		panic(fmt.Sprintf("interpreter: unsupported statement type %s", node.NodeType()))
	}
}

// executeStatements runs stmts in env, stopping at the first error or
// non-normal completion.
func (i *Interpreter) executeStatements(stmts []ast.Stmt, env *runtime.Environment) (completion, error) {
	for _, stmt := range stmts {
		c, err := i.execute(stmt, env)
		if err != nil || c.kind != completionNormal {
			return c, err
		}
	}
	return normal, nil
}

func (i *Interpreter) executeVar(decl *ast.Var, env *runtime.Environment) (completion, error) {
	var val runtime.Value = runtime.Nil
	if decl.Initializer != nil {
		v, err := i.evaluate(decl.Initializer, env)
		if err != nil {
			return normal, err
		}
		val = v
	}
	env.Define(decl.Name.Lexeme, val)
	return normal, nil
}

func (i *Interpreter) executeIf(stmt *ast.If, env *runtime.Environment) (completion, error) {
	cond, err := i.evaluate(stmt.Condition, env)
	if err != nil {
		return normal, err
	}
	if runtime.IsTruthy(cond) {
		return i.execute(stmt.Then, env)
	}
	if stmt.Else != nil {
		return i.execute(stmt.Else, env)
	}
	return normal, nil
}

func (i *Interpreter) executeWhile(loop *ast.While, env *runtime.Environment) (completion, error) {
	for {
		cond, err := i.evaluate(loop.Condition, env)
		if err != nil {
			return normal, err
		}
		if !runtime.IsTruthy(cond) {
			return normal, nil
		}
		c, err := i.execute(loop.Body, env)
		if err != nil {
			return normal, err
		}
		switch c.kind {
		case completionBreak:
			return normal, nil
		case completionReturn:
			return c, nil
		}
		if loop.Increment != nil {
			if _, err := i.evaluate(loop.Increment, env); err != nil {
				return normal, err
			}
		}
	}
}

// executeClass binds the class name before building the methods so the
// bodies can refer to the class; the finished value is assigned afterwards.
func (i *Interpreter) executeClass(decl *ast.Class, env *runtime.Environment) (completion, error) {
	name := decl.Name.Lexeme
	env.Define(name, runtime.Nil)

	methods := make(map[string]*runtime.FunctionValue, len(decl.Methods))
	for _, m := range decl.Methods {
		methods[m.Name.Lexeme] = &runtime.FunctionValue{
			Declaration:   m,
			Closure:       env,
			IsInitializer: m.Name.Lexeme == "init",
		}
	}

	class := runtime.NewClass(name, methods)
	if !env.Assign(name, class) {
		return normal, &ClassDefinitionError{Position: Position{SourceLine: decl.Line()}, Name: name}
	}
	return normal, nil
}
