package interpreter

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/lassejlv/cii/pkg/ast"
)

func TestNumberPlusStringIsTypeError(t *testing.T) {
	out, err := runResolved(t, ast.Program(
		ast.PrintStmt(ast.Str("before")),
		ast.PrintStmt(ast.Bin("+", ast.Num(1), ast.Str("x"))),
		ast.PrintStmt(ast.Str("after")),
	))
	var typeErr *TypeError
	if !errors.As(err, &typeErr) {
		t.Fatalf("expected TypeError, got %v", err)
	}
	if typeErr.Case != NumberStringMix || typeErr.Operator != "+" {
		t.Fatalf("unexpected type error %+v", typeErr)
	}
	if err.Error() != "[line 1] '+' is not defined for Number and String." {
		t.Fatalf("unexpected message %q", err.Error())
	}
	if out != "before\n" {
		t.Fatalf("expected side effects before the failure to be kept, got %q", out)
	}
}

func TestOperatorTypeErrorCases(t *testing.T) {
	cases := []struct {
		name string
		expr ast.Expr
		want TypeErrorCase
	}{
		{"negate string", ast.Un("-", ast.Str("s")), OperandNotNumber},
		{"subtract bools", ast.Bin("-", ast.Bool(true), ast.Num(1)), OperandsNotNumbers},
		{"multiply strings", ast.Bin("*", ast.Str("a"), ast.Str("b")), OperandsNotNumbers},
		{"add nil", ast.Bin("+", ast.Nil(), ast.Num(1)), OperandsNotAddable},
		{"compare bools", ast.Bin("<", ast.Bool(true), ast.Bool(false)), OperandsNotComparable},
		{"compare number and string", ast.Bin(">=", ast.Num(1), ast.Str("1")), NumberStringMix},
		{"call string", ast.CallExpr(ast.Str("f")), NotCallable},
		{"property of number", ast.Prop(ast.Num(1), "x"), NotAnInstance},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := runResolved(t, ast.Program(ast.ExprStmt(tc.expr)))
			var typeErr *TypeError
			if !errors.As(err, &typeErr) {
				t.Fatalf("expected TypeError, got %v", err)
			}
			if typeErr.Case != tc.want {
				t.Fatalf("expected case %d, got %d (%v)", tc.want, typeErr.Case, err)
			}
		})
	}
}

func TestUndeclaredVariable(t *testing.T) {
	for _, stmt := range []ast.Stmt{
		ast.PrintStmt(ast.Ref("missing")),
		ast.ExprStmt(ast.AssignTo("missing", ast.Num(1))),
	} {
		_, err := runResolved(t, ast.Program(stmt))
		var undeclared *UndeclaredVariableError
		if !errors.As(err, &undeclared) || undeclared.Name != "missing" {
			t.Fatalf("expected UndeclaredVariableError for missing, got %v", err)
		}
	}
}

func TestArityMismatch(t *testing.T) {
	_, err := runResolved(t, ast.Program(
		ast.Fn("pair", []string{"a", "b"}, ast.Ret(ast.Ref("a"))),
		ast.ExprStmt(ast.CallNamed("pair", ast.Num(1))),
	))
	var arity *ArityError
	if !errors.As(err, &arity) {
		t.Fatalf("expected ArityError, got %v", err)
	}
	if arity.Expected != 2 || arity.Got != 1 || arity.Callee != "<fn pair>" {
		t.Fatalf("unexpected arity error %+v", arity)
	}
}

func TestUndefinedProperty(t *testing.T) {
	_, err := runResolved(t, ast.Program(
		ast.ClassDecl("Empty"),
		ast.PrintStmt(ast.Prop(ast.CallNamed("Empty"), "nope")),
	))
	var undefined *UndefinedPropertyError
	if !errors.As(err, &undefined) || undefined.Name != "nope" {
		t.Fatalf("expected UndefinedPropertyError, got %v", err)
	}
}

func TestCallDepthLimit(t *testing.T) {
	_, err := runResolved(t, ast.Program(
		ast.Fn("forever", nil, ast.Ret(ast.CallNamed("forever"))),
		ast.ExprStmt(ast.CallNamed("forever")),
	), WithMaxCallDepth(50))
	var overflow *StackOverflowError
	if !errors.As(err, &overflow) || overflow.Depth != 50 {
		t.Fatalf("expected StackOverflowError at depth 50, got %v", err)
	}
}

func TestStrayControlFlowWithoutResolution(t *testing.T) {
	cases := map[string][]ast.Stmt{
		"return": ast.Program(ast.Ret(ast.Num(1))),
		"break":  ast.Program(ast.Fn("f", nil, ast.Brk()), ast.ExprStmt(ast.CallNamed("f"))),
	}
	for keyword, stmts := range cases {
		interp := New(WithOutput(&bytes.Buffer{}))
		err := interp.Interpret(stmts, nil)
		var flow *ControlFlowError
		if !errors.As(err, &flow) || flow.Keyword != keyword {
			t.Fatalf("expected ControlFlowError for %s, got %v", keyword, err)
		}
	}
}

func TestErrorsReportSourceLine(t *testing.T) {
	var err RuntimeError = &UndeclaredVariableError{Position: Position{SourceLine: 7}, Name: "x"}
	if err.Line() != 7 {
		t.Fatalf("expected line 7, got %d", err.Line())
	}
	if err.Error() != "[line 7] Undefined variable 'x'." {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

type failingWriter struct{ err error }

func (w failingWriter) Write([]byte) (int, error) { return 0, w.err }

func TestPrintWriteFailureStopsExecution(t *testing.T) {
	sinkErr := errors.New("broken pipe")
	var calls int
	_, err := runResolved(t, ast.Program(
		ast.PrintStmt(ast.Str("lost")),
		ast.ExprStmt(ast.CallNamed("clock")),
	), WithOutput(failingWriter{err: sinkErr}), WithClock(func() time.Time {
		calls++
		return fixedTime
	}))
	var outErr *OutputError
	if !errors.As(err, &outErr) {
		t.Fatalf("expected OutputError, got %v", err)
	}
	if !errors.Is(err, sinkErr) || outErr.Line() != 1 {
		t.Fatalf("unexpected output error %+v", outErr)
	}
	if calls != 0 {
		t.Fatalf("expected execution to stop after the failed print, clock ran %d times", calls)
	}
}

func TestClassDefinitionErrorMessage(t *testing.T) {
	var err RuntimeError = &ClassDefinitionError{Position: Position{SourceLine: 3}, Name: "Point"}
	if err.Line() != 3 {
		t.Fatalf("expected line 3, got %d", err.Line())
	}
	if err.Error() != "[line 3] Class definition failed for Point." {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func TestLocalForwardReferenceFallsBackToGlobals(t *testing.T) {
	_, err := runResolved(t, ast.Program(
		ast.Scope(
			ast.Fn("a", nil, ast.Ret(ast.CallNamed("b"))),
			ast.Fn("b", nil, ast.Ret(ast.Num(1))),
			ast.PrintStmt(ast.CallNamed("a")),
		),
	))
	var undeclared *UndeclaredVariableError
	if !errors.As(err, &undeclared) || undeclared.Name != "b" {
		t.Fatalf("expected UndeclaredVariableError for b, got %v", err)
	}
}
