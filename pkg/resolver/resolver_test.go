package resolver

import (
	"errors"
	"strings"
	"testing"

	"github.com/go-test/deep"
	"github.com/lassejlv/cii/pkg/ast"
)

func resolveOK(t *testing.T, program []ast.Stmt) Locals {
	t.Helper()
	locals, err := New().Resolve(program)
	if err != nil {
		t.Fatalf("unexpected resolve error: %v", err)
	}
	return locals
}

func TestResolveShadowedBlockVariables(t *testing.T) {
	innerRead := ast.Ref("a")
	outerRead := ast.Ref("a")
	program := ast.Program(
		ast.Scope(
			ast.VarDecl("a", ast.Num(1)),
			ast.Scope(
				ast.VarDecl("a", ast.Num(2)),
				ast.PrintStmt(innerRead),
			),
			ast.PrintStmt(outerRead),
		),
	)

	locals := resolveOK(t, program)
	want := Locals{innerRead: 0, outerRead: 0}
	if diff := deep.Equal(locals, want); diff != nil {
		t.Fatal(diff)
	}
}

func TestResolveClosureCapturesEnclosingFunctionLocal(t *testing.T) {
	assign := ast.AssignTo("i", ast.Bin("+", ast.Ref("i"), ast.Num(1)))
	readInAssign := assign.Value.(*ast.Binary).Left
	ret := ast.Ref("i")
	returned := ast.Ref("count")
	program := ast.Program(
		ast.Fn("makeCounter", nil,
			ast.VarDecl("i", ast.Num(0)),
			ast.Fn("count", nil,
				ast.ExprStmt(assign),
				ast.Ret(ret),
			),
			ast.Ret(returned),
		),
	)

	locals := resolveOK(t, program)
	want := Locals{assign: 1, readInAssign: 1, ret: 1, returned: 0}
	if diff := deep.Equal(locals, want); diff != nil {
		t.Fatal(diff)
	}
}

func TestResolveLeavesGlobalsUnresolved(t *testing.T) {
	globalRead := ast.Ref("g")
	clockCall := ast.CallNamed("clock")
	program := ast.Program(
		ast.VarDecl("g", ast.Num(1)),
		ast.Scope(ast.PrintStmt(globalRead), ast.ExprStmt(clockCall)),
	)

	locals := resolveOK(t, program)
	if len(locals) != 0 {
		t.Fatalf("expected no resolved locals, got %v", locals)
	}
}

func TestResolveRecursiveFunctionSeesOwnName(t *testing.T) {
	self := ast.CallNamed("fact", ast.Bin("-", ast.Ref("n"), ast.Num(1)))
	program := ast.Program(
		ast.Scope(
			ast.Fn("fact", []string{"n"},
				ast.Ret(ast.Bin("*", ast.Ref("n"), self)),
			),
		),
	)

	locals := resolveOK(t, program)
	if got, ok := locals[self.Callee]; !ok || got != 1 {
		t.Fatalf("recursive reference distance = %d (found %v), want 1", got, ok)
	}
}

func TestResolveThisInsideMethod(t *testing.T) {
	this := ast.Self()
	program := ast.Program(
		ast.ClassDecl("Box",
			ast.Fn("get", nil, ast.Ret(ast.Prop(this, "value"))),
		),
	)

	locals := resolveOK(t, program)
	if got, ok := locals[this]; !ok || got != 1 {
		t.Fatalf("this distance = %d (found %v), want 1", got, ok)
	}
}

func TestResolveForLoopIncrementInLoopScope(t *testing.T) {
	cond := ast.Bin("<", ast.Ref("i"), ast.Num(3))
	incr := ast.AssignTo("i", ast.Bin("+", ast.Ref("i"), ast.Num(1)))
	body := ast.Ref("i")
	loop := ast.NewWhile(cond, ast.Scope(ast.PrintStmt(body)), incr, 1)
	program := ast.Program(ast.Scope(ast.VarDecl("i", ast.Num(0)), loop))

	locals := resolveOK(t, program)
	if locals[cond.Left] != 0 || locals[incr] != 0 || locals[body] != 1 {
		t.Fatalf("unexpected distances %v", locals)
	}
}

func TestResolveRejectsOwnInitializerRead(t *testing.T) {
	program := ast.Program(ast.Scope(ast.VarDecl("a", ast.Ref("a"))))

	_, err := New().Resolve(program)
	var resolveErr *Error
	if !errors.As(err, &resolveErr) {
		t.Fatalf("expected *Error, got %v", err)
	}
	if len(resolveErr.Diagnostics) != 1 {
		t.Fatalf("expected one diagnostic, got %v", resolveErr.Diagnostics)
	}
	if !strings.Contains(resolveErr.Error(), "own initializer") {
		t.Fatalf("unexpected message %q", resolveErr.Error())
	}
}

func TestResolveAllowsGlobalSelfReference(t *testing.T) {
	if _, err := New().Resolve(ast.Program(ast.VarDecl("a", ast.Ref("a")))); err != nil {
		t.Fatalf("global self reference should be left to run time, got %v", err)
	}
}

func TestResolveCollectsEveryDiagnostic(t *testing.T) {
	shadowRead := ast.Ref("b")
	program := ast.Program(
		ast.Ret(ast.Num(1)),
		ast.ExprStmt(ast.Self()),
		ast.Brk(),
		ast.Scope(ast.VarDecl("b", shadowRead)),
		ast.ClassDecl("C", ast.Fn("init", nil, ast.Ret(ast.Num(2)))),
		ast.Fn("f", nil, ast.Cont()),
	)

	locals, err := New().Resolve(program)
	var resolveErr *Error
	if !errors.As(err, &resolveErr) {
		t.Fatalf("expected *Error, got %v", err)
	}
	var messages []string
	for _, d := range resolveErr.Diagnostics {
		messages = append(messages, d.Message)
	}
	want := []string{
		"Can't return from top-level code.",
		"Can't use 'this' outside of a class.",
		"Can't use 'break' outside of a loop.",
		"Can't read local variable in its own initializer.",
		"Can't return a value from an initializer.",
		"Can't use 'continue' outside of a loop.",
	}
	if diff := deep.Equal(messages, want); diff != nil {
		t.Fatal(diff)
	}
	if _, ok := locals[shadowRead]; !ok {
		t.Fatalf("the table should still cover references resolved despite diagnostics")
	}
}

func TestLocalsMerge(t *testing.T) {
	a, b := ast.Ref("a"), ast.Ref("b")
	locals := Locals{a: 1}
	locals.Merge(Locals{b: 2})
	if diff := deep.Equal(locals, Locals{a: 1, b: 2}); diff != nil {
		t.Fatal(diff)
	}
}
