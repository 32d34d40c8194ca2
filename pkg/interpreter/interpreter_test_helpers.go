package interpreter

import (
	"bytes"
	"testing"
	"time"

	"github.com/lassejlv/cii/pkg/ast"
	"github.com/lassejlv/cii/pkg/resolver"
)

var fixedTime = time.Unix(1700000000, 500*int64(time.Millisecond))

func fixedClock() time.Time { return fixedTime }

// runResolved resolves and executes stmts on a fresh interpreter and returns
// everything printed.
func runResolved(t *testing.T, stmts []ast.Stmt, opts ...Option) (string, error) {
	t.Helper()
	locals, err := resolver.New().Resolve(stmts)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	var out bytes.Buffer
	interp := New(append([]Option{WithOutput(&out), WithClock(fixedClock)}, opts...)...)
	err = interp.Interpret(stmts, locals)
	return out.String(), err
}

func mustRun(t *testing.T, stmts []ast.Stmt, opts ...Option) string {
	t.Helper()
	out, err := runResolved(t, stmts, opts...)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return out
}

// forLoop builds the block a `for (init; cond; incr) body` desugars to.
func forLoop(init ast.Stmt, cond ast.Expr, incr ast.Expr, body ast.Stmt) *ast.Block {
	return ast.Scope(init, ast.NewWhile(cond, body, incr, 1))
}
