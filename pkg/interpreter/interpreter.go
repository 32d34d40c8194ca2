package interpreter

import (
	"io"
	"os"

	"github.com/lassejlv/cii/pkg/ast"
	"github.com/lassejlv/cii/pkg/resolver"
	"github.com/lassejlv/cii/pkg/runtime"
)

// Interpreter executes resolved programs against a chain of scope frames
// rooted at a process-lifetime global frame.
type Interpreter struct {
	globals *runtime.Environment
	locals  resolver.Locals
	dynamic bool

	out          io.Writer
	clock        runtime.Clock
	maxCallDepth int
	callDepth    int
}

// Option configures an Interpreter.
type Option func(*Interpreter)

// WithOutput directs `print` to w. Writes are not buffered by the interpreter.
func WithOutput(w io.Writer) Option {
	return func(i *Interpreter) {
		i.out = w
	}
}

// WithClock replaces the time source of the `clock` built-in.
func WithClock(clock runtime.Clock) Option {
	return func(i *Interpreter) {
		i.clock = clock
	}
}

// WithMaxCallDepth limits nested calls; 0 means unlimited.
func WithMaxCallDepth(depth int) Option {
	return func(i *Interpreter) {
		i.maxCallDepth = depth
	}
}

// New returns an interpreter with a fresh global frame holding the built-ins.
func New(opts ...Option) *Interpreter {
	i := &Interpreter{
		out:    os.Stdout,
		locals: make(resolver.Locals),
	}
	for _, opt := range opts {
		opt(i)
	}
	i.globals = runtime.NewGlobals(i.clock)
	return i
}

// Globals returns the interpreter's global frame.
func (i *Interpreter) Globals() *runtime.Environment {
	return i.globals
}

// Interpret executes stmts in the global frame. locals is the resolver's
// binding table for stmts; nil means resolution did not run and every
// variable is found by walking the active frame chain. Global state persists
// across calls. Execution stops at the first error; side effects of the
// statements that already ran are kept.
func (i *Interpreter) Interpret(stmts []ast.Stmt, locals resolver.Locals) error {
	i.dynamic = locals == nil
	i.locals.Merge(locals)
	i.callDepth = 0

	for _, stmt := range stmts {
		c, err := i.execute(stmt, i.globals)
		if err != nil {
			return err
		}
		if c.kind != completionNormal {
			return &ControlFlowError{Position: Position{SourceLine: stmt.Line()}, Keyword: c.kind.keyword(), Context: "top-level code"}
		}
	}
	return nil
}

// completion is the outcome of executing one statement. Sequences stop at
// the first non-normal completion and hand it to their caller: calls consume
// returns, loops consume breaks and continues.
type completion struct {
	kind  completionKind
	value runtime.Value
}

type completionKind int

const (
	completionNormal completionKind = iota
	completionReturn
	completionBreak
	completionContinue
)

func (k completionKind) keyword() string {
	switch k {
	case completionReturn:
		return "return"
	case completionBreak:
		return "break"
	case completionContinue:
		return "continue"
	default:
		return ""
	}
}

var normal = completion{kind: completionNormal}
