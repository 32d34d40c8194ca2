package driver

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/lassejlv/cii/pkg/interpreter"
	"github.com/lassejlv/cii/pkg/parser"
	"github.com/lassejlv/cii/pkg/resolver"
)

// Exit codes reported by the CLI.
const (
	ExitOK       = 0
	ExitFailure  = 1
	ExitDataErr  = 65
	ExitNoInput  = 66
	ExitSoftware = 70
)

// Session runs source chunks against one interpreter, so globals defined by
// one chunk are visible to the next. It backs both script execution and the
// REPL.
type Session struct {
	interp  *interpreter.Interpreter
	resolve bool
}

// NewSession builds a session from cfg; a nil cfg means DefaultConfig. opts
// are applied after the options derived from cfg.
func NewSession(cfg *Config, out io.Writer, opts ...interpreter.Option) *Session {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	base := []interpreter.Option{
		interpreter.WithOutput(out),
		interpreter.WithMaxCallDepth(cfg.Interpreter.MaxCallDepth),
	}
	return &Session{
		interp:  interpreter.New(append(base, opts...)...),
		resolve: cfg.Interpreter.Resolve,
	}
}

// Run scans, parses, resolves and executes src. Scan, syntax and resolution
// errors stop the chunk before anything runs. A runtime error stops it
// mid-way; the effects of statements that already ran are kept.
func (s *Session) Run(src string) error {
	stmts, err := parser.ParseSource(src)
	if err != nil {
		return err
	}
	var locals resolver.Locals
	if s.resolve {
		if locals, err = resolver.New().Resolve(stmts); err != nil {
			return err
		}
	}
	return s.interp.Interpret(stmts, locals)
}

// GlobalNames lists the names bound in the global frame.
func (s *Session) GlobalNames() []string {
	return s.interp.Globals().Names()
}

// RunFile executes the script at path in a fresh session.
func RunFile(path string, cfg *Config, out io.Writer) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	return NewSession(cfg, out).Run(string(src))
}

// ExitCode maps an error returned by Run or RunFile onto a process exit code:
// static errors in the program are data errors, failures while it runs are
// software errors.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var (
		syntaxErrs *parser.Errors
		scopeErr   *resolver.Error
		runtimeErr interpreter.RuntimeError
	)
	switch {
	case errors.As(err, &syntaxErrs), errors.As(err, &scopeErr):
		return ExitDataErr
	case errors.As(err, &runtimeErr):
		return ExitSoftware
	case errors.Is(err, fs.ErrNotExist):
		return ExitNoInput
	default:
		return ExitFailure
	}
}
