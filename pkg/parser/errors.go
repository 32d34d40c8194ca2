package parser

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lassejlv/cii/pkg/token"
)

// ScanError is a lexical error at a source line.
type ScanError struct {
	Line    int
	Message string
	// AtEnd is set when the input ended before the lexeme was complete.
	AtEnd bool
}

func (e *ScanError) Error() string {
	return fmt.Sprintf("[line %d] Error: %s", e.Line, e.Message)
}

// SyntaxError reports a grammar violation at a specific token.
type SyntaxError struct {
	Token   token.Token
	Message string
}

func (e *SyntaxError) Error() string {
	if e.Token.Kind == token.EOF {
		return fmt.Sprintf("[line %d] Error at end: %s", e.Token.Line, e.Message)
	}
	return fmt.Sprintf("[line %d] Error at '%s': %s", e.Token.Line, e.Token.Lexeme, e.Message)
}

// Errors aggregates every scan and syntax error found in one source text.
type Errors struct {
	Issues []error
}

func (e *Errors) Error() string {
	if len(e.Issues) == 1 {
		return e.Issues[0].Error()
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d syntax errors:", len(e.Issues))
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue.Error())
	}
	return b.String()
}

func (e *Errors) Unwrap() []error { return e.Issues }

func (e *Errors) add(err error) {
	e.Issues = append(e.Issues, err)
}

func (e *Errors) errOrNil() error {
	if len(e.Issues) == 0 {
		return nil
	}
	return e
}

// IsIncomplete reports whether err was caused only by the input ending too
// early, e.g. an unclosed block or string. The REPL uses it to ask for more
// lines instead of reporting the error.
func IsIncomplete(err error) bool {
	var errs *Errors
	if !errors.As(err, &errs) || len(errs.Issues) == 0 {
		return false
	}
	for _, issue := range errs.Issues {
		switch e := issue.(type) {
		case *ScanError:
			if !e.AtEnd {
				return false
			}
		case *SyntaxError:
			if e.Token.Kind != token.EOF {
				return false
			}
		default:
			return false
		}
	}
	return true
}
