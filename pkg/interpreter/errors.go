package interpreter

import (
	"fmt"
	"strings"
)

// RuntimeError is implemented by every user-triggerable failure raised while
// executing a program.
type RuntimeError interface {
	error
	Line() int
}

// Position records the source line an error is reported against.
type Position struct {
	SourceLine int
}

func (p Position) Line() int { return p.SourceLine }

func (p Position) prefix() string {
	return fmt.Sprintf("[line %d] ", p.SourceLine)
}

// UndeclaredVariableError reports a read or assignment of a name with no
// binding anywhere in the frame chain.
type UndeclaredVariableError struct {
	Position
	Name string
}

func (e *UndeclaredVariableError) Error() string {
	return e.prefix() + fmt.Sprintf("Undefined variable '%s'.", e.Name)
}

// TypeErrorCase distinguishes the incompatible operand pairings.
type TypeErrorCase int

const (
	// unary '-' on a non-Number
	OperandNotNumber TypeErrorCase = iota
	// '-', '*' or '/' on a pair that is not two Numbers
	OperandsNotNumbers
	// any arithmetic or ordering operator mixing a Number and a String
	NumberStringMix
	// '+' on a pair that is neither two Numbers nor two Strings
	OperandsNotAddable
	// ordering operators on a pair that is neither two Numbers nor two Strings
	OperandsNotComparable
	NotCallable
	NotAnInstance
)

// TypeError reports an operator or operation applied to incompatible values.
type TypeError struct {
	Position
	Case     TypeErrorCase
	Operator string
	Operands []string
}

func (e *TypeError) Error() string {
	var msg string
	switch e.Case {
	case OperandNotNumber:
		msg = fmt.Sprintf("Operand of '%s' must be a Number, got %s.", e.Operator, e.operands())
	case OperandsNotNumbers:
		msg = fmt.Sprintf("Operands of '%s' must be Numbers, got %s.", e.Operator, e.operands())
	case NumberStringMix:
		msg = fmt.Sprintf("'%s' is not defined for %s.", e.Operator, e.operands())
	case OperandsNotAddable:
		msg = fmt.Sprintf("Operands of '%s' must be two Numbers or two Strings, got %s.", e.Operator, e.operands())
	case OperandsNotComparable:
		msg = fmt.Sprintf("Operands of '%s' must be two Numbers or two Strings, got %s.", e.Operator, e.operands())
	case NotCallable:
		msg = fmt.Sprintf("Can only call functions and classes, got %s.", e.operands())
	case NotAnInstance:
		msg = fmt.Sprintf("Only instances have properties, got %s.", e.operands())
	default:
		msg = fmt.Sprintf("Type error in '%s' with %s.", e.Operator, e.operands())
	}
	return e.prefix() + msg
}

func (e *TypeError) operands() string {
	return strings.Join(e.Operands, " and ")
}

// ClassDefinitionError reports that the name pre-declared for a class could
// not be found when the finished class value was stored.
type ClassDefinitionError struct {
	Position
	Name string
}

func (e *ClassDefinitionError) Error() string {
	return e.prefix() + fmt.Sprintf("Class definition failed for %s.", e.Name)
}

// ArityError reports a call with the wrong number of arguments.
type ArityError struct {
	Position
	Callee   string
	Expected int
	Got      int
}

func (e *ArityError) Error() string {
	return e.prefix() + fmt.Sprintf("%s expected %d arguments but got %d.", e.Callee, e.Expected, e.Got)
}

type UndefinedPropertyError struct {
	Position
	Name string
}

func (e *UndefinedPropertyError) Error() string {
	return e.prefix() + fmt.Sprintf("Undefined property '%s'.", e.Name)
}

// StackOverflowError is raised when the configured call depth is exceeded.
type StackOverflowError struct {
	Position
	Depth int
}

func (e *StackOverflowError) Error() string {
	return e.prefix() + fmt.Sprintf("Stack overflow: call depth exceeded %d.", e.Depth)
}

// ControlFlowError reports return/break/continue escaping the construct that
// should consume it. The resolver rejects these statically; this only fires
// for programs run without resolution.
type ControlFlowError struct {
	Position
	Keyword string
	Context string
}

func (e *ControlFlowError) Error() string {
	return e.prefix() + fmt.Sprintf("Can't use '%s' in %s.", e.Keyword, e.Context)
}

// NativeError wraps a failure returned by a built-in function.
type NativeError struct {
	Position
	Name string
	Err  error
}

func (e *NativeError) Error() string {
	return e.prefix() + fmt.Sprintf("%s: %v", e.Name, e.Err)
}

func (e *NativeError) Unwrap() error { return e.Err }

// OutputError reports that `print` could not write to the output sink.
type OutputError struct {
	Position
	Err error
}

func (e *OutputError) Error() string {
	return e.prefix() + fmt.Sprintf("Failed to write output: %v", e.Err)
}

func (e *OutputError) Unwrap() error { return e.Err }
