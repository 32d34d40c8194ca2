package runtime

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/lassejlv/cii/pkg/ast"
)

// Kind identifies the runtime value category.
type Kind int

const (
	KindNumber Kind = iota
	KindString
	KindBool
	KindNil
	KindFunction
	KindNativeFunction
	KindClass
	KindInstance
)

// String returns the type name used in diagnostics.
func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "Number"
	case KindString:
		return "String"
	case KindBool:
		return "Boolean"
	case KindNil:
		return "Nil"
	case KindFunction:
		return "Function"
	case KindNativeFunction:
		return "NativeFunction"
	case KindClass:
		return "Class"
	case KindInstance:
		return "Instance"
	default:
		return fmt.Sprintf("unknown_kind_%d", int(k))
	}
}

// Value is the shared behaviour for all runtime values.
type Value interface {
	Kind() Kind
}

//-----------------------------------------------------------------------------
// Scalars
//-----------------------------------------------------------------------------

type NumberValue struct {
	Val float64
}

func (v NumberValue) Kind() Kind { return KindNumber }

// StringValue keeps the fragments it was concatenated from; the text is only
// joined when it is observed.
type StringValue struct {
	Fragments []string
}

func (v StringValue) Kind() Kind { return KindString }

// NewString wraps a single Go string.
func NewString(s string) StringValue {
	return StringValue{Fragments: []string{s}}
}

// Text joins the fragments.
func (v StringValue) Text() string {
	if len(v.Fragments) == 1 {
		return v.Fragments[0]
	}
	return strings.Join(v.Fragments, "")
}

// Concat returns a new string holding the fragments of a followed by those of
// b. Neither operand is modified.
func Concat(a, b StringValue) StringValue {
	fragments := make([]string, 0, len(a.Fragments)+len(b.Fragments))
	fragments = append(fragments, a.Fragments...)
	fragments = append(fragments, b.Fragments...)
	return StringValue{Fragments: fragments}
}

type BoolValue struct {
	Val bool
}

func (v BoolValue) Kind() Kind { return KindBool }

type NilValue struct{}

func (NilValue) Kind() Kind { return KindNil }

var (
	True  = BoolValue{Val: true}
	False = BoolValue{Val: false}
	Nil   = NilValue{}
)

// Bool maps a Go bool onto the language booleans.
func Bool(b bool) BoolValue {
	if b {
		return True
	}
	return False
}

//-----------------------------------------------------------------------------
// Functions & classes
//-----------------------------------------------------------------------------

// Callable is implemented by every value that can appear in call position.
// Arity is exposed but not enforced here; callers check it before invoking.
type Callable interface {
	Value
	Name() string
	Arity() int
}

// FunctionValue is a language-defined function paired with the frame active
// where it was declared.
type FunctionValue struct {
	Declaration   *ast.Function
	Closure       *Environment
	IsInitializer bool
}

func (v *FunctionValue) Kind() Kind   { return KindFunction }
func (v *FunctionValue) Name() string { return v.Declaration.Name.Lexeme }
func (v *FunctionValue) Arity() int   { return len(v.Declaration.Params) }

// Bind returns a copy of the method whose closure is a new frame holding
// `this`, enclosing the method's own closure.
func (v *FunctionValue) Bind(instance *InstanceValue) *FunctionValue {
	env := v.Closure.Enclose()
	env.Define("this", instance)
	return &FunctionValue{Declaration: v.Declaration, Closure: env, IsInitializer: v.IsInitializer}
}

type NativeFunc func(args []Value) (Value, error)

type NativeFunctionValue struct {
	name  string
	arity int
	Impl  NativeFunc
}

// NewNativeFunction wraps a Go function as a callable value.
func NewNativeFunction(name string, arity int, impl NativeFunc) *NativeFunctionValue {
	return &NativeFunctionValue{name: name, arity: arity, Impl: impl}
}

func (v *NativeFunctionValue) Kind() Kind   { return KindNativeFunction }
func (v *NativeFunctionValue) Name() string { return v.name }
func (v *NativeFunctionValue) Arity() int   { return v.arity }

// ClassValue is callable; calling it constructs an instance and runs `init`.
type ClassValue struct {
	name    string
	Methods map[string]*FunctionValue
}

func NewClass(name string, methods map[string]*FunctionValue) *ClassValue {
	if methods == nil {
		methods = make(map[string]*FunctionValue)
	}
	return &ClassValue{name: name, Methods: methods}
}

func (v *ClassValue) Kind() Kind   { return KindClass }
func (v *ClassValue) Name() string { return v.name }

func (v *ClassValue) Arity() int {
	if init, ok := v.Methods["init"]; ok {
		return init.Arity()
	}
	return 0
}

func (v *ClassValue) FindMethod(name string) (*FunctionValue, bool) {
	m, ok := v.Methods[name]
	return m, ok
}

type InstanceValue struct {
	Class  *ClassValue
	Fields map[string]Value
}

func NewInstance(class *ClassValue) *InstanceValue {
	return &InstanceValue{Class: class, Fields: make(map[string]Value)}
}

func (v *InstanceValue) Kind() Kind { return KindInstance }

// Get looks up a field, then a method bound to this instance.
func (v *InstanceValue) Get(name string) (Value, bool) {
	if val, ok := v.Fields[name]; ok {
		return val, true
	}
	if method, ok := v.Class.FindMethod(name); ok {
		return method.Bind(v), true
	}
	return nil, false
}

func (v *InstanceValue) Set(name string, value Value) {
	v.Fields[name] = value
}

//-----------------------------------------------------------------------------
// Operations
//-----------------------------------------------------------------------------

// TypeName reports the value's type for error messages.
func TypeName(v Value) string {
	if v == nil {
		return KindNil.String()
	}
	return v.Kind().String()
}

// IsTruthy: nil and false are falsy, everything else (0 and "" included) is
// truthy.
func IsTruthy(v Value) bool {
	switch val := v.(type) {
	case nil, NilValue:
		return false
	case BoolValue:
		return val.Val
	default:
		return true
	}
}

// IsFalsy is the language-level negation of IsTruthy.
func IsFalsy(v Value) BoolValue {
	return Bool(!IsTruthy(v))
}

// Equal compares values structurally per variant. Callables, classes and
// instances compare by identity; values of different kinds are never equal.
func Equal(a, b Value) bool {
	switch av := a.(type) {
	case NumberValue:
		bv, ok := b.(NumberValue)
		return ok && av.Val == bv.Val
	case StringValue:
		bv, ok := b.(StringValue)
		return ok && av.Text() == bv.Text()
	case BoolValue:
		bv, ok := b.(BoolValue)
		return ok && av.Val == bv.Val
	case NilValue, nil:
		switch b.(type) {
		case NilValue, nil:
			return true
		}
		return false
	default:
		return a == b
	}
}

// ToDisplayString renders a value the way `print` shows it.
func ToDisplayString(v Value) string {
	switch val := v.(type) {
	case nil, NilValue:
		return "nil"
	case NumberValue:
		return formatNumber(val.Val)
	case StringValue:
		return val.Text()
	case BoolValue:
		return strconv.FormatBool(val.Val)
	case *FunctionValue:
		return fmt.Sprintf("<fn %s>", val.Name())
	case *NativeFunctionValue:
		return fmt.Sprintf("<native fn %s>", val.Name())
	case *ClassValue:
		return val.Name()
	case *InstanceValue:
		return val.Class.Name() + " instance"
	default:
		return fmt.Sprintf("[%s]", v.Kind())
	}
}

func formatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
