package runtime

import (
	"math"
	"testing"

	"github.com/go-test/deep"
	"github.com/lassejlv/cii/pkg/ast"
)

func TestTruthiness(t *testing.T) {
	cases := []struct {
		value  Value
		truthy bool
	}{
		{Nil, false},
		{False, false},
		{True, true},
		{num(0), true},
		{NewString(""), true},
		{NewString("x"), true},
		{NewClass("C", nil), true},
	}
	for _, tc := range cases {
		if got := IsTruthy(tc.value); got != tc.truthy {
			t.Fatalf("IsTruthy(%s) = %v, want %v", ToDisplayString(tc.value), got, tc.truthy)
		}
		if got := IsFalsy(tc.value); got.Val == tc.truthy {
			t.Fatalf("IsFalsy(%s) = %v", ToDisplayString(tc.value), got.Val)
		}
	}
}

func TestEqualityPerVariant(t *testing.T) {
	fn := &FunctionValue{Declaration: ast.Fn("f", nil)}
	other := &FunctionValue{Declaration: ast.Fn("f", nil)}
	cases := []struct {
		a, b Value
		want bool
	}{
		{num(1), num(1), true},
		{num(1), num(2), false},
		{num(math.NaN()), num(math.NaN()), false},
		{NewString("ab"), Concat(NewString("a"), NewString("b")), true},
		{NewString("1"), num(1), false},
		{True, True, true},
		{True, False, false},
		{Nil, Nil, true},
		{Nil, False, false},
		{fn, fn, true},
		{fn, other, false},
	}
	for i, tc := range cases {
		if got := Equal(tc.a, tc.b); got != tc.want {
			t.Fatalf("case %d: Equal(%s, %s) = %v, want %v", i, ToDisplayString(tc.a), ToDisplayString(tc.b), got, tc.want)
		}
	}
}

func TestConcatDoesNotAliasOperands(t *testing.T) {
	left := StringValue{Fragments: make([]string, 1, 4)}
	left.Fragments[0] = "foo"
	first := Concat(left, NewString("bar"))
	second := Concat(left, NewString("baz"))

	if first.Text() != "foobar" || second.Text() != "foobaz" {
		t.Fatalf("unexpected concatenations %q %q", first.Text(), second.Text())
	}
	if diff := deep.Equal(first.Fragments, []string{"foo", "bar"}); diff != nil {
		t.Fatal(diff)
	}
}

func TestDisplayStrings(t *testing.T) {
	class := NewClass("Point", nil)
	cases := []struct {
		value Value
		want  string
	}{
		{num(120), "120"},
		{num(2.5), "2.5"},
		{num(-0.125), "-0.125"},
		{num(math.Inf(1)), "Infinity"},
		{NewString("hi"), "hi"},
		{True, "true"},
		{Nil, "nil"},
		{&FunctionValue{Declaration: ast.Fn("fib", []string{"n"})}, "<fn fib>"},
		{NewNativeFunction("clock", 0, nil), "<native fn clock>"},
		{class, "Point"},
		{NewInstance(class), "Point instance"},
	}
	for _, tc := range cases {
		if got := ToDisplayString(tc.value); got != tc.want {
			t.Fatalf("ToDisplayString = %q, want %q", got, tc.want)
		}
	}
}

func TestTypeNames(t *testing.T) {
	if got := TypeName(num(1)); got != "Number" {
		t.Fatalf("TypeName(number) = %q", got)
	}
	if got := TypeName(NewString("")); got != "String" {
		t.Fatalf("TypeName(string) = %q", got)
	}
	if got := TypeName(False); got != "Boolean" {
		t.Fatalf("TypeName(bool) = %q", got)
	}
	if got := TypeName(Nil); got != "Nil" {
		t.Fatalf("TypeName(nil) = %q", got)
	}
}

func TestClassArityAndMethodBinding(t *testing.T) {
	closure := NewEnvironment(nil)
	init := &FunctionValue{Declaration: ast.Fn("init", []string{"x", "y"}), Closure: closure, IsInitializer: true}
	class := NewClass("Point", map[string]*FunctionValue{"init": init})
	if class.Arity() != 2 {
		t.Fatalf("class arity = %d, want 2", class.Arity())
	}

	instance := NewInstance(class)
	v, ok := instance.Get("init")
	if !ok {
		t.Fatalf("expected init method lookup")
	}
	bound := v.(*FunctionValue)
	if bound == init || !bound.IsInitializer {
		t.Fatalf("expected a fresh bound initializer, got %#v", bound)
	}
	if this, ok := bound.Closure.GetAt(0, "this"); !ok || this != Value(instance) {
		t.Fatalf("bound method frame does not hold this")
	}
	if bound.Closure.Enclosing() != closure {
		t.Fatalf("bound frame must enclose the method closure")
	}

	instance.Set("init", num(1))
	if v, _ := instance.Get("init"); !Equal(v, num(1)) {
		t.Fatalf("fields must shadow methods, got %#v", v)
	}
}
