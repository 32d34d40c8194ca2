package runtime

import "time"

// Clock supplies the current time to the `clock` built-in.
type Clock func() time.Time

// NewGlobals creates the root frame with the built-in bindings installed.
// A nil clock uses time.Now.
func NewGlobals(clock Clock) *Environment {
	if clock == nil {
		clock = time.Now
	}
	globals := NewEnvironment(nil)
	globals.Define("clock", NewNativeFunction("clock", 0, func(_ []Value) (Value, error) {
		return NumberValue{Val: float64(clock().UnixMilli()) / 1000.0}, nil
	}))
	return globals
}
