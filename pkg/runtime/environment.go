package runtime

import (
	"fmt"
	"sort"
)

// Environment is one scope frame: a set of bindings plus a link to the
// enclosing frame. Frames are shared by pointer, so a closure and the block
// or call that created its frame observe the same bindings.
type Environment struct {
	values    map[string]Value
	enclosing *Environment
}

// NewEnvironment creates a new frame, optionally nested under enclosing.
func NewEnvironment(enclosing *Environment) *Environment {
	return &Environment{
		values:    make(map[string]Value),
		enclosing: enclosing,
	}
}

// Enclosing exposes the lexical parent (nil for the root frame).
func (e *Environment) Enclosing() *Environment {
	return e.enclosing
}

// Enclose creates a child frame of e.
func (e *Environment) Enclose() *Environment {
	return NewEnvironment(e)
}

// Depth counts the enclosing links between e and the root frame.
func (e *Environment) Depth() int {
	depth := 0
	for env := e.enclosing; env != nil; env = env.enclosing {
		depth++
	}
	return depth
}

// Define inserts or overwrites a binding in this frame only.
func (e *Environment) Define(name string, value Value) {
	e.values[name] = value
}

// Get searches outward from e to the root frame.
func (e *Environment) Get(name string) (Value, bool) {
	for env := e; env != nil; env = env.enclosing {
		if v, ok := env.values[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// GetAt looks name up in the frame exactly distance links above e.
func (e *Environment) GetAt(distance int, name string) (Value, bool) {
	v, ok := e.ancestor(distance, name).values[name]
	return v, ok
}

// Assign updates the first frame from e outward that defines name. It
// reports false when no frame does.
func (e *Environment) Assign(name string, value Value) bool {
	for env := e; env != nil; env = env.enclosing {
		if _, ok := env.values[name]; ok {
			env.values[name] = value
			return true
		}
	}
	return false
}

// AssignAt writes name in the frame exactly distance links above e.
func (e *Environment) AssignAt(distance int, name string, value Value) {
	e.ancestor(distance, name).values[name] = value
}

// ancestor walks distance enclosing links. Walking past the root means the
// resolver and the interpreter disagree about scope nesting; that is a bug,
// so it panics with a ResolutionInvariantViolation.
func (e *Environment) ancestor(distance int, name string) *Environment {
	if distance < 0 {
		panic(&ResolutionInvariantViolation{Name: name, Distance: distance, Depth: e.Depth()})
	}
	env := e
	for i := 0; i < distance; i++ {
		if env.enclosing == nil {
			panic(&ResolutionInvariantViolation{Name: name, Distance: distance, Depth: e.Depth()})
		}
		env = env.enclosing
	}
	return env
}

// Names returns this frame's bindings in sorted order.
func (e *Environment) Names() []string {
	keys := make([]string, 0, len(e.values))
	for k := range e.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Snapshot returns a copy of this frame's bindings.
func (e *Environment) Snapshot() map[string]Value {
	out := make(map[string]Value, len(e.values))
	for k, v := range e.values {
		out[k] = v
	}
	return out
}

// ResolutionInvariantViolation is the panic value raised when a resolved
// binding distance walks past the root frame.
type ResolutionInvariantViolation struct {
	Name     string
	Distance int
	Depth    int
}

func (e *ResolutionInvariantViolation) Error() string {
	return fmt.Sprintf("resolution invariant violated: %q resolved at distance %d but the frame chain is only %d deep", e.Name, e.Distance, e.Depth)
}
