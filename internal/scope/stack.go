// Package scope tracks the lexical nesting of named declarations so that
// emitted declarations can carry a fully-qualified name.
package scope

import "strings"

// Stack is a per-traversal stack of scope segments. It is not safe for
// concurrent use; each file traversal owns its own Stack.
type Stack struct {
	segments []string
}

// Push appends a scope segment. Every Push must be paired with a Pop.
func (s *Stack) Push(name string) {
	s.segments = append(s.segments, name)
}

// Pop removes the most recently pushed segment. Popping an empty stack is a
// programming error and panics.
func (s *Stack) Pop() {
	if len(s.segments) == 0 {
		panic("scope: pop on empty stack")
	}
	s.segments = s.segments[:len(s.segments)-1]
}

// Depth returns the number of segments currently pushed.
func (s *Stack) Depth() int {
	return len(s.segments)
}

// Name returns the dot-joined current stack, or "" when empty.
func (s *Stack) Name() string {
	return strings.Join(s.segments, ".")
}

// Qualify returns the dot-joined stack followed by name. No leading separator
// is written when the stack is empty.
func (s *Stack) Qualify(name string) string {
	if len(s.segments) == 0 {
		return name
	}
	return s.Name() + "." + name
}
