package stack

type Stack[T any] struct {
	a []T
}

// NewStack creates a new stack holding elm, the last element on top
func NewStack[T any](elm ...T) *Stack[T] {
	s := &Stack[T]{a: make([]T, 0, len(elm))}
	s.a = append(s.a, elm...)
	return s
}

// Push adds an element to the top of the stack
func (s *Stack[T]) Push(elm T) {
	s.a = append(s.a, elm)
}

// Pop removes and returns the top element of the stack.
// The zero value is returned when the stack is empty.
func (s *Stack[T]) Pop() T {
	var zero T
	if len(s.a) < 1 {
		return zero
	}

	elm := s.a[len(s.a)-1]
	s.a[len(s.a)-1] = zero
	s.a = s.a[:len(s.a)-1]

	return elm
}

// Peek returns the top element of the stack without removing it
func (s *Stack[T]) Peek() T {
	var zero T
	if len(s.a) < 1 {
		return zero
	}

	return s.a[len(s.a)-1]
}

// PeekAt returns the element offset positions below the top
func (s *Stack[T]) PeekAt(offset int) (T, bool) {
	var zero T
	if offset < 0 || offset >= len(s.a) {
		return zero, false
	}
	return s.a[len(s.a)-1-offset], true
}

// Get the size of the stack
func (s *Stack[T]) Size() int {
	return len(s.a)
}

// Array returns the underlying array of the stack, bottom first
func (s *Stack[T]) Array() []T {
	return s.a
}
