package object

import "fmt"

// Array is an immutable ordered sequence of object references.
// Construction copies the reference slice only; the referenced objects are
// shared with the caller.
type Array struct {
	elems []Object
}

// NewArray builds an array over the given elements.
func NewArray(elems ...Object) *Array {
	return &Array{elems: append([]Object(nil), elems...)}
}

// TypeTag implements Object.
func (a *Array) TypeTag() Tag { return TagArray }

// Size returns the number of elements.
func (a *Array) Size() int { return len(a.elems) }

// At returns the element at index i.
func (a *Array) At(i int) (Object, error) {
	if i < 0 || i >= len(a.elems) {
		return nil, fmt.Errorf("array index %d with size %d: %w", i, len(a.elems), ErrIndexOutOfRange)
	}
	return a.elems[i], nil
}

// Elements returns the elements in index order. The slice is a copy; the
// elements themselves are shared.
func (a *Array) Elements() []Object {
	return append([]Object(nil), a.elems...)
}

// Append returns a new array holding the receiver's elements followed by
// elems. The receiver is unchanged.
func (a *Array) Append(elems ...Object) *Array {
	out := make([]Object, 0, len(a.elems)+len(elems))
	out = append(out, a.elems...)
	out = append(out, elems...)
	return &Array{elems: out}
}
