package object

import (
	"fmt"
	"strconv"
	"strings"
)

// Shape is an immutable fixed-width integer sequence, used for values such
// as tensor dimensions. Unlike Array it holds raw integers, not object
// references.
type Shape struct {
	dims []int64
}

// NewShape builds a shape over the given dimensions.
func NewShape(dims ...int64) *Shape {
	return &Shape{dims: append([]int64(nil), dims...)}
}

// TypeTag implements Object.
func (s *Shape) TypeTag() Tag { return TagShape }

// Size returns the number of dimensions.
func (s *Shape) Size() int { return len(s.dims) }

// At returns the dimension at index i.
func (s *Shape) At(i int) (int64, error) {
	if i < 0 || i >= len(s.dims) {
		return 0, fmt.Errorf("shape index %d with size %d: %w", i, len(s.dims), ErrIndexOutOfRange)
	}
	return s.dims[i], nil
}

// Dims returns the dimensions in index order. The slice is a copy.
func (s *Shape) Dims() []int64 {
	return append([]int64(nil), s.dims...)
}

// String returns the canonical text form of the shape, e.g. "[2, 3, 4]".
func (s *Shape) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for i, d := range s.dims {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(strconv.FormatInt(d, 10))
	}
	b.WriteByte(']')
	return b.String()
}
