package tensor

import (
	"fmt"
	"strconv"
	"strings"
)

// Shape is the dimension list of a tensor, outermost first. Throughout
// unmix the convention is (batch, ..., features): the leading dimension is
// the batch axis and the trailing one the feature axis.
type Shape []int

// NumElements multiplies the dimensions together. A zero-length shape is a
// scalar and counts one element.
func (s Shape) NumElements() int {
	n := 1
	for _, d := range s {
		n *= d
	}
	return n
}

// Validate rejects shapes containing non-positive dimensions.
func (s Shape) Validate() error {
	for i, d := range s {
		if d <= 0 {
			return fmt.Errorf("dimension %d is %d, must be positive", i, d)
		}
	}
	return nil
}

// Equal reports whether s and other list the same dimensions.
func (s Shape) Equal(other Shape) bool {
	if len(s) != len(other) {
		return false
	}
	for i, d := range s {
		if other[i] != d {
			return false
		}
	}
	return true
}

// Clone returns an independent copy of s.
func (s Shape) Clone() Shape {
	c := make(Shape, len(s))
	copy(c, s)
	return c
}

// String formats the shape as "(d0, d1, ...)", the notation used in the
// package documentation.
func (s Shape) String() string {
	parts := make([]string, len(s))
	for i, d := range s {
		parts[i] = strconv.Itoa(d)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// ComputeStrides returns the row-major strides of s: the step through flat
// storage that advances one index along each dimension. The trailing
// dimension is contiguous.
func (s Shape) ComputeStrides() []int {
	strides := make([]int, len(s))
	stride := 1
	for i := len(s) - 1; i >= 0; i-- {
		strides[i] = stride
		stride *= s[i]
	}
	return strides
}
