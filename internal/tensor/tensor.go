package tensor

import "fmt"

// Tensor is a dense row-major float64 tensor.
//
// It is the carrier type for batched numeric data in unmix: the leading
// dimension is always the batch axis, the trailing dimension the feature
// axis, and anything in between belongs to the caller. The mixture core
// flattens and restores those middle dimensions around a fit.
//
// Tensor is deliberately small: no views, no broadcasting, no devices.
// Matrix-shaped slices of a tensor are handed to gonum when real linear
// algebra is needed.
type Tensor struct {
	data    []float64
	shape   Shape
	strides []int
}

// Zeros creates a tensor of the given shape filled with zeros.
func Zeros(shape Shape) *Tensor {
	if err := shape.Validate(); err != nil {
		panic(err) // Shape validation should prevent this
	}
	s := shape.Clone()
	return &Tensor{
		data:    make([]float64, s.NumElements()),
		shape:   s,
		strides: s.ComputeStrides(),
	}
}

// Full creates a tensor of the given shape with every element set to value.
func Full(shape Shape, value float64) *Tensor {
	t := Zeros(shape)
	for i := range t.data {
		t.data[i] = value
	}
	return t
}

// FromSlice creates a tensor that takes ownership of data.
//
// The length of data must equal shape.NumElements().
func FromSlice(data []float64, shape Shape) (*Tensor, error) {
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("invalid shape: %w", err)
	}
	if len(data) != shape.NumElements() {
		return nil, fmt.Errorf("data length %d does not match shape %v (%d elements)",
			len(data), shape, shape.NumElements())
	}
	s := shape.Clone()
	return &Tensor{
		data:    data,
		shape:   s,
		strides: s.ComputeStrides(),
	}, nil
}

// Shape returns the tensor's shape. The caller must not modify it.
func (t *Tensor) Shape() Shape {
	return t.shape
}

// NumDims returns the number of dimensions.
func (t *Tensor) NumDims() int {
	return len(t.shape)
}

// Dim returns the size of dimension i. Negative i counts from the end,
// so Dim(-1) is the trailing (feature) dimension.
func (t *Tensor) Dim(i int) int {
	if i < 0 {
		i += len(t.shape)
	}
	return t.shape[i]
}

// NumElements returns the total number of elements.
func (t *Tensor) NumElements() int {
	return len(t.data)
}

// Data returns the underlying flat storage. Mutations are visible to
// every tensor sharing the buffer (see Reshape).
func (t *Tensor) Data() []float64 {
	return t.data
}

// Offset returns the flat index of the given multi-dimensional index.
func (t *Tensor) Offset(idx ...int) int {
	if len(idx) != len(t.shape) {
		panic(fmt.Sprintf("index rank %d does not match tensor rank %d", len(idx), len(t.shape)))
	}
	off := 0
	for i, x := range idx {
		if x < 0 || x >= t.shape[i] {
			panic(fmt.Sprintf("index %d out of range for dimension %d (size %d)", x, i, t.shape[i]))
		}
		off += x * t.strides[i]
	}
	return off
}

// At returns the element at the given multi-dimensional index.
func (t *Tensor) At(idx ...int) float64 {
	return t.data[t.Offset(idx...)]
}

// Set stores v at the given multi-dimensional index.
func (t *Tensor) Set(v float64, idx ...int) {
	t.data[t.Offset(idx...)] = v
}

// Reshape returns a tensor with the same underlying data and a new shape.
// The element count must be unchanged. The returned tensor shares storage
// with the receiver.
func (t *Tensor) Reshape(shape Shape) (*Tensor, error) {
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("reshape: invalid shape: %w", err)
	}
	if shape.NumElements() != len(t.data) {
		return nil, fmt.Errorf("reshape: cannot reshape %v (%d elements) to %v (%d elements)",
			t.shape, len(t.data), shape, shape.NumElements())
	}
	s := shape.Clone()
	return &Tensor{
		data:    t.data,
		shape:   s,
		strides: s.ComputeStrides(),
	}, nil
}

// Clone returns a deep copy of the tensor.
func (t *Tensor) Clone() *Tensor {
	data := make([]float64, len(t.data))
	copy(data, t.data)
	return &Tensor{
		data:    data,
		shape:   t.shape.Clone(),
		strides: t.shape.ComputeStrides(),
	}
}
