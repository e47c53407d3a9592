// Copyright 2026 The unmix Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"github.com/unmix-ml/unmix/internal/tensor"
)

// Shape represents the dimensions of a tensor.
// Example: Shape{2, 100, 20} is a batch of 2 with 100 samples of 20 features.
type Shape = tensor.Shape

// Tensor is a dense row-major float64 tensor.
type Tensor = tensor.Tensor

// Zeros creates a tensor of the given shape filled with zeros.
func Zeros(shape Shape) *Tensor {
	return tensor.Zeros(shape)
}

// Full creates a tensor of the given shape with every element set to value.
func Full(shape Shape, value float64) *Tensor {
	return tensor.Full(shape, value)
}

// FromSlice creates a tensor that takes ownership of data. The length of
// data must equal shape.NumElements().
func FromSlice(data []float64, shape Shape) (*Tensor, error) {
	return tensor.FromSlice(data, shape)
}
