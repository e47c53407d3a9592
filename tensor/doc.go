// Copyright 2026 The unmix Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the dense batched tensor type consumed by the
// unmix mixture core.
//
// # Overview
//
// A Tensor is a dense row-major float64 array with an explicit shape. By
// convention the leading dimension is the batch axis and the trailing
// dimension the feature axis; the mixture core flattens whatever lies in
// between into a sample axis and restores it on output.
//
// # Basic Usage
//
//	import "github.com/unmix-ml/unmix/tensor"
//
//	func main() {
//	    // 1 batch element, 4 samples, 2 features.
//	    x, err := tensor.FromSlice([]float64{
//	        -3.1, -2.9,
//	        -3.0, -3.2,
//	        2.9, 3.1,
//	        3.2, 3.0,
//	    }, tensor.Shape{1, 4, 2})
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    _ = x.At(0, 2, 1) // 3.1
//	}
//
// There is no broadcasting engine and no device abstraction: tensors are
// plain CPU buffers, and code that needs real linear algebra hands matrix
// slices to gonum.
package tensor
