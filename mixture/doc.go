// Copyright 2026 The unmix Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package mixture fits batched Gaussian mixture models with a fixed number
// of truncated EM iterations.
//
// # Overview
//
// Fit consumes a data tensor with an explicit batch dimension, shape
// (batch, ..., features), and soft-clusters every sample into a fixed
// number of components, independently per batch element. It is the
// soft-assignment primitive of a source-separation pipeline: the samples
// are typically embeddings of time-frequency bins and the responsibilities
// become per-source weights downstream. The package itself knows nothing
// about audio.
//
// # Basic Usage
//
//	import (
//	    "github.com/unmix-ml/unmix/mixture"
//	    "github.com/unmix-ml/unmix/tensor"
//	)
//
//	func main() {
//	    data, _ := tensor.FromSlice(embeddings, tensor.Shape{1, 512, 20})
//
//	    cfg := mixture.DefaultConfig(2)
//	    cfg.Seed = 42
//	    result, err := mixture.Fit(data, cfg, nil)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    // result.Resp: (1, 512, 2), rows sum to 1 across components.
//	}
//
// # Covariance structures
//
// Each component covariance is materialized as a full (features, features)
// matrix; the configured CovarianceType constrains its structure after
// initialization and after every M-step:
//
//   - CovarianceDiag: per-component, per-feature variances (default)
//   - CovarianceSpherical: one variance per component
//   - CovarianceTied: one full matrix shared by all components
//   - CovarianceFull: unconstrained (hardest to fit with truncated EM)
//
// # Numerical behavior
//
// The fit always runs the configured number of iterations; there is no
// convergence check. Covariance entries are floor-clamped to
// Config.RegCovar after every M-step. A covariance that still fails the
// positive-definiteness check during density evaluation surfaces as
// ErrNumericalInstability rather than NaN output; raising RegCovar and
// retrying is the intended recovery.
//
// Everything is synchronous and stateless: two Fit calls with the same
// data, configuration, and seed return identical results.
package mixture
