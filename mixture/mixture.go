// Copyright 2026 The unmix Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package mixture

import (
	"github.com/unmix-ml/unmix/internal/mixture"
	"github.com/unmix-ml/unmix/tensor"
)

// CovarianceType selects the structural constraint applied to component
// covariance matrices.
type CovarianceType = mixture.CovarianceType

// Supported covariance structures. CovarianceDiag is the zero value and
// the recommended default.
const (
	CovarianceDiag      CovarianceType = mixture.CovarianceDiag
	CovarianceFull      CovarianceType = mixture.CovarianceFull
	CovarianceTied      CovarianceType = mixture.CovarianceTied
	CovarianceSpherical CovarianceType = mixture.CovarianceSpherical
)

// Default configuration values.
const (
	DefaultNumIter        = mixture.DefaultNumIter
	DefaultCovarianceInit = mixture.DefaultCovarianceInit
	DefaultRegCovar       = mixture.DefaultRegCovar
)

// Sentinel errors returned by Fit; match with errors.Is.
var (
	ErrInvalidConfig        = mixture.ErrInvalidConfig
	ErrShapeMismatch        = mixture.ErrShapeMismatch
	ErrNumericalInstability = mixture.ErrNumericalInstability
)

// Config holds the fixed parameters of a mixture fit.
type Config = mixture.Config

// Init carries optional warm-start means and covariance for Fit.
type Init = mixture.Init

// Result bundles the outputs of a mixture fit.
type Result = mixture.Result

// DefaultConfig returns a Config for numComponents components with the
// default iteration count, diagonal covariance, and regularization.
func DefaultConfig(numComponents int) Config {
	return mixture.DefaultConfig(numComponents)
}

// ParseCovarianceType converts one of the names "diag", "full", "tied",
// "spherical" to its enum value.
func ParseCovarianceType(s string) (CovarianceType, error) {
	return mixture.ParseCovarianceType(s)
}

// Fit runs truncated EM on data, shape (batch, ..., features), and returns
// the fitted mixture. init may be nil to initialize from the data.
func Fit(data *tensor.Tensor, cfg Config, init *Init) (*Result, error) {
	return mixture.Fit(data, cfg, init)
}
