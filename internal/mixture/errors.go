package mixture

import "errors"

// Sentinel errors returned by Fit. Wrapped errors carry the failing
// operation and indices; match with errors.Is.
var (
	// ErrInvalidConfig reports a Config that fails validation, including an
	// unknown CovarianceType.
	ErrInvalidConfig = errors.New("mixture: invalid configuration")

	// ErrShapeMismatch reports data, means, or covariance tensors whose
	// shapes are inconsistent with each other or with the configuration.
	// It is returned before any numeric work starts.
	ErrShapeMismatch = errors.New("mixture: shape mismatch")

	// ErrNumericalInstability reports a singular or non-positive-definite
	// covariance encountered during density evaluation. Callers can recover
	// by increasing Config.RegCovar and retrying.
	ErrNumericalInstability = errors.New("mixture: numerical instability")
)
