package mixture

import "fmt"

// CovarianceType selects the structural constraint applied to component
// covariance matrices after initialization and after every M-step.
type CovarianceType int

// Supported covariance structures.
//
// CovarianceDiag is the zero value: it is the easiest structure to fit and
// the recommended default. CovarianceFull is harder to fit with truncated
// EM and is not recommended as a default.
const (
	// CovarianceDiag gives each component its own diagonal covariance.
	CovarianceDiag CovarianceType = iota
	// CovarianceFull gives each component its own unconstrained matrix.
	CovarianceFull
	// CovarianceTied makes all components within a batch element share one
	// full covariance matrix.
	CovarianceTied
	// CovarianceSpherical gives each component a single variance shared
	// across all features.
	CovarianceSpherical
)

// String returns a human-readable covariance type name.
func (c CovarianceType) String() string {
	switch c {
	case CovarianceDiag:
		return "diag"
	case CovarianceFull:
		return "full"
	case CovarianceTied:
		return "tied"
	case CovarianceSpherical:
		return "spherical"
	default:
		return fmt.Sprintf("CovarianceType(%d)", int(c))
	}
}

// ParseCovarianceType converts a covariance type name to its enum value.
// Only the exact names "diag", "full", "tied" and "spherical" are accepted;
// anything else fails with ErrInvalidConfig.
func ParseCovarianceType(s string) (CovarianceType, error) {
	switch s {
	case "diag":
		return CovarianceDiag, nil
	case "full":
		return CovarianceFull, nil
	case "tied":
		return CovarianceTied, nil
	case "spherical":
		return CovarianceSpherical, nil
	default:
		return 0, fmt.Errorf("%w: unknown covariance type %q", ErrInvalidConfig, s)
	}
}

// Default configuration values applied by DefaultConfig and, for the two
// scalars, by Fit when the corresponding Config field is left zero.
const (
	DefaultNumIter        = 5
	DefaultCovarianceInit = 1.0
	DefaultRegCovar       = 1e-4
)

// Config holds the fixed parameters of a mixture fit.
type Config struct {
	// NumComponents is the number of Gaussian components. Must be >= 1.
	NumComponents int

	// NumIter is the number of EM iterations. Must be >= 0. A value of 0
	// runs initialization plus a single E-step and no M-step, so the
	// returned parameters are the initial ones. Note that the zero value
	// means zero iterations, not the DefaultNumIter used by DefaultConfig.
	NumIter int

	// CovarianceType is the structural constraint on component covariances.
	CovarianceType CovarianceType

	// CovarianceInit is the variance placed on the diagonal when no initial
	// covariance is supplied. Must be > 0; zero selects
	// DefaultCovarianceInit.
	CovarianceInit float64

	// RegCovar is the element-wise floor clamped into the covariance after
	// every M-step, keeping matrices well-conditioned for density
	// evaluation. Must be > 0; zero selects DefaultRegCovar.
	RegCovar float64

	// Seed seeds the generator used to draw initial means from the data.
	// It has no effect when initial means are supplied.
	Seed uint64
}

// DefaultConfig returns a Config for numComponents components with the
// default iteration count, diagonal covariance, and regularization.
func DefaultConfig(numComponents int) Config {
	return Config{
		NumComponents:  numComponents,
		NumIter:        DefaultNumIter,
		CovarianceType: CovarianceDiag,
		CovarianceInit: DefaultCovarianceInit,
		RegCovar:       DefaultRegCovar,
	}
}

// withDefaults fills the scalar fields whose zero value is not usable.
func (c Config) withDefaults() Config {
	if c.CovarianceInit == 0 {
		c.CovarianceInit = DefaultCovarianceInit
	}
	if c.RegCovar == 0 {
		c.RegCovar = DefaultRegCovar
	}
	return c
}

// Validate checks the configuration. All failures wrap ErrInvalidConfig.
func (c Config) Validate() error {
	if c.NumComponents < 1 {
		return fmt.Errorf("%w: NumComponents = %d, must be >= 1", ErrInvalidConfig, c.NumComponents)
	}
	if c.NumIter < 0 {
		return fmt.Errorf("%w: NumIter = %d, must be >= 0", ErrInvalidConfig, c.NumIter)
	}
	switch c.CovarianceType {
	case CovarianceDiag, CovarianceFull, CovarianceTied, CovarianceSpherical:
	default:
		return fmt.Errorf("%w: unknown covariance type %v", ErrInvalidConfig, c.CovarianceType)
	}
	if c.CovarianceInit <= 0 {
		return fmt.Errorf("%w: CovarianceInit = %g, must be > 0", ErrInvalidConfig, c.CovarianceInit)
	}
	if c.RegCovar <= 0 {
		return fmt.Errorf("%w: RegCovar = %g, must be > 0", ErrInvalidConfig, c.RegCovar)
	}
	return nil
}
