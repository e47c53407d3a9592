package mixture

import (
	"fmt"

	"github.com/unmix-ml/unmix/internal/tensor"
)

// Init carries optional warm-start parameters for Fit, for example from an
// external k-means pass. Either field may be nil.
type Init struct {
	// Means has shape (batch, components, features).
	Means *tensor.Tensor
	// Covariance has shape (batch, components, features, features), or
	// (batch, components, features) for a diagonal-only representation.
	Covariance *tensor.Tensor
}

// Result bundles the outputs of a mixture fit.
//
// Resp and LogProb come from the final E-step, which ran on the parameters
// from before the final M-step; Means, Covariance, and Prior come from that
// final M-step. The two halves are therefore one EM update out of phase,
// matching the truncated-EM formulation this implements.
type Result struct {
	// Resp (batch, *, components) holds the normalized soft assignment of
	// every sample; each row sums to 1 across components.
	Resp *tensor.Tensor
	// LogProb (batch, *, components) holds the raw per-component
	// log-density of every sample, not log(Resp).
	LogProb *tensor.Tensor
	// Means has shape (batch, components, features).
	Means *tensor.Tensor
	// Covariance has shape (batch, components, features, features); entries
	// outside the configured structure are zero.
	Covariance *tensor.Tensor
	// Prior (batch, components, 1) is the unnormalized responsibility sum
	// per component, a soft sample count.
	Prior *tensor.Tensor
}

// Fit runs truncated EM on data and returns the fitted mixture.
//
// data has shape (batch, ..., features); any middle dimensions are
// flattened into a single sample axis for the fit and restored on
// Result.Resp and Result.LogProb. The fit runs exactly cfg.NumIter
// iterations with no convergence check; NumIter 0 evaluates a single E-step
// on the initial parameters and skips the M-step entirely.
//
// Fit is pure: it holds no state between calls, never mutates data or the
// supplied init tensors, and is deterministic for a fixed seed.
func Fit(data *tensor.Tensor, cfg Config, init *Init) (*Result, error) {
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if data == nil {
		return nil, fmt.Errorf("%w: data tensor is nil", ErrShapeMismatch)
	}
	if data.NumDims() < 2 {
		return nil, fmt.Errorf("%w: data must have shape (batch, ..., features), got %v",
			ErrShapeMismatch, data.Shape())
	}

	numBatch := data.Dim(0)
	numFeatures := data.Dim(-1)
	numSamples := data.NumElements() / (numBatch * numFeatures)

	if err := validateInit(init, cfg, numBatch, numFeatures); err != nil {
		return nil, err
	}

	flat, err := data.Reshape(tensor.Shape{numBatch, numSamples, numFeatures})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrShapeMismatch, err)
	}

	means, cov := initParams(flat, cfg, init)

	var resp, logProb, prior *tensor.Tensor
	if cfg.NumIter == 0 {
		resp, logProb, err = eStep(flat, means, cov)
		if err != nil {
			return nil, err
		}
		prior = respSums(resp)
	}
	for i := 0; i < cfg.NumIter; i++ {
		resp, logProb, err = eStep(flat, means, cov)
		if err != nil {
			return nil, err
		}
		means, cov, prior = mStep(flat, resp, means, cov, cfg)
	}

	// Restore the caller's middle dimensions on the per-sample outputs.
	outShape := data.Shape().Clone()
	outShape[len(outShape)-1] = cfg.NumComponents
	resp, err = resp.Reshape(outShape)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrShapeMismatch, err)
	}
	logProb, err = logProb.Reshape(outShape)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrShapeMismatch, err)
	}

	return &Result{
		Resp:       resp,
		LogProb:    logProb,
		Means:      means,
		Covariance: cov,
		Prior:      prior,
	}, nil
}

// validateInit rejects warm-start tensors whose shapes disagree with the
// data or configuration, before any numeric work runs.
func validateInit(init *Init, cfg Config, numBatch, numFeatures int) error {
	if init == nil {
		return nil
	}
	if m := init.Means; m != nil {
		want := tensor.Shape{numBatch, cfg.NumComponents, numFeatures}
		if !m.Shape().Equal(want) {
			return fmt.Errorf("%w: initial means have shape %v, want %v",
				ErrShapeMismatch, m.Shape(), want)
		}
	}
	if c := init.Covariance; c != nil {
		wantDiag := tensor.Shape{numBatch, cfg.NumComponents, numFeatures}
		wantFull := tensor.Shape{numBatch, cfg.NumComponents, numFeatures, numFeatures}
		if !c.Shape().Equal(wantDiag) && !c.Shape().Equal(wantFull) {
			return fmt.Errorf("%w: initial covariance has shape %v, want %v or %v",
				ErrShapeMismatch, c.Shape(), wantDiag, wantFull)
		}
	}
	return nil
}

// respSums reduces resp (batch, samples, components) to the per-component
// responsibility sum (batch, components, 1). It is the prior for the
// zero-iteration path, where no M-step runs.
func respSums(resp *tensor.Tensor) *tensor.Tensor {
	numBatch := resp.Dim(0)
	numSamples := resp.Dim(1)
	numComponents := resp.Dim(2)
	prior := tensor.Zeros(tensor.Shape{numBatch, numComponents, 1})
	respVals := resp.Data()
	priorVals := prior.Data()
	for b := 0; b < numBatch; b++ {
		for s := 0; s < numSamples; s++ {
			off := (b*numSamples + s) * numComponents
			for k := 0; k < numComponents; k++ {
				priorVals[b*numComponents+k] += respVals[off+k]
			}
		}
	}
	return prior
}
