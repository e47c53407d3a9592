package mixture

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distmv"

	"github.com/unmix-ml/unmix/internal/tensor"
)

// respEpsilon is added to every raw component probability before L1
// normalization. It keeps a responsibility row well-defined when all
// component densities underflow to zero for a sample.
const respEpsilon = 1e-8

// eStep evaluates every sample under every component Gaussian.
//
// It returns resp (batch, samples, components), the L1-normalized posterior
// assignment of each sample, and logProb (batch, samples, components), the
// raw per-component log-density, not the log of resp.
//
// A covariance block that is singular or not positive definite fails with
// ErrNumericalInstability instead of letting NaN propagate.
func eStep(data, means, cov *tensor.Tensor) (resp, logProb *tensor.Tensor, err error) {
	numBatch := data.Dim(0)
	numSamples := data.Dim(1)
	numFeatures := data.Dim(2)
	numComponents := means.Dim(1)

	resp = tensor.Zeros(tensor.Shape{numBatch, numSamples, numComponents})
	logProb = tensor.Zeros(tensor.Shape{numBatch, numSamples, numComponents})

	dataVals := data.Data()
	meanVals := means.Data()
	covVals := cov.Data()
	respVals := resp.Data()
	logProbVals := logProb.Data()

	blockSize := numFeatures * numFeatures
	sigma := make([]float64, blockSize)

	for b := 0; b < numBatch; b++ {
		for k := 0; k < numComponents; k++ {
			mu := meanVals[(b*numComponents+k)*numFeatures : (b*numComponents+k+1)*numFeatures]
			// distmv factorizes sigma at construction and does not retain
			// it, so one scratch buffer serves every block.
			copy(sigma, block(covVals, b, k, numComponents, blockSize))
			normal, ok := distmv.NewNormal(mu, mat.NewSymDense(numFeatures, sigma), nil)
			if !ok {
				return nil, nil, fmt.Errorf(
					"e-step: covariance of component %d in batch %d is not positive definite"+
						" (try a larger RegCovar): %w", k, b, ErrNumericalInstability)
			}

			for s := 0; s < numSamples; s++ {
				x := dataVals[(b*numSamples+s)*numFeatures : (b*numSamples+s+1)*numFeatures]
				lp := normal.LogProb(x)
				if math.IsNaN(lp) {
					return nil, nil, fmt.Errorf(
						"e-step: log-density of sample %d under component %d in batch %d is NaN: %w",
						s, k, b, ErrNumericalInstability)
				}
				logProbVals[(b*numSamples+s)*numComponents+k] = lp
			}
		}

		// resp = normalize(exp(logProb) + eps) across the component axis.
		for s := 0; s < numSamples; s++ {
			off := (b*numSamples + s) * numComponents
			sum := 0.0
			for k := 0; k < numComponents; k++ {
				p := math.Exp(logProbVals[off+k]) + respEpsilon
				respVals[off+k] = p
				sum += p
			}
			for k := 0; k < numComponents; k++ {
				respVals[off+k] /= sum
			}
		}
	}

	return resp, logProb, nil
}
