package mixture

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/unmix-ml/unmix/internal/tensor"
)

// weightFloor is the total responsibility mass below which a component is
// treated as empty in the M-step.
const weightFloor = 1e-12

// mStep re-estimates means, covariance, and prior from the current
// responsibilities.
//
// data is (batch, samples, features), resp is (batch, samples, components).
// The covariance numerator weights the centered rows by resp before the
// outer product, the denominator is the plain responsibility sum, and every
// fresh entry is floor-clamped to RegCovar before the structural constraint
// runs.
//
// Empty-component policy: a component whose responsibility mass falls below
// weightFloor keeps its previous mean and covariance (carried over from
// prevMeans/prevCov) instead of dividing by a vanishing weight sum. Its
// prior still reports the near-zero soft count.
//
// prior is the unnormalized per-component responsibility sum with shape
// (batch, components, 1): a soft sample count, never divided by the number
// of samples.
func mStep(data, resp, prevMeans, prevCov *tensor.Tensor, cfg Config) (means, cov, prior *tensor.Tensor) {
	numBatch := data.Dim(0)
	numSamples := data.Dim(1)
	numFeatures := data.Dim(2)
	numComponents := resp.Dim(2)
	blockSize := numFeatures * numFeatures

	means = tensor.Zeros(tensor.Shape{numBatch, numComponents, numFeatures})
	cov = tensor.Zeros(tensor.Shape{numBatch, numComponents, numFeatures, numFeatures})
	prior = tensor.Zeros(tensor.Shape{numBatch, numComponents, 1})

	dataVals := data.Data()
	respVals := resp.Data()
	meanVals := means.Data()
	covVals := cov.Data()
	priorVals := prior.Data()

	collapsed := make([]bool, numBatch*numComponents)
	weighted := make([]float64, numFeatures) // resp-weighted centered row

	for b := 0; b < numBatch; b++ {
		for k := 0; k < numComponents; k++ {
			weightSum := 0.0
			for s := 0; s < numSamples; s++ {
				weightSum += respVals[(b*numSamples+s)*numComponents+k]
			}
			priorVals[b*numComponents+k] = weightSum

			if weightSum < weightFloor {
				collapsed[b*numComponents+k] = true
				continue
			}

			// Mean: responsibility-weighted average of the data rows.
			mu := meanVals[(b*numComponents+k)*numFeatures : (b*numComponents+k+1)*numFeatures]
			for s := 0; s < numSamples; s++ {
				w := respVals[(b*numSamples+s)*numComponents+k]
				row := dataVals[(b*numSamples+s)*numFeatures : (b*numSamples+s+1)*numFeatures]
				floats.AddScaled(mu, w, row)
			}
			floats.Scale(1/weightSum, mu)

			// Covariance: sum over samples of the outer product of the
			// resp-weighted centered row, divided by the responsibility sum.
			blk := block(covVals, b, k, numComponents, blockSize)
			for s := 0; s < numSamples; s++ {
				w := respVals[(b*numSamples+s)*numComponents+k]
				row := dataVals[(b*numSamples+s)*numFeatures : (b*numSamples+s+1)*numFeatures]
				for f, v := range row {
					weighted[f] = w * (v - mu[f])
				}
				for i := 0; i < numFeatures; i++ {
					wi := weighted[i]
					for j := 0; j < numFeatures; j++ {
						blk[i*numFeatures+j] += wi * weighted[j]
					}
				}
			}
			for i := range blk {
				blk[i] = math.Max(blk[i]/weightSum, cfg.RegCovar)
			}
		}
	}

	// Carry over parameters for empty components after the fresh blocks are
	// clamped, so previous structure (exact zeros off-diagonal and the like)
	// survives untouched.
	prevMeanVals := prevMeans.Data()
	prevCovVals := prevCov.Data()
	for b := 0; b < numBatch; b++ {
		for k := 0; k < numComponents; k++ {
			if !collapsed[b*numComponents+k] {
				continue
			}
			off := (b*numComponents + k) * numFeatures
			copy(meanVals[off:off+numFeatures], prevMeanVals[off:off+numFeatures])
			copy(block(covVals, b, k, numComponents, blockSize),
				block(prevCovVals, b, k, numComponents, blockSize))
		}
	}

	enforceCovarianceType(cov, cfg.CovarianceType)
	return means, cov, prior
}
