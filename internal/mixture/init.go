package mixture

import (
	"golang.org/x/exp/rand"

	"github.com/unmix-ml/unmix/internal/tensor"
)

// initParams produces the means and covariance the first E-step runs on.
//
// data has shape (batch, samples, features); init may be nil or carry
// partial warm-start parameters (already shape-checked by Fit).
//
// Missing means are drawn from the data: for each batch element,
// NumComponents sample indices are drawn uniformly with replacement, and
// the corresponding rows become the initial means. Duplicates are allowed;
// that matches the intended initialization, not an oversight.
//
// Missing covariance starts as CovarianceInit on every diagonal. A supplied
// 3-D covariance (batch, components, features) is expanded onto the
// diagonal of a full matrix. In all cases the result is diagonalized and
// then passed through the structural constraint, so a supplied full matrix
// loses its off-diagonal entries here even under CovarianceFull.
func initParams(data *tensor.Tensor, cfg Config, init *Init) (means, cov *tensor.Tensor) {
	numBatch := data.Dim(0)
	numSamples := data.Dim(1)
	numFeatures := data.Dim(2)
	k := cfg.NumComponents

	if init != nil && init.Means != nil {
		means = init.Means.Clone()
	} else {
		means = tensor.Zeros(tensor.Shape{numBatch, k, numFeatures})
		rng := rand.New(rand.NewSource(cfg.Seed))
		src := data.Data()
		dst := means.Data()
		for b := 0; b < numBatch; b++ {
			for c := 0; c < k; c++ {
				s := rng.Intn(numSamples)
				row := src[(b*numSamples+s)*numFeatures : (b*numSamples+s+1)*numFeatures]
				copy(dst[(b*k+c)*numFeatures:(b*k+c+1)*numFeatures], row)
			}
		}
	}

	switch {
	case init == nil || init.Covariance == nil:
		cov = tensor.Zeros(tensor.Shape{numBatch, k, numFeatures, numFeatures})
		fillDiagonalScalar(cov, cfg.CovarianceInit)
	case init.Covariance.NumDims() == 3:
		cov = expandDiagonal(init.Covariance)
	default:
		cov = init.Covariance.Clone()
	}

	enforceCovarianceType(cov, CovarianceDiag)
	enforceCovarianceType(cov, cfg.CovarianceType)
	return means, cov
}

// fillDiagonalScalar sets every diagonal entry of every block to value.
func fillDiagonalScalar(cov *tensor.Tensor, value float64) {
	numComponents := cov.Dim(1)
	numFeatures := cov.Dim(2)
	blockSize := numFeatures * numFeatures
	data := cov.Data()
	for b := 0; b < cov.Dim(0); b++ {
		for k := 0; k < numComponents; k++ {
			blk := block(data, b, k, numComponents, blockSize)
			for f := 0; f < numFeatures; f++ {
				blk[f*numFeatures+f] = value
			}
		}
	}
}

// expandDiagonal turns a (batch, components, features) per-feature variance
// tensor into full (batch, components, features, features) matrices with
// those variances on the diagonal.
func expandDiagonal(diag *tensor.Tensor) *tensor.Tensor {
	numBatch := diag.Dim(0)
	numComponents := diag.Dim(1)
	numFeatures := diag.Dim(2)
	cov := tensor.Zeros(tensor.Shape{numBatch, numComponents, numFeatures, numFeatures})
	src := diag.Data()
	dst := cov.Data()
	blockSize := numFeatures * numFeatures
	for b := 0; b < numBatch; b++ {
		for k := 0; k < numComponents; k++ {
			row := src[(b*numComponents+k)*numFeatures : (b*numComponents+k+1)*numFeatures]
			blk := block(dst, b, k, numComponents, blockSize)
			for f, v := range row {
				blk[f*numFeatures+f] = v
			}
		}
	}
	return cov
}
