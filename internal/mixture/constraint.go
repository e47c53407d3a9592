package mixture

import (
	"gonum.org/v1/gonum/floats"

	"github.com/unmix-ml/unmix/internal/tensor"
)

// enforceCovarianceType rewrites cov in place so that every
// (features, features) block satisfies the configured structure.
//
// cov has shape (batch, components, features, features). The switch is
// exhaustive over the validated enum: exactly one structure applies, so an
// ambiguous configuration can never trigger two rewrites.
func enforceCovarianceType(cov *tensor.Tensor, typ CovarianceType) {
	numBatch := cov.Dim(0)
	numComponents := cov.Dim(1)
	numFeatures := cov.Dim(2)
	blockSize := numFeatures * numFeatures
	data := cov.Data()

	switch typ {
	case CovarianceFull:
		// Unconstrained; regularized upstream.

	case CovarianceDiag:
		for b := 0; b < numBatch; b++ {
			for k := 0; k < numComponents; k++ {
				zeroOffDiagonal(block(data, b, k, numComponents, blockSize), numFeatures)
			}
		}

	case CovarianceSpherical:
		// Average each block over both feature axes to one scalar per
		// (batch, component), then place it on the diagonal.
		for b := 0; b < numBatch; b++ {
			for k := 0; k < numComponents; k++ {
				blk := block(data, b, k, numComponents, blockSize)
				variance := floats.Sum(blk) / float64(blockSize)
				for i := range blk {
					blk[i] = 0
				}
				for f := 0; f < numFeatures; f++ {
					blk[f*numFeatures+f] = variance
				}
			}
		}

	case CovarianceTied:
		// Average blocks across the component axis so every component in a
		// batch element shares one full matrix.
		mean := make([]float64, blockSize)
		for b := 0; b < numBatch; b++ {
			for i := range mean {
				mean[i] = 0
			}
			for k := 0; k < numComponents; k++ {
				floats.Add(mean, block(data, b, k, numComponents, blockSize))
			}
			floats.Scale(1/float64(numComponents), mean)
			for k := 0; k < numComponents; k++ {
				copy(block(data, b, k, numComponents, blockSize), mean)
			}
		}

	default:
		panic("mixture: unreachable covariance type " + typ.String())
	}
}

// block returns the (features, features) slice for (b, k).
func block(data []float64, b, k, numComponents, blockSize int) []float64 {
	off := (b*numComponents + k) * blockSize
	return data[off : off+blockSize]
}

// zeroOffDiagonal clears every entry of an n×n block outside the diagonal.
func zeroOffDiagonal(blk []float64, n int) {
	for i := 0; i < n; i++ {
		row := blk[i*n : (i+1)*n]
		for j := range row {
			if j != i {
				row[j] = 0
			}
		}
	}
}
