package mixture

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unmix-ml/unmix/internal/tensor"
)

// zeroedParams returns previous-parameter placeholders for M-step calls
// whose collapse path must not trigger.
func zeroedParams(numBatch, numComponents, numFeatures int) (*tensor.Tensor, *tensor.Tensor) {
	return tensor.Zeros(tensor.Shape{numBatch, numComponents, numFeatures}),
		tensor.Zeros(tensor.Shape{numBatch, numComponents, numFeatures, numFeatures})
}

func TestMStepUniformRespGivesSampleMean(t *testing.T) {
	data, err := tensor.FromSlice([]float64{
		0, 0,
		2, 4,
		4, 8,
	}, tensor.Shape{1, 3, 2})
	require.NoError(t, err)
	resp := tensor.Full(tensor.Shape{1, 3, 2}, 0.5)

	prevMeans, prevCov := zeroedParams(1, 2, 2)
	means, _, prior := mStep(data, resp, prevMeans, prevCov, DefaultConfig(2))

	for k := 0; k < 2; k++ {
		assert.InDelta(t, 2.0, means.At(0, k, 0), 1e-12)
		assert.InDelta(t, 4.0, means.At(0, k, 1), 1e-12)
	}

	// Prior is the unnormalized soft count: 3 samples at weight 0.5 each.
	require.True(t, prior.Shape().Equal(tensor.Shape{1, 2, 1}))
	assert.InDelta(t, 1.5, prior.At(0, 0, 0), 1e-12)
	assert.InDelta(t, 1.5, prior.At(0, 1, 0), 1e-12)
}

func TestMStepHardAssignment(t *testing.T) {
	data, err := tensor.FromSlice([]float64{0, 2, 10, 12}, tensor.Shape{1, 4, 1})
	require.NoError(t, err)
	resp, err := tensor.FromSlice([]float64{
		1, 0,
		1, 0,
		0, 1,
		0, 1,
	}, tensor.Shape{1, 4, 2})
	require.NoError(t, err)

	prevMeans, prevCov := zeroedParams(1, 2, 1)
	means, cov, prior := mStep(data, resp, prevMeans, prevCov, DefaultConfig(2))

	assert.InDelta(t, 1.0, means.At(0, 0, 0), 1e-12)
	assert.InDelta(t, 11.0, means.At(0, 1, 0), 1e-12)

	// Per-component population variance of {0, 2} and {10, 12} is 1.
	assert.InDelta(t, 1.0, cov.At(0, 0, 0, 0), 1e-12)
	assert.InDelta(t, 1.0, cov.At(0, 1, 0, 0), 1e-12)

	assert.InDelta(t, 2.0, prior.At(0, 0, 0), 1e-12)
	assert.InDelta(t, 2.0, prior.At(0, 1, 0), 1e-12)
}

func TestMStepSoftWeightsEnterCovarianceTwice(t *testing.T) {
	// The centered rows are weighted by resp before the outer product while
	// the denominator is the plain responsibility sum, so a uniform resp of
	// 0.5 halves the hard-assignment variance. This matches the truncated-EM
	// update this package reproduces, not the textbook covariance update.
	data, err := tensor.FromSlice([]float64{0, 2}, tensor.Shape{1, 2, 1})
	require.NoError(t, err)
	resp := tensor.Full(tensor.Shape{1, 2, 2}, 0.5)

	prevMeans, prevCov := zeroedParams(1, 2, 1)
	_, cov, _ := mStep(data, resp, prevMeans, prevCov, DefaultConfig(2))

	// mean = 1; numerator = (0.5*(-1))^2 + (0.5*1)^2 = 0.5; denominator = 1.
	assert.InDelta(t, 0.5, cov.At(0, 0, 0, 0), 1e-12)
	assert.InDelta(t, 0.5, cov.At(0, 1, 0, 0), 1e-12)
}

func TestMStepAppliesRegCovarFloor(t *testing.T) {
	// Identical samples produce a zero covariance that must be floored.
	data := tensor.Full(tensor.Shape{1, 3, 2}, 5)
	resp := tensor.Full(tensor.Shape{1, 3, 1}, 1)

	cfg := DefaultConfig(1)
	cfg.RegCovar = 1e-3
	cfg.CovarianceType = CovarianceFull

	prevMeans, prevCov := zeroedParams(1, 1, 2)
	_, cov, _ := mStep(data, resp, prevMeans, prevCov, cfg)

	for _, v := range cov.Data() {
		assert.GreaterOrEqual(t, v, 1e-3)
	}
}

func TestMStepDiagZeroesOffDiagonals(t *testing.T) {
	data, err := tensor.FromSlice([]float64{
		1, 2,
		3, 5,
		-2, 0,
		4, 1,
	}, tensor.Shape{1, 4, 2})
	require.NoError(t, err)
	resp := tensor.Full(tensor.Shape{1, 4, 2}, 0.5)

	prevMeans, prevCov := zeroedParams(1, 2, 2)
	_, cov, _ := mStep(data, resp, prevMeans, prevCov, DefaultConfig(2))

	for k := 0; k < 2; k++ {
		assert.Zero(t, cov.At(0, k, 0, 1))
		assert.Zero(t, cov.At(0, k, 1, 0))
		assert.GreaterOrEqual(t, cov.At(0, k, 0, 0), DefaultRegCovar)
		assert.GreaterOrEqual(t, cov.At(0, k, 1, 1), DefaultRegCovar)
	}
}

func TestMStepEmptyComponentKeepsPreviousParameters(t *testing.T) {
	data, err := tensor.FromSlice([]float64{0, 2}, tensor.Shape{1, 2, 1})
	require.NoError(t, err)
	// Component 1 receives no responsibility at all.
	resp, err := tensor.FromSlice([]float64{
		1, 0,
		1, 0,
	}, tensor.Shape{1, 2, 2})
	require.NoError(t, err)

	prevMeans, err := tensor.FromSlice([]float64{-5, 7}, tensor.Shape{1, 2, 1})
	require.NoError(t, err)
	prevCov, err := tensor.FromSlice([]float64{0.5, 9}, tensor.Shape{1, 2, 1, 1})
	require.NoError(t, err)

	means, cov, prior := mStep(data, resp, prevMeans, prevCov, DefaultConfig(2))

	// Component 0 is refit, component 1 carries its previous parameters.
	assert.InDelta(t, 1.0, means.At(0, 0, 0), 1e-12)
	assert.Equal(t, 7.0, means.At(0, 1, 0))
	assert.Equal(t, 9.0, cov.At(0, 1, 0, 0))

	assert.InDelta(t, 2.0, prior.At(0, 0, 0), 1e-12)
	assert.Zero(t, prior.At(0, 1, 0))
}
