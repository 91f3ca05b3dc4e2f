package hist

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewH1_InvalidEdges_ReturnsError(t *testing.T) {
	_, err := NewH1([]float64{1})
	assert.ErrorIs(t, err, ErrEmptyEdges)

	_, err = NewH1([]float64{0, 2, 2, 3})
	assert.ErrorIs(t, err, ErrUnsortedEdges)
}

func TestH1_Fill_RoutesValuesToBinsAndFlows(t *testing.T) {
	// GIVEN a histogram with edges 0, 1, 3
	h, err := NewH1([]float64{0, 1, 3})
	require.NoError(t, err)

	// WHEN values inside and outside the range are filled
	h.Fill(-0.5, 1)
	h.Fill(0, 1)
	h.Fill(0.999, 2)
	h.Fill(1, 3)
	h.Fill(2.5, 1)
	h.Fill(3, 4)

	// THEN each lands in the half-open bin or flow that contains it
	assert.Equal(t, []float64{3, 4}, h.Contents())
	assert.Equal(t, 1.0, h.UnderflowW())
	assert.Equal(t, 4.0, h.OverflowW())
	assert.Equal(t, int64(6), h.Entries())
	assert.Equal(t, 5.0, h.SumW2(0), "squared weights 1 + 4")
	assert.Equal(t, 7.0, h.Integral(), "flows are excluded from the integral")
}

func TestH1_Scale_ScalesErrorsQuadratically(t *testing.T) {
	h := NewH1Uniform(2, 0, 2)
	h.Fill(0.5, 2)
	h.Fill(1.5, 4)

	h.Scale(0.5)

	assert.Equal(t, []float64{1, 2}, h.Contents())
	assert.InDelta(t, 1.0, h.Error(0), 1e-12)
	assert.InDelta(t, 2.0, h.Error(1), 1e-12)
}

func TestH1_Clone_IsIndependent(t *testing.T) {
	h := NewH1Uniform(2, 0, 2)
	h.Fill(0.5, 1)

	c := h.Clone()
	c.Fill(0.5, 1)

	assert.Equal(t, 1.0, h.Content(0))
	assert.Equal(t, 2.0, c.Content(0))
}

func TestNormalize_UnitIntegral(t *testing.T) {
	h := NewH1Uniform(4, 0, 4)
	for i, w := range []float64{3, 1, 0, 6} {
		h.Fill(float64(i)+0.5, w)
	}

	Normalize(h)

	assert.InDelta(t, 1.0, h.Integral(), 1e-12)
	assert.InDelta(t, 0.6, h.Content(3), 1e-12)
}

func TestNormalize_ZeroIntegral_Unchanged(t *testing.T) {
	h := NewH1Uniform(4, 0, 4)

	Normalize(h)

	assert.Equal(t, 0.0, h.Integral())
	for _, v := range h.Contents() {
		assert.False(t, math.IsNaN(v))
	}
}

func TestDivide_PropagatesUncorrelatedErrors(t *testing.T) {
	num := NewH1Uniform(2, 0, 2)
	den := NewH1Uniform(2, 0, 2)
	for i := 0; i < 2; i++ {
		num.Fill(0.5, 1)
	}
	for i := 0; i < 4; i++ {
		den.Fill(0.5, 1)
	}

	r, err := Divide(num, den)
	require.NoError(t, err)

	assert.Equal(t, 0.5, r.Content(0))
	assert.InDelta(t, (2.0*16+4.0*4)/256, r.SumW2(0), 1e-12)
	assert.Equal(t, 0.0, r.Content(1), "empty denominator gives zero")
}

func TestDivide_BinningMismatch(t *testing.T) {
	_, err := Divide(NewH1Uniform(2, 0, 2), NewH1Uniform(3, 0, 2))
	assert.ErrorIs(t, err, ErrBinningMismatch)
}
