package hist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func flat(n int, lo, hi float64) *H1 {
	h := NewH1Uniform(n, lo, hi)
	for i := 0; i < n; i++ {
		h.Fill(h.BinCenter(i), 1)
	}
	return h
}

func TestRebin_MovesContentByBinCentre(t *testing.T) {
	// GIVEN ten unit bins with one entry each
	h := flat(10, 0, 10)
	h.Name = "h"

	// WHEN rebinned into [0,2), [2,5), [5,10) without width normalisation
	r, err := Rebin(h, []float64{0, 2, 5, 10}, false)
	require.NoError(t, err)

	// THEN contents are summed and the edges replaced
	assert.Equal(t, []float64{0, 2, 5, 10}, r.Edges())
	assert.Equal(t, []float64{2, 3, 5}, r.Contents())
	assert.Equal(t, "h", r.Name)
	assert.Equal(t, 10.0, h.Integral(), "source is untouched")
}

func TestRebin_NormByWidth_KeepsFlatDistributionFlat(t *testing.T) {
	h := flat(10, 0, 10)

	r, err := Rebin(h, []float64{0, 2, 5, 10}, true)
	require.NoError(t, err)

	for i := 0; i < r.Len(); i++ {
		assert.InDelta(t, 1.0, r.Content(i), 1e-12, "bin %d", i)
	}
}

func TestRebin_OutOfRangeCentresGoToFlows(t *testing.T) {
	h := flat(10, 0, 10)

	r, err := Rebin(h, []float64{2, 4, 6}, false)
	require.NoError(t, err)

	assert.Equal(t, 2.0, r.UnderflowW())
	assert.Equal(t, 4.0, r.OverflowW())
	assert.Equal(t, 4.0, r.Integral())
}

func TestRebin_InvalidEdges(t *testing.T) {
	_, err := Rebin(flat(2, 0, 2), []float64{3, 1}, false)
	assert.ErrorIs(t, err, ErrUnsortedEdges)
}
