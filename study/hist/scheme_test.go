package hist

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchemes_ExpandToStudyBinning(t *testing.T) {
	tests := []struct {
		name   string
		scheme Scheme
		want   []float64
	}{
		{
			name:   "lepton pt",
			scheme: LeptonPtScheme,
			want: []float64{
				0, 4, 8, 12, 16, 20, 24, 28, 32, 36, 40, 44, 48, 52, 56,
				60, 70, 80, 90,
				100, 120, 140, 160, 180,
				200, 250, 300,
				400,
			},
		},
		{
			name:   "leading jet pt",
			scheme: LeadJetPtScheme,
			want: []float64{
				50, 70, 90,
				100, 110, 120, 130, 140, 150, 160, 170, 180, 190,
				200, 210, 220, 230, 240, 250, 260, 270, 280, 290,
				300, 320, 340, 360, 380,
				400, 450, 500, 550, 600,
				700,
			},
		},
		{
			name:   "subleading jet pt",
			scheme: SubleadJetPtScheme,
			want: []float64{
				0, 10, 20, 30, 40, 50, 60, 70, 80, 90,
				100, 110, 120, 130, 140, 150, 160, 170, 180, 190,
				200, 210, 220, 230, 240,
				250, 270, 290, 310, 330,
				350, 400,
				500,
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.scheme.Edges()
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("edges mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSTScheme_EndsBelowLastRangeStop(t *testing.T) {
	got, err := STScheme.Edges()
	require.NoError(t, err)

	assert.Len(t, got, 5+30+8+4)
	assert.Equal(t, 100.0, got[0])
	assert.Equal(t, 2000.0, got[len(got)-1])
}

func TestScheme_Invalid(t *testing.T) {
	tests := map[string]Scheme{
		"empty":          nil,
		"single edge":    {Values(1)},
		"bad range":      {{Range: []float64{0, 1}}},
		"zero step":      {Span(0, 10, 0)},
		"overlap":        {Span(0, 10, 5), Values(5)},
		"range + values": {{Range: []float64{0, 1, 1}, Values: []float64{3}}},
	}
	for name, s := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := s.Edges()
			assert.Error(t, err)
		})
	}
}
