package features

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedEmbedder struct {
	vector []float64
}

func (f *fixedEmbedder) Embed(_ context.Context, _ string) ([]float64, error) {
	return f.vector, nil
}

type fakeEncoder struct {
	out []float64
}

func (f *fakeEncoder) Transform(values []string) ([]float64, error) { return f.out, nil }
func (f *fakeEncoder) Width() int                                   { return len(f.out) }

type fakeScaler struct {
	lastInput []float64
	out       []float64
}

func (f *fakeScaler) Transform(values []float64) ([]float64, error) {
	f.lastInput = values
	return f.out, nil
}

func TestCostFeaturesConcatenationOrder(t *testing.T) {
	scaler := &fakeScaler{out: []float64{9}}
	a := NewAssembler(
		&fixedEmbedder{vector: []float64{1, 2}},
		&fakeEncoder{out: []float64{3, 4}},
		&fakeEncoder{out: []float64{0}},
		scaler,
	)

	got, err := a.CostFeatures(context.Background(), "a school", "I. Scope", 2)
	require.NoError(t, err)

	// embedding, then one-hot, then scaled numeric, in exactly this order.
	assert.Equal(t, []float64{1, 2, 3, 4, 9}, got)
	// duration is converted to days before scaling
	assert.Equal(t, []float64{14}, scaler.lastInput)
}

func TestDurationFeaturesOmitNumericBlock(t *testing.T) {
	a := NewAssembler(
		&fixedEmbedder{vector: []float64{5}},
		&fakeEncoder{out: []float64{7}},
		&fakeEncoder{out: []float64{8, 9}},
		&fakeScaler{out: []float64{1}},
	)

	got, err := a.DurationFeatures(context.Background(), "a school", "I. Scope")
	require.NoError(t, err)
	assert.Equal(t, []float64{5, 8, 9}, got)
}

func TestCostFeaturesAreFiniteWithNoisyDuration(t *testing.T) {
	a := NewAssembler(
		&fixedEmbedder{vector: []float64{1}},
		&fakeEncoder{out: []float64{1}},
		&fakeEncoder{out: []float64{1}},
		&fakeScaler{out: []float64{0}},
	)

	weeks := ParseDurationWeeks("about 3-4 weeks")
	got, err := a.CostFeatures(context.Background(), "desc", "I. Scope", weeks)
	require.NoError(t, err)
	for _, v := range got {
		assert.False(t, math.IsNaN(v) || math.IsInf(v, 0))
	}
}

func TestParseDurationWeeks(t *testing.T) {
	cases := []struct {
		raw  string
		want float64
	}{
		{"12", 12},
		{"12 weeks", 12},
		{"4.5 weeks", 4.5},
		{"about 3-4 weeks", 34}, // digit filter keeps both digits
		{"unknown", 0},
		{"", 0},
		{"3.5.2", 0}, // two dots do not parse; fall back
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ParseDurationWeeks(tc.raw), "raw=%q", tc.raw)
	}
}
