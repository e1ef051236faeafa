package predictor

import (
	"context"
	"errors"
	"testing"

	"github.com/solacetech/solace-backend/internal/artifacts"
	"github.com/solacetech/solace-backend/internal/entity"
	"github.com/solacetech/solace-backend/internal/features"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubEmbedder struct{}

func (stubEmbedder) Embed(_ context.Context, _ string) ([]float64, error) {
	return []float64{1}, nil
}

type stubEncoder struct{ out []float64 }

func (s stubEncoder) Transform(_ []string) ([]float64, error) { return s.out, nil }
func (s stubEncoder) Width() int                              { return len(s.out) }

type stubScaler struct{}

func (stubScaler) Transform(values []float64) ([]float64, error) { return values, nil }

type stubModel struct {
	output float64
	err    error
	calls  int
}

func (m *stubModel) Predict(_ []float64) (float64, error) {
	m.calls++
	return m.output, m.err
}

func newTestPredictor(cost, duration *stubModel) *Predictor {
	assembler := features.NewAssembler(stubEmbedder{}, stubEncoder{out: []float64{1}}, stubEncoder{out: []float64{1}}, stubScaler{})
	bundle := &artifacts.Bundle{
		CostModels: map[entity.CostBucket]artifacts.Regressor{
			entity.CostBucketLow:  cost,
			entity.CostBucketMid:  cost,
			entity.CostBucketHigh: cost,
		},
		DurationModel: duration,
	}
	return New(assembler, bundle)
}

func TestPredictPhasesCanonicalOrder(t *testing.T) {
	p := newTestPredictor(&stubModel{output: 100}, &stubModel{output: 4})

	hints := map[string]string{
		// deliberately sparse and out of order
		"V. Construction": "20 weeks",
		"I. Scope":        "3 weeks",
	}
	got, err := p.PredictPhases(context.Background(), "a school", entity.CostBucketHigh, hints)
	require.NoError(t, err)
	require.Len(t, got, 5)

	wantOrder := []string{"I. Site Preperation", "II. Foundation", "III. Commissioning", "IV. Purch & Install", "V. Construction"}
	for i, est := range got {
		assert.Equal(t, wantOrder[i], est.Phase)
	}
	assert.Equal(t, 3.0, got[0].DurationWeeks)
	assert.Equal(t, 20.0, got[4].DurationWeeks)
	// phases without a usable hint fall back to the duration model
	assert.Equal(t, 4.0, got[1].DurationWeeks)
}

func TestPredictedCostNeverNegative(t *testing.T) {
	p := newTestPredictor(&stubModel{output: -25000}, &stubModel{output: 4})

	got, err := p.PredictPhases(context.Background(), "a school", entity.CostBucketLow,
		map[string]string{"I. Scope": "2"})
	require.NoError(t, err)
	for _, est := range got {
		assert.GreaterOrEqual(t, est.CostUSD, 0.0)
	}
}

func TestPredictionFailureAbortsBatch(t *testing.T) {
	cost := &stubModel{err: errors.New("bad artifact")}
	p := newTestPredictor(cost, &stubModel{output: 4})

	got, err := p.PredictPhases(context.Background(), "a school", entity.CostBucketMid,
		map[string]string{"I. Scope": "2", "II. Design": "3"})
	assert.ErrorIs(t, err, entity.ErrPredictionFailed)
	assert.Nil(t, got)
	// aborts on the first failure, no further predictor calls
	assert.Equal(t, 1, cost.calls)
}

func TestUnknownBucketFails(t *testing.T) {
	p := newTestPredictor(&stubModel{output: 1}, &stubModel{output: 1})
	_, err := p.PredictPhases(context.Background(), "x", entity.CostBucket("huge"), nil)
	assert.ErrorIs(t, err, entity.ErrPredictionFailed)
}
