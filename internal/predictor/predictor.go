// Package predictor turns a project description plus per-phase duration
// hints into cost and duration estimates using the pre-fitted regression
// artifacts.
package predictor

import (
	"context"
	"fmt"
	"math"

	"github.com/solacetech/solace-backend/internal/artifacts"
	"github.com/solacetech/solace-backend/internal/entity"
	"github.com/solacetech/solace-backend/internal/features"
)

// Phase pairs the code used in model training and LLM prompts with the name
// shown to users.
type Phase struct {
	Code    string
	Display string
}

// Phases is the canonical phase list. Estimates are always produced in this
// order regardless of how the duration hints arrive.
var Phases = []Phase{
	{Code: "I. Scope", Display: "I. Site Preperation"},
	{Code: "II. Design", Display: "II. Foundation"},
	{Code: "III. Commissioning", Display: "III. Commissioning"},
	{Code: "IV. Purch & Install", Display: "IV. Purch & Install"},
	{Code: "V. Construction", Display: "V. Construction"},
}

type Predictor struct {
	assembler     *features.Assembler
	costModels    map[entity.CostBucket]artifacts.Regressor
	durationModel artifacts.Regressor
}

func New(assembler *features.Assembler, bundle *artifacts.Bundle) *Predictor {
	return &Predictor{
		assembler:     assembler,
		costModels:    bundle.CostModels,
		durationModel: bundle.DurationModel,
	}
}

// PredictPhases produces one estimate per canonical phase.
//
// durationHints maps phase code to the LLM's raw duration string; a hint that
// does not parse falls back to the fitted duration model. Predicted costs are
// clamped at 0 since negative outputs are not domain-meaningful.
//
// The first artifact failure aborts the whole batch: the caller gets a single
// aggregate error and no partial results. Phases are visited in canonical
// order so the failure point is deterministic.
func (p *Predictor) PredictPhases(
	ctx context.Context,
	description string,
	bucket entity.CostBucket,
	durationHints map[string]string,
) ([]entity.PhaseEstimate, error) {
	model, ok := p.costModels[bucket]
	if !ok {
		return nil, fmt.Errorf("%w: no cost model for bucket %q", entity.ErrPredictionFailed, bucket)
	}

	estimates := make([]entity.PhaseEstimate, 0, len(Phases))
	for _, phase := range Phases {
		weeks := features.ParseDurationWeeks(durationHints[phase.Code])
		if weeks == 0 {
			predicted, err := p.predictDuration(ctx, description, phase.Code)
			if err != nil {
				return nil, fmt.Errorf("%w: phase %s: %v", entity.ErrPredictionFailed, phase.Code, err)
			}
			weeks = predicted
		}

		vector, err := p.assembler.CostFeatures(ctx, description, phase.Code, weeks)
		if err != nil {
			return nil, fmt.Errorf("%w: phase %s: %v", entity.ErrPredictionFailed, phase.Code, err)
		}

		cost, err := model.Predict(vector)
		if err != nil {
			return nil, fmt.Errorf("%w: phase %s: %v", entity.ErrPredictionFailed, phase.Code, err)
		}

		estimates = append(estimates, entity.PhaseEstimate{
			Phase:         phase.Display,
			DurationWeeks: round2(weeks),
			CostUSD:       round2(math.Max(cost, 0)),
		})
	}
	return estimates, nil
}

func (p *Predictor) predictDuration(ctx context.Context, description, phaseCode string) (float64, error) {
	vector, err := p.assembler.DurationFeatures(ctx, description, phaseCode)
	if err != nil {
		return 0, err
	}
	weeks, err := p.durationModel.Predict(vector)
	if err != nil {
		return 0, err
	}
	return math.Max(weeks, 0), nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
