// Package features assembles the numeric vectors the regression artifacts
// consume. Concatenation order (embedding, one-hot categoricals, scaled
// numerics) is a contract with the fitted models, not a free choice.
package features

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/solacetech/solace-backend/internal/artifacts"
)

// Embedder turns free text into a fixed-length sentence vector.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float64, error)
}

// Context field values the models were trained with. The training data only
// contained finished projects, so every prediction row carries these.
const (
	statusComplete    = "Complete"
	endDateMissingVal = "True"
)

const daysPerWeek = 7

// Assembler builds feature vectors from a project description and phase
// context. All artifacts are pre-fitted, read-only and injected.
type Assembler struct {
	embedder        Embedder
	costEncoder     artifacts.Encoder
	durationEncoder artifacts.Encoder
	durationScaler  artifacts.Scaler
}

func NewAssembler(
	embedder Embedder,
	costEncoder artifacts.Encoder,
	durationEncoder artifacts.Encoder,
	durationScaler artifacts.Scaler,
) *Assembler {
	return &Assembler{
		embedder:        embedder,
		costEncoder:     costEncoder,
		durationEncoder: durationEncoder,
		durationScaler:  durationScaler,
	}
}

// CostFeatures assembles the cost-model vector:
// embedding ⊕ onehot(phase, project_status, timeline_status, end_date_missing)
// ⊕ scaled(duration in days).
func (a *Assembler) CostFeatures(ctx context.Context, description, phase string, durationWeeks float64) ([]float64, error) {
	embedding, err := a.embedder.Embed(ctx, description)
	if err != nil {
		return nil, fmt.Errorf("embed description: %w", err)
	}

	catFeats, err := a.costEncoder.Transform([]string{phase, statusComplete, statusComplete, endDateMissingVal})
	if err != nil {
		return nil, fmt.Errorf("encode categorical fields: %w", err)
	}

	numFeats, err := a.durationScaler.Transform([]float64{durationWeeks * daysPerWeek})
	if err != nil {
		return nil, fmt.Errorf("scale duration: %w", err)
	}

	out := make([]float64, 0, len(embedding)+len(catFeats)+len(numFeats))
	out = append(out, embedding...)
	out = append(out, catFeats...)
	out = append(out, numFeats...)
	return out, nil
}

// DurationFeatures assembles the duration-model vector:
// embedding ⊕ onehot(phase, project_status, timeline_status).
func (a *Assembler) DurationFeatures(ctx context.Context, description, phase string) ([]float64, error) {
	embedding, err := a.embedder.Embed(ctx, description)
	if err != nil {
		return nil, fmt.Errorf("embed description: %w", err)
	}

	catFeats, err := a.durationEncoder.Transform([]string{phase, statusComplete, statusComplete})
	if err != nil {
		return nil, fmt.Errorf("encode categorical fields: %w", err)
	}

	out := make([]float64, 0, len(embedding)+len(catFeats))
	out = append(out, embedding...)
	out = append(out, catFeats...)
	return out, nil
}

// ParseDurationWeeks pulls a non-negative number of weeks out of a noisy
// source string such as "12 weeks" or "about 3-4 weeks". LLM output is
// expected to be noisy here, so anything unparsable falls back to 0; the
// downstream models must always receive a finite vector.
func ParseDurationWeeks(raw string) float64 {
	var numeric strings.Builder
	for _, r := range raw {
		if (r >= '0' && r <= '9') || r == '.' {
			numeric.WriteRune(r)
		}
	}
	if numeric.Len() == 0 {
		return 0
	}
	weeks, err := strconv.ParseFloat(numeric.String(), 64)
	if err != nil || weeks < 0 {
		return 0
	}
	return weeks
}
