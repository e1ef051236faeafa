// Package artifacts loads the pre-fitted model artifacts (regression models,
// one-hot encoders, numeric scaler) from their exported JSON parameter files.
// Artifacts are loaded once at startup, are read-only for the process
// lifetime, and are injected into the components that need them.
package artifacts

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/solacetech/solace-backend/internal/entity"
)

// Regressor is the narrow contract every prediction artifact exposes.
type Regressor interface {
	Predict(features []float64) (float64, error)
}

// Encoder one-hot encodes a fixed tuple of categorical fields.
type Encoder interface {
	Transform(values []string) ([]float64, error)
	// Width is the total length of the encoded vector.
	Width() int
}

// Scaler standardizes numeric fields with pre-fitted mean/scale.
type Scaler interface {
	Transform(values []float64) ([]float64, error)
}

// Bundle holds every artifact the feature assembler and phase predictor use.
type Bundle struct {
	CostModels      map[entity.CostBucket]Regressor
	DurationModel   Regressor
	CostEncoder     Encoder
	DurationEncoder Encoder
	DurationScaler  Scaler
}

// Artifact file names, matching the exported training outputs.
const (
	fileCostLow         = "low_custom.json"
	fileCostMid         = "mid_custom.json"
	fileCostHigh        = "high_custom.json"
	fileDurationModel   = "duration_model.json"
	fileCostEncoder     = "ohe.json"
	fileDurationEncoder = "ohe_duration.json"
	fileScaler          = "scaler.json"
)

// Load reads every artifact from dir. Any missing or malformed file is a
// startup failure; the service does not run with a partial bundle.
func Load(dir string) (*Bundle, error) {
	b := &Bundle{CostModels: make(map[entity.CostBucket]Regressor, 3)}

	for bucket, name := range map[entity.CostBucket]string{
		entity.CostBucketLow:  fileCostLow,
		entity.CostBucketMid:  fileCostMid,
		entity.CostBucketHigh: fileCostHigh,
	} {
		model, err := loadLinearModel(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("load %s cost model: %w", bucket, err)
		}
		b.CostModels[bucket] = model
	}

	model, err := loadLinearModel(filepath.Join(dir, fileDurationModel))
	if err != nil {
		return nil, fmt.Errorf("load duration model: %w", err)
	}
	b.DurationModel = model

	if b.CostEncoder, err = loadOneHotEncoder(filepath.Join(dir, fileCostEncoder)); err != nil {
		return nil, fmt.Errorf("load cost encoder: %w", err)
	}
	if b.DurationEncoder, err = loadOneHotEncoder(filepath.Join(dir, fileDurationEncoder)); err != nil {
		return nil, fmt.Errorf("load duration encoder: %w", err)
	}
	if b.DurationScaler, err = loadStandardScaler(filepath.Join(dir, fileScaler)); err != nil {
		return nil, fmt.Errorf("load scaler: %w", err)
	}

	return b, nil
}

// LinearModel is a fitted linear regressor: intercept + coefficients.
type LinearModel struct {
	Intercept    float64   `json:"intercept"`
	Coefficients []float64 `json:"coefficients"`
}

func (m *LinearModel) Predict(features []float64) (float64, error) {
	if len(features) != len(m.Coefficients) {
		return 0, fmt.Errorf("feature vector has %d values, model expects %d",
			len(features), len(m.Coefficients))
	}
	sum := m.Intercept
	for i, c := range m.Coefficients {
		sum += c * features[i]
	}
	return sum, nil
}

func loadLinearModel(path string) (*LinearModel, error) {
	var m LinearModel
	if err := readJSON(path, &m); err != nil {
		return nil, err
	}
	if len(m.Coefficients) == 0 {
		return nil, fmt.Errorf("%s: model has no coefficients", path)
	}
	return &m, nil
}

// UnknownPolicy is the encoder's own policy for categories outside its fitted
// vocabulary, recorded at training time.
type UnknownPolicy string

const (
	UnknownIgnore UnknownPolicy = "ignore" // all-zeros block
	UnknownError  UnknownPolicy = "error"
)

// OneHotEncoder holds the fitted category vocabulary, one list per field, in
// the field order the downstream models were trained on.
type OneHotEncoder struct {
	Categories    [][]string    `json:"categories"`
	HandleUnknown UnknownPolicy `json:"handle_unknown"`

	width int
}

func (e *OneHotEncoder) Width() int { return e.width }

func (e *OneHotEncoder) Transform(values []string) ([]float64, error) {
	if len(values) != len(e.Categories) {
		return nil, fmt.Errorf("encoder fitted on %d fields, got %d values",
			len(e.Categories), len(values))
	}
	out := make([]float64, 0, e.width)
	for i, value := range values {
		block := make([]float64, len(e.Categories[i]))
		found := false
		for j, category := range e.Categories[i] {
			if category == value {
				block[j] = 1
				found = true
				break
			}
		}
		if !found && e.HandleUnknown != UnknownIgnore {
			return nil, fmt.Errorf("unknown category %q for field %d", value, i)
		}
		out = append(out, block...)
	}
	return out, nil
}

func loadOneHotEncoder(path string) (*OneHotEncoder, error) {
	var e OneHotEncoder
	if err := readJSON(path, &e); err != nil {
		return nil, err
	}
	if len(e.Categories) == 0 {
		return nil, fmt.Errorf("%s: encoder has no categories", path)
	}
	if e.HandleUnknown == "" {
		e.HandleUnknown = UnknownError
	}
	for _, field := range e.Categories {
		e.width += len(field)
	}
	return &e, nil
}

// StandardScaler standardizes values as (x - mean) / scale per field.
type StandardScaler struct {
	Mean  []float64 `json:"mean"`
	Scale []float64 `json:"scale"`
}

func (s *StandardScaler) Transform(values []float64) ([]float64, error) {
	if len(values) != len(s.Mean) {
		return nil, fmt.Errorf("scaler fitted on %d fields, got %d values",
			len(s.Mean), len(values))
	}
	out := make([]float64, len(values))
	for i, v := range values {
		scale := s.Scale[i]
		if scale == 0 {
			scale = 1
		}
		out[i] = (v - s.Mean[i]) / scale
	}
	return out, nil
}

func loadStandardScaler(path string) (*StandardScaler, error) {
	var s StandardScaler
	if err := readJSON(path, &s); err != nil {
		return nil, err
	}
	if len(s.Mean) == 0 || len(s.Mean) != len(s.Scale) {
		return nil, fmt.Errorf("%s: scaler mean/scale lengths invalid", path)
	}
	return &s, nil
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read artifact: %w", err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parse artifact %s: %w", path, err)
	}
	return nil
}
