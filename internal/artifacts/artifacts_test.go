package artifacts

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/solacetech/solace-backend/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeArtifact(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func writeFullBundle(t *testing.T, dir string) {
	t.Helper()
	model := `{"intercept": 1.5, "coefficients": [2, 0.5]}`
	for _, name := range []string{"low_custom.json", "mid_custom.json", "high_custom.json", "duration_model.json"} {
		writeArtifact(t, dir, name, model)
	}
	writeArtifact(t, dir, "ohe.json",
		`{"categories": [["I. Scope", "II. Design"], ["Complete", "In Progress"]], "handle_unknown": "ignore"}`)
	writeArtifact(t, dir, "ohe_duration.json",
		`{"categories": [["I. Scope", "II. Design"]], "handle_unknown": "ignore"}`)
	writeArtifact(t, dir, "scaler.json", `{"mean": [70], "scale": [35]}`)
}

func TestLoadFullBundle(t *testing.T) {
	dir := t.TempDir()
	writeFullBundle(t, dir)

	b, err := Load(dir)
	require.NoError(t, err)

	assert.Len(t, b.CostModels, 3)
	assert.NotNil(t, b.CostModels[entity.CostBucketHigh])
	assert.NotNil(t, b.DurationModel)
	assert.Equal(t, 4, b.CostEncoder.Width())
	assert.Equal(t, 2, b.DurationEncoder.Width())
}

func TestLoadFailsOnMissingArtifact(t *testing.T) {
	dir := t.TempDir()
	writeFullBundle(t, dir)
	require.NoError(t, os.Remove(filepath.Join(dir, "scaler.json")))

	_, err := Load(dir)
	assert.Error(t, err)
}

func TestLinearModelPredict(t *testing.T) {
	m := &LinearModel{Intercept: 1.5, Coefficients: []float64{2, 0.5}}

	got, err := m.Predict([]float64{3, 4})
	require.NoError(t, err)
	assert.InDelta(t, 1.5+6+2, got, 1e-9)

	_, err = m.Predict([]float64{1})
	assert.Error(t, err)
}

func TestOneHotEncoderTransform(t *testing.T) {
	e := &OneHotEncoder{
		Categories:    [][]string{{"a", "b"}, {"x"}},
		HandleUnknown: UnknownIgnore,
		width:         3,
	}

	got, err := e.Transform([]string{"b", "x"})
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 1, 1}, got)

	// Unknown category under "ignore" policy yields an all-zeros block.
	got, err = e.Transform([]string{"zzz", "x"})
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0, 1}, got)
}

func TestOneHotEncoderUnknownErrorPolicy(t *testing.T) {
	e := &OneHotEncoder{
		Categories:    [][]string{{"a"}},
		HandleUnknown: UnknownError,
		width:         1,
	}
	_, err := e.Transform([]string{"b"})
	assert.Error(t, err)
}

func TestStandardScalerTransform(t *testing.T) {
	s := &StandardScaler{Mean: []float64{70}, Scale: []float64{35}}

	got, err := s.Transform([]float64{105})
	require.NoError(t, err)
	assert.InDelta(t, 1.0, got[0], 1e-9)

	// Zero scale must not divide by zero.
	s = &StandardScaler{Mean: []float64{1}, Scale: []float64{0}}
	got, err = s.Transform([]float64{3})
	require.NoError(t, err)
	assert.InDelta(t, 2.0, got[0], 1e-9)
}
