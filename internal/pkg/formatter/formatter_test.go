package formatter

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solacetech/solace-backend/internal/entity"
)

func sampleReport() *entity.EstimateReport {
	return &entity.EstimateReport{
		Phases: []entity.PhaseEstimate{
			{Phase: "I. Site Preperation", DurationWeeks: 6, CostUSD: 250000},
			{Phase: "V. Construction", DurationWeeks: 40, CostUSD: 3200000},
		},
		TotalCostUSD:       3450000,
		TotalDurationWeeks: 46,
		Materials: []entity.AdjustedResource{
			{Category: "Structural", Item: "Steel", QuantityEstimate: "120 metric tonne", Cost: 480000},
		},
		MaterialsTotalUSD: 480000,
	}
}

func TestFactory_KnownFormats(t *testing.T) {
	factory := NewFactory()

	for _, format := range []entity.ExportFormat{
		entity.FormatXLSX, entity.FormatPDF, entity.FormatCSV, entity.FormatMarkdown,
	} {
		f, err := factory.Create(format)
		require.NoError(t, err, format)
		assert.NotEmpty(t, f.ContentType())
		assert.True(t, strings.HasPrefix(f.FileExtension(), "."))
	}

	_, err := factory.Create("docx")
	require.Error(t, err)
}

func TestMarkdownFormatter(t *testing.T) {
	out, err := NewMarkdownFormatter().Format(sampleReport())
	require.NoError(t, err)

	text := string(out)
	assert.Contains(t, text, "# Solace Construction Estimates")
	assert.Contains(t, text, "| I. Site Preperation | 6.0 | 250000.00 |")
	assert.Contains(t, text, "## Resources & Materials")
	assert.Contains(t, text, "120 metric tonne")
}

func TestCSVFormatter(t *testing.T) {
	out, err := NewCSVFormatter().Format(sampleReport())
	require.NoError(t, err)

	text := string(out)
	assert.Contains(t, text, "Phase,Predicted Duration (weeks),Predicted Cost (USD)")
	assert.Contains(t, text, "I. Site Preperation,6,250000.00")
	assert.Contains(t, text, "Total,46,3450000.00")
	assert.Contains(t, text, "Structural,Steel,120 metric tonne,480000.00")
}

func TestCSVFormatter_NoMaterials(t *testing.T) {
	report := sampleReport()
	report.Materials = nil
	report.MaterialsTotalUSD = 0

	out, err := NewCSVFormatter().Format(report)
	require.NoError(t, err)
	assert.NotContains(t, string(out), "Category")
}

func TestXLSXFormatter_ProducesWorkbook(t *testing.T) {
	if os.Getenv("UNIDOC_LICENSE_API_KEY") == "" {
		t.Skip("unioffice needs a license key to save workbooks")
	}

	out, err := NewXLSXFormatter().Format(sampleReport())
	require.NoError(t, err)

	// xlsx files are zip archives
	require.GreaterOrEqual(t, len(out), 4)
	assert.Equal(t, []byte{'P', 'K'}, out[:2])
}

func TestPDFFormatter_ProducesPDF(t *testing.T) {
	out, err := NewPDFFormatter().Format(sampleReport())
	require.NoError(t, err)

	require.GreaterOrEqual(t, len(out), 5)
	assert.Equal(t, "%PDF-", string(out[:5]))
}
