package formatter

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/solacetech/solace-backend/internal/entity"
)

const (
	csvContentType   = "text/csv; charset=utf-8"
	csvFileExtension = ".csv"
)

type CSVFormatter struct{}

func NewCSVFormatter() *CSVFormatter {
	return &CSVFormatter{}
}

// Format renders the phase table followed, after a blank line, by the
// materials table. Single file because the download endpoint serves one body.
func (cf *CSVFormatter) Format(report *entity.EstimateReport) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	records := [][]string{{"Phase", "Predicted Duration (weeks)", "Predicted Cost (USD)"}}
	for _, ph := range report.Phases {
		records = append(records, []string{
			ph.Phase,
			strconv.FormatFloat(ph.DurationWeeks, 'f', -1, 64),
			strconv.FormatFloat(ph.CostUSD, 'f', 2, 64),
		})
	}
	records = append(records, []string{
		"Total",
		strconv.FormatFloat(report.TotalDurationWeeks, 'f', -1, 64),
		strconv.FormatFloat(report.TotalCostUSD, 'f', 2, 64),
	})

	if err := w.WriteAll(records); err != nil {
		return nil, err
	}

	if len(report.Materials) > 0 {
		buf.WriteString("\n")

		materials := [][]string{{"Category", "Item", "Quantity Estimate", "Adjusted Cost (USD)"}}
		for _, m := range report.Materials {
			materials = append(materials, []string{
				m.Category,
				m.Item,
				m.QuantityEstimate,
				strconv.FormatFloat(m.Cost, 'f', 2, 64),
			})
		}
		materials = append(materials, []string{
			"Total", "", "",
			strconv.FormatFloat(report.MaterialsTotalUSD, 'f', 2, 64),
		})

		if err := w.WriteAll(materials); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (cf *CSVFormatter) ContentType() string {
	return csvContentType
}

func (cf *CSVFormatter) FileExtension() string {
	return csvFileExtension
}
