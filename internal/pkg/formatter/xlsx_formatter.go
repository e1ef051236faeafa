package formatter

import (
	"bytes"

	"github.com/unidoc/unioffice/spreadsheet"

	"github.com/solacetech/solace-backend/internal/entity"
)

const (
	xlsxContentType   = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	xlsxFileExtension = ".xlsx"
)

type XLSXFormatter struct{}

func NewXLSXFormatter() *XLSXFormatter {
	return &XLSXFormatter{}
}

// Format renders the report as a workbook with an estimates sheet and, when
// materials are present, a materials sheet.
func (xf *XLSXFormatter) Format(report *entity.EstimateReport) ([]byte, error) {
	wb := spreadsheet.New()
	defer wb.Close()

	sheet := wb.AddSheet()
	sheet.SetName("Estimates")

	header := sheet.AddRow()
	header.AddCell().SetString("Phase")
	header.AddCell().SetString("Predicted Duration (weeks)")
	header.AddCell().SetString("Predicted Cost (USD)")

	for _, ph := range report.Phases {
		row := sheet.AddRow()
		row.AddCell().SetString(ph.Phase)
		row.AddCell().SetNumber(ph.DurationWeeks)
		row.AddCell().SetNumber(ph.CostUSD)
	}

	total := sheet.AddRow()
	total.AddCell().SetString("Total")
	total.AddCell().SetNumber(report.TotalDurationWeeks)
	total.AddCell().SetNumber(report.TotalCostUSD)

	if len(report.Materials) > 0 {
		materials := wb.AddSheet()
		materials.SetName("Materials")

		mh := materials.AddRow()
		mh.AddCell().SetString("Category")
		mh.AddCell().SetString("Item")
		mh.AddCell().SetString("Quantity Estimate")
		mh.AddCell().SetString("Adjusted Cost (USD)")

		for _, m := range report.Materials {
			row := materials.AddRow()
			row.AddCell().SetString(m.Category)
			row.AddCell().SetString(m.Item)
			row.AddCell().SetString(m.QuantityEstimate)
			row.AddCell().SetNumber(m.Cost)
		}

		mt := materials.AddRow()
		mt.AddCell().SetString("Total")
		mt.AddCell().SetString("")
		mt.AddCell().SetString("")
		mt.AddCell().SetNumber(report.MaterialsTotalUSD)
	}

	var buf bytes.Buffer
	if err := wb.Save(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (xf *XLSXFormatter) ContentType() string {
	return xlsxContentType
}

func (xf *XLSXFormatter) FileExtension() string {
	return xlsxFileExtension
}
