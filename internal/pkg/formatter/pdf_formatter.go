package formatter

import (
	"bytes"
	"fmt"
	"os"

	"github.com/jung-kurt/gofpdf"

	"github.com/solacetech/solace-backend/internal/entity"
)

const (
	pdfContentType   = "application/pdf"
	pdfFileExtension = ".pdf"

	// pdfFontName is the internal name used by gofpdf
	// for the UTF-8 capable font.
	pdfFontName = "DejaVuSans"

	// Relative paths where the TTF font may live.
	// In Docker runtime we copy fonts to /app/ttf,
	// so for the compiled binary the path is ./ttf/DejaVuSans.ttf.
	pdfFontRuntimePath = "ttf/DejaVuSans.ttf"

	// Source-relative path (useful when running from repo root with `go run`).
	pdfFontSourcePath = "internal/pkg/formatter/ttf/DejaVuSans.ttf"
)

type PDFFormatter struct{}

func NewPDFFormatter() *PDFFormatter {
	return &PDFFormatter{}
}

// resolveFontPath tries to find the DejaVuSans font in
// runtime layout (next to the binary) or source layout.
func resolveFontPath() string {
	if _, err := os.Stat(pdfFontRuntimePath); err == nil {
		return pdfFontRuntimePath
	}

	if _, err := os.Stat(pdfFontSourcePath); err == nil {
		return pdfFontSourcePath
	}

	return ""
}

func (pf *PDFFormatter) Format(report *entity.EstimateReport) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	fontName := "Arial"
	if fontPath := resolveFontPath(); fontPath != "" {
		// Register regular and bold styles under the same family name
		pdf.AddUTF8Font(pdfFontName, "", fontPath)
		pdf.AddUTF8Font(pdfFontName, "B", fontPath)
		fontName = pdfFontName
	}

	pdf.SetFont(fontName, "B", 18)
	pdf.Cell(0, 10, baseTitle)
	pdf.Ln(14)

	pdf.SetFont(fontName, "B", 12)
	pdf.CellFormat(90, 8, "Phase", "1", 0, "L", false, 0, "")
	pdf.CellFormat(45, 8, "Duration (weeks)", "1", 0, "R", false, 0, "")
	pdf.CellFormat(45, 8, "Cost (USD)", "1", 1, "R", false, 0, "")

	pdf.SetFont(fontName, "", 11)
	for _, ph := range report.Phases {
		pdf.CellFormat(90, 7, ph.Phase, "1", 0, "L", false, 0, "")
		pdf.CellFormat(45, 7, fmt.Sprintf("%.1f", ph.DurationWeeks), "1", 0, "R", false, 0, "")
		pdf.CellFormat(45, 7, fmt.Sprintf("%.2f", ph.CostUSD), "1", 1, "R", false, 0, "")
	}

	pdf.SetFont(fontName, "B", 11)
	pdf.CellFormat(90, 7, "Total", "1", 0, "L", false, 0, "")
	pdf.CellFormat(45, 7, fmt.Sprintf("%.1f", report.TotalDurationWeeks), "1", 0, "R", false, 0, "")
	pdf.CellFormat(45, 7, fmt.Sprintf("%.2f", report.TotalCostUSD), "1", 1, "R", false, 0, "")

	if len(report.Materials) > 0 {
		pdf.Ln(8)
		pdf.SetFont(fontName, "B", 14)
		pdf.Cell(0, 10, "Resources & Materials")
		pdf.Ln(12)

		pdf.SetFont(fontName, "B", 11)
		pdf.CellFormat(40, 8, "Category", "1", 0, "L", false, 0, "")
		pdf.CellFormat(70, 8, "Item", "1", 0, "L", false, 0, "")
		pdf.CellFormat(35, 8, "Quantity", "1", 0, "L", false, 0, "")
		pdf.CellFormat(35, 8, "Cost (USD)", "1", 1, "R", false, 0, "")

		pdf.SetFont(fontName, "", 10)
		for _, m := range report.Materials {
			pdf.CellFormat(40, 7, m.Category, "1", 0, "L", false, 0, "")
			pdf.CellFormat(70, 7, m.Item, "1", 0, "L", false, 0, "")
			pdf.CellFormat(35, 7, m.QuantityEstimate, "1", 0, "L", false, 0, "")
			pdf.CellFormat(35, 7, fmt.Sprintf("%.2f", m.Cost), "1", 1, "R", false, 0, "")
		}

		pdf.SetFont(fontName, "B", 10)
		pdf.CellFormat(145, 7, "Total", "1", 0, "L", false, 0, "")
		pdf.CellFormat(35, 7, fmt.Sprintf("%.2f", report.MaterialsTotalUSD), "1", 1, "R", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (pf *PDFFormatter) ContentType() string {
	return pdfContentType
}

func (pf *PDFFormatter) FileExtension() string {
	return pdfFileExtension
}
