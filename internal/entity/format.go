package entity

import "fmt"

// ExportFormat selects the download rendering of an estimate report.
type ExportFormat string

const (
	FormatXLSX     ExportFormat = "xlsx"
	FormatPDF      ExportFormat = "pdf"
	FormatCSV      ExportFormat = "csv"
	FormatMarkdown ExportFormat = "md"
)

// ParseExportFormat maps a query-string value onto a known format.
func ParseExportFormat(s string) (ExportFormat, error) {
	switch ExportFormat(s) {
	case FormatXLSX, FormatPDF, FormatCSV, FormatMarkdown:
		return ExportFormat(s), nil
	case "markdown":
		return FormatMarkdown, nil
	default:
		return "", fmt.Errorf("%w: format %q", ErrInvalidParameter, s)
	}
}
