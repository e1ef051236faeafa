// Package formatter renders estimate reports into downloadable documents.
package formatter

import (
	"fmt"

	"github.com/solacetech/solace-backend/internal/entity"
)

const baseTitle = "Solace Construction Estimates"

type Formatter interface {
	Format(report *entity.EstimateReport) ([]byte, error)
	ContentType() string
	FileExtension() string
}

type Factory struct{}

func NewFactory() *Factory {
	return &Factory{}
}

func (f *Factory) Create(format entity.ExportFormat) (Formatter, error) {
	switch format {
	case entity.FormatXLSX:
		return NewXLSXFormatter(), nil
	case entity.FormatPDF:
		return NewPDFFormatter(), nil
	case entity.FormatCSV:
		return NewCSVFormatter(), nil
	case entity.FormatMarkdown:
		return NewMarkdownFormatter(), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}
