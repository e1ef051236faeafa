package formatter

import (
	"bytes"
	"fmt"

	"github.com/solacetech/solace-backend/internal/entity"
)

const (
	markdownContentType   = "text/markdown; charset=utf-8"
	markdownFileExtension = ".md"
)

type MarkdownFormatter struct{}

func NewMarkdownFormatter() *MarkdownFormatter {
	return &MarkdownFormatter{}
}

func (mf *MarkdownFormatter) Format(report *entity.EstimateReport) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "# %s\n\n", baseTitle)

	buf.WriteString("| Phase | Predicted Duration (weeks) | Predicted Cost (USD) |\n")
	buf.WriteString("| --- | ---: | ---: |\n")
	for _, ph := range report.Phases {
		fmt.Fprintf(&buf, "| %s | %.1f | %.2f |\n", ph.Phase, ph.DurationWeeks, ph.CostUSD)
	}
	fmt.Fprintf(&buf, "| **Total** | %.1f | %.2f |\n", report.TotalDurationWeeks, report.TotalCostUSD)

	if len(report.Materials) > 0 {
		buf.WriteString("\n## Resources & Materials\n\n")
		buf.WriteString("| Category | Item | Quantity Estimate | Adjusted Cost (USD) |\n")
		buf.WriteString("| --- | --- | --- | ---: |\n")
		for _, m := range report.Materials {
			fmt.Fprintf(&buf, "| %s | %s | %s | %.2f |\n", m.Category, m.Item, m.QuantityEstimate, m.Cost)
		}
		fmt.Fprintf(&buf, "| **Total** | | | %.2f |\n", report.MaterialsTotalUSD)
	}

	return buf.Bytes(), nil
}

func (mf *MarkdownFormatter) ContentType() string {
	return markdownContentType
}

func (mf *MarkdownFormatter) FileExtension() string {
	return markdownFileExtension
}
