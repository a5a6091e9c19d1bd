package render

import (
	"bytes"
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"

	"github.com/simaogato/salesdash-backend/internal/usecase/report"
)

// Layout in millimetres on an A4 portrait page
const (
	inch         = 25.4
	figureWidth  = 5 * inch
	figureHeight = 3 * inch
)

// PDFWriter implements report.DocumentWriter with fpdf
type PDFWriter struct{}

// NewPDFWriter creates a new PDFWriter
func NewPDFWriter() *PDFWriter {
	return &PDFWriter{}
}

// Write lays the document out as: title, metric lines, then each figure
// under its heading at 5x3 inches.
func (p *PDFWriter) Write(w io.Writer, doc report.Document) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(doc.Title, true)
	pdf.SetCreationDate(doc.GeneratedAt)
	pdf.AddPage()

	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Helvetica", "B", 18)
	pdf.MultiCell(0, 9, tr(doc.Title), "", "L", false)
	pdf.Ln(0.5 * inch)

	pdf.SetFont("Helvetica", "", 11)
	for _, line := range doc.Lines {
		pdf.CellFormat(0, 6, tr(fmt.Sprintf("%s: %s", line.Label, line.Value)), "", 1, "L", false, 0, "")
	}
	pdf.Ln(0.5 * inch)

	opts := fpdf.ImageOptions{ImageType: "PNG", ReadDpi: false}
	left, _, _, _ := pdf.GetMargins()
	for _, fig := range doc.Figures {
		pdf.SetFont("Helvetica", "B", 14)
		pdf.CellFormat(0, 8, tr(fig.Heading), "", 1, "L", false, 0, "")
		pdf.Ln(0.3 * inch)

		pdf.RegisterImageOptionsReader(fig.Name, opts, bytes.NewReader(fig.PNG))
		pdf.ImageOptions(fig.Name, left, pdf.GetY(), figureWidth, figureHeight, true, opts, 0, "")
		pdf.Ln(0.5 * inch)
	}

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("failed to lay out pdf: %w", err)
	}
	return pdf.Output(w)
}
