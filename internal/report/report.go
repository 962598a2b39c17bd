package report

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"doralyzer/internal/domain/catalog"
	"doralyzer/internal/domain/model"
	"doralyzer/internal/domain/scoring"
	"doralyzer/internal/i18n"
)

// Fixed column widths of the question table, in mm. Together they fill the
// printable width of an A4 page with default margins.
const (
	colPromptWidth      = 95.0
	colAnswerWidth      = 45.0
	colObservationWidth = 50.0

	rowLineHeight = 5.0
	pageBreakAt   = 270.0
)

var (
	txtReportTitle = i18n.Text{EN: "DORA Compliance Report", ES: "Informe de cumplimiento DORA"}
	txtProvider    = i18n.Text{EN: "Provider", ES: "Proveedor"}
	txtEntity      = i18n.Text{EN: "Financial entity", ES: "Entidad financiera"}
	txtUser        = i18n.Text{EN: "Submitted by", ES: "Enviado por"}
	txtDate        = i18n.Text{EN: "Date", ES: "Fecha"}
	txtColQuestion = i18n.Text{EN: "Question", ES: "Pregunta"}
	txtColAnswer   = i18n.Text{EN: "Answer", ES: "Respuesta"}
	txtColNote     = i18n.Text{EN: "Observation", ES: "Observación"}
)

// PDFRenderer builds the report document: page 1 carries the title, the
// submission metadata and the embedded chart image; the following pages a
// three-column table of prompt, selected option label and observation.
type PDFRenderer struct {
	catalog *catalog.Catalog
}

// NewPDFRenderer creates a new PDFRenderer over the question catalog.
func NewPDFRenderer(cat *catalog.Catalog) *PDFRenderer {
	return &PDFRenderer{catalog: cat}
}

// Render produces the PDF for a submission and returns its bytes and file
// name.
func (r *PDFRenderer) Render(sub model.Submission, scores []scoring.CategoryScore, loc i18n.Locale) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	// Core fonts cover the Spanish accents via the cp1252 translator.
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	// Title.
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, tr(txtReportTitle.In(loc)), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	// The four metadata lines.
	pdf.SetFont("Helvetica", "", 12)
	meta := []struct {
		label i18n.Text
		value string
	}{
		{txtProvider, sub.Provider},
		{txtEntity, sub.FinancialEntity},
		{txtUser, sub.UserName},
		{txtDate, sub.CreatedTime().Format("2006-01-02 15:04")},
	}
	for _, m := range meta {
		pdf.CellFormat(0, 7, tr(fmt.Sprintf("%s: %s", m.label.In(loc), m.value)), "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	// Chart image.
	png, err := RenderChart(scores, loc)
	if err != nil {
		return nil, "", err
	}
	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("scores", opts, bytes.NewReader(png))
	pdf.ImageOptions("scores", 15, pdf.GetY(), 180, 0, false, opts, 0, "")

	// Question table on its own page.
	pdf.AddPage()
	r.writeTableHeader(pdf, tr, loc)
	pdf.SetFont("Helvetica", "", 10)
	for _, q := range r.catalog.Questions() {
		prompt := catalog.ResolvePrompt(q, loc, sub.Provider, sub.FinancialEntity)
		answer := ""
		if value, ok := sub.Answers[q.ID]; ok {
			answer, _ = q.OptionLabel(value, loc)
		}
		note := sub.Observations[q.ID]
		r.writeTableRow(pdf, tr, loc, prompt, answer, note)
	}

	if pdf.Err() {
		return nil, "", fmt.Errorf("failed to build PDF: %w", pdf.Error())
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", fmt.Errorf("failed to output PDF: %w", err)
	}
	return buf.Bytes(), reportFilename(sub), nil
}

func (r *PDFRenderer) writeTableHeader(pdf *gofpdf.Fpdf, tr func(string) string, loc i18n.Locale) {
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(colPromptWidth, 8, tr(txtColQuestion.In(loc)), "1", 0, "L", false, 0, "")
	pdf.CellFormat(colAnswerWidth, 8, tr(txtColAnswer.In(loc)), "1", 0, "L", false, 0, "")
	pdf.CellFormat(colObservationWidth, 8, tr(txtColNote.In(loc)), "1", 1, "L", false, 0, "")
}

// writeTableRow draws one table row with cell borders sized to the tallest
// column, breaking to a fresh page (with a repeated header) when the row
// would overflow.
func (r *PDFRenderer) writeTableRow(pdf *gofpdf.Fpdf, tr func(string) string, loc i18n.Locale, prompt, answer, note string) {
	cells := []struct {
		width float64
		text  string
	}{
		{colPromptWidth, tr(prompt)},
		{colAnswerWidth, tr(answer)},
		{colObservationWidth, tr(note)},
	}

	lines := 1
	for _, cell := range cells {
		if n := len(pdf.SplitText(cell.text, cell.width-2)); n > lines {
			lines = n
		}
	}
	rowHeight := float64(lines)*rowLineHeight + 2

	if pdf.GetY()+rowHeight > pageBreakAt {
		pdf.AddPage()
		r.writeTableHeader(pdf, tr, loc)
		pdf.SetFont("Helvetica", "", 10)
	}

	x, y := pdf.GetXY()
	for _, cell := range cells {
		pdf.Rect(x, y, cell.width, rowHeight, "D")
		pdf.SetXY(x+1, y+1)
		pdf.MultiCell(cell.width-2, rowLineHeight, cell.text, "", "L", false)
		x += cell.width
	}
	pdf.SetXY(10, y+rowHeight)
}

func reportFilename(sub model.Submission) string {
	slug := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(sub.Provider), " ", "_"))
	if slug == "" {
		slug = "assessment"
	}
	return fmt.Sprintf("dora_report_%s_%d.pdf", slug, sub.Key())
}
