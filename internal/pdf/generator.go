package pdf

import (
	"bytes"
	"errors"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/nurpe/bill-studio/internal/model"
	"github.com/nurpe/bill-studio/internal/render"
)

var ErrEmptySheet = errors.New("sheet has nothing to print")

type Generator struct {
	fontName string
}

func NewGenerator() *Generator {
	return &Generator{fontName: "Helvetica"}
}

func (g *Generator) Generate(sheet *render.Sheet) ([]byte, error) {
	if sheet.Empty() {
		return nil, ErrEmptySheet
	}

	// Receipts print on a narrow roll; invoices on A4.
	var pdf *gofpdf.Fpdf
	if sheet.Mode == model.ModeFuel {
		pdf = gofpdf.NewCustom(&gofpdf.InitType{
			OrientationStr: "P",
			UnitStr:        "mm",
			Size:           gofpdf.SizeType{Wd: 80, Ht: 200},
		})
		pdf.SetMargins(5, 5, 5)
	} else {
		pdf = gofpdf.New("P", "mm", "A4", "")
		pdf.SetMargins(15, 15, 15)
	}
	pdf.SetAutoPageBreak(true, 10)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont(g.fontName, "B", 14)
	pdf.CellFormat(0, 10, tr(sheet.Title), "", 1, "C", false, 0, "")

	for _, section := range sheet.Sections {
		addSection(pdf, g.fontName, tr, section)
		pdf.Ln(2)
	}

	if sheet.Table != nil && len(sheet.Table.Rows) > 0 {
		drawTable(pdf, g.fontName, tr, sheet.Table)
		pdf.Ln(4)
	}

	pdf.SetFont(g.fontName, "", 9)
	for _, f := range sheet.Footer {
		pdf.MultiCell(0, 5, tr(f.Label+": "+safeValue(f.Value)), "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func addSection(pdf *gofpdf.Fpdf, fontName string, tr func(string) string, section render.Section) {
	if section.Title != "" {
		pdf.SetFont(fontName, "B", 11)
		pdf.CellFormat(0, 6, tr(section.Title), "", 1, "L", false, 0, "")
	}
	pdf.SetFont(fontName, "", 9)
	for _, f := range section.Fields {
		pdf.MultiCell(0, 5, tr(f.Label+": "+safeValue(f.Value)), "", "L", false)
	}
}

func drawTable(pdf *gofpdf.Fpdf, fontName string, tr func(string) string, table *render.Table) {
	pageW, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	usable := pageW - left - right

	weightSum := 0.0
	for _, col := range table.Columns {
		weightSum += col.Weight
	}
	widths := make([]float64, len(table.Columns))
	for i, col := range table.Columns {
		widths[i] = usable * col.Weight / weightSum
	}

	headers := make([]string, len(table.Columns))
	for i, col := range table.Columns {
		headers[i] = col.Title
	}
	drawTableRow(pdf, fontName, tr, headers, widths, table.Columns, true)

	for _, row := range table.Rows {
		if row.Summary {
			drawSummaryRow(pdf, fontName, tr, row, widths)
			continue
		}
		drawTableRow(pdf, fontName, tr, row.Cells, widths, table.Columns, false)
	}
}

func drawTableRow(pdf *gofpdf.Fpdf, fontName string, tr func(string) string, cols []string, widths []float64, columns []render.Column, header bool) {
	style := ""
	if header {
		style = "B"
	}
	pdf.SetFont(fontName, style, 9)
	for i := range widths {
		text := ""
		if i < len(cols) {
			text = cols[i]
		}
		align := "L"
		if columns[i].Right && !header {
			align = "R"
		}
		pdf.CellFormat(widths[i], 7, tr(fitText(pdf, text, widths[i])), "1", 0, align, false, 0, "")
	}
	pdf.Ln(-1)
}

func drawSummaryRow(pdf *gofpdf.Fpdf, fontName string, tr func(string) string, row render.Row, widths []float64) {
	span := row.Span
	if span < 1 || span >= len(widths) {
		span = len(widths) - 1
	}
	labelW, valueW := 0.0, 0.0
	for i, w := range widths {
		if i < span {
			labelW += w
		} else {
			valueW += w
		}
	}
	label, value := row.Cells[0], ""
	if len(row.Cells) > 1 {
		value = row.Cells[1]
	}
	pdf.SetFont(fontName, "B", 9)
	pdf.CellFormat(labelW, 7, tr(label), "1", 0, "R", false, 0, "")
	pdf.SetFont(fontName, "", 9)
	pdf.CellFormat(valueW, 7, tr(fitText(pdf, value, valueW)), "1", 1, "R", false, 0, "")
}

// fitText shortens text until it fits inside width, leaving room for the
// cell's inner margin.
func fitText(pdf *gofpdf.Fpdf, text string, width float64) string {
	limit := width - 2
	if pdf.GetStringWidth(text) <= limit {
		return text
	}
	runes := []rune(text)
	for len(runes) > 0 && pdf.GetStringWidth(string(runes)+"...") > limit {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "..."
}

func safeValue(value string) string {
	if strings.TrimSpace(value) == "" {
		return "-"
	}
	return value
}
