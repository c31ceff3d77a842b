package excel

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/nurpe/bill-studio/internal/model"
)

const (
	summarySheet = "Summary"
	billsSheet   = "Bills"
)

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// Generate builds the batch manifest: one summary sheet describing the run
// and one sheet listing every exported bill.
func (g *Generator) Generate(manifest model.BatchManifest) ([]byte, error) {
	file := excelize.NewFile()
	defer file.Close()

	if err := file.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, err
	}
	if err := g.writeSummary(file, manifest); err != nil {
		return nil, err
	}

	if _, err := file.NewSheet(billsSheet); err != nil {
		return nil, err
	}
	if err := g.writeBills(file, manifest.Entries); err != nil {
		return nil, err
	}

	file.SetActiveSheet(0)
	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (g *Generator) writeSummary(file *excelize.File, m model.BatchManifest) error {
	total := 0.0
	for _, entry := range m.Entries {
		total += entry.Bill.Amount
	}

	rows := [][2]interface{}{
		{"Batch", m.ID.String()},
		{"Started", formatDateTime(m.StartedAt)},
		{"Finished", formatDateTime(m.FinishedAt)},
		{"Date from", formatDate(m.Bounds.From)},
		{"Date to", formatDate(m.Bounds.To)},
		{"Rate min", m.Bounds.RateMin},
		{"Rate max", m.Bounds.RateMax},
		{"Amount min", m.Bounds.AmountMin},
		{"Amount max", m.Bounds.AmountMax},
		{"Bills", len(m.Entries)},
		{"Total amount", total},
	}
	for i, row := range rows {
		if err := file.SetCellValue(summarySheet, fmt.Sprintf("A%d", i+1), row[0]); err != nil {
			return err
		}
		if err := file.SetCellValue(summarySheet, fmt.Sprintf("B%d", i+1), row[1]); err != nil {
			return err
		}
	}

	_ = file.SetColWidth(summarySheet, "A", "A", 16)
	_ = file.SetColWidth(summarySheet, "B", "B", 40)
	return nil
}

func (g *Generator) writeBills(file *excelize.File, entries []model.BatchEntry) error {
	headers := []interface{}{
		"#", "Invoice No", "Date", "Time", "Nozzle", "Density", "Rate", "Amount", "Volume", "File",
	}
	if err := file.SetSheetRow(billsSheet, "A1", &headers); err != nil {
		return err
	}

	for i, entry := range entries {
		bill := entry.Bill
		row := []interface{}{
			entry.Index,
			bill.InvNo,
			bill.Date,
			bill.Time,
			bill.NozzleNo,
			bill.Density,
			bill.Rate,
			bill.Amount,
			bill.Volume,
			entry.FileName,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := file.SetSheetRow(billsSheet, cell, &row); err != nil {
			return err
		}
	}

	_ = file.SetColWidth(billsSheet, "B", "B", 20)
	_ = file.SetColWidth(billsSheet, "C", "D", 12)
	_ = file.SetColWidth(billsSheet, "J", "J", 36)
	return nil
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}

func formatDateTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02 15:04:05")
}
