package render

import "github.com/nurpe/bill-studio/internal/model"

// Field is one addressable slot on a sheet.
type Field struct {
	ID    string
	Label string
	Value string
}

type Section struct {
	Title  string
	Fields []Field
}

type Column struct {
	Title string
	// Weight is the share of the table width the column takes.
	Weight float64
	Right  bool
}

// Row is either an item row with one cell per column, or a summary row whose
// label spans the leading columns and whose value fills the rest. Summary rows
// carry an ID so their value is addressable like a field.
type Row struct {
	ID      string
	Cells   []string
	Summary bool
	Span    int
}

type Table struct {
	ID      string
	Columns []Column
	Rows    []Row
}

// Sheet is the painted form of one document. Raster and PDF exporters draw
// it; neither knows about invoices or fuel bills.
type Sheet struct {
	Mode     model.Mode
	Title    string
	Sections []Section
	Table    *Table
	Footer   []Field
}

// set writes value into the field with the given ID. It reports false if no
// such field exists.
func (s *Sheet) set(id, value string) bool {
	for i := range s.Sections {
		for j := range s.Sections[i].Fields {
			if s.Sections[i].Fields[j].ID == id {
				s.Sections[i].Fields[j].Value = value
				return true
			}
		}
	}
	for i := range s.Footer {
		if s.Footer[i].ID == id {
			s.Footer[i].Value = value
			return true
		}
	}
	if s.Table != nil {
		for i, row := range s.Table.Rows {
			if row.Summary && row.ID == id && len(row.Cells) > 1 {
				s.Table.Rows[i].Cells[1] = value
				return true
			}
		}
	}
	return false
}

func (s *Sheet) Lookup(id string) (string, bool) {
	for _, section := range s.Sections {
		for _, f := range section.Fields {
			if f.ID == id {
				return f.Value, true
			}
		}
	}
	for _, f := range s.Footer {
		if f.ID == id {
			return f.Value, true
		}
	}
	if s.Table != nil {
		for _, row := range s.Table.Rows {
			if row.Summary && row.ID == id && len(row.Cells) > 1 {
				return row.Cells[1], true
			}
		}
	}
	return "", false
}

// Empty reports whether there is anything to capture.
func (s *Sheet) Empty() bool {
	if s == nil {
		return true
	}
	if len(s.Sections) > 0 || len(s.Footer) > 0 {
		return false
	}
	return s.Table == nil || len(s.Table.Rows) == 0
}

// AppendSummary adds a summary row after whatever rows the table holds.
func (t *Table) AppendSummary(id, label, value string, span int) {
	t.Rows = append(t.Rows, Row{ID: id, Cells: []string{label, value}, Summary: true, Span: span})
}
