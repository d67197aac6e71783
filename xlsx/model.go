package xlsx

import (
	"fmt"
	"strings"

	"github.com/unidoc/unioffice/spreadsheet"
)

// Intermediate representation for XLSX. Only values survive; styling is not
// needed to read a roadmap.

// RenderCell is the IR for a single cell. Cells covered by a merge range carry
// the master cell's value with Merged set.
type RenderCell struct {
	Cell    spreadsheet.Cell // zero for cells synthesized from a merge
	Ref     string           // e.g. "A1"
	Value   string           // formatted and trimmed value
	Merged  bool             // value copied from the merge master
	ColSpan int              // 1 if not merged
	RowSpan int              // 1 if not merged
}

func (c RenderCell) String() string {
	return fmt.Sprintf("Ref: %s, Value: %s, Merged: %t, ColSpan: %d, RowSpan: %d", c.Ref, c.Value, c.Merged, c.ColSpan, c.RowSpan)
}

// RenderRow represents one logical row in a sheet.
type RenderRow struct {
	Number int           // 1-based sheet row number
	Cells  []*RenderCell // length == column count of parent sheet; may contain nil for blank cells
}

// Value returns the text of column col, or "" when the cell is absent.
func (r RenderRow) Value(col int) string {
	if col < 0 || col >= len(r.Cells) || r.Cells[col] == nil {
		return ""
	}
	return r.Cells[col].Value
}

// Values returns every column value of the row.
func (r RenderRow) Values() []string {
	out := make([]string, len(r.Cells))
	for i := range r.Cells {
		out[i] = r.Value(i)
	}
	return out
}

// Blank reports whether the row has no non-empty value.
func (r RenderRow) Blank() bool {
	for i := range r.Cells {
		if r.Value(i) != "" {
			return false
		}
	}
	return true
}

func (r RenderRow) String() string {
	return fmt.Sprintf("Number: %d, Cells: %d", r.Number, len(r.Cells))
}

// RenderSheet is the intermediate representation of a worksheet.
type RenderSheet struct {
	Name     string
	ColCount int
	Rows     []RenderRow // in order, sparse rows included as empty rows
}

// Header returns the index of the first non-blank row, which holds the column
// labels.
func (s RenderSheet) Header() (int, bool) {
	for i, r := range s.Rows {
		if !r.Blank() {
			return i, true
		}
	}
	return -1, false
}

func (s RenderSheet) String() string {
	return fmt.Sprintf("Name: %s, ColCount: %d, Rows: %d", s.Name, s.ColCount, len(s.Rows))
}

// WorkbookModel is the top-level IR containing all sheets.
type WorkbookModel struct {
	Sheets []RenderSheet
}

// Find returns the first sheet whose name contains substr, ignoring case.
func (m WorkbookModel) Find(substr string) (RenderSheet, bool) {
	needle := normalizeLabel(substr)
	for _, s := range m.Sheets {
		if strings.Contains(normalizeLabel(s.Name), needle) {
			return s, true
		}
	}
	return RenderSheet{}, false
}
