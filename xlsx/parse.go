package xlsx

import (
	"fmt"
	"io"
	"strings"

	"github.com/unidoc/unioffice/spreadsheet"
	"github.com/unidoc/unioffice/spreadsheet/reference"
)

// ParseWorkbookModel reads an XLSX from r/size and returns the intermediate representation.
func ParseWorkbookModel(r io.ReaderAt, size int64) (WorkbookModel, error) {
	wb, err := spreadsheet.Read(r, size)
	if err != nil {
		return WorkbookModel{}, err
	}

	var model WorkbookModel
	for _, sheet := range wb.Sheets() {
		model.Sheets = append(model.Sheets, parseSheet(sheet))
	}
	return model, nil
}

type mergeRange struct {
	fromRow, fromCol int
	toRow, toCol     int
}

func parseSheet(sheet spreadsheet.Sheet) RenderSheet {
	// --- process merges ---
	var merges []mergeRange
	maxCols := 0
	if sheet.X().MergeCells != nil {
		for _, mc := range sheet.X().MergeCells.MergeCell {
			from, to, err := reference.ParseRangeReference(mc.RefAttr)
			if err != nil {
				continue // if parsing fails, ignore merge
			}
			mr := mergeRange{
				fromRow: int(from.RowIdx - 1),
				fromCol: int(from.ColumnIdx),
				toRow:   int(to.RowIdx - 1),
				toCol:   int(to.ColumnIdx),
			}
			merges = append(merges, mr)
			maxCols = max(maxCols, mr.toCol+1)
		}
	}

	// ---- find max column; Cells() is sparse so use the column index ----
	rows := sheet.Rows()
	for _, row := range rows {
		for _, cell := range row.Cells() {
			if colName, err := cell.Column(); err == nil {
				maxCols = max(maxCols, int(reference.ColumnToIndex(colName))+1)
			}
		}
	}

	rs := RenderSheet{Name: sheet.Name(), ColCount: maxCols}

	// --- build rows ---
	for _, row := range rows {
		rowIdx := int(row.RowNumber()) - 1
		rr := rs.row(rowIdx)
		for _, cell := range row.Cells() {
			colName, err := cell.Column()
			if err != nil {
				continue
			}
			colIdx := int(reference.ColumnToIndex(colName))
			rr.Cells[colIdx] = &RenderCell{
				Cell:    cell,
				Ref:     fmt.Sprintf("%s%d", colName, rowIdx+1),
				Value:   strings.TrimSpace(cell.GetFormattedValue()),
				ColSpan: 1,
				RowSpan: 1,
			}
		}
	}

	// --- fill merge ranges from their master cell ---
	for _, mr := range merges {
		master := rs.row(mr.fromRow).Cells[mr.fromCol]
		if master == nil {
			continue
		}
		master.RowSpan = mr.toRow - mr.fromRow + 1
		master.ColSpan = mr.toCol - mr.fromCol + 1
		for r := mr.fromRow; r <= mr.toRow; r++ {
			rr := rs.row(r)
			for c := mr.fromCol; c <= mr.toCol; c++ {
				if r == mr.fromRow && c == mr.fromCol {
					continue
				}
				rr.Cells[c] = &RenderCell{
					Ref:     fmt.Sprintf("%s%d", reference.IndexToColumn(uint32(c)), r+1),
					Value:   master.Value,
					Merged:  true,
					ColSpan: 1,
					RowSpan: 1,
				}
			}
		}
	}

	return rs
}

// row returns the row at rowIdx, growing the slice to accommodate sparse rows.
func (s *RenderSheet) row(rowIdx int) *RenderRow {
	for len(s.Rows) <= rowIdx {
		s.Rows = append(s.Rows, RenderRow{
			Number: len(s.Rows) + 1,
			Cells:  make([]*RenderCell, s.ColCount),
		})
	}
	return &s.Rows[rowIdx]
}
