package xlsx

import (
	"io"

	"github.com/unidoc/unioffice/spreadsheet"
	"github.com/unidoc/unioffice/spreadsheet/reference"
)

// SheetData is the plain content of a worksheet to be written.
type SheetData struct {
	Name   string
	Rows   [][]string  // blank strings leave the cell out
	Merges [][2]string // from/to cell references, e.g. {"A2", "A3"}
}

// WriteWorkbook saves sheets as an XLSX workbook to w.
func WriteWorkbook(w io.Writer, sheets []SheetData) error {
	wb := spreadsheet.New()
	for _, sd := range sheets {
		sheet := wb.AddSheet()
		sheet.SetName(sd.Name)
		for _, vals := range sd.Rows {
			row := sheet.AddRow()
			for c, v := range vals {
				if v == "" {
					continue
				}
				row.Cell(reference.IndexToColumn(uint32(c))).SetString(v)
			}
		}
		for _, m := range sd.Merges {
			sheet.AddMergedCells(m[0], m[1])
		}
	}
	return wb.Save(w)
}

// Sample returns a small example workbook in the layout Load expects. The
// timeline cells of the roadmap sheet are merged to show fill-down.
func Sample() []SheetData {
	return []SheetData{
		{
			Name: "Objectives",
			Rows: [][]string{
				{"North star", "Key elements"},
				{"Become the default platform for self-service analytics", "Reliable data foundation"},
				{"", "Self-service tooling for every team"},
				{"", "Measurable adoption across business units"},
			},
		},
		{
			Name: "Roadmap",
			Rows: [][]string{
				{"Timeline", "Phase", "Workpackage"},
				{"Q1", "Foundation", "Consolidate data sources"},
				{"", "Foundation", "Define data ownership"},
				{"Q2", "Enablement", "Launch self-service portal"},
				{"", "Enablement", "Train analytics champions"},
				{"Q3", "Scale", "Roll out to all business units"},
			},
			Merges: [][2]string{{"A2", "A3"}, {"A4", "A5"}},
		},
		{
			Name: "Notes",
			Rows: [][]string{{"This sheet is ignored by roadmap-ppt."}},
		},
	}
}
