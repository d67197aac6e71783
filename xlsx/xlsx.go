// Package xlsx reads roadmap workbooks.
//
// A roadmap workbook has an objectives sheet (north star and key elements) and
// a roadmap sheet (timeline, phase and workpackage). Sheets are found by name,
// columns by header label with a positional fallback. Any other sheet is
// ignored.
package xlsx

import (
	"errors"
	"io"
	"io/fs"
	"os"

	"github.com/aerissecure/roadmap"
)

const (
	objectivesSheet = "objective"
	roadmapSheet    = "roadmap"
)

// Source is the result of reading a workbook.
type Source struct {
	Document roadmap.Document
	Ignored  []string // names of sheets that were skipped
}

// Load opens the workbook at path and reads the roadmap from it.
func Load(path string) (Source, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Source{}, roadmap.WrapError(roadmap.ErrCodeInputNotFound, err, "workbook %s", path)
		}
		return Source{}, roadmap.WrapError(roadmap.ErrCodeSheetUnreadable, err, "open workbook %s", path)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return Source{}, roadmap.WrapError(roadmap.ErrCodeSheetUnreadable, err, "stat workbook %s", path)
	}
	return ReadFrom(f, info.Size())
}

// ReadFrom reads a workbook from r/size.
func ReadFrom(r io.ReaderAt, size int64) (Source, error) {
	model, err := ParseWorkbookModel(r, size)
	if err != nil {
		return Source{}, roadmap.WrapError(roadmap.ErrCodeSheetUnreadable, err, "parse workbook")
	}
	return Read(model)
}

// Read extracts the roadmap document from a parsed workbook.
func Read(m WorkbookModel) (Source, error) {
	objectives, ok := m.Find(objectivesSheet)
	if !ok {
		return Source{}, roadmap.NewError(roadmap.ErrCodeSheetMissing, "sheet %q not found", "Objectives")
	}
	plan, ok := m.Find(roadmapSheet)
	if !ok {
		return Source{}, roadmap.NewError(roadmap.ErrCodeSheetMissing, "sheet %q not found", "Roadmap")
	}

	var src Source
	for _, s := range m.Sheets {
		if s.Name != objectives.Name && s.Name != plan.Name {
			src.Ignored = append(src.Ignored, s.Name)
		}
	}

	northStar, keys, err := ReadObjectives(objectives)
	if err != nil {
		return Source{}, err
	}
	entries, err := ReadRoadmap(plan)
	if err != nil {
		return Source{}, err
	}

	src.Document = roadmap.Document{
		NorthStar:   northStar,
		KeyElements: keys,
		Entries:     entries,
	}
	return src, nil
}

// ReadObjectives returns the first north star value and every key element of
// the sheet, in row order.
func ReadObjectives(s RenderSheet) (string, []string, error) {
	header, rows, err := split(s)
	if err != nil {
		return "", nil, err
	}
	cols, err := ResolveColumns(s.Name, header.Values(), []ColumnSpec{northStarColumn, keyElementsColumn})
	if err != nil {
		return "", nil, err
	}

	var northStar string
	var keys []string
	for _, row := range rows {
		if v := row.Value(cols[0]); v != "" && northStar == "" {
			northStar = v
		}
		if v := row.Value(cols[1]); v != "" {
			keys = append(keys, v)
		}
	}
	return northStar, keys, nil
}

// ReadRoadmap returns one entry per row with a timeline. Rows with a blank
// workpackage still produce an entry so their phase is kept.
func ReadRoadmap(s RenderSheet) ([]roadmap.TimelineEntry, error) {
	header, rows, err := split(s)
	if err != nil {
		return nil, err
	}
	cols, err := ResolveColumns(s.Name, header.Values(), []ColumnSpec{timelineColumn, phaseColumn, workpackageColumn})
	if err != nil {
		return nil, err
	}

	var entries []roadmap.TimelineEntry
	for _, row := range rows {
		timeline := row.Value(cols[0])
		if timeline == "" {
			continue
		}
		e := roadmap.TimelineEntry{Timeline: timeline, Phase: row.Value(cols[1])}
		if wp := row.Value(cols[2]); wp != "" {
			e.Workpackages = []string{wp}
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// split separates the header row from the data rows.
func split(s RenderSheet) (RenderRow, []RenderRow, error) {
	h, ok := s.Header()
	if !ok {
		return RenderRow{}, nil, roadmap.NewError(roadmap.ErrCodeSheetUnreadable, "sheet %q has no header row", s.Name)
	}
	return s.Rows[h], s.Rows[h+1:], nil
}
