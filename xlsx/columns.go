package xlsx

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/aerissecure/roadmap"
)

// ColumnSpec describes a logical column and how to find it in a header row.
type ColumnSpec struct {
	Name     string   // used in error messages
	Labels   []string // case-insensitive substrings, any of which identifies the column
	Position int      // positional fallback when no label matches
	Optional bool
}

// Column specs for the objectives and roadmap sheets. Order matters: earlier
// specs claim their column first.
var (
	northStarColumn   = ColumnSpec{Name: "north star", Labels: []string{"north star", "northstar", "vision"}, Position: 0}
	keyElementsColumn = ColumnSpec{Name: "key elements", Labels: []string{"key element", "keyelement", "element", "objective"}, Position: 1}

	timelineColumn    = ColumnSpec{Name: "timeline", Labels: []string{"timeline", "period", "horizon", "quarter"}, Position: 0}
	phaseColumn       = ColumnSpec{Name: "phase", Labels: []string{"phase", "stage"}, Position: 1, Optional: true}
	workpackageColumn = ColumnSpec{Name: "workpackage", Labels: []string{"workpackage", "work package", "deliverable", "task", "initiative"}, Position: 2}
)

// normalizeLabel folds case and treats '_' and '-' as spaces so that
// "Key_Elements" and "key elements" compare equal.
func normalizeLabel(s string) string {
	s = cases.Fold().String(s)
	s = strings.NewReplacer("_", " ", "-", " ").Replace(s)
	return strings.Join(strings.Fields(s), " ")
}

// InferColumn returns the index of the first header containing any of labels.
// The second result is false when nothing matches.
func InferColumn(headers []string, labels []string) (int, bool) {
	for i, h := range headers {
		nh := normalizeLabel(h)
		if nh == "" {
			continue
		}
		for _, l := range labels {
			if strings.Contains(nh, normalizeLabel(l)) {
				return i, true
			}
		}
	}
	return -1, false
}

// ResolveColumns maps every ColumnSpec to a distinct column index. Labels are tried
// for every column before any positional fallback so a labelled column is never
// taken by position. Optional columns that cannot be resolved get -1.
func ResolveColumns(sheet string, headers []string, specs []ColumnSpec) ([]int, error) {
	idx := make([]int, len(specs))
	claimed := make(map[int]bool)

	for i, cs := range specs {
		idx[i] = -1
		if col, ok := InferColumn(unclaimed(headers, claimed), cs.Labels); ok {
			idx[i] = col
			claimed[col] = true
		}
	}

	for i, cs := range specs {
		if idx[i] >= 0 {
			continue
		}
		if cs.Position < len(headers) && !claimed[cs.Position] {
			idx[i] = cs.Position
			claimed[cs.Position] = true
			continue
		}
		if !cs.Optional {
			return nil, roadmap.NewError(roadmap.ErrCodeColumnNotInferred,
				"sheet %q: no %s column (headers %q)", sheet, cs.Name, headers)
		}
	}
	return idx, nil
}

// unclaimed blanks out claimed headers so InferColumn skips them while
// indices stay aligned.
func unclaimed(headers []string, claimed map[int]bool) []string {
	out := make([]string, len(headers))
	for i, h := range headers {
		if !claimed[i] {
			out[i] = h
		}
	}
	return out
}
