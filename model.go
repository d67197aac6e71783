// Package roadmap holds the data model shared by the reader, the layout engine
// and the deck assembler.
package roadmap

import (
	"fmt"
	"strings"
)

// DefaultTitle is used for the title slide when neither the config nor the
// caller provides one.
const DefaultTitle = "Roadmap Presentation"

// Document is the parsed content of one roadmap workbook. It is built once by
// the reader and treated as immutable afterwards.
type Document struct {
	Title       string
	NorthStar   string          // overarching objective statement
	KeyElements []string        // supporting points, in sheet order
	Entries     []TimelineEntry // roadmap rows, in sheet order
}

func (d Document) String() string {
	return fmt.Sprintf("Title: %q, NorthStar: %q, KeyElements: %d, Entries: %d", d.Title, d.NorthStar, len(d.KeyElements), len(d.Entries))
}

// TimelineEntry is one row (or a run of rows) of the roadmap sheet.
type TimelineEntry struct {
	Timeline     string
	Phase        string // may be blank
	Workpackages []string
}

func (e TimelineEntry) String() string {
	return fmt.Sprintf("Timeline: %q, Phase: %q, Workpackages: %d", e.Timeline, e.Phase, len(e.Workpackages))
}

// PhaseGroup collects the workpackages of one phase within a timeline.
type PhaseGroup struct {
	Phase        string
	Workpackages []string
}

// TimelineGroup collects the phases of one timeline.
type TimelineGroup struct {
	Timeline string
	Phases   []PhaseGroup
}

// HasPhases reports whether any phase of the group carries a name. Groups
// without named phases are laid out as a single content box.
func (g TimelineGroup) HasPhases() bool {
	for _, p := range g.Phases {
		if strings.TrimSpace(p.Phase) != "" {
			return true
		}
	}
	return false
}

// Workpackages returns every workpackage of the group in phase order.
func (g TimelineGroup) Workpackages() []string {
	var out []string
	for _, p := range g.Phases {
		out = append(out, p.Workpackages...)
	}
	return out
}

// Pair is a distinct (timeline, phase) combination, the unit of the overview
// diagram.
type Pair struct {
	Timeline string
	Phase    string
}

func (p Pair) String() string {
	if p.Phase == "" {
		return p.Timeline
	}
	return p.Timeline + " / " + p.Phase
}
