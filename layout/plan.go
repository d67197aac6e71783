package layout

import (
	"fmt"
	"strings"

	"github.com/unidoc/unioffice/measurement"

	"github.com/aerissecure/roadmap/brand"
)

// -----------------------------------------------------------------------------
// Slide plans
// -----------------------------------------------------------------------------

// SlideType is the logical kind of a slide.
type SlideType int

const (
	SlideTitle SlideType = iota
	SlideObjectives
	SlideOverview
	SlideRoadmap
)

func (t SlideType) String() string {
	switch t {
	case SlideTitle:
		return "title"
	case SlideObjectives:
		return "objectives"
	case SlideOverview:
		return "overview"
	case SlideRoadmap:
		return "roadmap"
	}
	return fmt.Sprintf("SlideType(%d)", int(t))
}

// SlidePlan is the fully positioned content of one slide. Plans are consumed
// by a writer and then discarded.
type SlidePlan struct {
	Type       SlideType
	Heading    string // heading text, for logs and tests
	Page       int    // 1-based page within the section
	Pages      int    // pages in the section
	OnTemplate bool   // draw over the template's base slide instead of a new one
	Elements   []Element
}

// Find returns the elements with the given role in drawing order.
func (p SlidePlan) Find(role Role) []Element {
	var out []Element
	for _, e := range p.Elements {
		if e.Role == role {
			out = append(out, e)
		}
	}
	return out
}

// Count returns the number of elements with the given role.
func (p SlidePlan) Count(role Role) int {
	return len(p.Find(role))
}

func (p SlidePlan) String() string {
	return fmt.Sprintf("Type: %s, Heading: %q, Page: %d/%d, Elements: %d", p.Type, p.Heading, p.Page, p.Pages, len(p.Elements))
}

// -----------------------------------------------------------------------------
// Elements
// -----------------------------------------------------------------------------

// ElementKind selects the drawing primitive for an element.
type ElementKind int

const (
	KindTextBox ElementKind = iota
	KindShape
	KindPicture
	KindArrow
)

func (k ElementKind) String() string {
	switch k {
	case KindTextBox:
		return "textbox"
	case KindShape:
		return "shape"
	case KindPicture:
		return "picture"
	case KindArrow:
		return "arrow"
	}
	return fmt.Sprintf("ElementKind(%d)", int(k))
}

// Role tags what an element shows.
type Role string

const (
	RoleBackground    Role = "background"
	RoleLogo          Role = "logo"
	RoleTitle         Role = "title"
	RoleSubtitle      Role = "subtitle"
	RoleHeading       Role = "heading"
	RolePageIndicator Role = "page-indicator"
	RoleSectionHeader Role = "section-header"
	RoleNorthStar     Role = "north-star"
	RoleBullets       Role = "bullets"
	RolePhaseHeader   Role = "phase-header"
	RoleNode          Role = "node"
	RoleArrow         Role = "arrow"
)

// Geometry is the outline of a shape.
type Geometry int

const (
	GeometryRect Geometry = iota
	GeometryRoundRect
	GeometryRightArrow
	GeometryLine
)

// Align is the horizontal text alignment.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// Anchor is the vertical text anchor.
type Anchor int

const (
	AnchorTop Anchor = iota
	AnchorMiddle
)

// Style is the visual style of an element, derived from the brand config.
// Empty colors mean "none".
type Style struct {
	Geometry   Geometry
	Fill       brand.Color
	Line       brand.Color
	LineWidth  measurement.Distance
	ArrowHead  bool // line ends in an arrow head
	Font       string
	FontSize   measurement.Distance
	Bold       bool
	Color      brand.Color
	Align      Align
	Anchor     Anchor
	Bullet     bool
	SpaceAfter measurement.Distance
	Inset      measurement.Distance // text inset on all sides
}

// Element is one positioned visual item. Geometry is in points relative to
// the top-left corner of the slide.
type Element struct {
	Kind          ElementKind
	Role          Role
	X, Y          measurement.Distance
	Width, Height measurement.Distance
	Style         Style
	Paragraphs    []string
	Image         string // picture path
	FlipH         bool   // connector runs right to left
}

func (e Element) Right() measurement.Distance   { return e.X + e.Width }
func (e Element) Bottom() measurement.Distance  { return e.Y + e.Height }
func (e Element) CenterX() measurement.Distance { return e.X + e.Width/2 }
func (e Element) CenterY() measurement.Distance { return e.Y + e.Height/2 }

func (e Element) String() string {
	return fmt.Sprintf("Kind: %s, Role: %s, Box: (%.1f, %.1f, %.1f, %.1f)pt, Text: %q",
		e.Kind, e.Role, float64(e.X), float64(e.Y), float64(e.Width), float64(e.Height), strings.Join(e.Paragraphs, " | "))
}

// inch converts a config length in inches.
func inch(v float64) measurement.Distance {
	return measurement.Distance(v) * measurement.Inch
}

// pt converts a config font size in points.
func pt(v float64) measurement.Distance {
	return measurement.Distance(v) * measurement.Point
}
