package layout

import (
	"strings"

	"github.com/unidoc/unioffice/measurement"

	"github.com/aerissecure/roadmap"
)

const (
	overviewRowGap    = 0.5
	overviewMaxArrowH = 0.4
	overviewArrowPad  = 0.15 // fraction of the gap left free on each side
	overviewNodeFont  = 14
	overviewMinFont   = 6
	overviewNodeInset = 0.08
	overviewLineWidth = 2
)

// ComposeOverview lays out one node per distinct (timeline, phase) pair in
// first-seen order, left to right, wrapping to a new row when a node would
// pass the right margin. Consecutive nodes are joined by an arrow: a block
// arrow within a row and a connector across a wrap. Rows that overflow the
// slide are squeezed uniformly until they fit, with the node font shrunk in
// proportion down to a minimum size.
//
// An empty roadmap yields a plan without nodes.
func (e *Engine) ComposeOverview(entries []roadmap.TimelineEntry) SlidePlan {
	p := e.newPlan(SlideOverview, "Roadmap Overview", 1, 1)
	p.Elements = append(p.Elements, e.heading("Roadmap Overview"))

	pairs := roadmap.Pairs(entries)
	if len(pairs) == 0 {
		e.finish(&p)
		return p
	}

	nodeW, nodeH, gap := inch(e.cfg.OverviewNodeWidth), inch(e.cfg.OverviewNodeHeight), inch(e.cfg.OverviewGap)
	left, width := e.side(), e.contentWidth()

	var rows [][]int
	x := left
	for i := range pairs {
		if i == 0 || x+nodeW > left+width+fitEpsilon {
			rows = append(rows, nil)
			x = left
		}
		rows[len(rows)-1] = append(rows[len(rows)-1], i)
		x += nodeW + gap
	}

	top, avail := e.contentTop(), e.contentBottom()-e.contentTop()
	h, rowGap, font := nodeH, inch(overviewRowGap), pt(overviewNodeFont)
	n := measurement.Distance(len(rows))
	if needed := n*nodeH + (n-1)*rowGap; needed > avail {
		scale := avail / needed
		h, rowGap = nodeH*scale, rowGap*scale
		font = max(font*scale, pt(overviewMinFont))
	}
	if used := n*h + (n-1)*rowGap; used < avail {
		top += (avail - used) / 2
	}

	nodes := make([]Element, len(pairs))
	for r, row := range rows {
		k := measurement.Distance(len(row))
		rowW := k*nodeW + (k-1)*gap
		x := left + max(0, (width-rowW)/2)
		y := top + measurement.Distance(r)*(h+rowGap)
		for _, i := range row {
			nodes[i] = e.node(pairs[i], x, y, nodeW, h, font)
			x += nodeW + gap
		}
	}

	p.Elements = append(p.Elements, nodes...)
	for i := 1; i < len(nodes); i++ {
		prev, next := nodes[i-1], nodes[i]
		if next.Y == prev.Y {
			p.Elements = append(p.Elements, e.blockArrow(prev, gap))
		} else {
			p.Elements = append(p.Elements, e.connector(prev, next))
		}
	}

	e.finish(&p)
	return p
}

func (e *Engine) node(pair roadmap.Pair, x, y, w, h, font measurement.Distance) Element {
	paras := []string{pair.Timeline}
	if phase := strings.TrimSpace(pair.Phase); phase != "" {
		paras = append(paras, phase)
	}
	geom := GeometryRect
	if e.cfg.UseShapes {
		geom = GeometryRoundRect
	}
	return Element{
		Kind: KindShape, Role: RoleNode,
		X: x, Y: y, Width: w, Height: h,
		Style: Style{
			Geometry: geom, Fill: e.cfg.OverviewShapeColor,
			Font: e.cfg.BodyFont, FontSize: font, Bold: true, Color: e.cfg.OverviewTextColor,
			Align: AlignCenter, Anchor: AnchorMiddle, Inset: inch(overviewNodeInset),
		},
		Paragraphs: paras,
	}
}

// blockArrow fills the gap to the right of prev.
func (e *Engine) blockArrow(prev Element, gap measurement.Distance) Element {
	pad := gap * overviewArrowPad
	h := min(inch(overviewMaxArrowH), prev.Height/2)
	return Element{
		Kind: KindArrow, Role: RoleArrow,
		X: prev.Right() + pad, Y: prev.CenterY() - h/2, Width: gap - 2*pad, Height: h,
		Style: Style{Geometry: GeometryRightArrow, Fill: e.cfg.OverviewArrowColor},
	}
}

// connector runs from the bottom centre of prev to the top centre of next.
func (e *Engine) connector(prev, next Element) Element {
	x1, y1 := prev.CenterX(), prev.Bottom()
	x2, y2 := next.CenterX(), next.Y
	return Element{
		Kind: KindArrow, Role: RoleArrow,
		X: min(x1, x2), Y: y1, Width: max(x1-x2, x2-x1), Height: y2 - y1,
		Style: Style{
			Geometry: GeometryLine, Line: e.cfg.OverviewArrowColor,
			LineWidth: overviewLineWidth * measurement.Point, ArrowHead: true,
		},
		FlipH: x2 < x1,
	}
}
