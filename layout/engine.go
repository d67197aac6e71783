// Package layout turns a roadmap Document into positioned slide plans.
//
// Nothing in this package touches the presentation format. The Engine
// estimates text heights, paginates overflowing lists and emits one SlidePlan
// per slide; a writer draws the plans afterwards.
package layout

import (
	"fmt"
	"strings"

	"github.com/unidoc/unioffice/measurement"

	"github.com/aerissecure/roadmap"
	"github.com/aerissecure/roadmap/brand"
)

// BulletPrefix is drawn before every bulleted paragraph.
const BulletPrefix = "• "

// Fixed geometry in inches, font sizes in points.
const (
	headingTop      = 0.5
	headingHeight   = 0.8
	logoTop         = 0.3
	logoBottom      = 0.1
	logoClearance   = 0.2
	titleBoxHeight  = 1.5
	subtitleGap     = 0.3
	sectionHeaderH  = 0.6
	northStarStep   = 1.2
	northStarMin    = 0.8
	northStarMax    = 3.0
	sectionGap      = 0.3
	keysHeaderStep  = 0.8
	bulletIndent    = 0.3
	textInset       = 0.1
	boxInset        = 0.15
	boxPadding      = 0.3
	boxMin          = 0.3
	columnGutter    = 0.1
	phaseHeaderH    = 0.6
	phaseHeaderStep = 0.7
	indicatorWidth  = 2.0
	indicatorHeight = 0.4
	indicatorBottom = 0.05

	sectionFontSize       = 24
	phaseFontSize         = 20
	indicatorFontSize     = 12
	objectiveSpaceAfter   = 8
	workpackageSpaceAfter = 6
)

// Engine lays out slides for one brand config and set of resolved assets.
type Engine struct {
	cfg    brand.Config
	assets Assets
	est    *Estimator
}

// NewEngine returns an Engine. A nil estimator gets a fresh one.
func NewEngine(cfg brand.Config, assets Assets, est *Estimator) *Engine {
	if est == nil {
		est = NewEstimator()
	}
	return &Engine{cfg: cfg, assets: assets, est: est}
}

// Config returns the brand config the engine lays out with.
func (e *Engine) Config() brand.Config { return e.cfg }

// Assets returns the resolved assets.
func (e *Engine) Assets() Assets { return e.assets }

// SlideSize returns the slide width and height.
func (e *Engine) SlideSize() (measurement.Distance, measurement.Distance) {
	return inch(e.cfg.SlideWidth), inch(e.cfg.SlideHeight)
}

func (e *Engine) side() measurement.Distance       { return inch(e.cfg.SideMargin) }
func (e *Engine) contentTop() measurement.Distance { return inch(e.cfg.ContentTopMargin) }

// contentBottom is the lowest y content may reach. A logo in a bottom corner
// raises it to keep the content clear of the logo.
func (e *Engine) contentBottom() measurement.Distance {
	bottom := inch(e.cfg.SlideHeight - e.cfg.BottomMargin)
	if l := e.assets.Logo; l != nil {
		switch e.cfg.LogoPosition {
		case brand.LogoBottomLeft, brand.LogoBottomRight:
			bottom = min(bottom, inch(e.cfg.SlideHeight-logoBottom-logoClearance)-l.Height)
		}
	}
	return bottom
}

func (e *Engine) contentWidth() measurement.Distance {
	return inch(e.cfg.SlideWidth - 2*e.cfg.SideMargin)
}

// -----------------------------------------------------------------------------
// Title
// -----------------------------------------------------------------------------

// Title lays out the title slide: the deck title in the upper third and the
// north star as subtitle. On a title template the background is left to the
// template.
func (e *Engine) Title(doc roadmap.Document) SlidePlan {
	title := strings.TrimSpace(doc.Title)
	if title == "" {
		title = strings.TrimSpace(e.cfg.DeckTitle)
	}
	if title == "" {
		title = roadmap.DefaultTitle
	}

	p := e.newPlan(SlideTitle, title, 1, 1)
	p.OnTemplate = e.assets.TitleTemplate != ""

	_, slideH := e.SlideSize()
	x, w := e.side(), e.contentWidth()
	size := pt(e.cfg.TitleFontSize)
	h := max(inch(titleBoxHeight), e.est.EstimateHeight(title, size, w-2*inch(textInset), DefaultLineSpacing)+2*inch(textInset))
	y := max(inch(e.cfg.TitleTopMargin), slideH/3-h/2)

	p.Elements = append(p.Elements, Element{
		Kind: KindTextBox, Role: RoleTitle,
		X: x, Y: y, Width: w, Height: h,
		Style: Style{
			Font: e.cfg.TitleFont, FontSize: size, Bold: true, Color: e.cfg.PrimaryColor,
			Align: AlignCenter, Anchor: AnchorMiddle, Inset: inch(textInset),
		},
		Paragraphs: []string{title},
	})

	if ns := strings.TrimSpace(doc.NorthStar); ns != "" {
		sy := y + h + inch(subtitleGap)
		p.Elements = append(p.Elements, Element{
			Kind: KindTextBox, Role: RoleSubtitle,
			X: x, Y: sy, Width: w, Height: max(inch(boxMin), e.contentBottom()-sy),
			Style: Style{
				Font: e.cfg.BodyFont, FontSize: pt(e.cfg.SubtitleFontSize), Color: e.cfg.SecondaryColor,
				Align: AlignCenter, Inset: inch(textInset),
			},
			Paragraphs: []string{ns},
		})
	}

	e.finish(&p)
	return p
}

// -----------------------------------------------------------------------------
// Objectives
// -----------------------------------------------------------------------------

// Objectives lays out the key elements as bullets over as many slides as they
// need. The north star takes the top of the first slide only. No key elements
// means no slides.
func (e *Engine) Objectives(doc roadmap.Document) []SlidePlan {
	if len(doc.KeyElements) == 0 {
		return nil
	}

	x, w := e.side(), e.contentWidth()
	bx, bw := x+inch(bulletIndent), w-inch(bulletIndent)
	size := pt(e.cfg.BodyFontSize)
	measure := func(k string) measurement.Distance {
		return e.est.EstimateHeight(BulletPrefix+k, size, bw-2*inch(textInset), DefaultLineSpacing) + pt(objectiveSpaceAfter)
	}

	northStar := strings.TrimSpace(doc.NorthStar)
	var nsHeight, firstOverhead measurement.Distance
	if northStar != "" {
		nsHeight = e.northStarHeight(northStar, w)
		firstOverhead = inch(northStarStep) + nsHeight + inch(sectionGap)
	}

	pages := Paginate(doc.KeyElements, measure, Capacity{
		Height:            e.contentBottom() - e.contentTop(),
		Overhead:          inch(keysHeaderStep) + 2*inch(textInset),
		FirstPageOverhead: firstOverhead,
	})

	plans := make([]SlidePlan, len(pages))
	for i, items := range pages {
		p := e.newPlan(SlideObjectives, "Objectives", i+1, len(pages))
		p.Elements = append(p.Elements, e.heading("Objectives"))

		y := e.contentTop()
		if i == 0 && northStar != "" {
			p.Elements = append(p.Elements, e.sectionHeader("North Star", x, y, w))
			y += inch(northStarStep)
			p.Elements = append(p.Elements, e.northStar(northStar, x, y, w, nsHeight))
			y += nsHeight + inch(sectionGap)
		}

		p.Elements = append(p.Elements, e.sectionHeader("Key Elements", x, y, w))
		y += inch(keysHeaderStep)
		p.Elements = append(p.Elements, Element{
			Kind: KindTextBox, Role: RoleBullets,
			X: bx, Y: y, Width: bw, Height: max(inch(boxMin), e.contentBottom()-y),
			Style: Style{
				Font: e.cfg.BodyFont, FontSize: size, Color: e.cfg.TextColor,
				Bullet: true, SpaceAfter: pt(objectiveSpaceAfter), Inset: inch(textInset),
			},
			Paragraphs: items,
		})

		e.finish(&p)
		plans[i] = p
	}
	return plans
}

func (e *Engine) northStarHeight(text string, w measurement.Distance) measurement.Distance {
	h := e.est.EstimateHeight(text, pt(e.cfg.BodyFontSize), w-2*inch(boxInset), DefaultLineSpacing) + 2*inch(boxInset)
	return min(max(h, inch(northStarMin)), inch(northStarMax))
}

func (e *Engine) northStar(text string, x, y, w, h measurement.Distance) Element {
	el := Element{
		Kind: KindTextBox, Role: RoleNorthStar,
		X: x, Y: y, Width: w, Height: h,
		Style: Style{
			Font: e.cfg.BodyFont, FontSize: pt(e.cfg.BodyFontSize), Color: e.cfg.TextColor,
			Anchor: AnchorMiddle, Inset: inch(boxInset),
		},
		Paragraphs: []string{text},
	}
	if e.cfg.UseShapes {
		el.Kind = KindShape
		el.Style.Geometry = GeometryRoundRect
		el.Style.Fill = e.cfg.ContentBoxColor
		el.Style.Line = e.cfg.AccentColor
		el.Style.LineWidth = 1.5 * measurement.Point
	}
	return el
}

// -----------------------------------------------------------------------------
// Roadmap
// -----------------------------------------------------------------------------

// Roadmap lays out one timeline. When any entry names a phase the content is
// split into one column per phase; each column is paginated on its own and the
// timeline gets as many slides as its longest column needs.
func (e *Engine) Roadmap(g roadmap.TimelineGroup) []SlidePlan {
	headers := g.HasPhases()
	cols := g.Phases
	if !headers {
		cols = []roadmap.PhaseGroup{{Workpackages: g.Workpackages()}}
	}

	colW := e.contentWidth() / measurement.Distance(len(cols))
	boxW := colW - 2*inch(columnGutter)
	size := pt(e.cfg.WorkpackageFontSize)
	measure := func(wp string) measurement.Distance {
		return e.est.EstimateHeight(BulletPrefix+wp, size, boxW-2*inch(boxInset), DefaultLineSpacing) + pt(workpackageSpaceAfter)
	}

	c := Capacity{Height: e.contentBottom() - e.contentTop(), Overhead: inch(boxPadding)}
	if headers {
		c.Overhead += inch(phaseHeaderStep)
	}

	pages := make([][][]string, len(cols))
	n := 1
	for i, col := range cols {
		pages[i] = Paginate(col.Workpackages, measure, c)
		n = max(n, len(pages[i]))
	}

	plans := make([]SlidePlan, n)
	for s := range plans {
		p := e.newPlan(SlideRoadmap, g.Timeline, s+1, n)
		p.Elements = append(p.Elements, e.heading(g.Timeline))

		for i, col := range cols {
			x := e.side() + colW*measurement.Distance(i) + inch(columnGutter)
			y := e.contentTop()
			if headers {
				if strings.TrimSpace(col.Phase) != "" {
					p.Elements = append(p.Elements, e.phaseHeader(col.Phase, x, y, boxW))
				}
				y += inch(phaseHeaderStep)
			}
			if s >= len(pages[i]) {
				continue
			}
			items := pages[i][s]
			var sum measurement.Distance
			for _, wp := range items {
				sum += measure(wp)
			}
			h := min(e.contentBottom()-y, max(inch(boxMin), sum+inch(boxPadding)))
			p.Elements = append(p.Elements, e.contentBox(items, x, y, boxW, h))
		}

		e.finish(&p)
		plans[s] = p
	}
	return plans
}

func (e *Engine) phaseHeader(phase string, x, y, w measurement.Distance) Element {
	return Element{
		Kind: KindTextBox, Role: RolePhaseHeader,
		X: x, Y: y, Width: w, Height: inch(phaseHeaderH),
		Style: Style{
			Fill: e.cfg.SecondaryColor, Font: e.cfg.TitleFont, FontSize: pt(phaseFontSize), Bold: true,
			Color: e.cfg.BackgroundColor, Align: AlignCenter, Anchor: AnchorMiddle, Inset: inch(textInset),
		},
		Paragraphs: []string{phase},
	}
}

func (e *Engine) contentBox(items []string, x, y, w, h measurement.Distance) Element {
	el := Element{
		Kind: KindTextBox, Role: RoleBullets,
		X: x, Y: y, Width: w, Height: h,
		Style: Style{
			Font: e.cfg.BodyFont, FontSize: pt(e.cfg.WorkpackageFontSize), Color: e.cfg.TextColor,
			Bullet: true, SpaceAfter: pt(workpackageSpaceAfter), Inset: inch(boxInset),
		},
		Paragraphs: items,
	}
	if e.cfg.UseShapes {
		el.Kind = KindShape
		el.Style.Geometry = GeometryRoundRect
		el.Style.Fill = e.cfg.ContentBoxColor
	}
	return el
}

// -----------------------------------------------------------------------------
// Shared elements
// -----------------------------------------------------------------------------

func (e *Engine) newPlan(t SlideType, heading string, page, pages int) SlidePlan {
	p := SlidePlan{Type: t, Heading: heading, Page: page, Pages: pages}
	if e.assets.Base() == "" {
		w, h := e.SlideSize()
		p.Elements = append(p.Elements, Element{
			Kind: KindShape, Role: RoleBackground,
			Width: w, Height: h,
			Style: Style{Geometry: GeometryRect, Fill: e.cfg.BackgroundColor},
		})
	}
	return p
}

// finish adds the page indicator and the logo, which sit above everything else.
func (e *Engine) finish(p *SlidePlan) {
	if el, ok := e.pageIndicator(p.Page, p.Pages); ok {
		p.Elements = append(p.Elements, el)
	}
	if el, ok := e.logo(); ok {
		p.Elements = append(p.Elements, el)
	}
}

func (e *Engine) heading(text string) Element {
	x, w := e.side(), e.contentWidth()
	// Keep clear of a logo in the top corners.
	if l := e.assets.Logo; l != nil {
		switch e.cfg.LogoPosition {
		case brand.LogoTopLeft:
			x += l.Width + inch(logoClearance)
			w -= l.Width + inch(logoClearance)
		case brand.LogoTopRight:
			w -= l.Width + inch(logoClearance)
		}
	}
	return Element{
		Kind: KindTextBox, Role: RoleHeading,
		X: x, Y: inch(headingTop), Width: max(w, inch(boxMin)), Height: inch(headingHeight),
		Style: Style{
			Font: e.cfg.TitleFont, FontSize: pt(e.cfg.HeadingFontSize), Bold: true,
			Color: e.cfg.PrimaryColor, Anchor: AnchorMiddle, Inset: inch(textInset),
		},
		Paragraphs: []string{text},
	}
}

func (e *Engine) sectionHeader(text string, x, y, w measurement.Distance) Element {
	return Element{
		Kind: KindTextBox, Role: RoleSectionHeader,
		X: x, Y: y, Width: w, Height: inch(sectionHeaderH),
		Style: Style{
			Font: e.cfg.TitleFont, FontSize: pt(sectionFontSize), Bold: true,
			Color: e.cfg.SecondaryColor, Anchor: AnchorMiddle, Inset: inch(textInset),
		},
		Paragraphs: []string{text},
	}
}

// pageIndicator returns "Page X of Y" for multi-page sections. It sits in the
// bottom-right corner, or bottom-left when the logo is there.
func (e *Engine) pageIndicator(page, pages int) (Element, bool) {
	if pages <= 1 {
		return Element{}, false
	}
	slideW, slideH := e.SlideSize()
	x, align := slideW-e.side()-inch(indicatorWidth), AlignRight
	if e.assets.Logo != nil && e.cfg.LogoPosition == brand.LogoBottomRight {
		x, align = e.side(), AlignLeft
	}
	return Element{
		Kind: KindTextBox, Role: RolePageIndicator,
		X: x, Y: slideH - inch(indicatorHeight+indicatorBottom),
		Width: inch(indicatorWidth), Height: inch(indicatorHeight),
		Style: Style{
			Font: e.cfg.BodyFont, FontSize: pt(indicatorFontSize), Color: e.cfg.TextColor,
			Align: align, Anchor: AnchorMiddle,
		},
		Paragraphs: []string{fmt.Sprintf("Page %d of %d", page, pages)},
	}, true
}

func (e *Engine) logo() (Element, bool) {
	l := e.assets.Logo
	if l == nil {
		return Element{}, false
	}
	slideW, slideH := e.SlideSize()
	var x, y measurement.Distance
	switch e.cfg.LogoPosition {
	case brand.LogoTopLeft:
		x, y = e.side(), inch(logoTop)
	case brand.LogoBottomLeft:
		x, y = e.side(), slideH-inch(logoBottom)-l.Height
	case brand.LogoBottomRight:
		x, y = slideW-e.side()-l.Width, slideH-inch(logoBottom)-l.Height
	case brand.LogoCenter:
		x, y = (slideW-l.Width)/2, inch(logoTop)
	default:
		x, y = slideW-e.side()-l.Width, inch(logoTop)
	}
	return Element{
		Kind: KindPicture, Role: RoleLogo,
		X: x, Y: y, Width: l.Width, Height: l.Height,
		Image: l.Path,
	}, true
}
