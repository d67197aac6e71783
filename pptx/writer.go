// Package pptx draws slide plans into a PowerPoint presentation.
package pptx

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/unidoc/unioffice"
	"github.com/unidoc/unioffice/color"
	"github.com/unidoc/unioffice/common"
	"github.com/unidoc/unioffice/drawing"
	"github.com/unidoc/unioffice/measurement"
	"github.com/unidoc/unioffice/presentation"
	"github.com/unidoc/unioffice/schema/soo/dml"
	"github.com/unidoc/unioffice/schema/soo/pml"

	"github.com/aerissecure/roadmap"
	"github.com/aerissecure/roadmap/brand"
	"github.com/aerissecure/roadmap/layout"
)

// Options configure a new Writer.
type Options struct {
	Width, Height measurement.Distance

	// Template is a .pptx or .potx the deck is built on. Its masters, layouts
	// and theme are kept. The slide at TemplateSlide is kept as the base for
	// the first OnTemplate plan; a negative index keeps no template slide.
	Template      string
	TemplateSlide int
}

// Writer owns an in-progress presentation. It is not safe for concurrent use.
type Writer struct {
	prs    *presentation.Presentation
	base   *presentation.Slide // reserved template slide, until drawn on
	images map[string]common.ImageRef
}

// New starts a presentation. A template that cannot be opened is reported as
// an AssetUnavailable warning and a blank presentation is used instead.
func New(opts Options) (*Writer, []error) {
	w := &Writer{images: make(map[string]common.ImageRef)}
	var warnings []error

	if opts.Template != "" {
		prs, kept, err := openTemplate(opts.Template, opts.TemplateSlide)
		if errors.Is(err, errSlideIndex) {
			warnings = append(warnings, roadmap.WrapError(roadmap.ErrCodeAssetUnavailable, err, "template %s", opts.Template))
			prs, kept, err = openTemplate(opts.Template, -1)
		}
		if err != nil {
			warnings = append(warnings, roadmap.WrapError(roadmap.ErrCodeAssetUnavailable, err, "open template %s", opts.Template))
		} else {
			w.prs = prs
			if kept {
				base := prs.Slides()[0]
				w.base = &base
			}
		}
	}
	if w.prs == nil {
		w.prs = presentation.New()
	}

	x := w.prs.X()
	if x.SldSz == nil {
		x.SldSz = pml.NewCT_SlideSize()
	}
	x.SldSz.CxAttr = emu32(opts.Width)
	x.SldSz.CyAttr = emu32(opts.Height)
	return w, warnings
}

// Slides returns the number of slides in the presentation.
func (w *Writer) Slides() int {
	return len(w.prs.Slides())
}

// Draw adds one slide for plan. A plan marked OnTemplate is drawn over the
// reserved template slide when there is one.
func (w *Writer) Draw(plan layout.SlidePlan) error {
	var slide presentation.Slide
	if plan.OnTemplate && w.base != nil {
		slide = *w.base
		w.base = nil
	} else {
		slide = w.prs.AddSlide()
	}

	for _, el := range plan.Elements {
		switch el.Kind {
		case layout.KindPicture:
			if err := w.drawPicture(slide, el); err != nil {
				return err
			}
		case layout.KindTextBox, layout.KindShape, layout.KindArrow:
			drawShape(slide, el)
		default:
			return fmt.Errorf("pptx: unknown element kind %v", el.Kind)
		}
	}
	return nil
}

func (w *Writer) drawPicture(slide presentation.Slide, el layout.Element) error {
	ref, ok := w.images[el.Image]
	if !ok {
		img, err := common.ImageFromFile(el.Image)
		if err != nil {
			return roadmap.WrapError(roadmap.ErrCodeAssetUnavailable, err, "load image %s", el.Image)
		}
		ref, err = w.prs.AddImage(img)
		if err != nil {
			return roadmap.WrapError(roadmap.ErrCodeAssetUnavailable, err, "embed image %s", el.Image)
		}
		w.images[el.Image] = ref
	}
	pic := slide.AddImage(ref)
	pic.Properties().SetPosition(el.X, el.Y)
	pic.Properties().SetSize(el.Width, el.Height)
	return nil
}

// drawShape draws every non-picture element as a preset-geometry shape with
// an optional text body.
func drawShape(slide presentation.Slide, el layout.Element) {
	tb := slide.AddTextBox()
	// AddTextBox appends one choice holding the new shape.
	choices := slide.X().CSld.SpTree.Choice
	shape := choices[len(choices)-1].Sp[0]

	st := el.Style
	sp := tb.Properties()
	sp.SetPosition(el.X, el.Y)
	sp.SetSize(el.Width, el.Height)

	if el.Kind == layout.KindTextBox {
		shape.NvSpPr.CNvSpPr.TxBoxAttr = unioffice.Bool(true)
	} else {
		sp.SetGeometry(geometry(st.Geometry))
	}
	if el.FlipH {
		sp.SetFlipHorizontal(true)
	}

	if st.Fill != "" {
		sp.SetSolidFill(rgb(st.Fill))
	} else {
		sp.SetNoFill()
	}
	if st.Line != "" {
		ln := sp.LineProperties()
		ln.SetSolidFill(rgb(st.Line))
		if st.LineWidth > 0 {
			ln.SetWidth(st.LineWidth)
		}
		if st.ArrowHead {
			ln.X().TailEnd = dml.NewCT_LineEndProperties()
			ln.X().TailEnd.TypeAttr = dml.ST_LineEndTypeTriangle
		}
	}

	body := shape.TxBody.BodyPr
	body.SpAutoFit = nil
	body.WrapAttr = dml.ST_TextWrappingTypeSquare
	if st.Anchor == layout.AnchorMiddle {
		body.AnchorAttr = dml.ST_TextAnchoringTypeCtr
	} else {
		body.AnchorAttr = dml.ST_TextAnchoringTypeT
	}
	if st.Inset > 0 {
		body.LInsAttr = coord32(st.Inset)
		body.RInsAttr = coord32(st.Inset)
		body.TInsAttr = coord32(st.Inset)
		body.BInsAttr = coord32(st.Inset)
	}

	for _, text := range el.Paragraphs {
		addParagraph(tb, st, text)
	}
}

func addParagraph(tb presentation.TextBox, st layout.Style, text string) {
	para := tb.AddParagraph()
	pp := para.Properties()
	pp.SetAlign(align(st.Align))
	if st.SpaceAfter > 0 {
		pp.X().SpcAft = dml.NewCT_TextSpacing()
		pp.X().SpcAft.SpcPts = dml.NewCT_TextSpacingPoint()
		pp.X().SpcAft.SpcPts.ValAttr = int32(st.SpaceAfter / measurement.Point * 100)
	}

	if st.Bullet {
		text = layout.BulletPrefix + text
	}
	// Explicit line breaks inside a cell stay within the paragraph.
	for i, line := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		if i > 0 {
			para.AddBreak()
		}
		run := para.AddRun()
		run.SetText(line)
		styleRun(run.Properties(), st)
	}
}

func styleRun(rp drawing.RunProperties, st layout.Style) {
	if st.Font != "" {
		rp.SetFont(st.Font)
	}
	if st.FontSize > 0 {
		rp.SetSize(st.FontSize)
	}
	rp.SetBold(st.Bold)
	if st.Color != "" {
		rp.SetSolidFill(rgb(st.Color))
	}
}

// Save writes the presentation to path. The file is written next to path
// and renamed into place, so path is either fully written or untouched.
func (w *Writer) Save(path string) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return roadmap.WrapError(roadmap.ErrCodeOutputWrite, err, "write %s", path)
	}
	name := tmp.Name()
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(name)
		}
	}()

	if err = w.prs.Save(tmp); err != nil {
		return roadmap.WrapError(roadmap.ErrCodeOutputWrite, err, "write %s", path)
	}
	if err = tmp.Sync(); err != nil {
		return roadmap.WrapError(roadmap.ErrCodeOutputWrite, err, "write %s", path)
	}
	if err = tmp.Close(); err != nil {
		return roadmap.WrapError(roadmap.ErrCodeOutputWrite, err, "write %s", path)
	}
	if err = os.Rename(name, path); err != nil {
		return roadmap.WrapError(roadmap.ErrCodeOutputWrite, err, "write %s", path)
	}
	return nil
}

func geometry(g layout.Geometry) dml.ST_ShapeType {
	switch g {
	case layout.GeometryRoundRect:
		return dml.ST_ShapeTypeRoundRect
	case layout.GeometryRightArrow:
		return dml.ST_ShapeTypeRightArrow
	case layout.GeometryLine:
		return dml.ST_ShapeTypeLine
	}
	return dml.ST_ShapeTypeRect
}

func align(a layout.Align) dml.ST_TextAlignType {
	switch a {
	case layout.AlignCenter:
		return dml.ST_TextAlignTypeCtr
	case layout.AlignRight:
		return dml.ST_TextAlignTypeR
	}
	return dml.ST_TextAlignTypeL
}

func rgb(c brand.Color) color.Color {
	return color.FromHex(string(c))
}

func emu32(d measurement.Distance) int32 {
	return int32(math.Round(float64(d / measurement.EMU)))
}

func coord32(d measurement.Distance) *dml.ST_Coordinate32 {
	return &dml.ST_Coordinate32{ST_Coordinate32Unqualified: unioffice.Int32(emu32(d))}
}
