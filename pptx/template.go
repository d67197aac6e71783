package pptx

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"strings"

	"github.com/unidoc/unioffice"
	"github.com/unidoc/unioffice/presentation"
	"github.com/unidoc/unioffice/schema/soo/pkg/content_types"
	"github.com/unidoc/unioffice/schema/soo/pkg/relationships"
	"github.com/unidoc/unioffice/schema/soo/pml"
	"github.com/unidoc/unioffice/zippkg"
)

// errSlideIndex reports a template slide index past the last slide.
var errSlideIndex = errors.New("template slide index out of range")

const (
	notesSlideType = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/notesSlide"

	presentationMainType = "application/vnd.openxmlformats-officedocument.presentationml.presentation.main+xml"
	templateMainType     = "application/vnd.openxmlformats-officedocument.presentationml.template.main+xml"
)

// openTemplate reads a .pptx or .potx with every slide except the one at
// keep stripped from the package. keep < 0 strips all of them. The kept slide
// becomes slides/slide1.xml and speaker notes are dropped.
//
// Slides are removed from the package before it is read because
// Presentation.RemoveSlide leaves the presentation relationships pointing at
// the removed parts. A template main part is retyped as a presentation.
//
// The returned bool reports whether a slide was kept.
func openTemplate(filename string, keep int) (*presentation.Presentation, bool, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, false, err
	}
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, false, fmt.Errorf("read package: %w", err)
	}
	files := make(map[string]*zip.File, len(zr.File))
	for _, f := range zr.File {
		files[f.Name] = f
	}

	// --- locate the presentation part and its slide list ---
	rootRels := relationships.NewRelationships()
	if err := decodePart(files, unioffice.BaseRelsFilename, rootRels); err != nil {
		return nil, false, err
	}
	presPart := ""
	for _, rel := range rootRels.Relationship {
		if rel.TypeAttr == unioffice.OfficeDocumentType {
			presPart = strings.TrimPrefix(rel.TargetAttr, "/")
		}
	}
	if presPart == "" {
		return nil, false, fmt.Errorf("package has no presentation part")
	}

	pres := pml.NewPresentation()
	if err := decodePart(files, presPart, pres); err != nil {
		return nil, false, err
	}
	presRelsPath := zippkg.RelationsPathFor(presPart)
	presRels := relationships.NewRelationships()
	if err := decodePart(files, presRelsPath, presRels); err != nil {
		return nil, false, err
	}
	types := content_types.NewTypes()
	if err := decodePart(files, unioffice.ContentTypesFilename, types); err != nil {
		return nil, false, err
	}

	var ids []*pml.CT_SlideIdListEntry
	if pres.SldIdLst != nil {
		ids = pres.SldIdLst.SldId
	}
	if keep >= len(ids) {
		return nil, false, fmt.Errorf("%w: index %d, template has %d slides", errSlideIndex, keep, len(ids))
	}

	// --- drop every slide and notes part, remembering the kept slide ---
	dropped := make(map[string]bool)
	keptSlide, keptRID := "", ""
	if keep >= 0 {
		keptRID = ids[keep].RIdAttr
	}
	var rels []*relationships.Relationship
	for _, rel := range presRels.Relationship {
		if rel.TypeAttr != unioffice.SlideType {
			rels = append(rels, rel)
			continue
		}
		part := resolve(presPart, rel.TargetAttr)
		dropped[part] = true
		dropped[zippkg.RelationsPathFor(part)] = true
		if rel.IdAttr == keptRID {
			keptSlide = part
			rel.TargetAttr = strings.TrimPrefix(slidePart(1), path.Dir(presPart)+"/")
			rels = append(rels, rel)
		}
	}
	presRels.Relationship = rels
	for name := range files {
		if strings.Contains(name, "/notesSlides/") {
			dropped[name] = true
		}
	}
	if pres.SldIdLst != nil {
		pres.SldIdLst.SldId = nil
		if keep >= 0 {
			pres.SldIdLst.SldId = []*pml.CT_SlideIdListEntry{ids[keep]}
		}
	}

	var overrides []*content_types.Override
	for _, o := range types.Override {
		part := strings.TrimPrefix(o.PartNameAttr, "/")
		if dropped[part] {
			continue
		}
		if part == presPart && o.ContentTypeAttr == templateMainType {
			o.ContentTypeAttr = presentationMainType
		}
		overrides = append(overrides, o)
	}
	if keptSlide != "" {
		o := content_types.NewOverride()
		o.PartNameAttr = "/" + slidePart(1)
		o.ContentTypeAttr = unioffice.SlideContentType
		overrides = append(overrides, o)
	}
	types.Override = overrides

	// --- write the reduced package ---
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, f := range zr.File {
		switch {
		case dropped[f.Name], f.Name == presPart, f.Name == presRelsPath, f.Name == unioffice.ContentTypesFilename:
			continue
		}
		if err := zw.Copy(f); err != nil {
			return nil, false, fmt.Errorf("copy %s: %w", f.Name, err)
		}
	}
	if err := zippkg.MarshalXML(zw, presPart, pres); err != nil {
		return nil, false, err
	}
	if err := zippkg.MarshalXML(zw, presRelsPath, presRels); err != nil {
		return nil, false, err
	}
	if err := zippkg.MarshalXML(zw, unioffice.ContentTypesFilename, types); err != nil {
		return nil, false, err
	}
	if keptSlide != "" {
		if err := copySlide(zw, files, keptSlide); err != nil {
			return nil, false, err
		}
	}
	if err := zw.Close(); err != nil {
		return nil, false, fmt.Errorf("write package: %w", err)
	}

	prs, err := presentation.Read(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		return nil, false, err
	}
	return prs, keptSlide != "", nil
}

// copySlide writes the slide at part, and its relationships minus speaker
// notes, as the first slide of the package.
func copySlide(zw *zip.Writer, files map[string]*zip.File, part string) error {
	f, ok := files[part]
	if !ok {
		return fmt.Errorf("missing slide part %s", part)
	}
	w, err := zw.Create(slidePart(1))
	if err != nil {
		return err
	}
	rc, err := f.Open()
	if err != nil {
		return err
	}
	_, err = io.Copy(w, rc)
	rc.Close()
	if err != nil {
		return fmt.Errorf("copy %s: %w", part, err)
	}

	relsPath := zippkg.RelationsPathFor(part)
	if _, ok := files[relsPath]; !ok {
		return nil
	}
	rels := relationships.NewRelationships()
	if err := decodePart(files, relsPath, rels); err != nil {
		return err
	}
	var kept []*relationships.Relationship
	for _, rel := range rels.Relationship {
		if rel.TypeAttr != notesSlideType {
			kept = append(kept, rel)
		}
	}
	rels.Relationship = kept
	return zippkg.MarshalXML(zw, zippkg.RelationsPathFor(slidePart(1)), rels)
}

func decodePart(files map[string]*zip.File, name string, dest any) error {
	f, ok := files[name]
	if !ok {
		return fmt.Errorf("package has no %s", name)
	}
	return zippkg.Decode(f, dest)
}

// resolve returns the package path of target, which is relative to the part
// at source unless it starts with a slash.
func resolve(source, target string) string {
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(target, "/")
	}
	return path.Join(path.Dir(source), target)
}

func slidePart(n int) string {
	return unioffice.AbsoluteFilename(unioffice.DocTypePresentation, unioffice.SlideType, n)
}
