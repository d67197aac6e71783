package layout

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/unidoc/unioffice/measurement"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/aerissecure/roadmap"
	"github.com/aerissecure/roadmap/brand"
)

// Logo is a resolved logo image scaled to the configured height.
type Logo struct {
	Path   string
	Width  measurement.Distance
	Height measurement.Distance
}

// Assets are the external files a deck uses, after checking they can be
// read. A nil Logo or empty template path means the asset is not used.
type Assets struct {
	Logo            *Logo
	TitleTemplate   string
	ContentTemplate string
}

// Base returns the template the presentation is built on, or "" for a blank
// presentation. The title template wins when both are set.
func (a Assets) Base() string {
	if a.TitleTemplate != "" {
		return a.TitleTemplate
	}
	return a.ContentTemplate
}

// BaseSlide returns the index of the template slide the title is drawn on,
// or -1 when only the content template is set and no template slide is kept.
func (a Assets) BaseSlide(index int) int {
	if a.TitleTemplate == "" {
		return -1
	}
	return index
}

// ResolveAssets checks the logo and templates named by cfg. Anything that
// cannot be used is left out and reported as an AssetUnavailable warning.
func ResolveAssets(cfg brand.Config) (Assets, []error) {
	var a Assets
	var warnings []error

	if cfg.LogoPath != "" {
		logo, err := resolveLogo(cfg.LogoPath, inch(cfg.LogoHeight))
		if err != nil {
			warnings = append(warnings, err)
		} else {
			a.Logo = logo
		}
	}

	for _, t := range []struct {
		name string
		path string
		dst  *string
	}{
		{"title template", cfg.TitleTemplate, &a.TitleTemplate},
		{"content template", cfg.ContentTemplate, &a.ContentTemplate},
	} {
		if t.path == "" {
			continue
		}
		if err := checkFile(t.path); err != nil {
			warnings = append(warnings, roadmap.WrapError(roadmap.ErrCodeAssetUnavailable, err, "%s %s", t.name, t.path))
			continue
		}
		*t.dst = t.path
	}

	if a.TitleTemplate != "" && a.ContentTemplate != "" && a.TitleTemplate != a.ContentTemplate {
		warnings = append(warnings, roadmap.NewError(roadmap.ErrCodeAssetUnavailable,
			"content template %s ignored, content slides use the layouts of %s", a.ContentTemplate, a.TitleTemplate))
	}
	return a, warnings
}

func resolveLogo(path string, height measurement.Distance) (*Logo, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, roadmap.WrapError(roadmap.ErrCodeAssetUnavailable, err, "logo %s", path)
	}
	defer f.Close()

	img, _, err := image.DecodeConfig(f)
	if err != nil {
		return nil, roadmap.WrapError(roadmap.ErrCodeAssetUnavailable, err, "logo %s", path)
	}
	if img.Width <= 0 || img.Height <= 0 {
		return nil, roadmap.NewError(roadmap.ErrCodeAssetUnavailable, "logo %s: empty image", path)
	}
	width := height * measurement.Distance(img.Width) / measurement.Distance(img.Height)
	return &Logo{Path: path, Width: width, Height: height}, nil
}

func checkFile(path string) error {
	fi, err := os.Stat(path)
	if err != nil {
		return err
	}
	if fi.IsDir() {
		return fmt.Errorf("is a directory")
	}
	return nil
}
