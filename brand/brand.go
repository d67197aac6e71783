// Package brand holds the branding configuration of a deck: colors, fonts,
// slide geometry, logo and templates.
//
// The configuration lives in a per-user file that is created with documented
// defaults on first run. Loading never fails a run: a field that cannot be
// decoded or validated keeps its default and is reported as a warning.
package brand

import (
	"fmt"
	"strings"
)

// Color is an RGB color as six hex digits without a leading '#'.
type Color string

// ParseColor accepts "RRGGBB" or "#RRGGBB" in any case.
func ParseColor(s string) (Color, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return "", fmt.Errorf("color %q: want 6 hex digits", s)
	}
	for _, r := range s {
		if !strings.ContainsRune("0123456789abcdefABCDEF", r) {
			return "", fmt.Errorf("color %q: invalid hex digit %q", s, r)
		}
	}
	return Color(strings.ToUpper(s)), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Color) UnmarshalText(b []byte) error {
	parsed, err := ParseColor(string(b))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (c Color) MarshalText() ([]byte, error) {
	return []byte(c), nil
}

// Hex returns the color with a leading '#'.
func (c Color) Hex() string { return "#" + string(c) }

// LogoPosition names the corner (or center) the logo is anchored to.
type LogoPosition string

const (
	LogoTopLeft     LogoPosition = "top_left"
	LogoTopRight    LogoPosition = "top_right"
	LogoBottomLeft  LogoPosition = "bottom_left"
	LogoBottomRight LogoPosition = "bottom_right"
	LogoCenter      LogoPosition = "center"
)

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *LogoPosition) UnmarshalText(b []byte) error {
	v := LogoPosition(strings.ToLower(strings.TrimSpace(string(b))))
	switch v {
	case LogoTopLeft, LogoTopRight, LogoBottomLeft, LogoBottomRight, LogoCenter:
		*p = v
		return nil
	}
	return fmt.Errorf("logo position %q: want top_left, top_right, bottom_left, bottom_right or center", string(b))
}

// Config is the flat set of branding parameters. It is read-only once loaded.
// Lengths are in inches and font sizes in points.
type Config struct {
	DeckTitle string `yaml:"deck_title" toml:"deck_title"`

	PrimaryColor    Color `yaml:"primary_color" toml:"primary_color"`
	SecondaryColor  Color `yaml:"secondary_color" toml:"secondary_color"`
	AccentColor     Color `yaml:"accent_color" toml:"accent_color"`
	TextColor       Color `yaml:"text_color" toml:"text_color"`
	BackgroundColor Color `yaml:"background_color" toml:"background_color"`
	ContentBoxColor Color `yaml:"content_box_color" toml:"content_box_color"`

	OverviewShapeColor Color `yaml:"overview_shape_color" toml:"overview_shape_color"`
	OverviewTextColor  Color `yaml:"overview_text_color" toml:"overview_text_color"`
	OverviewArrowColor Color `yaml:"overview_arrow_color" toml:"overview_arrow_color"`

	UseShapes bool `yaml:"use_shapes" toml:"use_shapes"`

	TitleFont           string  `yaml:"title_font" toml:"title_font"`
	BodyFont            string  `yaml:"body_font" toml:"body_font"`
	TitleFontSize       float64 `yaml:"title_font_size" toml:"title_font_size"`
	SubtitleFontSize    float64 `yaml:"subtitle_font_size" toml:"subtitle_font_size"`
	HeadingFontSize     float64 `yaml:"heading_font_size" toml:"heading_font_size"`
	BodyFontSize        float64 `yaml:"body_font_size" toml:"body_font_size"`
	WorkpackageFontSize float64 `yaml:"workpackage_font_size" toml:"workpackage_font_size"`

	SlideWidth       float64 `yaml:"slide_width" toml:"slide_width"`
	SlideHeight      float64 `yaml:"slide_height" toml:"slide_height"`
	TitleTopMargin   float64 `yaml:"title_top_margin" toml:"title_top_margin"`
	ContentTopMargin float64 `yaml:"content_top_margin" toml:"content_top_margin"`
	SideMargin       float64 `yaml:"side_margin" toml:"side_margin"`
	BottomMargin     float64 `yaml:"bottom_margin" toml:"bottom_margin"`

	LogoPath     string       `yaml:"logo_path" toml:"logo_path"`
	LogoPosition LogoPosition `yaml:"logo_position" toml:"logo_position"`
	LogoHeight   float64      `yaml:"logo_height" toml:"logo_height"`

	TitleTemplate      string `yaml:"title_template" toml:"title_template"`
	ContentTemplate    string `yaml:"content_template" toml:"content_template"`
	TemplateSlideIndex int    `yaml:"template_slide_index" toml:"template_slide_index"`

	OverviewNodeWidth  float64 `yaml:"overview_node_width" toml:"overview_node_width"`
	OverviewNodeHeight float64 `yaml:"overview_node_height" toml:"overview_node_height"`
	OverviewGap        float64 `yaml:"overview_gap" toml:"overview_gap"`
}

// Default returns the built-in configuration every missing or invalid field
// falls back to.
func Default() Config {
	return Config{
		DeckTitle: "Roadmap Presentation",

		PrimaryColor:    "003366",
		SecondaryColor:  "0066CC",
		AccentColor:     "FF9900",
		TextColor:       "333333",
		BackgroundColor: "FFFFFF",
		ContentBoxColor: "F5F5F5",

		OverviewShapeColor: "003366",
		OverviewTextColor:  "FFFFFF",
		OverviewArrowColor: "FF9900",

		UseShapes: true,

		TitleFont:           "Calibri",
		BodyFont:            "Calibri",
		TitleFontSize:       44,
		SubtitleFontSize:    28,
		HeadingFontSize:     32,
		BodyFontSize:        18,
		WorkpackageFontSize: 14,

		SlideWidth:       10,
		SlideHeight:      7.5,
		TitleTopMargin:   1,
		ContentTopMargin: 1.5,
		SideMargin:       0.5,
		BottomMargin:     0.5,

		LogoPosition: LogoTopRight,
		LogoHeight:   0.7,

		OverviewNodeWidth:  2.2,
		OverviewNodeHeight: 1.3,
		OverviewGap:        0.6,
	}
}

func (c Config) String() string {
	return fmt.Sprintf("DeckTitle: %q, Slide: %.2fx%.2fin, Fonts: %s/%s, Logo: %q (%s), Templates: %q/%q",
		c.DeckTitle, c.SlideWidth, c.SlideHeight, c.TitleFont, c.BodyFont, c.LogoPath, c.LogoPosition, c.TitleTemplate, c.ContentTemplate)
}
