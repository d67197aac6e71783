package brand

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/aerissecure/roadmap"
)

const (
	// EnvConfig overrides the default config file location.
	EnvConfig = "ROADMAP_PPT_CONFIG"

	appDir     = "roadmap-ppt"
	configFile = "config.yaml"
)

const defaultConfigYAML = `# roadmap-ppt branding configuration
#
# Colors are six hex digits; quote them so YAML does not read '#' as a comment.
# Lengths are in inches, font sizes in points. Any field that is missing or
# invalid falls back to the value shown here.

deck_title: Roadmap Presentation

primary_color: "003366"
secondary_color: "0066CC"
accent_color: "FF9900"
text_color: "333333"
background_color: "FFFFFF"
content_box_color: "F5F5F5"

# Timeline overview diagram
overview_shape_color: "003366"
overview_text_color: "FFFFFF"
overview_arrow_color: "FF9900"

# Draw rounded rectangles behind content instead of plain text boxes.
use_shapes: true

title_font: Calibri
body_font: Calibri
title_font_size: 44
subtitle_font_size: 28
heading_font_size: 32
body_font_size: 18
workpackage_font_size: 14

slide_width: 10
slide_height: 7.5
title_top_margin: 1
content_top_margin: 1.5
side_margin: 0.5
bottom_margin: 0.5

# Path to a PNG/JPEG/GIF logo, relative to this file or absolute. Leave empty to skip.
logo_path: ""
# top_left, top_right, bottom_left, bottom_right or center
logo_position: top_right
logo_height: 0.7

# Optional .pptx/.potx templates. The title slide is taken from
# template_slide_index of title_template and the content is overlaid.
title_template: ""
content_template: ""
template_slide_index: 0

overview_node_width: 2.2
overview_node_height: 1.3
overview_gap: 0.6
`

// DefaultPath returns the config file location: $ROADMAP_PPT_CONFIG when set,
// otherwise config.yaml under the platform user-config directory.
func DefaultPath() (string, error) {
	if p := strings.TrimSpace(os.Getenv(EnvConfig)); p != "" {
		return p, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		home, herr := os.UserHomeDir()
		if herr != nil {
			return "", fmt.Errorf("brand: locate config dir: %w", err)
		}
		return filepath.Join(home, ".roadmap_ppt", configFile), nil
	}
	return filepath.Join(dir, appDir, configFile), nil
}

// EnsureDefault writes the default config to path unless a file already
// exists there. It reports whether a file was created.
func EnsureDefault(path string) (bool, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, fmt.Errorf("brand: ensure config dir: %w", err)
	}
	content, err := defaultContent(path)
	if err != nil {
		return false, err
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return false, nil
		}
		return false, fmt.Errorf("brand: create %s: %w", path, err)
	}
	if _, err := f.Write(content); err != nil {
		f.Close()
		os.Remove(path)
		return false, fmt.Errorf("brand: write %s: %w", path, err)
	}
	return true, f.Close()
}

func defaultContent(path string) ([]byte, error) {
	if !isTOML(path) {
		return []byte(defaultConfigYAML), nil
	}
	var buf bytes.Buffer
	buf.WriteString("# roadmap-ppt branding configuration\n# Lengths are in inches, font sizes in points.\n\n")
	if err := toml.NewEncoder(&buf).Encode(Default()); err != nil {
		return nil, fmt.Errorf("brand: encode default config: %w", err)
	}
	return buf.Bytes(), nil
}

// Load reads the config at path. It always returns a usable Config; every
// problem is returned as a ConfigMalformed warning and the affected field
// keeps its default. A missing file yields the defaults without warnings.
func Load(path string) (Config, []error) {
	cfg := Default()
	var warnings []error

	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			warnings = append(warnings, roadmap.WrapError(roadmap.ErrCodeConfigMalformed, err, "read %s", path))
		}
		return cfg, warnings
	}

	var fields []rawField
	if isTOML(path) {
		fields, err = tomlFields(data)
	} else {
		fields, err = yamlFields(data)
	}
	if err != nil {
		warnings = append(warnings, roadmap.WrapError(roadmap.ErrCodeConfigMalformed, err, "parse %s, using defaults", path))
		return cfg, warnings
	}

	for _, f := range fields {
		if err := cfg.set(f); err != nil {
			warnings = append(warnings, roadmap.WrapError(roadmap.ErrCodeConfigMalformed, err, "%s: field %q, using default", path, f.key))
		}
	}

	base := filepath.Dir(path)
	cfg.LogoPath = resolvePath(base, cfg.LogoPath)
	cfg.TitleTemplate = resolvePath(base, cfg.TitleTemplate)
	cfg.ContentTemplate = resolvePath(base, cfg.ContentTemplate)
	return cfg, warnings
}

// rawField is one top-level key of the config file whose value is decoded
// lazily so a bad value only affects its own field.
type rawField struct {
	key    string
	decode func(v any) error
}

func yamlFields(data []byte) ([]rawField, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if len(doc.Content) == 0 {
		return nil, nil // empty file
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("top level is not a mapping")
	}
	var fields []rawField
	for i := 0; i+1 < len(root.Content); i += 2 {
		val := root.Content[i+1]
		fields = append(fields, rawField{key: root.Content[i].Value, decode: val.Decode})
	}
	return fields, nil
}

func tomlFields(data []byte) ([]rawField, error) {
	var prims map[string]toml.Primitive
	md, err := toml.Decode(string(data), &prims)
	if err != nil {
		return nil, err
	}
	var fields []rawField
	for _, key := range md.Keys() {
		if len(key) != 1 {
			continue
		}
		prim := prims[key[0]]
		fields = append(fields, rawField{key: key[0], decode: func(v any) error {
			return md.PrimitiveDecode(prim, v)
		}})
	}
	return fields, nil
}

// set decodes f into a copy of the config and keeps the copy only when the
// value decodes and validates.
func (c *Config) set(f rawField) error {
	tmp := *c
	ptr, ok := tmp.field(f.key)
	if !ok {
		return fmt.Errorf("unknown key")
	}
	if err := f.decode(ptr); err != nil {
		return err
	}
	if err := validate(f.key, ptr); err != nil {
		return err
	}
	*c = tmp
	return nil
}

// field returns a pointer to the field tagged key.
func (c *Config) field(key string) (any, bool) {
	v := reflect.ValueOf(c).Elem()
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		if t.Field(i).Tag.Get("yaml") == key {
			return v.Field(i).Addr().Interface(), true
		}
	}
	return nil, false
}

// validate rejects values no layout can use. Margins and gaps may be zero,
// every other length and size must be positive.
func validate(key string, ptr any) error {
	switch v := ptr.(type) {
	case *float64:
		if zeroable(key) {
			if *v < 0 {
				return fmt.Errorf("must not be negative, got %v", *v)
			}
			break
		}
		if *v <= 0 {
			return fmt.Errorf("must be positive, got %v", *v)
		}
	case *int:
		if *v < 0 {
			return fmt.Errorf("must not be negative, got %d", *v)
		}
	case *Color:
		if *v == "" {
			return fmt.Errorf("color is empty")
		}
	case *LogoPosition:
		if *v == "" {
			return fmt.Errorf("logo position is empty")
		}
	}
	return nil
}

func zeroable(key string) bool {
	return strings.HasSuffix(key, "_margin") || strings.HasSuffix(key, "_gap")
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}

func resolvePath(base, candidate string) string {
	trimmed := strings.TrimSpace(candidate)
	if trimmed == "" {
		return ""
	}
	if strings.HasPrefix(trimmed, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, trimmed[2:])
		}
	}
	if filepath.IsAbs(trimmed) {
		return filepath.Clean(trimmed)
	}
	return filepath.Clean(filepath.Join(base, trimmed))
}
