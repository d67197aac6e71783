// Package deck assembles a roadmap presentation: it reads the workbook,
// loads the brand config, plans every slide and hands the plans to a writer.
package deck

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/aerissecure/roadmap"
	"github.com/aerissecure/roadmap/brand"
	"github.com/aerissecure/roadmap/layout"
	"github.com/aerissecure/roadmap/pptx"
	"github.com/aerissecure/roadmap/xlsx"
)

// Canvas receives slide plans in deck order.
type Canvas interface {
	Draw(layout.SlidePlan) error
}

// Plan returns the slides for doc in deck order: title, objectives pages,
// the timeline overview and the roadmap slides of each timeline in the order
// timelines first appear.
func Plan(doc roadmap.Document, e *layout.Engine) []layout.SlidePlan {
	plans := []layout.SlidePlan{e.Title(doc)}
	plans = append(plans, e.Objectives(doc)...)
	if len(roadmap.Pairs(doc.Entries)) > 0 {
		plans = append(plans, e.ComposeOverview(doc.Entries))
	}
	for _, g := range roadmap.Group(doc.Entries) {
		plans = append(plans, e.Roadmap(g)...)
	}
	return plans
}

// Render draws plans on c in order. Non-fatal draw errors are returned as
// warnings; a fatal one stops rendering.
func Render(plans []layout.SlidePlan, c Canvas) ([]error, error) {
	var warnings []error
	for i, p := range plans {
		if err := c.Draw(p); err != nil {
			if roadmap.Fatal(err) {
				return warnings, fmt.Errorf("draw slide %d (%s): %w", i+1, p.Type, err)
			}
			warnings = append(warnings, err)
		}
	}
	return warnings, nil
}

// Options configure a Run.
type Options struct {
	Input      string // workbook path
	Output     string // defaults to the input path with a .pptx extension
	ConfigPath string // defaults to brand.DefaultPath
	Title      string // overrides the configured deck title
	Logger     *log.Logger
}

// Result describes a finished run.
type Result struct {
	Output        string
	ConfigPath    string
	Slides        int
	Timelines     int
	KeyElements   int
	IgnoredSheets []string
	Warnings      roadmap.Warnings
}

// DefaultOutput returns input with its extension replaced by .pptx.
func DefaultOutput(input string) string {
	return strings.TrimSuffix(input, filepath.Ext(input)) + ".pptx"
}

// Run generates the deck for opts.Input. Problems with the config or assets
// are collected as warnings; any other failure aborts the run before the
// output file is written.
func Run(ctx context.Context, opts Options) (Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	var res Result
	warn := func(errs ...error) {
		for _, err := range errs {
			if err != nil {
				logger.Warn(err.Error())
			}
		}
		res.Warnings.Add(errs...)
	}

	if _, err := os.Stat(opts.Input); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return res, roadmap.NewError(roadmap.ErrCodeInputNotFound, "input file %s not found", opts.Input)
		}
		return res, roadmap.WrapError(roadmap.ErrCodeInputNotFound, err, "input file %s", opts.Input)
	}

	cfg := loadConfig(opts.ConfigPath, logger, &res, warn)
	if opts.Title != "" {
		cfg.DeckTitle = opts.Title
	}

	logger.Info("Reading workbook", "path", opts.Input)
	src, err := xlsx.Load(opts.Input)
	if err != nil {
		return res, err
	}
	for _, name := range src.Ignored {
		logger.Debug("Ignoring sheet", "sheet", name)
	}
	doc := src.Document
	doc.Title = cfg.DeckTitle
	groups := roadmap.Group(doc.Entries)
	res.IgnoredSheets = src.Ignored
	res.Timelines = len(groups)
	res.KeyElements = len(doc.KeyElements)
	logger.Debug("Read workbook", "key_elements", len(doc.KeyElements), "entries", len(doc.Entries), "timelines", len(groups))

	assets, ws := layout.ResolveAssets(cfg)
	warn(ws...)

	engine := layout.NewEngine(cfg, assets, layout.NewEstimator())
	plans := Plan(doc, engine)
	for _, p := range plans {
		logger.Debug("Planned slide", "type", p.Type, "heading", p.Heading, "page", p.Page, "pages", p.Pages, "elements", len(p.Elements))
	}

	width, height := engine.SlideSize()
	w, ws := pptx.New(pptx.Options{
		Width:         width,
		Height:        height,
		Template:      assets.Base(),
		TemplateSlide: assets.BaseSlide(cfg.TemplateSlideIndex),
	})
	warn(ws...)

	ws, err = Render(plans, w)
	warn(ws...)
	if err != nil {
		return res, err
	}

	if err := ctx.Err(); err != nil {
		return res, err
	}

	out := opts.Output
	if out == "" {
		out = DefaultOutput(opts.Input)
	}
	if err := w.Save(out); err != nil {
		return res, err
	}
	res.Output = out
	res.Slides = w.Slides()
	logger.Info("Saved presentation", "path", out, "slides", res.Slides)
	return res, nil
}

// loadConfig ensures the config file exists and loads it. Every failure
// falls back to the defaults with a warning.
func loadConfig(path string, logger *log.Logger, res *Result, warn func(...error)) brand.Config {
	if path == "" {
		p, err := brand.DefaultPath()
		if err != nil {
			warn(roadmap.WrapError(roadmap.ErrCodeConfigMalformed, err, "locate config, using defaults"))
			return brand.Default()
		}
		path = p
	}
	res.ConfigPath = path

	created, err := brand.EnsureDefault(path)
	if err != nil {
		warn(roadmap.WrapError(roadmap.ErrCodeConfigMalformed, err, "create default config"))
	} else if created {
		logger.Info("Created default config", "path", path)
	}

	cfg, ws := brand.Load(path)
	warn(ws...)
	logger.Debug("Loaded config", "path", path, "config", cfg)
	return cfg
}
