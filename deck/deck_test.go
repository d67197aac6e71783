package deck

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/unidoc/unioffice/presentation"
	"go.uber.org/goleak"

	"github.com/aerissecure/roadmap"
	"github.com/aerissecure/roadmap/brand"
	"github.com/aerissecure/roadmap/layout"
	"github.com/aerissecure/roadmap/xlsx"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func writeWorkbook(t *testing.T, dir string, sheets []xlsx.SheetData) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, xlsx.WriteWorkbook(&buf, sheets))
	path := filepath.Join(dir, "roadmap.xlsx")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	return path
}

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func countSlides(t *testing.T, path string) int {
	t.Helper()
	prs, err := presentation.Open(path)
	require.NoError(t, err)
	return len(prs.Slides())
}

// recorder is a Canvas that keeps the plans it is given.
type recorder struct {
	plans []layout.SlidePlan
	fail  map[int]error
}

func (r *recorder) Draw(p layout.SlidePlan) error {
	r.plans = append(r.plans, p)
	return r.fail[len(r.plans)-1]
}

func TestPlanOrder(t *testing.T) {
	e := layout.NewEngine(brand.Default(), layout.Assets{}, nil)
	doc := roadmap.Document{
		NorthStar:   "Vision",
		KeyElements: []string{"A"},
		Entries: []roadmap.TimelineEntry{
			{Timeline: "Q2", Phase: "Build", Workpackages: []string{"x"}},
			{Timeline: "Q1", Phase: "Plan", Workpackages: []string{"y"}},
			{Timeline: "Q2", Phase: "Ship", Workpackages: []string{"z"}},
		},
	}

	plans := Plan(doc, e)
	var got []string
	for _, p := range plans {
		got = append(got, fmt.Sprintf("%s:%s", p.Type, p.Heading))
	}
	assert.Equal(t, []string{
		"title:Roadmap Presentation",
		"objectives:Objectives",
		"overview:Roadmap Overview",
		"roadmap:Q2",
		"roadmap:Q1",
	}, got)
}

func TestPlanEmptyDocument(t *testing.T) {
	e := layout.NewEngine(brand.Default(), layout.Assets{}, nil)
	plans := Plan(roadmap.Document{}, e)
	require.Len(t, plans, 1)
	assert.Equal(t, layout.SlideTitle, plans[0].Type)
}

func TestRender(t *testing.T) {
	plans := []layout.SlidePlan{{Type: layout.SlideTitle}, {Type: layout.SlideObjectives}, {Type: layout.SlideRoadmap}}

	t.Run("warnings continue", func(t *testing.T) {
		r := &recorder{fail: map[int]error{0: roadmap.NewError(roadmap.ErrCodeAssetUnavailable, "logo")}}
		warnings, err := Render(plans, r)
		require.NoError(t, err)
		assert.Len(t, warnings, 1)
		assert.Len(t, r.plans, 3)
	})

	t.Run("fatal stops", func(t *testing.T) {
		r := &recorder{fail: map[int]error{1: errors.New("boom")}}
		_, err := Render(plans, r)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "slide 2")
		assert.Len(t, r.plans, 2)
	})
}

// The bundled sample becomes title, objectives, overview and one slide per
// timeline, and the first run creates the config file.
func TestRunSample(t *testing.T) {
	dir := t.TempDir()
	input := writeWorkbook(t, dir, xlsx.Sample())
	cfgPath := filepath.Join(dir, "cfg", "config.yaml")

	var logs bytes.Buffer
	res, err := Run(context.Background(), Options{
		Input:      input,
		ConfigPath: cfgPath,
		Logger:     log.New(&logs),
	})
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "roadmap.pptx"), res.Output)
	assert.Equal(t, 6, res.Slides)
	assert.Equal(t, 3, res.Timelines)
	assert.Equal(t, 3, res.KeyElements)
	assert.Equal(t, []string{"Notes"}, res.IgnoredSheets)
	assert.Empty(t, res.Warnings)
	assert.Equal(t, 6, countSlides(t, res.Output))

	assert.FileExists(t, cfgPath, "default config created on first run")
	assert.Contains(t, logs.String(), "Saved presentation")
}

// Scenario 1: three key elements fit one page; two timelines with one phase
// each give two nodes and one arrow on the overview.
func TestRunGrowRevenue(t *testing.T) {
	dir := t.TempDir()
	input := writeWorkbook(t, dir, []xlsx.SheetData{
		{Name: "Objectives", Rows: [][]string{
			{"North Star", "Key Elements"},
			{"Grow revenue", "A"},
			{"", "B"},
			{"", "C"},
		}},
		{Name: "Roadmap", Rows: [][]string{
			{"Timeline", "Phase", "Workpackage"},
			{"Phase 1", "Foundation", "Build X"},
			{"Phase 1", "Foundation", "Build Y"},
			{"Phase 2", "Growth", "Launch Z"},
		}},
	})
	cfgPath := writeConfig(t, dir, "")

	res, err := Run(context.Background(), Options{Input: input, ConfigPath: cfgPath})
	require.NoError(t, err)
	assert.Equal(t, 5, res.Slides)
	assert.Equal(t, 5, countSlides(t, res.Output))

	src, err := xlsx.Load(input)
	require.NoError(t, err)
	plans := Plan(src.Document, layout.NewEngine(brand.Default(), layout.Assets{}, nil))
	require.Len(t, plans, 5)

	assert.Equal(t, layout.SlideTitle, plans[0].Type)
	assert.Equal(t, []string{"Grow revenue"}, plans[0].Find(layout.RoleSubtitle)[0].Paragraphs)

	assert.Equal(t, layout.SlideObjectives, plans[1].Type)
	assert.Equal(t, []string{"A", "B", "C"}, plans[1].Find(layout.RoleBullets)[0].Paragraphs)

	assert.Equal(t, layout.SlideOverview, plans[2].Type)
	assert.Equal(t, 2, plans[2].Count(layout.RoleNode))
	assert.Equal(t, 1, plans[2].Count(layout.RoleArrow))

	for i, want := range []struct {
		timeline, phase string
		bullets         []string
	}{
		{"Phase 1", "Foundation", []string{"Build X", "Build Y"}},
		{"Phase 2", "Growth", []string{"Launch Z"}},
	} {
		p := plans[3+i]
		assert.Equal(t, layout.SlideRoadmap, p.Type)
		assert.Equal(t, want.timeline, p.Heading)
		require.Equal(t, 1, p.Count(layout.RolePhaseHeader))
		assert.Equal(t, []string{want.phase}, p.Find(layout.RolePhaseHeader)[0].Paragraphs)
		require.Equal(t, 1, p.Count(layout.RoleBullets))
		assert.Equal(t, want.bullets, p.Find(layout.RoleBullets)[0].Paragraphs)
	}
}

// Scenario 2: key elements that overflow one slide continue on more slides.
func TestRunPaginatesObjectives(t *testing.T) {
	dir := t.TempDir()
	rows := [][]string{{"North Star", "Key Elements"}}
	for i := 0; i < 40; i++ {
		ns := ""
		if i == 0 {
			ns = "Vision"
		}
		rows = append(rows, []string{ns, fmt.Sprintf("Key element %d with enough words to wrap onto a second line of the slide", i+1)})
	}
	input := writeWorkbook(t, dir, []xlsx.SheetData{
		{Name: "Objectives", Rows: rows},
		{Name: "Roadmap", Rows: [][]string{{"Timeline", "Phase", "Workpackage"}, {"Q1", "Plan", "Kickoff"}}},
	})
	cfgPath := writeConfig(t, dir, "deck_title: Growth\n")

	res, err := Run(context.Background(), Options{Input: input, ConfigPath: cfgPath, Output: filepath.Join(dir, "out.pptx")})
	require.NoError(t, err)

	src, err := xlsx.Load(input)
	require.NoError(t, err)
	cfg, _ := brand.Load(cfgPath)
	objectives := layout.NewEngine(cfg, layout.Assets{}, nil).Objectives(src.Document)
	require.Greater(t, len(objectives), 1)

	// title + objectives + overview + one timeline
	assert.Equal(t, 1+len(objectives)+1+1, res.Slides)
	assert.Equal(t, res.Slides, countSlides(t, res.Output))
}

// Scenario 3: a missing logo is a warning, not a failure.
func TestRunMissingLogo(t *testing.T) {
	dir := t.TempDir()
	input := writeWorkbook(t, dir, xlsx.Sample())
	cfgPath := writeConfig(t, dir, "logo_path: missing.png\nlogo_position: bottom_left\n")

	res, err := Run(context.Background(), Options{Input: input, ConfigPath: cfgPath})
	require.NoError(t, err)
	assert.True(t, res.Warnings.Has(roadmap.ErrCodeAssetUnavailable))
	assert.FileExists(t, res.Output)

	cfg, _ := brand.Load(cfgPath)
	assets, _ := layout.ResolveAssets(cfg)
	src, err := xlsx.Load(input)
	require.NoError(t, err)
	for _, p := range Plan(src.Document, layout.NewEngine(cfg, assets, nil)) {
		assert.Zero(t, p.Count(layout.RoleLogo), "logo on %s", p)
	}
}

func writeTemplate(t *testing.T, path string, slides int) {
	t.Helper()
	prs := presentation.New()
	for i := 0; i < slides; i++ {
		prs.AddSlide().AddTextBox().AddParagraph().AddRun().SetText(fmt.Sprintf("brand %d", i))
	}
	require.NoError(t, prs.SaveToFile(path))
}

func TestRunWithTemplates(t *testing.T) {
	tests := []struct {
		name   string
		config string
	}{
		{"title template", "title_template: brand.pptx\ntemplate_slide_index: 2\n"},
		{"content template", "content_template: brand.pptx\n"},
		{"both templates", "title_template: brand.pptx\ncontent_template: brand.pptx\ntemplate_slide_index: 1\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			input := writeWorkbook(t, dir, xlsx.Sample())
			writeTemplate(t, filepath.Join(dir, "brand.pptx"), 3)
			cfgPath := writeConfig(t, dir, tt.config)

			res, err := Run(context.Background(), Options{Input: input, ConfigPath: cfgPath})
			require.NoError(t, err)
			assert.Empty(t, res.Warnings)
			assert.Equal(t, 6, res.Slides)
			assert.Equal(t, 6, countSlides(t, res.Output))
		})
	}
}

// Scenario 4: without a phase column every timeline gets one full-width box.
func TestRunWithoutPhases(t *testing.T) {
	dir := t.TempDir()
	input := writeWorkbook(t, dir, []xlsx.SheetData{
		{Name: "Objectives", Rows: [][]string{{"North Star", "Key Elements"}, {"Vision", "Focus"}}},
		{Name: "Roadmap", Rows: [][]string{
			{"Timeline", "Workpackage"},
			{"2026", "Replatform billing"},
			{"2026", "Sunset legacy APIs"},
			{"2027", "Expand to EMEA"},
		}},
	})
	cfgPath := writeConfig(t, dir, "")

	res, err := Run(context.Background(), Options{Input: input, ConfigPath: cfgPath, Title: "Platform Plan"})
	require.NoError(t, err)
	assert.Equal(t, 5, res.Slides)

	src, err := xlsx.Load(input)
	require.NoError(t, err)
	e := layout.NewEngine(brand.Default(), layout.Assets{}, nil)
	for _, g := range roadmap.Group(src.Document.Entries) {
		plans := e.Roadmap(g)
		require.Len(t, plans, 1)
		assert.Zero(t, plans[0].Count(layout.RolePhaseHeader))
		assert.Equal(t, 1, plans[0].Count(layout.RoleBullets))
	}
}

func TestRunFailures(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeConfig(t, dir, "")

	t.Run("input not found", func(t *testing.T) {
		_, err := Run(context.Background(), Options{Input: filepath.Join(dir, "absent.xlsx"), ConfigPath: cfgPath})
		require.Error(t, err)
		assert.True(t, roadmap.IsCode(err, roadmap.ErrCodeInputNotFound))
	})

	t.Run("roadmap sheet missing", func(t *testing.T) {
		sub := t.TempDir()
		input := writeWorkbook(t, sub, []xlsx.SheetData{
			{Name: "Objectives", Rows: [][]string{{"North Star", "Key Elements"}, {"Vision", "Focus"}}},
		})
		_, err := Run(context.Background(), Options{Input: input, ConfigPath: cfgPath})
		require.Error(t, err)
		assert.True(t, roadmap.IsCode(err, roadmap.ErrCodeSheetMissing))
		assert.NoFileExists(t, DefaultOutput(input))
	})

	t.Run("output directory missing", func(t *testing.T) {
		sub := t.TempDir()
		input := writeWorkbook(t, sub, xlsx.Sample())
		out := filepath.Join(sub, "nope", "deck.pptx")
		_, err := Run(context.Background(), Options{Input: input, ConfigPath: cfgPath, Output: out})
		require.Error(t, err)
		assert.True(t, roadmap.IsCode(err, roadmap.ErrCodeOutputWrite))
	})

	t.Run("canceled before save", func(t *testing.T) {
		sub := t.TempDir()
		input := writeWorkbook(t, sub, xlsx.Sample())
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := Run(ctx, Options{Input: input, ConfigPath: cfgPath})
		require.ErrorIs(t, err, context.Canceled)
		assert.NoFileExists(t, DefaultOutput(input))
	})
}

func TestRunMalformedConfig(t *testing.T) {
	dir := t.TempDir()
	input := writeWorkbook(t, dir, xlsx.Sample())
	cfgPath := writeConfig(t, dir, "primary_color: nope\nslide_width: 13.333\n")

	res, err := Run(context.Background(), Options{Input: input, ConfigPath: cfgPath})
	require.NoError(t, err)
	require.Len(t, res.Warnings, 1)
	assert.True(t, roadmap.IsCode(res.Warnings[0], roadmap.ErrCodeConfigMalformed))

	prs, err := presentation.Open(res.Output)
	require.NoError(t, err)
	assert.InDelta(t, 12191695, float64(prs.X().SldSz.CxAttr), 1)
}

func TestDefaultOutput(t *testing.T) {
	assert.Equal(t, "/data/plan.pptx", DefaultOutput("/data/plan.xlsx"))
	assert.Equal(t, "plan.pptx", DefaultOutput("plan"))
}
