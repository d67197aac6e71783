package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/aerissecure/roadmap/deck"
)

var (
	colorCyan   = lipgloss.Color("36")
	colorGreen  = lipgloss.Color("35")
	colorYellow = lipgloss.Color("220")
	colorWhite  = lipgloss.Color("255")
	colorDim    = lipgloss.Color("240")
)

var (
	styleTitle   = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	styleLabel   = lipgloss.NewStyle().Foreground(colorDim).Width(12)
	styleValue   = lipgloss.NewStyle().Foreground(colorWhite)
	styleNumber  = lipgloss.NewStyle().Foreground(colorCyan)
	styleWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleDim     = lipgloss.NewStyle().Foreground(colorDim)

	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

const (
	iconSuccess = "✓"
	iconWarning = "!"
	iconArrow   = "→"
)

// printSummary prints the outcome of a run.
func printSummary(w io.Writer, res deck.Result) {
	fmt.Fprintln(w, styleIconSuccess.Render(iconSuccess)+" "+styleTitle.Render("Presentation created"))
	printField(w, "Output", styleValue.Render(res.Output))
	printField(w, "Slides", styleNumber.Render(fmt.Sprint(res.Slides)))
	printField(w, "Timelines", styleNumber.Render(fmt.Sprint(res.Timelines)))
	printField(w, "Objectives", styleNumber.Render(fmt.Sprint(res.KeyElements)))
	if res.ConfigPath != "" {
		printField(w, "Config", styleDim.Render(res.ConfigPath))
	}

	if len(res.Warnings) == 0 {
		return
	}
	noun := "warnings"
	if len(res.Warnings) == 1 {
		noun = "warning"
	}
	fmt.Fprintln(w, styleIconWarning.Render(iconWarning)+" "+styleWarning.Render(fmt.Sprintf("%d %s", len(res.Warnings), noun)))
	for _, err := range res.Warnings {
		fmt.Fprintln(w, "  "+styleDim.Render(err.Error()))
	}
}

func printField(w io.Writer, label, value string) {
	fmt.Fprintln(w, "  "+styleLabel.Render(label)+value)
}

// printPath prints a labelled file path.
func printPath(w io.Writer, label, path string) {
	fmt.Fprintln(w, styleIconSuccess.Render(iconSuccess)+" "+label+" "+styleDim.Render(iconArrow)+" "+styleValue.Render(path))
}
