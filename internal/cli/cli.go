// Package cli implements the roadmap-ppt command-line interface.
//
// The root command turns a roadmap workbook into a branded presentation:
//
//	roadmap-ppt roadmap.xlsx -o roadmap.pptx
//
// Subcommands manage the branding config (config) and write an example
// workbook (sample). All commands accept --verbose (-v) for debug logging;
// the logger travels on the command context.
package cli

import (
	"context"
	"fmt"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/aerissecure/roadmap/deck"
)

var (
	version = "dev"
	commit  string
	date    string
)

// SetVersion sets the version information shown by --version. It is
// normally fed from ldflags by main.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the CLI with args taken from os.Args.
func Execute(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	var (
		verbose    bool
		configPath string
		output     string
		title      string
	)

	root := &cobra.Command{
		Use:   "roadmap-ppt <excel_file>",
		Short: "Generate a branded roadmap presentation from an Excel workbook",
		Long: `roadmap-ppt reads the Objectives and Roadmap sheets of a workbook and writes
a PowerPoint deck: a title slide, the objectives, a timeline overview and one
or more slides per timeline. Colors, fonts, logo and templates come from the
branding config, which is created with defaults on first run.`,
		Version:       version,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			cmd.SetContext(withLogger(cmd.Context(), newLogger(cmd.ErrOrStderr(), level)))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			prog := newProgress(logger)
			res, err := deck.Run(cmd.Context(), deck.Options{
				Input:      args[0],
				Output:     output,
				ConfigPath: configPath,
				Title:      title,
				Logger:     logger,
			})
			if err != nil {
				return err
			}
			prog.done("Generated presentation")
			printSummary(cmd.OutOrStdout(), res)
			return nil
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("roadmap-ppt %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&configPath, "config", "", "branding config file (default: $ROADMAP_PPT_CONFIG or the user config dir)")
	root.Flags().StringVarP(&output, "output", "o", "", "output .pptx path (default: input name with .pptx)")
	root.Flags().StringVar(&title, "title", "", "deck title, overrides the config")

	root.AddCommand(newConfigCmd(&configPath))
	root.AddCommand(newSampleCmd())
	return root
}
