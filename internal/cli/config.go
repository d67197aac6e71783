package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/aerissecure/roadmap/brand"
)

func newConfigCmd(configPath *string) *cobra.Command {
	var show bool

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Create the branding config if needed and print its path",
		Long: `config writes the default branding config when none exists yet and prints
where it lives. With --show it also prints the effective settings after
defaults are applied.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			path := *configPath
			if path == "" {
				p, err := brand.DefaultPath()
				if err != nil {
					return err
				}
				path = p
			}

			created, err := brand.EnsureDefault(path)
			if err != nil {
				return err
			}
			if created {
				logger.Info("Created default config", "path", path)
			}
			printPath(cmd.OutOrStdout(), "Config", path)

			if !show {
				return nil
			}
			cfg, warnings := brand.Load(path)
			for _, w := range warnings {
				logger.Warn(w.Error())
			}
			out, err := yaml.Marshal(cfg)
			if err != nil {
				return fmt.Errorf("encode config: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}

	cmd.Flags().BoolVar(&show, "show", false, "print the effective config")
	return cmd
}
