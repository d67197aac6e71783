package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/aerissecure/roadmap/xlsx"
)

const defaultSampleName = "roadmap-sample.xlsx"

func newSampleCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "sample [path]",
		Short: "Write an example roadmap workbook",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := defaultSampleName
			if len(args) == 1 {
				path = args[0]
			}

			flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
			if !force {
				flags |= os.O_EXCL
			}
			f, err := os.OpenFile(path, flags, 0o644)
			if err != nil {
				if errors.Is(err, fs.ErrExist) {
					return fmt.Errorf("%s already exists, use --force to overwrite", path)
				}
				return err
			}
			if err := xlsx.WriteWorkbook(f, xlsx.Sample()); err != nil {
				f.Close()
				os.Remove(path)
				return fmt.Errorf("write sample: %w", err)
			}
			if err := f.Close(); err != nil {
				return err
			}

			loggerFromContext(cmd.Context()).Debug("Wrote sample workbook", "path", path)
			printPath(cmd.OutOrStdout(), "Sample workbook", path)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing file")
	return cmd
}
