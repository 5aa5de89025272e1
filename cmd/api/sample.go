package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/arkenix/client-portal/internal/infrastructure/file"
)

var sampleCmd = &cobra.Command{
	Use:   "sample [path]",
	Short: "Write the sample upload workbook (\"-\" for stdout)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := file.SampleFileName
		if len(args) == 1 {
			path = args[0]
		}

		if path == "-" {
			return file.WriteSample(cmd.OutOrStdout())
		}

		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("create %s: %w", path, err)
		}
		if err := file.WriteSample(f); err != nil {
			_ = f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}

		fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s\n", path)
		return nil
	},
}
