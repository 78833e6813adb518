package main

import (
	"os"

	"loan-approval/internal/preview"

	"github.com/spf13/cobra"
)

var previewRows int

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Print the first rows of the sample dataset",
	RunE: func(cmd *cobra.Command, _ []string) error {
		rows := settings.PreviewRows
		if previewRows > 0 {
			rows = previewRows
		}
		table, err := preview.Load(settings.DatasetPath, rows)
		if err != nil {
			return err
		}
		return preview.Render(cmd.OutOrStdout(), table, stdoutIsTerminal())
	},
}

func stdoutIsTerminal() bool {
	return preview.IsTerminal(os.Stdout)
}

func init() {
	previewCmd.Flags().IntVar(&previewRows, "rows", 0, "rows to show (default from PREVIEW_ROWS)")
	rootCmd.AddCommand(previewCmd)
}
