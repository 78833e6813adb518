package main

import (
	"loan-approval/internal/form"
	"loan-approval/internal/preview"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var formNoPreview bool

var formCmd = &cobra.Command{
	Use:   "form",
	Short: "Open the interactive application form (default)",
	RunE:  runForm,
}

func runForm(cmd *cobra.Command, _ []string) error {
	svc, err := newService()
	if err != nil {
		return err
	}

	if !formNoPreview {
		if err := printPreview(cmd); err != nil {
			log.Warn().Err(err).Str("path", settings.DatasetPath).Msg("Sample data preview unavailable")
		}
	}

	session := form.NewSession(cmd.InOrStdin(), cmd.OutOrStdout(), svc, svc.Context().Schema().Occupations())
	return session.Run()
}

func printPreview(cmd *cobra.Command) error {
	table, err := preview.Load(settings.DatasetPath, settings.PreviewRows)
	if err != nil {
		return err
	}
	return preview.Render(cmd.OutOrStdout(), table, stdoutIsTerminal())
}

func init() {
	formCmd.Flags().BoolVar(&formNoPreview, "no-preview", false, "skip the sample data table")
	rootCmd.Flags().BoolVar(&formNoPreview, "no-preview", false, "skip the sample data table")
	rootCmd.AddCommand(formCmd)
}
