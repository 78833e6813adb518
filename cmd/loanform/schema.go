package main

import (
	"fmt"
	"strings"

	"loan-approval/internal/approval"

	"github.com/spf13/cobra"
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the model's feature layout",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, err := approval.Load(settings, nil)
		if err != nil {
			return err
		}
		schema := ctx.Schema()
		out := cmd.OutOrStdout()

		fmt.Fprintf(out, "Artifacts:   %s\n", ctx.Manifest.Source)
		fmt.Fprintf(out, "Features:    %d\n", schema.Len())
		for i, col := range schema.Columns() {
			fmt.Fprintf(out, "  %2d  %s\n", i, col)
		}
		fmt.Fprintf(out, "Dropped:     %s\n", strings.Join(schema.Dropped(), ", "))
		fmt.Fprintf(out, "Occupations: %s\n", strings.Join(schema.Occupations(), ", "))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(schemaCmd)
}
