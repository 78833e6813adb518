package main

import (
	"fmt"

	"loan-approval/internal/approval"
	"loan-approval/internal/storage"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var packOut string

var packCmd = &cobra.Command{
	Use:   "pack",
	Short: "Pack the loose artifact files into a single bundle",
	Long: `Reads the model, scaler and feature column files, checks that they load
together, and writes them into a BoltDB bundle usable through BUNDLE_PATH.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		loose := settings
		loose.BundlePath = ""
		if _, err := approval.Load(loose, nil); err != nil {
			return fmt.Errorf("artifacts do not load: %w", err)
		}

		a, err := storage.ReadDir(loose.ModelPath, loose.ScalerPath, loose.ColumnsPath)
		if err != nil {
			return err
		}
		a.Manifest.Source = loose.ArtifactDir
		a.Manifest.CreatedAt = a.Manifest.CreatedAt.UTC()

		if err := storage.PackBundle(packOut, a); err != nil {
			return err
		}

		log.Info().Str("bundle", packOut).Msg("Artifact bundle written")
		_, err = fmt.Fprintln(cmd.OutOrStdout(), packOut)
		return err
	},
}

func init() {
	packCmd.Flags().StringVar(&packOut, "out", "", "bundle file to create (required)")
	_ = packCmd.MarkFlagRequired("out")
	rootCmd.AddCommand(packCmd)
}
