package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"gamematch/internal/mlfilter"
)

func newModelCommand(ctx *commandContext) *cobra.Command {
	modelCmd := &cobra.Command{
		Use:   "model",
		Short: "Model artifact utilities",
	}

	modelCmd.AddCommand(newModelInspectCommand(ctx))
	modelCmd.AddCommand(newModelValidateCommand(ctx))
	modelCmd.AddCommand(newModelScoreCommand(ctx))

	return modelCmd
}

func newModelInspectCommand(ctx *commandContext) *cobra.Command {
	var (
		modelPath  string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:     "inspect",
		Aliases: []string{"show"},
		Short:   "Validate a model artifact and show its shape",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			artifact, path, err := loadArtifact(cfg, modelPath)
			if err != nil {
				return err
			}

			features := append([]string(nil), artifact.FeatureNames...)
			sort.Strings(features)

			if jsonOutput {
				return writeJSON(cmd, map[string]any{
					"path":      path,
					"threshold": artifact.Threshold,
					"features":  features,
				})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Artifact: %s\n", path)
			fmt.Fprintf(out, "Built-in threshold: %.2f\n", artifact.Threshold)
			fmt.Fprintf(out, "Features (%d):\n", len(features))
			for _, name := range features {
				fmt.Fprintf(out, "  - %s\n", name)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&modelPath, "model", "", "Model artifact path (defaults to model.path from config)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit JSON instead of text")
	return cmd
}

func newModelValidateCommand(ctx *commandContext) *cobra.Command {
	var modelPath string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check a model artifact against the schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			artifact, path, err := loadArtifact(cfg, modelPath)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: valid, %d features, threshold %.2f\n",
				path, len(artifact.FeatureNames), artifact.Threshold)
			return nil
		},
	}

	cmd.Flags().StringVar(&modelPath, "model", "", "Model artifact path (defaults to model.path from config)")
	return cmd
}

// newModelScoreCommand runs just the feature extractor and model over a
// reason list, for debugging thresholds without a full match call.
func newModelScoreCommand(ctx *commandContext) *cobra.Command {
	var modelPath string

	cmd := &cobra.Command{
		Use:   "score <reason>...",
		Short: "Score a raw reason list with the model",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			artifact, _, err := loadArtifact(cfg, modelPath)
			if err != nil {
				return err
			}

			features := mlfilter.ExtractFeatures(args)
			probability := artifact.Probability(features)

			names := make([]string, 0, len(features))
			for name := range features {
				names = append(names, name)
			}
			sort.Strings(names)

			out := cmd.OutOrStdout()
			for _, name := range names {
				fmt.Fprintf(out, "%s = %g\n", name, features[name])
			}
			fmt.Fprintf(out, "probability %.4f (threshold %.2f)\n", probability, artifact.Threshold)
			return nil
		},
	}

	cmd.Flags().StringVar(&modelPath, "model", "", "Model artifact path (defaults to model.path from config)")
	return cmd
}
