package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"gamematch/internal/corpus"
)

func newTuneCommand(ctx *commandContext) *cobra.Command {
	var (
		modelPath  string
		steps      int
		record     bool
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "tune",
		Short: "Sweep accept thresholds over the labeled corpus",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			artifact, path, err := loadArtifact(cfg, modelPath)
			if err != nil {
				return err
			}

			store, err := ctx.openCorpus()
			if err != nil {
				return err
			}
			defer store.Close()

			samples, err := store.List(cmd.Context(), 0)
			if err != nil {
				return err
			}
			if len(samples) == 0 {
				return errors.New("corpus is empty; import labeled samples first")
			}

			points, err := corpus.Sweep(samples, artifact, steps)
			if err != nil {
				return err
			}
			best, _ := corpus.Best(points)

			if record {
				run, err := store.RecordRun(cmd.Context(), corpus.EvaluationRun{
					Policy:      cfg.Model.Policy,
					Threshold:   best.Threshold,
					Precision:   best.Precision,
					Recall:      best.Recall,
					F1:          best.F1,
					SampleCount: len(samples),
				})
				if err != nil {
					return err
				}
				ctx.ensureLogger().Info("evaluation run recorded",
					"component", "tune", "run", run.ID, "threshold", run.Threshold, "f1", run.F1)
			}

			if jsonOutput {
				return writeJSON(cmd, map[string]any{
					"model":   path,
					"samples": len(samples),
					"points":  points,
					"best":    best,
				})
			}

			out := cmd.OutOrStdout()
			rows := make([][]string, 0, len(points))
			for _, point := range points {
				marker := ""
				if point.Threshold == best.Threshold {
					marker = "*"
				}
				rows = append(rows, []string{
					fmt.Sprintf("%.2f%s", point.Threshold, marker),
					fmt.Sprintf("%d", point.TruePositive),
					fmt.Sprintf("%d", point.FalsePositive),
					fmt.Sprintf("%d", point.FalseNegative),
					fmt.Sprintf("%.3f", point.Precision),
					fmt.Sprintf("%.3f", point.Recall),
					fmt.Sprintf("%.3f", point.F1),
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Threshold", "TP", "FP", "FN", "Precision", "Recall", "F1"},
				rows,
				[]columnAlignment{alignRight, alignRight, alignRight, alignRight, alignRight, alignRight, alignRight},
			))
			fmt.Fprintf(out, "Best threshold %.2f (F1 %.3f) over %d samples\n", best.Threshold, best.F1, len(samples))
			return nil
		},
	}

	cmd.Flags().StringVar(&modelPath, "model", "", "Model artifact path (defaults to model.path from config)")
	cmd.Flags().IntVar(&steps, "steps", 19, "Number of thresholds to evaluate")
	cmd.Flags().BoolVar(&record, "record", false, "Store the best point as an evaluation run")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit JSON instead of a table")
	return cmd
}
