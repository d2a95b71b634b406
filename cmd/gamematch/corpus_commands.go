package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"gamematch/internal/corpus"
)

func newCorpusCommand(ctx *commandContext) *cobra.Command {
	corpusCmd := &cobra.Command{
		Use:   "corpus",
		Short: "Manage the labeled sample corpus",
	}

	corpusCmd.AddCommand(newCorpusImportCommand(ctx))
	corpusCmd.AddCommand(newCorpusExportCommand(ctx))
	corpusCmd.AddCommand(newCorpusStatsCommand(ctx))
	corpusCmd.AddCommand(newCorpusClearCommand(ctx))

	return corpusCmd
}

func (c *commandContext) openCorpus() (*corpus.Store, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return corpus.Open(cfg.Corpus.DatabasePath)
}

func newCorpusImportCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "import <csv-file>",
		Short: "Import labeled samples from a CSV file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openCorpus()
			if err != nil {
				return err
			}
			defer store.Close()

			imported, err := corpus.ImportFile(cmd.Context(), store, args[0])
			if err != nil {
				return fmt.Errorf("import corpus: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d samples into %s\n", imported, store.Path())
			return nil
		},
	}
}

func newCorpusExportCommand(ctx *commandContext) *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the corpus as CSV",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openCorpus()
			if err != nil {
				return err
			}
			defer store.Close()

			out := cmd.OutOrStdout()
			if outputPath != "" {
				file, err := os.Create(outputPath)
				if err != nil {
					return fmt.Errorf("create output: %w", err)
				}
				defer file.Close()
				out = file
			}

			exported, err := corpus.ExportCSV(cmd.Context(), store, out)
			if err != nil {
				return fmt.Errorf("export corpus: %w", err)
			}
			if outputPath != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Exported %d samples to %s\n", exported, outputPath)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Write CSV here instead of stdout")
	return cmd
}

func newCorpusStatsCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show sample counts and recent evaluation runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openCorpus()
			if err != nil {
				return err
			}
			defer store.Close()

			stats, err := store.Stats(cmd.Context())
			if err != nil {
				return err
			}
			runs, err := store.ListRuns(cmd.Context(), 5)
			if err != nil {
				return err
			}

			if jsonOutput {
				return writeJSON(cmd, map[string]any{
					"matches":    stats[1],
					"mismatches": stats[0],
					"recentRuns": runs,
				})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(
				[]string{"Label", "Count"},
				[][]string{
					{"match", strconv.Itoa(stats[1])},
					{"mismatch", strconv.Itoa(stats[0])},
				},
				[]columnAlignment{alignLeft, alignRight},
			))

			if len(runs) > 0 {
				rows := make([][]string, 0, len(runs))
				for _, run := range runs {
					rows = append(rows, []string{
						run.CreatedAt.Format("2006-01-02 15:04"),
						run.Policy,
						fmt.Sprintf("%.2f", run.Threshold),
						fmt.Sprintf("%.3f", run.Precision),
						fmt.Sprintf("%.3f", run.Recall),
						fmt.Sprintf("%.3f", run.F1),
					})
				}
				fmt.Fprintln(out, renderTable(
					[]string{"Run", "Policy", "Threshold", "Precision", "Recall", "F1"},
					rows,
					[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignRight, alignRight},
				))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit JSON instead of tables")
	return cmd
}

func newCorpusClearCommand(ctx *commandContext) *cobra.Command {
	var confirmed bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete all samples from the corpus",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !confirmed {
				return errors.New("pass --yes to confirm deleting the corpus")
			}
			store, err := ctx.openCorpus()
			if err != nil {
				return err
			}
			defer store.Close()

			removed, err := store.Clear(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d samples\n", removed)
			return nil
		},
	}

	cmd.Flags().BoolVar(&confirmed, "yes", false, "Confirm deletion")
	return cmd
}
