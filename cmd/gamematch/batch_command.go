package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"gamematch/internal/corpus"
	"gamematch/internal/matching"
	"gamematch/internal/signal"
)

// batchRow is one evaluated input pair.
type batchRow struct {
	GameName       string   `json:"gameName"`
	CandidateTitle string   `json:"candidateTitle"`
	Matches        bool     `json:"matches"`
	Score          int      `json:"score"`
	Reasons        []string `json:"reasons"`
}

func newBatchCommand(ctx *commandContext) *cobra.Command {
	var (
		outputPath string
		jsonOutput bool
		saveCorpus bool
	)

	cmd := &cobra.Command{
		Use:   "batch <input-csv>",
		Short: "Evaluate candidate titles from a CSV file",
		Long: `Evaluate candidate titles from a CSV file.

The input needs gameName and candidateTitle columns. An optional label
column (0 or 1) is carried through when --save stores the scored rows in
the corpus database for later tuning.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := ctx.buildEngine()
			if err != nil {
				return err
			}
			logger := ctx.ensureLogger().With("component", "batch")

			file, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open input: %w", err)
			}
			defer file.Close()

			rows, labels, err := evaluateCSV(eng, ctx.scorerValues(), file)
			if err != nil {
				return err
			}
			logger.Info("batch evaluated", "rows", len(rows))

			if saveCorpus {
				saved, err := saveToCorpus(cmd, ctx, rows, labels)
				if err != nil {
					return err
				}
				logger.Info("labeled rows stored", "count", saved)
			}

			if jsonOutput {
				return writeJSON(cmd, rows)
			}
			return writeBatchCSV(cmd, outputPath, rows)
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Write results CSV here instead of stdout")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit JSON instead of CSV")
	cmd.Flags().BoolVar(&saveCorpus, "save", false, "Store labeled rows in the corpus database")
	return cmd
}

type batchEngine interface {
	Match(title string, ctx *matching.MatchContext) matching.MatchResult
}

// evaluateCSV scores every row. The returned labels slice holds -1 for rows
// without a label column value.
func evaluateCSV(eng batchEngine, cfg configValues, r io.Reader) ([]batchRow, []int, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("read csv header: %w", err)
	}
	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.TrimSpace(name)] = i
	}
	gameIdx, ok := columns["gameName"]
	if !ok {
		return nil, nil, errors.New("csv missing column \"gameName\"")
	}
	titleIdx, ok := columns["candidateTitle"]
	if !ok {
		return nil, nil, errors.New("csv missing column \"candidateTitle\"")
	}
	labelIdx, hasLabel := columns["label"]

	var (
		rows   []batchRow
		labels []int
	)
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("read csv row: %w", err)
		}
		if gameIdx >= len(record) || titleIdx >= len(record) {
			continue
		}
		gameName := strings.TrimSpace(record[gameIdx])
		title := strings.TrimSpace(record[titleIdx])
		if gameName == "" || title == "" {
			continue
		}

		matchCtx := &matching.MatchContext{
			Reference:            matching.ReferenceItem{Name: gameName},
			MinMatchScore:        cfg.minMatchScore,
			NewReleaseWindowDays: cfg.newReleaseWindowDays,
		}
		result := eng.Match(title, matchCtx)
		rows = append(rows, batchRow{
			GameName:       gameName,
			CandidateTitle: title,
			Matches:        result.Matches,
			Score:          result.Score,
			Reasons:        result.Reasons,
		})

		label := -1
		if hasLabel && labelIdx < len(record) {
			if parsed, err := strconv.Atoi(strings.TrimSpace(record[labelIdx])); err == nil && (parsed == 0 || parsed == 1) {
				label = parsed
			}
		}
		labels = append(labels, label)
	}
	return rows, labels, nil
}

func saveToCorpus(cmd *cobra.Command, ctx *commandContext, rows []batchRow, labels []int) (int, error) {
	cfg := ctx.configValue()
	if cfg == nil {
		return 0, errors.New("config unavailable")
	}
	store, err := corpus.Open(cfg.Corpus.DatabasePath)
	if err != nil {
		return 0, err
	}
	defer store.Close()

	saved := 0
	for i, row := range rows {
		if labels[i] < 0 {
			continue
		}
		sample := corpus.Sample{
			GameName:       row.GameName,
			CandidateTitle: row.CandidateTitle,
			Reasons:        row.Reasons,
			Label:          labels[i],
			Score:          row.Score,
		}
		if _, err := store.Upsert(cmd.Context(), sample); err != nil {
			return saved, err
		}
		saved++
	}
	return saved, nil
}

func writeBatchCSV(cmd *cobra.Command, outputPath string, rows []batchRow) error {
	var out io.Writer = cmd.OutOrStdout()
	if outputPath != "" {
		file, err := os.Create(outputPath)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer file.Close()
		out = file
	}

	writer := csv.NewWriter(out)
	if err := writer.Write([]string{"gameName", "candidateTitle", "matches", "score", "reasons"}); err != nil {
		return err
	}
	for _, row := range rows {
		record := []string{
			row.GameName,
			row.CandidateTitle,
			strconv.FormatBool(row.Matches),
			strconv.Itoa(row.Score),
			signal.Join(row.Reasons),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
