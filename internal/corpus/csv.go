package corpus

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gofrs/flock"

	"gamematch/internal/signal"
)

// csvHeader is the wire layout of an exported corpus. Reasons in the third
// column are joined with "|".
var csvHeader = []string{"gameName", "candidateTitle", "reasons", "label"}

// lockRetryDelay paces lock acquisition attempts during ImportFile.
const lockRetryDelay = 100 * time.Millisecond

// ImportCSV reads labeled samples from r into the store. Rows with a known
// (game, title) pair update the existing sample. Returns the number of rows
// imported.
func ImportCSV(ctx context.Context, store *Store, r io.Reader) (int, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return 0, fmt.Errorf("read csv header: %w", err)
	}
	columns, err := headerIndex(header)
	if err != nil {
		return 0, err
	}

	imported := 0
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return imported, fmt.Errorf("read csv row: %w", err)
		}

		sample, err := sampleFromRecord(record, columns)
		if err != nil {
			return imported, fmt.Errorf("row %d: %w", imported+2, err)
		}
		if _, err := store.Upsert(ctx, sample); err != nil {
			return imported, err
		}
		imported++
	}
	return imported, nil
}

// ImportFile imports a CSV file under an advisory lock so concurrent imports
// against the same store serialize instead of interleaving.
func ImportFile(ctx context.Context, store *Store, path string) (int, error) {
	lock := flock.New(store.Path() + ".lock")
	locked, err := lock.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return 0, fmt.Errorf("acquire corpus lock: %w", err)
	}
	if !locked {
		return 0, errors.New("corpus locked by another import")
	}
	defer func() { _ = lock.Unlock() }()

	file, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open corpus csv: %w", err)
	}
	defer file.Close()

	return ImportCSV(ctx, store, file)
}

// ExportCSV writes every sample to w in the import layout.
func ExportCSV(ctx context.Context, store *Store, w io.Writer) (int, error) {
	samples, err := store.List(ctx, 0)
	if err != nil {
		return 0, err
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(csvHeader); err != nil {
		return 0, fmt.Errorf("write csv header: %w", err)
	}
	for _, sample := range samples {
		record := []string{
			sample.GameName,
			sample.CandidateTitle,
			signal.Join(sample.Reasons),
			strconv.Itoa(sample.Label),
		}
		if err := writer.Write(record); err != nil {
			return 0, fmt.Errorf("write csv row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return 0, fmt.Errorf("flush csv: %w", err)
	}
	return len(samples), nil
}

func headerIndex(header []string) (map[string]int, error) {
	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.TrimSpace(name)] = i
	}
	for _, required := range csvHeader {
		if _, ok := columns[required]; !ok {
			return nil, fmt.Errorf("csv missing column %q", required)
		}
	}
	return columns, nil
}

func sampleFromRecord(record []string, columns map[string]int) (Sample, error) {
	field := func(name string) string {
		idx := columns[name]
		if idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	gameName := field("gameName")
	title := field("candidateTitle")
	if gameName == "" || title == "" {
		return Sample{}, errors.New("gameName and candidateTitle are required")
	}

	label, err := parseLabel(field("label"))
	if err != nil {
		return Sample{}, err
	}

	return Sample{
		GameName:       gameName,
		CandidateTitle: title,
		Reasons:        signal.Split(field("reasons")),
		Label:          label,
	}, nil
}

func parseLabel(value string) (int, error) {
	switch strings.ToLower(value) {
	case "1", "true", "match":
		return 1, nil
	case "0", "false", "mismatch":
		return 0, nil
	}
	return 0, fmt.Errorf("label must be 0 or 1, got %q", value)
}
