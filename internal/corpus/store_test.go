package corpus_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gamematch/internal/corpus"
	"gamematch/internal/mlfilter"
)

func openStore(t *testing.T) *corpus.Store {
	t.Helper()
	store, err := corpus.Open(filepath.Join(t.TempDir(), "corpus.db"))
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestUpsertRefreshesExistingPair(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	first := corpus.Sample{
		GameName:       "Hades",
		CandidateTitle: "Hades v1.38",
		Reasons:        []string{"exact name match"},
		Label:          1,
		Score:          85,
	}
	if _, err := store.Upsert(ctx, first); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	first.Label = 0
	first.Reasons = []string{"sequel number mismatch"}
	if _, err := store.Upsert(ctx, first); err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	got, err := store.GetByPair(ctx, "Hades", "Hades v1.38")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil {
		t.Fatal("expected sample")
	}
	if got.Label != 0 {
		t.Fatalf("expected refreshed label, got %d", got.Label)
	}
	if len(got.Reasons) != 1 || got.Reasons[0] != "sequel number mismatch" {
		t.Fatalf("expected refreshed reasons, got %v", got.Reasons)
	}

	samples, err := store.List(ctx, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(samples) != 1 {
		t.Fatalf("upsert must not duplicate rows, got %d", len(samples))
	}
}

func TestGetByPairMissing(t *testing.T) {
	store := openStore(t)
	got, err := store.GetByPair(context.Background(), "Nobody", "Nothing")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil for missing pair, got %+v", got)
	}
}

func TestStatsGroupsByLabel(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	pairs := []corpus.Sample{
		{GameName: "Hades", CandidateTitle: "Hades-CODEX", Label: 1},
		{GameName: "Hades", CandidateTitle: "Hades II Repack", Label: 0},
		{GameName: "Stray", CandidateTitle: "Stray v1.4", Label: 1},
	}
	for _, sample := range pairs {
		if _, err := store.Upsert(ctx, sample); err != nil {
			t.Fatalf("upsert: %v", err)
		}
	}

	stats, err := store.Stats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats[1] != 2 || stats[0] != 1 {
		t.Fatalf("unexpected stats: %v", stats)
	}
}

func TestCSVRoundTrip(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	input := strings.Join([]string{
		"gameName,candidateTitle,reasons,label",
		`Hades,Hades v1.38,exact name match|release year match,1`,
		`Stray,Stray Souls Repack,franchise sibling match,0`,
	}, "\n") + "\n"

	imported, err := corpus.ImportCSV(ctx, store, strings.NewReader(input))
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if imported != 2 {
		t.Fatalf("expected 2 imported rows, got %d", imported)
	}

	got, err := store.GetByPair(ctx, "Hades", "Hades v1.38")
	if err != nil || got == nil {
		t.Fatalf("get after import: %v %v", got, err)
	}
	if len(got.Reasons) != 2 || got.Reasons[1] != "release year match" {
		t.Fatalf("reasons not split on pipe: %v", got.Reasons)
	}

	var out bytes.Buffer
	exported, err := corpus.ExportCSV(ctx, store, &out)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if exported != 2 {
		t.Fatalf("expected 2 exported rows, got %d", exported)
	}
	if !strings.Contains(out.String(), "exact name match|release year match") {
		t.Fatalf("export must join reasons with pipe:\n%s", out.String())
	}
}

func TestImportRejectsBadLabel(t *testing.T) {
	store := openStore(t)
	input := "gameName,candidateTitle,reasons,label\nHades,Hades,,maybe\n"
	if _, err := corpus.ImportCSV(context.Background(), store, strings.NewReader(input)); err == nil {
		t.Fatal("expected label error")
	}
}

func TestImportRejectsMissingColumns(t *testing.T) {
	store := openStore(t)
	input := "gameName,candidateTitle\nHades,Hades\n"
	if _, err := corpus.ImportCSV(context.Background(), store, strings.NewReader(input)); err == nil {
		t.Fatal("expected header error")
	}
}

func TestImportFileHoldsLock(t *testing.T) {
	store := openStore(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "labels.csv")
	content := "gameName,candidateTitle,reasons,label\nHades,Hades-CODEX,exact name match,1\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write csv: %v", err)
	}

	imported, err := corpus.ImportFile(context.Background(), store, path)
	if err != nil {
		t.Fatalf("import file: %v", err)
	}
	if imported != 1 {
		t.Fatalf("expected 1 row, got %d", imported)
	}
	if _, err := os.Stat(store.Path() + ".lock"); err != nil {
		t.Fatalf("expected lock file beside the database: %v", err)
	}
}

func TestRecordAndListRuns(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	run, err := store.RecordRun(ctx, corpus.EvaluationRun{
		Policy:      "gate",
		Threshold:   0.55,
		Precision:   0.92,
		Recall:      0.81,
		F1:          0.86,
		SampleCount: 200,
	})
	if err != nil {
		t.Fatalf("record run: %v", err)
	}
	if run.ID == "" {
		t.Fatal("expected generated run id")
	}

	runs, err := store.ListRuns(ctx, 10)
	if err != nil {
		t.Fatalf("list runs: %v", err)
	}
	if len(runs) != 1 || runs[0].ID != run.ID || runs[0].Threshold != 0.55 {
		t.Fatalf("unexpected runs: %+v", runs)
	}
}

func TestSweepFindsSeparatingThreshold(t *testing.T) {
	artifact, err := mlfilter.Parse([]byte(`{
		"threshold": 0.5,
		"logistic": {"bias": -2.0, "weights": {"exact_name_match": 4.0}}
	}`))
	if err != nil {
		t.Fatalf("parse artifact: %v", err)
	}

	// Positives carry the feature the model rewards; negatives do not.
	samples := []corpus.Sample{
		{GameName: "A", CandidateTitle: "a1", Reasons: []string{"exact name match"}, Label: 1},
		{GameName: "B", CandidateTitle: "b1", Reasons: []string{"exact name match"}, Label: 1},
		{GameName: "C", CandidateTitle: "c1", Reasons: []string{"sequel number mismatch"}, Label: 0},
		{GameName: "D", CandidateTitle: "d1", Reasons: []string{}, Label: 0},
	}

	points, err := corpus.Sweep(samples, artifact, 9)
	if err != nil {
		t.Fatalf("sweep: %v", err)
	}
	if len(points) != 9 {
		t.Fatalf("expected 9 points, got %d", len(points))
	}

	best, ok := corpus.Best(points)
	if !ok {
		t.Fatal("expected best point")
	}
	// sigmoid(2) ~ 0.88 for positives, sigmoid(-2) ~ 0.12 for negatives;
	// a mid threshold separates them perfectly.
	if best.F1 != 1.0 {
		t.Fatalf("expected perfect separation, got %+v", best)
	}
	if best.Threshold <= 0.12 || best.Threshold >= 0.88 {
		t.Fatalf("best threshold outside separating band: %+v", best)
	}
}

func TestSweepRequiresInput(t *testing.T) {
	if _, err := corpus.Sweep(nil, nil, 9); err == nil {
		t.Fatal("expected error for nil artifact")
	}
	artifact, _ := mlfilter.Parse([]byte(`{"threshold": 0.5, "logistic": {"bias": 0, "weights": {}}}`))
	if _, err := corpus.Sweep(nil, artifact, 9); err == nil {
		t.Fatal("expected error for empty samples")
	}
}
