package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/verte-zerg/keylab/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "keylab.db"))
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("failed to close store: %v", err)
		}
	})
	return s
}

func sampleRun(corpus string, ended time.Time, best float64) model.Run {
	return model.Run{
		StartedAt:   ended.Add(-time.Minute),
		EndedAt:     ended,
		CorpusPath:  corpus,
		BaseLayout:  "qwerty",
		Workers:     4,
		Swaps:       2,
		Rounds:      1000,
		Temperature: 1.0,
		Cooling:     0.99,
		Accepted:    120,
		BestName:    "qwerty-w1-r512",
		BestScore:   best,
	}
}

func TestInsertRunAndListLayouts(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	run := sampleRun("/data/books.txt", time.Now().UTC(), 42.5)
	layouts := []model.RunLayout{
		{Rank: 1, Name: "qwerty-w1-r512", Score: 42.5, Grid: "a b c\n"},
		{Rank: 2, Name: "qwerty-w0-r300", Score: 40.1, Grid: "b a c\n"},
	}
	id, err := s.InsertRun(ctx, run, layouts)
	if err != nil {
		t.Fatalf("failed to insert run: %v", err)
	}
	if id == 0 {
		t.Fatalf("expected a non-zero run id")
	}

	got, err := s.GetRun(ctx, id)
	if err != nil {
		t.Fatalf("failed to get run: %v", err)
	}
	if got.BestScore != 42.5 || got.CorpusPath != "/data/books.txt" {
		t.Fatalf("run round trip mismatch: %+v", got)
	}
	if got.EndedAt.Before(got.StartedAt) {
		t.Fatalf("timestamps not preserved: %+v", got)
	}

	stored, err := s.ListRunLayouts(ctx, id)
	if err != nil {
		t.Fatalf("failed to list run layouts: %v", err)
	}
	if len(stored) != 2 {
		t.Fatalf("expected 2 layouts, got %d", len(stored))
	}
	if stored[0].Rank != 1 || stored[0].Score != 42.5 || stored[0].Grid != "a b c\n" {
		t.Fatalf("layout round trip mismatch: %+v", stored[0])
	}
}

func TestListRunsFilters(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		corpus := "/data/books.txt"
		if i == 1 {
			corpus = "/data/code.txt"
		}
		if _, err := s.InsertRun(ctx, sampleRun(corpus, base.Add(time.Duration(i)*time.Hour), float64(i)), nil); err != nil {
			t.Fatalf("failed to insert run %d: %v", i, err)
		}
	}

	runs, err := s.ListRuns(ctx, model.HistoryFilter{Corpus: "/data/books.txt"})
	if err != nil {
		t.Fatalf("failed to list runs: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs for the corpus, got %d", len(runs))
	}

	since := base.Add(90 * time.Minute)
	runs, err = s.ListRuns(ctx, model.HistoryFilter{Since: &since})
	if err != nil {
		t.Fatalf("failed to list runs: %v", err)
	}
	if len(runs) != 1 || runs[0].BestScore != 2 {
		t.Fatalf("since filter returned wrong runs: %+v", runs)
	}

	runs, err = s.ListRuns(ctx, model.HistoryFilter{Last: 2})
	if err != nil {
		t.Fatalf("failed to list runs: %v", err)
	}
	if len(runs) != 2 || runs[1].BestScore != 2 {
		t.Fatalf("last filter returned wrong runs: %+v", runs)
	}
}

func TestBestLayoutAcrossRuns(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	now := time.Now().UTC()

	if _, err := s.InsertRun(ctx, sampleRun("/data/books.txt", now, 10), []model.RunLayout{
		{Rank: 1, Name: "low", Score: 10, Grid: "g1"},
	}); err != nil {
		t.Fatalf("failed to insert run: %v", err)
	}
	if _, err := s.InsertRun(ctx, sampleRun("/data/books.txt", now.Add(time.Hour), 30), []model.RunLayout{
		{Rank: 1, Name: "high", Score: 30, Grid: "g2"},
		{Rank: 2, Name: "mid", Score: 20, Grid: "g3"},
	}); err != nil {
		t.Fatalf("failed to insert run: %v", err)
	}

	best, err := s.BestLayout(ctx, "")
	if err != nil {
		t.Fatalf("failed to get best layout: %v", err)
	}
	if best.Name != "high" || best.Score != 30 {
		t.Fatalf("unexpected best layout: %+v", best)
	}

	if _, err := s.BestLayout(ctx, "/data/missing.txt"); err == nil {
		t.Fatalf("expected an error for a corpus with no layouts")
	}
}
