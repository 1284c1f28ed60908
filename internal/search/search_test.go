package search

import (
	"context"
	"math"
	"strings"
	"testing"

	"github.com/verte-zerg/keylab/internal/corpus"
	"github.com/verte-zerg/keylab/internal/kb"
	"github.com/verte-zerg/keylab/internal/lang"
	"github.com/verte-zerg/keylab/internal/layout"
	"github.com/verte-zerg/keylab/internal/rank"
	"github.com/verte-zerg/keylab/internal/stat"
)

// thFixture builds a world where only the bigram "th" occurs and a
// single statistic rewards it on one specific key pair.
type thFixture struct {
	alphabet *lang.Alphabet
	set      *stat.Set
	tables   *corpus.Tables
	base     *layout.Layout
}

func newTHFixture(t *testing.T) *thFixture {
	t.Helper()
	a := lang.Default()
	tID, _ := a.ID('t')
	hID, _ := a.ID('h')
	l := a.Len()

	counts := corpus.NewCounts(l)
	counts.Bi[tID*l+hID] = 100
	tables := corpus.Normalize(counts)

	r := stat.New()
	s := r.AddBi("home-pair", []int32{int32(kb.FlattenBi(1, 3, 1, 4))})
	s.Weight = 1.0
	r.Trim()
	r.Clean()
	set := r.Freeze()

	var b strings.Builder
	for row := 0; row < kb.Row; row++ {
		for col := 0; col < kb.Col; col++ {
			if col > 0 {
				b.WriteByte(' ')
			}
			b.WriteRune(a.Rune(kb.Key(row, col)))
		}
		b.WriteByte('\n')
	}
	base, err := layout.Parse("seed", b.String(), a, set)
	if err != nil {
		t.Fatalf("parse base layout: %v", err)
	}
	return &thFixture{alphabet: a, set: set, tables: tables, base: base}
}

func TestRunFindsRewardedPlacement(t *testing.T) {
	f := newTHFixture(t)
	f.base.Rescore(f.set, f.tables)
	if f.base.Score != 0 {
		t.Fatalf("expected the seed layout to start at zero, got %f", f.base.Score)
	}

	ranking := rank.New()
	res, err := Run(context.Background(), f.base, f.set, f.tables, ranking, Params{
		Workers:     4,
		Swaps:       2,
		Rounds:      20000,
		Temperature: 1.0,
		Cooling:     0.9999,
		Seed:        7,
	}, nil)
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	if math.Abs(res.Best.Score-100) > 1e-9 {
		t.Fatalf("expected the search to place the bigram for ~100, best is %f", res.Best.Score)
	}

	// The reported score must match a fresh rescore of the grid.
	check := res.Best.Clone()
	check.Rescore(f.set, f.tables)
	if math.Abs(check.Score-res.Best.Score) > 1e-9 {
		t.Fatalf("best layout score %f does not match rescore %f", res.Best.Score, check.Score)
	}
	if err := res.Best.Validate(f.alphabet.Len()); err != nil {
		t.Fatalf("best layout is not a permutation: %v", err)
	}

	if len(res.Bests) != 4 || res.Bests[0].Score != res.Best.Score {
		t.Fatalf("expected one sorted personal best per worker, got %d", len(res.Bests))
	}
	for i := 1; i < len(res.Bests); i++ {
		if res.Bests[i].Score > res.Bests[i-1].Score {
			t.Fatalf("personal bests out of order at %d", i)
		}
	}

	entries := ranking.Snapshot()
	if len(entries) == 0 {
		t.Fatalf("expected ranking entries from the run")
	}
	if entries[0].Score != res.Best.Score {
		t.Fatalf("ranking head %f does not match best %f", entries[0].Score, res.Best.Score)
	}
	for i := 1; i < len(entries); i++ {
		if entries[i].Score > entries[i-1].Score {
			t.Fatalf("ranking out of order at %d", i)
		}
	}
}

func TestRunNeverLosesGroundAtZeroishTemperature(t *testing.T) {
	f := newTHFixture(t)

	// Place the pair optimally, then verify a cold search keeps it.
	tID, _ := f.alphabet.ID('t')
	hID, _ := f.alphabet.ID('h')
	move := func(id, pos int) {
		for p := 0; p < kb.Keys; p++ {
			if f.base.CharAt(p) == id {
				f.base.Apply(layout.Swap{A: p, B: pos})
				return
			}
		}
	}
	move(tID, kb.Key(1, 3))
	move(hID, kb.Key(1, 4))
	f.base.Rescore(f.set, f.tables)
	if math.Abs(f.base.Score-100) > 1e-9 {
		t.Fatalf("fixture setup broken: score %f", f.base.Score)
	}

	res, err := Run(context.Background(), f.base, f.set, f.tables, rank.New(), Params{
		Workers:     2,
		Swaps:       1,
		Rounds:      300,
		Temperature: 1e-9,
		Cooling:     0.5,
		Seed:        3,
	}, nil)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if math.Abs(res.Best.Score-100) > 1e-9 {
		t.Fatalf("cold search lost the optimum: %f", res.Best.Score)
	}
}

func TestRunHonorsCancellation(t *testing.T) {
	f := newTHFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res, err := Run(ctx, f.base, f.set, f.tables, rank.New(), Params{
		Workers: 1,
		Rounds:  1000,
		Seed:    1,
	}, nil)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if res.Rounds != 0 {
		t.Fatalf("expected no rounds after pre-cancelled context, got %d", res.Rounds)
	}
	if res.Best == nil {
		t.Fatalf("expected a best layout even when cancelled")
	}
}

func TestProgressReporting(t *testing.T) {
	f := newTHFixture(t)
	progress := make(chan Progress, 64)
	_, err := Run(context.Background(), f.base, f.set, f.tables, rank.New(), Params{
		Workers: 1,
		Rounds:  10,
		Seed:    5,
	}, progress)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	close(progress)
	count := 0
	lastRound := 0
	for p := range progress {
		count++
		if p.Round <= lastRound {
			t.Fatalf("progress rounds not increasing: %d then %d", lastRound, p.Round)
		}
		lastRound = p.Round
		if p.Rounds != 10 {
			t.Fatalf("progress carries wrong budget: %d", p.Rounds)
		}
	}
	if count == 0 {
		t.Fatalf("expected progress updates")
	}
}
