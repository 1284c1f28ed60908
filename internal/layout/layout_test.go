package layout

import (
	"math"
	"math/rand"
	"strings"
	"testing"

	"github.com/verte-zerg/keylab/internal/corpus"
	"github.com/verte-zerg/keylab/internal/kb"
	"github.com/verte-zerg/keylab/internal/lang"
	"github.com/verte-zerg/keylab/internal/stat"
)

// identityText lays the whole default alphabet onto the grid in order.
func identityText(t *testing.T, a *lang.Alphabet) string {
	t.Helper()
	if a.Len() != kb.Keys {
		t.Fatalf("default alphabet has %d characters, want %d", a.Len(), kb.Keys)
	}
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
	return b.String()
}

func emptySet() *stat.Set {
	return stat.New().Freeze()
}

func biSet(t *testing.T, weight float64, ngrams ...int32) *stat.Set {
	t.Helper()
	r := stat.New()
	s := r.AddBi("target", ngrams)
	s.Weight = weight
	r.Trim()
	r.Clean()
	return r.Freeze()
}

func TestParseAndValidate(t *testing.T) {
	a := lang.Default()
	l, err := Parse("identity", identityText(t, a), a, emptySet())
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	for pos := 0; pos < kb.Keys; pos++ {
		if l.CharAt(pos) != pos {
			t.Fatalf("key %d holds id %d, want %d", pos, l.CharAt(pos), pos)
		}
	}

	dup := strings.Replace(identityText(t, a), "b", "a", 1)
	if _, err := Parse("dup", dup, a, emptySet()); err == nil {
		t.Fatalf("expected duplicate character to fail validation")
	}

	short := "a b c\n"
	if _, err := Parse("short", short, a, emptySet()); err == nil {
		t.Fatalf("expected truncated grid to fail parsing")
	}
}

func TestCopyDoesNotAlias(t *testing.T) {
	a := lang.Default()
	set := biSet(t, 1, int32(kb.FlattenBi(0, 0, 0, 1)))
	src, err := Parse("src", identityText(t, a), a, set)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	src.BiScore[0] = 42
	src.Score = 42

	dst := src.Clone()
	src.Apply(Swap{A: 0, B: 1})
	src.BiScore[0] = 7

	if dst.Grid[0][0] != 0 || dst.Grid[0][1] != 1 {
		t.Fatalf("clone grid changed with source: %v", dst.Grid[0])
	}
	if dst.BiScore[0] != 42 || dst.Score != 42 {
		t.Fatalf("clone scores changed with source: %f %f", dst.BiScore[0], dst.Score)
	}
}

func TestSwapIsSelfInverse(t *testing.T) {
	a := lang.Default()
	tID, _ := a.ID('t')
	hID, _ := a.ID('h')
	l := a.Len()

	counts := corpus.NewCounts(l)
	counts.Bi[tID*l+hID] = 100
	tables := corpus.Normalize(counts)

	set := biSet(t, 1, int32(kb.FlattenBi(1, 3, 1, 4)))
	lt, err := Parse("base", identityText(t, a), a, set)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	lt.Rescore(set, tables)

	origGrid := lt.Grid
	origScore := lt.Score
	origVec := append([]float64(nil), lt.BiScore...)

	sw := Swap{A: kb.Key(1, 3), B: kb.Key(2, 7)}
	lt.Apply(sw)
	lt.Rescore(set, tables)
	lt.Apply(sw)
	lt.Rescore(set, tables)

	if lt.Grid != origGrid {
		t.Fatalf("double swap did not restore the grid")
	}
	if lt.Score != origScore {
		t.Fatalf("double swap changed the score: %f vs %f", lt.Score, origScore)
	}
	for i := range origVec {
		if lt.BiScore[i] != origVec[i] {
			t.Fatalf("double swap changed score vector entry %d", i)
		}
	}
}

func TestShufflePreservesPermutation(t *testing.T) {
	a := lang.Default()
	lt, err := Parse("base", identityText(t, a), a, emptySet())
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	rnd := rand.New(rand.NewSource(11))
	lt.Shuffle(rnd)
	if err := lt.Validate(a.Len()); err != nil {
		t.Fatalf("shuffled grid is not a permutation: %v", err)
	}
}

func TestRescoreMatchesPlacedBigram(t *testing.T) {
	a := lang.Default()
	tID, _ := a.ID('t')
	hID, _ := a.ID('h')
	l := a.Len()

	counts := corpus.NewCounts(l)
	counts.Bi[tID*l+hID] = 100
	tables := corpus.Normalize(counts)

	target := int32(kb.FlattenBi(1, 3, 1, 4))
	set := biSet(t, 1.5, target)

	lt, err := Parse("base", identityText(t, a), a, set)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	// Move 't' and 'h' onto the target pair.
	moveChar := func(id, pos int) {
		for p := 0; p < kb.Keys; p++ {
			if lt.CharAt(p) == id {
				lt.Apply(Swap{A: p, B: pos})
				return
			}
		}
		t.Fatalf("character id %d not found", id)
	}
	moveChar(tID, kb.Key(1, 3))
	moveChar(hID, kb.Key(1, 4))
	lt.Rescore(set, tables)

	if math.Abs(lt.BiScore[0]-100) > 1e-9 {
		t.Fatalf("expected the statistic to capture 100%%, got %f", lt.BiScore[0])
	}
	if math.Abs(lt.Score-150) > 1e-9 {
		t.Fatalf("expected weighted aggregate 150, got %f", lt.Score)
	}

	// Anywhere else the pair contributes nothing.
	lt.Apply(Swap{A: kb.Key(1, 4), B: kb.Key(0, 0)})
	lt.Rescore(set, tables)
	if lt.Score != 0 {
		t.Fatalf("expected zero score with the pair broken, got %f", lt.Score)
	}
}

func TestCompareSelfIsZero(t *testing.T) {
	a := lang.Default()
	set := biSet(t, 1, int32(kb.FlattenBi(0, 0, 0, 1)))
	lt, err := Parse("base", identityText(t, a), a, set)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	counts := corpus.NewCounts(a.Len())
	counts.Bi[1] = 10
	lt.Rescore(set, corpus.Normalize(counts))

	d := Compare(lt, lt)
	if d.Score != 0 {
		t.Fatalf("self diff score is %f, want 0", d.Score)
	}
	for _, v := range d.BiScore {
		if v != 0 {
			t.Fatalf("self diff has nonzero statistic entry %f", v)
		}
	}
	for row := 0; row < kb.Row; row++ {
		for col := 0; col < kb.Col; col++ {
			if d.Grid[row][col] == Mismatch {
				t.Fatalf("self diff marked (%d,%d) as mismatch", row, col)
			}
		}
	}
}
