package stat

import (
	"testing"

	"github.com/verte-zerg/keylab/internal/kb"
)

func TestTrimCompactsHoles(t *testing.T) {
	r := New()
	s := r.AddMono("gapped", []int32{-1, 3, -1, -1, 7, 12, -1})
	r.Trim()
	if len(s.Ngrams) != 3 {
		t.Fatalf("expected 3 entries after trim, got %d", len(s.Ngrams))
	}
	want := []int32{3, 7, 12}
	for i, v := range want {
		if s.Ngrams[i] != v {
			t.Fatalf("entry %d: got %d want %d", i, s.Ngrams[i], v)
		}
	}
}

func TestCleanDropsEmptyAndUnweighted(t *testing.T) {
	r := New()
	empty := r.AddMono("empty", []int32{-1, -1})
	empty.Weight = 1.0
	unweighted := r.AddMono("unweighted", []int32{0, 1})
	_ = unweighted
	kept := r.AddMono("kept", []int32{2, 3})
	kept.Weight = -0.5

	r.Trim()
	r.Clean()

	if len(r.Mono) != 1 {
		t.Fatalf("expected 1 live definition, got %d", len(r.Mono))
	}
	if r.Mono[0].Name != "kept" {
		t.Fatalf("wrong definition survived: %s", r.Mono[0].Name)
	}
}

func TestCleanKeepsPartiallyWeightedSkip(t *testing.T) {
	r := New()
	s := r.AddSkip("partial", []int32{0, 1})
	s.Weights[2] = -1.5
	r.AddSkip("never-configured", []int32{0, 1})

	r.Trim()
	r.Clean()

	if len(r.Skip) != 1 {
		t.Fatalf("expected 1 live skip definition, got %d", len(r.Skip))
	}
	set := r.Freeze()
	if set.Skip[0].Weights[2] != -1.5 {
		t.Fatalf("configured distance weight lost: %f", set.Skip[0].Weights[2])
	}
	if set.Skip[0].Weights[0] != 0 {
		t.Fatalf("unconfigured distance should freeze to 0, got %f", set.Skip[0].Weights[0])
	}
}

func TestFreezeIsIndexStable(t *testing.T) {
	r := New()
	a := r.AddBi("a", []int32{0})
	a.Weight = 1
	b := r.AddBi("b", []int32{1})
	b.Weight = 2
	set := r.Freeze()
	if r.Bi != nil {
		t.Fatalf("list form should be discarded after freeze")
	}
	if set.Bi[0].Name != "a" || set.Bi[1].Name != "b" {
		t.Fatalf("freeze reordered definitions: %s, %s", set.Bi[0].Name, set.Bi[1].Name)
	}
}

func TestApplyWeights(t *testing.T) {
	r := New()
	r.AddMono("hand", []int32{0, 1})
	skip := r.AddSkip("skip", []int32{0})
	var sw [kb.SkipMax]float64
	for d := range sw {
		sw[d] = float64(d)
	}
	r.ApplyWeights(Weights{
		Mono: map[string]float64{"hand": 2.5, "missing": 1},
		Skip: map[string][kb.SkipMax]float64{"skip": sw},
	})
	if r.Mono[0].Weight != 2.5 {
		t.Fatalf("mono weight not applied: %f", r.Mono[0].Weight)
	}
	if skip.Weights[8] != 8 {
		t.Fatalf("skip weight vector not applied: %f", skip.Weights[8])
	}
}

func TestBuiltinGeometry(t *testing.T) {
	r := Builtin()
	r.Trim()

	byName := map[string]*Stat{}
	for _, s := range r.Mono {
		byName[s.Name] = s
	}
	left, right := byName["left-hand"], byName["right-hand"]
	if left == nil || right == nil {
		t.Fatalf("missing hand statistics")
	}
	if len(left.Ngrams)+len(right.Ngrams) != kb.Keys {
		t.Fatalf("hand statistics cover %d keys, want %d",
			len(left.Ngrams)+len(right.Ngrams), kb.Keys)
	}

	fingerTotal := 0
	for _, name := range []string{
		"left-pinky", "left-ring", "left-middle", "left-index",
		"right-index", "right-middle", "right-ring", "right-pinky",
	} {
		s := byName[name]
		if s == nil {
			t.Fatalf("missing finger statistic %s", name)
		}
		fingerTotal += len(s.Ngrams)
	}
	if fingerTotal != kb.Keys {
		t.Fatalf("finger statistics cover %d keys, want %d", fingerTotal, kb.Keys)
	}

	for _, s := range r.Bi {
		if s.Name != "repeat" {
			continue
		}
		if len(s.Ngrams) != kb.Keys {
			t.Fatalf("repeat statistic has %d pairs, want %d", len(s.Ngrams), kb.Keys)
		}
		for _, n := range s.Ngrams {
			r0, c0, r1, c1 := kb.UnflattenBi(int(n))
			if r0 != r1 || c0 != c1 {
				t.Fatalf("repeat statistic matched distinct keys: %d", n)
			}
		}
	}
}
