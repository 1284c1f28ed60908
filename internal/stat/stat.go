// Package stat defines weighted, named key-sequence statistics and the
// registry that carries them from configuration to scoring.
package stat

import (
	"math"

	"github.com/verte-zerg/keylab/internal/kb"
)

// Unweighted is the sentinel weight of a statistic that has not been
// configured yet. Statistics still carrying it after weight loading
// are pruned by Clean.
var Unweighted = math.Inf(-1)

// Stat is a named statistic over key sequences of one n-gram class.
// Ngrams holds flattened key-sequence indices; an entry of -1 is a
// hole left by the definition pass and removed by Trim.
type Stat struct {
	Name   string
	Ngrams []int32
	Weight float64
}

// SkipStat is a statistic over key pairs at skip distances 1..SkipMax,
// with one weight per distance.
type SkipStat struct {
	Name    string
	Ngrams  []int32
	Weights [kb.SkipMax]float64
}

// Weights carries configured weights by class and statistic name.
type Weights struct {
	Mono map[string]float64
	Bi   map[string]float64
	Tri  map[string]float64
	Quad map[string]float64
	Skip map[string][kb.SkipMax]float64
}

// Registry is the growable, configuration-time form of the statistic
// collection. Definitions are appended per class, weighted, trimmed,
// cleaned, and finally frozen into a Set for scoring.
type Registry struct {
	Mono []*Stat
	Bi   []*Stat
	Tri  []*Stat
	Quad []*Stat
	Skip []*SkipStat
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{}
}

// AddMono appends a single-key statistic definition.
func (r *Registry) AddMono(name string, ngrams []int32) *Stat {
	s := &Stat{Name: name, Ngrams: ngrams, Weight: Unweighted}
	r.Mono = append(r.Mono, s)
	return s
}

// AddBi appends a key-pair statistic definition.
func (r *Registry) AddBi(name string, ngrams []int32) *Stat {
	s := &Stat{Name: name, Ngrams: ngrams, Weight: Unweighted}
	r.Bi = append(r.Bi, s)
	return s
}

// AddTri appends a key-triple statistic definition.
func (r *Registry) AddTri(name string, ngrams []int32) *Stat {
	s := &Stat{Name: name, Ngrams: ngrams, Weight: Unweighted}
	r.Tri = append(r.Tri, s)
	return s
}

// AddQuad appends a key-quadruple statistic definition.
func (r *Registry) AddQuad(name string, ngrams []int32) *Stat {
	s := &Stat{Name: name, Ngrams: ngrams, Weight: Unweighted}
	r.Quad = append(r.Quad, s)
	return s
}

// AddSkip appends a skip-pair statistic definition. Ngrams index the
// key-pair space; the distance dimension lives in the weights.
func (r *Registry) AddSkip(name string, ngrams []int32) *SkipStat {
	s := &SkipStat{Name: name, Ngrams: ngrams}
	for d := range s.Weights {
		s.Weights[d] = Unweighted
	}
	r.Skip = append(r.Skip, s)
	return s
}

// ApplyWeights copies configured weights onto matching definitions.
// Names with no matching definition are ignored; definitions with no
// configured weight keep the sentinel and fall to Clean.
func (r *Registry) ApplyWeights(w Weights) {
	applyClass(r.Mono, w.Mono)
	applyClass(r.Bi, w.Bi)
	applyClass(r.Tri, w.Tri)
	applyClass(r.Quad, w.Quad)
	for _, s := range r.Skip {
		if v, ok := w.Skip[s.Name]; ok {
			s.Weights = v
		}
	}
}

func applyClass(stats []*Stat, weights map[string]float64) {
	for _, s := range stats {
		if v, ok := weights[s.Name]; ok {
			s.Weight = v
		}
	}
}

// Trim compacts every definition's ngram list, moving populated
// entries to the front and dropping the holes.
func (r *Registry) Trim() {
	for _, s := range r.Mono {
		s.Ngrams = compact(s.Ngrams)
	}
	for _, s := range r.Bi {
		s.Ngrams = compact(s.Ngrams)
	}
	for _, s := range r.Tri {
		s.Ngrams = compact(s.Ngrams)
	}
	for _, s := range r.Quad {
		s.Ngrams = compact(s.Ngrams)
	}
	for _, s := range r.Skip {
		s.Ngrams = compact(s.Ngrams)
	}
}

func compact(ngrams []int32) []int32 {
	j := 0
	for _, v := range ngrams {
		if v >= 0 {
			ngrams[j] = v
			j++
		}
	}
	return ngrams[:j]
}

// Clean removes definitions with an empty ngram list or a weight that
// was never configured. An unused definition is valid configuration,
// not an error.
func (r *Registry) Clean() {
	r.Mono = cleanClass(r.Mono)
	r.Bi = cleanClass(r.Bi)
	r.Tri = cleanClass(r.Tri)
	r.Quad = cleanClass(r.Quad)

	kept := r.Skip[:0]
	for _, s := range r.Skip {
		if len(s.Ngrams) == 0 {
			continue
		}
		configured := false
		for _, w := range s.Weights {
			if w != Unweighted {
				configured = true
				break
			}
		}
		if configured {
			kept = append(kept, s)
		}
	}
	r.Skip = kept
}

func cleanClass(stats []*Stat) []*Stat {
	kept := stats[:0]
	for _, s := range stats {
		if len(s.Ngrams) == 0 || s.Weight == Unweighted {
			continue
		}
		kept = append(kept, s)
	}
	return kept
}

// Set is the frozen, index-stable form of the registry used during
// scoring. Indices into these slices match layout score vectors.
type Set struct {
	Mono []Stat
	Bi   []Stat
	Tri  []Stat
	Quad []Stat
	Skip []SkipStat
}

// Freeze materializes the registry into a Set and discards the list
// form. Skip distances left unconfigured freeze to zero weight so
// they contribute nothing to aggregate scores.
func (r *Registry) Freeze() *Set {
	set := &Set{
		Mono: freezeClass(r.Mono),
		Bi:   freezeClass(r.Bi),
		Tri:  freezeClass(r.Tri),
		Quad: freezeClass(r.Quad),
		Skip: make([]SkipStat, len(r.Skip)),
	}
	for i, s := range r.Skip {
		frozen := *s
		for d, w := range frozen.Weights {
			if w == Unweighted {
				frozen.Weights[d] = 0
			}
		}
		set.Skip[i] = frozen
	}
	r.Mono, r.Bi, r.Tri, r.Quad, r.Skip = nil, nil, nil, nil, nil
	return set
}

func freezeClass(stats []*Stat) []Stat {
	out := make([]Stat, len(stats))
	for i, s := range stats {
		out[i] = *s
	}
	return out
}
