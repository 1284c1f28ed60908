// Package search improves layouts with a simulated-annealing swap
// search across a pool of independent workers.
package search

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"runtime"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/verte-zerg/keylab/internal/corpus"
	"github.com/verte-zerg/keylab/internal/layout"
	"github.com/verte-zerg/keylab/internal/rank"
	"github.com/verte-zerg/keylab/internal/stat"
)

// Params configures one search run.
type Params struct {
	Workers      int     // candidate layouts tracked in parallel; 0 = GOMAXPROCS
	Swaps        int     // swaps proposed per worker per round
	Rounds       int     // round budget
	Temperature  float64 // initial acceptance temperature
	Cooling      float64 // per-round geometric cooling factor (0..1)
	Patience     int     // stop after this many rounds without any acceptance; 0 = never
	Seed         int64   // rng seed; 0 = time-based
	ShuffleStart bool    // start each worker from a fresh shuffle of the base layout
}

func (p Params) withDefaults() Params {
	if p.Workers <= 0 {
		p.Workers = runtime.GOMAXPROCS(0)
	}
	if p.Swaps <= 0 {
		p.Swaps = 1
	}
	if p.Rounds <= 0 {
		p.Rounds = 1
	}
	if p.Temperature <= 0 {
		p.Temperature = 1
	}
	if p.Cooling <= 0 || p.Cooling > 1 {
		p.Cooling = 0.99
	}
	if p.Seed == 0 {
		p.Seed = time.Now().UnixNano()
	}
	return p
}

// Progress reports the state of a run after a round.
type Progress struct {
	Round       int
	Rounds      int
	Temperature float64
	Best        float64
	BestName    string
	Accepted    int
}

// Result summarizes a finished run. Bests holds every worker's
// personal best, best first; Best is its head.
type Result struct {
	Best     *layout.Layout
	Bests    []*layout.Layout
	Rounds   int
	Accepted int
}

// worker owns one candidate layout. Nothing in it is shared; only the
// decide phase touches shared state, and that runs serialized.
type worker struct {
	id        int
	rnd       *rand.Rand
	lt        *layout.Layout
	prev      *layout.Layout // pre-swap score snapshot for rollback
	swaps     []layout.Swap
	curScore  float64
	best      *layout.Layout
	bestScore float64
}

// Run searches from the base layout. Each round every worker proposes
// and applies a batch of swaps, rescores its private candidate in
// parallel, then a serialized decide pass accepts or rolls back per
// the temperature schedule and records new personal bests into the
// ranking. Cancellation is honored between rounds; a round in
// progress always completes.
func Run(ctx context.Context, base *layout.Layout, set *stat.Set, tbl *corpus.Tables,
	ranking *rank.List, p Params, progress chan<- Progress) (*Result, error) {
	p = p.withDefaults()

	workers := make([]*worker, p.Workers)
	for i := range workers {
		w := &worker{
			id:    i,
			rnd:   rand.New(rand.NewSource(p.Seed + int64(i))),
			lt:    base.Clone(),
			swaps: make([]layout.Swap, 0, p.Swaps),
		}
		w.lt.Name = fmt.Sprintf("%s-w%d", base.Name, i)
		if p.ShuffleStart {
			w.lt.Shuffle(w.rnd)
		}
		w.lt.Rescore(set, tbl)
		w.curScore = w.lt.Score
		w.prev = w.lt.Clone()
		w.best = w.lt.Clone()
		w.bestScore = w.lt.Score
		ranking.Insert(w.lt.Name, w.lt.Score)
		workers[i] = w
	}

	result := &Result{}
	stale := 0
	temp := p.Temperature

	for round := 0; round < p.Rounds; round++ {
		select {
		case <-ctx.Done():
			result.Bests = collectBests(workers)
			result.Best = result.Bests[0]
			return result, nil
		default:
		}

		var g errgroup.Group
		for _, w := range workers {
			g.Go(func() error {
				w.propose(p.Swaps)
				w.lt.Rescore(set, tbl)
				return nil
			})
		}
		// Workers never fail; Wait is the evaluate-phase barrier.
		_ = g.Wait()

		accepted := 0
		for _, w := range workers {
			if w.decide(temp) {
				accepted++
				if w.curScore > w.bestScore {
					w.bestScore = w.curScore
					layout.Copy(w.best, w.lt)
					ranking.Insert(fmt.Sprintf("%s-r%d", w.lt.Name, round), w.curScore)
				}
			}
		}
		result.Accepted += accepted
		result.Rounds = round + 1

		if accepted == 0 {
			stale++
		} else {
			stale = 0
		}

		if progress != nil {
			best := bestScore(workers)
			select {
			case progress <- Progress{
				Round:       round + 1,
				Rounds:      p.Rounds,
				Temperature: temp,
				Best:        best.bestScore,
				BestName:    best.best.Name,
				Accepted:    accepted,
			}:
			default:
			}
		}

		temp *= p.Cooling
		if p.Patience > 0 && stale >= p.Patience {
			break
		}
	}

	result.Bests = collectBests(workers)
	result.Best = result.Bests[0]
	return result, nil
}

// propose snapshots the current scores, then draws and applies a
// fresh batch of uniformly chosen swaps.
func (w *worker) propose(n int) {
	layout.CopyScores(w.prev, w.lt)
	w.swaps = w.swaps[:0]
	for i := 0; i < n; i++ {
		s := layout.RandomSwap(w.rnd)
		w.swaps = append(w.swaps, s)
		w.lt.Apply(s)
	}
}

// decide accepts an improving batch outright and a worsening one with
// probability exp(delta/temperature). A rejected batch is unwound by
// re-applying each swap in reverse order, and the cached score
// vectors are restored without rescoring.
func (w *worker) decide(temp float64) bool {
	delta := w.lt.Score - w.curScore
	if delta > 0 || w.rnd.Float64() < math.Exp(delta/temp) {
		w.curScore = w.lt.Score
		return true
	}
	for i := len(w.swaps) - 1; i >= 0; i-- {
		w.lt.Apply(w.swaps[i])
	}
	layout.CopyScores(w.lt, w.prev)
	return false
}

func bestScore(workers []*worker) *worker {
	best := workers[0]
	for _, w := range workers[1:] {
		if w.bestScore > best.bestScore {
			best = w
		}
	}
	return best
}

func collectBests(workers []*worker) []*layout.Layout {
	bests := make([]*layout.Layout, len(workers))
	for i, w := range workers {
		bests[i] = w.best.Clone()
	}
	sort.Slice(bests, func(i, j int) bool { return bests[i].Score > bests[j].Score })
	return bests
}
