package layout

import (
	"github.com/verte-zerg/keylab/internal/corpus"
	"github.com/verte-zerg/keylab/internal/kb"
	"github.com/verte-zerg/keylab/internal/stat"
)

// Rescore recomputes every score vector and the aggregate score from
// the current grid. Each statistic entry sums the normalized corpus
// frequency of the character sequences sitting on its key sequences;
// the aggregate is the weighted sum across all classes and skip
// distances. Must be called after any grid mutation before scores are
// read.
func (l *Layout) Rescore(set *stat.Set, tbl *corpus.Tables) {
	total := 0.0

	for i := range set.Mono {
		st := &set.Mono[i]
		sum := 0.0
		for _, n := range st.Ngrams {
			sum += tbl.MonoAt(l.CharAt(int(n)))
		}
		l.MonoScore[i] = sum
		total += sum * st.Weight
	}

	for i := range set.Bi {
		st := &set.Bi[i]
		sum := 0.0
		for _, n := range st.Ngrams {
			r0, c0, r1, c1 := kb.UnflattenBi(int(n))
			sum += tbl.BiAt(l.Grid[r0][c0], l.Grid[r1][c1])
		}
		l.BiScore[i] = sum
		total += sum * st.Weight
	}

	for i := range set.Tri {
		st := &set.Tri[i]
		sum := 0.0
		for _, n := range st.Ngrams {
			r0, c0, r1, c1, r2, c2 := kb.UnflattenTri(int(n))
			sum += tbl.TriAt(l.Grid[r0][c0], l.Grid[r1][c1], l.Grid[r2][c2])
		}
		l.TriScore[i] = sum
		total += sum * st.Weight
	}

	for i := range set.Quad {
		st := &set.Quad[i]
		sum := 0.0
		for _, n := range st.Ngrams {
			r0, c0, r1, c1, r2, c2, r3, c3 := kb.UnflattenQuad(int(n))
			sum += tbl.QuadAt(l.Grid[r0][c0], l.Grid[r1][c1], l.Grid[r2][c2], l.Grid[r3][c3])
		}
		l.QuadScore[i] = sum
		total += sum * st.Weight
	}

	for i := range set.Skip {
		st := &set.Skip[i]
		for d := 1; d <= kb.SkipMax; d++ {
			sum := 0.0
			for _, n := range st.Ngrams {
				r0, c0, r1, c1 := kb.UnflattenBi(int(n))
				sum += tbl.SkipAt(d, l.Grid[r0][c0], l.Grid[r1][c1])
			}
			l.SkipScore[d-1][i] = sum
			total += sum * st.Weights[d-1]
		}
	}

	l.Score = total
}
