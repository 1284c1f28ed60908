package layout

import "github.com/verte-zerg/keylab/internal/kb"

// Mismatch marks a grid cell where two layouts disagree.
const Mismatch = -1

// Diff records the cell-by-cell and score-by-score difference between
// two layouts. Score entries are plain arithmetic differences.
type Diff struct {
	Name string
	Grid [kb.Row][kb.Col]int

	Score     float64
	MonoScore []float64
	BiScore   []float64
	TriScore  []float64
	QuadScore []float64
	SkipScore [kb.SkipMax][]float64
}

// Compare diffs layout a against layout b. Cells agreeing in both
// grids keep their character id; disagreeing cells get the Mismatch
// marker. Both layouts must have been rescored with the same
// statistic set.
func Compare(a, b *Layout) *Diff {
	d := &Diff{
		Name:      a.Name + " vs " + b.Name,
		Score:     a.Score - b.Score,
		MonoScore: subtract(a.MonoScore, b.MonoScore),
		BiScore:   subtract(a.BiScore, b.BiScore),
		TriScore:  subtract(a.TriScore, b.TriScore),
		QuadScore: subtract(a.QuadScore, b.QuadScore),
	}
	for i := range d.SkipScore {
		d.SkipScore[i] = subtract(a.SkipScore[i], b.SkipScore[i])
	}
	for row := 0; row < kb.Row; row++ {
		for col := 0; col < kb.Col; col++ {
			if a.Grid[row][col] == b.Grid[row][col] {
				d.Grid[row][col] = a.Grid[row][col]
			} else {
				d.Grid[row][col] = Mismatch
			}
		}
	}
	return d
}

func subtract(a, b []float64) []float64 {
	out := make([]float64, len(a))
	for i := range a {
		out[i] = a[i] - b[i]
	}
	return out
}
