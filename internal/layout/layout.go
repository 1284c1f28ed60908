// Package layout models a key assignment grid with cached scores.
package layout

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"

	"github.com/verte-zerg/keylab/internal/kb"
	"github.com/verte-zerg/keylab/internal/lang"
	"github.com/verte-zerg/keylab/internal/stat"
)

// Layout assigns one alphabet character id to every key. Score and
// the per-class score vectors are caches: they are only meaningful
// immediately after Rescore, and any grid mutation invalidates them.
type Layout struct {
	Name string
	Grid [kb.Row][kb.Col]int

	Score     float64
	MonoScore []float64
	BiScore   []float64
	TriScore  []float64
	QuadScore []float64
	SkipScore [kb.SkipMax][]float64
}

// New allocates a layout with zeroed score vectors sized to the
// statistic set.
func New(name string, set *stat.Set) *Layout {
	l := &Layout{
		Name:      name,
		MonoScore: make([]float64, len(set.Mono)),
		BiScore:   make([]float64, len(set.Bi)),
		TriScore:  make([]float64, len(set.Tri)),
		QuadScore: make([]float64, len(set.Quad)),
	}
	for d := range l.SkipScore {
		l.SkipScore[d] = make([]float64, len(set.Skip))
	}
	return l
}

// CharAt returns the character id on the key at a flat position.
func (l *Layout) CharAt(pos int) int {
	return l.Grid[pos/kb.Col][pos%kb.Col]
}

// Validate checks that the grid is a strict permutation: every cell
// holds a distinct id inside the alphabet.
func (l *Layout) Validate(alphabetLen int) error {
	seen := make(map[int]bool, kb.Keys)
	for row := 0; row < kb.Row; row++ {
		for col := 0; col < kb.Col; col++ {
			id := l.Grid[row][col]
			if id < 0 || id >= alphabetLen {
				return fmt.Errorf("layout %s: key (%d,%d) holds id %d outside alphabet of %d",
					l.Name, row, col, id, alphabetLen)
			}
			if seen[id] {
				return fmt.Errorf("layout %s: duplicate character id %d", l.Name, id)
			}
			seen[id] = true
		}
	}
	return nil
}

// Copy deep-copies src into dst: name, grid, aggregate score, and all
// score vectors. The two layouts share no state afterward.
func Copy(dst, src *Layout) {
	dst.Name = src.Name
	dst.Grid = src.Grid
	dst.Score = src.Score
	copy(dst.MonoScore, src.MonoScore)
	copy(dst.BiScore, src.BiScore)
	copy(dst.TriScore, src.TriScore)
	copy(dst.QuadScore, src.QuadScore)
	for d := range dst.SkipScore {
		copy(dst.SkipScore[d], src.SkipScore[d])
	}
}

// CopyScores copies only the aggregate score and the score vectors,
// leaving dst's grid alone. Used to restore cached scores after a
// rolled-back swap batch without rescoring.
func CopyScores(dst, src *Layout) {
	dst.Score = src.Score
	copy(dst.MonoScore, src.MonoScore)
	copy(dst.BiScore, src.BiScore)
	copy(dst.TriScore, src.TriScore)
	copy(dst.QuadScore, src.QuadScore)
	for d := range dst.SkipScore {
		copy(dst.SkipScore[d], src.SkipScore[d])
	}
}

// Clone returns an independent deep copy.
func (l *Layout) Clone() *Layout {
	c := l.Skeleton()
	Copy(c, l)
	return c
}

// Skeleton returns a layout with the same name and grid but zeroed
// score vectors of matching sizes.
func (l *Layout) Skeleton() *Layout {
	c := &Layout{
		Name:      l.Name,
		Grid:      l.Grid,
		MonoScore: make([]float64, len(l.MonoScore)),
		BiScore:   make([]float64, len(l.BiScore)),
		TriScore:  make([]float64, len(l.TriScore)),
		QuadScore: make([]float64, len(l.QuadScore)),
	}
	for d := range c.SkipScore {
		c.SkipScore[d] = make([]float64, len(l.SkipScore[d]))
	}
	return c
}

// Shuffle permutes the grid uniformly in place with a Fisher-Yates
// pass over the flattened key sequence. Scores become stale.
func (l *Layout) Shuffle(rnd *rand.Rand) {
	for i := kb.Keys - 1; i > 0; i-- {
		j := rnd.Intn(i + 1)
		l.swapPositions(i, j)
	}
}

// Swap exchanges the characters on two keys. Applying the same swap
// twice restores the prior grid exactly.
type Swap struct {
	A int
	B int
}

// RandomSwap draws a uniformly chosen pair of distinct keys.
func RandomSwap(rnd *rand.Rand) Swap {
	a := rnd.Intn(kb.Keys)
	b := rnd.Intn(kb.Keys - 1)
	if b >= a {
		b++
	}
	return Swap{A: a, B: b}
}

// Apply exchanges the two keys' characters. Scores become stale.
func (l *Layout) Apply(s Swap) {
	l.swapPositions(s.A, s.B)
}

func (l *Layout) swapPositions(a, b int) {
	ar, ac := kb.Coord(a)
	br, bc := kb.Coord(b)
	l.Grid[ar][ac], l.Grid[br][bc] = l.Grid[br][bc], l.Grid[ar][ac]
}

// Parse reads a grid from text: Row lines of Col whitespace-separated
// single-character fields.
func Parse(name, text string, a *lang.Alphabet, set *stat.Set) (*Layout, error) {
	l := New(name, set)
	lines := make([]string, 0, kb.Row)
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	if len(lines) != kb.Row {
		return nil, fmt.Errorf("layout %s: expected %d rows, got %d", name, kb.Row, len(lines))
	}
	for row, line := range lines {
		fields := strings.Fields(line)
		if len(fields) != kb.Col {
			return nil, fmt.Errorf("layout %s: row %d has %d keys, want %d",
				name, row, len(fields), kb.Col)
		}
		for col, field := range fields {
			runes := []rune(field)
			if len(runes) != 1 {
				return nil, fmt.Errorf("layout %s: key (%d,%d) is %q, want one character",
					name, row, col, field)
			}
			id, ok := a.ID(runes[0])
			if !ok {
				return nil, fmt.Errorf("layout %s: character %q is not in the alphabet",
					name, runes[0])
			}
			l.Grid[row][col] = id
		}
	}
	if err := l.Validate(a.Len()); err != nil {
		return nil, err
	}
	return l, nil
}

// Load reads a layout file. The name is the file name without its
// extension.
func Load(path string, a *lang.Alphabet, set *stat.Set) (*Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return Parse(name, string(data), a, set)
}

// Render formats the grid back into layout-file text.
func (l *Layout) Render(a *lang.Alphabet) string {
	var b strings.Builder
	for row := 0; row < kb.Row; row++ {
		for col := 0; col < kb.Col; col++ {
			if col > 0 {
				b.WriteByte(' ')
			}
			b.WriteRune(a.Rune(l.Grid[row][col]))
		}
		b.WriteByte('\n')
	}
	return b.String()
}
