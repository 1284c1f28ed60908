// Package corpus ingests text into n-gram counts and normalizes them
// into percentage tables for layout scoring.
package corpus

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/verte-zerg/keylab/internal/kb"
	"github.com/verte-zerg/keylab/internal/lang"
)

// Counts holds raw n-gram occurrence counts over an alphabet of
// length L. Each table is flat; the index of a sequence is its
// positional mixed-radix encoding with base L, most significant
// character first. Skip counts are bucketed by distance 1..SkipMax,
// where distance d means d characters between the pair.
type Counts struct {
	L    int
	Mono []int64
	Bi   []int64
	Tri  []int64
	Quad []int64
	Skip [kb.SkipMax][]int64
}

// NewCounts allocates zeroed count tables for an alphabet size.
func NewCounts(l int) *Counts {
	c := &Counts{
		L:    l,
		Mono: make([]int64, l),
		Bi:   make([]int64, l*l),
		Tri:  make([]int64, l*l*l),
		Quad: make([]int64, l*l*l*l),
	}
	for d := range c.Skip {
		c.Skip[d] = make([]int64, l*l)
	}
	return c
}

// window spans a quadgram plus the longest skip pair.
const window = kb.SkipMax + 2

// Ingest streams text from r and accumulates n-gram counts. Runes
// outside the alphabet break the sequence window, so n-grams never
// span unmapped characters.
func (c *Counts) Ingest(r io.Reader, a *lang.Alphabet) error {
	if a.Len() != c.L {
		return fmt.Errorf("alphabet size %d does not match count tables (%d)", a.Len(), c.L)
	}
	reader := bufio.NewReader(r)
	buf := make([]int, 0, window)
	for {
		ch, _, err := reader.ReadRune()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read corpus: %w", err)
		}
		id, ok := a.ID(ch)
		if !ok {
			buf = buf[:0]
			continue
		}
		if len(buf) == window {
			copy(buf, buf[1:])
			buf = buf[:window-1]
		}
		buf = append(buf, id)
		c.record(buf)
	}
}

// IngestFile ingests a corpus file.
func (c *Counts) IngestFile(path string, a *lang.Alphabet) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only corpus file.
			_ = cerr
		}
	}()
	return c.Ingest(file, a)
}

// record counts every n-gram ending at the newest character in buf.
func (c *Counts) record(buf []int) {
	l := c.L
	n := len(buf)
	last := buf[n-1]

	c.Mono[last]++
	if n >= 2 {
		c.Bi[buf[n-2]*l+last]++
	}
	if n >= 3 {
		c.Tri[(buf[n-3]*l+buf[n-2])*l+last]++
	}
	if n >= 4 {
		c.Quad[((buf[n-4]*l+buf[n-3])*l+buf[n-2])*l+last]++
	}
	for d := 1; d <= kb.SkipMax; d++ {
		first := n - d - 2
		if first < 0 {
			break
		}
		c.Skip[d-1][buf[first]*l+last]++
	}
}

// Total returns the sum of all counts in one class table.
func Total(table []int64) int64 {
	var sum int64
	for _, v := range table {
		sum += v
	}
	return sum
}

// Tables holds normalized n-gram frequencies as percentages. Within
// each class (and each skip distance bucket) the entries sum to 100,
// unless the class had no counts at all, in which case it is all zero.
type Tables struct {
	L    int
	Mono []float64
	Bi   []float64
	Tri  []float64
	Quad []float64
	Skip [kb.SkipMax][]float64
}

// Normalize converts raw counts into percentage tables.
func Normalize(c *Counts) *Tables {
	t := &Tables{
		L:    c.L,
		Mono: normalizeClass(c.Mono),
		Bi:   normalizeClass(c.Bi),
		Tri:  normalizeClass(c.Tri),
		Quad: normalizeClass(c.Quad),
	}
	for d := range c.Skip {
		t.Skip[d] = normalizeClass(c.Skip[d])
	}
	return t
}

func normalizeClass(raw []int64) []float64 {
	out := make([]float64, len(raw))
	total := Total(raw)
	if total == 0 {
		return out
	}
	for i, v := range raw {
		out[i] = float64(v) / float64(total) * 100
	}
	return out
}

// MonoAt returns the normalized frequency of a single character.
func (t *Tables) MonoAt(a int) float64 {
	return t.Mono[a]
}

// BiAt returns the normalized frequency of an ordered character pair.
func (t *Tables) BiAt(a, b int) float64 {
	return t.Bi[a*t.L+b]
}

// TriAt returns the normalized frequency of an ordered character triple.
func (t *Tables) TriAt(a, b, c int) float64 {
	return t.Tri[(a*t.L+b)*t.L+c]
}

// QuadAt returns the normalized frequency of an ordered character quadruple.
func (t *Tables) QuadAt(a, b, c, d int) float64 {
	return t.Quad[((a*t.L+b)*t.L+c)*t.L+d]
}

// SkipAt returns the normalized frequency of a character pair at a
// skip distance 1..SkipMax.
func (t *Tables) SkipAt(dist, a, b int) float64 {
	return t.Skip[dist-1][a*t.L+b]
}
