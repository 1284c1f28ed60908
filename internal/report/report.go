// Package report renders rankings, analyses, and run history as text.
package report

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/verte-zerg/keylab/internal/kb"
	"github.com/verte-zerg/keylab/internal/lang"
	"github.com/verte-zerg/keylab/internal/layout"
	"github.com/verte-zerg/keylab/internal/model"
	"github.com/verte-zerg/keylab/internal/rank"
	"github.com/verte-zerg/keylab/internal/stat"
)

const sparkChars = " .:-=+*#%@"

// mismatchMark fills diff grid cells where the two layouts disagree.
const mismatchMark = '*'

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal := values[0]
	maxVal := values[0]
	for _, v := range values[1:] {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkChars) {
			idx = len(sparkChars) - 1
		}
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	if window <= 1 || len(values) == 0 {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	out := make([]float64, len(values))
	var sum float64
	for i := 0; i < len(values); i++ {
		sum += values[i]
		if i >= window {
			sum -= values[i-window]
		}
		den := float64(i + 1)
		if i >= window {
			den = float64(window)
		}
		out[i] = sum / den
	}
	return out
}

// RenderRanking prints ranked layouts, best first.
func RenderRanking(w io.Writer, entries []rank.Entry) error {
	if len(entries) == 0 {
		_, err := fmt.Fprintln(w, "No layouts ranked.")
		return err
	}
	headers := []string{"Rank", "Layout", "Score"}
	rows := make([][]string, 0, len(entries))
	for i, e := range entries {
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			e.Name,
			fmt.Sprintf("%.4f", e.Score),
		})
	}
	rightAlign := map[int]bool{0: true, 2: true}
	for _, line := range formatTable(headers, rows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// RenderAnalysis prints a layout's grid and its per-statistic score
// breakdown. The layout must have been rescored with the set.
func RenderAnalysis(w io.Writer, lt *layout.Layout, set *stat.Set, a *lang.Alphabet) error {
	if _, err := fmt.Fprintf(w, "Layout %s\n", lt.Name); err != nil {
		return err
	}
	if _, err := fmt.Fprint(w, lt.Render(a)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Score: %.4f\n\n", lt.Score); err != nil {
		return err
	}

	headers := []string{"Class", "Statistic", "Weight", "Frequency", "Contribution"}
	rows := make([][]string, 0, 32)
	appendClass := func(class string, stats []stat.Stat, freqs []float64) {
		for i, s := range stats {
			rows = append(rows, []string{
				class,
				s.Name,
				fmt.Sprintf("%.2f", s.Weight),
				fmt.Sprintf("%.4f", freqs[i]),
				fmt.Sprintf("%.4f", freqs[i]*s.Weight),
			})
		}
	}
	appendClass("mono", set.Mono, lt.MonoScore)
	appendClass("bi", set.Bi, lt.BiScore)
	appendClass("tri", set.Tri, lt.TriScore)
	appendClass("quad", set.Quad, lt.QuadScore)
	for i, s := range set.Skip {
		var freq, contrib float64
		for d := 0; d < kb.SkipMax; d++ {
			freq += lt.SkipScore[d][i]
			contrib += lt.SkipScore[d][i] * s.Weights[d]
		}
		rows = append(rows, []string{
			"skip",
			s.Name,
			"per-dist",
			fmt.Sprintf("%.4f", freq),
			fmt.Sprintf("%.4f", contrib),
		})
	}

	rightAlign := map[int]bool{2: true, 3: true, 4: true}
	for _, line := range formatTable(headers, rows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// RenderDiff prints the comparison of two layouts: a grid keeping only
// agreeing keys and the per-statistic score differences.
func RenderDiff(w io.Writer, d *layout.Diff, set *stat.Set, a *lang.Alphabet) error {
	if _, err := fmt.Fprintf(w, "Diff %s\n", d.Name); err != nil {
		return err
	}
	var grid strings.Builder
	for row := 0; row < kb.Row; row++ {
		for col := 0; col < kb.Col; col++ {
			if col > 0 {
				grid.WriteByte(' ')
			}
			if id := d.Grid[row][col]; id == layout.Mismatch {
				grid.WriteRune(mismatchMark)
			} else {
				grid.WriteRune(a.Rune(id))
			}
		}
		grid.WriteByte('\n')
	}
	if _, err := fmt.Fprint(w, grid.String()); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Score delta: %+.4f\n\n", d.Score); err != nil {
		return err
	}

	headers := []string{"Class", "Statistic", "Delta"}
	rows := make([][]string, 0, 32)
	appendClass := func(class string, stats []stat.Stat, deltas []float64) {
		for i, s := range stats {
			rows = append(rows, []string{class, s.Name, fmt.Sprintf("%+.4f", deltas[i])})
		}
	}
	appendClass("mono", set.Mono, d.MonoScore)
	appendClass("bi", set.Bi, d.BiScore)
	appendClass("tri", set.Tri, d.TriScore)
	appendClass("quad", set.Quad, d.QuadScore)
	for i, s := range set.Skip {
		var delta float64
		for dist := 0; dist < kb.SkipMax; dist++ {
			delta += d.SkipScore[dist][i]
		}
		rows = append(rows, []string{"skip", s.Name, fmt.Sprintf("%+.4f", delta)})
	}

	rightAlign := map[int]bool{2: true}
	for _, line := range formatTable(headers, rows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// RenderRuns prints the run history table and a sparkline of best scores.
func RenderRuns(w io.Writer, runs []model.Run) error {
	if len(runs) == 0 {
		_, err := fmt.Fprintln(w, "No runs found.")
		return err
	}
	headers := []string{"ID", "Ended", "Corpus", "Base", "Rounds", "Accepted", "Best", "Score"}
	rows := make([][]string, 0, len(runs))
	scores := make([]float64, 0, len(runs))
	for _, r := range runs {
		rows = append(rows, []string{
			fmt.Sprintf("%d", r.ID),
			r.EndedAt.Format("2006-01-02 15:04"),
			r.CorpusPath,
			r.BaseLayout,
			fmt.Sprintf("%d", r.Rounds),
			fmt.Sprintf("%d", r.Accepted),
			r.BestName,
			fmt.Sprintf("%.4f", r.BestScore),
		})
		scores = append(scores, r.BestScore)
	}
	rightAlign := map[int]bool{0: true, 4: true, 5: true, 7: true}
	for _, line := range formatTable(headers, rows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, "\nBest score trend: %s\n", Sparkline(scores)); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// RenderScoreCurve plots best scores across runs, smoothed over a window.
func RenderScoreCurve(w io.Writer, runs []model.Run, window, totalWidth, height int, useColor bool) error {
	if len(runs) == 0 {
		return nil
	}
	scores := make([]float64, len(runs))
	for i, r := range runs {
		scores[i] = r.BestScore
	}
	scores = MovingAverage(scores, window)

	width := 0
	if totalWidth > 0 {
		width = PlotWidthFor(totalWidth)
	}
	return PlotSeriesWithColor(w, "Run History", []Series{
		{Name: "Best score", Values: scores},
	}, width, height, useColor)
}
