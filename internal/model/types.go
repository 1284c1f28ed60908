// Package model defines shared data structures.
package model

import "time"

// Run captures one finished optimization run.
type Run struct {
	ID          int64
	StartedAt   time.Time
	EndedAt     time.Time
	CorpusPath  string
	BaseLayout  string
	Workers     int
	Swaps       int
	Rounds      int
	Temperature float64
	Cooling     float64
	Accepted    int
	BestName    string
	BestScore   float64
}

// RunLayout is one ranked layout produced by a run. Grid holds the
// rendered layout text, reloadable with layout.Parse.
type RunLayout struct {
	RunID int64
	Rank  int
	Name  string
	Score float64
	Grid  string
}

// HistoryFilter selects runs for history output.
type HistoryFilter struct {
	Corpus string
	Since  *time.Time
	Last   int
}
