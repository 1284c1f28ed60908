package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/verte-zerg/keylab/internal/stat"
)

func TestLoadConfigMissingFileIsNotAnError(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "config.toml"))
	if err != nil {
		t.Fatalf("expected no error for a missing config, got %v", err)
	}
	if cfg.Search.Workers != nil || cfg.Corpus.Path != nil {
		t.Fatalf("expected a zero config for a missing file")
	}
}

func TestLoadConfigParsesSections(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	text := `
[search]
workers = 8
rounds = 5000
temperature = 2.5
cooling = 0.995

[corpus]
path = "/data/books.txt"

[weights.bi]
same-finger = -3.0
roll-in = 0.9

[weights.skip]
same-finger = [-1.5, -1.0, -0.6, -0.4, -0.2, -0.1, -0.1, 0.0, 0.0]
`
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.Search.Workers == nil || *cfg.Search.Workers != 8 {
		t.Fatalf("workers not parsed: %+v", cfg.Search.Workers)
	}
	if cfg.Search.Rounds == nil || *cfg.Search.Rounds != 5000 {
		t.Fatalf("rounds not parsed: %+v", cfg.Search.Rounds)
	}
	if cfg.Search.Temperature == nil || *cfg.Search.Temperature != 2.5 {
		t.Fatalf("temperature not parsed: %+v", cfg.Search.Temperature)
	}
	if cfg.Search.Swaps != nil {
		t.Fatalf("expected unset swaps to stay nil")
	}
	if cfg.Corpus.Path == nil || *cfg.Corpus.Path != "/data/books.txt" {
		t.Fatalf("corpus path not parsed: %+v", cfg.Corpus.Path)
	}
	if !cfg.Weights.Configured() {
		t.Fatalf("expected weights to be reported as configured")
	}

	w, err := cfg.Weights.StatWeights()
	if err != nil {
		t.Fatalf("failed to convert weights: %v", err)
	}
	if w.Bi["roll-in"] != 0.9 {
		t.Fatalf("bi weight not carried over: %f", w.Bi["roll-in"])
	}
	skip, ok := w.Skip["same-finger"]
	if !ok {
		t.Fatalf("skip weight vector missing")
	}
	if skip[0] != -1.5 || skip[8] != 0 {
		t.Fatalf("skip vector not carried over: %v", skip)
	}
}

func TestStatWeightsRejectsShortSkipVector(t *testing.T) {
	w := WeightsConfig{Skip: map[string][]float64{"same-finger": {-1, -0.5}}}
	if _, err := w.StatWeights(); err == nil {
		t.Fatalf("expected an error for a short skip vector")
	}
}

func TestDefaultWeightsCoverEveryBuiltinStat(t *testing.T) {
	r := stat.Builtin()
	r.ApplyWeights(DefaultWeights())
	r.Trim()

	before := len(r.Mono) + len(r.Bi) + len(r.Tri) + len(r.Quad) + len(r.Skip)
	r.Clean()
	after := len(r.Mono) + len(r.Bi) + len(r.Tri) + len(r.Quad) + len(r.Skip)
	if before != after {
		t.Fatalf("default weights leave %d of %d builtin statistics unweighted",
			before-after, before)
	}
}
