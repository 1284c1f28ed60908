// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/verte-zerg/keylab/internal/kb"
	"github.com/verte-zerg/keylab/internal/stat"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Search  SearchConfig  `toml:"search"`
	Corpus  CorpusConfig  `toml:"corpus"`
	Weights WeightsConfig `toml:"weights"`
}

// SearchConfig maps annealing-search settings.
type SearchConfig struct {
	Workers     *int     `toml:"workers"`
	Swaps       *int     `toml:"swaps"`
	Rounds      *int     `toml:"rounds"`
	Temperature *float64 `toml:"temperature"`
	Cooling     *float64 `toml:"cooling"`
	Patience    *int     `toml:"patience"`
	Shuffle     *bool    `toml:"shuffle"`
}

// CorpusConfig maps corpus settings.
type CorpusConfig struct {
	Path     *string `toml:"path"`
	Alphabet *string `toml:"alphabet"`
}

// WeightsConfig maps statistic weights by class and name. A skip
// entry carries one value per skip distance 1..9.
type WeightsConfig struct {
	Mono map[string]float64   `toml:"mono"`
	Bi   map[string]float64   `toml:"bi"`
	Tri  map[string]float64   `toml:"tri"`
	Quad map[string]float64   `toml:"quad"`
	Skip map[string][]float64 `toml:"skip"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}

// Configured reports whether the file carries any weight table at all.
func (w WeightsConfig) Configured() bool {
	return len(w.Mono)+len(w.Bi)+len(w.Tri)+len(w.Quad)+len(w.Skip) > 0
}

// StatWeights converts the TOML weight tables into registry form.
func (w WeightsConfig) StatWeights() (stat.Weights, error) {
	out := stat.Weights{
		Mono: w.Mono,
		Bi:   w.Bi,
		Tri:  w.Tri,
		Quad: w.Quad,
		Skip: make(map[string][kb.SkipMax]float64, len(w.Skip)),
	}
	for name, values := range w.Skip {
		if len(values) != kb.SkipMax {
			return stat.Weights{}, fmt.Errorf("skip weight %q has %d values, want %d",
				name, len(values), kb.SkipMax)
		}
		var vec [kb.SkipMax]float64
		copy(vec[:], values)
		out.Skip[name] = vec
	}
	return out, nil
}

// DefaultWeights returns the built-in weight table used when the
// config file carries none. Positive values reward a statistic and
// negative values penalize it.
func DefaultWeights() stat.Weights {
	return stat.Weights{
		Mono: map[string]float64{
			"left-hand":    0.1,
			"right-hand":   0.1,
			"left-pinky":   -0.6,
			"left-ring":    -0.1,
			"left-middle":  0.2,
			"left-index":   0.3,
			"right-index":  0.3,
			"right-middle": 0.2,
			"right-ring":   -0.1,
			"right-pinky":  -0.6,
			"top-row":      -0.1,
			"home-row":     0.6,
			"bottom-row":   -0.3,
		},
		Bi: map[string]float64{
			"same-finger":     -3.0,
			"repeat":          -0.5,
			"alternate":       0.6,
			"same-hand":       -0.2,
			"roll-in":         0.9,
			"roll-out":        0.4,
			"lateral-stretch": -1.2,
		},
		Tri: map[string]float64{
			"alternate":    0.4,
			"redirect":     -1.4,
			"one-hand-in":  0.5,
			"one-hand-out": 0.2,
			"same-finger":  -4.0,
		},
		Quad: map[string]float64{
			"one-hand":    -0.4,
			"alternate":   0.3,
			"same-finger": -5.0,
		},
		Skip: map[string][kb.SkipMax]float64{
			"same-finger": {-1.5, -1.0, -0.6, -0.4, -0.2, -0.1, -0.1, 0, 0},
			"same-hand":   {-0.2, -0.1, 0, 0, 0, 0, 0, 0, 0},
			"alternate":   {0.3, 0.2, 0.1, 0, 0, 0, 0, 0, 0},
		},
	}
}
