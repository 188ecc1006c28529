package main

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/phonalign/phonetics"
)

// runConfig is the YAML run configuration shared by both subcommands.
//
//	model: data/at_extended.yml
//	gap: "░"
//
//	align:
//	  pairs: [data/pairs/alb_srd.txt]
//	  open: 1.0
//	  grow: 0.5
//	  hirschberg: false
//
//	calibrate:
//	  sources: [data/training/synthetic.sdm]
//	  correlated: [[consonantal, sonorant]]
//	  population: 2000
//	  report: out/best
type runConfig struct {
	Model string `yaml:"model"`
	Gap   string `yaml:"gap"`

	Align     alignConfig     `yaml:"align"`
	Calibrate calibrateConfig `yaml:"calibrate"`
}

// alignConfig drives the "align" subcommand.
type alignConfig struct {
	// Pairs lists word-pair files: one "left | right" pair per line,
	// "%" comments allowed.
	Pairs []string `yaml:"pairs"`

	// Weights are per-feature comparator weights; empty means all ones.
	Weights []float64 `yaml:"weights"`

	// Open and Grow parameterize the convex gap penalty.
	Open float64 `yaml:"open"`
	Grow float64 `yaml:"grow"`

	// Hirschberg selects the linear-space algorithm (one alignment, no
	// score table) over the full-matrix one.
	Hirschberg bool `yaml:"hirschberg"`
}

// calibrateConfig drives the "calibrate" subcommand. Zero-valued search
// fields fall back to the library defaults.
type calibrateConfig struct {
	Sources     []string    `yaml:"sources"`
	Correlated  [][2]string `yaml:"correlated"`
	ExtraParams int         `yaml:"extra_params"`

	Population        int     `yaml:"population"`
	Elite             int     `yaml:"elite"`
	MutationProb      float64 `yaml:"mutation_prob"`
	MutationScale     float64 `yaml:"mutation_scale"`
	SteadyGenerations int     `yaml:"steady_generations"`
	MaxGenerations    int     `yaml:"max_generations"`
	Workers           int     `yaml:"workers"`
	Seed              int64   `yaml:"seed"`

	// Report, when set, is a path prefix for per-source CSV dumps of the
	// best parameters' alignments against the training references.
	Report string `yaml:"report"`
}

var errConfigIncomplete = errors.New("config must set both model and gap")

// loadConfig reads and validates the run configuration.
func loadConfig(path string) (*runConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg runConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if cfg.Model == "" || cfg.Gap == "" {
		return nil, fmt.Errorf("%s: %w", path, errConfigIncomplete)
	}
	return &cfg, nil
}

// newFactory loads the feature model and resolves the gap segment.
func (c *runConfig) newFactory() (*phonetics.SequenceFactory, phonetics.Segment, error) {
	table, err := phonetics.LoadFeatureTable(c.Model)
	if err != nil {
		return nil, phonetics.Segment{}, fmt.Errorf("loading model %s: %w", c.Model, err)
	}
	factory := phonetics.NewSequenceFactory(table)
	gap, err := factory.ToSegment(c.Gap)
	if err != nil {
		return nil, phonetics.Segment{}, fmt.Errorf("resolving gap symbol %q: %w", c.Gap, err)
	}
	return factory, gap, nil
}
