package main

import (
	"fmt"
	"math"
	"os"

	"github.com/pelletier/go-toml/v2"
	"honnef.co/go/pathsimp"
)

// Config is the configuration file format.
type Config struct {
	// Thresh is the distance threshold in path units. Zero derives it from
	// the path's size using ThreshRatio.
	Thresh      float64 `toml:"thresh"`
	ThreshRatio float64 `toml:"thresh_ratio"`
	// Tolerance is the maximum relative area deviation, in percent.
	Tolerance float64 `toml:"tolerance"`
	// CornerAngle is in degrees.
	CornerAngle float64 `toml:"corner_angle"`
	StrictClose bool    `toml:"strict_close"`
	Concurrency int     `toml:"concurrency"`
	SkipInvalid bool    `toml:"skip_invalid"`
	// Precision is the number of decimals in the output, or -1 for full
	// precision.
	Precision int `toml:"precision"`
}

func defaultConfig() Config {
	def := pathsimp.DefaultOptions()
	return Config{
		ThreshRatio: 0.005,
		Tolerance:   def.Tolerance,
		CornerAngle: def.CornerAngle * 180 / math.Pi,
		StrictClose: def.StrictClose,
		Precision:   3,
	}
}

// loadConfig reads a TOML configuration file. Keys missing from the file
// keep their default values and unknown keys are rejected.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer f.Close()
	if err := toml.NewDecoder(f).DisallowUnknownFields().Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("reading config %s: %w", path, err)
	}
	return cfg, nil
}

// Options converts the configuration to simplification options for a path
// with the given control box.
func (cfg Config) Options(bounds pathsimp.Rect) (pathsimp.Options, error) {
	opts := pathsimp.DefaultOptions()
	opts.Tolerance = cfg.Tolerance
	opts.Thresh = cfg.Thresh
	if opts.Thresh == 0 {
		if cfg.ThreshRatio <= 0 {
			return pathsimp.Options{}, fmt.Errorf("%w: thresh_ratio must be positive, got %g", pathsimp.ErrInvalidConfig, cfg.ThreshRatio)
		}
		opts.Thresh = pathsimp.ThreshForBounds(bounds, cfg.ThreshRatio)
	}
	opts.CornerAngle = cfg.CornerAngle * math.Pi / 180
	opts.StrictClose = cfg.StrictClose
	opts.Concurrency = cfg.Concurrency
	opts.SkipInvalid = cfg.SkipInvalid
	if err := opts.Validate(); err != nil {
		return pathsimp.Options{}, err
	}
	return opts, nil
}
