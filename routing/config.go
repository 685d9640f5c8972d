package routing

import (
	"io"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// SBendStrategy selects which of the two symmetric S-bends to take when ports
// face each other with a transverse offset too small for two full bends.
type SBendStrategy string

const (
	// SBendShort bends toward the other port first.
	SBendShort SBendStrategy = "short"
	// SBendLong bends away first and comes back around.
	SBendLong SBendStrategy = "long"
)

// Config carries the per-call routing options. All distances are in dbu.
type Config struct {
	// Bend90Radius is the corner footprint of a 90° bend: the distance a
	// bend needs along both its entry and exit axis.
	Bend90Radius int `yaml:"bend90_radius"`
	// Separation is the minimum center-to-center spacing between parallel
	// routes of a bundle.
	Separation int `yaml:"separation"`
	// StartStraight is the minimum straight leaving a start port.
	StartStraight int `yaml:"start_straight"`
	// EndStraight is the minimum straight entering an end port.
	EndStraight int `yaml:"end_straight"`
	// Invert swaps which side of the route is extended first, selecting the
	// mirrored jog when both are valid.
	Invert bool `yaml:"invert"`
	// SBend selects the S-bend tie-break. Empty means SBendShort.
	SBend SBendStrategy `yaml:"s_bend"`
	// MaxSteps bounds the obstacle detour search. Zero means the default
	// budget. Exceeding it yields a TimeoutError.
	MaxSteps int `yaml:"max_steps"`

	logger *zap.Logger
}

// DefaultMaxSteps is the detour search budget used when Config.MaxSteps is 0.
const DefaultMaxSteps = 64

// maxTries bounds the recursive case analysis of a single-path route.
const maxTries = 20

// WithLogger returns a copy of the config that logs routing diagnostics to
// the given logger. Without one, diagnostics are dropped.
func (c Config) WithLogger(log *zap.Logger) Config {
	c.logger = log
	return c
}

func (c Config) log() *zap.Logger {
	if c.logger == nil {
		return zap.NewNop()
	}
	return c.logger
}

func (c Config) sbend() SBendStrategy {
	if c.SBend == "" {
		return SBendShort
	}
	return c.SBend
}

func (c Config) maxSteps() int {
	if c.MaxSteps <= 0 {
		return DefaultMaxSteps
	}
	return c.MaxSteps
}

// validate checks the option invariants shared by all entry points.
func (c Config) validate() error {
	if c.Bend90Radius <= 0 {
		return contractf("bend90 radius must be positive, got %d", c.Bend90Radius)
	}
	if c.StartStraight < 0 || c.EndStraight < 0 {
		return contractf("minimum straights must be >= 0, got start=%d end=%d",
			c.StartStraight, c.EndStraight)
	}
	if c.Separation < 0 {
		return contractf("separation must be >= 0, got %d", c.Separation)
	}
	if s := c.sbend(); s != SBendShort && s != SBendLong {
		return contractf("unknown s-bend strategy %q", s)
	}
	return nil
}

// LoadConfig reads a Config from YAML. Unknown fields are rejected so typos
// in host tool configuration surface early.
func LoadConfig(r io.Reader) (Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, contractf("parsing config: %v", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
