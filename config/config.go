// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ahtohbi4/nature-simulator/habitat"
	"github.com/ahtohbi4/nature-simulator/species"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// ErrInvalid is wrapped by Validate failures.
var ErrInvalid = errors.New("config: invalid")

// MinGridCellSize is the smallest non-zero field.grid_cell_size.
const MinGridCellSize = 1.0

// Config holds all simulation configuration parameters.
type Config struct {
	Planet        PlanetConfig        `yaml:"planet"`
	Clock         ClockConfig         `yaml:"clock"`
	Sampling      SamplingConfig      `yaml:"sampling"`
	Notifications NotificationsConfig `yaml:"notifications"`
	Field         FieldConfig         `yaml:"field"`
	Species       []SpeciesConfig     `yaml:"species"`
	Population    PopulationConfig    `yaml:"population"`
	Telemetry     TelemetryConfig     `yaml:"telemetry"`
	Screen        ScreenConfig        `yaml:"screen"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// PlanetConfig describes the drawing surface.
type PlanetConfig struct {
	Name   string  `yaml:"name"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// ClockConfig holds tick timing.
type ClockConfig struct {
	DayDurationMS   int `yaml:"day_duration_ms"`   // wall time per day; 0 runs as fast as possible
	DayOfApocalypse int `yaml:"day_of_apocalypse"` // no day with this number is simulated
}

// SamplingConfig controls individual variation.
type SamplingConfig struct {
	Scatter float64 `yaml:"scatter"` // ± percent
}

// NotificationsConfig sizes the notification queue.
type NotificationsConfig struct {
	Capacity int `yaml:"capacity"`
}

// FieldConfig selects the neighbour index.
type FieldConfig struct {
	Index        string  `yaml:"index"`          // pairwise | grid
	GridCellSize float64 `yaml:"grid_cell_size"` // 0 = largest view radius
}

// HabitatConfig is a named rectangle.
type HabitatConfig struct {
	Name string  `yaml:"name"`
	X0   float64 `yaml:"x0"`
	Y0   float64 `yaml:"y0"`
	X1   float64 `yaml:"x1"`
	Y1   float64 `yaml:"y1"`
}

// SpeciesConfig defines one kind of agent. Radii and colour are optional.
type SpeciesConfig struct {
	Kind            string        `yaml:"kind"`
	Color           string        `yaml:"color"`
	Habitat         HabitatConfig `yaml:"habitat"`
	Lifetime        float64       `yaml:"lifetime"`
	Speed           float64       `yaml:"speed"`
	ViewRadius      float64       `yaml:"view_radius"`
	ActionRadius    float64       `yaml:"action_radius"`
	ReproductiveAge [2]int        `yaml:"reproductive_age"`
}

// InitialConfig seeds count agents of a species.
type InitialConfig struct {
	Species string `yaml:"species"`
	Count   int    `yaml:"count"`
}

// PopulationConfig holds the starting population.
type PopulationConfig struct {
	Initial []InitialConfig `yaml:"initial"`
}

// TelemetryConfig holds stats output settings.
type TelemetryConfig struct {
	StatsWindow int    `yaml:"stats_window"` // days
	OutputDir   string `yaml:"output_dir"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	TargetFPS int     `yaml:"target_fps"`
	Scale     float64 `yaml:"scale"` // window pixels per world unit
}

// DerivedConfig holds values computed from other config values.
type DerivedConfig struct {
	DayDuration   time.Duration
	SpeciesIndex  map[string]int // kind -> index into Species
	MaxViewRadius float64        // largest mean view radius
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Default returns the embedded defaults.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Only overwrites fields present in file; lists are replaced whole
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.ComputeDerived()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ComputeDerived fills defaults and recalculates derived values. Call it
// again after changing the config in code.
func (c *Config) ComputeDerived() {
	if c.Notifications.Capacity <= 0 {
		c.Notifications.Capacity = 10
	}
	if c.Telemetry.StatsWindow <= 0 {
		c.Telemetry.StatsWindow = 10
	}
	if c.Field.Index == "" {
		c.Field.Index = "pairwise"
	}
	if c.Screen.Scale <= 0 {
		c.Screen.Scale = 1
	}

	c.Derived.DayDuration = time.Duration(c.Clock.DayDurationMS) * time.Millisecond
	c.Derived.SpeciesIndex = make(map[string]int, len(c.Species))
	c.Derived.MaxViewRadius = 0
	for i := range c.Species {
		sp := &c.Species[i]
		if sp.ActionRadius == 0 {
			sp.ActionRadius = species.DefaultActionRadius
		}
		if sp.ViewRadius == 0 {
			sp.ViewRadius = species.DefaultViewRadius
		}
		if sp.Color == "" {
			sp.Color = species.DefaultColor
		}
		c.Derived.SpeciesIndex[sp.Kind] = i
		c.Derived.MaxViewRadius = max(c.Derived.MaxViewRadius, sp.ViewRadius)
	}
}

// Validate reports the first inconsistency in the configuration.
func (c *Config) Validate() error {
	if c.Planet.Width <= 0 || c.Planet.Height <= 0 {
		return fmt.Errorf("%w: planet size %gx%g", ErrInvalid, c.Planet.Width, c.Planet.Height)
	}
	if c.Clock.DayDurationMS < 0 || c.Clock.DayOfApocalypse < 0 {
		return fmt.Errorf("%w: clock values must not be negative", ErrInvalid)
	}
	if c.Field.Index != "pairwise" && c.Field.Index != "grid" {
		return fmt.Errorf("%w: unknown field index %q", ErrInvalid, c.Field.Index)
	}
	if c.Field.GridCellSize != 0 && c.Field.GridCellSize < MinGridCellSize {
		return fmt.Errorf("%w: grid cell size %g below %g", ErrInvalid, c.Field.GridCellSize, MinGridCellSize)
	}
	if len(c.Derived.SpeciesIndex) != len(c.Species) {
		return fmt.Errorf("%w: duplicate species kind", ErrInvalid)
	}
	for _, sp := range c.Species {
		if _, err := sp.Profile(c.Sampling.Scatter); err != nil {
			return err
		}
	}
	for _, init := range c.Population.Initial {
		if _, ok := c.Derived.SpeciesIndex[init.Species]; !ok {
			return fmt.Errorf("%w: initial population references unknown species %q", ErrInvalid, init.Species)
		}
		if init.Count < 0 {
			return fmt.Errorf("%w: negative count for %q", ErrInvalid, init.Species)
		}
	}
	return nil
}

// Profile builds the species profile for this entry.
func (s SpeciesConfig) Profile(scatter float64) (species.Profile, error) {
	h, err := habitat.New(s.Habitat.Name, s.Habitat.X0, s.Habitat.Y0, s.Habitat.X1, s.Habitat.Y1)
	if err != nil {
		return species.Profile{}, fmt.Errorf("species %q: %w", s.Kind, err)
	}
	p := species.Profile{
		Kind:            s.Kind,
		Color:           s.Color,
		Habitat:         h,
		Lifetime:        s.Lifetime,
		Speed:           s.Speed,
		ViewRadius:      s.ViewRadius,
		ActionRadius:    s.ActionRadius,
		ReproductiveAge: s.ReproductiveAge,
		Scatter:         scatter,
	}.WithDefaults()
	if err := p.Validate(); err != nil {
		return species.Profile{}, err
	}
	return p, nil
}

// Profiles builds every configured species, keyed by kind.
func (c *Config) Profiles() (map[string]*species.Profile, error) {
	out := make(map[string]*species.Profile, len(c.Species))
	for _, sp := range c.Species {
		p, err := sp.Profile(c.Sampling.Scatter)
		if err != nil {
			return nil, err
		}
		out[p.Kind] = &p
	}
	return out, nil
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
