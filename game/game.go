// Package game runs a planet: it seeds the population, ticks the clock,
// renders each day and keeps telemetry.
package game

import (
	"context"
	"fmt"
	"image/color"
	"log/slog"

	"github.com/ahtohbi4/nature-simulator/config"
	"github.com/ahtohbi4/nature-simulator/notify"
	"github.com/ahtohbi4/nature-simulator/population"
	"github.com/ahtohbi4/nature-simulator/random"
	"github.com/ahtohbi4/nature-simulator/renderer"
	"github.com/ahtohbi4/nature-simulator/species"
	"github.com/ahtohbi4/nature-simulator/telemetry"
)

// Options holds runtime settings that are not part of the config file.
type Options struct {
	Seed      int64
	LogStats  bool   // log window stats via slog
	OutputDir string // CSV and config snapshot; empty disables output

	// Canvas, when set, is drawn after every day. Present is called after
	// each drawing, e.g. to flush a terminal screen.
	Canvas  renderer.Canvas
	Present func()

	// Notes receives notifications in addition to the planet's queue.
	Notes notify.Sink

	// StatsCallback is called with each flushed stats window.
	StatsCallback func(telemetry.WindowStats)
}

// Planet is one simulated world.
type Planet struct {
	cfg *config.Config

	name          string
	width, height float64

	rng      *random.Rand
	profiles map[string]*species.Profile
	colors   map[string]color.RGBA
	field    *population.Field
	clock    *Clock

	notes *notify.Queue
	sink  notify.Sink

	canvas  renderer.Canvas
	present func()

	// Telemetry
	collector     *telemetry.Collector
	lifetimes     *telemetry.LifetimeTracker
	perf          *telemetry.PerfCollector
	output        *telemetry.OutputManager
	logStats      bool
	statsCallback func(telemetry.WindowStats)

	births int // children born in the simulation
	deaths int
}

// New builds a planet from cfg. Nothing is seeded until Start.
func New(cfg *config.Config, opts Options) (*Planet, error) {
	profiles, err := cfg.Profiles()
	if err != nil {
		return nil, err
	}

	colors := make(map[string]color.RGBA, len(profiles))
	for kind, p := range profiles {
		c, err := renderer.ParseColor(p.Color)
		if err != nil {
			return nil, fmt.Errorf("species %q: %w", kind, err)
		}
		colors[kind] = c
	}

	output, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, err
	}
	if err := output.WriteConfig(cfg); err != nil {
		output.Close()
		return nil, err
	}

	p := &Planet{
		cfg:           cfg,
		name:          cfg.Planet.Name,
		width:         cfg.Planet.Width,
		height:        cfg.Planet.Height,
		rng:           random.New(opts.Seed),
		profiles:      profiles,
		colors:        colors,
		notes:         notify.NewQueue(cfg.Notifications.Capacity),
		canvas:        opts.Canvas,
		present:       opts.Present,
		collector:     telemetry.NewCollector(cfg.Telemetry.StatsWindow),
		lifetimes:     telemetry.NewLifetimeTracker(),
		perf:          telemetry.NewPerfCollector(cfg.Telemetry.StatsWindow),
		output:        output,
		logStats:      opts.LogStats,
		statsCallback: opts.StatsCallback,
	}
	p.sink = p.notes
	if opts.Notes != nil {
		p.sink = notify.Multi{p.notes, opts.Notes}
	}

	p.field = population.New(population.Options{
		Rand:     p.rng,
		Notes:    p.sink,
		Observer: p,
		Index:    population.Index(cfg.Field.Index),
		CellSize: cfg.Field.GridCellSize,
	})
	p.clock = NewClock(cfg.Clock.DayOfApocalypse, cfg.Derived.DayDuration, p.step)

	return p, nil
}

// Name returns the planet name.
func (p *Planet) Name() string { return p.name }

// Field returns the population.
func (p *Planet) Field() *population.Field { return p.field }

// Clock returns the day scheduler.
func (p *Planet) Clock() *Clock { return p.clock }

// Day returns the next day to be simulated.
func (p *Planet) Day() int { return p.clock.Day }

// Notifications returns the queued notifications, newest first.
func (p *Planet) Notifications() []notify.Notification { return p.notes.Items() }

// Notify posts a system message stamped with the current day.
func (p *Planet) Notify(message string) error {
	n, err := notify.New(notify.DefaultAuthor, p.clock.Day, message)
	if err != nil {
		return err
	}
	p.sink.Push(n)
	return nil
}

// Start seeds the population and draws the first frame. It does not tick;
// use Run or drive Clock().Tick directly.
func (p *Planet) Start() error {
	slog.Info("simulation_started", "planet", p.name, "apocalypse", p.clock.Apocalypse)
	if err := p.Notify("Well... We are starting!"); err != nil {
		return err
	}
	if err := p.Populate(); err != nil {
		return err
	}
	if err := p.Notify(fmt.Sprintf("Planet %s was populated...", p.name)); err != nil {
		return err
	}
	p.render()
	return nil
}

// Populate seeds the configured initial population. The first agent that
// cannot be constructed aborts seeding.
func (p *Planet) Populate() error {
	for _, init := range p.cfg.Population.Initial {
		profile, ok := p.profiles[init.Species]
		if !ok {
			return fmt.Errorf("populating: unknown species %q", init.Species)
		}
		if _, err := p.field.Seed(profile, init.Count, p.clock.Day); err != nil {
			return fmt.Errorf("populating %s: %w", init.Species, err)
		}
	}
	slog.Info("planet_populated", "planet", p.name, "agents", p.field.Len())
	return nil
}

// Run ticks until the apocalypse day, an explicit stop, or ctx ends.
func (p *Planet) Run(ctx context.Context) error {
	if err := p.clock.Run(ctx); err != nil {
		slog.Error("simulation failed", "day", p.clock.Day, "error", err)
		return err
	}
	if p.clock.Day >= p.clock.Apocalypse {
		slog.Info("apocalypse_reached", "day", p.clock.Day)
	}
	return nil
}

// Close releases output files.
func (p *Planet) Close() error {
	return p.output.Close()
}
