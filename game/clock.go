package game

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"
)

// Clock advances the simulation one day per tick until the apocalypse day.
// It owns nothing but the day counter.
type Clock struct {
	Day         int           // next day to simulate
	Apocalypse  int           // first day that is never simulated
	DayDuration time.Duration // wall time between ticks; 0 runs back-to-back

	// OnDay simulates one day. An error stops the clock.
	OnDay func(day int) error

	stopped atomic.Bool
}

// NewClock creates a clock starting at day 0.
func NewClock(apocalypse int, dayDuration time.Duration, onDay func(day int) error) *Clock {
	return &Clock{
		Apocalypse:  apocalypse,
		DayDuration: dayDuration,
		OnDay:       onDay,
	}
}

// Done reports whether no further ticks will run.
func (c *Clock) Done() bool {
	return c.stopped.Load() || c.Day >= c.Apocalypse
}

// Stop prevents the next tick. A tick in progress completes. Safe to call
// from other goroutines.
func (c *Clock) Stop() {
	c.stopped.Store(true)
}

// Tick simulates the current day and advances the counter. It returns
// false, without running anything, once the apocalypse day is reached or
// the clock was stopped.
func (c *Clock) Tick() (bool, error) {
	if c.Done() {
		c.Stop()
		return false, nil
	}
	if c.OnDay != nil {
		if err := c.OnDay(c.Day); err != nil {
			c.Stop()
			return false, err
		}
	}
	c.Day++
	return true, nil
}

// Run ticks every DayDuration until the apocalypse day, Stop, or ctx is
// cancelled. Cancellation only prevents the next tick.
func (c *Clock) Run(ctx context.Context) error {
	slog.Info("clock started", "day", c.Day, "apocalypse", c.Apocalypse, "day_duration", c.DayDuration)

	var tick <-chan time.Time
	if c.DayDuration > 0 {
		ticker := time.NewTicker(c.DayDuration)
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		if ctx.Err() != nil {
			c.Stop()
			return nil
		}
		ran, err := c.Tick()
		if err != nil {
			return err
		}
		if !ran {
			slog.Info("clock stopped", "day", c.Day)
			return nil
		}

		if tick == nil {
			continue
		}
		select {
		case <-ctx.Done():
		case <-tick:
		}
	}
}
