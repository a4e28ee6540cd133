package game

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestClockStopsAtApocalypse(t *testing.T) {
	var days []int
	c := NewClock(50, 0, func(day int) error {
		days = append(days, day)
		return nil
	})

	if err := c.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(days) != 50 {
		t.Fatalf("ticks = %d, want 50", len(days))
	}
	for i, d := range days {
		if d != i {
			t.Fatalf("tick %d simulated day %d", i, d)
		}
	}
	if c.Day != 50 {
		t.Errorf("Day = %d, want 50", c.Day)
	}

	ran, err := c.Tick()
	if ran || err != nil {
		t.Errorf("Tick after apocalypse = %v, %v; want false, nil", ran, err)
	}
	if len(days) != 50 {
		t.Error("a tick ran after the apocalypse day")
	}
}

func TestClockTick(t *testing.T) {
	calls := 0
	c := NewClock(2, 0, func(int) error { calls++; return nil })

	for i, want := range []bool{true, true, false} {
		ran, err := c.Tick()
		if err != nil {
			t.Fatalf("Tick %d: %v", i, err)
		}
		if ran != want {
			t.Errorf("Tick %d = %v, want %v", i, ran, want)
		}
	}
	if calls != 2 || !c.Done() {
		t.Errorf("calls = %d, done = %v", calls, c.Done())
	}
}

func TestClockZeroApocalypse(t *testing.T) {
	c := NewClock(0, 0, func(int) error {
		t.Fatal("no day should run")
		return nil
	})
	if err := c.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
}

func TestClockErrorStops(t *testing.T) {
	boom := errors.New("boom")
	c := NewClock(10, 0, func(day int) error {
		if day == 3 {
			return boom
		}
		return nil
	})

	err := c.Run(context.Background())
	if !errors.Is(err, boom) {
		t.Fatalf("Run error = %v, want boom", err)
	}
	if c.Day != 3 {
		t.Errorf("Day = %d, want 3 (failed day is not counted)", c.Day)
	}
	if !c.Done() {
		t.Error("clock should be stopped after an error")
	}
}

func TestClockStop(t *testing.T) {
	var c *Clock
	c = NewClock(100, 0, func(day int) error {
		if day == 4 {
			c.Stop()
		}
		return nil
	})

	if err := c.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	// The stopping tick completes; the next one never starts.
	if c.Day != 5 {
		t.Errorf("Day = %d, want 5", c.Day)
	}
}

func TestClockContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	c := NewClock(1000, time.Millisecond, func(day int) error {
		if day == 2 {
			cancel()
		}
		return nil
	})

	done := make(chan error, 1)
	go func() { done <- c.Run(ctx) }()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
	if c.Day != 3 {
		t.Errorf("Day = %d, want 3", c.Day)
	}
}
