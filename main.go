package main

import (
	"context"
	"flag"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/ahtohbi4/nature-simulator/camera"
	"github.com/ahtohbi4/nature-simulator/config"
	"github.com/ahtohbi4/nature-simulator/game"
	"github.com/ahtohbi4/nature-simulator/notify"
	"github.com/ahtohbi4/nature-simulator/renderer"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	terminal := flag.Bool("terminal", false, "Draw in the terminal instead of a window")
	logStats := flag.Bool("log-stats", false, "Output window stats via slog")
	logFile := flag.String("log-file", "", "Log destination in terminal mode (empty = discard)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxDays := flag.Int("max-days", 0, "Day of apocalypse (0 = use config)")
	dayDuration := flag.Duration("day-duration", -1, "Wall time per day (negative = use config)")

	flag.Parse()

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()
	if *maxDays > 0 {
		cfg.Clock.DayOfApocalypse = *maxDays
	}
	if *dayDuration >= 0 {
		cfg.Clock.DayDurationMS = int(dayDuration.Milliseconds())
	}
	cfg.ComputeDerived()

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	// The terminal owns stdout while drawing.
	var logOut io.Writer = os.Stdout
	if *terminal {
		logOut = io.Discard
		if *logFile != "" {
			f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
			if err != nil {
				slog.Error("failed to open log file", "error", err)
				os.Exit(1)
			}
			defer f.Close()
			logOut = f
		}
	}
	logger := slog.New(slog.NewJSONHandler(logOut, nil))
	slog.SetDefault(logger)

	opts := game.Options{
		Seed:      rngSeed,
		LogStats:  *logStats,
		OutputDir: *outputDir,
		Notes:     notify.LogSink{Logger: logger},
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var err error
	switch {
	case *headless:
		err = runHeadless(ctx, cfg, opts)
	case *terminal:
		err = runTerminal(ctx, cfg, opts)
	default:
		err = runWindow(ctx, cfg, opts)
	}
	if err != nil {
		slog.Error("simulation failed", "error", err)
		os.Exit(1)
	}
}

func finish(p *game.Planet) {
	s := p.Summary()
	slog.Info("summary", "run", s, "text", s.String())
	if err := p.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
}

// runHeadless ticks without drawing.
func runHeadless(ctx context.Context, cfg *config.Config, opts game.Options) error {
	p, err := game.New(cfg, opts)
	if err != nil {
		return err
	}
	defer finish(p)

	slog.Info("starting headless simulation",
		"seed", opts.Seed,
		"apocalypse", cfg.Clock.DayOfApocalypse,
		"day_duration", cfg.Derived.DayDuration,
	)
	if err := p.Start(); err != nil {
		return err
	}
	return p.Run(ctx)
}

// runTerminal draws every day onto a tcell screen. q, Esc and Ctrl-C stop
// the clock.
func runTerminal(ctx context.Context, cfg *config.Config, opts game.Options) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	worldH := cfg.Planet.Height + renderer.NotesHeight(cfg.Notifications.Capacity)
	canvas := renderer.NewTerminalCanvas(screen, cfg.Planet.Width, worldH)
	opts.Canvas = canvas
	opts.Present = screen.Show

	p, err := game.New(cfg, opts)
	if err != nil {
		return err
	}
	defer finish(p)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			if key, ok := ev.(*tcell.EventKey); ok {
				if key.Key() == tcell.KeyEscape || key.Key() == tcell.KeyCtrlC ||
					(key.Key() == tcell.KeyRune && key.Rune() == 'q') {
					p.Clock().Stop()
					cancel()
					return
				}
			}
		}
	}()

	if err := p.Start(); err != nil {
		return err
	}
	if err := p.Run(ctx); err != nil {
		return err
	}
	if ctx.Err() != nil {
		return nil
	}

	// Keep the last day on screen until the user leaves.
	<-ctx.Done()
	return nil
}

// readInput collects the viewport controls: wheel zooms, left-drag pans
// and R resets the view.
func readInput() camera.Input {
	in := camera.Input{
		Wheel: float64(rl.GetMouseWheelMove()),
		Reset: rl.IsKeyPressed(rl.KeyR),
	}
	if rl.IsMouseButtonDown(rl.MouseLeftButton) {
		d := rl.GetMouseDelta()
		in.DragX, in.DragY = float64(d.X), float64(d.Y)
	}
	return in
}

// runWindow draws into a raylib window at the target frame rate and
// ticks whenever a day's worth of wall time has passed.
func runWindow(ctx context.Context, cfg *config.Config, opts game.Options) error {
	scale := cfg.Screen.Scale
	worldH := cfg.Planet.Height + renderer.NotesHeight(cfg.Notifications.Capacity)
	w, h := cfg.Planet.Width*scale, worldH*scale

	rl.InitWindow(int32(w), int32(h), "Nature simulator - "+cfg.Planet.Name)
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	cam := camera.New(w, h, cfg.Planet.Width, worldH)
	canvas := renderer.NewRaylibCanvas(cam)

	p, err := game.New(cfg, opts)
	if err != nil {
		return err
	}
	defer finish(p)

	if err := p.Start(); err != nil {
		return err
	}

	clock := p.Clock()
	last := time.Now()
	for !rl.WindowShouldClose() && ctx.Err() == nil {
		cam.Apply(readInput())

		if !clock.Done() && time.Since(last) >= cfg.Derived.DayDuration {
			last = time.Now()
			if _, err := clock.Tick(); err != nil {
				return err
			}
			if clock.Done() {
				slog.Info("apocalypse_reached", "day", clock.Day)
			}
		}

		rl.BeginDrawing()
		p.Draw(canvas)
		rl.EndDrawing()
	}
	return nil
}
