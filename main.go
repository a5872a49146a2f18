package main

import (
	"flag"
	"log/slog"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/pkg/profile"

	"github.com/pthm-cable/spacemadness/client"
	"github.com/pthm-cable/spacemadness/config"
	"github.com/pthm-cable/spacemadness/game"
	"github.com/pthm-cable/spacemadness/telemetry"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot (overrides config)")
	seed := flag.Int64("seed", 0, "Tile scatter seed (0 = use config)")
	maxTicks := flag.Uint64("max-ticks", 0, "Stop after N ticks (0 = unlimited)")
	profileMode := flag.String("profile", "", "Profile the run: cpu or mem")

	flag.Parse()

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()
	if *seed != 0 {
		cfg.Scene.Seed = *seed
	}
	if *outputDir != "" {
		cfg.Telemetry.OutputDir = *outputDir
	}

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.Derived.LogLevel}))
	slog.SetDefault(logger)

	switch *profileMode {
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.Quiet).Stop()
	case "mem":
		defer profile.Start(profile.MemProfile, profile.ProfilePath("."), profile.Quiet).Stop()
	case "":
	default:
		slog.Error("unknown profile mode", "profile", *profileMode)
		os.Exit(1)
	}

	output, err := telemetry.NewOutputManager(cfg.Telemetry.OutputDir)
	if err != nil {
		slog.Error("failed to create output directory", "error", err)
		os.Exit(1)
	}
	if output != nil {
		defer output.Close()
		if err := output.WriteConfig(cfg); err != nil {
			slog.Error("failed to write config snapshot", "error", err)
		}
	}

	app, err := game.New(cfg)
	if err != nil {
		slog.Error("failed to create simulation", "error", err)
		os.Exit(1)
	}
	app.SetOutput(output)

	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), cfg.Screen.Title)
	defer rl.CloseWindow()
	// Escape is a game key.
	rl.SetExitKey(0)
	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))
	if cfg.Screen.Fullscreen {
		rl.ToggleFullscreen()
	}

	c, err := client.New(app)
	if err != nil {
		slog.Error("failed to start", "error", err)
		os.Exit(1)
	}
	defer c.Unload()

	slog.Info("starting simulation",
		"run_id", output.RunID(),
		"seed", cfg.Scene.Seed,
		"ticks_per_second", cfg.Sim.TicksPerSecond,
		"max_ticks_per_frame", cfg.Sim.MaxTicksPerFrame,
		"max_ticks", *maxTicks,
	)

	c.Run(*maxTicks)
}
