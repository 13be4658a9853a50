// Interactive spring animation demo.
//
// Usage: go run ./cmd/springs [-config path] [-headless -max-ticks N]
package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/lissom-motion/lissom/config"
	"github.com/lissom-motion/lissom/demo"
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	outputDir := flag.String("output-dir", "", "Output directory for CSV telemetry and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N ticks (0 = unlimited; headless default 3600)")

	flag.Parse()

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	opts := demo.Options{
		Seed:      rngSeed,
		OutputDir: *outputDir,
	}

	if *headless {
		ticks := *maxTicks
		if ticks == 0 {
			ticks = 3600
		}

		d, err := demo.New(opts)
		if err != nil {
			slog.Error("failed to start demo", "error", err)
			os.Exit(1)
		}
		defer d.Close()

		slog.Info("starting headless run", "seed", rngSeed, "max_ticks", ticks)
		for d.Tick() < ticks {
			d.UpdateHeadless()
		}
		slog.Info("headless run finished", "tick", d.Tick())
		return
	}

	rl.InitWindow(int32(cfg.Demo.Width), int32(cfg.Demo.Height), "Lissom Springs")
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Demo.TargetFPS))

	d, err := demo.New(opts)
	if err != nil {
		slog.Error("failed to start demo", "error", err)
		os.Exit(1)
	}
	defer d.Close()

	for !rl.WindowShouldClose() {
		d.Update()
		d.Draw()

		if *maxTicks > 0 && d.Tick() >= *maxTicks {
			break
		}
	}
}
