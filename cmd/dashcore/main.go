package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"

	"github.com/ashgrove/dashcore/internal/config"
	"github.com/ashgrove/dashcore/internal/data"
	"github.com/ashgrove/dashcore/internal/game"
	"github.com/ashgrove/dashcore/internal/input"
	"github.com/ashgrove/dashcore/internal/movement"
	"github.com/ashgrove/dashcore/internal/scripting"
	"github.com/ashgrove/dashcore/internal/system"
	"github.com/ashgrove/dashcore/internal/telemetry"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// ── Startup display helpers ────────────────────────────────────────

func printBanner(levelName string) {
	fmt.Println()
	fmt.Println("\033[36;1m  ┌───────────────────────────────────────────┐\033[0m")
	fmt.Println("\033[36;1m  │\033[0m              dashcore  v0.1.0             \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  │\033[0m        headless action simulation         \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  └───────────────────────────────────────────┘\033[0m")
	fmt.Println()
	fmt.Printf("  \033[1mlevel:\033[0m %s\n\n", levelName)
}

func printSection(title string) {
	lineLen := 46 - len(title) - 1
	if lineLen < 3 {
		lineLen = 3
	}
	fmt.Printf("  \033[33m── %s %s\033[0m\n", title, strings.Repeat("─", lineLen))
}

func printStat(label string, value any) {
	valStr := fmt.Sprint(value)
	dotsLen := 42 - len(label) - len(valStr)
	if dotsLen < 3 {
		dotsLen = 3
	}
	fmt.Printf("  %s \033[90m%s\033[0m \033[32m%s\033[0m\n", label, strings.Repeat("·", dotsLen), valStr)
}

func printOK(msg string) {
	fmt.Printf("  \033[32m✓\033[0m %s\n", msg)
}

func printReady(msg string) {
	fmt.Printf("  \033[32m▶\033[0m %s\n", msg)
}

// ── Host ───────────────────────────────────────────────────────────

func run() (err error) {
	// 1. Load config
	cfgPath := "config/dashcore.toml"
	if p := os.Getenv("DASHCORE_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// 2. Init logger
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	// 3. Level and recorded input
	level, err := loadLevel(cfg.Level.Path)
	if err != nil {
		return fmt.Errorf("load level: %w", err)
	}
	printBanner(level.Name)

	printSection("data")
	printStat("spawn slots", len(level.Slots))
	printStat("hazards", len(level.Hazards))

	var intents movement.IntentSource
	var replay *input.Replay
	if cfg.Level.Input != "" {
		script, err := data.LoadInputScript(cfg.Level.Input)
		if err != nil {
			return fmt.Errorf("load input: %w", err)
		}
		replay = input.NewReplay(script)
		intents = replay
		printStat("input frames", script.TotalFrames())
	}

	// 4. Lua combat formulas
	var formulas system.Formulas
	if cfg.Scripting.Dir != "" {
		engine, err := scripting.NewEngine(cfg.Scripting.Dir, log.Named("lua"))
		if err != nil {
			return fmt.Errorf("scripting: %w", err)
		}
		defer engine.Close()
		formulas = engine
		printOK("lua formulas loaded")
	}
	fmt.Println()

	// 5. Build the game
	g, err := game.New(cfg, level, game.Deps{
		Input:    intents,
		Formulas: formulas,
		Log:      log,
	})
	if err != nil {
		return err
	}

	var rec *telemetry.Recorder
	if cfg.Telemetry.Path != "" {
		rec, err = telemetry.NewFileRecorder(cfg.Telemetry.Path, func(s *telemetry.Sample) {
			s.PlayerHealth = g.Player.Health().Current()
			s.PlayerAlive = g.Player.Alive()
			s.ActiveHostiles = g.Level.ActiveHostiles()
			s.OccupiedSlots = g.Level.OccupiedSlots()
			s.Kills = g.Level.Kills()
		}, cfg.Telemetry.Interval, g.Bus, log.Named("telemetry"))
		if err != nil {
			g.Close()
			return fmt.Errorf("telemetry: %w", err)
		}
		g.AddUpdatable(rec)
	}

	defer func() {
		g.Close()
		if rec != nil {
			err = errors.Join(err, rec.Close())
		}
	}()

	// 6. Run the loop and a signal watcher; either one stopping ends both.
	printSection("running")
	printReady(fmt.Sprintf("tick %s, realtime %t", cfg.Loop.TickRate, cfg.Loop.Realtime))
	fmt.Println()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	grp, gctx := errgroup.WithContext(ctx)
	grp.Go(func() error {
		defer cancel()
		return runLoop(gctx, g, cfg.Loop, log)
	})
	grp.Go(func() error {
		return watchSignals(gctx, cancel, log)
	})
	if err := grp.Wait(); err != nil {
		return err
	}

	printSection("result")
	printStat("outcome", g.Outcome())
	printStat("frames", g.Scheduler.Frame())
	printStat("kills", g.Level.Kills())
	printStat("player hp", fmt.Sprintf("%.0f/%.0f", g.Player.Health().Current(), g.Player.Health().Max()))
	if replay != nil {
		printStat("input frames used", replay.Played())
	}
	fmt.Println()
	return nil
}

// runLoop advances the game until the level is decided, MaxFrames is
// reached or ctx is cancelled.
func runLoop(ctx context.Context, g *game.Game, cfg config.LoopConfig, log *zap.Logger) error {
	var tick <-chan time.Time
	if cfg.Realtime {
		ticker := time.NewTicker(cfg.TickRate)
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		if tick != nil {
			select {
			case <-ctx.Done():
				return nil
			case <-tick:
			}
		} else if ctx.Err() != nil {
			return nil
		}

		g.Advance(cfg.TickRate)

		if o := g.Outcome(); o != game.Running {
			log.Info("level decided", zap.Stringer("outcome", o), zap.Uint64("frame", g.Scheduler.Frame()))
			return nil
		}
		if cfg.MaxFrames > 0 && g.Scheduler.Frame() >= cfg.MaxFrames {
			log.Info("frame limit reached", zap.Uint64("frames", cfg.MaxFrames))
			return nil
		}
	}
}

func watchSignals(ctx context.Context, cancel context.CancelFunc, log *zap.Logger) error {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case sig := <-sigCh:
		log.Info("shutdown signal received", zap.String("signal", sig.String()))
		cancel()
	case <-ctx.Done():
	}
	return nil
}

func loadLevel(path string) (*data.Level, error) {
	if path == "" {
		return data.DefaultLevel()
	}
	return data.LoadLevel(path)
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
