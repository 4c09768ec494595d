package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	sloggger "github.com/smartmouse/smartmouse/cmd/smartmouse/log"
	"github.com/smartmouse/smartmouse/internal/config"
	"github.com/smartmouse/smartmouse/internal/mouse"
	"github.com/smartmouse/smartmouse/internal/utils"
)

var (
	buildID   string
	buildTime string
)

const usage = `usage: smartmouse <command> [arguments]

commands:
  move [-size WxH] X Y [X Y ...]   move the configured host's cursor through the targets
  plan X0 Y0 X1 Y1                 print the movement plan between two points as JSON
  agent                            serve the configured host to remote controllers
  config                           write the config back with defaults filled in
  data parse [-out file] [-clean] [-traces] recording.json...
  data clean [-in file] [-out file]
  data stats [-in file]
`

var errUsage = errors.New("invalid arguments")

// wrapWithRecover wraps a function with panic recovery logic
func wrapWithRecover(logger *slog.Logger, f func() error) func() error {
	return func() error {
		defer func() {
			if r := recover(); r != nil {
				logger.Error(fmt.Sprintf("panic recovered: %v\nStacktrace: %s", r, debug.Stack()))
				sloggger.FlushLog()
			}
		}()
		return f()
	}
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	command, args := os.Args[1], os.Args[2:]

	if err := config.Load(); err != nil {
		utils.ShowDialog("Error loading configuration", err.Error())
		log.Fatalf("Error loading configuration: %s", err.Error())
	}
	cfg := config.Current()

	logger, err := sloggger.NewLogger(cfg.Debug.Log, cfg.LogSaveDirectory, command)
	if err != nil {
		log.Fatalf("Error starting logger: %s", err.Error())
	}
	defer sloggger.FlushAndClose()

	if buildID != "" {
		config.Version = buildID
	}
	logger.Debug("Starting smartmouse", slog.String("version", config.Version), slog.String("buildTime", buildTime))

	defer func() {
		if r := recover(); r != nil {
			logger.Error(fmt.Sprintf("fatal error detected, smartmouse will close: %v\n Stacktrace: %s", r, debug.Stack()))
			sloggger.FlushAndClose()
			os.Exit(1)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch command {
	case "move":
		err = runMove(ctx, cfg, logger, args)
	case "plan":
		err = runPlan(os.Stdout, cfg, logger, args)
	case "config":
		err = runConfig(cfg, logger)
	case "agent":
		err = runAgent(ctx, cfg, logger)
	case "data":
		err = runData(ctx, cfg, logger, args)
	default:
		err = fmt.Errorf("%w: unknown command %q", errUsage, command)
	}

	if err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprint(os.Stderr, usage)
		}
		logger.Error("Error running smartmouse", slog.String("command", command), slog.Any("error", err))
		sloggger.FlushAndClose()
		os.Exit(1)
	}
}

// newMouse loads the offset dataset and builds the mover. A broken dataset is
// logged and the mover falls back to whatever could be loaded.
func newMouse(cfg config.Cfg, logger *slog.Logger) (*mouse.Mouse, mouse.Rand) {
	offsets, err := mouse.LoadOffsets(cfg.MouseDataPath)
	if err != nil {
		logger.Warn("Offset dataset has problems", slog.String("path", cfg.MouseDataPath), slog.Any("error", err))
	}
	rng := mouse.NewRand(cfg.Seed)
	m := mouse.New(offsets, mouse.WithRand(rng), mouse.WithLogger(logger))
	logger.Debug("Offset dataset loaded", slog.Int("samples", m.Offsets().Len()))
	return m, rng
}
