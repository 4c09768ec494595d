package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/smartmouse/smartmouse/internal/config"
	"github.com/smartmouse/smartmouse/internal/host"
	"github.com/smartmouse/smartmouse/internal/mouse"
	"github.com/smartmouse/smartmouse/internal/mousedata"
	"github.com/smartmouse/smartmouse/internal/utils"
	"golang.org/x/sync/errgroup"
)

func runMove(ctx context.Context, cfg config.Cfg, logger *slog.Logger, args []string) error {
	fs := flag.NewFlagSet("move", flag.ContinueOnError)
	size := fs.String("size", "", "treat each target as the top-left corner of a WxH area")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}

	targets, err := parsePoints(fs.Args())
	if err != nil || len(targets) == 0 {
		return fmt.Errorf("%w: move expects X Y pairs", errUsage)
	}
	var width, height int
	if *size != "" {
		if _, err := fmt.Sscanf(*size, "%dx%d", &width, &height); err != nil {
			return fmt.Errorf("%w: size must look like 40x20", errUsage)
		}
	}

	m, rng := newMouse(cfg, logger)
	h, err := host.New(ctx, cfg.Host, logger)
	if err != nil {
		return fmt.Errorf("error opening %s host: %w", cfg.Host.Kind, err)
	}
	defer h.Close()
	h = host.WithSession(ctx, h)

	for i, target := range targets {
		if i > 0 {
			pause := utils.RandGammaDuration(rng, cfg.Replay.PauseMeanMs, cfg.Replay.PauseShape, cfg.Replay.PauseMinMs, cfg.Replay.PauseMaxMs)
			select {
			case <-ctx.Done():
			case <-time.After(pause):
			}
		}

		var dest mouse.Destination = target
		if width > 0 || height > 0 {
			dest = mouse.Rect{X: target.X, Y: target.Y, Width: width, Height: height}
		}
		if !m.MoveToDestination(dest, h) {
			if !h.SessionRunning() {
				logger.Info("Session stopped, skipping remaining targets", slog.Int("remaining", len(targets)-i))
				return nil
			}
			logger.Warn("Cursor did not settle on target", slog.Any("target", target), slog.Any("position", h.CursorPosition()))
		}
	}
	return nil
}

func runPlan(w io.Writer, cfg config.Cfg, logger *slog.Logger, args []string) error {
	points, err := parsePoints(args)
	if err != nil || len(points) != 2 {
		return fmt.Errorf("%w: plan expects X0 Y0 X1 Y1", errUsage)
	}

	m, _ := newMouse(cfg, logger)
	plan := m.ComputeTrajectory(points[0], points[1])

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(plan)
}

func runAgent(ctx context.Context, cfg config.Cfg, logger *slog.Logger) error {
	if cfg.Host.Kind == host.KindRemote {
		return errors.New("agent needs a local host, not a remote one")
	}
	h, err := host.New(ctx, cfg.Host, logger)
	if err != nil {
		return fmt.Errorf("error opening %s host: %w", cfg.Host.Kind, err)
	}
	defer h.Close()

	srv := &http.Server{
		Addr:    cfg.Agent.ListenAddr,
		Handler: host.NewAgent(host.WithSession(ctx, h), logger).Handler(),
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(wrapWithRecover(logger, func() error {
		logger.Info("Agent listening", slog.String("addr", srv.Addr), slog.String("host", cfg.Host.Kind))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("error serving agent: %w", err)
		}
		return nil
	}))
	g.Go(wrapWithRecover(logger, func() error {
		<-ctx.Done()
		logger.Info("Agent shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}))

	return g.Wait()
}

func runData(ctx context.Context, cfg config.Cfg, logger *slog.Logger, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: data expects parse, clean or stats", errUsage)
	}

	fs := flag.NewFlagSet("data "+args[0], flag.ContinueOnError)
	in := fs.String("in", cfg.MouseDataPath, "dataset to read")
	out := fs.String("out", cfg.MouseDataPath, "dataset to write")
	clean := fs.Bool("clean", false, "drop out-of-range samples before writing")
	traces := fs.Bool("traces", false, "inputs are raw position traces instead of recorder sessions")
	if err := fs.Parse(args[1:]); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}

	switch args[0] {
	case "parse":
		if fs.NArg() == 0 {
			return fmt.Errorf("%w: data parse expects recording files", errUsage)
		}
		load := mousedata.LoadRecordings
		if *traces {
			load = mousedata.LoadTraces
		}
		recs, err := load(ctx, fs.Args()...)
		if err != nil {
			return err
		}
		data := mousedata.Bin(recs)
		if *clean {
			var report []mousedata.Removal
			data, report = mousedata.Clean(data)
			printRemovals(os.Stdout, report)
		}
		if err := mousedata.WriteDataset(*out, data); err != nil {
			return err
		}
		logger.Info("Dataset written", slog.String("path", *out), slog.Int("samples", mousedata.Count(data).Total))
		return nil
	case "clean":
		data, err := mousedata.ReadDataset(*in)
		if err != nil {
			return err
		}
		cleaned, report := mousedata.Clean(data)
		printRemovals(os.Stdout, report)
		if err := mousedata.WriteDataset(*out, cleaned); err != nil {
			return err
		}
		logger.Info("Dataset cleaned", slog.String("path", *out), slog.Int("samples", mousedata.Count(cleaned).Total))
		return nil
	case "stats":
		data, err := mousedata.ReadDataset(*in)
		if err != nil {
			return err
		}
		printSummary(os.Stdout, mousedata.Count(data))
		return nil
	}
	return fmt.Errorf("%w: unknown data command %q", errUsage, args[0])
}

// runConfig writes the loaded config back with every default filled in.
func runConfig(cfg config.Cfg, logger *slog.Logger) error {
	path := filepath.Join(config.DefaultDir, config.DefaultFile)
	if err := config.Save(path, cfg); err != nil {
		return err
	}
	logger.Info("Config written", slog.String("path", path), slog.String("version", config.Version))
	return nil
}

func parsePoints(args []string) ([]mouse.Point, error) {
	if len(args)%2 != 0 {
		return nil, fmt.Errorf("odd number of coordinates: %d", len(args))
	}
	points := make([]mouse.Point, 0, len(args)/2)
	for i := 0; i < len(args); i += 2 {
		x, err := strconv.Atoi(args[i])
		if err != nil {
			return nil, err
		}
		y, err := strconv.Atoi(args[i+1])
		if err != nil {
			return nil, err
		}
		points = append(points, mouse.Point{X: x, Y: y})
	}
	return points, nil
}

func printRemovals(w io.Writer, report []mousedata.Removal) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "threshold\tdirection\tkept\tremoved")
	for _, r := range report {
		if r.Removed == 0 {
			continue
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\n", r.Threshold, r.Direction, r.Kept, r.Removed)
	}
	tw.Flush()
}

func printSummary(w io.Writer, s mousedata.Summary) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprint(tw, "threshold")
	for _, d := range mouse.Directions {
		fmt.Fprintf(tw, "\t%s", d)
	}
	fmt.Fprintln(tw)
	for _, c := range s.Classes {
		fmt.Fprint(tw, c.Threshold)
		for _, d := range mouse.Directions {
			fmt.Fprintf(tw, "\t%d", c.Directions[d.String()])
		}
		fmt.Fprintln(tw)
	}
	tw.Flush()
	fmt.Fprintf(w, "total: %d\n", s.Total)
}
