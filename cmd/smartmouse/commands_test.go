package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	sloggger "github.com/smartmouse/smartmouse/cmd/smartmouse/log"
	"github.com/smartmouse/smartmouse/internal/config"
	"github.com/smartmouse/smartmouse/internal/mouse"
	"github.com/smartmouse/smartmouse/internal/mousedata"
)

func TestParsePoints(t *testing.T) {
	got, err := parsePoints([]string{"10", "20", "-5", "0"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []mouse.Point{{X: 10, Y: 20}, {X: -5, Y: 0}}
	if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("points = %v, want %v", got, want)
	}

	if _, err := parsePoints([]string{"1", "2", "3"}); err == nil {
		t.Error("expected an error for an odd coordinate count")
	}
	if _, err := parsePoints([]string{"1", "x"}); err == nil {
		t.Error("expected an error for a non numeric coordinate")
	}
}

func TestPrintSummary(t *testing.T) {
	var buf bytes.Buffer
	printSummary(&buf, mousedata.Summary{
		Classes: []mousedata.ClassCount{{Threshold: "12", Directions: map[string]int{"E": 3, "N": 1}}},
		Total:   4,
	})

	out := buf.String()
	if !strings.Contains(out, "threshold") || !strings.Contains(out, "SE") {
		t.Errorf("missing header in %q", out)
	}
	if !strings.HasSuffix(out, "total: 4\n") {
		t.Errorf("missing total in %q", out)
	}
}

func TestRunDataParseAndStats(t *testing.T) {
	dir := t.TempDir()
	rec := filepath.Join(dir, "session.json")
	text := `{"130": [{"distance": 100, "angle_deg": 0, "offsets": [[50, 50], [0, 0]]}]}`
	if err := os.WriteFile(rec, []byte(text), 0644); err != nil {
		t.Fatal(err)
	}

	var cfg config.Cfg
	cfg.Validate()
	out := filepath.Join(dir, "mousedata.json")
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	if err := runData(context.Background(), cfg, logger, []string{"parse", "-out", out, "-clean", rec}); err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	data, err := mousedata.ReadDataset(out)
	if err != nil {
		t.Fatal(err)
	}
	if n := len(data["130"]["E"]); n != 1 {
		t.Errorf("expected one sample under 130/E, got %d", n)
	}

	if err := runData(context.Background(), cfg, logger, []string{"stats", "-in", out}); err != nil {
		t.Errorf("stats failed: %v", err)
	}
}

func TestRunDataUsage(t *testing.T) {
	var cfg config.Cfg
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	for _, args := range [][]string{nil, {"bogus"}, {"parse"}} {
		if err := runData(context.Background(), cfg, logger, args); !errors.Is(err, errUsage) {
			t.Errorf("runData(%v) = %v, want usage error", args, err)
		}
	}
}

func TestRunPlanStdoutIsOnlyJSON(t *testing.T) {
	dir := t.TempDir()
	var cfg config.Cfg
	cfg.MouseDataPath = filepath.Join(dir, "missing.json")
	cfg.Validate()

	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	stdout := os.Stdout
	os.Stdout = w
	defer func() { os.Stdout = stdout }()

	// the missing dataset makes newMouse log a warning
	logger, err := sloggger.NewLogger(true, dir, "plan")
	if err != nil {
		t.Fatal(err)
	}
	defer sloggger.FlushAndClose()

	runErr := runPlan(os.Stdout, cfg, logger, []string{"0", "0", "100", "0"})
	w.Close()
	os.Stdout = stdout
	if runErr != nil {
		t.Fatalf("plan failed: %v", runErr)
	}

	out, err := io.ReadAll(r)
	if err != nil {
		t.Fatal(err)
	}
	var plan struct {
		To        mouse.Point   `json:"to"`
		Waypoints []mouse.Point `json:"waypoints"`
	}
	if err := json.Unmarshal(out, &plan); err != nil {
		t.Fatalf("stdout is not a JSON document: %v\n%s", err, out)
	}
	if plan.To != (mouse.Point{X: 100, Y: 0}) || len(plan.Waypoints) == 0 || plan.Waypoints[len(plan.Waypoints)-1] != plan.To {
		t.Errorf("unexpected plan %+v", plan)
	}
}

func TestRunDataParseTraces(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "traces.json")
	text := `[[{"x": 0, "y": 0}, {"x": 40, "y": 3}, {"x": 100, "y": 0}]]`
	if err := os.WriteFile(in, []byte(text), 0644); err != nil {
		t.Fatal(err)
	}

	var cfg config.Cfg
	cfg.Validate()
	out := filepath.Join(dir, "mousedata.json")
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	if err := runData(context.Background(), cfg, logger, []string{"parse", "-traces", "-out", out, in}); err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	data, err := mousedata.ReadDataset(out)
	if err != nil {
		t.Fatal(err)
	}
	if n := len(data["130"]["E"]); n != 1 {
		t.Errorf("expected the trace under 130/E, got %d samples", n)
	}
}
