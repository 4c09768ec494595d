package host

import (
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/smartmouse/smartmouse/internal/config"
	"github.com/smartmouse/smartmouse/internal/mouse"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func noSleep() mouse.Option {
	return mouse.WithSleeper(mouse.SleeperFunc(func(time.Duration) {}))
}

func TestVirtualTrace(t *testing.T) {
	v := NewVirtual(800, 600)
	v.Record(true)

	m := mouse.New(nil, mouse.WithRand(mouse.NewRand(1)), noSleep(), mouse.WithLogger(discardLogger()))
	if !m.MoveTo(v.CursorPosition(), mouse.Point{X: 300, Y: 200}, v) {
		t.Fatal("expected success")
	}

	trace := v.Trace()
	if len(trace) == 0 {
		t.Fatal("expected a recorded trace")
	}
	if last := trace[len(trace)-1]; last != (mouse.Point{X: 300, Y: 200}) {
		t.Errorf("trace ends at %v", last)
	}
}

func TestWithSession(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	h := WithSession(ctx, NewVirtual(800, 600))

	if !h.SessionRunning() {
		t.Fatal("session should run before cancel")
	}
	cancel()
	if h.SessionRunning() {
		t.Fatal("session should stop after cancel")
	}

	m := mouse.New(nil, noSleep(), mouse.WithLogger(discardLogger()))
	if m.MoveTo(mouse.Point{}, mouse.Point{X: 10, Y: 10}, h) {
		t.Error("move should be refused after the session stopped")
	}
}

func TestVirtualStop(t *testing.T) {
	v := NewVirtual(10, 10)
	v.Stop()
	if v.SessionRunning() {
		t.Error("stopped virtual host still running")
	}
}

func TestNewUnknownKind(t *testing.T) {
	if _, err := New(context.Background(), config.Host{Kind: "serial"}, discardLogger()); err == nil {
		t.Error("expected an error for an unknown host kind")
	}
}

func TestNewVirtual(t *testing.T) {
	h, err := New(context.Background(), config.Host{Kind: KindVirtual, CanvasWidth: 640, CanvasHeight: 480}, discardLogger())
	if err != nil {
		t.Fatal(err)
	}
	if w, hh := h.CanvasBounds(); w != 640 || hh != 480 {
		t.Errorf("bounds %dx%d", w, hh)
	}
}

func startAgent(t *testing.T, local mouse.Host) string {
	t.Helper()
	srv := httptest.NewServer(NewAgent(local, discardLogger()).Handler())
	t.Cleanup(srv.Close)
	return strings.TrimPrefix(srv.URL, "http://")
}

func TestRemoteRoundTrip(t *testing.T) {
	local := NewVirtual(1024, 768)
	local.Reposition(mouse.Point{X: 40, Y: 50})
	addr := startAgent(t, local)

	r, err := DialRemote(context.Background(), addr, discardLogger())
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	defer r.Close()

	if got := r.CursorPosition(); got != (mouse.Point{X: 40, Y: 50}) {
		t.Errorf("remote cursor %v", got)
	}
	if w, h := r.CanvasBounds(); w != 1024 || h != 768 {
		t.Errorf("remote bounds %dx%d", w, h)
	}
	if !r.SessionRunning() {
		t.Error("remote session should be running")
	}
	if got := r.ExteriorPoint(); got != local.ExteriorPoint() {
		t.Errorf("exterior %v", got)
	}

	r.Reposition(mouse.Point{X: 500, Y: 400})
	if got := local.CursorPosition(); got != (mouse.Point{X: 500, Y: 400}) {
		t.Errorf("agent cursor %v after remote move", got)
	}
}

func TestRemoteMoveTo(t *testing.T) {
	local := NewVirtual(1024, 768)
	local.Record(true)
	addr := startAgent(t, local)

	r, err := DialRemote(context.Background(), addr, discardLogger())
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	defer r.Close()

	m := mouse.New(nil, mouse.WithRand(mouse.NewRand(9)), noSleep(), mouse.WithLogger(discardLogger()))
	target := mouse.Point{X: 620, Y: 330}
	if !m.MoveTo(r.CursorPosition(), target, r) {
		t.Fatalf("remote move ended at %v", local.CursorPosition())
	}
	if len(local.Trace()) < 5 {
		t.Errorf("expected interpolated moves on the agent, got %d", len(local.Trace()))
	}
}

func TestRemoteStoppedAgent(t *testing.T) {
	local := NewVirtual(100, 100)
	local.Stop()
	addr := startAgent(t, local)

	r, err := DialRemote(context.Background(), addr, discardLogger())
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	defer r.Close()

	if r.SessionRunning() {
		t.Error("agent reports a stopped session")
	}
}

func TestRemoteClosed(t *testing.T) {
	addr := startAgent(t, NewVirtual(100, 100))
	r, err := DialRemote(context.Background(), addr, discardLogger())
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	r.Close()

	if r.SessionRunning() {
		t.Error("closed remote should not report a running session")
	}
}

func TestDialRemoteEmptyAddr(t *testing.T) {
	if _, err := DialRemote(context.Background(), "", discardLogger()); err == nil {
		t.Error("expected an error")
	}
}
