package host

import (
	"sync"

	"github.com/smartmouse/smartmouse/internal/mouse"
)

// Virtual is an in-memory cursor. It backs dry runs, the websocket agent's
// default surface and tests. Safe for concurrent use.
type Virtual struct {
	mu      sync.Mutex
	pos     mouse.Point
	width   int
	height  int
	stopped bool
	trace   []mouse.Point
	record  bool
}

func NewVirtual(width, height int) *Virtual {
	return &Virtual{width: width, height: height}
}

// Record toggles keeping every reposition in the trace.
func (v *Virtual) Record(on bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.record = on
}

func (v *Virtual) CursorPosition() mouse.Point {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.pos
}

func (v *Virtual) Reposition(p mouse.Point) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.pos = p
	if v.record {
		v.trace = append(v.trace, p)
	}
}

func (v *Virtual) CanvasBounds() (int, int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.width, v.height
}

func (v *Virtual) SessionRunning() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return !v.stopped
}

func (v *Virtual) ExteriorPoint() mouse.Point {
	return mouse.Point{X: -1, Y: -1}
}

// Stop ends the session; moves already running are unaffected.
func (v *Virtual) Stop() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.stopped = true
}

// Trace returns a copy of the recorded positions.
func (v *Virtual) Trace() []mouse.Point {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]mouse.Point(nil), v.trace...)
}

func (v *Virtual) Close() error {
	return nil
}
