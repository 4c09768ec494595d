package mouse

import "time"

// Host is the cursor surface a move drives. Coordinates are canvas-relative.
type Host interface {
	// CursorPosition returns where the cursor actually is right now.
	CursorPosition() Point
	// Reposition jumps the cursor to p with no animation of its own.
	Reposition(p Point)
	CanvasBounds() (width, height int)
	// SessionRunning reports whether the automation session driving the host
	// is still active.
	SessionRunning() bool
	// ExteriorPoint returns a point outside the canvas.
	ExteriorPoint() Point
}

// Sleeper paces micro-steps. Sleep must not return early on cancellation: a
// move that started always runs to its last micro-step.
type Sleeper interface {
	Sleep(d time.Duration)
}

// SleeperFunc adapts a function to Sleeper.
type SleeperFunc func(d time.Duration)

func (f SleeperFunc) Sleep(d time.Duration) { f(d) }

type wallSleeper struct{}

func (wallSleeper) Sleep(d time.Duration) {
	if d > 0 {
		time.Sleep(d)
	}
}
