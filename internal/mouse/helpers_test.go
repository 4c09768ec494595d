package mouse

import "time"

// fixedRand always returns the same draw.
type fixedRand struct {
	v float64
}

func (r fixedRand) Float64() float64 { return r.v }
func (r fixedRand) Intn(n int) int   { return int(r.v * float64(n)) }

type fakeHost struct {
	pos      Point
	width    int
	height   int
	stopped  bool
	exterior Point
	// drift is added to every requested position
	drift Point
	moves []Point
}

func newFakeHost(pos Point) *fakeHost {
	return &fakeHost{pos: pos, width: 800, height: 600, exterior: Point{X: -1, Y: -1}}
}

func (h *fakeHost) CursorPosition() Point    { return h.pos }
func (h *fakeHost) CanvasBounds() (int, int) { return h.width, h.height }
func (h *fakeHost) SessionRunning() bool     { return !h.stopped }
func (h *fakeHost) ExteriorPoint() Point     { return h.exterior }
func (h *fakeHost) Reposition(p Point) {
	h.pos = p.Add(h.drift)
	h.moves = append(h.moves, p)
}

type recordingSleeper struct {
	pauses []time.Duration
}

func (s *recordingSleeper) Sleep(d time.Duration) {
	s.pauses = append(s.pauses, d)
}

func (s *recordingSleeper) total() time.Duration {
	var t time.Duration
	for _, d := range s.pauses {
		t += d
	}
	return t
}

func mustOffsets(data OffsetData) *OffsetRepository {
	repo, err := NewOffsetRepository(data)
	if err != nil {
		panic(err)
	}
	return repo
}
