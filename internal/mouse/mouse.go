// Package mouse synthesizes human-looking cursor trajectories from recorded
// offset paths and drives a Host along them.
package mouse

import (
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// MovementPlan is a single move: the waypoints to pass through, the easing
// used for the whole move and how long each waypoint segment takes. The last
// waypoint is always the exact target.
type MovementPlan struct {
	ID        uuid.UUID       `json:"id"`
	From      Point           `json:"from"`
	To        Point           `json:"to"`
	Distance  float64         `json:"distance"`
	Direction Direction       `json:"direction"`
	Bucket    Bucket          `json:"bucket"`
	Recorded  bool            `json:"recorded"`
	Waypoints []Point         `json:"waypoints"`
	Easing    Easing          `json:"easing"`
	Durations []time.Duration `json:"durations"`
}

// TotalDuration is the time the plan spends pacing micro-steps.
func (p MovementPlan) TotalDuration() time.Duration {
	var total time.Duration
	for _, d := range p.Durations {
		total += d
	}
	return total
}

// Mouse plans and executes moves. A Mouse may be shared between goroutines as
// long as its Rand is safe for concurrent use, which the default one is; each
// move still blocks its caller until the last micro-step.
type Mouse struct {
	offsets *OffsetRepository
	rng     Rand
	sleeper Sleeper
	logger  *slog.Logger
}

type Option func(*Mouse)

func WithRand(rng Rand) Option {
	return func(m *Mouse) { m.rng = rng }
}

func WithSleeper(s Sleeper) Option {
	return func(m *Mouse) { m.sleeper = s }
}

func WithLogger(logger *slog.Logger) Option {
	return func(m *Mouse) { m.logger = logger }
}

// New builds a Mouse over the given offsets; nil offsets behave as an empty
// repository.
func New(offsets *OffsetRepository, opts ...Option) *Mouse {
	if offsets == nil {
		offsets = EmptyOffsets()
	}
	m := &Mouse{
		offsets: offsets,
		sleeper: wallSleeper{},
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.rng == nil {
		m.rng = NewRand(0)
	}
	return m
}

// ComputeTrajectory plans a move without touching any host.
func (m *Mouse) ComputeTrajectory(current, target Point) MovementPlan {
	distance := current.Dist(target)
	dir := DirectionBetween(current, target)
	bucket := BucketFor(distance)

	offsets, found := m.offsets.Lookup(bucket, dir, m.rng)
	waypoints := buildWaypoints(current, target, offsets, found)
	easing := SelectEasing(distance, m.rng)

	return MovementPlan{
		ID:        uuid.New(),
		From:      current,
		To:        target,
		Distance:  distance,
		Direction: dir,
		Bucket:    bucket,
		Recorded:  found,
		Waypoints: waypoints,
		Easing:    easing,
		Durations: segmentDurations(len(waypoints), distance, easing, m.rng),
	}
}

// ExecutePlan walks the plan on host and reports whether the cursor ended
// within two pixels of the target.
func (m *Mouse) ExecutePlan(plan MovementPlan, host Host) bool {
	steps := runPlan(host, m.sleeper, plan)
	ok := arrived(host, plan.To)
	m.logger.Debug("Movement finished",
		slog.String("id", plan.ID.String()),
		slog.Int("microSteps", steps),
		slog.Bool("onTarget", ok),
		slog.Any("position", host.CursorPosition()))
	return ok
}

// MoveTo moves the cursor from current to target. It returns false when the
// session has already stopped; once a move starts it always runs to the end.
func (m *Mouse) MoveTo(current, target Point, host Host) bool {
	if !host.SessionRunning() {
		m.logger.Debug("Session not running, skipping movement", slog.Any("target", target))
		return false
	}
	if current == target {
		return true
	}

	w, h := host.CanvasBounds()
	if !current.Within(w, h) && !target.Within(w, h) {
		m.logger.Info("Cursor and target outside canvas, hopping directly",
			slog.Any("current", current),
			slog.Any("target", target))
		host.Reposition(host.ExteriorPoint())
		host.Reposition(target)
		return true
	}

	plan := m.ComputeTrajectory(current, target)
	m.logger.Debug("Moving cursor",
		slog.String("id", plan.ID.String()),
		slog.Any("current", current),
		slog.Any("target", target),
		slog.Float64("distance", plan.Distance),
		slog.String("direction", plan.Direction.String()),
		slog.Bool("recorded", plan.Recorded),
		slog.Int("waypoints", len(plan.Waypoints)),
		slog.String("easing", plan.Easing.String()),
		slog.Duration("duration", plan.TotalDuration()))

	return m.ExecutePlan(plan, host)
}

// MoveToDestination resolves dest and moves there from the host's current
// cursor position.
func (m *Mouse) MoveToDestination(dest Destination, host Host) bool {
	return m.MoveTo(host.CursorPosition(), dest.SuitablePoint(m.rng), host)
}

// Offsets exposes the repository the Mouse samples from.
func (m *Mouse) Offsets() *OffsetRepository {
	return m.offsets
}
