package mouse

import (
	"math"
	"time"
)

const (
	minSubdivisions = 5
	// pixelsPerSubdivision sets micro-step density along a segment.
	pixelsPerSubdivision = 2.5
	// arrivalTolerance absorbs integer rounding at the last micro-step.
	arrivalTolerance = 2.0
)

// runPlan drives host through every waypoint. Each segment starts from the
// cursor position the host reports, not the previous planned waypoint, so host
// side drift is absorbed instead of accumulated.
func runPlan(host Host, sleeper Sleeper, plan MovementPlan) (steps int) {
	for i, wp := range plan.Waypoints {
		var d time.Duration
		if i < len(plan.Durations) {
			d = plan.Durations[i]
		}
		steps += moveSmoothly(host, sleeper, host.CursorPosition(), wp, d, plan.Easing)
	}
	return steps
}

// moveSmoothly splits one segment into eased micro-steps spread over total.
func moveSmoothly(host Host, sleeper Sleeper, start, end Point, total time.Duration, easing Easing) int {
	subdivisions := int(math.Max(minSubdivisions, math.Floor(start.Dist(end)/pixelsPerSubdivision)))
	pause := total / time.Duration(subdivisions)

	sx, sy := float64(start.X), float64(start.Y)
	dx, dy := float64(end.X-start.X), float64(end.Y-start.Y)

	for k := 1; k <= subdivisions; k++ {
		eased := easing.Apply(float64(k) / float64(subdivisions))
		host.Reposition(roundPoint(sx+dx*eased, sy+dy*eased))
		sleeper.Sleep(pause)
	}
	return subdivisions
}

func arrived(host Host, target Point) bool {
	return host.CursorPosition().Dist(target) < arrivalTolerance
}
