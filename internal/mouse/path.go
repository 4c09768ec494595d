package mouse

// buildWaypoints lays a recorded offset path over the straight line from
// current to target. The recorded net drift is subtracted from the straight
// displacement first, so adding the cumulative offsets back still ends on the
// target. The exact target is always the last waypoint.
func buildWaypoints(current, target Point, offsets OffsetPath, found bool) []Point {
	if !found || offsets.Len() == 0 {
		return []Point{target}
	}

	n := offsets.Len()
	totalX, totalY := offsets.Total()
	adjX := float64(target.X-current.X) - totalX
	adjY := float64(target.Y-current.Y) - totalY
	sx, sy := float64(current.X), float64(current.Y)

	path := make([]Point, 0, n+1)
	var cumX, cumY float64
	for i := 0; i < n; i++ {
		t := float64(i+1) / float64(n)
		cumX += offsets.X[i]
		cumY += offsets.Y[i]
		path = append(path, roundPoint(sx+adjX*t+cumX, sy+adjY*t+cumY))
	}

	return append(path, target)
}
