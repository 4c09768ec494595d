package mouse

import "math"

// Direction is one of 8 compass sectors. The labels are dataset keys; they are
// kept exactly as the recorded data was binned, whatever the screen axes say.
type Direction uint8

const (
	East Direction = iota
	NorthEast
	North
	NorthWest
	West
	SouthWest
	South
	SouthEast
)

// Directions lists every sector in classification order, starting at East.
var Directions = [...]Direction{East, NorthEast, North, NorthWest, West, SouthWest, South, SouthEast}

var directionNames = [...]string{"E", "NE", "N", "NW", "W", "SW", "S", "SE"}

func (d Direction) String() string {
	if int(d) < len(directionNames) {
		return directionNames[d]
	}
	return "?"
}

func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// ParseDirection is the inverse of Direction.String.
func ParseDirection(s string) (Direction, bool) {
	for i, name := range directionNames {
		if name == s {
			return Direction(i), true
		}
	}
	return 0, false
}

// ClassifyAngle bins an angle in degrees into a sector. E covers
// [337.5,360) and [0,22.5); each following 45 degree slice is half-open on its
// low end.
func ClassifyAngle(deg float64) Direction {
	a := math.Mod(deg+360, 360)
	if a < 0 {
		a += 360
	}
	if a >= 337.5 || a < 22.5 {
		return East
	}
	// a is in [22.5, 337.5) here, so the slice index is 1..7.
	return Direction(int((a-22.5)/45) + 1)
}

// DirectionBetween classifies the vector from a to b by atan2(dy, dx).
func DirectionBetween(a, b Point) Direction {
	dx := float64(b.X - a.X)
	dy := float64(b.Y - a.Y)
	return ClassifyAngle(math.Atan2(dy, dx) * 180 / math.Pi)
}
