package mouse

import "math"

// Point is a cursor position in canvas pixels.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (p Point) Add(o Point) Point {
	return Point{X: p.X + o.X, Y: p.Y + o.Y}
}

func (p Point) Sub(o Point) Point {
	return Point{X: p.X - o.X, Y: p.Y - o.Y}
}

// Dist returns the Euclidean distance between two points.
func (p Point) Dist(o Point) float64 {
	return math.Hypot(float64(o.X-p.X), float64(o.Y-p.Y))
}

// Within reports whether p lies inside a w*h canvas anchored at the origin.
func (p Point) Within(w, h int) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < w && p.Y < h
}

// SuitablePoint makes a Point its own Destination.
func (p Point) SuitablePoint(Rand) Point {
	return p
}

// roundPoint converts sub-pixel coordinates to the nearest pixel.
func roundPoint(x, y float64) Point {
	return Point{X: int(math.Round(x)), Y: int(math.Round(y))}
}

// Rect is a destination region; moves land on a random pixel inside it.
type Rect struct {
	X, Y          int
	Width, Height int
}

// SuitablePoint picks a uniformly random pixel inside the rectangle. Degenerate
// rectangles resolve to their origin.
func (r Rect) SuitablePoint(rng Rand) Point {
	p := Point{X: r.X, Y: r.Y}
	if r.Width > 1 {
		p.X += rng.Intn(r.Width)
	}
	if r.Height > 1 {
		p.Y += rng.Intn(r.Height)
	}
	return p
}

// Destination resolves a region or point into the exact point a move targets.
type Destination interface {
	SuitablePoint(rng Rand) Point
}
