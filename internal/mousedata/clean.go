package mousedata

import (
	"math"

	"github.com/smartmouse/smartmouse/internal/mouse"
)

// Removal records how many samples Clean dropped from one class.
type Removal struct {
	Threshold string
	Direction string
	Kept      int
	Removed   int
}

// Clean drops samples that cannot serve their class: malformed pairs, and
// pairs whose net displacement falls outside the threshold's (low, high]
// range. Unknown thresholds are dropped whole.
func Clean(data mouse.OffsetData) (mouse.OffsetData, []Removal) {
	out := make(mouse.OffsetData, len(data))
	var report []Removal

	for _, bucket := range mouse.Thresholds {
		key := bucket.String()
		byDirection, ok := data[key]
		if !ok {
			continue
		}
		low, high := bucket.Range()

		cleaned := make(map[string][][][]float64, len(byDirection))
		for _, d := range mouse.Directions {
			samples, ok := byDirection[d.String()]
			if !ok {
				continue
			}
			valid := [][][]float64{}
			for _, s := range samples {
				if !wellFormed(s) {
					continue
				}
				if dist := netDistance(s); dist > low && dist <= high {
					valid = append(valid, s)
				}
			}
			cleaned[d.String()] = valid
			report = append(report, Removal{
				Threshold: key,
				Direction: d.String(),
				Kept:      len(valid),
				Removed:   len(samples) - len(valid),
			})
		}
		out[key] = cleaned
	}

	return out, report
}

func wellFormed(sample [][]float64) bool {
	return len(sample) == 2 && len(sample[0]) == len(sample[1]) && len(sample[0]) > 0
}

func netDistance(sample [][]float64) float64 {
	var x, y float64
	for i := range sample[0] {
		x += sample[0][i]
		y += sample[1][i]
	}
	return math.Hypot(x, y)
}
