package mousedata

import "github.com/smartmouse/smartmouse/internal/mouse"

// Bin sorts recordings into the (threshold, direction) layout of the offset
// dataset. Every threshold present in the input gets all 8 direction keys, so
// empty classes show up as empty lists rather than missing keys.
func Bin(recs Recordings) mouse.OffsetData {
	out := make(mouse.OffsetData, len(recs))
	for threshold, entries := range recs {
		byDirection := make(map[string][][][]float64, len(mouse.Directions))
		for _, d := range mouse.Directions {
			byDirection[d.String()] = [][][]float64{}
		}
		for _, e := range entries {
			dir := mouse.ClassifyAngle(e.AngleDeg).String()
			byDirection[dir] = append(byDirection[dir], e.Offsets)
		}
		out[threshold] = byDirection
	}
	return out
}
