package mousedata

import "github.com/smartmouse/smartmouse/internal/mouse"

// ClassCount is the number of samples stored for one threshold, per direction.
type ClassCount struct {
	Threshold  string
	Directions map[string]int
}

// Summary counts samples per class, in ascending threshold order.
type Summary struct {
	Classes []ClassCount
	Total   int
}

func Count(data mouse.OffsetData) Summary {
	var s Summary
	for _, bucket := range mouse.Thresholds {
		byDirection, ok := data[bucket.String()]
		if !ok {
			continue
		}
		cc := ClassCount{Threshold: bucket.String(), Directions: make(map[string]int, len(byDirection))}
		for dir, samples := range byDirection {
			cc.Directions[dir] = len(samples)
			s.Total += len(samples)
		}
		s.Classes = append(s.Classes, cc)
	}
	return s
}
