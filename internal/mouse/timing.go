package mouse

import "time"

// Distance tiers shared by easing choice and base speed.
const (
	shortTierMax  = 100.0
	mediumTierMax = 250.0

	// speedVariance is the +/- fraction applied to each drawn base speed.
	speedVariance = 0.05
)

type tier int

const (
	tierShort tier = iota
	tierMedium
	tierLong
)

func tierFor(distance float64) tier {
	switch {
	case distance <= shortTierMax:
		return tierShort
	case distance <= mediumTierMax:
		return tierMedium
	}
	return tierLong
}

// WeightedEasing is a selection candidate; weights need not sum to one.
type WeightedEasing struct {
	Easing Easing
	Weight float64
}

var (
	shortEasings = []WeightedEasing{
		{EaseOutCubic, 0.4},
		{EaseInOutCubic, 0.2},
		{Linear, 0.1},
	}
	mediumEasings = []WeightedEasing{
		{EaseOutCubic, 0.3},
		{EaseInOutCubic, 0.2},
		{Linear, 0.1},
	}
	longEasings = []WeightedEasing{
		{EaseInOutCubic, 0.2},
		{Linear, 0.1},
	}

	// seconds per waypoint segment, [min, max) per tier
	baseSpeedRanges = [...][2]float64{
		tierShort:  {0.005, 0.007},
		tierMedium: {0.007, 0.010},
		tierLong:   {0.010, 0.013},
	}
)

// EasingCandidates returns the weighted list for a move distance.
func EasingCandidates(distance float64) []WeightedEasing {
	switch tierFor(distance) {
	case tierShort:
		return shortEasings
	case tierMedium:
		return mediumEasings
	}
	return longEasings
}

// SelectEasing draws one easing for the whole move, proportionally to weight.
func SelectEasing(distance float64, rng Rand) Easing {
	return pickWeighted(EasingCandidates(distance), rng)
}

func pickWeighted(candidates []WeightedEasing, rng Rand) Easing {
	var total float64
	for _, c := range candidates {
		total += c.Weight
	}

	r := rng.Float64() * total
	for _, c := range candidates {
		r -= c.Weight
		if r <= 0 {
			return c.Easing
		}
	}
	// float rounding can leave a sliver above zero
	return candidates[len(candidates)-1].Easing
}

// baseSpeed draws the per-segment base time in seconds for a move distance.
func baseSpeed(distance float64, rng Rand) float64 {
	r := baseSpeedRanges[tierFor(distance)]
	return uniform(rng, r[0], r[1])
}

func withHumanVariance(speed float64, rng Rand) float64 {
	delta := speed * speedVariance
	return speed + uniform(rng, -delta, delta)
}

// segmentDuration times segment i of n. A single-segment move is instant; longer
// ones stay near the drawn speed, nudged by the easing curve.
func segmentDuration(i, n int, distance float64, easing Easing, rng Rand) time.Duration {
	if n <= 1 {
		return 0
	}
	t := float64(i) / float64(n-1)
	varied := withHumanVariance(baseSpeed(distance, rng), rng)
	seconds := varied * (0.8 + 0.1*easing.Apply(t))
	return time.Duration(seconds * float64(time.Second))
}

// segmentDurations times every segment of an n-waypoint plan.
func segmentDurations(n int, distance float64, easing Easing, rng Rand) []time.Duration {
	out := make([]time.Duration, n)
	for i := range out {
		out[i] = segmentDuration(i, n, distance, easing, rng)
	}
	return out
}
