package mouse

import "math"

// Easing maps normalized progress in [0,1] to eased progress in [0,1].
type Easing uint8

const (
	Linear Easing = iota
	EaseOutCubic
	EaseInOutCubic
)

func (e Easing) Apply(t float64) float64 {
	switch e {
	case EaseOutCubic:
		return 1 - math.Pow(1-t, 3)
	case EaseInOutCubic:
		if t < 0.5 {
			return 4 * t * t * t
		}
		return 1 - math.Pow(-2*t+2, 3)/2
	default:
		return t
	}
}

func (e Easing) String() string {
	switch e {
	case Linear:
		return "linear"
	case EaseOutCubic:
		return "easeOutCubic"
	case EaseInOutCubic:
		return "easeInOutCubic"
	}
	return "unknown"
}

func (e Easing) MarshalText() ([]byte, error) {
	return []byte(e.String()), nil
}
