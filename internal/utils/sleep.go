package utils

import (
	"math"
	"time"
)

// Source is the uniform random source pauses are drawn from.
type Source interface {
	Float64() float64
}

// normal draws a standard normal sample with the Box-Muller transform.
func normal(src Source) float64 {
	u1 := src.Float64()
	for u1 <= 0 {
		u1 = src.Float64()
	}
	u2 := src.Float64()
	return math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)
}

// sampleGamma returns a sample from the Gamma(shape, scale) distribution using
// the Marsaglia-Tsang squeeze method. shape must be >= 1.
func sampleGamma(src Source, shape, scale float64) float64 {
	d := shape - 1.0/3.0
	c := 1.0 / math.Sqrt(9.0*d)
	for {
		x := normal(src)
		v := 1.0 + c*x
		if v <= 0 {
			continue
		}
		v = v * v * v
		x2 := x * x
		u := src.Float64()
		if u < 1.0-0.0331*(x2*x2) {
			return d * v * scale
		}
		if u > 0 && math.Log(u) < 0.5*x2+d*(1.0-v+math.Log(v)) {
			return d * v * scale
		}
	}
}

// RandGammaDuration returns a right-skewed pause with the requested mean in
// milliseconds, clamped to [minMs, maxMs]. Higher shape gives a narrower spread.
func RandGammaDuration(src Source, meanMs, shape, minMs, maxMs float64) time.Duration {
	sample := sampleGamma(src, shape, meanMs/shape)
	if sample < minMs {
		sample = minMs
	}
	if maxMs > 0 && sample > maxMs {
		sample = maxMs
	}
	return time.Duration(sample * float64(time.Millisecond))
}
