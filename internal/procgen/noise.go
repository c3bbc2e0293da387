package procgen

import "math"

// Noise3D is a cheap, reproducible scalar field in (-1, 1):
//
//	sin(x·scale+seed) · cos(y·scale+seed) · sin(z·scale+seed)
//
// It is not gradient noise and is not band-limited. Surface classification
// thresholds are tuned against exactly this shape.
func Noise3D(x, y, z, scale, seed float64) float64 {
	return math.Sin(x*scale+seed) * math.Cos(y*scale+seed) * math.Sin(z*scale+seed)
}
