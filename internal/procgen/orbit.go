package procgen

import (
	"math"

	"github.com/litescript/ls-orrery/internal/astro"
	"github.com/litescript/ls-orrery/internal/pointcloud"
)

// DefaultOrbitSegments is the resolution of drawn orbit circles.
const DefaultOrbitSegments = 120

// OrbitPath returns segments+1 points on a circle of the given radius in the
// XZ plane, starting and ending at (distance, 0, 0).
func OrbitPath(distance float64, segments int) ([]astro.Vec3, error) {
	if err := checkPositive("orbit", "distance", distance); err != nil {
		return nil, err
	}
	if err := checkCount("orbit", "segments", segments, 3); err != nil {
		return nil, err
	}

	path := make([]astro.Vec3, segments+1)
	for i := range path {
		a := float64(i) / float64(segments) * 2 * math.Pi
		sin, cos := math.Sincos(a)
		path[i] = astro.Vec3{X: cos * distance, Z: sin * distance}
	}
	path[segments] = path[0]
	return path, nil
}

// OrbitCloud wraps an orbit path as a faint white polyline layer.
func OrbitCloud(name string, distance float64, segments int) (*pointcloud.Cloud, error) {
	path, err := OrbitPath(distance, segments)
	if err != nil {
		return nil, err
	}
	cloud := pointcloud.New(pointcloud.LayerOrbit, name, len(path))
	cloud.Opacity = 0.05
	white := pointcloud.RGB{R: 1, G: 1, B: 1}
	for _, p := range path {
		cloud.Add(p, white)
	}
	return cloud, nil
}
