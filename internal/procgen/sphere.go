package procgen

import (
	"math"

	"github.com/litescript/ls-orrery/internal/astro"
)

// GoldenAngle is π·(3-√5), the angular step of the Fibonacci sphere.
var GoldenAngle = math.Pi * (3 - math.Sqrt(5))

// FibonacciSphere places n points nearly uniformly on a sphere of the given
// radius using the golden-angle spiral. Point 0 is the north pole (+Y) and
// point n-1 the south pole. n must be at least 2.
func FibonacciSphere(n int, radius float64) ([]astro.Vec3, error) {
	if err := checkCount("sphere", "n", n, 2); err != nil {
		return nil, err
	}
	if err := checkPositive("sphere", "radius", radius); err != nil {
		return nil, err
	}

	points := make([]astro.Vec3, n)
	denom := float64(n - 1)
	for i := range points {
		y := 1 - 2*float64(i)/denom
		r := math.Sqrt(math.Max(0, 1-y*y))
		theta := GoldenAngle * float64(i)
		points[i] = astro.Vec3{
			X: math.Cos(theta) * r * radius,
			Y: y * radius,
			Z: math.Sin(theta) * r * radius,
		}
	}
	return points, nil
}
