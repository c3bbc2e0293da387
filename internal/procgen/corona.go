package procgen

import (
	"math"

	"github.com/litescript/ls-orrery/internal/astro"
	"github.com/litescript/ls-orrery/internal/entropy"
	"github.com/litescript/ls-orrery/internal/pointcloud"
)

// CoronaParams describes a star: a photosphere sphere plus a diffuse shell.
type CoronaParams struct {
	Name             string
	Radius           float64
	SurfaceParticles int
	ShellParticles   int     // 0 disables the shell
	Depth            float64 // shell thickness above the surface
	Inner            Color   // color at the surface
	Outer            Color   // color at Radius+Depth
	Opacity          float64 // shell opacity
}

// Validate checks the corona parameters.
func (p CoronaParams) Validate() error {
	if err := checkCount("corona", "surfaceParticles", p.SurfaceParticles, 2); err != nil {
		return err
	}
	if err := checkCount("corona", "shellParticles", p.ShellParticles, 0); err != nil {
		return err
	}
	if err := checkPositive("corona", "radius", p.Radius); err != nil {
		return err
	}
	if err := checkOpacity("corona", p.Opacity); err != nil {
		return err
	}
	return checkPositive("corona", "depth", p.Depth)
}

// GenerateCorona builds a star. Shell points take three draws each: azimuth,
// polar angle, then altitude. The color blends Inner to Outer by altitude,
// so surface points are exactly Inner.
func GenerateCorona(p CoronaParams, src entropy.Source) (BodyClouds, error) {
	if err := p.Validate(); err != nil {
		return BodyClouds{}, err
	}

	points, err := FibonacciSphere(p.SurfaceParticles, p.Radius)
	if err != nil {
		return BodyClouds{}, err
	}
	surface := pointcloud.New(pointcloud.LayerSurface, p.Name, len(points))
	inner := p.Inner.RGB()
	for _, pt := range points {
		surface.Add(pt, inner)
	}

	out := BodyClouds{Surface: surface}
	if p.ShellParticles == 0 {
		return out, nil
	}

	shell := pointcloud.New(pointcloud.LayerCorona, p.Name, p.ShellParticles)
	shell.Opacity = float32(p.Opacity)
	for i := 0; i < p.ShellParticles; i++ {
		theta := src.Float64() * 2 * math.Pi
		phi := math.Acos(2*src.Float64() - 1)
		d := p.Radius + src.Float64()*p.Depth

		sinPhi, cosPhi := math.Sincos(phi)
		sinTheta, cosTheta := math.Sincos(theta)
		pos := astro.Vec3{
			X: d * sinPhi * cosTheta,
			Y: d * sinPhi * sinTheta,
			Z: d * cosPhi,
		}
		shell.Add(pos, p.Inner.Lerp(p.Outer, (d-p.Radius)/p.Depth).RGB())
	}
	out.Corona = shell
	return out, nil
}
