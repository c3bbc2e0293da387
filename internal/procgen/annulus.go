package procgen

import (
	"math"

	"github.com/litescript/ls-orrery/internal/astro"
	"github.com/litescript/ls-orrery/internal/entropy"
)

// Band is an open radial interval (Lo, Hi).
type Band struct {
	Lo, Hi float64
}

// Contains reports whether r lies strictly inside the band.
func (b Band) Contains(r float64) bool {
	return r > b.Lo && r < b.Hi
}

// AnnulusParams describes a flat ring of points in the XZ plane.
type AnnulusParams struct {
	Inner     float64
	Outer     float64
	Count     int     // Samples drawn; gap rejections are not replaced
	Gap       *Band   // Optional forbidden band
	Thickness float64 // Full height of the vertical jitter
}

// Validate checks the annulus parameters.
func (p AnnulusParams) Validate() error {
	if err := checkCount("annulus", "count", p.Count, 1); err != nil {
		return err
	}
	if err := checkPositive("annulus", "inner", p.Inner); err != nil {
		return err
	}
	if !(p.Outer > p.Inner) {
		return invalid("annulus", "outer", p.Outer, "must exceed inner radius")
	}
	if err := checkNonNegative("annulus", "thickness", p.Thickness); err != nil {
		return err
	}
	if p.Gap != nil && !(p.Gap.Hi > p.Gap.Lo) {
		return invalid("annulus", "gap", *p.Gap, "hi must exceed lo")
	}
	return nil
}

// AnnulusPoint is one accepted sample.
type AnnulusPoint struct {
	Pos    astro.Vec3
	Radius float64
}

// SampleAnnulus draws Count samples with constant density per unit area.
// The radius uses r = sqrt(u·(outer²-inner²) + inner²); a plain r = lerp(u)
// would crowd points toward the inner edge. Samples landing in the gap are
// discarded, so the result may hold fewer than Count points.
//
// Per sample the source is read for angle, radius, then height (height is
// skipped for rejected samples).
func SampleAnnulus(p AnnulusParams, src entropy.Source) ([]AnnulusPoint, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	inner2 := p.Inner * p.Inner
	span := p.Outer*p.Outer - inner2

	points := make([]AnnulusPoint, 0, p.Count)
	for i := 0; i < p.Count; i++ {
		angle := src.Float64() * 2 * math.Pi
		r := math.Sqrt(src.Float64()*span + inner2)
		if p.Gap != nil && p.Gap.Contains(r) {
			continue
		}
		sin, cos := math.Sincos(angle)
		points = append(points, AnnulusPoint{
			Pos: astro.Vec3{
				X: cos * r,
				Y: entropy.Centered(src, p.Thickness),
				Z: sin * r,
			},
			Radius: r,
		})
	}
	return points, nil
}
