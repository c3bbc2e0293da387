package procgen

import (
	"math"

	"github.com/litescript/ls-orrery/internal/astro"
	"github.com/litescript/ls-orrery/internal/entropy"
	"github.com/litescript/ls-orrery/internal/pointcloud"
)

// StarFieldParams describes the background star cube.
type StarFieldParams struct {
	Count      int
	HalfExtent float64
	Color      Color
	Opacity    float64
}

// DefaultStarField returns the background used by the solar-system scene.
func DefaultStarField() StarFieldParams {
	return StarFieldParams{
		Count:      15000,
		HalfExtent: 75000,
		Color:      Hex(0xaaddff),
		Opacity:    0.8,
	}
}

// Validate checks the star field parameters.
func (p StarFieldParams) Validate() error {
	if err := checkCount("stars", "count", p.Count, 1); err != nil {
		return err
	}
	return checkPositive("stars", "halfExtent", p.HalfExtent)
}

// GenerateStarField places Count points uniformly in the cube
// [-HalfExtent, HalfExtent)³, drawing x, y, z per point.
func GenerateStarField(p StarFieldParams, src entropy.Source) (*pointcloud.Cloud, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	cloud := pointcloud.New(pointcloud.LayerStars, "Stars", p.Count)
	cloud.Opacity = float32(p.Opacity)
	span := 2 * p.HalfExtent
	col := p.Color.RGB()
	for i := 0; i < p.Count; i++ {
		pos := astro.Vec3{
			X: entropy.Centered(src, span),
			Y: entropy.Centered(src, span),
			Z: entropy.Centered(src, span),
		}
		cloud.Add(pos, col)
	}
	return cloud, nil
}

// StarOpacity is the renderer's twinkle curve at time t seconds.
func StarOpacity(t float64) float64 {
	return 0.5 + math.Sin(t*3)*0.2
}
