package procgen

import (
	"github.com/litescript/ls-orrery/internal/entropy"
	"github.com/litescript/ls-orrery/internal/pointcloud"
)

// RingParams describes a planetary ring system in absolute units.
type RingParams struct {
	Name            string
	Annulus         AnnulusParams
	BandRadius      float64 // InnerColor up to here, OuterColor beyond
	InnerColor      Color
	OuterColor      Color
	LightnessJitter float64
	Tilt            float64 // radians about X; applied by the renderer
	Opacity         float64
}

// GenerateRings samples the ring annulus and colors each point by band.
// After the annulus draws, one lightness-jitter draw is taken per kept
// point.
func GenerateRings(p RingParams, src entropy.Source) (*pointcloud.Cloud, error) {
	if err := checkNonNegative("rings", "lightnessJitter", p.LightnessJitter); err != nil {
		return nil, err
	}
	samples, err := SampleAnnulus(p.Annulus, src)
	if err != nil {
		return nil, err
	}

	cloud := pointcloud.New(pointcloud.LayerRings, p.Name, len(samples))
	cloud.Opacity = float32(p.Opacity)
	for _, s := range samples {
		c := p.InnerColor
		if s.Radius > p.BandRadius {
			c = p.OuterColor
		}
		c = c.OffsetLightness(entropy.Centered(src, p.LightnessJitter))
		cloud.Add(s.Pos, c.RGB())
	}
	return cloud, nil
}
