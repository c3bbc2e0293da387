package procgen

import (
	"math"

	"github.com/litescript/ls-orrery/internal/astro"
	"github.com/litescript/ls-orrery/internal/entropy"
	"github.com/litescript/ls-orrery/internal/pointcloud"
)

// GalaxyColors are the four base colors of a barred spiral.
type GalaxyColors struct {
	Core   Color
	Bar    Color
	Arms   Color
	Nebula Color
}

// GalaxyTuning holds the shape constants of the barred-spiral model.
type GalaxyTuning struct {
	SpinTightness   float64 // k: spin angle per unit radius per unit spin
	DustPhaseScale  float64 // k2: radial phase of the dust mask
	DustThreshold   float64
	NebulaThreshold float64 // a draw above this makes an arm point a nebula
	NebulaBlend     float64
	NebulaRedBoost  float64
	DustDarken      float64
	DustBlueTint    float64
	ColorJitter     float64
	DiskThickness   float64 // fraction of radius
	BulgeExponent   float64
	ArmBlendSpan    float64 // fraction of radius over which bar blends into arms

	BaseSize        float64
	SizeSpread      float64
	BarSizeScale    float64
	NebulaSizeScale float64
}

// DefaultGalaxyTuning returns the tuning the preset galaxy was designed with.
func DefaultGalaxyTuning() GalaxyTuning {
	return GalaxyTuning{
		SpinTightness:   0.00015,
		DustPhaseScale:  0.0001,
		DustThreshold:   0.6,
		NebulaThreshold: 0.94,
		NebulaBlend:     0.8,
		NebulaRedBoost:  0.2,
		DustDarken:      0.2,
		DustBlueTint:    0.1,
		ColorJitter:     0.05,
		DiskThickness:   0.05,
		BulgeExponent:   4,
		ArmBlendSpan:    0.5,

		BaseSize:        150,
		SizeSpread:      100,
		BarSizeScale:    1.5,
		NebulaSizeScale: 2.5,
	}
}

// GalaxyParams configures GenerateGalaxy.
type GalaxyParams struct {
	Count           int
	Radius          float64
	Branches        int
	Spin            float64
	Randomness      float64
	RandomnessPower float64
	BarLength       float64
	BulgeHeight     float64
	Opacity         float64
	Colors          GalaxyColors
	Tuning          GalaxyTuning
}

// DefaultGalaxyParams returns the Milky Way preset.
func DefaultGalaxyParams() GalaxyParams {
	return GalaxyParams{
		Count:           180000,
		Radius:          85000,
		Branches:        2,
		Spin:            1.5,
		Randomness:      0.8,
		RandomnessPower: 3,
		BarLength:       12000,
		BulgeHeight:     3000,
		Opacity:         0.8,
		Colors: GalaxyColors{
			Core:   Hex(0xffaa55),
			Bar:    Hex(0xffdca0),
			Arms:   Hex(0xaaccff),
			Nebula: Hex(0xff0055),
		},
		Tuning: DefaultGalaxyTuning(),
	}
}

// Validate checks the galaxy parameters.
func (p GalaxyParams) Validate() error {
	if err := checkCount("galaxy", "count", p.Count, 1); err != nil {
		return err
	}
	if err := checkPositive("galaxy", "radius", p.Radius); err != nil {
		return err
	}
	if p.Branches < 1 {
		return invalid("galaxy", "branches", p.Branches, "must be at least 1")
	}
	if err := checkNonNegative("galaxy", "barLength", p.BarLength); err != nil {
		return err
	}
	if !(p.BarLength < p.Radius) {
		return invalid("galaxy", "barLength", p.BarLength, "must be less than radius")
	}
	if err := checkPositive("galaxy", "randomnessPower", p.RandomnessPower); err != nil {
		return err
	}
	if err := checkNonNegative("galaxy", "bulgeHeight", p.BulgeHeight); err != nil {
		return err
	}
	if err := checkPositive("galaxy", "tuning.armBlendSpan", p.Tuning.ArmBlendSpan); err != nil {
		return err
	}
	return nil
}

// GalaxySample is one generated galaxy point with its classification.
type GalaxySample struct {
	R           float64
	RRatio      float64
	SpinAngle   float64
	BranchAngle float64
	InBar       bool
	Dust        bool
	Nebula      bool
	Pos         astro.Vec3
	Color       Color
	Size        float64
}

// UnwoundSpin is the spin angle at radius r before bar straightening.
func (p GalaxyParams) UnwoundSpin(r float64) float64 {
	return r * p.Spin * p.Tuning.SpinTightness
}

// SampleGalaxy generates the point for sample index i. The index only
// selects the arm (i mod Branches); every other quantity comes from src.
// Parameters are assumed valid.
func SampleGalaxy(i int, p GalaxyParams, src entropy.Source) GalaxySample {
	t := p.Tuning
	var s GalaxySample

	u := src.Float64()
	s.RRatio = u * u
	s.R = s.RRatio * p.Radius
	s.InBar = s.R < p.BarLength

	s.SpinAngle = p.UnwoundSpin(s.R)
	if s.InBar {
		s.SpinAngle *= s.R / p.BarLength
	}

	s.BranchAngle = float64(i%p.Branches) / float64(p.Branches) * 2 * math.Pi

	randX := math.Pow(src.Float64(), p.RandomnessPower) * entropy.Sign(src) * p.Randomness * s.R
	randZ := math.Pow(src.Float64(), p.RandomnessPower) * entropy.Sign(src) * p.Randomness * s.R

	bulge := math.Pow(1-s.RRatio, t.BulgeExponent)
	y := entropy.Centered(src, p.Radius*t.DiskThickness+bulge*p.BulgeHeight*2)

	s.Size = t.BaseSize + src.Float64()*t.SizeSpread

	angle := s.BranchAngle + s.SpinAngle
	dustNoise := math.Sin(angle*float64(p.Branches)*2 + s.R*t.DustPhaseScale)
	s.Dust = !s.InBar && dustNoise > t.DustThreshold

	sin, cos := math.Sincos(angle)
	s.Pos = astro.Vec3{X: cos*s.R + randX, Y: y, Z: sin*s.R + randZ}

	if s.InBar {
		s.Color = p.Colors.Core.Lerp(p.Colors.Bar, s.R/p.BarLength)
		s.Size *= t.BarSizeScale
	} else {
		s.Color = p.Colors.Bar.Lerp(p.Colors.Arms, (s.R-p.BarLength)/(p.Radius*t.ArmBlendSpan))
		if !s.Dust && src.Float64() > t.NebulaThreshold {
			s.Nebula = true
			s.Color = s.Color.Lerp(p.Colors.Nebula, t.NebulaBlend)
			s.Color.R += t.NebulaRedBoost
			s.Size *= t.NebulaSizeScale
		}
	}
	if s.Dust {
		s.Color = s.Color.Scale(t.DustDarken)
		s.Color.B += t.DustBlueTint
	}
	s.Color = s.Color.Jitter(src, t.ColorJitter)

	return s
}

// GenerateGalaxy builds the barred-spiral point cloud.
func GenerateGalaxy(p GalaxyParams, src entropy.Source) (*pointcloud.Cloud, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return galaxyRange(p, 0, p.Count, src), nil
}

// galaxyRange generates samples [lo, hi) keeping their global indices.
func galaxyRange(p GalaxyParams, lo, hi int, src entropy.Source) *pointcloud.Cloud {
	cloud := pointcloud.New(pointcloud.LayerGalaxy, "Milky Way", hi-lo)
	cloud.Opacity = float32(p.Opacity)
	for i := lo; i < hi; i++ {
		s := SampleGalaxy(i, p, src)
		cloud.AddSized(s.Pos, s.Color.RGB(), s.Size)
	}
	return cloud
}
