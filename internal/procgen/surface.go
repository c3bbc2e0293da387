package procgen

import (
	"fmt"
	"math"

	"github.com/litescript/ls-orrery/internal/astro"
	"github.com/litescript/ls-orrery/internal/entropy"
	"github.com/litescript/ls-orrery/internal/pointcloud"
)

// MaxSignals bounds the number of named signals in one surface table.
const MaxSignals = 8

// Axes selects how a noise term reads the point coordinates.
type Axes int

const (
	AxesXYZ Axes = iota
	AxesXZY      // noise(x, z, y): bands aligned with the rotation axis
)

// TermKind selects the shape of a signal term.
type TermKind int

const (
	TermNoise TermKind = iota // Weight · Noise3D(p, Scale, Seed)
	TermSinY                  // Weight · sin(y · Scale)
)

// Term is one weighted component of a signal.
type Term struct {
	Kind   TermKind
	Scale  float64
	Seed   float64
	Weight float64
	Axes   Axes
}

// Noise is a Noise3D term.
func Noise(scale, weight float64) Term {
	return Term{Kind: TermNoise, Scale: scale, Weight: weight}
}

// NoiseXZY is a Noise3D term sampled with y and z swapped.
func NoiseXZY(scale, weight float64) Term {
	return Term{Kind: TermNoise, Scale: scale, Weight: weight, Axes: AxesXZY}
}

// SinY is a latitude band term.
func SinY(freq, weight float64) Term {
	return Term{Kind: TermSinY, Scale: freq, Weight: weight}
}

func (t Term) eval(x, y, z float64) float64 {
	switch t.Kind {
	case TermSinY:
		return t.Weight * math.Sin(y*t.Scale)
	default:
		if t.Axes == AxesXZY {
			y, z = z, y
		}
		return t.Weight * Noise3D(x, y, z, t.Scale, t.Seed)
	}
}

// Signal is a named sum of terms evaluated at a surface point.
type Signal struct {
	Name  string
	Terms []Term
}

// Eval sums the signal's terms at (x, y, z).
func (s Signal) Eval(x, y, z float64) float64 {
	var v float64
	for _, t := range s.Terms {
		v += t.eval(x, y, z)
	}
	return v
}

// ConditionKind selects the test a rule applies.
type ConditionKind int

const (
	CondLatitude ConditionKind = iota // |y|/r > Lo
	CondAbove                         // signal > Lo
	CondBetween                       // Lo < signal < Hi
	CondInBox                         // point strictly inside Box scaled by r
)

// Box is an axis-aligned region in units of the body radius. Infinite
// bounds leave an axis unconstrained.
type Box struct {
	Min, Max astro.Vec3
}

func (b Box) contains(x, y, z, r float64) bool {
	return x > b.Min.X*r && x < b.Max.X*r &&
		y > b.Min.Y*r && y < b.Max.Y*r &&
		z > b.Min.Z*r && z < b.Max.Z*r
}

// Condition is the predicate of one rule.
type Condition struct {
	Kind   ConditionKind
	Signal int // index into Surface.Signals
	Lo, Hi float64
	Box    Box
}

// Latitude matches points whose normalized |y| exceeds lo.
func Latitude(lo float64) Condition {
	return Condition{Kind: CondLatitude, Lo: lo}
}

// Above matches points where the signal exceeds lo.
func Above(signal int, lo float64) Condition {
	return Condition{Kind: CondAbove, Signal: signal, Lo: lo}
}

// Between matches points where lo < signal < hi.
func Between(signal int, lo, hi float64) Condition {
	return Condition{Kind: CondBetween, Signal: signal, Lo: lo, Hi: hi}
}

// InBox matches points inside box.
func InBox(box Box) Condition {
	return Condition{Kind: CondInBox, Box: box}
}

// Rule maps a condition to a biome color.
type Rule struct {
	Name  string
	When  Condition
	Color Color
}

// Surface is a data-driven biome table. Rules are tried in order and the
// first match wins; Base colors every point no rule matches.
type Surface struct {
	Signals         []Signal
	Rules           []Rule
	Base            Color
	LightnessJitter float64
}

// Validate checks signal references and band bounds.
func (s Surface) Validate() error {
	if len(s.Signals) > MaxSignals {
		return invalid("surface", "signals", len(s.Signals), fmt.Sprintf("at most %d supported", MaxSignals))
	}
	for i, r := range s.Rules {
		field := fmt.Sprintf("rules[%d]", i)
		switch r.When.Kind {
		case CondAbove, CondBetween:
			if r.When.Signal < 0 || r.When.Signal >= len(s.Signals) {
				return invalid("surface", field+".signal", r.When.Signal, "no such signal")
			}
			if r.When.Kind == CondBetween && !(r.When.Hi > r.When.Lo) {
				return invalid("surface", field+".hi", r.When.Hi, "must exceed lo")
			}
		case CondLatitude, CondInBox:
		default:
			return invalid("surface", field+".kind", r.When.Kind, "unknown condition")
		}
	}
	return checkNonNegative("surface", "lightnessJitter", s.LightnessJitter)
}

// Classify returns the biome color at (x, y, z) on a body of radius r,
// before lightness jitter. Each signal is evaluated at most once.
func (s Surface) Classify(x, y, z, r float64) Color {
	var (
		vals [MaxSignals]float64
		done [MaxSignals]bool
	)
	signal := func(i int) float64 {
		if !done[i] {
			vals[i] = s.Signals[i].Eval(x, y, z)
			done[i] = true
		}
		return vals[i]
	}

	for _, rule := range s.Rules {
		c := rule.When
		var hit bool
		switch c.Kind {
		case CondLatitude:
			hit = math.Abs(y/r) > c.Lo
		case CondAbove:
			hit = signal(c.Signal) > c.Lo
		case CondBetween:
			v := signal(c.Signal)
			hit = v > c.Lo && v < c.Hi
		case CondInBox:
			hit = c.Box.contains(x, y, z, r)
		}
		if hit {
			return rule.Color
		}
	}
	return s.Base
}

// NoiseFilter keeps cloud points where Noise3D(p, Scale, Seed) > Threshold.
type NoiseFilter struct {
	Scale     float64
	Seed      float64
	Threshold float64
}

// CloudParams describes a secondary cloud shell.
type CloudParams struct {
	Particles   int
	RadiusScale float64
	Color       Color
	Opacity     float64
	Filter      *NoiseFilter
}

// SurfaceParams is everything GenerateSurface needs to know about a body.
type SurfaceParams struct {
	Name      string
	Radius    float64
	Particles int
	Surface   Surface
	Clouds    *CloudParams
}

// Validate checks the body and its cloud shell.
func (p SurfaceParams) Validate() error {
	if err := checkCount("surface", "particles", p.Particles, 2); err != nil {
		return err
	}
	if err := checkPositive("surface", "radius", p.Radius); err != nil {
		return err
	}
	if err := p.Surface.Validate(); err != nil {
		return err
	}
	if c := p.Clouds; c != nil {
		if err := checkCount("clouds", "particles", c.Particles, 2); err != nil {
			return err
		}
		if err := checkPositive("clouds", "radiusScale", c.RadiusScale); err != nil {
			return err
		}
	}
	return nil
}

// BodyClouds bundles the point layers of one body. Clouds and Corona are
// nil when the body has none.
type BodyClouds struct {
	Surface *pointcloud.Cloud
	Clouds  *pointcloud.Cloud
	Corona  *pointcloud.Cloud
}

// Layers returns the non-nil clouds in draw order.
func (b BodyClouds) Layers() []*pointcloud.Cloud {
	var out []*pointcloud.Cloud
	for _, c := range []*pointcloud.Cloud{b.Surface, b.Clouds, b.Corona} {
		if c != nil {
			out = append(out, c)
		}
	}
	return out
}

// GenerateSurface samples a body's surface on a Fibonacci sphere and colors
// each point from its biome table. One lightness-jitter draw is taken per
// point, in index order.
func GenerateSurface(p SurfaceParams, src entropy.Source) (BodyClouds, error) {
	if err := p.Validate(); err != nil {
		return BodyClouds{}, err
	}

	points, err := FibonacciSphere(p.Particles, p.Radius)
	if err != nil {
		return BodyClouds{}, err
	}

	surface := pointcloud.New(pointcloud.LayerSurface, p.Name, len(points))
	for _, pt := range points {
		c := p.Surface.Classify(pt.X, pt.Y, pt.Z, p.Radius)
		c = c.OffsetLightness(entropy.Centered(src, p.Surface.LightnessJitter))
		surface.Add(pt, c.RGB())
	}

	out := BodyClouds{Surface: surface}
	if p.Clouds != nil {
		out.Clouds, err = generateCloudShell(p.Name, p.Radius, *p.Clouds)
		if err != nil {
			return BodyClouds{}, err
		}
	}
	return out, nil
}

func generateCloudShell(name string, radius float64, c CloudParams) (*pointcloud.Cloud, error) {
	points, err := FibonacciSphere(c.Particles, radius*c.RadiusScale)
	if err != nil {
		return nil, err
	}
	cloud := pointcloud.New(pointcloud.LayerClouds, name, len(points))
	cloud.Opacity = float32(c.Opacity)
	for _, pt := range points {
		if f := c.Filter; f != nil && !(Noise3D(pt.X, pt.Y, pt.Z, f.Scale, f.Seed) > f.Threshold) {
			continue
		}
		cloud.Add(pt, c.Color.RGB())
	}
	return cloud, nil
}
