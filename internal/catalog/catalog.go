// Package catalog defines the fixed set of bodies in the orrery: the Sun and
// eight planets, with their scene-unit sizes, particle budgets, orbital
// speeds, biome tables, and reference facts.
package catalog

import (
	"fmt"
	"math"
	"strings"

	"github.com/litescript/ls-orrery/internal/procgen"
)

// BodyKind categorizes bodies for generation and rendering.
type BodyKind int

const (
	BodyStar BodyKind = iota
	BodyPlanet
)

// String returns the body kind name.
func (k BodyKind) String() string {
	switch k {
	case BodyStar:
		return "star"
	case BodyPlanet:
		return "planet"
	default:
		return "unknown"
	}
}

// PlanetClass groups planets for display.
type PlanetClass int

const (
	ClassInner PlanetClass = iota // Mercury, Venus, Earth, Mars
	ClassGiant                    // Jupiter, Saturn, Uranus, Neptune
)

// String returns the class name.
func (c PlanetClass) String() string {
	if c == ClassGiant {
		return "giant"
	}
	return "inner"
}

// Facts is reference information shown in the body info panel.
type Facts struct {
	Distance    string
	Speed       string
	Diameter    string
	Description string
}

// RingSpec describes a ring system in multiples of the body radius.
type RingSpec struct {
	InnerScale      float64
	OuterScale      float64
	GapLo, GapHi    float64
	BandScale       float64 // InnerColor up to here, OuterColor beyond
	Count           int
	Thickness       float64 // absolute scene units
	InnerColor      procgen.Color
	OuterColor      procgen.Color
	LightnessJitter float64
	Tilt            float64
	Opacity         float64
}

// CoronaSpec describes a star's photosphere and shell.
type CoronaSpec struct {
	ShellParticles int
	Depth          float64
	Inner          procgen.Color
	Outer          procgen.Color
	Opacity        float64
}

// Body holds the generation parameters of one celestial body.
type Body struct {
	Name      string
	Code      string
	Kind      BodyKind
	Class     PlanetClass
	Radius    float64 // scene units
	Distance  float64 // orbital radius in scene units; 0 for the Sun
	Particles int
	Speed     float64 // relative orbital speed

	Surface procgen.Surface
	Clouds  *procgen.CloudParams
	Rings   *RingSpec
	Corona  *CoronaSpec

	// Spin rates in radians per second. SpinRate turns the whole body;
	// SurfaceSpinRate and CloudSpinRate are relative to it.
	SpinRate        float64
	SurfaceSpinRate float64
	CloudSpinRate   float64

	Facts Facts
}

// HasClouds reports whether the body carries a cloud shell.
func (b Body) HasClouds() bool { return b.Clouds != nil }

// HasRings reports whether the body carries rings.
func (b Body) HasRings() bool { return b.Rings != nil }

// SurfaceParams returns the surface generator input for a planet.
func (b Body) SurfaceParams() procgen.SurfaceParams {
	return procgen.SurfaceParams{
		Name:      b.Name,
		Radius:    b.Radius,
		Particles: b.Particles,
		Surface:   b.Surface,
		Clouds:    b.Clouds,
	}
}

// CoronaParams returns the star generator input. The body must have a corona.
func (b Body) CoronaParams() procgen.CoronaParams {
	c := b.Corona
	return procgen.CoronaParams{
		Name:             b.Name,
		Radius:           b.Radius,
		SurfaceParticles: b.Particles,
		ShellParticles:   c.ShellParticles,
		Depth:            c.Depth,
		Inner:            c.Inner,
		Outer:            c.Outer,
		Opacity:          c.Opacity,
	}
}

// RingParams converts the ring settings to absolute units. ok is false when the
// body has no rings.
func (b Body) RingParams() (p procgen.RingParams, ok bool) {
	r := b.Rings
	if r == nil {
		return procgen.RingParams{}, false
	}
	return procgen.RingParams{
		Name: b.Name,
		Annulus: procgen.AnnulusParams{
			Inner:     r.InnerScale * b.Radius,
			Outer:     r.OuterScale * b.Radius,
			Count:     r.Count,
			Gap:       &procgen.Band{Lo: r.GapLo * b.Radius, Hi: r.GapHi * b.Radius},
			Thickness: r.Thickness,
		},
		BandRadius:      r.BandScale * b.Radius,
		InnerColor:      r.InnerColor,
		OuterColor:      r.OuterColor,
		LightnessJitter: r.LightnessJitter,
		Tilt:            r.Tilt,
		Opacity:         r.Opacity,
	}, true
}

// Validate checks that the body can be generated.
func (b Body) Validate() error {
	var err error
	switch b.Kind {
	case BodyStar:
		if b.Corona == nil {
			return fmt.Errorf("body %s: star without corona", b.Name)
		}
		err = b.CoronaParams().Validate()
	default:
		if !(b.Distance > 0) {
			return fmt.Errorf("body %s: distance %v: %w", b.Name, b.Distance, procgen.ErrInvalidConfig)
		}
		err = b.SurfaceParams().Validate()
		if rp, ok := b.RingParams(); ok && err == nil {
			err = rp.Annulus.Validate()
		}
	}
	if err != nil {
		return fmt.Errorf("body %s: %w", b.Name, err)
	}
	return nil
}

// clone returns a deep copy sharing no slices or pointers with b.
func (b Body) clone() Body {
	out := b
	out.Surface.Signals = make([]procgen.Signal, len(b.Surface.Signals))
	for i, s := range b.Surface.Signals {
		s.Terms = append([]procgen.Term(nil), s.Terms...)
		out.Surface.Signals[i] = s
	}
	out.Surface.Rules = append([]procgen.Rule(nil), b.Surface.Rules...)
	if b.Clouds != nil {
		c := *b.Clouds
		if c.Filter != nil {
			f := *c.Filter
			c.Filter = &f
		}
		out.Clouds = &c
	}
	if b.Rings != nil {
		r := *b.Rings
		out.Rings = &r
	}
	if b.Corona != nil {
		c := *b.Corona
		out.Corona = &c
	}
	return out
}

// Catalog is a Sun plus its planets in orbital order.
type Catalog struct {
	Sun     Body
	Planets []Body
}

// Default returns a fresh copy of the built-in solar system.
func Default() Catalog {
	c := Catalog{Sun: sun.clone(), Planets: make([]Body, len(planets))}
	for i, p := range planets {
		c.Planets[i] = p.clone()
	}
	return c
}

// Sun returns a copy of the built-in Sun.
func Sun() Body {
	return sun.clone()
}

// Planets returns copies of the built-in planets in orbital order.
func Planets() []Body {
	return Default().Planets
}

// Lookup finds a built-in body by name or code, ignoring case.
func Lookup(name string) (Body, bool) {
	return Default().Lookup(name)
}

// Bodies returns the Sun followed by the planets.
func (c Catalog) Bodies() []Body {
	return append([]Body{c.Sun}, c.Planets...)
}

// Lookup finds a body by name or code, ignoring case.
func (c Catalog) Lookup(name string) (Body, bool) {
	name = strings.TrimSpace(name)
	for _, b := range c.Bodies() {
		if strings.EqualFold(b.Name, name) || strings.EqualFold(b.Code, name) {
			return b.clone(), true
		}
	}
	return Body{}, false
}

// Validate checks every body.
func (c Catalog) Validate() error {
	for _, b := range c.Bodies() {
		if err := b.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// ScaleParticles returns a copy with every particle budget multiplied by
// factor. A scaled budget above procgen.MaxPoints fails with ErrTooLarge; one
// below what its generator accepts fails with a *procgen.ConfigError.
func (c Catalog) ScaleParticles(factor float64) (Catalog, error) {
	if !(factor > 0) || math.IsInf(factor, 1) {
		return Catalog{}, &procgen.ConfigError{Generator: "catalog", Field: "quality", Value: factor, Reason: "must be positive and finite"}
	}

	var err error
	scale := func(body, field string, n, min int) int {
		if err != nil {
			return n
		}
		v := float64(n) * factor
		if v > procgen.MaxPoints {
			err = fmt.Errorf("catalog: %s.%s = %.0f (limit %d): %w", body, field, v, procgen.MaxPoints, procgen.ErrTooLarge)
			return n
		}
		if iv := int(v); iv < min {
			err = &procgen.ConfigError{Generator: "catalog", Field: body + "." + field, Value: iv, Reason: fmt.Sprintf("scaled below %d", min)}
			return n
		}
		return int(v)
	}

	out := Catalog{Sun: c.Sun.clone(), Planets: make([]Body, len(c.Planets))}
	out.Sun.Particles = scale(out.Sun.Name, "particles", out.Sun.Particles, 2)
	if out.Sun.Corona != nil {
		out.Sun.Corona.ShellParticles = scale(out.Sun.Name, "shell_particles", out.Sun.Corona.ShellParticles, 0)
	}
	for i, p := range c.Planets {
		p = p.clone()
		p.Particles = scale(p.Name, "particles", p.Particles, 2)
		if p.Clouds != nil {
			p.Clouds.Particles = scale(p.Name, "cloud_particles", p.Clouds.Particles, 2)
		}
		if p.Rings != nil {
			p.Rings.Count = scale(p.Name, "ring_count", p.Rings.Count, 1)
		}
		out.Planets[i] = p
	}
	if err != nil {
		return Catalog{}, err
	}
	return out, nil
}
