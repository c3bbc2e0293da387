package catalog

import (
	"math"

	"github.com/litescript/ls-orrery/internal/astro"
	"github.com/litescript/ls-orrery/internal/procgen"
)

// Shared surface settings.
const (
	surfaceJitter = 0.08
	planetSpin    = 0.1
	cloudSpin     = -0.04
)

var hex = procgen.Hex

var sun = Body{
	Name:      "Sun",
	Code:      "SUN",
	Kind:      BodyStar,
	Radius:    18,
	Particles: 15000,
	Corona: &CoronaSpec{
		ShellParticles: 5000,
		Depth:          12,
		Inner:          hex(0xffcc00),
		Outer:          hex(0xff2200),
		Opacity:        0.9,
	},
	SpinRate: 0.05,
	Facts: Facts{
		Diameter:    "1,392,700 km",
		Description: "The star at the centre of the system.",
	},
}

// Signal indices shared by the single-signal tables below.
const sig0 = 0

var planets = []Body{
	{
		Name: "Mercury", Code: "MERC", Kind: BodyPlanet, Class: ClassInner,
		Radius: 3, Distance: 35, Particles: 3000, Speed: 4.0,
		Surface: procgen.Surface{
			Signals: []procgen.Signal{
				{Name: "craters", Terms: []procgen.Term{procgen.Noise(1.5, 1)}},
			},
			Rules: []procgen.Rule{
				{Name: "maria", When: procgen.Above(sig0, 0.5), Color: hex(0x777777)},
			},
			Base:            hex(0xaaaaaa),
			LightnessJitter: surfaceJitter,
		},
		SpinRate: planetSpin,
		Facts: Facts{
			Distance:    "57.9 M km",
			Speed:       "47.9 km/s",
			Diameter:    "4,880 km",
			Description: "The planet closest to the Sun.",
		},
	},
	{
		Name: "Venus", Code: "VEN", Kind: BodyPlanet, Class: ClassInner,
		Radius: 4.5, Distance: 50, Particles: 5000, Speed: 3.0,
		Surface: procgen.Surface{
			Signals: []procgen.Signal{
				{Name: "haze", Terms: []procgen.Term{procgen.Noise(0.5, 1), procgen.SinY(2, 1)}},
			},
			Rules: []procgen.Rule{
				{Name: "bright", When: procgen.Above(sig0, 0.5), Color: hex(0xffcc66)},
			},
			Base:            hex(0xffaa33),
			LightnessJitter: surfaceJitter,
		},
		Clouds: &procgen.CloudParams{
			Particles:   3500,
			RadiusScale: 1.06,
			Color:       hex(0xffffff),
			Opacity:     0.2,
		},
		SpinRate:      planetSpin,
		CloudSpinRate: cloudSpin,
		Facts: Facts{
			Distance:    "108.2 M km",
			Speed:       "35.0 km/s",
			Diameter:    "12,104 km",
			Description: "The hottest planet in the solar system.",
		},
	},
	{
		Name: "Earth", Code: "EARTH", Kind: BodyPlanet, Class: ClassInner,
		Radius: 5, Distance: 75, Particles: 10000, Speed: 2.0,
		Surface: procgen.Surface{
			Signals: []procgen.Signal{
				{Name: "continent", Terms: []procgen.Term{procgen.Noise(0.45, 1), procgen.Noise(1.2, 0.5)}},
			},
			Rules: []procgen.Rule{
				{Name: "ice", When: procgen.Latitude(0.88), Color: hex(0xffffff)},
				{Name: "highland", When: procgen.Above(sig0, 0.65), Color: hex(0x8b4513)},
				{Name: "beach", When: procgen.Between(sig0, 0.35, 0.42), Color: hex(0xd2b48c)},
				{Name: "forest", When: procgen.Above(sig0, 0.35), Color: hex(0x2e8b57)},
				{Name: "shallows", When: procgen.Above(sig0, 0.2), Color: hex(0x004499)},
			},
			Base:            hex(0x001144),
			LightnessJitter: surfaceJitter,
		},
		Clouds: &procgen.CloudParams{
			Particles:   3500,
			RadiusScale: 1.06,
			Color:       hex(0xffffff),
			Opacity:     0.4,
			Filter:      &procgen.NoiseFilter{Scale: 0.35, Threshold: 0.2},
		},
		SpinRate:      planetSpin,
		CloudSpinRate: cloudSpin,
		Facts: Facts{
			Distance:    "149.6 M km",
			Speed:       "29.8 km/s",
			Diameter:    "12,742 km",
			Description: "The only blue planet known to harbour life.",
		},
	},
	{
		Name: "Mars", Code: "MARS", Kind: BodyPlanet, Class: ClassInner,
		Radius: 3.5, Distance: 100, Particles: 6000, Speed: 1.6,
		Surface: procgen.Surface{
			Signals: []procgen.Signal{
				{Name: "terrain", Terms: []procgen.Term{procgen.Noise(0.7, 1)}},
			},
			Rules: []procgen.Rule{
				{Name: "ice", When: procgen.Latitude(0.93), Color: hex(0xffffff)},
				{Name: "basalt", When: procgen.Above(sig0, 0.5), Color: hex(0x8b3311)},
			},
			Base:            hex(0xcc4422),
			LightnessJitter: surfaceJitter,
		},
		SpinRate: planetSpin,
		Facts: Facts{
			Distance:    "227.9 M km",
			Speed:       "24.1 km/s",
			Diameter:    "6,779 km",
			Description: "The dusty, storm-swept Red Planet.",
		},
	},
	{
		Name: "Jupiter", Code: "JUP", Kind: BodyPlanet, Class: ClassGiant,
		Radius: 14, Distance: 160, Particles: 25000, Speed: 0.8,
		Surface: procgen.Surface{
			Signals: []procgen.Signal{
				{Name: "bands", Terms: []procgen.Term{procgen.SinY(1.8, 1), procgen.NoiseXZY(0.4, 0.3)}},
			},
			Rules: []procgen.Rule{
				{Name: "great red spot", When: procgen.InBox(procgen.Box{
					Min: astro.Vec3{X: 0.4, Y: -0.35, Z: 0},
					Max: astro.Vec3{X: 0.8, Y: -0.1, Z: math.Inf(1)},
				}), Color: hex(0x992200)},
				{Name: "zone", When: procgen.Above(sig0, 0.6), Color: hex(0xf0e2c8)},
				{Name: "belt", When: procgen.Above(sig0, 0.2), Color: hex(0xcfa374)},
				{Name: "dark belt", When: procgen.Above(sig0, -0.3), Color: hex(0x7a5a40)},
			},
			Base:            hex(0xe0c090),
			LightnessJitter: surfaceJitter,
		},
		SpinRate:        planetSpin,
		SurfaceSpinRate: 0.2,
		Facts: Facts{
			Distance:    "778.5 M km",
			Speed:       "13.1 km/s",
			Diameter:    "139,820 km",
			Description: "The largest gas giant.",
		},
	},
	{
		Name: "Saturn", Code: "SAT", Kind: BodyPlanet, Class: ClassGiant,
		Radius: 11, Distance: 220, Particles: 20000, Speed: 0.5,
		Surface: procgen.Surface{
			Signals: []procgen.Signal{
				{Name: "bands", Terms: []procgen.Term{procgen.SinY(3, 1)}},
			},
			Rules: []procgen.Rule{
				{Name: "band", When: procgen.Above(sig0, 0.5), Color: hex(0xd6bc92)},
			},
			Base:            hex(0xead6b8),
			LightnessJitter: surfaceJitter,
		},
		Rings: &RingSpec{
			InnerScale:      1.3,
			OuterScale:      2.5,
			GapLo:           1.9,
			GapHi:           2.05,
			BandScale:       2.1,
			Count:           20000,
			Thickness:       0.15,
			InnerColor:      hex(0xd6bc92),
			OuterColor:      hex(0xa89f91),
			LightnessJitter: 0.1,
			Tilt:            0.45,
			Opacity:         0.6,
		},
		SpinRate: planetSpin,
		Facts: Facts{
			Distance:    "1.4 B km",
			Speed:       "9.7 km/s",
			Diameter:    "116,460 km",
			Description: "Famous for its magnificent icy rings.",
		},
	},
	{
		Name: "Uranus", Code: "URA", Kind: BodyPlanet, Class: ClassGiant,
		Radius: 7, Distance: 270, Particles: 10000, Speed: 0.3,
		Surface: procgen.Surface{
			Base:            hex(0x73d7ee),
			LightnessJitter: surfaceJitter,
		},
		SpinRate: planetSpin,
		Facts: Facts{
			Distance:    "2.9 B km",
			Speed:       "6.8 km/s",
			Diameter:    "50,724 km",
			Description: "An ice giant tipped 98 degrees on its axis.",
		},
	},
	{
		Name: "Neptune", Code: "NEP", Kind: BodyPlanet, Class: ClassGiant,
		Radius: 6.8, Distance: 320, Particles: 10000, Speed: 0.2,
		Surface: procgen.Surface{
			Signals: []procgen.Signal{
				{Name: "storms", Terms: []procgen.Term{procgen.Noise(0.9, 1)}},
			},
			Rules: []procgen.Rule{
				{Name: "dark spot", When: procgen.Above(sig0, 0.7), Color: hex(0x112266)},
			},
			Base:            hex(0x3355ff),
			LightnessJitter: surfaceJitter,
		},
		SpinRate: planetSpin,
		Facts: Facts{
			Distance:    "4.5 B km",
			Speed:       "5.4 km/s",
			Diameter:    "49,244 km",
			Description: "The outermost planet, swept by supersonic winds.",
		},
	},
}
