package procgen

import (
	"errors"
	"math"
	"testing"

	"github.com/litescript/ls-orrery/internal/astro"
	"github.com/litescript/ls-orrery/internal/entropy"
	"github.com/litescript/ls-orrery/internal/pointcloud"
)

var (
	red   = Hex(0xff0000)
	green = Hex(0x00ff00)
	blue  = Hex(0x0000ff)
	white = Hex(0xffffff)
)

// bandedSurface has a polar cap, a box, and a two-rung ladder on sin(y).
func bandedSurface() Surface {
	return Surface{
		Signals: []Signal{{Name: "band", Terms: []Term{SinY(1, 1)}}},
		Rules: []Rule{
			{Name: "cap", When: Latitude(0.9), Color: white},
			{Name: "storm", When: InBox(Box{
				Min: astro.Vec3{X: 0.5, Y: -0.2, Z: 0},
				Max: astro.Vec3{X: 1, Y: 0.2, Z: math.Inf(1)},
			}), Color: red},
			{Name: "belt", When: Between(0, 0.1, 0.5), Color: green},
			{Name: "zone", When: Above(0, 0.1), Color: blue},
		},
		Base: Hex(0x808080),
	}
}

func TestSurface_Classify(t *testing.T) {
	s := bandedSurface()
	const r = 10.0

	tests := []struct {
		name    string
		x, y, z float64
		want    Color
	}{
		{"north cap", 0, 9.5, 1, white},
		{"south cap", 0, -9.5, 1, white},
		{"storm beats bands", 7, 1, 3, red},
		{"storm needs positive z", 7, 0.2, -3, green},
		{"belt", 0, 0.2, 0, green},
		{"zone", 0, 1.2, 0, blue},
		{"base below ladder", 0, -1, 0, Hex(0x808080)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.Classify(tt.x, tt.y, tt.z, r); got != tt.want {
				t.Errorf("Classify(%v, %v, %v) = %+v, want %+v", tt.x, tt.y, tt.z, got, tt.want)
			}
		})
	}
}

func TestSignal_Eval(t *testing.T) {
	sig := Signal{Terms: []Term{Noise(0.45, 1), Noise(1.2, 0.5), NoiseXZY(0.4, 0.3), SinY(1.8, 1)}}
	x, y, z := 1.0, 2.0, 3.0

	want := Noise3D(x, y, z, 0.45, 0) + 0.5*Noise3D(x, y, z, 1.2, 0) +
		0.3*Noise3D(x, z, y, 0.4, 0) + math.Sin(y*1.8)
	if got := sig.Eval(x, y, z); math.Abs(got-want) > 1e-15 {
		t.Errorf("Eval = %v, want %v", got, want)
	}
}

func TestSurface_Validate(t *testing.T) {
	tests := []struct {
		name string
		s    Surface
	}{
		{"missing signal", Surface{Rules: []Rule{{When: Above(0, 0)}}}},
		{"negative signal", Surface{Signals: []Signal{{}}, Rules: []Rule{{When: Above(-1, 0)}}}},
		{"empty band", Surface{Signals: []Signal{{}}, Rules: []Rule{{When: Between(0, 0.5, 0.5)}}}},
		{"negative jitter", Surface{LightnessJitter: -0.1}},
		{"too many signals", Surface{Signals: make([]Signal, MaxSignals+1)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.s.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("err = %v, want ErrInvalidConfig", err)
			}
		})
	}
	if err := bandedSurface().Validate(); err != nil {
		t.Errorf("banded surface invalid: %v", err)
	}
}

func TestGenerateSurface(t *testing.T) {
	p := SurfaceParams{
		Name:      "Test",
		Radius:    5,
		Particles: 2000,
		Surface:   bandedSurface(),
	}

	out, err := GenerateSurface(p, entropy.NewSeeded(1))
	if err != nil {
		t.Fatalf("GenerateSurface: %v", err)
	}
	if out.Clouds != nil || out.Corona != nil {
		t.Errorf("unexpected secondary layers: %+v", out)
	}
	if out.Surface.Len() != 2000 || out.Surface.Layer != pointcloud.LayerSurface {
		t.Fatalf("surface Len = %d layer = %v", out.Surface.Len(), out.Surface.Layer)
	}

	// With zero jitter each point carries its classified color.
	caps := 0
	for i := 0; i < out.Surface.Len(); i++ {
		pt := out.Surface.Point(i)
		if math.Abs(pt.Pos.Y)/p.Radius > 0.95 {
			caps++
			if math.Abs(pt.Color.R-1) > 1e-6 || math.Abs(pt.Color.G-1) > 1e-6 || math.Abs(pt.Color.B-1) > 1e-6 {
				t.Fatalf("polar point %d color = %+v, want white", i, pt.Color)
			}
		}
	}
	if caps == 0 {
		t.Error("no polar points sampled")
	}
}

func TestGenerateSurface_LightnessJitter(t *testing.T) {
	p := SurfaceParams{
		Name:      "Flat",
		Radius:    5,
		Particles: 500,
		Surface:   Surface{Base: Hex(0x73d7ee), LightnessJitter: 0.08},
	}
	out, err := GenerateSurface(p, entropy.NewSeeded(3))
	if err != nil {
		t.Fatalf("GenerateSurface: %v", err)
	}

	_, _, base := p.Surface.Base.colorful().Hsl()
	distinct := map[pointcloud.RGB]bool{}
	for i := 0; i < out.Surface.Len(); i++ {
		c := out.Surface.Point(i).Color
		distinct[c] = true
		_, _, l := Color{R: c.R, G: c.G, B: c.B}.colorful().Hsl()
		if math.Abs(l-base) > 0.04+1e-4 {
			t.Fatalf("point %d lightness %v outside %v ± 0.04", i, l, base)
		}
	}
	if len(distinct) < 100 {
		t.Errorf("only %d distinct colors, jitter not applied", len(distinct))
	}
}

func TestGenerateSurface_Clouds(t *testing.T) {
	base := SurfaceParams{Name: "Cloudy", Radius: 5, Particles: 100, Surface: Surface{Base: blue}}

	unfiltered := base
	unfiltered.Clouds = &CloudParams{Particles: 3500, RadiusScale: 1.06, Color: white, Opacity: 0.2}
	out, err := GenerateSurface(unfiltered, entropy.NewSeeded(1))
	if err != nil {
		t.Fatalf("GenerateSurface: %v", err)
	}
	if out.Clouds.Len() != 3500 || out.Clouds.Layer != pointcloud.LayerClouds {
		t.Errorf("unfiltered clouds Len = %d layer = %v, want 3500 clouds", out.Clouds.Len(), out.Clouds.Layer)
	}
	if out.Clouds.Opacity != 0.2 {
		t.Errorf("Opacity = %v, want 0.2", out.Clouds.Opacity)
	}
	for i := 0; i < out.Clouds.Len(); i++ {
		if d := out.Clouds.Point(i).Pos.Norm(); math.Abs(d-5.3) > 1e-4 {
			t.Fatalf("cloud point %d at radius %v, want 5.3", i, d)
		}
	}

	filtered := base
	filtered.Clouds = &CloudParams{
		Particles: 3500, RadiusScale: 1.06, Color: white, Opacity: 0.4,
		Filter: &NoiseFilter{Scale: 0.35, Threshold: 0.2},
	}
	out, err = GenerateSurface(filtered, entropy.NewSeeded(1))
	if err != nil {
		t.Fatalf("GenerateSurface: %v", err)
	}
	if n := out.Clouds.Len(); n == 0 || n >= 3500 {
		t.Errorf("filtered clouds kept %d of 3500, want a patchy subset", n)
	}
	if got := len(out.Layers()); got != 2 {
		t.Errorf("Layers() = %d, want surface and clouds", got)
	}
}

func TestGenerateCorona(t *testing.T) {
	p := CoronaParams{
		Name:             "Sun",
		Radius:           18,
		SurfaceParticles: 1500,
		ShellParticles:   500,
		Depth:            12,
		Inner:            Hex(0xffcc00),
		Outer:            Hex(0xff2200),
		Opacity:          0.9,
	}
	out, err := GenerateCorona(p, entropy.NewSeeded(6))
	if err != nil {
		t.Fatalf("GenerateCorona: %v", err)
	}

	inner := p.Inner.RGB()
	for i := 0; i < out.Surface.Len(); i++ {
		c := out.Surface.Point(i).Color
		if math.Abs(c.R-inner.R) > 1e-6 || math.Abs(c.G-inner.G) > 1e-6 || math.Abs(c.B-inner.B) > 1e-6 {
			t.Fatalf("surface point %d color = %+v, want inner %+v", i, c, inner)
		}
	}

	if out.Corona.Len() != 500 || out.Corona.Layer != pointcloud.LayerCorona {
		t.Fatalf("corona Len = %d layer = %v", out.Corona.Len(), out.Corona.Layer)
	}
	if out.Corona.Opacity != 0.9 {
		t.Errorf("corona Opacity = %v, want 0.9", out.Corona.Opacity)
	}
	for i := 0; i < out.Corona.Len(); i++ {
		pt := out.Corona.Point(i)
		d := pt.Pos.Norm()
		if d < 18-1e-3 || d > 30+1e-3 {
			t.Fatalf("shell point %d at %v, want within [18, 30]", i, d)
		}
		want := p.Inner.Lerp(p.Outer, (d-18)/12)
		if math.Abs(pt.Color.G-want.G) > 1e-3 {
			t.Fatalf("shell point %d green = %v, want %v", i, pt.Color.G, want.G)
		}
	}
}

func TestGenerateCorona_Opacity(t *testing.T) {
	tests := []struct {
		opacity float64
		wantErr bool
	}{
		{0, false},
		{0.35, false},
		{1, false},
		{-0.1, true},
		{1.5, true},
		{math.NaN(), true},
	}

	for _, tt := range tests {
		p := CoronaParams{Name: "Star", Radius: 2, SurfaceParticles: 10, ShellParticles: 20, Depth: 1, Opacity: tt.opacity}
		out, err := GenerateCorona(p, entropy.NewSeeded(3))
		if tt.wantErr {
			var ce *ConfigError
			if !errors.As(err, &ce) || ce.Field != "opacity" {
				t.Errorf("opacity %v: err = %v, want opacity ConfigError", tt.opacity, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("opacity %v: %v", tt.opacity, err)
		}
		if out.Corona.Opacity != float32(tt.opacity) {
			t.Errorf("corona Opacity = %v, want %v", out.Corona.Opacity, tt.opacity)
		}
	}
}

func TestGenerateCorona_NoShell(t *testing.T) {
	p := CoronaParams{Name: "Dim", Radius: 1, SurfaceParticles: 10, Depth: 1}
	out, err := GenerateCorona(p, entropy.NewSeeded(1))
	if err != nil {
		t.Fatalf("GenerateCorona: %v", err)
	}
	if out.Corona != nil {
		t.Errorf("Corona = %v, want nil", out.Corona)
	}
}

func TestGenerateRings(t *testing.T) {
	const r = 11.0
	gap := Band{Lo: 1.9 * r, Hi: 2.05 * r}
	p := RingParams{
		Name: "Saturn",
		Annulus: AnnulusParams{
			Inner: 1.3 * r, Outer: 2.5 * r, Count: 20000, Gap: &gap, Thickness: 0.15,
		},
		BandRadius: 2.1 * r,
		InnerColor: Hex(0xd6bc92),
		OuterColor: Hex(0xa89f91),
		Opacity:    0.6,
	}

	cloud, err := GenerateRings(p, entropy.NewSeeded(12))
	if err != nil {
		t.Fatalf("GenerateRings: %v", err)
	}
	// The gap covers about 13% of the ring area.
	if n := cloud.Len(); n >= 20000 || n < 16000 {
		t.Errorf("kept %d of 20000", n)
	}

	const eps = 1e-3
	in, out := p.InnerColor.RGB(), p.OuterColor.RGB()
	for i := 0; i < cloud.Len(); i++ {
		pt := cloud.Point(i)
		rad := math.Hypot(pt.Pos.X, pt.Pos.Z)
		if rad < 1.3*r-eps || rad > 2.5*r+eps {
			t.Fatalf("point %d radius %v outside ring", i, rad)
		}
		if rad > gap.Lo+eps && rad < gap.Hi-eps {
			t.Fatalf("point %d radius %v inside gap", i, rad)
		}
		if math.Abs(rad-p.BandRadius) < eps {
			continue
		}
		want := in
		if rad > p.BandRadius {
			want = out
		}
		if math.Abs(pt.Color.R-want.R) > 1e-4 || math.Abs(pt.Color.B-want.B) > 1e-4 {
			t.Fatalf("point %d at %v color %+v, want %+v", i, rad, pt.Color, want)
		}
	}
}

func TestColor(t *testing.T) {
	c := Hex(0xff8000)
	if c.R != 1 || c.B != 0 || math.Abs(c.G-128.0/255) > 1e-15 {
		t.Errorf("Hex = %+v", c)
	}
	if got := c.Hex(); got != "#ff8000" {
		t.Errorf("Hex() = %q, want #ff8000", got)
	}

	a, b := Hex(0x123456), Hex(0xabcdef)
	if a.Lerp(b, 0) != a || a.Lerp(b, 1) != b {
		t.Errorf("Lerp endpoints not exact: %+v %+v", a.Lerp(b, 0), a.Lerp(b, 1))
	}

	parsed, err := ParseHex("abcdef")
	if err != nil || math.Abs(parsed.R-b.R) > 1e-12 || math.Abs(parsed.B-b.B) > 1e-12 {
		t.Errorf("ParseHex(abcdef) = %+v, %v; want %+v", parsed, err, b)
	}
	if _, err := ParseHex("#zzz"); err == nil {
		t.Error("ParseHex(#zzz) succeeded")
	}

	sum := Color{R: 0.1, G: 0.2, B: 0.3}.Add(Color{R: 0.1}).Scale(2)
	if math.Abs(sum.R-0.4) > 1e-15 || math.Abs(sum.G-0.4) > 1e-15 || math.Abs(sum.B-0.6) > 1e-15 {
		t.Errorf("Add/Scale = %+v", sum)
	}
}

func TestColor_OffsetLightness(t *testing.T) {
	tests := []struct {
		name  string
		in    Color
		delta float64
		want  Color
	}{
		{"white stays white", white, 0.5, white},
		{"black stays black", Color{}, -0.5, Color{}},
		{"grey brightens", Color{R: 0.5, G: 0.5, B: 0.5}, 0.1, Color{R: 0.6, G: 0.6, B: 0.6}},
		{"red darkens", red, -0.25, Color{R: 0.5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.OffsetLightness(tt.delta)
			if math.Abs(got.R-tt.want.R) > 1e-9 || math.Abs(got.G-tt.want.G) > 1e-9 || math.Abs(got.B-tt.want.B) > 1e-9 {
				t.Errorf("OffsetLightness(%v) = %+v, want %+v", tt.delta, got, tt.want)
			}
		})
	}
}

func TestColor_Jitter(t *testing.T) {
	c := Color{R: 0.5, G: 0.5, B: 0.5}.Jitter(entropy.NewSequence(0, 0.5, 0.9), 0.1)
	if math.Abs(c.R-0.45) > 1e-12 || c.G != 0.5 || math.Abs(c.B-0.54) > 1e-12 {
		t.Errorf("Jitter = %+v, want (0.45, 0.5, 0.54)", c)
	}
}
