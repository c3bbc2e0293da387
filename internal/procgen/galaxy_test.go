package procgen

import (
	"errors"
	"math"
	"testing"

	"github.com/litescript/ls-orrery/internal/entropy"
)

// countingSource counts draws taken from an underlying source.
type countingSource struct {
	src   entropy.Source
	draws int
}

func (c *countingSource) Float64() float64 {
	c.draws++
	return c.src.Float64()
}

func smallGalaxy() GalaxyParams {
	p := DefaultGalaxyParams()
	p.Count = 100
	p.Radius = 100
	p.Branches = 2
	p.Spin = 1
	p.Randomness = 0.5
	p.RandomnessPower = 1
	p.BarLength = 10
	p.BulgeHeight = 0
	return p
}

func TestSampleGalaxy_DrawOrder(t *testing.T) {
	p := smallGalaxy()
	// r = 25; randX = +0.4·0.5·25; randZ = -0.6·0.5·25; y = 0; size 200;
	// nebula draw succeeds; no color jitter.
	seq := entropy.NewSequence(0.5, 0.4, 0.2, 0.6, 0.7, 0.5, 0.5, 0.99, 0.5, 0.5, 0.5)
	src := &countingSource{src: seq}

	s := SampleGalaxy(0, p, src)

	if src.draws != 11 {
		t.Errorf("draws = %d, want 11", src.draws)
	}
	if s.R != 25 || s.RRatio != 0.25 {
		t.Errorf("R = %v, RRatio = %v, want 25, 0.25", s.R, s.RRatio)
	}
	if s.InBar || s.Dust || !s.Nebula {
		t.Errorf("classification InBar=%v Dust=%v Nebula=%v, want false false true", s.InBar, s.Dust, s.Nebula)
	}

	wantSpin := 25 * 1 * 0.00015
	if math.Abs(s.SpinAngle-wantSpin) > 1e-15 {
		t.Errorf("SpinAngle = %v, want %v", s.SpinAngle, wantSpin)
	}
	wantX := math.Cos(wantSpin)*25 + 5
	wantZ := math.Sin(wantSpin)*25 - 7.5
	if math.Abs(s.Pos.X-wantX) > 1e-9 || math.Abs(s.Pos.Z-wantZ) > 1e-9 || s.Pos.Y != 0 {
		t.Errorf("Pos = %+v, want (%v, 0, %v)", s.Pos, wantX, wantZ)
	}
	if s.Size != 500 {
		t.Errorf("Size = %v, want 200*2.5", s.Size)
	}

	want := p.Colors.Bar.Lerp(p.Colors.Arms, 0.3).Lerp(p.Colors.Nebula, 0.8)
	want.R += 0.2
	if math.Abs(s.Color.R-want.R) > 1e-12 || math.Abs(s.Color.G-want.G) > 1e-12 || math.Abs(s.Color.B-want.B) > 1e-12 {
		t.Errorf("Color = %+v, want %+v", s.Color, want)
	}
}

func TestSampleGalaxy_BarSkipsNebulaDraw(t *testing.T) {
	p := smallGalaxy()
	// u = 0.2 gives r = 4, inside the bar.
	src := &countingSource{src: entropy.NewSequence(0.2, 0.5)}

	s := SampleGalaxy(1, p, src)

	if !s.InBar {
		t.Fatalf("r = %v should be inside bar of length %v", s.R, p.BarLength)
	}
	if src.draws != 10 {
		t.Errorf("draws = %d, want 10 (no nebula draw in the bar)", src.draws)
	}
	// The size draw is the seventh value, 0.2.
	if math.Abs(s.Size-255) > 1e-9 {
		t.Errorf("Size = %v, want 170*1.5", s.Size)
	}
}

func TestSampleGalaxy_BarStraightensSpin(t *testing.T) {
	p := DefaultGalaxyParams()
	src := entropy.NewSeeded(3)

	checked := 0
	for i := 0; i < 20000; i++ {
		s := SampleGalaxy(i, p, src)
		if !s.InBar || s.R == 0 {
			continue
		}
		checked++
		if !(math.Abs(s.SpinAngle) < math.Abs(p.UnwoundSpin(s.R))) {
			t.Fatalf("sample %d: spin %v not below unwound %v at r=%v", i, s.SpinAngle, p.UnwoundSpin(s.R), s.R)
		}
	}
	if checked == 0 {
		t.Fatal("no bar samples drawn")
	}
}

func dustFraction(seed uint64, p GalaxyParams, n int) float64 {
	src := entropy.NewSeeded(seed)
	outside, dust := 0, 0
	for i := 0; i < n; i++ {
		s := SampleGalaxy(i, p, src)
		if s.R <= p.BarLength {
			continue
		}
		outside++
		if s.Dust {
			dust++
		}
	}
	return float64(dust) / float64(outside)
}

func TestSampleGalaxy_DustFractionConverges(t *testing.T) {
	p := DefaultGalaxyParams()

	a := dustFraction(11, p, 100000)
	b := dustFraction(12, p, 100000)

	for _, f := range []float64{a, b} {
		if f < 0.27 || f > 0.34 {
			t.Errorf("dust fraction = %.4f, want about 0.305", f)
		}
	}
	if math.Abs(a-b) > 0.015 {
		t.Errorf("dust fraction differs across seeds: %.4f vs %.4f", a, b)
	}
}

func TestSampleGalaxy_NoDustInBar(t *testing.T) {
	p := DefaultGalaxyParams()
	src := entropy.NewSeeded(5)
	for i := 0; i < 20000; i++ {
		s := SampleGalaxy(i, p, src)
		if s.InBar && s.Dust {
			t.Fatalf("sample %d inside bar classified as dust", i)
		}
		if s.Dust && s.Nebula {
			t.Fatalf("sample %d is both dust and nebula", i)
		}
	}
}

func TestSampleGalaxy_TwoArmsOpposite(t *testing.T) {
	p := DefaultGalaxyParams()
	p.Branches = 2
	p.Count = 2
	src := entropy.NewSeeded(1)

	s0 := SampleGalaxy(0, p, src)
	s1 := SampleGalaxy(1, p, src)

	if s0.BranchAngle != 0 {
		t.Errorf("arm 0 angle = %v, want 0", s0.BranchAngle)
	}
	if d := s1.BranchAngle - s0.BranchAngle; d != math.Pi {
		t.Errorf("arm separation = %v, want π", d)
	}
}

func TestGenerateGalaxy(t *testing.T) {
	p := smallGalaxy()
	p.Count = 500

	a, err := GenerateGalaxy(p, entropy.NewSeeded(9))
	if err != nil {
		t.Fatalf("GenerateGalaxy: %v", err)
	}
	b, _ := GenerateGalaxy(p, entropy.NewSeeded(9))

	if a.Len() != 500 || !a.Sized() {
		t.Fatalf("Len = %d sized = %v, want 500 sized", a.Len(), a.Sized())
	}
	if err := a.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	for i := range a.Positions {
		if a.Positions[i] != b.Positions[i] {
			t.Fatalf("position component %d differs between identical seeds", i)
		}
	}
	if a.Opacity != float32(p.Opacity) {
		t.Errorf("Opacity = %v, want %v", a.Opacity, p.Opacity)
	}
}

func TestGalaxyParams_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*GalaxyParams)
		field  string
	}{
		{"zero count", func(p *GalaxyParams) { p.Count = 0 }, "count"},
		{"zero radius", func(p *GalaxyParams) { p.Radius = 0 }, "radius"},
		{"no branches", func(p *GalaxyParams) { p.Branches = 0 }, "branches"},
		{"negative bar", func(p *GalaxyParams) { p.BarLength = -1 }, "barLength"},
		{"bar too long", func(p *GalaxyParams) { p.BarLength = p.Radius }, "barLength"},
		{"zero power", func(p *GalaxyParams) { p.RandomnessPower = 0 }, "randomnessPower"},
		{"NaN radius", func(p *GalaxyParams) { p.Radius = math.NaN() }, "radius"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultGalaxyParams()
			tt.mutate(&p)
			err := p.Validate()
			if !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("err = %v, want ErrInvalidConfig", err)
			}
			var ce *ConfigError
			if !errors.As(err, &ce) || ce.Field != tt.field {
				t.Errorf("err = %v, want field %q", err, tt.field)
			}
		})
	}

	if err := DefaultGalaxyParams().Validate(); err != nil {
		t.Errorf("default params invalid: %v", err)
	}
}

func TestGenerateGalaxy_TooLarge(t *testing.T) {
	p := DefaultGalaxyParams()
	p.Count = MaxPoints + 1
	_, err := GenerateGalaxy(p, entropy.NewSeeded(1))
	if !errors.Is(err, ErrTooLarge) {
		t.Errorf("err = %v, want ErrTooLarge", err)
	}
	if errors.Is(err, ErrInvalidConfig) {
		t.Errorf("ErrTooLarge should not also match ErrInvalidConfig")
	}
}
