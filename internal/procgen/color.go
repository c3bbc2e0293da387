package procgen

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/litescript/ls-orrery/internal/astro"
	"github.com/litescript/ls-orrery/internal/entropy"
	"github.com/litescript/ls-orrery/internal/pointcloud"
)

// Color is a linear RGB triple. Channels are nominally in [0,1] but blends
// and tints may push them outside; the renderer clamps.
type Color struct {
	R, G, B float64
}

// Hex builds a color from a 0xRRGGBB literal.
func Hex(v uint32) Color {
	return Color{
		R: float64((v>>16)&0xff) / 255,
		G: float64((v>>8)&0xff) / 255,
		B: float64(v&0xff) / 255,
	}
}

// ParseHex parses "#rrggbb" (or "rrggbb"). The result equals the matching
// Hex literal exactly.
func ParseHex(s string) (Color, error) {
	if len(s) > 0 && s[0] != '#' {
		s = "#" + s
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("parse color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return Hex(uint32(r)<<16 | uint32(g)<<8 | uint32(b)), nil
}

// Hex returns the color as "#rrggbb", clamped to the displayable range.
func (c Color) Hex() string {
	return c.colorful().Clamped().Hex()
}

// Lerp blends toward to by t. t=0 returns c and t=1 returns to exactly;
// t outside [0,1] extrapolates.
func (c Color) Lerp(to Color, t float64) Color {
	return Color{
		R: c.R*(1-t) + to.R*t,
		G: c.G*(1-t) + to.G*t,
		B: c.B*(1-t) + to.B*t,
	}
}

// Scale multiplies every channel by f.
func (c Color) Scale(f float64) Color {
	return Color{R: c.R * f, G: c.G * f, B: c.B * f}
}

// Add sums two colors channel-wise.
func (c Color) Add(o Color) Color {
	return Color{R: c.R + o.R, G: c.G + o.G, B: c.B + o.B}
}

// Jitter perturbs each channel independently by a uniform value in
// [-amount/2, amount/2). Draws are taken in R, G, B order.
func (c Color) Jitter(src entropy.Source, amount float64) Color {
	return Color{
		R: c.R + entropy.Centered(src, amount),
		G: c.G + entropy.Centered(src, amount),
		B: c.B + entropy.Centered(src, amount),
	}
}

// OffsetLightness shifts the HSL lightness by delta, clamping lightness to [0,1].
func (c Color) OffsetLightness(delta float64) Color {
	h, s, l := c.colorful().Hsl()
	out := colorful.Hsl(h, s, astro.Clamp(l+delta, 0, 1))
	return Color{R: out.R, G: out.G, B: out.B}
}

// RGB converts to the point-cloud color type.
func (c Color) RGB() pointcloud.RGB {
	return pointcloud.RGB{R: c.R, G: c.G, B: c.B}
}

func (c Color) colorful() colorful.Color {
	return colorful.Color{R: c.R, G: c.G, B: c.B}
}
