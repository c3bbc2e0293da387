// Package pointcloud defines the generator output: parallel position, color,
// and size buffers ready to hand to a renderer.
package pointcloud

import (
	"fmt"
	"math"

	"github.com/litescript/ls-orrery/internal/astro"
)

// Layer tags what a cloud represents so the renderer can treat it separately
// (clouds spin against the surface, rings are tilted, and so on).
type Layer int

const (
	LayerGalaxy Layer = iota
	LayerSurface
	LayerClouds
	LayerCorona
	LayerRings
	LayerStars
	LayerOrbit
)

// String returns the layer name.
func (l Layer) String() string {
	switch l {
	case LayerGalaxy:
		return "galaxy"
	case LayerSurface:
		return "surface"
	case LayerClouds:
		return "clouds"
	case LayerCorona:
		return "corona"
	case LayerRings:
		return "rings"
	case LayerStars:
		return "stars"
	case LayerOrbit:
		return "orbit"
	default:
		return "unknown"
	}
}

// RGB is a linear color triple, nominally in [0,1].
type RGB struct {
	R, G, B float64
}

// Point is one sample read back from a Cloud.
type Point struct {
	Pos   astro.Vec3
	Color RGB
	Size  float64 // Zero when the cloud carries no sizes
}

// Cloud holds N points as flat float32 buffers.
// Positions and Colors have stride 3. Sizes is either empty or length N.
type Cloud struct {
	Layer     Layer
	Name      string
	Positions []float32
	Colors    []float32
	Sizes     []float32
	Opacity   float32 // Renderer hint; 1 means opaque
}

// New returns an empty cloud with room for capacity points.
func New(layer Layer, name string, capacity int) *Cloud {
	if capacity < 0 {
		capacity = 0
	}
	return &Cloud{
		Layer:     layer,
		Name:      name,
		Positions: make([]float32, 0, capacity*3),
		Colors:    make([]float32, 0, capacity*3),
		Opacity:   1,
	}
}

// Len returns the number of points.
func (c *Cloud) Len() int {
	return len(c.Positions) / 3
}

// Sized reports whether the cloud carries per-point sizes.
func (c *Cloud) Sized() bool {
	return len(c.Sizes) > 0
}

// Add appends an unsized point. Mixing Add and AddSized on one cloud breaks
// the size invariant and is caught by Validate.
func (c *Cloud) Add(pos astro.Vec3, col RGB) {
	c.Positions = append(c.Positions, float32(pos.X), float32(pos.Y), float32(pos.Z))
	c.Colors = append(c.Colors, float32(col.R), float32(col.G), float32(col.B))
}

// AddSized appends a point with a size.
func (c *Cloud) AddSized(pos astro.Vec3, col RGB, size float64) {
	if c.Sizes == nil {
		c.Sizes = make([]float32, 0, cap(c.Positions)/3)
	}
	c.Add(pos, col)
	c.Sizes = append(c.Sizes, float32(size))
}

// Point returns the i-th point. It panics if i is out of range, like a slice.
func (c *Cloud) Point(i int) Point {
	j := i * 3
	p := Point{
		Pos: astro.Vec3{
			X: float64(c.Positions[j]),
			Y: float64(c.Positions[j+1]),
			Z: float64(c.Positions[j+2]),
		},
		Color: RGB{
			R: float64(c.Colors[j]),
			G: float64(c.Colors[j+1]),
			B: float64(c.Colors[j+2]),
		},
	}
	if c.Sized() {
		p.Size = float64(c.Sizes[i])
	}
	return p
}

// Validate checks the parallel-buffer invariant.
func (c *Cloud) Validate() error {
	if len(c.Positions)%3 != 0 {
		return fmt.Errorf("%s cloud %q: position buffer length %d is not a multiple of 3", c.Layer, c.Name, len(c.Positions))
	}
	if len(c.Colors) != len(c.Positions) {
		return fmt.Errorf("%s cloud %q: %d color values for %d position values", c.Layer, c.Name, len(c.Colors), len(c.Positions))
	}
	if len(c.Sizes) != 0 && len(c.Sizes) != c.Len() {
		return fmt.Errorf("%s cloud %q: %d sizes for %d points", c.Layer, c.Name, len(c.Sizes), c.Len())
	}
	return nil
}

// Bounds is an axis-aligned bounding box.
type Bounds struct {
	Min, Max astro.Vec3
}

// Bounds returns the bounding box of all points, or a zero box when empty.
func (c *Cloud) Bounds() Bounds {
	if c.Len() == 0 {
		return Bounds{}
	}
	b := Bounds{
		Min: astro.Vec3{X: math.Inf(1), Y: math.Inf(1), Z: math.Inf(1)},
		Max: astro.Vec3{X: math.Inf(-1), Y: math.Inf(-1), Z: math.Inf(-1)},
	}
	for i := 0; i < len(c.Positions); i += 3 {
		x, y, z := float64(c.Positions[i]), float64(c.Positions[i+1]), float64(c.Positions[i+2])
		b.Min.X = math.Min(b.Min.X, x)
		b.Min.Y = math.Min(b.Min.Y, y)
		b.Min.Z = math.Min(b.Min.Z, z)
		b.Max.X = math.Max(b.Max.X, x)
		b.Max.Y = math.Max(b.Max.Y, y)
		b.Max.Z = math.Max(b.Max.Z, z)
	}
	return b
}

// Concat joins parts in order into a new cloud carrying the first part's
// layer, name, and opacity. All parts must share a layer and either all
// carry sizes or none do.
func Concat(parts ...*Cloud) (*Cloud, error) {
	if len(parts) == 0 {
		return nil, fmt.Errorf("concat: no parts")
	}

	first := parts[0]
	total := 0
	sized, seen := false, false
	for i, p := range parts {
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("concat part %d: %w", i, err)
		}
		if p.Layer != first.Layer {
			return nil, fmt.Errorf("concat part %d: layer %s does not match %s", i, p.Layer, first.Layer)
		}
		// Empty parts carry no sizes either way; only non-empty ones must agree.
		if p.Len() > 0 {
			if seen && p.Sized() != sized {
				return nil, fmt.Errorf("concat part %d: mixed sized and unsized parts", i)
			}
			sized, seen = p.Sized(), true
		}
		total += p.Len()
	}

	out := New(first.Layer, first.Name, total)
	out.Opacity = first.Opacity
	if sized {
		out.Sizes = make([]float32, 0, total)
	}
	for _, p := range parts {
		out.Positions = append(out.Positions, p.Positions...)
		out.Colors = append(out.Colors, p.Colors...)
		if sized {
			out.Sizes = append(out.Sizes, p.Sizes...)
		}
	}
	return out, nil
}
