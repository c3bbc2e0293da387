package ui

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/litescript/ls-orrery/internal/astro"
	"github.com/litescript/ls-orrery/internal/pointcloud"
	"github.com/litescript/ls-orrery/internal/scene"
)

// Camera steps for the orbit keys.
const (
	yawStep   = 0.1
	pitchStep = 0.08
	maxPitch  = 1.5
	zoomStep  = 1.25
)

// orbitCam is an astro.Camera driven by keys. When goal is positive the
// distance eases toward it every tick until the user zooms.
type orbitCam struct {
	astro.Camera
	home         astro.Camera
	goal         float64
	minD, maxD   float64
	userAdjusted bool
}

func newOrbitCam(home astro.Camera, minD, maxD float64) orbitCam {
	return orbitCam{Camera: home, home: home, minD: minD, maxD: maxD}
}

// handleKey applies an orbit or zoom key and reports whether it was one.
func (o *orbitCam) handleKey(key string) bool {
	switch key {
	case "left":
		o.Yaw -= yawStep
	case "right":
		o.Yaw += yawStep
	case "up":
		o.Pitch = math.Min(o.Pitch+pitchStep, maxPitch)
	case "down":
		o.Pitch = math.Max(o.Pitch-pitchStep, -maxPitch)
	case "+", "=":
		o.zoom(1 / zoomStep)
	case "-", "_":
		o.zoom(zoomStep)
	default:
		return false
	}
	o.userAdjusted = true
	return true
}

func (o *orbitCam) zoom(f float64) {
	o.goal = 0
	o.Distance = astro.Clamp(o.Distance*f, o.minD, o.maxD)
}

// approach starts easing toward distance d.
func (o *orbitCam) approach(d float64) {
	o.goal = astro.Clamp(d, o.minD, o.maxD)
}

// ease moves one tick toward the goal distance.
func (o *orbitCam) ease() {
	if o.goal <= 0 {
		return
	}
	o.Distance = scene.Approach(o.Distance, o.goal)
	if math.Abs(o.Distance-o.goal) < 1e-3 {
		o.Distance, o.goal = o.goal, 0
	}
}

func (o *orbitCam) reset() {
	o.Camera = o.home
	o.goal = 0
	o.userAdjusted = false
}

// pointLimit caps how many points of one layer are projected per frame.
const pointLimit = 24000

// glyphFor picks the character a layer is drawn with.
func glyphFor(layer pointcloud.Layer, size float32) rune {
	switch layer {
	case pointcloud.LayerGalaxy:
		if size >= 220 {
			return '*'
		}
		return '·'
	case pointcloud.LayerSurface:
		return '•'
	case pointcloud.LayerClouds:
		return '∙'
	case pointcloud.LayerCorona:
		return '∗'
	case pointcloud.LayerRings:
		return '·'
	case pointcloud.LayerStars:
		return '.'
	case pointcloud.LayerOrbit:
		return '˙'
	default:
		return '?'
	}
}

// shade dims a point color by alpha, as if blended over black.
func shade(c pointcloud.RGB, alpha float64) colorful.Color {
	return colorful.Color{R: c.R * alpha, G: c.G * alpha, B: c.B * alpha}
}

// drawCloud maps every point of c through xf, projects it, and plots it with
// the layer glyph. alpha multiplies the cloud's own opacity. Large clouds are
// strided down to limit points. It returns the number of cells written.
func drawCloud(cv *Canvas, pr astro.Projector, c *pointcloud.Cloud, xf func(astro.Vec3) astro.Vec3, alpha float64, limit int) int {
	if c == nil || c.Len() == 0 {
		return 0
	}
	alpha *= float64(c.Opacity)
	if alpha <= 0.01 {
		return 0
	}

	stride := 1
	if limit > 0 && c.Len() > limit {
		stride = (c.Len() + limit - 1) / limit
	}

	drawn := 0
	for i := 0; i < c.Len(); i += stride {
		p := c.Point(i)
		pos := p.Pos
		if xf != nil {
			pos = xf(pos)
		}
		if cv.Plot(pr.Project(pos), glyphFor(c.Layer, float32(p.Size)), shade(p.Color, alpha)) {
			drawn++
		}
	}
	return drawn
}

// drawBody draws a body's surface, cloud or corona shell, and rings in the
// pose tr.
func drawBody(cv *Canvas, pr astro.Projector, bs scene.BodyScene, tr scene.Transform) {
	drawCloud(cv, pr, bs.Clouds.Surface, tr.Surface, 1, pointLimit)
	drawCloud(cv, pr, bs.Clouds.Clouds, tr.Clouds, 1, pointLimit)
	drawCloud(cv, pr, bs.Clouds.Corona, tr.Surface, 1, pointLimit)
	if bs.Rings != nil && bs.Body.Rings != nil {
		tilt := bs.Body.Rings.Tilt
		drawCloud(cv, pr, bs.Rings, func(p astro.Vec3) astro.Vec3 { return tr.Rings(p, tilt) }, 1, pointLimit)
	}
}

// labelColor is the neutral color of body labels.
var labelColor = colorful.Color{R: 0.8, G: 0.8, B: 0.85}

// focusColor highlights the focused body's label.
var focusColor = colorful.Color{R: 1, G: 0.9, B: 0.55}
