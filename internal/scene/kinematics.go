package scene

import (
	"math"

	"github.com/litescript/ls-orrery/internal/astro"
	"github.com/litescript/ls-orrery/internal/catalog"
)

// Animation and camera constants of the solar-system view.
const (
	OrbitSpeed = 0.08 // radians per second per unit body speed

	GalaxySpinRate  = -0.001
	GalaxyOffsetY   = -3000
	GalaxyTiltX     = 0.5
	GalaxyTiltZ     = 0.1
	GalaxyFadeStart = 3000
	GalaxyFadeSpan  = 7000
	GalaxyMaxAlpha  = 0.9
	GalaxyMinFade   = 0.1

	// LabelDistance is the camera distance beyond which the view leaves the
	// solar system.
	LabelDistance = 7000

	// FocusDamping is the per-frame fraction of the remaining distance the
	// camera covers when approaching a focus target.
	FocusDamping = 0.08

	sunFocusDistance = 80
)

// OrbitAngle is a body's orbital phase at time t seconds.
func OrbitAngle(t, speed float64) float64 {
	return t * speed * OrbitSpeed
}

// OrbitPosition is a body's centre at time t. The Sun stays at the origin.
func OrbitPosition(t float64, b catalog.Body) astro.Vec3 {
	if b.Distance == 0 {
		return astro.Vec3{}
	}
	sin, cos := math.Sincos(OrbitAngle(t, b.Speed))
	return astro.Vec3{X: cos * b.Distance, Z: sin * b.Distance}
}

// Transform is the pose of one body at an instant. Spin rotates the whole
// body about +Y; SurfaceSpin and CloudSpin are applied on top of it.
type Transform struct {
	Position    astro.Vec3
	Spin        float64
	SurfaceSpin float64
	CloudSpin   float64
}

// BodyTransform returns the body's pose at time t.
func BodyTransform(t float64, b catalog.Body) Transform {
	return Transform{
		Position:    OrbitPosition(t, b),
		Spin:        t * b.SpinRate,
		SurfaceSpin: t * b.SurfaceSpinRate,
		CloudSpin:   t * b.CloudSpinRate,
	}
}

// Surface maps a surface-local point into the scene.
func (tr Transform) Surface(p astro.Vec3) astro.Vec3 {
	return p.RotateY(tr.SurfaceSpin).RotateY(tr.Spin).Add(tr.Position)
}

// Clouds maps a cloud-shell point into the scene.
func (tr Transform) Clouds(p astro.Vec3) astro.Vec3 {
	return p.RotateY(tr.CloudSpin).RotateY(tr.Spin).Add(tr.Position)
}

// Rings maps a ring point into the scene. The ring plane is tilted about X
// before the body spin is applied.
func (tr Transform) Rings(p astro.Vec3, tilt float64) astro.Vec3 {
	return p.RotateX(tilt).RotateY(tr.Spin).Add(tr.Position)
}

// GalaxySpin is the galaxy's rotation about its own axis at time t.
func GalaxySpin(t float64) float64 {
	return t * GalaxySpinRate
}

// GalaxyToScene maps a galaxy-local point into the scene at time t. The
// galaxy sits below the ecliptic, tilted, with the spin applied between the
// X and Z tilts.
func GalaxyToScene(p astro.Vec3, t float64) astro.Vec3 {
	w := p.RotateZ(GalaxyTiltZ).RotateY(GalaxySpin(t)).RotateX(GalaxyTiltX)
	w.Y += GalaxyOffsetY
	return w
}

// GalaxyOpacity fades the galaxy in as the camera pulls away from the Sun.
func GalaxyOpacity(cameraDist float64) float64 {
	return astro.Clamp((cameraDist-GalaxyFadeStart)/GalaxyFadeSpan, GalaxyMinFade, 1) * GalaxyMaxAlpha
}

// LabelsVisible reports whether body labels are shown at this distance.
func LabelsVisible(cameraDist float64) bool {
	return cameraDist <= LabelDistance
}

// FocusDistance is the camera distance used when focusing a body.
func FocusDistance(radius float64) float64 {
	if radius <= 0 {
		return sunFocusDistance
	}
	return radius*4 + 10
}

// FocusDistanceFor is FocusDistance for a body. Stars are framed from a
// fixed distance.
func FocusDistanceFor(b catalog.Body) float64 {
	if b.Kind == catalog.BodyStar {
		return FocusDistance(0)
	}
	return FocusDistance(b.Radius)
}

// Approach moves current toward target by FocusDamping of the remaining gap.
func Approach(current, target float64) float64 {
	return current + (target-current)*FocusDamping
}
