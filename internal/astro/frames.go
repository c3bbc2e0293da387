// Package astro provides vector math and the orbit-camera projection used to
// view generated point clouds.
package astro

import (
	"math"
)

// Vec3 represents a 3D vector in scene units.
// Y is up; orbits lie in the XZ plane.
type Vec3 struct {
	X, Y, Z float64
}

// Norm returns the magnitude of the vector.
func (v Vec3) Norm() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Normalized returns a unit vector in the same direction.
func (v Vec3) Normalized() Vec3 {
	n := v.Norm()
	if n == 0 {
		return Vec3{}
	}
	return Vec3{X: v.X / n, Y: v.Y / n, Z: v.Z / n}
}

// Scale returns the vector scaled by a factor.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

// Add returns the sum of two vectors.
func (v Vec3) Add(u Vec3) Vec3 {
	return Vec3{X: v.X + u.X, Y: v.Y + u.Y, Z: v.Z + u.Z}
}

// Sub returns the difference of two vectors.
func (v Vec3) Sub(u Vec3) Vec3 {
	return Vec3{X: v.X - u.X, Y: v.Y - u.Y, Z: v.Z - u.Z}
}

// Dot returns the dot product.
func (v Vec3) Dot(u Vec3) float64 {
	return v.X*u.X + v.Y*u.Y + v.Z*u.Z
}

// Cross returns the cross product v × u.
func (v Vec3) Cross(u Vec3) Vec3 {
	return Vec3{
		X: v.Y*u.Z - v.Z*u.Y,
		Y: v.Z*u.X - v.X*u.Z,
		Z: v.X*u.Y - v.Y*u.X,
	}
}

// RotateX rotates the vector about the X axis by angle radians.
func (v Vec3) RotateX(angle float64) Vec3 {
	s, c := math.Sincos(angle)
	return Vec3{X: v.X, Y: v.Y*c - v.Z*s, Z: v.Y*s + v.Z*c}
}

// RotateY rotates the vector about the Y axis by angle radians.
// Matches the right-handed convention: +X turns toward -Z.
func (v Vec3) RotateY(angle float64) Vec3 {
	s, c := math.Sincos(angle)
	return Vec3{X: v.X*c + v.Z*s, Y: v.Y, Z: -v.X*s + v.Z*c}
}

// RotateZ rotates the vector about the Z axis by angle radians.
func (v Vec3) RotateZ(angle float64) Vec3 {
	s, c := math.Sincos(angle)
	return Vec3{X: v.X*c - v.Y*s, Y: v.X*s + v.Y*c, Z: v.Z}
}

// ProjectedPoint represents a 2D projected position with metadata.
type ProjectedPoint struct {
	X       float64 // Normalized screen X (-1 left, +1 right at the FOV edge)
	Y       float64 // Normalized screen Y (-1 bottom, +1 top at the FOV edge)
	Depth   float64 // Distance along the view direction
	Visible bool    // False when the point is behind the near plane
}

// Camera is an orbit camera looking at Target from Distance away.
type Camera struct {
	Target   Vec3
	Yaw      float64 // Radians around +Y; 0 looks from +Z toward -Z
	Pitch    float64 // Radians above the XZ plane
	Distance float64
	FOVDeg   float64 // Vertical field of view
	Near     float64
}

// DefaultCamera mirrors the overview framing: slightly above the orbital plane.
func DefaultCamera() Camera {
	return Camera{
		Yaw:      0,
		Pitch:    math.Atan2(180, 400),
		Distance: math.Hypot(180, 400),
		FOVDeg:   50,
		Near:     1,
	}
}

// Eye returns the camera position in scene space.
func (c Camera) Eye() Vec3 {
	cp := math.Cos(c.Pitch)
	dir := Vec3{
		X: cp * math.Sin(c.Yaw),
		Y: math.Sin(c.Pitch),
		Z: cp * math.Cos(c.Yaw),
	}
	return c.Target.Add(dir.Scale(c.Distance))
}

// basis returns the camera's right, up, and forward unit vectors.
func (c Camera) basis() (right, up, forward Vec3) {
	forward = c.Target.Sub(c.Eye()).Normalized()
	worldUp := Vec3{Y: 1}
	right = forward.Cross(worldUp)
	if right.Norm() < 1e-9 {
		// Looking straight down or up; any horizontal right axis works.
		right = Vec3{X: 1}
	}
	right = right.Normalized()
	up = right.Cross(forward)
	return right, up, forward
}

// Project maps a scene-space point into normalized screen coordinates.
// Use Projector when projecting many points from one pose.
func (c Camera) Project(p Vec3) ProjectedPoint {
	return c.Projector().Project(p)
}

// Projector caches the camera basis for projecting many points.
type Projector struct {
	eye, right, up, forward Vec3
	near, f                 float64
}

// Projector returns a cached projector for the camera's current pose.
func (c Camera) Projector() Projector {
	right, up, forward := c.basis()
	near := c.Near
	if near <= 0 {
		near = 1e-3
	}
	fov := c.FOVDeg
	if fov <= 0 {
		fov = 50
	}
	return Projector{
		eye:     c.Eye(),
		right:   right,
		up:      up,
		forward: forward,
		near:    near,
		f:       math.Tan(degToRad(fov) / 2),
	}
}

// Project maps v into normalized screen coordinates. Points at or behind
// the near plane come back invisible with only Depth set.
func (p Projector) Project(v Vec3) ProjectedPoint {
	d := v.Sub(p.eye)
	depth := d.Dot(p.forward)
	if depth <= p.near {
		return ProjectedPoint{Depth: depth}
	}
	return ProjectedPoint{
		X:       d.Dot(p.right) / (depth * p.f),
		Y:       d.Dot(p.up) / (depth * p.f),
		Depth:   depth,
		Visible: true,
	}
}

// degToRad converts degrees to radians.
func degToRad(deg float64) float64 {
	return deg * math.Pi / 180
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
