package ui

import (
	"math"
	"testing"

	"github.com/litescript/ls-orrery/internal/astro"
	"github.com/litescript/ls-orrery/internal/pointcloud"
)

func TestOrbitCamKeys(t *testing.T) {
	home := astro.DefaultCamera()

	tests := []struct {
		key   string
		check func(o orbitCam) bool
	}{
		{"right", func(o orbitCam) bool { return o.Yaw == home.Yaw+yawStep }},
		{"left", func(o orbitCam) bool { return o.Yaw == home.Yaw-yawStep }},
		{"up", func(o orbitCam) bool { return o.Pitch > home.Pitch }},
		{"down", func(o orbitCam) bool { return o.Pitch < home.Pitch }},
		{"+", func(o orbitCam) bool { return math.Abs(o.Distance-home.Distance/zoomStep) < 1e-9 }},
		{"=", func(o orbitCam) bool { return o.Distance < home.Distance }},
		{"-", func(o orbitCam) bool { return math.Abs(o.Distance-home.Distance*zoomStep) < 1e-9 }},
		{"_", func(o orbitCam) bool { return o.Distance > home.Distance }},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			o := newOrbitCam(home, 5, 5000)
			if !o.handleKey(tt.key) {
				t.Fatal("key not handled")
			}
			if !tt.check(o) {
				t.Errorf("camera after %q = %+v", tt.key, o.Camera)
			}
			if !o.userAdjusted {
				t.Error("userAdjusted should be set")
			}
		})
	}
}

func TestOrbitCamUnknownKey(t *testing.T) {
	o := newOrbitCam(astro.DefaultCamera(), 5, 5000)
	if o.handleKey("x") {
		t.Error("x should not be handled")
	}
	if o.userAdjusted || o.Camera != o.home {
		t.Error("unknown key changed the camera")
	}
}

func TestOrbitCamLimits(t *testing.T) {
	o := newOrbitCam(astro.DefaultCamera(), 5, 5000)
	for i := 0; i < 100; i++ {
		o.handleKey("up")
		o.handleKey("+")
	}
	if o.Pitch != maxPitch {
		t.Errorf("Pitch = %f, want %f", o.Pitch, maxPitch)
	}
	if o.Distance != 5 {
		t.Errorf("Distance = %f, want 5", o.Distance)
	}

	for i := 0; i < 100; i++ {
		o.handleKey("down")
		o.handleKey("-")
	}
	if o.Pitch != -maxPitch {
		t.Errorf("Pitch = %f, want %f", o.Pitch, -maxPitch)
	}
	if o.Distance != 5000 {
		t.Errorf("Distance = %f, want 5000", o.Distance)
	}
}

func TestOrbitCamEase(t *testing.T) {
	o := newOrbitCam(astro.DefaultCamera(), 5, 5000)
	o.approach(100)

	prev := o.Distance
	o.ease()
	if o.Distance >= prev || o.Distance <= 100 {
		t.Errorf("one step: %f -> %f", prev, o.Distance)
	}

	for i := 0; i < 500; i++ {
		o.ease()
	}
	if o.Distance != 100 || o.goal != 0 {
		t.Errorf("after easing: distance %f goal %f", o.Distance, o.goal)
	}

	// Goals are clamped to the zoom range.
	o.approach(1)
	if o.goal != 5 {
		t.Errorf("goal = %f, want 5", o.goal)
	}

	// Zooming cancels the approach.
	o.handleKey("-")
	if o.goal != 0 {
		t.Error("zoom should cancel the goal")
	}

	o.reset()
	if o.Camera != o.home || o.userAdjusted {
		t.Error("reset should restore home")
	}
}

func TestGlyphFor(t *testing.T) {
	tests := []struct {
		layer pointcloud.Layer
		size  float32
		want  rune
	}{
		{pointcloud.LayerGalaxy, 100, '·'},
		{pointcloud.LayerGalaxy, 250, '*'},
		{pointcloud.LayerSurface, 0, '•'},
		{pointcloud.LayerClouds, 0, '∙'},
		{pointcloud.LayerCorona, 0, '∗'},
		{pointcloud.LayerRings, 0, '·'},
		{pointcloud.LayerStars, 0, '.'},
		{pointcloud.LayerOrbit, 0, '˙'},
		{pointcloud.Layer(99), 0, '?'},
	}

	for _, tt := range tests {
		if got := glyphFor(tt.layer, tt.size); got != tt.want {
			t.Errorf("glyphFor(%v, %v) = %q, want %q", tt.layer, tt.size, got, tt.want)
		}
	}
}
