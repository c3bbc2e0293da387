package export

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/litescript/ls-orrery/internal/astro"
	"github.com/litescript/ls-orrery/internal/pointcloud"
)

func TestWritePLY(t *testing.T) {
	c := pointcloud.New(pointcloud.LayerSurface, "Earth", 2)
	c.Opacity = 0.5
	c.Add(astro.Vec3{X: 1, Y: -2.5, Z: 0}, pointcloud.RGB{R: 1, G: 0.5, B: 0})
	c.Add(astro.Vec3{X: 0.25, Y: 3, Z: -1}, pointcloud.RGB{R: 1.4, G: -0.2, B: 0.2})

	var buf bytes.Buffer
	if err := WritePLY(&buf, c); err != nil {
		t.Fatalf("WritePLY: %v", err)
	}

	want := strings.Join([]string{
		"ply",
		"format ascii 1.0",
		"comment layer surface",
		"comment name Earth",
		"comment opacity 0.5",
		"element vertex 2",
		"property float x",
		"property float y",
		"property float z",
		"property uchar red",
		"property uchar green",
		"property uchar blue",
		"end_header",
		"1 -2.5 0 255 128 0",
		"0.25 3 -1 255 0 51",
		"",
	}, "\n")
	if got := buf.String(); got != want {
		t.Errorf("WritePLY output:\n%s\nwant:\n%s", got, want)
	}
}

func TestWritePLY_Sized(t *testing.T) {
	c := pointcloud.New(pointcloud.LayerGalaxy, "Milky Way", 1)
	c.AddSized(astro.Vec3{X: 100}, pointcloud.RGB{R: 1, G: 1, B: 1}, 150)

	var buf bytes.Buffer
	if err := WritePLY(&buf, c); err != nil {
		t.Fatalf("WritePLY: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "property float size\nend_header\n") {
		t.Errorf("size property missing:\n%s", out)
	}
	if !strings.HasSuffix(out, "end_header\n100 0 0 255 255 255 150\n") {
		t.Errorf("sized vertex row wrong:\n%s", out)
	}
}

func TestWritePLY_Invalid(t *testing.T) {
	c := pointcloud.New(pointcloud.LayerStars, "Stars", 1)
	c.Positions = append(c.Positions, 1, 2, 3)

	if err := WritePLY(&bytes.Buffer{}, c); err == nil {
		t.Error("expected error for mismatched buffers")
	}
}

func TestChannel(t *testing.T) {
	tests := []struct {
		in   float32
		want uint8
	}{
		{-1, 0},
		{0, 0},
		{0.5, 128},
		{0.999, 255},
		{1, 255},
		{7, 255},
	}
	for _, tt := range tests {
		if got := channel(tt.in); got != tt.want {
			t.Errorf("channel(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestWritePLYDir(t *testing.T) {
	sc := buildScene(t)
	dir := filepath.Join(t.TempDir(), "layers")

	paths, err := WritePLYDir(dir, sc)
	if err != nil {
		t.Fatalf("WritePLYDir: %v", err)
	}
	if len(paths) != len(sc.Clouds()) {
		t.Fatalf("wrote %d files, want %d", len(paths), len(sc.Clouds()))
	}

	seen := make(map[string]bool)
	for _, p := range paths {
		if seen[p] {
			t.Errorf("duplicate file %s", p)
		}
		seen[p] = true
	}

	data, err := os.ReadFile(filepath.Join(dir, "galaxy-milky-way.ply"))
	if err != nil {
		t.Fatalf("galaxy file: %v", err)
	}
	lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	header := 0
	for i, l := range lines {
		if l == "end_header" {
			header = i + 1
			break
		}
	}
	if got := len(lines) - header; got != sc.Galaxy.Len() {
		t.Errorf("galaxy file has %d vertex rows, want %d", got, sc.Galaxy.Len())
	}
	if _, err := os.Stat(filepath.Join(dir, "rings-saturn.ply")); err != nil {
		t.Errorf("saturn rings file: %v", err)
	}
}

func TestWritePLYDir_NilScene(t *testing.T) {
	if _, err := WritePLYDir(t.TempDir(), nil); err == nil {
		t.Error("expected error for nil scene")
	}
}
