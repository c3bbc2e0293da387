package export

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"github.com/litescript/ls-orrery/internal/pointcloud"
	"github.com/litescript/ls-orrery/internal/scene"
)

// WritePLY writes the cloud as an ASCII PLY file. Each vertex carries x, y, z
// as float, red, green, blue as uchar, and size as float when the cloud is
// sized. Colors outside [0,1] are clamped.
func WritePLY(w io.Writer, c *pointcloud.Cloud) error {
	if err := c.Validate(); err != nil {
		return fmt.Errorf("write ply: %w", err)
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "ply")
	fmt.Fprintln(bw, "format ascii 1.0")
	fmt.Fprintf(bw, "comment layer %s\n", c.Layer)
	fmt.Fprintf(bw, "comment name %s\n", c.Name)
	fmt.Fprintf(bw, "comment opacity %s\n", formatFloat(c.Opacity))
	fmt.Fprintf(bw, "element vertex %d\n", c.Len())
	for _, p := range []string{"x", "y", "z"} {
		fmt.Fprintf(bw, "property float %s\n", p)
	}
	for _, p := range []string{"red", "green", "blue"} {
		fmt.Fprintf(bw, "property uchar %s\n", p)
	}
	sized := c.Sized()
	if sized {
		fmt.Fprintln(bw, "property float size")
	}
	fmt.Fprintln(bw, "end_header")

	buf := make([]byte, 0, 96)
	for i := 0; i < c.Len(); i++ {
		j := i * 3
		buf = buf[:0]
		for k := 0; k < 3; k++ {
			buf = strconv.AppendFloat(buf, float64(c.Positions[j+k]), 'g', -1, 32)
			buf = append(buf, ' ')
		}
		for k := 0; k < 3; k++ {
			buf = strconv.AppendUint(buf, uint64(channel(c.Colors[j+k])), 10)
			if k < 2 || sized {
				buf = append(buf, ' ')
			}
		}
		if sized {
			buf = strconv.AppendFloat(buf, float64(c.Sizes[i]), 'g', -1, 32)
		}
		buf = append(buf, '\n')
		if _, err := bw.Write(buf); err != nil {
			return fmt.Errorf("write ply: %w", err)
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write ply: %w", err)
	}
	return nil
}

// channel converts a [0,1] color component to a byte.
func channel(v float32) uint8 {
	if !(v > 0) {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(math.Round(float64(v) * 255))
}

func formatFloat(v float32) string {
	return strconv.FormatFloat(float64(v), 'g', -1, 32)
}

// PLYFileName is the file name WritePLYDir uses for a cloud.
func PLYFileName(c *pointcloud.Cloud) string {
	return layerSlug(c) + ".ply"
}

// WritePLYDir writes every layer of the scene into dir, one file per cloud,
// creating dir if needed. It returns the paths written in scene order.
func WritePLYDir(dir string, sc *scene.Scene) ([]string, error) {
	if sc == nil {
		return nil, fmt.Errorf("write ply: no scene")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create %s: %w", dir, err)
	}

	var paths []string
	for _, c := range sc.Clouds() {
		path := filepath.Join(dir, PLYFileName(c))
		if err := writePLYFile(path, c); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func writePLYFile(path string, c *pointcloud.Cloud) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WritePLY(f, c); err != nil {
		f.Close()
		return fmt.Errorf("%s: %w", path, err)
	}
	return f.Close()
}
