// Package export writes generated scenes out of the process: a JSON summary,
// a text table, and per-layer PLY point files.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/litescript/ls-orrery/internal/catalog"
	"github.com/litescript/ls-orrery/internal/pointcloud"
	"github.com/litescript/ls-orrery/internal/scene"
)

// SceneExport is the JSON-serializable summary of a scene.
type SceneExport struct {
	Seed        uint64        `json:"seed"`
	GeneratedAt time.Time     `json:"generated_at"`
	ElapsedMS   int64         `json:"elapsed_ms"`
	TotalPoints int           `json:"total_points"`
	Layers      []LayerExport `json:"layers"`
	Bodies      []BodyExport  `json:"bodies"`
}

// LayerExport describes one point cloud.
type LayerExport struct {
	Layer   string       `json:"layer"`
	Name    string       `json:"name"`
	Points  int          `json:"points"`
	Sized   bool         `json:"sized"`
	Opacity float32      `json:"opacity"`
	Bounds  BoundsExport `json:"bounds"`
}

// BoundsExport is a JSON-friendly bounding box.
type BoundsExport struct {
	Min [3]float64 `json:"min"`
	Max [3]float64 `json:"max"`
}

// BodyExport is a JSON-friendly body with its generated point counts.
type BodyExport struct {
	Name        string  `json:"name"`
	Code        string  `json:"code"`
	Kind        string  `json:"kind"`
	Class       string  `json:"class,omitempty"`
	Radius      float64 `json:"radius"`
	Distance    float64 `json:"distance"`
	Speed       float64 `json:"speed"`
	Points      int     `json:"points"`
	Clouds      bool    `json:"clouds"`
	Rings       bool    `json:"rings"`
	Description string  `json:"description,omitempty"`
}

// ExportScene converts a scene to an exportable format.
func ExportScene(sc *scene.Scene) *SceneExport {
	if sc == nil {
		return &SceneExport{}
	}

	export := &SceneExport{
		Seed:        sc.Seed,
		GeneratedAt: sc.GeneratedAt,
		ElapsedMS:   sc.Elapsed.Milliseconds(),
	}

	for _, c := range sc.Clouds() {
		b := c.Bounds()
		export.Layers = append(export.Layers, LayerExport{
			Layer:   c.Layer.String(),
			Name:    c.Name,
			Points:  c.Len(),
			Sized:   c.Sized(),
			Opacity: c.Opacity,
			Bounds: BoundsExport{
				Min: [3]float64{b.Min.X, b.Min.Y, b.Min.Z},
				Max: [3]float64{b.Max.X, b.Max.Y, b.Max.Z},
			},
		})
		export.TotalPoints += c.Len()
	}

	for _, bs := range bodies(sc) {
		b := bs.Body
		be := BodyExport{
			Name:        b.Name,
			Code:        b.Code,
			Kind:        b.Kind.String(),
			Radius:      b.Radius,
			Distance:    b.Distance,
			Speed:       b.Speed,
			Points:      bs.PointCount(),
			Clouds:      bs.Clouds.Clouds != nil,
			Rings:       bs.Rings != nil,
			Description: b.Facts.Description,
		}
		if b.Kind == catalog.BodyPlanet {
			be.Class = b.Class.String()
		}
		export.Bodies = append(export.Bodies, be)
	}

	return export
}

func bodies(sc *scene.Scene) []scene.BodyScene {
	return append([]scene.BodyScene{sc.Sun}, sc.Bodies...)
}

// WriteJSON writes the export as indented JSON to the given writer.
func (s *SceneExport) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}

// SummaryRow represents one body in the summary table.
type SummaryRow struct {
	Body     string
	Code     string
	Kind     string
	Radius   float64
	Distance float64
	Surface  int
	Clouds   int
	Rings    int
	Total    int
}

// GenerateSummaryRows creates one row per body, the Sun first.
func GenerateSummaryRows(sc *scene.Scene) []SummaryRow {
	if sc == nil {
		return nil
	}

	var rows []SummaryRow
	for _, bs := range bodies(sc) {
		row := SummaryRow{
			Body:     bs.Body.Name,
			Code:     bs.Body.Code,
			Kind:     bs.Body.Kind.String(),
			Radius:   bs.Body.Radius,
			Distance: bs.Body.Distance,
			Total:    bs.PointCount(),
		}
		if bs.Body.Kind == catalog.BodyPlanet {
			row.Kind = bs.Body.Class.String()
		}
		if bs.Clouds.Surface != nil {
			row.Surface = bs.Clouds.Surface.Len()
		}
		if bs.Clouds.Clouds != nil {
			row.Clouds = bs.Clouds.Clouds.Len()
		}
		if bs.Clouds.Corona != nil {
			row.Clouds = bs.Clouds.Corona.Len()
		}
		if bs.Rings != nil {
			row.Rings = bs.Rings.Len()
		}
		rows = append(rows, row)
	}
	return rows
}

// WriteSummaryTable writes a text table of the scene to the given writer.
func WriteSummaryTable(w io.Writer, sc *scene.Scene) {
	if sc == nil {
		fmt.Fprintln(w, "No scene generated")
		return
	}

	fmt.Fprintf(w, "Orrery @ %s (seed %d, %v)\n",
		sc.GeneratedAt.Format(time.RFC3339), sc.Seed, sc.Elapsed.Round(time.Millisecond))
	fmt.Fprintln(w, strings.Repeat("─", 78))

	// Header
	fmt.Fprintf(w, "%-10s %-6s %-6s %6s %8s %9s %8s %8s %9s\n",
		"Body", "Code", "Kind", "Radius", "Distance", "Surface", "Shell", "Rings", "Total")
	fmt.Fprintln(w, strings.Repeat("─", 78))

	for _, r := range GenerateSummaryRows(sc) {
		fmt.Fprintf(w, "%-10s %-6s %-6s %6.1f %8.0f %9s %8s %8s %9s\n",
			truncateStr(r.Body, 10),
			truncateStr(r.Code, 6),
			truncateStr(r.Kind, 6),
			r.Radius,
			r.Distance,
			FormatCount(r.Surface),
			FormatCount(r.Clouds),
			FormatCount(r.Rings),
			FormatCount(r.Total),
		)
	}
	fmt.Fprintln(w, strings.Repeat("─", 78))

	if sc.Galaxy != nil {
		fmt.Fprintf(w, "%-24s %s points\n", "Galaxy", FormatCount(sc.Galaxy.Len()))
	}
	if sc.Stars != nil {
		fmt.Fprintf(w, "%-24s %s points\n", "Star field", FormatCount(sc.Stars.Len()))
	}
	fmt.Fprintf(w, "%-24s %d paths\n", "Orbits", len(sc.Orbits))

	fmt.Fprintf(w, "\nTotal: %s points in %d layers\n", FormatCount(sc.PointCount()), len(sc.Clouds()))
}

// FormatCount renders a point count compactly: 950, 12.5k, 1.18M.
func FormatCount(n int) string {
	switch {
	case n <= 0:
		return "-"
	case n < 1000:
		return fmt.Sprintf("%d", n)
	case n < 1_000_000:
		return trimZero(fmt.Sprintf("%.1f", float64(n)/1e3)) + "k"
	default:
		return trimZero(fmt.Sprintf("%.2f", float64(n)/1e6)) + "M"
	}
}

func trimZero(s string) string {
	if strings.Contains(s, ".") {
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
	}
	return s
}

func truncateStr(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-2] + ".."
}

// layerSlug names a cloud for file output, e.g. "surface-earth".
func layerSlug(c *pointcloud.Cloud) string {
	name := strings.ToLower(strings.TrimSpace(c.Name))
	var b strings.Builder
	dash := false
	for _, r := range name {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	slug := strings.TrimSuffix(b.String(), "-")
	if slug == "" {
		return c.Layer.String()
	}
	return c.Layer.String() + "-" + slug
}
