package ui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/litescript/ls-orrery/internal/astro"
)

// cellAspect is the width-to-height ratio correction for terminal cells,
// which are roughly twice as tall as they are wide.
const cellAspect = 2.0

type cell struct {
	glyph rune
	depth float64
	color colorful.Color
	label bool // labels are never overwritten by points
}

// Canvas is a character grid with a depth buffer. The nearest point plotted
// into a cell wins.
type Canvas struct {
	width, height int
	cells         []cell
}

// NewCanvas returns an empty canvas.
func NewCanvas(width, height int) *Canvas {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	c := &Canvas{width: width, height: height, cells: make([]cell, width*height)}
	for i := range c.cells {
		c.cells[i] = cell{glyph: ' ', depth: math.Inf(1)}
	}
	return c
}

// Size returns the canvas dimensions.
func (c *Canvas) Size() (width, height int) {
	return c.width, c.height
}

// ToScreen maps a projected point to a cell. The vertical field of view spans
// the canvas height.
func (c *Canvas) ToScreen(p astro.ProjectedPoint) (x, y int, ok bool) {
	if !p.Visible || c.width == 0 || c.height == 0 {
		return 0, 0, false
	}
	half := float64(c.height) / 2
	fx := float64(c.width)/2 + p.X*half*cellAspect
	fy := half - p.Y*half
	if math.IsNaN(fx) || math.IsNaN(fy) {
		return 0, 0, false
	}
	x, y = int(math.Floor(fx)), int(math.Floor(fy))
	return x, y, x >= 0 && x < c.width && y >= 0 && y < c.height
}

// Plot draws glyph at the projected point unless something nearer is
// already there. It reports whether the cell changed.
func (c *Canvas) Plot(p astro.ProjectedPoint, glyph rune, col colorful.Color) bool {
	x, y, ok := c.ToScreen(p)
	if !ok {
		return false
	}
	cl := &c.cells[y*c.width+x]
	if cl.label || p.Depth >= cl.depth {
		return false
	}
	cl.glyph, cl.depth, cl.color = glyph, p.Depth, col
	return true
}

// Label writes text starting at (x, y), clipped to the canvas.
func (c *Canvas) Label(x, y int, text string, col colorful.Color) {
	if y < 0 || y >= c.height {
		return
	}
	for i, r := range []rune(text) {
		cx := x + i
		if cx < 0 {
			continue
		}
		if cx >= c.width {
			break
		}
		c.cells[y*c.width+cx] = cell{glyph: r, depth: math.Inf(-1), color: col, label: true}
	}
}

// At returns the glyph and color of a cell.
func (c *Canvas) At(x, y int) (rune, colorful.Color) {
	cl := c.cells[y*c.width+x]
	return cl.glyph, cl.color
}

// Filled counts the non-empty cells.
func (c *Canvas) Filled() int {
	n := 0
	for _, cl := range c.cells {
		if cl.glyph != ' ' {
			n++
		}
	}
	return n
}

// Render returns the canvas as lines of truecolor text.
func (c *Canvas) Render() string {
	styles := make(map[string]lipgloss.Style)
	var b strings.Builder
	for y := 0; y < c.height; y++ {
		if y > 0 {
			b.WriteByte('\n')
		}
		for _, cl := range c.cells[y*c.width : (y+1)*c.width] {
			if cl.glyph == ' ' {
				b.WriteByte(' ')
				continue
			}
			hex := cl.color.Clamped().Hex()
			style, ok := styles[hex]
			if !ok {
				style = lipgloss.NewStyle().Foreground(lipgloss.Color(hex))
				styles[hex] = style
			}
			b.WriteString(style.Render(string(cl.glyph)))
		}
	}
	return b.String()
}
