package ui

import (
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-orrery/internal/astro"
	"github.com/litescript/ls-orrery/internal/export"
	"github.com/litescript/ls-orrery/internal/scene"
)

// galaxyHome frames the whole disc from above and to one side.
func galaxyHome() astro.Camera {
	return astro.Camera{
		Yaw:      0.4,
		Pitch:    0.9,
		Distance: 190000,
		FOVDeg:   50,
		Near:     10,
	}
}

// GalaxyViewModel renders the galaxy point cloud on its own, spinning in its
// local frame.
type GalaxyViewModel struct {
	width   int
	height  int
	scene   *scene.Scene
	elapsed float64

	cam       orbitCam
	showStars bool
}

// NewGalaxyViewModel creates the galaxy view.
func NewGalaxyViewModel() GalaxyViewModel {
	return GalaxyViewModel{cam: newOrbitCam(galaxyHome(), 2000, 600000)}
}

// SetSize updates the viewport size.
func (m GalaxyViewModel) SetSize(width, height int) GalaxyViewModel {
	m.width = width
	m.height = height
	return m
}

// SetScene installs the generated scene.
func (m GalaxyViewModel) SetScene(sc *scene.Scene) GalaxyViewModel {
	m.scene = sc
	return m
}

// Advance moves the view to elapsed seconds.
func (m GalaxyViewModel) Advance(elapsed float64) GalaxyViewModel {
	m.elapsed = elapsed
	m.cam.ease()
	return m
}

// Reset restores the default framing.
func (m GalaxyViewModel) Reset() GalaxyViewModel {
	m.cam.reset()
	return m
}

// Update handles input messages.
func (m GalaxyViewModel) Update(msg tea.Msg) (GalaxyViewModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch key := msg.String(); key {
		case "t":
			m.showStars = !m.showStars
		default:
			m.cam.handleKey(key)
		}
	}
	return m, nil
}

// View renders the galaxy view.
func (m GalaxyViewModel) View() string {
	if m.width < 20 || m.height < hudLines+4 {
		return "Terminal too small for galaxy view"
	}
	cv := m.draw(m.width, m.height-hudLines)
	return lipgloss.JoinVertical(lipgloss.Left, cv.Render(), m.renderHUD())
}

func (m GalaxyViewModel) draw(width, height int) *Canvas {
	cv := NewCanvas(width, height)
	if m.scene == nil || m.scene.Galaxy == nil {
		return cv
	}
	pr := m.cam.Projector()
	spin := scene.GalaxySpin(m.elapsed)

	// Brighter than in the system view, where it is a backdrop.
	drawCloud(cv, pr, m.scene.Galaxy, func(p astro.Vec3) astro.Vec3 {
		return p.RotateY(spin)
	}, 1.2, pointLimit*2)
	if m.showStars {
		drawCloud(cv, pr, m.scene.Stars, nil, 0.6, pointLimit)
	}

	// Mark where the Sun sits relative to the disc centre.
	sun := astro.Vec3{Y: -scene.GalaxyOffsetY}
	if x, y, ok := cv.ToScreen(m.cam.Project(sun)); ok {
		cv.Label(x, y, "☉ Sun", focusColor)
	}
	return cv
}

func (m GalaxyViewModel) renderHUD() string {
	var b strings.Builder

	headerStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	valueStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	b.WriteString(headerStyle.Render("✦ Milky Way"))
	if m.scene != nil && m.scene.Galaxy != nil {
		b.WriteString("  ")
		b.WriteString(dimStyle.Render("Points:"))
		b.WriteString(valueStyle.Render(export.FormatCount(m.scene.Galaxy.Len())))
	}
	b.WriteString("\n")

	b.WriteString(dimStyle.Render("Camera:"))
	b.WriteString(valueStyle.Render(fmt.Sprintf("%.0f", m.cam.Distance)))
	b.WriteString("  ")
	b.WriteString(dimStyle.Render("Spin:"))
	b.WriteString(valueStyle.Render(fmt.Sprintf("%.1f°", math.Mod(scene.GalaxySpin(m.elapsed)*180/math.Pi, 360))))
	return b.String()
}
