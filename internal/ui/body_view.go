package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-orrery/internal/astro"
	"github.com/litescript/ls-orrery/internal/catalog"
	"github.com/litescript/ls-orrery/internal/export"
	"github.com/litescript/ls-orrery/internal/scene"
)

// factsWidth is the width of the info panel beside the body.
const factsWidth = 34

// BodyViewModel renders a close-up of one body in its own frame: the body
// spins in place with its clouds and rings, beside an info panel.
type BodyViewModel struct {
	width   int
	height  int
	scene   *scene.Scene
	focus   *catalog.Body // nil shows the Sun
	elapsed float64

	cam       orbitCam
	showFacts bool
}

func bodyHome(b catalog.Body) astro.Camera {
	c := astro.DefaultCamera()
	c.Pitch = 0.35
	c.Distance = scene.FocusDistanceFor(b)
	c.Near = 0.1
	return c
}

// NewBodyViewModel creates the body view framing the Sun.
func NewBodyViewModel() BodyViewModel {
	return BodyViewModel{
		cam:       newOrbitCam(bodyHome(catalog.Sun()), 1, 2000),
		showFacts: true,
	}
}

// SetSize updates the viewport size.
func (m BodyViewModel) SetSize(width, height int) BodyViewModel {
	m.width = width
	m.height = height
	return m
}

// SetScene installs the generated scene.
func (m BodyViewModel) SetScene(sc *scene.Scene) BodyViewModel {
	m.scene = sc
	return m
}

// SetFocus selects the body to show; nil shows the Sun.
func (m BodyViewModel) SetFocus(b *catalog.Body) BodyViewModel {
	if sameBody(m.focus, b) {
		return m
	}
	m.focus = b
	m.cam.home = bodyHome(m.body())
	m.cam.reset()
	return m
}

// Advance moves the view to elapsed seconds.
func (m BodyViewModel) Advance(elapsed float64) BodyViewModel {
	m.elapsed = elapsed
	m.cam.ease()
	return m
}

// Reset restores the default framing.
func (m BodyViewModel) Reset() BodyViewModel {
	m.cam.reset()
	return m
}

// body returns the body on display.
func (m BodyViewModel) body() catalog.Body {
	if m.focus != nil {
		return *m.focus
	}
	return catalog.Sun()
}

// bodyScene finds the generated geometry of the body on display.
func (m BodyViewModel) bodyScene() (scene.BodyScene, bool) {
	if m.scene == nil {
		return scene.BodyScene{}, false
	}
	return m.scene.Body(m.body().Code)
}

// Update handles input messages.
func (m BodyViewModel) Update(msg tea.Msg) (BodyViewModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch key := msg.String(); key {
		case "i":
			m.showFacts = !m.showFacts
		default:
			m.cam.handleKey(key)
		}
	}
	return m, nil
}

// View renders the body view.
func (m BodyViewModel) View() string {
	if m.width < 20 || m.height < hudLines+4 {
		return "Terminal too small for body view"
	}

	canvasW := m.width
	showFacts := m.showFacts && m.width >= factsWidth+30
	if showFacts {
		canvasW -= factsWidth + 1
	}
	cv := m.draw(canvasW, m.height-hudLines)

	content := cv.Render()
	if showFacts {
		content = lipgloss.JoinHorizontal(lipgloss.Top, content, " ", m.renderFacts())
	}
	return lipgloss.JoinVertical(lipgloss.Left, content, m.renderHUD())
}

func (m BodyViewModel) draw(width, height int) *Canvas {
	cv := NewCanvas(width, height)
	bs, ok := m.bodyScene()
	if !ok {
		return cv
	}
	tr := scene.BodyTransform(m.elapsed, bs.Body)
	tr.Position = astro.Vec3{}
	drawBody(cv, m.cam.Projector(), bs, tr)
	return cv
}

func (m BodyViewModel) renderFacts() string {
	b := m.body()

	titleStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Width(10)
	valueStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	textStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("249")).Width(factsWidth - 2)
	panel := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("60")).
		Width(factsWidth - 2)

	var s strings.Builder
	s.WriteString(titleStyle.Render(strings.ToUpper(b.Name)))
	s.WriteString("\n\n")
	rows := []struct{ label, value string }{
		{"Distance", b.Facts.Distance},
		{"Speed", b.Facts.Speed},
		{"Diameter", b.Facts.Diameter},
	}
	for _, r := range rows {
		s.WriteString(labelStyle.Render(r.label + ":"))
		s.WriteString(valueStyle.Render(r.value))
		s.WriteString("\n")
	}
	s.WriteString("\n")
	s.WriteString(textStyle.Render(b.Facts.Description))
	return panel.Render(s.String())
}

func (m BodyViewModel) renderHUD() string {
	var b strings.Builder

	headerStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	valueStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	body := m.body()
	b.WriteString(headerStyle.Render("◉ " + body.Name))
	if bs, ok := m.bodyScene(); ok {
		b.WriteString("  ")
		b.WriteString(dimStyle.Render("Points:"))
		b.WriteString(valueStyle.Render(export.FormatCount(bs.PointCount())))
		if body.HasClouds() {
			b.WriteString(dimStyle.Render("  +clouds"))
		}
		if body.HasRings() {
			b.WriteString(dimStyle.Render("  +rings"))
		}
	}
	b.WriteString("\n")

	b.WriteString(dimStyle.Render("Camera:"))
	b.WriteString(valueStyle.Render(fmt.Sprintf("%.1f", m.cam.Distance)))
	b.WriteString("  ")
	b.WriteString(dimStyle.Render("Radius:"))
	b.WriteString(valueStyle.Render(fmt.Sprintf("%g", body.Radius)))
	return b.String()
}
