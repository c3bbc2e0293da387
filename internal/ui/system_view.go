package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-orrery/internal/astro"
	"github.com/litescript/ls-orrery/internal/catalog"
	"github.com/litescript/ls-orrery/internal/procgen"
	"github.com/litescript/ls-orrery/internal/scene"
)

// LabelMode controls how body labels are displayed.
type LabelMode int

const (
	LabelNone    LabelMode = iota // No labels
	LabelFocused                  // Only the focused body
	LabelAll                      // Every body
)

func (l LabelMode) String() string {
	switch l {
	case LabelNone:
		return "off"
	case LabelFocused:
		return "focus"
	default:
		return "all"
	}
}

// hudLines is the height of the text below each view's canvas.
const hudLines = 2

// SystemViewModel renders the whole orrery: Sun, planets on their orbits,
// orbit paths, the star field, and the galaxy fading in from afar.
type SystemViewModel struct {
	width   int
	height  int
	scene   *scene.Scene
	focus   *catalog.Body
	elapsed float64

	cam       orbitCam
	labelMode LabelMode
	showStars bool
}

// NewSystemViewModel creates the system view with the overview camera.
func NewSystemViewModel() SystemViewModel {
	return SystemViewModel{
		cam:       newOrbitCam(astro.DefaultCamera(), 5, 250000),
		labelMode: LabelAll,
		showStars: true,
	}
}

// SetSize updates the viewport size.
func (m SystemViewModel) SetSize(width, height int) SystemViewModel {
	m.width = width
	m.height = height
	return m
}

// SetScene installs the generated scene.
func (m SystemViewModel) SetScene(sc *scene.Scene) SystemViewModel {
	m.scene = sc
	return m
}

// SetFocus changes the focused body (nil for the overview) and starts the
// camera toward its framing distance.
func (m SystemViewModel) SetFocus(b *catalog.Body) SystemViewModel {
	if sameBody(m.focus, b) {
		return m
	}
	m.focus = b
	if b == nil {
		m.cam.approach(m.cam.home.Distance)
	} else {
		m.cam.approach(scene.FocusDistanceFor(*b))
	}
	return m
}

// Advance moves the view to elapsed seconds and eases the camera.
func (m SystemViewModel) Advance(elapsed float64) SystemViewModel {
	m.elapsed = elapsed
	m.cam.ease()
	m.cam.Target = m.focusPosition()
	return m
}

// Reset restores the overview camera.
func (m SystemViewModel) Reset() SystemViewModel {
	m.cam.reset()
	m.focus = nil
	return m
}

// CameraDistance is the eye's distance from the Sun.
func (m SystemViewModel) CameraDistance() float64 {
	return m.cam.Eye().Norm()
}

func (m SystemViewModel) focusPosition() astro.Vec3 {
	if m.focus == nil {
		return astro.Vec3{}
	}
	return scene.OrbitPosition(m.elapsed, *m.focus)
}

// Update handles input messages.
func (m SystemViewModel) Update(msg tea.Msg) (SystemViewModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch key := msg.String(); key {
		case "l":
			m.labelMode = (m.labelMode + 1) % 3
		case "t":
			m.showStars = !m.showStars
		default:
			m.cam.handleKey(key)
		}
	}
	return m, nil
}

// View renders the system view.
func (m SystemViewModel) View() string {
	if m.width < 20 || m.height < hudLines+4 {
		return "Terminal too small for system view"
	}
	cv := m.draw(m.width, m.height-hudLines)
	return lipgloss.JoinVertical(lipgloss.Left, cv.Render(), m.renderHUD())
}

// draw renders the scene onto a canvas of the given size.
func (m SystemViewModel) draw(width, height int) *Canvas {
	cv := NewCanvas(width, height)
	if m.scene == nil {
		return cv
	}
	pr := m.cam.Projector()
	t := m.elapsed
	dist := m.CameraDistance()

	drawBody(cv, pr, m.scene.Sun, scene.BodyTransform(t, m.scene.Sun.Body))
	for _, bs := range m.scene.Bodies {
		drawBody(cv, pr, bs, scene.BodyTransform(t, bs.Body))
	}
	for _, o := range m.scene.Orbits {
		drawCloud(cv, pr, o, nil, 1, 0)
	}
	if m.showStars {
		drawCloud(cv, pr, m.scene.Stars, nil, procgen.StarOpacity(t), pointLimit)
	}
	if g := m.scene.Galaxy; g != nil && g.Opacity > 0 {
		alpha := scene.GalaxyOpacity(dist) / float64(g.Opacity)
		drawCloud(cv, pr, g, func(p astro.Vec3) astro.Vec3 {
			return scene.GalaxyToScene(p, t)
		}, alpha, pointLimit)
	}

	if m.labelMode != LabelNone && scene.LabelsVisible(dist) {
		m.drawLabels(cv, pr)
	}
	return cv
}

func (m SystemViewModel) drawLabels(cv *Canvas, pr astro.Projector) {
	bodies := append([]scene.BodyScene{m.scene.Sun}, m.scene.Bodies...)
	for _, bs := range bodies {
		focused := sameBody(m.focus, &bs.Body)
		if m.labelMode == LabelFocused && !focused {
			continue
		}
		centre := scene.OrbitPosition(m.elapsed, bs.Body)
		x, y, ok := cv.ToScreen(pr.Project(centre))
		if !ok {
			continue
		}
		text, col := bs.Body.Name, labelColor
		if focused {
			text, col = "◄ "+bs.Body.Name, focusColor
		}
		cv.Label(x+2, y, text, col)
	}
}

func (m SystemViewModel) renderHUD() string {
	var b strings.Builder

	headerStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Width(10)
	valueStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	if m.focus != nil {
		b.WriteString(headerStyle.Render("◆ " + m.focus.Name))
		b.WriteString("  ")
		b.WriteString(labelStyle.Render("Distance:"))
		b.WriteString(valueStyle.Render(m.focus.Facts.Distance))
		b.WriteString("  ")
		b.WriteString(labelStyle.Render("Speed:"))
		b.WriteString(valueStyle.Render(m.focus.Facts.Speed))
	} else {
		b.WriteString(headerStyle.Render("☉ Solar System"))
		b.WriteString("  ")
		b.WriteString(dimStyle.Render("(j/k to focus a body)"))
	}
	b.WriteString("\n")

	starsName := "off"
	if m.showStars {
		starsName = "on"
	}
	b.WriteString(dimStyle.Render("Camera:"))
	b.WriteString(valueStyle.Render(fmt.Sprintf("%.0f", m.CameraDistance())))
	b.WriteString("  ")
	b.WriteString(dimStyle.Render("Labels:"))
	b.WriteString(valueStyle.Render(m.labelMode.String()))
	b.WriteString("  ")
	b.WriteString(dimStyle.Render("Stars:"))
	b.WriteString(valueStyle.Render(starsName))
	b.WriteString("  ")
	b.WriteString(dimStyle.Render("T+"))
	b.WriteString(valueStyle.Render(fmt.Sprintf("%.0fs", m.elapsed)))

	return b.String()
}

// FocusedBody returns the focused body, or nil in the overview.
func (m SystemViewModel) FocusedBody() *catalog.Body {
	return m.focus
}

// ShowStars returns whether the star field is visible.
func (m SystemViewModel) ShowStars() bool {
	return m.showStars
}

func sameBody(a, b *catalog.Body) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Code == b.Code
}
