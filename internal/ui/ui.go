// Package ui provides the terminal preview using Bubble Tea.
package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/litescript/ls-orrery/internal/catalog"
	"github.com/litescript/ls-orrery/internal/export"
	"github.com/litescript/ls-orrery/internal/state"
	"github.com/litescript/ls-orrery/internal/version"
)

// ViewMode represents the current UI view.
type ViewMode int

const (
	ViewSystem ViewMode = iota
	ViewGalaxy
	ViewBody
	viewCount
)

// Msg types for Bubble Tea
type (
	// AnimTickMsg advances the animation clock.
	AnimTickMsg time.Time

	// StateEventMsg carries an event from the state manager. ok is false
	// once the subscription is closed.
	StateEventMsg struct {
		Event state.Event
		ok    bool
	}
)

const (
	animInterval = 50 * time.Millisecond
	maxFrameStep = 0.25 // seconds
	eventBuffer  = 16
)

// Model is the root Bubble Tea model.
type Model struct {
	state  *state.Manager
	events <-chan state.Event
	cancel func()

	// UI state
	viewMode ViewMode
	width    int
	height   int
	ready    bool
	animTick int
	elapsed  float64
	lastTick time.Time

	// Focus order: bodies[focusIdx], or the overview at -1.
	bodies   []catalog.Body
	focusIdx int

	// Sub-models
	system SystemViewModel
	galaxy GalaxyViewModel
	body   BodyViewModel

	snapshot  state.Snapshot
	lastEvent []state.Event
}

// New creates the root UI model and subscribes to state events.
func New(stateMgr *state.Manager) Model {
	events, cancel := stateMgr.Subscribe(eventBuffer)
	m := Model{
		state:    stateMgr,
		events:   events,
		cancel:   cancel,
		viewMode: ViewSystem,
		bodies:   catalog.Default().Bodies(),
		focusIdx: -1,
		system:   NewSystemViewModel(),
		galaxy:   NewGalaxyViewModel(),
		body:     NewBodyViewModel(),
	}
	m.refresh()
	m.installScene()
	m.syncFocus()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(animTickCmd(), waitForEvent(m.events))
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			if m.cancel != nil {
				m.cancel()
			}
			return m, tea.Quit

		case "1":
			m.viewMode = ViewSystem
		case "2":
			m.viewMode = ViewGalaxy
		case "3":
			m.viewMode = ViewBody
		case "tab":
			m.viewMode = (m.viewMode + 1) % viewCount

		case "j":
			m.stepFocus(1)
		case "k":
			m.stepFocus(-1)
		case "r":
			_ = m.state.SetFocus("")
			m.refresh()
			m.syncFocus()
			m.system = m.system.Reset()
			m.galaxy = m.galaxy.Reset()
			m.body = m.body.Reset()

		default:
			cmds = append(cmds, m.updateActiveView(msg))
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

		contentHeight := msg.Height - m.headerHeight() - footerHeight
		m.system = m.system.SetSize(msg.Width, contentHeight)
		m.galaxy = m.galaxy.SetSize(msg.Width, contentHeight)
		m.body = m.body.SetSize(msg.Width, contentHeight)

	case AnimTickMsg:
		cmds = append(cmds, animTickCmd())
		m.animTick++
		now := time.Time(msg)
		if !m.lastTick.IsZero() {
			dt := now.Sub(m.lastTick).Seconds()
			if dt > maxFrameStep {
				dt = maxFrameStep
			}
			if dt > 0 {
				m.elapsed += dt
			}
		}
		m.lastTick = now

		m.system = m.system.Advance(m.elapsed)
		m.galaxy = m.galaxy.Advance(m.elapsed)
		m.body = m.body.Advance(m.elapsed)
		m.state.SetCameraDistance(m.system.CameraDistance())
		m.refresh()

	case StateEventMsg:
		if !msg.ok {
			return m, nil
		}
		cmds = append(cmds, waitForEvent(m.events))
		m.refresh()
		switch msg.Event.Type {
		case state.EventSceneReady:
			m.installScene()
		case state.EventFocusChanged:
			m.syncFocus()
		}

	default:
		cmds = append(cmds, m.updateActiveView(msg))
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) updateActiveView(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch m.viewMode {
	case ViewSystem:
		m.system, cmd = m.system.Update(msg)
	case ViewGalaxy:
		m.galaxy, cmd = m.galaxy.Update(msg)
	case ViewBody:
		m.body, cmd = m.body.Update(msg)
	}
	return cmd
}

func (m *Model) refresh() {
	m.snapshot = m.state.Snapshot()
	m.lastEvent = m.state.RecentEvents(1)
}

// installScene pushes the snapshot's scene into every view.
func (m *Model) installScene() {
	sc := m.snapshot.Scene
	m.system = m.system.SetScene(sc)
	m.galaxy = m.galaxy.SetScene(sc)
	m.body = m.body.SetScene(sc)
}

// syncFocus aligns the views and focus index with the snapshot's focus.
func (m *Model) syncFocus() {
	f := m.snapshot.Focus
	m.focusIdx = -1
	if f != nil {
		for i, b := range m.bodies {
			if b.Code == f.Code {
				m.focusIdx = i
				break
			}
		}
	}
	m.system = m.system.SetFocus(f)
	m.body = m.body.SetFocus(f)
}

// stepFocus moves the focus through overview, Sun, and planets, wrapping at
// either end.
func (m *Model) stepFocus(delta int) {
	n := len(m.bodies) + 1
	idx := ((m.focusIdx+1+delta)%n+n)%n - 1

	name := ""
	if idx >= 0 {
		name = m.bodies[idx].Code
	}
	_ = m.state.SetFocus(name)
	m.refresh()
	m.syncFocus()
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	var content string
	switch m.viewMode {
	case ViewSystem:
		content = m.system.View()
	case ViewGalaxy:
		content = m.galaxy.View()
	case ViewBody:
		content = m.body.View()
	}

	return m.renderHeader() + "\n" + content + "\n" + m.renderFooter()
}

var logo = []string{
	`  ██╗     ███████╗       ██████╗ ██████╗ ██████╗ ███████╗██████╗ ██╗   ██╗`,
	`  ██║     ██╔════╝      ██╔═══██╗██╔══██╗██╔══██╗██╔════╝██╔══██╗╚██╗ ██╔╝`,
	`  ██║     ███████╗█████╗██║   ██║██████╔╝██████╔╝█████╗  ██████╔╝ ╚████╔╝`,
	`  ██║     ╚════██║╚════╝██║   ██║██╔══██╗██╔══██╗██╔══╝  ██╔══██╗  ╚██╔╝`,
	`  ███████╗███████║      ╚██████╔╝██║  ██║██║  ██║███████╗██║  ██║   ██║`,
	`  ╚══════╝╚══════╝       ╚═════╝ ╚═╝  ╚═╝╚═╝  ╚═╝╚══════╝╚═╝  ╚═╝   ╚═╝`,
}

const (
	// logoMinHeight is the terminal height below which the logo collapses
	// to a single title line.
	logoMinHeight = 36
	footerHeight  = 2
)

func (m Model) showLogo() bool {
	return m.height >= logoMinHeight
}

// headerHeight is the number of lines above the view content.
func (m Model) headerHeight() int {
	if m.showLogo() {
		// blank, logo, tagline, blank, tabs
		return len(logo) + 4
	}
	// title, tabs
	return 2
}

func (m Model) renderHeader() string {
	muted := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))

	var b strings.Builder
	if m.showLogo() {
		b.WriteString("\n")
		for row, line := range logo {
			runes := []rune(line)
			for col, r := range runes {
				color := gradientColor(col, row, len(runes), len(logo))
				b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(string(r)))
			}
			b.WriteString("\n")
		}
		b.WriteString(muted.Render(fmt.Sprintf("  Procedural Galaxy & Solar System · v%s", version.Version)))
		b.WriteString("\n\n")
	} else {
		title := lipgloss.NewStyle().Foreground(lipgloss.Color("#9D4EDD")).Bold(true)
		b.WriteString(title.Render("  LS-ORRERY"))
		b.WriteString(muted.Render(fmt.Sprintf("  v%s", version.Version)))
		b.WriteString("\n")
	}
	b.WriteString(m.renderTabs())
	return b.String()
}

// Logo gradient stops: blue, purple, magenta, pink.
var gradientStops = []colorful.Color{
	{R: 59 / 255.0, G: 130 / 255.0, B: 246 / 255.0},
	{R: 139 / 255.0, G: 92 / 255.0, B: 246 / 255.0},
	{R: 217 / 255.0, G: 70 / 255.0, B: 239 / 255.0},
	{R: 236 / 255.0, G: 72 / 255.0, B: 153 / 255.0},
}

// gradientColor returns a hex color for a position in the logo: the stops
// run left to right and the rows darken toward the bottom.
func gradientColor(col, row, width, height int) string {
	if width <= 0 || height <= 0 {
		return gradientStops[0].Hex()
	}
	x := float64(col) / float64(width) * float64(len(gradientStops)-1)
	i := int(x)
	if i >= len(gradientStops)-1 {
		i = len(gradientStops) - 2
	}
	c := gradientStops[i].BlendLab(gradientStops[i+1], x-float64(i))

	k := 1 - float64(row)/float64(height)*0.5
	return colorful.Color{R: c.R * k, G: c.G * k, B: c.B * k}.Clamped().Hex()
}

func (m Model) renderTabs() string {
	tabs := []string{"[1] System", "[2] Galaxy", "[3] Body"}
	activeStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#9D4EDD")).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))

	var parts []string
	for i, tab := range tabs {
		if ViewMode(i) == m.viewMode {
			parts = append(parts, activeStyle.Render("▶ "+tab))
		} else {
			parts = append(parts, dimStyle.Render("  "+tab))
		}
	}
	return "  " + strings.Join(parts, "  ")
}

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

func (m Model) renderFooter() string {
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	errorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#E84A27"))
	accentStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#7B2CBF"))
	statusStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#C77DFF")).Bold(true)

	spinner := accentStyle.Render(spinnerFrames[m.animTick%len(spinnerFrames)])

	var status string
	switch {
	case m.snapshot.LastError != nil:
		status = errorStyle.Render("ERROR: " + m.snapshot.LastError.Error())
	case m.snapshot.Scene == nil:
		status = spinner + " " + m.renderShimmerText("Generating scene...")
	default:
		status = spinner + " " + statusStyle.Render(m.snapshot.Status)
		status += dimStyle.Render(fmt.Sprintf(" · %s points", export.FormatCount(m.snapshot.Scene.PointCount())))
	}
	if len(m.lastEvent) > 0 {
		status += "  " + dimStyle.Render("last: "+eventText(m.lastEvent[0]))
	}

	var help string
	switch m.viewMode {
	case ViewGalaxy:
		help = "arrows: orbit | +/-: zoom | t: stars | tab: switch view | q: quit"
	case ViewBody:
		help = "j/k: body | arrows: orbit | +/-: zoom | i: info | tab: switch view | q: quit"
	default:
		help = "j/k: focus | arrows: orbit | +/-: zoom | l: labels | t: stars | r: reset | q: quit"
	}

	return "  " + status + "\n  " + dimStyle.Render(help)
}

func eventText(e state.Event) string {
	switch {
	case e.Body != "":
		return string(e.Type) + " " + e.Body
	case e.Regime != "":
		return string(e.Type) + " " + e.Regime
	default:
		return string(e.Type)
	}
}

var (
	shimmerBase = colorful.Color{R: 80 / 255.0, G: 70 / 255.0, B: 120 / 255.0}
	shimmerPeak = colorful.Color{R: 180 / 255.0, G: 160 / 255.0, B: 220 / 255.0}
)

// renderShimmerText renders text with a soft highlight sweeping across it.
func (m Model) renderShimmerText(text string) string {
	runes := []rune(text)
	if len(runes) == 0 {
		return ""
	}

	pos := m.animTick % (len(runes) + 8)

	var result strings.Builder
	for i, r := range runes {
		dist := i - pos + 4
		if dist < 0 {
			dist = -dist
		}
		t := 1 - float64(dist)/6
		if t < 0 {
			t = 0
		}
		c := shimmerBase.BlendRgb(shimmerPeak, t).Clamped().Hex()
		result.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(c)).Render(string(r)))
	}
	return result.String()
}

// ActiveView returns the current view mode.
func (m Model) ActiveView() ViewMode {
	return m.viewMode
}

// Elapsed returns the animation clock in seconds.
func (m Model) Elapsed() float64 {
	return m.elapsed
}

func animTickCmd() tea.Cmd {
	return tea.Tick(animInterval, func(t time.Time) tea.Msg {
		return AnimTickMsg(t)
	})
}

// waitForEvent blocks for the next state event.
func waitForEvent(ch <-chan state.Event) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		e, ok := <-ch
		return StateEventMsg{Event: e, ok: ok}
	}
}
