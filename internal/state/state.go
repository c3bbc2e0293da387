// Package state provides thread-safe presentation state for the orrery: the
// generated scene, the focused body, the camera distance, and the events
// those produce.
package state

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/litescript/ls-orrery/internal/astro"
	"github.com/litescript/ls-orrery/internal/catalog"
	"github.com/litescript/ls-orrery/internal/scene"
)

// EventType represents the type of state change event.
type EventType string

const (
	EventSceneReady    EventType = "SCENE_READY"
	EventFocusChanged  EventType = "FOCUS_CHANGED"
	EventRegimeChanged EventType = "VIEW_REGIME_CHANGED"
)

// Regime is the coarse view mode selected by camera distance.
type Regime int

const (
	RegimeSystem Regime = iota
	RegimeInterstellar
)

func (r Regime) String() string {
	if r == RegimeInterstellar {
		return "interstellar"
	}
	return "system"
}

// RegimeFor returns the regime for a camera distance.
func RegimeFor(cameraDist float64) Regime {
	if scene.LabelsVisible(cameraDist) {
		return RegimeSystem
	}
	return RegimeInterstellar
}

// Status bar texts.
const (
	StatusOverview     = "SYSTEM OVERVIEW"
	StatusSolarCore    = "TARGET: SOLAR CORE"
	StatusInterstellar = "INTERSTELLAR SPACE - MILKY WAY"
	statusAnalyzing    = "ANALYZING: "
)

// ErrUnknownBody is returned when focusing a body that does not exist.
var ErrUnknownBody = errors.New("unknown body")

// Event represents a presentation state change.
type Event struct {
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Body      string    `json:"body,omitempty"`
	Regime    string    `json:"regime,omitempty"`
	Status    string    `json:"status"`
}

// Manager handles all shared presentation state with thread-safe access.
type Manager struct {
	mu sync.RWMutex

	// Current state
	scene      *scene.Scene
	lastError  error
	focus      *catalog.Body
	cameraDist float64
	regime     Regime

	// Event log (ring buffer)
	events       []Event
	maxEvents    int
	eventWriteAt int

	subscribers map[int]chan Event
	nextSubID   int
}

// Config holds configuration for the state manager.
type Config struct {
	MaxEvents     int
	InitialCamera float64 // starting camera distance
}

// DefaultConfig returns sensible default configuration.
func DefaultConfig() Config {
	return Config{
		MaxEvents:     50,
		InitialCamera: astro.DefaultCamera().Distance,
	}
}

// NewManager creates a new state manager.
func NewManager(cfg Config) *Manager {
	maxEvents := cfg.MaxEvents
	if maxEvents <= 0 {
		maxEvents = 50
	}
	return &Manager{
		maxEvents:   maxEvents,
		events:      make([]Event, 0, maxEvents),
		cameraDist:  cfg.InitialCamera,
		regime:      RegimeFor(cfg.InitialCamera),
		subscribers: make(map[int]chan Event),
	}
}

// SetScene installs a freshly built scene and clears any build error.
func (m *Manager) SetScene(sc *scene.Scene) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.scene = sc
	m.lastError = nil
	m.emit(Event{Type: EventSceneReady})
}

// SetError records a failed build.
func (m *Manager) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastError = err
}

// SetFocus focuses the named body, matched by name or code ignoring case.
// An empty name returns to the system overview.
func (m *Manager) SetFocus(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if strings.TrimSpace(name) == "" {
		if m.focus == nil {
			return nil
		}
		m.focus = nil
		m.emit(Event{Type: EventFocusChanged})
		return nil
	}

	b, ok := m.lookup(name)
	if !ok {
		return fmt.Errorf("focus %q: %w", name, ErrUnknownBody)
	}
	if m.focus != nil && m.focus.Code == b.Code {
		return nil
	}
	m.focus = &b
	m.emit(Event{Type: EventFocusChanged, Body: b.Name})
	return nil
}

func (m *Manager) lookup(name string) (catalog.Body, bool) {
	if m.scene != nil {
		if bs, ok := m.scene.Body(name); ok {
			return bs.Body, true
		}
		return catalog.Body{}, false
	}
	return catalog.Lookup(name)
}

// SetCameraDistance records the camera distance from the origin and emits
// a regime change when it crosses the label threshold.
func (m *Manager) SetCameraDistance(d float64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.cameraDist = d
	if r := RegimeFor(d); r != m.regime {
		m.regime = r
		m.emit(Event{Type: EventRegimeChanged, Regime: r.String()})
	}
}

// status derives the status bar text. Caller must hold the lock.
func (m *Manager) status() string {
	switch {
	case m.regime == RegimeInterstellar:
		return StatusInterstellar
	case m.focus == nil:
		return StatusOverview
	case m.focus.Kind == catalog.BodyStar:
		return StatusSolarCore
	default:
		return statusAnalyzing + m.focus.Name
	}
}

// emit stamps an event, stores it, and fans it out. Caller must hold the
// write lock. Subscribers that are not keeping up miss the event.
func (m *Manager) emit(e Event) {
	e.Timestamp = time.Now()
	e.Status = m.status()
	m.addEvent(e)
	for _, ch := range m.subscribers {
		select {
		case ch <- e:
		default:
		}
	}
}

// addEvent adds an event to the ring buffer.
func (m *Manager) addEvent(e Event) {
	if len(m.events) < m.maxEvents {
		m.events = append(m.events, e)
	} else {
		m.events[m.eventWriteAt] = e
		m.eventWriteAt = (m.eventWriteAt + 1) % m.maxEvents
	}
}

// Subscribe returns a channel receiving future events and a cancel func
// that closes it. Sends never block; a full buffer drops events.
func (m *Manager) Subscribe(buffer int) (<-chan Event, func()) {
	if buffer < 1 {
		buffer = 1
	}
	ch := make(chan Event, buffer)

	m.mu.Lock()
	id := m.nextSubID
	m.nextSubID++
	m.subscribers[id] = ch
	m.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			m.mu.Lock()
			delete(m.subscribers, id)
			m.mu.Unlock()
			close(ch)
		})
	}
	return ch, cancel
}

// Snapshot represents an immutable snapshot of current state.
type Snapshot struct {
	Scene          *scene.Scene
	LastError      error
	Focus          *catalog.Body // nil in the overview
	CameraDistance float64
	Regime         Regime
	Status         string
}

// Snapshot returns a consistent snapshot of current state.
func (m *Manager) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var focus *catalog.Body
	if m.focus != nil {
		f := *m.focus
		focus = &f
	}

	return Snapshot{
		Scene:          m.scene,
		LastError:      m.lastError,
		Focus:          focus,
		CameraDistance: m.cameraDist,
		Regime:         m.regime,
		Status:         m.status(),
	}
}

// getEventsOrdered returns events in chronological order.
func (m *Manager) getEventsOrdered() []Event {
	if len(m.events) == 0 {
		return nil
	}

	// If buffer isn't full yet, just copy
	if len(m.events) < m.maxEvents {
		result := make([]Event, len(m.events))
		copy(result, m.events)
		return result
	}

	// Ring buffer is full, reorder from oldest to newest
	result := make([]Event, m.maxEvents)
	for i := 0; i < m.maxEvents; i++ {
		idx := (m.eventWriteAt + i) % m.maxEvents
		result[i] = m.events[idx]
	}
	return result
}

// RecentEvents returns the last n events.
func (m *Manager) RecentEvents(n int) []Event {
	m.mu.RLock()
	defer m.mu.RUnlock()

	all := m.getEventsOrdered()
	if len(all) <= n {
		return all
	}
	return all[len(all)-n:]
}

// HasScene returns true once a scene has been installed.
func (m *Manager) HasScene() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.scene != nil
}
