package state

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/litescript/ls-orrery/internal/catalog"
	"github.com/litescript/ls-orrery/internal/scene"
)

// fakeScene holds bodies without geometry.
func fakeScene() *scene.Scene {
	sc := &scene.Scene{Sun: scene.BodyScene{Body: catalog.Sun()}}
	for _, p := range catalog.Planets() {
		sc.Bodies = append(sc.Bodies, scene.BodyScene{Body: p})
	}
	return sc
}

func TestNewManager(t *testing.T) {
	m := NewManager(DefaultConfig())

	if m == nil {
		t.Fatal("NewManager returned nil")
	}
	if m.HasScene() {
		t.Error("HasScene should be false initially")
	}

	snap := m.Snapshot()
	if snap.Status != StatusOverview {
		t.Errorf("Status = %q, want %q", snap.Status, StatusOverview)
	}
	if snap.Regime != RegimeSystem {
		t.Errorf("Regime = %v, want system", snap.Regime)
	}
	if n := len(m.RecentEvents(10)); n != 0 {
		t.Errorf("events = %d, want 0", n)
	}
}

func TestManager_SetScene(t *testing.T) {
	m := NewManager(DefaultConfig())
	m.SetError(errors.New("build failed"))

	sc := fakeScene()
	m.SetScene(sc)

	if !m.HasScene() {
		t.Error("HasScene should be true after SetScene")
	}
	snap := m.Snapshot()
	if snap.Scene != sc {
		t.Error("Snapshot Scene doesn't match")
	}
	if snap.LastError != nil {
		t.Errorf("LastError = %v, want nil after a successful build", snap.LastError)
	}
	if events := m.RecentEvents(10); len(events) != 1 || events[0].Type != EventSceneReady {
		t.Errorf("events = %+v, want one SCENE_READY", events)
	}
}

func TestManager_SetError(t *testing.T) {
	m := NewManager(DefaultConfig())

	testErr := errors.New("generate galaxy: bad")
	m.SetError(testErr)

	if snap := m.Snapshot(); snap.LastError != testErr {
		t.Errorf("LastError = %v, want %v", snap.LastError, testErr)
	}
}

func TestManager_FocusStatus(t *testing.T) {
	tests := []struct {
		focus  string
		status string
	}{
		{"Sun", StatusSolarCore},
		{"earth", "ANALYZING: Earth"},
		{"JUP", "ANALYZING: Jupiter"},
		{" Neptune ", "ANALYZING: Neptune"},
		{"", StatusOverview},
	}

	m := NewManager(DefaultConfig())
	m.SetScene(fakeScene())
	for _, tt := range tests {
		if err := m.SetFocus(tt.focus); err != nil {
			t.Fatalf("SetFocus(%q): %v", tt.focus, err)
		}
		if got := m.Snapshot().Status; got != tt.status {
			t.Errorf("SetFocus(%q): status = %q, want %q", tt.focus, got, tt.status)
		}
	}
}

func TestManager_SetFocus_Unknown(t *testing.T) {
	m := NewManager(DefaultConfig())

	err := m.SetFocus("Pluto")
	if !errors.Is(err, ErrUnknownBody) {
		t.Errorf("err = %v, want ErrUnknownBody", err)
	}
	if m.Snapshot().Focus != nil {
		t.Error("failed focus changed state")
	}
	if len(m.RecentEvents(10)) != 0 {
		t.Error("failed focus emitted an event")
	}
}

func TestManager_SetFocus_WithoutScene(t *testing.T) {
	m := NewManager(DefaultConfig())

	if err := m.SetFocus("mars"); err != nil {
		t.Fatalf("SetFocus before scene: %v", err)
	}
	snap := m.Snapshot()
	if snap.Focus == nil || snap.Focus.Code != "MARS" {
		t.Errorf("Focus = %+v, want Mars", snap.Focus)
	}
}

func TestManager_FocusEvents(t *testing.T) {
	m := NewManager(DefaultConfig())

	_ = m.SetFocus("Earth")
	_ = m.SetFocus("earth") // same body, no event
	_ = m.SetFocus("Mars")
	_ = m.SetFocus("")
	_ = m.SetFocus("") // already in overview

	events := m.RecentEvents(10)
	want := []string{"Earth", "Mars", ""}
	if len(events) != len(want) {
		t.Fatalf("got %d events, want %d: %+v", len(events), len(want), events)
	}
	for i, e := range events {
		if e.Type != EventFocusChanged || e.Body != want[i] {
			t.Errorf("event %d = %s %q, want FOCUS_CHANGED %q", i, e.Type, e.Body, want[i])
		}
	}
	if events[1].Status != "ANALYZING: Mars" || events[2].Status != StatusOverview {
		t.Errorf("event statuses = %q, %q", events[1].Status, events[2].Status)
	}
}

func TestManager_Snapshot_FocusIsCopy(t *testing.T) {
	m := NewManager(DefaultConfig())
	_ = m.SetFocus("Earth")

	snap := m.Snapshot()
	snap.Focus.Name = "Mutated"

	if got := m.Snapshot().Focus.Name; got != "Earth" {
		t.Errorf("Snapshot modification affected manager state: %q", got)
	}
}

func TestManager_RegimeChange(t *testing.T) {
	m := NewManager(DefaultConfig())
	_ = m.SetFocus("Saturn")

	tests := []struct {
		dist   float64
		regime Regime
		status string
		events int
	}{
		{500, RegimeSystem, "ANALYZING: Saturn", 1},
		{scene.LabelDistance, RegimeSystem, "ANALYZING: Saturn", 1},
		{scene.LabelDistance + 1, RegimeInterstellar, StatusInterstellar, 2},
		{50000, RegimeInterstellar, StatusInterstellar, 2},
		{300, RegimeSystem, "ANALYZING: Saturn", 3},
	}
	for _, tt := range tests {
		m.SetCameraDistance(tt.dist)
		snap := m.Snapshot()
		if snap.Regime != tt.regime || snap.Status != tt.status {
			t.Errorf("dist %v: regime %v status %q, want %v %q", tt.dist, snap.Regime, snap.Status, tt.regime, tt.status)
		}
		if snap.CameraDistance != tt.dist {
			t.Errorf("CameraDistance = %v, want %v", snap.CameraDistance, tt.dist)
		}
		if n := len(m.RecentEvents(10)); n != tt.events {
			t.Errorf("dist %v: %d events, want %d", tt.dist, n, tt.events)
		}
	}

	last := m.RecentEvents(1)[0]
	if last.Type != EventRegimeChanged || last.Regime != "system" {
		t.Errorf("last event = %+v, want VIEW_REGIME_CHANGED to system", last)
	}
}

func TestManager_EventRingBuffer(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxEvents = 5
	m := NewManager(cfg)

	// Alternate between two bodies so every call emits.
	for i := 0; i < 12; i++ {
		name := "Earth"
		if i%2 == 1 {
			name = "Mars"
		}
		if err := m.SetFocus(name); err != nil {
			t.Fatal(err)
		}
	}

	events := m.RecentEvents(100)
	if len(events) != 5 {
		t.Errorf("events count = %d, want 5 (max)", len(events))
	}

	// Verify events are ordered chronologically
	for i := 1; i < len(events); i++ {
		if events[i].Timestamp.Before(events[i-1].Timestamp) {
			t.Errorf("events not in chronological order at index %d", i)
		}
	}
	if events[len(events)-1].Body != "Mars" {
		t.Errorf("newest event body = %q, want Mars", events[len(events)-1].Body)
	}

	if got := m.RecentEvents(2); len(got) != 2 || got[1] != events[4] {
		t.Errorf("RecentEvents(2) = %+v", got)
	}
}

func TestManager_Subscribe(t *testing.T) {
	m := NewManager(DefaultConfig())
	ch, cancel := m.Subscribe(4)
	defer cancel()

	m.SetScene(fakeScene())
	_ = m.SetFocus("Sun")

	e := <-ch
	if e.Type != EventSceneReady {
		t.Errorf("first event = %s, want SCENE_READY", e.Type)
	}
	e = <-ch
	if e.Type != EventFocusChanged || e.Status != StatusSolarCore {
		t.Errorf("second event = %+v, want FOCUS_CHANGED on the solar core", e)
	}
}

func TestManager_Subscribe_SlowSubscriberDrops(t *testing.T) {
	m := NewManager(DefaultConfig())
	ch, cancel := m.Subscribe(1)

	// None of these may block although nobody reads.
	for i := 0; i < 10; i++ {
		m.SetCameraDistance(float64(i%2) * 1e5)
	}

	if got := len(ch); got != 1 {
		t.Errorf("buffered events = %d, want 1", got)
	}

	cancel()
	cancel() // idempotent
	<-ch     // drain the buffered event
	if _, ok := <-ch; ok {
		t.Error("channel still open after cancel")
	}

	// Emitting after cancel must not panic on the closed channel.
	_ = m.SetFocus("Venus")
}

func TestManager_ConcurrentAccess(t *testing.T) {
	m := NewManager(DefaultConfig())
	ch, cancel := m.Subscribe(8)
	defer cancel()

	var wg sync.WaitGroup
	iterations := 100
	names := []string{"Sun", "Mercury", "Venus", "Earth", "Mars"}

	// Writer goroutine
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < iterations; i++ {
			_ = m.SetFocus(names[i%len(names)])
			m.SetCameraDistance(float64(i * 100))
		}
	}()

	// Reader goroutines
	for r := 0; r < 5; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < iterations; i++ {
				_ = m.Snapshot()
				_ = m.HasScene()
				_ = m.RecentEvents(5)
			}
		}()
	}

	// Drain a few events concurrently.
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 8; i++ {
			select {
			case <-ch:
			default:
			}
		}
	}()

	wg.Wait()
}

func TestRegime_String(t *testing.T) {
	for _, tt := range []struct {
		r    Regime
		want string
	}{
		{RegimeSystem, "system"},
		{RegimeInterstellar, "interstellar"},
	} {
		if got := fmt.Sprint(tt.r); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.r, got, tt.want)
		}
	}
}
