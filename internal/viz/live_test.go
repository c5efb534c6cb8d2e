package viz

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/verletsim/internal/config"
	"github.com/san-kum/verletsim/internal/scene"
	"github.com/san-kum/verletsim/internal/vector"
)

func newTestModel(t *testing.T, sceneName string) Model {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Scene = sceneName
	m, err := NewModel(*cfg, scene.NewRegistry(), nil)
	if err != nil {
		t.Fatalf("NewModel: %v", err)
	}
	return m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(m Model, msgs ...tea.Msg) Model {
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func TestModel_LoadsScene(t *testing.T) {
	m := newTestModel(t, "rectangles")
	if got := len(m.Engine().Points()); got != 20 {
		t.Errorf("rectangles loaded %d points, want 20", got)
	}

	if _, err := NewModel(config.Config{Scene: "nope"}, scene.NewRegistry(), nil); err == nil {
		t.Error("expected error for unknown scene")
	}
}

func TestModel_EditDrawsStructure(t *testing.T) {
	m := newTestModel(t, "empty")
	enter := tea.KeyMsg{Type: tea.KeyEnter}

	m = send(m, runes("e"), enter, runes("L"), enter)
	if got := len(m.Engine().Points()); got != 2 {
		t.Fatalf("got %d points, want 2", got)
	}
	if got := len(m.Engine().Edges()); got != 1 {
		t.Fatalf("got %d edges, want 1", got)
	}

	// back onto the first point: reused, closing with a second edge
	m = send(m, runes("H"), enter)
	if got := len(m.Engine().Points()); got != 2 {
		t.Errorf("revisiting a point created a new one: %d points", got)
	}
	if got := len(m.Engine().Edges()); got != 2 {
		t.Errorf("got %d edges, want 2", got)
	}

	m = send(m, runes("x"))
	if got := len(m.Engine().Points()); got != 1 {
		t.Errorf("delete left %d points, want 1", got)
	}
	if got := len(m.Engine().Edges()); got != 0 {
		t.Errorf("delete left %d edges, want 0", got)
	}
}

func TestModel_SpringAndFixedToggles(t *testing.T) {
	m := newTestModel(t, "empty")
	enter := tea.KeyMsg{Type: tea.KeyEnter}

	m = send(m, runes("e"), runes("f"), runes("s"), enter, runes("L"), runes("f"), enter)
	pts := m.Engine().Points()
	if len(pts) != 2 || !pts[0].Fixed || pts[1].Fixed {
		t.Fatalf("unexpected points %v", pts)
	}
	edges := m.Engine().Edges()
	if len(edges) != 1 || edges[0].Kind.String() != "spring" {
		t.Errorf("expected one spring edge, got %v", edges)
	}
}

func TestModel_TickSteps(t *testing.T) {
	m := newTestModel(t, "empty")
	enter := tea.KeyMsg{Type: tea.KeyEnter}
	m = send(m, runes("e"), enter)
	p := m.Engine().Points()[0]
	y := p.Position.Y

	// editing pauses the simulation
	m = send(m, TickMsg(time.Now()))
	if p.Position.Y != y {
		t.Fatalf("point moved while editing: %v", p.Position)
	}

	m = send(m, runes("e"), TickMsg(time.Now()), TickMsg(time.Now()))
	if p.Position.Y <= y {
		t.Errorf("y %v did not grow past %v", p.Position.Y, y)
	}
	if m.frame != 2 {
		t.Errorf("frame = %d, want 2", m.frame)
	}

	m = send(m, runes(" "))
	y = p.Position.Y
	send(m, TickMsg(time.Now()))
	if p.Position.Y != y {
		t.Error("point moved while paused")
	}
}

func TestModel_GravityToggle(t *testing.T) {
	m := newTestModel(t, "empty")
	enter := tea.KeyMsg{Type: tea.KeyEnter}
	m = send(m, runes("e"), enter, runes("e"), runes("g"))
	if m.Engine().Gravity() != (vector.Vector{}) {
		t.Fatalf("gravity = %v after toggling off", m.Engine().Gravity())
	}

	p := m.Engine().Points()[0]
	y := p.Position.Y
	m = send(m, TickMsg(time.Now()), TickMsg(time.Now()))
	if p.Position.Y != y {
		t.Errorf("point fell without gravity: %v", p.Position)
	}

	m = send(m, runes("g"))
	if want := vector.New(m.cfg.Gravity.X, m.cfg.Gravity.Y); m.Engine().Gravity() != want {
		t.Errorf("gravity = %v, want %v", m.Engine().Gravity(), want)
	}
	send(m, TickMsg(time.Now()))
	if p.Position.Y <= y {
		t.Error("point did not fall after gravity came back")
	}
}

func TestModel_Substeps(t *testing.T) {
	m := newTestModel(t, "empty")
	start := m.substeps

	m = send(m, runes("+"))
	if m.substeps != start*2 {
		t.Errorf("substeps = %d, want %d", m.substeps, start*2)
	}
	for i := 0; i < 20; i++ {
		m = send(m, runes("-"))
	}
	if m.substeps != 1 {
		t.Errorf("substeps = %d, want floor of 1", m.substeps)
	}
	for i := 0; i < 20; i++ {
		m = send(m, runes("+"))
	}
	if m.substeps != maxSubsteps {
		t.Errorf("substeps = %d, want cap %d", m.substeps, maxSubsteps)
	}
}

func TestModel_GrabAndDrag(t *testing.T) {
	m := newTestModel(t, "empty")
	enter := tea.KeyMsg{Type: tea.KeyEnter}
	m = send(m, runes("e"), runes("f"), enter, runes("e"))

	m = send(m, enter)
	if _, ok := m.Engine().Dragged(); !ok {
		t.Fatal("enter over a point did not grab it")
	}
	m = send(m, runes("L"), TickMsg(time.Now()))
	if p := m.Engine().Points()[0]; p.Position.X <= 400 {
		t.Errorf("dragged anchor did not follow the cursor: %v", p.Position)
	}

	m = send(m, enter)
	if _, ok := m.Engine().Dragged(); ok {
		t.Error("second enter did not release")
	}
}

func TestModel_Reload(t *testing.T) {
	m := newTestModel(t, "chain")
	want := len(m.Engine().Points())
	m = send(m, runes("x"), TickMsg(time.Now()), runes("r"))
	if got := len(m.Engine().Points()); got != want {
		t.Errorf("reload gave %d points, want %d", got, want)
	}
	if m.frame != 0 {
		t.Errorf("frame = %d after reload", m.frame)
	}
}

func TestModel_View(t *testing.T) {
	m := newTestModel(t, "tower")
	m = send(m, tea.WindowSizeMsg{Width: 140, Height: 40}, TickMsg(time.Now()), TickMsg(time.Now()))

	v := m.View()
	for _, want := range []string{"TOWER", "RUNNING", "Points", "Substeps"} {
		if !strings.Contains(v, want) {
			t.Errorf("view missing %q", want)
		}
	}

	m = send(m, runes("e"))
	if !strings.Contains(m.View(), "EDITING") {
		t.Error("edit mode not shown")
	}
	m = send(m, runes("?"))
	if !strings.Contains(m.View(), "KEYBOARD SHORTCUTS") {
		t.Error("help overlay not shown")
	}
}
