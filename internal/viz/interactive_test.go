package viz

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/verletsim/internal/config"
	"github.com/san-kum/verletsim/internal/scene"
)

func sendMenu(m Menu, msgs ...tea.Msg) Menu {
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(Menu)
	}
	return m
}

func TestMenu_StartsOnConfiguredScene(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Scene = "chain"
	m := NewMenu(*cfg, scene.NewRegistry(), nil)
	if m.scenes[m.cursor] != "chain" {
		t.Errorf("cursor on %q, want chain", m.scenes[m.cursor])
	}
	if !strings.Contains(m.View(), "VERLETSIM") {
		t.Error("menu view missing title")
	}
}

func TestMenu_SelectAndStart(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Scene = "empty"
	m := NewMenu(*cfg, scene.NewRegistry(), nil)

	m = sendMenu(m, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyEnter})
	if m.state != stateConfig || m.cfg.Scene != "rectangles" {
		t.Fatalf("state %d scene %q, want config on rectangles", m.state, m.cfg.Scene)
	}

	// substeps 24 -> 25
	m = sendMenu(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'l'}})
	if m.cfg.Substeps != 25 {
		t.Errorf("substeps = %d, want 25", m.cfg.Substeps)
	}

	m = sendMenu(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'s'}})
	if m.state != stateSim {
		t.Fatalf("state = %d, want sim (err %q)", m.state, m.err)
	}
	if got := len(m.live.Engine().Points()); got != 20 {
		t.Errorf("sandbox has %d points, want 20", got)
	}
	if m.live.substeps != 25 {
		t.Errorf("sandbox substeps = %d, want 25", m.live.substeps)
	}
}

func TestMenu_EditRejectsInvalidSettings(t *testing.T) {
	cfg := config.DefaultConfig()
	m := NewMenu(*cfg, scene.NewRegistry(), nil)
	m = sendMenu(m, tea.KeyMsg{Type: tea.KeyEnter})

	// stiffness is the last setting
	for range params {
		m = sendMenu(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	}
	m = sendMenu(m, tea.KeyMsg{Type: tea.KeyEnter})
	if !m.editing {
		t.Fatal("enter did not start editing")
	}
	for range m.editBuf {
		m = sendMenu(m, tea.KeyMsg{Type: tea.KeyBackspace})
	}
	m = sendMenu(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'2'}}, tea.KeyMsg{Type: tea.KeyEnter})
	if m.cfg.Stiffness != 2 {
		t.Fatalf("stiffness = %v, want 2", m.cfg.Stiffness)
	}

	m = sendMenu(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'s'}})
	if m.state != stateConfig || m.err == "" {
		t.Errorf("invalid stiffness started a sandbox (state %d)", m.state)
	}
	if !strings.Contains(m.View(), "stiffness") {
		t.Error("config view missing stiffness row")
	}

	m = sendMenu(m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.state != stateMenu {
		t.Errorf("esc returned to state %d, want menu", m.state)
	}
}
