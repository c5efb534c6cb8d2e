package viz

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/verletsim/internal/config"
	"github.com/san-kum/verletsim/internal/scene"
)

var sceneInfo = map[string]string{
	"tower":      "truss, crane and boxes",
	"rectangles": "falling boxes",
	"chain":      "spring chain with a weight",
	"bridge":     "sagging spring deck",
	"empty":      "blank canvas for drawing",
}

const (
	stateMenu = iota
	stateConfig
	stateSim
)

type param struct {
	name string
	get  func(*config.Config) float64
	set  func(*config.Config, float64)
	step float64
}

var params = []param{
	{"substeps", func(c *config.Config) float64 { return float64(c.Substeps) }, func(c *config.Config, v float64) { c.Substeps = int(v) }, 1},
	{"gravity_x", func(c *config.Config) float64 { return c.Gravity.X }, func(c *config.Config, v float64) { c.Gravity.X = v }, 0.05},
	{"gravity_y", func(c *config.Config) float64 { return c.Gravity.Y }, func(c *config.Config, v float64) { c.Gravity.Y = v }, 0.05},
	{"stiffness", func(c *config.Config) float64 { return c.Stiffness }, func(c *config.Config, v float64) { c.Stiffness = v }, 0.05},
}

// Menu picks a scene, tunes its settings and then hands the terminal to a
// sandbox [Model].
type Menu struct {
	state, cursor int
	scenes        []string
	registry      *scene.Registry
	cfg           config.Config
	paramCursor   int
	editing       bool
	editBuf       string
	err           string
	width, height int
	live          Model
	log           *slog.Logger
}

func NewMenu(cfg config.Config, registry *scene.Registry, log *slog.Logger) Menu {
	m := Menu{
		state:    stateMenu,
		scenes:   registry.List(),
		registry: registry,
		cfg:      cfg,
		log:      log,
	}
	for i, name := range m.scenes {
		if name == cfg.Scene {
			m.cursor = i
		}
	}
	return m
}

func (m Menu) Init() tea.Cmd { return nil }

func (m Menu) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	}
	if m.state == stateSim {
		next, cmd := m.live.Update(msg)
		m.live = next.(Model)
		return m, cmd
	}
	return m, nil
}

func (m Menu) handleKey(msg tea.KeyMsg) (Menu, tea.Cmd) {
	switch m.state {
	case stateMenu:
		return m.menuKey(msg)
	case stateConfig:
		return m.configKey(msg)
	case stateSim:
		next, cmd := m.live.Update(msg)
		m.live = next.(Model)
		return m, cmd
	}
	return m, nil
}

func (m Menu) menuKey(msg tea.KeyMsg) (Menu, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.scenes)-1 {
			m.cursor++
		}
	case "enter", " ":
		if len(m.scenes) == 0 {
			return m, nil
		}
		m.cfg.Scene = m.scenes[m.cursor]
		m.state, m.paramCursor, m.err = stateConfig, 0, ""
	}
	return m, nil
}

func (m Menu) configKey(msg tea.KeyMsg) (Menu, tea.Cmd) {
	p := params[m.paramCursor]
	if m.editing {
		switch msg.String() {
		case "enter":
			if v, err := strconv.ParseFloat(m.editBuf, 64); err == nil {
				p.set(&m.cfg, v)
			}
			m.editing, m.editBuf = false, ""
		case "esc":
			m.editing, m.editBuf = false, ""
		case "backspace":
			if len(m.editBuf) > 0 {
				m.editBuf = m.editBuf[:len(m.editBuf)-1]
			}
		default:
			if s := msg.String(); len(s) == 1 {
				c := s[0]
				if (c >= '0' && c <= '9') || c == '.' || c == '-' {
					m.editBuf += s
				}
			}
		}
		return m, nil
	}
	switch msg.String() {
	case "q", "esc":
		m.state = stateMenu
	case "up", "k":
		if m.paramCursor > 0 {
			m.paramCursor--
		}
	case "down", "j":
		if m.paramCursor < len(params)-1 {
			m.paramCursor++
		}
	case "enter", " ":
		m.editing, m.editBuf = true, strconv.FormatFloat(p.get(&m.cfg), 'f', -1, 64)
	case "left", "h":
		p.set(&m.cfg, p.get(&m.cfg)-p.step)
	case "right", "l":
		p.set(&m.cfg, p.get(&m.cfg)+p.step)
	case "s":
		return m.start()
	}
	return m, nil
}

func (m Menu) start() (Menu, tea.Cmd) {
	if err := m.cfg.Validate(); err != nil {
		m.err = err.Error()
		return m, nil
	}
	live, err := NewModel(m.cfg, m.registry, m.log)
	if err != nil {
		m.err = err.Error()
		return m, nil
	}
	if m.width > 0 && m.height > 0 {
		live.resize(m.width, m.height)
	}
	m.live, m.state, m.err = live, stateSim, ""
	return m, m.live.Init()
}

func (m Menu) View() string {
	switch m.state {
	case stateMenu:
		return m.viewMenu()
	case stateConfig:
		return m.viewConfig()
	case stateSim:
		return m.live.View()
	}
	return ""
}

var (
	titleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#00cccc")).Bold(true)
	pointerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ffff")).Bold(true)
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")).Bold(true)
	detailStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff88ff"))
	idleStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#555566"))
	errStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff4444"))
)

func hints(pairs ...string) string {
	var b strings.Builder
	for i := 0; i+1 < len(pairs); i += 2 {
		b.WriteString(KeyHint.Render(pairs[i]) + idleStyle.Render(" "+pairs[i+1]+"  "))
	}
	return b.String()
}

func (m Menu) viewMenu() string {
	var b strings.Builder
	b.WriteString("\n\n    " + titleStyle.Render("VERLETSIM") + "\n    " + Subtle.Render("point and edge sandbox") + "\n    " + Separator(25) + "\n\n")
	for i, name := range m.scenes {
		desc := sceneInfo[name]
		if i == m.cursor {
			fmt.Fprintf(&b, "    %s %s  %s\n", pointerStyle.Render("▸"), selectedStyle.Render(fmt.Sprintf("%-12s", name)), detailStyle.Render(desc))
		} else {
			fmt.Fprintf(&b, "    %s  %s\n", idleStyle.Render(fmt.Sprintf("  %-12s", name)), idleStyle.Render(desc))
		}
	}
	b.WriteString("\n    " + hints("j/k", "navigate", "enter", "select", "q", "quit") + "\n")
	return b.String()
}

func (m Menu) viewConfig() string {
	var b strings.Builder
	b.WriteString("\n\n    " + titleStyle.Render(strings.ToUpper(m.cfg.Scene)) + "\n    " + Subtle.Render(sceneInfo[m.cfg.Scene]) + "\n    " + Separator(25) + "\n\n")
	for i, p := range params {
		val := fmt.Sprintf("%8.3f", p.get(&m.cfg))
		if m.editing && i == m.paramCursor {
			val = fmt.Sprintf("%8s", m.editBuf+"_")
		}
		if i == m.paramCursor {
			fmt.Fprintf(&b, "    %s %s %s\n", pointerStyle.Render("▸"), selectedStyle.Render(fmt.Sprintf("%-10s", p.name)), detailStyle.Bold(true).Render(val))
		} else {
			fmt.Fprintf(&b, "    %s %s\n", idleStyle.Render(fmt.Sprintf("  %-10s", p.name)), idleStyle.Render(val))
		}
	}
	if m.err != "" {
		b.WriteString("\n    " + errStyle.Render(m.err) + "\n")
	}
	b.WriteString("\n    " + hints("j/k", "select", "h/l", "adjust", "s", "start", "esc", "back") + "\n")
	return b.String()
}

// RunInteractive opens the scene picker full screen.
func RunInteractive(cfg config.Config, registry *scene.Registry, log *slog.Logger) error {
	_, err := tea.NewProgram(NewMenu(cfg, registry, log), tea.WithAltScreen()).Run()
	return err
}
