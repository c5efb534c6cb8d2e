package viz

import (
	"fmt"
	"log/slog"
	"math"
	"slices"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/verletsim/internal/config"
	"github.com/san-kum/verletsim/internal/metrics"
	"github.com/san-kum/verletsim/internal/physics"
	"github.com/san-kum/verletsim/internal/render"
	"github.com/san-kum/verletsim/internal/scene"
	"github.com/san-kum/verletsim/internal/sim"
	"github.com/san-kum/verletsim/internal/vector"
)

const (
	defaultCols     = 80
	defaultRows     = 24
	panelWidth      = 45
	historyCapacity = 600
	maxSubsteps     = 128
	pickRadius      = 10.0
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(panelWidth)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(2)
)

type TickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Model is the live sandbox: one engine, a cursor standing in for the mouse,
// and the edit state for drawing new structures.
type Model struct {
	engine   *physics.Engine
	registry *scene.Registry
	cfg      config.Config
	canvas   *Canvas
	cursor   vector.Vector
	substeps int
	running  bool
	frame    int

	editMode bool
	newFixed bool
	springs  bool
	drawing  []*physics.Point

	energy        *metrics.KineticEnergy
	stress        *metrics.MaxStress
	energyHistory []float64
	stressHistory []float64

	status   string
	showHelp bool
	log      *slog.Logger
}

// NewModel loads cfg.Scene into a fresh engine.
func NewModel(cfg config.Config, registry *scene.Registry, log *slog.Logger) (Model, error) {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	m := Model{
		registry:      registry,
		cfg:           cfg,
		canvas:        NewCanvas(defaultCols, defaultRows),
		cursor:        vector.New(cfg.Width/2, cfg.Height/2),
		substeps:      cfg.Substeps,
		running:       true,
		energy:        metrics.NewKineticEnergy(),
		stress:        metrics.NewMaxStress(),
		energyHistory: make([]float64, 0, historyCapacity),
		stressHistory: make([]float64, 0, historyCapacity),
		log:           log,
	}
	if err := m.load(); err != nil {
		return Model{}, err
	}
	return m, nil
}

func (m *Model) load() error {
	m.engine = physics.NewEngine(physics.WithGravity(vector.New(m.cfg.Gravity.X, m.cfg.Gravity.Y)))
	if err := m.registry.Build(m.cfg.Scene, m.engine, &m.cfg); err != nil {
		return err
	}
	m.frame = 0
	m.drawing = nil
	m.energyHistory = m.energyHistory[:0]
	m.stressHistory = m.stressHistory[:0]
	m.log.Debug("scene loaded", "scene", m.cfg.Scene, "points", len(m.engine.Points()), "edges", len(m.engine.Edges()))
	return nil
}

func (m Model) Engine() *physics.Engine { return m.engine }

func (m Model) Init() tea.Cmd {
	return tick()
}

// Update handles input events and steps the simulation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
	case tea.KeyMsg:
		return m.handleKey(msg)
	case TickMsg:
		if m.running && !m.editMode {
			m.step()
		}
		return m, tick()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case " ":
		m.running = !m.running
	case "r":
		if err := m.load(); err != nil {
			m.status = err.Error()
		}
	case "left", "h":
		m.moveCursor(-1, 0)
	case "right", "l":
		m.moveCursor(1, 0)
	case "up", "k":
		m.moveCursor(0, -1)
	case "down", "j":
		m.moveCursor(0, 1)
	case "H":
		m.moveCursor(-5, 0)
	case "L":
		m.moveCursor(5, 0)
	case "K":
		m.moveCursor(0, -5)
	case "J":
		m.moveCursor(0, 5)
	case "enter":
		if m.editMode {
			m.placePoint()
		} else {
			m.toggleGrab()
		}
	case "x":
		if p, ok := m.hovered(); ok {
			m.engine.RemovePoint(p)
			m.drawing = slices.DeleteFunc(m.drawing, func(q *physics.Point) bool { return q == p })
			m.status = fmt.Sprintf("removed point %d", p.ID)
		}
	case "e":
		m.editMode = !m.editMode
		if !m.editMode {
			m.drawing = nil
		}
		m.engine.Release()
	case "f":
		m.newFixed = !m.newFixed
	case "s":
		m.springs = !m.springs
	case "+", "=":
		m.substeps = min(m.substeps*2, maxSubsteps)
	case "-", "_":
		m.substeps = max(m.substeps/2, 1)
	case "p":
		m.savePNG()
	case "t":
		m.status = "theme: " + NextTheme().Name
	case "g":
		m.toggleGravity()
	case "?":
		m.showHelp = !m.showHelp
	}
	return m, nil
}

func (m *Model) resize(w, h int) {
	cols := max(w-panelWidth-6, 20)
	rows := max(h-4, 8)
	m.canvas = NewCanvas(cols, rows)
}

// cellSize is the world extent of one terminal cell.
func (m *Model) cellSize() (float64, float64) {
	return m.cfg.Width / float64(m.canvas.Width), m.cfg.Height / float64(m.canvas.Height)
}

func (m *Model) moveCursor(dx, dy float64) {
	cw, ch := m.cellSize()
	m.cursor.X = math.Max(0, math.Min(m.cfg.Width, m.cursor.X+dx*cw))
	m.cursor.Y = math.Max(0, math.Min(m.cfg.Height, m.cursor.Y+dy*ch))

	if p, ok := m.engine.Dragged(); ok {
		m.engine.Drag(p, m.cursor)
	}
}

// hovered is the earliest point within reach of the cursor. The reach grows
// with the cell size so coarse terminals can still pick points.
func (m *Model) hovered() (*physics.Point, bool) {
	cw, ch := m.cellSize()
	radius := math.Max(pickRadius, 1.5*math.Max(cw, ch))
	return physics.PointWithin(m.cursor, m.engine.Points(), radius)
}

func (m *Model) toggleGrab() {
	if _, ok := m.engine.Dragged(); ok {
		m.engine.Release()
		return
	}
	if p, ok := m.hovered(); ok {
		m.engine.Drag(p, m.cursor)
	}
}

// placePoint reuses the hovered point or creates one at the cursor, then
// links it to the previous point of the structure being drawn.
func (m *Model) placePoint() {
	p, ok := m.hovered()
	if !ok {
		p = m.engine.NewPoint(m.cursor.X, m.cursor.Y, m.newFixed)
	}

	if n := len(m.drawing); n > 0 && m.drawing[n-1] != p {
		last := m.drawing[n-1]
		var err error
		if m.springs {
			_, err = m.engine.Spring(p, last, m.cfg.Stiffness)
		} else {
			_, err = m.engine.Connect(p, last)
		}
		if err != nil {
			m.status = err.Error()
		}
	}
	m.drawing = append(m.drawing, p)
}

func (m *Model) step() {
	m.engine.Update(m.substeps, m.cfg.Width, m.cfg.Height)
	m.frame++

	m.energy.Observe(m.engine, m.frame)
	m.stress.Observe(m.engine, m.frame)
	m.energyHistory = pushCapped(m.energyHistory, m.energy.Value())
	m.stressHistory = pushCapped(m.stressHistory, m.stress.Value())
}

// toggleGravity switches between weightlessness and the configured gravity.
func (m *Model) toggleGravity() {
	if m.engine.Gravity() == (vector.Vector{}) {
		m.engine.SetGravity(vector.New(m.cfg.Gravity.X, m.cfg.Gravity.Y))
		m.status = "gravity on"
		return
	}
	m.engine.SetGravity(vector.Vector{})
	m.status = "gravity off"
}

func pushCapped(h []float64, v float64) []float64 {
	h = append(h, v)
	if len(h) > historyCapacity {
		h = h[1:]
	}
	return h
}

func (m *Model) savePNG() {
	path := fmt.Sprintf("verletsim_%s_%d.png", m.cfg.Scene, m.frame)
	snap := sim.Capture(m.engine, m.frame, m.cfg.Width, m.cfg.Height)
	if err := render.SavePNG(path, snap, render.DefaultOptions()); err != nil {
		m.status = err.Error()
		m.log.Error("save frame", "path", path, "err", err)
		return
	}
	m.status = "saved " + path
}

// project maps world coordinates to canvas sub-pixels.
func (m *Model) project(v vector.Vector) (int, int) {
	x := v.X / m.cfg.Width * float64(m.canvas.SubWidth())
	y := v.Y / m.cfg.Height * float64(m.canvas.SubHeight())
	return int(x), int(y)
}

func (m *Model) draw() {
	m.canvas.Clear()

	for _, e := range m.engine.Edges() {
		p1, ok1 := m.engine.Point(e.P1)
		p2, ok2 := m.engine.Point(e.P2)
		if !ok1 || !ok2 {
			continue
		}
		x1, y1 := m.project(p1.Position)
		x2, y2 := m.project(p2.Position)
		m.canvas.DrawLine(x1, y1, x2, y2)
	}
	for _, p := range m.engine.Points() {
		x, y := m.project(p.Position)
		if p.Fixed {
			m.canvas.Dot(x, y, 1)
		} else {
			m.canvas.Set(x, y)
		}
	}

	if n := len(m.drawing); n > 0 {
		x, y := m.project(m.drawing[n-1].Position)
		m.canvas.Mark(x, y, 'o')
	}
	cx, cy := m.project(m.cursor)
	if _, ok := m.engine.Dragged(); ok {
		m.canvas.Mark(cx, cy, '@')
	} else {
		m.canvas.Mark(cx, cy, '+')
	}
}

// View renders the TUI interface.
func (m Model) View() string {
	m.draw()
	canvasView := canvasStyle.Foreground(CurrentTheme.Canvas).Render(m.canvas.String())

	var s strings.Builder
	s.WriteString(headerStyle.Render(strings.ToUpper(m.cfg.Scene)) + "\n")
	s.WriteString(m.statusLine() + "\n\n")

	if len(m.energyHistory) > 1 {
		chart := asciigraph.Plot(m.energyHistory, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Kinetic energy"))
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}

	row := func(label, value string) {
		s.WriteString(labelStyle.Render(label) + valueStyle.Render(value) + "\n")
	}
	row("Frame", fmt.Sprintf("%d", m.frame))
	row("Points", fmt.Sprintf("%d", len(m.engine.Points())))
	row("Edges", fmt.Sprintf("%d", len(m.engine.Edges())))
	row("Substeps", fmt.Sprintf("%d", m.substeps))
	row("Energy", fmt.Sprintf("%.3f", m.energy.Value()))
	row("Stress", fmt.Sprintf("%.1f%%", m.stress.Value()*100))
	s.WriteString(SparklineChart(m.stressHistory, 30) + "\n")

	if m.editMode {
		kind := "rigid"
		if m.springs {
			kind = "spring"
		}
		s.WriteString("\nEDIT\n")
		row("Link", kind)
		row("Fixed", fmt.Sprintf("%v", m.newFixed))
	}
	if m.status != "" {
		s.WriteString("\n" + Subtle.Render(m.status) + "\n")
	}

	s.WriteString(helpStyle.Render("\n─────────────────────\nSP:Pause R:Reload Q:Quit\nEnter:Grab E:Edit X:Delete\n+/-:Substeps G:Gravity ?:Help"))
	statsView := statsStyle.Render(s.String())
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)
	if m.showHelp {
		return `
╔══════════════════════════════════════╗
║           KEYBOARD SHORTCUTS         ║
╠══════════════════════════════════════╣
║  Space    - Pause/Resume simulation  ║
║  R        - Reload scene             ║
║  Q        - Quit                     ║
║  Arrows   - Move cursor (HJKL: x5)   ║
║  Enter    - Grab/release point       ║
║  X        - Delete hovered point     ║
║  E        - Toggle edit mode         ║
║  F        - New points fixed         ║
║  S        - New links are springs    ║
║  +/-      - Double/halve substeps    ║
║  P        - Save frame as PNG        ║
║  G        - Toggle gravity           ║
║  T        - Cycle themes             ║
║  ?        - Toggle this help         ║
╚══════════════════════════════════════╝
` + "\n\n" + mainView
	}
	return mainView
}

func (m Model) statusLine() string {
	switch {
	case m.editMode:
		return StatusPaused.Render("EDITING")
	case !m.running:
		return StatusPaused.Render("PAUSED")
	default:
		if _, ok := m.engine.Dragged(); ok {
			return StatusRunning.Render("RUNNING") + " " + Subtle.Render("(dragging)")
		}
		return StatusRunning.Render("RUNNING")
	}
}

// Run starts the sandbox full screen.
func Run(cfg config.Config, registry *scene.Registry, log *slog.Logger) error {
	m, err := NewModel(cfg, registry, log)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
