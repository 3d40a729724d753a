package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/bounce/internal/metrics"
	"github.com/san-kum/bounce/internal/physics"
	"github.com/san-kum/bounce/internal/sim"
)

const (
	width           = 60
	height          = 22
	historyCapacity = 300
	legendRows      = 8
)

type TickMsg time.Time

// Builder produces the initial bodies. It is called again on reset.
type Builder func() ([]physics.Body, error)

// Model drives a simulator from bubbletea ticks and draws the arena.
type Model struct {
	sim           *sim.Simulator
	build         Builder
	bodies        []physics.Body
	snaps         []physics.Snapshot
	tick          int
	interval      time.Duration
	running       bool
	canvas        *Canvas
	title         string
	energyHistory []float64
	speedHistory  []float64
	showHelp      bool
	err           error
}

func NewModel(s *sim.Simulator, build Builder, title string) (Model, error) {
	m := Model{
		sim:           s,
		build:         build,
		interval:      sim.NewClock(s.World().TickRate).Interval(),
		running:       true,
		canvas:        NewCanvas(width, height),
		title:         title,
		energyHistory: make([]float64, 0, historyCapacity),
		speedHistory:  make([]float64, 0, historyCapacity),
	}
	if err := m.reset(); err != nil {
		return Model{}, err
	}
	return m, nil
}

func (m Model) Init() tea.Cmd {
	return m.schedule()
}

func (m Model) schedule() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Tick() int                  { return m.tick }
func (m Model) Running() bool              { return m.running }
func (m Model) Bodies() []physics.Snapshot { return m.snaps }
func (m Model) Simulator() *sim.Simulator  { return m.sim }
func (m Model) EnergyHistory() []float64   { return m.energyHistory }

// Update handles input events and steps the simulation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "n":
			if !m.running {
				m.step()
			}
		case "r":
			if err := m.reset(); err != nil {
				m.err = err
			}
		case "p":
			if m.sim.Policy() == sim.PolicySnapshot {
				m.sim.SetPolicy(sim.PolicySequential)
			} else {
				m.sim.SetPolicy(sim.PolicySnapshot)
			}
		case "t":
			NextTheme()
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if m.running {
			m.step()
		}
		return m, m.schedule()
	}
	return m, nil
}

// step advances the simulation by one tick.
func (m *Model) step() {
	m.tick++
	m.snaps = m.sim.Step(m.tick, m.bodies)

	m.energyHistory = append(m.energyHistory, metrics.Kinetic(m.snaps))
	if len(m.energyHistory) > historyCapacity {
		m.energyHistory = m.energyHistory[1:]
	}

	mean := 0.0
	for _, b := range m.snaps {
		mean += b.Velocity.Speed()
	}
	if len(m.snaps) > 0 {
		mean /= float64(len(m.snaps))
	}
	m.speedHistory = append(m.speedHistory, mean)
	if len(m.speedHistory) > historyCapacity {
		m.speedHistory = m.speedHistory[1:]
	}
}

// reset rebuilds the bodies from the builder.
func (m *Model) reset() error {
	bodies, err := m.build()
	if err != nil {
		return err
	}
	m.bodies = bodies
	m.snaps = physics.Snapshots(bodies)
	m.tick = 0
	m.energyHistory = m.energyHistory[:0]
	m.speedHistory = m.speedHistory[:0]
	m.err = nil
	return nil
}

func (m *Model) draw() {
	DrawArena(m.canvas, m.sim.World(), m.snaps)
}

// View renders the TUI interface.
func (m Model) View() string {
	m.draw()

	var s strings.Builder
	s.WriteString(headerStyle().Render(strings.ToUpper(m.title)) + "\n")

	status := StatusRunning.Render("RUNNING")
	if !m.running {
		status = StatusPaused.Render("PAUSED")
	}
	s.WriteString(status + "\n\n")

	energy := 0.0
	if len(m.energyHistory) > 0 {
		energy = m.energyHistory[len(m.energyHistory)-1]
	}
	s.WriteString(MetricLabel.Render("Tick") + MetricValue.Render(fmt.Sprintf("%d", m.tick)) + "\n")
	s.WriteString(MetricLabel.Render("Bodies") + MetricValue.Render(fmt.Sprintf("%d", len(m.snaps))) + "\n")
	s.WriteString(MetricLabel.Render("Policy") + MetricValue.Render(m.sim.Policy().String()) + "\n")
	s.WriteString(MetricLabel.Render("Energy") + MetricValue.Render(fmt.Sprintf("%.2f", energy)) + "\n")

	if len(m.energyHistory) > 1 {
		chart := asciigraph.Plot(m.energyHistory, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("kinetic energy"))
		s.WriteString("\n" + chart + "\n")
		s.WriteString(MetricLabel.Render("Speed") + SparklineChart(m.speedHistory, 18) + "\n")
	}

	s.WriteString("\n" + Separator(30) + "\n")
	for i, b := range m.snaps {
		if i == legendRows {
			s.WriteString(Subtle.Render(fmt.Sprintf("  … %d more", len(m.snaps)-legendRows)) + "\n")
			break
		}
		s.WriteString(fmt.Sprintf("%s %-3d %7.1f %7.1f\n", Swatch(b.Color), b.ID, b.Center.X, b.Center.Y))
	}

	if m.err != nil {
		s.WriteString("\n" + StatusPaused.Render("error: "+m.err.Error()) + "\n")
	}

	s.WriteString("\n" + KeyHint.Render("SP:Pause N:Step R:Reset\nP:Policy T:Theme ?:Help Q:Quit"))

	mainView := lipgloss.JoinHorizontal(lipgloss.Top, panelStyle().Render(m.canvas.String()), "  ", s.String())
	if m.showHelp {
		return helpText + "\n\n" + mainView
	}
	return mainView
}

const helpText = `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Space    - Pause/Resume simulation  ║
║  N        - Single tick while paused ║
║  R        - Reset to the first tick  ║
║  P        - Toggle collision policy  ║
║  T        - Cycle themes             ║
║  Q        - Quit                     ║
║  ?        - Toggle this help         ║
╚══════════════════════════════════════╝`

// Run shows the live arena until the user quits.
func Run(s *sim.Simulator, build Builder, title string) error {
	m, err := NewModel(s, build, title)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
