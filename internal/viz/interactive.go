package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/bounce/internal/config"
	"github.com/san-kum/bounce/internal/physics"
	"github.com/san-kum/bounce/internal/sim"
)

var presetInfo = map[string]string{
	"pair":   "two bodies, head on",
	"rain":   "sixteen random bodies",
	"corner": "four bodies into the corners",
	"stack":  "a dropped column",
}

const (
	stateMenu = iota
	stateSim
)

type menu struct {
	state, cursor int
	presets       []string
	live          Model
	err           error
}

func NewInteractiveApp() tea.Model {
	return menu{
		state:   stateMenu,
		presets: config.ListPresets(),
	}
}

func (m menu) Init() tea.Cmd { return nil }

func (m menu) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.state == stateSim {
		next, cmd := m.live.Update(msg)
		m.live = next.(Model)
		return m, cmd
	}

	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.presets)-1 {
			m.cursor++
		}
	case "enter", " ":
		return m.start(m.presets[m.cursor])
	}
	return m, nil
}

func (m menu) start(name string) (menu, tea.Cmd) {
	cfg := config.GetPreset(name)
	live, err := NewModel(sim.New(cfg.World, cfg.SimPolicy()), func() ([]physics.Body, error) {
		return cfg.Build(cfg.Seed)
	}, name)
	if err != nil {
		m.err = err
		return m, nil
	}
	m.live, m.state = live, stateSim
	return m, live.Init()
}

func (m menu) View() string {
	if m.state == stateSim {
		return m.live.View()
	}

	h := lipgloss.NewStyle().Foreground(CurrentTheme.Accent).Bold(true)
	sel := lipgloss.NewStyle().Foreground(CurrentTheme.Text).Bold(true)
	desc := lipgloss.NewStyle().Foreground(CurrentTheme.Primary)

	var b strings.Builder
	b.WriteString("\n\n    " + h.Render("BOUNCE") + "\n    " + Subtle.Render("bodies in a box") + "\n    " + Subtle.Render("─────────────────────────") + "\n\n")
	for i, name := range m.presets {
		if i == m.cursor {
			b.WriteString(fmt.Sprintf("    %s %s  %s\n", h.Render("▸"), sel.Render(fmt.Sprintf("%-10s", name)), desc.Render(presetInfo[name])))
		} else {
			b.WriteString(fmt.Sprintf("      %s  %s\n", Subtle.Render(fmt.Sprintf("%-10s", name)), Subtle.Render(presetInfo[name])))
		}
	}
	if m.err != nil {
		b.WriteString("\n    " + StatusPaused.Render(m.err.Error()) + "\n")
	}
	b.WriteString("\n    " + KeyHint.Render("j/k navigate  enter select  q quit") + "\n")
	return b.String()
}

func RunInteractive() error {
	_, err := tea.NewProgram(NewInteractiveApp(), tea.WithAltScreen()).Run()
	return err
}
