package cli

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/boxlay/boxlay/pkg/config"
	"github.com/boxlay/boxlay/pkg/graph"
	"github.com/boxlay/boxlay/pkg/layout"
	"github.com/boxlay/boxlay/pkg/layout/force"
	"github.com/boxlay/boxlay/pkg/layout/refine"
)

// watchCommand creates the watch command for observing layout convergence.
func (c *CLI) watchCommand() *cobra.Command {
	var interval time.Duration

	cmd := &cobra.Command{
		Use:   "watch [graph.json]",
		Short: "Watch the layout converge step by step",
		Long: `Watch the layout converge step by step in the terminal.

The watch command runs the layout pipeline one step at a time and shows the
current phase, step count, overlap score, and bounding box after every step.
Useful for tuning the force and refinement parameters.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runWatch(args[0], interval)
		},
	}

	cmd.Flags().DurationVar(&interval, "interval", 50*time.Millisecond, "delay between steps")

	return cmd
}

// runWatch loads the graph and drives the interactive convergence view.
func (c *CLI) runWatch(input string, interval time.Duration) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}

	g, err := graph.ReadGraphFile(input)
	if err != nil {
		return fmt.Errorf("load graph %s: %w", input, err)
	}
	if g.NodeCount() == 0 {
		printInfo("Graph is empty, nothing to watch")
		return nil
	}

	seeded, err := layout.Circular(g)
	if err != nil {
		return fmt.Errorf("seed layout: %w", err)
	}

	model := newWatchModel(g, seeded, cfg, interval)
	if _, err := tea.NewProgram(model).Run(); err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	return nil
}

// Watch phases, in execution order.
const (
	phaseRelax  = "relax"
	phaseRefine = "refine"
	phaseDone   = "done"
)

// stepMsg advances the watch model by one layout step.
type stepMsg struct{}

// watchModel is the bubbletea model driving the convergence view.
type watchModel struct {
	graph    *graph.Graph
	layout   layout.Layout
	cfg      config.Config
	interval time.Duration

	phase  string
	step   int
	score  float64
	paused bool
}

func newWatchModel(g *graph.Graph, l layout.Layout, cfg config.Config, interval time.Duration) watchModel {
	return watchModel{
		graph:    g,
		layout:   l,
		cfg:      cfg,
		interval: interval,
		phase:    phaseRelax,
		score:    refine.Score(l, cfg.Refine.Margin),
	}
}

func (m watchModel) Init() tea.Cmd {
	return m.tick()
}

func (m watchModel) tick() tea.Cmd {
	return tea.Tick(m.interval, func(time.Time) tea.Msg { return stepMsg{} })
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case " ":
			m.paused = !m.paused
			if !m.paused {
				return m, m.tick()
			}
		}
	case stepMsg:
		if m.paused {
			return m, nil
		}
		m = m.advance()
		if m.phase == phaseDone {
			return m, nil
		}
		return m, m.tick()
	}
	return m, nil
}

// advance runs one step of the current phase and moves to the next phase
// when the current one is exhausted.
func (m watchModel) advance() watchModel {
	switch m.phase {
	case phaseRelax:
		m.layout = force.Step(m.graph, m.layout, m.cfg.Force)
		m.score = refine.Score(m.layout, m.cfg.Refine.Margin)
		m.step++
		if m.step >= m.cfg.Force.Steps {
			m.phase = phaseRefine
			m.step = 0
		}
	case phaseRefine:
		next, nextScore := refine.Step(m.graph, m.layout, m.cfg.Refine)
		if m.score-nextScore < m.cfg.Refine.MinBenefit || m.step+1 >= m.cfg.Refine.MaxSteps {
			m.phase = phaseDone
			return m
		}
		m.layout, m.score = next, nextScore
		m.step++
	}
	return m
}

func (m watchModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Layout Convergence"))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("space pause  q quit"))
	b.WriteString("\n\n")

	bounds := m.layout.Bounds()
	rows := [][]string{
		{"Phase", m.phase},
		{"Step", fmt.Sprintf("%d", m.step)},
		{"Score", fmt.Sprintf("%.1f", m.score)},
		{"Boxes", fmt.Sprintf("%d", m.layout.Len())},
		{"Bounds", fmt.Sprintf("%.0f × %.0f", bounds.Width(), bounds.Height())},
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if col == 0 {
				return lipgloss.NewStyle().Foreground(colorGray).Padding(0, 1)
			}
			return lipgloss.NewStyle().Foreground(colorWhite).Padding(0, 1)
		})

	b.WriteString(t.Render())
	b.WriteString("\n")

	if m.phase == phaseDone {
		b.WriteString("\n")
		b.WriteString(StyleSuccess.Render("Converged"))
		b.WriteString(StyleDim.Render("  press q to exit"))
		b.WriteString("\n")
	}

	return b.String()
}
