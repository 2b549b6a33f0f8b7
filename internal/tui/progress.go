package tui

import (
	"fmt"
	"io"
	"strings"

	progress "github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"shapemask/internal/grid"
)

type quadrantProgressMsg struct {
	quadrant int
	percent  int
}

type quadrantDoneMsg struct{ quadrant int }

// progressModel shows one bar per quadrant and quits when all are done.
type progressModel struct {
	title   string
	bars    [grid.QuadrantCount]progress.Model
	percent [grid.QuadrantCount]int
	done    [grid.QuadrantCount]bool
	aborted bool
	width   int
}

func newProgressModel(title string) progressModel {
	m := progressModel{title: title, width: 60}
	for i := range m.bars {
		m.bars[i] = progress.New(progress.WithDefaultGradient(), progress.WithWidth(m.width))
	}
	return m
}

func (m progressModel) Init() tea.Cmd { return nil }

func (m progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = max(10, min(80, msg.Width-16))
		for i := range m.bars {
			m.bars[i].Width = m.width
		}
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.aborted = true
			return m, tea.Quit
		}
	case quadrantProgressMsg:
		if msg.quadrant >= 0 && msg.quadrant < len(m.percent) {
			m.percent[msg.quadrant] = msg.percent
		}
	case quadrantDoneMsg:
		if msg.quadrant >= 0 && msg.quadrant < len(m.done) {
			m.done[msg.quadrant] = true
			m.percent[msg.quadrant] = 100
		}
		if m.allDone() {
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m progressModel) allDone() bool {
	for _, d := range m.done {
		if !d {
			return false
		}
	}
	return true
}

func (m progressModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("\n\n")
	for i := range m.bars {
		state := dimStyle.Render(fmt.Sprintf(" %3d%%", m.percent[i]))
		if m.done[i] {
			state = landStyle.Render(" done")
		}
		row := lipgloss.JoinHorizontal(lipgloss.Center,
			barLabel.Render(fmt.Sprintf("Q%d", i)),
			m.bars[i].ViewAs(float64(m.percent[i])/100),
			state)
		b.WriteString(row)
		b.WriteString("\n")
	}
	if m.aborted {
		b.WriteString(dimStyle.Render("aborted"))
		b.WriteString("\n")
	}
	return b.String()
}

// ProgressReporter draws the rasterization progress as a bubbletea program.
// It satisfies mask.Reporter.
type ProgressReporter struct {
	p    *tea.Program
	done chan struct{}

	// OnAbort runs when the user presses ctrl+c. Rasterization cannot be
	// cancelled, so callers typically exit the process here.
	OnAbort func()
}

// NewProgressReporter prepares a reporter drawing to out. Call Start before
// the engine runs and Close afterwards.
func NewProgressReporter(title string, out io.Writer) *ProgressReporter {
	return &ProgressReporter{
		p:    tea.NewProgram(newProgressModel(title), tea.WithOutput(out)),
		done: make(chan struct{}),
	}
}

// Start runs the program in the background.
func (r *ProgressReporter) Start() {
	go func() {
		defer close(r.done)
		final, err := r.p.Run()
		if err != nil {
			return
		}
		if pm, ok := final.(progressModel); ok && pm.aborted && r.OnAbort != nil {
			r.OnAbort()
		}
	}()
}

func (r *ProgressReporter) Progress(quadrant, percent int) {
	r.p.Send(quadrantProgressMsg{quadrant: quadrant, percent: percent})
}

func (r *ProgressReporter) Done(quadrant int) {
	r.p.Send(quadrantDoneMsg{quadrant: quadrant})
}

// Close stops the program, if still running, and waits for it to exit.
func (r *ProgressReporter) Close() {
	r.p.Quit()
	<-r.done
}
