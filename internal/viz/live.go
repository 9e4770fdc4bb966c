// Package viz renders a live terminal view of a running demagnetization
// simulation: scrolling magnetization and temperature traces with the
// current state alongside.
package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/aholtz/demag/internal/m3tm"
)

const (
	graphWidth  = 64
	graphHeight = 7
	// target number of frames to spread the whole grid over, so a
	// 20k-step run still animates in about ten seconds
	targetFrames = 600
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	magStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	tempStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

type TickMsg time.Time

// Model steps the sample a fixed number of grid intervals per frame
// and plots the accumulated history.
type Model struct {
	newSample func() (*m3tm.Sample, error)
	sample    *m3tm.Sample
	times     []float64
	pulse     []float64
	idx       int
	stride    int
	running   bool
	done      bool
}

func NewModel(newSample func() (*m3tm.Sample, error), times, p []float64) (Model, error) {
	s, err := newSample()
	if err != nil {
		return Model{}, err
	}
	stride := len(times) / targetFrames
	if stride < 1 {
		stride = 1
	}
	return Model{
		newSample: newSample,
		sample:    s,
		times:     times,
		pulse:     p,
		stride:    stride,
		running:   true,
	}, nil
}

func (m Model) Init() tea.Cmd {
	return tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			if s, err := m.newSample(); err == nil {
				m.sample = s
				m.idx = 0
				m.done = false
				m.running = true
			}
		}
	case TickMsg:
		if m.running && !m.done {
			m.advance()
		}
		return m, tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) })
	}
	return m, nil
}

func (m *Model) advance() {
	for k := 0; k < m.stride && m.idx < len(m.times)-1; k++ {
		m.idx++
		dt := m.times[m.idx] - m.times[m.idx-1]
		if err := m.sample.Step(dt, m.pulse[m.idx-1]); err != nil {
			m.done = true
			return
		}
	}
	if m.idx >= len(m.times)-1 {
		m.done = true
	}
}

func (m Model) View() string {
	var s strings.Builder
	s.WriteString(headerStyle.Render("M3TM DEMAGNETIZATION") + "\n")

	status := "RUNNING"
	if m.done {
		status = "DONE"
	} else if !m.running {
		status = "PAUSED"
	}
	s.WriteString(status + "\n")

	h := &m.sample.Hist
	if h.Len() > 1 {
		mag := asciigraph.Plot(h.M, asciigraph.Height(graphHeight), asciigraph.Width(graphWidth), asciigraph.Caption("m"))
		s.WriteString(magStyle.Render(mag) + "\n")
		te := asciigraph.Plot(h.Te, asciigraph.Height(graphHeight), asciigraph.Width(graphWidth), asciigraph.Caption("Te (K)"))
		s.WriteString(tempStyle.Render(te) + "\n")
	}

	m0 := h.M[0]
	s.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.1f fs", m.sample.Time*1e15)) + "\n")
	s.WriteString(labelStyle.Render("Te") + valueStyle.Render(fmt.Sprintf("%.1f K", m.sample.Te)) + "\n")
	s.WriteString(labelStyle.Render("Tph") + valueStyle.Render(fmt.Sprintf("%.1f K", m.sample.Tph)) + "\n")
	s.WriteString(labelStyle.Render("m / m0") + valueStyle.Render(fmt.Sprintf("%.4f", m.sample.M/m0)) + "\n")

	s.WriteString(helpStyle.Render("SP:Pause R:Restart Q:Quit"))
	return s.String()
}

// Run drives the live view to completion or until the user quits.
func Run(newSample func() (*m3tm.Sample, error), times, p []float64) error {
	model, err := NewModel(newSample, times, p)
	if err != nil {
		return err
	}
	prog := tea.NewProgram(model)
	_, err = prog.Run()
	return err
}
