// Package tui renders a live view of a running detuning sweep.
package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/qplex/atombeam/internal/sweep"
)

var (
	titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	rateStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// PointMsg delivers one finished sweep point to the view. Send it
// through the running tea.Program from the sweep's OnPoint callback.
type PointMsg struct {
	Index int
	Point sweep.Point
}

// DoneMsg signals the end of the scan.
type DoneMsg struct{ Err error }

// Model is the live sweep view: a progress line plus the rate curve
// accumulated so far.
type Model struct {
	atom  string
	total int

	rates    []float64
	received int
	last     sweep.Point
	done     bool
	err      error
	width    int
}

func NewModel(atom string, total int) Model {
	return Model{atom: atom, total: total, rates: make([]float64, 0, total), width: 80}
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case PointMsg:
		m.rates = append(m.rates, msg.Point.Rate)
		m.received++
		m.last = msg.Point
	case DoneMsg:
		m.done = true
		m.err = msg.Err
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) View() string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("atombeam sweep"))
	sb.WriteString(dimStyle.Render(fmt.Sprintf("  %s  %d/%d detunings", m.atom, m.received, m.total)))
	sb.WriteString("\n\n")

	if m.received > 0 {
		width := m.width - 10
		if width < 20 {
			width = 20
		}
		sb.WriteString(asciigraph.Plot(m.rates,
			asciigraph.Width(width),
			asciigraph.Height(12),
		))
		sb.WriteString("\n\n")
		sb.WriteString(rateStyle.Render(
			fmt.Sprintf("latest: detuning %.3e rad/s -> rate %.4f", m.last.Detuning, m.last.Rate)))
		sb.WriteString("\n")
	} else {
		sb.WriteString(dimStyle.Render("waiting for first point..."))
		sb.WriteString("\n")
	}

	if m.err != nil {
		sb.WriteString(errStyle.Render("error: " + m.err.Error()))
		sb.WriteString("\n")
	}

	sb.WriteString(dimStyle.Render("q to quit"))
	sb.WriteString("\n")
	return sb.String()
}
