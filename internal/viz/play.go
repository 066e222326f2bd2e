// Package viz plays back a stored trajectory in the terminal, mapping each
// particle's displacement onto a blue-white-red ramp.
package viz

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/meshwave/internal/storage"
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	pausedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

type TickMsg time.Time

// Model steps through the stored frames of one run.
type Model struct {
	meta    *storage.RunMetadata
	data    *storage.FrameData
	idx     int
	playing bool
	speed   float64
	maxAbs  float64
}

func NewModel(meta *storage.RunMetadata, data *storage.FrameData) Model {
	return Model{
		meta:    meta,
		data:    data,
		playing: true,
		speed:   1.0,
		maxAbs:  maxAbsFrames(data.Frames),
	}
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) tick() tea.Cmd {
	fps := float64(m.meta.FPS)
	if fps <= 0 {
		fps = 30
	}
	interval := time.Duration(float64(time.Second) / (fps * m.speed))
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TickMsg:
		if m.playing && len(m.data.Frames) > 0 {
			m.idx = (m.idx + 1) % len(m.data.Frames)
		}
		return m, m.tick()

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.playing = !m.playing
		case "left", "h":
			m.playing = false
			if m.idx > 0 {
				m.idx--
			}
		case "right", "l":
			m.playing = false
			if m.idx < len(m.data.Frames)-1 {
				m.idx++
			}
		case "r":
			m.idx = 0
		case "+", "=":
			if m.speed < 8 {
				m.speed *= 2
			}
		case "-":
			if m.speed > 0.25 {
				m.speed /= 2
			}
		}
	}
	return m, nil
}

func (m Model) View() string {
	if len(m.data.Frames) == 0 {
		return headerStyle.Render(m.meta.ID) + "\n" +
			labelStyle.Render("no frames exported for this run") + "\n"
	}

	status := "playing"
	if !m.playing {
		status = pausedStyle.Render("paused")
	}

	header := headerStyle.Render(m.meta.ID) + "\n" +
		labelStyle.Render("frame ") +
		valueStyle.Render(fmt.Sprintf("%d/%d", m.idx+1, len(m.data.Frames))) +
		labelStyle.Render("  t ") +
		valueStyle.Render(fmt.Sprintf("%.3fs", m.data.Times[m.idx])) +
		labelStyle.Render("  speed ") +
		valueStyle.Render(fmt.Sprintf("%gx", m.speed)) +
		labelStyle.Render("  ") + status + "\n\n"

	help := helpStyle.Render("space pause · ←/→ step · +/- speed · r restart · q quit")

	return header + renderFrame(m.data.Frames[m.idx], m.maxAbs) + help + "\n"
}
