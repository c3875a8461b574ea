package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"annoyingtimer/internal/alarm"
	"annoyingtimer/internal/core/countdown"
	"annoyingtimer/internal/core/model"
)

const sliderWidth = 30

var (
	clockStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#E8BE42")).
			Padding(1, 4).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#5C6370"))
	ringingStyle = clockStyle.
			BorderForeground(lipgloss.Color("#C0392B")).
			Foreground(lipgloss.Color("#C0392B"))
	labelStyle    = lipgloss.NewStyle().Width(9)
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#5C6370"))
	activeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#61AFEF"))
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#E8BE42"))
	noticeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#E06C75"))
)

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	clock := clockStyle
	if m.view.Ringing {
		clock = ringingStyle
	}
	b.WriteString(clock.Render(m.view.Display))
	b.WriteString("\n")
	b.WriteString(stateLine(m.view))
	b.WriteString("\n\n")

	b.WriteString(sliderLine("Minutes", m.view.Config.Minutes, model.MaxMinutes, m.view.SlidersEnabled))
	b.WriteString("\n")
	b.WriteString(sliderLine("Seconds", m.view.Config.Seconds, model.MaxSeconds, m.view.SlidersEnabled))
	b.WriteString("\n\n")

	b.WriteString(buttonsLine(m.view))
	b.WriteString("\n")
	b.WriteString(alarmLine(m.view.Alarm))
	b.WriteString("\n")

	if m.notice != "" {
		b.WriteString(noticeStyle.Render(m.notice))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func stateLine(view countdown.View) string {
	switch view.State {
	case countdown.StateStarted:
		return activeStyle.Render("running")
	case countdown.StatePaused:
		return dimStyle.Render("paused")
	case countdown.StateCompleted:
		if view.Ringing {
			return noticeStyle.Render("time's up!")
		}
		return dimStyle.Render("done")
	default:
		return dimStyle.Render("stopped")
	}
}

func sliderLine(label string, value, max int, enabled bool) string {
	filled := 0
	if max > 0 {
		filled = value * sliderWidth / max
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", sliderWidth-filled)
	line := fmt.Sprintf("%s %s %02d", labelStyle.Render(label), bar, value)
	if !enabled {
		return dimStyle.Render(line)
	}
	return line
}

func buttonsLine(view countdown.View) string {
	buttons := "[ " + string(view.Action) + " ]"
	if view.ResetVisible {
		buttons += "  [ Reset ]"
	}
	return activeStyle.Render(buttons)
}

func alarmLine(selected alarm.Clip) string {
	parts := make([]string, 0, len(alarm.Presets()))
	for index, clip := range alarm.Presets() {
		entry := fmt.Sprintf("%d %s", index+1, clip.Title())
		if clip == selected {
			parts = append(parts, selectedStyle.Render("● "+entry))
			continue
		}
		parts = append(parts, dimStyle.Render("○ "+entry))
	}
	return "Alarm: " + strings.Join(parts, "  ")
}
