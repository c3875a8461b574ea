// Package tui hosts the timer controller in a terminal.
package tui

import (
	"errors"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"annoyingtimer/internal/alarm"
	"annoyingtimer/internal/core/countdown"
	"annoyingtimer/internal/core/model"
)

// Controller is the subset of the timer controller the terminal drives.
type Controller interface {
	Snapshot() countdown.View
	SetMinutes(int) error
	SetSeconds(int) error
	Action() error
	Reset() error
	SelectAlarm(alarm.Clip) error
}

// Model is the root Bubble Tea model.
type Model struct {
	controller Controller
	events     <-chan countdown.Event
	view       countdown.View
	keys       keyMap
	help       help.Model
	notice     string
	width      int
	quitting   bool
}

// NewModel wraps controller. events should come from the controller's Subscribe.
func NewModel(controller Controller, events <-chan countdown.Event) Model {
	return Model{
		controller: controller,
		events:     events,
		view:       controller.Snapshot(),
		keys:       newKeyMap(),
		help:       help.New(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return m.listenForEvents()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch x := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = x.Width
		m.help.Width = x.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(x)

	case eventMsg:
		m.view = x.View
		if x.Type == countdown.EventPlaybackError {
			m.notice = x.Message
		}
		return m, m.listenForEvents()

	case eventsClosedMsg:
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var err error
	config := m.view.Config

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.MinutesUp):
		err = m.controller.SetMinutes(step(config.Minutes, 1, model.MaxMinutes))
	case key.Matches(msg, m.keys.MinutesDown):
		err = m.controller.SetMinutes(step(config.Minutes, -1, model.MaxMinutes))
	case key.Matches(msg, m.keys.SecondsUp):
		err = m.controller.SetSeconds(step(config.Seconds, 1, model.MaxSeconds))
	case key.Matches(msg, m.keys.SecondsDown):
		err = m.controller.SetSeconds(step(config.Seconds, -1, model.MaxSeconds))
	case key.Matches(msg, m.keys.Action):
		err = m.controller.Action()
	case key.Matches(msg, m.keys.Reset):
		err = m.resetIfVisible()
	case key.Matches(msg, m.keys.Foghorn):
		err = m.controller.SelectAlarm(alarm.Foghorn)
	case key.Matches(msg, m.keys.Rooster):
		err = m.controller.SelectAlarm(alarm.Rooster)
	case key.Matches(msg, m.keys.Submarine):
		err = m.controller.SelectAlarm(alarm.Submarine)
	default:
		return m, nil
	}

	m.notice = noticeFor(err)
	if err != nil {
		logrus.Debugf("key %q rejected: %v", msg.String(), err)
	}
	m.view = m.controller.Snapshot()
	return m, nil
}

// resetIfVisible mirrors the screen, where reset is only offered when paused or completed.
func (m Model) resetIfVisible() error {
	if !m.view.ResetVisible {
		return nil
	}
	return m.controller.Reset()
}

func (m Model) listenForEvents() tea.Cmd {
	if m.events == nil {
		return nil
	}
	events := m.events
	return func() tea.Msg {
		event, ok := <-events
		if !ok {
			return eventsClosedMsg{}
		}
		return eventMsg(event)
	}
}

// step moves value by delta and wraps within [0,max].
func step(value, delta, max int) int {
	value += delta
	if value < 0 {
		return max
	}
	if value > max {
		return 0
	}
	return value
}

func noticeFor(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, countdown.ErrZeroDuration):
		return "Set a duration first."
	case errors.Is(err, countdown.ErrConfigLocked):
		return "Reset the timer to change its duration."
	default:
		return err.Error()
	}
}
