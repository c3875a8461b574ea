package tui

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"annoyingtimer/internal/core/countdown"
)

const eventBufferSize = 32

// Run starts the Bubble Tea program and blocks until the user quits.
func Run(ctx context.Context, controller *countdown.Controller) error {
	events := controller.Subscribe(eventBufferSize)
	p := tea.NewProgram(NewModel(controller, events), tea.WithAltScreen(), tea.WithContext(ctx))

	// Log lines would corrupt the alt screen.
	prevOut := logrus.StandardLogger().Out
	logrus.SetOutput(io.Discard)
	defer logrus.SetOutput(prevOut)

	_, err := p.Run()
	return err
}
