package tui

import "annoyingtimer/internal/core/countdown"

// eventMsg carries a controller event into the update loop.
type eventMsg countdown.Event

// eventsClosedMsg signals that the controller shut down.
type eventsClosedMsg struct{}
