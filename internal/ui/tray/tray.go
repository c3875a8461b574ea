package tray

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"

	"annoyingtimer/internal/alarm"
	"annoyingtimer/internal/core/countdown"
)

const menuTitle = "AnnoyingTimer"

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnShow   func()
	OnAction func()
	OnReset  func()
	OnAlarm  func(alarm.Clip)
	OnQuit   func()
}

// Manager mirrors the timer screen in the system tray.
type Manager struct {
	app        desktop.App
	callbacks  Callbacks
	statusItem *fyne.MenuItem
	actionItem *fyne.MenuItem
	resetItem  *fyne.MenuItem
	alarmItem  *fyne.MenuItem
	alarmItems map[alarm.Clip]*fyne.MenuItem
}

// New creates a tray manager with the provided callbacks.
func New(app desktop.App, callbacks Callbacks) *Manager {
	manager := &Manager{
		app:        app,
		callbacks:  callbacks,
		alarmItems: make(map[alarm.Clip]*fyne.MenuItem),
	}

	manager.statusItem = fyne.NewMenuItem("Stopped", nil)
	manager.statusItem.Disabled = true

	manager.actionItem = fyne.NewMenuItem(string(countdown.ActionStart), func() {
		if manager.callbacks.OnAction != nil {
			manager.callbacks.OnAction()
		}
	})

	manager.resetItem = fyne.NewMenuItem("Reset", func() {
		if manager.callbacks.OnReset != nil {
			manager.callbacks.OnReset()
		}
	})
	manager.resetItem.Disabled = true

	clips := make([]*fyne.MenuItem, 0, len(alarm.Presets()))
	for _, clip := range alarm.Presets() {
		item := fyne.NewMenuItem(clip.Title(), func() {
			if manager.callbacks.OnAlarm != nil {
				manager.callbacks.OnAlarm(clip)
			}
		})
		manager.alarmItems[clip] = item
		clips = append(clips, item)
	}
	manager.alarmItem = fyne.NewMenuItem("Alarm sound", nil)
	manager.alarmItem.ChildMenu = fyne.NewMenu("", clips...)

	manager.refreshMenu()
	return manager
}

// SetView updates the tray entries from a controller view.
func (manager *Manager) SetView(view countdown.View) {
	manager.statusItem.Label = statusLine(view)
	manager.actionItem.Label = string(view.Action)
	manager.resetItem.Disabled = !view.ResetVisible
	for clip, item := range manager.alarmItems {
		item.Checked = clip == view.Alarm
	}
	manager.refreshMenu()
}

func (manager *Manager) refreshMenu() {
	if manager.app == nil {
		return
	}
	manager.app.SetSystemTrayMenu(fyne.NewMenu(menuTitle,
		manager.statusItem,
		fyne.NewMenuItemSeparator(),
		manager.actionItem,
		manager.resetItem,
		manager.alarmItem,
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Show timer", func() {
			if manager.callbacks.OnShow != nil {
				manager.callbacks.OnShow()
			}
		}),
		fyne.NewMenuItem("Quit", func() {
			if manager.callbacks.OnQuit != nil {
				manager.callbacks.OnQuit()
			}
		}),
	))
}

func statusLine(view countdown.View) string {
	switch view.State {
	case countdown.StateStarted:
		return fmt.Sprintf("%s remaining", view.Display)
	case countdown.StatePaused:
		return fmt.Sprintf("%s (paused)", view.Display)
	case countdown.StateCompleted:
		if view.Ringing {
			return "Time's up!"
		}
		return "Done"
	default:
		return fmt.Sprintf("Stopped at %s", view.Display)
	}
}
