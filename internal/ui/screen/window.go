package screen

import (
	"context"
	"image/color"
	"math"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"annoyingtimer/internal/alarm"
	"annoyingtimer/internal/core/countdown"
	"annoyingtimer/internal/core/model"
	"annoyingtimer/internal/ui/animation"
)

// Handlers are the user actions the screen forwards to the controller.
type Handlers struct {
	OnMinutes     func(int)
	OnSeconds     func(int)
	OnAction      func()
	OnReset       func()
	OnAlarm       func(alarm.Clip)
	OnPreferences func()
}

// Screen is the single timer screen.
type Screen struct {
	handlers   Handlers
	timeLabel  *canvas.Text
	alarmLabel *widget.Label
	minutes    *widget.Slider
	seconds    *widget.Slider
	action     *widget.Button
	reset      *widget.Button
	alarmItems map[alarm.Clip]*fyne.MenuItem
	menu       *fyne.MainMenu
	content    fyne.CanvasObject
	flash      *animation.Engine
	flashOn    bool
	applying   bool
	view       countdown.View
}

var timeColor = color.NRGBA{R: 232, G: 190, B: 66, A: 255}

// New builds the screen widgets. Call Apply with the controller snapshot before showing.
func New(handlers Handlers, flashOnAlarm bool) *Screen {
	screen := &Screen{
		handlers:   handlers,
		alarmItems: make(map[alarm.Clip]*fyne.MenuItem),
		flashOn:    flashOnAlarm,
	}

	screen.timeLabel = canvas.NewText(model.FormatClock(0), timeColor)
	screen.timeLabel.Alignment = fyne.TextAlignCenter
	screen.timeLabel.TextStyle = fyne.TextStyle{Bold: true, Monospace: true}
	screen.timeLabel.TextSize = 64

	screen.alarmLabel = widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{Italic: true})

	screen.minutes = newSlider(model.MaxMinutes, func(value int) {
		if screen.handlers.OnMinutes != nil {
			screen.handlers.OnMinutes(value)
		}
	}, screen)
	screen.seconds = newSlider(model.MaxSeconds, func(value int) {
		if screen.handlers.OnSeconds != nil {
			screen.handlers.OnSeconds(value)
		}
	}, screen)

	screen.action = widget.NewButtonWithIcon(string(countdown.ActionStart), theme.MediaPlayIcon(), func() {
		if screen.handlers.OnAction != nil {
			screen.handlers.OnAction()
		}
	})
	screen.action.Importance = widget.HighImportance

	screen.reset = widget.NewButtonWithIcon("Reset", theme.MediaReplayIcon(), func() {
		if screen.handlers.OnReset != nil {
			screen.handlers.OnReset()
		}
	})
	screen.reset.Hide()

	screen.flash = animation.New(animation.DefaultConfig(), func(visible bool) {
		fyne.Do(func() {
			screen.setTimeVisible(visible)
		})
	})

	screen.content = container.NewVBox(
		layout.NewSpacer(),
		screen.timeLabel,
		screen.alarmLabel,
		widget.NewLabel("Minutes"),
		screen.minutes,
		widget.NewLabel("Seconds"),
		screen.seconds,
		container.NewGridWithColumns(2, screen.action, screen.reset),
		layout.NewSpacer(),
	)
	screen.menu = screen.buildMenu()

	return screen
}

// Content returns the root canvas object.
func (screen *Screen) Content() fyne.CanvasObject {
	return screen.content
}

// MainMenu returns the menu with the alarm presets.
func (screen *Screen) MainMenu() *fyne.MainMenu {
	return screen.menu
}

// SetFlashOnAlarm toggles flashing of the clock while the alarm rings.
func (screen *Screen) SetFlashOnAlarm(enabled bool) {
	screen.flashOn = enabled
	screen.syncFlash()
}

// Apply renders a controller view. Must run on the UI thread.
func (screen *Screen) Apply(view countdown.View) {
	previousAlarm := screen.view.Alarm
	screen.view = view

	screen.applying = true
	syncSlider(screen.minutes, view.Config.Minutes)
	syncSlider(screen.seconds, view.Config.Seconds)
	screen.applying = false

	if view.SlidersEnabled {
		screen.minutes.Enable()
		screen.seconds.Enable()
	} else {
		screen.minutes.Disable()
		screen.seconds.Disable()
	}

	if screen.timeLabel.Text != view.Display {
		screen.timeLabel.Text = view.Display
		screen.timeLabel.Refresh()
	}

	screen.action.SetText(string(view.Action))
	screen.action.SetIcon(actionIcon(view.Action))

	if view.ResetVisible {
		screen.reset.Show()
	} else {
		screen.reset.Hide()
	}

	screen.alarmLabel.SetText("Alarm: " + view.Alarm.Title())
	if previousAlarm != view.Alarm {
		for clip, item := range screen.alarmItems {
			item.Checked = clip == view.Alarm
		}
		screen.menu.Refresh()
	}

	screen.syncFlash()
}

func (screen *Screen) syncFlash() {
	shouldFlash := screen.flashOn && screen.view.Ringing
	switch {
	case shouldFlash && !screen.flash.Running():
		screen.flash.Start(context.Background())
	case !shouldFlash && screen.flash.Running():
		screen.flash.Stop()
		screen.setTimeVisible(true)
	}
}

// Close stops background animation.
func (screen *Screen) Close() {
	screen.flash.Stop()
}

func (screen *Screen) setTimeVisible(visible bool) {
	if visible {
		screen.timeLabel.Color = timeColor
	} else {
		screen.timeLabel.Color = color.Transparent
	}
	screen.timeLabel.Refresh()
}

func (screen *Screen) buildMenu() *fyne.MainMenu {
	items := make([]*fyne.MenuItem, 0, len(alarm.Presets())+2)
	for _, clip := range alarm.Presets() {
		item := fyne.NewMenuItem(clip.Title(), func() {
			if screen.handlers.OnAlarm != nil {
				screen.handlers.OnAlarm(clip)
			}
		})
		screen.alarmItems[clip] = item
		items = append(items, item)
	}
	items = append(items, fyne.NewMenuItemSeparator(), fyne.NewMenuItem("Preferences…", func() {
		if screen.handlers.OnPreferences != nil {
			screen.handlers.OnPreferences()
		}
	}))
	return fyne.NewMainMenu(fyne.NewMenu("Alarm", items...))
}

func newSlider(max int, onChange func(int), screen *Screen) *widget.Slider {
	slider := widget.NewSlider(0, float64(max))
	slider.Step = 1
	slider.OnChanged = func(value float64) {
		if screen.applying {
			return
		}
		onChange(int(math.Round(value)))
	}
	return slider
}

func syncSlider(slider *widget.Slider, value int) {
	if int(math.Round(slider.Value)) != value {
		slider.SetValue(float64(value))
	}
}

func actionIcon(action countdown.Action) fyne.Resource {
	switch action {
	case countdown.ActionPause:
		return theme.MediaPauseIcon()
	case countdown.ActionSnooze:
		return theme.VolumeMuteIcon()
	default:
		return theme.MediaPlayIcon()
	}
}
