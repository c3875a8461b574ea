package preferences

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"annoyingtimer/internal/alarm"
)

// Window handles the preferences UI.
type Window struct {
	window      fyne.Window
	settings    Settings
	onSave      func(Settings)
	alarms      *widget.RadioGroup
	volume      *widget.Slider
	volumeLabel *widget.Label
	flash       *widget.Check
}

// New creates a preferences window.
func New(app fyne.App, settings Settings, onSave func(Settings)) *Window {
	window := app.NewWindow("AnnoyingTimer Settings")

	alarms := widget.NewRadioGroup(clipTitles(), nil)
	alarms.Required = true
	alarms.SetSelected(settings.Alarm.Title())

	volumeLabel := widget.NewLabel(formatVolume(settings.Volume))
	volume := widget.NewSlider(0, 1)
	volume.Step = 0.05
	volume.Value = settings.Volume
	volume.OnChanged = func(value float64) {
		volumeLabel.SetText(formatVolume(value))
	}

	flash := widget.NewCheck("Flash the clock while the alarm rings", nil)
	flash.SetChecked(settings.FlashOnAlarm)

	form := container.NewVBox(
		widget.NewLabelWithStyle("Alarm sound", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		alarms,
		container.NewHBox(widget.NewLabel("Volume"), layout.NewSpacer(), volumeLabel),
		volume,
		flash,
	)

	saveButton := widget.NewButton("Save", nil)
	cancelButton := widget.NewButton("Cancel", func() {
		window.Hide()
	})
	buttons := container.NewHBox(saveButton, layout.NewSpacer(), cancelButton)

	window.SetContent(container.NewBorder(nil, buttons, nil, nil, form))
	window.Resize(fyne.NewSize(360, 320))
	window.SetCloseIntercept(func() {
		window.Hide()
	})

	prefs := &Window{
		window:      window,
		settings:    settings,
		onSave:      onSave,
		alarms:      alarms,
		volume:      volume,
		volumeLabel: volumeLabel,
		flash:       flash,
	}
	saveButton.OnTapped = prefs.handleSave

	return prefs
}

// Show displays the preferences window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// UpdateSettings replaces window values.
func (prefs *Window) UpdateSettings(settings Settings) {
	prefs.settings = settings
	prefs.alarms.SetSelected(settings.Alarm.Title())
	prefs.volume.SetValue(settings.Volume)
	prefs.flash.SetChecked(settings.FlashOnAlarm)
}

func (prefs *Window) handleSave() {
	settings := prefs.settings
	if clip, ok := clipByTitle(prefs.alarms.Selected); ok {
		settings.Alarm = clip
	}
	settings.Volume = prefs.volume.Value
	settings.FlashOnAlarm = prefs.flash.Checked

	prefs.settings = settings
	if prefs.onSave != nil {
		prefs.onSave(settings)
	}
	prefs.window.Hide()
}

func clipTitles() []string {
	titles := make([]string, 0, len(alarm.Presets()))
	for _, clip := range alarm.Presets() {
		titles = append(titles, clip.Title())
	}
	return titles
}

func clipByTitle(title string) (alarm.Clip, bool) {
	for _, clip := range alarm.Presets() {
		if clip.Title() == title {
			return clip, true
		}
	}
	return "", false
}

func formatVolume(value float64) string {
	return fmt.Sprintf("%d%%", int(value*100+0.5))
}
