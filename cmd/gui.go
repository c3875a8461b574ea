package main

import (
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
	"github.com/sirupsen/logrus"

	"annoyingtimer/internal/alarm"
	"annoyingtimer/internal/core/countdown"
	"annoyingtimer/internal/platform"
	"annoyingtimer/internal/ui/preferences"
	"annoyingtimer/internal/ui/screen"
	"annoyingtimer/internal/ui/tray"
	"annoyingtimer/resources"
)

const eventBufferSize = 32

func runGUI(opts *options) error {
	guard, err := platform.AcquireSingleInstance(appName)
	if err != nil {
		return err
	}
	defer func() {
		_ = guard.Release()
	}()

	session, err := newSession(opts, alarm.NewBellFactory(os.Stderr))
	if err != nil {
		return err
	}
	controller := session.controller
	defer controller.Close()

	fyneApp := app.NewWithID("io.annoyingtimer.app")
	idleIcon := resources.MustIcon("timer.svg")
	ringingIcon := resources.MustIcon("timer_ringing.svg")
	fyneApp.SetIcon(idleIcon)

	window := fyneApp.NewWindow("AnnoyingTimer")

	selectAlarm := func(clip alarm.Clip) {
		if err := controller.SelectAlarm(clip); err != nil {
			logrus.Errorf("select alarm %s: %v", clip, err)
			return
		}
		session.settings.Alarm = clip
		session.save()
	}

	var prefsWindow *preferences.Window
	mainScreen := screen.New(screen.Handlers{
		OnMinutes: func(value int) { logRejected("minutes", controller.SetMinutes(value)) },
		OnSeconds: func(value int) { logRejected("seconds", controller.SetSeconds(value)) },
		OnAction:  func() { logRejected("action", controller.Action()) },
		OnReset:   func() { logRejected("reset", controller.Reset()) },
		OnAlarm:   selectAlarm,
		OnPreferences: func() {
			prefsWindow.UpdateSettings(session.settings)
			prefsWindow.Show()
		},
	}, session.settings.FlashOnAlarm)
	defer mainScreen.Close()

	prefsWindow = preferences.New(fyneApp, session.settings, func(updated preferences.Settings) {
		// The tick interval only applies to the next launch.
		updated.TickInterval = session.settings.TickInterval
		session.settings = updated
		session.volume.set(updated.Volume)
		mainScreen.SetFlashOnAlarm(updated.FlashOnAlarm)
		// Rebinding picks up the new volume even when the clip is unchanged.
		selectAlarm(updated.Alarm)
	})

	window.SetContent(mainScreen.Content())
	window.SetMainMenu(mainScreen.MainMenu())
	window.Resize(fyne.NewSize(420, 360))
	window.SetMaster()

	var trayManager *tray.Manager
	desktopApp, hasTray := fyneApp.(desktop.App)
	if hasTray && !opts.noTray {
		trayManager = tray.New(desktopApp, tray.Callbacks{
			OnShow: func() {
				window.Show()
				window.RequestFocus()
			},
			OnAction: func() { logRejected("action", controller.Action()) },
			OnReset:  func() { logRejected("reset", controller.Reset()) },
			OnAlarm:  selectAlarm,
			OnQuit:   fyneApp.Quit,
		})
		desktopApp.SetSystemTrayIcon(idleIcon)
	} else if !opts.noTray {
		logrus.Debug("system tray unsupported on this platform")
	}

	ringing := false
	apply := func(view countdown.View) {
		mainScreen.Apply(view)
		if trayManager == nil {
			return
		}
		trayManager.SetView(view)
		if view.Ringing == ringing {
			return
		}
		ringing = view.Ringing
		if ringing {
			desktopApp.SetSystemTrayIcon(ringingIcon)
		} else {
			desktopApp.SetSystemTrayIcon(idleIcon)
		}
	}
	apply(controller.Snapshot())

	events := controller.Subscribe(eventBufferSize)
	go func() {
		for event := range events {
			switch event.Type {
			case countdown.EventPlaybackError:
				logrus.Errorf("alarm playback: %s", event.Message)
			case countdown.EventStateChange:
				logrus.WithField("state", event.View.State).Debug("state changed")
			}
			view := event.View
			fyne.Do(func() {
				apply(view)
			})
		}
	}()

	window.ShowAndRun()
	return nil
}
