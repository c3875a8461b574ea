package main

import (
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"annoyingtimer/internal/alarm"
	"annoyingtimer/internal/core/countdown"
	"annoyingtimer/internal/core/model"
	"annoyingtimer/internal/platform"
	"annoyingtimer/internal/storage"
	"annoyingtimer/internal/ui/preferences"
)

const appName = "AnnoyingTimer"

var errInvalidFlag = errors.New("invalid flag value")

// options are the command line overrides shared by both hosts.
type options struct {
	verbose    bool
	configPath string
	alarmName  string
	tick       time.Duration
	minutes    int
	seconds    int
	noTray     bool
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		if errors.Is(err, platform.ErrAlreadyRunning) {
			logrus.Warn(err)
			os.Exit(0)
		}
		logrus.Fatal(err)
	}
}

func newRootCommand() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:           "annoyingtimer",
		Short:         "A countdown timer that will not let you forget it.",
		Long:          "Set minutes and seconds, start the countdown and get an alarm when it reaches zero.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logrus.SetOutput(os.Stderr)
			if opts.verbose {
				logrus.SetLevel(logrus.DebugLevel)
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGUI(opts)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging")
	flags.StringVar(&opts.configPath, "config", "", "Path to the settings file (default: user config dir)")
	flags.StringVar(&opts.alarmName, "alarm", "", "Alarm sound: foghorn, rooster or submarine")
	flags.DurationVar(&opts.tick, "tick", 0, "Countdown tick interval (default 250ms)")
	flags.IntVar(&opts.minutes, "minutes", 0, "Initial minutes slider position")
	flags.IntVar(&opts.seconds, "seconds", 0, "Initial seconds slider position")
	rootCmd.Flags().BoolVar(&opts.noTray, "no-tray", false, "Do not install the system tray menu")

	rootCmd.AddCommand(newTUICommand(opts))
	return rootCmd
}

// session bundles what both hosts need. settings holds the persisted
// preferences only; command line overrides go straight to the controller.
type session struct {
	settingsPath string
	settings     preferences.Settings
	volume       *volumeControl
	controller   *countdown.Controller
}

func newSession(opts *options, fallback alarm.Factory) (*session, error) {
	settingsPath := opts.configPath
	if settingsPath == "" {
		path, err := storage.SettingsPath(appName)
		if err != nil {
			return nil, err
		}
		settingsPath = path
	}

	settings, err := storage.LoadSettings(settingsPath)
	if err != nil {
		logrus.Warnf("using default settings: %v", err)
	}
	effective, err := applyOverrides(opts, settings)
	if err != nil {
		return nil, err
	}

	config := model.CountdownConfig{Minutes: opts.minutes, Seconds: opts.seconds}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	volume := &volumeControl{value: effective.Volume}
	factory := volume.factory()
	if err := alarm.ProbeSpeaker(); err != nil {
		logrus.Warnf("audio output unavailable, falling back: %v", err)
		factory = fallback
	}

	controller, err := countdown.New(config, effective.Alarm, factory, effective.CountdownConfig())
	if err != nil {
		return nil, fmt.Errorf("create controller: %w", err)
	}
	logrus.WithFields(logrus.Fields{
		"alarm":    effective.Alarm,
		"tick":     effective.TickInterval,
		"settings": settingsPath,
	}).Debug("controller ready")

	return &session{
		settingsPath: settingsPath,
		settings:     settings,
		volume:       volume,
		controller:   controller,
	}, nil
}

// applyOverrides returns settings with the command line flags applied.
// The input is left untouched so overrides never reach the settings file.
func applyOverrides(opts *options, settings preferences.Settings) (preferences.Settings, error) {
	if opts.alarmName != "" {
		clip, err := alarm.Parse(opts.alarmName)
		if err != nil {
			return settings, err
		}
		settings.Alarm = clip
	}
	if opts.tick != 0 {
		if !preferences.ValidTickInterval(opts.tick) {
			return settings, fmt.Errorf("%w: --tick %s outside %s..%s",
				errInvalidFlag, opts.tick, preferences.MinTickInterval, preferences.MaxTickInterval)
		}
		settings.TickInterval = opts.tick
	}
	return settings, nil
}

func (s *session) save() {
	if err := storage.SaveSettings(s.settingsPath, s.settings); err != nil {
		logrus.Errorf("save settings: %v", err)
	}
}

// volumeControl lets the speaker factory pick up preference changes.
type volumeControl struct {
	mu    sync.Mutex
	value float64
}

func (control *volumeControl) set(value float64) {
	control.mu.Lock()
	control.value = value
	control.mu.Unlock()
}

func (control *volumeControl) factory() alarm.Factory {
	return func(clip alarm.Clip) (alarm.Player, error) {
		control.mu.Lock()
		value := control.value
		control.mu.Unlock()
		return alarm.NewSpeakerPlayer(clip, value)
	}
}

func logRejected(action string, err error) {
	if err == nil {
		return
	}
	logrus.WithField("action", action).Debugf("rejected: %v", err)
}
