package countdown

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"annoyingtimer/internal/alarm"
	"annoyingtimer/internal/core/model"
)

var (
	// ErrInvalidTransition indicates an action that is not allowed in the current state.
	ErrInvalidTransition = errors.New("invalid transition")
	// ErrZeroDuration indicates a start request with both sliders at zero.
	ErrZeroDuration = errors.New("countdown duration is zero")
	// ErrConfigLocked indicates a slider change outside the stopped state.
	ErrConfigLocked = errors.New("countdown config is locked while the timer runs")
	// ErrClosed indicates the controller has been torn down.
	ErrClosed = errors.New("controller closed")
)

// DefaultTickInterval is how often a running countdown is re-evaluated.
const DefaultTickInterval = 250 * time.Millisecond

// Config contains runtime options for Controller.
type Config struct {
	TickInterval time.Duration
	Scheduler    Scheduler
	Clock        Clock
}

// Controller is the timer state machine. It owns the countdown config,
// the remaining time, the tick schedule and the alarm playback handle.
type Controller struct {
	mu         sync.Mutex
	config     model.CountdownConfig
	options    Config
	state      State
	remaining  int
	deadline   time.Time
	stopTicks  func()
	generation uint64
	clip       alarm.Clip
	newPlayer  alarm.Factory
	player     alarm.Player
	ringing    bool
	events     []chan Event
	closed     bool
}

// New creates a stopped Controller and a playback handle for clip.
func New(config model.CountdownConfig, clip alarm.Clip, factory alarm.Factory, options Config) (*Controller, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if !clip.Valid() {
		return nil, fmt.Errorf("%w: %q", alarm.ErrUnknownClip, string(clip))
	}
	if factory == nil {
		return nil, errors.New("alarm factory is nil")
	}
	if options.TickInterval <= 0 {
		options.TickInterval = DefaultTickInterval
	}
	if options.Scheduler == nil {
		options.Scheduler = NewTickerScheduler()
	}
	if options.Clock == nil {
		options.Clock = SystemClock()
	}

	player, err := factory(clip)
	if err != nil {
		return nil, fmt.Errorf("create %s player: %w", clip, err)
	}

	return &Controller{
		config:    config,
		options:   options,
		state:     StateStopped,
		clip:      clip,
		newPlayer: factory,
		player:    player,
	}, nil
}

// Subscribe registers a new observer channel.
func (controller *Controller) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	controller.mu.Lock()
	if controller.closed {
		close(ch)
	} else {
		controller.events = append(controller.events, ch)
	}
	controller.mu.Unlock()
	return ch
}

// Snapshot returns the current render state.
func (controller *Controller) Snapshot() View {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	return controller.viewLocked()
}

// State returns the current state.
func (controller *Controller) State() State {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	return controller.state
}

// SetMinutes moves the minutes slider.
func (controller *Controller) SetMinutes(minutes int) error {
	controller.mu.Lock()
	config := controller.config
	controller.mu.Unlock()
	config.Minutes = minutes
	return controller.SetConfig(config)
}

// SetSeconds moves the seconds slider.
func (controller *Controller) SetSeconds(seconds int) error {
	controller.mu.Lock()
	config := controller.config
	controller.mu.Unlock()
	config.Seconds = seconds
	return controller.SetConfig(config)
}

// SetConfig replaces both slider positions. Only allowed while stopped.
func (controller *Controller) SetConfig(config model.CountdownConfig) error {
	if err := config.Validate(); err != nil {
		return err
	}

	controller.mu.Lock()
	defer controller.mu.Unlock()
	if controller.closed {
		return ErrClosed
	}
	if controller.state != StateStopped {
		return ErrConfigLocked
	}
	if controller.config == config {
		return nil
	}
	controller.config = config
	controller.emitLocked(EventConfigChange, "")
	return nil
}

// Action handles the single action button according to the current state.
// The state is read and the transition applied under one lock, so a tick
// completing the countdown cannot slip in between.
func (controller *Controller) Action() error {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	if controller.closed {
		return ErrClosed
	}

	handler, ok := controller.actionTable()[controller.state]
	if !ok {
		return fmt.Errorf("%w: action from %s", ErrInvalidTransition, controller.state)
	}
	return handler()
}

func (controller *Controller) actionTable() map[State]func() error {
	return map[State]func() error{
		StateStopped:   controller.startLocked,
		StateStarted:   controller.pauseLocked,
		StatePaused:    controller.resumeLocked,
		StateCompleted: controller.snoozeLocked,
	}
}

// Start captures the slider config and begins the countdown.
func (controller *Controller) Start() error {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	return controller.startLocked()
}

func (controller *Controller) startLocked() error {
	if err := controller.requireLocked("start", StateStopped); err != nil {
		return err
	}
	total := controller.config.TotalSeconds()
	if total <= 0 {
		return ErrZeroDuration
	}

	controller.remaining = total
	controller.state = StateStarted
	controller.startTicksLocked()
	controller.emitLocked(EventStateChange, "")
	return nil
}

// Pause freezes the countdown at the last observed remaining time.
func (controller *Controller) Pause() error {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	return controller.pauseLocked()
}

func (controller *Controller) pauseLocked() error {
	if err := controller.requireLocked("pause", StateStarted); err != nil {
		return err
	}

	controller.stopTicksLocked()
	controller.state = StatePaused
	controller.emitLocked(EventStateChange, "")
	return nil
}

// Resume continues a paused countdown from its remaining time.
func (controller *Controller) Resume() error {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	return controller.resumeLocked()
}

func (controller *Controller) resumeLocked() error {
	if err := controller.requireLocked("resume", StatePaused); err != nil {
		return err
	}

	controller.state = StateStarted
	controller.startTicksLocked()
	controller.emitLocked(EventStateChange, "")
	return nil
}

// Snooze silences the alarm. The timer stays completed.
func (controller *Controller) Snooze() error {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	return controller.snoozeLocked()
}

func (controller *Controller) snoozeLocked() error {
	if err := controller.requireLocked("snooze", StateCompleted); err != nil {
		return err
	}

	controller.stopPlaybackLocked()
	controller.emitLocked(EventSnoozed, "")
	return nil
}

// Reset returns to the stopped state from any state.
func (controller *Controller) Reset() error {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	if controller.closed {
		return ErrClosed
	}

	controller.stopTicksLocked()
	controller.stopPlaybackLocked()
	controller.state = StateStopped
	controller.remaining = 0
	controller.deadline = time.Time{}
	controller.emitLocked(EventStateChange, "")
	return nil
}

// SelectAlarm binds a new playback handle to clip. The state is unchanged.
func (controller *Controller) SelectAlarm(clip alarm.Clip) error {
	if !clip.Valid() {
		return fmt.Errorf("%w: %q", alarm.ErrUnknownClip, string(clip))
	}

	controller.mu.Lock()
	defer controller.mu.Unlock()
	if controller.closed {
		return ErrClosed
	}

	player, err := controller.newPlayer(clip)
	if err != nil {
		return fmt.Errorf("create %s player: %w", clip, err)
	}
	controller.stopPlaybackLocked()
	controller.releasePlayerLocked()
	controller.player = player
	controller.clip = clip
	controller.emitLocked(EventAlarmChange, "")
	return nil
}

// Close stops ticking, releases the playback handle and closes observers.
func (controller *Controller) Close() {
	controller.mu.Lock()
	if controller.closed {
		controller.mu.Unlock()
		return
	}
	controller.stopTicksLocked()
	controller.stopPlaybackLocked()
	controller.releasePlayerLocked()
	controller.closed = true
	events := controller.events
	controller.events = nil
	controller.mu.Unlock()

	for _, ch := range events {
		close(ch)
	}
}

func (controller *Controller) requireLocked(action string, want State) error {
	if controller.closed {
		return ErrClosed
	}
	if controller.state != want {
		return fmt.Errorf("%w: %s from %s", ErrInvalidTransition, action, controller.state)
	}
	return nil
}

func (controller *Controller) startTicksLocked() {
	controller.stopTicksLocked()
	controller.deadline = controller.options.Clock.Now().Add(time.Duration(controller.remaining) * time.Second)
	generation := controller.generation
	controller.stopTicks = controller.options.Scheduler.Every(controller.options.TickInterval, func(tickTime time.Time) {
		controller.tick(generation, tickTime)
	})
}

// stopTicksLocked cancels the schedule. Bumping the generation turns any
// tick already waiting on the mutex into a no-op.
func (controller *Controller) stopTicksLocked() {
	controller.generation++
	if controller.stopTicks != nil {
		controller.stopTicks()
		controller.stopTicks = nil
	}
}

func (controller *Controller) tick(generation uint64, tickTime time.Time) {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	if controller.closed || generation != controller.generation || controller.state != StateStarted {
		return
	}

	remaining := wholeSeconds(controller.deadline.Sub(tickTime))
	if remaining != controller.remaining {
		controller.remaining = remaining
		controller.emitLocked(EventProgress, "")
	}
	if remaining == 0 {
		controller.completeLocked()
	}
}

func (controller *Controller) completeLocked() {
	controller.stopTicksLocked()
	controller.state = StateCompleted
	controller.remaining = 0
	controller.ringing = true
	controller.emitLocked(EventStateChange, "")

	if err := controller.player.Play(); err != nil {
		controller.ringing = false
		controller.emitLocked(EventPlaybackError, fmt.Sprintf("play %s: %v", controller.clip, err))
	}
}

func (controller *Controller) stopPlaybackLocked() {
	if controller.player == nil {
		return
	}
	controller.ringing = false
	if err := controller.player.Stop(); err != nil {
		controller.emitLocked(EventPlaybackError, fmt.Sprintf("stop %s: %v", controller.clip, err))
	}
}

func (controller *Controller) releasePlayerLocked() {
	if controller.player == nil {
		return
	}
	if err := controller.player.Release(); err != nil {
		controller.emitLocked(EventPlaybackError, fmt.Sprintf("release %s: %v", controller.clip, err))
	}
	controller.player = nil
}

func (controller *Controller) viewLocked() View {
	display := model.FormatClock(controller.config.TotalSeconds())
	switch controller.state {
	case StateStarted, StatePaused:
		display = model.FormatClock(controller.remaining)
	case StateCompleted:
		display = model.FormatClock(0)
	}

	return View{
		State:          controller.state,
		Display:        display,
		Remaining:      controller.remaining,
		Config:         controller.config,
		Action:         ActionFor(controller.state),
		SlidersEnabled: controller.state == StateStopped,
		ResetVisible:   controller.state == StatePaused || controller.state == StateCompleted,
		Alarm:          controller.clip,
		Ringing:        controller.ringing,
	}
}

func (controller *Controller) emitLocked(eventType EventType, message string) {
	event := Event{
		Type:    eventType,
		View:    controller.viewLocked(),
		Message: message,
		At:      controller.options.Clock.Now(),
	}
	for _, ch := range controller.events {
		select {
		case ch <- event:
		default:
		}
	}
}

// wholeSeconds floors a duration to whole seconds, clamped at zero.
func wholeSeconds(value time.Duration) int {
	if value <= 0 {
		return 0
	}
	return int(value / time.Second)
}
