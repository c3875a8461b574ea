package animation

import (
	"context"
	"math/rand"
	"sync"
	"time"
)

// Range defines a duration range with random sampling.
type Range struct {
	Min time.Duration
	Max time.Duration
}

// Random returns a random duration within the range.
func (value Range) Random(rng *rand.Rand) time.Duration {
	if value.Max <= value.Min {
		return value.Min
	}
	delta := value.Max - value.Min
	return value.Min + time.Duration(rng.Int63n(int64(delta)))
}

// Config contains flash timing values.
type Config struct {
	Visible Range
	Hidden  Range
}

// Engine toggles a target on and off until stopped.
type Engine struct {
	mu     sync.Mutex
	config Config
	show   func(visible bool)
	cancel context.CancelFunc
	done   chan struct{}
	rngMu  sync.Mutex
	rng    *rand.Rand
}

// New creates a flash engine. show is called from the engine goroutine.
func New(config Config, show func(visible bool)) *Engine {
	return &Engine{
		config: config,
		show:   show,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Start begins flashing, replacing any active run.
func (engine *Engine) Start(ctx context.Context) {
	engine.mu.Lock()
	engine.stopLocked()
	runCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	engine.cancel = cancel
	engine.done = done
	engine.mu.Unlock()

	go func() {
		defer close(done)
		engine.run(runCtx)
	}()
}

// Running reports whether a flash run is active.
func (engine *Engine) Running() bool {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	return engine.cancel != nil
}

// Stop ends the active run and leaves the target visible.
func (engine *Engine) Stop() {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	engine.stopLocked()
}

func (engine *Engine) stopLocked() {
	if engine.cancel == nil {
		return
	}
	engine.cancel()
	<-engine.done
	engine.cancel = nil
	engine.done = nil
}

func (engine *Engine) run(ctx context.Context) {
	defer engine.show(true)
	for {
		engine.show(false)
		if !sleepWithContext(ctx, engine.sample(engine.config.Hidden)) {
			return
		}
		engine.show(true)
		if !sleepWithContext(ctx, engine.sample(engine.config.Visible)) {
			return
		}
	}
}

func (engine *Engine) sample(value Range) time.Duration {
	engine.rngMu.Lock()
	defer engine.rngMu.Unlock()
	return value.Random(engine.rng)
}

func sleepWithContext(ctx context.Context, duration time.Duration) bool {
	timer := time.NewTimer(duration)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
