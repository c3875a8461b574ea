package countdown

import (
	"sync"
	"time"
)

// Clock supplies the current time.
type Clock interface {
	Now() time.Time
}

// Scheduler fires tick at a fixed interval until the returned stop function is called.
type Scheduler interface {
	Every(interval time.Duration, tick func(time.Time)) (stop func())
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}

// SystemClock returns a Clock backed by time.Now.
func SystemClock() Clock {
	return systemClock{}
}

type tickerScheduler struct{}

// NewTickerScheduler returns a Scheduler backed by time.Ticker.
func NewTickerScheduler() Scheduler {
	return tickerScheduler{}
}

func (tickerScheduler) Every(interval time.Duration, tick func(time.Time)) func() {
	ticker := time.NewTicker(interval)
	stopCh := make(chan struct{})

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-stopCh:
				return
			case tickTime := <-ticker.C:
				tick(tickTime)
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			close(stopCh)
		})
	}
}
