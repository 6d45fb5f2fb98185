package carousel

import (
	"sync"
	"time"
)

// Clock abstracts time for the controller so both the frame-rate path
// and the low-power fallback path run through one scheduler, and tests
// can drive ticks by hand.
type Clock interface {
	Now() time.Time
	// ScheduleRepeating invokes fn roughly every interval until the
	// returned stop function is called.
	ScheduleRepeating(interval time.Duration, fn func()) (stop func())
}

// SystemClock is the production Clock backed by time.Ticker.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

func (SystemClock) ScheduleRepeating(interval time.Duration, fn func()) func() {
	if interval <= 0 {
		interval = time.Millisecond
	}
	stopChan := make(chan struct{})
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				fn()
			case <-stopChan:
				return
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() { close(stopChan) })
	}
}
