package quiz

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// Countdown ticks once per second and fires onExpire when it reaches zero.
// Stop may be called any number of times, including from inside a callback.
type Countdown struct {
	stop     chan struct{}
	stopOnce sync.Once
	done     chan struct{}
}

// StartCountdown begins a countdown of d rounded up to whole seconds.
// onTick receives the seconds left after each tick; onExpire runs once at zero.
// Both callbacks run on the countdown's own goroutine.
func StartCountdown(clock clockwork.Clock, d time.Duration, onTick func(remaining int), onExpire func()) *Countdown {
	c := &Countdown{
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}
	remaining := wholeSeconds(d)
	ticker := clock.NewTicker(time.Second)
	go func() {
		defer close(c.done)
		defer ticker.Stop()
		for {
			select {
			case <-c.stop:
				return
			case <-ticker.Chan():
				select {
				case <-c.stop:
					return
				default:
				}
				remaining--
				if remaining <= 0 {
					if onExpire != nil {
						onExpire()
					}
					return
				}
				if onTick != nil {
					onTick(remaining)
				}
			}
		}
	}()
	return c
}

// Stop cancels the countdown. It does not wait for a callback in flight.
func (c *Countdown) Stop() {
	if c == nil {
		return
	}
	c.stopOnce.Do(func() { close(c.stop) })
}

// Done is closed once the countdown goroutine has exited.
func (c *Countdown) Done() <-chan struct{} {
	return c.done
}
