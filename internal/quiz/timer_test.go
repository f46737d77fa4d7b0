package quiz

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
)

const waitTimeout = 2 * time.Second

func waitInt(t *testing.T, ch <-chan int) int {
	t.Helper()
	select {
	case v := <-ch:
		return v
	case <-time.After(waitTimeout):
		t.Fatal("timed out waiting for tick")
		return 0
	}
}

func waitClosed(t *testing.T, ch <-chan struct{}, what string) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(waitTimeout):
		t.Fatalf("timed out waiting for %s", what)
	}
}

func TestCountdownTicksThenExpires(t *testing.T) {
	clock := clockwork.NewFakeClock()
	ticks := make(chan int, 4)
	expired := make(chan struct{})
	c := StartCountdown(clock, 3*time.Second,
		func(remaining int) { ticks <- remaining },
		func() { close(expired) },
	)
	defer c.Stop()

	for _, want := range []int{2, 1} {
		clock.Advance(time.Second)
		if got := waitInt(t, ticks); got != want {
			t.Fatalf("tick = %d, want %d", got, want)
		}
	}
	clock.Advance(time.Second)
	waitClosed(t, expired, "expiry")
	waitClosed(t, c.Done(), "countdown exit")
}

func TestCountdownRoundsUpToWholeSeconds(t *testing.T) {
	clock := clockwork.NewFakeClock()
	ticks := make(chan int, 4)
	c := StartCountdown(clock, 1500*time.Millisecond, func(remaining int) { ticks <- remaining }, func() {})
	defer c.Stop()
	clock.Advance(time.Second)
	if got := waitInt(t, ticks); got != 1 {
		t.Errorf("first tick = %d, want 1", got)
	}
}

func TestCountdownStopPreventsExpiry(t *testing.T) {
	clock := clockwork.NewFakeClock()
	expired := make(chan struct{}, 1)
	c := StartCountdown(clock, time.Second, nil, func() { expired <- struct{}{} })
	c.Stop()
	c.Stop()
	waitClosed(t, c.Done(), "countdown exit")
	clock.Advance(5 * time.Second)
	select {
	case <-expired:
		t.Error("stopped countdown expired")
	default:
	}
}

func TestTimerPolicy(t *testing.T) {
	tiered := TieredPolicy()
	if tiered.Duration(DifficultyEasy) <= tiered.Duration(DifficultyHard) {
		t.Errorf("tiered policy should give easy more time: %v", tiered)
	}
	hardOnly := HardOnlyPolicy()
	if hardOnly.Duration(DifficultyEasy) != 0 || hardOnly.Seconds(DifficultyHard) != 15 {
		t.Errorf("hard-only policy = %v", hardOnly)
	}
	var none TimerPolicy
	if none.Duration(DifficultyHard) != 0 {
		t.Error("nil policy should be untimed")
	}
	if got := (TimerPolicy{DifficultyEasy: 2500 * time.Millisecond}).Seconds(DifficultyEasy); got != 3 {
		t.Errorf("Seconds rounds to %d, want 3", got)
	}
}
