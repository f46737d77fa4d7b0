package quiz

import "time"

// TimerPolicy maps a difficulty tier to its per-turn countdown.
// A missing or zero entry means turns at that tier are untimed.
type TimerPolicy map[Difficulty]time.Duration

// HardOnlyPolicy times hard games only.
func HardOnlyPolicy() TimerPolicy {
	return TimerPolicy{DifficultyHard: 15 * time.Second}
}

// TieredPolicy gives easy games a longer countdown than hard ones.
func TieredPolicy() TimerPolicy {
	return TimerPolicy{
		DifficultyEasy: 30 * time.Second,
		DifficultyHard: 15 * time.Second,
	}
}

// Duration returns the countdown for d, or zero when untimed.
func (p TimerPolicy) Duration(d Difficulty) time.Duration {
	if p == nil {
		return 0
	}
	if v := p[d]; v > 0 {
		return v
	}
	return 0
}

// Seconds is Duration rounded up to whole seconds.
func (p TimerPolicy) Seconds(d Difficulty) int {
	return wholeSeconds(p.Duration(d))
}

func wholeSeconds(d time.Duration) int {
	return int((d + time.Second - 1) / time.Second)
}
