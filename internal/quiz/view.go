package quiz

import (
	"fmt"
	"slices"

	"github.com/samber/lo"
)

// Snapshot is a display-ready copy of a game. It shares no memory with the session.
type Snapshot struct {
	Phase          Phase      `json:"phase"`
	Players        []Player   `json:"players"`
	Difficulty     Difficulty `json:"difficulty,omitempty"`
	Turn           int        `json:"turn"`
	QuestionNumber int        `json:"questionNumber,omitempty"`
	TotalQuestions int        `json:"totalQuestions,omitempty"`
	Prompt         string     `json:"prompt,omitempty"`
	Options        []string   `json:"options,omitempty"`
	CurrentPlayer  string     `json:"currentPlayer,omitempty"`
	Timed          bool       `json:"timed"`
	TimerSeconds   int        `json:"timerSeconds,omitempty"`
	Remaining      int        `json:"remaining,omitempty"`
	Scoreboard     []string   `json:"scoreboard,omitempty"`
	Winners        []string   `json:"winners,omitempty"`
	RecordHistory  bool       `json:"recordHistory"`
	History        []Answer   `json:"history,omitempty"`
}

// CanProceed reports whether difficulty selection is available.
func (s Snapshot) CanProceed() bool {
	return s.Phase == PhaseSetup && len(s.Players) > 0
}

// Progress renders "Question 3 / 10".
func (s Snapshot) Progress() string {
	if s.Phase != PhasePlaying {
		return ""
	}
	return fmt.Sprintf("Question %d / %d", s.QuestionNumber, s.TotalQuestions)
}

// FormatScore renders a scoreboard line such as "A: 1 point".
func FormatScore(p Player) string {
	return fmt.Sprintf("%s: %d point%s", p.Name, p.Score, plural(p.Score))
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}

func newSnapshot(s *Session, timerSeconds, remaining int) Snapshot {
	snap := Snapshot{
		Phase:         s.Phase,
		Players:       slices.Clone(s.Players),
		Difficulty:    s.Difficulty,
		Turn:          s.Turns,
		RecordHistory: s.RecordHistory,
		History:       slices.Clone(s.History),
	}
	switch s.Phase {
	case PhasePlaying:
		q, _ := s.CurrentQuestion()
		p, _ := s.CurrentPlayer()
		snap.QuestionNumber = s.QuestionIndex + 1
		snap.TotalQuestions = len(s.Pool)
		snap.Prompt = q.Prompt
		snap.Options = slices.Clone(q.Options)
		snap.CurrentPlayer = p.Name
		snap.Timed = timerSeconds > 0
		snap.TimerSeconds = timerSeconds
		snap.Remaining = remaining
	case PhaseResults:
		snap.TotalQuestions = len(s.Pool)
		snap.Scoreboard = lo.Map(s.Standings(), func(p Player, _ int) string {
			return FormatScore(p)
		})
		snap.Winners = s.Winners()
	}
	return snap
}
