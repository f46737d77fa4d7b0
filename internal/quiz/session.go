// Package quiz holds the hot-seat trivia engine: the question set, the
// session state machine, the per-turn countdown and the controller that ties
// them together. Nothing here knows about HTTP or terminals.
package quiz

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Phase is the stage of a game.
type Phase string

const (
	PhaseSetup      Phase = "setup"
	PhaseDifficulty Phase = "difficulty"
	PhasePlaying    Phase = "playing"
	PhaseResults    Phase = "results"
)

// Engine errors. State is left unchanged whenever one is returned.
var (
	ErrEmptyName         = errors.New("player name must not be empty")
	ErrNoPlayers         = errors.New("add at least one player first")
	ErrNoSuchPlayer      = errors.New("no such player")
	ErrWrongPhase        = errors.New("action not allowed right now")
	ErrUnknownDifficulty = errors.New("unknown difficulty")
	ErrNoQuestions       = errors.New("no questions available")
	ErrUnknownOption     = errors.New("not one of the options")
	ErrStaleTurn         = errors.New("that turn is already over")
)

// Player is one participant. Position in Session.Players is the turn order.
type Player struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
}

// Answer is one history entry.
type Answer struct {
	Player         string `json:"player"`
	QuestionNumber int    `json:"questionNumber"`
	Prompt         string `json:"prompt"`
	Selected       string `json:"selected"`
	CorrectAnswer  string `json:"correctAnswer"`
	Correct        bool   `json:"correct"`
	TimedOut       bool   `json:"timedOut"`
}

// Session is the complete state of one game.
type Session struct {
	Phase         Phase
	Players       []Player
	Pool          []Question
	QuestionIndex int
	PlayerIndex   int
	Difficulty    Difficulty
	Turns         int
	RecordHistory bool
	History       []Answer
}

// NewSession returns a session in the setup phase.
func NewSession(recordHistory bool) *Session {
	return &Session{Phase: PhaseSetup, RecordHistory: recordHistory}
}

func (s *Session) requirePhase(p Phase) error {
	if s.Phase != p {
		return fmt.Errorf("%w: in %s, need %s", ErrWrongPhase, s.Phase, p)
	}
	return nil
}

// AddPlayer appends a player. Names are trimmed and must not be empty.
func (s *Session) AddPlayer(name string) error {
	if err := s.requirePhase(PhaseSetup); err != nil {
		return err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	s.Players = append(s.Players, Player{Name: name})
	return nil
}

// RemovePlayer drops the player at index.
func (s *Session) RemovePlayer(index int) error {
	if err := s.requirePhase(PhaseSetup); err != nil {
		return err
	}
	if index < 0 || index >= len(s.Players) {
		return fmt.Errorf("%w: %d", ErrNoSuchPlayer, index)
	}
	s.Players = slices.Delete(s.Players, index, index+1)
	return nil
}

// Proceed moves from player entry to difficulty selection.
func (s *Session) Proceed() error {
	if err := s.requirePhase(PhaseSetup); err != nil {
		return err
	}
	if len(s.Players) == 0 {
		return ErrNoPlayers
	}
	s.Phase = PhaseDifficulty
	return nil
}

// BackToSetup returns to player entry keeping the roster.
func (s *Session) BackToSetup() error {
	if err := s.requirePhase(PhaseDifficulty); err != nil {
		return err
	}
	s.Phase = PhaseSetup
	return nil
}

// Start builds the pool for d and begins play at question 0, player 0.
func (s *Session) Start(d Difficulty, questions []Question, intn Intn) error {
	if err := s.requirePhase(PhaseDifficulty); err != nil {
		return err
	}
	if len(s.Players) == 0 {
		return ErrNoPlayers
	}
	if d != DifficultyEasy && d != DifficultyHard {
		return fmt.Errorf("%w: %q", ErrUnknownDifficulty, d)
	}
	if len(questions) == 0 {
		return ErrNoQuestions
	}
	s.Pool = BuildPool(questions, d, intn)
	s.Difficulty = d
	s.QuestionIndex = 0
	s.PlayerIndex = 0
	s.Turns = 0
	s.History = nil
	for i := range s.Players {
		s.Players[i].Score = 0
	}
	s.Phase = PhasePlaying
	return nil
}

// CurrentQuestion returns the question being played.
func (s *Session) CurrentQuestion() (Question, bool) {
	if s.Phase != PhasePlaying || s.QuestionIndex >= len(s.Pool) {
		return Question{}, false
	}
	return s.Pool[s.QuestionIndex], true
}

// CurrentPlayer returns the player whose turn it is.
func (s *Session) CurrentPlayer() (Player, bool) {
	if s.Phase != PhasePlaying || len(s.Players) == 0 {
		return Player{}, false
	}
	return s.Players[s.PlayerIndex], true
}

// Submit answers the current question for the current player.
// It reports whether the answer was correct.
func (s *Session) Submit(option string) (bool, error) {
	if err := s.requirePhase(PhasePlaying); err != nil {
		return false, err
	}
	q := s.Pool[s.QuestionIndex]
	if !q.HasOption(option) {
		return false, fmt.Errorf("%w: %q", ErrUnknownOption, option)
	}
	correct := q.IsCorrect(option)
	if correct {
		s.Players[s.PlayerIndex].Score++
	}
	s.record(q, option, correct, false)
	s.advance()
	return correct, nil
}

// Expire ends the current turn with no answer. Scores do not change.
func (s *Session) Expire() error {
	if err := s.requirePhase(PhasePlaying); err != nil {
		return err
	}
	s.record(s.Pool[s.QuestionIndex], "", false, true)
	s.advance()
	return nil
}

// Reset clears everything and returns to player entry.
func (s *Session) Reset() {
	*s = Session{Phase: PhaseSetup, RecordHistory: s.RecordHistory}
}

func (s *Session) record(q Question, selected string, correct, timedOut bool) {
	if !s.RecordHistory {
		return
	}
	s.History = append(s.History, Answer{
		Player:         s.Players[s.PlayerIndex].Name,
		QuestionNumber: s.QuestionIndex + 1,
		Prompt:         q.Prompt,
		Selected:       selected,
		CorrectAnswer:  q.Answer,
		Correct:        correct,
		TimedOut:       timedOut,
	})
}

// advance moves to the next player, wrapping to the next question.
func (s *Session) advance() {
	s.Turns++
	s.PlayerIndex++
	if s.PlayerIndex < len(s.Players) {
		return
	}
	s.PlayerIndex = 0
	s.QuestionIndex++
	if s.QuestionIndex >= len(s.Pool) {
		s.Phase = PhaseResults
	}
}

// Standings orders players by score, highest first; ties keep turn order.
func (s *Session) Standings() []Player {
	standings := slices.Clone(s.Players)
	slices.SortStableFunc(standings, func(a, b Player) int {
		return b.Score - a.Score
	})
	return standings
}

// Winners returns every player sharing the top score.
func (s *Session) Winners() []string {
	standings := s.Standings()
	if len(standings) == 0 {
		return nil
	}
	top := standings[0].Score
	var winners []string
	for _, p := range standings {
		if p.Score != top {
			break
		}
		winners = append(winners, p.Name)
	}
	return winners
}
