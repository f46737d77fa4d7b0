package quiz

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// Difficulty is the tier a question belongs to and the tier chosen for a game.
type Difficulty string

const (
	DifficultyNone Difficulty = ""
	DifficultyEasy Difficulty = "easy"
	DifficultyHard Difficulty = "hard"
)

// ParseDifficulty accepts the two playable tiers, case-insensitively.
func ParseDifficulty(s string) (Difficulty, error) {
	switch Difficulty(strings.ToLower(strings.TrimSpace(s))) {
	case DifficultyEasy:
		return DifficultyEasy, nil
	case DifficultyHard:
		return DifficultyHard, nil
	}
	return DifficultyNone, fmt.Errorf("%w: %q", ErrUnknownDifficulty, s)
}

// Question is one multiple-choice prompt.
type Question struct {
	Prompt     string     `json:"prompt" yaml:"prompt"`
	Options    []string   `json:"options" yaml:"options"`
	Answer     string     `json:"answer" yaml:"answer"`
	Difficulty Difficulty `json:"difficulty,omitempty" yaml:"difficulty,omitempty"`
}

// IsCorrect reports whether option is the right answer.
func (q Question) IsCorrect(option string) bool {
	return option == q.Answer
}

// HasOption reports whether option is one of the offered choices.
func (q Question) HasOption(option string) bool {
	return slices.Contains(q.Options, option)
}

// Validation errors. Any one of them rejects the whole set.
var (
	ErrNoQuestionsInSet   = errors.New("question set is empty")
	ErrMissingPrompt      = errors.New("missing prompt")
	ErrMissingAnswer      = errors.New("missing answer")
	ErrMissingOptions     = errors.New("missing options")
	ErrAnswerNotInOptions = errors.New("answer is not one of the options")
	ErrInvalidDifficulty  = errors.New("difficulty must be easy, hard or absent")
	errBuiltinUnparseable = errors.New("built-in question set is invalid")
)

// rawQuestion distinguishes absent fields from empty ones.
type rawQuestion struct {
	Prompt     *string   `json:"prompt" yaml:"prompt"`
	Options    *[]string `json:"options" yaml:"options"`
	Answer     *string   `json:"answer" yaml:"answer"`
	Difficulty *string   `json:"difficulty" yaml:"difficulty"`
}

func (r rawQuestion) toQuestion() (Question, error) {
	if r.Prompt == nil {
		return Question{}, ErrMissingPrompt
	}
	if r.Answer == nil {
		return Question{}, ErrMissingAnswer
	}
	if r.Options == nil {
		return Question{}, ErrMissingOptions
	}
	q := Question{
		Prompt:  *r.Prompt,
		Options: slices.Clone(*r.Options),
		Answer:  *r.Answer,
	}
	if r.Difficulty != nil {
		switch d := Difficulty(*r.Difficulty); d {
		case DifficultyEasy, DifficultyHard:
			q.Difficulty = d
		default:
			return Question{}, fmt.Errorf("%w, got %q", ErrInvalidDifficulty, *r.Difficulty)
		}
	}
	if !q.HasOption(q.Answer) {
		return Question{}, fmt.Errorf("%w: %q", ErrAnswerNotInOptions, q.Answer)
	}
	return q, nil
}

func validate(raw []rawQuestion) ([]Question, error) {
	if len(raw) == 0 {
		return nil, ErrNoQuestionsInSet
	}
	questions := make([]Question, 0, len(raw))
	for i, r := range raw {
		q, err := r.toQuestion()
		if err != nil {
			return nil, fmt.Errorf("question %d: %w", i, err)
		}
		questions = append(questions, q)
	}
	return questions, nil
}

// ParseQuestions decodes and validates a JSON array of questions.
// A single malformed entry rejects the entire set.
func ParseQuestions(data []byte) ([]Question, error) {
	var raw []rawQuestion
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode questions: %w", err)
	}
	return validate(raw)
}

//go:embed builtin_questions.yaml
var builtinYAML []byte

// Builtin returns the fallback question set compiled into the binary.
func Builtin() ([]Question, error) {
	var raw []rawQuestion
	if err := yaml.Unmarshal(builtinYAML, &raw); err != nil {
		return nil, fmt.Errorf("%w: %w", errBuiltinUnparseable, err)
	}
	questions, err := validate(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errBuiltinUnparseable, err)
	}
	return questions, nil
}

// MustBuiltin is Builtin for callers that cannot continue without questions.
func MustBuiltin() []Question {
	questions, err := Builtin()
	if err != nil {
		panic(err)
	}
	return questions
}
