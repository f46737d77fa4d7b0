package quiz

import (
	"crypto/rand"
	"math/big"
	mathrand "math/rand/v2"
	"slices"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
)

// Intn returns a uniformly distributed integer in [0, n).
type Intn func(n int) int

// CryptoIntn draws from crypto/rand and falls back to math/rand on failure.
func CryptoIntn(n int) int {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		log.Warn().Err(err).Msg("crypto/rand failed, falling back to math/rand")
		return mathrand.IntN(n)
	}
	return int(v.Int64())
}

// FilterByDifficulty selects the questions playable at difficulty d.
// Easy takes easy and untagged questions, hard takes hard ones only.
// An empty selection reverts to the full set.
func FilterByDifficulty(questions []Question, d Difficulty) []Question {
	var selected []Question
	switch d {
	case DifficultyEasy:
		selected = lo.Filter(questions, func(q Question, _ int) bool {
			return q.Difficulty == DifficultyEasy || q.Difficulty == DifficultyNone
		})
	case DifficultyHard:
		selected = lo.Filter(questions, func(q Question, _ int) bool {
			return q.Difficulty == DifficultyHard
		})
	}
	if len(selected) == 0 {
		log.Debug().Str("difficulty", string(d)).Int("questions", len(questions)).
			Msg("no questions match difficulty, using full set")
		return slices.Clone(questions)
	}
	return selected
}

// Shuffle returns a Fisher-Yates permutation of questions. The input is not modified.
func Shuffle(questions []Question, intn Intn) []Question {
	if intn == nil {
		intn = CryptoIntn
	}
	shuffled := slices.Clone(questions)
	for i := len(shuffled) - 1; i > 0; i-- {
		j := intn(i + 1)
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}
	return shuffled
}

// BuildPool filters questions for d and shuffles the result.
func BuildPool(questions []Question, d Difficulty, intn Intn) []Question {
	return Shuffle(FilterByDifficulty(questions, d), intn)
}
