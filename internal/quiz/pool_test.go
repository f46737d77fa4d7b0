package quiz

import (
	mathrand "math/rand/v2"
	"slices"
	"testing"
)

func sampleQuestions() []Question {
	return []Question{
		{Prompt: "e1", Options: []string{"a", "b"}, Answer: "a", Difficulty: DifficultyEasy},
		{Prompt: "u1", Options: []string{"a", "b"}, Answer: "b"},
		{Prompt: "h1", Options: []string{"a", "b"}, Answer: "a", Difficulty: DifficultyHard},
		{Prompt: "h2", Options: []string{"a", "b"}, Answer: "b", Difficulty: DifficultyHard},
		{Prompt: "e2", Options: []string{"a", "b"}, Answer: "a", Difficulty: DifficultyEasy},
	}
}

func prompts(questions []Question) []string {
	out := make([]string, len(questions))
	for i, q := range questions {
		out[i] = q.Prompt
	}
	return out
}

// keepOrder makes Shuffle the identity permutation.
func keepOrder(n int) int { return n - 1 }

func TestFilterByDifficulty(t *testing.T) {
	all := sampleQuestions()
	if got := prompts(FilterByDifficulty(all, DifficultyEasy)); !slices.Equal(got, []string{"e1", "u1", "e2"}) {
		t.Errorf("easy filter = %v", got)
	}
	if got := prompts(FilterByDifficulty(all, DifficultyHard)); !slices.Equal(got, []string{"h1", "h2"}) {
		t.Errorf("hard filter = %v", got)
	}
}

func TestFilterFallsBackToFullSet(t *testing.T) {
	easyOnly := []Question{
		{Prompt: "e1", Options: []string{"a"}, Answer: "a", Difficulty: DifficultyEasy},
		{Prompt: "u1", Options: []string{"a"}, Answer: "a"},
	}
	if got := FilterByDifficulty(easyOnly, DifficultyHard); len(got) != 2 {
		t.Errorf("hard filter with no hard questions returned %d, want full set", len(got))
	}
	hardOnly := []Question{{Prompt: "h1", Options: []string{"a"}, Answer: "a", Difficulty: DifficultyHard}}
	if got := FilterByDifficulty(hardOnly, DifficultyEasy); len(got) != 1 {
		t.Errorf("easy filter with no easy questions returned %d, want full set", len(got))
	}
}

func TestShuffleIsPermutation(t *testing.T) {
	all := sampleQuestions()
	before := prompts(all)
	rng := mathrand.New(mathrand.NewPCG(1, 2))
	differs := false
	for range 50 {
		shuffled := Shuffle(all, rng.IntN)
		got := prompts(shuffled)
		sortedGot := slices.Sorted(slices.Values(got))
		sortedWant := slices.Sorted(slices.Values(before))
		if !slices.Equal(sortedGot, sortedWant) {
			t.Fatalf("shuffle changed the multiset: %v", got)
		}
		if !slices.Equal(got, before) {
			differs = true
		}
	}
	if !differs {
		t.Error("50 shuffles never changed the order")
	}
	if !slices.Equal(prompts(all), before) {
		t.Error("Shuffle modified its input")
	}
}

func TestShuffleWithCryptoSource(t *testing.T) {
	all := sampleQuestions()
	shuffled := Shuffle(all, nil)
	if len(shuffled) != len(all) {
		t.Fatalf("got %d questions, want %d", len(shuffled), len(all))
	}
}

func TestCryptoIntnRange(t *testing.T) {
	for range 100 {
		if v := CryptoIntn(3); v < 0 || v >= 3 {
			t.Fatalf("CryptoIntn(3) = %d", v)
		}
	}
}

func TestBuildPoolKeepsOrderWithIdentitySource(t *testing.T) {
	got := prompts(BuildPool(sampleQuestions(), DifficultyHard, keepOrder))
	if !slices.Equal(got, []string{"h1", "h2"}) {
		t.Errorf("BuildPool = %v", got)
	}
}
