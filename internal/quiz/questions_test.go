package quiz

import (
	"errors"
	"testing"
)

func TestParseQuestionsValid(t *testing.T) {
	data := []byte(`[
		{"prompt": "2+2?", "options": ["3", "4"], "answer": "4"},
		{"prompt": "Capital of Peru?", "options": ["Lima", "Quito"], "answer": "Lima", "difficulty": "hard"},
		{"prompt": "Sky colour?", "options": ["Blue", "Green"], "answer": "Blue", "difficulty": "easy"}
	]`)
	questions, err := ParseQuestions(data)
	if err != nil {
		t.Fatalf("ParseQuestions returned error: %v", err)
	}
	if len(questions) != 3 {
		t.Fatalf("got %d questions, want 3", len(questions))
	}
	if questions[0].Difficulty != DifficultyNone {
		t.Errorf("untagged question got difficulty %q", questions[0].Difficulty)
	}
	if questions[1].Difficulty != DifficultyHard || questions[2].Difficulty != DifficultyEasy {
		t.Errorf("difficulty tags not preserved: %+v", questions)
	}
}

func TestParseQuestionsRejectsWholeSet(t *testing.T) {
	cases := []struct {
		name string
		data string
		want error
	}{
		{"missing prompt", `[{"prompt":"ok","options":["a"],"answer":"a"},{"options":["a"],"answer":"a"}]`, ErrMissingPrompt},
		{"missing answer", `[{"prompt":"p","options":["a"]}]`, ErrMissingAnswer},
		{"missing options", `[{"prompt":"p","answer":"a"}]`, ErrMissingOptions},
		{"answer not an option", `[{"prompt":"p","options":["a","b"],"answer":"c"}]`, ErrAnswerNotInOptions},
		{"unknown difficulty", `[{"prompt":"p","options":["a"],"answer":"a","difficulty":"medium"}]`, ErrInvalidDifficulty},
		{"empty array", `[]`, ErrNoQuestionsInSet},
		{"null entry", `[null]`, ErrMissingPrompt},
	}
	for _, c := range cases {
		questions, err := ParseQuestions([]byte(c.data))
		if !errors.Is(err, c.want) {
			t.Errorf("%s: got error %v, want %v", c.name, err, c.want)
		}
		if questions != nil {
			t.Errorf("%s: partial set returned: %+v", c.name, questions)
		}
	}
}

func TestParseQuestionsMalformedJSON(t *testing.T) {
	cases := []string{
		`not json`,
		`{"prompt":"p"}`,
		`[{"prompt": 5, "options": ["a"], "answer": "a"}]`,
		`[{"prompt": "p", "options": "a", "answer": "a"}]`,
		`[{"prompt": "p", "options": [1, 2], "answer": "a"}]`,
	}
	for _, c := range cases {
		if _, err := ParseQuestions([]byte(c)); err == nil {
			t.Errorf("ParseQuestions(%s) should fail", c)
		}
	}
}

func TestBuiltinQuestionsAreValid(t *testing.T) {
	questions, err := Builtin()
	if err != nil {
		t.Fatalf("built-in questions invalid: %v", err)
	}
	if len(questions) == 0 {
		t.Fatal("built-in set is empty")
	}
	var easy, hard int
	for _, q := range questions {
		if !q.HasOption(q.Answer) {
			t.Errorf("built-in question %q answer missing from options", q.Prompt)
		}
		switch q.Difficulty {
		case DifficultyEasy:
			easy++
		case DifficultyHard:
			hard++
		}
	}
	if easy == 0 || hard == 0 {
		t.Errorf("built-in set should cover both tiers, got easy=%d hard=%d", easy, hard)
	}
}

func TestParseDifficulty(t *testing.T) {
	cases := []struct {
		in   string
		want Difficulty
		ok   bool
	}{
		{"easy", DifficultyEasy, true},
		{" HARD ", DifficultyHard, true},
		{"", DifficultyNone, false},
		{"medium", DifficultyNone, false},
	}
	for _, c := range cases {
		got, err := ParseDifficulty(c.in)
		if got != c.want || (err == nil) != c.ok {
			t.Errorf("ParseDifficulty(%q) = %q, %v", c.in, got, err)
		}
	}
}
