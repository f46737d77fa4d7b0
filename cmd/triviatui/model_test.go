package main

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jonboulle/clockwork"

	"trivianight/internal/quiz"
)

func testModel(t *testing.T) model {
	t.Helper()
	game := quiz.NewGame(quiz.Config{
		ID: "tui",
		Questions: []quiz.Question{
			{Prompt: "Q1", Options: []string{"X", "Y"}, Answer: "X", Difficulty: quiz.DifficultyEasy},
		},
		Policy:        quiz.TimerPolicy{},
		RecordHistory: true,
		Clock:         clockwork.NewFakeClock(),
		Intn:          func(n int) int { return n - 1 },
	})
	t.Cleanup(game.Close)
	updates, cancel := game.Subscribe()
	t.Cleanup(cancel)
	return newModel(game, updates)
}

func press(t *testing.T, m model, keys ...tea.KeyMsg) model {
	t.Helper()
	for _, k := range keys {
		next, _ := m.Update(k)
		m = next.(model)
	}
	return m
}

func typed(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	tab   = tea.KeyMsg{Type: tea.KeyTab}
	down  = tea.KeyMsg{Type: tea.KeyDown}
)

func TestModelPlaysThroughToResults(t *testing.T) {
	m := testModel(t)
	m = press(t, m, typed("A"), enter, typed("B"), enter)
	if got := len(m.snap.Players); got != 2 {
		t.Fatalf("expected 2 players, got %d", got)
	}
	if m.input.Value() != "" {
		t.Errorf("input should be cleared after adding, got %q", m.input.Value())
	}

	m = press(t, m, tab, enter)
	if m.snap.Phase != quiz.PhasePlaying {
		t.Fatalf("expected playing, got %s (err %v)", m.snap.Phase, m.err)
	}
	if !strings.Contains(m.View(), "A, it's your turn.") {
		t.Errorf("view should name the current player:\n%s", m.View())
	}

	m = press(t, m, enter)       // A picks X
	m = press(t, m, down, enter) // B picks Y
	if m.snap.Phase != quiz.PhaseResults {
		t.Fatalf("expected results, got %s", m.snap.Phase)
	}
	view := m.View()
	for _, want := range []string{"A: 1 point", "B: 0 points", "Winner: A"} {
		if !strings.Contains(view, want) {
			t.Errorf("results view missing %q:\n%s", want, view)
		}
	}

	m = press(t, m, enter)
	if m.snap.Phase != quiz.PhaseSetup || len(m.snap.Players) != 0 {
		t.Errorf("play again should reset to empty setup, got %s with %d players", m.snap.Phase, len(m.snap.Players))
	}
}

func TestModelShowsErrors(t *testing.T) {
	m := testModel(t)
	m = press(t, m, enter)
	if m.err == nil || !strings.Contains(m.View(), m.err.Error()) {
		t.Fatalf("empty name should be reported, err=%v", m.err)
	}
	m = press(t, m, tab)
	if m.snap.Phase != quiz.PhaseSetup {
		t.Errorf("proceeding without players must stay in setup, got %s", m.snap.Phase)
	}
}

func TestModelNumberKeysAnswer(t *testing.T) {
	m := testModel(t)
	m = press(t, m, typed("Solo"), enter, tab, enter, typed("1"))
	if m.snap.Phase != quiz.PhaseResults {
		t.Fatalf("expected results after the only turn, got %s", m.snap.Phase)
	}
	if m.snap.Players[0].Score != 1 {
		t.Errorf("option 1 is correct, score = %d", m.snap.Players[0].Score)
	}
}

func TestModelRemoveLastPlayer(t *testing.T) {
	m := testModel(t)
	m = press(t, m, typed("A"), enter, typed("B"), enter, tea.KeyMsg{Type: tea.KeyCtrlD})
	if len(m.snap.Players) != 1 || m.snap.Players[0].Name != "A" {
		t.Errorf("expected only A to remain, got %+v", m.snap.Players)
	}
}

func TestModelSnapshotMessageResetsCursor(t *testing.T) {
	m := testModel(t)
	m.cursor = 1
	next, cmd := m.Update(snapshotMsg(quiz.Snapshot{Phase: quiz.PhaseDifficulty}))
	m = next.(model)
	if m.cursor != 0 {
		t.Errorf("cursor should reset on phase change, got %d", m.cursor)
	}
	if cmd == nil {
		t.Error("expected a command waiting for the next snapshot")
	}
}
