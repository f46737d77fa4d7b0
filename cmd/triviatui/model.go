package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"trivianight/internal/quiz"
)

var difficulties = []quiz.Difficulty{quiz.DifficultyEasy, quiz.DifficultyHard}

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	timerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	cursorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	correctStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	wrongStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	helpStyle    = lipgloss.NewStyle().Faint(true)
)

// snapshotMsg carries a state change pushed by the game.
type snapshotMsg quiz.Snapshot

// model drives one quiz.Game from the keyboard.
type model struct {
	game    *quiz.Game
	updates <-chan quiz.Snapshot
	snap    quiz.Snapshot
	input   textinput.Model
	cursor  int
	err     error
}

func newModel(game *quiz.Game, updates <-chan quiz.Snapshot) model {
	ti := textinput.New()
	ti.Placeholder = "player name"
	ti.CharLimit = 40
	ti.Focus()
	return model{
		game:    game,
		updates: updates,
		snap:    game.Snapshot(),
		input:   ti,
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, waitForSnapshot(m.updates))
}

func waitForSnapshot(updates <-chan quiz.Snapshot) tea.Cmd {
	return func() tea.Msg {
		snap, ok := <-updates
		if !ok {
			return tea.Quit()
		}
		return snapshotMsg(snap)
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case snapshotMsg:
		m = m.refreshed(quiz.Snapshot(msg))
		return m, waitForSnapshot(m.updates)
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		switch m.snap.Phase {
		case quiz.PhaseSetup:
			return m.updateSetup(msg)
		case quiz.PhaseDifficulty:
			return m.updateDifficulty(msg)
		case quiz.PhasePlaying:
			return m.updatePlaying(msg)
		case quiz.PhaseResults:
			return m.updateResults(msg)
		}
	}
	return m, nil
}

// refreshed adopts snap, resetting the cursor when the turn or phase moved on.
func (m model) refreshed(snap quiz.Snapshot) model {
	if snap.Phase != m.snap.Phase || snap.Turn != m.snap.Turn {
		m.cursor = 0
	}
	m.snap = snap
	return m
}

// do applies an action and reads back the resulting state.
func (m model) do(fn func() error) model {
	m.err = fn()
	return m.refreshed(m.game.Snapshot())
}

func (m model) updateSetup(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		name := m.input.Value()
		m = m.do(func() error { return m.game.AddPlayer(name) })
		if m.err == nil {
			m.input.Reset()
		}
		return m, nil
	case tea.KeyTab:
		return m.do(m.game.Proceed), nil
	case tea.KeyCtrlD:
		if n := len(m.snap.Players); n > 0 {
			return m.do(func() error { return m.game.RemovePlayer(n - 1) }), nil
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m model) updateDifficulty(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		m.cursor = max(m.cursor-1, 0)
	case "down", "j":
		m.cursor = min(m.cursor+1, len(difficulties)-1)
	case "enter":
		d := difficulties[m.cursor]
		return m.do(func() error { return m.game.Start(d) }), nil
	case "esc":
		return m.do(m.game.BackToSetup), nil
	case "q":
		return m, tea.Quit
	}
	return m, nil
}

func (m model) updatePlaying(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch key {
	case "up", "k":
		m.cursor = max(m.cursor-1, 0)
		return m, nil
	case "down", "j":
		m.cursor = min(m.cursor+1, len(m.snap.Options)-1)
		return m, nil
	case "enter":
		return m.answer(m.cursor), nil
	case "q":
		return m, tea.Quit
	}
	if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
		return m.answer(int(key[0] - '1')), nil
	}
	return m, nil
}

func (m model) answer(i int) model {
	if i < 0 || i >= len(m.snap.Options) {
		return m
	}
	turn, option := m.snap.Turn, m.snap.Options[i]
	m = m.do(func() error {
		_, err := m.game.Submit(turn, option)
		return err
	})
	if errors.Is(m.err, quiz.ErrStaleTurn) {
		m.err = nil
	}
	return m
}

func (m model) updateResults(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "r":
		m = m.do(m.game.PlayAgain)
		m.input.Reset()
		return m, nil
	case "q", "esc":
		return m, tea.Quit
	}
	return m, nil
}

func (m model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Trivia Night"))
	b.WriteString("\n\n")

	switch m.snap.Phase {
	case quiz.PhaseSetup:
		m.viewSetup(&b)
	case quiz.PhaseDifficulty:
		m.viewDifficulty(&b)
	case quiz.PhasePlaying:
		m.viewPlaying(&b)
	case quiz.PhaseResults:
		m.viewResults(&b)
	}

	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(m.err.Error()))
		b.WriteString("\n")
	}
	return b.String()
}

func (m model) viewSetup(b *strings.Builder) {
	b.WriteString("Who's playing?\n")
	for i, p := range m.snap.Players {
		fmt.Fprintf(b, "  %d. %s\n", i+1, p.Name)
	}
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render("enter: add player • ctrl+d: remove last • tab: choose difficulty • ctrl+c: quit"))
	b.WriteString("\n")
}

func (m model) viewDifficulty(b *strings.Builder) {
	b.WriteString("Choose a difficulty\n\n")
	for i, d := range difficulties {
		b.WriteString(m.choice(i, string(d)))
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("↑/↓: select • enter: start • esc: back"))
	b.WriteString("\n")
}

func (m model) viewPlaying(b *strings.Builder) {
	s := m.snap
	b.WriteString(s.Progress())
	if s.Timed {
		b.WriteString("   ")
		b.WriteString(timerStyle.Render(fmt.Sprintf("%ds", s.Remaining)))
	}
	fmt.Fprintf(b, "\n%s, it's your turn.\n\n%s\n\n", s.CurrentPlayer, s.Prompt)
	for i, opt := range s.Options {
		b.WriteString(m.choice(i, fmt.Sprintf("%d) %s", i+1, opt)))
	}
	b.WriteString("\n")
	for _, p := range s.Players {
		b.WriteString(quiz.FormatScore(p))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render("↑/↓ or 1-9: select • enter: answer"))
	b.WriteString("\n")
}

func (m model) viewResults(b *strings.Builder) {
	b.WriteString("Final scores\n")
	for _, line := range m.snap.Scoreboard {
		b.WriteString("  " + line + "\n")
	}
	if len(m.snap.Winners) > 0 {
		fmt.Fprintf(b, "\nWinner: %s\n", strings.Join(m.snap.Winners, ", "))
	}
	if m.snap.RecordHistory && len(m.snap.History) > 0 {
		b.WriteString("\nReview\n")
		for _, a := range m.snap.History {
			selected := a.Selected
			if a.TimedOut {
				selected = "(no answer)"
			}
			line := fmt.Sprintf("  Q%d %s: %s", a.QuestionNumber, a.Player, selected)
			if a.Correct {
				b.WriteString(correctStyle.Render(line))
			} else {
				b.WriteString(wrongStyle.Render(line + " (" + a.CorrectAnswer + ")"))
			}
			b.WriteString("\n")
		}
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("enter: play again • q: quit"))
	b.WriteString("\n")
}

func (m model) choice(i int, label string) string {
	if i == m.cursor {
		return cursorStyle.Render("> "+label) + "\n"
	}
	return "  " + label + "\n"
}
