// Command triviatui plays Trivia Night in a terminal, one keyboard passed
// between players.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"trivianight/internal/quiz"
)

type options struct {
	questions     string
	fetchTimeout  time.Duration
	timerEasy     time.Duration
	timerHard     time.Duration
	recordHistory bool
	logFile       string
}

func main() {
	if err := newCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newCmd() *cobra.Command {
	opts := options{}
	defaults := quiz.TieredPolicy()
	cmd := &cobra.Command{
		Use:   "triviatui",
		Short: "Play Trivia Night in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), opts)
		},
	}
	fs := cmd.Flags()
	fs.StringVarP(&opts.questions, "questions", "q", "", "question source, a file path or http(s) URL (built-in set when empty)")
	fs.DurationVar(&opts.fetchTimeout, "fetch-timeout", quiz.DefaultFetchTimeout, "timeout for fetching a remote question source")
	fs.DurationVar(&opts.timerEasy, "timer-easy", defaults.Duration(quiz.DifficultyEasy), "per-turn countdown on easy, 0 disables")
	fs.DurationVar(&opts.timerHard, "timer-hard", defaults.Duration(quiz.DifficultyHard), "per-turn countdown on hard, 0 disables")
	fs.BoolVar(&opts.recordHistory, "record-history", true, "show an answer review on the results screen")
	fs.StringVar(&opts.logFile, "log-file", "", "write logs to this file (discarded otherwise)")
	cmd.SilenceUsage = true
	return cmd
}

func run(ctx context.Context, opts options) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if opts.logFile == "" {
		log.Logger = zerolog.Nop()
	} else {
		f, err := os.OpenFile(opts.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		log.Logger = zerolog.New(f).With().Timestamp().Logger()
	}

	store := &quiz.Store{Source: opts.questions, FetchTimeout: opts.fetchTimeout}
	loaded := store.Load(ctx)

	game := quiz.NewGame(quiz.Config{
		ID:            "terminal",
		Questions:     loaded.Questions,
		Policy:        quiz.TimerPolicy{quiz.DifficultyEasy: opts.timerEasy, quiz.DifficultyHard: opts.timerHard},
		RecordHistory: opts.recordHistory,
	})
	defer game.Close()

	updates, cancel := game.Subscribe()
	defer cancel()

	_, err := tea.NewProgram(newModel(game, updates), tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}
