package main

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"trivianight/internal/quiz"
)

// Config holds the server settings resolved from flags and TRIVIA_ env vars.
type Config struct {
	bind           string
	port           int
	questions      string
	fetchTimeout   time.Duration
	timerEasy      time.Duration
	timerHard      time.Duration
	recordHistory  bool
	sessionTimeout time.Duration
	cookieMaxAge   time.Duration
	staticCacheAge time.Duration
	rateLimitRPS   int
	rateLimitBurst int
	production     bool
	verbose        bool
}

func (c *Config) validate() error {
	if c.port < 1 || c.port > 65535 {
		return fmt.Errorf("invalid port (must be between 1-65535 inclusive): %d", c.port)
	}
	if c.timerEasy < 0 || c.timerHard < 0 {
		return errors.New("timer durations must not be negative")
	}
	if c.rateLimitRPS < 1 || c.rateLimitBurst < 1 {
		return errors.New("rate limits must be at least 1")
	}
	if c.sessionTimeout <= 0 {
		return errors.New("session timeout must be positive")
	}
	return nil
}

// timerPolicy turns the two tier flags into a policy; zero leaves a tier untimed.
func (c *Config) timerPolicy() quiz.TimerPolicy {
	return quiz.TimerPolicy{
		quiz.DifficultyEasy: c.timerEasy,
		quiz.DifficultyHard: c.timerHard,
	}
}

func (c *Config) addr() string {
	return net.JoinHostPort(c.bind, strconv.Itoa(c.port))
}

// productionFromEnv keeps the GIN_MODE/ENV convention as the flag default.
func productionFromEnv() bool {
	return os.Getenv("GIN_MODE") == "release" || os.Getenv("ENV") == "production"
}

func newCmd(cfg *Config) *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("TRIVIA")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:     "trivianight",
		Short:   "A pass-the-device multiple-choice trivia game served to the browser.",
		Args:    cobra.ExactArgs(0),
		Version: releaseVersion,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.validate(); err != nil {
				return err
			}
			return run(cmd.Context(), cfg)
		},
	}

	fs := cmd.Flags()

	fs.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	defaults := quiz.TieredPolicy()

	fs.StringVarP(&cfg.bind, "bind", "b", "0.0.0.0", "address to bind to (env: TRIVIA_BIND)")
	fs.IntVarP(&cfg.port, "port", "p", 8080, "port to listen on (env: TRIVIA_PORT)")
	fs.StringVarP(&cfg.questions, "questions", "q", "static/questions.json", "question source, a file path or http(s) URL (env: TRIVIA_QUESTIONS)")
	fs.DurationVar(&cfg.fetchTimeout, "fetch-timeout", quiz.DefaultFetchTimeout, "timeout for fetching a remote question source (env: TRIVIA_FETCH_TIMEOUT)")
	fs.DurationVar(&cfg.timerEasy, "timer-easy", defaults.Duration(quiz.DifficultyEasy), "per-turn countdown on easy, 0 disables (env: TRIVIA_TIMER_EASY)")
	fs.DurationVar(&cfg.timerHard, "timer-hard", defaults.Duration(quiz.DifficultyHard), "per-turn countdown on hard, 0 disables (env: TRIVIA_TIMER_HARD)")
	fs.BoolVar(&cfg.recordHistory, "record-history", true, "keep a per-answer review for the results screen (env: TRIVIA_RECORD_HISTORY)")
	fs.DurationVar(&cfg.sessionTimeout, "session-timeout", 2*time.Hour, "time before an idle game is discarded (env: TRIVIA_SESSION_TIMEOUT)")
	fs.DurationVar(&cfg.cookieMaxAge, "cookie-max-age", 2*time.Hour, "lifetime of the session cookie (env: TRIVIA_COOKIE_MAX_AGE)")
	fs.DurationVar(&cfg.staticCacheAge, "static-cache-age", 5*time.Minute, "cache lifetime for static assets in production (env: TRIVIA_STATIC_CACHE_AGE)")
	fs.IntVar(&cfg.rateLimitRPS, "rate-limit-rps", 5, "sustained requests per second per client (env: TRIVIA_RATE_LIMIT_RPS)")
	fs.IntVar(&cfg.rateLimitBurst, "rate-limit-burst", 10, "request burst per client (env: TRIVIA_RATE_LIMIT_BURST)")
	fs.BoolVar(&cfg.production, "production", productionFromEnv(), "serve minified assets and JSON logs (env: TRIVIA_PRODUCTION)")
	fs.BoolVarP(&cfg.verbose, "verbose", "v", false, "log debug output (env: TRIVIA_VERBOSE)")

	fs.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
		_ = v.BindEnv(f.Name)
		if !f.Changed && v.IsSet(f.Name) {
			_ = fs.Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name)))
		}
	})

	cmd.CompletionOptions.HiddenDefaultCmd = true
	cmd.SetHelpCommand(&cobra.Command{Hidden: true})
	cmd.SetVersionTemplate("trivianight v{{.Version}}\n")

	cmd.SilenceErrors = true
	cmd.SilenceUsage = true

	return cmd
}
