package main

import (
	"strings"
	"testing"
	"time"

	"trivianight/internal/quiz"
)

func parseConfig(t *testing.T, args ...string) *Config {
	t.Helper()
	cfg := &Config{}
	cmd := newCmd(cfg)
	if err := cmd.ParseFlags(args); err != nil {
		t.Fatalf("ParseFlags(%v): %v", args, err)
	}
	return cfg
}

func TestConfigDefaults(t *testing.T) {
	cfg := parseConfig(t)
	if err := cfg.validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
	if cfg.addr() != "0.0.0.0:8080" {
		t.Errorf("addr = %q", cfg.addr())
	}
	if cfg.questions != "static/questions.json" || !cfg.recordHistory {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	policy := cfg.timerPolicy()
	if policy.Duration(quiz.DifficultyEasy) != 30*time.Second || policy.Duration(quiz.DifficultyHard) != 15*time.Second {
		t.Errorf("unexpected default policy %v", policy)
	}
}

func TestConfigFlags(t *testing.T) {
	cfg := parseConfig(t, "--port", "9000", "--bind", "127.0.0.1", "--timer-easy", "0", "--timer-hard", "20s", "--record-history=false")
	if cfg.addr() != "127.0.0.1:9000" {
		t.Errorf("addr = %q", cfg.addr())
	}
	policy := cfg.timerPolicy()
	if policy.Duration(quiz.DifficultyEasy) != 0 || policy.Duration(quiz.DifficultyHard) != 20*time.Second {
		t.Errorf("unexpected policy %v", policy)
	}
	if cfg.recordHistory {
		t.Error("record-history should be off")
	}
}

func TestConfigFromEnvironment(t *testing.T) {
	t.Setenv("TRIVIA_PORT", "7070")
	t.Setenv("TRIVIA_TIMER_HARD", "5s")
	cfg := parseConfig(t)
	if cfg.port != 7070 {
		t.Errorf("port = %d, want 7070 from env", cfg.port)
	}
	if cfg.timerHard != 5*time.Second {
		t.Errorf("timerHard = %v, want 5s from env", cfg.timerHard)
	}

	cfg = parseConfig(t, "--port", "6060")
	if cfg.port != 6060 {
		t.Errorf("flag should override env, port = %d", cfg.port)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"port", []string{"--port", "0"}, "invalid port"},
		{"timer", []string{"--timer-hard=-1s"}, "negative"},
		{"rate", []string{"--rate-limit-rps", "0"}, "rate limits"},
		{"session", []string{"--session-timeout", "0"}, "session timeout"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := parseConfig(t, tt.args...).validate()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("validate() = %v, want error containing %q", err, tt.want)
			}
		})
	}
}
