package main

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"golang.org/x/time/rate"

	"trivianight/internal/quiz"
)

// App holds the server-wide state shared by every handler.
type App struct {
	Questions         []quiz.Question
	QuestionSource    string
	QuestionsFallback bool
	Policy            quiz.TimerPolicy
	RecordHistory     bool
	Clock             clockwork.Clock

	GameSessions map[string]*quiz.Game // session ID -> game
	SessionMutex sync.RWMutex

	LimiterMap   map[string]*rate.Limiter
	LimiterMutex sync.Mutex

	IsProduction   bool
	CookieMaxAge   time.Duration
	SessionTimeout time.Duration
	StaticCacheAge time.Duration
	RateLimitRPS   int
	RateLimitBurst int
	StartTime      time.Time
}

// newApp builds an App from configuration and the loaded question set.
func newApp(cfg *Config, loaded quiz.LoadResult) *App {
	return &App{
		Questions:         loaded.Questions,
		QuestionSource:    loaded.Source,
		QuestionsFallback: loaded.Fallback,
		Policy:            cfg.timerPolicy(),
		RecordHistory:     cfg.recordHistory,
		Clock:             clockwork.NewRealClock(),
		GameSessions:      make(map[string]*quiz.Game),
		LimiterMap:        make(map[string]*rate.Limiter),
		IsProduction:      cfg.production,
		CookieMaxAge:      cfg.cookieMaxAge,
		SessionTimeout:    cfg.sessionTimeout,
		StaticCacheAge:    cfg.staticCacheAge,
		RateLimitRPS:      cfg.rateLimitRPS,
		RateLimitBurst:    cfg.rateLimitBurst,
		StartTime:         time.Now(),
	}
}
