package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"trivianight/internal/quiz"
)

// reapInterval is how often idle games are looked for.
const reapInterval = time.Minute

// getOrCreateSession retrieves the session ID from the cookie or creates a new one.
func (app *App) getOrCreateSession(c *gin.Context) string {
	sessionID, err := c.Cookie(SessionCookieName)
	if err != nil || len(sessionID) < 10 {
		sessionID = uuid.NewString()
		c.SetSameSite(http.SameSiteStrictMode)
		secure := app.IsProduction
		c.SetCookie(SessionCookieName, sessionID, int(app.CookieMaxAge.Seconds()), "/", "", secure, true)
		logInfo("Created new session: %s", sessionID)
	}
	return sessionID
}

// getGame retrieves or creates the game for a session.
func (app *App) getGame(sessionID string) *quiz.Game {
	app.SessionMutex.RLock()
	game, exists := app.GameSessions[sessionID]
	app.SessionMutex.RUnlock()
	if exists {
		return game
	}

	app.SessionMutex.Lock()
	defer app.SessionMutex.Unlock()
	if game, exists = app.GameSessions[sessionID]; exists {
		return game
	}
	game = app.newGame(sessionID)
	app.GameSessions[sessionID] = game
	logInfo("Created new game for session: %s", sessionID)
	return game
}

func (app *App) newGame(sessionID string) *quiz.Game {
	return quiz.NewGame(quiz.Config{
		ID:            sessionID,
		Questions:     app.Questions,
		Policy:        app.Policy,
		RecordHistory: app.RecordHistory,
		Clock:         app.Clock,
	})
}

// dropGame forgets game if it is still the one registered for sessionID.
func (app *App) dropGame(sessionID string, game *quiz.Game) {
	app.SessionMutex.Lock()
	defer app.SessionMutex.Unlock()
	if app.GameSessions[sessionID] == game {
		delete(app.GameSessions, sessionID)
	}
}

// activeGames returns the number of games held in memory.
func (app *App) activeGames() int {
	app.SessionMutex.RLock()
	defer app.SessionMutex.RUnlock()
	return len(app.GameSessions)
}

// reapIdleGames closes and forgets games idle for longer than SessionTimeout.
func (app *App) reapIdleGames(now time.Time) int {
	cutoff := now.Add(-app.SessionTimeout)

	app.SessionMutex.Lock()
	var idle []*quiz.Game
	for id, game := range app.GameSessions {
		if game.LastActive().Before(cutoff) {
			idle = append(idle, game)
			delete(app.GameSessions, id)
		}
	}
	app.SessionMutex.Unlock()

	for _, game := range idle {
		game.Close()
		logInfo("Removed idle game for session: %s", game.ID())
	}
	return len(idle)
}

// reapLoop runs reapIdleGames until ctx is cancelled.
func (app *App) reapLoop(ctx context.Context) {
	ticker := app.Clock.NewTicker(reapInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			if removed := app.reapIdleGames(app.Clock.Now()); removed > 0 {
				logInfo("Session cleanup completed: removed %d games, %d active", removed, app.activeGames())
			}
		}
	}
}

// closeAllGames stops every countdown; used on shutdown.
func (app *App) closeAllGames() {
	app.SessionMutex.Lock()
	games := app.GameSessions
	app.GameSessions = make(map[string]*quiz.Game)
	app.SessionMutex.Unlock()
	for _, game := range games {
		game.Close()
	}
}
