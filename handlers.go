package main

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"trivianight/internal/quiz"
	"trivianight/internal/types"
)

var errInvalidIndex = errors.New("invalid player index")

// homeHandler renders the full page for the current session.
func (app *App) homeHandler(c *gin.Context) {
	game := app.getGame(app.getOrCreateSession(c))
	app.renderPage(c, game.Snapshot(), "")
}

// gameStateHandler renders the game area as an HTML fragment.
func (app *App) gameStateHandler(c *gin.Context) {
	game := app.getGame(app.getOrCreateSession(c))
	c.HTML(http.StatusOK, "game-content", app.viewData(game.Snapshot(), ""))
}

// apiStateHandler returns the raw snapshot as JSON.
func (app *App) apiStateHandler(c *gin.Context) {
	game := app.getGame(app.getOrCreateSession(c))
	c.JSON(http.StatusOK, game.Snapshot())
}

func (app *App) addPlayerHandler(c *gin.Context) {
	app.act(c, func(game *quiz.Game) error {
		return game.AddPlayer(c.PostForm("name"))
	})
}

func (app *App) removePlayerHandler(c *gin.Context) {
	app.act(c, func(game *quiz.Game) error {
		index, err := strconv.Atoi(c.PostForm("index"))
		if err != nil {
			return errInvalidIndex
		}
		return game.RemovePlayer(index)
	})
}

func (app *App) proceedHandler(c *gin.Context) {
	app.act(c, func(game *quiz.Game) error { return game.Proceed() })
}

func (app *App) backHandler(c *gin.Context) {
	app.act(c, func(game *quiz.Game) error { return game.BackToSetup() })
}

func (app *App) startHandler(c *gin.Context) {
	app.act(c, func(game *quiz.Game) error {
		d, err := quiz.ParseDifficulty(c.PostForm("difficulty"))
		if err != nil {
			return err
		}
		return game.Start(d)
	})
}

// answerHandler submits the chosen option. A stale turn token means the
// turn already ended (timeout or double submit); the current state is shown
// without an error.
func (app *App) answerHandler(c *gin.Context) {
	app.act(c, func(game *quiz.Game) error {
		turn, err := strconv.Atoi(c.PostForm("turn"))
		if err != nil {
			turn = -1
		}
		correct, err := game.Submit(turn, c.PostForm("option"))
		if errors.Is(err, quiz.ErrStaleTurn) {
			logInfo("Ignored stale answer for session %s (turn %d)", game.ID(), turn)
			return nil
		}
		if err == nil {
			logInfo("Session %s answered turn %d correctly: %t", game.ID(), turn, correct)
		}
		return err
	})
}

func (app *App) playAgainHandler(c *gin.Context) {
	app.act(c, func(game *quiz.Game) error { return game.PlayAgain() })
}

// healthzHandler returns a JSON health check with server stats.
func (app *App) healthzHandler(c *gin.Context) {
	c.JSON(http.StatusOK, types.Health{
		Status:            "ok",
		Env:               envName(app.IsProduction),
		Version:           releaseVersion,
		QuestionsLoaded:   len(app.Questions),
		QuestionSource:    app.QuestionSource,
		QuestionsFallback: app.QuestionsFallback,
		ActiveGames:       app.activeGames(),
		Uptime:            formatUptime(time.Since(app.StartTime)),
		Timestamp:         time.Now().UTC().Format(time.RFC3339),
	})
}

// act runs fn against the session's game and responds with the new state.
// HTMX requests get the game fragment; plain form posts are redirected home
// on success or shown the full page with the error.
func (app *App) act(c *gin.Context, fn func(game *quiz.Game) error) {
	sessionID := app.getOrCreateSession(c)
	game := app.getGame(sessionID)

	err := fn(game)
	if errors.Is(err, quiz.ErrGameClosed) {
		// Reaped between lookup and use.
		app.dropGame(sessionID, game)
		game = app.getGame(sessionID)
		err = fn(game)
	}
	app.respond(c, game, err)
}

func (app *App) respond(c *gin.Context, game *quiz.Game, err error) {
	var errMsg string
	if err != nil {
		errMsg = userMessage(err)
		logWarn("Session %s action %s rejected: %v", game.ID(), c.Request.URL.Path, err)
		setErrorTrigger(c, errMsg)
	}

	snap := game.Snapshot()
	switch {
	case isHTMX(c):
		c.HTML(http.StatusOK, "game-content", app.viewData(snap, errMsg))
	case errMsg != "":
		app.renderPage(c, snap, errMsg)
	default:
		c.Redirect(http.StatusSeeOther, RouteHome)
	}
}

func (app *App) renderPage(c *gin.Context, snap quiz.Snapshot, errMsg string) {
	data := app.viewData(snap, errMsg)
	data["title"] = PageTitle
	c.HTML(http.StatusOK, "index.html", data)
}

func (app *App) viewData(snap quiz.Snapshot, errMsg string) gin.H {
	return gin.H{
		"game":     snap,
		"error":    errMsg,
		"fallback": app.QuestionsFallback,
	}
}

func setErrorTrigger(c *gin.Context, errMsg string) {
	payload := map[string]string{"server_error": errMsg}
	if b, jerr := json.Marshal(payload); jerr == nil {
		c.Header("HX-Trigger", string(b))
	} else {
		logWarn("Failed to marshal HX-Trigger payload: %v", jerr)
	}
}

// userMessage maps engine errors to the text shown to players.
func userMessage(err error) string {
	switch {
	case errors.Is(err, quiz.ErrEmptyName):
		return ErrorEmptyName
	case errors.Is(err, quiz.ErrNoPlayers):
		return ErrorNoPlayers
	case errors.Is(err, quiz.ErrNoSuchPlayer):
		return ErrorNoSuchPlayer
	case errors.Is(err, quiz.ErrUnknownDifficulty):
		return ErrorUnknownDifficulty
	case errors.Is(err, quiz.ErrUnknownOption):
		return ErrorUnknownOption
	case errors.Is(err, quiz.ErrWrongPhase):
		return ErrorWrongPhase
	case errors.Is(err, quiz.ErrNoQuestions):
		return ErrorNoQuestions
	case errors.Is(err, errInvalidIndex):
		return ErrorInvalidIndex
	default:
		return ErrorUnexpected
	}
}
