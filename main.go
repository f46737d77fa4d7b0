package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	cachecontrol "go.eigsys.de/gin-cachecontrol/v2"

	"trivianight/internal/quiz"
)

const releaseVersion = "1.0.0"

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := &Config{}
	if err := newCmd(cfg).ExecuteContext(ctx); err != nil {
		logFatal("%v", err)
	}
}

// run loads questions, builds the App and serves until ctx is cancelled.
func run(ctx context.Context, cfg *Config) error {
	setupLogging(cfg.production, cfg.verbose)
	logInfo("Starting Trivia Night in %s mode", envName(cfg.production))

	store := quiz.Store{Source: cfg.questions, FetchTimeout: cfg.fetchTimeout}
	loaded := store.Load(ctx)
	logInfo("Loaded %d questions from %s", len(loaded.Questions), loaded.Source)

	app := newApp(cfg, loaded)
	defer app.closeAllGames()

	reapCtx, cancelReap := context.WithCancel(ctx)
	defer cancelReap()
	go app.reapLoop(reapCtx)

	return app.serve(ctx, cfg.addr(), app.newRouter())
}

// serve runs the HTTP server and shuts it down gracefully once ctx is done.
func (app *App) serve(ctx context.Context, addr string, handler http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logInfo("Server starting on http://%s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logInfo("Shutdown signal received, shutting down server gracefully...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logWarn("HTTP server Shutdown: %v", err)
	}
	logInfo("Server shutdown complete")
	return nil
}

func applyCacheHeaders(c *gin.Context, production bool, staticAge time.Duration) {
	if production && strings.HasPrefix(c.Request.URL.Path, "/static/") {
		cachecontrol.New(cachecontrol.Config{
			Public: true,
			MaxAge: cachecontrol.Duration(staticAge),
		})(c)
		c.Header("Vary", "Accept-Encoding")
		return
	}
	cachecontrol.New(cachecontrol.Config{
		NoStore:        true,
		NoCache:        true,
		MustRevalidate: true,
	})(c)
}

func envName(production bool) string {
	return map[bool]string{true: "production", false: "development"}[production]
}
