package main

import (
	"html/template"

	ginGzip "github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
)

var templateFuncs = template.FuncMap{
	"inc": func(i int) int { return i + 1 },
}

// newRouter wires middleware, templates, static assets and routes.
func (app *App) newRouter() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestIDMiddleware(), requestLogger())

	router.Use(ginGzip.Gzip(ginGzip.DefaultCompression,
		ginGzip.WithExcludedExtensions([]string{".svg", ".ico", ".png", ".jpg", ".jpeg", ".gif"}),
		ginGzip.WithExcludedPaths([]string{RouteWebSocket})))

	if err := router.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logWarn("Failed to set trusted proxies: %v", err)
	}

	router.Use(func(c *gin.Context) {
		applyCacheHeaders(c, app.IsProduction, app.StaticCacheAge)
	})

	router.SetFuncMap(templateFuncs)
	if app.IsProduction && dirExists("dist") {
		logInfo("Serving assets from dist/ directory")
		router.LoadHTMLGlob("dist/templates/*.html")
		router.Static("/static", "./dist/static")
	} else {
		logInfo("Serving development assets from source directories")
		router.LoadHTMLGlob("templates/*.html")
		router.Static("/static", "./static")
	}

	router.GET(RouteHome, app.homeHandler)
	router.GET(RouteGameState, app.gameStateHandler)
	router.GET(RouteAPIState, app.apiStateHandler)
	router.GET(RouteWebSocket, app.wsHandler)
	router.GET(RouteHealthz, app.healthzHandler)

	limited := router.Group("/", app.rateLimitMiddleware())
	limited.POST(RouteAddPlayer, app.addPlayerHandler)
	limited.POST(RouteRemovePlayer, app.removePlayerHandler)
	limited.POST(RouteProceed, app.proceedHandler)
	limited.POST(RouteBack, app.backHandler)
	limited.POST(RouteStart, app.startHandler)
	limited.POST(RouteAnswer, app.answerHandler)
	limited.POST(RoutePlayAgain, app.playAgainHandler)

	return router
}
