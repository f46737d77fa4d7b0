package main

// Session configuration constants
const (
	SessionCookieName = "session_id"
)

// Route constants
const (
	RouteHome         = "/"
	RouteGameState    = "/game-state"
	RouteAPIState     = "/api/state"
	RouteWebSocket    = "/ws"
	RouteAddPlayer    = "/players"
	RouteRemovePlayer = "/players/remove"
	RouteProceed      = "/proceed"
	RouteBack         = "/back"
	RouteStart        = "/start"
	RouteAnswer       = "/answer"
	RoutePlayAgain    = "/play-again"
	RouteHealthz      = "/healthz"
)

// Error message constants
const (
	ErrorEmptyName         = "Please enter a player name."
	ErrorNoPlayers         = "Add at least one player before choosing a difficulty."
	ErrorNoSuchPlayer      = "That player is no longer in the game."
	ErrorUnknownDifficulty = "Choose either easy or hard."
	ErrorUnknownOption     = "Pick one of the listed answers."
	ErrorWrongPhase        = "That action isn't available right now."
	ErrorNoQuestions       = "No questions are available."
	ErrorInvalidIndex      = "Invalid player selection."
	ErrorUnexpected        = "Something went wrong. Please try again."
)

// Page text
const (
	PageTitle = "Trivia Night"
)

// Context key constants
type contextKey string

const (
	requestIDKey contextKey = "request_id"
)
