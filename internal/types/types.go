// Package types holds the JSON shapes shared by the server and its clients.
package types

// StateMessage is pushed over /ws whenever a game changes. Clients refetch
// the fragment when Turn or Phase differ from what they show and only
// repaint the timer otherwise.
type StateMessage struct {
	Type      string `json:"type"`
	Phase     string `json:"phase"`
	Turn      int    `json:"turn"`
	Remaining int    `json:"remaining"`
	Timed     bool   `json:"timed"`
}

// Health is the /healthz body.
type Health struct {
	Status            string `json:"status"`
	Env               string `json:"env"`
	Version           string `json:"version"`
	QuestionsLoaded   int    `json:"questions_loaded"`
	QuestionSource    string `json:"question_source"`
	QuestionsFallback bool   `json:"questions_fallback"`
	ActiveGames       int    `json:"active_games"`
	Uptime            string `json:"uptime"`
	Timestamp         string `json:"timestamp"`
}
