package main

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"trivianight/internal/quiz"
	"trivianight/internal/types"
)

const (
	wsWriteTimeout = 10 * time.Second
	wsPongTimeout  = 60 * time.Second
	wsPingInterval = wsPongTimeout * 9 / 10
	wsMaxMessage   = 512
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

func stateMessage(snap quiz.Snapshot) types.StateMessage {
	return types.StateMessage{
		Type:      "state",
		Phase:     string(snap.Phase),
		Turn:      snap.Turn,
		Remaining: snap.Remaining,
		Timed:     snap.Timed,
	}
}

// wsHandler streams state changes for the session's game so the page can
// repaint the countdown and follow timeouts without polling.
func (app *App) wsHandler(c *gin.Context) {
	sessionID := app.getOrCreateSession(c)
	game := app.getGame(sessionID)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logWarn("WebSocket upgrade failed for session %s: %v", sessionID, err)
		return
	}
	defer conn.Close()

	updates, cancel := game.Subscribe()
	defer cancel()

	closed := make(chan struct{})
	go readPump(conn, closed)

	ticker := time.NewTicker(wsPingInterval)
	defer ticker.Stop()

	if err := writeState(conn, stateMessage(game.Snapshot())); err != nil {
		return
	}
	for {
		select {
		case <-closed:
			return
		case snap, ok := <-updates:
			if !ok {
				_ = conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
				_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, "game closed"))
				return
			}
			if err := writeState(conn, stateMessage(snap)); err != nil {
				log.Debug().Err(err).Str("session", sessionID).Msg("websocket write failed")
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func writeState(conn *websocket.Conn, msg types.StateMessage) error {
	_ = conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
	return conn.WriteJSON(msg)
}

// readPump discards client messages and closes done when the peer goes away.
func readPump(conn *websocket.Conn, done chan<- struct{}) {
	defer close(done)
	conn.SetReadLimit(wsMaxMessage)
	_ = conn.SetReadDeadline(time.Now().Add(wsPongTimeout))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(wsPongTimeout))
	})
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Debug().Err(err).Msg("unexpected websocket close")
			}
			return
		}
	}
}
