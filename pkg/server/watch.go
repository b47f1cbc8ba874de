package server

import (
	"net/http"
	"time"

	"github.com/IlikeChooros/go-uttt/pkg/session"
	"github.com/gorilla/websocket"
)

type watchMessage struct {
	Type  string            `json:"type"` // "state" or "error"
	State *session.Snapshot `json:"state,omitempty"`
	Error string            `json:"error,omitempty"`
}

// Stream the game over a websocket until it ends. A Bot vs Bot game is
// put on autoplay (once, however many watchers there are), the watchers
// themselves only poll for new moves.
func (s *Server) handleWatch(w http.ResponseWriter, r *http.Request) {
	sess, err := s.store.Get(r.URL.Query().Get("game_id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid game ID")
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}
	defer conn.Close()

	if sess.Mode == session.BotVsBot {
		if err := sess.Autoplay(s.ctx, s.watchInterval); err != nil {
			_ = conn.WriteJSON(watchMessage{Type: "error", Error: err.Error()})
			return
		}
	}

	// Drain the incoming messages, to notice the client going away
	gone := make(chan struct{})
	go func() {
		defer close(gone)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(max(s.watchInterval/2, time.Millisecond))
	defer ticker.Stop()

	sent := -1
	for {
		snap := sess.Snapshot()
		if len(snap.History) != sent || snap.Over() {
			if err := conn.WriteJSON(watchMessage{Type: "state", State: &snap}); err != nil {
				s.log.Debug().Err(err).Str("game_id", sess.ID).Msg("watcher write failed")
				return
			}
			sent = len(snap.History)
		}
		if snap.Over() {
			break
		}

		select {
		case <-gone:
			return
		case <-r.Context().Done():
			return
		case <-s.ctx.Done():
			return
		case <-ticker.C:
		}
	}

	_ = conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "game over"),
		time.Now().Add(time.Second))
}
