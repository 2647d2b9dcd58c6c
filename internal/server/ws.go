package server

import (
	"encoding/json"
	"net/http"

	"github.com/coder/websocket"

	"github.com/wethinkt/go-lightbox/internal/tuilog"
	"github.com/wethinkt/go-lightbox/internal/viewer"
)

// handleViewerWS upgrades to WebSocket and streams a snapshot after every
// viewer change, starting with the current state.
// @Summary Stream viewer state
// @Description WebSocket; each text message is a viewer snapshot
// @Tags viewer
// @Success 101 {object} ViewerResponse
// @Router /viewer/ws [get]
func (s *HTTPServer) handleViewerWS(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true, // CORS handled by middleware
	})
	if err != nil {
		tuilog.Log.Error("WebSocket accept failed", "error", err)
		return
	}
	defer conn.CloseNow()

	// Subscribe before reading the current state so no change is missed.
	ch, unsub := s.session.Subscribe()
	defer unsub()

	ctx := conn.CloseRead(r.Context())

	write := func(snap viewer.Snapshot) bool {
		data, err := json.Marshal(snap)
		if err != nil {
			return true
		}
		if err := conn.Write(ctx, websocket.MessageText, data); err != nil {
			tuilog.Log.Debug("WS write failed", "error", err)
			return false
		}
		return true
	}

	if !write(s.session.Snapshot()) {
		return
	}

	wsConnectionsActive.Inc()
	defer wsConnectionsActive.Dec()
	tuilog.Log.Info("WebSocket client connected", "remote", r.RemoteAddr)

	for {
		select {
		case <-ctx.Done():
			conn.Close(websocket.StatusNormalClosure, "server shutting down")
			return
		case snap, ok := <-ch:
			if !ok {
				conn.Close(websocket.StatusNormalClosure, "subscription closed")
				return
			}
			if !write(snap) {
				return
			}
		}
	}
}
