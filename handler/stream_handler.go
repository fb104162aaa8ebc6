package handler

import (
	"net/http"
	"time"

	"bankist/logger"
	"bankist/model"
	"bankist/service"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

const streamWriteTimeout = 5 * time.Second

// StreamHandler pushes the session's events (countdown ticks, ledger updates,
// loan outcomes) over a websocket until the session ends or the client leaves.
type StreamHandler struct {
	hub      *service.Hub
	upgrader websocket.Upgrader
}

func NewStreamHandler(hub *service.Hub) *StreamHandler {
	return &StreamHandler{
		hub: hub,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Stream godoc
// @Summary      Stream session events
// @Description  Websocket feed of the logged-in account's events. The token may be passed as the "token" query parameter.
// @Tags         session
// @Security     BearerAuth
// @Param        token query string false "Bearer token"
// @Success      101
// @Failure      401  {object}  common.AppError "Session expired"
// @Router       /api/stream [get]
func (h *StreamHandler) Stream(w http.ResponseWriter, r *http.Request) {
	sess, appErr := sessionFrom(r)
	if appErr != nil {
		appErr.Send(w)
		return
	}

	log := logger.Log.WithFields(logrus.Fields{
		"username":   sess.Username(),
		"session_id": sess.ID(),
	})

	events, cancel := h.hub.Subscribe(sess.Username())
	defer cancel()

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.WithError(err).Warn("Websocket upgrade failed")
		return
	}
	defer conn.Close()
	log.Info("Event stream opened")

	// the client never sends anything useful; reading only detects the close
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for ev := range events {
		if ev.SessionID != "" && ev.SessionID != sess.ID() {
			continue
		}
		_ = conn.SetWriteDeadline(time.Now().Add(streamWriteTimeout))
		if err := conn.WriteJSON(ev); err != nil {
			log.WithError(err).Warn("Event stream write failed")
			return
		}
		if ev.Type == model.EventSessionEnded {
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ev.Reason),
				time.Now().Add(streamWriteTimeout))
			break
		}
	}
	log.Info("Event stream closed")
}
