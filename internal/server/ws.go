package server

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/blackwell-systems/paperctl/internal/notify"
)

const writeWait = 10 * time.Second

// streamToasts pushes every toast event to the browser as JSON. Toasts
// already on screen are replayed first as "shown" events.
func (s *Server) streamToasts(c *gin.Context) {
	conn, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	notes := s.ctl.Notifier()
	events := notes.Subscribe()
	defer notes.Unsubscribe(events)

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	// The client never sends anything; reading only notices it leaving.
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	send := func(ev notify.Event) bool {
		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteJSON(ev); err != nil {
			s.log.Debug("websocket write failed", zap.Error(err))
			return false
		}
		return true
	}

	replayed := make(map[uuid.UUID]bool)
	for _, n := range notes.Active() {
		replayed[n.ID] = true
		if !send(notify.Event{Type: notify.Shown, Notification: n}) {
			return
		}
	}
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			// Shown before the replay above but delivered after it.
			if ev.Type == notify.Shown && replayed[ev.Notification.ID] {
				continue
			}
			if !send(ev) {
				return
			}
		}
	}
}
