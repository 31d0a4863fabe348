package web

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"tripmate/mq/mq"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// allow all origins for WebSocket connections
		// should only in dev
		return true
	},
}

// notificationWebSocket streams reminder and quote banners to the client.
func (s *Server) notificationWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		slog.Warn("websocket upgrade failed", "err", err)
		return
	}
	defer conn.Close()

	stream := make(chan mq.NotificationMessage)
	mq.SubscribeProcessor(c.Request.Context(), s.queue.GetNotificationMessageQueue(),
		func(msg mq.NotificationMessage) (mq.NotificationMessage, bool, error) {
			return msg, false, nil
		}, stream)

	writePump(conn, stream)
}

// chatWebSocket streams chat messages involving the session user.
func (s *Server) chatWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		slog.Warn("websocket upgrade failed", "err", err)
		return
	}
	defer conn.Close()

	userID := sessionFrom(c).UserID
	stream := make(chan mq.ChatMessage)
	mq.SubscribeProcessor(c.Request.Context(), s.queue.GetChatMessageQueue(),
		func(msg mq.ChatMessage) (mq.ChatMessage, bool, error) {
			skip := msg.SenderID != userID && msg.ReceiverID != userID
			return msg, skip, nil
		}, stream)

	writePump(conn, stream)
}

// writePump forwards the stream to the socket until either side closes.
// Reads are drained only to detect the client going away.
func writePump[M any](conn *websocket.Conn, stream <-chan M) {
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case msg, ok := <-stream:
			if !ok {
				return
			}
			if err := conn.WriteJSON(msg); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}
