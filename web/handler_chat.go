package web

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"tripmate/mq/mq"
	st "tripmate/store/store"
	"tripmate/trip"
)

type sendMessageRequest struct {
	Text string `json:"text" binding:"required"`
}

// getConversation returns the two-party history between the session user
// and the addressed user, in timestamp order.
func (s *Server) getConversation(c *gin.Context) {
	otherID, err := strconv.Atoi(c.Param("userID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	messages, err := s.store.ListMessages(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load messages"})
		return
	}
	c.JSON(http.StatusOK, trip.Conversation(messages, sessionFrom(c).UserID, otherID))
}

// sendMessage appends one message and announces it on the chat queue.
func (s *Server) sendMessage(c *gin.Context) {
	otherID, err := strconv.Atoi(c.Param("userID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}
	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	message := st.Message{
		ID:         uuid.New(),
		SenderID:   sessionFrom(c).UserID,
		ReceiverID: otherID,
		Text:       req.Text,
		Timestamp:  time.Now().UnixMilli(),
	}
	if err := s.store.AppendMessage(c.Request.Context(), message); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save message"})
		return
	}

	if err := s.queue.GetChatMessageQueue().Publish(mq.ChatMessage{
		ID:         message.ID,
		SenderID:   message.SenderID,
		ReceiverID: message.ReceiverID,
		Text:       message.Text,
		Timestamp:  message.Timestamp,
	}); err != nil {
		slog.Warn("failed to announce chat message", "err", err)
	}

	c.JSON(http.StatusCreated, message)
}
