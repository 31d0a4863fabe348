package mq

import (
	"github.com/google/uuid"
)

// NotificationKind names which reminder or banner a notification belongs to.
type NotificationKind string

const (
	KindWater  NotificationKind = "water"
	KindFood   NotificationKind = "food"
	KindFamily NotificationKind = "family"
	KindQuote  NotificationKind = "quote"
)

type NotificationMessage struct {
	ID     uuid.UUID
	Kind   NotificationKind
	Text   string
	SentAt int64
}

type ChatMessage struct {
	ID         uuid.UUID
	SenderID   int
	ReceiverID int
	Text       string
	Timestamp  int64
}
