package mq

import "github.com/google/uuid"

// NotificationMessageQueue fans reminder and quote banners out to every
// connected client.
type NotificationMessageQueue interface {
	Publish(msg NotificationMessage) error
	Subscribe() (uuid.UUID, <-chan NotificationMessage, error)
	DeSubscribe(id uuid.UUID) error
}

// ChatMessageQueue fans sent chat messages out to every connected client.
type ChatMessageQueue interface {
	Publish(msg ChatMessage) error
	Subscribe() (uuid.UUID, <-chan ChatMessage, error)
	DeSubscribe(id uuid.UUID) error
}

// Mode selects the message queue backend at startup.
type Mode string

const (
	ModeGoChan    Mode = "go_chan"
	ModeRabbitMQ  Mode = "rabbitmq"
	ModeGCPPubSub Mode = "gcp_pub_sub"
)

type TripMessageQueueWrapper interface {
	GetNotificationMessageQueue() NotificationMessageQueue
	GetChatMessageQueue() ChatMessageQueue
	Close()
}
