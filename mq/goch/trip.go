// Package goch implements the message queues on plain Go channels, the
// default single-process backend.
package goch

import (
	"sync"

	"github.com/google/uuid"

	"tripmate/mq/mq"
)

const subscriberBuffer = 16

// channelMessageQueue fans every published message out to all current
// subscribers. A subscriber whose buffer is full misses that message
// rather than blocking the publisher.
type channelMessageQueue[M any] struct {
	mu        sync.RWMutex
	consumers map[uuid.UUID]chan M
}

func newChannelMessageQueue[M any]() *channelMessageQueue[M] {
	return &channelMessageQueue[M]{
		consumers: make(map[uuid.UUID]chan M),
	}
}

func (q *channelMessageQueue[M]) Publish(msg M) error {
	q.mu.RLock()
	defer q.mu.RUnlock()

	for _, ch := range q.consumers {
		select {
		case ch <- msg:
		default:
			// subscriber is not draining, skip it
		}
	}
	return nil
}

func (q *channelMessageQueue[M]) Subscribe() (uuid.UUID, <-chan M, error) {
	id := uuid.New()
	ch := make(chan M, subscriberBuffer)

	q.mu.Lock()
	q.consumers[id] = ch
	q.mu.Unlock()

	return id, ch, nil
}

func (q *channelMessageQueue[M]) DeSubscribe(id uuid.UUID) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	ch, ok := q.consumers[id]
	if !ok {
		return ErrSubscriberNotFound
	}
	delete(q.consumers, id)
	close(ch)
	return nil
}

func (q *channelMessageQueue[M]) closeAll() {
	q.mu.Lock()
	defer q.mu.Unlock()

	for id, ch := range q.consumers {
		delete(q.consumers, id)
		close(ch)
	}
}

// GoChanTripMessageQueueWrapper implements mq.TripMessageQueueWrapper on
// in-process channels.
type GoChanTripMessageQueueWrapper struct {
	notificationMQ *channelMessageQueue[mq.NotificationMessage]
	chatMQ         *channelMessageQueue[mq.ChatMessage]
}

func NewGoChanTripMessageQueueWrapper() mq.TripMessageQueueWrapper {
	return &GoChanTripMessageQueueWrapper{
		notificationMQ: newChannelMessageQueue[mq.NotificationMessage](),
		chatMQ:         newChannelMessageQueue[mq.ChatMessage](),
	}
}

func (w *GoChanTripMessageQueueWrapper) GetNotificationMessageQueue() mq.NotificationMessageQueue {
	return w.notificationMQ
}

func (w *GoChanTripMessageQueueWrapper) GetChatMessageQueue() mq.ChatMessageQueue {
	return w.chatMQ
}

func (w *GoChanTripMessageQueueWrapper) Close() {
	w.notificationMQ.closeAll()
	w.chatMQ.closeAll()
}

// --- Error Definitions ---
type QueueError string

func (e QueueError) Error() string {
	return string(e)
}

const (
	ErrSubscriberNotFound QueueError = "subscriber not found"
)
