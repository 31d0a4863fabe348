// Package rabbit implements the message queues on RabbitMQ for
// multi-process deployments.
package rabbit

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rabbitmq/amqp091-go"

	"tripmate/mq/mq"
)

const (
	exchangeName = "tripmate_events_exchange"

	notificationRoutingKey = "notification.push"
	chatRoutingKey         = "chat.message"
)

// rabbitMessageQueue implements a broadcast queue over a topic exchange.
// Every subscriber gets its own exclusive auto-delete queue bound to the
// routing key, so a published message reaches all of them.
type rabbitMessageQueue[M any] struct {
	conn       *amqp091.Connection
	channel    *amqp091.Channel
	routingKey string
	mu         sync.Mutex
	consumers  map[uuid.UUID]*consumerInfo
}

type consumerInfo struct {
	channel   *amqp091.Channel
	queueName string
	done      chan struct{}
}

func newRabbitMessageQueue[M any](conn *amqp091.Connection, routingKey string) (*rabbitMessageQueue[M], error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("failed to open a channel: %w", err)
	}

	if err := ch.ExchangeDeclare(
		exchangeName, // name
		"topic",      // kind
		true,         // durable
		false,        // auto-delete
		false,        // internal
		false,        // no-wait
		nil,          // args
	); err != nil {
		ch.Close()
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}

	return &rabbitMessageQueue[M]{
		conn:       conn,
		channel:    ch,
		routingKey: routingKey,
		consumers:  make(map[uuid.UUID]*consumerInfo),
	}, nil
}

func (q *rabbitMessageQueue[M]) Publish(msg M) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err = q.channel.PublishWithContext(ctx,
		exchangeName, // exchange
		q.routingKey, // routing key
		false,        // mandatory
		false,        // immediate
		amqp091.Publishing{
			ContentType: "application/json",
			Body:        body,
		})
	if err != nil {
		return fmt.Errorf("failed to publish message: %w", err)
	}
	return nil
}

func (q *rabbitMessageQueue[M]) Subscribe() (uuid.UUID, <-chan M, error) {
	ch, err := q.conn.Channel()
	if err != nil {
		return uuid.Nil, nil, fmt.Errorf("failed to open a channel: %w", err)
	}

	// Exclusive auto-delete queue per subscriber keeps broadcast semantics.
	queue, err := ch.QueueDeclare(
		"",    // name, server-generated
		false, // durable
		true,  // auto-delete
		true,  // exclusive
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		ch.Close()
		return uuid.Nil, nil, fmt.Errorf("failed to declare queue: %w", err)
	}

	if err := ch.QueueBind(queue.Name, q.routingKey, exchangeName, false, nil); err != nil {
		ch.Close()
		return uuid.Nil, nil, fmt.Errorf("failed to bind queue: %w", err)
	}

	msgs, err := ch.Consume(
		queue.Name, // queue
		"",         // consumer
		true,       // auto-ack
		false,      // exclusive
		false,      // no-local
		false,      // no-wait
		nil,        // args
	)
	if err != nil {
		ch.Close()
		return uuid.Nil, nil, fmt.Errorf("failed to register a consumer: %w", err)
	}

	subscriberID := uuid.New()
	outputChan := make(chan M)
	done := make(chan struct{})

	q.mu.Lock()
	q.consumers[subscriberID] = &consumerInfo{channel: ch, queueName: queue.Name, done: done}
	q.mu.Unlock()

	go func() {
		defer func() {
			q.mu.Lock()
			delete(q.consumers, subscriberID)
			q.mu.Unlock()
			ch.Close()
			close(outputChan)
		}()

		for {
			select {
			case d, ok := <-msgs:
				if !ok {
					return
				}
				var msg M
				if err := json.Unmarshal(d.Body, &msg); err != nil {
					slog.Warn("failed to unmarshal message", "subscriber", subscriberID, "err", err)
					continue
				}
				select {
				case outputChan <- msg:
				case <-time.After(time.Second):
					slog.Warn("timeout delivering message, skipping", "subscriber", subscriberID)
				case <-done:
					return
				}
			case <-done:
				return
			}
		}
	}()

	return subscriberID, outputChan, nil
}

func (q *rabbitMessageQueue[M]) DeSubscribe(subscriberID uuid.UUID) error {
	q.mu.Lock()
	info, ok := q.consumers[subscriberID]
	if ok {
		delete(q.consumers, subscriberID)
	}
	q.mu.Unlock()

	if !ok {
		return fmt.Errorf("consumer with ID %s not found", subscriberID)
	}
	close(info.done)
	return nil
}

func (q *rabbitMessageQueue[M]) close() {
	q.mu.Lock()
	consumers := make([]*consumerInfo, 0, len(q.consumers))
	for id, info := range q.consumers {
		consumers = append(consumers, info)
		delete(q.consumers, id)
	}
	q.mu.Unlock()

	for _, info := range consumers {
		close(info.done)
	}
	if q.channel != nil {
		q.channel.Close()
	}
}

// rabbitTripMessageQueueWrapper implements mq.TripMessageQueueWrapper for RabbitMQ.
type rabbitTripMessageQueueWrapper struct {
	notificationMQ *rabbitMessageQueue[mq.NotificationMessage]
	chatMQ         *rabbitMessageQueue[mq.ChatMessage]
	conn           *amqp091.Connection
}

func NewRabbitTripMessageQueueWrapper(conn *amqp091.Connection) (mq.TripMessageQueueWrapper, error) {
	notificationMQ, err := newRabbitMessageQueue[mq.NotificationMessage](conn, notificationRoutingKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create notification mq: %w", err)
	}
	chatMQ, err := newRabbitMessageQueue[mq.ChatMessage](conn, chatRoutingKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat mq: %w", err)
	}

	return &rabbitTripMessageQueueWrapper{
		notificationMQ: notificationMQ,
		chatMQ:         chatMQ,
		conn:           conn,
	}, nil
}

func (w *rabbitTripMessageQueueWrapper) GetNotificationMessageQueue() mq.NotificationMessageQueue {
	return w.notificationMQ
}

func (w *rabbitTripMessageQueueWrapper) GetChatMessageQueue() mq.ChatMessageQueue {
	return w.chatMQ
}

func (w *rabbitTripMessageQueueWrapper) Close() {
	w.notificationMQ.close()
	w.chatMQ.close()
	if w.conn != nil {
		w.conn.Close()
	}
}
