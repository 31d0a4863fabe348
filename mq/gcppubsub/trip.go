// Package gcppubsub implements the message queues on Google Cloud
// Pub/Sub for cloud deployments.
package gcppubsub

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"reflect"
	"sync"
	"time"

	"cloud.google.com/go/pubsub"
	"github.com/google/uuid"

	"tripmate/mq/mq"
)

const (
	notificationTopicID = "tripmate-notification"
	chatTopicID         = "tripmate-chat"
)

// subscriptionInfo holds details about an active Pub/Sub subscription.
type subscriptionInfo struct {
	gcpSubscription *pubsub.Subscription
	cancel          context.CancelFunc
}

// GenericPubSubService provides a generic implementation for GCP Pub/Sub
// operations on one topic. Each Subscribe creates its own GCP
// subscription, so published messages reach every subscriber.
type GenericPubSubService[M any] struct {
	client              *pubsub.Client
	topic               *pubsub.Topic
	activeSubscriptions map[uuid.UUID]*subscriptionInfo
	subscriptionsMutex  sync.Mutex
	ctx                 context.Context
}

// NewGenericPubSubService creates a generic service for a specific message
// type. It ensures the underlying Pub/Sub topic exists, creating it if
// necessary.
func NewGenericPubSubService[M any](ctx context.Context, client *pubsub.Client, topicID string) (*GenericPubSubService[M], error) {
	if client == nil {
		return nil, fmt.Errorf("GCP Pub/Sub client is nil")
	}

	topic := client.Topic(topicID)
	exists, err := topic.Exists(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to check for existence of topic %s: %w", topicID, err)
	}
	if !exists {
		topic, err = client.CreateTopic(ctx, topicID)
		if err != nil {
			return nil, fmt.Errorf("failed to create topic %s: %w", topicID, err)
		}
		slog.Info("created Pub/Sub topic", "topic", topicID)
	}

	return &GenericPubSubService[M]{
		client:              client,
		topic:               topic,
		activeSubscriptions: make(map[uuid.UUID]*subscriptionInfo),
		ctx:                 ctx,
	}, nil
}

// Publish sends a message to the configured Pub/Sub topic.
func (s *GenericPubSubService[M]) Publish(msg M) error {
	typeName := reflect.TypeOf(msg).Name()
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", typeName, err)
	}

	result := s.topic.Publish(s.ctx, &pubsub.Message{Data: body})
	if _, err = result.Get(s.ctx); err != nil {
		return fmt.Errorf("failed to publish %s to topic %s: %w", typeName, s.topic.ID(), err)
	}
	return nil
}

// Subscribe creates a new subscription on GCP and starts listening.
func (s *GenericPubSubService[M]) Subscribe() (uuid.UUID, <-chan M, error) {
	subscriptionID := uuid.New()
	typeName := reflect.TypeOf(*new(M)).Name()

	gcpSubName := fmt.Sprintf("sub-%s-%s", typeName, subscriptionID.String())

	config := pubsub.SubscriptionConfig{
		Topic:            s.topic,
		ExpirationPolicy: 24 * time.Hour,
		AckDeadline:      10 * time.Second,
	}

	gcpSub, err := s.client.CreateSubscription(s.ctx, gcpSubName, config)
	if err != nil {
		return uuid.Nil, nil, fmt.Errorf("failed to create GCP subscription %s for %s: %w", gcpSubName, typeName, err)
	}

	msgChan := make(chan M, 5)
	receiveCtx, cancel := context.WithCancel(s.ctx)

	s.subscriptionsMutex.Lock()
	s.activeSubscriptions[subscriptionID] = &subscriptionInfo{
		gcpSubscription: gcpSub,
		cancel:          cancel,
	}
	s.subscriptionsMutex.Unlock()

	go func() {
		defer func() {
			s.subscriptionsMutex.Lock()
			delete(s.activeSubscriptions, subscriptionID)
			s.subscriptionsMutex.Unlock()

			// Delete the subscription from GCP to prevent resource leaks.
			if deleteErr := gcpSub.Delete(context.Background()); deleteErr != nil {
				slog.Warn("error deleting GCP subscription", "subscription", gcpSub.ID(), "err", deleteErr)
			}
			close(msgChan)
		}()

		err := gcpSub.Receive(receiveCtx, func(ctx context.Context, pubsubMsg *pubsub.Message) {
			pubsubMsg.Ack()

			var msg M
			if err := json.Unmarshal(pubsubMsg.Data, &msg); err != nil {
				slog.Warn("error unmarshaling message", "type", typeName, "subscriber", subscriptionID, "err", err)
				return
			}

			select {
			case msgChan <- msg:
			case <-time.After(2 * time.Second):
				slog.Warn("timeout delivering message, skipping", "type", typeName, "subscriber", subscriptionID)
			case <-receiveCtx.Done():
				return
			}
		})

		if err != nil && err != context.Canceled {
			slog.Error("receive loop failed", "type", typeName, "subscriber", subscriptionID, "err", err)
		}
	}()

	return subscriptionID, msgChan, nil
}

// DeSubscribe stops the message receiver and deletes the subscription from GCP.
func (s *GenericPubSubService[M]) DeSubscribe(id uuid.UUID) error {
	s.subscriptionsMutex.Lock()
	info, ok := s.activeSubscriptions[id]
	if ok {
		// Removal from the map happens in the goroutine's defer block.
		info.cancel()
	}
	s.subscriptionsMutex.Unlock()

	if !ok {
		return fmt.Errorf("subscription ID %s not found for %s service", id, reflect.TypeOf(*new(M)).Name())
	}
	return nil
}

// Close shuts down all active subscriptions for this service.
func (s *GenericPubSubService[M]) Close() {
	s.subscriptionsMutex.Lock()
	defer s.subscriptionsMutex.Unlock()

	for _, info := range s.activeSubscriptions {
		info.cancel()
	}
}

// GCPTripMessageQueueWrapper implements mq.TripMessageQueueWrapper on GCP Pub/Sub.
type GCPTripMessageQueueWrapper struct {
	notificationMQ *GenericPubSubService[mq.NotificationMessage]
	chatMQ         *GenericPubSubService[mq.ChatMessage]
	client         *pubsub.Client
}

// NewGCPTripMessageQueueWrapper creates a new MQ wrapper instance using GCP Pub/Sub.
func NewGCPTripMessageQueueWrapper(ctx context.Context, projectID string) (mq.TripMessageQueueWrapper, error) {
	client, err := pubsub.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCP Pub/Sub client for project %s: %w", projectID, err)
	}

	notificationMQ, err := NewGenericPubSubService[mq.NotificationMessage](ctx, client, notificationTopicID)
	if err != nil {
		return nil, err
	}
	chatMQ, err := NewGenericPubSubService[mq.ChatMessage](ctx, client, chatTopicID)
	if err != nil {
		return nil, err
	}

	return &GCPTripMessageQueueWrapper{
		notificationMQ: notificationMQ,
		chatMQ:         chatMQ,
		client:         client,
	}, nil
}

func (w *GCPTripMessageQueueWrapper) GetNotificationMessageQueue() mq.NotificationMessageQueue {
	return w.notificationMQ
}

func (w *GCPTripMessageQueueWrapper) GetChatMessageQueue() mq.ChatMessageQueue {
	return w.chatMQ
}

func (w *GCPTripMessageQueueWrapper) Close() {
	w.notificationMQ.Close()
	w.chatMQ.Close()
	if w.client != nil {
		w.client.Close()
	}
}
