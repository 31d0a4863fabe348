package goch

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"tripmate/mq/mq"
)

func recvNotification(t *testing.T, ch <-chan mq.NotificationMessage) mq.NotificationMessage {
	t.Helper()
	select {
	case msg := <-ch:
		return msg
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for notification")
		return mq.NotificationMessage{}
	}
}

func TestNotificationFanOut(t *testing.T) {
	wrapper := NewGoChanTripMessageQueueWrapper()
	defer wrapper.Close()
	queue := wrapper.GetNotificationMessageQueue()

	// Test 1: both subscribers receive the published message
	_, chA, err := queue.Subscribe()
	assert.NoError(t, err)
	_, chB, err := queue.Subscribe()
	assert.NoError(t, err)

	sent := mq.NotificationMessage{ID: uuid.New(), Kind: mq.KindWater, Text: "Time to hydrate!"}
	assert.NoError(t, queue.Publish(sent))

	assert.Equal(t, sent, recvNotification(t, chA))
	assert.Equal(t, sent, recvNotification(t, chB))
}

func TestDeSubscribe(t *testing.T) {
	wrapper := NewGoChanTripMessageQueueWrapper()
	defer wrapper.Close()
	queue := wrapper.GetNotificationMessageQueue()

	// Test 1: a removed subscriber's channel is closed
	id, ch, err := queue.Subscribe()
	assert.NoError(t, err)
	assert.NoError(t, queue.DeSubscribe(id))

	_, open := <-ch
	assert.False(t, open)

	// Test 2: unknown subscriber id is an error
	assert.Error(t, queue.DeSubscribe(uuid.New()))
}

func TestFullSubscriberDoesNotBlockPublisher(t *testing.T) {
	wrapper := NewGoChanTripMessageQueueWrapper()
	defer wrapper.Close()
	queue := wrapper.GetChatMessageQueue()

	_, _, err := queue.Subscribe()
	assert.NoError(t, err)

	// Test 1: publishing past the buffer size must not block
	done := make(chan struct{})
	go func() {
		for i := 0; i < subscriberBuffer*2; i++ {
			_ = queue.Publish(mq.ChatMessage{ID: uuid.New(), Text: "hi"})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publisher blocked on a slow subscriber")
	}
}

func TestSubscribeProcessor(t *testing.T) {
	wrapper := NewGoChanTripMessageQueueWrapper()
	defer wrapper.Close()
	queue := wrapper.GetChatMessageQueue()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Test 1: messages are transformed and filtered before reaching the output
	out := make(chan string)
	mq.SubscribeProcessor(ctx, queue, func(msg mq.ChatMessage) (string, bool, error) {
		if msg.SenderID == 0 {
			return "", true, nil
		}
		return msg.Text, false, nil
	}, out)

	// Give the processor a moment to register its subscription.
	time.Sleep(50 * time.Millisecond)

	assert.NoError(t, queue.Publish(mq.ChatMessage{ID: uuid.New(), SenderID: 0, Text: "skipped"}))
	assert.NoError(t, queue.Publish(mq.ChatMessage{ID: uuid.New(), SenderID: 1, Text: "delivered"}))

	select {
	case got := <-out:
		assert.Equal(t, "delivered", got)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for processed message")
	}

	// Test 2: cancelling the context closes the output stream
	cancel()
	select {
	case _, open := <-out:
		assert.False(t, open)
	case <-time.After(time.Second):
		t.Fatal("output stream not closed after cancel")
	}
}
