package remind

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"tripmate/mq/goch"
	"tripmate/mq/mq"
	"tripmate/store/mem"
	st "tripmate/store/store"
	"tripmate/trip"
)

func newTestScheduler(t *testing.T) (*Scheduler, mq.NotificationMessageQueue, st.TripStoreWrapper) {
	t.Helper()
	wrapper := goch.NewGoChanTripMessageQueueWrapper()
	t.Cleanup(wrapper.Close)
	store := mem.NewInMemoryTripStoreWrapper(st.Seed{})
	t.Cleanup(func() { _ = store.Close() })

	queue := wrapper.GetNotificationMessageQueue()
	return NewScheduler(queue, store, trip.MotivationalQuotes), queue, store
}

func TestMorningQuoteShownOncePerDay(t *testing.T) {
	scheduler, queue, _ := newTestScheduler(t)
	_, ch, err := queue.Subscribe()
	assert.NoError(t, err)

	ctx := context.Background()

	// Test 1: the first check of the day publishes a prefixed quote
	scheduler.morningQuoteCheck(ctx)
	select {
	case msg := <-ch:
		assert.Equal(t, mq.KindQuote, msg.Kind)
		assert.True(t, strings.HasPrefix(msg.Text, quotePrefix))
	case <-time.After(time.Second):
		t.Fatal("expected a morning quote")
	}

	// Test 2: repeated checks on the same date stay silent
	scheduler.morningQuoteCheck(ctx)
	scheduler.morningQuoteCheck(ctx)
	select {
	case msg := <-ch:
		t.Fatalf("unexpected second quote: %q", msg.Text)
	case <-time.After(100 * time.Millisecond):
	}

	// Test 3: the next calendar date publishes again
	scheduler.now = func() time.Time { return time.Now().Add(24 * time.Hour) }
	scheduler.morningQuoteCheck(ctx)
	select {
	case msg := <-ch:
		assert.Equal(t, mq.KindQuote, msg.Kind)
	case <-time.After(time.Second):
		t.Fatal("expected a quote on the next day")
	}
}

func TestReminderTexts(t *testing.T) {
	scheduler, queue, _ := newTestScheduler(t)
	_, ch, err := queue.Subscribe()
	assert.NoError(t, err)

	// Test 1: each reminder kind carries its fixed text
	scheduler.publish(mq.KindWater, waterText)
	scheduler.publish(mq.KindFood, foodText)
	scheduler.publish(mq.KindFamily, familyText)

	for _, want := range []mq.NotificationMessage{
		{Kind: mq.KindWater, Text: waterText},
		{Kind: mq.KindFood, Text: foodText},
		{Kind: mq.KindFamily, Text: familyText},
	} {
		select {
		case msg := <-ch:
			assert.Equal(t, want.Kind, msg.Kind)
			assert.Equal(t, want.Text, msg.Text)
			assert.NotZero(t, msg.SentAt)
		case <-time.After(time.Second):
			t.Fatal("expected a reminder message")
		}
	}
}

func TestStartAndStop(t *testing.T) {
	scheduler, queue, _ := newTestScheduler(t)
	_, ch, err := queue.Subscribe()
	assert.NoError(t, err)

	// Test 1: Start fires the immediate morning check, Stop halts cleanly
	assert.NoError(t, scheduler.Start(context.Background()))
	select {
	case msg := <-ch:
		assert.Equal(t, mq.KindQuote, msg.Kind)
	case <-time.After(time.Second):
		t.Fatal("expected the startup morning quote")
	}
	scheduler.Stop()
}
