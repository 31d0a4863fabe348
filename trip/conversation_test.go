package trip

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	store "tripmate/store/store"
)

func msg(sender, receiver int, ts int64, text string) store.Message {
	return store.Message{
		ID:         uuid.New(),
		SenderID:   sender,
		ReceiverID: receiver,
		Text:       text,
		Timestamp:  ts,
	}
}

func TestConversationFiltersAndSorts(t *testing.T) {
	messages := []store.Message{
		msg(1, 2, 300, "later"),
		msg(2, 1, 100, "first"),
		msg(1, 3, 150, "other chat"),
		msg(1, 2, 200, "middle"),
		msg(3, 2, 250, "not ours either"),
	}

	conv := Conversation(messages, 1, 2)
	assert.Len(t, conv, 3)
	assert.Equal(t, "first", conv[0].Text)
	assert.Equal(t, "middle", conv[1].Text)
	assert.Equal(t, "later", conv[2].Text)

	// Timestamps are non-decreasing.
	for i := 1; i < len(conv); i++ {
		assert.LessOrEqual(t, conv[i-1].Timestamp, conv[i].Timestamp)
	}

	// Both directions are included.
	assert.Equal(t, 2, conv[0].SenderID)
	assert.Equal(t, 1, conv[1].SenderID)
}

func TestConversationSymmetry(t *testing.T) {
	messages := []store.Message{
		msg(1, 2, 100, "a"),
		msg(2, 1, 200, "b"),
	}
	ab := Conversation(messages, 1, 2)
	ba := Conversation(messages, 2, 1)
	assert.Equal(t, ab, ba)
}

func TestConversationEmpty(t *testing.T) {
	conv := Conversation(nil, 1, 2)
	assert.Empty(t, conv)
	assert.NotNil(t, conv)
}
