package trip

import (
	"sort"

	store "tripmate/store/store"
)

// Conversation filters the full message list down to the exchange between
// the two users, in both directions, sorted by timestamp ascending. The
// input slice is not modified.
func Conversation(messages []store.Message, userA, userB int) []store.Message {
	out := make([]store.Message, 0)
	for _, m := range messages {
		if (m.SenderID == userA && m.ReceiverID == userB) ||
			(m.SenderID == userB && m.ReceiverID == userA) {
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp < out[j].Timestamp
	})
	return out
}
