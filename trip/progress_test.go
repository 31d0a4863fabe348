package trip

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	store "tripmate/store/store"
)

func shortItinerary() []store.ItineraryDay {
	return []store.ItineraryDay{
		{Day: 0, Date: "2025-11-12", Title: "Travel"},
		{Day: 1, Date: "2025-11-13", Title: "Arrive"},
		{Day: 2, Date: "2025-11-14", Title: "Sightsee"},
	}
}

func TestStatusBeforeTrip(t *testing.T) {
	now := time.Date(2025, 11, 2, 9, 0, 0, 0, time.UTC)
	st := StatusAt(now, shortItinerary())

	assert.False(t, st.Started)
	assert.Equal(t, 10, st.DaysUntilTrip)
	assert.Nil(t, st.Today)
	assert.Equal(t, 0, st.Progress.Completed)
	assert.Equal(t, 3, st.Progress.Total)
}

func TestStatusDuringTrip(t *testing.T) {
	now := time.Date(2025, 11, 13, 18, 30, 0, 0, time.UTC)
	st := StatusAt(now, shortItinerary())

	assert.True(t, st.Started)
	assert.Equal(t, 0, st.DaysUntilTrip)
	if assert.NotNil(t, st.Today) {
		assert.Equal(t, "Arrive", st.Today.Title)
	}
	// Only the first day is strictly before today.
	assert.Equal(t, 1, st.Progress.Completed)
}

func TestStatusAfterTripFreeDay(t *testing.T) {
	now := time.Date(2025, 12, 1, 9, 0, 0, 0, time.UTC)
	st := StatusAt(now, shortItinerary())

	assert.True(t, st.Started)
	assert.Nil(t, st.Today)
	assert.Equal(t, 3, st.Progress.Completed)
}

func TestStatusEmptyItinerary(t *testing.T) {
	st := StatusAt(time.Now(), nil)
	assert.True(t, st.Started)
	assert.Equal(t, 0, st.Progress.Total)
}
