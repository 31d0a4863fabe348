package trip

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	store "tripmate/store/store"
)

func TestSortByUpcomingBirthday(t *testing.T) {
	now := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)
	users := []store.User{
		{ID: 1, Name: "JuneEarly", Birthday: "06-01"},   // passed this year
		{ID: 2, Name: "JuneLate", Birthday: "06-20"},    // upcoming
		{ID: 3, Name: "January", Birthday: "01-01"},     // passed this year
		{ID: 4, Name: "December", Birthday: "12-12"},    // upcoming
	}

	sorted := SortByUpcomingBirthday(users, now)

	// Upcoming birthdays first, ascending by month/day, then passed ones
	// ascending by month/day.
	assert.Equal(t, []int{2, 4, 3, 1}, []int{sorted[0].ID, sorted[1].ID, sorted[2].ID, sorted[3].ID})

	// Input order is untouched.
	assert.Equal(t, 1, users[0].ID)
}

func TestSortByUpcomingBirthdayTodayCountsAsUpcoming(t *testing.T) {
	now := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)
	users := []store.User{
		{ID: 1, Birthday: "06-14"},
		{ID: 2, Birthday: "06-15"},
	}
	sorted := SortByUpcomingBirthday(users, now)
	assert.Equal(t, 2, sorted[0].ID)
	assert.Equal(t, 1, sorted[1].ID)
}

func TestSortByUpcomingBirthdayBadFormatSortsLast(t *testing.T) {
	now := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)
	users := []store.User{
		{ID: 1, Birthday: "not-a-date"},
		{ID: 2, Birthday: "07-01"},
	}
	sorted := SortByUpcomingBirthday(users, now)
	assert.Equal(t, 2, sorted[0].ID)
}

func TestIsBirthdayToday(t *testing.T) {
	now := time.Date(2025, 6, 15, 23, 0, 0, 0, time.UTC)
	assert.True(t, IsBirthdayToday("06-15", now))
	assert.False(t, IsBirthdayToday("06-16", now))
	assert.False(t, IsBirthdayToday("garbage", now))
}
