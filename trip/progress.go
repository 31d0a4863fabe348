package trip

import (
	"time"

	store "tripmate/store/store"
)

// Progress counts how far through the itinerary the trip is.
type Progress struct {
	Completed int `json:"completed"`
	Total     int `json:"total"`
}

// Status is the Home view's derived state for a given day.
type Status struct {
	Started       bool                `json:"started"`
	DaysUntilTrip int                 `json:"daysUntilTrip"`
	Today         *store.ItineraryDay `json:"today,omitempty"`
	Progress      Progress            `json:"progress"`
}

const dayFormat = "2006-01-02"

// StatusAt derives the Home view state for the given moment against the
// fixed itinerary. Before the first day it reports a countdown; afterwards
// it reports today's plan (nil on free days) and the day-count progress.
func StatusAt(now time.Time, itinerary []store.ItineraryDay) Status {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	st := Status{Progress: Progress{Total: len(itinerary)}}
	if len(itinerary) == 0 {
		st.Started = true
		return st
	}

	start, err := time.Parse(dayFormat, itinerary[0].Date)
	if err != nil {
		st.Started = true
		return st
	}

	for i := range itinerary {
		d, err := time.Parse(dayFormat, itinerary[i].Date)
		if err != nil {
			continue
		}
		if d.Before(today) {
			st.Progress.Completed++
		}
		if d.Equal(today) {
			st.Today = &itinerary[i]
		}
	}

	if today.Before(start) {
		st.DaysUntilTrip = int(start.Sub(today).Hours() / 24)
		st.Today = nil
		return st
	}
	st.Started = true
	return st
}
