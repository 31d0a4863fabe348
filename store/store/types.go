package store

import (
	"time"

	"github.com/google/uuid"
)

// ExpenseCategory is the spending bucket for an expense.
type ExpenseCategory string

const (
	CategoryFood          ExpenseCategory = "Food"
	CategoryTravel        ExpenseCategory = "Travel"
	CategoryAccommodation ExpenseCategory = "Accommodation"
	CategoryActivities    ExpenseCategory = "Activities"
	CategoryOther         ExpenseCategory = "Other"
)

// Categories lists every valid expense category in display order.
func Categories() []ExpenseCategory {
	return []ExpenseCategory{
		CategoryFood, CategoryTravel, CategoryAccommodation, CategoryActivities, CategoryOther,
	}
}

// Valid reports whether c is one of the known categories.
func (c ExpenseCategory) Valid() bool {
	switch c {
	case CategoryFood, CategoryTravel, CategoryAccommodation, CategoryActivities, CategoryOther:
		return true
	}
	return false
}

// PlaceCategory distinguishes cafes from general sights in the planner.
type PlaceCategory string

const (
	PlaceCafe    PlaceCategory = "cafe"
	PlaceGeneric PlaceCategory = "place"
)

// SourceType tags where a grounding citation came from, for icon selection.
type SourceType string

const (
	SourceWeb SourceType = "web"
	SourceMap SourceType = "map"
)

// Source is one grounding citation attached to an AI-generated description.
type Source struct {
	URI   string     `json:"uri"`
	Title string     `json:"title"`
	Type  SourceType `json:"type"`
}

// User is a roster member. Only the avatar is mutable.
type User struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Avatar   string `json:"avatar"`
	Birthday string `json:"birthday"` // MM-DD
}

// ItineraryDay is one day of the fixed trip plan. Defined at build time,
// never persisted.
type ItineraryDay struct {
	Day      int    `json:"day"`
	Date     string `json:"date"` // YYYY-MM-DD
	Title    string `json:"title"`
	MealPlan string `json:"mealPlan"`
	Details  string `json:"details"`
	Image    string `json:"image"`
	City     string `json:"city"`
}

// Expense is one logged spend, owned by the user who created it.
type Expense struct {
	ID          uuid.UUID       `json:"id"`
	UserID      int             `json:"userId"`
	Description string          `json:"description"`
	Amount      float64         `json:"amount"`
	Date        time.Time       `json:"date"`
	Category    ExpenseCategory `json:"category"`
}

// Photo is one shared picture. Data holds the base64-encoded image bytes.
type Photo struct {
	ID        uuid.UUID `json:"id"`
	UserID    int       `json:"userId"`
	Data      string    `json:"data"`
	Mime      string    `json:"mime"`
	Caption   string    `json:"caption"`
	CreatedAt time.Time `json:"createdAt"`
}

// Message is one direct message, immutable once sent. Timestamp is unix
// milliseconds so conversation ordering survives JSON round trips.
type Message struct {
	ID         uuid.UUID `json:"id"`
	SenderID   int       `json:"senderId"`
	ReceiverID int       `json:"receiverId"`
	Text       string    `json:"text"`
	Timestamp  int64     `json:"timestamp"`
}

// Todo is a shared checklist entry; anyone may toggle or delete it.
type Todo struct {
	ID        uuid.UUID `json:"id"`
	Text      string    `json:"text"`
	Completed bool      `json:"completed"`
}

// Place is a must-visit entry in the planner. Description and Sources cache
// the AI gateway result after the first fetch; they stay empty until then.
type Place struct {
	ID          uuid.UUID     `json:"id"`
	Name        string        `json:"name"`
	Category    PlaceCategory `json:"category"`
	Visited     bool          `json:"visited"`
	Lat         *float64      `json:"lat,omitempty"`
	Lng         *float64      `json:"lng,omitempty"`
	Description string        `json:"description,omitempty"`
	Sources     []Source      `json:"sources,omitempty"`
}

// HasCoords reports whether the place can be linked on an external map.
func (p *Place) HasCoords() bool {
	return p.Lat != nil && p.Lng != nil
}

// Seed is the initial dataset applied exactly once to an empty store.
type Seed struct {
	Users  []User
	Places []Place
}
