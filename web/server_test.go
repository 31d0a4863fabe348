package web_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripmate/gateway"
	"tripmate/mq/goch"
	"tripmate/store/mem"
	st "tripmate/store/store"
	"tripmate/trip"
	"tripmate/web"
)

// stubGateway counts calls and returns canned values, standing in for
// the generative service.
type stubGateway struct {
	placeInfoCalls int
}

func (g *stubGateway) PlaceInfo(_ context.Context, placeName string) gateway.Info {
	g.placeInfoCalls++
	return gateway.Info{
		Text:    "A lovely spot called " + placeName + ".",
		Sources: []st.Source{{URI: "https://example.com", Title: "Guide", Type: st.SourceWeb}},
	}
}

func (g *stubGateway) TravelTips(context.Context) gateway.Info {
	return gateway.Info{Text: "Pack layers.", Sources: []st.Source{}}
}

func (g *stubGateway) ExtractLocations(context.Context, string) []string {
	return []string{"Hadimba Temple", "Mall Road"}
}

func (g *stubGateway) CaptionImage(context.Context, string, string) string {
	return "Mountain therapy"
}

func (g *stubGateway) CaptionChoices(context.Context, string, string) []string {
	return []string{"One", "Two", "Three"}
}

type testEnv struct {
	router *gin.Engine
	store  st.TripStoreWrapper
	ai     *stubGateway
}

func setupTest(t *testing.T) *testEnv {
	return setupTestAt(t, time.Now())
}

// setupTestAt pins the server clock so date-dependent views can be
// asserted against a fixed day.
func setupTestAt(t *testing.T, now time.Time) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := mem.NewInMemoryTripStoreWrapper(trip.DefaultSeed())
	t.Cleanup(func() { _ = store.Close() })
	queue := goch.NewGoChanTripMessageQueueWrapper()
	t.Cleanup(queue.Close)

	ai := &stubGateway{}
	server := web.NewServer(store, queue, ai, web.WithClock(func() time.Time { return now }))
	return &testEnv{
		router: server.Router(web.ServiceConfig{IsDev: true}),
		store:  store,
		ai:     ai,
	}
}

// do issues a request as the given user and decodes the JSON reply into out.
func (e *testEnv) do(t *testing.T, method, path string, userID int, body any, out any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if userID > 0 {
		req.Header.Set("X-User-ID", fmt.Sprintf("%d", userID))
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	if out != nil && w.Code < 300 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
	}
	return w
}

func TestHealth(t *testing.T) {
	env := setupTest(t)
	w := env.do(t, http.MethodGet, "/health", 0, nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAddExpenseEndToEnd(t *testing.T) {
	env := setupTest(t)

	// Test 1: adding {Lunch, 250, Food} succeeds for the session user
	var created st.Expense
	w := env.do(t, http.MethodPost, "/api/expenses", 1, gin.H{
		"description": "Lunch",
		"amount":      250,
		"category":    "Food",
	}, &created)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, 1, created.UserID)
	assert.Equal(t, 250.0, created.Amount)

	// Test 2: the personal view total grows by 250 and Food is the full bar
	var view struct {
		Expenses  []st.Expense         `json:"expenses"`
		Total     float64              `json:"total"`
		Breakdown []trip.CategoryShare `json:"breakdown"`
	}
	w = env.do(t, http.MethodGet, "/api/expenses?scope=personal", 1, nil, &view)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 250.0, view.Total)
	assert.Len(t, view.Breakdown, 1)
	assert.Equal(t, st.CategoryFood, view.Breakdown[0].Category)
	assert.Equal(t, 100.0, view.Breakdown[0].Percent)

	// Test 3: another user's personal view stays empty
	w = env.do(t, http.MethodGet, "/api/expenses?scope=personal", 2, nil, &view)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0.0, view.Total)
}

func TestExpenseValidation(t *testing.T) {
	env := setupTest(t)

	// Test 1: non-positive amount rejected
	w := env.do(t, http.MethodPost, "/api/expenses", 1, gin.H{
		"description": "Bad", "amount": -5, "category": "Food",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Test 2: unknown category rejected
	w = env.do(t, http.MethodPost, "/api/expenses", 1, gin.H{
		"description": "Bad", "amount": 10, "category": "Bribes",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Test 3: missing description rejected
	w = env.do(t, http.MethodPost, "/api/expenses", 1, gin.H{
		"amount": 10, "category": "Food",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteExpenseOwnerOnly(t *testing.T) {
	env := setupTest(t)

	var created st.Expense
	env.do(t, http.MethodPost, "/api/expenses", 1, gin.H{
		"description": "Cab", "amount": 300, "category": "Travel",
	}, &created)

	// Test 1: another user may not delete it
	w := env.do(t, http.MethodDelete, "/api/expenses/"+created.ID.String(), 2, nil, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Test 2: the owner may
	w = env.do(t, http.MethodDelete, "/api/expenses/"+created.ID.String(), 1, nil, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	// Test 3: deleting it again is a 404
	w = env.do(t, http.MethodDelete, "/api/expenses/"+created.ID.String(), 1, nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSettlement(t *testing.T) {
	env := setupTest(t)

	env.do(t, http.MethodPost, "/api/expenses", 1, gin.H{
		"description": "Hotel", "amount": 1200, "category": "Accommodation",
	}, nil)

	// Test 1: the payer ends up owed money and transfers flow toward them
	var out struct {
		Balances  []trip.Balance  `json:"balances"`
		Transfers []trip.Transfer `json:"transfers"`
	}
	w := env.do(t, http.MethodGet, "/api/expenses/settlement", 1, nil, &out)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, out.Transfers)
	for _, transfer := range out.Transfers {
		assert.Equal(t, 1, transfer.ToID)
		assert.Greater(t, transfer.Amount, 0.0)
	}
}

func TestPlaceInfoCaching(t *testing.T) {
	env := setupTest(t)

	var places []st.Place
	env.do(t, http.MethodGet, "/api/places", 1, nil, &places)
	require.NotEmpty(t, places)
	target := places[0]

	// Test 1: the first fetch calls the gateway and caches the result
	var info struct {
		Text   string `json:"text"`
		Cached bool   `json:"cached"`
	}
	w := env.do(t, http.MethodGet, "/api/places/"+target.ID.String()+"/info", 1, nil, &info)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.False(t, info.Cached)
	assert.Equal(t, 1, env.ai.placeInfoCalls)

	// Test 2: the second fetch is served from the record
	w = env.do(t, http.MethodGet, "/api/places/"+target.ID.String()+"/info", 1, nil, &info)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, info.Cached)
	assert.Equal(t, 1, env.ai.placeInfoCalls)
}

func TestTogglePlaceVisitedTwice(t *testing.T) {
	env := setupTest(t)

	var places []st.Place
	env.do(t, http.MethodGet, "/api/places", 1, nil, &places)
	require.NotEmpty(t, places)
	target := places[0]

	// Test 1: two toggles return the place to its original state
	var toggled st.Place
	env.do(t, http.MethodPost, "/api/places/"+target.ID.String()+"/visited", 1, nil, &toggled)
	assert.Equal(t, !target.Visited, toggled.Visited)
	env.do(t, http.MethodPost, "/api/places/"+target.ID.String()+"/visited", 1, nil, &toggled)
	assert.Equal(t, target.Visited, toggled.Visited)
}

func TestPlaceMapLinks(t *testing.T) {
	env := setupTest(t)

	type place struct {
		st.Place
		MapLink string `json:"mapLink"`
	}

	// Test 1: seeded places carry a map search URL built from their coordinates
	var places []place
	w := env.do(t, http.MethodGet, "/api/places", 1, nil, &places)
	assert.Equal(t, http.StatusOK, w.Code)
	require.NotEmpty(t, places)
	byName := map[string]place{}
	for _, p := range places {
		assert.NotEmpty(t, p.MapLink, p.Name)
		byName[p.Name] = p
	}
	assert.Equal(t,
		"https://www.google.com/maps/search/?api=1&query=32.2427,77.189",
		byName["Johnson's Cafe"].MapLink)

	// Test 2: a place added without coordinates gets no link
	var created place
	w = env.do(t, http.MethodPost, "/api/places", 1, gin.H{"name": "Old Manali Bridge"}, &created)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Empty(t, created.MapLink)

	env.do(t, http.MethodGet, "/api/places", 1, nil, &places)
	for _, p := range places {
		if p.ID == created.ID {
			assert.Empty(t, p.MapLink)
		}
	}
}

func TestTodoLifecycle(t *testing.T) {
	env := setupTest(t)

	// Test 1: add
	var todo st.Todo
	w := env.do(t, http.MethodPost, "/api/todos", 1, gin.H{"text": "Book paragliding"}, &todo)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.False(t, todo.Completed)

	// Test 2: toggle marks it done
	var toggled st.Todo
	env.do(t, http.MethodPost, "/api/todos/"+todo.ID.String()+"/toggle", 1, nil, &toggled)
	assert.True(t, toggled.Completed)

	// Test 3: delete then toggle is a 404
	w = env.do(t, http.MethodDelete, "/api/todos/"+todo.ID.String(), 1, nil, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = env.do(t, http.MethodPost, "/api/todos/"+todo.ID.String()+"/toggle", 1, nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestChatConversation(t *testing.T) {
	env := setupTest(t)

	// Test 1: user 1 writes to user 2, user 2 answers
	w := env.do(t, http.MethodPost, "/api/chat/2", 1, gin.H{"text": "Reached the hotel?"}, nil)
	assert.Equal(t, http.StatusCreated, w.Code)
	w = env.do(t, http.MethodPost, "/api/chat/1", 2, gin.H{"text": "Just now!"}, nil)
	assert.Equal(t, http.StatusCreated, w.Code)

	// Test 2: both directions appear, oldest first, for either participant
	var conversation []st.Message
	env.do(t, http.MethodGet, "/api/chat/2", 1, nil, &conversation)
	require.Len(t, conversation, 2)
	assert.Equal(t, "Reached the hotel?", conversation[0].Text)
	assert.Equal(t, "Just now!", conversation[1].Text)

	var mirrored []st.Message
	env.do(t, http.MethodGet, "/api/chat/1", 2, nil, &mirrored)
	assert.Equal(t, conversation, mirrored)

	// Test 3: an uninvolved pair sees nothing
	var empty []st.Message
	env.do(t, http.MethodGet, "/api/chat/4", 3, nil, &empty)
	assert.Empty(t, empty)
}

func TestPhotoAutoCaption(t *testing.T) {
	env := setupTest(t)

	// Test 1: an omitted caption is filled in from the gateway
	var photo st.Photo
	w := env.do(t, http.MethodPost, "/api/photos", 1, gin.H{
		"data": "aGVsbG8=", "mime": "image/jpeg",
	}, &photo)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "Mountain therapy", photo.Caption)

	// Test 2: a user-entered caption wins over generation
	w = env.do(t, http.MethodPost, "/api/photos", 1, gin.H{
		"data": "aGVsbG8=", "mime": "image/jpeg", "caption": "Our cabin",
	}, &photo)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "Our cabin", photo.Caption)

	// Test 3: the list comes back newest first
	var photos []st.Photo
	env.do(t, http.MethodGet, "/api/photos", 1, nil, &photos)
	require.Len(t, photos, 2)
	assert.Equal(t, "Our cabin", photos[0].Caption)
}

func TestCaptionChoices(t *testing.T) {
	env := setupTest(t)

	var out struct {
		Choices []string `json:"choices"`
	}
	w := env.do(t, http.MethodPost, "/api/photos/captions", 1, gin.H{
		"data": "aGVsbG8=", "mime": "image/png",
	}, &out)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"One", "Two", "Three"}, out.Choices)
}

func TestFriendsSortedByUpcomingBirthday(t *testing.T) {
	env := setupTestAt(t, time.Date(2026, time.May, 20, 10, 0, 0, 0, time.UTC))

	type friend struct {
		st.User
		BirthdayToday bool `json:"birthdayToday"`
	}

	// Test 1: full seeded roster, upcoming birthdays first
	var friends []friend
	w := env.do(t, http.MethodGet, "/api/friends", 1, nil, &friends)
	assert.Equal(t, http.StatusOK, w.Code)
	require.Len(t, friends, 12)
	assert.Equal(t, "Aarav", friends[0].Name)
	assert.Equal(t, "Sai", friends[11].Name)

	// Test 2: the member whose birthday falls today is flagged, nobody else
	assert.True(t, friends[0].BirthdayToday)
	for _, f := range friends[1:] {
		assert.False(t, f.BirthdayToday, f.Name)
	}

	// Test 3: avatar replacement round-trips
	var updated st.User
	w = env.do(t, http.MethodPut, fmt.Sprintf("/api/friends/%d/avatar", friends[0].ID), 1,
		gin.H{"avatar": "data:image/png;base64,aGVsbG8="}, &updated)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "data:image/png;base64,aGVsbG8=", updated.Avatar)

	// Test 4: unknown user is a 404
	w = env.do(t, http.MethodPut, "/api/friends/999/avatar", 1, gin.H{"avatar": "x"}, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHomeAndItinerary(t *testing.T) {
	env := setupTest(t)

	// Test 1: home status renders
	var status trip.Status
	w := env.do(t, http.MethodGet, "/api/home", 1, nil, &status)
	assert.Equal(t, http.StatusOK, w.Code)

	// Test 2: all eight itinerary days are served
	var days []st.ItineraryDay
	env.do(t, http.MethodGet, "/api/itinerary", 1, nil, &days)
	assert.Len(t, days, 8)

	// Test 3: day locations come from the extraction gateway
	var locations struct {
		Locations []string `json:"locations"`
	}
	w = env.do(t, http.MethodGet, "/api/itinerary/1/locations", 1, nil, &locations)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"Hadimba Temple", "Mall Road"}, locations.Locations)

	// Test 4: an unknown day is a 404
	w = env.do(t, http.MethodGet, "/api/itinerary/42/locations", 1, nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTips(t *testing.T) {
	env := setupTest(t)

	var info gateway.Info
	w := env.do(t, http.MethodGet, "/api/tips", 1, nil, &info)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Pack layers.", info.Text)
}
