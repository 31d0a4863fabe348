package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripmate/store/sqlite"
	st "tripmate/store/store"
	"tripmate/trip"
)

func open(t *testing.T, path string) *sqlite.SQLiteTripStoreWrapper {
	t.Helper()
	w, err := sqlite.New(path, trip.DefaultSeed())
	require.NoError(t, err)
	return w
}

func TestSeedAppliedExactlyOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trip.db")
	ctx := context.Background()

	// Test 1: a fresh database gets the seed.
	w := open(t, path)
	users, err := w.ListUsers(ctx)
	assert.NoError(t, err)
	assert.Len(t, users, 12)
	places, err := w.ListPlaces(ctx)
	assert.NoError(t, err)
	assert.Len(t, places, 4)

	// Remove a seeded place so we can tell a re-seed from a no-op.
	assert.NoError(t, w.DeletePlace(ctx, places[0].ID))
	require.NoError(t, w.Close())

	// Test 2: reopening must not reapply the seed.
	w = open(t, path)
	defer w.Close()
	places, err = w.ListPlaces(ctx)
	assert.NoError(t, err)
	assert.Len(t, places, 3)
	users, err = w.ListUsers(ctx)
	assert.NoError(t, err)
	assert.Len(t, users, 12)
}

func TestExpenseRoundTrip(t *testing.T) {
	w := open(t, filepath.Join(t.TempDir(), "trip.db"))
	defer w.Close()
	ctx := context.Background()

	e := st.Expense{
		ID:          uuid.New(),
		UserID:      1,
		Description: "Lunch",
		Amount:      250,
		Date:        time.Date(2025, 11, 14, 13, 0, 0, 0, time.UTC),
		Category:    st.CategoryFood,
	}
	require.NoError(t, w.AppendExpense(ctx, e))

	got, err := w.GetExpense(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, e.Description, got.Description)
	assert.InDelta(t, e.Amount, got.Amount, 1e-9)
	assert.Equal(t, e.Category, got.Category)
	assert.True(t, e.Date.Equal(got.Date))

	assert.NoError(t, w.DeleteExpense(ctx, e.ID))
	assert.ErrorIs(t, w.DeleteExpense(ctx, e.ID), st.ErrNotFound)
}

func TestPhotosNewestFirst(t *testing.T) {
	w := open(t, filepath.Join(t.TempDir(), "trip.db"))
	defer w.Close()
	ctx := context.Background()

	base := time.Date(2025, 11, 14, 8, 0, 0, 0, time.UTC)
	require.NoError(t, w.AppendPhoto(ctx, st.Photo{ID: uuid.New(), UserID: 1, Caption: "old", CreatedAt: base}))
	require.NoError(t, w.AppendPhoto(ctx, st.Photo{ID: uuid.New(), UserID: 2, Caption: "new", CreatedAt: base.Add(time.Hour)}))

	photos, err := w.ListPhotos(ctx)
	require.NoError(t, err)
	require.Len(t, photos, 2)
	assert.Equal(t, "new", photos[0].Caption)
	assert.Equal(t, "old", photos[1].Caption)
}

func TestPlaceInfoCacheSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trip.db")
	ctx := context.Background()

	w := open(t, path)
	places, err := w.ListPlaces(ctx)
	require.NoError(t, err)
	target := places[0]

	sources := []st.Source{
		{URI: "https://example.com", Title: "Example", Type: st.SourceWeb},
		{URI: "https://maps.example.com", Title: "Example Maps", Type: st.SourceMap},
	}
	_, err = w.SavePlaceInfo(ctx, target.ID, "worth the walk", sources)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	w = open(t, path)
	defer w.Close()
	got, err := w.GetPlace(ctx, target.ID)
	require.NoError(t, err)
	assert.Equal(t, "worth the walk", got.Description)
	assert.Equal(t, sources, got.Sources)
}

func TestToggleTodoTwiceRestoresState(t *testing.T) {
	w := open(t, filepath.Join(t.TempDir(), "trip.db"))
	defer w.Close()
	ctx := context.Background()

	todo := st.Todo{ID: uuid.New(), Text: "book cab"}
	require.NoError(t, w.AppendTodo(ctx, todo))

	once, err := w.ToggleTodo(ctx, todo.ID)
	require.NoError(t, err)
	assert.True(t, once.Completed)

	twice, err := w.ToggleTodo(ctx, todo.ID)
	require.NoError(t, err)
	assert.False(t, twice.Completed)

	_, err = w.ToggleTodo(ctx, uuid.New())
	assert.ErrorIs(t, err, st.ErrNotFound)
}

func TestMetaUpsert(t *testing.T) {
	w := open(t, filepath.Join(t.TempDir(), "trip.db"))
	defer w.Close()
	ctx := context.Background()

	_, ok, err := w.GetMeta(ctx, "morning_quote_date")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, w.SetMeta(ctx, "morning_quote_date", "2025-11-13"))
	require.NoError(t, w.SetMeta(ctx, "morning_quote_date", "2025-11-14"))

	v, ok, err := w.GetMeta(ctx, "morning_quote_date")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "2025-11-14", v)
}
