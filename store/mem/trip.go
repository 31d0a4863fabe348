package mem

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	st "tripmate/store/store"
)

// inMemoryTripStoreWrapper is an in-memory implementation of
// st.TripStoreWrapper. It keeps every collection in maps or slices guarded
// by a single mutex and hands out copies so callers cannot mutate shared
// state behind the lock.
type inMemoryTripStoreWrapper struct {
	users    map[int]*st.User
	expenses []st.Expense
	photos   []st.Photo
	messages []st.Message
	todos    []st.Todo
	places   []st.Place
	meta     map[string]string

	mu sync.RWMutex
}

// NewInMemoryTripStoreWrapper creates a store pre-populated with the given
// seed. The seed is applied once at construction; an in-memory store has no
// prior state to preserve.
func NewInMemoryTripStoreWrapper(seed st.Seed) st.TripStoreWrapper {
	w := &inMemoryTripStoreWrapper{
		users: make(map[int]*st.User),
		meta:  make(map[string]string),
	}
	for _, u := range seed.Users {
		uCopy := u
		w.users[u.ID] = &uCopy
	}
	w.places = append(w.places, seed.Places...)
	return w
}

func (w *inMemoryTripStoreWrapper) Close() error { return nil }

// --- users ---

func (w *inMemoryTripStoreWrapper) ListUsers(_ context.Context) ([]st.User, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	users := make([]st.User, 0, len(w.users))
	for _, u := range w.users {
		users = append(users, *u)
	}
	return users, nil
}

func (w *inMemoryTripStoreWrapper) GetUser(_ context.Context, id int) (*st.User, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	u, exists := w.users[id]
	if !exists {
		return nil, fmt.Errorf("user %d: %w", id, st.ErrNotFound)
	}
	uCopy := *u
	return &uCopy, nil
}

func (w *inMemoryTripStoreWrapper) UpdateUserAvatar(_ context.Context, id int, avatar string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	u, exists := w.users[id]
	if !exists {
		return fmt.Errorf("user %d: %w", id, st.ErrNotFound)
	}
	u.Avatar = avatar
	return nil
}

// --- expenses ---

func (w *inMemoryTripStoreWrapper) ListExpenses(_ context.Context) ([]st.Expense, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	out := make([]st.Expense, len(w.expenses))
	copy(out, w.expenses)
	return out, nil
}

func (w *inMemoryTripStoreWrapper) GetExpense(_ context.Context, id uuid.UUID) (*st.Expense, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	for i := range w.expenses {
		if w.expenses[i].ID == id {
			eCopy := w.expenses[i]
			return &eCopy, nil
		}
	}
	return nil, fmt.Errorf("expense %s: %w", id, st.ErrNotFound)
}

func (w *inMemoryTripStoreWrapper) AppendExpense(_ context.Context, e st.Expense) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.expenses = append(w.expenses, e)
	return nil
}

func (w *inMemoryTripStoreWrapper) DeleteExpense(_ context.Context, id uuid.UUID) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	for i := range w.expenses {
		if w.expenses[i].ID == id {
			w.expenses = append(w.expenses[:i], w.expenses[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("expense %s: %w", id, st.ErrNotFound)
}

// --- photos ---

func (w *inMemoryTripStoreWrapper) ListPhotos(_ context.Context) ([]st.Photo, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	// Newest first: photos are appended in arrival order.
	out := make([]st.Photo, 0, len(w.photos))
	for i := len(w.photos) - 1; i >= 0; i-- {
		out = append(out, w.photos[i])
	}
	return out, nil
}

func (w *inMemoryTripStoreWrapper) AppendPhoto(_ context.Context, p st.Photo) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.photos = append(w.photos, p)
	return nil
}

// --- messages ---

func (w *inMemoryTripStoreWrapper) ListMessages(_ context.Context) ([]st.Message, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	out := make([]st.Message, len(w.messages))
	copy(out, w.messages)
	return out, nil
}

func (w *inMemoryTripStoreWrapper) AppendMessage(_ context.Context, m st.Message) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.messages = append(w.messages, m)
	return nil
}

// --- todos ---

func (w *inMemoryTripStoreWrapper) ListTodos(_ context.Context) ([]st.Todo, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	out := make([]st.Todo, len(w.todos))
	copy(out, w.todos)
	return out, nil
}

func (w *inMemoryTripStoreWrapper) AppendTodo(_ context.Context, t st.Todo) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.todos = append(w.todos, t)
	return nil
}

func (w *inMemoryTripStoreWrapper) ToggleTodo(_ context.Context, id uuid.UUID) (*st.Todo, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	for i := range w.todos {
		if w.todos[i].ID == id {
			w.todos[i].Completed = !w.todos[i].Completed
			tCopy := w.todos[i]
			return &tCopy, nil
		}
	}
	return nil, fmt.Errorf("todo %s: %w", id, st.ErrNotFound)
}

func (w *inMemoryTripStoreWrapper) DeleteTodo(_ context.Context, id uuid.UUID) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	for i := range w.todos {
		if w.todos[i].ID == id {
			w.todos = append(w.todos[:i], w.todos[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("todo %s: %w", id, st.ErrNotFound)
}

// --- places ---

func (w *inMemoryTripStoreWrapper) ListPlaces(_ context.Context) ([]st.Place, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	out := make([]st.Place, len(w.places))
	copy(out, w.places)
	return out, nil
}

func (w *inMemoryTripStoreWrapper) GetPlace(_ context.Context, id uuid.UUID) (*st.Place, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	for i := range w.places {
		if w.places[i].ID == id {
			pCopy := w.places[i]
			return &pCopy, nil
		}
	}
	return nil, fmt.Errorf("place %s: %w", id, st.ErrNotFound)
}

func (w *inMemoryTripStoreWrapper) AppendPlace(_ context.Context, p st.Place) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.places = append(w.places, p)
	return nil
}

func (w *inMemoryTripStoreWrapper) TogglePlaceVisited(_ context.Context, id uuid.UUID) (*st.Place, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	for i := range w.places {
		if w.places[i].ID == id {
			w.places[i].Visited = !w.places[i].Visited
			pCopy := w.places[i]
			return &pCopy, nil
		}
	}
	return nil, fmt.Errorf("place %s: %w", id, st.ErrNotFound)
}

func (w *inMemoryTripStoreWrapper) SavePlaceInfo(_ context.Context, id uuid.UUID, description string, sources []st.Source) (*st.Place, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	for i := range w.places {
		if w.places[i].ID == id {
			w.places[i].Description = description
			w.places[i].Sources = append([]st.Source(nil), sources...)
			pCopy := w.places[i]
			return &pCopy, nil
		}
	}
	return nil, fmt.Errorf("place %s: %w", id, st.ErrNotFound)
}

func (w *inMemoryTripStoreWrapper) DeletePlace(_ context.Context, id uuid.UUID) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	for i := range w.places {
		if w.places[i].ID == id {
			w.places = append(w.places[:i], w.places[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("place %s: %w", id, st.ErrNotFound)
}

// --- meta ---

func (w *inMemoryTripStoreWrapper) GetMeta(_ context.Context, key string) (string, bool, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	v, ok := w.meta[key]
	return v, ok, nil
}

func (w *inMemoryTripStoreWrapper) SetMeta(_ context.Context, key, value string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.meta[key] = value
	return nil
}
