package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a referenced record does not exist.
var ErrNotFound = errors.New("record not found")

type UserRepo interface {
	ListUsers(ctx context.Context) ([]User, error)
	GetUser(ctx context.Context, id int) (*User, error)
	UpdateUserAvatar(ctx context.Context, id int, avatar string) error
}

type ExpenseRepo interface {
	ListExpenses(ctx context.Context) ([]Expense, error)
	GetExpense(ctx context.Context, id uuid.UUID) (*Expense, error)
	AppendExpense(ctx context.Context, e Expense) error
	DeleteExpense(ctx context.Context, id uuid.UUID) error
}

type PhotoRepo interface {
	// ListPhotos returns photos newest first.
	ListPhotos(ctx context.Context) ([]Photo, error)
	AppendPhoto(ctx context.Context, p Photo) error
}

type MessageRepo interface {
	ListMessages(ctx context.Context) ([]Message, error)
	AppendMessage(ctx context.Context, m Message) error
}

type TodoRepo interface {
	ListTodos(ctx context.Context) ([]Todo, error)
	AppendTodo(ctx context.Context, t Todo) error
	// ToggleTodo flips the completed flag and returns the updated record.
	ToggleTodo(ctx context.Context, id uuid.UUID) (*Todo, error)
	DeleteTodo(ctx context.Context, id uuid.UUID) error
}

type PlaceRepo interface {
	ListPlaces(ctx context.Context) ([]Place, error)
	GetPlace(ctx context.Context, id uuid.UUID) (*Place, error)
	AppendPlace(ctx context.Context, p Place) error
	// TogglePlaceVisited flips the visited flag and returns the updated record.
	TogglePlaceVisited(ctx context.Context, id uuid.UUID) (*Place, error)
	// SavePlaceInfo caches an AI description and its citations on the place.
	SavePlaceInfo(ctx context.Context, id uuid.UUID, description string, sources []Source) (*Place, error)
	DeletePlace(ctx context.Context, id uuid.UUID) error
}

// MetaRepo is a small key-value bag for bookkeeping values that are not
// entities, like the morning-quote dedupe date and the seed marker.
type MetaRepo interface {
	GetMeta(ctx context.Context, key string) (string, bool, error)
	SetMeta(ctx context.Context, key, value string) error
}

// TripStoreWrapper aggregates the per-entity repositories behind one handle.
// Implementations live in store/mem, store/sqlite and store/pg.
type TripStoreWrapper interface {
	UserRepo
	ExpenseRepo
	PhotoRepo
	MessageRepo
	TodoRepo
	PlaceRepo
	MetaRepo
	Close() error
}
