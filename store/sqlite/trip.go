// Package sqlite provides the default local durable implementation of
// st.TripStoreWrapper, backed by a single database file.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // pure Go driver, no CGO

	st "tripmate/store/store"
)

// Ensure SQLiteTripStoreWrapper implements st.TripStoreWrapper
var _ st.TripStoreWrapper = (*SQLiteTripStoreWrapper)(nil)

const seededKey = "seeded_v1"

// SQLiteTripStoreWrapper implements st.TripStoreWrapper on a local sqlite
// database file.
type SQLiteTripStoreWrapper struct {
	db *sql.DB
}

// New opens (creating if needed) the database at dbPath, runs migrations and
// applies the seed exactly once. Reopening an already-seeded database never
// reapplies the seed, even if every seeded row was deleted since.
func New(dbPath string, seed st.Seed) (*SQLiteTripStoreWrapper, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	w := &SQLiteTripStoreWrapper{db: db}
	if err := w.applySeedOnce(context.Background(), seed); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to seed database: %w", err)
	}
	return w, nil
}

// Close closes the database connection.
func (w *SQLiteTripStoreWrapper) Close() error {
	return w.db.Close()
}

func (w *SQLiteTripStoreWrapper) applySeedOnce(ctx context.Context, seed st.Seed) error {
	_, done, err := w.GetMeta(ctx, seededKey)
	if err != nil {
		return err
	}
	if done {
		return nil
	}

	tx, err := w.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, u := range seed.Users {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO users (id, name, avatar, birthday) VALUES (?, ?, ?, ?)",
			u.ID, u.Name, u.Avatar, u.Birthday,
		); err != nil {
			return fmt.Errorf("failed to seed user %d: %w", u.ID, err)
		}
	}
	for _, p := range seed.Places {
		if err := insertPlace(ctx, tx, p); err != nil {
			return fmt.Errorf("failed to seed place %q: %w", p.Name, err)
		}
	}
	if _, err := tx.ExecContext(ctx,
		"INSERT INTO meta (key, value) VALUES (?, ?)", seededKey, "1",
	); err != nil {
		return err
	}
	return tx.Commit()
}

// --- users ---

func (w *SQLiteTripStoreWrapper) ListUsers(ctx context.Context) ([]st.User, error) {
	rows, err := w.db.QueryContext(ctx, "SELECT id, name, avatar, birthday FROM users ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []st.User
	for rows.Next() {
		var u st.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Avatar, &u.Birthday); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (w *SQLiteTripStoreWrapper) GetUser(ctx context.Context, id int) (*st.User, error) {
	var u st.User
	err := w.db.QueryRowContext(ctx,
		"SELECT id, name, avatar, birthday FROM users WHERE id = ?", id,
	).Scan(&u.ID, &u.Name, &u.Avatar, &u.Birthday)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("user %d: %w", id, st.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user %d: %w", id, err)
	}
	return &u, nil
}

func (w *SQLiteTripStoreWrapper) UpdateUserAvatar(ctx context.Context, id int, avatar string) error {
	res, err := w.db.ExecContext(ctx, "UPDATE users SET avatar = ? WHERE id = ?", avatar, id)
	if err != nil {
		return fmt.Errorf("failed to update avatar for user %d: %w", id, err)
	}
	return requireRow(res, fmt.Errorf("user %d: %w", id, st.ErrNotFound))
}

// --- expenses ---

func (w *SQLiteTripStoreWrapper) ListExpenses(ctx context.Context) ([]st.Expense, error) {
	rows, err := w.db.QueryContext(ctx,
		"SELECT id, user_id, description, amount, date, category FROM expenses")
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []st.Expense
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, err
		}
		expenses = append(expenses, e)
	}
	return expenses, rows.Err()
}

func (w *SQLiteTripStoreWrapper) GetExpense(ctx context.Context, id uuid.UUID) (*st.Expense, error) {
	row := w.db.QueryRowContext(ctx,
		"SELECT id, user_id, description, amount, date, category FROM expenses WHERE id = ?",
		id.String())
	e, err := scanExpense(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("expense %s: %w", id, st.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get expense %s: %w", id, err)
	}
	return &e, nil
}

func (w *SQLiteTripStoreWrapper) AppendExpense(ctx context.Context, e st.Expense) error {
	_, err := w.db.ExecContext(ctx,
		"INSERT INTO expenses (id, user_id, description, amount, date, category) VALUES (?, ?, ?, ?, ?, ?)",
		e.ID.String(), e.UserID, e.Description, e.Amount, e.Date.UTC().Format(timeFormat), string(e.Category),
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}
	return nil
}

func (w *SQLiteTripStoreWrapper) DeleteExpense(ctx context.Context, id uuid.UUID) error {
	res, err := w.db.ExecContext(ctx, "DELETE FROM expenses WHERE id = ?", id.String())
	if err != nil {
		return fmt.Errorf("failed to delete expense %s: %w", id, err)
	}
	return requireRow(res, fmt.Errorf("expense %s: %w", id, st.ErrNotFound))
}

// --- photos ---

func (w *SQLiteTripStoreWrapper) ListPhotos(ctx context.Context) ([]st.Photo, error) {
	rows, err := w.db.QueryContext(ctx,
		"SELECT id, user_id, data, mime, caption, created_at FROM photos ORDER BY created_at DESC, rowid DESC")
	if err != nil {
		return nil, fmt.Errorf("failed to list photos: %w", err)
	}
	defer rows.Close()

	var photos []st.Photo
	for rows.Next() {
		var p st.Photo
		var id, createdAt string
		if err := rows.Scan(&id, &p.UserID, &p.Data, &p.Mime, &p.Caption, &createdAt); err != nil {
			return nil, err
		}
		if p.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("corrupt photo id %q: %w", id, err)
		}
		if p.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, err
		}
		photos = append(photos, p)
	}
	return photos, rows.Err()
}

func (w *SQLiteTripStoreWrapper) AppendPhoto(ctx context.Context, p st.Photo) error {
	_, err := w.db.ExecContext(ctx,
		"INSERT INTO photos (id, user_id, data, mime, caption, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		p.ID.String(), p.UserID, p.Data, p.Mime, p.Caption, p.CreatedAt.UTC().Format(timeFormat),
	)
	if err != nil {
		return fmt.Errorf("failed to insert photo: %w", err)
	}
	return nil
}

// --- messages ---

func (w *SQLiteTripStoreWrapper) ListMessages(ctx context.Context) ([]st.Message, error) {
	rows, err := w.db.QueryContext(ctx,
		"SELECT id, sender_id, receiver_id, text, timestamp FROM messages")
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	defer rows.Close()

	var messages []st.Message
	for rows.Next() {
		var m st.Message
		var id string
		if err := rows.Scan(&id, &m.SenderID, &m.ReceiverID, &m.Text, &m.Timestamp); err != nil {
			return nil, err
		}
		if m.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("corrupt message id %q: %w", id, err)
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

func (w *SQLiteTripStoreWrapper) AppendMessage(ctx context.Context, m st.Message) error {
	_, err := w.db.ExecContext(ctx,
		"INSERT INTO messages (id, sender_id, receiver_id, text, timestamp) VALUES (?, ?, ?, ?, ?)",
		m.ID.String(), m.SenderID, m.ReceiverID, m.Text, m.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("failed to insert message: %w", err)
	}
	return nil
}

// --- todos ---

func (w *SQLiteTripStoreWrapper) ListTodos(ctx context.Context) ([]st.Todo, error) {
	rows, err := w.db.QueryContext(ctx, "SELECT id, text, completed FROM todos ORDER BY rowid")
	if err != nil {
		return nil, fmt.Errorf("failed to list todos: %w", err)
	}
	defer rows.Close()

	var todos []st.Todo
	for rows.Next() {
		var t st.Todo
		var id string
		if err := rows.Scan(&id, &t.Text, &t.Completed); err != nil {
			return nil, err
		}
		if t.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("corrupt todo id %q: %w", id, err)
		}
		todos = append(todos, t)
	}
	return todos, rows.Err()
}

func (w *SQLiteTripStoreWrapper) AppendTodo(ctx context.Context, t st.Todo) error {
	_, err := w.db.ExecContext(ctx,
		"INSERT INTO todos (id, text, completed) VALUES (?, ?, ?)",
		t.ID.String(), t.Text, t.Completed,
	)
	if err != nil {
		return fmt.Errorf("failed to insert todo: %w", err)
	}
	return nil
}

func (w *SQLiteTripStoreWrapper) ToggleTodo(ctx context.Context, id uuid.UUID) (*st.Todo, error) {
	res, err := w.db.ExecContext(ctx,
		"UPDATE todos SET completed = NOT completed WHERE id = ?", id.String())
	if err != nil {
		return nil, fmt.Errorf("failed to toggle todo %s: %w", id, err)
	}
	if err := requireRow(res, fmt.Errorf("todo %s: %w", id, st.ErrNotFound)); err != nil {
		return nil, err
	}

	var t st.Todo
	var rawID string
	err = w.db.QueryRowContext(ctx,
		"SELECT id, text, completed FROM todos WHERE id = ?", id.String(),
	).Scan(&rawID, &t.Text, &t.Completed)
	if err != nil {
		return nil, fmt.Errorf("failed to read back todo %s: %w", id, err)
	}
	t.ID = id
	return &t, nil
}

func (w *SQLiteTripStoreWrapper) DeleteTodo(ctx context.Context, id uuid.UUID) error {
	res, err := w.db.ExecContext(ctx, "DELETE FROM todos WHERE id = ?", id.String())
	if err != nil {
		return fmt.Errorf("failed to delete todo %s: %w", id, err)
	}
	return requireRow(res, fmt.Errorf("todo %s: %w", id, st.ErrNotFound))
}

// --- places ---

func (w *SQLiteTripStoreWrapper) ListPlaces(ctx context.Context) ([]st.Place, error) {
	rows, err := w.db.QueryContext(ctx,
		"SELECT id, name, category, visited, lat, lng, description, sources FROM places ORDER BY rowid")
	if err != nil {
		return nil, fmt.Errorf("failed to list places: %w", err)
	}
	defer rows.Close()

	var places []st.Place
	for rows.Next() {
		p, err := scanPlace(rows)
		if err != nil {
			return nil, err
		}
		places = append(places, p)
	}
	return places, rows.Err()
}

func (w *SQLiteTripStoreWrapper) GetPlace(ctx context.Context, id uuid.UUID) (*st.Place, error) {
	row := w.db.QueryRowContext(ctx,
		"SELECT id, name, category, visited, lat, lng, description, sources FROM places WHERE id = ?",
		id.String())
	p, err := scanPlace(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("place %s: %w", id, st.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get place %s: %w", id, err)
	}
	return &p, nil
}

func (w *SQLiteTripStoreWrapper) AppendPlace(ctx context.Context, p st.Place) error {
	if err := insertPlace(ctx, w.db, p); err != nil {
		return fmt.Errorf("failed to insert place: %w", err)
	}
	return nil
}

func (w *SQLiteTripStoreWrapper) TogglePlaceVisited(ctx context.Context, id uuid.UUID) (*st.Place, error) {
	res, err := w.db.ExecContext(ctx,
		"UPDATE places SET visited = NOT visited WHERE id = ?", id.String())
	if err != nil {
		return nil, fmt.Errorf("failed to toggle place %s: %w", id, err)
	}
	if err := requireRow(res, fmt.Errorf("place %s: %w", id, st.ErrNotFound)); err != nil {
		return nil, err
	}
	return w.GetPlace(ctx, id)
}

func (w *SQLiteTripStoreWrapper) SavePlaceInfo(ctx context.Context, id uuid.UUID, description string, sources []st.Source) (*st.Place, error) {
	raw, err := json.Marshal(sources)
	if err != nil {
		return nil, fmt.Errorf("failed to encode sources: %w", err)
	}
	res, err := w.db.ExecContext(ctx,
		"UPDATE places SET description = ?, sources = ? WHERE id = ?",
		description, string(raw), id.String())
	if err != nil {
		return nil, fmt.Errorf("failed to save place info %s: %w", id, err)
	}
	if err := requireRow(res, fmt.Errorf("place %s: %w", id, st.ErrNotFound)); err != nil {
		return nil, err
	}
	return w.GetPlace(ctx, id)
}

func (w *SQLiteTripStoreWrapper) DeletePlace(ctx context.Context, id uuid.UUID) error {
	res, err := w.db.ExecContext(ctx, "DELETE FROM places WHERE id = ?", id.String())
	if err != nil {
		return fmt.Errorf("failed to delete place %s: %w", id, err)
	}
	return requireRow(res, fmt.Errorf("place %s: %w", id, st.ErrNotFound))
}

// --- meta ---

func (w *SQLiteTripStoreWrapper) GetMeta(ctx context.Context, key string) (string, bool, error) {
	var v string
	err := w.db.QueryRowContext(ctx, "SELECT value FROM meta WHERE key = ?", key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get meta %q: %w", key, err)
	}
	return v, true, nil
}

func (w *SQLiteTripStoreWrapper) SetMeta(ctx context.Context, key, value string) error {
	_, err := w.db.ExecContext(ctx,
		"INSERT INTO meta (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		key, value,
	)
	if err != nil {
		return fmt.Errorf("failed to set meta %q: %w", key, err)
	}
	return nil
}

// --- helpers ---

const timeFormat = "2006-01-02T15:04:05.000Z07:00"

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(timeFormat, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("corrupt timestamp %q: %w", s, err)
	}
	return t, nil
}

func requireRow(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanExpense(row scanner) (st.Expense, error) {
	var e st.Expense
	var id, date, category string
	if err := row.Scan(&id, &e.UserID, &e.Description, &e.Amount, &date, &category); err != nil {
		return st.Expense{}, err
	}
	var err error
	if e.ID, err = uuid.Parse(id); err != nil {
		return st.Expense{}, fmt.Errorf("corrupt expense id %q: %w", id, err)
	}
	if e.Date, err = parseTime(date); err != nil {
		return st.Expense{}, err
	}
	e.Category = st.ExpenseCategory(category)
	return e, nil
}

func scanPlace(row scanner) (st.Place, error) {
	var p st.Place
	var id, category, sources string
	var lat, lng sql.NullFloat64
	if err := row.Scan(&id, &p.Name, &category, &p.Visited, &lat, &lng, &p.Description, &sources); err != nil {
		return st.Place{}, err
	}
	var err error
	if p.ID, err = uuid.Parse(id); err != nil {
		return st.Place{}, fmt.Errorf("corrupt place id %q: %w", id, err)
	}
	p.Category = st.PlaceCategory(category)
	if lat.Valid {
		p.Lat = &lat.Float64
	}
	if lng.Valid {
		p.Lng = &lng.Float64
	}
	if sources != "" {
		if err := json.Unmarshal([]byte(sources), &p.Sources); err != nil {
			return st.Place{}, fmt.Errorf("corrupt place sources for %s: %w", id, err)
		}
	}
	return p, nil
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func insertPlace(ctx context.Context, db execer, p st.Place) error {
	sources := ""
	if len(p.Sources) > 0 {
		raw, err := json.Marshal(p.Sources)
		if err != nil {
			return fmt.Errorf("failed to encode sources: %w", err)
		}
		sources = string(raw)
	}
	var lat, lng any
	if p.Lat != nil {
		lat = *p.Lat
	}
	if p.Lng != nil {
		lng = *p.Lng
	}
	_, err := db.ExecContext(ctx,
		"INSERT INTO places (id, name, category, visited, lat, lng, description, sources) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		p.ID.String(), p.Name, string(p.Category), p.Visited, lat, lng, p.Description, sources,
	)
	return err
}
