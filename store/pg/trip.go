// Package pg implements the trip store on PostgreSQL through GORM.
package pg

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	st "tripmate/store/store"
)

var _ st.TripStoreWrapper = (*PostgresTripStoreWrapper)(nil)

const seededKey = "seeded_v1"

type PostgresTripStoreWrapper struct {
	db *gorm.DB
}

// New wraps an initialized GORM connection and applies the seed data
// exactly once, guarded by a marker row in the meta table.
func New(db *gorm.DB, seed st.Seed) (*PostgresTripStoreWrapper, error) {
	w := &PostgresTripStoreWrapper{db: db}
	if err := w.applySeedOnce(seed); err != nil {
		return nil, fmt.Errorf("apply seed: %w", err)
	}
	return w, nil
}

func (w *PostgresTripStoreWrapper) applySeedOnce(seed st.Seed) error {
	return w.db.Transaction(func(tx *gorm.DB) error {
		var marker metaModel
		err := tx.Where("key = ?", seededKey).First(&marker).Error
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		for i := range seed.Users {
			if err := tx.Create(fromUser(&seed.Users[i])).Error; err != nil {
				return err
			}
		}
		for i := range seed.Places {
			m, err := fromPlace(&seed.Places[i])
			if err != nil {
				return err
			}
			if err := tx.Create(m).Error; err != nil {
				return err
			}
		}
		return tx.Create(&metaModel{Key: seededKey, Value: time.Now().UTC().Format(time.RFC3339)}).Error
	})
}

func (w *PostgresTripStoreWrapper) Close() error {
	CloseGORM(w.db)
	return nil
}

func (w *PostgresTripStoreWrapper) ListUsers(ctx context.Context) ([]st.User, error) {
	var models []userModel
	if err := w.db.WithContext(ctx).Order("id").Find(&models).Error; err != nil {
		return nil, err
	}
	users := make([]st.User, 0, len(models))
	for i := range models {
		users = append(users, *models[i].toEntity())
	}
	return users, nil
}

func (w *PostgresTripStoreWrapper) GetUser(ctx context.Context, id int) (*st.User, error) {
	var m userModel
	if err := w.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, wrapNotFound(err, fmt.Sprintf("user %d", id))
	}
	return m.toEntity(), nil
}

func (w *PostgresTripStoreWrapper) UpdateUserAvatar(ctx context.Context, id int, avatar string) error {
	res := w.db.WithContext(ctx).Model(&userModel{}).Where("id = ?", id).Update("avatar", avatar)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("user %d: %w", id, st.ErrNotFound)
	}
	return nil
}

func (w *PostgresTripStoreWrapper) ListExpenses(ctx context.Context) ([]st.Expense, error) {
	var models []expenseModel
	if err := w.db.WithContext(ctx).Order("date desc").Find(&models).Error; err != nil {
		return nil, err
	}
	expenses := make([]st.Expense, 0, len(models))
	for i := range models {
		expenses = append(expenses, *models[i].toEntity())
	}
	return expenses, nil
}

func (w *PostgresTripStoreWrapper) GetExpense(ctx context.Context, id uuid.UUID) (*st.Expense, error) {
	var m expenseModel
	if err := w.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, wrapNotFound(err, fmt.Sprintf("expense %s", id))
	}
	return m.toEntity(), nil
}

func (w *PostgresTripStoreWrapper) AppendExpense(ctx context.Context, expense st.Expense) error {
	return w.db.WithContext(ctx).Create(fromExpense(&expense)).Error
}

func (w *PostgresTripStoreWrapper) DeleteExpense(ctx context.Context, id uuid.UUID) error {
	res := w.db.WithContext(ctx).Where("id = ?", id).Delete(&expenseModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("expense %s: %w", id, st.ErrNotFound)
	}
	return nil
}

func (w *PostgresTripStoreWrapper) ListPhotos(ctx context.Context) ([]st.Photo, error) {
	var models []photoModel
	if err := w.db.WithContext(ctx).Order("created_at desc").Find(&models).Error; err != nil {
		return nil, err
	}
	photos := make([]st.Photo, 0, len(models))
	for i := range models {
		photos = append(photos, *models[i].toEntity())
	}
	return photos, nil
}

func (w *PostgresTripStoreWrapper) AppendPhoto(ctx context.Context, photo st.Photo) error {
	return w.db.WithContext(ctx).Create(fromPhoto(&photo)).Error
}

func (w *PostgresTripStoreWrapper) ListMessages(ctx context.Context) ([]st.Message, error) {
	var models []messageModel
	if err := w.db.WithContext(ctx).Order("timestamp").Find(&models).Error; err != nil {
		return nil, err
	}
	messages := make([]st.Message, 0, len(models))
	for i := range models {
		messages = append(messages, *models[i].toEntity())
	}
	return messages, nil
}

func (w *PostgresTripStoreWrapper) AppendMessage(ctx context.Context, message st.Message) error {
	return w.db.WithContext(ctx).Create(fromMessage(&message)).Error
}

func (w *PostgresTripStoreWrapper) ListTodos(ctx context.Context) ([]st.Todo, error) {
	var models []todoModel
	if err := w.db.WithContext(ctx).Find(&models).Error; err != nil {
		return nil, err
	}
	todos := make([]st.Todo, 0, len(models))
	for i := range models {
		todos = append(todos, *models[i].toEntity())
	}
	return todos, nil
}

func (w *PostgresTripStoreWrapper) AppendTodo(ctx context.Context, todo st.Todo) error {
	return w.db.WithContext(ctx).Create(fromTodo(&todo)).Error
}

func (w *PostgresTripStoreWrapper) ToggleTodo(ctx context.Context, id uuid.UUID) (*st.Todo, error) {
	res := w.db.WithContext(ctx).Model(&todoModel{}).Where("id = ?", id).
		Update("completed", gorm.Expr("NOT completed"))
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("todo %s: %w", id, st.ErrNotFound)
	}
	var m todoModel
	if err := w.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, err
	}
	return m.toEntity(), nil
}

func (w *PostgresTripStoreWrapper) DeleteTodo(ctx context.Context, id uuid.UUID) error {
	res := w.db.WithContext(ctx).Where("id = ?", id).Delete(&todoModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("todo %s: %w", id, st.ErrNotFound)
	}
	return nil
}

func (w *PostgresTripStoreWrapper) ListPlaces(ctx context.Context) ([]st.Place, error) {
	var models []placeModel
	if err := w.db.WithContext(ctx).Find(&models).Error; err != nil {
		return nil, err
	}
	places := make([]st.Place, 0, len(models))
	for i := range models {
		p, err := models[i].toEntity()
		if err != nil {
			return nil, err
		}
		places = append(places, *p)
	}
	return places, nil
}

func (w *PostgresTripStoreWrapper) GetPlace(ctx context.Context, id uuid.UUID) (*st.Place, error) {
	var m placeModel
	if err := w.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, wrapNotFound(err, fmt.Sprintf("place %s", id))
	}
	return m.toEntity()
}

func (w *PostgresTripStoreWrapper) AppendPlace(ctx context.Context, place st.Place) error {
	m, err := fromPlace(&place)
	if err != nil {
		return err
	}
	return w.db.WithContext(ctx).Create(m).Error
}

func (w *PostgresTripStoreWrapper) TogglePlaceVisited(ctx context.Context, id uuid.UUID) (*st.Place, error) {
	res := w.db.WithContext(ctx).Model(&placeModel{}).Where("id = ?", id).
		Update("visited", gorm.Expr("NOT visited"))
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("place %s: %w", id, st.ErrNotFound)
	}
	return w.GetPlace(ctx, id)
}

func (w *PostgresTripStoreWrapper) SavePlaceInfo(ctx context.Context, id uuid.UUID, description string, sources []st.Source) (*st.Place, error) {
	m := &placeModel{}
	raw := ""
	if len(sources) > 0 {
		encoded, err := fromPlace(&st.Place{Sources: sources})
		if err != nil {
			return nil, err
		}
		raw = encoded.Sources
	}
	res := w.db.WithContext(ctx).Model(m).Where("id = ?", id).
		Updates(map[string]any{"description": description, "sources": raw})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("place %s: %w", id, st.ErrNotFound)
	}
	return w.GetPlace(ctx, id)
}

func (w *PostgresTripStoreWrapper) DeletePlace(ctx context.Context, id uuid.UUID) error {
	res := w.db.WithContext(ctx).Where("id = ?", id).Delete(&placeModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("place %s: %w", id, st.ErrNotFound)
	}
	return nil
}

func (w *PostgresTripStoreWrapper) GetMeta(ctx context.Context, key string) (string, bool, error) {
	var m metaModel
	err := w.db.WithContext(ctx).Where("key = ?", key).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return m.Value, true, nil
}

func (w *PostgresTripStoreWrapper) SetMeta(ctx context.Context, key, value string) error {
	return w.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&metaModel{Key: key, Value: value}).Error
}

func wrapNotFound(err error, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s: %w", what, st.ErrNotFound)
	}
	return err
}
