package pg

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	st "tripmate/store/store"
)

type userModel struct {
	ID       int    `gorm:"primaryKey;column:id"`
	Name     string `gorm:"column:name;not null"`
	Avatar   string `gorm:"column:avatar"`
	Birthday string `gorm:"column:birthday"`
}

func (userModel) TableName() string { return "users" }

func (m *userModel) toEntity() *st.User {
	return &st.User{ID: m.ID, Name: m.Name, Avatar: m.Avatar, Birthday: m.Birthday}
}

func fromUser(u *st.User) *userModel {
	return &userModel{ID: u.ID, Name: u.Name, Avatar: u.Avatar, Birthday: u.Birthday}
}

type expenseModel struct {
	ID          uuid.UUID `gorm:"primaryKey;column:id;type:uuid"`
	UserID      int       `gorm:"column:user_id;not null"`
	Description string    `gorm:"column:description;not null"`
	Amount      float64   `gorm:"column:amount;not null"`
	Date        time.Time `gorm:"column:date;not null"`
	Category    string    `gorm:"column:category;not null"`
}

func (expenseModel) TableName() string { return "expenses" }

func (m *expenseModel) toEntity() *st.Expense {
	return &st.Expense{
		ID:          m.ID,
		UserID:      m.UserID,
		Description: m.Description,
		Amount:      m.Amount,
		Date:        m.Date,
		Category:    st.ExpenseCategory(m.Category),
	}
}

func fromExpense(e *st.Expense) *expenseModel {
	return &expenseModel{
		ID:          e.ID,
		UserID:      e.UserID,
		Description: e.Description,
		Amount:      e.Amount,
		Date:        e.Date,
		Category:    string(e.Category),
	}
}

type photoModel struct {
	ID        uuid.UUID `gorm:"primaryKey;column:id;type:uuid"`
	UserID    int       `gorm:"column:user_id;not null"`
	Data      string    `gorm:"column:data;not null"`
	Mime      string    `gorm:"column:mime"`
	Caption   string    `gorm:"column:caption"`
	CreatedAt time.Time `gorm:"column:created_at;not null"`
}

func (photoModel) TableName() string { return "photos" }

func (m *photoModel) toEntity() *st.Photo {
	return &st.Photo{ID: m.ID, UserID: m.UserID, Data: m.Data, Mime: m.Mime, Caption: m.Caption, CreatedAt: m.CreatedAt}
}

func fromPhoto(p *st.Photo) *photoModel {
	return &photoModel{ID: p.ID, UserID: p.UserID, Data: p.Data, Mime: p.Mime, Caption: p.Caption, CreatedAt: p.CreatedAt}
}

type messageModel struct {
	ID         uuid.UUID `gorm:"primaryKey;column:id;type:uuid"`
	SenderID   int       `gorm:"column:sender_id;not null"`
	ReceiverID int       `gorm:"column:receiver_id;not null"`
	Text       string    `gorm:"column:text;not null"`
	Timestamp  int64     `gorm:"column:timestamp;not null"`
}

func (messageModel) TableName() string { return "messages" }

func (m *messageModel) toEntity() *st.Message {
	return &st.Message{ID: m.ID, SenderID: m.SenderID, ReceiverID: m.ReceiverID, Text: m.Text, Timestamp: m.Timestamp}
}

func fromMessage(m *st.Message) *messageModel {
	return &messageModel{ID: m.ID, SenderID: m.SenderID, ReceiverID: m.ReceiverID, Text: m.Text, Timestamp: m.Timestamp}
}

type todoModel struct {
	ID        uuid.UUID `gorm:"primaryKey;column:id;type:uuid"`
	Text      string    `gorm:"column:text;not null"`
	Completed bool      `gorm:"column:completed;not null"`
}

func (todoModel) TableName() string { return "todos" }

func (m *todoModel) toEntity() *st.Todo {
	return &st.Todo{ID: m.ID, Text: m.Text, Completed: m.Completed}
}

func fromTodo(t *st.Todo) *todoModel {
	return &todoModel{ID: t.ID, Text: t.Text, Completed: t.Completed}
}

type placeModel struct {
	ID          uuid.UUID `gorm:"primaryKey;column:id;type:uuid"`
	Name        string    `gorm:"column:name;not null"`
	Category    string    `gorm:"column:category;not null"`
	Visited     bool      `gorm:"column:visited;not null"`
	Lat         *float64  `gorm:"column:lat"`
	Lng         *float64  `gorm:"column:lng"`
	Description string    `gorm:"column:description"`
	Sources     string    `gorm:"column:sources"`
}

func (placeModel) TableName() string { return "places" }

func (m *placeModel) toEntity() (*st.Place, error) {
	p := &st.Place{
		ID:          m.ID,
		Name:        m.Name,
		Category:    st.PlaceCategory(m.Category),
		Visited:     m.Visited,
		Lat:         m.Lat,
		Lng:         m.Lng,
		Description: m.Description,
	}
	if m.Sources != "" {
		if err := json.Unmarshal([]byte(m.Sources), &p.Sources); err != nil {
			return nil, err
		}
	}
	return p, nil
}

func fromPlace(p *st.Place) (*placeModel, error) {
	m := &placeModel{
		ID:          p.ID,
		Name:        p.Name,
		Category:    string(p.Category),
		Visited:     p.Visited,
		Lat:         p.Lat,
		Lng:         p.Lng,
		Description: p.Description,
	}
	if len(p.Sources) > 0 {
		raw, err := json.Marshal(p.Sources)
		if err != nil {
			return nil, err
		}
		m.Sources = string(raw)
	}
	return m, nil
}

type metaModel struct {
	Key   string `gorm:"primaryKey;column:key"`
	Value string `gorm:"column:value;not null"`
}

func (metaModel) TableName() string { return "meta" }
