package config

// Session identifies the acting roster member for a single request. It is
// resolved once by the web middleware and passed explicitly to handlers and
// domain code instead of reading a global current-user constant.
type Session struct {
	UserID int
}

// NewSession returns a session for the given user id, falling back to the
// configured default when id is not positive.
func NewSession(id int) Session {
	if id <= 0 {
		id = CurrentUserID()
	}
	return Session{UserID: id}
}
