package models

// User mirrors one entry of users.json.
type User struct {
	ID               string   `json:"id"`
	Email            string   `json:"email"`
	Username         string   `json:"username"`
	PasswordHash     string   `json:"passwordHash"`
	CreatedAt        int64    `json:"createdAt"`
	IsAdmin          bool     `json:"isAdmin,omitempty"`
	CustomCategories []string `json:"customCategories,omitempty"`
}

// PublicUser is the directory view exposed by search and lookup endpoints.
// It never carries the password hash.
type PublicUser struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
}

// Public strips a user down to its directory view.
func (u *User) Public() PublicUser {
	return PublicUser{ID: u.ID, Email: u.Email, Username: u.Username}
}

// Session is one entry of sessions.json. ExpiresAt is epoch milliseconds.
type Session struct {
	Token     string `json:"token"`
	UserID    string `json:"userId"`
	ExpiresAt int64  `json:"expiresAt"`
}

type SignupRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
