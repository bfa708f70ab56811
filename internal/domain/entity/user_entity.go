package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the aggregate root for the user domain.
// Password holds the bcrypt hash, never the plain value.
// Session is the single token currently accepted for this user; issuing a new
// one implicitly revokes the previous token.
type User struct {
	ID        string
	Name      string
	Email     string
	Password  string
	Session   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func NewUser(name, email, passwordHash string) *User {
	now := time.Now().UTC()
	return &User{
		ID:        uuid.NewString(),
		Name:      name,
		Email:     email,
		Password:  passwordHash,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// UpdateSession replaces the active session token.
func (u *User) UpdateSession(token string) {
	u.Session = token
	u.UpdatedAt = time.Now().UTC()
}

func sameUser(a, b *User) bool {
	return a != nil && b != nil && a.ID == b.ID
}
