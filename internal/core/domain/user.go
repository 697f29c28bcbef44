package domain

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrInvalidUserID = errors.New("user id is required")
)

// User is the local mirror of an identity issued by the external identity
// provider. Progress, login days and votes reference it.
type User struct {
	ID        string    `json:"id" db:"id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

func NewUser(id string) (*User, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ErrInvalidUserID
	}

	return &User{
		ID:        id,
		CreatedAt: time.Now().UTC(),
	}, nil
}
