package domain

import (
	"errors"
	"time"
)

// DefaultCredits is granted to every new user.
const DefaultCredits = 5

// User is keyed by email; projects reference it through their user_id column.
type User struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Credits   int       `json:"credits"`
	CreatedAt time.Time `json:"created_at"`
}

var (
	ErrUserNotFound        = errors.New("user not found")
	ErrEmailRequired       = errors.New("email is required")
	ErrInsufficientCredits = errors.New("insufficient credits")
)
