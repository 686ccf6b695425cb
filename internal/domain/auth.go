package domain

import (
	"errors"
	"time"
)

var (
	ErrInvalidInput     = errors.New("email and password are required")
	ErrUserNotFound     = errors.New("user not found")
	ErrBadCredentials   = errors.New("password incorrect")
	ErrEmailTaken       = errors.New("user with this email already exists")
	ErrUserIDTaken      = errors.New("user id already in use")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrInvalidSession   = errors.New("session is invalid or expired")
	ErrIDSpaceExhausted = errors.New("could not generate a unique id")
)

type User struct {
	ID             string
	Email          string
	HashedPassword string
	CreatedAt      time.Time
}

// Session is the decoded form of the signed session cookie.
type Session struct {
	UserID    string
	ExpiresAt time.Time
}
