package domain

import (
	"errors"
	"time"
)

var (
	ErrLinkNotFound   = errors.New("link not found")
	ErrForbidden      = errors.New("link belongs to another user")
	ErrEmptyURL       = errors.New("long url is required")
	ErrShortCodeTaken = errors.New("short code already in use")
)

type Link struct {
	ShortCode string
	LongURL   string
	OwnerID   string // never changes after creation
	CreatedAt time.Time
}

// OwnedBy reports whether userID may edit or delete the link.
func (l *Link) OwnedBy(userID string) bool {
	return userID != "" && l.OwnerID == userID
}
