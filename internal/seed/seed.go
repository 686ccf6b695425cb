// Package seed loads the demo accounts and links used in local development.
package seed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ErlanBelekov/tinyapp/internal/domain"
	"github.com/ErlanBelekov/tinyapp/internal/repository"
)

type hasher interface {
	Hash(plain string) (string, error)
}

type demoUser struct {
	id       string
	email    string
	password string
}

var demoUsers = []demoUser{
	{"RhJsk8", "user@example.com", "purple-monkey-dinosaur"},
	{"hjfg45", "user2@example.com", "dishwasher-funk"},
}

var demoLinks = []domain.Link{
	{ShortCode: "b2xVn2", LongURL: "http://www.lighthouselabs.ca", OwnerID: "RhJsk8"},
	{ShortCode: "9sm5xK", LongURL: "http://www.google.com", OwnerID: "hjfg45"},
}

// Demo inserts the demo data. Rows that already exist are skipped, so it is
// safe to run repeatedly.
func Demo(ctx context.Context, users repository.UserRepository, links repository.LinkRepository, h hasher, logger *slog.Logger) error {
	logger = logger.With("component", "seed")

	for _, du := range demoUsers {
		hashed, err := h.Hash(du.password)
		if err != nil {
			return fmt.Errorf("hash password for %s: %w", du.email, err)
		}
		_, err = users.Create(ctx, &domain.User{ID: du.id, Email: du.email, HashedPassword: hashed})
		switch {
		case errors.Is(err, domain.ErrUserIDTaken), errors.Is(err, domain.ErrEmailTaken):
			logger.DebugContext(ctx, "demo user exists", "email", du.email)
		case err != nil:
			return fmt.Errorf("create user %s: %w", du.email, err)
		default:
			logger.InfoContext(ctx, "demo user created", "email", du.email)
		}
	}

	for _, dl := range demoLinks {
		l := dl
		_, err := links.Create(ctx, &l)
		switch {
		case errors.Is(err, domain.ErrShortCodeTaken):
			logger.DebugContext(ctx, "demo link exists", "short_code", dl.ShortCode)
		case err != nil:
			return fmt.Errorf("create link %s: %w", dl.ShortCode, err)
		default:
			logger.InfoContext(ctx, "demo link created", "short_code", dl.ShortCode)
		}
	}
	return nil
}
