package repository

import (
	"context"

	"github.com/ErlanBelekov/tinyapp/internal/domain"
)

type UserRepository interface {
	// Create stores u as given, including its ID. Returns domain.ErrEmailTaken
	// or domain.ErrUserIDTaken on conflict.
	Create(ctx context.Context, u *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// FindByEmail matches the email exactly. An empty email never matches.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	Count(ctx context.Context) (int, error)
}
