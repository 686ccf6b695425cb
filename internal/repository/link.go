package repository

import (
	"context"

	"github.com/ErlanBelekov/tinyapp/internal/domain"
)

// LinkRepository owns the ownership check for writes: Update and Delete
// compare ownerID against the stored owner and return domain.ErrForbidden
// on mismatch, so callers cannot skip it.
type LinkRepository interface {
	// Create returns domain.ErrShortCodeTaken if l.ShortCode already exists.
	Create(ctx context.Context, l *domain.Link) (*domain.Link, error)
	GetByShortCode(ctx context.Context, code string) (*domain.Link, error)
	// ListByOwner returns the owner's links in insertion order.
	ListByOwner(ctx context.Context, ownerID string) ([]*domain.Link, error)
	// Update replaces the long URL and keeps the original owner.
	Update(ctx context.Context, code, longURL, ownerID string) error
	// Delete is a no-op for unknown codes.
	Delete(ctx context.Context, code, ownerID string) error
	Count(ctx context.Context) (int, error)
}
