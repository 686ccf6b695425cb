package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/ErlanBelekov/tinyapp/internal/domain"
	"github.com/ErlanBelekov/tinyapp/internal/idgen"
	"github.com/ErlanBelekov/tinyapp/internal/metrics"
	"github.com/ErlanBelekov/tinyapp/internal/repository"
)

type LinkUsecase struct {
	repo  repository.LinkRepository
	newID func() string
}

func NewLinkUsecase(repo repository.LinkRepository) *LinkUsecase {
	return &LinkUsecase{repo: repo, newID: idgen.New}
}

// ListOwned returns userID's links in creation order. Anonymous callers get
// an empty list.
func (u *LinkUsecase) ListOwned(ctx context.Context, userID string) ([]*domain.Link, error) {
	if userID == "" {
		return []*domain.Link{}, nil
	}
	links, err := u.repo.ListByOwner(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list links: %w", err)
	}
	return links, nil
}

// Create stores longURL under a fresh short code. The URL is not validated.
func (u *LinkUsecase) Create(ctx context.Context, longURL, ownerID string) (*domain.Link, error) {
	if ownerID == "" {
		return nil, domain.ErrUnauthorized
	}
	if longURL == "" {
		return nil, domain.ErrEmptyURL
	}

	for attempt := 0; attempt < idgen.MaxAttempts; attempt++ {
		created, err := u.repo.Create(ctx, &domain.Link{
			ShortCode: u.newID(),
			LongURL:   longURL,
			OwnerID:   ownerID,
		})
		if errors.Is(err, domain.ErrShortCodeTaken) {
			metrics.ShortCodeCollisionsTotal.Inc()
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("create link: %w", err)
		}
		metrics.LinksCreatedTotal.Inc()
		return created, nil
	}
	return nil, domain.ErrIDSpaceExhausted
}

func (u *LinkUsecase) Get(ctx context.Context, code string) (*domain.Link, error) {
	l, err := u.repo.GetByShortCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("get link: %w", err)
	}
	return l, nil
}

// Resolve returns the long URL behind code, or domain.ErrLinkNotFound.
func (u *LinkUsecase) Resolve(ctx context.Context, code string) (string, error) {
	l, err := u.repo.GetByShortCode(ctx, code)
	if err != nil {
		if errors.Is(err, domain.ErrLinkNotFound) {
			metrics.RedirectsTotal.WithLabelValues("not_found").Inc()
		}
		return "", fmt.Errorf("resolve link: %w", err)
	}
	metrics.RedirectsTotal.WithLabelValues("found").Inc()
	return l.LongURL, nil
}

// Update changes the target of a link owned by userID. The owner never changes.
func (u *LinkUsecase) Update(ctx context.Context, code, newLongURL, userID string) error {
	if userID == "" {
		return domain.ErrUnauthorized
	}
	if newLongURL == "" {
		return domain.ErrEmptyURL
	}
	if err := u.repo.Update(ctx, code, newLongURL, userID); err != nil {
		return fmt.Errorf("update link: %w", err)
	}
	return nil
}

// Delete removes a link owned by userID. Unknown codes are ignored.
func (u *LinkUsecase) Delete(ctx context.Context, code, userID string) error {
	if userID == "" {
		return domain.ErrUnauthorized
	}
	if err := u.repo.Delete(ctx, code, userID); err != nil {
		return fmt.Errorf("delete link: %w", err)
	}
	return nil
}
