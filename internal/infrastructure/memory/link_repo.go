package memory

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/ErlanBelekov/tinyapp/internal/domain"
)

type LinkRepository struct {
	mu    sync.RWMutex
	links map[string]*domain.Link
	order []string // short codes in insertion order
	now   func() time.Time
}

func NewLinkRepository() *LinkRepository {
	return &LinkRepository{
		links: make(map[string]*domain.Link),
		now:   time.Now,
	}
}

func (r *LinkRepository) Create(_ context.Context, l *domain.Link) (*domain.Link, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.links[l.ShortCode]; ok {
		return nil, domain.ErrShortCodeTaken
	}

	stored := *l
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = r.now()
	}
	r.links[stored.ShortCode] = &stored
	r.order = append(r.order, stored.ShortCode)

	out := stored
	return &out, nil
}

func (r *LinkRepository) GetByShortCode(_ context.Context, code string) (*domain.Link, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	l, ok := r.links[code]
	if !ok {
		return nil, domain.ErrLinkNotFound
	}
	out := *l
	return &out, nil
}

func (r *LinkRepository) ListByOwner(_ context.Context, ownerID string) ([]*domain.Link, error) {
	links := []*domain.Link{}
	if ownerID == "" {
		return links, nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, code := range r.order {
		l := r.links[code]
		if l.OwnerID == ownerID {
			out := *l
			links = append(links, &out)
		}
	}
	return links, nil
}

func (r *LinkRepository) Update(_ context.Context, code, longURL, ownerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	l, ok := r.links[code]
	if !ok {
		return domain.ErrLinkNotFound
	}
	if !l.OwnedBy(ownerID) {
		return domain.ErrForbidden
	}
	l.LongURL = longURL
	return nil
}

func (r *LinkRepository) Delete(_ context.Context, code, ownerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	l, ok := r.links[code]
	if !ok {
		return nil
	}
	if !l.OwnedBy(ownerID) {
		return domain.ErrForbidden
	}
	delete(r.links, code)
	r.order = slices.DeleteFunc(r.order, func(c string) bool { return c == code })
	return nil
}

func (r *LinkRepository) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.links), nil
}
