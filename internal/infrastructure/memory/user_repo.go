// Package memory keeps users and links in process memory. Everything is lost
// on restart.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/ErlanBelekov/tinyapp/internal/domain"
)

type UserRepository struct {
	mu    sync.RWMutex
	users map[string]*domain.User
	order []string // ids in registration order, scanned by FindByEmail
	now   func() time.Time
}

func NewUserRepository() *UserRepository {
	return &UserRepository{
		users: make(map[string]*domain.User),
		now:   time.Now,
	}
}

func (r *UserRepository) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[u.ID]; ok {
		return nil, domain.ErrUserIDTaken
	}
	if r.findByEmail(u.Email) != nil {
		return nil, domain.ErrEmailTaken
	}

	stored := *u
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = r.now()
	}
	r.users[stored.ID] = &stored
	r.order = append(r.order, stored.ID)

	out := stored
	return &out, nil
}

func (r *UserRepository) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	out := *u
	return &out, nil
}

func (r *UserRepository) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u := r.findByEmail(email)
	if u == nil {
		return nil, domain.ErrUserNotFound
	}
	out := *u
	return &out, nil
}

func (r *UserRepository) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.users), nil
}

// Ping satisfies health.Pinger. Memory storage is always reachable.
func (r *UserRepository) Ping(_ context.Context) error { return nil }

// findByEmail must be called with mu held.
func (r *UserRepository) findByEmail(email string) *domain.User {
	if email == "" {
		return nil
	}
	for _, id := range r.order {
		if u := r.users[id]; u.Email == email {
			return u
		}
	}
	return nil
}
