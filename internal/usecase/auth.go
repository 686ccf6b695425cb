package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ErlanBelekov/tinyapp/internal/domain"
	"github.com/ErlanBelekov/tinyapp/internal/email"
	"github.com/ErlanBelekov/tinyapp/internal/idgen"
	"github.com/ErlanBelekov/tinyapp/internal/metrics"
	"github.com/ErlanBelekov/tinyapp/internal/password"
	"github.com/ErlanBelekov/tinyapp/internal/repository"
)

type passwordHasher interface {
	Hash(plain string) (string, error)
	Verify(hash, plain string) error
}

type AuthUsecase struct {
	users   repository.UserRepository
	hasher  passwordHasher
	email   email.Sender
	logger  *slog.Logger
	baseURL string
	newID   func() string
}

func NewAuthUsecase(
	users repository.UserRepository,
	hasher passwordHasher,
	emailSender email.Sender,
	logger *slog.Logger,
	baseURL string,
) *AuthUsecase {
	return &AuthUsecase{
		users:   users,
		hasher:  hasher,
		email:   emailSender,
		logger:  logger.With("component", "auth_usecase"),
		baseURL: baseURL,
		newID:   idgen.New,
	}
}

// CurrentUser loads the account behind a session. An empty id is anonymous.
func (u *AuthUsecase) CurrentUser(ctx context.Context, userID string) (*domain.User, error) {
	if userID == "" {
		return nil, domain.ErrUserNotFound
	}
	return u.users.FindByID(ctx, userID)
}

// Register creates an account with a bcrypt-hashed password and sends a
// welcome email. Email delivery failures are logged, not returned.
func (u *AuthUsecase) Register(ctx context.Context, emailAddr, plain string) (*domain.User, error) {
	if emailAddr == "" || plain == "" {
		return nil, domain.ErrInvalidInput
	}

	_, err := u.users.FindByEmail(ctx, emailAddr)
	switch {
	case err == nil:
		return nil, domain.ErrEmailTaken
	case !errors.Is(err, domain.ErrUserNotFound):
		return nil, fmt.Errorf("find user by email: %w", err)
	}

	hashed, err := u.hasher.Hash(plain)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	var created *domain.User
	for attempt := 0; attempt < idgen.MaxAttempts; attempt++ {
		created, err = u.users.Create(ctx, &domain.User{
			ID:             u.newID(),
			Email:          emailAddr,
			HashedPassword: hashed,
		})
		if !errors.Is(err, domain.ErrUserIDTaken) {
			break
		}
	}
	switch {
	case errors.Is(err, domain.ErrUserIDTaken):
		return nil, domain.ErrIDSpaceExhausted
	case errors.Is(err, domain.ErrEmailTaken):
		return nil, domain.ErrEmailTaken
	case err != nil:
		return nil, fmt.Errorf("create user: %w", err)
	}

	subject, body := email.Welcome(u.baseURL, created.Email)
	if err := u.email.Send(ctx, created.Email, subject, body); err != nil {
		u.logger.WarnContext(ctx, "send welcome email", "user_id", created.ID, "error", err)
	}

	metrics.UsersRegisteredTotal.Inc()
	return created, nil
}

// Authenticate returns domain.ErrUserNotFound for an unknown email and
// domain.ErrBadCredentials for a wrong password.
func (u *AuthUsecase) Authenticate(ctx context.Context, emailAddr, plain string) (*domain.User, error) {
	user, err := u.users.FindByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			metrics.LoginAttemptsTotal.WithLabelValues("unknown_user").Inc()
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user by email: %w", err)
	}

	if err := u.hasher.Verify(user.HashedPassword, plain); err != nil {
		if errors.Is(err, password.ErrMismatch) {
			metrics.LoginAttemptsTotal.WithLabelValues("bad_password").Inc()
			return nil, domain.ErrBadCredentials
		}
		return nil, err
	}

	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()
	return user, nil
}
