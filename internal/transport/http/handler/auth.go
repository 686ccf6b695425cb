package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/ErlanBelekov/tinyapp/internal/domain"
	"github.com/ErlanBelekov/tinyapp/internal/session"
	"github.com/gin-gonic/gin"
)

// authUsecaser is the subset of AuthUsecase the handler needs.
// Defined here (point of use) so tests can inject a fake.
type authUsecaser interface {
	Register(ctx context.Context, email, password string) (*domain.User, error)
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)
}

type AuthHandler struct {
	authUsecase authUsecaser
	sessions    *session.Manager
	cookie      session.CookieOptions
	logger      *slog.Logger
}

func NewAuthHandler(authUsecase authUsecaser, sessions *session.Manager, cookie session.CookieOptions, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		authUsecase: authUsecase,
		sessions:    sessions,
		cookie:      cookie,
		logger:      logger.With("component", "auth_handler"),
	}
}

type credentialsForm struct {
	Email    string `form:"email"`
	Password string `form:"password"`
}

// GET /login
func (h *AuthHandler) LoginForm(c *gin.Context) {
	if c.GetString("userID") != "" {
		c.Redirect(http.StatusFound, "/urls")
		return
	}
	c.HTML(http.StatusOK, "login", gin.H{"title": "Login"})
}

// POST /login
// Unknown email and wrong password produce the same response.
func (h *AuthHandler) Login(c *gin.Context) {
	var form credentialsForm
	if err := c.ShouldBind(&form); err != nil {
		c.String(http.StatusBadRequest, errInvalidRequest)
		return
	}

	user, err := h.authUsecase.Authenticate(c.Request.Context(), form.Email, form.Password)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) || errors.Is(err, domain.ErrBadCredentials) {
			c.String(http.StatusForbidden, errInvalidLogin)
			return
		}
		h.logger.ErrorContext(c.Request.Context(), "authenticate", "error", err)
		c.String(http.StatusInternalServerError, errInternalServer)
		return
	}

	if !h.startSession(c, user.ID) {
		return
	}
	c.Redirect(http.StatusFound, "/urls")
}

// POST /logout
func (h *AuthHandler) Logout(c *gin.Context) {
	session.ClearCookie(c.Writer, h.cookie)
	c.Redirect(http.StatusFound, "/login")
}

// GET /register
func (h *AuthHandler) RegisterForm(c *gin.Context) {
	if c.GetString("userID") != "" {
		c.Redirect(http.StatusFound, "/urls")
		return
	}
	c.HTML(http.StatusOK, "register", gin.H{"title": "Register"})
}

// POST /register
func (h *AuthHandler) Register(c *gin.Context) {
	var form credentialsForm
	if err := c.ShouldBind(&form); err != nil {
		c.String(http.StatusBadRequest, errInvalidRequest)
		return
	}

	user, err := h.authUsecase.Register(c.Request.Context(), form.Email, form.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			c.String(http.StatusBadRequest, errInvalidSignup)
		case errors.Is(err, domain.ErrEmailTaken):
			c.String(http.StatusBadRequest, errUserExists)
		default:
			h.logger.ErrorContext(c.Request.Context(), "register", "error", err)
			c.String(http.StatusInternalServerError, errInternalServer)
		}
		return
	}

	h.logger.InfoContext(c.Request.Context(), "user registered", "user_id", user.ID)
	if !h.startSession(c, user.ID) {
		return
	}
	c.Redirect(http.StatusFound, "/urls")
}

func (h *AuthHandler) startSession(c *gin.Context, userID string) bool {
	token, expiresAt, err := h.sessions.Issue(userID)
	if err != nil {
		h.logger.ErrorContext(c.Request.Context(), "issue session", "error", err)
		c.String(http.StatusInternalServerError, errInternalServer)
		return false
	}
	session.SetCookie(c.Writer, token, expiresAt, h.cookie)
	return true
}
