package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/ErlanBelekov/tinyapp/internal/domain"
	"github.com/gin-gonic/gin"
)

type linkUsecaser interface {
	ListOwned(ctx context.Context, userID string) ([]*domain.Link, error)
	Create(ctx context.Context, longURL, ownerID string) (*domain.Link, error)
	Get(ctx context.Context, code string) (*domain.Link, error)
	Resolve(ctx context.Context, code string) (string, error)
	Update(ctx context.Context, code, newLongURL, userID string) error
	Delete(ctx context.Context, code, userID string) error
}

type LinkHandler struct {
	linkUsecase linkUsecaser
	baseURL     string
	logger      *slog.Logger
}

func NewLinkHandler(linkUsecase linkUsecaser, baseURL string, logger *slog.Logger) *LinkHandler {
	return &LinkHandler{
		linkUsecase: linkUsecase,
		baseURL:     strings.TrimRight(baseURL, "/"),
		logger:      logger.With("component", "link_handler"),
	}
}

type linkForm struct {
	LongURL string `form:"longURL"`
}

// GET /
func (h *LinkHandler) Root(c *gin.Context) {
	if c.GetString("userID") != "" {
		c.Redirect(http.StatusFound, "/urls")
		return
	}
	c.Redirect(http.StatusFound, "/login")
}

// GET /urls
func (h *LinkHandler) List(c *gin.Context) {
	links, err := h.linkUsecase.ListOwned(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		h.logger.ErrorContext(c.Request.Context(), "list links", "error", err)
		c.String(http.StatusInternalServerError, errInternalServer)
		return
	}
	c.HTML(http.StatusOK, "urls_index", h.page(c, "My URLs", gin.H{"urls": links}))
}

// GET /urls/new
func (h *LinkHandler) NewForm(c *gin.Context) {
	c.HTML(http.StatusOK, "urls_new", h.page(c, "Create TinyURL", nil))
}

// GET /urls/:shortURL
func (h *LinkHandler) Show(c *gin.Context) {
	link, err := h.linkUsecase.Get(c.Request.Context(), c.Param("shortURL"))
	if err != nil {
		if errors.Is(err, domain.ErrLinkNotFound) {
			c.String(http.StatusNotFound, errPageNotFound)
			return
		}
		h.logger.ErrorContext(c.Request.Context(), "get link", "error", err)
		c.String(http.StatusInternalServerError, errInternalServer)
		return
	}
	c.HTML(http.StatusOK, "urls_show", h.page(c, "TinyURL", gin.H{
		"link":     link,
		"shortURL": h.baseURL + "/u/" + link.ShortCode,
		"isOwner":  link.OwnedBy(c.GetString("userID")),
	}))
}

// POST /urls
func (h *LinkHandler) Create(c *gin.Context) {
	var form linkForm
	if err := c.ShouldBind(&form); err != nil {
		c.String(http.StatusBadRequest, errInvalidRequest)
		return
	}

	link, err := h.linkUsecase.Create(c.Request.Context(), strings.TrimSpace(form.LongURL), c.GetString("userID"))
	if err != nil {
		h.writeError(c, "create link", err)
		return
	}

	h.logger.InfoContext(c.Request.Context(), "link created", "short_code", link.ShortCode)
	c.Redirect(http.StatusFound, "/urls/"+link.ShortCode)
}

// GET /u/:shortURL
// An unknown code is a 400, never a redirect to an empty target.
func (h *LinkHandler) Redirect(c *gin.Context) {
	longURL, err := h.linkUsecase.Resolve(c.Request.Context(), c.Param("shortURL"))
	if err != nil {
		if errors.Is(err, domain.ErrLinkNotFound) {
			c.String(http.StatusBadRequest, errPageNotFound)
			return
		}
		h.logger.ErrorContext(c.Request.Context(), "resolve link", "error", err)
		c.String(http.StatusInternalServerError, errInternalServer)
		return
	}
	c.Redirect(http.StatusFound, longURL)
}

// POST /urls/:shortURL
func (h *LinkHandler) Update(c *gin.Context) {
	var form linkForm
	if err := c.ShouldBind(&form); err != nil {
		c.String(http.StatusBadRequest, errInvalidRequest)
		return
	}

	code := c.Param("shortURL")
	if err := h.linkUsecase.Update(c.Request.Context(), code, strings.TrimSpace(form.LongURL), c.GetString("userID")); err != nil {
		h.writeError(c, "update link", err)
		return
	}

	h.logger.InfoContext(c.Request.Context(), "link updated", "short_code", code)
	c.Redirect(http.StatusFound, "/urls")
}

// POST /urls/:shortURL/delete
func (h *LinkHandler) Delete(c *gin.Context) {
	code := c.Param("shortURL")
	if err := h.linkUsecase.Delete(c.Request.Context(), code, c.GetString("userID")); err != nil {
		h.writeError(c, "delete link", err)
		return
	}

	h.logger.InfoContext(c.Request.Context(), "link deleted", "short_code", code)
	c.Redirect(http.StatusFound, "/urls")
}

func (h *LinkHandler) writeError(c *gin.Context, op string, err error) {
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		c.String(http.StatusForbidden, errLoginRequired)
	case errors.Is(err, domain.ErrForbidden):
		c.String(http.StatusForbidden, errNotOwner)
	case errors.Is(err, domain.ErrLinkNotFound):
		c.String(http.StatusNotFound, errPageNotFound)
	case errors.Is(err, domain.ErrEmptyURL):
		c.String(http.StatusBadRequest, errEmptyURL)
	default:
		h.logger.ErrorContext(c.Request.Context(), op, "error", err)
		c.String(http.StatusInternalServerError, errInternalServer)
	}
}

// page merges the per-request template data every page needs.
func (h *LinkHandler) page(c *gin.Context, title string, data gin.H) gin.H {
	out := gin.H{"title": title}
	if user, ok := c.Get("user"); ok {
		out["user"] = user
	}
	for k, v := range data {
		out[k] = v
	}
	return out
}
