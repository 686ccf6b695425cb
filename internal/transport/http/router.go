package httptransport

import (
	"log/slog"

	"github.com/ErlanBelekov/tinyapp/internal/session"
	"github.com/ErlanBelekov/tinyapp/internal/transport/http/handler"
	"github.com/ErlanBelekov/tinyapp/internal/transport/http/middleware"
	"github.com/ErlanBelekov/tinyapp/internal/usecase"
	"github.com/gin-gonic/gin"

	sloggin "github.com/samber/slog-gin"
)

type SessionConfig struct {
	Manager *session.Manager
	Users   *usecase.AuthUsecase
	Cookie  session.CookieOptions
}

func NewRouter(logger *slog.Logger, authHandler *handler.AuthHandler, linkHandler *handler.LinkHandler, sess SessionConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Security(sess.Cookie.Secure))
	r.Use(sloggin.New(logger))
	r.Use(middleware.Metrics())
	r.Use(middleware.Session(sess.Manager, sess.Users, sess.Cookie, logger))
	r.SetHTMLTemplate(handler.Templates())

	r.GET("/", linkHandler.Root)

	// Public link routes
	r.GET("/urls", linkHandler.List)
	r.GET("/urls/:shortURL", linkHandler.Show)
	r.GET("/u/:shortURL", linkHandler.Redirect)

	// Protected link routes
	protected := r.Group("", middleware.RequireUser())
	protected.GET("/urls/new", linkHandler.NewForm)
	protected.POST("/urls", linkHandler.Create)
	protected.POST("/urls/:shortURL", linkHandler.Update)
	protected.POST("/urls/:shortURL/delete", linkHandler.Delete)

	// Account routes
	r.GET("/login", authHandler.LoginForm)
	r.POST("/login", authHandler.Login)
	r.POST("/logout", authHandler.Logout)
	r.GET("/register", authHandler.RegisterForm)
	r.POST("/register", authHandler.Register)

	return r
}
