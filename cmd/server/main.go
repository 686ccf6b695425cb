package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ErlanBelekov/tinyapp/config"
	"github.com/ErlanBelekov/tinyapp/internal/email"
	"github.com/ErlanBelekov/tinyapp/internal/health"
	"github.com/ErlanBelekov/tinyapp/internal/infrastructure/memory"
	"github.com/ErlanBelekov/tinyapp/internal/infrastructure/postgres"
	ctxlog "github.com/ErlanBelekov/tinyapp/internal/log"
	"github.com/ErlanBelekov/tinyapp/internal/metrics"
	"github.com/ErlanBelekov/tinyapp/internal/password"
	"github.com/ErlanBelekov/tinyapp/internal/repository"
	"github.com/ErlanBelekov/tinyapp/internal/seed"
	"github.com/ErlanBelekov/tinyapp/internal/session"
	httptransport "github.com/ErlanBelekov/tinyapp/internal/transport/http"
	"github.com/ErlanBelekov/tinyapp/internal/transport/http/handler"
	"github.com/ErlanBelekov/tinyapp/internal/usecase"
	"github.com/gin-gonic/gin"
	"github.com/lmittmann/tint"
	"github.com/prometheus/client_golang/prometheus"
)

type storage struct {
	users  repository.UserRepository
	links  repository.LinkRepository
	pinger health.Pinger
	close  func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger := newLogger(cfg.Env, cfg.SlogLevel())

	if cfg.Env != "local" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	store, err := openStorage(ctx, cfg.DatabaseURL, logger)
	if err != nil {
		stop()
		log.Fatalf("storage: %v", err)
	}
	defer store.close()

	hasher := password.NewHasher(cfg.BcryptCost)

	if cfg.SeedDemo {
		if err := seed.Demo(ctx, store.users, store.links, hasher, logger); err != nil {
			stop()
			log.Fatalf("seed: %v", err)
		}
	}

	// Sessions
	sessions := session.NewManager([]byte(cfg.SessionSecret), cfg.SessionTTL)
	cookie := session.CookieOptions{Secure: cfg.SecureCookies}

	// Users
	emailSender := email.NewSender(cfg.Env, cfg.ResendAPIKey, cfg.EmailFrom, logger)
	authUsecase := usecase.NewAuthUsecase(store.users, hasher, emailSender, logger, cfg.PublicBaseURL)
	authHandler := handler.NewAuthHandler(authUsecase, sessions, cookie, logger)

	// Links
	linkUsecase := usecase.NewLinkUsecase(store.links)
	linkHandler := handler.NewLinkHandler(linkUsecase, cfg.PublicBaseURL, logger)

	metrics.Register(prometheus.DefaultRegisterer)
	checker := health.NewChecker(map[string]health.Pinger{"storage": store.pinger}, logger, prometheus.DefaultRegisterer)

	srv := http.Server{
		Addr: ":" + cfg.Port,
		Handler: httptransport.NewRouter(logger, authHandler, linkHandler, httptransport.SessionConfig{
			Manager: sessions,
			Users:   authUsecase,
			Cookie:  cookie,
		}),
		ReadHeaderTimeout: 5 * time.Second,
	}

	metricsSrv := metrics.NewServer(":"+cfg.MetricsPort, checker)

	go func() {
		logger.Info("server started", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server: %v", err)
		}
	}()

	go func() {
		logger.Info("metrics server started", "port", cfg.MetricsPort)
		if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server", "error", err)
		}
	}()

	<-ctx.Done()
	stop()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", "error", err)
	}
	if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("metrics server shutdown", "error", err)
	}
}

// openStorage uses Postgres when databaseURL is set and in-memory maps otherwise.
func openStorage(ctx context.Context, databaseURL string, logger *slog.Logger) (*storage, error) {
	if databaseURL == "" {
		logger.Info("using in-memory storage")
		users := memory.NewUserRepository()
		return &storage{
			users:  users,
			links:  memory.NewLinkRepository(),
			pinger: users,
			close:  func() {},
		}, nil
	}

	pool, err := postgres.NewPool(ctx, databaseURL)
	if err != nil {
		return nil, err
	}
	if err := postgres.Migrate(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}
	logger.Info("using postgres storage")
	users := postgres.NewUserRepository(pool)
	return &storage{
		users:  users,
		links:  postgres.NewLinkRepository(pool),
		pinger: users,
		close:  pool.Close,
	}, nil
}

func newLogger(env string, level slog.Level) *slog.Logger {
	var inner slog.Handler
	if env == "local" {
		inner = tint.NewHandler(os.Stdout, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
		})
	} else {
		inner = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: level,
		})
	}
	return slog.New(ctxlog.NewContextHandler(inner))
}
