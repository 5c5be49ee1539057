package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"lifeblog/internal/auth"
	"lifeblog/internal/config"
	"lifeblog/internal/database"
	handlers "lifeblog/internal/handler"
	"lifeblog/internal/middleware"
	"lifeblog/internal/repository"
	"lifeblog/internal/service"
	"lifeblog/internal/storage"
)

type App struct {
	Cfg      *config.Config
	DB       *database.DB
	Repo     *repository.Repository
	Services *service.Service
	Store    *storage.CoverImageStore
}

// New connects to the database and object storage and wires the layers.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	db, err := database.ConnectDB(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	minioClient, err := storage.NewMinIOClient(cfg)
	if err != nil {
		db.CloseDB()
		return nil, err
	}

	store := storage.NewCoverImageStore(minioClient, cfg.MinIO)
	repo := repository.NewRepository(db.DB)

	return &App{
		Cfg:      cfg,
		DB:       db,
		Repo:     repo,
		Services: service.NewService(repo, cfg, store),
		Store:    store,
	}, nil
}

func (a *App) Close() {
	a.Store.Close()
	if err := a.DB.CloseDB(); err != nil {
		slog.Error("failed to close database", "error", err)
	}
}

// Handler builds the router with the full middleware chain.
func (a *App) Handler() http.Handler {
	h := handlers.NewHandlers(a.Repo, a.Services, a.DB, a.Cfg)
	verifier := auth.NewVerifier(a.Cfg.Auth.JWTSecretKey, a.Cfg.Auth.RequiredRole)

	router := h.Routes(mux.MiddlewareFunc(middleware.AuthMiddleware(verifier)))

	return middleware.Chain(
		router,
		middleware.GzipMiddleware,
		middleware.CORSMiddleware(a.Cfg.Server.AllowedOrigin),
		middleware.LoggingMiddleware,
	)
}

// Serve runs the HTTP server until ctx is cancelled, then drains in-flight
// requests.
func (a *App) Serve(ctx context.Context) error {
	if err := a.Store.EnsureBucket(ctx, a.Cfg.MinIO.Region); err != nil {
		return fmt.Errorf("failed to prepare bucket: %w", err)
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", a.Cfg.Server.Port),
		Handler:      a.Handler(),
		ReadTimeout:  a.Cfg.Server.ReadTimeout,
		WriteTimeout: a.Cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server started", "addr", srv.Addr, "database", a.Cfg.DB.DbNAME, "bucket", a.Cfg.MinIO.BucketName)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	slog.Info("shutting down server")
	return srv.Shutdown(shutdownCtx)
}
