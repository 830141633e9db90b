package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"storefront-cms/config"
	"storefront-cms/database"
	adminapi "storefront-cms/internal/api/admin"
	authapi "storefront-cms/internal/api/auth"
	configapi "storefront-cms/internal/api/config"
	siteapi "storefront-cms/internal/api/site"
	uploadapi "storefront-cms/internal/api/upload"
	routes "storefront-cms/internal/app/http"
	"storefront-cms/internal/app/http/middleware"
	"storefront-cms/internal/configstore"
	"storefront-cms/internal/domain/catalog"
	"storefront-cms/internal/domain/history"
	"storefront-cms/internal/infra/backend"
	"storefront-cms/internal/infra/upload"
	xlog "storefront-cms/internal/log"
)

func main() {
	foundEnv := config.LoadEnv()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration:\n%v\n", err)
		os.Exit(1)
	}

	logger := xlog.New(xlog.Config{Level: cfg.LogLevel, Pretty: cfg.LogPretty})
	if !foundEnv {
		logger.Debug().Msg("no .env file, using process environment")
	}
	gin.SetMode(cfg.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, closeBackend, err := openBackend(ctx, cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Str("backend", cfg.Backend).Msg("failed to open config backend")
	}
	defer closeBackend()

	passwordHash := cfg.AdminPasswordHash
	if passwordHash == "" {
		passwordHash, err = authapi.HashPassword(cfg.AdminPassword)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to hash ADMIN_PASSWORD")
		}
		logger.Warn().Msg("ADMIN_PASSWORD is set in plain text; prefer ADMIN_PASSWORD_HASH")
	}

	uploader, err := newUploader(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to set up uploads")
	}

	editor := catalog.NewEditor(store, history.New(history.DefaultCapacity), logger)

	deps := routes.Deps{
		JWTSecret: cfg.JWTSecret,
		Config:    configapi.NewHandler(store, editor, xlog.WithComponent(logger, "config")),
		Site:      siteapi.NewHandler(store),
		Auth:      authapi.NewHandler(passwordHash, cfg.JWTSecret, logger),
		Admin:     adminapi.NewHandler(editor, xlog.WithComponent(logger, "admin")),
		Upload:    uploadapi.NewHandler(uploader, xlog.WithComponent(logger, "upload")),
	}
	if local, ok := uploader.(*upload.Local); ok {
		deps.UploadDir = local.Dir()
	}

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(xlog.WithComponent(logger, "http")))

	// CORS must be in place before routes are registered
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.RegisterRoutes(r, deps)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info().
			Str("port", cfg.Port).
			Str("backend", store.Backend()).
			Str("uploads", uploader.Provider()).
			Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("forced shutdown")
	}
}

// openBackend builds the config store for CONFIG_BACKEND. The returned func
// releases whatever connection the backend holds.
func openBackend(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*configstore.Store, func(), error) {
	var (
		b       backend.Backend
		closeFn = func() {}
	)

	switch cfg.Backend {
	case backend.KindMemory:
		logger.Warn().Msg("memory backend: changes are lost on restart")
		b = backend.NewMemory()
	case backend.KindFile:
		b = backend.NewFile(cfg.ConfigFile)
	case backend.KindRedis:
		rb, err := backend.NewRedis(ctx, backend.RedisConfig{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			Key:      cfg.Redis.Key,
		})
		if err != nil {
			return nil, nil, err
		}
		b = rb
		closeFn = func() { _ = rb.Close() }
	case backend.KindSQL:
		db, err := database.InitDB(cfg.DBDriver, cfg.DBURL, xlog.WithComponent(logger, "database"))
		if err != nil {
			return nil, nil, err
		}
		b = backend.NewSQL(db, cfg.ConfigRowID)
		closeFn = func() {
			if sqlDB, err := db.DB(); err == nil {
				_ = sqlDB.Close()
			}
		}
	case backend.KindSupabase:
		b = backend.NewSupabase(backend.SupabaseConfig{
			URL:      cfg.Supabase.URL,
			Key:      cfg.Supabase.Key,
			Table:    cfg.Supabase.Table,
			RecordID: int(cfg.ConfigRowID),
			Timeout:  cfg.RemoteTimeout,
		})
	case backend.KindHasura:
		b = backend.NewHasura(backend.HasuraConfig{
			Endpoint:    cfg.Hasura.URL,
			AdminSecret: cfg.Hasura.AdminSecret,
			Table:       cfg.Hasura.Table,
			RecordID:    int(cfg.ConfigRowID),
			Timeout:     cfg.RemoteTimeout,
		})
	default:
		return nil, nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}

	return configstore.New(b, logger), closeFn, nil
}

func newUploader(cfg *config.Config) (upload.Uploader, error) {
	if cfg.CloudinaryURL != "" {
		return upload.NewCloudinary(cfg.CloudinaryURL, cfg.CloudinaryFolder)
	}
	return upload.NewLocal(cfg.UploadDir, cfg.UploadBaseURL)
}
