package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	_ "github.com/taskboard/taskboard/docs"
	"github.com/taskboard/taskboard/internal/api"
	"github.com/taskboard/taskboard/internal/api/handler"
	"github.com/taskboard/taskboard/internal/core/service"
	"github.com/taskboard/taskboard/internal/infrastructure/config"
	mongodb "github.com/taskboard/taskboard/internal/infrastructure/db/mongo"
	redisdb "github.com/taskboard/taskboard/internal/infrastructure/db/redis"
	"github.com/taskboard/taskboard/internal/infrastructure/queue"
	"github.com/taskboard/taskboard/internal/infrastructure/storage"
	"github.com/taskboard/taskboard/internal/infrastructure/telemetry"
	"github.com/taskboard/taskboard/pkg/logger"
)

const shutdownTimeout = 15 * time.Second

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx)
		},
	}
}

func serve(ctx context.Context) error {
	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	opts := logger.ForEnv(cfg.Env, cfg.LogLevel)
	opts.Version = version
	log := logger.Init(opts)

	shutdownTracing, err := telemetry.NewProvider(ctx, telemetry.Options{
		Exporter:    cfg.Telemetry.Exporter,
		Endpoint:    cfg.Telemetry.OTLPEndpoint,
		ServiceName: cfg.Telemetry.ServiceName,
		Version:     version,
	})
	if err != nil {
		return err
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdownTracing(flushCtx); err != nil {
			log.Warn().Err(err).Msg("tracer shutdown")
		}
	}()

	// --- Infrastructure ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return err
	}
	defer func() { _ = mongoClient.Disconnect(context.Background()) }()

	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		return err
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return err
	}
	defer rdb.Close()

	files, err := storage.NewLocalStore(cfg.Web.UploadDir, "/uploads")
	if err != nil {
		return err
	}

	// --- Repositories ---
	users := mongodb.NewUserRepository(db)
	todos := mongodb.NewTodoRepository(db)
	settings := mongodb.NewSettingsRepository(db)
	audit := queue.NewAuditDispatcher(0, mongodb.NewAuditRepository(db), log)
	audit.Start()
	defer audit.Close()
	stats := mongodb.NewStatsRepository(db)
	sessions := redisdb.NewSessionStore(rdb)

	// --- Services ---
	tokens := service.NewTokenService(cfg.JWTSecret, cfg.Session.TTL)
	identity := service.NewIdentityService(users, sessions, log)

	router := api.NewRouter(api.Dependencies{
		Log:      log,
		Tokens:   tokens,
		Identity: identity,
		Guard:    service.NewGuardService(identity),
		Auth:     service.NewAuthService(users, settings, sessions, tokens, cfg.Session.TTL, log),
		Admin:    service.NewAdminService(users, todos, settings, sessions, audit, stats, log),
		Todos:    service.NewTodoService(todos, log),
		Profile:  service.NewProfileService(users),
		Settings: service.NewSettingsService(settings),
		Uploads:  service.NewUploadService(files, cfg.Web.UploadMaxBytes),
		Health: map[string]handler.Pinger{
			"mongodb": handler.MongoPinger(db),
			"redis":   handler.RedisPinger(rdb),
		},
		Cookie:        handler.CookieConfig{Name: cfg.Session.CookieName, Secure: cfg.Session.CookieSecure || cfg.IsProduction()},
		AuthRateLimit: cfg.Session.AuthRateLimit,
		WebRoot:       cfg.Web.Root,
		UploadDir:     files.Dir(),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           otelhttp.NewHandler(router, "taskboard"),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Str("env", cfg.Env).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
