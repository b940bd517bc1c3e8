// Package main is the entry point for the TravelBuddy API server.
// Its sole responsibility is wiring dependencies together and starting the server.
// No business logic belongs here.
package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib" // registers "pgx" driver for database/sql
	"github.com/redis/go-redis/v9"

	"github.com/pkordes/travelbuddy/internal/config"
	"github.com/pkordes/travelbuddy/internal/geodata"
	"github.com/pkordes/travelbuddy/internal/handler"
	"github.com/pkordes/travelbuddy/internal/llm"
	"github.com/pkordes/travelbuddy/internal/middleware"
	"github.com/pkordes/travelbuddy/internal/planner"
	"github.com/pkordes/travelbuddy/internal/prompt"
	"github.com/pkordes/travelbuddy/internal/repo"
	"github.com/pkordes/travelbuddy/internal/service"
	"github.com/pkordes/travelbuddy/migrations"
	"github.com/pkordes/travelbuddy/spec"
)

func main() {
	// --- Config -----------------------------------------------------------
	if err := config.LoadDotEnv(); err != nil {
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}
	cfg, err := config.Load()
	if err != nil {
		// Use plain stderr before the logger is configured.
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	ctx := context.Background()

	// --- Database ---------------------------------------------------------
	if err := migrate(ctx, cfg.DatabaseURL); err != nil {
		slog.Error("failed to apply migrations", "error", err)
		os.Exit(1)
	}

	// pgxpool.New does not open connections immediately; the first query does.
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to create database pool", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	// Verify the DB is reachable before accepting traffic.
	if err := pool.Ping(ctx); err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	slog.Info("database connection established")

	// --- Points ledger ----------------------------------------------------
	var points repo.PointsStore = repo.NewMemoryPointsStore()
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			slog.Error("failed to connect to redis", "addr", cfg.RedisAddr, "error", err)
			os.Exit(1)
		}
		points = repo.NewRedisPointsStore(rdb)
		slog.Info("redis points ledger enabled", "addr", cfg.RedisAddr)
	} else {
		slog.Warn("REDIS_ADDR not set; points are kept in memory and lost on restart")
	}

	// --- Pipeline ---------------------------------------------------------
	prompts := prompt.Default()
	gen := llm.New(llm.Config{
		BaseURL: cfg.OpenAIBaseURL,
		APIKey:  cfg.OpenAIAPIKey,
		Model:   cfg.OpenAIModel,
		System:  prompts.System,
		Timeout: cfg.GenerationTimeout,
	})
	tripPlanner := planner.New(gen, prompts, planner.WithLogger(logger))

	places := geodata.New(cfg.OpenTripMapAPIKey)
	if cfg.OpenTripMapAPIKey == "" {
		slog.Warn("OPENTRIPMAP_API_KEY not set; attraction lookups are disabled")
	}

	// --- Services ---------------------------------------------------------
	plans := repo.NewPlanRepo(pool)
	rewards := service.NewRewardsService(points, plans)
	server := handler.NewServer(
		service.NewPlanService(tripPlanner, plans),
		rewards,
		service.NewTipService(repo.NewTipRepo(pool), rewards),
		places,
		logger,
	).WithOpenAPI(spec.OpenAPI)

	// --- Router -----------------------------------------------------------
	// Middleware is applied in order: RequestID → RealIP → Session → Logger →
	// Recoverer → CORS → body limit.
	// Session runs before the logger so each log line carries the session id.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Session)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(cfg.MaxBodyBytes))
	r.Mount("/", server.Routes())

	// --- HTTP Server ------------------------------------------------------
	// A plan makes three sequential generation calls, so the write timeout
	// has to cover all of them.
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 3*cfg.GenerationTimeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown: wait for OS signal, then give in-flight requests
	// up to 15 seconds to complete before forcefully closing.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-stop
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

// migrate applies pending schema migrations over a short-lived database/sql
// connection, which goose requires.
func migrate(ctx context.Context, dsn string) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return err
	}
	defer db.Close()

	n, err := migrations.Up(ctx, db)
	if err != nil {
		return err
	}
	slog.Info("migrations applied", "count", n)
	return nil
}
