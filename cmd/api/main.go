// Package main is the entry point for the TravelBuddy API server.
// Its sole responsibility is wiring dependencies together and starting the
// server. No business logic belongs here.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/travelbuddy/backend/internal/config"
	"github.com/travelbuddy/backend/internal/handler"
	"github.com/travelbuddy/backend/internal/itinerary"
	"github.com/travelbuddy/backend/internal/middleware"
	"github.com/travelbuddy/backend/internal/repo"
	"github.com/travelbuddy/backend/internal/service"
)

const maxBodySize = 1 << 20 // 1 MiB — plan and feedback payloads are small

func main() {
	// --- Config -----------------------------------------------------------
	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	// JSON handler writes machine-readable output suitable for log aggregators.
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// --- Database ---------------------------------------------------------
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	cancel()
	if err != nil {
		slog.Error("failed to connect to mongodb", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			slog.Error("mongodb disconnect error", "error", err)
		}
	}()

	// Verify the DB is reachable before accepting traffic.
	ctx, cancel = context.WithTimeout(context.Background(), 10*time.Second)
	err = client.Ping(ctx, readpref.Primary())
	cancel()
	if err != nil {
		slog.Error("failed to ping mongodb", "error", err)
		os.Exit(1)
	}
	slog.Info("database connection established")

	db := client.Database(cfg.MongoDB)

	// The unique (destination, owner_email) index closes the duplicate-plan
	// race; create it before the first request can hit it.
	ctx, cancel = context.WithTimeout(context.Background(), 10*time.Second)
	err = repo.EnsureIndexes(ctx, db)
	cancel()
	if err != nil {
		slog.Error("failed to create indexes", "error", err)
		os.Exit(1)
	}

	// --- Services ---------------------------------------------------------
	backend := itinerary.NewOpenAIBackend(cfg.OpenAIKey, cfg.OpenAIModel)
	generator := itinerary.NewGenerator(backend)
	trips := service.NewTripService(
		repo.NewTripRepo(db),
		repo.NewUserTripsRepo(db),
		generator,
		logger,
		cfg.GenerationTimeout,
	)

	// --- Router -----------------------------------------------------------
	// Middleware is applied in order: RequestID → RealIP → Logger → Recoverer
	// → CORS → body-size cap. The identity middleware is scoped to /trips
	// inside handler.Routes so /healthz stays open.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(maxBodySize))

	srv := handler.NewServer(trips)
	r.Mount("/", srv.Routes(middleware.NewIdentityHandler()))

	// --- HTTP Server ------------------------------------------------------
	// Write timeout leaves headroom for the bounded generation call.
	httpSrv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.GenerationTimeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown: wait for OS signal, then give in-flight requests
	// up to 15 seconds to complete before forcefully closing.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "addr", httpSrv.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-stop
	slog.Info("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}
