package main

import (
	"context"
	"errors"
	"genetic-route-service/internal/adapters/cache"
	"genetic-route-service/internal/adapters/distance"
	"genetic-route-service/internal/adapters/repositories"
	"genetic-route-service/internal/api"
	"genetic-route-service/internal/api/handlers"
	"genetic-route-service/internal/config"
	"genetic-route-service/internal/platform/db"
	"genetic-route-service/internal/services"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

// main is the application composition root.
// It wires concrete adapters (SQLite, ORS) behind ports and starts the HTTP server.
func main() {
	config.LoadEnv()

	dbPath := config.Get("DB_PATH", "data/app.db")
	port := config.Get("PORT", "8080")

	limits := handlers.DefaultLimits()
	var err error
	if limits.MaxCities, err = config.GetInt("MAX_CITIES", limits.MaxCities); err != nil {
		log.Fatal(err)
	}
	if limits.DefaultTimeLimit, err = config.GetDuration("DEFAULT_TIME_LIMIT", limits.DefaultTimeLimit); err != nil {
		log.Fatal(err)
	}
	if limits.MaxTimeLimit, err = config.GetDuration("MAX_TIME_LIMIT", limits.MaxTimeLimit); err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	conn, err := db.OpenSqlite(ctx, dbPath)
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	if err := repositories.InitSchema(ctx, conn); err != nil {
		log.Fatal(err)
	}

	runs := repositories.NewSqliteRunRepository(conn)
	solver := &services.Solver{Runs: runs}

	// The road metric is optional; its matrix lookups go through a persistent cache.
	if orsKey := config.Get("ORS_API_KEY", ""); orsKey != "" {
		provider, err := distance.NewORSMatrixProvider(orsKey, cache.NewSqliteDistanceCache(conn))
		if err != nil {
			log.Fatal(err)
		}
		solver.Matrix = provider
	} else {
		log.Println("ORS_API_KEY not set, road metric disabled")
	}

	router := api.NewRouter(solver, runs, limits)

	// WriteTimeout leaves room for the longest allowed run plus a cold matrix fetch.
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      limits.MaxTimeLimit + 60*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("shutdown failed: %v", err)
		}
	}()

	log.Printf("Server listening addr=:%s", port)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
	log.Println("Server stopped")
}
