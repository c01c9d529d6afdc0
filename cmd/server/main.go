package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bin-buddy/Bin-Buddy-Repository/internal/api"
	"github.com/bin-buddy/Bin-Buddy-Repository/internal/app"
	"github.com/bin-buddy/Bin-Buddy-Repository/internal/config"
	"github.com/bin-buddy/Bin-Buddy-Repository/internal/services"
	"github.com/joho/godotenv"
)

// main is the application composition root.
// It wires the configured store, distance cache and photo backend behind ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	stores, err := app.OpenStores(ctx, cfg)
	if err != nil {
		return err
	}
	defer stores.Close()

	distance, closeCache, err := app.DistanceProvider(ctx, cfg, stores)
	if err != nil {
		return err
	}
	defer closeCache()

	photos, err := app.PhotoStore(ctx, cfg)
	if err != nil {
		return err
	}

	registry := services.NewClientRegistry(stores.Clients, stores.Zones, services.RegistryOptions{
		StrictZones:      cfg.StrictZones,
		RecomputeBilling: cfg.RecomputeBilling,
	})
	zones := services.NewZoneAssignment(stores.Zones)
	planner := services.NewRoutePlanner(registry, zones, distance, cfg.Depot)

	router := api.NewRouter(api.Deps{
		Clients:     registry,
		Zones:       zones,
		Planner:     planner,
		Photos:      photos,
		CORSOrigins: cfg.CORSOrigins,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		log.Printf("Server listening addr=:%s store=%s cache=%s photos=%t", cfg.Port, cfg.Store, cfg.DistanceCache, cfg.PhotosEnabled())
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Println("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
