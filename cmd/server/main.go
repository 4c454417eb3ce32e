package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/dbal0503/MightyMammoths-sub000/internal/adapters/cache"
	"github.com/dbal0503/MightyMammoths-sub000/internal/adapters/gmaps"
	"github.com/dbal0503/MightyMammoths-sub000/internal/adapters/location"
	"github.com/dbal0503/MightyMammoths-sub000/internal/adapters/planner"
	"github.com/dbal0503/MightyMammoths-sub000/internal/api"
	"github.com/dbal0503/MightyMammoths-sub000/internal/campus"
	"github.com/dbal0503/MightyMammoths-sub000/internal/config"
	"github.com/dbal0503/MightyMammoths-sub000/internal/domain"
	"github.com/dbal0503/MightyMammoths-sub000/internal/metrics"
	"github.com/dbal0503/MightyMammoths-sub000/internal/platform/db"
	"github.com/dbal0503/MightyMammoths-sub000/internal/ports"
	"github.com/dbal0503/MightyMammoths-sub000/internal/schedule"
	"github.com/dbal0503/MightyMammoths-sub000/internal/services"
)

// main is the application composition root.
// It wires concrete adapters (Redis, Postgres, NATS, the directions API)
// behind ports and starts the HTTP server.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	campuses, err := loadCampuses(cfg.CampusPath)
	if err != nil {
		log.Fatal(err)
	}
	timetable, err := loadTimetable(cfg.SchedulePath)
	if err != nil {
		log.Fatal(err)
	}

	collector := metrics.NewCollector()

	// Route responses are cached in Redis when an address is configured;
	// without one every provider call goes to the network.
	var routeCache *cache.RedisRouteCache
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := client.Ping(ctx).Err(); err != nil {
			log.Fatalf("redis ping: %v", err)
		}
		defer client.Close()
		routeCache = cache.NewRedisRouteCache(client, cfg.RouteCacheTTL)
	}

	var pairCache *cache.SQLPairCache
	if cfg.DatabaseURL != "" {
		pool, err := db.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatal(err)
		}
		defer pool.Close()

		pairCache = cache.NewSQLPairCache(pool)
		if err := pairCache.InitSchema(ctx); err != nil {
			log.Fatal(err)
		}
	}

	var generator ports.PlanGenerator
	if cfg.NATSURL != "" {
		nc, err := nats.Connect(cfg.NATSURL)
		if err != nil {
			log.Fatalf("nats connect: %v", err)
		}
		defer nc.Close()

		generator, err = planner.NewNATSPlanGenerator(nc, cfg.PlanSubject, cfg.PlanTimeout)
		if err != nil {
			log.Fatal(err)
		}
	}

	provider, err := gmaps.NewDirectionsProvider(cfg.MapsAPIKey, cfg.MapsBaseURL, routeCache, collector)
	if err != nil {
		log.Fatal(err)
	}

	device := location.NewDeviceGeolocator(domain.Coordinates{Lat: cfg.DeviceLat, Lon: cfg.DeviceLon})
	suggestions := location.NewSuggestionStore()

	resolver := &services.Resolver{
		Campuses:    campuses,
		Suggestions: suggestions,
		Geo:         device,
	}
	shuttle := &services.ShuttleSynthesizer{
		Provider: provider,
		Schedule: timetable,
		Campuses: campuses,
		Metrics:  collector,
	}
	aggregator := &services.Aggregator{
		Resolver: resolver,
		Provider: provider,
		Shuttle:  shuttle,
		Campuses: campuses,
		Metrics:  collector,
	}
	builder := &services.MatrixBuilder{
		Provider:  provider,
		PairCache: pairCache,
		Metrics:   collector,
	}

	router := api.NewRouter(api.Deps{
		Aggregator:  aggregator,
		Builder:     builder,
		Generator:   generator,
		Campuses:    campuses,
		Device:      device,
		Suggestions: suggestions,
	})

	metricsSrv := collector.Serve(cfg.MetricsAddr)

	// Timeouts are tuned for cold-cache aggregation cycles (one external API
	// call per travel mode).
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("Server listening addr=:%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("server shutdown: %v", err)
	}
	if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
		log.Printf("metrics shutdown: %v", err)
	}
}

func loadCampuses(path string) (*campus.Registry, error) {
	if path == "" {
		return campus.Default(), nil
	}
	return campus.Load(path)
}

func loadTimetable(path string) (*schedule.Table, error) {
	if path == "" {
		return schedule.Default(), nil
	}
	return schedule.Load(path)
}
