// Package app assembles the configured storage, cache and photo backends.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/bin-buddy/Bin-Buddy-Repository/internal/adapters/cache"
	"github.com/bin-buddy/Bin-Buddy-Repository/internal/adapters/memory"
	"github.com/bin-buddy/Bin-Buddy-Repository/internal/adapters/photos"
	"github.com/bin-buddy/Bin-Buddy-Repository/internal/adapters/repositories"
	"github.com/bin-buddy/Bin-Buddy-Repository/internal/config"
	"github.com/bin-buddy/Bin-Buddy-Repository/internal/domain"
	"github.com/bin-buddy/Bin-Buddy-Repository/internal/geo"
	"github.com/bin-buddy/Bin-Buddy-Repository/internal/platform/db"
	"github.com/bin-buddy/Bin-Buddy-Repository/internal/ports"
	"github.com/bin-buddy/Bin-Buddy-Repository/internal/seed"
	"github.com/bin-buddy/Bin-Buddy-Repository/internal/services"
	"github.com/redis/go-redis/v9"
)

// Stores holds the repositories selected by configuration.
// DB is nil for the memory store.
type Stores struct {
	Clients ports.ClientRepository
	Zones   ports.ZoneRepository
	DB      *sql.DB
	Dialect db.Dialect
}

func (s *Stores) Close() error {
	if s.DB == nil {
		return nil
	}
	return s.DB.Close()
}

// SeedData returns the startup clients and zones: the JSON seed file when
// configured, the seeded generator otherwise.
func SeedData(cfg *config.Config) ([]domain.Client, []domain.Zone, error) {
	zones := seed.DefaultZones()

	if cfg.SeedPath != "" {
		clients, err := seed.LoadClients(cfg.SeedPath)
		if err != nil {
			return nil, nil, fmt.Errorf("seed data: %w", err)
		}
		return clients, zones, nil
	}

	return seed.NewGenerator(cfg.Seed).Clients(cfg.SeedClients), zones, nil
}

// OpenDatabase opens and migrates the SQL database of a sqlite or postgres store.
func OpenDatabase(ctx context.Context, cfg *config.Config) (*sql.DB, db.Dialect, error) {
	var (
		conn    *sql.DB
		dialect db.Dialect
		err     error
	)
	switch cfg.Store {
	case config.StoreSQLite:
		if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755); err != nil {
			return nil, 0, fmt.Errorf("open database: %w", err)
		}
		conn, err = db.OpenSQLite(cfg.DBPath)
		dialect = db.SQLite
	case config.StorePostgres:
		conn, err = db.OpenPostgres(cfg.DatabaseURL)
		dialect = db.Postgres
	default:
		return nil, 0, fmt.Errorf("open database: store %q has no database", cfg.Store)
	}
	if err != nil {
		return nil, 0, fmt.Errorf("open database: %w", err)
	}

	if err := repositories.InitSchema(ctx, conn); err != nil {
		conn.Close()
		return nil, 0, fmt.Errorf("open database: %w", err)
	}

	return conn, dialect, nil
}

// OpenStores builds the client and zone repositories and loads seed data
// into them. SQL stores are only seeded when empty.
func OpenStores(ctx context.Context, cfg *config.Config) (*Stores, error) {
	clients, zones, err := SeedData(cfg)
	if err != nil {
		return nil, fmt.Errorf("open stores: %w", err)
	}

	if cfg.Store == config.StoreMemory {
		clientRepo, err := memory.NewClientRepository(clients)
		if err != nil {
			return nil, fmt.Errorf("open stores: %w", err)
		}
		log.Printf("store=memory clients=%d zones=%d", len(clients), len(zones))
		return &Stores{Clients: clientRepo, Zones: memory.NewZoneRepository(zones)}, nil
	}

	conn, dialect, err := OpenDatabase(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("open stores: %w", err)
	}

	seeded, err := repositories.SeedIfEmpty(ctx, conn, dialect, clients, zones)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open stores: %w", err)
	}
	log.Printf("store=%s seeded=%t", dialect, seeded)

	return &Stores{
		Clients: repositories.NewSQLClientRepository(conn, dialect),
		Zones:   repositories.NewSQLZoneRepository(conn, dialect),
		DB:      conn,
		Dialect: dialect,
	}, nil
}

// DistanceProvider returns the geodesic provider, wrapped in the configured cache.
// The returned close func releases cache connections.
func DistanceProvider(ctx context.Context, cfg *config.Config, stores *Stores) (ports.DistanceProvider, func() error, error) {
	noop := func() error { return nil }
	base := geo.Geodesic{}

	switch cfg.DistanceCache {
	case config.CacheNone:
		return base, noop, nil
	case config.CacheMemory:
		return services.NewCachedDistance(base, cache.NewMemoryDistanceCache(cfg.CacheTTL)), noop, nil
	case config.CacheRedis:
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, nil, fmt.Errorf("distance provider: ping redis %q: %w", cfg.RedisAddr, err)
		}
		return services.NewCachedDistance(base, cache.NewRedisDistanceCache(client, cfg.CacheTTL)), client.Close, nil
	case config.CacheSQL:
		if stores == nil || stores.DB == nil {
			return nil, nil, fmt.Errorf("distance provider: sql cache needs a sql store")
		}
		return services.NewCachedDistance(base, cache.NewSQLDistanceCache(stores.DB, stores.Dialect)), noop, nil
	default:
		return nil, nil, fmt.Errorf("distance provider: unknown cache %q", cfg.DistanceCache)
	}
}

// PhotoStore returns the S3 photo store, or nil when uploads are not configured.
func PhotoStore(ctx context.Context, cfg *config.Config) (ports.PhotoStore, error) {
	if !cfg.PhotosEnabled() {
		return nil, nil
	}

	store, err := photos.NewS3PhotoStore(ctx, photos.S3Config{
		Bucket:           cfg.S3.Bucket,
		Region:           cfg.S3.Region,
		AccessKeyID:      cfg.S3.AccessKeyID,
		SecretAccessKey:  cfg.S3.SecretAccessKey,
		CloudFrontDomain: cfg.S3.CloudFrontDomain,
	})
	if err != nil {
		return nil, fmt.Errorf("photo store: %w", err)
	}
	return store, nil
}
