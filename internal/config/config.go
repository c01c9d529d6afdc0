// Package config loads service settings from the environment (and an optional .env file).
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bin-buddy/Bin-Buddy-Repository/internal/domain"
	"github.com/spf13/viper"
)

const (
	StoreMemory   = "memory"
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"

	CacheNone   = "none"
	CacheMemory = "memory"
	CacheRedis  = "redis"
	CacheSQL    = "sql"
)

type S3Config struct {
	Bucket           string
	Region           string
	AccessKeyID      string
	SecretAccessKey  string
	CloudFrontDomain string
}

// Config holds all application configuration.
type Config struct {
	Port             string
	Store            string
	DBPath           string
	DatabaseURL      string
	DistanceCache    string
	CacheTTL         time.Duration
	RedisAddr        string
	Depot            domain.Coordinates
	StrictZones      bool
	RecomputeBilling bool
	Seed             uint64
	SeedClients      int
	SeedPath         string
	CORSOrigins      []string
	S3               S3Config
}

// Load reads configuration from environment variables with defaults.
func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", "5000")
	v.SetDefault("STORE", StoreMemory)
	v.SetDefault("DB_PATH", "data/app.db")
	v.SetDefault("DISTANCE_CACHE", CacheMemory)
	v.SetDefault("CACHE_TTL_SECONDS", 3600)
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("DEPOT_LAT", 33.605)
	v.SetDefault("DEPOT_LNG", -111.935)
	v.SetDefault("STRICT_ZONES", false)
	v.SetDefault("RECOMPUTE_BILLING", false)
	v.SetDefault("SEED", 1)
	v.SetDefault("SEED_CLIENTS", 30)
	v.SetDefault("CORS_ORIGINS", "*")
	v.SetDefault("S3_REGION", "us-west-2")

	// Touch keys without defaults so AutomaticEnv picks them up in Get.
	for _, k := range []string{"DATABASE_URL", "SEED_PATH", "S3_BUCKET", "S3_ACCESS_KEY_ID", "S3_SECRET_ACCESS_KEY", "S3_CLOUDFRONT_DOMAIN"} {
		_ = v.BindEnv(k)
	}

	cfg := &Config{
		Port:             v.GetString("PORT"),
		Store:            strings.ToLower(strings.TrimSpace(v.GetString("STORE"))),
		DBPath:           v.GetString("DB_PATH"),
		DatabaseURL:      v.GetString("DATABASE_URL"),
		DistanceCache:    strings.ToLower(strings.TrimSpace(v.GetString("DISTANCE_CACHE"))),
		CacheTTL:         time.Duration(v.GetInt("CACHE_TTL_SECONDS")) * time.Second,
		RedisAddr:        v.GetString("REDIS_ADDR"),
		Depot:            domain.Coordinates{Lat: v.GetFloat64("DEPOT_LAT"), Lng: v.GetFloat64("DEPOT_LNG")},
		StrictZones:      v.GetBool("STRICT_ZONES"),
		RecomputeBilling: v.GetBool("RECOMPUTE_BILLING"),
		Seed:             v.GetUint64("SEED"),
		SeedClients:      v.GetInt("SEED_CLIENTS"),
		SeedPath:         v.GetString("SEED_PATH"),
		CORSOrigins:      splitList(v.GetString("CORS_ORIGINS")),
		S3: S3Config{
			Bucket:           v.GetString("S3_BUCKET"),
			Region:           v.GetString("S3_REGION"),
			AccessKeyID:      v.GetString("S3_ACCESS_KEY_ID"),
			SecretAccessKey:  v.GetString("S3_SECRET_ACCESS_KEY"),
			CloudFrontDomain: v.GetString("S3_CLOUDFRONT_DOMAIN"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the selected backends have what they need.
func (c *Config) Validate() error {
	var errs []error

	switch c.Store {
	case StoreMemory:
	case StoreSQLite:
		if strings.TrimSpace(c.DBPath) == "" {
			errs = append(errs, errors.New("DB_PATH is required for STORE=sqlite"))
		}
	case StorePostgres:
		if strings.TrimSpace(c.DatabaseURL) == "" {
			errs = append(errs, errors.New("DATABASE_URL is required for STORE=postgres"))
		}
	default:
		errs = append(errs, fmt.Errorf("STORE must be memory, sqlite or postgres, got %q", c.Store))
	}

	switch c.DistanceCache {
	case CacheNone, CacheMemory:
	case CacheRedis:
		if strings.TrimSpace(c.RedisAddr) == "" {
			errs = append(errs, errors.New("REDIS_ADDR is required for DISTANCE_CACHE=redis"))
		}
	case CacheSQL:
		if c.Store == StoreMemory {
			errs = append(errs, errors.New("DISTANCE_CACHE=sql needs STORE=sqlite or STORE=postgres"))
		}
	default:
		errs = append(errs, fmt.Errorf("DISTANCE_CACHE must be none, memory, redis or sql, got %q", c.DistanceCache))
	}

	if !c.Depot.Valid() {
		errs = append(errs, fmt.Errorf("depot %v is not a valid coordinate", c.Depot))
	}
	if c.SeedClients < 0 {
		errs = append(errs, fmt.Errorf("SEED_CLIENTS must not be negative, got %d", c.SeedClients))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}

// PhotosEnabled reports whether photo uploads are configured.
func (c *Config) PhotosEnabled() bool {
	return c.S3.Bucket != ""
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
