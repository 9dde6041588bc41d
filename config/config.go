// Package config resolves the runtime configuration. It merges file defaults
// and environment overrides to support both local and deployed runs.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Stock models supported by the order recorder (see the stock overlay in the
// catalog package).
const (
	StockStatic           = "static"
	StockDecrementOnOrder = "decrement_on_order"
)

// Store backends.
const (
	BackendMemory   = "memory"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

// Config is the resolved runtime configuration.
type Config struct {
	ListenAddr string

	StoreBackend string
	RedisURL     string
	PostgresDSN  string

	CatalogSource  string
	CatalogTimeout time.Duration

	JWTSecret  string
	TokenTTL   time.Duration
	BcryptCost int

	StockModel string
}

// configFile mirrors the YAML schema used by configs/default.yaml.
type configFile struct {
	Server struct {
		Addr string `yaml:"addr"`
	} `yaml:"server"`
	Store struct {
		Backend     string `yaml:"backend"`
		RedisURL    string `yaml:"redis_url"`
		PostgresDSN string `yaml:"postgres_dsn"`
	} `yaml:"store"`
	Catalog struct {
		Source         string `yaml:"source"`
		TimeoutSeconds int    `yaml:"timeout_seconds"`
	} `yaml:"catalog"`
	Auth struct {
		JWTSecret       string `yaml:"jwt_secret"`
		TokenTTLMinutes int    `yaml:"token_ttl_minutes"`
		BcryptCost      int    `yaml:"bcrypt_cost"`
	} `yaml:"auth"`
	StockModel string `yaml:"stock_model"`
}

// Load reads the optional YAML file at path and applies environment
// overrides on top of the defaults.
func Load(path string) (Config, error) {
	cfg := Config{
		ListenAddr:     ":8080",
		StoreBackend:   BackendMemory,
		CatalogSource:  "data/products.json",
		CatalogTimeout: 10 * time.Second,
		JWTSecret:      "dev-secret-change-me",
		TokenTTL:       time.Hour,
		StockModel:     StockStatic,
	}

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		var file configFile
		if err := yaml.Unmarshal(raw, &file); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
		applyFile(&cfg, file)
	}
	applyEnv(&cfg)

	if cfg.StockModel != StockStatic && cfg.StockModel != StockDecrementOnOrder {
		return Config{}, fmt.Errorf("unknown stock_model %q", cfg.StockModel)
	}
	switch cfg.StoreBackend {
	case BackendMemory, BackendRedis, BackendPostgres:
	default:
		return Config{}, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
	return cfg, nil
}

func applyFile(cfg *Config, file configFile) {
	if file.Server.Addr != "" {
		cfg.ListenAddr = file.Server.Addr
	}
	if file.Store.Backend != "" {
		cfg.StoreBackend = file.Store.Backend
	}
	if file.Store.RedisURL != "" {
		cfg.RedisURL = file.Store.RedisURL
	}
	if file.Store.PostgresDSN != "" {
		cfg.PostgresDSN = file.Store.PostgresDSN
	}
	if file.Catalog.Source != "" {
		cfg.CatalogSource = file.Catalog.Source
	}
	if file.Catalog.TimeoutSeconds > 0 {
		cfg.CatalogTimeout = time.Duration(file.Catalog.TimeoutSeconds) * time.Second
	}
	if file.Auth.JWTSecret != "" {
		cfg.JWTSecret = file.Auth.JWTSecret
	}
	if file.Auth.TokenTTLMinutes > 0 {
		cfg.TokenTTL = time.Duration(file.Auth.TokenTTLMinutes) * time.Minute
	}
	if file.Auth.BcryptCost > 0 {
		cfg.BcryptCost = file.Auth.BcryptCost
	}
	if file.StockModel != "" {
		cfg.StockModel = file.StockModel
	}
}

func applyEnv(cfg *Config) {
	setString(&cfg.ListenAddr, "STOREFRONT_ADDR")
	setString(&cfg.StoreBackend, "STOREFRONT_STORE_BACKEND")
	setString(&cfg.RedisURL, "STOREFRONT_REDIS_URL")
	setString(&cfg.PostgresDSN, "STOREFRONT_POSTGRES_DSN")
	setString(&cfg.CatalogSource, "STOREFRONT_CATALOG_SOURCE")
	setString(&cfg.JWTSecret, "STOREFRONT_JWT_SECRET")
	setString(&cfg.StockModel, "STOREFRONT_STOCK_MODEL")
	if v := os.Getenv("STOREFRONT_TOKEN_TTL_MINUTES"); v != "" {
		if minutes, err := strconv.Atoi(v); err == nil && minutes > 0 {
			cfg.TokenTTL = time.Duration(minutes) * time.Minute
		}
	}
	if v := os.Getenv("STOREFRONT_BCRYPT_COST"); v != "" {
		if cost, err := strconv.Atoi(v); err == nil && cost > 0 {
			cfg.BcryptCost = cost
		}
	}
}

func setString(dst *string, env string) {
	if v := os.Getenv(env); v != "" {
		*dst = v
	}
}
