package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// AppCfg konfigurasi server
type AppCfg struct {
	Port string `mapstructure:"port"`
	Env  string `mapstructure:"env"`
}

// CatalogCfg sumber katalog wilayah
type CatalogCfg struct {
	Source    string        `mapstructure:"source"` // http | meilisearch
	BaseURL   string        `mapstructure:"base_url"`
	Timeout   time.Duration `mapstructure:"timeout"`
	CacheSize int           `mapstructure:"cache_size"`
}

// PostalCfg layanan kode pos
type PostalCfg struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// MeiliCfg koneksi Meilisearch
type MeiliCfg struct {
	URL       string `mapstructure:"url"`
	MasterKey string `mapstructure:"master_key"`
	Index     string `mapstructure:"index"`
}

// HistoryCfg store riwayat
type HistoryCfg struct {
	Backend         string `mapstructure:"backend"` // memory | redis | mongo | hybrid
	RedisURL        string `mapstructure:"redis_url"`
	MongoURL        string `mapstructure:"mongo_url"`
	MongoDatabase   string `mapstructure:"mongo_database"`
	MongoCollection string `mapstructure:"mongo_collection"`
	Prefix          string `mapstructure:"prefix"`
	Limit           int    `mapstructure:"limit"`
}

// ParserCfg parse dan debounce
type ParserCfg struct {
	MinLength         int           `mapstructure:"min_length"`
	DebounceMinLength int           `mapstructure:"debounce_min_length"`
	DebounceQuiet     time.Duration `mapstructure:"debounce_quiet"`
	MaxSessions       int           `mapstructure:"max_sessions"`
}

// Config konfigurasi lengkap
type Config struct {
	App         AppCfg     `mapstructure:"app"`
	Catalog     CatalogCfg `mapstructure:"catalog"`
	Postal      PostalCfg  `mapstructure:"postal"`
	Meilisearch MeiliCfg   `mapstructure:"meilisearch"`
	History     HistoryCfg `mapstructure:"history"`
	Parser      ParserCfg  `mapstructure:"parser"`
}

// Catalog sources
const (
	SourceHTTP        = "http"
	SourceMeilisearch = "meilisearch"
)

// History backends
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
	BackendMongo  = "mongo"
	BackendHybrid = "hybrid"
)

// SetDefaults mengisi default ke instance viper
func SetDefaults(v *viper.Viper) {
	v.SetDefault("app.port", "8080")
	v.SetDefault("app.env", "development")

	v.SetDefault("catalog.source", SourceHTTP)
	v.SetDefault("catalog.base_url", "https://www.emsifa.com/api-wilayah-indonesia/api")
	v.SetDefault("catalog.timeout", 15*time.Second)
	v.SetDefault("catalog.cache_size", 512)

	v.SetDefault("postal.base_url", "https://kodepos.vercel.app")
	v.SetDefault("postal.timeout", 15*time.Second)

	v.SetDefault("meilisearch.url", "http://localhost:7700")
	v.SetDefault("meilisearch.master_key", "")
	v.SetDefault("meilisearch.index", "wilayah")

	v.SetDefault("history.backend", BackendMemory)
	v.SetDefault("history.redis_url", "redis://localhost:6379")
	v.SetDefault("history.mongo_url", "mongodb://localhost:27017")
	v.SetDefault("history.mongo_database", "alamat_parser")
	v.SetDefault("history.mongo_collection", "address_history")
	v.SetDefault("history.prefix", "address:")
	v.SetDefault("history.limit", 10)

	v.SetDefault("parser.min_length", 10)
	v.SetDefault("parser.debounce_min_length", 15)
	v.SetDefault("parser.debounce_quiet", 1500*time.Millisecond)
	v.SetDefault("parser.max_sessions", 1000)
}

// Load membaca .env, config/app.yaml (opsional) dan environment variables.
// Key "catalog.base_url" dibaca dari env CATALOG_BASE_URL.
func Load(paths ...string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("gagal membaca .env: %w", err)
	}

	v := viper.New()
	v.SetConfigName("app")
	v.SetConfigType("yaml")
	if len(paths) == 0 {
		paths = []string{"./config", "."}
	}
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	SetDefaults(v)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("gagal membaca config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("gagal decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate cek nilai enum
func (c *Config) Validate() error {
	switch c.Catalog.Source {
	case SourceHTTP, SourceMeilisearch:
	default:
		return fmt.Errorf("catalog.source tidak dikenal: %q", c.Catalog.Source)
	}
	switch c.History.Backend {
	case BackendMemory, BackendRedis, BackendMongo, BackendHybrid:
	default:
		return fmt.Errorf("history.backend tidak dikenal: %q", c.History.Backend)
	}
	return nil
}

// IsProduction true jika app.env = production
func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}
