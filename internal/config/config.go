package config

import (
	"errors"
	"fmt"
	"time"
)

const (
	defaultServerPort     = 8060
	defaultServerTimeout  = 30
	defaultGatewayTimeout = 8 * time.Second
	defaultCacheTTL       = 5 * time.Minute
	defaultPostLimit      = 20
	defaultRedisAddress   = "localhost:6379"
	defaultIndexNowAPI    = "https://api.indexnow.org/indexnow"
)

type Config struct {
	Debug    bool           `env:"APP_DEBUG" yaml:"debug"`
	LogLevel string         `env:"LOG_LEVEL" yaml:"log_level"`
	Server   ServerConfig   `yaml:"server"`
	Content  ContentConfig  `yaml:"content"`
	Redis    RedisConfig    `yaml:"redis"`
	IndexNow IndexNowConfig `yaml:"indexnow"`
	Site     SiteConfig     `yaml:"site"`
}

type ServerConfig struct {
	Host         string        `env:"SERVER_HOST"  yaml:"host"`
	Port         int           `env:"SERVER_PORT"  yaml:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	CORSOrigins  []string      `env:"CORS_ORIGINS" yaml:"cors_origins"`
}

// ContentConfig configures the hybrid content-resolution layer.
type ContentConfig struct {
	Tenant         string        `env:"CONTENT_TENANT"          yaml:"tenant"`
	APIBaseURL     string        `env:"CONTENT_API_URL"         yaml:"api_base_url"`
	GatewayTimeout time.Duration `env:"CONTENT_GATEWAY_TIMEOUT" yaml:"gateway_timeout"`
	DefaultLimit   int           `env:"CONTENT_DEFAULT_LIMIT"   yaml:"default_limit"`
	CacheTTL       time.Duration `env:"CONTENT_CACHE_TTL"       yaml:"cache_ttl"`
	CacheBackend   string        `env:"CONTENT_CACHE_BACKEND"   yaml:"cache_backend"` // "memory" or "redis"
}

// RedisConfig holds the Redis connection used by the redis cache backend
// and the resolution event stream.
type RedisConfig struct {
	Address  string `env:"REDIS_ADDRESS"        yaml:"address"`
	Password string `env:"REDIS_PASSWORD"       yaml:"password"`
	DB       int    `env:"REDIS_DB"             yaml:"db"`
	Enabled  bool   `env:"REDIS_EVENTS_ENABLED" yaml:"enabled"` // Feature flag for event publishing
}

// IndexNowConfig configures search-engine notification submissions.
type IndexNowConfig struct {
	Endpoint string `env:"INDEXNOW_ENDPOINT" yaml:"endpoint"`
	Key      string `env:"INDEXNOW_KEY"      yaml:"key"`
	Enabled  bool   `env:"INDEXNOW_ENABLED"  yaml:"enabled"`
}

// SiteConfig describes the public site, used by the feed and sitemap
// builders and for IndexNow URL construction.
type SiteConfig struct {
	BaseURL     string `env:"SITE_BASE_URL" yaml:"base_url"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
}

func (c *Config) Validate() error {
	if c.Server.Host == "" {
		return errors.New("server.host is required")
	}
	if c.Server.Port <= 0 {
		return errors.New("server.port is required and must be positive")
	}
	if c.Content.Tenant == "" {
		return errors.New("content.tenant is required")
	}
	if c.Content.APIBaseURL == "" {
		return errors.New("content.api_base_url is required")
	}
	if c.Content.CacheBackend != "memory" && c.Content.CacheBackend != "redis" {
		return fmt.Errorf("content.cache_backend must be \"memory\" or \"redis\", got %q", c.Content.CacheBackend)
	}
	if c.Site.BaseURL == "" {
		return errors.New("site.base_url is required")
	}
	if c.IndexNow.Enabled && c.IndexNow.Key == "" {
		return errors.New("indexnow.key is required when indexnow is enabled")
	}
	return nil
}

func Load(path string) (*Config, error) {
	var cfg Config
	if err := loadFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	setDefaults(&cfg)
	// Re-apply env overrides after defaults (env always wins)
	applyEnvOverrides(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "0.0.0.0"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = defaultServerPort
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = defaultServerTimeout * time.Second
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = defaultServerTimeout * time.Second
	}
	if len(cfg.Server.CORSOrigins) == 0 {
		cfg.Server.CORSOrigins = []string{
			"http://localhost:3000", // Marketing site frontend
			"http://localhost:3001", // Admin dashboard
		}
	}
	if cfg.Content.GatewayTimeout == 0 {
		cfg.Content.GatewayTimeout = defaultGatewayTimeout
	}
	if cfg.Content.DefaultLimit == 0 {
		cfg.Content.DefaultLimit = defaultPostLimit
	}
	if cfg.Content.CacheTTL == 0 {
		cfg.Content.CacheTTL = defaultCacheTTL
	}
	if cfg.Content.CacheBackend == "" {
		cfg.Content.CacheBackend = "memory"
	}
	if cfg.Redis.Address == "" {
		cfg.Redis.Address = defaultRedisAddress
	}
	if cfg.IndexNow.Endpoint == "" {
		cfg.IndexNow.Endpoint = defaultIndexNowAPI
	}
	if cfg.Site.Title == "" {
		cfg.Site.Title = "PukaDigital"
	}
}
