package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"

	"catalog-editor/db"
	"catalog-editor/service"
)

// Config holds all settings of the catalog editor service
type Config struct {
	Env  string `envconfig:"ENV" default:"development"`
	Port string `envconfig:"PORT" default:"8080"`

	CatalogAPI CatalogAPIConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	Drive      DriveConfig
	Image      ImageConfig

	SessionIdleTimeout time.Duration `envconfig:"SESSION_IDLE_TIMEOUT" default:"2h"`
}

// CatalogAPIConfig points at the catalog backend
type CatalogAPIConfig struct {
	BaseURL           string        `envconfig:"CATALOG_API_URL" required:"true"`
	Token             string        `envconfig:"CATALOG_API_TOKEN"`
	Timeout           time.Duration `envconfig:"CATALOG_API_TIMEOUT" default:"30s"`
	CreatePath        string        `envconfig:"CATALOG_API_CREATE_PATH" default:"/product-catalog/create"`
	UpdatePath        string        `envconfig:"CATALOG_API_UPDATE_PATH" default:"/product-catalog/update/"`
	FocusProductsPath string        `envconfig:"CATALOG_API_FOCUS_PRODUCTS_PATH" default:"/focus/products"`
	StatesPath        string        `envconfig:"CATALOG_API_STATES_PATH" default:"/states"`
	ZonesPath         string        `envconfig:"CATALOG_API_ZONES_PATH" default:"/zones"`
	DistrictsPath     string        `envconfig:"CATALOG_API_DISTRICTS_PATH" default:"/districts"`
}

// DatabaseConfig is the optional submission journal database
type DatabaseConfig struct {
	URL      string `envconfig:"DATABASE_URL"`
	Host     string `envconfig:"DB_HOST"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER"`
	Password string `envconfig:"DB_PASSWORD"`
	Name     string `envconfig:"DB_NAME"`
	SSLMode  string `envconfig:"DB_SSLMODE" default:"disable"`
}

// RedisConfig is the optional lookup cache
type RedisConfig struct {
	Addr     string        `envconfig:"REDIS_ADDR"`
	Password string        `envconfig:"REDIS_PASSWORD"`
	DB       int           `envconfig:"REDIS_DB" default:"0"`
	TTL      time.Duration `envconfig:"LOOKUP_CACHE_TTL" default:"10m"`
}

// DriveConfig enables importing product images from Google Drive
type DriveConfig struct {
	CredentialsPath string `envconfig:"GOOGLE_APPLICATION_CREDENTIALS"`
	CredentialsJSON string `envconfig:"GOOGLE_APPLICATION_CREDENTIALS_JSON"`
}

// ImageConfig controls how uploaded images are re-encoded
type ImageConfig struct {
	MaxDimension int   `envconfig:"IMAGE_MAX_DIMENSION" default:"1200"`
	Quality      int   `envconfig:"IMAGE_QUALITY" default:"85"`
	MaxUpload    int64 `envconfig:"IMAGE_MAX_UPLOAD_BYTES" default:"10485760"`
}

// Load reads the configuration from environment variables
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	// PORT from some hosts comes with a leading colon
	if len(cfg.Port) > 0 && cfg.Port[0] == ':' {
		cfg.Port = cfg.Port[1:]
	}
	return &cfg, nil
}

// Addr is the listen address
func (c *Config) Addr() string {
	return "0.0.0.0:" + c.Port
}

// IsProduction reports whether ENV is production
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// DBSettings converts the database section for the db package
func (c *Config) DBSettings() db.Settings {
	return db.Settings{
		URL:      c.Database.URL,
		Host:     c.Database.Host,
		Port:     c.Database.Port,
		User:     c.Database.User,
		Password: c.Database.Password,
		Name:     c.Database.Name,
		SSLMode:  c.Database.SSLMode,
	}
}

// CatalogClientConfig converts the catalog API section for the service package
func (c *Config) CatalogClientConfig() service.CatalogClientConfig {
	return service.CatalogClientConfig{
		BaseURL: c.CatalogAPI.BaseURL,
		Token:   c.CatalogAPI.Token,
		Timeout: c.CatalogAPI.Timeout,
		Paths: service.APIPaths{
			CreateCatalog: c.CatalogAPI.CreatePath,
			UpdateCatalog: c.CatalogAPI.UpdatePath,
			FocusProducts: c.CatalogAPI.FocusProductsPath,
			States:        c.CatalogAPI.StatesPath,
			Zones:         c.CatalogAPI.ZonesPath,
			Districts:     c.CatalogAPI.DistrictsPath,
		},
	}
}
