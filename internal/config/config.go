package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix namespaces environment overrides, e.g. STOREFRONT_REDIS_HOST.
const EnvPrefix = "STOREFRONT"

const (
	CartStoreRedis  = "redis"
	CartStoreMemory = "memory"

	CatalogSourceFile     = "file"
	CatalogSourcePostgres = "postgres"
)

type Config struct {
	Environment string         `json:"environment"`
	Server      ServerConfig   `json:"server"`
	Storefronts string         `json:"storefronts_path" split_words:"true"`
	Cart        CartConfig     `json:"cart"`
	Checkout    CheckoutConfig `json:"checkout"`
	Catalog     CatalogConfig  `json:"catalog"`
	Database    DatabaseConfig `json:"database"`
	Redis       RedisConfig    `json:"redis"`
}

type ServerConfig struct {
	Host            string `json:"host"`
	Port            int    `json:"port"`
	ReadTimeout     int    `json:"read_timeout_seconds" split_words:"true"`
	WriteTimeout    int    `json:"write_timeout_seconds" split_words:"true"`
	ShutdownTimeout int    `json:"shutdown_timeout_seconds" split_words:"true"`
	SessionCookie   string `json:"session_cookie" split_words:"true"`
	SecureCookie    bool   `json:"secure_cookie" split_words:"true"`
	// MetricsAddr moves /metrics to its own listener when set.
	MetricsAddr string `json:"metrics_addr" split_words:"true"`
	// AllowedOrigins may call the API with the session cookie from another
	// origin. Empty means same-origin only.
	AllowedOrigins []string `json:"allowed_origins" split_words:"true"`
}

type CartConfig struct {
	Store    string `json:"store"`
	TTLHours int    `json:"ttl_hours" envconfig:"TTL_HOURS"`
}

type CheckoutConfig struct {
	SubmitWindowMs int `json:"submit_window_ms" envconfig:"SUBMIT_WINDOW_MS"`
	ToastDismissMs int `json:"toast_dismiss_ms" envconfig:"TOAST_DISMISS_MS"`
}

type CatalogConfig struct {
	Source         string `json:"source"`
	RefreshSeconds int    `json:"refresh_seconds" split_words:"true"`
}

type DatabaseConfig struct {
	Host           string `json:"host"`
	Port           int    `json:"port"`
	User           string `json:"user"`
	Password       string `json:"password"`
	DBName         string `json:"dbname" envconfig:"DBNAME"`
	SSLMode        string `json:"sslmode" envconfig:"SSLMODE"`
	MigrationsPath string `json:"migrations_path" split_words:"true"`
}

type RedisConfig struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	Password string `json:"password"`
	DB       int    `json:"db"`
	PoolSize int    `json:"pool_size" split_words:"true"`
}

// LoadConfig reads the JSON file at path, then applies a .env file next to
// the process (when present) and STOREFRONT_* environment overrides.
func LoadConfig(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var config Config
	decoder := json.NewDecoder(file)
	if err := decoder.Decode(&config); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	if err := envconfig.Process(EnvPrefix, &config); err != nil {
		return nil, fmt.Errorf("environment overrides: %w", err)
	}

	config.applyDefaults()
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c *Config) applyDefaults() {
	if c.Environment == "" {
		c.Environment = "production"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 10
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 10
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 30
	}
	if c.Server.SessionCookie == "" {
		c.Server.SessionCookie = "storefront_session"
	}
	if c.Storefronts == "" {
		c.Storefronts = "storefronts.yaml"
	}
	if c.Cart.Store == "" {
		c.Cart.Store = CartStoreRedis
	}
	if c.Cart.TTLHours == 0 {
		c.Cart.TTLHours = 30 * 24
	}
	if c.Checkout.SubmitWindowMs == 0 {
		c.Checkout.SubmitWindowMs = 2000
	}
	if c.Checkout.ToastDismissMs == 0 {
		c.Checkout.ToastDismissMs = 3000
	}
	if c.Catalog.Source == "" {
		c.Catalog.Source = CatalogSourceFile
	}
	if c.Catalog.RefreshSeconds == 0 {
		c.Catalog.RefreshSeconds = 60
	}
	if c.Redis.PoolSize == 0 {
		c.Redis.PoolSize = 100
	}
	if c.Database.MigrationsPath == "" {
		c.Database.MigrationsPath = "migrations"
	}
}

func (c *Config) Validate() error {
	switch c.Cart.Store {
	case CartStoreRedis, CartStoreMemory:
	default:
		return fmt.Errorf("unknown cart store %q", c.Cart.Store)
	}

	switch c.Catalog.Source {
	case CatalogSourceFile, CatalogSourcePostgres:
	default:
		return fmt.Errorf("unknown catalog source %q", c.Catalog.Source)
	}

	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return errors.New("server port out of range")
	}

	return nil
}

func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// TTL is zero, meaning no expiry, when ttl_hours is negative.
func (c CartConfig) TTL() time.Duration {
	if c.TTLHours < 0 {
		return 0
	}
	return time.Duration(c.TTLHours) * time.Hour
}

// SubmitWindow is zero, disabling the guard, when submit_window_ms is negative.
func (c CheckoutConfig) SubmitWindow() time.Duration {
	if c.SubmitWindowMs < 0 {
		return 0
	}
	return time.Duration(c.SubmitWindowMs) * time.Millisecond
}

func (c CheckoutConfig) ToastDismiss() time.Duration {
	return time.Duration(c.ToastDismissMs) * time.Millisecond
}

func (c CatalogConfig) RefreshInterval() time.Duration {
	return time.Duration(c.RefreshSeconds) * time.Second
}

func (c *DatabaseConfig) GetDSN() string {
	return "host=" + c.Host +
		" port=" + strconv.Itoa(c.Port) +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.DBName +
		" sslmode=" + c.SSLMode
}

func (c *RedisConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
