package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
	"github.com/subosito/gotenv"
)

const configSection = "aggregator"

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	HotelAPI HotelAPIConfig `mapstructure:"hotel_api"`
	Polling  PollingConfig  `mapstructure:"polling"`
	Search   SearchConfig   `mapstructure:"search"`
	Rooms    RoomsConfig    `mapstructure:"rooms"`
	Cache    CacheConfig    `mapstructure:"cache"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Database DatabaseConfig `mapstructure:"database"`
	RabbitMQ RabbitMQConfig `mapstructure:"rabbitmq"`
	Auth     AuthConfig     `mapstructure:"auth"`
}

type ServerConfig struct {
	Host              string        `mapstructure:"host"`
	Port              int           `mapstructure:"port"`
	ReadTimeout       time.Duration `mapstructure:"read_timeout"`
	WriteTimeout      time.Duration `mapstructure:"write_timeout"`
	IdleTimeout       time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdown_timeout"`
	EnableCORS        bool          `mapstructure:"enable_cors"`
	RateLimit         float64       `mapstructure:"rate_limit"`
	RateBurst         int           `mapstructure:"rate_burst"`
	RateLimitIdleTTL  time.Duration `mapstructure:"rate_limit_idle_ttl"`
	TrustForwardedFor bool          `mapstructure:"trust_forwarded_for"`
}

type LoggingConfig struct {
	Level string `mapstructure:"level"`
}

type HotelAPIConfig struct {
	BaseURL        string               `mapstructure:"base_url"`
	APIKey         string               `mapstructure:"api_key"`
	Timeout        time.Duration        `mapstructure:"timeout"`
	RateLimit      float64              `mapstructure:"rate_limit"`
	BurstLimit     int                  `mapstructure:"burst_limit"`
	CircuitBreaker CircuitBreakerConfig `mapstructure:"circuit_breaker"`
}

type CircuitBreakerConfig struct {
	MaxRequests         uint32        `mapstructure:"max_requests"`
	Interval            time.Duration `mapstructure:"interval"`
	Timeout             time.Duration `mapstructure:"timeout"`
	ConsecutiveFailures uint32        `mapstructure:"consecutive_failures"`
}

type PollingConfig struct {
	MaxAttempts int           `mapstructure:"max_attempts"`
	Interval    time.Duration `mapstructure:"interval"`
}

type SearchConfig struct {
	PartnerID   int    `mapstructure:"partner_id"`
	Currency    string `mapstructure:"currency"`
	CountryCode string `mapstructure:"country_code"`
	LandingPage string `mapstructure:"landing_page"`
	ProductType string `mapstructure:"product_type"`
	Lang        string `mapstructure:"lang"`
}

type RoomsConfig struct {
	Lang        string `mapstructure:"lang"`
	Currency    string `mapstructure:"currency"`
	CountryCode string `mapstructure:"country_code"`
	PartnerID   string `mapstructure:"partner_id"`
}

type CacheConfig struct {
	Prefix      string        `mapstructure:"prefix"`
	MetadataTTL time.Duration `mapstructure:"metadata_ttl"`
}

type RedisConfig struct {
	Enabled      bool          `mapstructure:"enabled"`
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	Password     string        `mapstructure:"password"`
	Database     int           `mapstructure:"database"`
	PoolSize     int           `mapstructure:"pool_size"`
	DialTimeout  time.Duration `mapstructure:"dial_timeout"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

type DatabaseConfig struct {
	Host               string        `mapstructure:"host"`
	Port               int           `mapstructure:"port"`
	Username           string        `mapstructure:"username"`
	Password           string        `mapstructure:"password"`
	Database           string        `mapstructure:"database"`
	SSLMode            string        `mapstructure:"ssl_mode"`
	MaxOpenConnections int           `mapstructure:"max_open_connections"`
	MaxIdleConnections int           `mapstructure:"max_idle_connections"`
	ConnMaxLife        time.Duration `mapstructure:"conn_max_life"`
}

type RabbitMQConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	URL     string `mapstructure:"url"`
	Queue   string `mapstructure:"queue"`
}

type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret"`
	Issuer    string `mapstructure:"issuer"`
}

func LoadConfig() (*Config, error) {
	return LoadConfigFrom("..")
}

// LoadConfigFrom reads config.yaml from path, with .env files and environment
// variables taking precedence.
func LoadConfigFrom(path string) (*Config, error) {
	if err := gotenv.Load(path + "/.env"); err != nil {
		_ = gotenv.Load()
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(path)
	v.AddConfigPath(".")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	// Unmarshal walks every known key, so nested defaults and environment
	// overrides are merged into the section.
	var root struct {
		Aggregator Config `mapstructure:"aggregator"`
	}
	if err := v.Unmarshal(&root); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	config := root.Aggregator

	expandConfigEnvVars(&config)

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	prefix := configSection + "."
	defaults := map[string]any{
		"server.host":                       "0.0.0.0",
		"server.port":                       8080,
		"server.read_timeout":               "15s",
		"server.write_timeout":              "60s",
		"server.idle_timeout":               "60s",
		"server.shutdown_timeout":           "30s",
		"server.rate_limit":                 10.0,
		"server.rate_burst":                 20,
		"server.rate_limit_idle_ttl":        "10m",
		"server.trust_forwarded_for":        false,
		"logging.level":                     "info",
		"hotel_api.timeout":                 "10s",
		"hotel_api.circuit_breaker.timeout": "30s",
		"polling.max_attempts":              5,
		"polling.interval":                  "5s",
		"search.partner_id":                 1089,
		"search.currency":                   "USD",
		"search.country_code":               "US",
		"search.landing_page":               "wl-acme-earn",
		"search.product_type":               "earn",
		"search.lang":                       "en_US",
		"rooms.lang":                        "en_US",
		"rooms.currency":                    "SGD",
		"rooms.country_code":                "SG",
		"rooms.partner_id":                  "1",
		"cache.prefix":                      "aggregator:",
		"cache.metadata_ttl":                "10m",
		"rabbitmq.queue":                    "bookings",
	}
	for key, value := range defaults {
		v.SetDefault(prefix+key, value)
	}
	v.SetDefault(prefix+"hotel_api.circuit_breaker.consecutive_failures", 5)
}

func expandConfigEnvVars(config *Config) {
	config.Server.Host = os.ExpandEnv(config.Server.Host)

	config.HotelAPI.BaseURL = os.ExpandEnv(config.HotelAPI.BaseURL)
	config.HotelAPI.APIKey = os.ExpandEnv(config.HotelAPI.APIKey)

	config.Database.Host = os.ExpandEnv(config.Database.Host)
	config.Database.Username = os.ExpandEnv(config.Database.Username)
	config.Database.Password = os.ExpandEnv(config.Database.Password)
	config.Database.Database = os.ExpandEnv(config.Database.Database)
	config.Database.SSLMode = os.ExpandEnv(config.Database.SSLMode)

	config.Redis.Host = os.ExpandEnv(config.Redis.Host)
	config.Redis.Password = os.ExpandEnv(config.Redis.Password)

	config.RabbitMQ.URL = os.ExpandEnv(config.RabbitMQ.URL)

	config.Auth.JWTSecret = os.ExpandEnv(config.Auth.JWTSecret)
}

func (c *DatabaseConfig) DSN() string {
	sslMode := c.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.Username, c.Password, c.Database, sslMode)
}

func (c *RedisConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func (c *Config) Validate() error {
	if c.HotelAPI.BaseURL == "" {
		return fmt.Errorf("hotel API base URL is required")
	}

	if !strings.HasPrefix(c.HotelAPI.BaseURL, "http://") && !strings.HasPrefix(c.HotelAPI.BaseURL, "https://") {
		c.HotelAPI.BaseURL = "https://" + c.HotelAPI.BaseURL
	}

	if c.Polling.MaxAttempts < 1 {
		return fmt.Errorf("polling max attempts must be at least 1, got %d", c.Polling.MaxAttempts)
	}

	if c.Polling.Interval < 0 {
		return fmt.Errorf("polling interval must not be negative, got %s", c.Polling.Interval)
	}

	if c.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}

	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("auth JWT secret is required")
	}

	if c.RabbitMQ.Enabled && c.RabbitMQ.URL == "" {
		return fmt.Errorf("rabbitmq URL is required when rabbitmq is enabled")
	}

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	return nil
}
