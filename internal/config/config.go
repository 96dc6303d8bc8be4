// AngelaMos | 2026
// config.go

package config

import (
	_ "embed"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	App       AppConfig       `koanf:"app"`
	Server    ServerConfig    `koanf:"server"`
	Database  DatabaseConfig  `koanf:"database"`
	Redis     RedisConfig     `koanf:"redis"`
	JWT       JWTConfig       `koanf:"jwt"`
	Session   SessionConfig   `koanf:"session"`
	Auth      AuthConfig      `koanf:"auth"`
	Storage   StorageConfig   `koanf:"storage"`
	RateLimit RateLimitConfig `koanf:"rate_limit"`
	CORS      CORSConfig      `koanf:"cors"`
	Log       LogConfig       `koanf:"log"`
	Otel      OtelConfig      `koanf:"otel"`
	Metrics   MetricsConfig   `koanf:"metrics"`
	Web       WebConfig       `koanf:"web"`
}

type AppConfig struct {
	Name        string `koanf:"name"`
	Version     string `koanf:"version"`
	Environment string `koanf:"environment"`
}

type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	IdleTimeout     time.Duration `koanf:"idle_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

type DatabaseConfig struct {
	URL             string        `koanf:"url"`
	MaxOpenConns    int           `koanf:"max_open_conns"`
	MaxIdleConns    int           `koanf:"max_idle_conns"`
	ConnMaxLifetime time.Duration `koanf:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `koanf:"conn_max_idle_time"`
	AutoMigrate     bool          `koanf:"auto_migrate"`
}

type RedisConfig struct {
	URL          string `koanf:"url"`
	PoolSize     int    `koanf:"pool_size"`
	MinIdleConns int    `koanf:"min_idle_conns"`
}

type JWTConfig struct {
	PrivateKeyPath     string        `koanf:"private_key_path"`
	PublicKeyPath      string        `koanf:"public_key_path"`
	AccessTokenExpire  time.Duration `koanf:"access_token_expire"`
	RefreshTokenExpire time.Duration `koanf:"refresh_token_expire"`
	Issuer             string        `koanf:"issuer"`
	Audience           string        `koanf:"audience"`
}

// SessionConfig describes the cookie that carries the access token for
// page navigations and cookie-authenticated uploads.
type SessionConfig struct {
	CookieName string `koanf:"cookie_name"`
	Domain     string `koanf:"domain"`
	Secure     bool   `koanf:"secure"`
	SameSite   string `koanf:"same_site"`
}

type AuthConfig struct {
	MinPasswordLength    int    `koanf:"min_password_length"`
	TokenCleanupSchedule string `koanf:"token_cleanup_schedule"`
}

type StorageConfig struct {
	Endpoint        string   `koanf:"endpoint"`
	Region          string   `koanf:"region"`
	Bucket          string   `koanf:"bucket"`
	AccessKeyID     string   `koanf:"access_key_id"`
	SecretAccessKey string   `koanf:"secret_access_key"`
	UsePathStyle    bool     `koanf:"use_path_style"`
	PublicBaseURL   string   `koanf:"public_base_url"`
	MaxFileSize     int64    `koanf:"max_file_size"`
	MaxUploadSize   int64    `koanf:"max_upload_size"`
	AllowedTypes    []string `koanf:"allowed_types"`
}

type RateLimitConfig struct {
	Requests     int           `koanf:"requests"`
	Window       time.Duration `koanf:"window"`
	Burst        int           `koanf:"burst"`
	AuthRequests int           `koanf:"auth_requests"`
	AuthBurst    int           `koanf:"auth_burst"`

	// UserRequests is the per-minute budget of one principal on one
	// authenticated route.
	UserRequests int `koanf:"user_requests"`
	UserBurst    int `koanf:"user_burst"`

	// FailOpen judges requests with an in-process bucket while Redis is
	// unreachable instead of refusing them.
	FailOpen bool `koanf:"fail_open"`
}

type CORSConfig struct {
	AllowedOrigins   []string `koanf:"allowed_origins"`
	AllowedMethods   []string `koanf:"allowed_methods"`
	AllowedHeaders   []string `koanf:"allowed_headers"`
	AllowCredentials bool     `koanf:"allow_credentials"`
	MaxAge           int      `koanf:"max_age"`
}

type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

type OtelConfig struct {
	Endpoint    string  `koanf:"endpoint"`
	ServiceName string  `koanf:"service_name"`
	Enabled     bool    `koanf:"enabled"`
	Insecure    bool    `koanf:"insecure"`
	SampleRate  float64 `koanf:"sample_rate"`
}

type MetricsConfig struct {
	Enabled bool   `koanf:"enabled"`
	Path    string `koanf:"path"`
}

// WebConfig points at the built frontend bundle served behind the route
// guard. An empty dir disables page serving.
type WebConfig struct {
	Dir string `koanf:"dir"`
}

var (
	cfg  *Config
	once sync.Once
)

// Load reads configuration once per process: embedded defaults, then the
// optional YAML file, then environment variables.
func Load(configPath string) (*Config, error) {
	var err error
	once.Do(func() {
		cfg, err = load(configPath)
	})
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// Get returns the configuration from a previous Load.
func Get() *Config {
	if cfg == nil {
		panic("config: Get called before Load")
	}
	return cfg
}

func load(configPath string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(embedded(defaultsYAML), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file: %w", err)
		}
	}

	if err := k.Load(env.Provider("", ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("load env vars: %w", err)
	}

	var c Config
	if err := k.Unmarshal("", &c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := c.validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &c, nil
}

//go:embed defaults.yaml
var defaultsYAML []byte

// embedded is a koanf provider over bytes compiled into the binary.
type embedded []byte

func (b embedded) ReadBytes() ([]byte, error) { return b, nil }

func (embedded) Read() (map[string]any, error) {
	return nil, errors.New("embedded provider needs a parser")
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

func (s *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

func (s SessionConfig) SameSiteMode() http.SameSite {
	switch strings.ToLower(s.SameSite) {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}
