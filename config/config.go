package config

import (
	"fmt"
	"net"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Service names, also used as config file names and default SQLite file names.
const (
	ServiceAuth        = "auth"
	ServiceSchedule    = "schedule"
	ServiceDocument    = "document"
	ServiceQR          = "qr"
	ServiceIntegration = "integration"
	ServiceKeys        = "keys"
)

// DefaultPorts per-service listen ports.
var DefaultPorts = map[string]int{
	ServiceAuth:        8070,
	ServiceQR:          8080,
	ServiceSchedule:    8090,
	ServiceDocument:    8100,
	ServiceIntegration: 8110,
	ServiceKeys:        8120,
}

// Config application config, shared by every service binary
type Config struct {
	Service   string          `mapstructure:"-"`
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"db"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Auth      AuthConfig      `mapstructure:"auth"`
	Log       LogConfig       `mapstructure:"log"`
	Services  ServicesConfig  `mapstructure:"services"`
	Storage   StorageConfig   `mapstructure:"storage"`
	QR        QRConfig        `mapstructure:"qr"`
	Notify    NotifyConfig    `mapstructure:"notify"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
}

// ServerConfig HTTP server
type ServerConfig struct {
	Port      int        `mapstructure:"port"`
	BaseURL   string     `mapstructure:"base_url"`
	BodyLimit int64      `mapstructure:"body_limit"`
	CORS      CORSConfig `mapstructure:"cors"`

	// TrustedProxies IPs or CIDRs whose X-Forwarded-For is believed.
	// Sibling services forward the caller's address through it.
	TrustedProxies []string `mapstructure:"trusted_proxies"`
}

// CORSConfig cross-origin settings
type CORSConfig struct {
	AllowOrigins []string `mapstructure:"allow_origins"`
}

// DatabaseConfig SQLite database
type DatabaseConfig struct {
	Path            string `mapstructure:"path"`
	BusyTimeout     int    `mapstructure:"busy_timeout"` // milliseconds
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"` // minutes
}

// DSN builds the sqlite3 connection string.
// A path of the form "memory:<name>" opens a named in-memory database.
func (c *DatabaseConfig) DSN() string {
	busy := c.BusyTimeout
	if busy <= 0 {
		busy = 5000
	}
	if name, ok := strings.CutPrefix(c.Path, "memory:"); ok {
		return fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on&_busy_timeout=%d", name, busy)
	}
	return fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=%d&_journal_mode=WAL", c.Path, busy)
}

// RedisConfig Redis
type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// AuthConfig JWT settings shared by all services
type AuthConfig struct {
	JWTSecret       string               `mapstructure:"jwt_secret"`
	Issuer          string               `mapstructure:"issuer"`
	AccessTokenTTL  time.Duration        `mapstructure:"access_token_ttl"`
	RefreshTokenTTL time.Duration        `mapstructure:"refresh_token_ttl"`
	BootstrapAdmin  BootstrapAdminConfig `mapstructure:"bootstrap_admin"`
}

// BootstrapAdminConfig initial admin account, seeded by the auth service when no admin exists
type BootstrapAdminConfig struct {
	Username string `mapstructure:"username"`
	Email    string `mapstructure:"email"`
	FullName string `mapstructure:"full_name"`
	Password string `mapstructure:"password"`
}

// LogConfig logging
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// ServicesConfig base URLs of sibling services
type ServicesConfig struct {
	AuthURL     string        `mapstructure:"auth_url"`
	ScheduleURL string        `mapstructure:"schedule_url"`
	QRURL       string        `mapstructure:"qr_url"`
	DocumentURL string        `mapstructure:"document_url"`
	KeysURL     string        `mapstructure:"keys_url"`
	Timeout     time.Duration `mapstructure:"timeout"`
	RetryCount  int           `mapstructure:"retry_count"`
}

// StorageConfig uploaded files
type StorageConfig struct {
	UploadDir     string `mapstructure:"upload_dir"`
	MaxUploadSize int64  `mapstructure:"max_upload_size"`
}

// QRConfig attendance tokens
type QRConfig struct {
	TokenTTL       time.Duration `mapstructure:"token_ttl"`
	ReplayCapacity int           `mapstructure:"replay_capacity"`
}

// NotifyConfig schedule change delivery
type NotifyConfig struct {
	Enabled  bool           `mapstructure:"enabled"`
	SMTP     SMTPConfig     `mapstructure:"smtp"`
	Telegram TelegramConfig `mapstructure:"telegram"`
}

// SMTPConfig SMTP mail
type SMTPConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
}

// TelegramConfig Telegram bot
type TelegramConfig struct {
	BotToken string `mapstructure:"bot_token"`
	BaseURL  string `mapstructure:"base_url"`
}

// RateLimitConfig limits for sensitive endpoints
type RateLimitConfig struct {
	Requests int           `mapstructure:"requests"`
	Window   time.Duration `mapstructure:"window"`
}

// Load reads config for one service.
// Priority: environment > config file > defaults.
// path may point at a concrete file; otherwise <service>.yaml is looked up in ./config and ".".
func Load(service, path string) (*Config, error) {
	port, ok := DefaultPorts[service]
	if !ok {
		return nil, fmt.Errorf("unknown service %q", service)
	}

	v := viper.New()

	// ── defaults ──
	v.SetDefault("server.port", port)
	v.SetDefault("server.base_url", fmt.Sprintf("http://localhost:%d", port))
	v.SetDefault("server.body_limit", 1<<20)
	v.SetDefault("server.cors.allow_origins", []string{"http://localhost:3000"})
	v.SetDefault("server.trusted_proxies", []string{"127.0.0.1", "::1"})

	v.SetDefault("db.path", filepath.Join("data", service+".db"))
	v.SetDefault("db.busy_timeout", 5000)
	v.SetDefault("db.max_open_conns", 1)
	v.SetDefault("db.max_idle_conns", 1)
	v.SetDefault("db.conn_max_lifetime", 60)

	v.SetDefault("redis.enabled", true)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.issuer", "edulife")
	v.SetDefault("auth.access_token_ttl", "30m")
	v.SetDefault("auth.refresh_token_ttl", "168h")
	v.SetDefault("auth.bootstrap_admin.username", "admin")
	v.SetDefault("auth.bootstrap_admin.email", "admin@edulife.local")
	v.SetDefault("auth.bootstrap_admin.full_name", "Администратор")
	v.SetDefault("auth.bootstrap_admin.password", "")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetDefault("services.auth_url", "http://localhost:8070")
	v.SetDefault("services.qr_url", "http://localhost:8080")
	v.SetDefault("services.schedule_url", "http://localhost:8090")
	v.SetDefault("services.document_url", "http://localhost:8100")
	v.SetDefault("services.keys_url", "http://localhost:8120")
	v.SetDefault("services.timeout", "5s")
	v.SetDefault("services.retry_count", 2)

	v.SetDefault("storage.upload_dir", filepath.Join("data", "uploads"))
	v.SetDefault("storage.max_upload_size", 20<<20)

	v.SetDefault("qr.token_ttl", "30s")
	v.SetDefault("qr.replay_capacity", 1000)

	v.SetDefault("notify.enabled", true)
	v.SetDefault("notify.smtp.host", "")
	v.SetDefault("notify.smtp.port", 587)
	v.SetDefault("notify.smtp.username", "")
	v.SetDefault("notify.smtp.password", "")
	v.SetDefault("notify.smtp.from", "")
	v.SetDefault("notify.telegram.bot_token", "")
	v.SetDefault("notify.telegram.base_url", "https://api.telegram.org")

	v.SetDefault("rate_limit.requests", 20)
	v.SetDefault("rate_limit.window", "1m")

	// ── config file ──
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(service)
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}

	// ── environment ──
	v.SetEnvPrefix("EDULIFE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.Service = service

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks the settings every service depends on
func (c *Config) Validate() error {
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("config: auth.jwt_secret must not be empty")
	}
	if len(c.Auth.JWTSecret) < 16 {
		return fmt.Errorf("config: auth.jwt_secret must be at least 16 characters")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("config: server.port must be between 1 and 65535")
	}
	if c.QR.TokenTTL <= 0 {
		return fmt.Errorf("config: qr.token_ttl must be positive")
	}
	for _, p := range c.Server.TrustedProxies {
		if net.ParseIP(p) == nil {
			if _, _, err := net.ParseCIDR(p); err != nil {
				return fmt.Errorf("config: server.trusted_proxies: %q is not an IP or CIDR", p)
			}
		}
	}
	return nil
}
