package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joeshaw/envdecode"
)

// Store backends accepted by Server.Store.
const (
	StoreMemory = "memory"
	StoreRedis  = "redis"
)

// Server holds the HTTP server settings. Defaults are provided via struct
// tags and can be overridden through the environment.
type Server struct {
	Addr         string        `env:"MULTISELECT_ADDR,default=:8080"`
	BasePath     string        `env:"MULTISELECT_BASE_PATH"`
	Store        string        `env:"MULTISELECT_STORE,default=memory"`
	RedisAddr    string        `env:"REDIS_ADDR,default=localhost:6379"`
	KeyPrefix    string        `env:"MULTISELECT_KEY_PREFIX,default=multiselect:"`
	SessionTTL   time.Duration `env:"MULTISELECT_SESSION_TTL,default=30m"`
	WidgetFile   string        `env:"MULTISELECT_WIDGET_FILE"`
	OptionsFile  string        `env:"MULTISELECT_OPTIONS_FILE"`
	ThemeFile    string        `env:"MULTISELECT_THEME_FILE"`
	ThemeVariant string        `env:"MULTISELECT_THEME_VARIANT"`
	LogFormat    string        `env:"MULTISELECT_LOG_FORMAT,default=text"`
	LogLevel     string        `env:"MULTISELECT_LOG_LEVEL,default=info"`
}

// DefaultServer mirrors the struct tag defaults.
func DefaultServer() Server {
	return Server{
		Addr:       ":8080",
		Store:      StoreMemory,
		RedisAddr:  "localhost:6379",
		KeyPrefix:  "multiselect:",
		SessionTTL: 30 * time.Minute,
		LogFormat:  "text",
		LogLevel:   "info",
	}
}

// ServerFromEnv decodes the server configuration from the environment.
func ServerFromEnv() (Server, error) {
	var cfg Server
	if err := envdecode.Decode(&cfg); err != nil && err != envdecode.ErrNoTargetFieldsAreSet {
		return Server{}, fmt.Errorf("config: decode env: %w", err)
	}
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return Server{}, err
	}
	return cfg, nil
}

// Validate reports invalid settings.
func (s Server) Validate() error {
	switch s.Store {
	case StoreMemory, StoreRedis:
	default:
		return fmt.Errorf("config: unknown store %q", s.Store)
	}
	switch s.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("config: unknown log format %q", s.LogFormat)
	}
	if s.SessionTTL < 0 {
		return fmt.Errorf("config: negative session ttl %s", s.SessionTTL)
	}
	return nil
}

func (s Server) withDefaults() Server {
	defaults := DefaultServer()
	if strings.TrimSpace(s.Addr) == "" {
		s.Addr = defaults.Addr
	}
	s.Store = strings.ToLower(strings.TrimSpace(s.Store))
	if s.Store == "" {
		s.Store = defaults.Store
	}
	if s.RedisAddr == "" {
		s.RedisAddr = defaults.RedisAddr
	}
	if s.KeyPrefix == "" {
		s.KeyPrefix = defaults.KeyPrefix
	}
	if s.SessionTTL == 0 {
		s.SessionTTL = defaults.SessionTTL
	}
	s.LogFormat = strings.ToLower(strings.TrimSpace(s.LogFormat))
	if s.LogFormat == "" {
		s.LogFormat = defaults.LogFormat
	}
	if strings.TrimSpace(s.LogLevel) == "" {
		s.LogLevel = defaults.LogLevel
	}
	return s
}
