// Package config loads the taskform service and CLI configuration. Values
// come from defaults, an optional YAML file, TASKFORM_ environment variables
// and runtime overrides, in increasing order of precedence.
package config

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/spf13/viper"

	"github.com/goliatone/go-taskform/pkg/pickers"
)

// EnvPrefix is prepended to every environment variable the loader reads.
const EnvPrefix = "TASKFORM"

// Config is the decoded configuration tree.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Logging LoggingConfig `mapstructure:"logging"`
	Form    FormConfig    `mapstructure:"form"`
	Theme   ThemeConfig   `mapstructure:"theme"`
	Cache   CacheConfig   `mapstructure:"cache"`
	Metrics MetricsConfig `mapstructure:"metrics"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	MaxBodyBytes    int64         `mapstructure:"max_body_bytes"`
}

// Addr joins host and port.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// LoggingConfig configures the zap logger.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// FormConfig configures schema generation.
type FormConfig struct {
	Locale      string              `mapstructure:"locale"`
	LocalesDir  string              `mapstructure:"locales_dir"`
	Namespaces  []pickers.Namespace `mapstructure:"namespaces"`
	RemoteState bool                `mapstructure:"remote_state"`
	Preset      string              `mapstructure:"preset"`
}

// ThemeConfig holds the token set rendered into HTML forms. Variants override
// tokens by name.
type ThemeConfig struct {
	Name     string                       `mapstructure:"name"`
	Variant  string                       `mapstructure:"variant"`
	Tokens   map[string]string            `mapstructure:"tokens"`
	Variants map[string]map[string]string `mapstructure:"variants"`
}

// CacheConfig configures the rendered schema cache.
type CacheConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	TTL             time.Duration `mapstructure:"ttl"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`
}

// MetricsConfig toggles the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

var (
	configMu  sync.RWMutex
	appConfig *Config
)

// envAliases maps short environment variable names onto config keys.
var envAliases = map[string]string{
	"server.host":             "HOST",
	"server.port":             "PORT",
	"logging.level":           "LOG_LEVEL",
	"logging.format":          "LOG_FORMAT",
	"form.locale":             "LOCALE",
	"cache.ttl":               "CACHE_TTL",
	"metrics.enabled":         "METRICS_ENABLED",
	"server.read_timeout":     "READ_TIMEOUT",
	"server.shutdown_timeout": "SHUTDOWN_TIMEOUT",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 15*time.Second)
	v.SetDefault("server.idle_timeout", 60*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("server.max_body_bytes", int64(1<<20))

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	v.SetDefault("form.locale", "en")
	v.SetDefault("form.remote_state", false)

	v.SetDefault("theme.name", "default")
	v.SetDefault("theme.variant", "")
	v.SetDefault("theme.tokens", map[string]string{
		"color-primary": "#1f6feb",
		"color-error":   "#d1242f",
		"grid-gap":      "12px",
	})

	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.ttl", 5*time.Minute)
	v.SetDefault("cache.cleanup_interval", 10*time.Minute)

	v.SetDefault("metrics.enabled", true)
}

// Load builds a Config. path may be empty, in which case only defaults,
// environment and overrides apply.
func Load(ctx context.Context, path string, overrides ...map[string]any) (*Config, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, alias := range envAliases {
		if err := v.BindEnv(key, EnvPrefix+"_"+alias); err != nil {
			return nil, fmt.Errorf("config: bind env %s: %w", alias, err)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	for _, override := range overrides {
		for key, value := range flatten("", override) {
			v.Set(key, value)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	configMu.Lock()
	appConfig = &cfg
	configMu.Unlock()
	return &cfg, nil
}

// GetConfig returns the most recently loaded configuration, or nil.
func GetConfig() *Config {
	configMu.RLock()
	defer configMu.RUnlock()
	return appConfig
}

// Validate rejects values the service cannot run with.
func (c Config) Validate() error {
	var errs []error
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("config: server.port %d out of range", c.Server.Port))
	}
	switch strings.ToLower(c.Logging.Format) {
	case "json", "console":
	default:
		errs = append(errs, fmt.Errorf("config: logging.format %q must be json or console", c.Logging.Format))
	}
	if c.Cache.Enabled && c.Cache.TTL <= 0 {
		errs = append(errs, errors.New("config: cache.ttl must be positive when the cache is enabled"))
	}
	return errors.Join(errs...)
}

func flatten(prefix string, in map[string]any) map[string]any {
	out := make(map[string]any)
	for key, value := range in {
		full := key
		if prefix != "" {
			full = prefix + "." + key
		}
		if nested, ok := value.(map[string]any); ok {
			for k, v := range flatten(full, nested) {
				out[k] = v
			}
			continue
		}
		out[full] = value
	}
	return out
}
