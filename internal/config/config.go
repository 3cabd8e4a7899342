package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const DefaultEndpoint = "https://fullstack-test-navy.vercel.app/api/users/create"

// Config holds application configuration.
type Config struct {
	API APIConfig
	UI    UIConfig
	Log   LogConfig
	Trace TraceConfig
}

// APIConfig points at the registration endpoint.
type APIConfig struct {
	Endpoint string
	Timeout  time.Duration
}

// UIConfig holds presentation settings.
type UIConfig struct {
	AlertDuration time.Duration `mapstructure:"alert_duration"`
	AltScreen     bool          `mapstructure:"alt_screen"`
}

// LogConfig holds the debug log destination. Empty disables logging.
type LogConfig struct {
	File string
}

// TraceConfig enables OTLP export of submission spans. Empty Endpoint disables it.
type TraceConfig struct {
	Endpoint    string
	Protocol    string
	ServiceName string `mapstructure:"service_name"`
}

const (
	ProtocolGRPC = "grpc"
	ProtocolHTTP = "http/protobuf"
)

func defaultLogFile() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "regform", "regform.log")
}

// Path returns the config file Load reads and Save writes.
func Path() string {
	if p := os.Getenv("REGFORM_CONFIG"); p != "" {
		return p
	}
	return filepath.Join(os.Getenv("HOME"), ".config", "regform", "config.toml")
}

// Load reads configuration from file and env. Env var overrides use prefix REGFORM_.
func Load() (Config, error) {
	v := viper.New()

	v.SetDefault("api.endpoint", DefaultEndpoint)
	v.SetDefault("api.timeout", 30*time.Second)
	v.SetDefault("ui.alert_duration", 5*time.Second)
	v.SetDefault("ui.alt_screen", true)
	v.SetDefault("log.file", defaultLogFile())
	v.SetDefault("trace.endpoint", "")
	v.SetDefault("trace.protocol", ProtocolGRPC)
	v.SetDefault("trace.service_name", "regform")

	v.SetConfigType("toml")

	if cfgPath := os.Getenv("REGFORM_CONFIG"); cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "regform"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("REGFORM")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		// an explicit REGFORM_CONFIG that is missing surfaces as a path error
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	c.API.Endpoint = strings.TrimSpace(c.API.Endpoint)
	c.Trace.Endpoint = strings.TrimSpace(c.Trace.Endpoint)
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate rejects settings the form cannot run with.
func (c Config) Validate() error {
	u, err := url.Parse(c.API.Endpoint)
	if err != nil {
		return fmt.Errorf("api.endpoint: %w", err)
	}
	if !u.IsAbs() || u.Host == "" {
		return fmt.Errorf("api.endpoint: %q is not an absolute URL", c.API.Endpoint)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("api.endpoint: unsupported scheme %q", u.Scheme)
	}
	if c.API.Timeout <= 0 {
		return fmt.Errorf("api.timeout must be positive, got %s", c.API.Timeout)
	}
	if c.UI.AlertDuration <= 0 {
		return fmt.Errorf("ui.alert_duration must be positive, got %s", c.UI.AlertDuration)
	}
	if c.Trace.Endpoint != "" {
		switch c.Trace.Protocol {
		case ProtocolGRPC, ProtocolHTTP:
		default:
			return fmt.Errorf("trace.protocol: unsupported %q", c.Trace.Protocol)
		}
	}
	return nil
}

// Save writes cfg to the config path, creating the directory if needed.
func Save(cfg Config) error {
	path := Path()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("api.endpoint", cfg.API.Endpoint)
	v.Set("api.timeout", cfg.API.Timeout.String())
	v.Set("ui.alert_duration", cfg.UI.AlertDuration.String())
	v.Set("ui.alt_screen", cfg.UI.AltScreen)
	v.Set("log.file", cfg.Log.File)
	v.Set("trace.endpoint", cfg.Trace.Endpoint)
	v.Set("trace.protocol", cfg.Trace.Protocol)
	v.Set("trace.service_name", cfg.Trace.ServiceName)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
