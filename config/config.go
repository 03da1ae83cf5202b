package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gorhill/cronexpr"
	"github.com/spf13/viper"

	"github.com/talentsift/talentsift/internal/mcpclient"
)

// Config holds all configuration for the screening agent. Loaded once at
// process start; a missing or malformed server endpoint is fatal there, not
// recoverable mid-run.
type Config struct {
	General   GeneralConfig      `mapstructure:"general"`
	Server    ServerConfig       `mapstructure:"server"`
	MCP       mcpclient.Endpoint `mapstructure:"mcp"`
	Screening ScreeningConfig    `mapstructure:"screening"`
	History   HistoryConfig      `mapstructure:"history"`
}

// GeneralConfig contains general application settings.
type GeneralConfig struct {
	Debug bool `mapstructure:"debug"`
}

// ServerConfig contains HTTP API settings for the serve command.
type ServerConfig struct {
	Address string `mapstructure:"address"`
}

// ScreeningConfig locates the document folders and the optional re-screen
// schedule for watch mode.
type ScreeningConfig struct {
	ResumesDir         string `mapstructure:"resumes_dir"`
	JobDescriptionsDir string `mapstructure:"job_descriptions_dir"`
	ResultsDir         string `mapstructure:"results_dir"`
	Schedule           string `mapstructure:"schedule"`
}

func (s ScreeningConfig) Validate() error {
	if s.Schedule != "" {
		if _, err := cronexpr.Parse(s.Schedule); err != nil {
			return fmt.Errorf("screening.schedule is not a valid cron expression: %w", err)
		}
	}
	return nil
}

// HistoryConfig configures the optional Redis-backed run history. History
// is disabled when no address is set.
type HistoryConfig struct {
	RedisAddr     string        `mapstructure:"redis_addr"`
	RedisPassword string        `mapstructure:"redis_password"`
	RedisDB       int           `mapstructure:"redis_db"`
	DialTimeout   time.Duration `mapstructure:"dial_timeout"`
}

// Enabled reports whether run history should be recorded.
func (h HistoryConfig) Enabled() bool { return strings.TrimSpace(h.RedisAddr) != "" }

// Load reads configuration from the given file, or from the default search
// paths and TALENTSIFT_* environment variables when path is empty.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	v.SetDefault("server.address", ":10010")
	v.SetDefault("mcp.timeout", mcpclient.DefaultCallTimeout)
	v.SetDefault("screening.resumes_dir", "resumes")
	v.SetDefault("screening.job_descriptions_dir", "job_descriptions")
	v.SetDefault("screening.results_dir", "results")
	v.SetDefault("history.dial_timeout", 5*time.Second)

	if path == "" {
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	} else {
		v.SetConfigFile(path)
	}

	v.SetEnvPrefix("TALENTSIFT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// AutomaticEnv alone does not surface env values to Unmarshal for keys
	// absent from file and defaults; bind those keys explicitly so the
	// endpoint really can come entirely from the environment.
	for _, key := range []string{
		"general.debug",
		"mcp.kind", "mcp.command", "mcp.url",
		"screening.schedule",
		"history.redis_addr", "history.redis_password", "history.redis_db",
	} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("config env binding: %w", err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		// The endpoint can come entirely from the environment; only an
		// explicitly requested or malformed file is fatal here.
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config file: %w", err)
	}

	if err := cfg.MCP.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Screening.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// EnsureFolders creates the document folders the agent works out of.
func (c *Config) EnsureFolders() error {
	for _, dir := range []string{c.Screening.ResumesDir, c.Screening.JobDescriptionsDir, c.Screening.ResultsDir} {
		if err := os.MkdirAll(filepath.Clean(dir), 0o755); err != nil {
			return fmt.Errorf("creating folder %s: %w", dir, err)
		}
	}
	return nil
}
