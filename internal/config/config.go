package config

import (
	"os"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		ListenAddress string        `yaml:"listen_address" env:"HTTPOOL_LISTEN_ADDRESS"`
		Workers       int           `yaml:"workers" env:"HTTPOOL_WORKERS"`
		ReadTimeout   time.Duration `yaml:"read_timeout"`
		WriteTimeout  time.Duration `yaml:"write_timeout"`
		SleepDelay    time.Duration `yaml:"sleep_delay"`
	} `yaml:"server"`

	Admin struct {
		Address string `yaml:"address" env:"HTTPOOL_ADMIN_ADDRESS"`
	} `yaml:"admin"`

	Pages struct {
		Dir       string        `yaml:"dir" env:"HTTPOOL_PAGES_DIR"`
		CacheSize int           `yaml:"cache_size"`
		CacheTTL  time.Duration `yaml:"cache_ttl"`
	} `yaml:"pages"`

	RateLimit struct {
		Enabled bool          `yaml:"enabled"`
		Period  time.Duration `yaml:"period"`
		Limit   int64         `yaml:"limit"`
	} `yaml:"rate_limit"`
}

// Default returns the configuration used when no file and no environment
// overrides are present.
func Default() *Config {
	cfg := &Config{}
	cfg.Server.ListenAddress = "0.0.0.0:1998"
	cfg.Server.Workers = 4
	cfg.Server.ReadTimeout = 10 * time.Second
	cfg.Server.WriteTimeout = 10 * time.Second
	cfg.Server.SleepDelay = 5 * time.Second
	cfg.Admin.Address = "127.0.0.1:6060"
	cfg.Pages.Dir = "./static"
	cfg.Pages.CacheSize = 32
	cfg.Pages.CacheTTL = time.Minute
	cfg.RateLimit.Period = time.Second
	cfg.RateLimit.Limit = 100
	return cfg
}

// Load reads the yaml file at path (optional: an empty path skips the file),
// overlays environment variables, then validates. File values override the
// defaults, environment variables override the file.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrap(err, "read yaml")
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, errors.Wrap(err, "parse yaml")
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, errors.Wrap(err, "parse env")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Workers < 1 {
		return errors.Errorf("config: server.workers must be positive, got %d", c.Server.Workers)
	}
	if c.Server.ListenAddress == "" {
		return errors.New("config: server.listen_address is required")
	}
	if c.RateLimit.Enabled && (c.RateLimit.Limit < 1 || c.RateLimit.Period <= 0) {
		return errors.New("config: rate_limit requires a positive limit and period")
	}
	return nil
}
