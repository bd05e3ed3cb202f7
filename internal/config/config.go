// Package config loads oc-svi settings from defaults, a YAML config file
// and OCSVI_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/KarchinLab/open-cravat-extras/internal/variant"
)

// FileName is the per-user config file under the home directory.
const FileName = ".oc-svi.yaml"

type Config struct {
	Report struct {
		BaseURL  string `mapstructure:"base_url"`
		Assembly string `mapstructure:"assembly"`
	} `mapstructure:"report"`

	Server struct {
		Port      int           `mapstructure:"port"`
		RateLimit float64       `mapstructure:"rate_limit"`
		Burst     int           `mapstructure:"burst"`
		CacheTTL  time.Duration `mapstructure:"cache_ttl"`
	} `mapstructure:"server"`

	Log struct {
		Level  string `mapstructure:"level"`
		Format string `mapstructure:"format"`
	} `mapstructure:"log"`
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("report.base_url", variant.DefaultReportURL)
	v.SetDefault("report.assembly", string(variant.HG38))
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.rate_limit", 20.0)
	v.SetDefault("server.burst", 40)
	v.SetDefault("server.cache_ttl", "10m")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
}

// Init prepares v to read env vars and the config file. When cfgFile is
// empty, .oc-svi.yaml is searched for in the home and working directories.
func Init(v *viper.Viper, cfgFile string) {
	SetDefaults(v)

	v.SetEnvPrefix("OCSVI")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		return
	}
	v.SetConfigType("yaml")
	v.SetConfigName(strings.TrimSuffix(FileName, filepath.Ext(FileName)))
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(home)
	}
	v.AddConfigPath(".")
}

// Load reads the config file, if any, and decodes v into a Config.
// A missing config file is not an error.
func Load(v *viper.Viper) (*Config, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values that would otherwise fail later at request time.
func (c *Config) Validate() error {
	if _, err := variant.ParseAssembly(c.Report.Assembly); err != nil {
		return fmt.Errorf("report.assembly: %w", err)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port: %d out of range", c.Server.Port)
	}
	if c.Server.RateLimit < 0 {
		return fmt.Errorf("server.rate_limit: must not be negative")
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("log.format: unknown format %q", c.Log.Format)
	}
	return nil
}

// DefaultAssembly returns the validated default assembly.
func (c *Config) DefaultAssembly() variant.Assembly {
	a, _ := variant.ParseAssembly(c.Report.Assembly)
	return a
}

// UserFile returns the path of the per-user config file.
func UserFile() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, FileName), nil
}
