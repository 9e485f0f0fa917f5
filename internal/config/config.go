package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Global configuration structure.
type Global struct {
	Theme        string `mapstructure:"theme" yaml:"theme"`
	ThresholdSet string `mapstructure:"threshold_set" yaml:"threshold_set"`
	// Synthetic demo data
	SyntheticSize int    `mapstructure:"synthetic_size" yaml:"synthetic_size"`
	SyntheticSeed uint64 `mapstructure:"synthetic_seed" yaml:"synthetic_seed"`
	// Template download
	TemplateFileName string `mapstructure:"template_file_name" yaml:"template_file_name"`

	// HTTP dashboard
	ServerAddr     string `mapstructure:"server_addr" yaml:"server_addr"`
	MaxUploadBytes int64  `mapstructure:"max_upload_bytes" yaml:"max_upload_bytes"`
	MemoEntries    int    `mapstructure:"memo_entries" yaml:"memo_entries"`

	LogLevel string `mapstructure:"log_level" yaml:"log_level"`
}

// Dir returns the per-user configuration directory (~/.didia).
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".didia"), nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.didia/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	path := cfgFile
	if path == "" {
		dir, err := Dir()
		if err != nil {
			return err
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: env (DIDIA_*, including a ./.env file) > config file > defaults.
// Command-line flags are applied on top by the caller.
func Load(cfgFile string) (*Global, error) {
	// .env is optional; existing environment variables win
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			return nil, fmt.Errorf("load .env: %w", err)
		}
	}

	v := viper.New()
	v.SetEnvPrefix("DIDIA")
	v.AutomaticEnv()

	v.SetDefault("theme", "classic")
	v.SetDefault("threshold_set", "inclusive")
	v.SetDefault("synthetic_size", 50)
	v.SetDefault("synthetic_seed", 0)
	v.SetDefault("template_file_name", "plantilla_didia_ba.csv")
	v.SetDefault("server_addr", "127.0.0.1:8501")
	v.SetDefault("max_upload_bytes", 10<<20)
	v.SetDefault("memo_entries", 64)
	v.SetDefault("log_level", "info")

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		dir, err := Dir()
		if err != nil {
			return nil, err
		}
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if c.SyntheticSize <= 0 {
		return nil, fmt.Errorf("synthetic_size must be positive, got %d", c.SyntheticSize)
	}
	return &c, nil
}
