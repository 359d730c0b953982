package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Global configuration structure.
type Global struct {
	Addr             string   `mapstructure:"addr" yaml:"addr"`
	MaxUploadMB      int      `mapstructure:"max_upload_mb" yaml:"max_upload_mb"`
	SessionCacheSize int      `mapstructure:"session_cache_size" yaml:"session_cache_size"`
	DatasetCacheSize int      `mapstructure:"dataset_cache_size" yaml:"dataset_cache_size"`
	TopN             int      `mapstructure:"top_n" yaml:"top_n"`
	DefaultTheme     string   `mapstructure:"default_theme" yaml:"default_theme"`
	SampleFile       string   `mapstructure:"sample_file" yaml:"sample_file"`
	CORSOrigins      []string `mapstructure:"cors_origins" yaml:"cors_origins"`
}

func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".suicidestats"), nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.suicidestats/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	path := cfgFile
	if path == "" {
		dir, err := configDir()
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
// Precedence: env > config file > defaults.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("SUICIDESTATS")
	v.AutomaticEnv()

	v.SetDefault("addr", ":8080")
	v.SetDefault("max_upload_mb", 32)
	v.SetDefault("session_cache_size", 128)
	v.SetDefault("dataset_cache_size", 8)
	v.SetDefault("top_n", 10)
	v.SetDefault("default_theme", "light")
	v.SetDefault("sample_file", "")
	v.SetDefault("cors_origins", []string{"*"})

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	} else {
		dir, err := configDir()
		if err != nil {
			return nil, err
		}
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		// optional read
		_ = v.ReadInConfig()
	}

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if c.TopN <= 0 {
		return nil, fmt.Errorf("top_n must be positive, got %d", c.TopN)
	}
	if c.MaxUploadMB <= 0 {
		return nil, fmt.Errorf("max_upload_mb must be positive, got %d", c.MaxUploadMB)
	}
	return &c, nil
}
