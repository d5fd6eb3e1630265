package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const envPrefix = "SCANPOS"

type Config struct {
	BaseURL          string        `mapstructure:"base_url"`
	RequestTimeout   time.Duration `mapstructure:"request_timeout"`
	RetryMaxAttempts int           `mapstructure:"retry_max_attempts"`
	RetryBaseDelay   time.Duration `mapstructure:"retry_base_delay"`
	DataDir          string        `mapstructure:"data_dir"`
	DeviceSecret     string        `mapstructure:"device_secret"`
	RedisAddr        string        `mapstructure:"redis_addr"`
	RedisPassword    string        `mapstructure:"redis_password"`
	RedisDB          int           `mapstructure:"redis_db"`
	CatalogCacheTTL  time.Duration `mapstructure:"catalog_cache_ttl"`
}

// Load reads configuration from an optional YAML file, SCANPOS_* environment
// variables and the --config flag, in that order of increasing precedence for
// the file path and with env overriding file values.
func Load(args []string) (Config, error) {
	v := viper.New()
	v.SetDefault("base_url", "http://127.0.0.1:8080")
	v.SetDefault("request_timeout", 15*time.Second)
	v.SetDefault("retry_max_attempts", 3)
	v.SetDefault("retry_base_delay", 200*time.Millisecond)
	v.SetDefault("data_dir", defaultDataDir())
	v.SetDefault("device_secret", "scanpos-dev-secret")
	v.SetDefault("redis_addr", "")
	v.SetDefault("redis_password", "")
	v.SetDefault("redis_db", 0)
	v.SetDefault("catalog_cache_ttl", 20*time.Second)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path := configFilePath(args); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	if cfg.RetryMaxAttempts < 1 {
		cfg.RetryMaxAttempts = 1
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 15 * time.Second
	}
	return cfg, nil
}

func (c Config) CartDBPath() string {
	return filepath.Join(c.DataDir, "cart.db")
}

func (c Config) TokenPath() string {
	return filepath.Join(c.DataDir, "session.tok")
}

func configFilePath(args []string) string {
	fs := pflag.NewFlagSet("scanpos-config", pflag.ContinueOnError)
	fs.ParseErrorsWhitelist.UnknownFlags = true
	path := fs.String("config", "", "config file")
	_ = fs.Parse(args)
	if env := os.Getenv(envPrefix + "_CONFIG_FILE"); env != "" {
		return env
	}
	return *path
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".scanpos"
	}
	return filepath.Join(home, ".scanpos")
}
