package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	domain "github.com/example/portfolio-uploads/domain/upload"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. PORTFOLIO_HTTP_PORT.
const EnvPrefix = "PORTFOLIO"

type Config struct {
	HTTP     HTTPConfig               `mapstructure:"http"`
	Storage  StorageConfig            `mapstructure:"storage"`
	Database DatabaseConfig           `mapstructure:"database"`
	Auth     AuthConfig               `mapstructure:"auth"`
	Log      LogConfig                `mapstructure:"log"`
	Profiles map[string]ProfileLimits `mapstructure:"profiles"`
}

type HTTPConfig struct {
	Port               int   `mapstructure:"port"`
	MaxMultipartMemory int64 `mapstructure:"max_multipart_memory"`
}

type StorageConfig struct {
	// Root is the application storage root; every profile directory lives under it.
	Root string `mapstructure:"root"`
}

type DatabaseConfig struct {
	Path  string `mapstructure:"path"`
	Debug bool   `mapstructure:"debug"`
}

type AuthConfig struct {
	JWTSecret string        `mapstructure:"jwt_secret"`
	Issuer    string        `mapstructure:"issuer"`
	TokenTTL  time.Duration `mapstructure:"token_ttl"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

// ProfileLimits overrides the limits of a built-in upload profile. Zero keeps the built-in value.
type ProfileLimits struct {
	MaxFileSize int64 `mapstructure:"max_file_size"`
	MaxFiles    int   `mapstructure:"max_files"`
}

// Load reads configuration from path (or ./config.yaml when path is empty),
// then applies PORTFOLIO_* environment overrides. A missing default file is not an error.
func Load(path string) (*Config, error) {
	v := viper.New()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetDefault("http.port", 3000)
	v.SetDefault("http.max_multipart_memory", 32<<20)
	v.SetDefault("storage.root", "./public")
	v.SetDefault("database.path", "portfolio.db")
	v.SetDefault("database.debug", false)
	v.SetDefault("auth.jwt_secret", "changeme-secret")
	v.SetDefault("auth.issuer", "portfolio-uploads")
	v.SetDefault("auth.token_ttl", "24h")
	v.SetDefault("log.level", "info")
	for name := range domain.Profiles() {
		v.SetDefault("profiles."+name+".max_file_size", 0)
		v.SetDefault("profiles."+name+".max_files", 0)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("invalid http.port %d", c.HTTP.Port)
	}
	if strings.TrimSpace(c.Storage.Root) == "" {
		return fmt.Errorf("storage.root is required")
	}
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("auth.jwt_secret is required")
	}
	for name, limits := range c.Profiles {
		profile, err := domain.ProfileByName(name)
		if err != nil {
			return fmt.Errorf("profiles: %w", err)
		}
		if limits.MaxFileSize < 0 || limits.MaxFiles < 0 {
			return fmt.Errorf("profiles.%s: limits must not be negative", name)
		}
		// Photo records hold one reference.
		if profile.MaxFiles == 1 && limits.MaxFiles > 1 {
			return fmt.Errorf("profiles.%s: max_files cannot exceed 1", name)
		}
	}
	return nil
}

// Profile returns the named built-in profile with configured limits applied.
func (c *Config) Profile(name string) (domain.Config, error) {
	profile, err := domain.ProfileByName(name)
	if err != nil {
		return domain.Config{}, err
	}
	limits := c.Profiles[name]
	return profile.WithLimits(limits.MaxFileSize, limits.MaxFiles), nil
}
