// Package config loads storefront settings from defaults, an optional YAML
// file and command line flags, in that order of precedence.
package config

import (
	"fmt"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/goliatone/go-storefront"
	"github.com/goliatone/go-storefront/tokenstore"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

var _ storefront.Config = (*Config)(nil)

type Config struct {
	API    APIConfig    `koanf:"api"`
	Auth   AuthConfig   `koanf:"auth"`
	Token  TokenConfig  `koanf:"token"`
	Log    LogConfig    `koanf:"log"`
	Server ServerConfig `koanf:"server"`
}

type APIConfig struct {
	BaseURL string        `koanf:"base_url"`
	Timeout time.Duration `koanf:"timeout"`
	Debug   bool          `koanf:"debug"`
}

type AuthConfig struct {
	HomeRoute string `koanf:"home_route"`
	AdminRole string `koanf:"admin_role"`
}

type TokenConfig struct {
	Driver string        `koanf:"driver"`
	Key    string        `koanf:"key"`
	Path   string        `koanf:"path"`
	DSN    string        `koanf:"dsn"`
	TTL    time.Duration `koanf:"ttl"`
	Redis  RedisConfig   `koanf:"redis"`
}

type RedisConfig struct {
	Addr     string `koanf:"addr"`
	Password string `koanf:"password"`
	DB       int    `koanf:"db"`
	Prefix   string `koanf:"prefix"`
}

type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

type ServerConfig struct {
	Addr string `koanf:"addr"`
	CSRF bool   `koanf:"csrf"`
}

var defaults = map[string]any{
	"api.base_url":       "http://localhost:5000/api/v1",
	"api.timeout":        "30s",
	"api.debug":          false,
	"auth.home_route":    "/",
	"auth.admin_role":    string(storefront.RoleAdmin),
	"token.driver":       tokenstore.DriverFile,
	"token.key":          tokenstore.DefaultKey,
	"token.ttl":          "0s",
	"token.redis.addr":   "localhost:6379",
	"token.redis.prefix": "storefront",
	"log.level":          "info",
	"log.format":         "console",
	"server.addr":        "127.0.0.1:8080",
	"server.csrf":        true,
}

// flagKeys maps flag names to config keys. Flags not listed are ignored.
var flagKeys = map[string]string{
	"api-url":      "api.base_url",
	"api-timeout":  "api.timeout",
	"debug":        "api.debug",
	"token-driver": "token.driver",
	"token-path":   "token.path",
	"token-dsn":    "token.dsn",
	"redis-addr":   "token.redis.addr",
	"log-level":    "log.level",
	"log-format":   "log.format",
	"addr":         "server.addr",
}

// Defaults returns the configuration with no file and no flags
func Defaults() *Config {
	cfg, err := Load("", nil)
	if err != nil {
		panic(fmt.Sprintf("config: invalid defaults: %v", err))
	}
	return cfg
}

// RegisterFlags adds the flags Load understands to fs
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String("api-url", "", "storefront API base URL")
	fs.Duration("api-timeout", 0, "API request timeout")
	fs.Bool("debug", false, "dump API payloads")
	fs.String("token-driver", "", "token storage: memory, file, sqlite or redis")
	fs.String("token-path", "", "token file path for the file driver")
	fs.String("token-dsn", "", "database DSN for the sqlite driver")
	fs.String("redis-addr", "", "redis address for the redis driver")
	fs.String("log-level", "", "log level: debug, info, warn or error")
	fs.String("log-format", "", "log format: console or json")
	fs.String("addr", "", "listen address for serve, loopback by default")
}

// Load merges defaults, the YAML file at path (optional) and the changed
// flags of fs (optional), then validates the result.
func Load(path string, fs *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	for key, val := range defaults {
		if err := k.Set(key, val); err != nil {
			return nil, fmt.Errorf("config: default %s: %w", key, err)
		}
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("config: load %s: %w", path, err)
		}
	}

	if fs != nil {
		provider := posflag.ProviderWithFlag(fs, ".", k, func(f *pflag.Flag) (string, any) {
			key, ok := flagKeys[f.Name]
			if !ok {
				return "", nil
			}
			return key, posflag.FlagVal(fs, f)
		})
		if err := k.Load(provider, nil); err != nil {
			return nil, fmt.Errorf("config: load flags: %w", err)
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.API),
		validation.Field(&c.Auth),
		validation.Field(&c.Token),
		validation.Field(&c.Log),
	)
}

func (c APIConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.BaseURL, validation.Required, is.URL),
		validation.Field(&c.Timeout, validation.Min(time.Duration(0))),
	)
}

func (c AuthConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.HomeRoute, validation.Required),
		validation.Field(&c.AdminRole, validation.Required),
	)
}

func (c TokenConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Driver, validation.Required, validation.In(
			tokenstore.DriverMemory,
			tokenstore.DriverFile,
			tokenstore.DriverSQLite,
			tokenstore.DriverRedis,
		)),
		validation.Field(&c.Key, validation.Required),
		validation.Field(&c.TTL, validation.Min(time.Duration(0))),
	)
}

func (c LogConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Level, validation.In("debug", "info", "warn", "error")),
		validation.Field(&c.Format, validation.In("console", "json")),
	)
}

func (c *Config) GetAPIBaseURL() string {
	return c.API.BaseURL
}

func (c *Config) GetTokenKey() string {
	return c.Token.Key
}

func (c *Config) GetHomeRoute() string {
	return c.Auth.HomeRoute
}

func (c *Config) GetAdminRole() string {
	return c.Auth.AdminRole
}

// TokenOptions converts the token section for tokenstore.Open
func (c *Config) TokenOptions() tokenstore.Options {
	return tokenstore.Options{
		Driver:        c.Token.Driver,
		Key:           c.Token.Key,
		Path:          c.Token.Path,
		DSN:           c.Token.DSN,
		RedisAddr:     c.Token.Redis.Addr,
		RedisPassword: c.Token.Redis.Password,
		RedisDB:       c.Token.Redis.DB,
		RedisPrefix:   c.Token.Redis.Prefix,
		TTL:           c.Token.TTL,
	}
}
