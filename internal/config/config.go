// Package config loads the CLI configuration from a YAML file, a .env file
// and environment variables, in increasing order of precedence.
package config

import (
	"crypto/ed25519"
	"encoding/hex"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/aretw0/espalier/internal/logging"
	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "ESPALIER_"

// Store drivers.
const (
	DriverMemory = "memory"
	DriverRedis  = "redis"
	DriverBolt   = "bolt"
)

type Config struct {
	Log     LogConfig           `mapstructure:"log"`
	Discord DiscordConfig       `mapstructure:"discord"`
	HTTP    HTTPConfig          `mapstructure:"http"`
	Store   StoreConfig         `mapstructure:"store"`
	Menus   MenuConfig          `mapstructure:"menus"`
	Seed    map[string][]string `mapstructure:"seed"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type DiscordConfig struct {
	Token     string `mapstructure:"token"`
	PublicKey string `mapstructure:"public_key"`
}

type HTTPConfig struct {
	Addr string `mapstructure:"addr"`
}

type StoreConfig struct {
	Driver        string `mapstructure:"driver"`
	RedisAddr     string `mapstructure:"redis_addr"`
	RedisPassword string `mapstructure:"redis_password"`
	RedisDB       int    `mapstructure:"redis_db"`
	RedisPrefix   string `mapstructure:"redis_prefix"`
	BoltPath      string `mapstructure:"bolt_path"`

	// EncryptionKey is a hex AES-256 key. When set, entries are encrypted
	// before they reach the store.
	EncryptionKey string   `mapstructure:"encryption_key"`
	FallbackKeys  []string `mapstructure:"fallback_keys"`
}

type MenuConfig struct {
	DeferAfter     time.Duration `mapstructure:"defer_after"`
	MaxEffectDepth int           `mapstructure:"max_effect_depth"`
	PerPage        int           `mapstructure:"per_page"`
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		Log:   LogConfig{Level: "info", Format: "text"},
		HTTP:  HTTPConfig{Addr: ":8080"},
		Store: StoreConfig{Driver: DriverMemory, RedisAddr: "localhost:6379", BoltPath: "espalier.db"},
		Menus: MenuConfig{DeferAfter: 2 * time.Second, PerPage: 10},
	}
}

// envKeys maps environment variables (without EnvPrefix) to config paths.
var envKeys = map[string]string{
	"LOG_LEVEL":              "log.level",
	"LOG_FORMAT":             "log.format",
	"DISCORD_TOKEN":          "discord.token",
	"DISCORD_PUBLIC_KEY":     "discord.public_key",
	"HTTP_ADDR":              "http.addr",
	"STORE_DRIVER":           "store.driver",
	"REDIS_ADDR":             "store.redis_addr",
	"REDIS_PASSWORD":         "store.redis_password",
	"REDIS_DB":               "store.redis_db",
	"REDIS_PREFIX":           "store.redis_prefix",
	"BOLT_PATH":              "store.bolt_path",
	"STORE_ENCRYPTION_KEY":   "store.encryption_key",
	"MENUS_DEFER_AFTER":      "menus.defer_after",
	"MENUS_MAX_EFFECT_DEPTH": "menus.max_effect_depth",
	"MENUS_PER_PAGE":         "menus.per_page",
}

// Load builds the configuration. path may be empty to skip the YAML file.
// envFiles are loaded with godotenv; without any, a .env in the working
// directory is loaded if present. Variables already set are not replaced.
func Load(path string, envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		// .env is optional; production sets variables directly
		_ = godotenv.Load()
	} else if err := godotenv.Load(envFiles...); err != nil {
		return nil, fmt.Errorf("loading env files: %w", err)
	}

	cfg := Default()

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		var doc map[string]any
		if err := yaml.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
		if err := decode(doc, cfg); err != nil {
			return nil, fmt.Errorf("decoding config %s: %w", path, err)
		}
	}

	if err := decode(fromEnv(), cfg); err != nil {
		return nil, fmt.Errorf("decoding environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func decode(input map[string]any, cfg *Config) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           cfg,
	})
	if err != nil {
		return err
	}
	return dec.Decode(input)
}

// fromEnv nests the set variables along their config paths.
func fromEnv() map[string]any {
	out := make(map[string]any)
	for key, path := range envKeys {
		v, ok := os.LookupEnv(EnvPrefix + key)
		if !ok {
			continue
		}
		section, field, _ := strings.Cut(path, ".")
		m, ok := out[section].(map[string]any)
		if !ok {
			m = make(map[string]any)
			out[section] = m
		}
		m[field] = v
	}
	return out
}

// Validate checks values that cannot be decoded wrong but can be set wrong.
func (c *Config) Validate() error {
	switch c.Store.Driver {
	case DriverMemory, DriverRedis, DriverBolt:
	default:
		return fmt.Errorf("unknown store driver %q", c.Store.Driver)
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return err
	}
	switch c.Log.Format {
	case "", "text", "json":
	default:
		return fmt.Errorf("unknown log format %q", c.Log.Format)
	}
	if c.Menus.DeferAfter < 0 || c.Menus.MaxEffectDepth < 0 || c.Menus.PerPage < 0 {
		return fmt.Errorf("menu settings must not be negative")
	}
	if c.Discord.PublicKey != "" {
		if _, err := c.Discord.Key(); err != nil {
			return err
		}
	}
	if _, _, err := c.Store.Keys(); err != nil {
		return err
	}
	return nil
}

// Keys decodes the encryption keys. Both are nil when encryption is off.
func (s StoreConfig) Keys() (active []byte, fallback [][]byte, err error) {
	if s.EncryptionKey == "" {
		if len(s.FallbackKeys) > 0 {
			return nil, nil, fmt.Errorf("fallback keys need an encryption key")
		}
		return nil, nil, nil
	}
	if active, err = decodeAESKey(s.EncryptionKey); err != nil {
		return nil, nil, fmt.Errorf("invalid encryption key: %w", err)
	}
	for i, k := range s.FallbackKeys {
		b, err := decodeAESKey(k)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid fallback key %d: %w", i, err)
		}
		fallback = append(fallback, b)
	}
	return active, fallback, nil
}

func decodeAESKey(s string) ([]byte, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, err
	}
	if len(b) != 32 {
		return nil, fmt.Errorf("want 32 bytes, got %d", len(b))
	}
	return b, nil
}

// Key decodes the hex application public key.
func (d DiscordConfig) Key() (ed25519.PublicKey, error) {
	b, err := hex.DecodeString(d.PublicKey)
	if err != nil {
		return nil, fmt.Errorf("invalid discord public key: %w", err)
	}
	if len(b) != ed25519.PublicKeySize {
		return nil, fmt.Errorf("invalid discord public key: want %d bytes, got %d", ed25519.PublicKeySize, len(b))
	}
	return ed25519.PublicKey(b), nil
}
