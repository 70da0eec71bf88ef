// Package config resolves runtime settings from flags, environment and an
// optional .env file. Game rules (code length, turns, palettes) are
// compile-time constants in package game and are not configurable here.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config models the server and client settings.
type Config struct {
	Port         string
	ClientOrigin string
	LogLevel     string

	SecureCookies bool

	TokenSecret string
	CookieName  string
	TokenTTL    time.Duration
	IdleTTL     time.Duration

	HintEndpoint string
	HintAPIKey   string
	HintModel    string
	HintTimeout  time.Duration

	DailySalt string
}

// envAliases lists the unprefixed names also accepted for a key.
var envAliases = map[string][]string{
	"port":          {"PORT"},
	"client-origin": {"CLIENT_ORIGIN"},
	"log-level":     {"LOG_LEVEL"},
	"token-secret":  {"JWT_SECRET"},
	"hint-api-key":  {"API_KEY", "GEMINI_API_KEY"},
	"daily-salt":    {"DAILY_SALT"},
}

// New returns a viper instance with defaults and environment binding.
// Keys use dashes; environment variables use the SENHA_ prefix with
// underscores (hint-api-key → SENHA_HINT_API_KEY).
func New() *viper.Viper {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("SENHA")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("port", "5175")
	v.SetDefault("client-origin", "http://localhost:5173")
	v.SetDefault("log-level", "info")
	v.SetDefault("token-secret", "dev_secret_change_me")
	v.SetDefault("secure-cookies", false)
	v.SetDefault("cookie-name", "senha_token")
	v.SetDefault("token-ttl", 24*time.Hour)
	v.SetDefault("idle-ttl", 6*time.Hour)
	v.SetDefault("hint-endpoint", "https://generativelanguage.googleapis.com/")
	v.SetDefault("hint-model", "gemini-2.5-flash")
	v.SetDefault("hint-timeout", 8*time.Second)
	v.SetDefault("daily-salt", "local_dev_salt")

	for key, aliases := range envAliases {
		names := append([]string{"SENHA_" + strings.ToUpper(strings.ReplaceAll(key, "-", "_"))}, aliases...)
		_ = v.BindEnv(append([]string{key}, names...)...)
	}
	return v
}

// Load reads v into a Config and validates it.
func Load(v *viper.Viper) (Config, error) {
	c := Config{
		Port:          v.GetString("port"),
		ClientOrigin:  v.GetString("client-origin"),
		LogLevel:      v.GetString("log-level"),
		SecureCookies: v.GetBool("secure-cookies"),
		TokenSecret:   v.GetString("token-secret"),
		CookieName:    v.GetString("cookie-name"),
		TokenTTL:      v.GetDuration("token-ttl"),
		IdleTTL:       v.GetDuration("idle-ttl"),
		HintEndpoint:  v.GetString("hint-endpoint"),
		HintAPIKey:    v.GetString("hint-api-key"),
		HintModel:     v.GetString("hint-model"),
		HintTimeout:   v.GetDuration("hint-timeout"),
		DailySalt:     v.GetString("daily-salt"),
	}
	return c, c.Validate()
}

// Validate checks the values that would otherwise fail at first use.
func (c Config) Validate() error {
	if c.Port == "" {
		return errors.New("config: port is required")
	}
	if c.TokenSecret == "" {
		return errors.New("config: token-secret is required")
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("config: token-ttl must be positive, got %s", c.TokenTTL)
	}
	if c.HintTimeout <= 0 {
		return fmt.Errorf("config: hint-timeout must be positive, got %s", c.HintTimeout)
	}
	return nil
}

// RemoteHints reports whether a remote hint service is configured.
func (c Config) RemoteHints() bool { return c.HintAPIKey != "" }
