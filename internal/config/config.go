// Package config loads and stores CLI configuration.
//
// Values are layered: built-in defaults, then config.json in the XDG config
// dir, then a .env file, then process environment. Command-line flags are
// applied by the caller on top. Nothing secret is kept here; the cached
// user record lives in local storage.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"go.uber.org/zap/zapcore"

	"vitrine/cli/internal/storage"
	"vitrine/cli/internal/xdg"
)

// Defaults.
const (
	DefaultAPIURL        = "http://localhost:8000"
	DefaultLoginPage     = "login.html"
	DefaultLogLevel      = "info"
	DefaultLogoutTimeout = 5 * time.Second
)

// Config holds non-sensitive CLI settings.
type Config struct {
	APIURL        string        `json:"api_url" env:"VITRINE_API_URL" validate:"required,url"`
	LoginPage     string        `json:"login_page" env:"VITRINE_LOGIN_PAGE" validate:"required"`
	LogLevel      string        `json:"log_level" env:"VITRINE_LOG_LEVEL" validate:"loglevel"`
	LogoutTimeout Duration      `json:"logout_timeout" env:"VITRINE_LOGOUT_TIMEOUT" validate:"gt=0"`
	Storage       StorageConfig `json:"storage"`
}

// StorageConfig selects where local and session storage live.
type StorageConfig struct {
	// Backend is keyring, bolt or memory.
	Backend string `json:"backend" env:"VITRINE_STORAGE_BACKEND" validate:"oneof=keyring bolt memory"`
	// Path of the bolt file (or keyring file-backend dir). Empty means the
	// XDG state location.
	Path string `json:"path,omitempty" env:"VITRINE_STORAGE_PATH"`
}

// Duration is a time.Duration written as "5s" in JSON and env.
type Duration time.Duration

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", string(b), err)
	}
	*d = Duration(v)
	return nil
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		APIURL:        DefaultAPIURL,
		LoginPage:     DefaultLoginPage,
		LogLevel:      DefaultLogLevel,
		LogoutTimeout: Duration(DefaultLogoutTimeout),
		Storage:       StorageConfig{Backend: defaultBackend()},
	}
}

// defaultBackend prefers the OS keyring where one is always present.
func defaultBackend() string {
	switch runtime.GOOS {
	case "darwin", "windows":
		return storage.BackendKeyring
	default:
		return storage.BackendBolt
	}
}

// Load reads config.json from the XDG config dir and .env from the working
// directory, then applies the environment. Missing files are not errors.
func Load() (Config, error) {
	p, err := xdg.ConfigFile()
	if err != nil {
		return Config{}, err
	}
	return LoadFile(p, ".env")
}

// LoadFile is Load with explicit file locations.
func LoadFile(path string, dotenvFiles ...string) (Config, error) {
	c := Defaults()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := json.Unmarshal(data, &c); err != nil {
			return c, fmt.Errorf("parse %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return c, err
	}

	// godotenv never overrides variables already set, so the process
	// environment wins over .env.
	for _, f := range dotenvFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return c, fmt.Errorf("load %s: %w", f, err)
		}
	}

	if err := env.Parse(&c); err != nil {
		return c, fmt.Errorf("parse environment: %w", err)
	}
	return c, nil
}

// Save writes configuration to the XDG config dir with 0600 permissions.
func Save(c Config) error {
	p, err := xdg.ConfigFile()
	if err != nil {
		return err
	}
	return SaveFile(p, c)
}

// SaveFile writes configuration to path with 0600 permissions.
func SaveFile(path string, c Config) error {
	b, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o600)
}

// Validate reports the first invalid field.
func (c Config) Validate() error {
	v := validator.New()
	if err := v.RegisterValidation("loglevel", validateLogLevel); err != nil {
		return err
	}
	if err := v.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func validateLogLevel(fl validator.FieldLevel) bool {
	_, err := zapcore.ParseLevel(fl.Field().String())
	return err == nil
}

// StoragePath returns Storage.Path, or the XDG default when it is empty.
func (c Config) StoragePath() (string, error) {
	if c.Storage.Path != "" {
		return c.Storage.Path, nil
	}
	return xdg.StorageFile()
}
