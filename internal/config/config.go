package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/logbook/internal/api"
	"github.com/alexanderramin/logbook/internal/domain"
	"github.com/joho/godotenv"
	toml "github.com/pelletier/go-toml/v2"
)

// Config holds everything the client needs to reach the backend and log.
type Config struct {
	API     APIConfig     `toml:"api"`
	User    UserConfig    `toml:"user"`
	Logging LoggingConfig `toml:"logging"`
	Form    FormConfig    `toml:"form"`
}

type APIConfig struct {
	BaseURL   string `toml:"base_url"`
	TimeoutMs int    `toml:"timeout_ms"`
}

type UserConfig struct {
	DefaultID string `toml:"default_id"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "text" or "json"
	File   string `toml:"file"`
}

type FormConfig struct {
	StackOptions []string `toml:"stack_options"`
}

// DefaultConfig returns a Config pointing at a local backend.
func DefaultConfig() Config {
	return Config{
		API: APIConfig{
			BaseURL:   api.DefaultBaseURL,
			TimeoutMs: 30000,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Form: FormConfig{
			StackOptions: append([]string{}, domain.DefaultStackOptions...),
		},
	}
}

// Timeout returns the per-request timeout.
func (c Config) Timeout() time.Duration {
	return time.Duration(c.API.TimeoutMs) * time.Millisecond
}

// Load builds the configuration from defaults, the TOML file, a .env file
// in the working directory, and LOGBOOK_* environment variables, each
// layer overriding the previous one.
func Load() (Config, error) {
	if err := loadDotEnv(".env"); err != nil {
		return Config{}, err
	}

	path, err := Path()
	if err != nil {
		return Config{}, err
	}
	return LoadFrom(path)
}

// loadDotEnv exports the variables in path. A missing file is not an error,
// and variables already set in the process are never overridden.
func loadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("reading %s: %w", path, err)
	}
	return nil
}

// LoadFrom is Load with an explicit config file path. A missing file is
// not an error.
func LoadFrom(path string) (Config, error) {
	cfg := DefaultConfig()
	if err := readTOML(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("reading config %s: %w", path, err)
	}
	applyEnv(&cfg)
	if len(cfg.Form.StackOptions) == 0 {
		cfg.Form.StackOptions = append([]string{}, domain.DefaultStackOptions...)
	}
	if cfg.API.TimeoutMs <= 0 {
		cfg.API.TimeoutMs = DefaultConfig().API.TimeoutMs
	}
	return cfg, nil
}

// Path returns LOGBOOK_CONFIG when set, else ~/.logbook/config.toml.
func Path() (string, error) {
	if p := strings.TrimSpace(os.Getenv("LOGBOOK_CONFIG")); p != "" {
		return expandHome(p)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, ".logbook", "config.toml"), nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("LOGBOOK_API_URL"); v != "" {
		cfg.API.BaseURL = v
	}
	if v := os.Getenv("LOGBOOK_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.API.TimeoutMs = n
		}
	}
	if v := os.Getenv("LOGBOOK_USER_ID"); v != "" {
		cfg.User.DefaultID = v
	}
	if v := os.Getenv("LOGBOOK_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = strings.ToLower(v)
	}
	if v := os.Getenv("LOGBOOK_LOG_FORMAT"); v != "" {
		cfg.Logging.Format = strings.ToLower(v)
	}
	if v := os.Getenv("LOGBOOK_LOG_FILE"); v != "" {
		cfg.Logging.File = v
	}
	if v := os.Getenv("LOGBOOK_STACK_OPTIONS"); v != "" {
		var opts []string
		for _, s := range strings.Split(v, ",") {
			if s = strings.TrimSpace(s); s != "" {
				opts = append(opts, s)
			}
		}
		if len(opts) > 0 {
			cfg.Form.StackOptions = opts
		}
	}
}

func readTOML(path string, out any) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil
	}
	return toml.Unmarshal(data, out)
}

func expandHome(path string) (string, error) {
	if !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~/")), nil
}
