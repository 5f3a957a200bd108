package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alexanderramin/logbook/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestDefaultConfig_PointsAtLocalBackend(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "http://127.0.0.1:8000", cfg.API.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.Timeout())
	assert.Equal(t, domain.DefaultStackOptions, cfg.Form.StackOptions)
}

func TestLoadFrom_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "nope.toml"))

	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadFrom_FileOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
[api]
base_url = "http://logbook.internal:9000"
timeout_ms = 5000

[user]
default_id = "intern123"

[logging]
level = "debug"
format = "json"

[form]
stack_options = ["Go", "Python"]
`)

	cfg, err := LoadFrom(path)

	require.NoError(t, err)
	assert.Equal(t, "http://logbook.internal:9000", cfg.API.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.Timeout())
	assert.Equal(t, "intern123", cfg.User.DefaultID)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, []string{"Go", "Python"}, cfg.Form.StackOptions)
}

func TestLoadFrom_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "[api]\nbase_url = \"http://from-file\"\n")
	t.Setenv("LOGBOOK_API_URL", "http://from-env")
	t.Setenv("LOGBOOK_USER_ID", "u42")
	t.Setenv("LOGBOOK_LOG_LEVEL", "WARN")
	t.Setenv("LOGBOOK_STACK_OPTIONS", " DevOps , ,QA")

	cfg, err := LoadFrom(path)

	require.NoError(t, err)
	assert.Equal(t, "http://from-env", cfg.API.BaseURL)
	assert.Equal(t, "u42", cfg.User.DefaultID)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, []string{"DevOps", "QA"}, cfg.Form.StackOptions)
}

func TestLoadFrom_InvalidTimeoutIgnored(t *testing.T) {
	t.Setenv("LOGBOOK_TIMEOUT_MS", "soon")

	cfg, err := LoadFrom("")

	require.NoError(t, err)
	assert.Equal(t, 30000, cfg.API.TimeoutMs)
}

func TestLoadFrom_MalformedFile(t *testing.T) {
	path := writeConfig(t, "[api\nbase_url = ")

	_, err := LoadFrom(path)

	assert.Error(t, err)
}

func TestPath_EnvOverride(t *testing.T) {
	t.Setenv("LOGBOOK_CONFIG", "/etc/logbook.toml")

	path, err := Path()

	require.NoError(t, err)
	assert.Equal(t, "/etc/logbook.toml", path)
}

func writeDotEnv(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadDotEnv_MissingFileIgnored(t *testing.T) {
	assert.NoError(t, loadDotEnv(filepath.Join(t.TempDir(), ".env")))
}

func TestLoadDotEnv_MalformedFileFails(t *testing.T) {
	path := writeDotEnv(t, "LOGBOOK_USER_ID=\"never closed\n")

	err := loadDotEnv(path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), path)
}

func TestLoadDotEnv_DoesNotOverrideProcessEnv(t *testing.T) {
	t.Setenv("LOGBOOK_USER_ID", "from-env")
	t.Cleanup(func() { os.Unsetenv("LOGBOOK_DOTENV_ONLY") })
	path := writeDotEnv(t, "LOGBOOK_USER_ID=from-file\nLOGBOOK_DOTENV_ONLY=yes\n")

	require.NoError(t, loadDotEnv(path))

	assert.Equal(t, "from-env", os.Getenv("LOGBOOK_USER_ID"))
	assert.Equal(t, "yes", os.Getenv("LOGBOOK_DOTENV_ONLY"))
}
