package configs

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// missingEnvFile - путь к несуществующему .env, чтобы тесты не подхватывали файл из рабочей директории.
func missingEnvFile(t *testing.T) string {
	return filepath.Join(t.TempDir(), "missing.env")
}

func setRequired(t *testing.T) {
	t.Setenv("INMOVILLA_AGENCY", "1234")
	t.Setenv("INMOVILLA_PASSWORD", "secret")
}

func TestLoadConfig_Defaults(t *testing.T) {
	setRequired(t)
	for _, key := range []string{
		"APP_NAME", "PORT", "BASE_PATH", "CORS_ALLOWED_ORIGINS", "EXPOSE_UPSTREAM_ERRORS",
		"INMOVILLA_LANGUAGE", "INMOVILLA_API_URL", "INMOVILLA_DOMAIN", "INMOVILLA_TIMEOUT",
		"FLUENTBIT_ENABLED", "STDOUT_LOG_LEVEL", "STDOUT_LOG_FORMAT",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cfg, err := LoadConfig(missingEnvFile(t))
	require.NoError(t, err)

	assert.Equal(t, "inmovilla-gateway", cfg.AppName)
	assert.Equal(t, "8080", cfg.Rest.PORT)
	assert.Equal(t, "", cfg.Rest.BasePath)
	assert.Equal(t, []string{"*"}, cfg.Rest.AllowedOrigins)
	assert.False(t, cfg.Rest.ExposeUpstreamErrors)

	assert.Equal(t, "1234", cfg.Inmovilla.Agency)
	assert.Equal(t, "secret", cfg.Inmovilla.Password)
	assert.Equal(t, 1, cfg.Inmovilla.Language)
	assert.Equal(t, "https://api.inmovilla.com/v1", cfg.Inmovilla.APIURL)
	assert.Equal(t, 15*time.Second, cfg.Inmovilla.Timeout)

	assert.False(t, cfg.FluentBit.Enabled)
	assert.Equal(t, "debug", cfg.StdoutLogger.Level)
	assert.Equal(t, "color", cfg.StdoutLogger.Format)
}

func TestLoadConfig_FromEnvironment(t *testing.T) {
	setRequired(t)
	t.Setenv("PORT", "9090")
	t.Setenv("BASE_PATH", "/api/inmovilla/")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("EXPOSE_UPSTREAM_ERRORS", "true")
	t.Setenv("INMOVILLA_LANGUAGE", "2")
	t.Setenv("INMOVILLA_API_URL", "https://proxy.example/v1")
	t.Setenv("INMOVILLA_DOMAIN", "agency.example")
	t.Setenv("INMOVILLA_TIMEOUT", "3s")
	t.Setenv("FLUENTBIT_ENABLED", "true")
	t.Setenv("FLUENTBIT_HOST", "fluent-bit")

	cfg, err := LoadConfig(missingEnvFile(t))
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Rest.PORT)
	assert.Equal(t, "/api/inmovilla", cfg.Rest.BasePath)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Rest.AllowedOrigins)
	assert.True(t, cfg.Rest.ExposeUpstreamErrors)
	assert.Equal(t, 2, cfg.Inmovilla.Language)
	assert.Equal(t, "https://proxy.example/v1", cfg.Inmovilla.APIURL)
	assert.Equal(t, "agency.example", cfg.Inmovilla.Domain)
	assert.Equal(t, 3*time.Second, cfg.Inmovilla.Timeout)
	assert.True(t, cfg.FluentBit.Enabled)
	assert.Equal(t, 24224, cfg.FluentBit.Port)
	assert.Equal(t, "info", cfg.FluentBit.Level)
}

func TestLoadConfig_RequiresCredentials(t *testing.T) {
	t.Setenv("INMOVILLA_AGENCY", "")
	t.Setenv("INMOVILLA_PASSWORD", "secret")

	_, err := LoadConfig(missingEnvFile(t))
	assert.ErrorContains(t, err, "INMOVILLA_AGENCY")

	t.Setenv("INMOVILLA_AGENCY", "1234")
	t.Setenv("INMOVILLA_PASSWORD", "")

	_, err = LoadConfig(missingEnvFile(t))
	assert.ErrorContains(t, err, "INMOVILLA_PASSWORD")
}

func TestLoadConfig_ReadsDotEnvFile(t *testing.T) {
	t.Setenv("INMOVILLA_AGENCY", "")
	os.Unsetenv("INMOVILLA_AGENCY")
	t.Setenv("INMOVILLA_PASSWORD", "")
	os.Unsetenv("INMOVILLA_PASSWORD")

	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("INMOVILLA_AGENCY=777\nINMOVILLA_PASSWORD=fromfile\n"), 0o600))

	cfg, err := LoadConfig(envFile)
	require.NoError(t, err)

	assert.Equal(t, "777", cfg.Inmovilla.Agency)
	assert.Equal(t, "fromfile", cfg.Inmovilla.Password)
}

func TestNormalizeBasePath(t *testing.T) {
	assert.Equal(t, "", normalizeBasePath(""))
	assert.Equal(t, "", normalizeBasePath("/"))
	assert.Equal(t, "/api", normalizeBasePath("api"))
	assert.Equal(t, "/api/v1", normalizeBasePath("/api/v1/"))
}
