package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trngaudit/internal/errors"
)

// noEnvFile points Load at a dotenv file that does not exist
func noEnvFile(t *testing.T) LoadOptions {
	return LoadOptions{EnvFile: filepath.Join(t.TempDir(), "absent.env")}
}

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()

	require.NoError(t, cfg.Validate())
	assert.Equal(t, "quantum_data.txt", cfg.Input)
	assert.Equal(t, 0.01, cfg.Alpha)
	assert.Equal(t, 1000, cfg.MinSamples)
	assert.Equal(t, "text", cfg.Format)
}

func TestLoad_EnvironmentOverridesDefaults(t *testing.T) {
	t.Setenv("AUDIT_INPUT", "bits.txt")
	t.Setenv("AUDIT_ALPHA", "0.05")
	t.Setenv("AUDIT_MIN_SAMPLES", "500")
	t.Setenv("AUDIT_FORMAT", "JSON")

	cfg, err := Load(noEnvFile(t))
	require.NoError(t, err)

	assert.Equal(t, "bits.txt", cfg.Input)
	assert.Equal(t, 0.05, cfg.Alpha)
	assert.Equal(t, 500, cfg.MinSamples)
	assert.Equal(t, "json", cfg.Format)
	require.NoError(t, cfg.Validate())
}

func TestLoad_FileThenEnvironment(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "audit.yaml")
	require.NoError(t, os.WriteFile(path, []byte("input: from-file.txt\nalpha: 0.02\nserver:\n  port: \"9090\"\n"), 0o600))
	t.Setenv("AUDIT_ALPHA", "0.03")

	cfg, err := Load(LoadOptions{ConfigFile: path, EnvFile: filepath.Join(dir, "absent.env")})
	require.NoError(t, err)

	assert.Equal(t, "from-file.txt", cfg.Input)
	assert.Equal(t, 0.03, cfg.Alpha, "environment wins over the file")
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 1000, cfg.MinSamples, "fields missing from the file keep defaults")
}

func TestLoad_DotEnvFile(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(envFile, []byte("AUDIT_MIN_SAMPLES=42\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("AUDIT_MIN_SAMPLES") })

	cfg, err := Load(LoadOptions{EnvFile: envFile})
	require.NoError(t, err)
	assert.Equal(t, 42, cfg.MinSamples)
}

func TestLoad_LogLevelAliases(t *testing.T) {
	tt := []struct {
		name  string
		value string
		exp   string
	}{
		{"warning alias", "WARNING", "WARN"},
		{"lower case", "warning", "WARN"},
		{"debug", "debug", "DEBUG"},
		{"padded", " error ", "ERROR"},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("LOG_LEVEL", tc.value)

			cfg, err := Load(noEnvFile(t))
			require.NoError(t, err)
			assert.Equal(t, tc.exp, cfg.LogLevel)
			require.NoError(t, cfg.Validate())
		})
	}
}

func TestLoad_LogLevelFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "audit.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log_level: warning\n"), 0o600))
	t.Setenv("LOG_LEVEL", "")

	cfg, err := Load(LoadOptions{ConfigFile: path, EnvFile: filepath.Join(dir, "absent.env")})
	require.NoError(t, err)
	assert.Equal(t, "WARN", cfg.LogLevel)
	require.NoError(t, cfg.Validate())
}

func TestLoad_MalformedNumber(t *testing.T) {
	t.Setenv("AUDIT_ALPHA", "one percent")

	_, err := Load(noEnvFile(t))
	require.Error(t, err)
	assert.Equal(t, errors.CodeConfigInvalid, errors.GetCode(err))
}

func TestLoad_MissingConfigFile(t *testing.T) {
	_, err := Load(LoadOptions{ConfigFile: filepath.Join(t.TempDir(), "nope.yaml")})
	require.Error(t, err)
	assert.Equal(t, errors.CodeConfigInvalid, errors.GetCode(err))
}

func TestValidate(t *testing.T) {
	tt := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "alpha zero", mutate: func(c *Config) { c.Alpha = 0 }},
		{name: "alpha one", mutate: func(c *Config) { c.Alpha = 1 }},
		{name: "min samples zero", mutate: func(c *Config) { c.MinSamples = 0 }},
		{name: "unknown format", mutate: func(c *Config) { c.Format = "xml" }},
		{name: "empty input", mutate: func(c *Config) { c.Input = "" }},
		{name: "unknown driver", mutate: func(c *Config) { c.Database.Driver = "mysql" }},
		{name: "record without ledger", mutate: func(c *Config) { c.Record = true }},
	}
	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Equal(t, errors.CodeConfigInvalid, errors.GetCode(err))
		})
	}
}

func TestValidate_RecordWithLedger(t *testing.T) {
	cfg := Default()
	cfg.Record = true
	cfg.Database = DatabaseConfig{Driver: "sqlite3", URL: "file:audits.db"}

	assert.NoError(t, cfg.Validate())
}
