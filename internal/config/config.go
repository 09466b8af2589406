package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"trngaudit/domain/verdict"
	"trngaudit/internal/errors"
)

// Config is fixed at invocation: it is loaded once, overridden by flags, validated,
// and then passed by value into the audit entry point
type Config struct {
	Input      string         `yaml:"input" validate:"required"`
	Alpha      float64        `yaml:"alpha" validate:"gt=0,lt=1"`
	MinSamples int            `yaml:"min_samples" validate:"min=1"`
	Format     string         `yaml:"format" validate:"oneof=text json yaml"`
	XLSXPath   string         `yaml:"xlsx"`
	Strict     bool           `yaml:"strict"`
	Record     bool           `yaml:"record"`
	LogLevel   string         `yaml:"log_level" validate:"omitempty,oneof=ERROR WARN INFO DEBUG TRACE"`
	Database   DatabaseConfig `yaml:"database"`
	Server     ServerConfig   `yaml:"server"`
}

// DatabaseConfig holds the audit ledger connection settings
type DatabaseConfig struct {
	Driver string `yaml:"driver" validate:"oneof=postgres sqlite3"`
	URL    string `yaml:"url"`
}

// ServerConfig holds HTTP API settings
type ServerConfig struct {
	Port    string `yaml:"port" validate:"required,numeric"`
	MaxBody int64  `yaml:"max_body_bytes" validate:"min=1"`
}

// LoadOptions names the optional sources consulted by Load
type LoadOptions struct {
	ConfigFile string // YAML file, optional
	EnvFile    string // dotenv file, optional; missing file is ignored
}

// Enabled reports whether a ledger is configured
func (d DatabaseConfig) Enabled() bool {
	return d.URL != ""
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		Input:      "quantum_data.txt",
		Alpha:      verdict.DefaultAlpha,
		MinSamples: verdict.DefaultMinSamples,
		Format:     "text",
		LogLevel:   "INFO",
		Database: DatabaseConfig{
			Driver: "postgres",
		},
		Server: ServerConfig{
			Port:    "8080",
			MaxBody: 64 << 20,
		},
	}
}

// Load layers defaults, the YAML file, the dotenv file, and the environment.
// The result is not validated yet because CLI flags still apply on top of it.
func Load(opts LoadOptions) (Config, error) {
	cfg := Default()

	if opts.ConfigFile != "" {
		if err := loadFile(opts.ConfigFile, &cfg); err != nil {
			return Config{}, err
		}
	}

	envFile := opts.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
		return Config{}, errors.Wrapf(errors.ConfigInvalid(err.Error()), "failed to load %s", envFile)
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, errors.Wrap(err, "failed to load environment configuration")
	}
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(errors.ConfigInvalid(err.Error()), "failed to read config file %s", path)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return errors.Wrapf(errors.ConfigInvalid(err.Error()), "failed to parse config file %s", path)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	cfg.Input = getEnvOrDefault("AUDIT_INPUT", cfg.Input)
	cfg.Format = strings.ToLower(getEnvOrDefault("AUDIT_FORMAT", cfg.Format))
	cfg.XLSXPath = getEnvOrDefault("AUDIT_XLSX", cfg.XLSXPath)
	cfg.LogLevel = NormalizeLogLevel(getEnvOrDefault("LOG_LEVEL", cfg.LogLevel))
	cfg.Database.Driver = getEnvOrDefault("AUDIT_DATABASE_DRIVER", cfg.Database.Driver)
	cfg.Database.URL = getEnvOrDefault("AUDIT_DATABASE_URL", cfg.Database.URL)
	cfg.Server.Port = getEnvOrDefault("PORT", cfg.Server.Port)

	var err error
	if cfg.Alpha, err = getEnvFloatOrDefault("AUDIT_ALPHA", cfg.Alpha); err != nil {
		return err
	}
	if cfg.MinSamples, err = getEnvIntOrDefault("AUDIT_MIN_SAMPLES", cfg.MinSamples); err != nil {
		return err
	}
	if cfg.Strict, err = getEnvBoolOrDefault("AUDIT_STRICT", cfg.Strict); err != nil {
		return err
	}
	if cfg.Record, err = getEnvBoolOrDefault("AUDIT_RECORD", cfg.Record); err != nil {
		return err
	}
	return nil
}

// NormalizeLogLevel upper-cases a level name and folds WARNING into WARN
func NormalizeLogLevel(level string) string {
	level = strings.ToUpper(strings.TrimSpace(level))
	if level == "WARNING" {
		return "WARN"
	}
	return level
}

var validate = validator.New()

// Validate checks field constraints and cross-field rules
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var msgs []string
		if verrs, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s failed %s", fe.Namespace(), fe.Tag()))
			}
		} else {
			msgs = append(msgs, err.Error())
		}
		return errors.ConfigInvalid("invalid configuration: " + strings.Join(msgs, "; "))
	}
	if c.Record && !c.Database.Enabled() {
		return errors.ConfigInvalid("recording audits requires AUDIT_DATABASE_URL")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		return 0, errors.ConfigInvalid(fmt.Sprintf("%s must be an integer, got %q", key, value))
	}
	return intValue, nil
}

func getEnvFloatOrDefault(key string, defaultValue float64) (float64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	floatValue, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, errors.ConfigInvalid(fmt.Sprintf("%s must be a number, got %q", key, value))
	}
	return floatValue, nil
}

func getEnvBoolOrDefault(key string, defaultValue bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		return false, errors.ConfigInvalid(fmt.Sprintf("%s must be a boolean, got %q", key, value))
	}
	return boolValue, nil
}
