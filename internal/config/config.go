package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Environment variables that override the config file.
const (
	EnvDataset   = "LOANDASH_DATASET"
	EnvAddr      = "LOANDASH_ADDR"
	EnvLogLevel  = "LOANDASH_LOG_LEVEL"
	EnvLogFormat = "LOANDASH_LOG_FORMAT"
	EnvExportDir = "LOANDASH_EXPORT_DIR"
	EnvWidth     = "LOANDASH_EXPORT_WIDTH"
)

// Config holds all loandash configuration.
type Config struct {
	General    GeneralConfig    `toml:"general"`
	Server     ServerConfig     `toml:"server"`
	Export     ExportConfig     `toml:"export"`
	Appearance AppearanceConfig `toml:"appearance"`
	Log        LogConfig        `toml:"log"`
}

// GeneralConfig holds dataset preferences.
type GeneralConfig struct {
	DatasetPath      string `toml:"dataset_path"`
	DefaultCondition string `toml:"default_condition"`
}

// ServerConfig holds the HTTP page settings.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// ExportConfig holds chart image export settings.
type ExportConfig struct {
	Dir    string `toml:"dir"`
	Format string `toml:"format"` // png or svg
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // console or json
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			DatasetPath:      filepath.Join("data_input", "loan_clean.csv"),
			DefaultCondition: "Good Loan",
		},
		Server: ServerConfig{
			Addr: "127.0.0.1:8501",
		},
		Export: ExportConfig{
			Dir:    "charts",
			Format: "png",
			Width:  1024,
			Height: 400,
		},
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Dir returns the XDG-compliant config directory.
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "loandash")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "loandash")
}

// Path returns the full path to the config file.
func Path() string {
	return filepath.Join(Dir(), "config.toml")
}

// Load reads .env from the working directory, then the config file, then
// applies environment overrides. A missing file yields defaults.
func Load() (Config, error) {
	loadDotEnv()
	cfg, err := LoadFile(Path())
	if err != nil {
		return cfg, err
	}
	ApplyEnv(&cfg)
	return cfg, nil
}

// LoadFile reads one config file over the defaults without touching the
// environment.
func LoadFile(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path) //nolint:gosec // path comes from Dir() or the caller
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// ApplyEnv overrides cfg fields from LOANDASH_* environment variables.
func ApplyEnv(cfg *Config) {
	cfg.General.DatasetPath = getEnv(EnvDataset, cfg.General.DatasetPath)
	cfg.Server.Addr = getEnv(EnvAddr, cfg.Server.Addr)
	cfg.Log.Level = getEnv(EnvLogLevel, cfg.Log.Level)
	cfg.Log.Format = getEnv(EnvLogFormat, cfg.Log.Format)
	cfg.Export.Dir = getEnv(EnvExportDir, cfg.Export.Dir)
	cfg.Export.Width = getEnvAsInt(EnvWidth, cfg.Export.Width)
}

// Save writes the config to disk.
func Save(cfg Config) error {
	return SaveFile(Path(), cfg)
}

// SaveFile writes cfg to path with owner-only permissions.
func SaveFile(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600) //nolint:gosec // path from Dir()
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer func() { _ = f.Close() }()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(Path())
	return err == nil
}

func loadDotEnv() {
	if _, err := os.Stat(".env"); err == nil {
		_ = godotenv.Load(".env")
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
