package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/treykane/memo/internal/logging"
)

const (
	configDirName  = ".memo"
	configFileName = "config.json"
)

// Store backends understood by the kvstore package.
const (
	StoreFile   = "file"
	StoreSQLite = "sqlite"
	StoreMemory = "memory"
	StoreNone   = "none"
)

const (
	// DefaultQuotaBytes mirrors the budget browsers give local storage.
	DefaultQuotaBytes = 5 * 1024 * 1024
	// DefaultAutoSaveSeconds is the auto-save tick period.
	DefaultAutoSaveSeconds = 5
	// DefaultTheme is used when no theme has been stored yet.
	DefaultTheme = "light"
)

var ErrNotConfigured = errors.New("memo is not configured")

var log = logging.New("config")

// Config stores user-defined memo settings.
type Config struct {
	Store           string              `json:"store,omitempty"`
	StorePath       string              `json:"store_path,omitempty"`
	StoreQuotaBytes int64               `json:"store_quota_bytes,omitempty"`
	ExportDir       string              `json:"export_dir,omitempty"`
	DefaultTheme    string              `json:"default_theme,omitempty"`
	AutoSaveSeconds int                 `json:"autosave_seconds,omitempty"`
	Keybindings     map[string][]string `json:"keybindings,omitempty"`
}

// ConfigDir returns the directory holding config, the default store and logs.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, configDirName), nil
}

// ConfigPath returns the configuration file path. MEMO_CONFIG overrides it.
func ConfigPath() (string, error) {
	if override := strings.TrimSpace(os.Getenv("MEMO_CONFIG")); override != "" {
		return NormalizePath(override)
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}

// Exists reports whether the config file exists.
func Exists() (bool, error) {
	path, err := ConfigPath()
	if err != nil {
		return false, err
	}
	_, err = os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, fmt.Errorf("stat config path: %w", err)
}

// Load reads and validates the saved configuration. Defaults are applied to
// every unset field, and environment overrides are applied last.
func Load() (Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return Config{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Config{}, ErrNotConfigured
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return cfg.Resolve()
}

// LoadOrDefault behaves like Load but treats a missing file as an empty one.
func LoadOrDefault() (Config, error) {
	cfg, err := Load()
	if errors.Is(err, ErrNotConfigured) {
		return Config{}.Resolve()
	}
	return cfg, err
}

// Resolve fills defaults, applies environment overrides and validates.
func (c Config) Resolve() (Config, error) {
	if v := strings.TrimSpace(os.Getenv("MEMO_STORE")); v != "" {
		c.Store = v
	}
	if v := strings.TrimSpace(os.Getenv("MEMO_EXPORT_DIR")); v != "" {
		c.ExportDir = v
	}

	c.Store = strings.ToLower(strings.TrimSpace(c.Store))
	if c.Store == "" {
		c.Store = StoreFile
	}
	switch c.Store {
	case StoreFile, StoreSQLite, StoreMemory, StoreNone:
	default:
		return Config{}, fmt.Errorf("invalid store %q", c.Store)
	}

	if c.StoreQuotaBytes == 0 {
		c.StoreQuotaBytes = DefaultQuotaBytes
	}
	if c.StoreQuotaBytes < 0 {
		return Config{}, fmt.Errorf("invalid store_quota_bytes: %d", c.StoreQuotaBytes)
	}

	if c.AutoSaveSeconds == 0 {
		c.AutoSaveSeconds = DefaultAutoSaveSeconds
	}
	if c.AutoSaveSeconds < 0 {
		return Config{}, fmt.Errorf("invalid autosave_seconds: %d", c.AutoSaveSeconds)
	}

	c.DefaultTheme = strings.ToLower(strings.TrimSpace(c.DefaultTheme))
	if c.DefaultTheme == "" {
		c.DefaultTheme = DefaultTheme
	}
	if c.DefaultTheme != "light" && c.DefaultTheme != "dark" {
		return Config{}, fmt.Errorf("invalid default_theme %q", c.DefaultTheme)
	}

	if c.Store == StoreFile || c.Store == StoreSQLite {
		path, err := c.resolveStorePath()
		if err != nil {
			return Config{}, fmt.Errorf("invalid store_path: %w", err)
		}
		c.StorePath = path
	}

	exportDir, err := c.resolveExportDir()
	if err != nil {
		return Config{}, fmt.Errorf("invalid export_dir: %w", err)
	}
	c.ExportDir = exportDir

	return c, nil
}

func (c Config) resolveStorePath() (string, error) {
	if strings.TrimSpace(c.StorePath) != "" {
		return NormalizePath(c.StorePath)
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	name := "store.json"
	if c.Store == StoreSQLite {
		name = "store.db"
	}
	return filepath.Join(dir, name), nil
}

// resolveExportDir prefers ~/Downloads when it exists, like a browser would.
func (c Config) resolveExportDir() (string, error) {
	if strings.TrimSpace(c.ExportDir) != "" {
		return NormalizePath(c.ExportDir)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	downloads := filepath.Join(home, "Downloads")
	if info, err := os.Stat(downloads); err == nil && info.IsDir() {
		return downloads, nil
	}
	return filepath.Join(home, "memo"), nil
}

// Save writes configuration to disk.
func Save(cfg Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	log.Info("saved config", "path", path)
	return nil
}

// NormalizePath expands a leading ~ and returns a clean absolute path.
func NormalizePath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", errors.New("path is required")
	}

	expanded, err := expandHome(trimmed)
	if err != nil {
		return "", err
	}

	abs, err := filepath.Abs(expanded)
	if err != nil {
		return "", err
	}

	return filepath.Clean(abs), nil
}

func expandHome(path string) (string, error) {
	if path == "~" {
		return os.UserHomeDir()
	}
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~/")), nil
	}
	return path, nil
}
