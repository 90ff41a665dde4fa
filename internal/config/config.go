// ABOUTME: Configuration management for minigram with YAML config loading.
// ABOUTME: Handles API, feed, log, and profile settings, env overrides, and ~ expansion.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/2389-research/minigram/internal/storage"
)

// Defaults applied by the getters when a setting is left blank.
const (
	DefaultPageSize = 10
	DefaultTimeout  = 30 * time.Second
	DefaultLogLevel = "info"
)

// Config stores minigram configuration loaded from ~/.config/minigram/config.yaml.
type Config struct {
	API     APIConfig     `yaml:"api"`
	Feed    FeedConfig    `yaml:"feed"`
	Log     LogConfig     `yaml:"log"`
	Profile ProfileConfig `yaml:"profile"`
}

// APIConfig holds remote post API settings.
type APIConfig struct {
	BaseURL          string `yaml:"base_url,omitempty"`
	LocalIDThreshold int    `yaml:"local_id_threshold,omitempty"`
	TimeoutSeconds   int    `yaml:"timeout_seconds,omitempty"`
	ListLimit        int    `yaml:"list_limit,omitempty"`
}

// FeedConfig holds feed display settings.
type FeedConfig struct {
	PageSize      int  `yaml:"page_size,omitempty"`
	DisableSearch bool `yaml:"disable_search,omitempty"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `yaml:"level,omitempty"`
	File  string `yaml:"file,omitempty"`
}

// ProfileConfig holds an optional path override for the profile file.
type ProfileConfig struct {
	Path string `yaml:"path,omitempty"`
}

// GetBaseURL returns the API base URL, defaulting to the public demo API.
func (c *Config) GetBaseURL() string {
	if c.API.BaseURL != "" {
		return c.API.BaseURL
	}
	return storage.DefaultAPIURL
}

// GetLocalIDThreshold returns the id above which posts are local-only.
func (c *Config) GetLocalIDThreshold() int {
	if c.API.LocalIDThreshold > 0 {
		return c.API.LocalIDThreshold
	}
	return storage.DefaultLocalIDThreshold
}

// GetTimeout returns the HTTP timeout for API calls.
func (c *Config) GetTimeout() time.Duration {
	if c.API.TimeoutSeconds > 0 {
		return time.Duration(c.API.TimeoutSeconds) * time.Second
	}
	return DefaultTimeout
}

// GetPageSize returns the number of posts per page.
func (c *Config) GetPageSize() int {
	if c.Feed.PageSize > 0 {
		return c.Feed.PageSize
	}
	return DefaultPageSize
}

// SearchEnabled reports whether the search box is shown.
func (c *Config) SearchEnabled() bool {
	return !c.Feed.DisableSearch
}

// GetLogLevel returns the configured log level.
func (c *Config) GetLogLevel() string {
	if c.Log.Level != "" {
		return c.Log.Level
	}
	return DefaultLogLevel
}

// GetLogFile returns the expanded log file path, or "" for no file.
func (c *Config) GetLogFile() (string, error) {
	return ExpandPath(c.Log.File)
}

// GetProfilePath returns the profile file path, defaulting to the data directory.
func (c *Config) GetProfilePath() (string, error) {
	if c.Profile.Path != "" {
		return ExpandPath(c.Profile.Path)
	}
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "profile.yaml"), nil
}

// ApplyEnv overrides settings from MINIGRAM_* environment variables.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv("MINIGRAM_API_URL"); v != "" {
		c.API.BaseURL = v
	}
	if v := os.Getenv("MINIGRAM_PAGE_SIZE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return fmt.Errorf("invalid MINIGRAM_PAGE_SIZE %q: must be a positive integer", v)
		}
		c.Feed.PageSize = n
	}
	if v := os.Getenv("MINIGRAM_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("MINIGRAM_LOG_FILE"); v != "" {
		c.Log.File = v
	}
	return nil
}

// DataDir returns the default minigram data directory.
func DataDir() (string, error) {
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataDir, "minigram"), nil
}

// GetConfigPath returns the config file path.
func GetConfigPath() (string, error) {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, ".config")
	}
	return filepath.Join(configDir, "minigram", "config.yaml"), nil
}

// Exists reports whether a config file has been written.
func Exists() bool {
	path, err := GetConfigPath()
	if err != nil {
		return false
	}
	_, err = os.Stat(path)
	return err == nil
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	if path == "~" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		return home, nil
	}
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		return filepath.Join(home, path[2:]), nil
	}
	return path, nil
}

// Load reads config from disk. Returns default config if file doesn't exist.
func Load() (*Config, error) {
	path, err := GetConfigPath()
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return &cfg, nil
}

// Save writes config to disk.
func (c *Config) Save() error {
	path, err := GetConfigPath()
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
