// Package config loads and saves threadchat's JSON configuration file.
package config

import (
	"encoding/json"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	pkgerrors "github.com/zhubert/threadchat/internal/errors"
)

const (
	// DefaultAPIBaseURL is where the chat service listens in a default deployment.
	DefaultAPIBaseURL = "http://127.0.0.1:8000"

	// DefaultRequestTimeoutSeconds bounds every remote call. Chat replies from the
	// agent can take a while, so this is generous.
	DefaultRequestTimeoutSeconds = 60

	// DefaultAudioPlayer plays a file given as the final argument.
	DefaultAudioPlayer = "ffplay -nodisp -autoexit -loglevel quiet"

	// DirEnv overrides the config directory.
	DirEnv = "THREADCHAT_CONFIG_DIR"
)

// Config holds the application configuration
type Config struct {
	APIBaseURL            string `json:"api_base_url,omitempty"`
	RequestTimeoutSeconds int    `json:"request_timeout_seconds,omitempty"`
	NotificationsEnabled  bool   `json:"notifications_enabled,omitempty"` // Desktop notification when a reply arrives
	AudioPlayer           string `json:"audio_player,omitempty"`          // Command used to play synthesized speech
	DictationCommand      string `json:"dictation_command,omitempty"`     // Command whose stdout becomes input text
	StatePath             string `json:"state_path,omitempty"`            // sqlite file holding local client state

	mu       sync.RWMutex
	filePath string
}

// Dir returns the config directory, honouring THREADCHAT_CONFIG_DIR.
func Dir() (string, error) {
	if dir := os.Getenv(DirEnv); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".threadchat"), nil
}

// Default returns a config with every field at its default, not bound to a file.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults("")
	return cfg
}

// Load reads the config from the config directory, or returns defaults if the
// file does not exist yet.
func Load() (*Config, error) {
	dir, err := Dir()
	if err != nil {
		return nil, pkgerrors.ConfigLoadFailed("~", err)
	}
	return LoadFrom(dir)
}

// LoadFrom reads config.json from dir.
func LoadFrom(dir string) (*Config, error) {
	path := filepath.Join(dir, "config.json")
	cfg := &Config{filePath: path}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, pkgerrors.ConfigLoadFailed(path, err)
	}
	if err == nil {
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, pkgerrors.ConfigLoadFailed(path, err)
		}
	}

	// Must happen before Validate() since Validate() only reads
	cfg.applyDefaults(dir)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyDefaults fills zero-valued fields. Not thread-safe; only called while
// the Config is still private to Load.
func (c *Config) applyDefaults(dir string) {
	if c.APIBaseURL == "" {
		c.APIBaseURL = DefaultAPIBaseURL
	}
	c.APIBaseURL = strings.TrimRight(c.APIBaseURL, "/")
	if c.RequestTimeoutSeconds == 0 {
		c.RequestTimeoutSeconds = DefaultRequestTimeoutSeconds
	}
	if c.AudioPlayer == "" {
		c.AudioPlayer = DefaultAudioPlayer
	}
	if c.StatePath == "" && dir != "" {
		c.StatePath = filepath.Join(dir, "state.db")
	}
}

// Validate checks that the config is usable.
func (c *Config) Validate() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	u, err := url.Parse(c.APIBaseURL)
	if err != nil {
		return pkgerrors.ConfigInvalid("api_base_url is not a valid URL: " + err.Error())
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return pkgerrors.ConfigInvalid("api_base_url must use http or https: " + c.APIBaseURL)
	}
	if u.Host == "" {
		return pkgerrors.ConfigInvalid("api_base_url has no host: " + c.APIBaseURL)
	}
	if c.RequestTimeoutSeconds < 0 {
		return pkgerrors.ConfigInvalid("request_timeout_seconds must be positive")
	}
	return nil
}

// Save writes the config to disk
func (c *Config) Save() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	path := c.filePath
	if path == "" {
		dir, err := Dir()
		if err != nil {
			return pkgerrors.ConfigSaveFailed("~", err)
		}
		path = filepath.Join(dir, "config.json")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return pkgerrors.ConfigSaveFailed(path, err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return pkgerrors.ConfigSaveFailed(path, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return pkgerrors.ConfigSaveFailed(path, err)
	}
	return nil
}

// GetAPIBaseURL returns the chat service base URL without a trailing slash.
func (c *Config) GetAPIBaseURL() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.APIBaseURL
}

// SetAPIBaseURL overrides the chat service base URL.
func (c *Config) SetAPIBaseURL(base string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.APIBaseURL = strings.TrimRight(base, "/")
}

// GetRequestTimeout returns the per-request timeout.
func (c *Config) GetRequestTimeout() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.RequestTimeoutSeconds <= 0 {
		return DefaultRequestTimeoutSeconds * time.Second
	}
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}

func (c *Config) GetNotificationsEnabled() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.NotificationsEnabled
}

func (c *Config) SetNotificationsEnabled(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.NotificationsEnabled = enabled
}

func (c *Config) GetAudioPlayer() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.AudioPlayer
}

func (c *Config) GetDictationCommand() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.DictationCommand
}

func (c *Config) GetStatePath() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.StatePath
}

// SetStatePath points local state at another sqlite file.
func (c *Config) SetStatePath(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.StatePath = path
}
