package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	defaultAPITimeout         = 15 * time.Second
	defaultAPIRetries         = 3
	defaultVolume             = 1.0
	defaultTimeUpdateInterval = 250 * time.Millisecond
)

type Config struct {
	// Backend endpoints and request policy
	API APIConfig `koanf:"api"`

	// Session credential (bearer token). The -token flag overrides it.
	Auth AuthConfig `koanf:"auth"`

	Player PlayerConfig `koanf:"player"`

	State StateConfig `koanf:"state"`

	// Last.fm scrobbling (enables scrobbling when configured)
	Lastfm LastfmConfig `koanf:"lastfm"`

	Desktop DesktopConfig `koanf:"desktop"`
}

// APIConfig holds the backend endpoints.
type APIConfig struct {
	CatalogURL string `koanf:"catalog_url"` // e.g., "http://localhost:5000/api/audius"
	SessionURL string `koanf:"session_url"` // e.g., "http://localhost:5000/api"
	Timeout    string `koanf:"timeout"`     // per attempt, Go duration (default: "15s")
	Retries    *int   `koanf:"retries"`     // extra attempts on 5xx/network errors (default: 3, 0 disables)
}

// AuthConfig holds the session credential.
type AuthConfig struct {
	Token string `koanf:"token"`
}

// PlayerConfig holds audio output settings.
type PlayerConfig struct {
	Volume             *float64 `koanf:"volume"`               // initial volume when none is saved (0.0-1.0, default: 1.0)
	TimeUpdateInterval string   `koanf:"time_update_interval"` // position tick, Go duration (default: "250ms")
}

// StateConfig holds the local database location.
type StateConfig struct {
	DBPath string `koanf:"db_path"` // empty means the XDG data dir
}

// LastfmConfig holds Last.fm scrobbling configuration.
type LastfmConfig struct {
	APIKey     string `koanf:"api_key"`
	APISecret  string `koanf:"api_secret"`
	SessionKey string `koanf:"session_key"` // optional; normally obtained with "wavestream lastfm link"
}

// DesktopConfig toggles desktop integration.
type DesktopConfig struct {
	Notifications *bool `koanf:"notifications"` // default: true
	MPRIS         *bool `koanf:"mpris"`         // default: true
}

// Load reads the default config files. If path is set, only that file is
// read and it must exist.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if path != "" {
		if err := k.Load(file.Provider(expandPath(path)), toml.Parser()); err != nil {
			return nil, fmt.Errorf("load config %s: %w", path, err)
		}
	} else {
		// Try config files in order of priority (last wins)
		for _, p := range getConfigPaths() {
			if _, err := os.Stat(p); err == nil {
				if err := k.Load(file.Provider(p), toml.Parser()); err != nil {
					return nil, fmt.Errorf("load config %s: %w", p, err)
				}
			}
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	cfg.API.CatalogURL = strings.TrimSuffix(cfg.API.CatalogURL, "/")
	cfg.API.SessionURL = strings.TrimSuffix(cfg.API.SessionURL, "/")

	if cfg.State.DBPath != "" {
		cfg.State.DBPath = expandPath(cfg.State.DBPath)
	}

	return cfg, nil
}

func getConfigPaths() []string {
	paths := []string{}

	// 1. ~/.config/wavestream/config.toml
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "wavestream", "config.toml"))
	}

	// 2. ./config.toml (pwd, highest priority)
	paths = append(paths, "config.toml")

	return paths
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// HasToken returns true if a session credential is configured.
func (c *Config) HasToken() bool {
	return c.Auth.Token != ""
}

// HasLastfmConfig returns true if Last.fm scrobbling is configured.
func (c *Config) HasLastfmConfig() bool {
	return c.Lastfm.APIKey != "" && c.Lastfm.APISecret != ""
}

// GetAPITimeout returns the per-attempt request timeout.
func (c *Config) GetAPITimeout() time.Duration {
	return parseDuration(c.API.Timeout, defaultAPITimeout)
}

// GetAPIRetries returns the retry count; -1 means retries are disabled.
func (c *Config) GetAPIRetries() int {
	switch {
	case c.API.Retries == nil:
		return defaultAPIRetries
	case *c.API.Retries <= 0:
		return -1
	case *c.API.Retries > 10:
		return 10
	default:
		return *c.API.Retries
	}
}

// GetVolume returns the initial volume with defaults applied.
func (c *Config) GetVolume() float64 {
	if c.Player.Volume == nil || *c.Player.Volume < 0 || *c.Player.Volume > 1 {
		return defaultVolume
	}
	return *c.Player.Volume
}

// GetTimeUpdateInterval returns the position tick interval.
func (c *Config) GetTimeUpdateInterval() time.Duration {
	d := parseDuration(c.Player.TimeUpdateInterval, defaultTimeUpdateInterval)
	if d < 10*time.Millisecond {
		return defaultTimeUpdateInterval
	}
	return d
}

// NotificationsEnabled reports whether desktop notifications are on.
func (c *Config) NotificationsEnabled() bool {
	return c.Desktop.Notifications == nil || *c.Desktop.Notifications
}

// MPRISEnabled reports whether the MPRIS server is on.
func (c *Config) MPRISEnabled() bool {
	return c.Desktop.MPRIS == nil || *c.Desktop.MPRIS
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	if s == "" {
		return fallback
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
