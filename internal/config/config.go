package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Config is the persistent application configuration
type Config struct {
	// Network settings
	Network NetworkConfig `json:"network"`

	// UI Preferences
	UI UIConfig `json:"ui"`
}

// NetworkConfig holds upstream and relay settings
type NetworkConfig struct {
	// UpstreamBaseURL is the quotes provider origin
	UpstreamBaseURL string `json:"upstream_base_url"`
	// RelayBaseURL is the user's own deployed relay; empty falls through
	// to the public relays
	RelayBaseURL string `json:"relay_base_url,omitempty"`
	// DevRelay routes requests through the local relay
	DevRelay bool `json:"dev_relay"`
	// RelayListenAddr is where the local relay listens
	RelayListenAddr string `json:"relay_listen_addr"`
	// TimeoutMs bounds each candidate request
	TimeoutMs int `json:"timeout_ms"`
}

// UIConfig holds UI preferences
type UIConfig struct {
	Theme string `json:"theme"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Network: NetworkConfig{
			UpstreamBaseURL: "https://zenquotes.io",
			RelayListenAddr: "127.0.0.1:8901",
			TimeoutMs:       8000,
		},
		UI: UIConfig{
			Theme: "dark",
		},
	}
}

// ConfigPath returns the path to the config file
func ConfigPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".quotd", "config.json")
}

// Load reads config from disk, or returns defaults
func Load() (*Config, error) {
	data, err := os.ReadFile(ConfigPath())
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), nil
	}

	// Backfill zero values so a hand-edited config stays usable
	defaults := DefaultConfig()
	if cfg.Network.UpstreamBaseURL == "" {
		cfg.Network.UpstreamBaseURL = defaults.Network.UpstreamBaseURL
	}
	if cfg.Network.RelayListenAddr == "" {
		cfg.Network.RelayListenAddr = defaults.Network.RelayListenAddr
	}
	if cfg.Network.TimeoutMs <= 0 {
		cfg.Network.TimeoutMs = defaults.Network.TimeoutMs
	}
	if cfg.UI.Theme == "" {
		cfg.UI.Theme = defaults.UI.Theme
	}

	return &cfg, nil
}

// Save writes config to disk
func (c *Config) Save() error {
	path := ConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
