// Package config loads mock port fixture files. A fixture describes a
// set of mock serial ports, each with a response table assembled from a
// named device profile, inline entries, or both.
package config

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"
)

// Config is the root fixture structure
type Config struct {
	App     AppConfig     `json:"app"`
	Ports   []PortConfig  `json:"ports"`
	Logging LoggingConfig `json:"logging"`
}

// AppConfig contains fixture metadata
type AppConfig struct {
	Name       string `json:"name"`
	InstanceID string `json:"instance_id"`
}

// PortConfig defines configuration for a single mock port
type PortConfig struct {
	Device      string           `json:"device"`
	BaudRate    int              `json:"baud_rate"`
	TimeoutSec  float64          `json:"timeout_sec"`
	Profile     string           `json:"profile,omitempty"`
	Responses   []ResponseConfig `json:"responses,omitempty"`
	Enabled     bool             `json:"enabled"`
	Description string           `json:"description,omitempty"`
}

// ResponseConfig defines one response-table entry. Exactly one of
// Match/MatchHex must be set, and at most one of Reply/ReplyHex/Echo.
// An entry with no reply form at all configures an explicitly empty
// response, which is different from having no entry: reads return zero
// bytes instead of the no-data marker.
type ResponseConfig struct {
	Match    string `json:"match,omitempty"`
	MatchHex string `json:"match_hex,omitempty"`
	Reply    string `json:"reply,omitempty"`
	ReplyHex string `json:"reply_hex,omitempty"`
	Echo     bool   `json:"echo,omitempty"`
}

// LoggingConfig defines logging settings
type LoggingConfig struct {
	Level      string `json:"level"`
	BasePath   string `json:"base_path"`
	Filename   string `json:"filename"`
	MaxSizeMB  int    `json:"max_size_mb"`
	MaxBackups int    `json:"max_backups"`
	Compress   bool   `json:"compress"`
}

// Load reads and parses a fixture file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing fixture: %w", err)
	}

	// Apply defaults
	cfg.applyDefaults()

	return &cfg, nil
}

// applyDefaults sets default values for unspecified fields
func (c *Config) applyDefaults() {
	// App defaults
	if c.App.Name == "" {
		c.App.Name = "dummyserial"
	}
	if c.App.InstanceID == "" {
		hostname, _ := os.Hostname()
		c.App.InstanceID = hostname
	}

	// Port defaults
	for i := range c.Ports {
		if c.Ports[i].BaudRate == 0 {
			c.Ports[i].BaudRate = 9600
		}
		if c.Ports[i].TimeoutSec == 0 {
			c.Ports[i].TimeoutSec = 2
		}
	}

	// Logging defaults
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Filename == "" {
		c.Logging.Filename = "dummyserial.log"
	}
	if c.Logging.MaxSizeMB == 0 {
		c.Logging.MaxSizeMB = 50
	}
	if c.Logging.MaxBackups == 0 {
		c.Logging.MaxBackups = 5
	}
}

// Timeout returns the port read timeout as a duration
func (p *PortConfig) Timeout() time.Duration {
	return time.Duration(p.TimeoutSec * float64(time.Second))
}

// MatchKey returns the canonical byte form of the entry's match
func (r *ResponseConfig) MatchKey() ([]byte, error) {
	if r.MatchHex != "" {
		return decodeHex(r.MatchHex)
	}
	return []byte(r.Match), nil
}

// ReplyBytes returns the canonical byte form of the entry's reply. It
// is nil for an Echo entry and empty for an entry with no reply form.
func (r *ResponseConfig) ReplyBytes() ([]byte, error) {
	if r.ReplyHex != "" {
		return decodeHex(r.ReplyHex)
	}
	return []byte(r.Reply), nil
}

// decodeHex parses hex notation, allowing spaces between octets,
// e.g. "01 03 20 00"
func decodeHex(s string) ([]byte, error) {
	cleaned := strings.ReplaceAll(s, " ", "")
	data, err := hex.DecodeString(cleaned)
	if err != nil {
		return nil, fmt.Errorf("invalid hex %q: %w", s, err)
	}
	return data, nil
}
