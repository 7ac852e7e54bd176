// Package config loads the simulator settings from a JSON file.
package config

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"
)

// Defaults
const (
	DefaultCapacity    = 128
	DefaultPageSize    = 64
	DefaultSymbolLimit = 64
	DefaultLogPath     = "mmusim.log"
)

// Preload is an allocation performed at startup
type Preload struct {
	PID   int `json:"pid"`
	Bytes int `json:"bytes"`
}

// Config of one simulator instance
type Config struct {
	Capacity    int       `json:"capacity"`
	PageSize    int       `json:"page_size"`
	SymbolLimit int       `json:"symbol_limit"`
	LogPath     string    `json:"log_path"`
	Preload     []Preload `json:"preload"`
}

// Default returns the built in configuration
func Default() Config {
	return Config{
		Capacity:    DefaultCapacity,
		PageSize:    DefaultPageSize,
		SymbolLimit: DefaultSymbolLimit,
		LogPath:     DefaultLogPath,
	}
}

// Load reads path over the defaults. An empty path returns the defaults.
func Load(path string) (Config, error) {
	c := Default()
	if path == "" {
		return c, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return c, errors.Wrapf(err, "reading config %s", path)
	}
	if err := json.Unmarshal(data, &c); err != nil {
		return c, errors.Wrapf(err, "parsing config %s", path)
	}
	if c.LogPath == "" {
		c.LogPath = DefaultLogPath
	}
	if err := c.Validate(); err != nil {
		return c, errors.Wrapf(err, "config %s", path)
	}
	return c, nil
}

// Validate checks the geometry and the preload list
func (c Config) Validate() error {
	switch {
	case c.PageSize <= 0:
		return errors.Errorf("page_size must be positive, got %d", c.PageSize)
	case c.Capacity < c.PageSize:
		return errors.Errorf("capacity %d smaller than page_size %d", c.Capacity, c.PageSize)
	case c.Capacity%c.PageSize != 0:
		return errors.Errorf("capacity %d is not a multiple of page_size %d", c.Capacity, c.PageSize)
	case c.SymbolLimit < 0 || c.SymbolLimit%2 != 0:
		return errors.Errorf("symbol_limit must be a non negative even number, got %d", c.SymbolLimit)
	}
	seen := make(map[int]bool)
	for _, p := range c.Preload {
		if p.Bytes < 0 {
			return errors.Errorf("preload pid %d: negative size %d", p.PID, p.Bytes)
		}
		if seen[p.PID] {
			return errors.Errorf("preload pid %d listed twice", p.PID)
		}
		seen[p.PID] = true
	}
	return nil
}
