package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/adrg/xdg"
)

var cfgFile = "giftwrap/config.json"

type InvalidConfig struct {
	err string
}

func (e *InvalidConfig) Error() string {
	return fmt.Sprintf("config error: %s", e.err)
}

type Config struct {
	HTTPAddr     string `json:"http_addr"`
	AIDepth      int    `json:"ai_depth"`
	AIParallel   bool   `json:"ai_parallel"`
	AIWorkers    int    `json:"ai_workers"`
	BlockedCells bool   `json:"blocked_cells"`
	LogLevel     string `json:"log_level"`
	LogPretty    bool   `json:"log_pretty"`

	// RoomTTLMinutes drops rooms idle for longer; zero keeps them forever.
	RoomTTLMinutes int `json:"room_ttl_minutes"`
}

const MaxAIDepth = 8

func Default() Config {
	return Config{
		HTTPAddr: ":8080",
		AIDepth:  5,
		LogLevel: "info",

		RoomTTLMinutes: 120,
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func getenvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

// Load starts from the defaults, applies giftwrap/config.json from the XDG
// config dirs when present, then environment variables.
func Load() (*Config, error) {
	cfg := Default()
	if path, err := xdg.SearchConfigFile(cfgFile); err == nil {
		if err := readCfgFile(path, &cfg); err != nil {
			return nil, err
		}
	}
	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyEnv() {
	c.HTTPAddr = getenv("HTTP_ADDR", c.HTTPAddr)
	c.AIDepth = getenvInt("AI_DEPTH", c.AIDepth)
	c.AIParallel = getenvBool("AI_PARALLEL", c.AIParallel)
	c.AIWorkers = getenvInt("AI_WORKERS", c.AIWorkers)
	c.BlockedCells = getenvBool("BLOCKED_CELLS", c.BlockedCells)
	c.LogLevel = getenv("LOG_LEVEL", c.LogLevel)
	c.LogPretty = getenvBool("LOG_PRETTY", c.LogPretty)
	c.RoomTTLMinutes = getenvInt("ROOM_TTL_MINUTES", c.RoomTTLMinutes)
}

func (c *Config) Validate() error {
	if c.AIDepth < 1 || c.AIDepth > MaxAIDepth {
		return &InvalidConfig{fmt.Sprintf("ai_depth must be between 1 and %d, got %d", MaxAIDepth, c.AIDepth)}
	}
	if c.AIWorkers < 0 {
		return &InvalidConfig{"ai_workers must not be negative"}
	}
	if c.RoomTTLMinutes < 0 {
		return &InvalidConfig{"room_ttl_minutes must not be negative"}
	}
	if c.HTTPAddr == "" {
		return &InvalidConfig{"http_addr is empty"}
	}
	return nil
}

// Save writes the config to the user's XDG config dir and returns the path.
func (c *Config) Save() (string, error) {
	path, err := xdg.ConfigFile(cfgFile)
	if err != nil {
		return "", err
	}
	return path, saveCfgFile(path, c, 0o664)
}

func saveCfgFile(path string, v any, perm fs.FileMode) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, perm)
}

func readCfgFile(path string, v any) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return &InvalidConfig{fmt.Sprintf("%s: %v", path, err)}
	}
	return nil
}

func (c Config) RoomTTL() time.Duration {
	return time.Duration(c.RoomTTLMinutes) * time.Minute
}

func normalizeLevel(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
