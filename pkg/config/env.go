package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/bastiangx/wordcost/pkg/problem"
	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

// Environment variables read by LoadEnv.
const (
	EnvDict      = "WORDCOST_DICT"
	EnvCosts     = "WORDCOST_COSTS" // "add delete change anagram"
	EnvHeuristic = "WORDCOST_HEURISTIC"
	EnvCacheDir  = "WORDCOST_CACHE_DIR"
	EnvLogLevel  = "WORDCOST_LOG_LEVEL"
)

// LoadEnv reads the given .env files (missing files are ignored; variables
// already set in the process win) and applies WORDCOST_* overrides to c.
func (c *Config) LoadEnv(files ...string) error {
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("loading %s: %w", f, err)
		}
	}

	if v := os.Getenv(EnvDict); v != "" {
		c.Dict.Path = v
	}
	if v := os.Getenv(EnvCosts); v != "" {
		costs, err := problem.ParseCosts(v)
		if err != nil {
			return fmt.Errorf("%s: %w: %w", EnvCosts, ErrInvalid, err)
		}
		c.Costs = costsConfig(costs)
	}
	if v := os.Getenv(EnvHeuristic); v != "" {
		c.Search.Heuristic = v
	}
	if v := os.Getenv(EnvCacheDir); v != "" {
		c.Cache.Enabled = true
		c.Cache.Dir = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Log.Level = v
	}
	log.Debug("Environment applied", "dict", c.Dict.Path, "heuristic", c.Search.Heuristic)
	return c.Validate()
}
