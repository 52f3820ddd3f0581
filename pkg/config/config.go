/*
Package config manages the TOML config of wordcost.

	[costs]
	add = 1
	delete = 1
	change = 1
	anagram = 1

	[dict]
	path = "words_alpha.txt"
	min_length = 0
	letters_only = false

	[search]
	heuristic = "admissible"
	early_break = true

Values can be overridden from the environment (and a .env file), see LoadEnv.
*/
package config

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/bastiangx/wordcost/internal/utils"
	"github.com/bastiangx/wordcost/pkg/morph"
	"github.com/charmbracelet/log"
)

// ErrInvalid wraps every validation failure of a loaded config.
var ErrInvalid = errors.New("config: invalid value")

// Config holds the entire config structure
type Config struct {
	Costs  CostsConfig  `toml:"costs"`
	Dict   DictConfig   `toml:"dict"`
	Search SearchConfig `toml:"search"`
	Server ServerConfig `toml:"server"`
	Cache  CacheConfig  `toml:"cache"`
	CLI    CliConfig    `toml:"cli"`
	Log    LogConfig    `toml:"log"`
}

// CostsConfig are the default operation costs, used when a request or
// interactive session does not bring its own.
type CostsConfig struct {
	Add     int `toml:"add"`
	Delete  int `toml:"delete"`
	Change  int `toml:"change"`
	Anagram int `toml:"anagram"`
}

// DictConfig holds dictionary options.
type DictConfig struct {
	Path        string `toml:"path"`
	MinLength   int    `toml:"min_length"`
	LettersOnly bool   `toml:"letters_only"`
}

// SearchConfig selects the heuristic and the early break.
type SearchConfig struct {
	Heuristic  string `toml:"heuristic"`
	EarlyBreak bool   `toml:"early_break"`
}

// ServerConfig has server related options.
type ServerConfig struct {
	MaxWordLength int `toml:"max_word_length"`
}

// CacheConfig controls the persistent result cache. An empty dir keeps
// the cache in memory.
type CacheConfig struct {
	Enabled bool   `toml:"enabled"`
	Dir     string `toml:"dir"`
}

// CliConfig has interactive mode options.
type CliConfig struct {
	ShowStats bool `toml:"show_stats"`
}

// LogConfig sets the global log level.
type LogConfig struct {
	Level      string `toml:"level"`
	Timestamps bool   `toml:"timestamps"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Costs: CostsConfig{Add: 1, Delete: 1, Change: 1, Anagram: 1},
		Dict: DictConfig{
			Path: "words_alpha.txt",
		},
		Search: SearchConfig{
			Heuristic:  morph.HeuristicAdmissible,
			EarlyBreak: true,
		},
		Server: ServerConfig{MaxWordLength: 64},
		Cache:  CacheConfig{},
		CLI:    CliConfig{ShowStats: true},
		Log:    LogConfig{Level: "warn"},
	}
}

// CostModel validates and converts the configured costs.
func (c CostsConfig) CostModel() (morph.CostModel, error) {
	m, err := morph.NewCostModel(c.Add, c.Delete, c.Change, c.Anagram)
	if err != nil {
		return morph.CostModel{}, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return m, nil
}

// SearchOptions turns the search section into engine options.
func (c *Config) SearchOptions() ([]morph.Option, error) {
	h, err := morph.HeuristicByName(c.Search.Heuristic)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return []morph.Option{morph.WithHeuristic(h), morph.WithEarlyBreak(c.Search.EarlyBreak)}, nil
}

// Validate checks every section.
func (c *Config) Validate() error {
	if _, err := c.Costs.CostModel(); err != nil {
		return err
	}
	if _, err := c.SearchOptions(); err != nil {
		return err
	}
	if c.Dict.MinLength < 0 {
		return fmt.Errorf("%w: dict.min_length=%d", ErrInvalid, c.Dict.MinLength)
	}
	if c.Server.MaxWordLength < utils.MinWordLength {
		return fmt.Errorf("%w: server.max_word_length=%d", ErrInvalid, c.Server.MaxWordLength)
	}
	return nil
}

// InitConfig loads config from file or creates default if missing
func InitConfig(configPath string) (*Config, error) {
	configDir := filepath.Dir(configPath)
	if err := utils.EnsureDir(configDir); err != nil {
		log.Warnf("Failed to create config directory %s: %v. Using built-in defaults...", configDir, err)
		return DefaultConfig(), nil
	}

	if !utils.FileExists(configPath) {
		config := DefaultConfig()
		if err := SaveConfig(config, configPath); err != nil {
			log.Warnf("Failed to create default config file at %s: %v. Using built-in defaults...", configPath, err)
			return DefaultConfig(), nil
		}
		log.Debugf("Created default config file at: %s", configPath)
		return config, nil
	}
	return LoadConfig(configPath)
}

// LoadConfig loads from a TOML file on top of the defaults. A file that
// does not decode as a whole is parsed section by section.
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()
	if err := utils.LoadTOMLFile(configPath, config); err != nil {
		config = tryPartialParse(configPath)
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", configPath, err)
	}
	return config, nil
}

// tryPartialParse keeps every well-typed value it can find
func tryPartialParse(configPath string) *Config {
	config := DefaultConfig()

	tempConfig, err := utils.ParseTOMLWithRecovery(configPath)
	if err != nil {
		log.Warnf("Could not parse any valid configuration from %s: %v. Using all defaults.", configPath, err)
		return config
	}

	if section, ok := utils.ExtractSection(tempConfig, "costs"); ok {
		extractCostsConfig(section, &config.Costs)
	}
	if section, ok := utils.ExtractSection(tempConfig, "dict"); ok {
		extractDictConfig(section, &config.Dict)
	}
	if section, ok := utils.ExtractSection(tempConfig, "search"); ok {
		extractSearchConfig(section, &config.Search)
	}
	if section, ok := utils.ExtractSection(tempConfig, "server"); ok {
		if val, ok := utils.ExtractInt64(section, "max_word_length"); ok {
			config.Server.MaxWordLength = val
		}
	}
	if section, ok := utils.ExtractSection(tempConfig, "cache"); ok {
		if val, ok := utils.ExtractBool(section, "enabled"); ok {
			config.Cache.Enabled = val
		}
		if val, ok := utils.ExtractString(section, "dir"); ok {
			config.Cache.Dir = val
		}
	}
	if section, ok := utils.ExtractSection(tempConfig, "cli"); ok {
		if val, ok := utils.ExtractBool(section, "show_stats"); ok {
			config.CLI.ShowStats = val
		}
	}
	if section, ok := utils.ExtractSection(tempConfig, "log"); ok {
		if val, ok := utils.ExtractString(section, "level"); ok {
			config.Log.Level = val
		}
		if val, ok := utils.ExtractBool(section, "timestamps"); ok {
			config.Log.Timestamps = val
		}
	}
	return config
}

func extractCostsConfig(data map[string]any, costs *CostsConfig) {
	if val, ok := utils.ExtractInt64(data, "add"); ok {
		costs.Add = val
	}
	if val, ok := utils.ExtractInt64(data, "delete"); ok {
		costs.Delete = val
	}
	if val, ok := utils.ExtractInt64(data, "change"); ok {
		costs.Change = val
	}
	if val, ok := utils.ExtractInt64(data, "anagram"); ok {
		costs.Anagram = val
	}
}

func extractDictConfig(data map[string]any, dict *DictConfig) {
	if val, ok := utils.ExtractString(data, "path"); ok {
		dict.Path = val
	}
	if val, ok := utils.ExtractInt64(data, "min_length"); ok {
		dict.MinLength = val
	}
	if val, ok := utils.ExtractBool(data, "letters_only"); ok {
		dict.LettersOnly = val
	}
}

func extractSearchConfig(data map[string]any, search *SearchConfig) {
	if val, ok := utils.ExtractString(data, "heuristic"); ok {
		search.Heuristic = val
	}
	if val, ok := utils.ExtractBool(data, "early_break"); ok {
		search.EarlyBreak = val
	}
}

// SaveConfig saves into a TOML file
func SaveConfig(config *Config, configPath string) error {
	return utils.SaveTOMLFile(config, configPath)
}

// UpdateCosts changes the default costs and saves to file
func (c *Config) UpdateCosts(configPath string, costs morph.CostModel) error {
	if err := costs.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	c.Costs = costsConfig(costs)
	return SaveConfig(c, configPath)
}

func costsConfig(m morph.CostModel) CostsConfig {
	return CostsConfig{Add: m.Add, Delete: m.Delete, Change: m.Change, Anagram: m.Anagram}
}
