// Copyright 2025 The wordcost Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main computes the cheapest way to turn one word into another.

Four operations are available, each with its own cost: insert a letter,
delete a letter, change a letter, or replace the word by one of its
anagrams. Every word along the way must be in the dictionary and have at
least three letters.

# Usage

Solve the problem in input.txt against words_alpha.txt:

	wordcost

The input file holds the costs on the first line, then the start and end
words:

	1 1 1 5
	cat
	dog

The minimum cost is printed on stdout, or -1 when the end word cannot be
reached.

Use another input and dictionary, with debug logs:

	wordcost -input problem.txt -dict /usr/share/dict/words -d

Try words by hand:

	wordcost -c

Serve msgpack requests over stdin/stdout, caching answers on disk:

	wordcost -s -cache ~/.cache/wordcost

# Dictionaries

Plain text word lists (one or more words per line) and binary chunk files
(dict_0001.bin, ...) are both accepted. A text list can be converted with
-export:

	wordcost -dict words_alpha.txt -export data/dict_0001.bin

# Configuration

Defaults come from config.toml in the user config dir, created on first
run. WORDCOST_* variables, from the environment or a .env file, override
it:

	WORDCOST_DICT=/usr/share/dict/words
	WORDCOST_COSTS="1 1 1 5"
	WORDCOST_HEURISTIC=classic
	WORDCOST_CACHE_DIR=/tmp/wordcost

# Command Line Flags

	-input string
	    Problem file (default "input.txt")
	-dict string
	    Dictionary file or chunk dir (default from config)
	-config string
	    Config file (default in the user config dir)
	-env string
	    .env file with WORDCOST_* overrides (default ".env")
	-heuristic string
	    admissible or classic (default from config)
	-no-early-break
	    Keep searching after the cheapest open word exceeds the best cost
	-cache string
	    Result cache dir for server mode
	-export string
	    Write the loaded dictionary as a binary chunk and exit
	-d  Debug logging
	-trace
	    Log every expanded word
	-c  Interactive mode
	-s  msgpack server mode
	-save-costs
	    Store the costs of the input file as the config defaults
*/
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/bastiangx/wordcost/internal/cli"
	"github.com/bastiangx/wordcost/internal/logger"
	"github.com/bastiangx/wordcost/internal/utils"
	"github.com/bastiangx/wordcost/pkg/cache"
	"github.com/bastiangx/wordcost/pkg/config"
	"github.com/bastiangx/wordcost/pkg/dictionary"
	"github.com/bastiangx/wordcost/pkg/morph"
	"github.com/bastiangx/wordcost/pkg/problem"
	"github.com/bastiangx/wordcost/pkg/server"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

const (
	Version = "0.3.0"
	AppName = "wordcost"
	gh      = "https://github.com/bastiangx/wordcost"
)

// sigHandler is a simple handler for OS signals to exit normally.
func sigHandler() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		os.Exit(0)
	}()
}

// main wires flags, config and the dictionary into one of the modes.
func main() {
	sigHandler()

	showVersion := flag.Bool("version", false, "Show current version")
	inputPath := flag.String("input", "input.txt", "Problem file: costs line, start word, end word")
	dictPath := flag.String("dict", "", "Dictionary file or chunk dir (default from config)")
	configPath := flag.String("config", "", "Config file (default in the user config dir)")
	envPath := flag.String("env", ".env", "File with WORDCOST_* overrides")
	heuristic := flag.String("heuristic", "", "Search heuristic: admissible or classic (default from config)")
	noEarlyBreak := flag.Bool("no-early-break", false, "Keep searching after the cheapest open word exceeds the best cost")
	cacheDir := flag.String("cache", "", "Result cache dir for server mode")
	exportPath := flag.String("export", "", "Write the loaded dictionary as a binary chunk file and exit")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	traceMode := flag.Bool("trace", false, "Log every expanded word")
	cliMode := flag.Bool("c", false, "Run CLI -- useful for testing and debugging")
	serverMode := flag.Bool("s", false, "Serve msgpack requests on stdin/stdout")
	saveCosts := flag.Bool("save-costs", false, "Store the costs of the input file as the config defaults")

	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	if *debugMode {
		logger.Setup("debug", true)
	} else {
		logger.Setup("warn", false)
	}

	pathResolver, err := utils.NewPathResolver()
	if err != nil {
		log.Fatalf("Failed to initialize path resolver: %v", err)
	}

	cfg, cfgPath, err := loadConfig(pathResolver, *configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.LoadEnv(*envPath, filepath.Join(pathResolver.GetConfigDir(), ".env")); err != nil {
		log.Fatalf("Invalid environment: %v", err)
	}

	if *dictPath != "" {
		cfg.Dict.Path = *dictPath
	}
	if *heuristic != "" {
		cfg.Search.Heuristic = *heuristic
	}
	if *noEarlyBreak {
		cfg.Search.EarlyBreak = false
	}
	if *cacheDir != "" {
		cfg.Cache.Enabled = true
		cfg.Cache.Dir = *cacheDir
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid settings: %v", err)
	}
	if !*debugMode {
		logger.Setup(cfg.Log.Level, cfg.Log.Timestamps)
	}

	dict := loadDictionary(pathResolver, cfg)

	if *exportPath != "" {
		if err := exportChunk(dict, *exportPath); err != nil {
			log.Fatalf("Export failed: %v", err)
		}
		log.Infof("Wrote %d words to %s", dict.Len(), *exportPath)
		return
	}

	options, err := cfg.SearchOptions()
	if err != nil {
		log.Fatalf("Invalid search settings: %v", err)
	}
	if *traceMode {
		trace := logger.NewWithConfig(os.Stderr, "search", log.DebugLevel, false, false, log.TextFormatter)
		options = append(options, morph.WithLogger(trace))
	}

	switch {
	case *cliMode:
		runCLI(dict, cfg, options)
	case *serverMode:
		if err := runServer(dict, cfg); err != nil {
			log.Fatal(err)
		}
	default:
		saveTo := ""
		if *saveCosts {
			saveTo = cfgPath
		}
		runProblem(dict, *inputPath, options, saveTo)
	}
}

// loadConfig reads the config named by the flag, or creates the default one.
func loadConfig(pr *utils.PathResolver, flagPath string) (*config.Config, string, error) {
	if flagPath != "" {
		log.Debugf("Using config file: (%s)", flagPath)
		cfg, err := config.LoadConfig(flagPath)
		return cfg, flagPath, err
	}
	path, err := pr.GetConfigPath("config.toml")
	if err != nil {
		return nil, "", err
	}
	log.Debugf("Using config file: (%s)", path)
	cfg, err := config.InitConfig(path)
	return cfg, path, err
}

func loadDictionary(pr *utils.PathResolver, cfg *config.Config) *dictionary.Dictionary {
	path, err := pr.ResolveDictPath(cfg.Dict.Path)
	if err != nil {
		log.Fatalf("Dictionary %q not found: %v", cfg.Dict.Path, err)
	}
	log.Debugf("Using dictionary at: %s", utils.GetAbsolutePath(path))

	start := time.Now()
	dict, err := dictionary.Load(path, dictionary.LoadOptions{
		MinLength:   cfg.Dict.MinLength,
		LettersOnly: cfg.Dict.LettersOnly,
	})
	if err != nil {
		log.Fatalf("Failed to load dictionary: %v", err)
	}
	log.Debug("Dictionary loaded", "words", dict.Len(), "classes", dict.Classes(), "took", time.Since(start))
	return dict
}

func exportChunk(dict *dictionary.Dictionary, path string) error {
	if err := utils.EnsureDir(filepath.Dir(path)); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(f)
	if err := dictionary.WriteChunk(w, dict.Words()); err != nil {
		f.Close()
		return err
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// runProblem solves the input file and prints the cost, or -1. A non-empty
// saveTo stores the file's costs as the new config defaults.
func runProblem(dict *dictionary.Dictionary, inputPath string, options []morph.Option, saveTo string) {
	p, err := problem.ParseFile(inputPath)
	if err != nil {
		log.Errorf("Invalid input: %v", err)
		os.Exit(1)
	}
	if err := p.Validate(dict); err != nil {
		log.Errorf("Invalid input: %v", err)
		os.Exit(1)
	}
	log.Debug("Problem", "start", p.Start, "end", p.End, "costs", p.Costs.String())

	if saveTo != "" {
		cfg, err := config.LoadConfig(saveTo)
		if err == nil {
			err = cfg.UpdateCosts(saveTo, p.Costs)
		}
		if err != nil {
			log.Warnf("Could not save costs to %s: %v", saveTo, err)
		} else {
			log.Infof("Saved costs to %s", saveTo)
		}
	}

	start := time.Now()
	res := p.Solve(dict, options...)
	log.Debug("Search done",
		"took", time.Since(start),
		"expanded", res.Stats.Expanded,
		"pushed", res.Stats.Pushed,
		"stale", res.Stats.Stale,
		"earlyBreak", res.Stats.EarlyBreak)

	fmt.Println(res.Value())
}

func runCLI(dict *dictionary.Dictionary, cfg *config.Config, options []morph.Option) {
	log.SetReportTimestamp(false)
	costs, err := cfg.Costs.CostModel()
	if err != nil {
		log.Fatalf("Invalid costs: %v", err)
	}
	handler := cli.NewInputHandler(dict, costs, cfg.CLI.ShowStats, options...)
	if err := handler.Start(); err != nil {
		log.Fatalf("CLI error: %v", err)
	}
}

// runServer serves until stdin closes. The cache is closed before it
// returns, so callers may exit on the error.
func runServer(dict *dictionary.Dictionary, cfg *config.Config) error {
	var c *cache.Cache
	if cfg.Cache.Enabled {
		c = openCache(cfg.Cache.Dir)
		defer func() {
			if err := c.Close(); err != nil {
				log.Warnf("Closing cache: %v", err)
			}
		}()
	}

	srv, err := server.New(dict, cfg, c)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}
	showStartupInfo(dict, cfg)
	if err := srv.Start(); err != nil {
		return fmt.Errorf("server stopped: %w", err)
	}
	return nil
}

func openCache(dir string) *cache.Cache {
	if dir != "" {
		status := utils.CheckDirStatus(dir)
		if !status.Writable {
			err := status.Error
			if err == nil {
				err = errors.New("not writable")
			}
			log.Fatalf("Cache dir %s unusable: %v", dir, err)
		}
	}
	c, err := cache.Open(dir)
	if err != nil {
		log.Fatalf("Failed to open cache: %v", err)
	}
	log.Debugf("Result cache at: ( %s )", cacheLabel(dir))
	return c
}

func cacheLabel(dir string) string {
	if dir == "" {
		return "memory"
	}
	return utils.GetAbsolutePath(dir)
}

// showStartupInfo displays some basic info about the init process.
func showStartupInfo(dict *dictionary.Dictionary, cfg *config.Config) {
	currentLevel := log.GetLevel()
	log.SetLevel(log.InfoLevel)

	log.Infof("%s %s", AppName, Version)
	log.Infof("Process ID: [ %d ]", os.Getpid())
	log.Infof("dictionary: %d words", dict.Len())
	log.Infof("heuristic: %s, early break: %t", cfg.Search.Heuristic, cfg.Search.EarlyBreak)
	log.Info("status: ready")

	log.SetLevel(currentLevel)
}

func printVersion() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    false,
		ReportTimestamp: false,
		Prefix:          "",
	})

	styles := log.DefaultStyles()
	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"}).
		Background(lipgloss.AdaptiveColor{Light: "#f2e9e1", Dark: "#26233a"})
	styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	logger.SetStyles(styles)

	logger.Print("")
	logger.Print("[ wordcost ] Cheapest word transformations")
	logger.Print("", "version", Version)
	logger.Print("")
	logger.Print("use -h or --help to see available options")
	logger.Print("Github Repo", "gh", gh)
}
