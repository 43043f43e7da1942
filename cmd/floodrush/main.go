// floodrush is a pipe-laying puzzle game for the terminal.
//
// Usage:
//
//	floodrush play [level]         - Play from a level (default: saved progress)
//	floodrush menu                 - Start the interactive menu
//	floodrush levels               - List available levels
//	floodrush levels validate <f>  - Check a level file
//	floodrush levels show <n>      - Print a level as YAML
//	floodrush scores [level]       - Show high scores
//	floodrush serve                - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 30)
//	--seed <value>        - Set RNG seed for reproducible piece queues
//	--db <path>           - Set database path (default: ~/.floodrush/floodrush.db)
//	--config <path>       - Use a custom floodrush.yaml
//	--levels <dir>        - Load levels from a directory instead of the built-in pack
//	--difficulty <preset> - easy, normal, hard or fixed
//	--log-level <level>   - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/floodrush/internal/config"
	"github.com/vovakirdan/floodrush/internal/core"
	"github.com/vovakirdan/floodrush/internal/games/floodrush/levels"
	"github.com/vovakirdan/floodrush/internal/platform/tui"
	"github.com/vovakirdan/floodrush/internal/storage"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagLevelsDir  string
	flagDifficulty string
	flagLogLevel   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "floodrush",
	Short: "FloodRush - lay pipes before the water arrives",
	Long: `FloodRush is a terminal pipe puzzle. Place pieces from the queue to
build a path from the start tile to the end tile before the water
starts flowing, and keep ahead of it once it does.

Available commands:
  play     - Play from a level
  menu     - Interactive menu
  levels   - List, show and validate levels
  scores   - View high scores
  serve    - Start SSH server for remote play

Examples:
  floodrush play
  floodrush play 3 --difficulty hard
  floodrush menu
  floodrush levels validate ./level-011.yaml
  floodrush serve --ssh :2222`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", core.DefaultConfig().TickRate, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.floodrush/floodrush.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom floodrush.yaml")
	rootCmd.PersistentFlags().StringVar(&flagLevelsDir, "levels", "", "Directory with level-NNN.json|yaml files")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "warn", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
}

// fatal prints an error the way every command reports failures and exits.
func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

// newLogger builds the root logger from --log-level.
func newLogger(prefix string) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		logger.Warn("unknown log level, using warn", "level", flagLogLevel)
		level = log.WarnLevel
	}
	logger.SetLevel(level)
	return logger
}

// newLoader returns a level loader over --levels or the built-in pack.
func newLoader(logger *log.Logger) (*levels.Loader, error) {
	if flagLevelsDir == "" {
		return levels.NewLoader(levels.Default(), logger), nil
	}
	src, err := levels.Dir(flagLevelsDir)
	if err != nil {
		return nil, err
	}
	return levels.NewLoader(src, logger), nil
}

// loadConfig loads floodrush.yaml and applies --difficulty.
func loadConfig() (config.Config, error) {
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return config.Config{}, err
	}
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return config.Config{}, err
	}
	if flagDifficulty != "" {
		config.ApplyPreset(&cfg, preset)
	}
	return cfg, nil
}

// openStore opens the database. Interactive commands keep going without
// one, so failures are only logged.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open database, scores will not be saved", "path", flagDBPath, "err", err)
		return nil
	}
	return store
}

// buildEnv assembles everything a TUI session needs. The returned store
// may be nil and must be closed by the caller otherwise.
func buildEnv(prefix string) (tui.Env, error) {
	logger := newLogger(prefix)

	cfg, err := loadConfig()
	if err != nil {
		return tui.Env{}, err
	}
	loader, err := newLoader(logger)
	if err != nil {
		return tui.Env{}, err
	}

	return tui.Env{
		Store:      openStore(logger),
		Loader:     loader,
		Config:     cfg,
		Difficulty: config.NewDifficultyManager(cfg.Difficulty),
		Profile:    storage.LocalProfile,
		Logger:     logger,
	}, nil
}

// runtimeConfig builds the runtime config for the given screen size.
func runtimeConfig(width, height int) core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}
