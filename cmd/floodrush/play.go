package main

import (
	"os"
	"slices"
	"strconv"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/floodrush/internal/platform/tui"
	"github.com/vovakirdan/floodrush/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play [level]",
	Short: "Play FloodRush",
	Long: `Start playing from the given level, or from the saved progress
when no level is given.

Controls:
  Arrows/WASD/HJKL - Move cursor
  Space            - Place next piece
  X/Delete         - Discard next piece
  F                - Fast-forward the water
  P/Esc            - Pause
  R                - Restart level
  Enter            - Continue after a level ends
  Q/Ctrl+C         - Quit

Difficulty options:
  easy   - Longer start delay, slower water
  normal - Default settings
  hard   - Shorter start delay, faster water
  fixed  - No progression across levels

Examples:
  floodrush play
  floodrush play 4
  floodrush play --difficulty hard
  floodrush play 2 --seed 42`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func runPlay(_ *cobra.Command, args []string) {
	requested := 0
	if len(args) == 1 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n <= 0 {
			fatal("invalid level %q", args[0])
		}
		requested = n
	}

	env, err := buildEnv("floodrush")
	if err != nil {
		fatal("%v", err)
	}

	nums, err := env.Loader.Numbers()
	if err != nil {
		closeStore(env.Store)
		fatal("%v", err)
	}
	if len(nums) == 0 {
		closeStore(env.Store)
		fatal("no levels available")
	}

	start := requested
	if start == 0 {
		start = savedLevel(env.Store)
	}
	if !slices.Contains(nums, start) {
		if requested != 0 {
			closeStore(env.Store)
			fatal("level %d not found. Run 'floodrush levels' to see available levels.", requested)
		}
		// Saved progress may point past a custom level directory.
		start = nums[0]
	}

	// Get terminal size for the first frame
	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	runErr := tui.Run(env, runtimeConfig(width, height), start)
	closeStore(env.Store)
	if runErr != nil {
		fatal("running game: %v", runErr)
	}
}

// savedLevel returns the local profile's current level, or 0.
func savedLevel(store *storage.Store) int {
	if store == nil {
		return 0
	}
	st, err := store.LoadSettings(storage.LocalProfile)
	if err != nil {
		return 0
	}
	return st.CurrentLevel
}

func closeStore(store *storage.Store) {
	if store != nil {
		store.Close()
	}
}
