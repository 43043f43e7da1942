package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/floodrush/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Open the interactive menu",
	Long: `Open the FloodRush menu: continue the saved run, start a new game,
pick a level, browse high scores or change settings.

Examples:
  floodrush menu
  floodrush menu --levels ./my-levels`,
	Args: cobra.NoArgs,
	Run:  runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	env, err := buildEnv("floodrush")
	if err != nil {
		fatal("%v", err)
	}

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	runErr := tui.RunSession(env, runtimeConfig(width, height))
	closeStore(env.Store)
	if runErr != nil {
		fatal("running menu: %v", runErr)
	}
}
