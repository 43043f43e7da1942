package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/floodrush/internal/games/floodrush/levels"
	"github.com/vovakirdan/floodrush/internal/games/floodrush/levels/formats"
	"github.com/vovakirdan/floodrush/internal/storage"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List available levels",
	Long: `Shows every level in the built-in pack, or in the --levels directory,
with your attempts and best score when a database is available.

Examples:
  floodrush levels
  floodrush levels --levels ./my-levels
  floodrush levels show 3
  floodrush levels validate ./level-011.json`,
	Args: cobra.NoArgs,
	Run:  runLevels,
}

var levelsValidateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Check a level file",
	Long: `Decodes a level-NNN.json or level-NNN.yaml file and reports the
first problem found, or a summary when the level is valid.`,
	Args: cobra.ExactArgs(1),
	Run:  runLevelsValidate,
}

var levelsShowCmd = &cobra.Command{
	Use:   "show <level>",
	Short: "Print a level as YAML",
	Args:  cobra.ExactArgs(1),
	Run:   runLevelsShow,
}

func init() {
	levelsCmd.AddCommand(levelsValidateCmd)
	levelsCmd.AddCommand(levelsShowCmd)
}

func runLevels(_ *cobra.Command, _ []string) {
	logger := newLogger("floodrush")
	loader, err := newLoader(logger)
	if err != nil {
		fatal("%v", err)
	}
	lvls, err := loader.LoadAll()
	if err != nil {
		fatal("%v", err)
	}

	if len(lvls) == 0 {
		fmt.Println("No levels available.")
		return
	}

	// Stats are optional; a missing database just leaves the columns empty
	stats := map[int]*storage.LevelStats{}
	if store := openStore(logger); store != nil {
		if s, err := store.AllLevelStats(); err == nil {
			stats = s
		}
		store.Close()
	}

	fmt.Println("Available levels:")
	fmt.Println()

	maxNameLen := 4 // "Name" header
	for _, l := range lvls {
		if len(l.Name()) > maxNameLen {
			maxNameLen = len(l.Name())
		}
	}

	// Print header
	fmt.Printf("  %-3s  %-*s  %-5s  %-5s  %-7s  %-8s  %s\n", "#", maxNameLen, "Name", "Size", "Speed", "Timeout", "Attempts", "Best")
	fmt.Printf("  %-3s  %-*s  %-5s  %-5s  %-7s  %-8s  %s\n", "-", maxNameLen, "----", "----", "-----", "-------", "--------", "----")

	for _, l := range lvls {
		dims := l.Dimensions()
		timeout := "-"
		if l.FloodTimeout() > 0 {
			timeout = fmt.Sprintf("%ds", l.FloodTimeout())
		}
		attempts, best := "-", "-"
		if st, ok := stats[l.Number()]; ok {
			attempts = fmt.Sprintf("%d/%d", st.Wins, st.Attempts)
			best = strconv.Itoa(st.BestPoints)
		}
		fmt.Printf("  %-3d  %-*s  %-5s  %-5d  %-7s  %-8s  %s\n",
			l.Number(), maxNameLen, l.Name(),
			dims.String(),
			l.GameSpeed(), timeout, attempts, best)
	}

	fmt.Println()
	fmt.Println("Run 'floodrush play <#>' to play a level.")
}

func runLevelsValidate(_ *cobra.Command, args []string) {
	lvl, err := levels.LoadFile(args[0])
	if err != nil {
		fatal("%v", err)
	}
	fmt.Printf("%s: ok\n", args[0])
	fmt.Printf("  level %d %q, %v, start %v, end %v, speed %d\n",
		lvl.Number(), lvl.Name(), lvl.Dimensions(),
		lvl.Start(), lvl.End(), lvl.GameSpeed())
}

func runLevelsShow(_ *cobra.Command, args []string) {
	n, err := strconv.Atoi(args[0])
	if err != nil || n <= 0 {
		fatal("invalid level %q", args[0])
	}
	loader, err := newLoader(newLogger("floodrush"))
	if err != nil {
		fatal("%v", err)
	}
	lvl, err := loader.Load(n)
	if err != nil {
		fatal("%v", err)
	}
	data, err := formats.MarshalYAML(lvl)
	if err != nil {
		fatal("%v", err)
	}
	os.Stdout.Write(data)
}
