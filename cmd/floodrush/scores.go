package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/floodrush/internal/storage"
)

var (
	flagScoresLimit   int
	flagScoresHistory bool
	flagScoresRun     string
	flagScoresClear   bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [level]",
	Short: "Show high scores",
	Long: `Display the top scores for a level, or across all levels when no
level is given.

Examples:
  floodrush scores
  floodrush scores 3
  floodrush scores --history
  floodrush scores --run 5f0c...
  floodrush scores 3 --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVarP(&flagScoresLimit, "limit", "n", 10, "Number of entries to show")
	scoresCmd.Flags().BoolVar(&flagScoresHistory, "history", false, "Show recent attempts instead of top scores")
	scoresCmd.Flags().StringVar(&flagScoresRun, "run", "", "Show a single attempt by run ID")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete all scores for the level")
}

func runScores(_ *cobra.Command, args []string) {
	level := 0
	if len(args) == 1 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n <= 0 {
			fatal("invalid level %q", args[0])
		}
		level = n
	}

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fatal("opening scores database: %v", err)
	}
	defer store.Close()

	switch {
	case flagScoresRun != "":
		showRun(store, flagScoresRun)
	case flagScoresHistory:
		showHistory(store, level)
	case flagScoresClear:
		if level == 0 {
			fatal("--clear needs a level")
		}
		if err := store.ClearScores(level); err != nil {
			fatal("%v", err)
		}
		fmt.Printf("Cleared scores for level %d.\n", level)
	default:
		showTopScores(store, level)
	}
}

func showTopScores(store *storage.Store, level int) {
	scores, err := store.TopScores(level, flagScoresLimit)
	if err != nil {
		fatal("retrieving scores: %v", err)
	}

	if level == 0 {
		fmt.Println("High Scores - All levels")
	} else {
		fmt.Printf("High Scores - Level %d\n", level)
	}
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'floodrush play' to set the first high score!")
		return
	}

	// Print header
	fmt.Printf("  %-4s  %-24s  %-5s  %-8s  %s\n", "Rank", "Player", "Level", "Score", "Date")
	fmt.Printf("  %-4s  %-24s  %-5s  %-8s  %s\n", "----", "------", "-----", "-----", "----")

	for i, entry := range scores {
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-24s  %-5d  %-8d  %s\n", i+1, entry.Player, entry.Level, entry.Score, dateStr)
	}

	fmt.Println()
	if best, err := store.HighScore(level); err == nil {
		fmt.Printf("Best: %d\n", best)
	}
}

func showHistory(store *storage.Store, level int) {
	results, err := store.RecentResults("", flagScoresLimit*5)
	if err != nil {
		fatal("retrieving results: %v", err)
	}

	fmt.Println("Recent attempts")
	fmt.Println()

	shown := 0
	for _, r := range results {
		if level != 0 && r.Level != level {
			continue
		}
		if shown == 0 {
			fmt.Printf("  %-16s  %-24s  %-5s  %-9s  %-6s  %-6s  %s\n", "Date", "Player", "Level", "Outcome", "Points", "Time", "Run")
			fmt.Printf("  %-16s  %-24s  %-5s  %-9s  %-6s  %-6s  %s\n", "----", "------", "-----", "-------", "------", "----", "---")
		}
		fmt.Printf("  %-16s  %-24s  %-5d  %-9s  %-6d  %-6s  %s\n",
			r.CreatedAt.Format("2006-01-02 15:04"), r.Player, r.Level, r.Outcome,
			r.Points, formatDuration(r.Duration), r.RunID)
		shown++
		if shown == flagScoresLimit {
			break
		}
	}
	if shown == 0 {
		fmt.Println("No attempts recorded yet.")
	}
}

func showRun(store *storage.Store, runID string) {
	r, err := store.ResultByRunID(runID)
	if err != nil {
		fatal("%v", err)
	}
	if r == nil {
		fatal("no attempt with run ID %q", runID)
	}
	fmt.Printf("Run %s\n", r.RunID)
	fmt.Printf("  Player:  %s\n", r.Player)
	fmt.Printf("  Level:   %d\n", r.Level)
	fmt.Printf("  Outcome: %s\n", r.Outcome)
	fmt.Printf("  Points:  %d\n", r.Points)
	fmt.Printf("  Time:    %s\n", formatDuration(r.Duration))
	fmt.Printf("  Date:    %s\n", r.CreatedAt.Format("2006-01-02 15:04"))
}

// formatDuration renders a play time as m:ss.
func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	return fmt.Sprintf("%d:%02d", int(d.Minutes()), int(d.Seconds())%60)
}
