package main

import (
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/jerecoder/cave-snake/internal/platform/tui"
	"github.com/jerecoder/cave-snake/internal/registry"
	"github.com/jerecoder/cave-snake/internal/storage"
)

var (
	flagRecent bool
	flagLimit  int
	flagClear  bool
	flagTable  bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [game]",
	Short: "Show recorded runs",
	Long: `Display the best runs for the specified game, or a summary of every
game when no game is given.

Examples:
  cave scores
  cave scores snake
  cave scores shooter --recent --limit 20
  cave scores snake --clear
  cave scores --interactive`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagRecent, "recent", false, "Show the latest runs instead of the best")
	scoresCmd.Flags().IntVar(&flagLimit, "limit", storage.DefaultLeaderboardSize, "Number of runs to show")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete every recorded run for the game")
	scoresCmd.Flags().BoolVarP(&flagTable, "interactive", "i", false, "Browse runs in a full-screen table")
}

func runScores(cmd *cobra.Command, args []string) {
	// Open run storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening runs database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagTable {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		if err := tui.RunScoreboard(store, width, height); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if len(args) == 0 {
		printAllStats(store)
		return
	}

	gameID := args[0]
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'cave list' to see available games.")
		os.Exit(1)
	}

	if flagClear {
		if err := store.ClearRuns(gameID); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing runs: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Cleared all runs for %s.\n", gameID)
		return
	}

	// Get game title
	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	heading := "Best Runs"
	fetch := store.TopRuns
	if flagRecent {
		heading = "Recent Runs"
		fetch = store.RecentRuns
	}
	runs, err := fetch(gameID, flagLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("%s - %s\n", heading, game.Title())
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'cave play %s' to record the first run!\n", gameID)
		return
	}

	printRuns(runs)

	fmt.Println()
	if stats, err := store.GetGameStats(gameID); err == nil {
		fmt.Printf("Runs: %d  Best: %d  Avg: %.0f  Best height: %d  Time played: %s\n",
			stats.GamesCount, stats.HighScore, stats.AvgScore, stats.BestHeight, stats.TotalTime.Round(time.Second))
	}
}

func printRuns(runs []storage.RunEntry) {
	fmt.Printf("  %-4s  %-8s  %-3s  %-6s  %-4s  %-16s  %s\n", "Rank", "Score", "Lvl", "Height", "Fill", "Reason", "Date")
	fmt.Printf("  %-4s  %-8s  %-3s  %-6s  %-4s  %-16s  %s\n", "----", "-----", "---", "------", "----", "------", "----")
	for i, r := range runs {
		reason := r.Reason
		if len(reason) > 16 {
			reason = reason[:15] + "~"
		}
		fmt.Printf("  %-4d  %-8d  %-3d  %-6d  %3d%%  %-16s  %s\n",
			i+1, r.Score, r.Level, r.Height, r.FillPct, reason, r.CreatedAt.Format("2006-01-02 15:04"))
	}
}

func printAllStats(store *storage.Store) {
	all, err := store.GetAllGamesStats()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving stats: %v\n", err)
		os.Exit(1)
	}
	if len(all) == 0 {
		fmt.Println("No runs recorded yet.")
		return
	}

	ids := make([]string, 0, len(all))
	for id := range all {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	fmt.Printf("  %-8s  %-5s  %-8s  %-8s  %-6s  %s\n", "Game", "Runs", "Best", "Avg", "Height", "Last played")
	fmt.Printf("  %-8s  %-5s  %-8s  %-8s  %-6s  %s\n", "----", "----", "----", "---", "------", "-----------")
	for _, id := range ids {
		s := all[id]
		fmt.Printf("  %-8s  %-5d  %-8d  %-8.0f  %-6d  %s\n",
			id, s.GamesCount, s.HighScore, s.AvgScore, s.BestHeight, s.LastPlayed.Format("2006-01-02 15:04"))
	}
}
