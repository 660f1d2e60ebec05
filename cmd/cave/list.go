package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jerecoder/cave-snake/internal/registry"
	"github.com/jerecoder/cave-snake/internal/storage"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the playable games",
	Long:  `Prints every registered game with its best score from the runs database.`,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	// A missing or unreadable database only hides the best column.
	var stats map[string]*storage.GameStats
	if store, err := storage.Open(flagDBPath); err == nil {
		stats, _ = store.GetAllGamesStats()
		store.Close()
	}
	writeGameList(os.Stdout, registry.List(), stats)
}

// writeGameList prints one row per game. Games with no stored runs show a
// dash for best score and height.
func writeGameList(w io.Writer, games []registry.GameInfo, stats map[string]*storage.GameStats) {
	if len(games) == 0 {
		fmt.Fprintln(w, "No games registered.")
		return
	}

	idw := len("ID")
	titlew := len("Title")
	for _, g := range games {
		idw = max(idw, len(g.ID))
		titlew = max(titlew, len(g.Title))
	}

	fmt.Fprintf(w, "%-*s  %-*s  %6s  %6s\n", idw, "ID", titlew, "Title", "Best", "Height")
	for _, g := range games {
		best, height := "-", "-"
		if st, ok := stats[g.ID]; ok && st.GamesCount > 0 {
			best, height = strconv.Itoa(st.HighScore), strconv.Itoa(st.BestHeight)
		}
		fmt.Fprintf(w, "%-*s  %-*s  %6s  %6s\n", idw, g.ID, titlew, g.Title, best, height)
	}
	fmt.Fprintf(w, "\ncave play <id> starts a game, cave menu opens the picker.\n")
}
