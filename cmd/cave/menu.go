package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jerecoder/cave-snake/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start interactive game picker menu",
	Long: `Opens an interactive menu where you can browse and select games.

Controls:
  Up/Down/W/S   - Navigate
  Enter/Space   - Select game
  Tab           - Recorded runs
  Esc/B         - Back
  Q/Ctrl+C      - Quit

Pause a game or let it end, then press B to return to the menu.`,
	Run: runMenu,
}

func init() {
	addGameFlags(menuCmd)
}

func runMenu(cmd *cobra.Command, args []string) {
	ls := newLocalSession()
	err := tui.RunSession(ls.svc, ls.cfg)
	ls.close()

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
