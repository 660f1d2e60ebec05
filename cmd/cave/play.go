package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/jerecoder/cave-snake/internal/core"
	"github.com/jerecoder/cave-snake/internal/games/shooter"
	"github.com/jerecoder/cave-snake/internal/games/snake"
	"github.com/jerecoder/cave-snake/internal/platform/audio"
	"github.com/jerecoder/cave-snake/internal/platform/tui"
	"github.com/jerecoder/cave-snake/internal/registry"
	"github.com/jerecoder/cave-snake/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
	flagSound      bool
	flagVolume     float64
)

var playCmd = &cobra.Command{
	Use:   "play <game>",
	Short: "Play a game",
	Long: `Start playing the specified game.

Cave Snake plays itself. Watch it climb, toggle the path overlay, pause
or restart:
  O          - Show/hide the planned path
  P/Esc      - Pause
  R          - Restart
  Ctrl+C     - Quit

Maze Raider:
  W/S        - Move forward/back
  A/D        - Turn
  Q/E        - Strafe
  Space      - Fire
  1/2/3      - Pistol, shotgun, railgun
  O          - Show/hide the path to the portal
  I          - New map
  P/Esc      - Pause
  R          - Restart after death
  Ctrl+C     - Quit

Difficulty options:
  easy   - Start at lowest difficulty, progresses to max
  normal - Start at 30% difficulty, progresses to max
  hard   - Start at 70% difficulty, progresses to max
  fixed  - No progression, stays at config's initial level

Without --difficulty a picker is shown before the game starts.

Examples:
  cave play snake
  cave play shooter --difficulty hard
  cave play shooter --sound --volume 0.5
  cave play snake --config ./my-snake.yaml`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func init() {
	addGameFlags(playCmd)
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}

// addGameFlags registers the flags shared by the commands that run games
// locally.
func addGameFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	cmd.Flags().BoolVar(&flagSound, "sound", false, "Play sound effects")
	cmd.Flags().Float64Var(&flagVolume, "volume", 0.7, "Sound effect volume, 0 to 1")
}

// localSession holds what a local game run needs. close releases the
// store, audio device and log file.
type localSession struct {
	cfg   core.RuntimeConfig
	svc   tui.Services
	close func()
}

func newLocalSession() localSession {
	// Get terminal size early for the pickers
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	logger, closeLog := openLogFile()
	snake.SetConfigPath(flagConfig)
	shooter.SetConfigPath(flagConfig)

	// Open run storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open runs database: %v\n", err)
		logger.Warn("could not open runs database", "error", err)
		// Continue without storage - game still works
		store = nil
	}

	svc := tui.Services{Store: store, Logger: logger}
	var sound *audio.SoundManager
	if flagSound {
		sound = openSound(logger)
		if sound != nil {
			svc.Sound = sound
		}
	}

	return localSession{
		cfg: core.RuntimeConfig{
			ScreenW:  width,
			ScreenH:  height,
			TickRate: flagFPS,
			Seed:     flagSeed,
		},
		svc: svc,
		close: func() {
			if sound != nil {
				sound.Cleanup()
			}
			if store != nil {
				store.Close()
			}
			closeLog()
		},
	}
}

// openSound starts the audio device. Failure leaves the game silent.
func openSound(logger *log.Logger) *audio.SoundManager {
	sm := audio.NewSoundManager(flagVolume)
	if err := sm.Initialize(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: sound disabled: %v\n", err)
		logger.Warn("sound disabled", "error", err)
		return nil
	}
	return sm
}

func runPlay(cmd *cobra.Command, args []string) {
	gameID := args[0]

	// Check if game exists
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'cave list' to see available games.")
		os.Exit(1)
	}

	// Create game instance
	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	ls := newLocalSession()

	preset := flagDifficulty
	if preset == "" {
		picked, pickErr := tui.RunDifficultySelector(game.Title(), ls.cfg)
		if pickErr != nil {
			ls.close()
			fmt.Fprintf(os.Stderr, "Error: %v\n", pickErr)
			os.Exit(1)
		}
		// User pressed back or quit
		if picked == "" {
			ls.close()
			return
		}
		preset = string(picked)
	}
	if t, ok := game.(registry.Tunable); ok {
		t.SetPreset(preset)
	}

	// Run the game
	runErr := tui.Run(game, ls.svc, ls.cfg)

	// Release resources before potential exit
	ls.close()

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
