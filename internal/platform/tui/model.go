package tui

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/jerecoder/cave-snake/internal/core"
	"github.com/jerecoder/cave-snake/internal/registry"
	"github.com/jerecoder/cave-snake/internal/storage"
)

// statusRows is the height of the platform status line under the game.
const statusRows = 1

// flashTicks is how long a status flash stays up.
const flashTicks = 60

// FXSink receives the simulation events drained each tick.
type FXSink interface {
	Play(events []core.Event)
}

// Services are the collaborators a game model talks to. Every field is
// optional.
type Services struct {
	Store  *storage.Store
	Logger *log.Logger
	Sound  FXSink
}

// framer is implemented by games that render through an RGBA framebuffer.
type framer interface {
	Frame() *image.RGBA
}

// counterPoller is implemented by games that expose per-tick growth and
// respawn counters.
type counterPoller interface {
	PollCounters() (expanded, respawned int)
}

var (
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	recordStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	flashStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
)

// Model is the Bubble Tea model for running one game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	svc        Services
	config     core.RuntimeConfig
	keys       *KeyMapper
	help       help.Model
	inputFrame core.InputFrame
	held       map[core.Action]int // ticks left for held-input games
	holds      bool
	gameState  core.GameState
	width      int
	height     int
	quitting   bool
	backToMenu bool
	inSession  bool // Back returns to the menu instead of quitting

	scoreSaved bool
	highScore  int
	bestHeight int
	newRecord  bool
	ranked     bool
	flash      string
	flashLeft  int
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, svc Services, cfg core.RuntimeConfig) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}

	holder, ok := game.(registry.InputHolder)
	keys := NewKeyMapper()
	h := help.New()
	h.Width = cfg.ScreenW

	m := Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, max(1, cfg.ScreenH-statusRows)),
		svc:        svc,
		config:     cfg,
		keys:       keys,
		help:       h,
		inputFrame: core.NewInputFrame(),
		held:       make(map[core.Action]int),
		holds:      ok && holder.HoldsInput(),
		width:      cfg.ScreenW,
		height:     cfg.ScreenH,
	}
	m.loadRecords()
	return m
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	if m.svc.Logger != nil {
		m.svc.Logger.Info("game started", "game", m.game.ID(), "seed", m.config.Seed)
	}
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Keys().Screenshot) {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keys.MapKey(msg)
	switch {
	case isQuit:
		m.quitting = true
		return m, tea.Quit
	case action == core.ActionBack:
		if m.gameState.GameOver || m.gameState.Paused {
			if m.inSession {
				m.backToMenu = true
				return m, nil
			}
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	case action == core.ActionNone:
		return m, nil
	}

	m.inputFrame.Set(action)
	if m.holds && action.IsMovement() {
		m.held[action] = holdTicks(m.config.TickRate)
		delete(m.held, opposite(action))
	}
	return m, nil
}

// handleResize resizes the screen buffer. The game keeps running and
// adapts its layout on the next render.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, max(1, msg.Height-statusRows))
	m.help.Width = msg.Width
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	// Events from the previous tick have been rendered by now.
	if src, ok := m.game.(registry.EventSource); ok {
		events := src.DrainEvents()
		if m.svc.Sound != nil {
			m.svc.Sound.Play(events)
		}
	}

	frame := m.inputFrame
	for a, left := range m.held {
		frame.Set(a)
		if left <= 1 {
			delete(m.held, a)
		} else {
			m.held[a] = left - 1
		}
	}

	result := m.game.Step(frame)
	m.gameState = result.State

	if cp, ok := m.game.(counterPoller); ok {
		switch expanded, respawned := cp.PollCounters(); {
		case respawned > 0:
			m.setFlash("RESPAWNED")
		case expanded > 0:
			m.setFlash(fmt.Sprintf("+%d CHUNK", expanded))
		}
	}
	if m.flashLeft > 0 {
		m.flashLeft--
	}

	if m.gameState.GameOver {
		if !m.scoreSaved {
			m.saveRun()
			m.scoreSaved = true
		}
	} else if m.scoreSaved {
		// restarted from inside the game
		m.scoreSaved = false
		m.newRecord = false
		m.ranked = false
		m.held = make(map[core.Action]int)
	}

	// Clear input for next frame
	m.inputFrame = core.NewInputFrame()

	return m, tickCmd(m.config.TickRate)
}

func (m *Model) setFlash(text string) {
	m.flash = text
	m.flashLeft = flashTicks
}

// summary returns the run summary at game over.
func (m *Model) summary() core.RunSummary {
	if s, ok := m.game.(registry.Summarizer); ok {
		return s.Summary()
	}
	return core.RunSummary{GameID: m.game.ID(), Score: m.gameState.Score}
}

// saveRun persists the finished run. Storage failures are logged and the
// game continues.
func (m *Model) saveRun() {
	sum := m.summary()
	m.newRecord = sum.Score > m.highScore && sum.Score > 0

	if m.svc.Logger != nil {
		m.svc.Logger.Info("game over",
			"game", sum.GameID, "score", sum.Score, "level", sum.Level, "reason", sum.Reason)
	}
	if m.svc.Store == nil {
		return
	}

	ranked, err := m.svc.Store.Qualifies(sum.GameID, sum.Score, storage.DefaultLeaderboardSize)
	if err != nil {
		m.warn("could not check leaderboard", err)
	}
	m.ranked = ranked

	if _, err := m.svc.Store.SaveRun(sum); err != nil {
		m.warn("could not save run", err)
		return
	}
	m.loadRecords()
}

// loadRecords refreshes the high score and best height shown in the
// status line.
func (m *Model) loadRecords() {
	if m.svc.Store == nil {
		return
	}
	id := m.game.ID()
	high, err := m.svc.Store.HighScore(id)
	if err != nil {
		m.warn("could not load high score", err)
		return
	}
	best, err := m.svc.Store.BestHeight(id)
	if err != nil {
		m.warn("could not load best height", err)
		return
	}
	m.highScore, m.bestHeight = high, best
}

func (m *Model) warn(msg string, err error) {
	if m.svc.Logger != nil {
		m.svc.Logger.Warn(msg, "game", m.game.ID(), "error", err)
	}
}

// saveScreenshot writes the current screen as text, plus the raw
// framebuffer as PNG for games that have one.
func (m *Model) saveScreenshot() {
	// Render current state
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.warn("could not save screenshot", err)
		return
	}
	dir := filepath.Join(home, ".cave", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.warn("could not save screenshot", err)
		return
	}

	// Generate filename with timestamp
	base := fmt.Sprintf("%s_%s", m.game.ID(), time.Now().Format("20060102_150405"))
	if err := os.WriteFile(filepath.Join(dir, base+".txt"), []byte(m.screen.String()), 0o600); err != nil {
		m.warn("could not save screenshot", err)
		return
	}

	f, ok := m.game.(framer)
	if !ok || f.Frame() == nil {
		m.setFlash("SCREENSHOT SAVED")
		return
	}
	out, err := os.Create(filepath.Join(dir, base+".png"))
	if err != nil {
		m.warn("could not save frame", err)
		return
	}
	defer out.Close()
	if err := png.Encode(out, f.Frame()); err != nil {
		m.warn("could not save frame", err)
		return
	}
	m.setFlash("SCREENSHOT SAVED")
}

// statusLine renders records, flashes and key help under the game.
func (m Model) statusLine() string {
	left := statusStyle.Render(fmt.Sprintf(" HIGH %d  BEST HEIGHT %d ", m.highScore, m.bestHeight))
	switch {
	case m.gameState.GameOver && m.newRecord:
		left += recordStyle.Render("NEW HIGH SCORE ")
	case m.gameState.GameOver && m.ranked:
		left += recordStyle.Render("TOP 10 ")
	case m.flashLeft > 0:
		left += flashStyle.Render(m.flash + " ")
	}

	h := m.help
	h.Width = max(0, m.width-lipgloss.Width(left))
	return left + h.View(m.keys.Keys())
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting || m.backToMenu {
		return ""
	}

	// Render game to screen buffer
	m.screen.Clear()
	m.game.Render(m.screen)

	return RenderScreen(m.screen) + "\n" + m.statusLine()
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run starts the Bubble Tea program with the given game.
func Run(game registry.Game, svc Services, cfg core.RuntimeConfig) error {
	model := NewModel(game, svc, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
