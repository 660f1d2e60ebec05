package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jerecoder/cave-snake/internal/registry"
	"github.com/jerecoder/cave-snake/internal/storage"
)

// boardRows is how many runs the scoreboard loads per game.
const boardRows = 100

// reasonCol is the index of the flexible-width column.
const reasonCol = 5

var (
	boardTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	boardDimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	boardTabStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Padding(0, 1)
	boardActiveTab  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57")).Padding(0, 1)
	boardFrameStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).Padding(0, 1)
)

// boardKeys are the scoreboard bindings. They implement help.KeyMap.
type boardKeys struct {
	Scroll key.Binding
	Game   key.Binding
	Order  key.Binding
	Back   key.Binding
	Quit   key.Binding

	up, down, next, prev key.Binding
}

func newBoardKeys() boardKeys {
	return boardKeys{
		Scroll: key.NewBinding(key.WithKeys("up", "down", "k", "j"), key.WithHelp("j/k", "scroll")),
		Game:   key.NewBinding(key.WithKeys("tab", "shift+tab", "left", "right", "h", "l"), key.WithHelp("tab", "game")),
		Order:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "best/recent")),
		Back:   key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc", "back")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),

		up:   key.NewBinding(key.WithKeys("up", "k")),
		down: key.NewBinding(key.WithKeys("down", "j")),
		next: key.NewBinding(key.WithKeys("tab", "right", "l")),
		prev: key.NewBinding(key.WithKeys("shift+tab", "left", "h")),
	}
}

func (k boardKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Scroll, k.Game, k.Order, k.Back, k.Quit}
}

func (k boardKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// ScoreboardModel browses the stored runs of every registered game, best
// first or most recent first.
type ScoreboardModel struct {
	games  []registry.GameInfo
	game   int
	recent bool
	store  *storage.Store
	runs   []storage.RunEntry
	stats  *storage.GameStats
	table  table.Model
	help   help.Model
	keys   boardKeys
	width  int
	height int

	quitting bool
	back     bool
}

// NewScoreboardModel creates a scoreboard showing the first game's best
// runs. A nil store shows empty boards.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		games:  registry.List(),
		store:  store,
		help:   help.New(),
		keys:   newBoardKeys(),
		width:  width,
		height: height,
	}
	m.help.Width = width
	m.table = m.newTable()
	m.reload()
	return m
}

// newTable sizes the columns to the window. Reason takes what is left.
func (m ScoreboardModel) newTable() table.Model {
	cols := []table.Column{
		{Title: "#", Width: 4},
		{Title: "Score", Width: 8},
		{Title: "Lvl", Width: 4},
		{Title: "Height", Width: 7},
		{Title: "Fill", Width: 5},
		{Title: "Reason", Width: 0},
		{Title: "Date", Width: 12},
	}
	used := 0
	for _, c := range cols {
		used += c.Width + 2
	}
	cols[reasonCol].Width = max(8, min(32, m.width-used-8))

	t := table.New(
		table.WithColumns(cols),
		table.WithFocused(true),
		table.WithHeight(max(3, m.height-10)),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.Bold(true).BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).BorderBottom(true)
	s.Selected = s.Selected.Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	t.SetStyles(s)
	return t
}

// reload fetches runs and totals for the selected game. Storage errors
// leave the board empty.
func (m *ScoreboardModel) reload() {
	m.runs, m.stats = nil, nil
	if m.store != nil && len(m.games) > 0 {
		id := m.games[m.game].ID
		fetch := m.store.TopRuns
		if m.recent {
			fetch = m.store.RecentRuns
		}
		if runs, err := fetch(id, boardRows); err == nil {
			m.runs = runs
		}
		if st, err := m.store.GetGameStats(id); err == nil {
			m.stats = st
		}
	}

	rows := make([]table.Row, len(m.runs))
	for i, r := range m.runs {
		rows[i] = table.Row{
			strconv.Itoa(i + 1),
			strconv.Itoa(r.Score),
			strconv.Itoa(r.Level),
			strconv.Itoa(r.Height),
			fmt.Sprintf("%d%%", r.FillPct),
			r.Reason,
			r.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

func (m *ScoreboardModel) cycleGame(step int) {
	if n := len(m.games); n > 0 {
		m.game = (m.game + step + n) % n
		m.reload()
	}
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.back = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.next):
			m.cycleGame(1)
			return m, nil
		case key.Matches(msg, m.keys.prev):
			m.cycleGame(-1)
			return m, nil
		case key.Matches(msg, m.keys.Order):
			m.recent = !m.recent
			m.reload()
			return m, nil
		case key.Matches(msg, m.keys.up), key.Matches(msg, m.keys.down):
			var cmd tea.Cmd
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.table = m.newTable()
		m.reload()
	}
	return m, nil
}

// View renders the tab strip, the run table and the selected run.
func (m ScoreboardModel) View() string {
	if m.quitting || m.back {
		return ""
	}

	heading := "BEST RUNS"
	if m.recent {
		heading = "RECENT RUNS"
	}
	if len(m.games) > 0 {
		heading += " - " + m.games[m.game].Title
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(boardTitleStyle.Render(heading), m.width))
	b.WriteString("\n")
	b.WriteString(centerText(m.tabs(), m.width))
	b.WriteString("\n")
	b.WriteString(centerText(m.statsLine(), m.width))
	b.WriteString("\n")

	body := boardDimStyle.Italic(true).Padding(1, 4).Render("No runs recorded yet.")
	if len(m.runs) > 0 {
		body = m.table.View()
	}
	b.WriteString(centerBlock(boardFrameStyle.Render(body), m.width))
	b.WriteString("\n")
	b.WriteString(centerText(m.detailLine(), m.width))
	b.WriteString("\n")
	b.WriteString(boardDimStyle.Render(m.help.View(m.keys)))
	return b.String()
}

func (m ScoreboardModel) tabs() string {
	parts := make([]string, len(m.games))
	for i, g := range m.games {
		if i == m.game {
			parts[i] = boardActiveTab.Render(g.Title)
		} else {
			parts[i] = boardTabStyle.Render(g.Title)
		}
	}
	return strings.Join(parts, " ")
}

// statsLine summarizes every stored run of the current game.
func (m ScoreboardModel) statsLine() string {
	if m.stats == nil || m.stats.GamesCount == 0 {
		return ""
	}
	st := m.stats
	return boardDimStyle.Render(fmt.Sprintf(
		"%d runs  |  avg %.0f  |  best height %d  |  played %s",
		st.GamesCount, st.AvgScore, st.BestHeight, st.TotalTime.Round(time.Second)))
}

// detailLine shows the fields of the highlighted run that have no column.
func (m ScoreboardModel) detailLine() string {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.runs) {
		return ""
	}
	r := m.runs[i]
	return boardDimStyle.Render(fmt.Sprintf(
		"seed %d  |  best level %d  |  lives left %d  |  %s",
		r.Seed, r.BestLevel, r.Lives, r.Duration.Round(time.Second)))
}

// centerBlock centers every line of a multi-line block by the block width.
func centerBlock(block string, width int) string {
	pad := (width - lipgloss.Width(block)) / 2
	if pad <= 0 {
		return block
	}
	return lipgloss.NewStyle().MarginLeft(pad).Render(block)
}

// WantsBack returns true if user pressed back.
func (m ScoreboardModel) WantsBack() bool {
	return m.back
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard as its own program until the user
// leaves it.
func RunScoreboard(store *storage.Store, width, height int) error {
	p := tea.NewProgram(NewScoreboardModel(store, width, height), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
