package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jerecoder/cave-snake/internal/core"
)

// KeyMap holds the in-game key bindings. It doubles as the help source for
// the status line.
type KeyMap struct {
	Up          key.Binding
	Down        key.Binding
	Left        key.Binding
	Right       key.Binding
	StrafeLeft  key.Binding
	StrafeRight key.Binding
	Fire        key.Binding
	Weapon1     key.Binding
	Weapon2     key.Binding
	Weapon3     key.Binding
	TogglePath  key.Binding
	NewMap      key.Binding
	Pause       key.Binding
	Restart     key.Binding
	Back        key.Binding
	Screenshot  key.Binding
	Quit        key.Binding
}

// DefaultKeyMap returns the default in-game bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:          key.NewBinding(key.WithKeys("w", "up"), key.WithHelp("↑/w", "up")),
		Down:        key.NewBinding(key.WithKeys("s", "down"), key.WithHelp("↓/s", "down")),
		Left:        key.NewBinding(key.WithKeys("a", "left"), key.WithHelp("←/a", "left")),
		Right:       key.NewBinding(key.WithKeys("d", "right"), key.WithHelp("→/d", "right")),
		StrafeLeft:  key.NewBinding(key.WithKeys("q", ","), key.WithHelp("q", "strafe left")),
		StrafeRight: key.NewBinding(key.WithKeys("e", "."), key.WithHelp("e", "strafe right")),
		Fire:        key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "fire")),
		Weapon1:     key.NewBinding(key.WithKeys("1"), key.WithHelp("1-3", "weapon")),
		Weapon2:     key.NewBinding(key.WithKeys("2")),
		Weapon3:     key.NewBinding(key.WithKeys("3")),
		TogglePath:  key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "path/map")),
		NewMap:      key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "new map")),
		Pause:       key.NewBinding(key.WithKeys("p", "esc"), key.WithHelp("p", "pause")),
		Restart:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "restart")),
		Back:        key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "menu")),
		Screenshot:  key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("^s", "screenshot")),
		Quit:        key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("^c", "quit")),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Pause, k.TogglePath, k.NewMap, k.Restart, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.StrafeLeft, k.StrafeRight, k.Fire, k.Weapon1},
		{k.TogglePath, k.NewMap, k.Pause, k.Restart},
		{k.Back, k.Screenshot, k.Quit},
	}
}

// KeyMapper translates Bubble Tea key messages to game actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct {
	keys     KeyMap
	bindings []actionBinding
}

type actionBinding struct {
	binding key.Binding
	action  core.Action
}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return NewKeyMapperWith(DefaultKeyMap())
}

// NewKeyMapperWith creates a key mapper for the given bindings.
func NewKeyMapperWith(k KeyMap) *KeyMapper {
	return &KeyMapper{
		keys: k,
		bindings: []actionBinding{
			{k.Quit, core.ActionQuit},
			{k.Up, core.ActionUp},
			{k.Down, core.ActionDown},
			{k.Left, core.ActionLeft},
			{k.Right, core.ActionRight},
			{k.StrafeLeft, core.ActionStrafeLeft},
			{k.StrafeRight, core.ActionStrafeRight},
			{k.Fire, core.ActionFire},
			{k.Weapon1, core.ActionWeapon1},
			{k.Weapon2, core.ActionWeapon2},
			{k.Weapon3, core.ActionWeapon3},
			{k.TogglePath, core.ActionTogglePath},
			{k.NewMap, core.ActionNewMap},
			{k.Pause, core.ActionPause},
			{k.Restart, core.ActionRestart},
			{k.Back, core.ActionBack},
		},
	}
}

// Keys returns the bindings in use.
func (km *KeyMapper) Keys() KeyMap {
	return km.keys
}

// MapKey translates a key message to a game action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	for _, b := range km.bindings {
		if key.Matches(msg, b.binding) {
			return b.action, b.action == core.ActionQuit
		}
	}
	return core.ActionNone, false
}

// MapKeyToFrame updates an input frame based on a key message.
// Returns true if the key was a quit request.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) bool {
	action, isQuit := km.MapKey(msg)
	if action != core.ActionNone {
		frame.Set(action)
	}
	return isQuit
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionQuit
	MenuActionScoreboard
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	key := msg.String()

	switch key {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionScoreboard
	}

	return MenuActionNone
}

// opposite returns the movement action that cancels a, if any.
func opposite(a core.Action) core.Action {
	switch a {
	case core.ActionUp:
		return core.ActionDown
	case core.ActionDown:
		return core.ActionUp
	case core.ActionLeft:
		return core.ActionRight
	case core.ActionRight:
		return core.ActionLeft
	case core.ActionStrafeLeft:
		return core.ActionStrafeRight
	case core.ActionStrafeRight:
		return core.ActionStrafeLeft
	}
	return core.ActionNone
}
