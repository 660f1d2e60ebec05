package core

// Action represents a semantic game action, abstracted from physical key presses.
type Action int

const (
	ActionNone        Action = iota
	ActionUp                 // W, Up arrow - snake up / shooter forward
	ActionDown               // S, Down arrow - snake down / shooter back
	ActionLeft               // A, Left arrow - snake left / shooter turn left
	ActionRight              // D, Right arrow - snake right / shooter turn right
	ActionStrafeLeft         // Q, comma
	ActionStrafeRight        // E, period
	ActionFire               // Space
	ActionWeapon1            // 1
	ActionWeapon2            // 2
	ActionWeapon3            // 3
	ActionTogglePath         // O - show the generator's path overlay
	ActionNewMap             // I - discard the board and roll a new seed
	ActionConfirm            // Enter
	ActionBack               // B, Escape
	ActionRestart            // R
	ActionQuit               // Ctrl+C
	ActionPause              // P
)

var actionNames = map[Action]string{
	ActionNone:        "None",
	ActionUp:          "Up",
	ActionDown:        "Down",
	ActionLeft:        "Left",
	ActionRight:       "Right",
	ActionStrafeLeft:  "StrafeLeft",
	ActionStrafeRight: "StrafeRight",
	ActionFire:        "Fire",
	ActionWeapon1:     "Weapon1",
	ActionWeapon2:     "Weapon2",
	ActionWeapon3:     "Weapon3",
	ActionTogglePath:  "TogglePath",
	ActionNewMap:      "NewMap",
	ActionConfirm:     "Confirm",
	ActionBack:        "Back",
	ActionRestart:     "Restart",
	ActionQuit:        "Quit",
	ActionPause:       "Pause",
}

// String returns a human-readable name for the action.
func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "Unknown"
}

// IsMovement reports whether the action is a continuous movement action that
// the platform keeps alive while a key is held.
func (a Action) IsMovement() bool {
	switch a {
	case ActionUp, ActionDown, ActionLeft, ActionRight, ActionStrafeLeft, ActionStrafeRight, ActionFire:
		return true
	}
	return false
}

// InputFrame holds the actions triggered during one simulation tick.
type InputFrame struct {
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{Actions: make(map[Action]bool)}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	return f.Actions[a]
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	clear(f.Actions)
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	c := NewInputFrame()
	for k, v := range f.Actions {
		c.Actions[k] = v
	}
	return c
}

// Direction returns the grid direction requested this frame, with +Y pointing
// up the board. When several directions are pressed, Up wins over Down over
// Left over Right.
func (f InputFrame) Direction() (dx, dy int, ok bool) {
	switch {
	case f.Has(ActionUp):
		return 0, 1, true
	case f.Has(ActionDown):
		return 0, -1, true
	case f.Has(ActionLeft):
		return -1, 0, true
	case f.Has(ActionRight):
		return 1, 0, true
	}
	return 0, 0, false
}

// Intent is the continuous movement request of a first-person agent.
type Intent struct {
	Forward float64 // -1 back, +1 forward
	Strafe  float64 // -1 left, +1 right
	Turn    float64 // -1 left, +1 right
	Fire    bool
	Weapon  int // 0 keeps the current weapon, 1..3 selects one
}

// IntentFromFrame derives a shooter intent from the frame's actions.
func IntentFromFrame(f InputFrame) Intent {
	var in Intent
	if f.Has(ActionUp) {
		in.Forward++
	}
	if f.Has(ActionDown) {
		in.Forward--
	}
	if f.Has(ActionStrafeRight) {
		in.Strafe++
	}
	if f.Has(ActionStrafeLeft) {
		in.Strafe--
	}
	if f.Has(ActionRight) {
		in.Turn++
	}
	if f.Has(ActionLeft) {
		in.Turn--
	}
	in.Fire = f.Has(ActionFire)
	switch {
	case f.Has(ActionWeapon1):
		in.Weapon = 1
	case f.Has(ActionWeapon2):
		in.Weapon = 2
	case f.Has(ActionWeapon3):
		in.Weapon = 3
	}
	return in
}
