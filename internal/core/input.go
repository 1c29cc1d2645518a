package core

// Action represents a semantic game action, abstracted from physical key presses.
type Action int

const (
	ActionNone    Action = iota
	ActionUp             // W, Up arrow - move toward +y
	ActionDown           // S, Down arrow - move toward -y
	ActionLeft           // A, Left arrow - move toward -x
	ActionRight          // D, Right arrow - move toward +x
	ActionConfirm        // Enter - confirm selection in menu
	ActionBack           // B, Escape - go back to menu
	ActionRestart        // R - respawn the level
	ActionQuit           // Q, Ctrl+C - exit game/session
	ActionPause          // P - pause/unpause
	ActionDebug          // F3, ` - toggle the debug overlay
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	case ActionPause:
		return "Pause"
	case ActionDebug:
		return "Debug"
	default:
		return "Unknown"
	}
}

// IsMovement reports whether the action is one of the four directions.
// Movement actions are held; the others fire once per press.
func (a Action) IsMovement() bool {
	switch a {
	case ActionUp, ActionDown, ActionLeft, ActionRight:
		return true
	}
	return false
}

// Opposite returns the opposing direction, or ActionNone.
func (a Action) Opposite() Action {
	switch a {
	case ActionUp:
		return ActionDown
	case ActionDown:
		return ActionUp
	case ActionLeft:
		return ActionRight
	case ActionRight:
		return ActionLeft
	}
	return ActionNone
}

// InputFrame is the input state for one frame: every movement action held
// and every one-shot action pressed since the previous frame.
type InputFrame struct {
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as active for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action is active this frame.
func (f InputFrame) Has(a Action) bool {
	return f.Actions[a]
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	clear(f.Actions)
}

// Held returns the active movement actions in a fixed order.
func (f InputFrame) Held() []Action {
	var out []Action
	for _, a := range []Action{ActionUp, ActionLeft, ActionDown, ActionRight} {
		if f.Has(a) {
			out = append(out, a)
		}
	}
	return out
}
