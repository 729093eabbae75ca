package core

// Action is a semantic control intent, abstracted from physical keys.
type Action int

const (
	ActionNone    Action = iota
	ActionLeft           // Left arrow
	ActionRight          // Right arrow
	ActionJump           // Up arrow, Space
	ActionUp             // Menu navigation
	ActionDown           // Menu navigation
	ActionConfirm        // Enter
	ActionBack           // Escape
	ActionRestart        // R or Enter after game over
	ActionQuit           // Ctrl+C
	ActionPause          // Tab
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionJump:
		return "Jump"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
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
	default:
		return "Unknown"
	}
}

// InputFrame is everything the player did during one simulation tick: the
// control actions that are held or triggered, plus any characters typed.
type InputFrame struct {
	Actions map[Action]bool
	Typed   []string
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

// Type records a typed key. Keys are kept in arrival order.
func (f *InputFrame) Type(key string) {
	f.Typed = append(f.Typed, key)
}

// Clear resets the frame for the next tick.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
	f.Typed = f.Typed[:0]
}

// Clone creates a deep copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	if len(f.Typed) > 0 {
		clone.Typed = append([]string(nil), f.Typed...)
	}
	return clone
}
