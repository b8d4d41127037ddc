package core

// Action represents a semantic game command, abstracted from physical key presses.
// Hosts translate keys into actions; games decide what each action means.
type Action int

const (
	ActionNone    Action = iota
	ActionUp             // W, Up arrow - steer up (snake)
	ActionDown           // S, Down arrow - steer down (snake)
	ActionLeft           // A, Left arrow - steer left (snake)
	ActionRight          // D, Right arrow - steer right (snake)
	ActionJump           // Space - jump (runner); also starts a session when idle
	ActionConfirm        // Enter - starts a session when idle or after game over
	ActionPause          // P - pause/unpause
	ActionRestart        // R - start a fresh session at any time
	ActionBack           // B, Escape - leave the game view
	ActionQuit           // Q, Ctrl+C - exit
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
	case ActionJump:
		return "Jump"
	case ActionConfirm:
		return "Confirm"
	case ActionPause:
		return "Pause"
	case ActionRestart:
		return "Restart"
	case ActionBack:
		return "Back"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}
