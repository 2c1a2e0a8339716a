package domain

type PlaybackState string

const (
	StateIdle               PlaybackState = "idle"
	StateRevealingUser      PlaybackState = "revealing_user"
	StateSweepingContext    PlaybackState = "sweeping_context"
	StateStreamingAssistant PlaybackState = "streaming_assistant"
	StateFinished           PlaybackState = "finished"
	StateCancelled          PlaybackState = "cancelled"
)

// Running reports whether the state holds a pending resumption.
func (s PlaybackState) Running() bool {
	switch s {
	case StateRevealingUser, StateSweepingContext, StateStreamingAssistant:
		return true
	default:
		return false
	}
}

func (s PlaybackState) Label() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRevealingUser:
		return "reading message"
	case StateSweepingContext:
		return "processing context"
	case StateStreamingAssistant:
		return "generating"
	case StateFinished:
		return "finished"
	case StateCancelled:
		return "cancelled"
	default:
		return string(s)
	}
}
