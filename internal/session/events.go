package session

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/typejump/internal/field"
)

// EventKind classifies a gameplay notification.
type EventKind int

const (
	EventJump EventKind = iota
	EventLanding
	EventCorrectKey
	EventIncorrectKey
	EventActivation
	EventPassThrough
	EventPoolExpanded
	EventGameOver
)

func (k EventKind) String() string {
	switch k {
	case EventJump:
		return "jump"
	case EventLanding:
		return "land"
	case EventCorrectKey:
		return "type_correct"
	case EventIncorrectKey:
		return "type_wrong"
	case EventActivation:
		return "platform_activate"
	case EventPassThrough:
		return "pass_through"
	case EventPoolExpanded:
		return "pool_expanded"
	case EventGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Event is a fire-and-forget notification about something that happened
// during a tick. Only the fields relevant to Kind are set.
type Event struct {
	Kind      EventKind
	Letter    rune
	Platforms []field.Handle
	Pool      string
	Score     int
	Correct   int
	Incorrect int
	Accuracy  float64
}

// Sink receives gameplay events. Implementations must not block.
type Sink interface {
	Notify(e Event)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(Event)

// Notify calls f(e).
func (f SinkFunc) Notify(e Event) { f(e) }

// MultiSink fans events out to several sinks in order.
type MultiSink []Sink

// Notify forwards e to every non-nil sink.
func (m MultiSink) Notify(e Event) {
	for _, s := range m {
		if s != nil {
			s.Notify(e)
		}
	}
}

type nopSink struct{}

func (nopSink) Notify(Event) {}

// LogSink writes events to a structured logger. Routine events go out at
// debug level, the end of a run at info.
type LogSink struct {
	Logger *log.Logger
}

// Notify logs e.
func (s LogSink) Notify(e Event) {
	if s.Logger == nil {
		return
	}
	switch e.Kind {
	case EventGameOver:
		s.Logger.Info("game over", "score", e.Score, "correct", e.Correct, "incorrect", e.Incorrect, "accuracy", e.Accuracy)
	case EventCorrectKey, EventIncorrectKey:
		s.Logger.Debug(e.Kind.String(), "letter", string(e.Letter))
	case EventActivation:
		s.Logger.Debug(e.Kind.String(), "letter", string(e.Letter), "platforms", len(e.Platforms))
	case EventPoolExpanded:
		s.Logger.Debug(e.Kind.String(), "pool", e.Pool, "score", e.Score)
	case EventPassThrough, EventLanding:
		if len(e.Platforms) > 0 {
			s.Logger.Debug(e.Kind.String(), "platform", e.Platforms[0].String())
		}
	default:
		s.Logger.Debug(e.Kind.String())
	}
}
