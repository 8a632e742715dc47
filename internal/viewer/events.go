package viewer

import (
	"errors"
	"fmt"
	"strings"
)

// Event is a navigation command.
type Event int

const (
	EventNone Event = iota
	EventAdvance
	EventRetreat
	EventFirst
	EventLast
	EventQuit
)

// ErrUnknownEvent is returned by ParseEvent for unrecognised input.
var ErrUnknownEvent = errors.New("viewer: unknown event")

var eventNames = map[string]Event{
	"advance": EventAdvance,
	"right":   EventAdvance,
	"n":       EventAdvance,
	"retreat": EventRetreat,
	"left":    EventRetreat,
	"p":       EventRetreat,
	"home":    EventFirst,
	"end":     EventLast,
	"quit":    EventQuit,
	"q":       EventQuit,
}

func (e Event) String() string {
	switch e {
	case EventNone:
		return "none"
	case EventAdvance:
		return "advance"
	case EventRetreat:
		return "retreat"
	case EventFirst:
		return "home"
	case EventLast:
		return "end"
	case EventQuit:
		return "quit"
	default:
		return fmt.Sprintf("Event(%d)", int(e))
	}
}

// ParseEvent maps one input line to an Event. Blank lines are EventNone.
func ParseEvent(line string) (Event, error) {
	word := strings.ToLower(strings.TrimSpace(line))
	if word == "" {
		return EventNone, nil
	}
	if ev, ok := eventNames[word]; ok {
		return ev, nil
	}
	return EventNone, fmt.Errorf("%w: %q", ErrUnknownEvent, line)
}
