package domain

import (
	"fmt"
	"strings"
)

// EventType names one kind of input event.
type EventType string

const (
	EventPlayerEnteredZone EventType = "PlayerEnteredZone"
	EventPlayerLeftZone    EventType = "PlayerLeftZone"
	EventButtonPressed     EventType = "ButtonPressed"
	EventTick              EventType = "Tick"
)

// EventTypes returns every event type, in declaration order.
func EventTypes() []EventType {
	return []EventType{
		EventPlayerEnteredZone,
		EventPlayerLeftZone,
		EventButtonPressed,
		EventTick,
	}
}

// Event is an input to Reduce. The set of implementations is closed:
// only this package can declare new events.
type Event interface {
	Type() EventType
	isEvent()
}

// PlayerEnteredZone is sent when the actor steps into the trigger zone.
type PlayerEnteredZone struct{}

// PlayerLeftZone is sent when the actor steps out of the trigger zone.
type PlayerLeftZone struct{}

// ButtonPressed is sent on every press of the score button.
type ButtonPressed struct{}

// Tick reports the milliseconds elapsed since the previous tick.
type Tick struct {
	DtMs int
}

func (PlayerEnteredZone) Type() EventType { return EventPlayerEnteredZone }
func (PlayerLeftZone) Type() EventType    { return EventPlayerLeftZone }
func (ButtonPressed) Type() EventType     { return EventButtonPressed }
func (Tick) Type() EventType              { return EventTick }

func (PlayerEnteredZone) isEvent() {}
func (PlayerLeftZone) isEvent()    {}
func (ButtonPressed) isEvent()     {}
func (Tick) isEvent()              {}

// NewEvent builds the event of the given type. dtMs is only used for Tick.
func NewEvent(t EventType, dtMs int) (Event, error) {
	switch t {
	case EventPlayerEnteredZone:
		return PlayerEnteredZone{}, nil
	case EventPlayerLeftZone:
		return PlayerLeftZone{}, nil
	case EventButtonPressed:
		return ButtonPressed{}, nil
	case EventTick:
		if dtMs < 0 {
			return nil, fmt.Errorf("%w (got %d)", ErrNegativeDelta, dtMs)
		}
		return Tick{DtMs: dtMs}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEvent, string(t))
	}
}

var eventAliases = map[string]EventType{
	"enter": EventPlayerEnteredZone,
	"leave": EventPlayerLeftZone,
	"press": EventButtonPressed,
	"tick":  EventTick,
}

// ParseEventType accepts an event type name (case-insensitive) or one of the
// short aliases enter, leave, press and tick.
func ParseEventType(s string) (EventType, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if t, ok := eventAliases[name]; ok {
		return t, nil
	}
	for _, t := range EventTypes() {
		if strings.ToLower(string(t)) == name {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownEvent, s)
}
