package wire

import (
	"errors"
	"fmt"

	"triggerzone/internal/domain"
)

// ErrMissingDelta indicates a Tick without a dtMs field.
var ErrMissingDelta = errors.New("tick requires dtMs")

// Event is the JSON form of a domain.Event, shared by script files and the HTTP API.
type Event struct {
	Type string `json:"type"`
	DtMs *int   `json:"dtMs,omitempty"`
}

// Effect is the JSON form of a domain.Effect.
type Effect struct {
	Type string `json:"type"`
	Name string `json:"name,omitempty"`
	Text string `json:"text,omitempty"`
}

// State is the JSON form of a domain.GameState.
type State struct {
	InZone     bool `json:"inZone"`
	Score      int  `json:"score"`
	CooldownMs int  `json:"cooldownMs"`
}

// Step is the outcome of one reduce call.
type Step struct {
	Event   *Event   `json:"event,omitempty"`
	State   State    `json:"state"`
	Effects []Effect `json:"effects"`
	Error   string   `json:"error,omitempty"`
}

// FromEvent converts a domain event to its JSON form.
func FromEvent(ev domain.Event) Event {
	out := Event{Type: string(ev.Type())}
	if tick, ok := ev.(domain.Tick); ok {
		dt := tick.DtMs
		out.DtMs = &dt
	}
	return out
}

// ToDomain validates e and converts it to a domain event.
func (e Event) ToDomain() (domain.Event, error) {
	t, err := domain.ParseEventType(e.Type)
	if err != nil {
		return nil, err
	}
	dt := 0
	if t == domain.EventTick {
		if e.DtMs == nil {
			return nil, ErrMissingDelta
		}
		dt = *e.DtMs
	}
	return domain.NewEvent(t, dt)
}

// FromEvents converts a whole script.
func FromEvents(events []domain.Event) []Event {
	out := make([]Event, 0, len(events))
	for _, ev := range events {
		out = append(out, FromEvent(ev))
	}
	return out
}

// ToDomainEvents converts a whole script, reporting the index of the first bad entry.
func ToDomainEvents(events []Event) ([]domain.Event, error) {
	out := make([]domain.Event, 0, len(events))
	for i, e := range events {
		ev, err := e.ToDomain()
		if err != nil {
			return nil, fmt.Errorf("event %d: %w", i, err)
		}
		out = append(out, ev)
	}
	return out, nil
}

// FromEffects converts effects, always returning a non-nil slice so JSON shows [].
func FromEffects(effects []domain.Effect) []Effect {
	out := make([]Effect, 0, len(effects))
	for _, e := range effects {
		switch eff := e.(type) {
		case domain.PlaySound:
			out = append(out, Effect{Type: string(eff.Type()), Name: string(eff.Name)})
		case domain.ShowMessage:
			out = append(out, Effect{Type: string(eff.Type()), Text: eff.Text})
		default:
			panic(fmt.Sprintf("wire: unhandled effect %T", e))
		}
	}
	return out
}

// FromState converts a game state.
func FromState(s domain.GameState) State {
	return State{
		InZone:     s.InZone,
		Score:      s.Score,
		CooldownMs: s.CooldownMs,
	}
}
