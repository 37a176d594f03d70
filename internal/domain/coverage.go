package domain

import (
	"fmt"
	"strings"
)

// ValidateCoverage verifies that every declared event type can be constructed
// and is handled by Reduce.
//
// This is a startup-time check: an event type added to EventTypes without a
// constructor or reducer case makes the program refuse to run.
func ValidateCoverage() error {
	var missing []string
	for _, t := range EventTypes() {
		ev, err := NewEvent(t, 0)
		if err != nil {
			missing = append(missing, fmt.Sprintf("%s (constructor: %v)", t, err))
			continue
		}
		if ev.Type() != t {
			missing = append(missing, fmt.Sprintf("%s (constructor returns %s)", t, ev.Type()))
			continue
		}
		if err := reduceOnce(ev); err != nil {
			missing = append(missing, fmt.Sprintf("%s (reducer: %v)", t, err))
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("event types not fully handled: %s", strings.Join(missing, ", "))
	}
	return nil
}

func reduceOnce(ev Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()
	_, effects := Reduce(GameState{InZone: true, CooldownMs: 1}, ev)
	for _, e := range effects {
		if verr := ValidateEffect(e); verr != nil {
			return verr
		}
	}
	return nil
}
