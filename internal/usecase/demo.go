package usecase

import "triggerzone/internal/domain"

// DemoScript is the built-in walkthrough: a failed press, entering the zone,
// a score, presses during cooldown, the cooldown draining, and a second score.
func DemoScript() []domain.Event {
	return []domain.Event{
		domain.ButtonPressed{},
		domain.PlayerEnteredZone{},
		domain.ButtonPressed{},
		domain.ButtonPressed{},
		domain.Tick{DtMs: 1000},
		domain.ButtonPressed{},
		domain.Tick{DtMs: 1000},
		domain.ButtonPressed{},
	}
}
