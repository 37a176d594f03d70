package domain

import "fmt"

// GameState is the whole state of the trigger zone game.
// It is a plain value: Reduce returns a new GameState rather than mutating one.
type GameState struct {
	InZone     bool
	Score      int
	CooldownMs int
}

// InitialState returns the state every session starts from.
func InitialState() GameState {
	return GameState{
		InZone:     false,
		Score:      0,
		CooldownMs: 0,
	}
}

// CanScore reports whether a button press would score right now.
func (s GameState) CanScore() bool {
	return s.InZone && s.CooldownMs == 0
}

func (s GameState) String() string {
	return fmt.Sprintf("{inZone:%t score:%d cooldownMs:%d}", s.InZone, s.Score, s.CooldownMs)
}
