package domain

import "fmt"

// ScoreCooldownMs is how long scoring stays blocked after a successful press.
const ScoreCooldownMs = 2000

// Texts carried by the ShowMessage effects the reducer emits.
const (
	MsgEnteredZone   = "Entered zone"
	MsgLeftZone      = "Left zone"
	MsgNope          = "Nope (not in zone or on cooldown)"
	MsgCooldownReady = "Cooldown ready"
)

// ScoreMessage is the text shown after a press that scored.
func ScoreMessage(total int) string {
	return fmt.Sprintf("Score! Total = %d", total)
}

// Reduce is a pure function that takes the current state and an event,
// and returns the new state along with the effects to be executed.
// It never fails; an event type without a case here is a programming error.
func Reduce(state GameState, event Event) (GameState, []Effect) {
	switch ev := event.(type) {
	case PlayerEnteredZone:
		return handleEnteredZone(state)
	case PlayerLeftZone:
		return handleLeftZone(state)
	case ButtonPressed:
		return handleButtonPressed(state)
	case Tick:
		return handleTick(state, ev.DtMs)
	default:
		panic(fmt.Sprintf("domain: unhandled event %T", event))
	}
}

func handleEnteredZone(state GameState) (GameState, []Effect) {
	state.InZone = true
	return state, []Effect{ShowMessage{Text: MsgEnteredZone}}
}

func handleLeftZone(state GameState) (GameState, []Effect) {
	state.InZone = false
	return state, []Effect{ShowMessage{Text: MsgLeftZone}}
}

func handleButtonPressed(state GameState) (GameState, []Effect) {
	if !state.CanScore() {
		return state, []Effect{ShowMessage{Text: MsgNope}}
	}

	state.Score++
	state.CooldownMs = ScoreCooldownMs
	return state, []Effect{
		PlaySound{Name: SoundDing},
		ShowMessage{Text: ScoreMessage(state.Score)},
	}
}

func handleTick(state GameState, dtMs int) (GameState, []Effect) {
	if state.CooldownMs == 0 {
		return state, nil
	}
	// A negative delta never reaches here through NewEvent; treat it as no time passed.
	if dtMs < 0 {
		dtMs = 0
	}

	state.CooldownMs = clampMin0(state.CooldownMs - dtMs)
	if state.CooldownMs == 0 {
		return state, []Effect{ShowMessage{Text: MsgCooldownReady}}
	}
	return state, nil
}

func clampMin0(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

// Fold applies events in order starting from state and returns the final
// state together with every effect produced, in order.
func Fold(state GameState, events []Event) (GameState, []Effect) {
	var effects []Effect
	for _, ev := range events {
		var out []Effect
		state, out = Reduce(state, ev)
		effects = append(effects, out...)
	}
	return state, effects
}
