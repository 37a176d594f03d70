package domain

import (
	"errors"
	"math/rand"
	"reflect"
	"testing"
)

func TestInitialState(t *testing.T) {
	got := InitialState()
	want := GameState{InZone: false, Score: 0, CooldownMs: 0}
	if got != want {
		t.Fatalf("initial state = %v, want %v", got, want)
	}
}

func TestReduceTransitions(t *testing.T) {
	tests := []struct {
		name        string
		state       GameState
		event       Event
		wantState   GameState
		wantEffects []Effect
	}{
		{
			name:        "enter zone",
			state:       GameState{Score: 3, CooldownMs: 500},
			event:       PlayerEnteredZone{},
			wantState:   GameState{InZone: true, Score: 3, CooldownMs: 500},
			wantEffects: []Effect{ShowMessage{Text: "Entered zone"}},
		},
		{
			name:        "leave zone",
			state:       GameState{InZone: true, Score: 3, CooldownMs: 500},
			event:       PlayerLeftZone{},
			wantState:   GameState{InZone: false, Score: 3, CooldownMs: 500},
			wantEffects: []Effect{ShowMessage{Text: "Left zone"}},
		},
		{
			name:        "press out of zone",
			state:       GameState{Score: 4},
			event:       ButtonPressed{},
			wantState:   GameState{Score: 4},
			wantEffects: []Effect{ShowMessage{Text: "Nope (not in zone or on cooldown)"}},
		},
		{
			name:        "press in zone on cooldown",
			state:       GameState{InZone: true, Score: 4, CooldownMs: 1},
			event:       ButtonPressed{},
			wantState:   GameState{InZone: true, Score: 4, CooldownMs: 1},
			wantEffects: []Effect{ShowMessage{Text: "Nope (not in zone or on cooldown)"}},
		},
		{
			name:        "press out of zone on cooldown",
			state:       GameState{Score: 4, CooldownMs: 700},
			event:       ButtonPressed{},
			wantState:   GameState{Score: 4, CooldownMs: 700},
			wantEffects: []Effect{ShowMessage{Text: "Nope (not in zone or on cooldown)"}},
		},
		{
			name:      "press scores",
			state:     GameState{InZone: true, Score: 9},
			event:     ButtonPressed{},
			wantState: GameState{InZone: true, Score: 10, CooldownMs: 2000},
			wantEffects: []Effect{
				PlaySound{Name: SoundDing},
				ShowMessage{Text: "Score! Total = 10"},
			},
		},
		{
			name:      "tick without cooldown",
			state:     GameState{InZone: true, Score: 1},
			event:     Tick{DtMs: 250},
			wantState: GameState{InZone: true, Score: 1},
		},
		{
			name:      "tick partially drains cooldown",
			state:     GameState{CooldownMs: 2000},
			event:     Tick{DtMs: 750},
			wantState: GameState{CooldownMs: 1250},
		},
		{
			name:        "tick exactly finishes cooldown",
			state:       GameState{CooldownMs: 1000},
			event:       Tick{DtMs: 1000},
			wantState:   GameState{CooldownMs: 0},
			wantEffects: []Effect{ShowMessage{Text: "Cooldown ready"}},
		},
		{
			name:        "tick overshoots cooldown",
			state:       GameState{CooldownMs: 300},
			event:       Tick{DtMs: 5000},
			wantState:   GameState{CooldownMs: 0},
			wantEffects: []Effect{ShowMessage{Text: "Cooldown ready"}},
		},
		{
			name:      "zero tick on cooldown",
			state:     GameState{CooldownMs: 300},
			event:     Tick{DtMs: 0},
			wantState: GameState{CooldownMs: 300},
		},
		{
			name:      "negative tick is ignored",
			state:     GameState{CooldownMs: 300},
			event:     Tick{DtMs: -100},
			wantState: GameState{CooldownMs: 300},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotState, gotEffects := Reduce(tt.state, tt.event)
			if gotState != tt.wantState {
				t.Fatalf("state = %v, want %v", gotState, tt.wantState)
			}
			if len(gotEffects) != len(tt.wantEffects) {
				t.Fatalf("effects = %v, want %v", gotEffects, tt.wantEffects)
			}
			for i := range gotEffects {
				if gotEffects[i] != tt.wantEffects[i] {
					t.Fatalf("effect[%d] = %#v, want %#v", i, gotEffects[i], tt.wantEffects[i])
				}
			}
		})
	}
}

func TestReduceDoesNotMutateInput(t *testing.T) {
	state := GameState{InZone: true}
	next, _ := Reduce(state, ButtonPressed{})
	if state != (GameState{InZone: true}) {
		t.Fatalf("input state changed to %v", state)
	}
	if next.Score != 1 {
		t.Fatalf("next score = %d, want 1", next.Score)
	}
}

func TestReduceScenario(t *testing.T) {
	steps := []struct {
		event       Event
		wantState   GameState
		wantEffects []Effect
	}{
		{ButtonPressed{}, GameState{}, []Effect{ShowMessage{Text: MsgNope}}},
		{PlayerEnteredZone{}, GameState{InZone: true}, []Effect{ShowMessage{Text: MsgEnteredZone}}},
		{ButtonPressed{}, GameState{InZone: true, Score: 1, CooldownMs: 2000}, []Effect{PlaySound{Name: SoundDing}, ShowMessage{Text: "Score! Total = 1"}}},
		{ButtonPressed{}, GameState{InZone: true, Score: 1, CooldownMs: 2000}, []Effect{ShowMessage{Text: MsgNope}}},
		{Tick{DtMs: 1000}, GameState{InZone: true, Score: 1, CooldownMs: 1000}, nil},
		{ButtonPressed{}, GameState{InZone: true, Score: 1, CooldownMs: 1000}, []Effect{ShowMessage{Text: MsgNope}}},
		{Tick{DtMs: 1000}, GameState{InZone: true, Score: 1, CooldownMs: 0}, []Effect{ShowMessage{Text: MsgCooldownReady}}},
		{ButtonPressed{}, GameState{InZone: true, Score: 2, CooldownMs: 2000}, []Effect{PlaySound{Name: SoundDing}, ShowMessage{Text: "Score! Total = 2"}}},
	}

	state := InitialState()
	for i, step := range steps {
		var effects []Effect
		state, effects = Reduce(state, step.event)
		if state != step.wantState {
			t.Fatalf("step %d (%s): state = %v, want %v", i, step.event.Type(), state, step.wantState)
		}
		if !reflect.DeepEqual(effects, step.wantEffects) {
			t.Fatalf("step %d (%s): effects = %#v, want %#v", i, step.event.Type(), effects, step.wantEffects)
		}
	}
}

func TestReduceRandomSequencesKeepInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	events := []Event{PlayerEnteredZone{}, PlayerLeftZone{}, ButtonPressed{}}

	for run := 0; run < 200; run++ {
		state := InitialState()
		for i := 0; i < 100; i++ {
			var ev Event
			if rng.Intn(4) == 0 {
				ev = Tick{DtMs: rng.Intn(3000)}
			} else {
				ev = events[rng.Intn(len(events))]
			}

			prev := state
			next, effects := Reduce(state, ev)
			if next.CooldownMs < 0 {
				t.Fatalf("run %d step %d: negative cooldown %d after %#v", run, i, next.CooldownMs, ev)
			}
			if next.Score < prev.Score {
				t.Fatalf("run %d step %d: score went down %d -> %d", run, i, prev.Score, next.Score)
			}
			if next.Score > prev.Score {
				if !prev.CanScore() {
					t.Fatalf("run %d step %d: scored from %v", run, i, prev)
				}
				if next.Score != prev.Score+1 || len(effects) != 2 {
					t.Fatalf("run %d step %d: bad score step %v -> %v (%v)", run, i, prev, next, effects)
				}
			}
			for _, e := range effects {
				if err := ValidateEffect(e); err != nil {
					t.Fatalf("run %d step %d: invalid effect %#v: %v", run, i, e, err)
				}
			}
			state = next
		}
	}
}

func TestFold(t *testing.T) {
	events := []Event{PlayerEnteredZone{}, ButtonPressed{}, Tick{DtMs: 2500}, ButtonPressed{}, PlayerLeftZone{}}
	state, effects := Fold(InitialState(), events)

	want := GameState{InZone: false, Score: 2, CooldownMs: 2000}
	if state != want {
		t.Fatalf("fold state = %v, want %v", state, want)
	}
	wantEffects := []Effect{
		ShowMessage{Text: MsgEnteredZone},
		PlaySound{Name: SoundDing},
		ShowMessage{Text: "Score! Total = 1"},
		ShowMessage{Text: MsgCooldownReady},
		PlaySound{Name: SoundDing},
		ShowMessage{Text: "Score! Total = 2"},
		ShowMessage{Text: MsgLeftZone},
	}
	if !reflect.DeepEqual(effects, wantEffects) {
		t.Fatalf("fold effects = %#v, want %#v", effects, wantEffects)
	}
}

func TestFoldEmpty(t *testing.T) {
	start := GameState{InZone: true, Score: 7, CooldownMs: 12}
	state, effects := Fold(start, nil)
	if state != start || len(effects) != 0 {
		t.Fatalf("fold of nothing = %v %v", state, effects)
	}
}

type strayEvent struct{}

func (strayEvent) Type() EventType { return "Stray" }
func (strayEvent) isEvent()        {}

func TestReducePanicsOnUnhandledEvent(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for unhandled event")
		}
	}()
	Reduce(InitialState(), strayEvent{})
}

func TestValidateCoverage(t *testing.T) {
	if err := ValidateCoverage(); err != nil {
		t.Fatalf("coverage: %v", err)
	}
}

func TestReduceOnceReportsPanic(t *testing.T) {
	err := reduceOnce(strayEvent{})
	if err == nil {
		t.Fatal("expected error for stray event")
	}
}

func TestValidateEffect(t *testing.T) {
	if err := ValidateEffect(PlaySound{Name: "boom"}); !errors.Is(err, ErrUnknownSound) {
		t.Fatalf("expected ErrUnknownSound, got %v", err)
	}
	if err := ValidateEffect(PlaySound{Name: SoundReady}); err != nil {
		t.Fatalf("ready: %v", err)
	}
	if err := ValidateEffect(ShowMessage{}); err != nil {
		t.Fatalf("message: %v", err)
	}
}
