package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"triggerzone/internal/domain"
	"triggerzone/internal/logging"
)

// ErrNilEvent is returned when Dispatch is called without an event.
var ErrNilEvent = errors.New("event is required")

// Step is the outcome of dispatching one event.
type Step struct {
	Event   domain.Event
	State   domain.GameState
	Effects []domain.Effect
}

// GameUseCase is the primary port for playing the game.
// It owns the single current-state cell and serializes every event through it.
type GameUseCase interface {
	Start(ctx context.Context, interval time.Duration)
	Dispatch(event domain.Event) (Step, error)
	Replay(events []domain.Event) ([]Step, error)
	Snapshot() domain.GameState
	History() []domain.Event
	Reset()
}

// gameInteractor implements GameUseCase.
// It depends only on domain layer and secondary ports.
type gameInteractor struct {
	runner domain.EffectRunner

	// dispatchMu keeps reduce+run atomic per event so effects never interleave.
	dispatchMu sync.Mutex

	mu      sync.RWMutex
	state   domain.GameState
	history []domain.Event

	// Guarded by dispatchMu. Real-time deltas are measured from the later of
	// the previous loop tick and the moment the current cooldown started.
	now           func() time.Time
	lastTick      time.Time
	cooldownSince time.Time
}

// NewGameUseCase creates a new game use case starting from the initial state.
// Dependencies are injected (secondary ports).
func NewGameUseCase(runner domain.EffectRunner) (GameUseCase, error) {
	if runner == nil {
		return nil, errors.New("effect runner is required")
	}
	if err := domain.ValidateCoverage(); err != nil {
		return nil, err
	}
	return &gameInteractor{
		runner: runner,
		state:  domain.InitialState(),
		now:    time.Now,
	}, nil
}

// Start begins the real-time tick loop. A non-positive interval disables it.
func (g *gameInteractor) Start(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		logging.Infof("Tick loop disabled")
		return
	}
	g.dispatchMu.Lock()
	g.lastTick = g.now()
	g.dispatchMu.Unlock()
	go g.loop(ctx, interval)
}

func (g *gameInteractor) loop(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if _, _, err := g.advance(now); err != nil {
				logging.Warnf("tick: %v", err)
			}
		}
	}
}

// advance dispatches a Tick only while a cooldown is running, so idle time
// does not flood the history with no-op ticks. Time that passed before the
// cooldown started is never counted against it.
func (g *gameInteractor) advance(now time.Time) (Step, bool, error) {
	g.dispatchMu.Lock()
	defer g.dispatchMu.Unlock()

	from := g.lastTick
	if g.cooldownSince.After(from) {
		from = g.cooldownSince
	}
	if g.Snapshot().CooldownMs == 0 {
		g.lastTick = now
		return Step{}, false, nil
	}

	dt := now.Sub(from).Milliseconds()
	if dt < 0 {
		dt = 0
	}
	// Carry sub-millisecond remainders into the next tick.
	g.lastTick = from.Add(time.Duration(dt) * time.Millisecond)

	step, err := g.dispatchLocked(domain.Tick{DtMs: int(dt)})
	return step, true, err
}

// Dispatch reduces one event against the current state, stores the result and
// runs the effects. The state advances even when running the effects fails.
func (g *gameInteractor) Dispatch(event domain.Event) (Step, error) {
	if event == nil {
		return Step{}, ErrNilEvent
	}
	g.dispatchMu.Lock()
	defer g.dispatchMu.Unlock()
	return g.dispatchLocked(event)
}

func (g *gameInteractor) dispatchLocked(event domain.Event) (Step, error) {
	g.mu.Lock()
	prev := g.state
	next, effects := domain.Reduce(prev, event)
	g.state = next
	g.history = append(g.history, event)
	g.mu.Unlock()

	if prev.CooldownMs == 0 && next.CooldownMs > 0 {
		g.cooldownSince = g.now()
	}

	logging.Debugf("dispatch %s: %d effect(s)", event.Type(), len(effects))
	logging.Tracef("state %s", next)

	step := Step{Event: event, State: next, Effects: effects}

	// Execute side effects through secondary port
	if err := g.runner.Run(effects); err != nil {
		logging.Errorf("effects for %s failed: %v", event.Type(), err)
		return step, fmt.Errorf("run effects for %s: %w", event.Type(), err)
	}
	return step, nil
}

// Replay dispatches events in order and stops at the first failure.
func (g *gameInteractor) Replay(events []domain.Event) ([]Step, error) {
	steps := make([]Step, 0, len(events))
	for i, ev := range events {
		step, err := g.Dispatch(ev)
		if err != nil {
			return steps, fmt.Errorf("event %d: %w", i, err)
		}
		steps = append(steps, step)
	}
	return steps, nil
}

// Snapshot returns the current game state.
func (g *gameInteractor) Snapshot() domain.GameState {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.state
}

// History returns a copy of the events dispatched since the last reset.
func (g *gameInteractor) History() []domain.Event {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]domain.Event, len(g.history))
	copy(out, g.history)
	return out
}

// Reset returns to the initial state and forgets the history.
func (g *gameInteractor) Reset() {
	g.dispatchMu.Lock()
	defer g.dispatchMu.Unlock()

	g.mu.Lock()
	g.state = domain.InitialState()
	g.history = nil
	g.mu.Unlock()
	logging.Infof("Game reset")
}
