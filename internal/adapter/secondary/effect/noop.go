package effect

import "triggerzone/internal/domain"

// NoopRunner implements domain.EffectRunner by validating and discarding effects.
// Useful for testing or headless servers.
type NoopRunner struct{}

// NewNoopRunner creates a new no-op runner.
func NewNoopRunner() *NoopRunner {
	return &NoopRunner{}
}

// Run does nothing beyond rejecting malformed effects.
func (n *NoopRunner) Run(effects []domain.Effect) error {
	for _, e := range effects {
		if err := domain.ValidateEffect(e); err != nil {
			return err
		}
	}
	return nil
}
