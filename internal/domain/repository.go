package domain

// EffectRunner is a secondary port that performs the effects produced by Reduce.
// Implementations must apply effects in the order given.
type EffectRunner interface {
	Run(effects []Effect) error
}

// ScriptRepository is a secondary port for scripted event sequences.
// This interface is defined in the domain layer and implemented by adapters.
type ScriptRepository interface {
	Load() ([]Event, error)
	Save(events []Event) error
}
