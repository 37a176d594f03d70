package domain

import "fmt"

// EffectType represents the type of side effect to be performed.
type EffectType string

const (
	EffectPlaySound   EffectType = "PlaySound"
	EffectShowMessage EffectType = "ShowMessage"
)

// Effect represents a side effect that should be performed by the adapter layer.
// Reduce produces Effects without executing them. Like Event, the set of
// implementations is closed.
type Effect interface {
	Type() EffectType
	isEffect()
}

// PlaySound asks the runner to play one of the fixed sounds.
type PlaySound struct {
	Name Sound
}

// ShowMessage asks the runner to show text to the player.
type ShowMessage struct {
	Text string
}

func (PlaySound) Type() EffectType   { return EffectPlaySound }
func (ShowMessage) Type() EffectType { return EffectShowMessage }

func (PlaySound) isEffect()   {}
func (ShowMessage) isEffect() {}

// Sound is the name of a sound effect.
type Sound string

const (
	SoundDing  Sound = "ding"
	SoundError Sound = "error"
	SoundReady Sound = "ready"
)

// Sounds returns the fixed set of sound names.
func Sounds() []Sound {
	return []Sound{SoundDing, SoundError, SoundReady}
}

// Valid reports whether s is one of Sounds.
func (s Sound) Valid() bool {
	for _, known := range Sounds() {
		if s == known {
			return true
		}
	}
	return false
}

// ParseSound converts a sound name to a Sound.
func ParseSound(name string) (Sound, error) {
	s := Sound(name)
	if !s.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownSound, name)
	}
	return s, nil
}

// ValidateEffect checks the payload of an effect.
func ValidateEffect(e Effect) error {
	switch eff := e.(type) {
	case PlaySound:
		if !eff.Name.Valid() {
			return fmt.Errorf("%w: %q", ErrUnknownSound, string(eff.Name))
		}
		return nil
	case ShowMessage:
		return nil
	default:
		panic(fmt.Sprintf("domain: unhandled effect %T", e))
	}
}
