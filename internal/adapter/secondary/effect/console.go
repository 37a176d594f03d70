package effect

import (
	"fmt"
	"io"

	"triggerzone/internal/domain"
)

// ConsoleRunner implements domain.EffectRunner by printing each effect as a line.
// This is a secondary adapter: sounds become "[SOUND] <name>" and messages "[UI] <text>".
type ConsoleRunner struct {
	w io.Writer
}

// NewConsoleRunner creates a runner writing to w.
func NewConsoleRunner(w io.Writer) *ConsoleRunner {
	return &ConsoleRunner{w: w}
}

// Run prints the effects in order and stops at the first write error.
func (c *ConsoleRunner) Run(effects []domain.Effect) error {
	for _, e := range effects {
		var err error
		switch eff := e.(type) {
		case domain.PlaySound:
			_, err = fmt.Fprintf(c.w, "[SOUND] %s\n", eff.Name)
		case domain.ShowMessage:
			_, err = fmt.Fprintf(c.w, "[UI] %s\n", eff.Text)
		default:
			panic(fmt.Sprintf("effect: unhandled effect %T", e))
		}
		if err != nil {
			return fmt.Errorf("run %s: %w", e.Type(), err)
		}
	}
	return nil
}
