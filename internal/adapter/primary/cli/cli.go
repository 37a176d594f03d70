package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"triggerzone/internal/adapter/primary/web"
	"triggerzone/internal/adapter/secondary/effect"
	"triggerzone/internal/adapter/secondary/repository"
	"triggerzone/internal/adapter/wire"
	"triggerzone/internal/config"
	"triggerzone/internal/domain"
	"triggerzone/internal/logging"
	"triggerzone/internal/usecase"
)

var (
	cfg       config.Config
	verbosity int
)

// NewRootCmd creates the root CLI command.
// This is the primary adapter that translates CLI inputs to use case calls.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "triggerzone",
		Short:        "Trigger zone mini-game driven by a pure event reducer",
		Long:         "Enter the zone, press the button to score, wait out the cooldown. Events come from a script, a shell or HTTP.",
		SilenceUsage: true,
	}

	cmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase log verbosity (-v, -vv, ... up to 4)")
	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load()
		if err != nil {
			return err
		}
		if !cmd.Flags().Changed("verbose") {
			verbosity = loaded.Verbosity
		}
		loaded.Verbosity = verbosity
		if err := config.Validate(loaded); err != nil {
			return err
		}
		cfg = loaded

		logging.SetOutput(cmd.ErrOrStderr())
		logging.SetVerbosity(verbosity)
		return domain.ValidateCoverage()
	}

	cmd.AddCommand(
		newDemoCmd(),
		newPlayCmd(),
		newReduceCmd(),
		newServeCmd(),
		newShellCmd(),
	)

	return cmd
}

func newDemoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Run the built-in walkthrough and print every step",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTrace(cmd.OutOrStdout(), usecase.DemoScript())
		},
	}
}

func newPlayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "play <script.json>",
		Short: "Replay an event script file and print every step",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := repository.NewFileScriptRepository(args[0])
			if err != nil {
				return err
			}
			if _, err := os.Stat(args[0]); err != nil {
				return fmt.Errorf("open script: %w", err)
			}
			events, err := repo.Load()
			if err != nil {
				return err
			}
			logging.Infof("Loaded %d event(s) from %s", len(events), repo.Path())
			return runTrace(cmd.OutOrStdout(), events)
		},
	}
}

func newReduceCmd() *cobra.Command {
	var (
		inZone   bool
		score    int
		cooldown int
	)
	cmd := &cobra.Command{
		Use:   "reduce <event> [dtMs]",
		Short: "Apply one event to a given state and print the result as JSON",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if score < 0 || cooldown < 0 {
				return errors.New("--score and --cooldown must be >= 0")
			}
			event, err := parseEventArgs(args)
			if err != nil {
				return err
			}

			state := domain.GameState{InZone: inZone, Score: score, CooldownMs: cooldown}
			next, effects := domain.Reduce(state, event)

			ev := wire.FromEvent(event)
			return writeJSON(cmd.OutOrStdout(), wire.Step{
				Event:   &ev,
				State:   wire.FromState(next),
				Effects: wire.FromEffects(effects),
			})
		},
	}
	cmd.Flags().BoolVar(&inZone, "in-zone", false, "Start inside the trigger zone")
	cmd.Flags().IntVar(&score, "score", 0, "Starting score")
	cmd.Flags().IntVar(&cooldown, "cooldown", 0, "Starting cooldown in ms")
	return cmd
}

func newServeCmd() *cobra.Command {
	var (
		addr string
		tick time.Duration
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the Web UI and REST API with a real-time tick loop",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("addr") {
				cfg.Addr = addr
			}
			if cmd.Flags().Changed("tick") {
				cfg.TickInterval = tick
			}
			if err := config.Validate(cfg); err != nil {
				return err
			}

			uc, err := usecase.NewGameUseCase(effect.NewConsoleRunner(cmd.OutOrStdout()))
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()

			// Start tick loop
			uc.Start(ctx, cfg.TickInterval)

			srv := web.NewServer(uc, cfg.Addr)
			fmt.Fprintf(cmd.OutOrStdout(), "Trigger Zone UI running at http://%s\n", cfg.Addr)
			logging.Infof("Trigger Zone UI: http://%s (tick %s)", cfg.Addr, cfg.TickInterval)

			go func() {
				<-ctx.Done()
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = srv.Shutdown(shutdownCtx)
			}()

			return srv.Start()
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "127.0.0.1:7070", "HTTP server address:port")
	cmd.Flags().DurationVar(&tick, "tick", 100*time.Millisecond, "Real-time tick period (0 disables)")
	return cmd
}

func newShellCmd() *cobra.Command {
	var prompt string
	cmd := &cobra.Command{
		Use:   "shell",
		Short: "Play interactively: type events, inspect state, run sub-commands",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("prompt") {
				cfg.Prompt = prompt
			}
			return runInteractiveShell(cfg.Prompt, cfg.HistoryFile)
		},
	}
	cmd.Flags().StringVar(&prompt, "prompt", "zone> ", "Shell prompt")
	return cmd
}

// runTrace dispatches events from the initial state, printing each step as
//
//	EVENT: <type> [dtMs=<n>]
//	STATE: {...}
//	<effects>
//	---
func writeJSON(w io.Writer, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}

func runTrace(w io.Writer, events []domain.Event) error {
	var fx bytes.Buffer
	uc, err := usecase.NewGameUseCase(effect.NewConsoleRunner(&fx))
	if err != nil {
		return err
	}
	for _, ev := range events {
		fx.Reset()
		step, err := uc.Dispatch(ev)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "EVENT: %s\n", describeEvent(ev))
		fmt.Fprintf(w, "STATE: %s\n", step.State)
		if _, err := io.Copy(w, &fx); err != nil {
			return err
		}
		fmt.Fprintln(w, "---")
	}
	return nil
}

func describeEvent(ev domain.Event) string {
	if tick, ok := ev.(domain.Tick); ok {
		return fmt.Sprintf("%s dtMs=%d", tick.Type(), tick.DtMs)
	}
	return string(ev.Type())
}

// parseEventArgs turns "press" or "tick 500" into an event.
func parseEventArgs(args []string) (domain.Event, error) {
	if len(args) == 0 {
		return nil, errors.New("event is required")
	}
	t, err := domain.ParseEventType(args[0])
	if err != nil {
		return nil, err
	}
	dt := 0
	if t == domain.EventTick {
		if len(args) < 2 {
			return nil, errors.New("tick requires a dtMs argument")
		}
		dt, err = strconv.Atoi(args[1])
		if err != nil {
			return nil, fmt.Errorf("invalid dtMs %q: %w", args[1], err)
		}
	} else if len(args) > 1 {
		return nil, fmt.Errorf("%s takes no arguments", t)
	}
	return domain.NewEvent(t, dt)
}
