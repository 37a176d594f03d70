package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/google/shlex"
	"github.com/spf13/pflag"

	"triggerzone/internal/adapter/secondary/effect"
	"triggerzone/internal/adapter/secondary/repository"
	"triggerzone/internal/domain"
	"triggerzone/internal/logging"
	"triggerzone/internal/usecase"
)

func runInteractiveShell(prompt, historyFile string) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          prompt,
		HistoryFile:     historyFile,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return err
	}
	defer rl.Close()

	uc, err := usecase.NewGameUseCase(effect.NewConsoleRunner(rl.Stdout()))
	if err != nil {
		return err
	}
	session := newShellSession(uc, rl.Stdout())
	fmt.Fprintln(session.out, "Interactive shell. 'help' for usage, 'exit' to quit.")

	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			fmt.Fprintln(session.out)
			continue
		}
		if err == io.EOF {
			fmt.Fprintln(session.out)
			return nil
		}
		if err != nil {
			return err
		}
		if session.handleLine(line) {
			return nil
		}
	}
}

// shellSession owns one game for the lifetime of the shell.
type shellSession struct {
	uc        usecase.GameUseCase
	out       io.Writer
	verbosity int
}

func newShellSession(uc usecase.GameUseCase, out io.Writer) *shellSession {
	return &shellSession{uc: uc, out: out, verbosity: verbosity}
}

// handleLine runs one input line and reports whether the shell should exit.
func (s *shellSession) handleLine(line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}
	switch line {
	case "exit", "quit":
		fmt.Fprintln(s.out, "Bye!")
		return true
	case "help":
		printShellHelp(s.out)
		return false
	}
	tokens, err := shlex.Split(line)
	if err != nil {
		fmt.Fprintf(s.out, "Parse error: %v\n", err)
		return false
	}
	if len(tokens) == 0 {
		return false
	}

	switch tokens[0] {
	case "state":
		fmt.Fprintf(s.out, "STATE: %s\n", s.uc.Snapshot())
	case "history":
		s.printHistory()
	case "reset":
		s.uc.Reset()
		fmt.Fprintf(s.out, "STATE: %s\n", s.uc.Snapshot())
	case "save":
		if err := s.save(tokens[1:]); err != nil {
			fmt.Fprintf(s.out, "save: %v\n", err)
		}
	case "load":
		if err := s.load(tokens[1:]); err != nil {
			fmt.Fprintf(s.out, "load: %v\n", err)
		}
	case "log":
		if err := s.handleLog(tokens[1:]); err != nil {
			fmt.Fprintf(s.out, "log: %v\n", err)
		}
	case "shell":
		fmt.Fprintln(s.out, "Already in the shell. Enter another command or 'exit' to quit.")
	default:
		if _, err := domain.ParseEventType(tokens[0]); err == nil {
			s.dispatch(tokens)
			return false
		}
		if err := s.executeArgs(tokens); err != nil {
			fmt.Fprintf(s.out, "command error: %v\n", err)
		}
	}
	return false
}

func (s *shellSession) dispatch(tokens []string) {
	event, err := parseEventArgs(tokens)
	if err != nil {
		fmt.Fprintf(s.out, "event: %v\n", err)
		return
	}
	step, err := s.uc.Dispatch(event)
	if err != nil {
		fmt.Fprintf(s.out, "event: %v\n", err)
	}
	fmt.Fprintf(s.out, "STATE: %s\n", step.State)
}

func (s *shellSession) printHistory() {
	events := s.uc.History()
	if len(events) == 0 {
		fmt.Fprintln(s.out, "(no events)")
		return
	}
	for i, ev := range events {
		fmt.Fprintf(s.out, "%3d  %s\n", i+1, describeEvent(ev))
	}
}

func (s *shellSession) save(args []string) error {
	if len(args) != 1 {
		return errors.New("usage: save <path>")
	}
	repo, err := repository.NewFileScriptRepository(args[0])
	if err != nil {
		return err
	}
	events := s.uc.History()
	if err := repo.Save(events); err != nil {
		return err
	}
	fmt.Fprintf(s.out, "Saved %d event(s) to %s\n", len(events), repo.Path())
	return nil
}

// load replays a script on top of the current state.
func (s *shellSession) load(args []string) error {
	if len(args) != 1 {
		return errors.New("usage: load <path>")
	}
	repo, err := repository.NewFileScriptRepository(args[0])
	if err != nil {
		return err
	}
	events, err := repo.Load()
	if err != nil {
		return err
	}
	steps, err := s.uc.Replay(events)
	fmt.Fprintf(s.out, "Replayed %d event(s)\n", len(steps))
	fmt.Fprintf(s.out, "STATE: %s\n", s.uc.Snapshot())
	return err
}

func (s *shellSession) executeArgs(args []string) error {
	if len(args) == 0 {
		return nil
	}
	if s.verbosity > 0 && !hasVerboseFlag(args) {
		args = append(args, fmt.Sprintf("--verbose=%d", s.verbosity))
	}
	root := NewRootCmd()
	root.SetOut(s.out)
	root.SetErr(s.out)
	root.SetArgs(args)
	err := root.Execute()
	s.verbosity = logging.Verbosity()
	return err
}

func hasVerboseFlag(args []string) bool {
	for _, a := range args {
		if a == "--verbose" || strings.HasPrefix(a, "--verbose=") || (len(a) > 1 && strings.HasPrefix(a, "-v") && strings.Trim(a[1:], "v") == "") {
			return true
		}
	}
	return false
}

func (s *shellSession) handleLog(args []string) error {
	fs := pflag.NewFlagSet("log", pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	var vcount int
	var level string
	var show bool
	fs.CountVarP(&vcount, "verbose", "v", "Increase verbosity (-v... up to 4)")
	fs.StringVar(&level, "level", "", "Set level (error|warn|info|debug|trace)")
	fs.BoolVarP(&show, "show", "s", false, "Show the current level")
	if err := fs.Parse(args); err != nil {
		return err
	}

	switch {
	case show && vcount == 0 && level == "":
		fmt.Fprintf(s.out, "log level: %s (-v x%d)\n", logging.LevelName(), logging.Verbosity())
		return nil
	case level != "":
		_, count, err := logging.ParseLevel(level)
		if err != nil {
			return err
		}
		s.verbosity = count
	case vcount > 0:
		s.verbosity = vcount
	default:
		fmt.Fprintf(s.out, "log level: %s (-v x%d)\n", logging.LevelName(), logging.Verbosity())
		return nil
	}

	logging.SetVerbosity(s.verbosity)
	s.verbosity = logging.Verbosity()
	fmt.Fprintf(s.out, "log level set to %s (-v x%d)\n", logging.LevelName(), logging.Verbosity())
	return nil
}

func printShellHelp(w io.Writer) {
	fmt.Fprintln(w, `Events:
  enter                       # PlayerEnteredZone
  leave                       # PlayerLeftZone
  press                       # ButtonPressed
  tick 500                    # Tick with dtMs=500
Session:
  state                       # show the current state
  history                     # list events since the last reset
  reset                       # back to the initial state
  save run.json               # write the history as a script
  load run.json               # replay a script on top of the current state
Commands:
  demo                        # run the built-in walkthrough
  play run.json               # replay a script from the initial state
  reduce press --in-zone      # one pure reducer call as JSON
  log -vv                     # more detailed logging
  log --show                  # show the current log level
  exit / quit                 # leave the shell`)
}
