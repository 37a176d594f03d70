package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"triggerzone/internal/adapter/secondary/effect"
	"triggerzone/internal/logging"
	"triggerzone/internal/usecase"
)

func newTestSession(t *testing.T) (*shellSession, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	uc, err := usecase.NewGameUseCase(effect.NewConsoleRunner(&buf))
	if err != nil {
		t.Fatalf("new use case: %v", err)
	}
	return newShellSession(uc, &buf), &buf
}

func TestShellPlaysEvents(t *testing.T) {
	s, buf := newTestSession(t)

	for _, line := range []string{"press", "enter", "press", "tick 2000", "state"} {
		if s.handleLine(line) {
			t.Fatalf("%q ended the shell", line)
		}
	}

	out := buf.String()
	for _, want := range []string{
		"[UI] Nope (not in zone or on cooldown)",
		"[UI] Entered zone",
		"[SOUND] ding\n[UI] Score! Total = 1\nSTATE: {inZone:true score:1 cooldownMs:2000}",
		"[UI] Cooldown ready",
		"STATE: {inZone:true score:1 cooldownMs:0}",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestShellReportsBadInput(t *testing.T) {
	s, buf := newTestSession(t)

	s.handleLine("tick")
	s.handleLine(`enter "unterminated`)
	s.handleLine("save")

	out := buf.String()
	for _, want := range []string{"event: tick requires a dtMs argument", "Parse error:", "save: usage: save <path>"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
	if s.uc.Snapshot().InZone {
		t.Fatal("unparsable line must not dispatch")
	}
}

func TestShellSaveResetLoad(t *testing.T) {
	s, buf := newTestSession(t)
	path := filepath.Join(t.TempDir(), "run.json")

	for _, line := range []string{"enter", "press", "tick 500", "save " + path} {
		s.handleLine(line)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("script not written: %v", err)
	}
	if !strings.Contains(buf.String(), "Saved 3 event(s)") {
		t.Fatalf("missing save confirmation:\n%s", buf.String())
	}

	s.handleLine("reset")
	if len(s.uc.History()) != 0 {
		t.Fatal("reset kept history")
	}

	buf.Reset()
	s.handleLine("load " + path)
	want := "STATE: {inZone:true score:1 cooldownMs:1500}"
	if !strings.Contains(buf.String(), want) {
		t.Fatalf("load output missing %q:\n%s", want, buf.String())
	}

	buf.Reset()
	s.handleLine("history")
	for _, want := range []string{"1  PlayerEnteredZone", "2  ButtonPressed", "3  Tick dtMs=500"} {
		if !strings.Contains(buf.String(), want) {
			t.Fatalf("history missing %q:\n%s", want, buf.String())
		}
	}
}

func TestShellRunsSubCommands(t *testing.T) {
	s, buf := newTestSession(t)
	s.handleLine("reduce enter")
	if !strings.Contains(buf.String(), `"inZone": true`) {
		t.Fatalf("reduce output missing:\n%s", buf.String())
	}

	buf.Reset()
	s.handleLine("nonsense")
	if !strings.Contains(buf.String(), "command error:") {
		t.Fatalf("expected command error:\n%s", buf.String())
	}
}

func TestShellLogAndExit(t *testing.T) {
	t.Cleanup(func() {
		logging.SetOutput(os.Stderr)
		logging.SetVerbosity(0)
	})
	s, buf := newTestSession(t)

	s.handleLine("log --level debug")
	if !strings.Contains(buf.String(), "log level set to debug") {
		t.Fatalf("log output:\n%s", buf.String())
	}
	if s.verbosity != 2 {
		t.Fatalf("session verbosity = %d, want 2", s.verbosity)
	}

	s.handleLine("history")
	if !strings.Contains(buf.String(), "(no events)") {
		t.Fatalf("history output:\n%s", buf.String())
	}

	if !s.handleLine("exit") {
		t.Fatal("exit should end the shell")
	}
}
