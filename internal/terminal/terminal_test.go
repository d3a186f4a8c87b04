package terminal

import (
	"context"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/tilekeys/internal/input/key"
)

func newSimTerminal(t *testing.T, opts ...Option) (*Terminal, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	term := NewWithScreen(screen, opts...)
	if err := term.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	t.Cleanup(term.Shutdown)
	screen.SetSize(40, 5)
	return term, screen
}

func receive(t *testing.T, ch <-chan key.Chord) (key.Chord, bool) {
	t.Helper()
	select {
	case c, ok := <-ch:
		return c, ok
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for chord")
		return key.Chord{}, false
	}
}

func TestChordsConvertsKeyEvents(t *testing.T) {
	var skipped int
	term, screen := newSimTerminal(t, WithSkipHandler(func(*tcell.EventKey, error) { skipped++ }))
	ch := term.Chords(context.Background())

	screen.InjectKey(tcell.KeyEnter, 0, tcell.ModMeta)
	screen.InjectKey(tcell.KeyRune, 'h', tcell.ModAlt)

	got, ok := receive(t, ch)
	if !ok || got != key.MustParse("super+Return") {
		t.Errorf("first chord = %v, %v; want super+Return", got, ok)
	}
	got, ok = receive(t, ch)
	if !ok || got != key.MustParse("alt+h") {
		t.Errorf("second chord = %v, %v; want alt+h", got, ok)
	}

	screen.InjectKey(tcell.KeyCtrlC, 0, tcell.ModCtrl)
	if _, ok := receive(t, ch); ok {
		t.Error("channel should close on the quit key")
	}
	if skipped != 0 {
		t.Errorf("skipped = %d, want 0", skipped)
	}
}

func TestChordsCustomQuitKey(t *testing.T) {
	term, screen := newSimTerminal(t, WithQuitKey(tcell.KeyEscape))
	ch := term.Chords(context.Background())

	screen.InjectKey(tcell.KeyCtrlC, 0, tcell.ModCtrl)
	got, ok := receive(t, ch)
	if !ok || got != key.MustParse("control+c") {
		t.Errorf("chord = %v, %v; want control+c", got, ok)
	}

	screen.InjectKey(tcell.KeyEscape, 0, tcell.ModNone)
	if _, ok := receive(t, ch); ok {
		t.Error("channel should close on escape")
	}
}

func TestChordsClosesOnShutdown(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	term := NewWithScreen(screen)
	if err := term.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	ch := term.Chords(context.Background())
	term.Shutdown()
	if _, ok := receive(t, ch); ok {
		t.Error("channel should close after Shutdown")
	}
}

func TestStatusDrawsLines(t *testing.T) {
	term, screen := newSimTerminal(t)
	term.Status("tilekeys", "super+Return -> spawn:foot")

	cells, width, _ := screen.GetContents()
	row := func(y, n int) string {
		var rs []rune
		for x := 0; x < n; x++ {
			c := cells[y*width+x]
			if len(c.Runes) > 0 {
				rs = append(rs, c.Runes[0])
			}
		}
		return string(rs)
	}

	if got := row(0, 8); got != "tilekeys" {
		t.Errorf("row 0 = %q", got)
	}
	if got := row(1, 12); got != "super+Return" {
		t.Errorf("row 1 = %q", got)
	}
}
