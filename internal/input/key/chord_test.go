package key

import (
	"testing"

	"github.com/gdamore/tcell/v2"
)

func TestChordEqualityIgnoresModifierOrder(t *testing.T) {
	a := MustChord([]string{"mod4", "shift"}, "1")
	b := MustChord([]string{"shift", "super"}, "1")

	if !a.Equals(b) {
		t.Errorf("%v should equal %v", a, b)
	}

	m := map[Chord]string{a: "first"}
	if m[b] != "first" {
		t.Error("equal chords should hash to the same map entry")
	}
}

func TestChordDistinguishesShift(t *testing.T) {
	plain := MustChord([]string{"mod4"}, "1")
	shifted := MustChord([]string{"mod4", "shift"}, "1")
	if plain == shifted {
		t.Error("shift should distinguish chords")
	}
}

func TestNewChordUnknownModifier(t *testing.T) {
	if _, err := NewChord([]string{"mod9"}, "a"); err == nil {
		t.Error("NewChord with unknown modifier should fail")
	}
}

func TestChordTextMarshal(t *testing.T) {
	c := MustChord([]string{"mod4", "control"}, "h")
	text, err := c.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText() error = %v", err)
	}
	if string(text) != "super+control+h" {
		t.Errorf("MarshalText() = %q", text)
	}

	var back Chord
	if err := back.UnmarshalText(text); err != nil {
		t.Fatalf("UnmarshalText() error = %v", err)
	}
	if back != c {
		t.Errorf("UnmarshalText() = %#v, want %#v", back, c)
	}

	if _, err := (Chord{}).MarshalText(); err == nil {
		t.Error("MarshalText of zero chord should fail")
	}
}

func TestDigit(t *testing.T) {
	for i := 0; i <= 9; i++ {
		d, err := Digit(i)
		if err != nil {
			t.Fatalf("Digit(%d) error = %v", i, err)
		}
		if len(d) != 1 || d[0] != byte('0'+i) {
			t.Errorf("Digit(%d) = %q", i, d)
		}
	}
	if _, err := Digit(10); err == nil {
		t.Error("Digit(10) should fail")
	}
}

func TestFromTcell(t *testing.T) {
	tests := []struct {
		name string
		ev   *tcell.EventKey
		want string
	}{
		{"rune", tcell.NewEventKey(tcell.KeyRune, 'h', tcell.ModNone), "h"},
		{"meta rune", tcell.NewEventKey(tcell.KeyRune, 'h', tcell.ModMeta), "super+h"},
		{"upper rune", tcell.NewEventKey(tcell.KeyRune, 'C', tcell.ModMeta), "super+shift+c"},
		{"enter", tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModMeta), "super+Return"},
		{"tab", tcell.NewEventKey(tcell.KeyTab, 0, tcell.ModNone), "Tab"},
		{"ctrl letter", tcell.NewEventKey(tcell.KeyCtrlR, 0, tcell.ModCtrl), "control+r"},
		{"function", tcell.NewEventKey(tcell.KeyF4, 0, tcell.ModAlt), "alt+F4"},
		{"space rune", tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModMeta), "super+space"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := FromTcell(tt.ev)
			if err != nil {
				t.Fatalf("FromTcell() error = %v", err)
			}
			if c.String() != tt.want {
				t.Errorf("FromTcell() = %q, want %q", c.String(), tt.want)
			}
		})
	}
}

func TestFromTcellNil(t *testing.T) {
	if _, err := FromTcell(nil); err == nil {
		t.Error("FromTcell(nil) should fail")
	}
}
