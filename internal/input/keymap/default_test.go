package keymap

import (
	"testing"

	"github.com/dshills/tilekeys/internal/action"
	"github.com/dshills/tilekeys/internal/input/key"
)

func TestDefaultBindingsHaveNoConflicts(t *testing.T) {
	for _, mod := range []key.Modifier{key.ModSuper, key.ModAlt} {
		bindings := DefaultBindings(DefaultOptionsFor(mod))
		if len(bindings) != 26 {
			t.Errorf("mod %s: len(bindings) = %d, want 26", mod, len(bindings))
		}
		if conflicts := FindConflicts(bindings); len(conflicts) != 0 {
			t.Errorf("mod %s: conflicts = %v", mod, conflicts)
		}
		for _, b := range bindings {
			if !b.Chord.Modifiers.Has(mod) {
				t.Errorf("%v does not hold the base modifier %s", b.Chord, mod)
			}
			if b.Description == "" || b.Category == "" {
				t.Errorf("%v missing description or category", b.Chord)
			}
		}
	}
}

func TestDefaultBindingsResolve(t *testing.T) {
	r := NewRegistry()
	if err := r.Reload(DefaultBindings(DefaultOptionsFor(key.ModSuper))); err != nil {
		t.Fatalf("Reload() error = %v", err)
	}

	tests := []struct {
		chord string
		want  action.Action
	}{
		{"super+Return", action.Spawn("alacritty -e fish")},
		{"super+shift+Return", action.Spawn("~/.config/rofi/bin/launcher_text")},
		{"super+control+r", action.Host("restart")},
		{"super+control+q", action.Host("shutdown")},
		{"super+shift+c", action.Host("window.kill")},
		{"super+Tab", action.Host("next_layout")},
		{"super+space", action.Host("layout.next")},
		{"super+period", action.Host("next_screen")},
		{"super+comma", action.Host("prev_screen")},
		{"super+control+k", action.Host("layout.grow_up")},
		{"super+shift+h", action.Host("layout.shuffle_left")},
	}

	for _, tt := range tests {
		t.Run(tt.chord, func(t *testing.T) {
			got, ok := r.Resolve(key.MustParse(tt.chord))
			if !ok {
				t.Fatalf("Resolve(%s) found nothing", tt.chord)
			}
			if got != tt.want {
				t.Errorf("Resolve(%s) = %v, want %v", tt.chord, got, tt.want)
			}
		})
	}
}

func TestDefaultBindingsSkipEmptySpawn(t *testing.T) {
	opts := DefaultOptionsFor(key.ModSuper)
	opts.Launcher = ""

	bindings := DefaultBindings(opts)
	if len(bindings) != 25 {
		t.Errorf("len(bindings) = %d, want 25", len(bindings))
	}
	for _, b := range bindings {
		if b.Chord == key.MustParse("super+shift+Return") {
			t.Error("launcher binding should be skipped when the command is empty")
		}
	}
}

func TestDropdownBinding(t *testing.T) {
	b, err := DropdownBinding(key.ModSuper, "F12", "scratchpad", "term")
	if err != nil {
		t.Fatalf("DropdownBinding() error = %v", err)
	}
	if b.Chord != key.MustParse("super+F12") {
		t.Errorf("chord = %v, want super+F12", b.Chord)
	}
	if b.Action != action.ToggleScratchpad("scratchpad", "term") {
		t.Errorf("action = %v", b.Action)
	}
	if b.Category != CategoryDropdown {
		t.Errorf("category = %q, want %q", b.Category, CategoryDropdown)
	}

	if _, err := DropdownBinding(key.ModSuper, "", "scratchpad", "term"); err == nil {
		t.Error("DropdownBinding() with empty symbol should fail")
	}
}

func TestGroupByCategory(t *testing.T) {
	bindings := DefaultBindings(DefaultOptionsFor(key.ModSuper))
	bindings = append(bindings, mustBind(t, "super+b", "spawn:firefox"))

	cats := GroupByCategory(bindings)
	want := []string{CategorySession, CategoryLaunch, CategoryLayout, CategoryFocus, CategoryMove, CategoryResize, "Other"}
	if len(cats) != len(want) {
		t.Fatalf("len(categories) = %d, want %d", len(cats), len(want))
	}
	total := 0
	for i, c := range cats {
		if c.Name != want[i] {
			t.Errorf("category[%d] = %q, want %q", i, c.Name, want[i])
		}
		total += len(c.Bindings)
	}
	if total != len(bindings) {
		t.Errorf("grouped %d bindings, want %d", total, len(bindings))
	}
}
