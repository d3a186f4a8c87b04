package keymap

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dshills/tilekeys/internal/action"
	"github.com/dshills/tilekeys/internal/input/key"
)

func sampleBindings(t *testing.T) []Binding {
	t.Helper()
	bindings := DefaultBindings(DefaultOptionsFor(key.ModSuper))
	groups, err := GenerateGroupBindings([]string{"Terminal", "Internet"}, key.ModSuper)
	if err != nil {
		t.Fatalf("GenerateGroupBindings() error = %v", err)
	}
	drop, err := DropdownBinding(key.ModSuper, "F12", "scratchpad", "term")
	if err != nil {
		t.Fatalf("DropdownBinding() error = %v", err)
	}
	bindings = append(bindings, groups...)
	return append(bindings, drop)
}

func TestCodecRoundTrip(t *testing.T) {
	for _, format := range []Format{FormatTOML, FormatJSON, FormatYAML} {
		t.Run(format.String(), func(t *testing.T) {
			want := sampleBindings(t)

			var buf bytes.Buffer
			if err := Encode(&buf, want, format); err != nil {
				t.Fatalf("Encode() error = %v", err)
			}
			got, err := Decode(&buf, format)
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDecodeTOML(t *testing.T) {
	input := `
[[bindings]]
keys = "mod4+shift+Return"
action = "spawn:rofi -show drun"
description = "launcher"

[[bindings]]
keys = "Super+H"
action = "host:layout.shuffle_left"
`
	got, err := Decode(strings.NewReader(input), FormatTOML)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].Chord != key.MustParse("super+shift+Return") {
		t.Errorf("chord[0] = %v", got[0].Chord)
	}
	if got[1].Chord != key.MustParse("super+shift+h") {
		t.Errorf("chord[1] = %v, want super+shift+h", got[1].Chord)
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		format Format
	}{
		{"bad keys", `{"bindings":[{"keys":"hyperx+a","action":"host:restart"}]}`, FormatJSON},
		{"bad action", `{"bindings":[{"keys":"super+a","action":"teleport:now"}]}`, FormatJSON},
		{"bad toml", "[[bindings]\nkeys=", FormatTOML},
		{"bad json", `{"bindings":`, FormatJSON},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Decode(strings.NewReader(tt.input), tt.format); err == nil {
				t.Error("Decode() should fail")
			}
		})
	}
}

func TestDecodeKeepsDuplicates(t *testing.T) {
	input := `{"bindings":[
		{"keys":"super+a","action":"host:restart"},
		{"keys":"mod4+a","action":"host:shutdown"}
	]}`
	got, err := Decode(strings.NewReader(input), FormatJSON)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if n := len(FindConflicts(got)); n != 1 {
		t.Errorf("FindConflicts() = %d, want 1", n)
	}
	if err := NewRegistry().Reload(got); err == nil {
		t.Error("Reload() should reject duplicate chords")
	}
}

func TestDecodeYAML(t *testing.T) {
	input := `
bindings:
  - keys: mod4+d
    action: scratchpad.toggle:scratchpad/term
    category: Scratchpad
  - keys: super+F1
    action: spawn:firefox
`
	got, err := Decode(strings.NewReader(input), FormatYAML)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Decode() = %d bindings, want 2", len(got))
	}
	if got[0].Chord != key.MustParse("super+d") || got[0].Category != "Scratchpad" {
		t.Errorf("binding 0 = %v (%s)", got[0], got[0].Category)
	}
	if got[1].Action.Command != "firefox" {
		t.Errorf("binding 1 action = %v", got[1].Action)
	}

	empty, err := Decode(strings.NewReader(""), FormatYAML)
	if err != nil || len(empty) != 0 {
		t.Errorf("Decode(empty) = %v, %v", empty, err)
	}
}

func TestSaveLoadFile(t *testing.T) {
	dir := t.TempDir()
	want := sampleBindings(t)

	for _, name := range []string{"bindings.toml", "bindings.json", "bindings.yml"} {
		path := filepath.Join(dir, name)
		if err := SaveFile(path, want); err != nil {
			t.Fatalf("SaveFile(%s) error = %v", name, err)
		}
		got, err := LoadFile(path)
		if err != nil {
			t.Fatalf("LoadFile(%s) error = %v", name, err)
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("%s mismatch (-want +got):\n%s", name, diff)
		}
	}

	if _, err := LoadFile(filepath.Join(dir, "missing.toml")); err == nil {
		t.Error("LoadFile() on missing file should fail")
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path string
		want Format
	}{
		{"a.toml", FormatTOML},
		{"a.JSON", FormatJSON},
		{"a.yml", FormatYAML},
		{"a.conf", FormatTOML},
		{"noext", FormatTOML},
	}
	for _, tt := range tests {
		if got := FormatFromPath(tt.path); got != tt.want {
			t.Errorf("FormatFromPath(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Error("ParseFormat(xml) should fail")
	}
}

func TestRegistryRoundTripThroughCodec(t *testing.T) {
	src := NewRegistry()
	if err := src.Reload(sampleBindings(t)); err != nil {
		t.Fatalf("Reload() error = %v", err)
	}

	for _, format := range []Format{FormatTOML, FormatJSON, FormatYAML} {
		t.Run(format.String(), func(t *testing.T) {
			var buf bytes.Buffer
			if err := Encode(&buf, src.Bindings(), format); err != nil {
				t.Fatalf("Encode() error = %v", err)
			}
			decoded, err := Decode(&buf, format)
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}

			dst := NewRegistry()
			if err := dst.Reload(decoded); err != nil {
				t.Fatalf("Reload() error = %v", err)
			}
			for _, b := range src.Bindings() {
				got, ok := dst.Resolve(b.Chord)
				if !ok || got != b.Action {
					t.Errorf("Resolve(%s) = %v, %v; want %v", b.Chord, got, ok, b.Action)
				}
			}
			if dst.Len() != src.Len() {
				t.Errorf("Len() = %d, want %d", dst.Len(), src.Len())
			}
		})
	}
}

func TestLossyActionsNeverRegister(t *testing.T) {
	chord := key.MustParse("super+F9")
	actions := []action.Action{
		action.ToggleScratchpad("pads/main", "term"),
		action.Spawn("firefox "),
	}

	for _, act := range actions {
		t.Run(act.String(), func(t *testing.T) {
			r := NewRegistry()
			err := r.Register(chord, act, "")
			if !errors.Is(err, action.ErrInvalidArgument) {
				t.Fatalf("Register() error = %v, want ErrInvalidArgument", err)
			}
			if r.Len() != 0 {
				t.Errorf("Len() = %d after rejected Register", r.Len())
			}

			var buf bytes.Buffer
			if err := Encode(&buf, []Binding{NewBinding(chord, act)}, FormatTOML); err == nil {
				t.Error("Encode() should reject an action that does not survive decoding")
			}
		})
	}
}

func TestExportedTOMLMatchesConfigTables(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, sampleBindings(t)[:1], FormatTOML); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if !strings.Contains(buf.String(), "[[bindings]]") {
		t.Errorf("Encode() output has no [[bindings]] table:\n%s", buf.String())
	}
}
