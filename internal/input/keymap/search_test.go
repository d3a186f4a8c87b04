package keymap

import (
	"testing"

	"github.com/dshills/tilekeys/internal/input/key"
)

func TestSearch(t *testing.T) {
	bindings := DefaultBindings(DefaultOptionsFor(key.ModSuper))

	tests := []struct {
		name  string
		query string
		first string
	}{
		{"description word", "fullscreen", "super+f"},
		{"action text", "shuffle_up", "super+shift+k"},
		{"chord text", "super+Tab", "super+Tab"},
		{"case insensitive", "KILL", "super+shift+c"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results := Search(bindings, tt.query, 0)
			if len(results) == 0 {
				t.Fatalf("Search(%q) returned no results", tt.query)
			}
			if got := results[0].Binding.Chord.String(); got != tt.first {
				t.Errorf("Search(%q) first = %s, want %s", tt.query, got, tt.first)
			}
		})
	}
}

func TestSearchNoMatch(t *testing.T) {
	bindings := DefaultBindings(DefaultOptionsFor(key.ModSuper))
	if results := Search(bindings, "zzzzqqq", 0); len(results) != 0 {
		t.Errorf("expected no results, got %d", len(results))
	}
}

func TestSearchEmptyQueryAndLimit(t *testing.T) {
	bindings := DefaultBindings(DefaultOptionsFor(key.ModSuper))

	all := Search(bindings, "  ", 0)
	if len(all) != len(bindings) {
		t.Fatalf("empty query returned %d results, want %d", len(all), len(bindings))
	}
	for i, r := range all {
		if r.Binding.Chord != bindings[i].Chord || r.Score != 0 {
			t.Errorf("result %d = %v score %d, want %v score 0", i, r.Binding.Chord, r.Score, bindings[i].Chord)
		}
	}

	if got := Search(bindings, "layout", 3); len(got) != 3 {
		t.Errorf("limit 3 returned %d results", len(got))
	}
}

func TestSearchMatchesIndices(t *testing.T) {
	b := mustBind(t, "super+h", "host:layout.left").WithDescription("focus left")
	results := Search([]Binding{b}, "fl", 0)
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	runes := []rune(results[0].Text)
	for i, idx := range results[0].Matches {
		want := []rune("fl")[i]
		if got := runes[idx]; got != want {
			t.Errorf("match %d at %d is %q, want %q", i, idx, got, want)
		}
	}
}
