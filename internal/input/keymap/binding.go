package keymap

import (
	"fmt"

	"github.com/dshills/tilekeys/internal/action"
	"github.com/dshills/tilekeys/internal/input/key"
)

// Binding represents a single chord-to-action mapping.
type Binding struct {
	// Chord is the key combination that triggers this binding.
	Chord key.Chord

	// Action is the side effect to request when the chord is pressed.
	Action action.Action

	// Description provides documentation for the binding.
	Description string

	// Category groups bindings for display purposes.
	Category string
}

// NewBinding creates a new binding with the given chord and action.
func NewBinding(chord key.Chord, act action.Action) Binding {
	return Binding{
		Chord:  chord,
		Action: act,
	}
}

// Bind parses a chord specification and an action text into a binding.
func Bind(spec, act string) (Binding, error) {
	chord, err := key.Parse(spec)
	if err != nil {
		return Binding{}, fmt.Errorf("parsing keys %q: %w", spec, err)
	}
	a, err := action.Parse(act)
	if err != nil {
		return Binding{}, fmt.Errorf("parsing action %q: %w", act, err)
	}
	return NewBinding(chord, a), nil
}

// WithDescription sets the description for this binding.
func (b Binding) WithDescription(desc string) Binding {
	b.Description = desc
	return b
}

// WithCategory sets the category for this binding.
func (b Binding) WithCategory(category string) Binding {
	b.Category = category
	return b
}

// Validate checks that the binding has a chord and a well-formed action.
func (b Binding) Validate() error {
	if b.Chord.IsZero() {
		return fmt.Errorf("%w: empty chord", ErrInvalidBinding)
	}
	if err := b.Action.Validate(); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrInvalidBinding, b.Chord, err)
	}
	return nil
}

// String returns a short form like "super+Return -> spawn:alacritty".
func (b Binding) String() string {
	return b.Chord.String() + " -> " + b.Action.String()
}

// BindingCategory represents a category of bindings for display.
type BindingCategory struct {
	Name     string
	Bindings []Binding
}

// GroupByCategory groups bindings by their category, keeping first-seen
// category order.
func GroupByCategory(bindings []Binding) []BindingCategory {
	categoryMap := make(map[string][]Binding)
	order := make([]string, 0)

	for _, b := range bindings {
		cat := b.Category
		if cat == "" {
			cat = "Other"
		}
		if _, exists := categoryMap[cat]; !exists {
			order = append(order, cat)
		}
		categoryMap[cat] = append(categoryMap[cat], b)
	}

	result := make([]BindingCategory, 0, len(order))
	for _, name := range order {
		result = append(result, BindingCategory{
			Name:     name,
			Bindings: categoryMap[name],
		})
	}
	return result
}
