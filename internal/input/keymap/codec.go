package keymap

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/dshills/tilekeys/internal/action"
	"github.com/dshills/tilekeys/internal/input/key"
)

// Format selects the serialization of a binding set.
type Format int

const (
	// FormatTOML writes one [[bindings]] table per binding, the same
	// layout as the extra bindings of the configuration file.
	FormatTOML Format = iota

	// FormatJSON writes {"bindings": [...]}.
	FormatJSON

	// FormatYAML writes a bindings: sequence.
	FormatYAML
)

// String returns the format name.
func (f Format) String() string {
	switch f {
	case FormatTOML:
		return "toml"
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	default:
		return "unknown"
	}
}

// ParseFormat returns the format for a name such as "toml", "json" or
// "yml". A leading dot is ignored so file extensions can be passed.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(name, ".")) {
	case "toml":
		return FormatTOML, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return 0, fmt.Errorf("unknown binding format %q", name)
	}
}

// FormatFromPath picks a format from a file extension, defaulting to TOML.
func FormatFromPath(path string) Format {
	if f, err := ParseFormat(filepath.Ext(path)); err == nil {
		return f
	}
	return FormatTOML
}

// bindingFile is the on-disk structure of a binding set.
type bindingFile struct {
	Bindings []bindingConfig `toml:"bindings" json:"bindings" yaml:"bindings"`
}

// bindingConfig is the on-disk structure of one binding.
type bindingConfig struct {
	Keys        string `toml:"keys" json:"keys" yaml:"keys"`
	Action      string `toml:"action" json:"action" yaml:"action"`
	Description string `toml:"description,omitempty" json:"description,omitempty" yaml:"description,omitempty"`
	Category    string `toml:"category,omitempty" json:"category,omitempty" yaml:"category,omitempty"`
}

// toConfig converts a binding to its serialized form.
func toConfig(b Binding) bindingConfig {
	return bindingConfig{
		Keys:        b.Chord.String(),
		Action:      b.Action.String(),
		Description: b.Description,
		Category:    b.Category,
	}
}

// fromConfig parses a serialized binding.
func fromConfig(bc bindingConfig) (Binding, error) {
	chord, err := key.Parse(bc.Keys)
	if err != nil {
		return Binding{}, fmt.Errorf("keys %q: %w", bc.Keys, err)
	}
	act, err := action.Parse(bc.Action)
	if err != nil {
		return Binding{}, fmt.Errorf("action %q: %w", bc.Action, err)
	}
	return Binding{
		Chord:       chord,
		Action:      act,
		Description: bc.Description,
		Category:    bc.Category,
	}, nil
}

// Encode writes bindings to w in the given format.
func Encode(w io.Writer, bindings []Binding, format Format) error {
	file := bindingFile{Bindings: make([]bindingConfig, 0, len(bindings))}
	for _, b := range bindings {
		if err := b.Validate(); err != nil {
			return err
		}
		file.Bindings = append(file.Bindings, toConfig(b))
	}

	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(file); err != nil {
			return fmt.Errorf("encoding bindings: %w", err)
		}
	case FormatTOML:
		if err := toml.NewEncoder(w).Encode(file); err != nil {
			return fmt.Errorf("encoding bindings: %w", err)
		}
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(file); err != nil {
			return fmt.Errorf("encoding bindings: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("encoding bindings: %w", err)
		}
	default:
		return fmt.Errorf("unknown binding format %d", format)
	}
	return nil
}

// Decode reads a binding set from r. Bindings are returned in file order
// and are not checked for conflicts; pass them to Registry.Reload for that.
func Decode(r io.Reader, format Format) ([]Binding, error) {
	var file bindingFile
	switch format {
	case FormatJSON:
		if err := json.NewDecoder(r).Decode(&file); err != nil {
			return nil, fmt.Errorf("decoding bindings: %w", err)
		}
	case FormatTOML:
		if err := toml.NewDecoder(r).Decode(&file); err != nil {
			return nil, fmt.Errorf("decoding bindings: %w", err)
		}
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(&file); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("decoding bindings: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown binding format %d", format)
	}

	bindings := make([]Binding, 0, len(file.Bindings))
	for i, bc := range file.Bindings {
		b, err := fromConfig(bc)
		if err != nil {
			return nil, fmt.Errorf("binding %d: %w", i, err)
		}
		bindings = append(bindings, b)
	}
	return bindings, nil
}

// LoadFile reads a binding set, choosing the format from the extension.
func LoadFile(path string) ([]Binding, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening binding file: %w", err)
	}
	defer f.Close()

	return Decode(f, FormatFromPath(path))
}

// SaveFile writes a binding set, choosing the format from the extension.
func SaveFile(path string, bindings []Binding) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating binding file: %w", err)
	}
	if err := Encode(f, bindings, FormatFromPath(path)); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("writing binding file: %w", err)
	}
	return nil
}
