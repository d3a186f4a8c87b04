package palette

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func paletteLines(n int) string {
	var b strings.Builder
	for i := 0; i < n; i++ {
		fmt.Fprintf(&b, "#%02x%02x%02x\n", i, i*2, i*3)
	}
	return b.String()
}

func writePalette(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "colors")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writePalette(t, paletteLines(16))

	p, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "#000000", p.Color(0))
	assert.Equal(t, "#0e1c2a", p.Color(14))
	assert.Equal(t, "", p.Color(15))
	assert.Equal(t, "", p.Color(-1))
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing"))

	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.True(t, os.IsNotExist(cfgErr.Err))
}

func TestReadTruncated(t *testing.T) {
	_, err := Read(strings.NewReader(paletteLines(14)), "colors")

	require.ErrorIs(t, err, ErrTruncated)
	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "colors", cfgErr.Path)
	assert.Equal(t, 14, cfgErr.Line)
}

func TestReadInvalidColor(t *testing.T) {
	lines := strings.Split(paletteLines(15), "\n")
	lines[3] = "not-a-color"

	_, err := Read(strings.NewReader(strings.Join(lines, "\n")), "colors")

	require.ErrorIs(t, err, ErrInvalidColor)
	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, 4, cfgErr.Line)
	assert.Contains(t, err.Error(), "colors:4")
}

func TestReadBlankLine(t *testing.T) {
	lines := strings.Split(paletteLines(15), "\n")
	lines[0] = ""

	_, err := Read(strings.NewReader(strings.Join(lines, "\n")), "colors")
	assert.ErrorIs(t, err, ErrInvalidColor)
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"#1A1B26", "#1a1b26", false},
		{"1a1b26", "#1a1b26", false},
		{"#fff", "#ffffff", false},
		{"", "", true},
		{"#12345", "", true},
		{"#gggggg", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Normalize(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidColor)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTheme(t *testing.T) {
	var p Palette
	for i := range p {
		p[i] = fmt.Sprintf("#0000%02x", i)
	}

	theme := p.Theme()
	assert.Equal(t, BorderWidth, theme.BorderWidth)
	assert.Equal(t, Margin, theme.Margin)
	assert.Equal(t, p[0], theme.BorderNormal)
	assert.Equal(t, p[6], theme.BorderFocus)
	assert.Equal(t, p[0], theme.BarBackground)
	assert.Equal(t, p[7], theme.Foreground)
	assert.Equal(t, GroupBoxTheme{
		BlockHighlightText: p[10],
		Active:             p[7],
		ThisCurrentScreen:  p[13],
		ThisScreen:         p[14],
		OtherScreen:        p[12],
		Urgent:             p[9],
	}, theme.GroupBox)
}
