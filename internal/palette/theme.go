package palette

// Layout geometry shared by every tiling layout.
const (
	BorderWidth = 1
	Margin      = 16
)

// Theme holds the colors the window manager paints with.
type Theme struct {
	// Layout borders.
	BorderWidth  int
	Margin       int
	BorderNormal string
	BorderFocus  string

	// Bar.
	BarBackground string
	Foreground    string

	// Group box.
	GroupBox GroupBoxTheme
}

// GroupBoxTheme holds the group indicator colors.
type GroupBoxTheme struct {
	BlockHighlightText string
	Active             string
	ThisCurrentScreen  string
	ThisScreen         string
	OtherScreen        string
	Urgent             string
}

// Theme derives the window-manager theme from the palette.
func (p Palette) Theme() Theme {
	return Theme{
		BorderWidth:   BorderWidth,
		Margin:        Margin,
		BorderNormal:  p[0],
		BorderFocus:   p[6],
		BarBackground: p[0],
		Foreground:    p[7],
		GroupBox: GroupBoxTheme{
			BlockHighlightText: p[10],
			Active:             p[7],
			ThisCurrentScreen:  p[13],
			ThisScreen:         p[14],
			OtherScreen:        p[12],
			Urgent:             p[9],
		},
	}
}
