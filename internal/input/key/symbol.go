package key

import (
	"fmt"
	"strings"
	"unicode"
)

// Common key symbols, named after their X11 keysyms.
const (
	SymReturn    = "Return"
	SymEscape    = "Escape"
	SymTab       = "Tab"
	SymBackSpace = "BackSpace"
	SymDelete    = "Delete"
	SymInsert    = "Insert"
	SymHome      = "Home"
	SymEnd       = "End"
	SymPageUp    = "Prior"
	SymPageDown  = "Next"
	SymUp        = "Up"
	SymDown      = "Down"
	SymLeft      = "Left"
	SymRight     = "Right"
	SymSpace     = "space"
	SymPeriod    = "period"
	SymComma     = "comma"
	SymPrint     = "Print"
)

// symbolAliases maps lowercase names to canonical keysyms.
var symbolAliases = map[string]string{
	"return":      SymReturn,
	"enter":       SymReturn,
	"cr":          SymReturn,
	"escape":      SymEscape,
	"esc":         SymEscape,
	"tab":         SymTab,
	"backspace":   SymBackSpace,
	"bs":          SymBackSpace,
	"delete":      SymDelete,
	"del":         SymDelete,
	"insert":      SymInsert,
	"ins":         SymInsert,
	"home":        SymHome,
	"end":         SymEnd,
	"prior":       SymPageUp,
	"pageup":      SymPageUp,
	"pgup":        SymPageUp,
	"next":        SymPageDown,
	"pagedown":    SymPageDown,
	"pgdn":        SymPageDown,
	"up":          SymUp,
	"down":        SymDown,
	"left":        SymLeft,
	"right":       SymRight,
	"space":       SymSpace,
	" ":           SymSpace,
	"period":      SymPeriod,
	".":           SymPeriod,
	"comma":       SymComma,
	",":           SymComma,
	"print":       SymPrint,
	"printscreen": SymPrint,
	"minus":       "minus",
	"-":           "minus",
	"equal":       "equal",
	"=":           "equal",
	"slash":       "slash",
	"/":           "slash",
	"backslash":   "backslash",
	"\\":          "backslash",
	"semicolon":   "semicolon",
	";":           "semicolon",
	"apostrophe":  "apostrophe",
	"'":           "apostrophe",
	"grave":       "grave",
	"`":           "grave",

	"bracketleft":  "bracketleft",
	"[":            "bracketleft",
	"bracketright": "bracketright",
	"]":            "bracketright",
	"plus":         "plus",
	"+":            "plus",
}

func init() {
	for i := 1; i <= 24; i++ {
		name := fmt.Sprintf("F%d", i)
		symbolAliases[strings.ToLower(name)] = name
	}
}

// CanonicalSymbol normalizes a key symbol name.
//
// Known names and aliases are matched case-insensitively ("enter" and
// "RETURN" both yield "Return"). Single letters are lowercased and
// reported as shifted when given in upper case. Any other name made of
// letters, digits and underscores is taken verbatim as a keysym, so
// vendor symbols like "XF86AudioRaiseVolume" pass through.
func CanonicalSymbol(name string) (sym string, shifted bool, err error) {
	if name == "" {
		return "", false, ErrInvalidKey
	}
	if name != " " {
		name = strings.TrimSpace(name)
		if name == "" {
			return "", false, ErrInvalidKey
		}
	}

	if canonical, ok := symbolAliases[strings.ToLower(name)]; ok {
		return canonical, false, nil
	}

	runes := []rune(name)
	if len(runes) == 1 {
		r := runes[0]
		if !unicode.IsPrint(r) {
			return "", false, fmt.Errorf("%w: unprintable symbol %q", ErrInvalidKey, r)
		}
		if unicode.IsUpper(r) {
			return string(unicode.ToLower(r)), true, nil
		}
		return name, false, nil
	}

	for _, r := range name {
		if !(unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_') {
			return "", false, fmt.Errorf("%w: %q", ErrInvalidKey, name)
		}
	}
	return name, false, nil
}

// Digit returns the key symbol for a single decimal digit.
func Digit(n int) (string, error) {
	if n < 0 || n > 9 {
		return "", fmt.Errorf("%w: digit %d out of range", ErrInvalidKey, n)
	}
	return string(rune('0' + n)), nil
}
