package key

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
)

// tcellSymbols maps tcell special keys to canonical symbols.
// Control-letter aliases (KeyCtrlI for Tab, ...) share values with the
// entries below and are resolved by this table first.
var tcellSymbols = map[tcell.Key]string{
	tcell.KeyEnter:      SymReturn,
	tcell.KeyEscape:     SymEscape,
	tcell.KeyTab:        SymTab,
	tcell.KeyBacktab:    SymTab,
	tcell.KeyBackspace:  SymBackSpace,
	tcell.KeyBackspace2: SymBackSpace,
	tcell.KeyDelete:     SymDelete,
	tcell.KeyInsert:     SymInsert,
	tcell.KeyHome:       SymHome,
	tcell.KeyEnd:        SymEnd,
	tcell.KeyPgUp:       SymPageUp,
	tcell.KeyPgDn:       SymPageDown,
	tcell.KeyUp:         SymUp,
	tcell.KeyDown:       SymDown,
	tcell.KeyLeft:       SymLeft,
	tcell.KeyRight:      SymRight,
	tcell.KeyPrint:      SymPrint,
}

// convertTcellMod converts tcell modifiers to a Modifier set.
// Terminals report the logo key as Meta.
func convertTcellMod(m tcell.ModMask) Modifier {
	var mods Modifier
	if m&tcell.ModShift != 0 {
		mods = mods.With(ModShift)
	}
	if m&tcell.ModCtrl != 0 {
		mods = mods.With(ModControl)
	}
	if m&tcell.ModAlt != 0 {
		mods = mods.With(ModAlt)
	}
	if m&tcell.ModMeta != 0 {
		mods = mods.With(ModSuper)
	}
	return mods
}

// FromTcell converts a terminal key event to a chord.
// Returns an error for keys that have no symbol equivalent.
func FromTcell(ev *tcell.EventKey) (Chord, error) {
	if ev == nil {
		return Chord{}, ErrEmptyChord
	}
	mods := convertTcellMod(ev.Modifiers())
	k := ev.Key()

	if k == tcell.KeyBacktab {
		mods = mods.With(ModShift)
	}

	if k == tcell.KeyRune {
		return NewChordWith(mods, string(ev.Rune()))
	}

	if sym, ok := tcellSymbols[k]; ok {
		return NewChordWith(mods, sym)
	}

	if k >= tcell.KeyF1 && k <= tcell.KeyF24 {
		return NewChordWith(mods, fmt.Sprintf("F%d", int(k-tcell.KeyF1)+1))
	}

	if k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ {
		letter := string(rune('a' + int(k-tcell.KeyCtrlA)))
		return NewChordWith(mods.With(ModControl), letter)
	}

	if k == tcell.KeyCtrlSpace {
		return NewChordWith(mods.With(ModControl), SymSpace)
	}

	return Chord{}, fmt.Errorf("%w: unsupported terminal key %d", ErrInvalidKey, k)
}
