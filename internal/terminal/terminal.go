// Package terminal reads key chords from an interactive terminal and
// draws a small status area. It backs the listen command.
package terminal

import (
	"context"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/tilekeys/internal/input/key"
)

// Terminal wraps a tcell screen.
type Terminal struct {
	screen tcell.Screen
	mu     sync.Mutex

	// quit ends the chord stream.
	quit tcell.Key

	// onSkip is called for key events without a chord equivalent.
	onSkip func(ev *tcell.EventKey, err error)
}

// Option configures a Terminal.
type Option func(*Terminal)

// WithQuitKey sets the key that ends the chord stream. Default Ctrl+C.
func WithQuitKey(k tcell.Key) Option {
	return func(t *Terminal) {
		t.quit = k
	}
}

// WithSkipHandler sets a callback for key events that do not convert.
func WithSkipHandler(fn func(ev *tcell.EventKey, err error)) Option {
	return func(t *Terminal) {
		t.onSkip = fn
	}
}

// New creates a terminal on the controlling tty.
func New(opts ...Option) (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return NewWithScreen(screen, opts...), nil
}

// NewWithScreen creates a terminal on an existing screen. Tests pass a
// simulation screen.
func NewWithScreen(screen tcell.Screen, opts ...Option) *Terminal {
	t := &Terminal{screen: screen, quit: tcell.KeyCtrlC}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Init initializes the screen.
func (t *Terminal) Init() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.screen.Init(); err != nil {
		return err
	}
	t.screen.HideCursor()
	return nil
}

// Shutdown restores the terminal. It also unblocks Chords.
func (t *Terminal) Shutdown() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Fini()
}

// Size returns the screen dimensions.
func (t *Terminal) Size() (int, int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.screen.Size()
}

// Chords converts key events to chords until the quit key is pressed,
// ctx is done or the screen is shut down. The returned channel is closed
// when the stream ends. Resize events redraw the screen.
func (t *Terminal) Chords(ctx context.Context) <-chan key.Chord {
	out := make(chan key.Chord)
	go func() {
		defer close(out)
		for {
			ev := t.screen.PollEvent()
			if ev == nil {
				return
			}

			switch e := ev.(type) {
			case *tcell.EventKey:
				if e.Key() == t.quit {
					return
				}
				chord, err := key.FromTcell(e)
				if err != nil {
					if t.onSkip != nil {
						t.onSkip(e, err)
					}
					continue
				}
				select {
				case out <- chord:
				case <-ctx.Done():
					return
				}

			case *tcell.EventResize:
				t.mu.Lock()
				t.screen.Sync()
				t.mu.Unlock()
			}

			if ctx.Err() != nil {
				return
			}
		}
	}()
	return out
}

// Status replaces the screen contents with lines, one per row, clipped
// to the screen size.
func (t *Terminal) Status(lines ...string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Clear()
	width, height := t.screen.Size()
	for y, line := range lines {
		if y >= height {
			break
		}
		style := tcell.StyleDefault
		if y == 0 {
			style = style.Bold(true)
		}
		x := 0
		for _, r := range line {
			if x >= width {
				break
			}
			t.screen.SetContent(x, y, r, nil, style)
			x++
		}
	}
	t.screen.Show()
}
