package app

import (
	"bufio"
	"context"
	"io"
	"strings"

	"github.com/rs/zerolog"

	"github.com/dshills/tilekeys/internal/input/key"
)

// ReadChords parses one chord specification per line of r and sends the
// chords on the returned channel, which is closed at end of input or when
// ctx is done. Blank lines and lines starting with '#' are skipped;
// unparsable lines are logged and skipped.
func ReadChords(ctx context.Context, r io.Reader, log zerolog.Logger) <-chan key.Chord {
	out := make(chan key.Chord)
	go func() {
		defer close(out)

		scanner := bufio.NewScanner(r)
		lineNo := 0
		for scanner.Scan() {
			lineNo++
			line := strings.TrimSpace(scanner.Text())
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			chord, err := key.Parse(line)
			if err != nil {
				log.Warn().Err(err).Int("line", lineNo).Msg("skipping chord")
				continue
			}
			select {
			case out <- chord:
			case <-ctx.Done():
				return
			}
		}
		if err := scanner.Err(); err != nil {
			log.Warn().Err(err).Msg("reading chords")
		}
	}()
	return out
}
