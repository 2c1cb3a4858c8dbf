package lang

import (
	"bufio"
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/klauspost/readahead"
)

// Line is one expression read by [ReadLines].
type Line struct {
	Number int    // 1-based line number in the input
	Text   string // expression text without surrounding whitespace
}

// ReadLines reads one expression per line from r. Blank lines and lines
// whose first non-blank character is '#' are skipped.
func ReadLines(ctx context.Context, r io.Reader) ([]Line, error) {
	// Read ahead asynchronously so that decoding overlaps with I/O.
	ra := readahead.NewReader(r)
	defer ra.Close()

	var lines []Line

	sc := bufio.NewScanner(ra)

	for n := 1; sc.Scan(); n++ {
		if err := ctx.Err(); err != nil {
			return nil, ErrReadInput.Wrap(err).With(slog.Int("line", n))
		}

		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		lines = append(lines, Line{Number: n, Text: text})
	}

	if err := sc.Err(); err != nil {
		return nil, ErrReadInput.Wrap(err)
	}

	return lines, nil
}
