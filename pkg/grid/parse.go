package grid

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

var (
	// ErrIncompletePuzzle is returned when the input ends in the middle of
	// a grid-size-aligned block, or a line holds the wrong number of cells.
	ErrIncompletePuzzle = errors.New("incomplete puzzle")

	// ErrBadToken is returned for input that is not a digit in 0..size.
	ErrBadToken = errors.New("invalid cell value")
)

// isDelimiter reports whether r separates cell values. Puzzle files may
// mix spaces, commas, semicolons, and periods freely.
func isDelimiter(r rune) bool {
	return r == ' ' || r == '\t' || r == ',' || r == ';' || r == '.'
}

// ParseAll reads puzzles of the given size from r. Each non-blank line
// holds one grid row of delimited digits; every size consecutive rows form
// one puzzle. Blank lines are ignored, so puzzles may be visually
// separated. Returns every parsed puzzle or the first format error.
func ParseAll(r io.Reader, size int) ([]Grid, error) {
	var (
		puzzles []Grid
		current Grid
		lineNo  int
	)

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}

		row, err := parseRow(line, size)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		current = append(current, row)

		if len(current) == size {
			puzzles = append(puzzles, current)
			current = nil
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	if len(current) != 0 {
		return nil, fmt.Errorf("%w: trailing block has %d of %d rows", ErrIncompletePuzzle, len(current), size)
	}
	return puzzles, nil
}

// parseRow splits one line into exactly size cell values.
func parseRow(line string, size int) ([]int, error) {
	fields := strings.FieldsFunc(line, isDelimiter)
	if len(fields) != size {
		return nil, fmt.Errorf("%w: row has %d cells, want %d", ErrIncompletePuzzle, len(fields), size)
	}
	row := make([]int, size)
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil || v < 0 || v > size {
			return nil, fmt.Errorf("%w: %q", ErrBadToken, f)
		}
		row[i] = v
	}
	return row, nil
}
