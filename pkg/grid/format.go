package grid

import (
	"fmt"
	"io"
	"strings"
)

// UnsolvedBanner is written in place of a grid for puzzles that could not
// be solved, keeping batch output aligned with its input order.
const UnsolvedBanner = "+++++ Could not solve puzzle. +++++"

// Write formats the grid as comma-separated rows, one row per line.
func Write(w io.Writer, g Grid) error {
	var b strings.Builder
	for _, row := range g {
		for j, v := range row {
			if j > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "%d", v)
		}
		b.WriteByte('\n')
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// String returns the comma-separated form of the grid.
func (g Grid) String() string {
	var b strings.Builder
	_ = Write(&b, g)
	return b.String()
}
