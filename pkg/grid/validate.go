package grid

// Cell identifies one grid position, 0-indexed.
type Cell struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Conflicts returns the cells whose value repeats an earlier value in the
// same row, column, or box. A nil result means the clues are mutually
// consistent (the puzzle may still be unsolvable). Blanks never conflict.
func Conflicts(g Grid, geo Geometry) []Cell {
	n := g.Size()
	var out []Cell

	// rows
	for r := 0; r < n; r++ {
		seen := 0
		for c := 0; c < n; c++ {
			v := g[r][c]
			if v == 0 {
				continue
			}
			bit := 1 << v
			if seen&bit != 0 {
				out = append(out, Cell{Row: r, Col: c})
			}
			seen |= bit
		}
	}
	// columns
	for c := 0; c < n; c++ {
		seen := 0
		for r := 0; r < n; r++ {
			v := g[r][c]
			if v == 0 {
				continue
			}
			bit := 1 << v
			if seen&bit != 0 {
				out = append(out, Cell{Row: r, Col: c})
			}
			seen |= bit
		}
	}
	// boxes
	boxes := make([]int, n)
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			v := g[r][c]
			if v == 0 {
				continue
			}
			b := geo.BoxIndex(r, c)
			bit := 1 << v
			if boxes[b]&bit != 0 {
				out = append(out, Cell{Row: r, Col: c})
			}
			boxes[b] |= bit
		}
	}
	return out
}
