package dlx

import (
	"context"

	"github.com/mmorckos/sudoku/pkg/grid"
)

// search runs one step of Algorithm X: pick the shortest active column,
// try each of its candidate rows in ring order, and recurse on the
// reduced matrix. Covers applied for a candidate are always unwound
// before the next candidate or before returning, so each stack frame
// leaves the matrix exactly as it found it.
//
// ctx is checked between steps; cancellation propagates as an error after
// the frame has restored its own covers.
func (m *Matrix) search(ctx context.Context) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if m.empty() {
		return true, nil
	}

	col, count := m.pickColumn()
	if count < 1 {
		// Exhausted: a constraint has no remaining candidates.
		return false, nil
	}
	m.explored += count

	m.cover(col)
	solved := false
	var err error
	for r := m.nodes[col].down; r != col && !solved; r = m.nodes[r].down {
		m.sol = append(m.sol, r)
		for j := m.nodes[r].right; j != r; j = m.nodes[j].right {
			m.cover(j)
		}

		solved, err = m.search(ctx)
		if !solved {
			m.sol = m.sol[:len(m.sol)-1]
		}

		for j := m.nodes[r].left; j != r; j = m.nodes[j].left {
			m.uncover(j)
		}
		if err != nil {
			break
		}
	}
	m.uncover(col)
	return solved, err
}

// loadClues locates and covers the rows for every non-zero input cell in
// row-major scan order, pushing each clue node onto the solution stack.
// The mechanics per clue are identical to one search step, executed
// iteratively. If a clue cannot be located, every cover applied so far is
// unwound before the error is returned, leaving the matrix pristine.
func (m *Matrix) loadClues(g grid.Grid) ([]int32, error) {
	var clues []int32
	for i := 0; i < m.size; i++ {
		for j := 0; j < m.size; j++ {
			v := g[i][j]
			if v == 0 {
				continue
			}
			id := m.find(i, j, v-1)
			if id < 0 {
				m.unloadClues(clues)
				m.sol = m.sol[:0]
				return nil, &ClueError{Row: i, Col: j, Digit: v}
			}
			m.cover(id)
			for r := m.nodes[id].right; r != id; r = m.nodes[r].right {
				m.cover(r)
			}
			clues = append(clues, id)
			m.sol = append(m.sol, id)
		}
	}
	return clues, nil
}

// unloadClues uncovers the pre-loaded clues in exact reverse of their
// load order, mirroring the cover sequence of loadClues per the LIFO
// contract. Called after the search concludes regardless of outcome.
func (m *Matrix) unloadClues(clues []int32) {
	for i := len(clues) - 1; i >= 0; i-- {
		id := clues[i]
		for j := m.nodes[id].left; j != id; j = m.nodes[j].left {
			m.uncover(j)
		}
		m.uncover(id)
	}
}
