package dlx

import (
	"fmt"

	"github.com/mmorckos/sudoku/pkg/grid"
)

// node is the atomic unit of the matrix. The four directional links and
// the column-header back-reference are arena indices; they associate
// nodes without owning them. Non-header nodes carry the placement triple
// (row, col, digit) they stand for, with digit 0-based.
type node struct {
	left, right, up, down int32
	head                  int32 // owning column header; headers point at themselves
	row, col, digit       int16
	header                bool
}

// rootID is the arena index of the master-ring sentinel.
const rootID int32 = 0

// Matrix is the exact-cover incidence structure for one grid size. It is
// built once, reused across puzzles, and must not be shared between
// goroutines: the cover/uncover discipline assumes a single writer.
type Matrix struct {
	size int
	geo  grid.Geometry

	// Constraint-column offsets. Columns [rowOff, colOff) hold row-digit
	// constraints, then column-digit, cell-occupancy, and box-digit
	// blocks, each n*n columns wide.
	rowOff, colOff, cellOff, boxOff int
	maxCols, maxRows                int

	nodes []node

	sol      []int32 // chosen nodes, chronological; doubles as the undo journal
	solved   bool
	explored int
}

// New builds the full exact-cover matrix for the given grid size.
// Supported sizes and their box partitions come from the grid geometry
// table; any other size returns grid.ErrUnsupportedSize. The build is
// performed once per Matrix and the structure is never rebuilt.
func New(size int) (*Matrix, error) {
	geo, err := grid.GeometryFor(size)
	if err != nil {
		return nil, fmt.Errorf("build matrix: %w", err)
	}

	n := size
	block := n * n
	m := &Matrix{
		size:    n,
		geo:     geo,
		rowOff:  0,
		colOff:  block,
		cellOff: block * 2,
		boxOff:  block * 3,
		maxCols: block * 4,
		maxRows: block * n,
	}

	// Root sentinel occupies arena slot 0 with both rings closed on itself.
	m.nodes = make([]node, 1, 1+4*m.maxRows+m.maxCols)
	m.nodes[rootID] = node{header: true}

	// One logical row per (cell, digit) placement: four nodes, one per
	// constraint family, linked into a horizontal 4-ring. Vertical links
	// are threaded afterwards, column by column, in row-id order.
	colRows := make([][]int32, m.maxCols)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			for k := 0; k < n; k++ {
				cols := [4]int{
					m.rowOff + i*n + k,
					m.colOff + j*n + k,
					m.cellOff + i*n + j,
					m.boxOff + geo.BoxIndex(i, j)*n + k,
				}
				var ids [4]int32
				for x, c := range cols {
					id := int32(len(m.nodes))
					m.nodes = append(m.nodes, node{row: int16(i), col: int16(j), digit: int16(k)})
					ids[x] = id
					colRows[c] = append(colRows[c], id)
				}
				for x := range ids {
					m.nodes[ids[x]].right = ids[(x+1)%4]
					m.nodes[ids[x]].left = ids[(x+3)%4]
				}
			}
		}
	}

	for c, rows := range colRows {
		if len(rows) == 0 {
			return nil, fmt.Errorf("build matrix: column %d: %w", c, ErrEmptyColumn)
		}
		m.addColumn(rows)
	}
	return m, nil
}

// addColumn creates a header, threads the column's vertical ring in row
// order, and appends the header to the end of the master horizontal ring
// so that headers stay in column-index order.
func (m *Matrix) addColumn(rows []int32) {
	h := int32(len(m.nodes))
	m.nodes = append(m.nodes, node{header: true, head: h})

	prev := h
	for _, id := range rows {
		m.nodes[id].head = h
		m.nodes[id].up = prev
		m.nodes[prev].down = id
		prev = id
	}
	m.nodes[prev].down = h
	m.nodes[h].up = prev

	last := m.nodes[rootID].left
	m.nodes[h].left = last
	m.nodes[h].right = rootID
	m.nodes[last].right = h
	m.nodes[rootID].left = h
}
