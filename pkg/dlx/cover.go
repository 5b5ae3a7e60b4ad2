package dlx

// cover removes the column owning id from the master ring, then detaches
// every row in that column's vertical ring from the vertical rings of its
// other three columns. Link values inside detached nodes are left intact,
// which is what makes uncover an exact inverse.
func (m *Matrix) cover(id int32) {
	h := m.nodes[id].head
	left, right := m.nodes[h].left, m.nodes[h].right
	m.nodes[right].left = left
	m.nodes[left].right = right

	for i := m.nodes[h].down; i != h; i = m.nodes[i].down {
		for j := m.nodes[i].right; j != i; j = m.nodes[j].right {
			m.nodes[m.nodes[j].down].up = m.nodes[j].up
			m.nodes[m.nodes[j].up].down = m.nodes[j].down
		}
	}
}

// uncover is the exact structural inverse of cover: rows are reattached
// bottom-to-top and, within each row, right-to-left, so nodes reappear in
// the reverse of their removal order. Callers must uncover in exact
// reverse of their cover sequence; the LIFO discipline is mandatory.
func (m *Matrix) uncover(id int32) {
	h := m.nodes[id].head
	for i := m.nodes[h].up; i != h; i = m.nodes[i].up {
		for j := m.nodes[i].left; j != i; j = m.nodes[j].left {
			m.nodes[m.nodes[j].down].up = j
			m.nodes[m.nodes[j].up].down = j
		}
	}
	m.nodes[m.nodes[h].right].left = h
	m.nodes[m.nodes[h].left].right = h
}

// empty reports whether the master ring holds no active columns, i.e.
// every constraint is satisfied.
func (m *Matrix) empty() bool { return m.nodes[rootID].right == rootID }

// find scans the active columns for the node carrying the placement
// triple (r, c, digit), all 0-indexed. It returns -1 when the placement's
// column was already covered or the triple never existed, which signals
// an invalid clue to the caller.
func (m *Matrix) find(r, c, digit int) int32 {
	for h := m.nodes[rootID].right; h != rootID; h = m.nodes[h].right {
		for id := m.nodes[h].down; id != h; id = m.nodes[id].down {
			nd := &m.nodes[id]
			if int(nd.row) == r && int(nd.col) == c && int(nd.digit) == digit {
				return id
			}
		}
	}
	return -1
}

// pickColumn returns the active column with the fewest candidate rows and
// that count, ties broken by master-ring order. Choosing the shortest
// column keeps the branching factor minimal.
func (m *Matrix) pickColumn() (int32, int) {
	best := rootID
	bestCount := -1
	for h := m.nodes[rootID].right; h != rootID; h = m.nodes[h].right {
		count := 0
		for id := m.nodes[h].down; id != h; id = m.nodes[id].down {
			count++
		}
		if bestCount == -1 || count < bestCount {
			best = h
			bestCount = count
		}
	}
	return best, bestCount
}
