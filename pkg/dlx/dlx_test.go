package dlx

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/mmorckos/sudoku/pkg/grid"
)

// mustGrid converts rows of digit runes into a grid, failing the test on
// malformed input. Only usable for sizes up to 9.
func mustGrid(t *testing.T, rows ...string) grid.Grid {
	t.Helper()
	g := make(grid.Grid, len(rows))
	for i, row := range rows {
		g[i] = make([]int, len(row))
		for j, r := range row {
			g[i][j] = int(r - '0')
		}
	}
	if err := g.Check(); err != nil {
		t.Fatalf("test grid: %v", err)
	}
	return g
}

// easyPuzzle and easySolution are a classic 9x9 pair.
func easyPuzzle(t *testing.T) grid.Grid {
	return mustGrid(t,
		"003020600",
		"900305001",
		"001806400",
		"008102900",
		"700000008",
		"006708200",
		"002609500",
		"800203009",
		"005010300",
	)
}

func easySolution(t *testing.T) grid.Grid {
	return mustGrid(t,
		"483921657",
		"967345821",
		"251876493",
		"548132976",
		"729564138",
		"136798245",
		"372689514",
		"814253769",
		"695417382",
	)
}

// snapshot copies the arena so structural restoration can be asserted.
func snapshot(m *Matrix) []node {
	return append([]node(nil), m.nodes...)
}

// checkSolved asserts a complete, conflict-free grid of the given size.
func checkSolved(t *testing.T, g grid.Grid, size int) {
	t.Helper()
	if g.Size() != size {
		t.Fatalf("solution size = %d, want %d", g.Size(), size)
	}
	if n := g.Blanks(); n != 0 {
		t.Fatalf("solution has %d blank cells", n)
	}
	geo, err := grid.GeometryFor(size)
	if err != nil {
		t.Fatal(err)
	}
	if conflicts := grid.Conflicts(g, geo); len(conflicts) != 0 {
		t.Fatalf("solution has conflicts at %v", conflicts)
	}
}

func TestNew(t *testing.T) {
	for _, size := range grid.Sizes() {
		m, err := New(size)
		if err != nil {
			t.Fatalf("New(%d): %v", size, err)
		}
		if m.Size() != size {
			t.Errorf("Size() = %d, want %d", m.Size(), size)
		}
		// 1 root + 4 nodes per placement + 1 header per column.
		want := 1 + 4*size*size*size + 4*size*size
		if len(m.nodes) != want {
			t.Errorf("arena has %d nodes, want %d", len(m.nodes), want)
		}
	}
}

func TestNewUnsupportedSize(t *testing.T) {
	for _, size := range []int{0, 4, 11, 25} {
		if _, err := New(size); !errors.Is(err, grid.ErrUnsupportedSize) {
			t.Errorf("New(%d) = %v, want ErrUnsupportedSize", size, err)
		}
	}
}

func TestRingStructure(t *testing.T) {
	m, err := New(9)
	if err != nil {
		t.Fatal(err)
	}

	// Master ring holds every column header exactly once.
	headers := 0
	for h := m.nodes[rootID].right; h != rootID; h = m.nodes[h].right {
		if !m.nodes[h].header {
			t.Fatalf("non-header node %d on master ring", h)
		}
		headers++
		if headers > m.maxCols {
			t.Fatal("master ring does not close")
		}
	}
	if headers != m.maxCols {
		t.Fatalf("master ring has %d headers, want %d", headers, m.maxCols)
	}

	// Every column's vertical ring holds exactly size candidate rows, and
	// every candidate's horizontal ring closes after four hops.
	for h := m.nodes[rootID].right; h != rootID; h = m.nodes[h].right {
		count := 0
		for id := m.nodes[h].down; id != h; id = m.nodes[id].down {
			count++
			hops := 0
			for j := m.nodes[id].right; j != id; j = m.nodes[j].right {
				hops++
			}
			if hops != 3 {
				t.Fatalf("node %d row ring has %d siblings, want 3", id, hops)
			}
		}
		if count != 9 {
			t.Fatalf("column %d has %d candidates, want 9", h, count)
		}
	}
}

func TestCoverUncoverRestores(t *testing.T) {
	m, err := New(9)
	if err != nil {
		t.Fatal(err)
	}
	before := snapshot(m)

	first := m.nodes[rootID].right
	m.cover(first)
	if reflect.DeepEqual(before, m.nodes) {
		t.Fatal("cover changed nothing")
	}
	m.uncover(first)
	if !reflect.DeepEqual(before, m.nodes) {
		t.Fatal("uncover did not restore the matrix")
	}
}

func TestSolveKnownPuzzle(t *testing.T) {
	m, err := New(9)
	if err != nil {
		t.Fatal(err)
	}
	out, stats, err := m.Solve(context.Background(), easyPuzzle(t))
	if err != nil {
		t.Fatal(err)
	}
	if !out.Equal(easySolution(t)) {
		t.Errorf("solution mismatch:\n%v", out)
	}
	if !m.Solved() {
		t.Error("Solved() = false after a successful solve")
	}
	if stats.Columns <= 0 {
		t.Errorf("stats.Columns = %d, want > 0", stats.Columns)
	}
}

func TestSolveEmptyGrid(t *testing.T) {
	for _, size := range grid.Sizes() {
		m, err := New(size)
		if err != nil {
			t.Fatalf("New(%d): %v", size, err)
		}
		out, _, err := m.Solve(context.Background(), grid.New(size))
		if err != nil {
			t.Fatalf("Solve empty %dx%d: %v", size, size, err)
		}
		checkSolved(t, out, size)
	}
}

func TestSolveRestoresMatrix(t *testing.T) {
	m, err := New(9)
	if err != nil {
		t.Fatal(err)
	}
	before := snapshot(m)

	want := easySolution(t)
	for i := 0; i < 3; i++ {
		out, _, err := m.Solve(context.Background(), easyPuzzle(t))
		if err != nil {
			t.Fatalf("solve %d: %v", i, err)
		}
		if !out.Equal(want) {
			t.Fatalf("solve %d: solution mismatch", i)
		}
	}
	if !reflect.DeepEqual(before, m.nodes) {
		t.Fatal("matrix structure changed after repeated solves")
	}
}

func TestSolveForcedCell(t *testing.T) {
	m, err := New(9)
	if err != nil {
		t.Fatal(err)
	}
	g := easySolution(t)
	g[4][4] = 0

	out, _, err := m.Solve(context.Background(), g)
	if err != nil {
		t.Fatal(err)
	}
	if out[4][4] != easySolution(t)[4][4] {
		t.Errorf("forced cell = %d, want %d", out[4][4], easySolution(t)[4][4])
	}
}

func TestSolveDuplicateClue(t *testing.T) {
	m, err := New(9)
	if err != nil {
		t.Fatal(err)
	}
	before := snapshot(m)

	g := grid.New(9)
	g[0][0] = 5
	g[0][7] = 5 // same digit twice in row 0

	_, _, err = m.Solve(context.Background(), g)
	var clueErr *ClueError
	if !errors.As(err, &clueErr) {
		t.Fatalf("err = %v, want *ClueError", err)
	}
	if clueErr.Row != 0 || clueErr.Col != 7 || clueErr.Digit != 5 {
		t.Errorf("ClueError = %+v, want {0 7 5}", clueErr)
	}
	if !strings.Contains(clueErr.Error(), "row 1, column 8") {
		t.Errorf("ClueError message uses wrong indexing: %q", clueErr.Error())
	}
	if !reflect.DeepEqual(before, m.nodes) {
		t.Fatal("matrix not restored after clue failure")
	}

	// The matrix must remain fully usable.
	out, _, err := m.Solve(context.Background(), easyPuzzle(t))
	if err != nil {
		t.Fatal(err)
	}
	checkSolved(t, out, 9)
}

func TestSolveUnsolvable(t *testing.T) {
	m, err := New(9)
	if err != nil {
		t.Fatal(err)
	}
	before := snapshot(m)

	// Row 0 forces digit 1 into the corner, column 0 forbids it. Each
	// clue is individually consistent, so loading succeeds and the
	// search itself must report exhaustion.
	g := grid.New(9)
	for j := 1; j < 9; j++ {
		g[0][j] = j + 1
	}
	g[3][0] = 1

	_, _, err = m.Solve(context.Background(), g)
	if !errors.Is(err, ErrUnsolvable) {
		t.Fatalf("err = %v, want ErrUnsolvable", err)
	}
	if m.Solved() {
		t.Error("Solved() = true after an unsolvable puzzle")
	}
	if !reflect.DeepEqual(before, m.nodes) {
		t.Fatal("matrix not restored after unsolvable puzzle")
	}
}

func TestSolveSizeMismatch(t *testing.T) {
	m, err := New(9)
	if err != nil {
		t.Fatal(err)
	}
	if _, _, err := m.Solve(context.Background(), grid.New(16)); err == nil {
		t.Fatal("expected error for mismatched grid size")
	}
}

func TestSolveCancelled(t *testing.T) {
	m, err := New(9)
	if err != nil {
		t.Fatal(err)
	}
	before := snapshot(m)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err = m.Solve(ctx, grid.New(9))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if !reflect.DeepEqual(before, m.nodes) {
		t.Fatal("matrix not restored after cancellation")
	}
}

func TestFind(t *testing.T) {
	m, err := New(9)
	if err != nil {
		t.Fatal(err)
	}

	id := m.find(4, 7, 2)
	if id < 0 {
		t.Fatal("find failed on a pristine matrix")
	}
	nd := m.nodes[id]
	if int(nd.row) != 4 || int(nd.col) != 7 || int(nd.digit) != 2 {
		t.Errorf("find returned node (%d,%d,%d), want (4,7,2)", nd.row, nd.col, nd.digit)
	}

	// Covering the placement's columns makes it unfindable.
	m.cover(id)
	for r := m.nodes[id].right; r != id; r = m.nodes[r].right {
		m.cover(r)
	}
	if got := m.find(4, 7, 2); got >= 0 {
		t.Errorf("find located covered placement at %d", got)
	}
	for r := m.nodes[id].left; r != id; r = m.nodes[r].left {
		m.uncover(r)
	}
	m.uncover(id)
}

func TestPickColumnPrefersShortest(t *testing.T) {
	m, err := New(9)
	if err != nil {
		t.Fatal(err)
	}

	// Loading a clue shrinks related columns; the S-heuristic must then
	// pick a column with the minimal candidate count.
	g := grid.New(9)
	g[0][0] = 1
	clues, err := m.loadClues(g)
	if err != nil {
		t.Fatal(err)
	}
	defer func() {
		m.unloadClues(clues)
		m.sol = m.sol[:0]
	}()

	col, count := m.pickColumn()
	if col == rootID {
		t.Fatal("pickColumn returned the root")
	}
	for h := m.nodes[rootID].right; h != rootID; h = m.nodes[h].right {
		n := 0
		for id := m.nodes[h].down; id != h; id = m.nodes[id].down {
			n++
		}
		if n < count {
			t.Fatalf("column %d has %d candidates, below reported minimum %d", h, n, count)
		}
	}
}
