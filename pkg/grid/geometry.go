package grid

// Geometry describes the rectangular box partition of a supported grid
// size. Boxes span BoxRows rows and BoxCols columns, so a grid contains
// (Size/BoxRows)*(Size/BoxCols) boxes, each holding Size cells.
type Geometry struct {
	Size    int
	BoxRows int
	BoxCols int
}

// geometries is the fixed partition table. 9 uses the classic 3x3 boxes;
// 10 uses tall 5x2 boxes; 12 uses wide 3x4 boxes; 16 uses 4x4.
var geometries = map[int]Geometry{
	9:  {Size: 9, BoxRows: 3, BoxCols: 3},
	10: {Size: 10, BoxRows: 5, BoxCols: 2},
	12: {Size: 12, BoxRows: 3, BoxCols: 4},
	16: {Size: 16, BoxRows: 4, BoxCols: 4},
}

// Sizes lists the supported grid sizes in ascending order.
func Sizes() []int { return []int{9, 10, 12, 16} }

// Supported reports whether size has a box geometry.
func Supported(size int) bool {
	_, ok := geometries[size]
	return ok
}

// GeometryFor returns the box geometry for size, or ErrUnsupportedSize
// for any size outside the fixed table.
func GeometryFor(size int) (Geometry, error) {
	geo, ok := geometries[size]
	if !ok {
		return Geometry{}, ErrUnsupportedSize
	}
	return geo, nil
}

// BoxIndex returns the index of the box containing cell (r, c), both
// 0-indexed. Indices run down each band of boxes before moving right,
// matching the constraint-column layout of the exact-cover matrix.
func (geo Geometry) BoxIndex(r, c int) int {
	return r/geo.BoxRows + (c/geo.BoxCols)*geo.BoxCols
}
