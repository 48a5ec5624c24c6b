package segmentation

import (
	"github.com/pkg/errors"
)

// MaxLeafLayoutCells caps how many cells a LeafLayout will allocate. The grid
// index space allows up to 2^31-1 cells, far more than a dense table can
// reasonably hold; partition calls whose grid exceeds this cap fail rather
// than degrade to running without the requested table.
const MaxLeafLayoutCells = int64(1) << 28

const unmappedCell = int32(-1)

// LeafLayout is a caller owned dense table from linear cell index to the 0
// based index of the cluster that cell produced in the most recent
// VoxelGridPartition call that received it. Every such call resets the whole
// table before repopulating it; nothing accumulates across calls. A LeafLayout
// must not be shared by concurrent partition calls.
type LeafLayout struct {
	cells []int32
}

// NewLeafLayout returns an empty layout ready to be passed to
// VoxelGridPartition.
func NewLeafLayout() *LeafLayout {
	return &LeafLayout{}
}

// Len returns the number of cells in the table, the full grid size of the
// last partition call.
func (l *LeafLayout) Len() int {
	return len(l.cells)
}

// ClusterAt returns the cluster index produced by the cell at the given
// linear index. The bool is false when that cell produced no cluster or the
// index is out of range.
func (l *LeafLayout) ClusterAt(i int) (int, bool) {
	if i < 0 || i >= len(l.cells) || l.cells[i] == unmappedCell {
		return 0, false
	}
	return int(l.cells[i]), true
}

func (l *LeafLayout) reset(size int64) error {
	if size > MaxLeafLayoutCells {
		return errors.Errorf("cannot allocate leaf layout for %d cells; voxel size too small for the data extent", size)
	}
	// entries surviving from an earlier call must go back to unmapped
	for i := range l.cells {
		l.cells[i] = unmappedCell
	}
	if int64(len(l.cells)) >= size {
		l.cells = l.cells[:size]
		return nil
	}
	grown := make([]int32, size)
	for i := range grown {
		grown[i] = unmappedCell
	}
	l.cells = grown
	return nil
}

func (l *LeafLayout) set(cell uint32, cluster int) {
	l.cells[cell] = int32(cluster)
}
