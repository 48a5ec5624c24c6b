// Package segmentation implements algorithms that divide point clouds into
// useful pieces.
package segmentation

import (
	"math"
	"sort"

	"github.com/edaniels/golog"
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	pc "github.com/voxelgrid/partition/pointcloud"
)

// VoxelGridConfig configures the regular grid that VoxelGridPartition and
// VoxelDownsample overlay on a point cloud.
type VoxelGridConfig struct {
	// LeafSize is the per axis voxel edge length. All three must be positive.
	LeafSize r3.Vector `json:"leaf_size"`
	// MinPointsPerVoxel drops voxels holding fewer points. Zero means 1.
	MinPointsPerVoxel int `json:"min_points_per_voxel"`
	// Filter optionally restricts the points considered, by named field.
	Filter *pc.FieldFilter `json:"filter,omitempty"`
}

func (cfg *VoxelGridConfig) validate() (r3.Vector, int, error) {
	if cfg.LeafSize.X <= 0 || cfg.LeafSize.Y <= 0 || cfg.LeafSize.Z <= 0 {
		return r3.Vector{}, 0, errors.Errorf("voxel leaf size must be positive on all axes, got %v", cfg.LeafSize)
	}
	minPts := cfg.MinPointsPerVoxel
	if minPts < 1 {
		minPts = 1
	}
	inv := r3.Vector{X: 1. / cfg.LeafSize.X, Y: 1. / cfg.LeafSize.Y, Z: 1. / cfg.LeafSize.Z}
	return inv, minPts, nil
}

// voxelFrame is the integer grid derived from the extent of one input cloud.
// minB and maxB are the cell coordinates of the extent corners, divB the per
// axis cell counts, and divbMul the mixed radix multipliers that flatten a
// 3D cell coordinate into a single linear index.
type voxelFrame struct {
	minB    [3]int32
	divB    [3]int32
	divbMul [3]int32
	inv     r3.Vector
}

// newVoxelFrame derives the grid for the given extent. ok is false when the
// total cell count would not fit 32 bit signed indices.
func newVoxelFrame(minP, maxP, inv r3.Vector) (voxelFrame, bool) {
	// dx/dy/dz truncate the scaled extent toward zero while minB/maxB below
	// floor each corner, so this estimate can undercount the committed cell
	// count by one per axis. The guard is a coarse ceiling, not an exact
	// census of divB.
	dx := int64((maxP.X-minP.X)*inv.X) + 1
	dy := int64((maxP.Y-minP.Y)*inv.Y) + 1
	dz := int64((maxP.Z-minP.Z)*inv.Z) + 1
	// stepwise so the 64 bit product itself cannot overflow
	if dx > math.MaxInt32 || dy > math.MaxInt32 || dz > math.MaxInt32 ||
		dx*dy > math.MaxInt32 || dx*dy*dz > math.MaxInt32 {
		return voxelFrame{}, false
	}

	var f voxelFrame
	f.inv = inv
	f.minB = [3]int32{
		int32(math.Floor(minP.X * inv.X)),
		int32(math.Floor(minP.Y * inv.Y)),
		int32(math.Floor(minP.Z * inv.Z)),
	}
	maxB := [3]int32{
		int32(math.Floor(maxP.X * inv.X)),
		int32(math.Floor(maxP.Y * inv.Y)),
		int32(math.Floor(maxP.Z * inv.Z)),
	}
	f.divB = [3]int32{maxB[0] - f.minB[0] + 1, maxB[1] - f.minB[1] + 1, maxB[2] - f.minB[2] + 1}
	f.divbMul = [3]int32{1, f.divB[0], f.divB[0] * f.divB[1]}
	return f, true
}

func (f *voxelFrame) totalCells() int64 {
	return int64(f.divB[0]) * int64(f.divB[1]) * int64(f.divB[2])
}

func (f *voxelFrame) linearIndex(p r3.Vector) uint32 {
	i := int32(math.Floor(p.X*f.inv.X)) - f.minB[0]
	j := int32(math.Floor(p.Y*f.inv.Y)) - f.minB[1]
	k := int32(math.Floor(p.Z*f.inv.Z)) - f.minB[2]
	return uint32(i*f.divbMul[0] + j*f.divbMul[1] + k*f.divbMul[2])
}

// voxelEntry pairs a linear cell index with a point's original position in
// the input sequence.
type voxelEntry struct {
	idx   uint32
	order uint32
}

// cellRun is a half open range of entries sharing one linear cell index after
// sorting.
type cellRun struct {
	first, last int
}

// voxelIndexing is the per call state shared by the voxel grid operations:
// the grid frame, the sorted index entries, and a snapshot of the input
// points addressable by original order.
type voxelIndexing struct {
	frame   voxelFrame
	entries []voxelEntry
	points  []pc.PointAndData
	minPts  int
}

// indexVoxels runs the bounds, sizing and index assignment stages. It returns
// nil with no error when there is nothing to partition: an empty or fully
// filtered cloud, or a grid too fine for the input extent (the latter is
// logged).
func indexVoxels(cloud pc.PointCloud, cfg VoxelGridConfig, logger golog.Logger) (*voxelIndexing, error) {
	if cloud == nil || cloud.Size() == 0 {
		return nil, nil
	}
	inv, minPts, err := cfg.validate()
	if err != nil {
		return nil, err
	}

	var read pc.FieldReader
	if cfg.Filter != nil {
		read, err = pc.FieldByName(cfg.Filter.Field)
		if err != nil {
			return nil, err
		}
	}

	var minP, maxP r3.Vector
	var ok bool
	if cfg.Filter != nil {
		minP, maxP, ok = pc.MinMax3DWithFilter(cloud, read, cfg.Filter)
	} else {
		minP, maxP, ok = pc.MinMax3D(cloud)
	}
	if !ok {
		return nil, nil
	}

	frame, ok := newVoxelFrame(minP, maxP, inv)
	if !ok {
		logger.Warnf("voxel leaf size %v is too small for the input extent; integer cell indices would overflow", cfg.LeafSize)
		return nil, nil
	}

	vi := &voxelIndexing{
		frame:   frame,
		entries: make([]voxelEntry, 0, cloud.Size()),
		points:  make([]pc.PointAndData, 0, cloud.Size()),
		minPts:  minPts,
	}
	cloud.Iterate(0, 0, func(p r3.Vector, d pc.Data) bool {
		order := uint32(len(vi.points))
		vi.points = append(vi.points, pc.PointAndData{P: p, D: d})
		if !pc.IsFinite(p) {
			return true
		}
		if cfg.Filter != nil {
			v, has := read(p, d)
			if !has || !cfg.Filter.Pass(v) {
				return true
			}
		}
		vi.entries = append(vi.entries, voxelEntry{idx: frame.linearIndex(p), order: order})
		return true
	})

	sort.Slice(vi.entries, func(i, j int) bool {
		if vi.entries[i].idx != vi.entries[j].idx {
			return vi.entries[i].idx < vi.entries[j].idx
		}
		// entries of one cell keep the original input order so output is
		// deterministic
		return vi.entries[i].order < vi.entries[j].order
	})
	return vi, nil
}

// runs scans the sorted entries once for maximal runs of equal cell index and
// keeps those meeting the occupancy minimum, in ascending index order.
func (vi *voxelIndexing) runs() []cellRun {
	out := make([]cellRun, 0, len(vi.entries))
	for i := 0; i < len(vi.entries); {
		j := i + 1
		for j < len(vi.entries) && vi.entries[j].idx == vi.entries[i].idx {
			j++
		}
		if j-i >= vi.minPts {
			out = append(out, cellRun{first: i, last: j})
		}
		i = j
	}
	return out
}

// VoxelGridPartition splits the cloud into one sub cloud per occupied voxel
// of a regular grid overlaid on the cloud's bounding box. Points with a
// non-finite coordinate are skipped, as are points rejected by the configured
// field filter; voxels holding fewer than MinPointsPerVoxel surviving points
// are dropped entirely. Within a sub cloud, points keep their input order, and
// sub clouds come back in ascending linear cell index order.
//
// An empty input, or a leaf size so small that cell indices would overflow,
// yields an empty result and a nil error; the overflow case is logged.
//
// When layout is non nil, it is reset and repopulated with the full dense
// cell to cluster mapping of this call; a layout whose grid would exceed
// MaxLeafLayoutCells is an error for the call. The input cloud is never
// mutated.
func VoxelGridPartition(
	cloud pc.PointCloud,
	cfg VoxelGridConfig,
	layout *LeafLayout,
	logger golog.Logger,
) ([]pc.PointCloud, error) {
	vi, err := indexVoxels(cloud, cfg, logger)
	if err != nil || vi == nil {
		return nil, err
	}

	runs := vi.runs()
	if layout != nil {
		if err := layout.reset(vi.frame.totalCells()); err != nil {
			return nil, err
		}
	}

	clusters := make([]pc.PointCloud, len(runs))
	for ci, r := range runs {
		out := pc.NewWithPrealloc(r.last - r.first)
		for i := r.first; i < r.last; i++ {
			pt := vi.points[vi.entries[i].order]
			if err := out.Set(pt.P, pt.D); err != nil {
				return nil, err
			}
		}
		clusters[ci] = out
		if layout != nil {
			layout.set(vi.entries[r.first].idx, ci)
		}
	}
	return clusters, nil
}
