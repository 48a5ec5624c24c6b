package segmentation

import (
	"image/color"

	"github.com/edaniels/golog"
	"github.com/golang/geo/r3"

	pc "github.com/voxelgrid/partition/pointcloud"
)

// VoxelDownsample approximates the cloud with one point per occupied voxel,
// placed at the centroid of the points that fell into it. It shares the grid,
// filtering and occupancy rules of VoxelGridPartition, so voxels below
// MinPointsPerVoxel contribute nothing. Colors are averaged over the colored
// points of a voxel when the cloud carries color.
func VoxelDownsample(cloud pc.PointCloud, cfg VoxelGridConfig, logger golog.Logger) (pc.PointCloud, error) {
	vi, err := indexVoxels(cloud, cfg, logger)
	if err != nil {
		return nil, err
	}
	if vi == nil {
		return pc.New(), nil
	}

	hasColor := cloud.MetaData().HasColor
	out := pc.New()
	for _, r := range vi.runs() {
		sum := r3.Vector{}
		var rSum, gSum, bSum, colored int
		for i := r.first; i < r.last; i++ {
			pt := vi.points[vi.entries[i].order]
			sum = sum.Add(pt.P)
			if hasColor && pt.D != nil && pt.D.HasColor() {
				cr, cg, cb := pt.D.RGB255()
				rSum += int(cr)
				gSum += int(cg)
				bSum += int(cb)
				colored++
			}
		}
		centroid := sum.Mul(1. / float64(r.last-r.first))
		var d pc.Data
		if colored > 0 {
			d = pc.NewColoredData(color.NRGBA{
				R: uint8(rSum / colored),
				G: uint8(gSum / colored),
				B: uint8(bSum / colored),
				A: 255,
			})
		}
		if err := out.Set(centroid, d); err != nil {
			return nil, err
		}
	}
	return out, nil
}
