package segmentation

import (
	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/stat"

	pc "github.com/voxelgrid/partition/pointcloud"
)

// ClusterStats summarizes one cluster for downstream consumers ranking or
// thresholding clusters after a partition.
type ClusterStats struct {
	Size     int
	Centroid r3.Vector
	// Spread is the per axis standard deviation of the cluster's points.
	// Zero for clusters of fewer than two points.
	Spread r3.Vector
}

// CalculateClusterStats computes the size, centroid and per axis spread of a
// cluster.
func CalculateClusterStats(cloud pc.PointCloud) ClusterStats {
	n := cloud.Size()
	if n == 0 {
		return ClusterStats{}
	}
	xs := make([]float64, 0, n)
	ys := make([]float64, 0, n)
	zs := make([]float64, 0, n)
	cloud.Iterate(0, 0, func(p r3.Vector, d pc.Data) bool {
		xs = append(xs, p.X)
		ys = append(ys, p.Y)
		zs = append(zs, p.Z)
		return true
	})
	stats := ClusterStats{
		Size: n,
		Centroid: r3.Vector{
			X: stat.Mean(xs, nil),
			Y: stat.Mean(ys, nil),
			Z: stat.Mean(zs, nil),
		},
	}
	if n > 1 {
		stats.Spread = r3.Vector{
			X: stat.StdDev(xs, nil),
			Y: stat.StdDev(ys, nil),
			Z: stat.StdDev(zs, nil),
		}
	}
	return stats
}
