package pointcloud

import (
	"github.com/golang/geo/r3"
)

// CloudContains is a silly helper to check if a cloud contains a point.
func CloudContains(cloud PointCloud, x, y, z float64) bool {
	_, got := cloud.At(x, y, z)
	return got
}

// CalculateMeanOfPointCloud returns the spatial average center of a given point cloud.
func CalculateMeanOfPointCloud(cloud PointCloud) r3.Vector {
	if cloud.Size() == 0 {
		return r3.Vector{}
	}
	total := r3.Vector{}
	cloud.Iterate(0, 0, func(p r3.Vector, d Data) bool {
		total = total.Add(p)
		return true
	})
	return total.Mul(1. / float64(cloud.Size()))
}

// PrunePointClouds removes point clouds from a slice if the size of the cloud
// is less than nMin.
func PrunePointClouds(clouds []PointCloud, nMin int) []PointCloud {
	pruned := make([]PointCloud, 0, len(clouds))
	for _, cloud := range clouds {
		if cloud.Size() >= nMin {
			pruned = append(pruned, cloud)
		}
	}
	return pruned
}

// MergePointClouds combines the points of many clouds into one. Points sharing
// an exact position collapse, last cloud wins.
func MergePointClouds(clouds []PointCloud) (PointCloud, error) {
	merged := New()
	for _, cloud := range clouds {
		var err error
		cloud.Iterate(0, 0, func(p r3.Vector, d Data) bool {
			err = merged.Set(p, d)
			return err == nil
		})
		if err != nil {
			return nil, err
		}
	}
	return merged, nil
}
