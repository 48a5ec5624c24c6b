package pointcloud

import (
	"math"

	"github.com/golang/geo/r3"
)

// MinMax3D returns the axis aligned extent of the cloud. Points with a
// non-finite coordinate are ignored. The bool is false when no point
// contributed to the extent.
func MinMax3D(cloud PointCloud) (r3.Vector, r3.Vector, bool) {
	return minMax3D(cloud, nil, nil)
}

// MinMax3DWithFilter returns the extent of only the points surviving the given
// field filter, read through the given reader. Points missing the field are
// ignored, as are points with a non-finite coordinate. The bool is false when
// no point contributed to the extent.
func MinMax3DWithFilter(cloud PointCloud, read FieldReader, filter *FieldFilter) (r3.Vector, r3.Vector, bool) {
	return minMax3D(cloud, read, filter)
}

func minMax3D(cloud PointCloud, read FieldReader, filter *FieldFilter) (r3.Vector, r3.Vector, bool) {
	minP := r3.Vector{X: math.MaxFloat64, Y: math.MaxFloat64, Z: math.MaxFloat64}
	maxP := r3.Vector{X: -math.MaxFloat64, Y: -math.MaxFloat64, Z: -math.MaxFloat64}
	any := false
	cloud.Iterate(0, 0, func(p r3.Vector, d Data) bool {
		if !IsFinite(p) {
			return true
		}
		if filter != nil {
			v, has := read(p, d)
			if !has || !filter.Pass(v) {
				return true
			}
		}
		any = true
		minP.X = math.Min(minP.X, p.X)
		minP.Y = math.Min(minP.Y, p.Y)
		minP.Z = math.Min(minP.Z, p.Z)
		maxP.X = math.Max(maxP.X, p.X)
		maxP.Y = math.Max(maxP.Y, p.Y)
		maxP.Z = math.Max(maxP.Z, p.Z)
		return true
	})
	if !any {
		return r3.Vector{}, r3.Vector{}, false
	}
	return minP, maxP, true
}

// IsFinite reports whether all three coordinates of the vector are finite.
func IsFinite(p r3.Vector) bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) &&
		!math.IsNaN(p.Y) && !math.IsInf(p.Y, 0) &&
		!math.IsNaN(p.Z) && !math.IsInf(p.Z, 0)
}
