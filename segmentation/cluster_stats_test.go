package segmentation

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"

	pc "github.com/voxelgrid/partition/pointcloud"
)

func TestCalculateClusterStats(t *testing.T) {
	cloud := pc.New()
	test.That(t, cloud.Set(r3.Vector{X: 0, Y: 1, Z: 2}, nil), test.ShouldBeNil)
	test.That(t, cloud.Set(r3.Vector{X: 2, Y: 1, Z: 2}, nil), test.ShouldBeNil)

	stats := CalculateClusterStats(cloud)
	test.That(t, stats.Size, test.ShouldEqual, 2)
	test.That(t, stats.Centroid, test.ShouldResemble, r3.Vector{X: 1, Y: 1, Z: 2})
	test.That(t, stats.Spread.X, test.ShouldAlmostEqual, math.Sqrt2)
	test.That(t, stats.Spread.Y, test.ShouldAlmostEqual, 0)
	test.That(t, stats.Spread.Z, test.ShouldAlmostEqual, 0)
}

func TestCalculateClusterStatsSmall(t *testing.T) {
	stats := CalculateClusterStats(pc.New())
	test.That(t, stats, test.ShouldResemble, ClusterStats{})

	single := pc.New()
	test.That(t, single.Set(r3.Vector{X: 3, Y: 4, Z: 5}, nil), test.ShouldBeNil)
	stats = CalculateClusterStats(single)
	test.That(t, stats.Size, test.ShouldEqual, 1)
	test.That(t, stats.Centroid, test.ShouldResemble, r3.Vector{X: 3, Y: 4, Z: 5})
	test.That(t, stats.Spread, test.ShouldResemble, r3.Vector{})
}
