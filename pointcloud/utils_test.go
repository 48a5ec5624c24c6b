package pointcloud

import (
	"sort"
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"
)

func makeClouds(t *testing.T) []PointCloud {
	t.Helper()
	cloud0 := New()
	test.That(t, cloud0.Set(NewVector(0, 0, 0), nil), test.ShouldBeNil)
	test.That(t, cloud0.Set(NewVector(0, 0, 1), nil), test.ShouldBeNil)
	test.That(t, cloud0.Set(NewVector(0, 1, 0), nil), test.ShouldBeNil)
	test.That(t, cloud0.Set(NewVector(0, 1, 1), nil), test.ShouldBeNil)

	cloud1 := New()
	test.That(t, cloud1.Set(NewVector(30, 0, 0), nil), test.ShouldBeNil)
	test.That(t, cloud1.Set(NewVector(30, 0, 1), nil), test.ShouldBeNil)
	test.That(t, cloud1.Set(NewVector(30, 1, 0), nil), test.ShouldBeNil)
	test.That(t, cloud1.Set(NewVector(30, 1, 1), nil), test.ShouldBeNil)
	test.That(t, cloud1.Set(NewVector(30, 0.5, 0.5), nil), test.ShouldBeNil)

	return []PointCloud{cloud0, cloud1}
}

func TestCalculateMean(t *testing.T) {
	clouds := makeClouds(t)
	mean0 := CalculateMeanOfPointCloud(clouds[0])
	test.That(t, mean0, test.ShouldResemble, NewVector(0, 0.5, 0.5))
	mean1 := CalculateMeanOfPointCloud(clouds[1])
	test.That(t, mean1, test.ShouldResemble, NewVector(30, 0.5, 0.5))
	test.That(t, CalculateMeanOfPointCloud(New()), test.ShouldResemble, NewVector(0, 0, 0))
}

func TestPrune(t *testing.T) {
	clouds := makeClouds(t)
	test.That(t, len(clouds), test.ShouldEqual, 2)
	test.That(t, clouds[0].Size(), test.ShouldEqual, 4)
	test.That(t, clouds[1].Size(), test.ShouldEqual, 5)

	clouds = PrunePointClouds(clouds, 5)
	test.That(t, len(clouds), test.ShouldEqual, 1)
	test.That(t, clouds[0].Size(), test.ShouldEqual, 5)
}

func TestMerge(t *testing.T) {
	clouds := makeClouds(t)
	merged, err := MergePointClouds(clouds)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, merged.Size(), test.ShouldEqual, 9)
	test.That(t, CloudContains(merged, 0, 1, 1), test.ShouldBeTrue)
	test.That(t, CloudContains(merged, 30, 0.5, 0.5), test.ShouldBeTrue)

	// order-insensitive comparison of the merged positions
	positions := make(Vectors, 0, merged.Size())
	merged.Iterate(0, 0, func(p r3.Vector, d Data) bool {
		positions = append(positions, p)
		return true
	})
	sort.Sort(positions)
	test.That(t, positions, test.ShouldResemble, Vectors{
		NewVector(0, 0, 0),
		NewVector(0, 0, 1),
		NewVector(0, 1, 0),
		NewVector(0, 1, 1),
		NewVector(30, 0, 0),
		NewVector(30, 0, 1),
		NewVector(30, 0.5, 0.5),
		NewVector(30, 1, 0),
		NewVector(30, 1, 1),
	})
}
