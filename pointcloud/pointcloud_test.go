package pointcloud

import (
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"
)

func TestPointCloudBasic(t *testing.T) {
	pc := New()

	p0 := NewVector(0, 0, 0)
	d0 := NewValueData(5)

	test.That(t, pc.Set(p0, d0), test.ShouldBeNil)
	d, got := pc.At(0, 0, 0)
	test.That(t, got, test.ShouldBeTrue)
	test.That(t, d, test.ShouldResemble, d0)

	_, got = pc.At(1, 0, 1)
	test.That(t, got, test.ShouldBeFalse)

	p1 := NewVector(1, 0, 1)
	d1 := NewValueData(17)
	test.That(t, pc.Set(p1, d1), test.ShouldBeNil)

	d, got = pc.At(1, 0, 1)
	test.That(t, got, test.ShouldBeTrue)
	test.That(t, d, test.ShouldResemble, d1)
	test.That(t, d, test.ShouldNotResemble, d0)

	p2 := NewVector(-1, -2, 1)
	d2 := NewValueData(81)
	test.That(t, pc.Set(p2, d2), test.ShouldBeNil)
	d, got = pc.At(-1, -2, 1)
	test.That(t, got, test.ShouldBeTrue)
	test.That(t, d, test.ShouldResemble, d2)

	count := 0
	pc.Iterate(0, 0, func(p r3.Vector, d Data) bool {
		switch p.X {
		case 0:
			test.That(t, p, test.ShouldResemble, p0)
		case 1:
			test.That(t, p, test.ShouldResemble, p1)
		case -1:
			test.That(t, p, test.ShouldResemble, p2)
		}
		count++
		return true
	})
	test.That(t, count, test.ShouldEqual, 3)

	test.That(t, CloudContains(pc, 1, 1, 1), test.ShouldBeFalse)
	test.That(t, CloudContains(pc, 1, 0, 1), test.ShouldBeTrue)

	pc.Unset(1, 0, 1)
	test.That(t, pc.Size(), test.ShouldEqual, 2)
	_, got = pc.At(1, 0, 1)
	test.That(t, got, test.ShouldBeFalse)
}

func TestPointCloudSetReplaces(t *testing.T) {
	pc := New()
	p := NewVector(1, 2, 3)
	test.That(t, pc.Set(p, NewValueData(1)), test.ShouldBeNil)
	test.That(t, pc.Set(p, NewValueData(2)), test.ShouldBeNil)

	test.That(t, pc.Size(), test.ShouldEqual, 1)
	d, got := pc.At(1, 2, 3)
	test.That(t, got, test.ShouldBeTrue)
	test.That(t, d.Value(), test.ShouldEqual, 2)
}

func TestPointCloudInsertionOrder(t *testing.T) {
	pc := New()
	inserted := []r3.Vector{
		NewVector(5, 0, 0),
		NewVector(-2, 1, 9),
		NewVector(0, 0, 0),
		NewVector(3, 3, 3),
	}
	for _, p := range inserted {
		test.That(t, pc.Set(p, nil), test.ShouldBeNil)
	}

	seen := make([]r3.Vector, 0, len(inserted))
	pc.Iterate(0, 0, func(p r3.Vector, d Data) bool {
		seen = append(seen, p)
		return true
	})
	test.That(t, seen, test.ShouldResemble, inserted)

	// removal keeps the relative order of the remaining points
	pc.Unset(-2, 1, 9)
	seen = seen[:0]
	pc.Iterate(0, 0, func(p r3.Vector, d Data) bool {
		seen = append(seen, p)
		return true
	})
	test.That(t, seen, test.ShouldResemble, []r3.Vector{inserted[0], inserted[2], inserted[3]})
}

func TestPointCloudBatchedIterate(t *testing.T) {
	pc := New()
	for i := 0; i < 10; i++ {
		test.That(t, pc.Set(NewVector(float64(i), 0, 0), nil), test.ShouldBeNil)
	}

	count := 0
	for batch := 0; batch < 3; batch++ {
		pc.Iterate(3, batch, func(p r3.Vector, d Data) bool {
			count++
			return true
		})
	}
	test.That(t, count, test.ShouldEqual, 10)

	// early exit stops one batch only
	count = 0
	pc.Iterate(0, 0, func(p r3.Vector, d Data) bool {
		count++
		return count < 4
	})
	test.That(t, count, test.ShouldEqual, 4)
}

func TestPointCloudMetaData(t *testing.T) {
	pc := New()
	test.That(t, pc.Set(NewVector(1, -2, 3), nil), test.ShouldBeNil)
	test.That(t, pc.Set(NewVector(-4, 5, -6), NewValueData(1)), test.ShouldBeNil)

	meta := pc.MetaData()
	test.That(t, meta.HasValue, test.ShouldBeTrue)
	test.That(t, meta.HasColor, test.ShouldBeFalse)
	test.That(t, meta.MinX, test.ShouldEqual, -4)
	test.That(t, meta.MaxX, test.ShouldEqual, 1)
	test.That(t, meta.MinY, test.ShouldEqual, -2)
	test.That(t, meta.MaxY, test.ShouldEqual, 5)
	test.That(t, meta.MinZ, test.ShouldEqual, -6)
	test.That(t, meta.MaxZ, test.ShouldEqual, 3)
}
