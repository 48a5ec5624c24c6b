package pointcloud

import (
	"math"
	"testing"

	"go.viam.com/test"
)

func TestMinMax3D(t *testing.T) {
	pc := New()
	_, _, ok := MinMax3D(pc)
	test.That(t, ok, test.ShouldBeFalse)

	test.That(t, pc.Set(NewVector(1, 2, 3), nil), test.ShouldBeNil)
	test.That(t, pc.Set(NewVector(-1, 5, 0), nil), test.ShouldBeNil)
	test.That(t, pc.Set(NewVector(math.NaN(), 100, 100), nil), test.ShouldBeNil)
	test.That(t, pc.Set(NewVector(0, math.Inf(1), 0), nil), test.ShouldBeNil)

	minP, maxP, ok := MinMax3D(pc)
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, minP, test.ShouldResemble, NewVector(-1, 2, 0))
	test.That(t, maxP, test.ShouldResemble, NewVector(1, 5, 3))
}

func TestMinMax3DWithFilter(t *testing.T) {
	pc := New()
	test.That(t, pc.Set(NewVector(0, 0, 0), NewValueData(1)), test.ShouldBeNil)
	test.That(t, pc.Set(NewVector(10, 0, 0), NewValueData(5)), test.ShouldBeNil)
	test.That(t, pc.Set(NewVector(20, 0, 0), NewValueData(9)), test.ShouldBeNil)
	// no value at all, never passes a value filter
	test.That(t, pc.Set(NewVector(30, 0, 0), nil), test.ShouldBeNil)

	read, err := FieldByName("value")
	test.That(t, err, test.ShouldBeNil)

	filter := &FieldFilter{Field: "value", Min: 2, Max: 9}
	minP, maxP, ok := MinMax3DWithFilter(pc, read, filter)
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, minP, test.ShouldResemble, NewVector(10, 0, 0))
	test.That(t, maxP, test.ShouldResemble, NewVector(20, 0, 0))

	filter = &FieldFilter{Field: "value", Min: 2, Max: 9, Negative: true}
	minP, maxP, ok = MinMax3DWithFilter(pc, read, filter)
	test.That(t, ok, test.ShouldBeTrue)
	// value 9 sits exactly on the limit and survives a negative filter
	test.That(t, minP, test.ShouldResemble, NewVector(0, 0, 0))
	test.That(t, maxP, test.ShouldResemble, NewVector(20, 0, 0))

	filter = &FieldFilter{Field: "value", Min: 100, Max: 200}
	_, _, ok = MinMax3DWithFilter(pc, read, filter)
	test.That(t, ok, test.ShouldBeFalse)
}

func TestFieldByName(t *testing.T) {
	p := NewVector(1, 2, 3)
	for name, want := range map[string]float64{"x": 1, "y": 2, "z": 3} {
		read, err := FieldByName(name)
		test.That(t, err, test.ShouldBeNil)
		v, has := read(p, nil)
		test.That(t, has, test.ShouldBeTrue)
		test.That(t, v, test.ShouldEqual, want)
	}

	read, err := FieldByName("intensity")
	test.That(t, err, test.ShouldBeNil)
	v, has := read(p, NewBasicData().SetIntensity(42))
	test.That(t, has, test.ShouldBeTrue)
	test.That(t, v, test.ShouldEqual, 42)
	_, has = read(p, nil)
	test.That(t, has, test.ShouldBeFalse)

	read, err = FieldByName("value")
	test.That(t, err, test.ShouldBeNil)
	_, has = read(p, NewBasicData())
	test.That(t, has, test.ShouldBeFalse)

	_, err = FieldByName("rgb")
	test.That(t, err, test.ShouldNotBeNil)
}

func TestFieldFilterPass(t *testing.T) {
	f := &FieldFilter{Min: 1, Max: 3}
	test.That(t, f.Pass(0.5), test.ShouldBeFalse)
	test.That(t, f.Pass(1), test.ShouldBeTrue)
	test.That(t, f.Pass(2), test.ShouldBeTrue)
	test.That(t, f.Pass(3), test.ShouldBeTrue)
	test.That(t, f.Pass(3.5), test.ShouldBeFalse)

	f.Negative = true
	test.That(t, f.Pass(0.5), test.ShouldBeTrue)
	test.That(t, f.Pass(1), test.ShouldBeTrue)
	test.That(t, f.Pass(2), test.ShouldBeFalse)
	test.That(t, f.Pass(3), test.ShouldBeTrue)
	test.That(t, f.Pass(3.5), test.ShouldBeTrue)
}
