package pointcloud

import (
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
)

// FieldFilter restricts an operation to points whose named scalar field passes
// a limit test. With Negative false, points whose value falls outside
// [Min, Max] are dropped. With Negative true, points whose value falls
// strictly inside (Min, Max) are dropped instead; values exactly on a limit
// survive. This matches the limit handling of the PCL passthrough family,
// boundary behavior included.
type FieldFilter struct {
	Field    string  `json:"field"`
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Negative bool    `json:"negative"`
}

// Pass reports whether a field value survives the filter.
func (f *FieldFilter) Pass(v float64) bool {
	if f.Negative {
		return !(v > f.Min && v < f.Max)
	}
	return v >= f.Min && v <= f.Max
}

// FieldReader reads one named scalar field from a point. The bool is false
// when the point does not carry the field.
type FieldReader func(p r3.Vector, d Data) (float64, bool)

// FieldByName resolves a FieldReader for the named field. Resolve once, before
// any per-point loop; the returned reader does no name matching of its own.
func FieldByName(name string) (FieldReader, error) {
	switch name {
	case "x":
		return func(p r3.Vector, d Data) (float64, bool) { return p.X, true }, nil
	case "y":
		return func(p r3.Vector, d Data) (float64, bool) { return p.Y, true }, nil
	case "z":
		return func(p r3.Vector, d Data) (float64, bool) { return p.Z, true }, nil
	case "value":
		return func(p r3.Vector, d Data) (float64, bool) {
			if d == nil || !d.HasValue() {
				return 0, false
			}
			return float64(d.Value()), true
		}, nil
	case "intensity":
		return func(p r3.Vector, d Data) (float64, bool) {
			if d == nil {
				return 0, false
			}
			return float64(d.Intensity()), true
		}, nil
	default:
		return nil, errors.Errorf("unknown point field %q", name)
	}
}
