package pointcloud

import (
	"image/color"
	"testing"

	"go.viam.com/test"
)

func TestDataBinaryRoundTrip(t *testing.T) {
	cases := []struct {
		name string
		d    Data
		size int
	}{
		{"bare", NewBasicData(), 0},
		{"color", NewColoredData(color.NRGBA{R: 10, G: 20, B: 30, A: 255}), 4},
		{"value", NewValueData(1 << 20), 8},
		{"negative value", NewValueData(-7), 8},
		{"color and value", NewColoredData(color.NRGBA{R: 1, G: 2, B: 3, A: 4}).SetValue(90000), 12},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			blob, err := tc.d.MarshalBinary()
			test.That(t, err, test.ShouldBeNil)
			test.That(t, len(blob), test.ShouldEqual, tc.size)

			back := NewBasicData()
			test.That(t, back.UnmarshalBinary(blob), test.ShouldBeNil)
			test.That(t, back, test.ShouldResemble, tc.d)
		})
	}
}

func TestDataBinaryBadSize(t *testing.T) {
	err := NewBasicData().UnmarshalBinary([]byte{1, 2, 3})
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "invalid packet size")
}
