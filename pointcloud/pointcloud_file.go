package pointcloud

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"image/color"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/edaniels/golog"
	"github.com/edaniels/lidario"
	"github.com/golang/geo/r3"
	"github.com/klauspost/compress/gzip"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	goutils "go.viam.com/utils"
)

// PCDType is the format of a pcd file.
type PCDType int

const (
	// PCDAscii ascii format for pcd.
	PCDAscii PCDType = 0
	// PCDBinary binary format for pcd.
	PCDBinary PCDType = 1
	// PCDCompressed binary compressed format for pcd.
	PCDCompressed PCDType = 2
)

const (
	// beyond these, LAS coordinates stored as float64 lose precision against
	// the float32 fields a PCD file round trips through
	maxPreciseFloat64 = float64(1 << 24)
	minPreciseFloat64 = -maxPreciseFloat64
)

// NewFromFile returns a pointcloud read in from the given file. ".gz" files
// are decompressed transparently.
func NewFromFile(fn string, logger golog.Logger) (PointCloud, error) {
	switch filepath.Ext(fn) {
	case ".las":
		return NewFromLASFile(fn, logger)
	case ".pcd":
		f, err := os.Open(fn) //nolint:gosec
		if err != nil {
			return nil, err
		}
		defer goutils.UncheckedErrorFunc(f.Close)
		return ReadPCD(f)
	case ".gz":
		if filepath.Ext(strings.TrimSuffix(fn, ".gz")) != ".pcd" {
			return nil, errors.Errorf("do not know how to read file %q", fn)
		}
		f, err := os.Open(fn) //nolint:gosec
		if err != nil {
			return nil, err
		}
		defer goutils.UncheckedErrorFunc(f.Close)
		zr, err := gzip.NewReader(f)
		if err != nil {
			return nil, err
		}
		defer goutils.UncheckedErrorFunc(zr.Close)
		return ReadPCD(zr)
	default:
		return nil, errors.Errorf("do not know how to read file %q", fn)
	}
}

// WriteToFile writes the point cloud out to the given file, dispatching on
// extension the same way NewFromFile does. PCD output is binary; append ".gz"
// for gzip compression.
func WriteToFile(cloud PointCloud, fn string) (err error) {
	switch filepath.Ext(fn) {
	case ".las":
		return WriteToLASFile(cloud, fn)
	case ".pcd":
		var f *os.File
		//nolint:gosec
		f, err = os.Create(fn)
		if err != nil {
			return err
		}
		defer func() {
			err = multierr.Combine(err, f.Close())
		}()
		err = ToPCD(cloud, f, PCDBinary)
		return
	case ".gz":
		if filepath.Ext(strings.TrimSuffix(fn, ".gz")) != ".pcd" {
			return errors.Errorf("do not know how to write file %q", fn)
		}
		var f *os.File
		//nolint:gosec
		f, err = os.Create(fn)
		if err != nil {
			return err
		}
		zw := gzip.NewWriter(f)
		defer func() {
			err = multierr.Combine(err, zw.Close(), f.Close())
		}()
		err = ToPCD(cloud, zw, PCDBinary)
		return
	default:
		return errors.Errorf("do not know how to write file %q", fn)
	}
}

// pointValueDataTag marks the VLR that carries per-point Data blobs, stored in
// point order as length-prefixed records produced by Data.MarshalBinary.
const pointValueDataTag = "rc|pv"

// NewFromLASFile returns a point cloud from reading a LAS file. If any
// lossiness of points could occur from reading it in, it's reported but is not
// an error.
func NewFromLASFile(fn string, logger golog.Logger) (PointCloud, error) {
	lf, err := lidario.NewLasFile(fn, "r")
	if err != nil {
		return nil, err
	}
	defer goutils.UncheckedErrorFunc(lf.Close)

	var hasValue bool
	var valueData []byte
	for _, d := range lf.VlrData {
		if d.Description == pointValueDataTag {
			hasValue = true
			valueData = d.BinaryData
			break
		}
	}

	pc := NewWithPrealloc(lf.Header.NumberPoints)
	valueOff := 0
	for i := 0; i < lf.Header.NumberPoints; i++ {
		p, err := lf.LasPoint(i)
		if err != nil {
			return nil, err
		}
		data := p.PointData()

		x, y, z := data.X, data.Y, data.Z
		if x < minPreciseFloat64 || x > maxPreciseFloat64 ||
			y < minPreciseFloat64 || y > maxPreciseFloat64 ||
			z < minPreciseFloat64 || z > maxPreciseFloat64 {
			logger.Warnf("potential floating point lossiness for LAS point %v; precise range is [%f, %f]",
				data, minPreciseFloat64, maxPreciseFloat64)
		}

		v := r3.Vector{X: x, Y: y, Z: z}
		var dd Data
		if lf.Header.PointFormatID == 2 && p.RgbData() != nil {
			r := uint8(p.RgbData().Red / 256)
			g := uint8(p.RgbData().Green / 256)
			b := uint8(p.RgbData().Blue / 256)
			dd = NewColoredData(color.NRGBA{R: r, G: g, B: b, A: 255})
		}

		if data.Intensity != 0 {
			if dd == nil {
				dd = NewBasicData()
			}
			dd.SetIntensity(data.Intensity)
		}

		if hasValue {
			if valueOff >= len(valueData) {
				return nil, errors.New("point data sidecar is shorter than the point count")
			}
			blobLen := int(valueData[valueOff])
			valueOff++
			if valueOff+blobLen > len(valueData) {
				return nil, errors.New("point data sidecar is truncated")
			}
			blob := valueData[valueOff : valueOff+blobLen]
			valueOff += blobLen
			if blobLen > 0 {
				if dd == nil {
					dd = NewBasicData()
				}
				if err := dd.UnmarshalBinary(blob); err != nil {
					return nil, err
				}
			}
		}

		if err := pc.Set(v, dd); err != nil {
			return nil, err
		}
	}
	return pc, nil
}

// WriteToLASFile writes the point cloud out to a LAS file.
func WriteToLASFile(cloud PointCloud, fn string) (err error) {
	lf, err := lidario.NewLasFile(fn, "w")
	if err != nil {
		return
	}
	defer func() {
		cerr := lf.Close()
		err = multierr.Combine(err, cerr)
	}()

	meta := cloud.MetaData()

	pointFormatID := 0
	if meta.HasColor {
		pointFormatID = 2
	}
	if err = lf.AddHeader(lidario.LasHeader{
		PointFormatID: byte(pointFormatID),
	}); err != nil {
		return
	}

	var valueBuf bytes.Buffer
	var lastErr error
	cloud.Iterate(0, 0, func(pos r3.Vector, d Data) bool {
		var lp lidario.LasPointer
		pr0 := &lidario.PointRecord0{
			X: pos.X,
			Y: pos.Y,
			Z: pos.Z,
			BitField: lidario.PointBitField{
				Value: (1) | (1 << 3) | (0 << 6) | (0 << 7),
			},
			ClassBitField: lidario.ClassificationBitField{
				Value: 0,
			},
			ScanAngle:     0,
			UserData:      0,
			PointSourceID: 1,
		}
		lp = pr0

		if d != nil {
			pr0.Intensity = d.Intensity()
		}

		if meta.HasColor {
			red, green, blue := 255, 255, 255
			if d != nil && d.HasColor() {
				r, g, b := d.RGB255()
				red, green, blue = int(r), int(g), int(b)
			}
			lp = &lidario.PointRecord2{
				PointRecord0: pr0,
				RGB: &lidario.RgbData{
					Red:   uint16(red * 256),
					Green: uint16(green * 256),
					Blue:  uint16(blue * 256),
				},
			}
		}
		if meta.HasValue {
			var blob []byte
			if d != nil {
				var merr error
				blob, merr = d.MarshalBinary()
				if merr != nil {
					lastErr = merr
					return false
				}
			}
			valueBuf.WriteByte(byte(len(blob)))
			valueBuf.Write(blob)
		}
		if lerr := lf.AddLasPoint(lp); lerr != nil {
			lastErr = lerr
			return false
		}
		return true
	})
	if meta.HasValue {
		if err = lf.AddVLR(lidario.VLR{
			UserID:                  "",
			Description:             pointValueDataTag,
			BinaryData:              valueBuf.Bytes(),
			RecordLengthAfterHeader: valueBuf.Len(),
		}); err != nil {
			return
		}
	}
	if lastErr != nil {
		err = lastErr
		return
	}

	//nolint:nakedret
	return
}

func _colorToPCDInt(pt Data) int {
	if pt == nil || !pt.HasColor() {
		return 255 << 16
	}

	r, g, b := pt.RGB255()
	x := 0

	x |= (int(r) << 16)
	x |= (int(g) << 8)
	x |= (int(b) << 0)
	return x
}

func _pcdIntToColor(c int) color.NRGBA {
	r := uint8(0xFF & (c >> 16))
	g := uint8(0xFF & (c >> 8))
	b := uint8(0xFF & (c >> 0))
	return color.NRGBA{R: r, G: g, B: b, A: 255}
}

// ToPCD writes out a point cloud to a PCD file of the given type.
func ToPCD(cloud PointCloud, out io.Writer, outputType PCDType) error {
	var err error

	_, err = fmt.Fprintf(out, "VERSION .7\n")
	if err != nil {
		return err
	}
	if cloud.MetaData().HasColor {
		_, err = fmt.Fprintf(out, "FIELDS x y z rgb\n"+
			"SIZE 4 4 4 4\n"+
			"TYPE F F F I\n"+
			"COUNT 1 1 1 1\n")
	} else {
		_, err = fmt.Fprintf(out, "FIELDS x y z\n"+
			"SIZE 4 4 4\n"+
			"TYPE F F F\n"+
			"COUNT 1 1 1\n")
	}
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(out, "WIDTH %d\n"+
		"HEIGHT %d\n"+
		"VIEWPOINT 0 0 0 1 0 0 0\n"+
		"POINTS %d\n",
		cloud.Size(),
		1,
		cloud.Size())
	if err != nil {
		return err
	}

	switch outputType {
	case PCDBinary:
		_, err = fmt.Fprintf(out, "DATA binary\n")
	case PCDAscii:
		_, err = fmt.Fprintf(out, "DATA ascii\n")
	case PCDCompressed:
		return errors.New("compressed PCD not yet implemented; gzip the whole file instead")
	}
	if err != nil {
		return err
	}
	return writePCDData(cloud, out, outputType)
}

func writePCDData(cloud PointCloud, out io.Writer, pcdtype PCDType) error {
	var lastErr error
	cloud.Iterate(0, 0, func(pos r3.Vector, d Data) bool {
		var err error
		if cloud.MetaData().HasColor {
			c := _colorToPCDInt(d)
			switch pcdtype {
			case PCDBinary:
				buf := make([]byte, 16)
				binary.LittleEndian.PutUint32(buf, math.Float32bits(float32(pos.X)))
				binary.LittleEndian.PutUint32(buf[4:], math.Float32bits(float32(pos.Y)))
				binary.LittleEndian.PutUint32(buf[8:], math.Float32bits(float32(pos.Z)))
				binary.LittleEndian.PutUint32(buf[12:], uint32(c))
				_, err = out.Write(buf)
			case PCDAscii, PCDCompressed:
				_, err = fmt.Fprintf(out, "%f %f %f %d\n", pos.X, pos.Y, pos.Z, c)
			}
		} else {
			switch pcdtype {
			case PCDBinary:
				buf := make([]byte, 12)
				binary.LittleEndian.PutUint32(buf, math.Float32bits(float32(pos.X)))
				binary.LittleEndian.PutUint32(buf[4:], math.Float32bits(float32(pos.Y)))
				binary.LittleEndian.PutUint32(buf[8:], math.Float32bits(float32(pos.Z)))
				_, err = out.Write(buf)
			case PCDAscii, PCDCompressed:
				_, err = fmt.Fprintf(out, "%f %f %f\n", pos.X, pos.Y, pos.Z)
			}
		}
		lastErr = err
		return err == nil
	})
	return lastErr
}

// readFloat widens a binary PCD float32 back to the float64 coordinates the
// rest of the package keys on. Rounding to four decimal places canonicalizes
// the float32 noise so a position written and reread compares equal, keeping
// At lookups and voxel cell assignment stable across a file round trip.
func readFloat(n uint32) float64 {
	f := float64(math.Float32frombits(n))
	return math.Round(f*10000) / 10000
}

type pcdFieldType int

const (
	pcdPointOnly  pcdFieldType = 3
	pcdPointColor pcdFieldType = 4
)

type pcdHeader struct {
	fields    pcdFieldType
	size      []uint64
	valTypes  []string
	count     []uint64
	width     uint64
	height    uint64
	viewpoint [7]float64
	points    uint64
	data      PCDType
}

const pcdCommentChar = "#"

var pcdHeaderFields = []string{"VERSION", "FIELDS", "SIZE", "TYPE", "COUNT", "WIDTH", "HEIGHT", "VIEWPOINT", "POINTS", "DATA"}

func parsePCDHeaderLine(line string, index int, header *pcdHeader) error {
	var err error
	name := pcdHeaderFields[index]
	field, value, _ := strings.Cut(line, " ")
	tokens := strings.Split(value, " ")
	if field != name {
		return errors.Errorf("line is supposed to start with %s but is %s", name, line)
	}

	switch name {
	case "VERSION":
		if value != ".7" && value != "0.7" {
			return errors.Errorf("unsupported pcd version %s", value)
		}
	case "FIELDS":
		switch value {
		case "x y z":
			header.fields = pcdPointOnly
		case "x y z rgb":
			header.fields = pcdPointColor
		default:
			return errors.Errorf("unsupported pcd fields %s", value)
		}
	case "SIZE":
		if len(tokens) != int(header.fields) {
			return errors.New("unexpected number of fields in SIZE line")
		}
		header.size = make([]uint64, len(tokens))
		for i, token := range tokens {
			header.size[i], err = strconv.ParseUint(token, 10, 64)
			if err != nil {
				return errors.Errorf("invalid SIZE field %s", token)
			}
		}
	case "TYPE":
		if len(tokens) != int(header.fields) {
			return errors.New("unexpected number of fields in TYPE line")
		}
		header.valTypes = append([]string{}, tokens...)
	case "COUNT":
		if len(tokens) != int(header.fields) {
			return errors.New("unexpected number of fields in COUNT line")
		}
		header.count = make([]uint64, len(tokens))
		for i, token := range tokens {
			header.count[i], err = strconv.ParseUint(token, 10, 64)
			if err != nil {
				return errors.Errorf("invalid COUNT field %s: %v", token, err)
			}
		}
	case "WIDTH":
		header.width, err = strconv.ParseUint(value, 10, 64)
		if err != nil {
			return errors.Errorf("invalid WIDTH field %s: %v", value, err)
		}
	case "HEIGHT":
		header.height, err = strconv.ParseUint(value, 10, 64)
		if err != nil {
			return errors.Errorf("invalid HEIGHT field %s: %v", value, err)
		}
	case "VIEWPOINT":
		if len(tokens) != 7 {
			return errors.Errorf("unexpected number of fields in VIEWPOINT line. Expected 7, got %d", len(tokens))
		}
		for i, token := range tokens {
			header.viewpoint[i], err = strconv.ParseFloat(token, 64)
			if err != nil {
				return errors.Errorf("invalid VIEWPOINT field %s: %v", token, err)
			}
		}
	case "POINTS":
		var points uint64
		points, err = strconv.ParseUint(value, 10, 64)
		if err != nil {
			return errors.Errorf("invalid POINTS field %s: %v", value, err)
		}
		if points != header.width*header.height {
			return errors.Errorf("POINTS field %d does not match WIDTH*HEIGHT %d", points, header.width*header.height)
		}
		header.points = points
	case "DATA":
		switch value {
		case "ascii":
			header.data = PCDAscii
		case "binary":
			header.data = PCDBinary
		case "binary_compressed":
			header.data = PCDCompressed
		default:
			return errors.Errorf("unsupported pcd data type %s", value)
		}
	}

	return nil
}

// ReadPCD reads a PCD file into a pointcloud.
func ReadPCD(inRaw io.Reader) (PointCloud, error) {
	header := pcdHeader{}
	in := bufio.NewReader(inRaw)
	var line string
	var err error
	headerLineCount := 0
	for headerLineCount < len(pcdHeaderFields) {
		line, err = in.ReadString('\n')
		if err != nil {
			return nil, errors.Errorf("error reading header line %d: %v", headerLineCount, err)
		}
		line, _, _ = strings.Cut(line, pcdCommentChar)
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if err := parsePCDHeaderLine(line, headerLineCount, &header); err != nil {
			return nil, err
		}
		headerLineCount++
	}
	switch header.data {
	case PCDAscii:
		return readPCDAscii(in, header)
	case PCDBinary:
		return readPCDBinary(in, header)
	case PCDCompressed:
		return nil, errors.New("compressed pcd not yet supported")
	default:
		return nil, errors.Errorf("unsupported pcd data type %v", header.data)
	}
}

func readPCDAscii(in *bufio.Reader, header pcdHeader) (PointCloud, error) {
	pc := NewWithPrealloc(int(header.points))
	for i := 0; i < int(header.points); i++ {
		line, err := in.ReadString('\n')
		if err != nil {
			return nil, err
		}
		line = strings.TrimSpace(line)
		tokens := strings.Split(line, " ")
		if len(tokens) != int(header.fields) {
			return nil, errors.Errorf("unexpected number of fields in point %d", i)
		}
		point := make([]float64, len(tokens))
		for j, token := range tokens {
			point[j], err = strconv.ParseFloat(token, 64)
			if err != nil {
				return nil, errors.Errorf("invalid point %d field %s: %v", i, token, err)
			}
		}
		if err := setPCDPoint(pc, point, header); err != nil {
			return nil, err
		}
	}
	return pc, nil
}

func readPCDBinary(in *bufio.Reader, header pcdHeader) (PointCloud, error) {
	pc := NewWithPrealloc(int(header.points))
	for i := 0; i < int(header.points); i++ {
		point := make([]float64, int(header.fields))
		buf := make([]byte, 4)
		for j := 0; j < int(header.fields); j++ {
			if _, err := io.ReadFull(in, buf); err != nil {
				return nil, err
			}
			n := binary.LittleEndian.Uint32(buf)
			if j < 3 {
				point[j] = readFloat(n)
			} else {
				point[j] = float64(int32(n))
			}
		}
		if err := setPCDPoint(pc, point, header); err != nil {
			return nil, err
		}
	}
	return pc, nil
}

func setPCDPoint(pc PointCloud, point []float64, header pcdHeader) error {
	p := r3.Vector{X: point[0], Y: point[1], Z: point[2]}
	var d Data
	if header.fields == pcdPointColor {
		d = NewColoredData(_pcdIntToColor(int(point[3])))
	}
	return pc.Set(p, d)
}
