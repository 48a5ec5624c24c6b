package pointcloud

import (
	"github.com/golang/geo/r3"
)

// PointAndData is a tiny struct to facilitate returning nearest neighbors in a
// neat way.
type PointAndData struct {
	P r3.Vector
	D Data
}

type storage interface {
	Size() int
	Set(p r3.Vector, d Data) error
	Unset(x, y, z float64)
	At(x, y, z float64) (Data, bool)
	Iterate(numBatches, myBatch int, fn func(p r3.Vector, d Data) bool)
}

// matrixStorage keeps every point in a slice in insertion order and maintains
// a position index into it for At lookups. Re-setting an existing position
// replaces its data in place rather than appending.
type matrixStorage struct {
	points   []PointAndData
	indexMap map[r3.Vector]uint
}

func (ms *matrixStorage) Size() int {
	return len(ms.points)
}

func (ms *matrixStorage) Set(p r3.Vector, d Data) error {
	if i, found := ms.indexMap[p]; found {
		ms.points[i].D = d
		return nil
	}
	ms.indexMap[p] = uint(len(ms.points))
	ms.points = append(ms.points, PointAndData{P: p, D: d})
	return nil
}

func (ms *matrixStorage) Unset(x, y, z float64) {
	p := r3.Vector{X: x, Y: y, Z: z}
	i, found := ms.indexMap[p]
	if !found {
		return
	}
	copy(ms.points[i:], ms.points[i+1:])
	ms.points = ms.points[:len(ms.points)-1]
	delete(ms.indexMap, p)
	// later points shifted down by one
	for j := int(i); j < len(ms.points); j++ {
		ms.indexMap[ms.points[j].P] = uint(j)
	}
}

func (ms *matrixStorage) At(x, y, z float64) (Data, bool) {
	i, found := ms.indexMap[r3.Vector{X: x, Y: y, Z: z}]
	if !found {
		return nil, false
	}
	return ms.points[i].D, true
}

func (ms *matrixStorage) Iterate(numBatches, myBatch int, fn func(p r3.Vector, d Data) bool) {
	if numBatches <= 0 {
		for _, pd := range ms.points {
			if cont := fn(pd.P, pd.D); !cont {
				return
			}
		}
		return
	}

	batchSize := (len(ms.points) + numBatches - 1) / numBatches
	start := myBatch * batchSize
	end := start + batchSize
	if start > len(ms.points) {
		return
	}
	if end > len(ms.points) {
		end = len(ms.points)
	}
	for _, pd := range ms.points[start:end] {
		if cont := fn(pd.P, pd.D); !cont {
			return
		}
	}
}
