package mesh

import (
	"fmt"

	"github.com/udhos/gwob"
)

// Data is mesh data ready for New.
type Data struct {
	Vertices []float32
	Indices  []uint32
	Layout   Layout
}

// LoadOBJ reads a Wavefront OBJ file into position and texture coordinate data
// laid out as Layout{3, 2}. Normals and materials are ignored.
func LoadOBJ(path string) (*Data, error) {
	obj, err := gwob.NewObjFromFile(path, &gwob.ObjParserOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to load OBJ model: %w", err)
	}
	return fromObj(obj)
}

func fromObj(obj *gwob.Obj) (*Data, error) {
	stride := obj.StrideSize / 4
	if stride == 0 || len(obj.Coord) == 0 {
		return nil, fmt.Errorf("OBJ model has no vertices")
	}
	posOffset := obj.StrideOffsetPosition / 4
	texOffset := obj.StrideOffsetTexture / 4

	count := len(obj.Coord) / stride
	d := &Data{
		Vertices: make([]float32, 0, count*5),
		Indices:  make([]uint32, 0, len(obj.Indices)),
		Layout:   Layout{3, 2},
	}
	for i := 0; i < count; i++ {
		base := i * stride
		d.Vertices = append(d.Vertices,
			obj.Coord[base+posOffset],
			obj.Coord[base+posOffset+1],
			obj.Coord[base+posOffset+2],
		)
		if obj.TextCoordFound {
			d.Vertices = append(d.Vertices, obj.Coord[base+texOffset], obj.Coord[base+texOffset+1])
		} else {
			d.Vertices = append(d.Vertices, 0, 0)
		}
	}
	for _, index := range obj.Indices {
		if index < 0 || index >= count {
			return nil, fmt.Errorf("OBJ index %d out of range [0, %d)", index, count)
		}
		d.Indices = append(d.Indices, uint32(index))
	}
	return d, nil
}
