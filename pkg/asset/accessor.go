package asset

import (
	"fmt"

	"github.com/qmuntal/gltf"

	"github.com/infosia/raster/pkg/math3d"
	"github.com/infosia/raster/pkg/scene"
)

// readAccessorData reads raw component data from a glTF accessor.
// Grounded on the teacher's pkg/models/gltf.go readAccessorData, which
// only supports embedded (GLB) buffers; external buffer files remain
// unsupported here for the same reason.
func readAccessorData(doc *gltf.Document, accessor *gltf.Accessor) (any, error) {
	if accessor.BufferView == nil {
		return nil, fmt.Errorf("accessor has no buffer view")
	}
	bufferView := doc.BufferViews[*accessor.BufferView]
	buffer := doc.Buffers[bufferView.Buffer]

	if buffer.URI != "" {
		return nil, fmt.Errorf("external buffers not supported")
	}
	bufData := buffer.Data
	if bufData == nil {
		return nil, fmt.Errorf("buffer has no data")
	}

	start := bufferView.ByteOffset + accessor.ByteOffset
	stride := bufferView.ByteStride
	count := accessor.Count

	switch accessor.Type {
	case gltf.AccessorVec2:
		if stride == 0 {
			stride = 8
		}
		result := make([][2]float32, count)
		for i := range count {
			offset := start + i*stride
			for j := range 2 {
				result[i][j] = readFloat32(bufData[offset+j*4:])
			}
		}
		return result, nil

	case gltf.AccessorVec3:
		if stride == 0 {
			stride = 12
		}
		result := make([][3]float32, count)
		for i := range count {
			offset := start + i*stride
			for j := range 3 {
				result[i][j] = readFloat32(bufData[offset+j*4:])
			}
		}
		return result, nil

	case gltf.AccessorVec4:
		if stride == 0 {
			stride = componentStride(accessor.ComponentType, 4)
		}
		return readVec4Components(bufData, start, stride, count, accessor.ComponentType)

	case gltf.AccessorMat4:
		if stride == 0 {
			stride = 64
		}
		result := make([][16]float32, count)
		for i := range count {
			offset := start + i*stride
			for j := range 16 {
				result[i][j] = readFloat32(bufData[offset+j*4:])
			}
		}
		return result, nil

	case gltf.AccessorScalar:
		if stride == 0 {
			stride = componentStride(accessor.ComponentType, 1)
		}
		return readScalarComponents(bufData, start, stride, count, accessor.ComponentType)
	}

	return nil, fmt.Errorf("unsupported accessor type: %v/%v", accessor.Type, accessor.ComponentType)
}

func componentStride(ct gltf.ComponentType, numComponents int) int {
	switch ct {
	case gltf.ComponentUbyte, gltf.ComponentByte:
		return numComponents
	case gltf.ComponentUshort, gltf.ComponentShort:
		return numComponents * 2
	default:
		return numComponents * 4
	}
}

func readScalarComponents(buf []byte, start, stride, count int, ct gltf.ComponentType) (any, error) {
	switch ct {
	case gltf.ComponentUbyte:
		result := make([]uint8, count)
		for i := range count {
			result[i] = buf[start+i*stride]
		}
		return result, nil
	case gltf.ComponentUshort:
		result := make([]uint16, count)
		for i := range count {
			off := start + i*stride
			result[i] = uint16(buf[off]) | uint16(buf[off+1])<<8
		}
		return result, nil
	case gltf.ComponentUint:
		result := make([]uint32, count)
		for i := range count {
			off := start + i*stride
			result[i] = uint32(buf[off]) | uint32(buf[off+1])<<8 | uint32(buf[off+2])<<16 | uint32(buf[off+3])<<24
		}
		return result, nil
	case gltf.ComponentFloat:
		result := make([]float32, count)
		for i := range count {
			result[i] = readFloat32(buf[start+i*stride:])
		}
		return result, nil
	}
	return nil, fmt.Errorf("unsupported scalar component type %v", ct)
}

func readVec4Components(buf []byte, start, stride, count int, ct gltf.ComponentType) (any, error) {
	switch ct {
	case gltf.ComponentFloat:
		result := make([][4]float32, count)
		for i := range count {
			off := start + i*stride
			for j := range 4 {
				result[i][j] = readFloat32(buf[off+j*4:])
			}
		}
		return result, nil
	case gltf.ComponentUbyte:
		result := make([][4]uint8, count)
		for i := range count {
			off := start + i*stride
			copy(result[i][:], buf[off:off+4])
		}
		return result, nil
	case gltf.ComponentUshort:
		result := make([][4]uint16, count)
		for i := range count {
			off := start + i*stride
			for j := range 4 {
				o := off + j*2
				result[i][j] = uint16(buf[o]) | uint16(buf[o+1])<<8
			}
		}
		return result, nil
	}
	return nil, fmt.Errorf("unsupported vec4 component type %v", ct)
}

func readVec3Accessor(doc *gltf.Document, accessorIdx int) ([]math3d.Vec3, error) {
	accessor := doc.Accessors[accessorIdx]
	if accessor.Type != gltf.AccessorVec3 {
		return nil, fmt.Errorf("expected VEC3, got %v", accessor.Type)
	}
	data, err := readAccessorData(doc, accessor)
	if err != nil {
		return nil, err
	}
	floats, ok := data.([][3]float32)
	if !ok {
		return nil, fmt.Errorf("unexpected data type for VEC3")
	}
	result := make([]math3d.Vec3, len(floats))
	for i, f := range floats {
		result[i] = math3d.V3(float64(f[0]), float64(f[1]), float64(f[2]))
	}
	return result, nil
}

func readVec2Accessor(doc *gltf.Document, accessorIdx int) ([]math3d.Vec2, error) {
	accessor := doc.Accessors[accessorIdx]
	if accessor.Type != gltf.AccessorVec2 {
		return nil, fmt.Errorf("expected VEC2, got %v", accessor.Type)
	}
	data, err := readAccessorData(doc, accessor)
	if err != nil {
		return nil, err
	}
	floats, ok := data.([][2]float32)
	if !ok {
		return nil, fmt.Errorf("unexpected data type for VEC2")
	}
	result := make([]math3d.Vec2, len(floats))
	for i, f := range floats {
		// glTF UV space has V=0 at the top; flip to this engine's
		// bottom-origin convention, matching the teacher loader.
		result[i] = math3d.V2(float64(f[0]), 1.0-float64(f[1]))
	}
	return result, nil
}

type vec4f struct{ X, Y, Z, W float64 }

func readVec4Accessor(doc *gltf.Document, accessorIdx int) ([]vec4f, error) {
	accessor := doc.Accessors[accessorIdx]
	if accessor.Type != gltf.AccessorVec4 {
		return nil, fmt.Errorf("expected VEC4, got %v", accessor.Type)
	}
	data, err := readAccessorData(doc, accessor)
	if err != nil {
		return nil, err
	}
	floats, ok := data.([][4]float32)
	if !ok {
		return nil, fmt.Errorf("unexpected data type for VEC4")
	}
	result := make([]vec4f, len(floats))
	for i, f := range floats {
		result[i] = vec4f{float64(f[0]), float64(f[1]), float64(f[2]), float64(f[3])}
	}
	return result, nil
}

func readMat4Accessor(doc *gltf.Document, accessorIdx int) ([]math3d.Mat4, error) {
	accessor := doc.Accessors[accessorIdx]
	if accessor.Type != gltf.AccessorMat4 {
		return nil, fmt.Errorf("expected MAT4, got %v", accessor.Type)
	}
	data, err := readAccessorData(doc, accessor)
	if err != nil {
		return nil, err
	}
	mats, ok := data.([][16]float32)
	if !ok {
		return nil, fmt.Errorf("unexpected data type for MAT4")
	}
	result := make([]math3d.Mat4, len(mats))
	for i, m := range mats {
		var out math3d.Mat4
		for j := range 16 {
			out[j] = float64(m[j])
		}
		result[i] = out
	}
	return result, nil
}

func readColorAccessor(doc *gltf.Document, accessorIdx int) ([]scene.Color, error) {
	accessor := doc.Accessors[accessorIdx]
	data, err := readAccessorData(doc, accessor)
	if err != nil {
		return nil, err
	}
	switch v := data.(type) {
	case [][4]float32:
		result := make([]scene.Color, len(v))
		for i, c := range v {
			result[i] = scene.Color{R: float64(c[0]), G: float64(c[1]), B: float64(c[2]), A: float64(c[3])}
		}
		return result, nil
	case [][4]uint8:
		result := make([]scene.Color, len(v))
		for i, c := range v {
			result[i] = scene.RGBA(c[0], c[1], c[2], c[3])
		}
		return result, nil
	case [][4]uint16:
		result := make([]scene.Color, len(v))
		for i, c := range v {
			result[i] = scene.Color{
				R: float64(c[0]) / 65535, G: float64(c[1]) / 65535,
				B: float64(c[2]) / 65535, A: float64(c[3]) / 65535,
			}
		}
		return result, nil
	case [][3]float32:
		result := make([]scene.Color, len(v))
		for i, c := range v {
			result[i] = scene.Color{R: float64(c[0]), G: float64(c[1]), B: float64(c[2]), A: 1}
		}
		return result, nil
	}
	return nil, fmt.Errorf("unexpected data type for COLOR_0: %T", data)
}

func readJointAccessor(doc *gltf.Document, accessorIdx int) ([][4]int, error) {
	accessor := doc.Accessors[accessorIdx]
	data, err := readAccessorData(doc, accessor)
	if err != nil {
		return nil, err
	}
	switch v := data.(type) {
	case [][4]uint8:
		result := make([][4]int, len(v))
		for i, j := range v {
			result[i] = [4]int{int(j[0]), int(j[1]), int(j[2]), int(j[3])}
		}
		return result, nil
	case [][4]uint16:
		result := make([][4]int, len(v))
		for i, j := range v {
			result[i] = [4]int{int(j[0]), int(j[1]), int(j[2]), int(j[3])}
		}
		return result, nil
	}
	return nil, fmt.Errorf("unexpected data type for JOINTS_0: %T", data)
}

func readWeightAccessor(doc *gltf.Document, accessorIdx int) ([][4]float64, error) {
	accessor := doc.Accessors[accessorIdx]
	data, err := readAccessorData(doc, accessor)
	if err != nil {
		return nil, err
	}
	switch v := data.(type) {
	case [][4]float32:
		result := make([][4]float64, len(v))
		for i, w := range v {
			result[i] = [4]float64{float64(w[0]), float64(w[1]), float64(w[2]), float64(w[3])}
		}
		return result, nil
	case [][4]uint8:
		result := make([][4]float64, len(v))
		for i, w := range v {
			result[i] = [4]float64{float64(w[0]) / 255, float64(w[1]) / 255, float64(w[2]) / 255, float64(w[3]) / 255}
		}
		return result, nil
	case [][4]uint16:
		result := make([][4]float64, len(v))
		for i, w := range v {
			result[i] = [4]float64{float64(w[0]) / 65535, float64(w[1]) / 65535, float64(w[2]) / 65535, float64(w[3]) / 65535}
		}
		return result, nil
	}
	return nil, fmt.Errorf("unexpected data type for WEIGHTS_0: %T", data)
}

func readIndices(doc *gltf.Document, accessorIdx int) ([]int, error) {
	accessor := doc.Accessors[accessorIdx]
	data, err := readAccessorData(doc, accessor)
	if err != nil {
		return nil, err
	}
	switch v := data.(type) {
	case []uint8:
		result := make([]int, len(v))
		for i, x := range v {
			result[i] = int(x)
		}
		return result, nil
	case []uint16:
		result := make([]int, len(v))
		for i, x := range v {
			result[i] = int(x)
		}
		return result, nil
	case []uint32:
		result := make([]int, len(v))
		for i, x := range v {
			result[i] = int(x)
		}
		return result, nil
	}
	return nil, fmt.Errorf("unexpected index type: %T", data)
}
