package quantizedmesh

import (
	"encoding/binary"
	"encoding/json"
	"math"

	"github.com/cesiumgo/terrain/mesh"
)

// Extension identifiers carried in a tile's TLV trailer (§6).
const (
	extOctEncodedNormals = 1
	extWaterMask         = 2
	extMetadata          = 4
)

const maxU16Index = 65536

// AvailableRectangle describes one child tile the metadata extension
// reports as available, in tile-coordinate space.
type AvailableRectangle struct {
	StartX, StartY, EndX, EndY int
}

// Result is everything Decode recovers from one quantized-mesh tile.
type Result struct {
	Mesh   *mesh.Mesh
	Errors ErrorList

	WaterMaskAllWater bool
	WaterMaskAllLand  bool
	WaterMask         []byte // 256x256 when neither all-water nor all-land

	Available [][]AvailableRectangle
}

// skirtHeightFor computes the uniform skirt height Decode applies to all
// four edges: 5 times the maximum geometric error at the tile's level,
// times the rectangle's width (§4.B.1 step 8).
func skirtHeightFor(ellipsoid *Ellipsoid, rectangle GlobeRectangle, level uint32) float64 {

	return 5 * MaxGeometricErrorAtLevel(ellipsoid, level) * rectangle.ComputeWidth()
}

// Decode parses one quantized-mesh tile buffer into a renderable mesh
// (§4.B.1). rectangle and level locate the tile geographically so vertex
// positions and skirt heights can be computed; ellipsoid is normally
// WGS84.
func Decode(data []byte, rectangle GlobeRectangle, level uint32, ellipsoid *Ellipsoid) (*Result, error) {

	result := &Result{}
	r := newLEReader(data)

	header, err := parseHeader(r)
	if err != nil {
		result.Errors.Add("%v", err)
		return result, err
	}

	vertexCount := header.VertexCount
	u := make([]uint16, vertexCount)
	v := make([]uint16, vertexCount)
	h := make([]uint16, vertexCount)
	for i := range u {
		u[i] = r.u16()
	}
	for i := range v {
		v[i] = r.u16()
	}
	for i := range h {
		h[i] = r.u16()
	}
	if r.err != nil {
		result.Errors.Add("%v", r.err)
		return result, r.err
	}

	center := Vector3d{X: header.CenterX, Y: header.CenterY, Z: header.CenterZ}
	positions := make([]float32, vertexCount*3)
	uvh := make([]VertexUVH, vertexCount)

	var uAccum, vAccum, hAccum int32
	for i := uint32(0); i < vertexCount; i++ {
		uAccum += int32(ZigZagDecode(int32(u[i])))
		vAccum += int32(ZigZagDecode(int32(v[i])))
		hAccum += int32(ZigZagDecode(int32(h[i])))

		uRatio := float64(uAccum) / 32767.0
		vRatio := float64(vAccum) / 32767.0
		hRatio := float64(hAccum) / 32767.0
		uvh[i] = VertexUVH{U: uRatio, V: vRatio, H: hRatio}

		longitude := Lerp(rectangle.West, rectangle.East, uRatio)
		latitude := Lerp(rectangle.South, rectangle.North, vRatio)
		height := Lerp(float64(header.MinimumHeight), float64(header.MaximumHeight), hRatio)

		x, y, z := ellipsoid.CartographicToCartesian(longitude, latitude, height)
		positions[i*3] = float32(x - center.X)
		positions[i*3+1] = float32(y - center.Y)
		positions[i*3+2] = float32(z - center.Z)
	}

	indexType := mesh.ComponentUnsignedShort
	var rawIndices []uint32
	var triangleCount uint32
	if vertexCount > maxU16Index {
		indexType = mesh.ComponentUnsignedInt
		// 32-bit index streams are padded to a 4-byte boundary right
		// after the u/v/height streams, before triangleCount itself is
		// read (§4.B.1 step 4) — not between triangleCount and the
		// index buffer.
		if r.pos%4 != 0 {
			r.pos += 2
		}
		triangleCount = r.u32()
		rawIndices = make([]uint32, triangleCount*3)
		for i := range rawIndices {
			rawIndices[i] = r.u32()
		}
	} else {
		triangleCount = r.u32()
		rawIndices = make([]uint32, triangleCount*3)
		for i := range rawIndices {
			rawIndices[i] = uint32(r.u16())
		}
	}
	indices := DecodeHighWatermark(rawIndices)
	if r.err != nil {
		result.Errors.Add("%v", r.err)
		return result, r.err
	}

	readEdge := func() []uint32 {
		count := r.u32()
		edge := make([]uint32, count)
		for i := range edge {
			if indexType == mesh.ComponentUnsignedInt {
				edge[i] = r.u32()
			} else {
				edge[i] = uint32(r.u16())
			}
		}
		return edge
	}
	edges := EdgeIndices{
		West:  readEdge(),
		South: readEdge(),
		East:  readEdge(),
		North: readEdge(),
	}
	if r.err != nil {
		result.Errors.Add("%v", r.err)
		return result, r.err
	}

	var normals []float32
	edgeHeights := EdgeHeights{}
	uniform := skirtHeightFor(ellipsoid, rectangle, level)
	edgeHeights.West, edgeHeights.South, edgeHeights.East, edgeHeights.North = uniform, uniform, uniform, uniform

	for r.pos < len(data) {
		if len(data)-r.pos < extensionTLVHeaderLength {
			break
		}
		extID := data[r.pos]
		extLength := binary.LittleEndian.Uint32(data[r.pos+1 : r.pos+extensionTLVHeaderLength])
		start := r.pos + extensionTLVHeaderLength
		end := start + int(extLength)
		r.pos = start
		if end > len(data) {
			result.Errors.Add("extension %d: declared length overruns buffer", extID)
			break
		}
		payload := data[start:end]

		switch extID {
		case extOctEncodedNormals:
			if len(payload) < int(vertexCount)*2 {
				result.Errors.Add("normal extension: payload too short")
			} else {
				normals = decodeOctEncodedNormals(payload, vertexCount)
			}
		case extWaterMask:
			switch len(payload) {
			case 1:
				if payload[0] == 0 {
					result.WaterMaskAllLand = true
				} else {
					result.WaterMaskAllWater = true
				}
			case 256 * 256:
				result.WaterMask = append([]byte(nil), payload...)
			default:
				result.Errors.Add("water mask extension: unexpected length %d", len(payload))
			}
		case extMetadata:
			result.Available, err = parseMetadataExtension(payload)
			if err != nil {
				result.Errors.Add("metadata extension: %v", err)
			}
		default:
			result.Errors.Add("unknown extension id %d skipped", extID)
		}
		r.pos = end
	}

	if normals == nil {
		normals = synthesizeNormals(mesh.ModeTriangles, positions, indices, vertexCount)
	}

	sorted := SortedEdges(edges, uvh)
	builder := NewSkirtBuilder(ellipsoid, rectangle, float64(header.MinimumHeight), float64(header.MaximumHeight), center, vertexCount)

	copyAttrsAt := func(srcIdx uint32) map[string][]float32 {
		return map[string][]float32{
			mesh.AttrNormal: {normals[srcIdx*3], normals[srcIdx*3+1], normals[srcIdx*3+2]},
		}
	}
	builder.AddEdge(sorted.West, uvh, edgeHeights.West, EdgeWest, copyAttrsAt)
	builder.AddEdge(sorted.South, uvh, edgeHeights.South, EdgeSouth, copyAttrsAt)
	builder.AddEdge(sorted.East, uvh, edgeHeights.East, EdgeEast, copyAttrsAt)
	builder.AddEdge(sorted.North, uvh, edgeHeights.North, EdgeNorth, copyAttrsAt)

	allPositions := append(positions, builder.positions...)
	allNormals := append(normals, builder.extraFloatAttrs[mesh.AttrNormal]...)
	allIndices := append(append([]uint32(nil), indices...), builder.indices...)

	result.Mesh = assembleMesh(allPositions, allNormals, allIndices, indexType, &mesh.SkirtMetadata{
		NoSkirtIndicesBegin:  0,
		NoSkirtIndicesCount:  uint32(len(indices)),
		NoSkirtVerticesBegin: 0,
		NoSkirtVerticesCount: vertexCount,
		MeshCenter:           [3]float64{center.X, center.Y, center.Z},
		SkirtWestHeight:      edgeHeights.West,
		SkirtSouthHeight:     edgeHeights.South,
		SkirtEastHeight:      edgeHeights.East,
		SkirtNorthHeight:     edgeHeights.North,
	})

	return result, nil
}

// assembleMesh packs flat position/normal/index arrays into buffers,
// buffer views and accessors, producing a single triangle-list
// primitive carrying the given skirt metadata in its extras.
func assembleMesh(positions, normals []float32, indices []uint32, indexComponentType int, skirt *mesh.SkirtMetadata) *mesh.Mesh {

	m := &mesh.Mesh{}

	posBytes := float32SliceToBytes(positions)
	posBuf := mesh.NewBuffer(posBytes)
	m.Buffers = append(m.Buffers, posBuf)
	posView := &mesh.BufferView{BufferIndex: 0, ByteOffset: 0, ByteLength: len(posBytes), Target: mesh.TargetArrayBuffer}
	m.BufferViews = append(m.BufferViews, posView)
	posAccessor := &mesh.Accessor{BufferView: 0, HasBufferView: true, ComponentType: mesh.ComponentFloat, Type: mesh.TypeVec3, Count: len(positions) / 3}
	m.Accessors = append(m.Accessors, posAccessor)

	normBytes := float32SliceToBytes(normals)
	normBuf := mesh.NewBuffer(normBytes)
	m.Buffers = append(m.Buffers, normBuf)
	normView := &mesh.BufferView{BufferIndex: 1, ByteOffset: 0, ByteLength: len(normBytes), Target: mesh.TargetArrayBuffer}
	m.BufferViews = append(m.BufferViews, normView)
	normAccessor := &mesh.Accessor{BufferView: 1, HasBufferView: true, ComponentType: mesh.ComponentFloat, Type: mesh.TypeVec3, Count: len(normals) / 3}
	m.Accessors = append(m.Accessors, normAccessor)

	idxBytes := uint32SliceToBytes(indices, indexComponentType)
	idxBuf := mesh.NewBuffer(idxBytes)
	m.Buffers = append(m.Buffers, idxBuf)
	idxView := &mesh.BufferView{BufferIndex: 2, ByteOffset: 0, ByteLength: len(idxBytes), Target: mesh.TargetElementArrayBuffer}
	m.BufferViews = append(m.BufferViews, idxView)
	idxAccessor := &mesh.Accessor{BufferView: 2, HasBufferView: true, ComponentType: indexComponentType, Type: mesh.TypeScalar, Count: len(indices)}
	m.Accessors = append(m.Accessors, idxAccessor)

	prim := &mesh.Primitive{
		Mode: mesh.ModeTriangles,
		Attributes: map[string]int{
			mesh.AttrPosition: 0,
			mesh.AttrNormal:   1,
		},
		Indices:    2,
		HasIndices: true,
		Extras:     map[string]interface{}{mesh.ExtrasKey: skirt},
	}
	m.Primitives = append(m.Primitives, prim)
	return m
}

func float32SliceToBytes(values []float32) []byte {

	out := make([]byte, len(values)*4)
	for i, v := range values {
		binary.LittleEndian.PutUint32(out[i*4:], math.Float32bits(v))
	}
	return out
}

func uint32SliceToBytes(values []uint32, componentType int) []byte {

	if componentType == mesh.ComponentUnsignedInt {
		out := make([]byte, len(values)*4)
		for i, v := range values {
			binary.LittleEndian.PutUint32(out[i*4:], v)
		}
		return out
	}
	out := make([]byte, len(values)*2)
	for i, v := range values {
		binary.LittleEndian.PutUint16(out[i*2:], uint16(v))
	}
	return out
}

// parseMetadataExtension parses extension 4's JSON payload, returning
// the "available" table of child rectangles per additional level (§6).
func parseMetadataExtension(payload []byte) ([][]AvailableRectangle, error) {

	if len(payload) < 4 {
		return nil, errTruncated("metadata JSON length")
	}
	jsonLength := binary.LittleEndian.Uint32(payload[0:4])
	if 4+int(jsonLength) > len(payload) {
		return nil, errTruncated("metadata JSON")
	}
	var doc struct {
		Available [][]struct {
			StartX int `json:"startX"`
			StartY int `json:"startY"`
			EndX   int `json:"endX"`
			EndY   int `json:"endY"`
		} `json:"available"`
	}
	if err := json.Unmarshal(payload[4:4+int(jsonLength)], &doc); err != nil {
		return nil, err
	}
	out := make([][]AvailableRectangle, len(doc.Available))
	for i, level := range doc.Available {
		rects := make([]AvailableRectangle, len(level))
		for j, r := range level {
			rects[j] = AvailableRectangle{StartX: r.StartX, StartY: r.StartY, EndX: r.EndX, EndY: r.EndY}
		}
		out[i] = rects
	}
	return out, nil
}
