package mesh

// SkirtMetadata is carried in a primitive's Extras under the key
// "skirtMeshMetadata" (§3, §6). It records where the non-skirt geometry
// ends so a later upsample pass can re-clip only the original triangles
// and regenerate fresh skirts.
type SkirtMetadata struct {
	NoSkirtIndicesBegin  uint32
	NoSkirtIndicesCount  uint32
	NoSkirtVerticesBegin uint32
	NoSkirtVerticesCount uint32
	MeshCenter           [3]float64
	SkirtWestHeight      float64
	SkirtSouthHeight     float64
	SkirtEastHeight      float64
	SkirtNorthHeight     float64
}

// ExtrasKey is the key under which SkirtMetadata is stored in a
// Primitive's Extras map.
const ExtrasKey = "skirtMeshMetadata"

// ToExtras renders s into the JSON-extras key layout from §6.
func (s *SkirtMetadata) ToExtras() map[string]interface{} {

	return map[string]interface{}{
		"noSkirtIndicesBegin":  s.NoSkirtIndicesBegin,
		"noSkirtIndicesCount":  s.NoSkirtIndicesCount,
		"noSkirtVerticesBegin": s.NoSkirtVerticesBegin,
		"noSkirtVerticesCount": s.NoSkirtVerticesCount,
		"meshCenter":           []float64{s.MeshCenter[0], s.MeshCenter[1], s.MeshCenter[2]},
		"skirtWestHeight":      s.SkirtWestHeight,
		"skirtSouthHeight":     s.SkirtSouthHeight,
		"skirtEastHeight":      s.SkirtEastHeight,
		"skirtNorthHeight":     s.SkirtNorthHeight,
	}
}

// SkirtFromPrimitive extracts the SkirtMetadata from a primitive's
// extras, if present.
func SkirtFromPrimitive(p *Primitive) (*SkirtMetadata, bool) {

	if p.Extras == nil {
		return nil, false
	}
	raw, ok := p.Extras[ExtrasKey]
	if !ok {
		return nil, false
	}
	s, ok := raw.(*SkirtMetadata)
	return s, ok
}
