package mesh

// OverlayMetadata is carried in a primitive's Extras under OverlayExtrasKey
// (§4.B.2 step 6). It records the raster-overlay water-mask flags and the
// UV translation/scale a renderer uses to sample a shared overlay texture
// across a tile's descendants without re-requesting it per child.
type OverlayMetadata struct {
	OnlyWater bool
	OnlyLand  bool

	// WaterMaskTranslationX, WaterMaskTranslationY, WaterMaskScaleX and
	// WaterMaskScaleY locate this tile's footprint within the ancestor
	// tile that actually owns the water-mask texture.
	WaterMaskTranslationX float64
	WaterMaskTranslationY float64
	WaterMaskScaleX       float64
	WaterMaskScaleY       float64
}

// OverlayExtrasKey is the key under which OverlayMetadata is stored in a
// Primitive's Extras map.
const OverlayExtrasKey = "waterMaskMetadata"

// ToExtras renders o into the JSON-extras key layout from §6.
func (o *OverlayMetadata) ToExtras() map[string]interface{} {

	return map[string]interface{}{
		"onlyWater":             o.OnlyWater,
		"onlyLand":              o.OnlyLand,
		"waterMaskTranslationX": o.WaterMaskTranslationX,
		"waterMaskTranslationY": o.WaterMaskTranslationY,
		"waterMaskScaleX":       o.WaterMaskScaleX,
		"waterMaskScaleY":       o.WaterMaskScaleY,
	}
}

// OverlayFromPrimitive extracts the OverlayMetadata from a primitive's
// extras, if present.
func OverlayFromPrimitive(p *Primitive) (*OverlayMetadata, bool) {

	if p.Extras == nil {
		return nil, false
	}
	raw, ok := p.Extras[OverlayExtrasKey]
	if !ok {
		return nil, false
	}
	o, ok := raw.(*OverlayMetadata)
	return o, ok
}
