package quantizedmesh

import "math"

// Ellipsoid and the geodetic helpers below are the "library of pure
// functions with known signatures" the spec treats coordinate-system math
// as (§1 Out of scope). Only WGS84 is modeled, since that is the only
// ellipsoid the quantized-mesh terrain format is defined over.
type Ellipsoid struct {
	RadiusX float64
	RadiusY float64
	RadiusZ float64
}

// WGS84 is the standard terrestrial reference ellipsoid quantized-mesh
// tiles are encoded against.
var WGS84 = &Ellipsoid{
	RadiusX: 6378137.0,
	RadiusY: 6378137.0,
	RadiusZ: 6356752.3142451793,
}

func (e *Ellipsoid) radiiSquared() (x, y, z float64) {

	return e.RadiusX * e.RadiusX, e.RadiusY * e.RadiusY, e.RadiusZ * e.RadiusZ
}

// MaximumRadius is the largest of the ellipsoid's three radii.
func (e *Ellipsoid) MaximumRadius() float64 {

	m := e.RadiusX
	if e.RadiusY > m {
		m = e.RadiusY
	}
	if e.RadiusZ > m {
		m = e.RadiusZ
	}
	return m
}

// CartographicToCartesian converts a geodetic (longitude, latitude,
// height) triple, in radians and meters, to Earth-centered,
// Earth-fixed Cartesian coordinates, using the standard geodetic
// surface-normal method.
func (e *Ellipsoid) CartographicToCartesian(longitude, latitude, height float64) (x, y, z float64) {

	cosLat := math.Cos(latitude)
	n := Vector3d{
		X: cosLat * math.Cos(longitude),
		Y: cosLat * math.Sin(longitude),
		Z: math.Sin(latitude),
	}
	rx2, ry2, rz2 := e.radiiSquared()
	k := Vector3d{X: rx2 * n.X, Y: ry2 * n.Y, Z: rz2 * n.Z}
	gamma := math.Sqrt(n.X*k.X + n.Y*k.Y + n.Z*k.Z)

	surfaceX := k.X / gamma
	surfaceY := k.Y / gamma
	surfaceZ := k.Z / gamma

	return surfaceX + height*n.X, surfaceY + height*n.Y, surfaceZ + height*n.Z
}

// Vector3d is a minimal double-precision 3-vector used by this package's
// geodetic math and for tile centers (by the decoder, the skirt builder
// and the upsample package).
type Vector3d struct {
	X, Y, Z float64
}

// GeodeticSurfaceNormal returns the outward unit normal of the
// ellipsoid's surface at the given geodetic longitude/latitude, used by
// the skirt generator to displace vertices "downward" (§4.B.1 step 8).
func (e *Ellipsoid) GeodeticSurfaceNormal(longitude, latitude float64) Vector3d {

	cosLat := math.Cos(latitude)
	return Vector3d{
		X: cosLat * math.Cos(longitude),
		Y: cosLat * math.Sin(longitude),
		Z: math.Sin(latitude),
	}
}

// HeightAboveSurface recovers the height (meters) a world-space point lies
// above the ellipsoid surface at a known (longitude, latitude), inverting
// CartographicToCartesian exactly: that function always returns
// surfacePoint + height*normal, and normal is unit length, so projecting
// the difference back onto normal recovers height with no approximation.
// Used by the upsampler, which already knows each clipped vertex's
// longitude/latitude from its UV ratio but only has the Cartesian
// position to recover height from.
func (e *Ellipsoid) HeightAboveSurface(longitude, latitude float64, worldX, worldY, worldZ float64) float64 {

	sx, sy, sz := e.CartographicToCartesian(longitude, latitude, 0)
	n := e.GeodeticSurfaceNormal(longitude, latitude)
	return (worldX-sx)*n.X + (worldY-sy)*n.Y + (worldZ-sz)*n.Z
}

// GlobeRectangle is an axis-aligned (longitude, latitude) rectangle in
// radians.
type GlobeRectangle struct {
	West, South, East, North float64
}

// ComputeWidth returns the rectangle's angular width in radians.
func (r *GlobeRectangle) ComputeWidth() float64 {

	return r.East - r.West
}

// heightmapTerrainQuality and tileSize mirror the constants the original
// terrain provider tunes its geometric-error table with; they are not
// independently specified elsewhere in this codebase and are treated,
// like the rest of this file, as a pure-function stand-in.
const (
	heightmapTerrainQuality = 0.25
	heightmapTileSize       = 65.0
)

// MaxGeometricErrorAtLevel approximates the terrain provider's per-level
// maximum geometric error table: error halves with every additional
// quadtree level.
func MaxGeometricErrorAtLevel(ellipsoid *Ellipsoid, level uint32) float64 {

	base := 2 * math.Pi * ellipsoid.MaximumRadius() * heightmapTerrainQuality / heightmapTileSize
	return base / math.Pow(2, float64(level))
}

// Lerp linearly interpolates between a and b at parameter t.
func Lerp(a, b, t float64) float64 {

	return a + (b-a)*t
}
