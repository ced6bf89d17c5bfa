package wcs

// PixelConvention declares the origin convention of a pixel coordinate.
type PixelConvention string

const (
	// ConvData is 0-based image-array indexing.
	ConvData PixelConvention = "data"

	// ConvFITS is 1-based traditional FITS indexing.
	ConvFITS PixelConvention = "fits"
)

// PixelCoord is a position on the image in some pixel convention.
type PixelCoord struct {
	X float64
	Y float64
}

// SkyCoord is a celestial position in degrees. It is meaningless without
// its System tag: the same (Lon, Lat) pair names different directions in
// different frames.
type SkyCoord struct {
	Lon    float64
	Lat    float64
	System CoordinateSystem
}

// Engine is the polymorphic contract every backend variant satisfies.
//
// Lifecycle: constructed unbound, Load binds exactly one header snapshot,
// then transforms become callable. A failed Load leaves the engine in an
// explicit broken state (never partially bound); the reason is kept for
// inspection via LoadError and transforms keep returning it.
//
// Each implementation normalizes its native library's pixel-origin
// convention at its own boundary, so callers always supply and receive
// pixels in the convention they request.
type Engine interface {
	// Kind identifies the backend (e.g. "tangent", "wcslib").
	Kind() string

	// Load binds a header snapshot. A load failure is both returned and
	// recorded; the engine stays broken rather than partially bound.
	Load(h Header) error

	// LoadError returns the recorded failure from the last Load, or nil.
	LoadError() error

	// System returns the coordinate system classified at load time, or
	// SystemRaw before a successful Load.
	System() CoordinateSystem

	// PixelToSky converts a pixel position to sky coordinates in the
	// engine's classified system.
	PixelToSky(p PixelCoord, conv PixelConvention) (SkyCoord, error)

	// SkyToPixel converts sky coordinates (degrees, in the engine's
	// classified system) to a pixel position. extraAxes appends that many
	// zero-valued axis coordinates for backends whose native call requires
	// a full-dimensional coordinate beyond the two celestial axes.
	SkyToPixel(lon, lat float64, conv PixelConvention, extraAxes int) (PixelCoord, error)

	// PixelToSystem converts a pixel position to sky coordinates expressed
	// in the target system, delegating the frame conversion to the backend.
	// An empty target selects the engine's vocabulary default.
	PixelToSystem(p PixelCoord, target CoordinateSystem, conv PixelConvention) (SkyCoord, error)
}

// conventionOrigin returns the pixel origin the caller's convention implies.
func conventionOrigin(conv PixelConvention) float64 {
	if conv == ConvFITS {
		return 1
	}
	return 0
}

// shiftToOrigin moves a caller-supplied pixel into a backend's origin
// convention. The conversion is a one-unit offset per axis at most.
func shiftToOrigin(p PixelCoord, conv PixelConvention, origin float64) PixelCoord {
	d := origin - conventionOrigin(conv)
	return PixelCoord{X: p.X + d, Y: p.Y + d}
}

// shiftFromOrigin moves a backend-produced pixel back into the caller's
// requested convention.
func shiftFromOrigin(p PixelCoord, conv PixelConvention, origin float64) PixelCoord {
	d := conventionOrigin(conv) - origin
	return PixelCoord{X: p.X + d, Y: p.Y + d}
}
