package wcs

import (
	"log/slog"

	"github.com/google/uuid"
)

// Projector is the opaque primitive surface a native WCS library exposes
// once it has digested a header: project (pixel to sky), deproject (sky to
// pixel), and frame-to-frame conversion. Pixel arguments and results are in
// the library's own origin convention; the adapter handles the offset.
type Projector interface {
	// Project converts a pixel position to (lon, lat) degrees.
	Project(x, y float64) (lon, lat float64, err error)

	// Deproject converts a sky coordinate to a pixel position. coords
	// holds the two celestial axes first, followed by any zero-valued
	// extra axis coordinates the library's full-dimensional call needs.
	Deproject(coords []float64) (x, y float64, err error)

	// Convert re-expresses (lon, lat) degrees from one coordinate system
	// in another.
	Convert(from, to CoordinateSystem, lon, lat float64) (outLon, outLat float64, err error)
}

// Provider opens a Projector from a header snapshot. A native binding
// registers one with the Registry to make its backend available.
type Provider interface {
	Open(h Header) (Projector, error)
}

// AdapterEngine binds a native library behind the Engine interface. All
// native-backed backends are the same thin adapter, parameterized by an
// AdapterDriver: the driver carries the library's pixel origin, its
// coordinate-system vocabulary, and the Provider that opens projectors.
type AdapterEngine struct {
	logger *slog.Logger
	driver *AdapterDriver

	header  Header
	proj    Projector
	system  CoordinateSystem
	loaded  bool
	loadErr error
}

// NewAdapterEngine constructs an unbound engine over the given driver.
func NewAdapterEngine(d *AdapterDriver, logger *slog.Logger) *AdapterEngine {
	if logger == nil {
		logger = slog.Default()
	}
	return &AdapterEngine{
		logger: logger.With("engine", d.BackendName, "engine_id", uuid.NewString()),
		driver: d,
		system: SystemRaw,
	}
}

// Kind identifies the backend.
func (e *AdapterEngine) Kind() string { return e.driver.BackendName }

// System returns the coordinate system classified at load time.
func (e *AdapterEngine) System() CoordinateSystem { return e.system }

// LoadError returns the recorded failure from the last Load, or nil.
func (e *AdapterEngine) LoadError() error { return e.loadErr }

// Load binds a header snapshot: the private copy is normalized, handed to
// the native library, and classified with the driver's policy. A rejected
// header leaves the engine broken with the reason recorded; it is logged
// and returned, never half-applied.
func (e *AdapterEngine) Load(h Header) error {
	e.loaded = false
	e.loadErr = nil
	e.proj = nil
	e.system = SystemRaw
	e.header = h.Clone().Normalize()

	proj, err := e.driver.Provider.Open(e.header)
	if err != nil {
		e.loadErr = newLoadFailure(e.driver.BackendName, err, "error making WCS object: %v", err)
		e.loaded = true
		e.logger.Error("error making WCS object", "err", err)
		return e.loadErr
	}

	e.proj = proj
	e.system = Classify(e.header, e.driver.Policy)
	e.loaded = true
	return nil
}

func (e *AdapterEngine) usable() error {
	if !e.loaded {
		return newUnbound(e.driver.BackendName, "no header loaded")
	}
	if e.loadErr != nil {
		return e.loadErr
	}
	return nil
}

// PixelToSky converts a pixel position to sky coordinates in the engine's
// classified system. The pixel is shifted into the native library's origin
// convention before the call.
func (e *AdapterEngine) PixelToSky(p PixelCoord, conv PixelConvention) (SkyCoord, error) {
	if err := e.usable(); err != nil {
		return SkyCoord{}, err
	}

	np := shiftToOrigin(p, conv, float64(e.driver.PixelOrigin))
	lon, lat, err := e.proj.Project(np.X, np.Y)
	if err != nil {
		e.logger.Error("error calculating pixtoradec", "err", err)
		return SkyCoord{}, newComputationFailure(e.driver.BackendName, err, "pixtoradec")
	}
	return SkyCoord{Lon: lon, Lat: lat, System: e.system}, nil
}

// SkyToPixel converts sky coordinates (degrees) to a pixel position.
// extraAxes zero-valued coordinates are appended for libraries whose
// deprojection requires the full image dimensionality; the result is
// shifted back into the caller's convention.
func (e *AdapterEngine) SkyToPixel(lon, lat float64, conv PixelConvention, extraAxes int) (PixelCoord, error) {
	if err := e.usable(); err != nil {
		return PixelCoord{}, err
	}

	coords := make([]float64, 2, 2+extraAxes)
	coords[0], coords[1] = lon, lat
	for i := 0; i < extraAxes; i++ {
		coords = append(coords, 0)
	}

	x, y, err := e.proj.Deproject(coords)
	if err != nil {
		e.logger.Error("error calculating radectopix", "err", err)
		return PixelCoord{}, newComputationFailure(e.driver.BackendName, err, "radectopix")
	}
	return shiftFromOrigin(PixelCoord{X: x, Y: y}, conv, float64(e.driver.PixelOrigin)), nil
}

// PixelToSystem converts a pixel position to sky coordinates expressed in
// the target system, delegating the frame conversion to the native
// library. An empty target selects the driver's vocabulary default. Both
// the classified source system and the target must be in the driver's
// supported set.
func (e *AdapterEngine) PixelToSystem(p PixelCoord, target CoordinateSystem, conv PixelConvention) (SkyCoord, error) {
	if e.system == SystemRaw {
		return SkyCoord{}, newUnbound(e.driver.BackendName, "no usable WCS")
	}
	if target == "" {
		target = e.driver.DefaultSystem
	}
	if !e.driver.supports(e.system) {
		return SkyCoord{}, newUnsupportedSystem(e.driver.BackendName, e.system,
			"no such coordinate system available")
	}
	if !e.driver.supports(target) {
		return SkyCoord{}, newUnsupportedSystem(e.driver.BackendName, target,
			"no such coordinate system available")
	}

	sky, err := e.PixelToSky(p, conv)
	if err != nil {
		return SkyCoord{}, err
	}
	if target == e.system {
		return sky, nil
	}

	lon, lat, err := e.proj.Convert(e.system, target, sky.Lon, sky.Lat)
	if err != nil {
		return SkyCoord{}, newComputationFailure(e.driver.BackendName, err, "system conversion")
	}
	return SkyCoord{Lon: lon, Lat: lat, System: target}, nil
}
