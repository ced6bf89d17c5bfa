package wcs

import (
	"log/slog"
	"math"

	"github.com/google/uuid"
)

// KindTangent names the self-contained fallback backend.
const KindTangent = "tangent"

// TangentEngine is the fallback transform engine: a tangent-plane affine
// approximation built from the reference pixel (CRPIX1/2), the reference
// sky position (CRVAL1/2), and a 2x2 CD matrix. It is the only engine
// whose math lives in this module; every other backend delegates to a
// native library through the adapter.
//
// The CD matrix is read from the CD keywords when present, otherwise
// reconstructed from a PC matrix scaled by per-axis CDELT values (PCi_j
// spelling first, then the old PC00i00j spelling).
//
// The engine supports only the system it classified at load time; it has
// no frame-rotation math, so converting to any other system is declared
// unsupported.
type TangentEngine struct {
	logger *slog.Logger

	header  Header
	system  CoordinateSystem
	loaded  bool
	loadErr error

	crpix1, crpix2 float64
	crval1, crval2 float64
	// cd is row-major: cd11, cd12, cd21, cd22.
	cd [4]float64
}

// NewTangentEngine constructs an unbound fallback engine. The logger is
// the diagnostics sink for non-fatal load warnings; nil uses slog.Default.
func NewTangentEngine(logger *slog.Logger) *TangentEngine {
	if logger == nil {
		logger = slog.Default()
	}
	return &TangentEngine{
		logger: logger.With("engine", KindTangent, "engine_id", uuid.NewString()),
		system: SystemRaw,
	}
}

// Kind identifies the backend.
func (e *TangentEngine) Kind() string { return KindTangent }

// System returns the coordinate system classified at load time.
func (e *TangentEngine) System() CoordinateSystem { return e.system }

// LoadError returns the recorded failure from the last Load, or nil.
func (e *TangentEngine) LoadError() error { return e.loadErr }

// Load binds a header snapshot. The caller's map is never mutated: the
// engine works on a normalized private copy. Missing transform keywords or
// out-of-range reference values are a load failure; the engine records the
// reason and stays broken, and the error is also returned.
func (e *TangentEngine) Load(h Header) error {
	e.loaded = false
	e.loadErr = nil
	e.system = SystemRaw
	e.header = h.Clone().Normalize()

	if err := e.readTransform(e.header); err != nil {
		e.loadErr = err
		e.loaded = true
		e.logger.Error("error loading WCS header", "err", err)
		return err
	}

	e.system = Classify(e.header, PolicyICRS)
	e.loaded = true
	return nil
}

func (e *TangentEngine) readTransform(h Header) error {
	var err error
	if e.crpix1, err = h.Float("CRPIX1"); err != nil {
		return newLoadFailure(KindTangent, err, "reference pixel: %v", err)
	}
	if e.crpix2, err = h.Float("CRPIX2"); err != nil {
		return newLoadFailure(KindTangent, err, "reference pixel: %v", err)
	}

	if e.crval1, err = h.Float("CRVAL1"); err != nil {
		return newLoadFailure(KindTangent, err, "reference value: %v", err)
	}
	if e.crval2, err = h.Float("CRVAL2"); err != nil {
		return newLoadFailure(KindTangent, err, "reference value: %v", err)
	}
	if e.crval1 < 0.0 || e.crval1 >= 360.0 {
		return newLoadFailure(KindTangent, nil, "CRVAL1 out of range: %g", e.crval1)
	}
	if e.crval2 < -90.0 || e.crval2 > 90.0 {
		return newLoadFailure(KindTangent, nil, "CRVAL2 out of range: %g", e.crval2)
	}

	cd, err := readLinearMatrix(h)
	if err != nil {
		return err
	}
	e.cd = cd
	return nil
}

// readLinearMatrix obtains the 2x2 linear transform: CD keywords directly,
// or a PC matrix scaled by CDELT. The PCi_j spelling is tried before the
// old PC00i00j spelling.
func readLinearMatrix(h Header) ([4]float64, error) {
	var cd [4]float64
	cdKeys := [4]string{"CD1_1", "CD1_2", "CD2_1", "CD2_2"}
	ok := true
	for i, key := range cdKeys {
		v, err := h.Float(key)
		if err != nil {
			ok = false
			break
		}
		cd[i] = v
	}
	if ok {
		return cd, nil
	}

	cdelt1, err := h.Float("CDELT1")
	if err != nil {
		return cd, newLoadFailure(KindTangent, err, "linear transform matrix: %v", err)
	}
	cdelt2, err := h.Float("CDELT2")
	if err != nil {
		return cd, newLoadFailure(KindTangent, err, "linear transform matrix: %v", err)
	}

	pcKeys := [4]string{"PC1_1", "PC1_2", "PC2_1", "PC2_2"}
	if !h.Has("PC1_1") {
		pcKeys = [4]string{"PC001001", "PC001002", "PC002001", "PC002002"}
	}
	scale := [4]float64{cdelt1, cdelt1, cdelt2, cdelt2}
	for i, key := range pcKeys {
		v, err := h.Float(key)
		if err != nil {
			return cd, newLoadFailure(KindTangent, err, "linear transform matrix: %v", err)
		}
		cd[i] = v * scale[i]
	}
	return cd, nil
}

func (e *TangentEngine) usable() error {
	if !e.loaded {
		return newUnbound(KindTangent, "no header loaded")
	}
	if e.loadErr != nil {
		return e.loadErr
	}
	return nil
}

// PixelToSky converts a pixel position to sky coordinates via the forward
// affine form. The pixel is offset to 1-based internally when given in the
// "data" convention.
func (e *TangentEngine) PixelToSky(p PixelCoord, conv PixelConvention) (SkyCoord, error) {
	if err := e.usable(); err != nil {
		return SkyCoord{}, err
	}

	fp := shiftToOrigin(p, conv, 1)
	dx := fp.X - e.crpix1
	dy := fp.Y - e.crpix2

	lon := (e.cd[0]*dx+e.cd[1]*dy)/math.Cos(radians(e.crval2)) + e.crval1
	lat := e.cd[2]*dx + e.cd[3]*dy + e.crval2

	return SkyCoord{Lon: lon, Lat: lat, System: e.system}, nil
}

// SkyToPixel converts sky coordinates (degrees) to a pixel position via
// the inverse affine form. The requested longitude is wrapped into the
// +/-180 degree window around CRVAL1 first. A zero-determinant matrix is a
// hard error; no division is attempted. extraAxes is accepted for
// interface compatibility and ignored: the transform is two-dimensional.
func (e *TangentEngine) SkyToPixel(lon, lat float64, conv PixelConvention, extraAxes int) (PixelCoord, error) {
	if err := e.usable(); err != nil {
		return PixelCoord{}, err
	}
	_ = extraAxes

	det := e.cd[0]*e.cd[3] - e.cd[1]*e.cd[2]
	if det == 0.0 {
		return PixelCoord{}, &Error{
			Code:    ErrCodeSingularTransform,
			Message: "CD matrix is singular: check values",
			Backend: KindTangent,
		}
	}

	if lon-e.crval1 > 180.0 {
		lon -= 360.0
	} else if lon-e.crval1 < -180.0 {
		lon += 360.0
	}

	cosLat := math.Cos(radians(e.crval2))
	x := (e.cd[3]*cosLat*(lon-e.crval1)-e.cd[1]*(lat-e.crval2))/det + e.crpix1
	y := (e.cd[0]*(lat-e.crval2)-e.cd[2]*cosLat*(lon-e.crval1))/det + e.crpix2

	return shiftFromOrigin(PixelCoord{X: x, Y: y}, conv, 1), nil
}

// PixelToSystem converts a pixel position to sky coordinates in the target
// system. The fallback engine has no frame-conversion math: only its own
// classified system (the default when target is empty) can be requested;
// anything else reports that no system conversion is available.
func (e *TangentEngine) PixelToSystem(p PixelCoord, target CoordinateSystem, conv PixelConvention) (SkyCoord, error) {
	if e.system == SystemRaw {
		return SkyCoord{}, newUnbound(KindTangent, "no usable WCS")
	}
	if target == "" || target == e.system {
		return e.PixelToSky(p, conv)
	}
	return SkyCoord{}, newUnsupportedSystem(KindTangent, target, "no system conversion available")
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180.0
}
