// Package testutil provides deterministic fake backends for tests.
package testutil

import (
	"github.com/godber/ginga/internal/wcs"
)

// FakeProvider implements wcs.Provider with a deterministic linear
// projector, standing in for a native WCS library. The fake's native pixel
// convention is 1-based, so it doubles as a probe for the adapter's origin
// normalization when paired with a driver declaring PixelOrigin 1.
type FakeProvider struct {
	// Scale is degrees per pixel for the linear transform.
	Scale float64

	// OpenErr simulates the native library rejecting the header.
	OpenErr error

	// Last is the projector handed out by the most recent Open.
	Last *FakeProjector
}

// Open returns a projector over the header, or OpenErr.
func (p *FakeProvider) Open(h wcs.Header) (wcs.Projector, error) {
	if p.OpenErr != nil {
		return nil, p.OpenErr
	}
	scale := p.Scale
	if scale == 0 {
		scale = 1.0
	}
	p.Last = &FakeProjector{scale: scale}
	return p.Last, nil
}

// FakeProjector maps 1-based pixel (x, y) to sky (scale*(x-1), scale*(y-1))
// and back. Calls are recorded for assertions.
type FakeProjector struct {
	scale float64

	// ProjectErr, DeprojectErr, and ConvertErr simulate native call
	// failures after a successful open.
	ProjectErr   error
	DeprojectErr error
	ConvertErr   error

	// DeprojectDims records the coordinate dimensionality of the last
	// Deproject call (celestial axes plus padded extra axes).
	DeprojectDims int

	// ConvertFrom and ConvertTo record the systems of the last Convert.
	ConvertFrom wcs.CoordinateSystem
	ConvertTo   wcs.CoordinateSystem
}

// Project converts a 1-based pixel position to degrees.
func (f *FakeProjector) Project(x, y float64) (float64, float64, error) {
	if f.ProjectErr != nil {
		return 0, 0, f.ProjectErr
	}
	return f.scale * (x - 1), f.scale * (y - 1), nil
}

// Deproject converts degrees back to a 1-based pixel position.
func (f *FakeProjector) Deproject(coords []float64) (float64, float64, error) {
	if f.DeprojectErr != nil {
		return 0, 0, f.DeprojectErr
	}
	f.DeprojectDims = len(coords)
	return coords[0]/f.scale + 1, coords[1]/f.scale + 1, nil
}

// Convert shifts longitude by ten degrees per hop between distinct
// systems. Arbitrary but deterministic, which is all the adapter tests
// need to see the plumbing.
func (f *FakeProjector) Convert(from, to wcs.CoordinateSystem, lon, lat float64) (float64, float64, error) {
	if f.ConvertErr != nil {
		return 0, 0, f.ConvertErr
	}
	f.ConvertFrom, f.ConvertTo = from, to
	if from == to {
		return lon, lat, nil
	}
	return lon + 10.0, lat, nil
}
