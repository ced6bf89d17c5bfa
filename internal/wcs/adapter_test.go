package wcs_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/godber/ginga/internal/testutil"
	"github.com/godber/ginga/internal/wcs"
)

func fakeDriver(p *testutil.FakeProvider) *wcs.AdapterDriver {
	return &wcs.AdapterDriver{
		BackendName:   "fake",
		Provider:      p,
		PixelOrigin:   1, // the fake library indexes pixels from 1
		Policy:        wcs.PolicyICRS,
		DefaultSystem: wcs.SystemICRS,
		Supported: []wcs.CoordinateSystem{
			wcs.SystemICRS, wcs.SystemFK5, wcs.SystemFK4,
			wcs.SystemGalactic, wcs.SystemEcliptic,
		},
	}
}

func icrsHeader() wcs.Header {
	return wcs.Header{"CTYPE1": "RA---TAN", "CTYPE2": "DEC--TAN", "RADESYS": "ICRS"}
}

func loadAdapter(t *testing.T, p *testutil.FakeProvider, h wcs.Header) *wcs.AdapterEngine {
	t.Helper()
	e := wcs.NewAdapterEngine(fakeDriver(p), nil)
	require.NoError(t, e.Load(h))
	return e
}

func TestAdapterEngine_OriginNormalization(t *testing.T) {
	p := &testutil.FakeProvider{Scale: 1.0}
	e := loadAdapter(t, p, icrsHeader())

	// Data pixel (0,0) and FITS pixel (1,1) are the same image position;
	// the fake's native origin is 1, so both reach it as (1,1).
	data, err := e.PixelToSky(wcs.PixelCoord{X: 0, Y: 0}, wcs.ConvData)
	require.NoError(t, err)
	assert.Equal(t, 0.0, data.Lon)
	assert.Equal(t, 0.0, data.Lat)
	assert.Equal(t, wcs.SystemICRS, data.System)

	fits, err := e.PixelToSky(wcs.PixelCoord{X: 1, Y: 1}, wcs.ConvFITS)
	require.NoError(t, err)
	assert.Equal(t, data, fits)

	// The inverse comes back in the caller's convention.
	pd, err := e.SkyToPixel(2.0, 3.0, wcs.ConvData, 0)
	require.NoError(t, err)
	assert.Equal(t, wcs.PixelCoord{X: 2, Y: 3}, pd)

	pf, err := e.SkyToPixel(2.0, 3.0, wcs.ConvFITS, 0)
	require.NoError(t, err)
	assert.Equal(t, wcs.PixelCoord{X: 3, Y: 4}, pf)
}

func TestAdapterEngine_ExtraAxesPadding(t *testing.T) {
	p := &testutil.FakeProvider{}
	e := loadAdapter(t, p, icrsHeader())

	_, err := e.SkyToPixel(2.0, 3.0, wcs.ConvData, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, p.Last.DeprojectDims)

	_, err = e.SkyToPixel(2.0, 3.0, wcs.ConvData, 3)
	require.NoError(t, err)
	assert.Equal(t, 5, p.Last.DeprojectDims, "extra axes padded with zeros onto the native call")
}

func TestAdapterEngine_PixelToSystem(t *testing.T) {
	p := &testutil.FakeProvider{Scale: 1.0}
	e := loadAdapter(t, p, icrsHeader())

	// Conversion is delegated to the backend.
	sky, err := e.PixelToSystem(wcs.PixelCoord{X: 0, Y: 0}, wcs.SystemGalactic, wcs.ConvData)
	require.NoError(t, err)
	assert.Equal(t, wcs.SystemGalactic, sky.System)
	assert.Equal(t, 10.0, sky.Lon, "fake shifts lon by 10 per frame hop")
	assert.Equal(t, wcs.SystemICRS, p.Last.ConvertFrom)
	assert.Equal(t, wcs.SystemGalactic, p.Last.ConvertTo)

	// Empty target selects the driver's vocabulary default; same-system
	// requests skip the conversion entirely.
	sky, err = e.PixelToSystem(wcs.PixelCoord{X: 0, Y: 0}, "", wcs.ConvData)
	require.NoError(t, err)
	assert.Equal(t, wcs.SystemICRS, sky.System)
	assert.Equal(t, 0.0, sky.Lon)
}

func TestAdapterEngine_UnsupportedTargetSystem(t *testing.T) {
	e := loadAdapter(t, &testutil.FakeProvider{}, icrsHeader())

	_, err := e.PixelToSystem(wcs.PixelCoord{X: 0, Y: 0}, wcs.SystemJ2000, wcs.ConvData)
	require.Error(t, err)
	assert.True(t, wcs.IsUnsupportedSystem(err), "j2000 belongs to the legacy vocabulary")
}

func TestAdapterEngine_UnsupportedSourceSystem(t *testing.T) {
	d := fakeDriver(&testutil.FakeProvider{})
	d.Supported = []wcs.CoordinateSystem{wcs.SystemGalactic}
	e := wcs.NewAdapterEngine(d, nil)
	require.NoError(t, e.Load(icrsHeader()))

	_, err := e.PixelToSystem(wcs.PixelCoord{X: 0, Y: 0}, wcs.SystemGalactic, wcs.ConvData)
	require.Error(t, err)
	assert.True(t, wcs.IsUnsupportedSystem(err))
}

func TestAdapterEngine_RawSystemHasNoUsableWCS(t *testing.T) {
	// No CTYPE1: classification degrades to raw. Plain transforms still
	// work (classification is advisory), but system conversion refuses.
	e := loadAdapter(t, &testutil.FakeProvider{}, wcs.Header{"CRPIX1": 50.0})
	assert.Equal(t, wcs.SystemRaw, e.System())

	_, err := e.PixelToSky(wcs.PixelCoord{X: 0, Y: 0}, wcs.ConvData)
	assert.NoError(t, err)

	_, err = e.PixelToSystem(wcs.PixelCoord{X: 0, Y: 0}, wcs.SystemICRS, wcs.ConvData)
	require.Error(t, err)
	assert.True(t, wcs.IsUnboundEngine(err))
}

func TestAdapterEngine_RejectedHeaderIsBrokenNotPartial(t *testing.T) {
	p := &testutil.FakeProvider{OpenErr: errors.New("native library rejected header")}
	e := wcs.NewAdapterEngine(fakeDriver(p), nil)

	err := e.Load(icrsHeader())
	require.Error(t, err)
	assert.True(t, wcs.IsLoadFailure(err))
	assert.Equal(t, err, e.LoadError())
	assert.Equal(t, wcs.SystemRaw, e.System())

	_, terr := e.PixelToSky(wcs.PixelCoord{X: 0, Y: 0}, wcs.ConvData)
	assert.True(t, wcs.IsLoadFailure(terr), "broken engine keeps reporting the recorded reason")
}

func TestAdapterEngine_NativeCallFailures(t *testing.T) {
	p := &testutil.FakeProvider{}
	e := loadAdapter(t, p, icrsHeader())

	p.Last.ProjectErr = errors.New("boom")
	_, err := e.PixelToSky(wcs.PixelCoord{X: 0, Y: 0}, wcs.ConvData)
	require.Error(t, err)
	assert.True(t, wcs.IsComputationFailure(err))

	p.Last.ProjectErr = nil
	p.Last.DeprojectErr = errors.New("divergent")
	_, err = e.SkyToPixel(2.0, 3.0, wcs.ConvData, 0)
	require.Error(t, err)
	assert.True(t, wcs.IsComputationFailure(err))
}

func TestAdapterEngine_Unbound(t *testing.T) {
	e := wcs.NewAdapterEngine(fakeDriver(&testutil.FakeProvider{}), nil)

	_, err := e.PixelToSky(wcs.PixelCoord{X: 0, Y: 0}, wcs.ConvData)
	assert.True(t, wcs.IsUnboundEngine(err))
	assert.Equal(t, wcs.SystemRaw, e.System())
}

func TestAdapterEngine_LoadDoesNotMutateCaller(t *testing.T) {
	h := icrsHeader()
	h["CUNIT1"] = "Degree"

	e := loadAdapter(t, &testutil.FakeProvider{}, h)
	_ = e

	assert.Equal(t, "Degree", h["CUNIT1"])
}
