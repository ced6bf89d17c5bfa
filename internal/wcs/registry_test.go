package wcs_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/godber/ginga/internal/testutil"
	"github.com/godber/ginga/internal/wcs"
)

func TestRegistry_FallbackWhenNothingAvailable(t *testing.T) {
	r := wcs.NewRegistry()

	name, systems := r.Active()
	assert.Equal(t, wcs.KindTangent, name)
	assert.Equal(t, []wcs.CoordinateSystem{wcs.SystemFK5}, systems,
		"fallback supports only the modern-frame equivalent")

	e := r.NewEngine(nil)
	assert.Equal(t, wcs.KindTangent, e.Kind())
}

func TestRegistry_ProbePrefersFirstAvailable(t *testing.T) {
	r := wcs.NewRegistry(
		wcs.WithProvider(wcs.KindWCSLIB, &testutil.FakeProvider{}),
		wcs.WithProvider(wcs.KindWCSTools, &testutil.FakeProvider{}),
	)

	name, _ := r.Active()
	assert.Equal(t, wcs.KindWCSLIB, name, "wcslib comes first in the default preference order")
}

func TestRegistry_ProbeSkipsUnavailable(t *testing.T) {
	r := wcs.NewRegistry(
		wcs.WithProvider(wcs.KindWCSTools, &testutil.FakeProvider{}),
	)

	name, systems := r.Active()
	assert.Equal(t, wcs.KindWCSTools, name)
	assert.Contains(t, systems, wcs.SystemJ2000)
	assert.Contains(t, systems, wcs.SystemB1950)
}

func TestRegistry_PreferenceOverride(t *testing.T) {
	r := wcs.NewRegistry(
		wcs.WithProvider(wcs.KindWCSLIB, &testutil.FakeProvider{}),
		wcs.WithProvider(wcs.KindWCSTools, &testutil.FakeProvider{}),
		wcs.WithPreference(wcs.KindWCSTools, wcs.KindWCSLIB, wcs.KindTangent),
	)

	name, _ := r.Active()
	assert.Equal(t, wcs.KindWCSTools, name)
}

func TestRegistry_UseStrictRaisesOnUnavailable(t *testing.T) {
	r := wcs.NewRegistry()

	ok, err := r.Use(wcs.KindWCSLIB, true)
	assert.False(t, ok)
	require.Error(t, err)
	assert.True(t, wcs.IsUnavailableBackend(err))

	name, _ := r.Active()
	assert.Equal(t, wcs.KindTangent, name, "failed switch leaves the active backend unchanged")
}

func TestRegistry_UseLenientReturnsFailure(t *testing.T) {
	r := wcs.NewRegistry()

	ok, err := r.Use(wcs.KindWCSLIB, false)
	assert.False(t, ok)
	assert.NoError(t, err)

	name, _ := r.Active()
	assert.Equal(t, wcs.KindTangent, name)
}

func TestRegistry_UseUnknownBackend(t *testing.T) {
	r := wcs.NewRegistry()

	ok, err := r.Use("kapteyn", true)
	assert.False(t, ok)
	assert.True(t, wcs.IsUnavailableBackend(err))
}

func TestRegistry_UseSwitchesAtomically(t *testing.T) {
	r := wcs.NewRegistry(wcs.WithProvider(wcs.KindAST, &testutil.FakeProvider{}))

	name, _ := r.Active()
	require.Equal(t, wcs.KindAST, name)

	ok, err := r.Use(wcs.KindTangent, true)
	assert.True(t, ok)
	assert.NoError(t, err)

	name, systems := r.Active()
	assert.Equal(t, wcs.KindTangent, name)
	assert.Equal(t, []wcs.CoordinateSystem{wcs.SystemFK5}, systems)
}

func TestRegistry_EnginesKeepTheirBackend(t *testing.T) {
	r := wcs.NewRegistry(wcs.WithProvider(wcs.KindWCSLIB, &testutil.FakeProvider{}))

	e := r.NewEngine(nil)
	require.Equal(t, wcs.KindWCSLIB, e.Kind())

	_, err := r.Use(wcs.KindTangent, true)
	require.NoError(t, err)

	// Already-constructed engines are unaffected by registry switches.
	assert.Equal(t, wcs.KindWCSLIB, e.Kind())
	assert.Equal(t, wcs.KindTangent, r.NewEngine(nil).Kind())
}

func TestRegistry_CustomDriver(t *testing.T) {
	d := &wcs.AdapterDriver{
		BackendName:   "fake",
		Provider:      &testutil.FakeProvider{},
		PixelOrigin:   1,
		Policy:        wcs.PolicyICRS,
		DefaultSystem: wcs.SystemICRS,
		Supported:     []wcs.CoordinateSystem{wcs.SystemICRS},
	}
	r := wcs.NewRegistry(
		wcs.WithDriver(d),
		wcs.WithPreference("fake", wcs.KindTangent),
	)

	name, systems := r.Active()
	assert.Equal(t, "fake", name)
	assert.Equal(t, []wcs.CoordinateSystem{wcs.SystemICRS}, systems)
	assert.Equal(t, "fake", r.NewEngine(nil).Kind())
}

func TestRegistry_Backends(t *testing.T) {
	r := wcs.NewRegistry(wcs.WithProvider(wcs.KindAST, &testutil.FakeProvider{}))

	infos := r.Backends()
	require.Len(t, infos, 4)

	byName := make(map[string]wcs.BackendInfo, len(infos))
	for _, info := range infos {
		byName[info.Name] = info
	}

	assert.False(t, byName[wcs.KindWCSLIB].Available)
	assert.True(t, byName[wcs.KindAST].Available)
	assert.True(t, byName[wcs.KindAST].Active)
	assert.True(t, byName[wcs.KindTangent].Available)
	assert.False(t, byName[wcs.KindTangent].Active)

	// Preference order is preserved in the listing.
	assert.Equal(t, wcs.KindWCSLIB, infos[0].Name)
	assert.Equal(t, wcs.KindTangent, infos[3].Name)
}
