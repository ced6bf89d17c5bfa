package wcs

import (
	"fmt"
	"log/slog"
	"sync"
)

// Builtin backend names, in default preference order. The first three are
// native libraries reached through registered Providers; tangent is the
// self-contained fallback and is always available.
const (
	KindWCSLIB   = "wcslib"
	KindAST      = "ast"
	KindWCSTools = "wcstools"
)

// DefaultPreference is the probe order used when the caller does not
// override it.
var DefaultPreference = []string{KindWCSLIB, KindAST, KindWCSTools, KindTangent}

// Driver describes one backend to the Registry: availability, the
// coordinate systems it supports, and how to construct its engines.
type Driver interface {
	Name() string
	Available() bool
	Systems() []CoordinateSystem
	NewEngine(logger *slog.Logger) Engine
}

// AdapterDriver is the Driver for a native-library backend. It is
// available once a Provider is attached; until then it describes a known
// backend whose library is not present.
type AdapterDriver struct {
	// BackendName identifies the backend (e.g. "wcslib").
	BackendName string

	// Provider opens native projectors; nil means the library is absent.
	Provider Provider

	// PixelOrigin is the library's pixel-origin convention (0 or 1).
	PixelOrigin int

	// Policy selects the classification variant the backend historically
	// used.
	Policy ClassifyPolicy

	// DefaultSystem is the vocabulary default for PixelToSystem.
	DefaultSystem CoordinateSystem

	// Supported is the backend's coordinate-system support set.
	Supported []CoordinateSystem
}

// Name identifies the backend.
func (d *AdapterDriver) Name() string { return d.BackendName }

// Available reports whether the native library is present.
func (d *AdapterDriver) Available() bool { return d.Provider != nil }

// Systems returns a copy of the backend's support set.
func (d *AdapterDriver) Systems() []CoordinateSystem {
	out := make([]CoordinateSystem, len(d.Supported))
	copy(out, d.Supported)
	return out
}

// NewEngine constructs an unbound adapter engine over this driver.
func (d *AdapterDriver) NewEngine(logger *slog.Logger) Engine {
	return NewAdapterEngine(d, logger)
}

func (d *AdapterDriver) supports(s CoordinateSystem) bool {
	for _, sys := range d.Supported {
		if sys == s {
			return true
		}
	}
	return false
}

// tangentDriver is the always-available fallback. Its support set is fk5
// only: the tangent engine has no frame-conversion math.
type tangentDriver struct{}

func (tangentDriver) Name() string                    { return KindTangent }
func (tangentDriver) Available() bool                 { return true }
func (tangentDriver) Systems() []CoordinateSystem     { return []CoordinateSystem{SystemFK5} }
func (tangentDriver) NewEngine(l *slog.Logger) Engine { return NewTangentEngine(l) }

// builtinDrivers describes the known native backends. Pixel origin,
// vocabulary, and classification policy reflect each library's historical
// behavior: WCSLIB and AST index pixels from 1 and speak the modern frame
// vocabulary; wcstools indexes from 0 and speaks j2000/b1950.
func builtinDrivers() []Driver {
	modern := []CoordinateSystem{SystemICRS, SystemFK5, SystemFK4, SystemGalactic, SystemEcliptic}
	return []Driver{
		&AdapterDriver{
			BackendName:   KindWCSLIB,
			PixelOrigin:   1,
			Policy:        PolicyICRS,
			DefaultSystem: SystemICRS,
			Supported:     modern,
		},
		&AdapterDriver{
			BackendName:   KindAST,
			PixelOrigin:   1,
			Policy:        PolicyICRS,
			DefaultSystem: SystemICRS,
			Supported:     modern,
		},
		&AdapterDriver{
			BackendName:   KindWCSTools,
			PixelOrigin:   0,
			Policy:        PolicyJ2000,
			DefaultSystem: SystemJ2000,
			Supported:     []CoordinateSystem{SystemJ2000, SystemB1950, SystemGalactic},
		},
		tangentDriver{},
	}
}

// Registry records which backend is active, the coordinate systems it
// supports, and the engine constructor to use. It is an explicit value
// object: construct one and pass it to whatever builds engines, instead of
// leaking backend selection through package globals.
//
// Switching the active backend is all-or-nothing; engines already
// constructed keep the backend they were bound to regardless of later
// switches.
type Registry struct {
	mu      sync.Mutex
	drivers map[string]Driver
	order   []string
	active  string
}

// Option configures a Registry at construction.
type Option func(*Registry)

// WithDriver installs (or replaces) a driver. Used by native bindings to
// register themselves and by tests to inject fakes.
func WithDriver(d Driver) Option {
	return func(r *Registry) {
		r.drivers[d.Name()] = d
	}
}

// WithProvider attaches a Provider to a builtin adapter backend, making it
// available without respecifying origin, policy, and support set.
func WithProvider(backend string, p Provider) Option {
	return func(r *Registry) {
		if d, ok := r.drivers[backend].(*AdapterDriver); ok {
			d.Provider = p
		}
	}
}

// WithPreference overrides the probe order.
func WithPreference(names ...string) Option {
	return func(r *Registry) {
		r.order = append([]string(nil), names...)
	}
}

// NewRegistry constructs a registry with the builtin backends, applies the
// options, and probes once. The fallback backend is always installed, so a
// registry is never left without an active backend.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		drivers: make(map[string]Driver),
		order:   DefaultPreference,
	}
	for _, d := range builtinDrivers() {
		r.drivers[d.Name()] = d
	}
	for _, opt := range opts {
		opt(r)
	}
	r.Probe()
	return r
}

// Probe iterates the preference order and activates the first available
// backend. When none is available the fallback becomes active. Returns the
// name of the activated backend.
func (r *Registry) Probe() string {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, name := range r.order {
		if d, ok := r.drivers[name]; ok && d.Available() {
			r.active = name
			return name
		}
	}
	r.active = KindTangent
	return r.active
}

// Use forces a specific backend by name. An unknown or unavailable backend
// is an unavailable-backend error in strict mode; in lenient mode Use
// returns (false, nil) and the previously active backend is untouched.
// Either way the switch is all-or-nothing.
func (r *Registry) Use(name string, strict bool) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	d, ok := r.drivers[name]
	if !ok || !d.Available() {
		if strict {
			return false, &Error{
				Code:    ErrCodeUnavailableBackend,
				Message: fmt.Sprintf("WCS backend %q is not available", name),
				Backend: name,
			}
		}
		return false, nil
	}
	r.active = name
	return true, nil
}

// Active returns the active backend's name and the coordinate systems it
// supports.
func (r *Registry) Active() (string, []CoordinateSystem) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.active, r.drivers[r.active].Systems()
}

// NewEngine constructs an unbound engine from the active backend.
func (r *Registry) NewEngine(logger *slog.Logger) Engine {
	r.mu.Lock()
	d := r.drivers[r.active]
	r.mu.Unlock()
	return d.NewEngine(logger)
}

// BackendInfo describes one registered backend for diagnostics.
type BackendInfo struct {
	Name      string             `json:"name"`
	Available bool               `json:"available"`
	Active    bool               `json:"active"`
	Systems   []CoordinateSystem `json:"systems"`
}

// Backends returns the registered backends in preference order. Backends
// installed outside the preference order are appended at the end.
func (r *Registry) Backends() []BackendInfo {
	r.mu.Lock()
	defer r.mu.Unlock()

	seen := make(map[string]bool, len(r.drivers))
	out := make([]BackendInfo, 0, len(r.drivers))
	add := func(d Driver) {
		out = append(out, BackendInfo{
			Name:      d.Name(),
			Available: d.Available(),
			Active:    d.Name() == r.active,
			Systems:   d.Systems(),
		})
		seen[d.Name()] = true
	}
	for _, name := range r.order {
		if d, ok := r.drivers[name]; ok && !seen[name] {
			add(d)
		}
	}
	for name, d := range r.drivers {
		if !seen[name] {
			add(d)
		}
	}
	return out
}
