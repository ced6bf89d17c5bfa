// Package wcs converts between pixel coordinates on an astronomical image
// and celestial sky coordinates, using one of several interchangeable
// backend engines.
//
// Callers depend only on a fixed operation set: pixel to sky, sky to pixel,
// and coordinate-system discovery. Which backend performs the math is a
// runtime choice made by a Registry, which probes candidate backends in a
// preference order and falls back to a self-contained tangent-plane engine
// when no native library is available.
//
// # Engines
//
// Every backend satisfies the Engine interface: construct, Load a header
// snapshot, then query transforms. Load never leaves an engine partially
// initialized - it either binds a usable transform or records the failure
// reason, inspectable via LoadError, while the engine reports itself broken.
//
// Native libraries (WCSLIB, AST, wcstools) are reached through the
// Projector/Provider seam in adapter.go. They differ in pixel-origin
// convention (0-based vs 1-based) and in coordinate-system vocabulary
// (icrs/fk5/fk4 vs j2000/b1950); each adapter normalizes both at its own
// boundary so callers always interact in the convention they request.
//
// # Pixel conventions
//
// Pixel coordinates come in two conventions:
//   - "data": 0-based, image-array indexing
//   - "fits": 1-based, traditional FITS
//
// Every transform operation takes the caller's convention explicitly. The
// conversion is a one-unit offset per axis, applied exactly once at the
// engine boundary.
//
// # Coordinate systems
//
// Classify inspects CTYPE1 and the reference-frame keywords and returns a
// normalized system tag. Classification is advisory: it never fails, worst
// case it returns SystemRaw or a policy default. Two historical default
// policies exist (PolicyICRS and PolicyJ2000) and are preserved as explicit
// choices rather than unified; see ClassifyPolicy.
//
// # Concurrency
//
// Transforms are synchronous closed-form computations over engine state set
// by the one-time Load. Registry methods are safe for concurrent use, but
// switching the active backend while other goroutines construct engines is
// a host-application coordination problem: engines already constructed keep
// the backend they were bound to.
package wcs
