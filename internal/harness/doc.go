// Package harness provides conformance testing for WCS backends.
//
// The harness loads a header fixture, runs a list of coordinate queries
// against a backend, and captures the results as a deterministic trace for
// golden-file comparison.
//
// # Scenario format
//
// Scenarios are YAML files:
//
//	name: scenario_name
//	description: "What this scenario validates"
//	backend: tangent            # optional; forced (strict) when set
//	header:
//	  CTYPE1: RA---TAN
//	  CRPIX1: 50.0
//	steps:
//	  - op: classify            # classify | pixtosky | skytopix | pixtosystem
//	    policy: icrs            # classify only: icrs | j2000
//	  - op: pixtosky
//	    pixel: [50, 50]
//	    coords: fits            # data | fits (default data)
//	  - op: skytopix
//	    sky: [180.0, 0.0]
//	    coords: fits
//	  - op: pixtosystem
//	    pixel: [49, 49]
//	    system: galactic
//
// # Deterministic traces
//
// Every step records its resolved inputs (defaults applied) and either its
// output or the error string. Transforms are closed-form and error messages
// carry no run-dependent state, so the same scenario always produces the
// same trace, which is what golden comparison needs.
//
// Golden files live in testdata/golden/{name}.golden. To regenerate:
//
//	go test ./internal/harness -update
package harness
