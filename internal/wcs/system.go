package wcs

import "strings"

// CoordinateSystem is a normalized celestial coordinate-system tag.
//
// SystemRaw means "undetermined / no usable transform yet". The legacy
// tags SystemJ2000 and SystemB1950 belong to the wcstools vocabulary; they
// name the same frames as SystemFK5 and SystemFK4 in the modern vocabulary
// but are distinct tags because each backend only accepts its own.
type CoordinateSystem string

const (
	SystemRaw      CoordinateSystem = "raw"
	SystemICRS     CoordinateSystem = "icrs"
	SystemFK5      CoordinateSystem = "fk5"
	SystemFK4      CoordinateSystem = "fk4"
	SystemGalactic CoordinateSystem = "galactic"
	SystemEcliptic CoordinateSystem = "ecliptic"

	// Legacy vocabulary (wcstools-flavored backends).
	SystemJ2000 CoordinateSystem = "j2000"
	SystemB1950 CoordinateSystem = "b1950"
)

// ClassifyPolicy selects between the historical variants of the
// classification heuristic. The variants agree on the core rules but
// diverge on three points: whether ecliptic projections are recognized,
// which vocabulary names the equatorial frames, and what tag an unmatched
// projection type defaults to.
//
// The divergence is preserved deliberately: it may be a latent defect in
// the original heuristics, so it is exposed as a named choice per call
// site instead of silently unified.
type ClassifyPolicy struct {
	name string

	// matchEcliptic enables the ELON- projection rule.
	matchEcliptic bool

	// legacyVocab maps equatorial frames to b1950/j2000 instead of
	// returning the lowercased frame name verbatim.
	legacyVocab bool

	// fallback is returned when CTYPE1 matches no known pattern.
	fallback CoordinateSystem
}

// Name returns the policy's identifier ("icrs" or "j2000").
func (p ClassifyPolicy) Name() string { return p.name }

// PolicyICRS reproduces the module-level heuristic: ecliptic projections
// are recognized, the resolved frame name is returned verbatim (lowercased),
// and unmatched projection types default to icrs.
var PolicyICRS = ClassifyPolicy{
	name:          "icrs",
	matchEcliptic: true,
	fallback:      SystemICRS,
}

// PolicyJ2000 reproduces the wcstools-flavored heuristic: ecliptic
// projections are not recognized, equatorial frames map to the b1950/j2000
// vocabulary, and unmatched projection types default to j2000.
var PolicyJ2000 = ClassifyPolicy{
	name:        "j2000",
	legacyVocab: true,
	fallback:    SystemJ2000,
}

// PolicyByName returns the classification policy with the given name.
func PolicyByName(name string) (ClassifyPolicy, bool) {
	switch name {
	case PolicyICRS.name:
		return PolicyICRS, true
	case PolicyJ2000.name:
		return PolicyJ2000, true
	}
	return ClassifyPolicy{}, false
}

// Classify inspects the projection-type and reference-frame keywords and
// returns a normalized coordinate-system tag.
//
// Classification never fails: an absent CTYPE1 yields SystemRaw and an
// unrecognized projection yields the policy default. System detection is
// advisory, not load-bearing for whether a transform can be computed.
func Classify(h Header, p ClassifyPolicy) CoordinateSystem {
	ctype, ok := h.Str("CTYPE1")
	if !ok {
		return SystemRaw
	}
	ctype = strings.ToUpper(strings.TrimSpace(ctype))

	switch {
	case strings.HasPrefix(ctype, "GLON-"):
		return SystemGalactic

	case p.matchEcliptic && strings.HasPrefix(ctype, "ELON-"):
		return SystemEcliptic

	case strings.HasPrefix(ctype, "RA---"):
		frame := equatorialFrame(h)
		if p.legacyVocab {
			if frame == "FK4" {
				return SystemB1950
			}
			return SystemJ2000
		}
		return CoordinateSystem(strings.ToLower(frame))
	}

	return p.fallback
}

// equatorialFrame resolves the celestial reference frame for an RA--- axis.
// Two keyword spellings are accepted, tried in order. When neither is
// present, RADESYS defaults to ICRS unless EQUINOX is given alone, in which
// case the frame is FK5 (pre-1984 style headers).
func equatorialFrame(h Header) string {
	for _, key := range []string{"RADECSYS", "RADESYS"} {
		if s, ok := h.Str(key); ok {
			return strings.ToUpper(strings.TrimSpace(s))
		}
	}
	if h.Has("EQUINOX") {
		return "FK5"
	}
	return "ICRS"
}
