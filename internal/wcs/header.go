package wcs

import (
	"fmt"
	"strconv"
	"strings"
)

// Header is a FITS-style metadata mapping: uppercase keyword to scalar
// value (float, int, string, or bool). Keys are compared case-sensitively;
// the caller supplies them in the exact case the convention uses.
//
// Engines hold a private normalized copy (Clone + Normalize) and never
// write back to the caller's map.
type Header map[string]any

// Clone returns a shallow copy of the header. Values are scalars, so a
// shallow copy is a full snapshot.
func (h Header) Clone() Header {
	out := make(Header, len(h))
	for k, v := range h {
		out[k] = v
	}
	return out
}

// Has reports whether the keyword is present.
func (h Header) Has(key string) bool {
	_, ok := h[key]
	return ok
}

// Str returns the keyword's value as a string. Non-string scalars are not
// coerced; classification keywords (CTYPE1, RADESYS) are strings in any
// well-formed header.
func (h Header) Str(key string) (string, bool) {
	v, ok := h[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// Float returns the keyword's value as a float64, coercing integer and
// numeric-string values. FITS producers are loose about whether numeric
// cards arrive typed or as strings.
func (h Header) Float(key string) (float64, error) {
	v, ok := h[key]
	if !ok {
		return 0, fmt.Errorf("keyword %q not found", key)
	}
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, fmt.Errorf("keyword %q is not numeric: %q", key, n)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("keyword %q has non-numeric value %v", key, v)
	}
}

// Normalize returns a copy of the header with known-bad values rewritten so
// that strict backend libraries do not reject otherwise-valid input.
//
// Currently the only rewrite is the unit spelling "degree" (any case) to
// the accepted "deg" on CUNIT1 and CUNIT2. All other keys pass through
// unchanged; absent keys stay absent.
func (h Header) Normalize() Header {
	out := h.Clone()
	for _, key := range []string{"CUNIT1", "CUNIT2"} {
		unit, ok := out.Str(key)
		if !ok {
			continue
		}
		if strings.EqualFold(unit, "degree") {
			out[key] = "deg"
		}
	}
	return out
}
