package cli

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/godber/ginga/internal/wcs"
)

// LoadHeader reads a FITS-style header from a YAML file: a flat mapping of
// uppercase keywords to scalar values. Keys are taken as-is; the library
// compares them case-sensitively.
func LoadHeader(path string) (wcs.Header, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading header file %s: %w", path, err)
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing header file %s: %w", path, err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("header file %s is empty", path)
	}

	hdr := make(wcs.Header, len(raw))
	for key, value := range raw {
		switch value.(type) {
		case string, bool, int, int64, float64:
			hdr[key] = value
		default:
			return nil, fmt.Errorf("header file %s: keyword %q has non-scalar value", path, key)
		}
	}
	return hdr, nil
}
