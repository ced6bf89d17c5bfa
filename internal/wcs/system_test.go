package wcs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify_SharedRules(t *testing.T) {
	// Rules both policies agree on.
	tests := []struct {
		name   string
		header Header
		want   CoordinateSystem
	}{
		{
			name:   "no projection keyword",
			header: Header{"CRPIX1": 50.0},
			want:   SystemRaw,
		},
		{
			name:   "galactic longitude",
			header: Header{"CTYPE1": "GLON-TAN"},
			want:   SystemGalactic,
		},
		{
			name:   "ctype normalized before matching",
			header: Header{"CTYPE1": "  glon-car "},
			want:   SystemGalactic,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.header, PolicyICRS))
			assert.Equal(t, tt.want, Classify(tt.header, PolicyJ2000))
		})
	}
}

func TestClassify_EquatorialFrames(t *testing.T) {
	tests := []struct {
		name      string
		header    Header
		wantICRS  CoordinateSystem
		wantJ2000 CoordinateSystem
	}{
		{
			name:      "explicit FK4 frame",
			header:    Header{"CTYPE1": "RA---TAN", "RADESYS": "FK4"},
			wantICRS:  SystemFK4,
			wantJ2000: SystemB1950,
		},
		{
			name:      "explicit FK5 frame",
			header:    Header{"CTYPE1": "RA---TAN", "RADESYS": "FK5"},
			wantICRS:  SystemFK5,
			wantJ2000: SystemJ2000,
		},
		{
			name:      "no frame keyword defaults to icrs",
			header:    Header{"CTYPE1": "RA---TAN"},
			wantICRS:  SystemICRS,
			wantJ2000: SystemJ2000,
		},
		{
			name:      "equinox alone implies fk5",
			header:    Header{"CTYPE1": "RA---TAN", "EQUINOX": 2000.0},
			wantICRS:  SystemFK5,
			wantJ2000: SystemJ2000,
		},
		{
			name:      "RADECSYS spelling tried before RADESYS",
			header:    Header{"CTYPE1": "RA---TAN", "RADECSYS": "FK4", "RADESYS": "ICRS"},
			wantICRS:  SystemFK4,
			wantJ2000: SystemB1950,
		},
		{
			name:      "frame value trimmed and case-folded",
			header:    Header{"CTYPE1": "RA---TAN", "RADESYS": " fk4 "},
			wantICRS:  SystemFK4,
			wantJ2000: SystemB1950,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantICRS, Classify(tt.header, PolicyICRS))
			assert.Equal(t, tt.wantJ2000, Classify(tt.header, PolicyJ2000))
		})
	}
}

func TestClassify_PolicyDivergence(t *testing.T) {
	// The historical variants disagree on ecliptic matching and on the
	// default for unmatched projections. Both behaviors are preserved.
	ecliptic := Header{"CTYPE1": "ELON-TAN"}
	assert.Equal(t, SystemEcliptic, Classify(ecliptic, PolicyICRS))
	assert.Equal(t, SystemJ2000, Classify(ecliptic, PolicyJ2000),
		"legacy variant never matched ecliptic and falls through to its default")

	unmatched := Header{"CTYPE1": "DEC--TAN"}
	assert.Equal(t, SystemICRS, Classify(unmatched, PolicyICRS))
	assert.Equal(t, SystemJ2000, Classify(unmatched, PolicyJ2000))
}

func TestClassify_Idempotent(t *testing.T) {
	h := Header{"CTYPE1": "RA---TAN", "RADESYS": "FK4"}

	first := Classify(h, PolicyICRS)
	second := Classify(h, PolicyICRS)

	assert.Equal(t, first, second)
}

func TestPolicyByName(t *testing.T) {
	p, ok := PolicyByName("icrs")
	assert.True(t, ok)
	assert.Equal(t, "icrs", p.Name())

	p, ok = PolicyByName("j2000")
	assert.True(t, ok)
	assert.Equal(t, "j2000", p.Name())

	_, ok = PolicyByName("fk5")
	assert.False(t, ok)
}
