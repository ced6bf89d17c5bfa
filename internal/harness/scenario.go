package harness

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/godber/ginga/internal/wcs"
)

// Scenario defines one conformance scenario: a header fixture plus the
// coordinate queries to run against it.
type Scenario struct {
	// Name uniquely identifies the scenario; it names the golden file.
	Name string `yaml:"name"`

	// Description explains what the scenario validates.
	Description string `yaml:"description,omitempty"`

	// Backend forces a specific backend (strict). Empty probes the
	// default preference order, which lands on the fallback in tests.
	Backend string `yaml:"backend,omitempty"`

	// Header is the FITS-style metadata fixture.
	Header map[string]any `yaml:"header"`

	// Steps are executed in order against one engine bound to Header.
	Steps []Step `yaml:"steps"`
}

// Step is one coordinate query.
type Step struct {
	// Op is one of classify, pixtosky, skytopix, pixtosystem.
	Op string `yaml:"op"`

	// Policy selects the classification variant (classify only);
	// defaults to icrs.
	Policy string `yaml:"policy,omitempty"`

	// Pixel is the (x, y) input for pixtosky and pixtosystem.
	Pixel []float64 `yaml:"pixel,omitempty"`

	// Sky is the (lon, lat) degrees input for skytopix.
	Sky []float64 `yaml:"sky,omitempty"`

	// Coords is the pixel convention: data or fits. Defaults to data.
	Coords string `yaml:"coords,omitempty"`

	// System is the target coordinate system for pixtosystem.
	System string `yaml:"system,omitempty"`
}

// LoadScenario reads and validates a scenario YAML file. Unknown fields
// are rejected so fixture typos fail loudly.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario %s: %w", path, err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var s Scenario
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("parsing scenario %s: %w", path, err)
	}
	if err := s.validate(); err != nil {
		return nil, fmt.Errorf("scenario %s: %w", path, err)
	}
	return &s, nil
}

func (s *Scenario) validate() error {
	if s.Name == "" {
		return fmt.Errorf("missing name")
	}
	if len(s.Header) == 0 {
		return fmt.Errorf("missing header")
	}
	if len(s.Steps) == 0 {
		return fmt.Errorf("no steps")
	}
	for i, st := range s.Steps {
		switch st.Op {
		case "classify":
			if st.Policy != "" {
				if _, ok := wcs.PolicyByName(st.Policy); !ok {
					return fmt.Errorf("step %d: unknown policy %q", i, st.Policy)
				}
			}
		case "pixtosky", "pixtosystem":
			if len(st.Pixel) != 2 {
				return fmt.Errorf("step %d: %s needs pixel: [x, y]", i, st.Op)
			}
		case "skytopix":
			if len(st.Sky) != 2 {
				return fmt.Errorf("step %d: skytopix needs sky: [lon, lat]", i)
			}
		default:
			return fmt.Errorf("step %d: unknown op %q", i, st.Op)
		}
		switch st.Coords {
		case "", "data", "fits":
		default:
			return fmt.Errorf("step %d: unknown coords %q", i, st.Coords)
		}
	}
	return nil
}

// TraceEntry records one executed step: resolved inputs plus output or
// error.
type TraceEntry struct {
	Op     string    `json:"op"`
	Policy string    `json:"policy,omitempty"`
	Input  []float64 `json:"input,omitempty"`
	Coords string    `json:"coords,omitempty"`
	System string    `json:"system,omitempty"`
	Output []float64 `json:"output,omitempty"`
	Error  string    `json:"error,omitempty"`
}

// Result is the outcome of running a scenario.
type Result struct {
	Scenario string `json:"scenario"`

	// Backend is the engine kind the steps ran against.
	Backend string `json:"backend"`

	// System is the coordinate system the engine classified at load time.
	System string `json:"system"`

	// LoadError is set when the header did not yield a usable transform;
	// steps then record the same recorded reason.
	LoadError string `json:"load_error,omitempty"`

	Trace []TraceEntry `json:"trace"`
}

// Run executes a scenario and returns its trace. Scenario-level problems
// (an unavailable forced backend) are errors; per-step failures and load
// failures are part of the trace, since they are behavior under test.
func Run(s *Scenario) (*Result, error) {
	reg := wcs.NewRegistry()
	if s.Backend != "" {
		if _, err := reg.Use(s.Backend, true); err != nil {
			return nil, err
		}
	}

	quiet := slog.New(slog.NewTextHandler(io.Discard, nil))
	engine := reg.NewEngine(quiet)

	hdr := wcs.Header(s.Header)
	result := &Result{Scenario: s.Name, Backend: engine.Kind()}
	if err := engine.Load(hdr); err != nil {
		result.LoadError = err.Error()
	}
	result.System = string(engine.System())

	for _, st := range s.Steps {
		result.Trace = append(result.Trace, runStep(engine, hdr, st))
	}
	return result, nil
}

func runStep(engine wcs.Engine, hdr wcs.Header, st Step) TraceEntry {
	conv := wcs.PixelConvention(st.Coords)
	if conv == "" {
		conv = wcs.ConvData
	}

	switch st.Op {
	case "classify":
		name := st.Policy
		if name == "" {
			name = "icrs"
		}
		policy, _ := wcs.PolicyByName(name)
		return TraceEntry{
			Op:     st.Op,
			Policy: name,
			System: string(wcs.Classify(hdr, policy)),
		}

	case "pixtosky":
		entry := TraceEntry{Op: st.Op, Input: st.Pixel, Coords: string(conv)}
		sky, err := engine.PixelToSky(wcs.PixelCoord{X: st.Pixel[0], Y: st.Pixel[1]}, conv)
		if err != nil {
			entry.Error = err.Error()
			return entry
		}
		entry.System = string(sky.System)
		entry.Output = []float64{sky.Lon, sky.Lat}
		return entry

	case "skytopix":
		entry := TraceEntry{Op: st.Op, Input: st.Sky, Coords: string(conv)}
		p, err := engine.SkyToPixel(st.Sky[0], st.Sky[1], conv, 0)
		if err != nil {
			entry.Error = err.Error()
			return entry
		}
		entry.Output = []float64{p.X, p.Y}
		return entry

	case "pixtosystem":
		entry := TraceEntry{
			Op:     st.Op,
			Input:  st.Pixel,
			Coords: string(conv),
			System: st.System,
		}
		sky, err := engine.PixelToSystem(
			wcs.PixelCoord{X: st.Pixel[0], Y: st.Pixel[1]},
			wcs.CoordinateSystem(st.System), conv)
		if err != nil {
			entry.Error = err.Error()
			return entry
		}
		entry.System = string(sky.System)
		entry.Output = []float64{sky.Lon, sky.Lat}
		return entry
	}

	// validate() rejects unknown ops before execution.
	return TraceEntry{Op: st.Op, Error: fmt.Sprintf("unknown op %q", st.Op)}
}
