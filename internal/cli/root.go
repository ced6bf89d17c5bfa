package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/godber/ginga/internal/wcs"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"
	Backend string // forced backend name; empty probes the preference order
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the ginga-wcs CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:           "ginga-wcs",
		Short:         "Convert between pixel and sky coordinates",
		Long:          "Converts between pixel coordinates on an astronomical image and celestial sky coordinates, using the best available WCS backend.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.Backend, "wcspkg", "", "force a specific WCS backend (strict)")

	// Add subcommands
	cmd.AddCommand(NewClassifyCommand(opts))
	cmd.AddCommand(NewPixToSkyCommand(opts))
	cmd.AddCommand(NewSkyToPixCommand(opts))
	cmd.AddCommand(NewBackendsCommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

// logger builds the diagnostics sink handed to engines.
func (o *RootOptions) logger() *slog.Logger {
	level := slog.LevelWarn
	if o.Verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// registry builds a registry, honoring a forced backend in strict mode.
func (o *RootOptions) registry() (*wcs.Registry, error) {
	reg := wcs.NewRegistry()
	if o.Backend != "" {
		if _, err := reg.Use(o.Backend, true); err != nil {
			return nil, err
		}
	}
	return reg, nil
}

// loadEngine constructs an engine from the active backend and binds the
// header file to it.
func (o *RootOptions) loadEngine(path string) (wcs.Engine, error) {
	reg, err := o.registry()
	if err != nil {
		return nil, err
	}
	hdr, err := LoadHeader(path)
	if err != nil {
		return nil, err
	}
	engine := reg.NewEngine(o.logger())
	if err := engine.Load(hdr); err != nil {
		return nil, err
	}
	return engine, nil
}

// parseConvention validates a --coords flag value.
func parseConvention(s string) (wcs.PixelConvention, error) {
	switch s {
	case string(wcs.ConvData):
		return wcs.ConvData, nil
	case string(wcs.ConvFITS):
		return wcs.ConvFITS, nil
	}
	return "", fmt.Errorf("invalid coords %q: must be %q or %q", s, wcs.ConvData, wcs.ConvFITS)
}
