package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/godber/ginga/internal/wcs"
)

type skyOutput struct {
	Lon    float64 `json:"lon"`
	Lat    float64 `json:"lat"`
	System string  `json:"system"`
}

type pixelOutput struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Coords string  `json:"coords"`
}

func parseFloatArg(name, s string) (float64, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: not a number", name, s)
	}
	return f, nil
}

// NewPixToSkyCommand creates the pixtosky command: convert a pixel
// position to sky coordinates, optionally re-expressed in another system.
func NewPixToSkyCommand(opts *RootOptions) *cobra.Command {
	var coords string
	var system string

	cmd := &cobra.Command{
		Use:   "pixtosky HEADER X Y",
		Short: "Convert a pixel position to sky coordinates",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			conv, err := parseConvention(coords)
			if err != nil {
				return err
			}
			x, err := parseFloatArg("x", args[1])
			if err != nil {
				return err
			}
			y, err := parseFloatArg("y", args[2])
			if err != nil {
				return err
			}

			engine, err := opts.loadEngine(args[0])
			if err != nil {
				return err
			}

			p := wcs.PixelCoord{X: x, Y: y}
			var sky wcs.SkyCoord
			if system != "" {
				sky, err = engine.PixelToSystem(p, wcs.CoordinateSystem(system), conv)
			} else {
				sky, err = engine.PixelToSky(p, conv)
			}
			if err != nil {
				return err
			}

			out := skyOutput{Lon: sky.Lon, Lat: sky.Lat, System: string(sky.System)}
			return printResult(cmd, opts, out, func() string {
				return fmt.Sprintf("%.6f %.6f (%s)", sky.Lon, sky.Lat, sky.System)
			})
		},
	}

	cmd.Flags().StringVar(&coords, "coords", string(wcs.ConvData), "pixel convention (data|fits)")
	cmd.Flags().StringVar(&system, "system", "", "re-express the result in this coordinate system")

	return cmd
}

// NewSkyToPixCommand creates the skytopix command: convert sky coordinates
// to a pixel position.
func NewSkyToPixCommand(opts *RootOptions) *cobra.Command {
	var coords string
	var extraAxes int

	cmd := &cobra.Command{
		Use:   "skytopix HEADER LON LAT",
		Short: "Convert sky coordinates to a pixel position",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			conv, err := parseConvention(coords)
			if err != nil {
				return err
			}
			lon, err := parseFloatArg("lon", args[1])
			if err != nil {
				return err
			}
			lat, err := parseFloatArg("lat", args[2])
			if err != nil {
				return err
			}

			engine, err := opts.loadEngine(args[0])
			if err != nil {
				return err
			}

			p, err := engine.SkyToPixel(lon, lat, conv, extraAxes)
			if err != nil {
				return err
			}

			out := pixelOutput{X: p.X, Y: p.Y, Coords: string(conv)}
			return printResult(cmd, opts, out, func() string {
				return fmt.Sprintf("%.3f %.3f (%s)", p.X, p.Y, conv)
			})
		},
	}

	cmd.Flags().StringVar(&coords, "coords", string(wcs.ConvData), "pixel convention (data|fits)")
	cmd.Flags().IntVar(&extraAxes, "extra-axes", 0, "zero-valued axis coordinates to pad for full-dimensional backends")

	return cmd
}
