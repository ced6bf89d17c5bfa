package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// NewBackendsCommand creates the backends command: show the registered
// backends, which one is active, and the coordinate systems it supports.
func NewBackendsCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "backends",
		Short: "List WCS backends and their availability",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := opts.registry()
			if err != nil {
				return err
			}

			infos := reg.Backends()
			return printResult(cmd, opts, infos, func() string {
				var b strings.Builder
				for _, info := range infos {
					marker := " "
					if info.Active {
						marker = "*"
					}
					status := "unavailable"
					if info.Available {
						status = "available"
					}
					systems := make([]string, len(info.Systems))
					for i, s := range info.Systems {
						systems[i] = string(s)
					}
					fmt.Fprintf(&b, "%s %-10s %-12s systems: %s\n",
						marker, info.Name, status, strings.Join(systems, ", "))
				}
				return strings.TrimRight(b.String(), "\n")
			})
		},
	}
}
