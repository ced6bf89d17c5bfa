package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/godber/ginga/internal/wcs"
)

type classifyOutput struct {
	System string `json:"system"`
	Policy string `json:"policy"`
}

// NewClassifyCommand creates the classify command: report the coordinate
// system a header describes, without building a transform.
func NewClassifyCommand(opts *RootOptions) *cobra.Command {
	var policyName string

	cmd := &cobra.Command{
		Use:   "classify HEADER",
		Short: "Classify the coordinate system of a header file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			policy, ok := wcs.PolicyByName(policyName)
			if !ok {
				return fmt.Errorf("unknown policy %q: must be icrs or j2000", policyName)
			}

			hdr, err := LoadHeader(args[0])
			if err != nil {
				return err
			}

			system := wcs.Classify(hdr, policy)
			out := classifyOutput{System: string(system), Policy: policyName}
			return printResult(cmd, opts, out, func() string {
				return string(system)
			})
		},
	}

	cmd.Flags().StringVar(&policyName, "policy", "icrs", "classification default policy (icrs|j2000)")

	return cmd
}
