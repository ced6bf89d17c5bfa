package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// printResult renders v as indented JSON when --format json is in effect,
// otherwise prints the text rendering.
func printResult(cmd *cobra.Command, opts *RootOptions, v any, text func() string) error {
	if opts.Format == "json" {
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding output: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), text())
	return nil
}
