package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// ConfigCmd groups configuration commands.
func ConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration commands",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "validate",
		Short: "Check the configuration and print any warnings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.conf.Validate(); err != nil {
				return fmt.Errorf("configuration is invalid: %w", err)
			}
			out := cmd.OutOrStdout()
			warnings := a.conf.ValidateConfiguration()
			for _, w := range warnings {
				_, _ = fmt.Fprintf(out, "warning: %s\n", w)
			}
			_, _ = fmt.Fprintf(out, "configuration OK (%d warnings)\n", len(warnings))
			return nil
		},
	})
	return cmd
}
