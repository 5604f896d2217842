package cli

import (
	"strings"

	"github.com/iwvelando/trident/internal/view"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// ViewCmd renders one page of the dashboard for a freshly seeded session.
func ViewCmd(a *app) *cobra.Command {
	slugs := make([]string, 0, len(view.All()))
	for _, v := range view.All() {
		slugs = append(slugs, v.String())
	}

	return &cobra.Command{
		Use:       "view [" + strings.Join(slugs, "|") + "]",
		Short:     "Render a dashboard view",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: slugs,
		RunE: func(cmd *cobra.Command, args []string) error {
			v := view.Dashboard
			if len(args) == 1 {
				parsed, err := view.ParseView(args[0])
				if err != nil {
					return err
				}
				v = parsed
			}

			store, closeSession, err := a.openSession()
			if err != nil {
				return err
			}
			defer closeSession()

			builder, err := a.builder(store)
			if err != nil {
				return err
			}
			snap, err := builder.Build(cmd.Context(), v)
			if err != nil {
				return err
			}

			a.logger.Debug("rendering view",
				zap.String("op", "cli.view"),
				zap.Stringer("view", v),
			)
			return a.render(cmd.OutOrStdout(), snap)
		},
	}
}
