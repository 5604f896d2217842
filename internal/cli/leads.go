package cli

import (
	"fmt"
	"os"

	"github.com/iwvelando/trident/internal/session"
	"github.com/iwvelando/trident/internal/view"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// leadFile is the document accepted by leads import.
type leadFile struct {
	Leads []session.Lead `yaml:"leads"`
}

// LeadsCmd groups the pipeline commands.
func LeadsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "leads",
		Short: "Inspect and edit the deal pipeline",
	}
	cmd.AddCommand(leadsListCmd(a), leadsImportCmd(a))
	return cmd
}

func leadsListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the seeded pipeline",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, closeSession, err := a.openSession()
			if err != nil {
				return err
			}
			defer closeSession()
			return a.renderPipeline(cmd, store)
		},
	}
}

func leadsImportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.yaml>",
		Short: "Replace the pipeline with the leads in a YAML file",
		Long: "Replace the pipeline with the leads in a YAML file. The file is applied\n" +
			"as a whole: if any row is invalid the pipeline is left untouched.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", args[0], err)
			}
			var file leadFile
			if err := yaml.Unmarshal(data, &file); err != nil {
				return fmt.Errorf("failed to parse %s: %w", args[0], err)
			}

			store, closeSession, err := a.openSession()
			if err != nil {
				return err
			}
			defer closeSession()

			if err := store.ReplaceLeads(file.Leads); err != nil {
				return err
			}
			a.logger.Info(fmt.Sprintf("imported %d leads", len(file.Leads)),
				zap.String("op", "cli.leads.import"),
				zap.String("file", args[0]),
			)
			return a.renderPipeline(cmd, store)
		},
	}
}

func (a *app) renderPipeline(cmd *cobra.Command, store *session.Store) error {
	builder, err := a.builder(store)
	if err != nil {
		return err
	}
	snap, err := builder.Build(cmd.Context(), view.DealPipeline)
	if err != nil {
		return err
	}
	return a.render(cmd.OutOrStdout(), snap)
}
