// Package cli wires configuration, logging, the valuation engine and the
// session store into the trident command tree.
package cli

import (
	"fmt"
	"io"

	"github.com/iwvelando/trident/internal/config"
	"github.com/iwvelando/trident/internal/session"
	"github.com/iwvelando/trident/internal/valuation"
	"github.com/iwvelando/trident/internal/view"
	"github.com/iwvelando/trident/pkg/constants"
	"github.com/iwvelando/trident/pkg/output"
	"github.com/iwvelando/trident/pkg/validation"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// app is the state shared by every subcommand after the root has loaded
// configuration and built the logger.
type app struct {
	configPath     string
	logLevel       string
	outputOverride string

	conf         *config.Configuration
	logger       *zap.Logger
	outputFormat string
}

// NewRootCmd returns the trident command tree.
func NewRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "trident",
		Short:         "Real estate deal valuation and pipeline dashboard",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", constants.DefaultConfigFile, "path to configuration file")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level override (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&a.outputOverride, "output-format", "", "type of output override: pretty, csv")

	root.AddCommand(
		ViewCmd(a),
		AnalyzeCmd(a),
		LeadsCmd(a),
		ConfigCmd(a),
	)
	return root
}

func (a *app) load() error {
	conf, err := config.LoadConfiguration(a.configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration at %s: %w", a.configPath, err)
	}
	a.conf = conf

	logger, err := initializeLogger(conf.Logging, a.logLevel)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	a.logger = logger

	a.outputFormat = conf.Output.Format
	if a.outputOverride != "" {
		a.outputFormat = a.outputOverride
	}
	if a.outputFormat == "" {
		a.outputFormat = constants.OutputFormatPretty
	}
	if err := validation.ValidateOutputFormat(a.outputFormat); err != nil {
		return err
	}

	for _, warning := range conf.ValidateConfiguration() {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "cli.load"),
		)
	}
	return nil
}

func (a *app) engine() (*valuation.Engine, error) {
	return valuation.NewEngine(a.logger, a.conf.Valuation)
}

// openSession seeds a fresh session from configuration. The caller closes it.
func (a *app) openSession() (*session.Store, func(), error) {
	manager, err := session.NewManager(a.logger, session.Seed{
		Capital: a.conf.Session.Capital,
		Leads:   a.conf.Session.Leads,
	})
	if err != nil {
		return nil, nil, err
	}
	id, store, err := manager.Open()
	if err != nil {
		return nil, nil, err
	}
	return store, func() { manager.Close(id) }, nil
}

func (a *app) builder(store *session.Store) (*view.Builder, error) {
	engine, err := a.engine()
	if err != nil {
		return nil, err
	}
	provider, err := view.NewStaticProvider(a.conf.Dashboard.Series)
	if err != nil {
		return nil, err
	}
	return view.NewBuilder(a.logger, store, engine, provider, view.Options{
		Metrics:     a.conf.Dashboard.Metrics,
		Markets:     a.conf.Dashboard.Markets,
		SeriesNames: provider.Names(),
		Calculator:  a.conf.Calculator,
	}), nil
}

func (a *app) render(w io.Writer, snap view.Snapshot) error {
	switch a.outputFormat {
	case constants.OutputFormatCSV:
		return output.CsvFormat(w, snap)
	default:
		output.PrettyFormat(w, snap)
		return nil
	}
}
