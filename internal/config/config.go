// Package config defines the data structures related to configuration and
// includes functions for loading and validating it.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/iwvelando/trident/internal/session"
	"github.com/iwvelando/trident/internal/valuation"
	"github.com/iwvelando/trident/internal/view"
	"github.com/iwvelando/trident/pkg/constants"
	"github.com/iwvelando/trident/pkg/validation"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for trident.
type Configuration struct {
	Logging    LoggingConfig        `yaml:"logging,omitempty"`
	Output     OutputConfig         `yaml:"output,omitempty"`
	Valuation  valuation.Parameters `yaml:"valuation"`
	Session    SessionConfig        `yaml:"session"`
	Dashboard  DashboardConfig      `yaml:"dashboard"`
	Calculator view.CalculatorInput `yaml:"calculator"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv
}

// SessionConfig is the seed of every new session.
type SessionConfig struct {
	Capital float64        `yaml:"capital"`
	Leads   []session.Lead `yaml:"leads"`
}

// DashboardConfig holds the static content of the dashboard and map views.
type DashboardConfig struct {
	Metrics []view.Metric       `yaml:"metrics"`
	Markets []view.Market       `yaml:"markets"`
	Series  []view.SeriesConfig `yaml:"series"`
}

// Default returns the configuration used when no file is present.
func Default() *Configuration {
	return &Configuration{
		Output:    OutputConfig{Format: constants.OutputFormatPretty},
		Valuation: valuation.DefaultParameters(),
		Session: SessionConfig{
			Capital: constants.DefaultCapital,
			Leads:   session.DefaultLeads(),
		},
		Dashboard: DashboardConfig{
			Metrics: []view.Metric{
				{Label: "Total Equity", Value: "$1.2M", Delta: "+8%"},
				{Label: "Cash Flow", Value: "$38,500", Delta: "+12%"},
			},
			Markets: []view.Market{
				{Name: "Miami (HQ)", Latitude: 25.7617, Longitude: -80.1918, Value: 1200000},
				{Name: "Austin", Latitude: 30.2672, Longitude: -97.7431, Value: 850000},
				{Name: "Nashville", Latitude: 36.1627, Longitude: -86.7816, Value: 620000},
				{Name: "Phoenix", Latitude: 33.4484, Longitude: -112.0740, Value: 450000},
			},
			Series: []view.SeriesConfig{
				{Name: "Rentals", Start: "2025-01", Values: []float64{100, 101.2, 102.9, 103.4, 105.1, 106.8, 107.2, 109.5, 110.1, 112.4, 113.0, 115.6}},
				{Name: "Flips", Start: "2025-01", Values: []float64{100, 98.7, 101.5, 104.2, 103.1, 106.9, 109.8, 108.2, 111.7, 114.3, 113.5, 117.9}},
			},
		},
		Calculator: view.CalculatorInput{
			Deal: valuation.DealInput{PurchasePrice: 400000, ARV: 600000, RehabCost: 50000, MonthlyRent: 3500},
			Terms: valuation.CreativeTerms{
				AssumedMonthlyPayment:   2100,
				FixedMonthlyExpenses:    650,
				ExistingMortgageBalance: 340000,
			},
		},
	}
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there. A missing file yields the defaults, still subject to
// environment overrides. A .env file in the working directory is loaded first.
func LoadConfiguration(configPath string) (*Configuration, error) {
	if err := godotenv.Load(constants.DotEnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error reading %s, %s", constants.DotEnvFile, err)
	}

	v := newViper()
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			v.SetConfigFile(configPath)
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("error reading config file, %s", err)
			}
		} else if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("error reading config file, %s", err)
		}
	}
	return decode(v)
}

// LoadConfigurationFromReader loads YAML configuration from r, applying the
// same defaults and environment overrides as LoadConfiguration.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := newViper()
	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config data, %s", err)
	}
	return decode(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yml")
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Scalar defaults are registered so AutomaticEnv can override them.
	d := Default()
	v.SetDefault("logging.level", "")
	v.SetDefault("logging.format", "")
	v.SetDefault("logging.outputFile", "")
	v.SetDefault("output.format", d.Output.Format)
	v.SetDefault("valuation.sellingCostFraction", d.Valuation.SellingCostFraction)
	v.SetDefault("valuation.maoFraction", d.Valuation.MAOFraction)
	v.SetDefault("valuation.refinanceLTV", d.Valuation.RefinanceLTV)
	v.SetDefault("valuation.downPaymentFraction", d.Valuation.DownPaymentFraction)
	v.SetDefault("valuation.approveThreshold", d.Valuation.ApproveThreshold)
	v.SetDefault("valuation.cautionThreshold", d.Valuation.CautionThreshold)
	v.SetDefault("valuation.capitalBasis", d.Valuation.CapitalBasis)
	v.SetDefault("session.capital", d.Session.Capital)
	v.SetDefault("calculator.deal.purchasePrice", d.Calculator.Deal.PurchasePrice)
	v.SetDefault("calculator.deal.arv", d.Calculator.Deal.ARV)
	v.SetDefault("calculator.deal.rehabCost", d.Calculator.Deal.RehabCost)
	v.SetDefault("calculator.deal.monthlyRent", d.Calculator.Deal.MonthlyRent)
	v.SetDefault("calculator.terms.assumedMonthlyPayment", d.Calculator.Terms.AssumedMonthlyPayment)
	v.SetDefault("calculator.terms.fixedMonthlyExpenses", d.Calculator.Terms.FixedMonthlyExpenses)
	v.SetDefault("calculator.terms.existingMortgageBalance", d.Calculator.Terms.ExistingMortgageBalance)
	return v
}

func decode(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	// Lists have no scalar default; an explicitly empty list is kept.
	d := Default()
	if !v.IsSet("session.leads") {
		configuration.Session.Leads = d.Session.Leads
	}
	if !v.IsSet("dashboard.metrics") {
		configuration.Dashboard.Metrics = d.Dashboard.Metrics
	}
	if !v.IsSet("dashboard.markets") {
		configuration.Dashboard.Markets = d.Dashboard.Markets
	}
	if !v.IsSet("dashboard.series") {
		configuration.Dashboard.Series = d.Dashboard.Series
	}

	return &configuration, nil
}

// Validate returns an error for settings the application cannot run with.
func (c *Configuration) Validate() error {
	if err := c.Valuation.Validate(); err != nil {
		return fmt.Errorf("valuation: %w", err)
	}
	if err := session.ValidateLeads(c.Session.Leads); err != nil {
		return fmt.Errorf("session: %w", err)
	}
	if err := validation.ValidateOutputFormat(c.Output.Format); err != nil {
		return fmt.Errorf("output: %w", err)
	}
	return nil
}

// ValidateConfiguration performs general validation of the configuration and returns warnings
func (c *Configuration) ValidateConfiguration() []string {
	validator := validation.ConfigValidator{
		Valuation: validation.ValuationConfig{
			SellingCostFraction: c.Valuation.SellingCostFraction,
			MAOFraction:         c.Valuation.MAOFraction,
			RefinanceLTV:        c.Valuation.RefinanceLTV,
			ApproveThreshold:    c.Valuation.ApproveThreshold,
		},
		Session: validation.SessionConfig{
			Capital:   c.Session.Capital,
			LeadCount: len(c.Session.Leads),
		},
	}
	return validator.ValidateAll()
}
