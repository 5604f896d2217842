// Package constants provides shared constants for the trident application.
package constants

// DateTimeLayout is the month format used for chart series and in config
// files.
const DateTimeLayout = "2006-01"

// Financial constants
const (
	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 100

	// CurrencyTolerance is the tolerance for currency comparisons (1 cent)
	CurrencyTolerance = 0.01

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0

	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12
)

// Valuation defaults. The dashboard variants disagree on several of these,
// so each one is overridable from configuration.
const (
	// DefaultSellingCostFraction is the share of ARV lost to closing and
	// agent costs on a flip.
	DefaultSellingCostFraction = 0.10

	// DefaultMAOFraction is the ARV multiplier of the "70% rule".
	DefaultMAOFraction = 0.70

	// DefaultRefinanceLTV is the loan-to-value used to size a BRRRR refinance.
	DefaultRefinanceLTV = 0.75

	// DefaultDownPaymentFraction is the cash down on the purchase price used
	// by the down-payment capital basis.
	DefaultDownPaymentFraction = 0.20

	// DefaultApproveThreshold is the ROI percentage above which a deal is approved.
	DefaultApproveThreshold = 15.0

	// DefaultCautionThreshold is the ROI percentage above which a deal that
	// is not approved still warrants a look.
	DefaultCautionThreshold = 0.0

	// CapitalBasisDownPayment invests the down payment plus rehab.
	CapitalBasisDownPayment = "down-payment"

	// CapitalBasisTotalInvestment invests the full price plus rehab.
	CapitalBasisTotalInvestment = "total-investment"
)

// Session defaults
const (
	// DefaultCapital is the liquid capital a new session starts with.
	DefaultCapital = 850000.0
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// ExampleConfigFile is the example configuration file name
	ExampleConfigFile = "config.yaml.example"

	// EnvPrefix prefixes every environment override, e.g. TRIDENT_VALUATION_REFINANCELTV.
	EnvPrefix = "TRIDENT"

	// DotEnvFile is loaded into the environment before configuration is read.
	DotEnvFile = ".env"
)
