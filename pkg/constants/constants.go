// Package constants provides shared constants for the tabelaprice application.
package constants

// Financial constants
const (
	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 100

	// CurrencyTolerance is the tolerance for currency comparisons (1 cent)
	CurrencyTolerance = 0.01

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0

	// DefaultTermMonths is the default loan term when none is configured.
	// Kept from the legacy calculator, which assumed an 8-year financing.
	DefaultTermMonths = 96
)

// Rate recovery constants
const (
	// InitialRateEstimate is the starting point for the Newton-Raphson solve.
	InitialRateEstimate = 0.1

	// RateConvergenceTolerance is the absolute tolerance on the payment
	// residual at which the Newton-Raphson solve is considered converged.
	RateConvergenceTolerance = 1e-6

	// MaxRateIterations caps the Newton-Raphson solve.
	MaxRateIterations = 1000
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
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the API
	DefaultServerAddress = ":8080"

	// DefaultHistoryLimit is the default number of stored calculations
	// returned by the history endpoint
	DefaultHistoryLimit = 20
)
