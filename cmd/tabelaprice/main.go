package main

import (
	"fmt"
	"os"

	"github.com/bfporto/tabelaprice/internal/config"
	"github.com/bfporto/tabelaprice/pkg/constants"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	cfgFile  string
	logLevel string
	version  = "dev"

	rootCmd = &cobra.Command{
		Use:   "tabelaprice",
		Short: "Tabela Price loan amortization calculator",
		Long: `tabelaprice computes fixed-installment ("Tabela Price") loan schedules,
financing coefficients, and effective interest rates, and can serve them
over an HTTP API.`,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", constants.DefaultConfigFile, "path to configuration file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level override (debug, info, warn, error)")

	rootCmd.AddCommand(scheduleCmd())
	rootCmd.AddCommand(paymentCmd())
	rootCmd.AddCommand(rateCmd())
	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(versionCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfigAndLogger loads the YAML configuration and builds the logger it
// describes, honoring the CLI log level override.
func loadConfigAndLogger() (*config.Configuration, *zap.Logger, error) {
	conf, err := config.LoadConfiguration(cfgFile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration at %s: %w", cfgFile, err)
	}

	logger, err := initializeLogger(conf.Logging, logLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	return conf, logger, nil
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the tabelaprice version",
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("tabelaprice %s\n", version)
		},
	}
}
