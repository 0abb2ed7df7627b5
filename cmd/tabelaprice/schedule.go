package main

import (
	"fmt"
	"os"

	"github.com/bfporto/tabelaprice/internal/output"
	"github.com/bfporto/tabelaprice/pkg/amortization"
	"github.com/bfporto/tabelaprice/pkg/constants"
	"github.com/bfporto/tabelaprice/pkg/format"
	"github.com/bfporto/tabelaprice/pkg/validation"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func scheduleCmd() *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Compute amortization schedules for the configured loans",
		RunE: func(_ *cobra.Command, _ []string) error {
			conf, logger, err := loadConfigAndLogger()
			if err != nil {
				return err
			}
			defer func() {
				_ = logger.Sync()
			}()

			// Determine output format (CLI override takes precedence over config)
			selected := conf.Output.Format
			if outputFormat != "" {
				selected = outputFormat
			}
			if selected == "" {
				selected = constants.OutputFormatPretty
			}
			if err := validation.ValidateOutputFormat(selected); err != nil {
				return err
			}

			warnings := conf.ValidateConfiguration()
			for _, warning := range warnings {
				logger.Warn("Configuration warning: "+warning,
					zap.String("op", "main"),
				)
			}

			if err := conf.ProcessLoans(logger); err != nil {
				return fmt.Errorf("failed to process loan amortization schedules: %w", err)
			}

			for i, loan := range conf.Loans {
				switch selected {
				case constants.OutputFormatPretty:
					output.PrettyFormat(os.Stdout, loan.Name, loan.Terms(), loan.AmortizationSchedule)
					if i < len(conf.Loans)-1 {
						fmt.Println()
					}
				case constants.OutputFormatCSV:
					output.CsvFormat(os.Stdout, loan.AmortizationSchedule)
				}
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&outputFormat, "output-format", "", "type of output override: pretty, csv")
	return cmd
}

func paymentCmd() *cobra.Command {
	var (
		principal    float64
		interestRate float64
		termMonths   int
	)

	cmd := &cobra.Command{
		Use:   "payment",
		Short: "Compute the installment payment for a single loan",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rate := interestRate / constants.PercentageMultiplier

			payment, err := amortization.InstallmentPayment(principal, rate, termMonths)
			if err != nil {
				return err
			}
			coefficient, err := amortization.FinancingCoefficient(rate, termMonths)
			if err != nil {
				return err
			}

			cmd.Printf("Installment payment: %s\n", format.Currency(payment))
			cmd.Printf("Financing coefficient: %.7f\n", coefficient)
			cmd.Printf("Total paid over %d periods: %s\n", termMonths,
				format.Currency(payment*float64(termMonths)))
			return nil
		},
	}

	cmd.Flags().Float64Var(&principal, "principal", 0, "loan principal")
	cmd.Flags().Float64Var(&interestRate, "rate", 0, "periodic interest rate in percent (e.g. 2.0 for 2% monthly)")
	cmd.Flags().IntVar(&termMonths, "term", constants.DefaultTermMonths, "term in months")
	_ = cmd.MarkFlagRequired("principal")
	return cmd
}
