package main

import (
	"github.com/bfporto/tabelaprice/pkg/amortization"
	"github.com/bfporto/tabelaprice/pkg/constants"
	"github.com/bfporto/tabelaprice/pkg/format"
	"github.com/spf13/cobra"
)

func rateCmd() *cobra.Command {
	var (
		principal  float64
		termMonths int
		totalPaid  float64
	)

	cmd := &cobra.Command{
		Use:   "rate",
		Short: "Recover the effective periodic rate from the total amount paid",
		RunE: func(cmd *cobra.Command, _ []string) error {
			estimate, err := amortization.EffectiveRate(principal, termMonths, totalPaid)
			if err != nil {
				return err
			}

			cmd.Printf("Effective periodic rate: %s (%.8f as a fraction)\n",
				format.Percent(estimate.Rate), estimate.Rate)
			cmd.Printf("Converged after %d iterations\n", estimate.Iterations)
			return nil
		},
	}

	cmd.Flags().Float64Var(&principal, "principal", 0, "loan principal")
	cmd.Flags().IntVar(&termMonths, "term", constants.DefaultTermMonths, "term in months")
	cmd.Flags().Float64Var(&totalPaid, "total-paid", 0, "total amount paid over the loan")
	_ = cmd.MarkFlagRequired("principal")
	_ = cmd.MarkFlagRequired("total-paid")
	return cmd
}
