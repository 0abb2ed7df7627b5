package config

import (
	"github.com/bfporto/tabelaprice/pkg/amortization"
	"github.com/bfporto/tabelaprice/pkg/constants"
	"go.uber.org/zap"
)

// Loan indicates a financing and its parameters. InterestRate is the monthly
// rate as a percentage, the way the legacy calculator forms took it.
type Loan struct {
	Name                 string
	Principal            float64
	InterestRate         float64
	TermMonths           int // months
	DownPayment          bool
	AmortizationSchedule *amortization.Schedule
}

// Terms converts the configured loan into engine terms, moving the rate from
// a percentage to a fraction at this boundary.
func (loan *Loan) Terms() amortization.Terms {
	return amortization.Terms{
		Principal: loan.Principal,
		Rate:      loan.InterestRate / constants.PercentageMultiplier,
		Periods:   loan.TermMonths,
	}
}

// ProcessLoans iterates through all loans and produces the amortization
// schedules.
func (conf *Configuration) ProcessLoans(logger *zap.Logger) error {
	generator := amortization.NewScheduleGenerator(logger)

	for i := range conf.Loans {
		schedule, err := generator.GenerateSchedule(conf.Loans[i].Terms(), conf.Loans[i].DownPayment)
		if err != nil {
			return err
		}
		conf.Loans[i].AmortizationSchedule = schedule
	}

	return nil
}
