package amortization

import (
	"fmt"

	"github.com/bfporto/tabelaprice/pkg/mathutil"
	"go.uber.org/zap"
)

// ScheduleGenerator produces full amortization schedules for loans.
type ScheduleGenerator struct {
	logger *zap.Logger
}

// NewScheduleGenerator creates a new generator instance
func NewScheduleGenerator(logger *zap.Logger) *ScheduleGenerator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScheduleGenerator{logger: logger}
}

// GenerateSchedule creates a complete amortization schedule for the given
// terms. The payment is constant across all periods; interest is accrued on
// the running balance. When hasDownPayment is set the first installment is
// applied wholly against the principal before interest starts accruing, and
// the regular loop covers the remaining periods.
func (g *ScheduleGenerator) GenerateSchedule(terms Terms, hasDownPayment bool) (*Schedule, error) {
	payment, err := InstallmentPayment(terms.Principal, terms.Rate, terms.Periods)
	if err != nil {
		return nil, err
	}

	schedule := &Schedule{
		Installments: make([]Installment, 0, terms.Periods),
	}
	balance := terms.Principal
	startPeriod := 1

	if hasDownPayment {
		balance -= payment
		schedule.Installments = append(schedule.Installments, Installment{
			Period:           1,
			Payment:          payment,
			Interest:         0,
			Principal:        payment,
			RemainingBalance: balance,
		})
		g.logger.Debug(fmt.Sprintf("applied down payment of %.2f, financing %.2f over %d periods",
			payment, balance, terms.Periods-1),
			zap.String("op", "amortization.GenerateSchedule"),
		)
		startPeriod = 2
	}

	for period := startPeriod; period <= terms.Periods; period++ {
		interest := balance * terms.Rate
		principalPortion := payment - interest
		balance -= principalPortion

		if period == terms.Periods && !hasDownPayment && mathutil.Round(balance) == 0 {
			// We will get machine error otherwise so just set to 0.
			balance = 0
		}

		schedule.Installments = append(schedule.Installments, Installment{
			Period:           period,
			Payment:          payment,
			Interest:         interest,
			Principal:        principalPortion,
			RemainingBalance: balance,
		})
	}

	for _, installment := range schedule.Installments {
		schedule.TotalPaid += installment.Payment
		schedule.TotalInterest += installment.Interest
		schedule.TotalPrincipal += installment.Principal
	}

	return schedule, nil
}
