// Package amortization implements fixed-installment ("Tabela Price") loan
// calculations: installment payments, financing coefficients, full
// amortization schedules, and effective-rate recovery from the total amount
// paid. All rates are periodic rates expressed as fractions; percentage
// conversion belongs to presentation layers.
package amortization

import "errors"

// ErrInvalidInput indicates loan parameters outside the supported domain,
// e.g. a non-positive principal or term, or a rate at or below -100%.
var ErrInvalidInput = errors.New("invalid loan terms")

// ErrNoConvergence indicates the effective-rate solve did not produce a
// trustworthy rate within the iteration cap. Callers must not use the rate
// on this outcome.
var ErrNoConvergence = errors.New("rate estimation did not converge")

// Terms holds the parameters of a fixed-rate, fixed-installment loan.
// Rate is the periodic rate as a fraction (e.g. 0.02 for 2% per month).
type Terms struct {
	Principal float64
	Rate      float64
	Periods   int
}

// Installment holds the breakdown of a single period's payment.
// RemainingBalance is the balance after this period's amortization.
type Installment struct {
	Period           int
	Payment          float64
	Interest         float64
	Principal        float64
	RemainingBalance float64
}

// Schedule is the ordered sequence of installments for a loan plus the
// aggregate totals across all periods. It is recomputed wholesale from Terms;
// there is no partial update path.
type Schedule struct {
	Installments   []Installment
	TotalPaid      float64
	TotalInterest  float64
	TotalPrincipal float64
}

// RateEstimate is the result of an effective-rate recovery. The Rate is a
// periodic fraction and is only meaningful when Converged is true.
type RateEstimate struct {
	Rate       float64
	Iterations int
	Converged  bool
}
