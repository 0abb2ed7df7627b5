package amortization

import (
	"fmt"
	"math"

	"github.com/bfporto/tabelaprice/pkg/constants"
)

// Validate checks that the terms are within the supported domain.
func (t Terms) Validate() error {
	if t.Principal <= 0 {
		return fmt.Errorf("%w: principal must be positive, got %.2f", ErrInvalidInput, t.Principal)
	}
	if t.Periods <= 0 {
		return fmt.Errorf("%w: periods must be positive, got %d", ErrInvalidInput, t.Periods)
	}
	if t.Rate <= -1 {
		return fmt.Errorf("%w: rate must be greater than -1, got %v", ErrInvalidInput, t.Rate)
	}
	return nil
}

// InstallmentPayment calculates the constant per-period payment for a loan
// using the standard annuity formula. A zero rate degenerates to an even
// split of the principal across the term.
func InstallmentPayment(principal, rate float64, periods int) (float64, error) {
	terms := Terms{Principal: principal, Rate: rate, Periods: periods}
	if err := terms.Validate(); err != nil {
		return 0, err
	}

	if rate == 0 {
		return principal / float64(periods), nil
	}

	return principal * rate / (1 - math.Pow(1+rate, -float64(periods))), nil
}

// FinancingCoefficient calculates the installment amount as a fraction of the
// principal, i.e. InstallmentPayment for a unit principal.
func FinancingCoefficient(rate float64, periods int) (float64, error) {
	if periods <= 0 {
		return 0, fmt.Errorf("%w: periods must be positive, got %d", ErrInvalidInput, periods)
	}
	if rate <= -1 {
		return 0, fmt.Errorf("%w: rate must be greater than -1, got %v", ErrInvalidInput, rate)
	}

	if rate == 0 {
		return 1 / float64(periods), nil
	}

	power := math.Pow(1+rate, float64(periods))
	return rate * power / (power - 1), nil
}

// TotalPaid calculates the total amount paid over the life of the loan.
func TotalPaid(principal, rate float64, periods int) (float64, error) {
	payment, err := InstallmentPayment(principal, rate, periods)
	if err != nil {
		return 0, err
	}
	return payment * float64(periods), nil
}

// EffectiveRate recovers the periodic rate implied by a known principal, term,
// and total amount paid. It runs a Newton-Raphson solve on the annuity payment
// equation so that the recovered rate inverts TotalPaid. The returned rate is
// a fraction; converting to a percentage is a presentation concern.
//
// The solve starts from a 10% estimate, stops when the payment residual falls
// within an absolute tolerance, and is capped at a fixed iteration count. If
// no non-negative rate can explain the inputs (a totalPaid below principal),
// the cap is reached, or the iteration leaves the valid rate domain, the
// result carries Converged=false and an ErrNoConvergence.
func EffectiveRate(principal float64, periods int, totalPaid float64) (RateEstimate, error) {
	if principal <= 0 {
		return RateEstimate{}, fmt.Errorf("%w: principal must be positive, got %.2f", ErrInvalidInput, principal)
	}
	if periods <= 0 {
		return RateEstimate{}, fmt.Errorf("%w: periods must be positive, got %d", ErrInvalidInput, periods)
	}
	if totalPaid <= 0 {
		return RateEstimate{}, fmt.Errorf("%w: total paid must be positive, got %.2f", ErrInvalidInput, totalPaid)
	}

	// No non-negative rate can make an annuity cost less than its principal,
	// so the solve is rejected up front rather than letting Newton converge
	// to a negative root.
	if totalPaid < principal {
		return RateEstimate{},
			fmt.Errorf("%w: no non-negative rate explains a total paid of %.2f on a principal of %.2f",
				ErrNoConvergence, totalPaid, principal)
	}

	targetPayment := totalPaid / float64(periods)
	rate := constants.InitialRateEstimate

	for iteration := 1; iteration <= constants.MaxRateIterations; iteration++ {
		if rate <= -1 || math.IsNaN(rate) || math.IsInf(rate, 0) {
			return RateEstimate{Iterations: iteration},
				fmt.Errorf("%w: estimate left the valid rate domain after %d iterations", ErrNoConvergence, iteration)
		}

		payment, derivative := paymentWithDerivative(principal, rate, periods)
		residual := payment - targetPayment

		if math.Abs(residual) <= constants.RateConvergenceTolerance {
			if rate < -constants.RateConvergenceTolerance {
				// A negative implied rate means the total paid is below the
				// principal; there is no annuity rate to report.
				return RateEstimate{Iterations: iteration},
					fmt.Errorf("%w: no non-negative rate explains a total paid of %.2f on a principal of %.2f",
						ErrNoConvergence, totalPaid, principal)
			}
			return RateEstimate{Rate: rate, Iterations: iteration, Converged: true}, nil
		}

		if derivative == 0 || math.IsNaN(derivative) || math.IsInf(derivative, 0) {
			return RateEstimate{Iterations: iteration},
				fmt.Errorf("%w: derivative vanished after %d iterations", ErrNoConvergence, iteration)
		}

		rate -= residual / derivative
	}

	return RateEstimate{Iterations: constants.MaxRateIterations},
		fmt.Errorf("%w: exceeded %d iterations", ErrNoConvergence, constants.MaxRateIterations)
}

// paymentWithDerivative evaluates the annuity payment and its derivative with
// respect to the rate. The zero-rate branch uses the analytic limits.
func paymentWithDerivative(principal, rate float64, periods int) (float64, float64) {
	n := float64(periods)

	if rate == 0 {
		// payment -> principal/n, d(payment)/d(rate) -> principal*(n+1)/(2n)
		return principal / n, principal * (n + 1) / (2 * n)
	}

	discount := math.Pow(1+rate, -n)
	denominator := 1 - discount
	payment := principal * rate / denominator
	derivative := principal * (denominator - rate*n*math.Pow(1+rate, -n-1)) / (denominator * denominator)
	return payment, derivative
}
