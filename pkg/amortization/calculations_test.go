package amortization

import (
	"errors"
	"math"
	"testing"
)

func TestInstallmentPayment(t *testing.T) {
	tests := []struct {
		name      string
		principal float64
		rate      float64
		periods   int
		expected  float64
		tolerance float64
	}{
		{
			name:      "Reference financing 2% monthly over 12 months",
			principal: 10000,
			rate:      0.02,
			periods:   12,
			expected:  945.60,
			tolerance: 0.01,
		},
		{
			name:      "Long mortgage 0.5% monthly over 360 months",
			principal: 240000,
			rate:      0.005,
			periods:   360,
			expected:  1438.92,
			tolerance: 0.50,
		},
		{
			name:      "Zero rate splits principal evenly",
			principal: 12000,
			rate:      0.0,
			periods:   60,
			expected:  200.00,
			tolerance: 0.0,
		},
		{
			name:      "Single period pays principal plus one period of interest",
			principal: 1000,
			rate:      0.10,
			periods:   1,
			expected:  1100.00,
			tolerance: 0.01,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := InstallmentPayment(tt.principal, tt.rate, tt.periods)
			if err != nil {
				t.Fatalf("InstallmentPayment() unexpected error: %v", err)
			}
			if math.Abs(result-tt.expected) > tt.tolerance {
				t.Errorf("InstallmentPayment() = %.4f, expected %.4f ± %.2f",
					result, tt.expected, tt.tolerance)
			}
		})
	}
}

func TestInstallmentPaymentInvalidInput(t *testing.T) {
	tests := []struct {
		name      string
		principal float64
		rate      float64
		periods   int
	}{
		{"Zero principal", 0, 0.02, 12},
		{"Negative principal", -5000, 0.02, 12},
		{"Zero periods", 10000, 0.02, 0},
		{"Negative periods", 10000, 0.02, -12},
		{"Rate at -100%", 10000, -1.0, 12},
		{"Rate below -100%", 10000, -1.5, 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := InstallmentPayment(tt.principal, tt.rate, tt.periods)
			if !errors.Is(err, ErrInvalidInput) {
				t.Errorf("InstallmentPayment() error = %v, expected ErrInvalidInput", err)
			}
		})
	}
}

func TestFinancingCoefficient(t *testing.T) {
	tests := []struct {
		name     string
		rate     float64
		periods  int
		expected float64
	}{
		{"Reference financing", 0.02, 12, 0.0945596},
		{"Zero rate is the reciprocal of the term", 0.0, 96, 1.0 / 96.0},
		{"Single period", 0.10, 1, 1.10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := FinancingCoefficient(tt.rate, tt.periods)
			if err != nil {
				t.Fatalf("FinancingCoefficient() unexpected error: %v", err)
			}
			if math.Abs(result-tt.expected) > 1e-6 {
				t.Errorf("FinancingCoefficient() = %.7f, expected %.7f", result, tt.expected)
			}
		})
	}
}

// The coefficient is defined as the payment per unit of principal, so both
// entry points must agree for any principal.
func TestFinancingCoefficientMatchesPayment(t *testing.T) {
	principals := []float64{1, 1000, 10000, 357000.55}
	for _, principal := range principals {
		payment, err := InstallmentPayment(principal, 0.025, 48)
		if err != nil {
			t.Fatalf("InstallmentPayment() unexpected error: %v", err)
		}
		coefficient, err := FinancingCoefficient(0.025, 48)
		if err != nil {
			t.Fatalf("FinancingCoefficient() unexpected error: %v", err)
		}
		if math.Abs(payment/principal-coefficient) > 1e-9 {
			t.Errorf("payment/principal = %.10f, coefficient = %.10f for principal %.2f",
				payment/principal, coefficient, principal)
		}
	}
}

func TestTotalPaid(t *testing.T) {
	tests := []struct {
		name      string
		principal float64
		rate      float64
		periods   int
		expected  float64
		tolerance float64
	}{
		{
			name:      "Reference financing",
			principal: 10000,
			rate:      0.02,
			periods:   12,
			expected:  11347.15,
			tolerance: 0.01,
		},
		{
			name:      "Zero rate pays exactly the principal",
			principal: 9600,
			rate:      0.0,
			periods:   96,
			expected:  9600.00,
			tolerance: 0.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := TotalPaid(tt.principal, tt.rate, tt.periods)
			if err != nil {
				t.Fatalf("TotalPaid() unexpected error: %v", err)
			}
			if math.Abs(result-tt.expected) > tt.tolerance {
				t.Errorf("TotalPaid() = %.4f, expected %.4f ± %.2f",
					result, tt.expected, tt.tolerance)
			}
		})
	}
}

// A positive rate always makes the loan cost at least the principal.
func TestTotalPaidNeverBelowPrincipal(t *testing.T) {
	rates := []float64{0.001, 0.01, 0.02, 0.05, 0.1, 0.5, 0.99}
	terms := []int{1, 6, 12, 96, 360}
	for _, rate := range rates {
		for _, periods := range terms {
			total, err := TotalPaid(10000, rate, periods)
			if err != nil {
				t.Fatalf("TotalPaid(10000, %v, %d) unexpected error: %v", rate, periods, err)
			}
			if total < 10000 {
				t.Errorf("TotalPaid(10000, %v, %d) = %.2f, below principal", rate, periods, total)
			}
		}
	}
}

func TestEffectiveRateRoundTrip(t *testing.T) {
	tests := []struct {
		name      string
		principal float64
		rate      float64
		periods   int
	}{
		{"Reference financing", 10000, 0.02, 12},
		{"Low monthly rate long term", 240000, 0.005, 360},
		{"Moderate rate", 5000, 0.1, 24},
		{"High rate short term", 1500, 0.45, 6},
		{"Single period", 1000, 0.3, 1},
		{"Legacy default term", 35000, 0.012, 96},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			total, err := TotalPaid(tt.principal, tt.rate, tt.periods)
			if err != nil {
				t.Fatalf("TotalPaid() unexpected error: %v", err)
			}

			estimate, err := EffectiveRate(tt.principal, tt.periods, total)
			if err != nil {
				t.Fatalf("EffectiveRate() unexpected error: %v", err)
			}
			if !estimate.Converged {
				t.Fatal("EffectiveRate() did not converge")
			}
			if math.Abs(estimate.Rate-tt.rate) > 1e-6 {
				t.Errorf("EffectiveRate() = %.8f, expected %.8f within 1e-6", estimate.Rate, tt.rate)
			}
		})
	}
}

func TestEffectiveRateZeroRateLoan(t *testing.T) {
	// Total paid equal to the principal implies a zero rate.
	estimate, err := EffectiveRate(12000, 24, 12000)
	if err != nil {
		t.Fatalf("EffectiveRate() unexpected error: %v", err)
	}
	if !estimate.Converged {
		t.Fatal("EffectiveRate() did not converge")
	}
	if math.Abs(estimate.Rate) > 1e-6 {
		t.Errorf("EffectiveRate() = %.10f, expected ~0", estimate.Rate)
	}
}

func TestEffectiveRateNoConvergence(t *testing.T) {
	// A total paid below the principal has no non-negative rate solution; the
	// solve must fail rather than report a misleading value. This includes
	// totals a fraction of a cent below the principal, whose implied negative
	// rate would otherwise slip through as a near-zero result.
	tests := []struct {
		name      string
		principal float64
		periods   int
		totalPaid float64
	}{
		{"Well below principal", 10000, 12, 9000},
		{"One cent below principal", 10000, 12, 9999.99},
		{"Single period below principal", 5000, 1, 4999.99},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			estimate, err := EffectiveRate(tt.principal, tt.periods, tt.totalPaid)
			if !errors.Is(err, ErrNoConvergence) {
				t.Fatalf("EffectiveRate() error = %v, expected ErrNoConvergence", err)
			}
			if estimate.Converged {
				t.Error("EffectiveRate() reported convergence on a failed solve")
			}
			if estimate.Rate != 0 {
				t.Errorf("EffectiveRate() carried a rate of %v on a failed solve", estimate.Rate)
			}
		})
	}
}

func TestEffectiveRateInvalidInput(t *testing.T) {
	tests := []struct {
		name      string
		principal float64
		periods   int
		totalPaid float64
	}{
		{"Zero principal", 0, 12, 11000},
		{"Negative principal", -10000, 12, 11000},
		{"Zero periods", 10000, 0, 11000},
		{"Zero total paid", 10000, 12, 0},
		{"Negative total paid", 10000, 12, -500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := EffectiveRate(tt.principal, tt.periods, tt.totalPaid)
			if !errors.Is(err, ErrInvalidInput) {
				t.Errorf("EffectiveRate() error = %v, expected ErrInvalidInput", err)
			}
		})
	}
}
