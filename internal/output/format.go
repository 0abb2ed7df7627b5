// Package output provides utilities for formatting and displaying
// amortization schedules.
package output

import (
	"fmt"
	"io"

	"github.com/bfporto/tabelaprice/pkg/amortization"
	"github.com/bfporto/tabelaprice/pkg/format"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// PrettyFormat outputs a human-readable rather than machine-readable table.
func PrettyFormat(w io.Writer, name string, terms amortization.Terms, schedule *amortization.Schedule) {
	p := message.NewPrinter(language.English)
	fmt.Fprintf(w, "--- Amortization schedule for %s ---\n", name)
	fmt.Fprintf(w, "Principal %s at %s over %d periods\n",
		format.Currency(terms.Principal), format.Percent(terms.Rate), terms.Periods)
	fmt.Fprintf(w, "Period | Payment      | Interest     | Principal    | Balance\n")
	fmt.Fprintf(w, "______ | _______      | ________     | _________    | _______\n")
	for _, installment := range schedule.Installments {
		_, _ = p.Fprintf(w, "%6d | $%.2f | $%.2f | $%.2f | $%.2f\n",
			installment.Period, installment.Payment, installment.Interest,
			installment.Principal, installment.RemainingBalance)
	}
	_, _ = p.Fprintf(w, "Totals | $%.2f | $%.2f | $%.2f |\n",
		schedule.TotalPaid, schedule.TotalInterest, schedule.TotalPrincipal)
}

// CsvFormat outputs in comma-separated value format.
func CsvFormat(w io.Writer, schedule *amortization.Schedule) {
	fmt.Fprintf(w, `"period","payment","interest","principal","balance"`)
	fmt.Fprintf(w, "\n")
	for _, installment := range schedule.Installments {
		fmt.Fprintf(w, `"%d","%s","%s","%s","%s"`,
			installment.Period, format.NumericCurrency(installment.Payment),
			format.NumericCurrency(installment.Interest),
			format.NumericCurrency(installment.Principal),
			format.NumericCurrency(installment.RemainingBalance))
		fmt.Fprintf(w, "\n")
	}
	fmt.Fprintf(w, `"totals","%s","%s","%s",""`,
		format.NumericCurrency(schedule.TotalPaid),
		format.NumericCurrency(schedule.TotalInterest),
		format.NumericCurrency(schedule.TotalPrincipal))
	fmt.Fprintf(w, "\n")
}
