package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/triptally/triptally/internal/model"
)

// RenderTrips renders a styled terminal summary of the analyzed trips.
func RenderTrips(trips []model.Trip) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Travel Expense Summary"))
	b.WriteString("\n")

	var total float64
	var ready int
	for i := range trips {
		total += trips[i].TotalAmount
		if trips[i].Ready {
			ready++
		}
	}

	b.WriteString(fmt.Sprintf("Total travel expenses: $%s\n", formatAmount(total)))
	b.WriteString(fmt.Sprintf("Trips: %d (%d ready for submission)\n\n", len(trips), ready))

	for i := range trips {
		b.WriteString(tripBoxStyle.Render(renderTrip(i+1, &trips[i])))
		b.WriteString("\n")
	}

	return b.String()
}

func renderTrip(number int, trip *model.Trip) string {
	var b strings.Builder

	verdict := reviewStyle.Render("NEEDS REVIEW")
	if trip.Ready {
		verdict = readyStyle.Render("READY")
	}

	b.WriteString(fmt.Sprintf("Trip #%d  %s\n", number, verdict))
	b.WriteString(fmt.Sprintf("Dates: %s - %s (%d days)\n",
		trip.StartDate.Format("01/02/2006"),
		trip.EndDate.Format("01/02/2006"),
		trip.DurationDays()))
	if trip.PrimaryLocation != "" {
		b.WriteString(fmt.Sprintf("Location: %s\n", trip.PrimaryLocation))
	}
	b.WriteString(fmt.Sprintf("Purpose: %s\n", trip.BusinessPurpose))
	b.WriteString(fmt.Sprintf("Total: $%s  Confidence: %.0f%%\n",
		formatAmount(trip.TotalAmount), trip.Confidence*100))

	b.WriteString("Breakdown:\n")
	for _, line := range breakdownLines(trip) {
		b.WriteString("  " + line + "\n")
	}

	b.WriteString(subtleStyle.Render(fmt.Sprintf("%d transactions", len(trip.Transactions))))

	return b.String()
}

// PlainReport renders an unstyled report suitable for file output.
func PlainReport(trips []model.Trip) string {
	var b strings.Builder

	b.WriteString("TRAVEL EXPENSE SUMMARY\n")
	b.WriteString(strings.Repeat("=", 50) + "\n\n")

	var total float64
	for i := range trips {
		total += trips[i].TotalAmount
	}
	b.WriteString(fmt.Sprintf("Total Travel Expenses: $%s\n", formatAmount(total)))
	b.WriteString(fmt.Sprintf("Number of Trips: %d\n\n", len(trips)))

	for i := range trips {
		trip := &trips[i]
		b.WriteString(fmt.Sprintf("TRIP #%d\n", i+1))
		b.WriteString(strings.Repeat("-", 20) + "\n")
		b.WriteString(fmt.Sprintf("Dates: %s - %s (%d days)\n",
			trip.StartDate.Format("01/02/2006"),
			trip.EndDate.Format("01/02/2006"),
			trip.DurationDays()))
		b.WriteString(fmt.Sprintf("Location: %s\n", trip.PrimaryLocation))
		b.WriteString(fmt.Sprintf("Business Purpose: %s\n", trip.BusinessPurpose))
		b.WriteString(fmt.Sprintf("Total Amount: $%s\n", formatAmount(trip.TotalAmount)))
		b.WriteString(fmt.Sprintf("Ready for Submission: %v\n\n", trip.Ready))

		b.WriteString("Expense Breakdown:\n")
		for _, line := range breakdownLines(trip) {
			b.WriteString("  " + line + "\n")
		}
		b.WriteString("\nTransactions:\n")
		for _, txn := range trip.Transactions {
			b.WriteString(fmt.Sprintf("  %s - $%.2f - %s\n",
				txn.Date.Format("01/02/2006"), txn.Amount, txn.Description))
		}
		b.WriteString("\n\n")
	}

	return b.String()
}

func breakdownLines(trip *model.Trip) []string {
	totals := trip.CategoryTotals()

	categories := make([]model.Category, 0, len(totals))
	for category := range totals {
		categories = append(categories, category)
	}
	sort.Slice(categories, func(i, j int) bool {
		return totals[categories[i]] > totals[categories[j]]
	})

	lines := make([]string, 0, len(categories))
	for _, category := range categories {
		lines = append(lines, fmt.Sprintf("%s: $%s", category, formatAmount(totals[category])))
	}
	return lines
}

// formatAmount renders a dollar amount with thousands separators.
func formatAmount(amount float64) string {
	s := fmt.Sprintf("%.2f", amount)
	dot := strings.Index(s, ".")
	whole, frac := s[:dot], s[dot:]

	neg := strings.HasPrefix(whole, "-")
	whole = strings.TrimPrefix(whole, "-")

	var parts []string
	for len(whole) > 3 {
		parts = append([]string{whole[len(whole)-3:]}, parts...)
		whole = whole[:len(whole)-3]
	}
	parts = append([]string{whole}, parts...)

	out := strings.Join(parts, ",") + frac
	if neg {
		out = "-" + out
	}
	return out
}
