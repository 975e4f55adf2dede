package core

import (
	"sort"
	"strconv"
	"time"
)

// monthNames holds the Indonesian month names used in report titles.
var monthNames = [...]string{
	"Januari", "Februari", "Maret", "April", "Mei", "Juni",
	"Juli", "Agustus", "September", "Oktober", "November", "Desember",
}

// MonthName renders "Maret 2024" for year=2024, month=3.
func MonthName(year, month int) string {
	if month < 1 || month > 12 {
		return ""
	}
	return monthNames[month-1] + " " + strconv.Itoa(year)
}

type (
	// Totals are the dashboard aggregates over a transaction list.
	Totals struct {
		Income  Money
		Expense Money
		Balance Money
	}

	// PartnerShare is one row of the profit-sharing table.
	PartnerShare struct {
		Name  string
		Share Money
	}

	// MonthlyReport aggregates one UTC calendar month.
	MonthlyReport struct {
		Year          int
		Month         int
		MonthName     string
		Transactions  []Transaction // ascending by date
		TotalIncome   Money
		TotalExpense  Money
		Balance       Money
		TotalTransfer Money
		TotalCash     Money
		// Shares is empty unless Balance is positive.
		Shares []PartnerShare
	}

	// CategoryAmount is an expense sum for one category.
	CategoryAmount struct {
		Category ExpenseCategory
		Amount   Money
	}
)

// ComputeTotals sums income and expense over the full list.
// Balance == Income - Expense always holds.
func ComputeTotals(txs []Transaction) Totals {
	var t Totals
	for _, tx := range txs {
		switch tx.Type {
		case Income:
			t.Income.Cents += tx.Amount.Cents
		case Expense:
			t.Expense.Cents += tx.Amount.Cents
		}
	}
	t.Balance.Cents = t.Income.Cents - t.Expense.Cents
	return t
}

// ComputeMonthlyReport filters the list to one UTC calendar month and
// aggregates it. The type partition (income/expense) and the payment
// partition (transfer/cash) are orthogonal: every filtered transaction
// lands in exactly one bucket of each. Profit shares are produced only
// for a positive balance.
func ComputeMonthlyReport(txs []Transaction, year, month int, partners []string) MonthlyReport {
	r := MonthlyReport{
		Year:      year,
		Month:     month,
		MonthName: MonthName(year, month),
	}

	for _, tx := range txs {
		if !tx.Date.InMonth(year, month) {
			continue
		}
		r.Transactions = append(r.Transactions, tx)
		if tx.Type == Income {
			r.TotalIncome.Cents += tx.Amount.Cents
		} else {
			r.TotalExpense.Cents += tx.Amount.Cents
		}
		if tx.PaymentMethod == Transfer {
			r.TotalTransfer.Cents += tx.Amount.Cents
		} else {
			r.TotalCash.Cents += tx.Amount.Cents
		}
	}
	r.Balance.Cents = r.TotalIncome.Cents - r.TotalExpense.Cents

	sort.SliceStable(r.Transactions, func(i, j int) bool {
		return r.Transactions[i].Date.Before(r.Transactions[j].Date.Time)
	})

	if r.Balance.Cents > 0 && len(partners) > 0 {
		share := splitEqually(r.Balance.Cents, len(partners))
		r.Shares = make([]PartnerShare, len(partners))
		for i, name := range partners {
			r.Shares[i] = PartnerShare{Name: name, Share: Money{Cents: share}}
		}
	}

	return r
}

// splitEqually divides cents among n with half-up rounding on the
// sub-cent remainder.
func splitEqually(cents int64, n int) int64 {
	q := cents / int64(n)
	rem := cents % int64(n)
	if 2*rem >= int64(n) {
		q++
	}
	return q
}

// ExpenseByCategory groups expense transactions by category, summing
// amounts. Categories with no matching expense are omitted, and the
// result follows the fixed category order.
func ExpenseByCategory(txs []Transaction) []CategoryAmount {
	sums := make(map[ExpenseCategory]int64)
	for _, tx := range txs {
		if tx.Type != Expense || tx.Category == "" {
			continue
		}
		sums[tx.Category] += tx.Amount.Cents
	}
	var out []CategoryAmount
	for _, cat := range ExpenseCategories() {
		if cents, ok := sums[cat]; ok {
			out = append(out, CategoryAmount{Category: cat, Amount: Money{Cents: cents}})
		}
	}
	return out
}

// FormatDayID renders a date as d/m/yyyy, matching id-ID short dates.
func FormatDayID(d Date) string {
	u := d.Time.UTC()
	return strconv.Itoa(u.Day()) + "/" + strconv.Itoa(int(u.Month())) + "/" + strconv.Itoa(u.Year())
}

// TodayID renders the current date as "2 September 2026".
func TodayID(now time.Time) string {
	u := now.UTC()
	return strconv.Itoa(u.Day()) + " " + monthNames[int(u.Month())-1] + " " + strconv.Itoa(u.Year())
}
