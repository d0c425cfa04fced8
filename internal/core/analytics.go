package core

import (
	"time"

	"github.com/shopspring/decimal"
)

// Analytics is a derived, read-only view over the ledger. It is recomputed
// from the snapshot on every read and never persisted or cached.
type Analytics struct {
	MonthlyIncome    decimal.Decimal
	MonthlyExpense   decimal.Decimal
	SavingsRate      float64 // percent; 0 when there is no monthly income
	CategorySpending map[string]decimal.Decimal
	TotalBalance     decimal.Decimal
}

// ComputeAnalytics derives the monthly aggregates for the calendar month of
// now, plus the all-time balance.
func ComputeAnalytics(entries []Transaction, totalSalary, totalExpense decimal.Decimal, now time.Time) Analytics {
	a := Analytics{
		MonthlyIncome:    decimal.Zero,
		MonthlyExpense:   decimal.Zero,
		CategorySpending: make(map[string]decimal.Decimal),
		TotalBalance:     totalSalary.Sub(totalExpense),
	}

	for _, e := range entries {
		if e.Date.Year() != now.Year() || e.Date.Time.Month() != now.Month() {
			continue
		}
		switch e.TransactionType {
		case Income:
			a.MonthlyIncome = a.MonthlyIncome.Add(e.Amount)
		case Expense:
			a.MonthlyExpense = a.MonthlyExpense.Add(e.Amount)
			category := e.Category
			if category == "" {
				category = "Other"
			}
			a.CategorySpending[category] = a.CategorySpending[category].Add(e.Amount)
		}
	}

	// Explicit zero guard: no income this month means a 0% rate, not a
	// division error.
	if a.MonthlyIncome.IsPositive() {
		rate := a.MonthlyIncome.Sub(a.MonthlyExpense).
			Div(a.MonthlyIncome).
			Mul(decimal.NewFromInt(100))
		a.SavingsRate = rate.InexactFloat64()
	}

	return a
}
