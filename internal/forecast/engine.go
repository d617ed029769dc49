// Package forecast turns scenario inputs into a six-month revenue, expense and
// profit projection. Every function here is pure.
package forecast

import (
	"errors"
	"fmt"
	"math"

	"github.com/theirongolddev/cfohelper/internal/config"
	"github.com/theirongolddev/cfohelper/internal/model"
)

// ErrNonFinite is returned by Validate for NaN or infinite inputs.
var ErrNonFinite = errors.New("non-finite input")

const (
	revenuePerPricingUnit = 1000
	costPerSpendingUnit   = 100
	staffCostPerHeadcount = 5000
)

type monthFactor struct {
	month     string
	revenue   float64
	staffCost float64
}

// schedule is the fixed month-by-month multiplier table.
var schedule = [Months]monthFactor{
	{"Jan", 0.8, 1.0},
	{"Feb", 0.9, 1.1},
	{"Mar", 1.0, 1.2},
	{"Apr", 1.1, 1.2},
	{"May", 1.2, 1.3},
	{"Jun", 1.3, 1.3},
}

// Months is the length of every computed schedule.
const Months = 6

// MonthLabels returns the month names in schedule order.
func MonthLabels() []string {
	out := make([]string, Months)
	for i, f := range schedule {
		out[i] = f.month
	}
	return out
}

// ComputeSchedule returns the six monthly records for the given inputs.
// It accepts any value, including zero and negatives, and never fails.
func ComputeSchedule(in model.Inputs) []model.MonthlyRecord {
	baseRevenue := in.Pricing * revenuePerPricingUnit
	baseCosts := in.Spending * costPerSpendingUnit
	staffCosts := in.Hiring * staffCostPerHeadcount

	out := make([]model.MonthlyRecord, Months)
	for i, f := range schedule {
		// Explicit conversions keep the products from being fused into the
		// subtraction, so Profit is exactly Revenue - Expenses.
		revenue := float64(baseRevenue * f.revenue)
		expenses := float64(baseCosts + float64(staffCosts*f.staffCost))
		out[i] = model.MonthlyRecord{
			Month:    f.month,
			Revenue:  revenue,
			Expenses: expenses,
			Profit:   revenue - expenses,
		}
	}
	return out
}

// Aggregate sums a schedule. ProfitMargin is 0 when total revenue is exactly 0.
func Aggregate(records []model.MonthlyRecord) model.Totals {
	var t model.Totals
	for _, r := range records {
		t.TotalRevenue += r.Revenue
		t.TotalExpenses += r.Expenses
	}
	t.TotalProfit = t.TotalRevenue - t.TotalExpenses
	if t.TotalRevenue != 0 {
		t.ProfitMargin = t.TotalProfit / t.TotalRevenue * 100
	}
	return t
}

// Convert scales a base-currency amount into c. No rounding is applied.
func Convert(amount float64, c config.Currency) float64 {
	return amount * c.Rate
}

// ConvertRecord scales every money field of r into c.
func ConvertRecord(r model.MonthlyRecord, c config.Currency) model.MonthlyRecord {
	return model.MonthlyRecord{
		Month:    r.Month,
		Revenue:  Convert(r.Revenue, c),
		Expenses: Convert(r.Expenses, c),
		Profit:   Convert(r.Profit, c),
	}
}

// ConvertTotals scales the money fields of t into c. The margin is a ratio and is kept.
func ConvertTotals(t model.Totals, c config.Currency) model.Totals {
	return model.Totals{
		TotalRevenue:  Convert(t.TotalRevenue, c),
		TotalExpenses: Convert(t.TotalExpenses, c),
		TotalProfit:   Convert(t.TotalProfit, c),
		ProfitMargin:  t.ProfitMargin,
	}
}

// Validate rejects NaN and infinite inputs. It is meant for untrusted
// boundaries; ComputeSchedule never calls it.
func Validate(in model.Inputs) error {
	fields := []struct {
		name string
		v    float64
	}{
		{"spending", in.Spending},
		{"pricing", in.Pricing},
		{"hiring", in.Hiring},
	}
	for _, f := range fields {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return fmt.Errorf("%s: %w", f.name, ErrNonFinite)
		}
	}
	return nil
}
