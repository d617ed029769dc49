// Package model defines the value types shared by the forecast engine and its front ends.
package model

// Inputs holds the three scenario scalars bound to the dashboard sliders.
// The engine accepts any real values; slider domains live in config.
type Inputs struct {
	Spending float64 `json:"spending"` // monthly operating cost unit (x100)
	Pricing  float64 `json:"pricing"`  // revenue-per-unit scalar (x1000)
	Hiring   float64 `json:"hiring"`   // headcount (x5000 staff cost)
}

// MonthlyRecord is one row of the six-month projection, in base currency.
// Profit always equals Revenue - Expenses.
type MonthlyRecord struct {
	Month    string  `json:"month"`
	Revenue  float64 `json:"revenue"`
	Expenses float64 `json:"expenses"`
	Profit   float64 `json:"profit"`
}

// Totals holds the aggregates derived from a schedule.
type Totals struct {
	TotalRevenue  float64 `json:"totalRevenue"`
	TotalExpenses float64 `json:"totalExpenses"`
	TotalProfit   float64 `json:"totalProfit"`
	ProfitMargin  float64 `json:"profitMargin"` // percent; 0 when TotalRevenue is 0
}

// Scenario is the complete, immutable UI state handed to the engine.
// Callers replace it wholesale on every change.
type Scenario struct {
	Inputs   Inputs
	Currency string // ISO code, resolved against config.Currencies
	Chart    ChartKind
}

// WithInputs returns a copy of s carrying new inputs.
func (s Scenario) WithInputs(in Inputs) Scenario {
	s.Inputs = in
	return s
}

// WithCurrency returns a copy of s with a different currency code.
func (s Scenario) WithCurrency(code string) Scenario {
	s.Currency = code
	return s
}

// WithChart returns a copy of s with a different chart selection.
func (s Scenario) WithChart(k ChartKind) Scenario {
	s.Chart = k
	return s
}
