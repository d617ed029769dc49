package forecast

import (
	"github.com/theirongolddev/cfohelper/internal/config"
	"github.com/theirongolddev/cfohelper/internal/model"
)

// Projection is a computed scenario: the base-currency schedule and totals
// plus the resolved display currency.
type Projection struct {
	Scenario model.Scenario
	Currency config.Currency
	Schedule []model.MonthlyRecord
	Totals   model.Totals
}

// Project resolves the scenario's currency and computes its schedule and totals.
// An unknown currency code falls back to the base currency.
func Project(s model.Scenario) Projection {
	cur, ok := config.LookupCurrency(s.Currency)
	if !ok {
		cur = config.DefaultCurrency()
	}
	s.Currency = cur.Code

	sched := ComputeSchedule(s.Inputs)
	return Projection{
		Scenario: s,
		Currency: cur,
		Schedule: sched,
		Totals:   Aggregate(sched),
	}
}

// Converted returns the schedule scaled into the projection's currency.
func (p Projection) Converted() []model.MonthlyRecord {
	out := make([]model.MonthlyRecord, len(p.Schedule))
	for i, r := range p.Schedule {
		out[i] = ConvertRecord(r, p.Currency)
	}
	return out
}

// ConvertedTotals returns the totals scaled into the projection's currency.
func (p Projection) ConvertedTotals() model.Totals {
	return ConvertTotals(p.Totals, p.Currency)
}

// Peak returns the largest absolute converted value across all series,
// used to scale chart axes. It is never below 1.
func (p Projection) Peak() float64 {
	peak := 1.0
	for _, r := range p.Converted() {
		for _, v := range []float64{r.Revenue, r.Expenses, r.Profit} {
			if v < 0 {
				v = -v
			}
			if v > peak {
				peak = v
			}
		}
	}
	return peak
}
