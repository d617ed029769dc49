package model

// UsageStats holds the scenario/export counters behind the mocked billing panel.
type UsageStats struct {
	Scenarios       int64
	Exports         int64
	ScenarioRateUSD float64
	ExportRateUSD   float64
}

// ScenarioBilledUSD is the mocked charge for tested scenarios.
func (u UsageStats) ScenarioBilledUSD() float64 {
	return float64(u.Scenarios) * u.ScenarioRateUSD
}

// ExportBilledUSD is the mocked charge for exported reports.
func (u UsageStats) ExportBilledUSD() float64 {
	return float64(u.Exports) * u.ExportRateUSD
}

// TotalBilledUSD sums both mocked charges.
func (u UsageStats) TotalBilledUSD() float64 {
	return u.ScenarioBilledUSD() + u.ExportBilledUSD()
}
