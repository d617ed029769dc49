package report

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/theirongolddev/cfohelper/internal/forecast"
	"github.com/theirongolddev/cfohelper/internal/model"
)

var fixedTime = time.Date(2024, 6, 10, 14, 30, 5, 123_000_000, time.UTC)

func defaultProjection(currency string) forecast.Projection {
	return forecast.Project(model.Scenario{
		Inputs:   model.Inputs{Spending: 150, Pricing: 300, Hiring: 25},
		Currency: currency,
		Chart:    model.ChartBar,
	})
}

func TestBuildDefaultScenarioUSD(t *testing.T) {
	r := Build(defaultProjection("USD"), model.ChartArea, fixedTime)

	assert.Equal(t, ScenarioSection{Spending: 150, Pricing: 300, Hiring: 25, Currency: "USD"}, r.Scenario)
	assert.Equal(t, ForecastSection{
		TotalRevenue:  "$1,890,000",
		TotalExpenses: "$977,500",
		TotalProfit:   "$912,500",
		ProfitMargin:  "48.3",
	}, r.Forecast)
	require.Len(t, r.MonthlyBreakdown, 6)
	assert.Equal(t, MonthRow{Month: "Jan", Revenue: "$240,000", Expenses: "$140,000", Profit: "$100,000"}, r.MonthlyBreakdown[0])
	assert.Equal(t, MonthRow{Month: "Mar", Revenue: "$300,000", Expenses: "$165,000", Profit: "$135,000"}, r.MonthlyBreakdown[2])
	assert.Equal(t, model.ChartArea, r.ChartType)
	assert.Equal(t, "2024-06-10T14:30:05.123Z", r.GeneratedAt)
}

func TestBuildConvertsMoneyButNotInputs(t *testing.T) {
	r := Build(defaultProjection("EUR"), model.ChartBar, fixedTime)

	assert.Equal(t, "EUR", r.Scenario.Currency)
	assert.Equal(t, 300.0, r.Scenario.Pricing)
	assert.Equal(t, "€204,000", r.MonthlyBreakdown[0].Revenue)
	assert.Equal(t, "48.3", r.Forecast.ProfitMargin)
}

func TestBuildNegativeProfit(t *testing.T) {
	p := forecast.Project(model.Scenario{
		Inputs:   model.Inputs{Spending: 500, Pricing: 100, Hiring: 200},
		Currency: "USD",
	})
	r := Build(p, model.ChartBar, fixedTime)
	assert.True(t, strings.HasPrefix(r.Forecast.TotalProfit, "$-"), "got %q", r.Forecast.TotalProfit)
	assert.True(t, strings.HasPrefix(r.Forecast.ProfitMargin, "-"), "got %q", r.Forecast.ProfitMargin)
}

func TestEncodeSchemaKeys(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, Build(defaultProjection("USD"), model.ChartComposed, fixedTime)))
	assert.Contains(t, buf.String(), "\n  \"scenario\": {")

	var doc map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	for _, key := range []string{"scenario", "forecast", "monthlyBreakdown", "chartType", "generatedAt"} {
		assert.Contains(t, doc, key)
	}
	assert.Equal(t, "composed", doc["chartType"])

	forecastDoc := doc["forecast"].(map[string]any)
	for _, key := range []string{"totalRevenue", "totalExpenses", "totalProfit", "profitMargin"} {
		assert.Contains(t, forecastDoc, key)
	}
	rows := doc["monthlyBreakdown"].([]any)
	require.Len(t, rows, 6)
	first := rows[0].(map[string]any)
	assert.Equal(t, "Jan", first["month"])
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "budget-scenario-1718029805123.json", FileName(fixedTime, "json"))
}

func TestWriteJSON(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "exports")
	r := Build(defaultProjection("GBP"), model.ChartLine, fixedTime)

	path, err := WriteJSON(dir, r)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "budget-scenario-1718029805123.json"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var back Report
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, r.Forecast, back.Forecast)
	assert.Equal(t, r.MonthlyBreakdown, back.MonthlyBreakdown)
	assert.Equal(t, model.ChartLine, back.ChartType)
}

func TestWriteXLSX(t *testing.T) {
	dir := t.TempDir()
	p := defaultProjection("JPY")
	r := Build(p, model.ChartPie, fixedTime)

	path, err := WriteXLSX(dir, r, p)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(path, ".xlsx"))

	wb, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer wb.Close()

	rows, err := wb.GetRows(monthlySheet)
	require.NoError(t, err)
	require.Len(t, rows, 7)
	assert.Equal(t, "Month", rows[0][0])
	assert.Equal(t, "Jun", rows[6][0])
	assert.Equal(t, "¥26,400,000", rows[1][4])

	raw, err := wb.GetCellValue(monthlySheet, "B2", excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	assert.Equal(t, "26400000", raw)

	currency, err := wb.GetCellValue(scenarioSheet, "B5")
	require.NoError(t, err)
	assert.Equal(t, "JPY", currency)
}

func TestWriteRejectsUnknownFormat(t *testing.T) {
	p := defaultProjection("USD")
	_, err := Write(t.TempDir(), "csv", Build(p, model.ChartBar, fixedTime), p)
	assert.Error(t, err)
}
