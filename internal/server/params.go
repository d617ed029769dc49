package server

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/theirongolddev/cfohelper/internal/config"
	"github.com/theirongolddev/cfohelper/internal/forecast"
	"github.com/theirongolddev/cfohelper/internal/model"
)

// parseScenario reads spending, pricing, hiring, currency and chart from the
// query string. Omitted parameters take their values from defaults.
func parseScenario(r *http.Request, defaults model.Scenario) (model.Scenario, error) {
	q := r.URL.Query()
	sc := defaults
	in := sc.Inputs

	fields := []struct {
		name string
		dst  *float64
	}{
		{"spending", &in.Spending},
		{"pricing", &in.Pricing},
		{"hiring", &in.Hiring},
	}
	for _, f := range fields {
		raw := strings.TrimSpace(q.Get(f.name))
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return sc, fmt.Errorf("invalid %s %q", f.name, raw)
		}
		*f.dst = v
	}
	if err := forecast.Validate(in); err != nil {
		return sc, err
	}
	sc = sc.WithInputs(in)

	if code := q.Get("currency"); code != "" {
		cur, err := config.ResolveCurrency(code)
		if err != nil {
			return sc, err
		}
		sc = sc.WithCurrency(cur.Code)
	}

	if id := q.Get("chart"); id != "" {
		chart, _ := model.ParseChartKind(id)
		sc = sc.WithChart(chart)
	}

	return sc, nil
}
