// Package store provides the SQLite-backed usage meter behind the billing panel.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/theirongolddev/cfohelper/internal/model"

	_ "modernc.org/sqlite" // register sqlite driver
)

// Meter counts tested scenarios and exported reports across runs.
type Meter struct {
	db *sql.DB
}

// Open opens or creates the meter database at the given path.
func Open(dbPath string) (*Meter, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating meter dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening meter db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Meter{db: db}, nil
}

// Close closes the meter database.
func (m *Meter) Close() error {
	return m.db.Close()
}

// RecordScenario adds one tested scenario and returns the new total.
func (m *Meter) RecordScenario() (int64, error) {
	return m.incr(counterScenarios)
}

// RecordExport adds one exported report and returns the new total.
func (m *Meter) RecordExport() (int64, error) {
	return m.incr(counterExports)
}

func (m *Meter) incr(name string) (int64, error) {
	now := time.Now().UTC().Format(time.RFC3339)
	var v int64
	err := m.db.QueryRow(
		"UPDATE counters SET value = value + 1, updated_at = ? WHERE name = ? RETURNING value",
		now, name,
	).Scan(&v)
	if err != nil {
		return 0, fmt.Errorf("incrementing %s: %w", name, err)
	}
	return v, nil
}

// Counts returns the current scenario and export totals.
func (m *Meter) Counts() (scenarios, exports int64, err error) {
	rows, err := m.db.Query("SELECT name, value FROM counters")
	if err != nil {
		return 0, 0, fmt.Errorf("reading counters: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var name string
		var v int64
		if err := rows.Scan(&name, &v); err != nil {
			return 0, 0, fmt.Errorf("scanning counter: %w", err)
		}
		switch name {
		case counterScenarios:
			scenarios = v
		case counterExports:
			exports = v
		}
	}
	return scenarios, exports, rows.Err()
}

// LastUpdated returns when any counter last changed, or the zero time.
func (m *Meter) LastUpdated() (time.Time, error) {
	var s sql.NullString
	if err := m.db.QueryRow("SELECT MAX(updated_at) FROM counters").Scan(&s); err != nil {
		return time.Time{}, fmt.Errorf("reading last update: %w", err)
	}
	if !s.Valid || s.String == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339, s.String)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing last update: %w", err)
	}
	return t, nil
}

// Reset zeroes both counters.
func (m *Meter) Reset() error {
	if _, err := m.db.Exec("UPDATE counters SET value = 0, updated_at = ''"); err != nil {
		return fmt.Errorf("resetting counters: %w", err)
	}
	return nil
}

// Rates are the mocked per-action billing prices in USD.
type Rates struct {
	Scenario float64
	Export   float64
}

// Usage reads the counters and prices them at the given rates.
func (m *Meter) Usage(r Rates) (model.UsageStats, error) {
	scenarios, exports, err := m.Counts()
	if err != nil {
		return model.UsageStats{}, err
	}
	return model.UsageStats{
		Scenarios:       scenarios,
		Exports:         exports,
		ScenarioRateUSD: r.Scenario,
		ExportRateUSD:   r.Export,
	}, nil
}
