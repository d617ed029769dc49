// Package server provides the local HTTP API over the forecast engine.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/theirongolddev/cfohelper/internal/config"
	"github.com/theirongolddev/cfohelper/internal/forecast"
	"github.com/theirongolddev/cfohelper/internal/model"
	"github.com/theirongolddev/cfohelper/internal/report"
)

// Recorder counts metered actions. *store.Meter satisfies it.
type Recorder interface {
	RecordScenario() (int64, error)
	RecordExport() (int64, error)
}

// Config controls the server runtime behavior.
type Config struct {
	Addr         string
	EventsBuffer int
	Defaults     model.Scenario // values for omitted query parameters
	Meter        Recorder       // optional
	Now          func() time.Time
}

// Event is emitted whenever a forecast or report is served.
type Event struct {
	ID        int64           `json:"id"`
	Type      string          `json:"type"`
	Timestamp time.Time       `json:"timestamp"`
	Inputs    model.Inputs    `json:"inputs"`
	Currency  string          `json:"currency"`
	Chart     model.ChartKind `json:"chart"`
	Totals    model.Totals    `json:"totals"`
}

// Event types.
const (
	EventForecast = "forecast"
	EventReport   = "report"
	EventSnapshot = "snapshot"
)

// Status is served at /v1/status.
type Status struct {
	StartedAt       time.Time `json:"started_at"`
	Requests        int64     `json:"requests"`
	Scenarios       int64     `json:"scenarios"`
	Exports         int64     `json:"exports"`
	LastError       string    `json:"last_error,omitempty"`
	EventCount      int       `json:"event_count"`
	SubscriberCount int       `json:"subscriber_count"`
}

// ForecastResponse is served at /v1/forecast. Money values are in the requested currency.
type ForecastResponse struct {
	Inputs   model.Inputs          `json:"inputs"`
	Currency config.Currency       `json:"currency"`
	Schedule []model.MonthlyRecord `json:"schedule"`
	Totals   model.Totals          `json:"totals"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Service provides the HTTP API and its in-memory event ring.
type Service struct {
	cfg Config

	mu          sync.RWMutex
	startedAt   time.Time
	requests    int64
	scenarios   int64
	exports     int64
	lastError   string
	nextEventID int64
	events      []Event

	nextSubID int
	subs      map[int]chan Event
}

// New returns a new service with the provided config.
func New(cfg Config) *Service {
	if cfg.EventsBuffer < 1 {
		cfg.EventsBuffer = 200
	}
	if cfg.Addr == "" {
		cfg.Addr = "127.0.0.1:8787"
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Defaults.Currency == "" {
		cfg.Defaults = config.DefaultConfig().StartScenario()
	}

	return &Service{
		cfg:       cfg,
		startedAt: cfg.Now(),
		subs:      make(map[int]chan Event),
	}
}

// Handler returns the API routes wrapped in request-ID and access-log middleware.
func (s *Service) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /v1/currencies", s.handleCurrencies)
	mux.HandleFunc("GET /v1/charts", s.handleCharts)
	mux.HandleFunc("GET /v1/forecast", s.handleForecast)
	mux.HandleFunc("GET /v1/report", s.handleReport)
	mux.HandleFunc("GET /v1/status", s.handleStatus)
	mux.HandleFunc("GET /v1/events", s.handleEvents)
	mux.HandleFunc("GET /v1/stream", s.handleStream)
	return s.countRequests(withRequestID(accessLog(mux)))
}

// Run serves the API until ctx is canceled.
func (s *Service) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	log.Info().Str("addr", s.cfg.Addr).Msg("api listening")

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	case err := <-errCh:
		return fmt.Errorf("api http server: %w", err)
	}
}

// Addr returns the configured listen address.
func (s *Service) Addr() string {
	return s.cfg.Addr
}

func (s *Service) countRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.requests++
		s.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

// record meters one served scenario or report and publishes an event.
func (s *Service) record(kind string, p forecast.Projection) {
	var meterErr error
	if s.cfg.Meter != nil {
		if _, err := s.cfg.Meter.RecordScenario(); err != nil {
			meterErr = err
		}
		if kind == EventReport {
			if _, err := s.cfg.Meter.RecordExport(); err != nil {
				meterErr = err
			}
		}
	}
	if meterErr != nil {
		log.Warn().Err(meterErr).Msg("usage meter write failed")
	}

	s.mu.Lock()
	s.scenarios++
	if kind == EventReport {
		s.exports++
	}
	if meterErr != nil {
		s.lastError = meterErr.Error()
	}
	s.nextEventID++
	ev := Event{
		ID:        s.nextEventID,
		Type:      kind,
		Timestamp: s.cfg.Now(),
		Inputs:    p.Scenario.Inputs,
		Currency:  p.Currency.Code,
		Chart:     p.Scenario.Chart,
		Totals:    p.ConvertedTotals(),
	}
	s.mu.Unlock()

	s.publishEvent(ev)
}

func (s *Service) publishEvent(ev Event) {
	s.mu.Lock()
	s.events = append(s.events, ev)
	if len(s.events) > s.cfg.EventsBuffer {
		s.events = s.events[len(s.events)-s.cfg.EventsBuffer:]
	}

	for _, ch := range s.subs {
		select {
		case ch <- ev:
		default:
		}
	}
	s.mu.Unlock()
}

func (s *Service) snapshotStatus() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Status{
		StartedAt:       s.startedAt,
		Requests:        s.requests,
		Scenarios:       s.scenarios,
		Exports:         s.exports,
		LastError:       s.lastError,
		EventCount:      len(s.events),
		SubscriberCount: len(s.subs),
	}
}

func (s *Service) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Service) handleCurrencies(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, config.Currencies)
}

type chartInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (s *Service) handleCharts(w http.ResponseWriter, _ *http.Request) {
	kinds := model.ChartKinds()
	out := make([]chartInfo, len(kinds))
	for i, k := range kinds {
		out[i] = chartInfo{ID: k.ID(), Name: k.Name(), Description: k.Description()}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Service) handleForecast(w http.ResponseWriter, r *http.Request) {
	sc, err := parseScenario(r, s.cfg.Defaults)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	p := forecast.Project(sc)
	s.record(EventForecast, p)

	writeJSON(w, http.StatusOK, ForecastResponse{
		Inputs:   p.Scenario.Inputs,
		Currency: p.Currency,
		Schedule: p.Converted(),
		Totals:   p.ConvertedTotals(),
	})
}

func (s *Service) handleReport(w http.ResponseWriter, r *http.Request) {
	sc, err := parseScenario(r, s.cfg.Defaults)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	p := forecast.Project(sc)
	at := s.cfg.Now()
	rep := report.Build(p, sc.Chart, at)
	s.record(EventReport, p)

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", report.FileName(at, "json")))
	if err := report.Encode(w, rep); err != nil {
		log.Error().Err(err).Msg("writing report response")
	}
}

func (s *Service) handleStatus(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.snapshotStatus())
}

func (s *Service) handleEvents(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	events := make([]Event, len(s.events))
	copy(events, s.events)
	s.mu.RUnlock()

	writeJSON(w, http.StatusOK, events)
}

func (s *Service) handleStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch := make(chan Event, 16)
	id := s.addSubscriber(ch)
	defer s.removeSubscriber(id)

	// Send the default scenario immediately so clients can render before any request.
	p := forecast.Project(s.cfg.Defaults)
	writeSSE(w, Event{
		Type:      EventSnapshot,
		Timestamp: s.cfg.Now(),
		Inputs:    p.Scenario.Inputs,
		Currency:  p.Currency.Code,
		Chart:     p.Scenario.Chart,
		Totals:    p.ConvertedTotals(),
	})
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case ev := <-ch:
			writeSSE(w, ev)
			flusher.Flush()
		}
	}
}

func writeSSE(w http.ResponseWriter, ev Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		return
	}
	_, _ = fmt.Fprintf(w, "event: %s\n", ev.Type)
	_, _ = fmt.Fprintf(w, "data: %s\n\n", data)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Service) addSubscriber(ch chan Event) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextSubID++
	id := s.nextSubID
	s.subs[id] = ch
	return id
}

func (s *Service) removeSubscriber(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.subs, id)
}
