package application

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/stayline/guest-portal/internal/domain/reservation"
)

// ErrStaleQuery marks a response that lost the race to a newer query. It is
// ignored silently, never surfaced to the user.
var ErrStaleQuery = errors.New("superseded by a newer query")

// ReportService proxies the admin analytics endpoint with latest-wins
// semantics: issuing a new time range cancels the in-flight previous request,
// and a slow earlier response can never overwrite a later, more relevant
// one.
type ReportService struct {
	gateway reservation.ReportGateway
	logger  *zap.Logger

	mu         sync.Mutex
	generation uint64
	cancel     context.CancelFunc
	current    *reservation.Report
	timeRange  string
}

// NewReportService creates a new ReportService.
func NewReportService(gateway reservation.ReportGateway, logger *zap.Logger) *ReportService {
	return &ReportService{gateway: gateway, logger: logger}
}

// Fetch retrieves the report for the given time range. A concurrent call
// with a newer range cancels this one; the stale result is dropped and
// ErrStaleQuery returned so the caller can ignore it like a cancellation.
func (s *ReportService) Fetch(ctx context.Context, timeRange string) (reservation.Report, error) {
	s.mu.Lock()
	if s.cancel != nil {
		// Stale-search cancellation: the previous in-flight request is
		// cancelled before the new one is issued.
		s.cancel()
	}
	s.generation++
	gen := s.generation
	queryCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.mu.Unlock()

	report, err := s.gateway.Report(queryCtx, timeRange)

	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.generation {
		// A newer query took over while this one was in flight.
		return reservation.Report{}, ErrStaleQuery
	}
	s.cancel = nil
	cancel()

	if err != nil {
		return reservation.Report{}, err
	}

	s.current = &report
	s.timeRange = timeRange
	s.logger.Debug("report refreshed", zap.String("time_range", timeRange))
	return report, nil
}

// Current returns the last successfully applied report, if any.
func (s *ReportService) Current() (reservation.Report, string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return reservation.Report{}, "", false
	}
	return *s.current, s.timeRange, true
}

// Close cancels any in-flight query, for component teardown.
func (s *ReportService) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.generation++
}
