package usecase

import (
	"context"
	"errors"
	"strings"
	"sync"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Reporter generates a travel-preparation report for a destination.
type Reporter interface {
	TripReport(ctx context.Context, destination string, keywords []string) (string, error)
}

// ReportService wraps the report generator. It is independent of the
// conversation state machine; only the latest report is kept, for
// re-display.
type ReportService struct {
	reporter Reporter

	mu   sync.Mutex
	last string
}

// NewReportService creates a ReportService.
func NewReportService(reporter Reporter) (*ReportService, error) {
	if reporter == nil {
		return nil, errors.New("usecase: reporter must not be nil")
	}
	return &ReportService{reporter: reporter}, nil
}

// Generate requests a report. Empty keyword entries are dropped before the
// call; an empty keyword list is sent as-is and defaulted by the backend.
func (s *ReportService) Generate(ctx context.Context, destination string, keywords []string) (string, error) {
	destination = strings.TrimSpace(destination)
	if err := validation.Validate(destination, validation.Required); err != nil {
		return "", newError(ErrorInvalidInput, "empty_destination", err)
	}

	cleaned := make([]string, 0, len(keywords))
	for _, k := range keywords {
		if k = strings.TrimSpace(k); k != "" {
			cleaned = append(cleaned, k)
		}
	}

	report, err := s.reporter.TripReport(ctx, destination, cleaned)
	if err != nil {
		return "", remoteError("report_failed", err)
	}

	s.mu.Lock()
	s.last = report
	s.mu.Unlock()
	return report, nil
}

// LastReport returns the most recently generated report, if any.
func (s *ReportService) LastReport() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last, s.last != ""
}
