package analytics

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/DucLamDev/quanlyphongkham-BE/internal/appointments"
)

// Service computes analytics reports over the appointment history.
type Service struct {
	appts appointments.Store
	now   func() time.Time
}

// NewService wires the analytics reads.
func NewService(appts appointments.Store) *Service {
	return &Service{appts: appts, now: time.Now}
}

// Report builds the summary for the given range. The current and previous
// window reads run concurrently; either failure fails the report, there is
// no fallback data source.
func (s *Service) Report(ctx context.Context, r Range) (*Report, error) {
	win := WindowFor(r, s.now())

	var (
		current       []appointments.Appointment
		previousCount int64
	)
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		current, err = s.appts.ListCreatedBetween(ctx, win.Start, win.End)
		return err
	})
	g.Go(func() error {
		var err error
		previousCount, err = s.appts.CountCreatedBetween(ctx, win.PreviousStart, win.Start)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return BuildReport(r, current, previousCount), nil
}

// Export returns the current window's appointments for the CSV download.
func (s *Service) Export(ctx context.Context, r Range) ([]appointments.Appointment, error) {
	win := WindowFor(r, s.now())
	return s.appts.ListCreatedBetween(ctx, win.Start, win.End)
}
