package admin

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/DucLamDev/quanlyphongkham-BE/internal/appointments"
	"github.com/DucLamDev/quanlyphongkham-BE/internal/doctors"
	"github.com/DucLamDev/quanlyphongkham-BE/internal/equipment"
	"github.com/DucLamDev/quanlyphongkham-BE/internal/patients"
)

// Stats is the dashboard summary shown on the admin landing page.
type Stats struct {
	TotalAppointments   int64                      `json:"totalAppointments"`
	PendingAppointments int64                      `json:"pendingAppointments"`
	ActivePatients      int64                      `json:"activePatients"`
	ActiveDoctors       int64                      `json:"activeDoctors"`
	ActiveEquipment     int64                      `json:"activeEquipment"`
	RecentAppointments  []appointments.Appointment `json:"recentAppointments"`
}

// StatsService gathers the dashboard counters. The counts run
// concurrently; any failure fails the whole snapshot.
type StatsService struct {
	appts     appointments.Store
	patients  patients.Store
	doctors   doctors.Store
	equipment equipment.Store
}

// NewStatsService wires the dashboard counters.
func NewStatsService(appts appointments.Store, pats patients.Store, docs doctors.Store, equip equipment.Store) *StatsService {
	return &StatsService{appts: appts, patients: pats, doctors: docs, equipment: equip}
}

// Snapshot collects the current dashboard numbers.
func (s *StatsService) Snapshot(ctx context.Context) (*Stats, error) {
	var stats Stats
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		n, err := s.appts.CountAll(ctx)
		stats.TotalAppointments = n
		return err
	})
	g.Go(func() error {
		n, err := s.appts.CountByStatus(ctx, appointments.StatusPending)
		stats.PendingAppointments = n
		return err
	})
	g.Go(func() error {
		n, err := s.patients.CountActive(ctx)
		stats.ActivePatients = n
		return err
	})
	g.Go(func() error {
		list, err := s.doctors.ListActive(ctx)
		stats.ActiveDoctors = int64(len(list))
		return err
	})
	g.Go(func() error {
		n, err := s.equipment.CountActive(ctx)
		stats.ActiveEquipment = n
		return err
	})
	g.Go(func() error {
		recent, err := s.appts.List(ctx, 5)
		stats.RecentAppointments = recent
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if stats.RecentAppointments == nil {
		stats.RecentAppointments = []appointments.Appointment{}
	}
	return &stats, nil
}
