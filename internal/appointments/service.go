package appointments

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/DucLamDev/quanlyphongkham-BE/internal/doctors"
	"github.com/DucLamDev/quanlyphongkham-BE/pkg/logging"
)

// ErrDoctorUnavailable is returned when the requested doctor cannot take
// the slot.
var ErrDoctorUnavailable = errors.New("appointments: doctor unavailable")

// ErrDoctorNotFound is returned when the requested doctor does not exist
// or is inactive.
var ErrDoctorNotFound = errors.New("appointments: doctor not found")

// Service owns the booking flow: conflict checks and doctor assignment.
type Service struct {
	store   Store
	doctors doctors.Store
	logger  *logging.Logger
}

// NewService creates a booking service.
func NewService(store Store, doctorStore doctors.Store, logger *logging.Logger) *Service {
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{store: store, doctors: doctorStore, logger: logger}
}

// BookingRequest carries the fields of a public booking submission.
type BookingRequest struct {
	FullName        string
	Phone           string
	Email           string
	Specialty       string
	DoctorID        string
	AppointmentDate time.Time
	AppointmentTime string
	Notes           string
}

// Book creates a pending appointment. When a doctor is requested the slot
// is verified free; otherwise a free active doctor of the specialty is
// assigned at random, falling back to any active doctor of the specialty
// when all are busy. Booking without any doctor on file is allowed.
func (s *Service) Book(ctx context.Context, req BookingRequest) (*Appointment, error) {
	appt := &Appointment{
		FullName:        req.FullName,
		Phone:           req.Phone,
		Email:           req.Email,
		Specialty:       req.Specialty,
		AppointmentDate: req.AppointmentDate,
		AppointmentTime: req.AppointmentTime,
		Notes:           req.Notes,
		Status:          StatusPending,
	}

	if req.DoctorID != "" {
		doctor, err := s.doctors.GetByID(ctx, req.DoctorID)
		if err != nil || !doctor.IsActive {
			return nil, ErrDoctorNotFound
		}
		busy, err := s.store.CountDoctorConflicts(ctx, doctor.ID, req.AppointmentDate, req.AppointmentTime)
		if err != nil {
			return nil, err
		}
		if busy > 0 {
			return nil, fmt.Errorf("%w: %s", ErrDoctorUnavailable, doctor.Name)
		}
		appt.DoctorID = doctor.ID
		appt.DoctorName = doctor.Name
	} else if assigned := s.assignDoctor(ctx, req); assigned != nil {
		appt.DoctorID = assigned.ID
		appt.DoctorName = assigned.Name
	}

	if err := s.store.Create(ctx, appt); err != nil {
		return nil, err
	}
	return appt, nil
}

// assignDoctor picks a random free doctor of the specialty. Assignment is
// best effort: lookup failures leave the appointment unassigned.
func (s *Service) assignDoctor(ctx context.Context, req BookingRequest) *doctors.Doctor {
	available, err := s.doctors.ListActiveBySpecialty(ctx, req.Specialty)
	if err != nil {
		s.logger.Warn("doctor assignment skipped", "specialty", req.Specialty, "error", err)
		return nil
	}
	if len(available) == 0 {
		return nil
	}

	var free []doctors.Doctor
	for _, d := range available {
		busy, err := s.store.CountDoctorConflicts(ctx, d.ID, req.AppointmentDate, req.AppointmentTime)
		if err != nil {
			s.logger.Warn("doctor conflict check failed", "doctor", d.Name, "error", err)
			continue
		}
		if busy == 0 {
			free = append(free, d)
		}
	}

	pool := free
	if len(pool) == 0 {
		pool = available
	}
	return &pool[rand.Intn(len(pool))]
}
