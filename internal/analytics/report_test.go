package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DucLamDev/quanlyphongkham-BE/internal/appointments"
)

func appt(phone, specialty, timeOfDay, status string) appointments.Appointment {
	return appointments.Appointment{
		Phone:           phone,
		Specialty:       specialty,
		AppointmentTime: timeOfDay,
		Status:          status,
	}
}

func TestParseRange(t *testing.T) {
	assert.Equal(t, RangeWeek, ParseRange("week"))
	assert.Equal(t, RangeMonth, ParseRange("month"))
	assert.Equal(t, RangeYear, ParseRange("year"))
	assert.Equal(t, RangeMonth, ParseRange(""))
	assert.Equal(t, RangeMonth, ParseRange("quarter"))
}

func TestWindowFor(t *testing.T) {
	now := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)

	week := WindowFor(RangeWeek, now)
	assert.Equal(t, now.AddDate(0, 0, -7), week.Start)
	assert.Equal(t, now, week.End)

	month := WindowFor(RangeMonth, now)
	assert.Equal(t, time.Date(2026, 2, 15, 10, 0, 0, 0, time.UTC), month.Start)

	year := WindowFor(RangeYear, now)
	assert.Equal(t, time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC), year.Start)

	// The previous window has the same duration as the current one.
	assert.Equal(t, week.Start.Sub(week.PreviousStart), now.Sub(week.Start))
	assert.Equal(t, month.Start.Sub(month.PreviousStart), now.Sub(month.Start))
}

func TestBuildReportGrowthRate(t *testing.T) {
	t.Run("zero previous reports zero", func(t *testing.T) {
		current := make([]appointments.Appointment, 5)
		report := BuildReport(RangeMonth, current, 0)
		assert.Equal(t, 0.0, report.GrowthRate)
	})

	t.Run("ten to fifteen is fifty percent", func(t *testing.T) {
		current := make([]appointments.Appointment, 15)
		report := BuildReport(RangeMonth, current, 10)
		assert.Equal(t, 50.0, report.GrowthRate)
	})

	t.Run("shrinking window goes negative", func(t *testing.T) {
		current := make([]appointments.Appointment, 5)
		report := BuildReport(RangeMonth, current, 10)
		assert.Equal(t, -50.0, report.GrowthRate)
	})

	t.Run("one decimal place", func(t *testing.T) {
		current := make([]appointments.Appointment, 1)
		report := BuildReport(RangeMonth, current, 3)
		assert.Equal(t, -66.7, report.GrowthRate)
	})
}

func TestBuildReportEmptyWindow(t *testing.T) {
	report := BuildReport(RangeWeek, nil, 0)
	assert.Equal(t, 0, report.TotalAppointments)
	assert.Equal(t, 0.0, report.CompletionRate)
	assert.Equal(t, 0.0, report.CancellationRate)
	assert.Equal(t, 0, report.NewPatients)
	assert.Empty(t, report.SpecialtyDistribution)
	assert.Empty(t, report.PeakHours)
}

func TestBuildReportRates(t *testing.T) {
	current := []appointments.Appointment{
		appt("0901", "Nội khoa", "09:00", appointments.StatusCompleted),
		appt("0902", "Nội khoa", "09:00", appointments.StatusCompleted),
		appt("0903", "Nội khoa", "09:00", appointments.StatusCancelled),
		appt("0904", "Nội khoa", "09:00", appointments.StatusPending),
		appt("0905", "Nội khoa", "09:00", appointments.StatusConfirmed),
		appt("0906", "Nội khoa", "09:00", appointments.StatusPending),
	}
	report := BuildReport(RangeMonth, current, 0)
	assert.Equal(t, 33.3, report.CompletionRate)
	assert.Equal(t, 16.7, report.CancellationRate)
}

func TestBuildReportNewPatientsDistinctPhones(t *testing.T) {
	current := []appointments.Appointment{
		appt("0901234567", "A", "09:00", appointments.StatusPending),
		appt("0901234567", "B", "10:00", appointments.StatusPending),
		appt("0907654321", "A", "11:00", appointments.StatusPending),
	}
	report := BuildReport(RangeMonth, current, 0)
	assert.Equal(t, 2, report.NewPatients)
}

func TestBuildReportSpecialtyDistribution(t *testing.T) {
	current := []appointments.Appointment{
		appt("1", "A", "09:00", appointments.StatusPending),
		appt("2", "A", "09:00", appointments.StatusPending),
		appt("3", "B", "09:00", appointments.StatusPending),
	}
	report := BuildReport(RangeMonth, current, 0)
	require.Len(t, report.SpecialtyDistribution, 2)
	assert.Equal(t, SpecialtyCount{Specialty: "A", Count: 2, Percentage: 66.7}, report.SpecialtyDistribution[0])
	assert.Equal(t, SpecialtyCount{Specialty: "B", Count: 1, Percentage: 33.3}, report.SpecialtyDistribution[1])
}

func TestBuildReportSpecialtyTieBreak(t *testing.T) {
	current := []appointments.Appointment{
		appt("1", "Nhi khoa", "09:00", appointments.StatusPending),
		appt("2", "Da liễu", "09:00", appointments.StatusPending),
	}
	report := BuildReport(RangeMonth, current, 0)
	require.Len(t, report.SpecialtyDistribution, 2)
	assert.Equal(t, "Da liễu", report.SpecialtyDistribution[0].Specialty)
	assert.Equal(t, "Nhi khoa", report.SpecialtyDistribution[1].Specialty)
}

func TestBuildReportPeakHours(t *testing.T) {
	times := []string{"09:00", "09:30", "14:00", "09:15", "14:30", "14:45", "11:00"}
	current := make([]appointments.Appointment, 0, len(times))
	for _, tm := range times {
		current = append(current, appt("1", "A", tm, appointments.StatusPending))
	}
	report := BuildReport(RangeMonth, current, 0)

	require.Len(t, report.PeakHours, 3)
	// 9 and 14 tie at three each; ascending hour breaks the tie.
	assert.Equal(t, HourCount{Hour: 9, Count: 3}, report.PeakHours[0])
	assert.Equal(t, HourCount{Hour: 14, Count: 3}, report.PeakHours[1])
	assert.Equal(t, HourCount{Hour: 11, Count: 1}, report.PeakHours[2])
}

func TestBuildReportPeakHoursTopFour(t *testing.T) {
	var current []appointments.Appointment
	for hour := 8; hour <= 13; hour++ {
		for i := 0; i <= hour-8; i++ {
			current = append(current, appt("1", "A", time.Date(2026, 1, 1, hour, 0, 0, 0, time.UTC).Format("15:04"), appointments.StatusPending))
		}
	}
	report := BuildReport(RangeMonth, current, 0)
	require.Len(t, report.PeakHours, 4)
	assert.Equal(t, 13, report.PeakHours[0].Hour)
	assert.Equal(t, 10, report.PeakHours[3].Hour)
}

func TestBuildReportSkipsUnparseableTimes(t *testing.T) {
	current := []appointments.Appointment{
		appt("1", "A", "sáng sớm", appointments.StatusPending),
		appt("2", "A", "25:00", appointments.StatusPending),
		appt("3", "A", "09:00", appointments.StatusPending),
	}
	report := BuildReport(RangeMonth, current, 0)
	require.Len(t, report.PeakHours, 1)
	assert.Equal(t, HourCount{Hour: 9, Count: 1}, report.PeakHours[0])
}
