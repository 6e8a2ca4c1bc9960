package analytics

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/DucLamDev/quanlyphongkham-BE/internal/appointments"
)

// SpecialtyCount is one row of the specialty distribution.
type SpecialtyCount struct {
	Specialty  string  `json:"specialty"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// HourCount is one row of the peak-hours ranking.
type HourCount struct {
	Hour  int `json:"hour"`
	Count int `json:"count"`
}

// Report is the analytics summary for one reporting window.
type Report struct {
	Range                 Range            `json:"range"`
	TotalAppointments     int              `json:"totalAppointments"`
	GrowthRate            float64          `json:"growthRate"`
	NewPatients           int              `json:"newPatients"`
	CompletionRate        float64          `json:"completionRate"`
	CancellationRate      float64          `json:"cancellationRate"`
	SpecialtyDistribution []SpecialtyCount `json:"specialtyDistribution"`
	PeakHours             []HourCount      `json:"peakHours"`
}

// BuildReport derives the summary from the current window's appointments
// and the previous window's count. It is a pure function of its inputs.
func BuildReport(r Range, current []appointments.Appointment, previousCount int64) *Report {
	report := &Report{
		Range:                 r,
		TotalAppointments:     len(current),
		SpecialtyDistribution: []SpecialtyCount{},
		PeakHours:             []HourCount{},
	}

	// Growth is a count comparison against the previous window; an empty
	// previous window reports 0 rather than an undefined ratio.
	if previousCount > 0 {
		report.GrowthRate = round1(float64(len(current)-int(previousCount)) / float64(previousCount) * 100)
	}
	if len(current) == 0 {
		return report
	}

	var completed, cancelled int
	phones := map[string]struct{}{}
	bySpecialty := map[string]int{}
	byHour := map[int]int{}
	for _, a := range current {
		switch a.Status {
		case appointments.StatusCompleted:
			completed++
		case appointments.StatusCancelled:
			cancelled++
		}
		phones[a.Phone] = struct{}{}
		bySpecialty[a.Specialty]++
		if hour, ok := leadingHour(a.AppointmentTime); ok {
			byHour[hour]++
		}
	}

	total := float64(len(current))
	report.NewPatients = len(phones)
	report.CompletionRate = round1(float64(completed) / total * 100)
	report.CancellationRate = round1(float64(cancelled) / total * 100)

	for specialty, count := range bySpecialty {
		report.SpecialtyDistribution = append(report.SpecialtyDistribution, SpecialtyCount{
			Specialty:  specialty,
			Count:      count,
			Percentage: round1(float64(count) / total * 100),
		})
	}
	sort.Slice(report.SpecialtyDistribution, func(i, j int) bool {
		a, b := report.SpecialtyDistribution[i], report.SpecialtyDistribution[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.Specialty < b.Specialty
	})

	for hour, count := range byHour {
		report.PeakHours = append(report.PeakHours, HourCount{Hour: hour, Count: count})
	}
	sort.Slice(report.PeakHours, func(i, j int) bool {
		a, b := report.PeakHours[i], report.PeakHours[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.Hour < b.Hour
	})
	if len(report.PeakHours) > 4 {
		report.PeakHours = report.PeakHours[:4]
	}
	return report
}

// leadingHour parses the HH prefix of a time-of-day string like "09:30".
func leadingHour(timeOfDay string) (int, bool) {
	head, _, ok := strings.Cut(timeOfDay, ":")
	if !ok {
		head = timeOfDay
	}
	hour, err := strconv.Atoi(strings.TrimSpace(head))
	if err != nil || hour < 0 || hour > 23 {
		return 0, false
	}
	return hour, true
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
