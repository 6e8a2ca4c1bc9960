// Package observability holds the Prometheus collectors shared across
// handlers.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequests counts handled requests by route pattern and status
	// class.
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "clinic_http_requests_total",
		Help: "HTTP requests handled, by route and status class.",
	}, []string{"route", "status"})

	// ChatResolutions counts chat replies by the step that produced them
	// (data, gemini, openai, rules).
	ChatResolutions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "clinic_chat_resolutions_total",
		Help: "Chat replies produced, by resolver step.",
	}, []string{"step"})

	// AnalyticsRequests counts analytics report builds by range token.
	AnalyticsRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "clinic_analytics_requests_total",
		Help: "Analytics reports built, by range.",
	}, []string{"range"})

	// BookingOutcomes counts booking attempts by outcome
	// (created, conflict, invalid, error).
	BookingOutcomes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "clinic_booking_outcomes_total",
		Help: "Booking attempts, by outcome.",
	}, []string{"outcome"})
)
