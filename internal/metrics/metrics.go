// Package metrics holds Prometheus instruments that are used across the
// console.  All collectors are registered with the global registry, so
// importing this package in main.go is enough to expose them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	FormValidationFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "form_validation_failures_total",
			Help: "Cumulative number of field validation failures, by form and field.",
		},
		[]string{"form", "field"})

	FormSubmissions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "form_submissions_total",
			Help: "Cumulative number of submission attempts, by form and outcome.",
		},
		[]string{"form", "outcome"})

	GatewayRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gateway_requests_total",
			Help: "Cumulative number of backend API calls, by method, route, and status class.",
		},
		[]string{"method", "route", "status"})

	GatewayDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gateway_request_duration_seconds",
			Help:    "Backend API call latency.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"})

	ActiveSessions = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "active_sessions",
			Help: "Number of console sessions currently held in the store.",
		})
)

func init() {
	prometheus.MustRegister(
		FormValidationFailures,
		FormSubmissions,
		GatewayRequests,
		GatewayDuration,
		ActiveSessions,
	)
}
