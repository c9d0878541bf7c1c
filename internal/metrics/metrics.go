// Between Us - Couples Companion Content Engine
// Copyright 2026 Brit Hornick (brithornick92-max)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/brithornick92-max/BetweenUs-sub001

package metrics

import (
	"context"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Selection Metrics
	SelectionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "selections_total",
			Help: "Total number of content selections",
		},
		[]string{"kind", "outcome"}, // kind: "prompt", "date"; outcome: "picked", "empty", "error"
	)

	SelectionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "selection_duration_seconds",
			Help:    "Duration of content selection passes in seconds",
			Buckets: []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1},
		},
		[]string{"kind"},
	)

	SelectionPoolSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "selection_pool_size",
			Help:    "Number of candidates in the final selection pool",
			Buckets: []float64{1, 2, 5, 10, 25, 50, 100},
		},
		[]string{"kind"},
	)

	// History Store Metrics
	HistoryOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "history_operations_total",
			Help: "Total number of history store operations",
		},
		[]string{"operation", "result"}, // operation: "load", "append", "prune"; result: "ok", "error"
	)

	HistoryBucketsPruned = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "history_buckets_pruned_total",
			Help: "Total number of stale history buckets removed",
		},
	)

	RatingWrites = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rating_writes_total",
			Help: "Total number of rating writes",
		},
		[]string{"rating"}, // "love", "neutral", "hate"
	)

	RatingLookups = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "rating_lookups_total",
			Help: "Total number of rating lookups during scoring",
		},
	)

	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	// Catalog Metrics
	CatalogItems = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "catalog_items",
			Help: "Number of loaded catalog items",
		},
		[]string{"kind"}, // "prompt", "date"
	)

	CatalogItemsDropped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_items_dropped_total",
			Help: "Total number of malformed catalog items dropped at load",
		},
		[]string{"kind"},
	)

	// System Metrics
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "app_info",
			Help: "Application version and build information",
		},
		[]string{"version", "go_version"},
	)

	AppUptime = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "app_uptime_seconds",
			Help: "Application uptime in seconds",
		},
	)
)

// RecordSelection records one selection pass.
func RecordSelection(kind, outcome string, poolSize int, duration time.Duration) {
	SelectionsTotal.WithLabelValues(kind, outcome).Inc()
	SelectionDuration.WithLabelValues(kind).Observe(duration.Seconds())
	if poolSize > 0 {
		SelectionPoolSize.WithLabelValues(kind).Observe(float64(poolSize))
	}
}

// RecordHistoryOperation records a history store operation.
func RecordHistoryOperation(operation string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	HistoryOperations.WithLabelValues(operation, result).Inc()
}

// RecordRatingWrite records a stored rating.
func RecordRatingWrite(rating string) {
	RatingWrites.WithLabelValues(rating).Inc()
}

// RecordAPIRequest records an API request metric.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// SetCatalogSize records how many items of a kind loaded successfully and how
// many were dropped as malformed.
func SetCatalogSize(kind string, loaded, dropped int) {
	CatalogItems.WithLabelValues(kind).Set(float64(loaded))
	if dropped > 0 {
		CatalogItemsDropped.WithLabelValues(kind).Add(float64(dropped))
	}
}

// SetAppInfo records the running build's version labels.
func SetAppInfo(version string) {
	AppInfo.WithLabelValues(version, runtime.Version()).Set(1)
}

// TrackUptime updates the uptime gauge every interval until ctx is done.
// Intended to run in its own goroutine from main.
func TrackUptime(ctx context.Context, start time.Time, interval time.Duration) {
	if interval <= 0 {
		interval = 15 * time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			AppUptime.Set(time.Since(start).Seconds())
		}
	}
}
