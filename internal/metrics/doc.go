// Between Us - Couples Companion Content Engine
// Copyright 2026 Brit Hornick (brithornick92-max)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/brithornick92-max/BetweenUs-sub001

/*
Package metrics provides Prometheus metrics collection and export.

The package instruments the selection pipeline, the history store, the HTTP
surface, and the catalog loader. Metrics are exposed at the /metrics endpoint
in Prometheus text format:

	curl http://localhost:8600/metrics

# Available Metrics

Selection Metrics:
  - selections_total: Content selections (counter)
    Labels: kind (prompt, date), outcome (picked, empty, error)
  - selection_duration_seconds: Selection pass latency (histogram)
    Labels: kind
  - selection_pool_size: Final candidate pool sizes (histogram)
    Labels: kind

History Store Metrics:
  - history_operations_total: Store operations (counter)
    Labels: operation (load, append, prune), result (ok, error)
  - history_buckets_pruned_total: Stale month buckets removed (counter)
  - rating_writes_total: Rating writes (counter)
    Labels: rating (love, neutral, hate)
  - rating_lookups_total: Rating lookups during scoring (counter)

API Metrics:
  - api_requests_total: Total API requests (counter)
    Labels: method, endpoint, status_code
  - api_request_duration_seconds: Request latency (histogram)
    Labels: method, endpoint
  - api_active_requests: Active requests (gauge)

Catalog Metrics:
  - catalog_items: Loaded items per kind (gauge)
  - catalog_items_dropped_total: Malformed items dropped at load (counter)

# Cardinality

Endpoint labels use the route pattern, never the raw path, and user IDs are
never used as labels. All recording functions are safe for concurrent use.
*/
package metrics
