// Between Us - Couples Companion Content Engine
// Copyright 2026 Brit Hornick (brithornick92-max)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/brithornick92-max/BetweenUs-sub001

// Package api exposes the content engine over HTTP.
//
// All domain endpoints live under /api/v1 and return the standard envelope
// defined in response.go: {"success": ..., "data": ..., "error": ..., "meta":
// ...}. Request bodies are decoded with goccy/go-json and validated with
// go-playground/validator before they reach the engine; validation failures
// come back as 400 VALIDATION_FAILED with per-field details.
//
// The selection pipeline itself is stateless per request: each call carries
// the caller's preference signals, the handler builds a fresh profile, and
// the engine does the rest. Only shown-item history and ratings persist
// between calls.
//
// Routes:
//
//	POST /api/v1/profile            build and return a preference profile
//	POST /api/v1/prompts/daily      deterministic daily prompt pick
//	POST /api/v1/prompts/check      re-check visibility of a single prompt
//	POST /api/v1/dates/check        rank eligible date ideas with fit labels
//	POST /api/v1/dates/surprise     weighted-random surprise date pick
//	PUT  /api/v1/ratings/{userID}/{itemID}  store a reaction
//	GET  /api/v1/catalog/stats      catalog composition counts
//	GET  /healthz                   liveness probe
//	GET  /metrics                   Prometheus metrics
package api
