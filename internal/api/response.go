// Between Us - Couples Companion Content Engine
// Copyright 2026 Brit Hornick (brithornick92-max)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/brithornick92-max/BetweenUs-sub001

package api

import (
	"net/http"
	"time"

	json "github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/brithornick92-max/BetweenUs-sub001/internal/logging"
)

// APIResponse is the envelope every endpoint returns. Exactly one of Data
// and Error is set.
type APIResponse struct {
	Success bool      `json:"success"`
	Data    any       `json:"data,omitempty"`
	Error   *APIError `json:"error,omitempty"`
	Meta    *APIMeta  `json:"meta,omitempty"`
}

// APIError carries a machine-readable code alongside the human message.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// APIMeta carries response metadata.
type APIMeta struct {
	RequestID string    `json:"request_id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Error codes returned in APIError.Code.
const (
	ErrCodeBadRequest         = "BAD_REQUEST"
	ErrCodeNotFound           = "NOT_FOUND"
	ErrCodeValidationFailed   = "VALIDATION_FAILED"
	ErrCodeTooManyRequests    = "TOO_MANY_REQUESTS"
	ErrCodeInternalError      = "INTERNAL_ERROR"
	ErrCodeServiceUnavailable = "SERVICE_UNAVAILABLE"
)

// ResponseWriter writes envelope responses for a single request.
type ResponseWriter struct {
	w      http.ResponseWriter
	r      *http.Request
	logger zerolog.Logger
}

// NewResponseWriter creates a response writer bound to one request.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewResponseWriter(w http.ResponseWriter, r *http.Request, logger zerolog.Logger) *ResponseWriter {
	return &ResponseWriter{w: w, r: r, logger: logger}
}

func (rw *ResponseWriter) meta() *APIMeta {
	return &APIMeta{
		RequestID: logging.RequestIDFromContext(rw.r.Context()),
		Timestamp: time.Now().UTC(),
	}
}

// Success writes a 200 with the given payload.
func (rw *ResponseWriter) Success(data any) {
	rw.writeJSON(http.StatusOK, APIResponse{Success: true, Data: data, Meta: rw.meta()})
}

// Created writes a 201 with the given payload.
func (rw *ResponseWriter) Created(data any) {
	rw.writeJSON(http.StatusCreated, APIResponse{Success: true, Data: data, Meta: rw.meta()})
}

// NoContent writes a 204 with an empty body.
func (rw *ResponseWriter) NoContent() {
	rw.w.WriteHeader(http.StatusNoContent)
}

// Error writes an error envelope with the given status, code, and message.
func (rw *ResponseWriter) Error(status int, code, message string) {
	rw.writeJSON(status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: message},
		Meta:    rw.meta(),
	})
}

// ValidationError writes a 400 with per-field failure details.
func (rw *ResponseWriter) ValidationError(message string, details any) {
	rw.writeJSON(http.StatusBadRequest, APIResponse{
		Success: false,
		Error:   &APIError{Code: ErrCodeValidationFailed, Message: message, Details: details},
		Meta:    rw.meta(),
	})
}

// BadRequest writes a 400 BAD_REQUEST.
func (rw *ResponseWriter) BadRequest(message string) {
	rw.Error(http.StatusBadRequest, ErrCodeBadRequest, message)
}

// NotFound writes a 404 NOT_FOUND.
func (rw *ResponseWriter) NotFound(message string) {
	rw.Error(http.StatusNotFound, ErrCodeNotFound, message)
}

// InternalError logs err and writes a 500 without leaking its text.
func (rw *ResponseWriter) InternalError(err error) {
	rw.logger.Error().Err(err).
		Str("path", rw.r.URL.Path).
		Str("request_id", logging.RequestIDFromContext(rw.r.Context())).
		Msg("internal error")
	rw.Error(http.StatusInternalServerError, ErrCodeInternalError, "internal server error")
}

func (rw *ResponseWriter) writeJSON(status int, resp APIResponse) {
	rw.w.Header().Set("Content-Type", "application/json")
	rw.w.WriteHeader(status)
	if err := json.NewEncoder(rw.w).Encode(resp); err != nil {
		// Headers are gone; nothing left to do but log.
		rw.logger.Error().Err(err).Msg("failed to encode response")
	}
}
