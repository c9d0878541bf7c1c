// Between Us - Couples Companion Content Engine
// Copyright 2026 Brit Hornick (brithornick92-max)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/brithornick92-max/BetweenUs-sub001

package api

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	json "github.com/goccy/go-json"

	"github.com/brithornick92-max/BetweenUs-sub001/internal/logging"
)

func newTestRW(t *testing.T) (*ResponseWriter, *httptest.ResponseRecorder) {
	t.Helper()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req = req.WithContext(logging.ContextWithRequestID(req.Context(), "req-123"))
	return NewResponseWriter(rec, req, logging.NewTestLogger(io.Discard)), rec
}

func TestSuccessEnvelope(t *testing.T) {
	rw, rec := newTestRW(t)
	rw.Success(map[string]string{"hello": "world"})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("content type = %q", ct)
	}

	var resp APIResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !resp.Success {
		t.Error("success = false")
	}
	if resp.Error != nil {
		t.Errorf("error = %+v, want nil", resp.Error)
	}
	if resp.Meta == nil || resp.Meta.RequestID != "req-123" {
		t.Errorf("meta = %+v, want request id req-123", resp.Meta)
	}
	if resp.Meta.Timestamp.IsZero() {
		t.Error("meta timestamp is zero")
	}
}

func TestCreatedEnvelope(t *testing.T) {
	rw, rec := newTestRW(t)
	rw.Created(nil)
	if rec.Code != http.StatusCreated {
		t.Errorf("status = %d, want 201", rec.Code)
	}
}

func TestNoContent(t *testing.T) {
	rw, rec := newTestRW(t)
	rw.NoContent()
	if rec.Code != http.StatusNoContent {
		t.Errorf("status = %d, want 204", rec.Code)
	}
	if rec.Body.Len() != 0 {
		t.Errorf("body = %q, want empty", rec.Body.String())
	}
}

func TestErrorEnvelope(t *testing.T) {
	rw, rec := newTestRW(t)
	rw.Error(http.StatusNotFound, ErrCodeNotFound, "no such thing")

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	var resp APIResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Success {
		t.Error("success = true on error response")
	}
	if resp.Error == nil || resp.Error.Code != ErrCodeNotFound || resp.Error.Message != "no such thing" {
		t.Errorf("error = %+v", resp.Error)
	}
}

func TestValidationErrorDetails(t *testing.T) {
	rw, rec := newTestRW(t)
	rw.ValidationError("bad input", []fieldError{{Field: "UserID", Rule: "required"}})

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	var resp APIResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Error.Code != ErrCodeValidationFailed {
		t.Errorf("code = %q", resp.Error.Code)
	}
	if resp.Error.Details == nil {
		t.Error("details missing")
	}
}

func TestInternalErrorHidesCause(t *testing.T) {
	rw, rec := newTestRW(t)
	rw.InternalError(fmt.Errorf("sensitive: /var/lib/secret"))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	var resp APIResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Error.Message != "internal server error" {
		t.Errorf("message = %q, must not leak cause", resp.Error.Message)
	}
}
