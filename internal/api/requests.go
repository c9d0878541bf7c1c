// Between Us - Couples Companion Content Engine
// Copyright 2026 Brit Hornick (brithornick92-max)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/brithornick92-max/BetweenUs-sub001

package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	json "github.com/goccy/go-json"

	"github.com/brithornick92-max/BetweenUs-sub001/internal/catalog"
	"github.com/brithornick92-max/BetweenUs-sub001/internal/engine"
)

// maxBodyBytes caps request bodies. Signal payloads are small; anything
// bigger is malformed or hostile.
const maxBodyBytes = 1 << 20

// BoundariesRequest mirrors engine.Boundaries on the wire.
type BoundariesRequest struct {
	HideSpicy        bool     `json:"hide_spicy"`
	HiddenCategories []string `json:"hidden_categories" validate:"omitempty,dive,oneof=romance emotional playful deep spicy gratitude future adventure"`
	PausedPrompts    []string `json:"paused_prompts" validate:"omitempty,dive,min=1,max=64"`
	PausedDates      []string `json:"paused_dates" validate:"omitempty,dive,min=1,max=64"`
	MaxHeatOverride  int      `json:"max_heat_override" validate:"omitempty,min=1,max=5"`
}

// SignalsRequest carries the raw preference signals. Every field is
// optional; omitted signals fall back to the engine's neutral defaults.
type SignalsRequest struct {
	IntensityPref int               `json:"intensity_pref" validate:"omitempty,min=1,max=5"`
	Season        string            `json:"season" validate:"omitempty,oneof=cozy adventure reconnect full_plate healing celebration"`
	Energy        string            `json:"energy" validate:"omitempty,oneof=low medium high"`
	Climate       string            `json:"climate" validate:"omitempty,oneof=calm tender stormy distant playful"`
	Tone          string            `json:"tone" validate:"omitempty,oneof=warm playful intimate minimal"`
	Boundaries    BoundariesRequest `json:"boundaries"`
	StartDate     *time.Time        `json:"start_date"`
}

// Signals converts the wire form to engine signals.
func (s SignalsRequest) Signals() engine.Signals {
	b := engine.Boundaries{
		HideSpicy:       s.Boundaries.HideSpicy,
		PausedPrompts:   s.Boundaries.PausedPrompts,
		PausedDates:     s.Boundaries.PausedDates,
		MaxHeatOverride: s.Boundaries.MaxHeatOverride,
	}
	for _, c := range s.Boundaries.HiddenCategories {
		b.HiddenCategories = append(b.HiddenCategories, catalog.Category(c))
	}
	return engine.Signals{
		IntensityPref: s.IntensityPref,
		Season:        engine.Season(s.Season),
		Energy:        engine.EnergyLevel(s.Energy),
		Climate:       engine.Climate(s.Climate),
		Tone:          engine.Tone(s.Tone),
		Boundaries:    b,
		StartDate:     s.StartDate,
	}
}

// ProfileRequest builds a profile from signals.
type ProfileRequest struct {
	Signals SignalsRequest `json:"signals"`
}

// DailyPromptRequest asks for the day's prompt for one user.
type DailyPromptRequest struct {
	UserID  string         `json:"user_id" validate:"required,min=1,max=128"`
	Signals SignalsRequest `json:"signals"`

	// Day overrides "today" for the deterministic pick, format 2006-01-02.
	Day string `json:"day" validate:"omitempty,datetime=2006-01-02"`
}

// PromptCheckRequest re-checks visibility of a single prompt against
// current signals.
type PromptCheckRequest struct {
	PromptID string         `json:"prompt_id" validate:"required,min=1,max=64"`
	Signals  SignalsRequest `json:"signals"`
}

// DateDimsRequest mirrors engine.DateDims on the wire.
type DateDimsRequest struct {
	Heat  int    `json:"heat" validate:"omitempty,min=1,max=3"`
	Load  int    `json:"load" validate:"omitempty,min=1,max=3"`
	Style string `json:"style" validate:"omitempty,oneof=talking doing mixed"`
}

// Dims converts the wire form, returning nil when nothing was specified.
func (d *DateDimsRequest) Dims() *engine.DateDims {
	if d == nil || (d.Heat == 0 && d.Load == 0 && d.Style == "") {
		return nil
	}
	return &engine.DateDims{Heat: d.Heat, Load: d.Load, Style: catalog.Style(d.Style)}
}

// DateCheckRequest ranks eligible date ideas for the given signals and
// optional explicit dimensions.
type DateCheckRequest struct {
	Signals SignalsRequest   `json:"signals"`
	Dims    *DateDimsRequest `json:"dims"`
}

// SurpriseDateRequest asks for a weighted-random date pick.
type SurpriseDateRequest struct {
	Signals        SignalsRequest   `json:"signals"`
	RecentIDs      []string         `json:"recent_ids" validate:"omitempty,max=50,dive,min=1,max=64"`
	PreferredLoad  int              `json:"preferred_load" validate:"omitempty,min=1,max=3"`
	PreferredStyle string           `json:"preferred_style" validate:"omitempty,oneof=talking doing mixed"`
	Dims           *DateDimsRequest `json:"dims"`
	TimeOfDay      string           `json:"time_of_day" validate:"omitempty,oneof=morning afternoon evening night"`
	TopN           int              `json:"top_n" validate:"omitempty,min=1,max=50"`
}

// Context converts the wire form to a surprise context.
func (r SurpriseDateRequest) Context() engine.SurpriseContext {
	return engine.SurpriseContext{
		RecentIDs:      r.RecentIDs,
		PreferredLoad:  r.PreferredLoad,
		PreferredStyle: catalog.Style(r.PreferredStyle),
		Dims:           r.Dims.Dims(),
		TimeOfDay:      engine.TimeOfDay(r.TimeOfDay),
	}
}

// RatingRequest stores a reaction to an item.
type RatingRequest struct {
	Rating string `json:"rating" validate:"required,oneof=love neutral hate"`
}

// fieldError is one entry in a VALIDATION_FAILED details list.
type fieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
	Value any    `json:"value,omitempty"`
}

// decodeAndValidate decodes the JSON body into dst and runs struct
// validation. It writes the error response itself and reports whether the
// handler should continue.
func decodeAndValidate(rw *ResponseWriter, r *http.Request, v *validator.Validate, dst any) bool {
	r.Body = http.MaxBytesReader(rw.w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		rw.BadRequest(fmt.Sprintf("invalid request body: %v", err))
		return false
	}

	if err := v.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			details := make([]fieldError, 0, len(verrs))
			for _, fe := range verrs {
				details = append(details, fieldError{
					Field: fe.Namespace(),
					Rule:  fe.Tag(),
					Value: fe.Value(),
				})
			}
			rw.ValidationError("request validation failed", details)
			return false
		}
		rw.BadRequest(err.Error())
		return false
	}
	return true
}
