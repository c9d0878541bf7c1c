// Between Us - Couples Companion Content Engine
// Copyright 2026 Brit Hornick (brithornick92-max)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/brithornick92-max/BetweenUs-sub001

package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestSlogBridgeWritesThroughZerolog(t *testing.T) {
	var buf bytes.Buffer
	slogger := NewSlogLoggerWith(zerolog.New(&buf).Level(zerolog.DebugLevel))

	slogger.Info("service started", "name", "http-server", "attempts", int64(3))

	out := buf.String()
	for _, want := range []string{"service started", `"name":"http-server"`, `"attempts":3`, `"level":"info"`} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %s: %s", want, out)
		}
	}
}

func TestSlogBridgeLevels(t *testing.T) {
	var buf bytes.Buffer
	slogger := NewSlogLoggerWith(zerolog.New(&buf).Level(zerolog.WarnLevel))

	if slogger.Handler().Enabled(context.Background(), slog.LevelInfo) {
		t.Error("info should be disabled at warn level")
	}
	if !slogger.Handler().Enabled(context.Background(), slog.LevelError) {
		t.Error("error should be enabled at warn level")
	}

	slogger.Info("dropped")
	slogger.Error("kept")
	out := buf.String()
	if strings.Contains(out, "dropped") {
		t.Errorf("info line leaked past level filter: %s", out)
	}
	if !strings.Contains(out, "kept") {
		t.Errorf("error line missing: %s", out)
	}
}

func TestSlogBridgeGroupsAndAttrs(t *testing.T) {
	var buf bytes.Buffer
	slogger := NewSlogLoggerWith(zerolog.New(&buf).Level(zerolog.DebugLevel))

	slogger.With("component", "supervisor").WithGroup("restart").Info("backing off", "count", int64(2))

	out := buf.String()
	if !strings.Contains(out, `"component":"supervisor"`) {
		t.Errorf("pre-set attr missing: %s", out)
	}
	if !strings.Contains(out, `"restart.count":2`) {
		t.Errorf("grouped attr missing: %s", out)
	}
}
