// Tastegraph - Deterministic Taste Modeling and Ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastegraph

package logging

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func newBufferedSlog(t *testing.T, level zerolog.Level) (*slog.Logger, *bytes.Buffer) {
	t.Helper()
	prev := zerolog.GlobalLevel()
	zerolog.SetGlobalLevel(zerolog.TraceLevel)
	t.Cleanup(func() { zerolog.SetGlobalLevel(prev) })

	var buf bytes.Buffer
	return NewSlogLogger(zerolog.New(&buf).Level(level)), &buf
}

func TestSlogHandler_Enabled(t *testing.T) {
	prev := zerolog.GlobalLevel()
	zerolog.SetGlobalLevel(zerolog.TraceLevel)
	t.Cleanup(func() { zerolog.SetGlobalLevel(prev) })

	h := NewSlogHandler(zerolog.New(nil).Level(zerolog.InfoLevel))
	tests := []struct {
		level slog.Level
		want  bool
	}{
		{slog.LevelDebug, false},
		{slog.LevelInfo, true},
		{slog.LevelWarn, true},
		{slog.LevelError, true},
	}
	for _, tt := range tests {
		if got := h.Enabled(context.Background(), tt.level); got != tt.want {
			t.Errorf("Enabled(%v) = %v, want %v", tt.level, got, tt.want)
		}
	}
}

func TestSlogHandler_Handle(t *testing.T) {
	logger, buf := newBufferedSlog(t, zerolog.TraceLevel)

	logger.Warn("service restarted",
		"service", "finalizer",
		"attempt", 3,
		"backoff", 2*time.Second,
		"ok", false,
		"err", errors.New("boom"),
	)

	m := decodeLine(t, strings.TrimSpace(buf.String()))
	if m["level"] != "warn" || m["message"] != "service restarted" {
		t.Errorf("unexpected entry %v", m)
	}
	if m["service"] != "finalizer" || m["attempt"] != float64(3) || m["ok"] != false {
		t.Errorf("attributes not mapped: %v", m)
	}
	if m["err"] != "boom" {
		t.Errorf("err = %v, want boom", m["err"])
	}
}

func TestSlogHandler_GroupsAndAttrs(t *testing.T) {
	logger, buf := newBufferedSlog(t, zerolog.TraceLevel)

	logger.With("supervisor", "root").WithGroup("svc").Info("event", "name", "http", slog.Group("cfg", "port", 8080))

	m := decodeLine(t, strings.TrimSpace(buf.String()))
	if m["supervisor"] != "root" {
		t.Errorf("pre-configured attr = %v", m)
	}
	if m["svc.name"] != "http" {
		t.Errorf("grouped key missing: %v", m)
	}
	if m["svc.cfg.port"] != float64(8080) {
		t.Errorf("nested group key missing: %v", m)
	}
}

func TestSlogHandler_WithGroupEmpty(t *testing.T) {
	h := NewSlogHandler(zerolog.Nop())
	if h.WithGroup("") != h {
		t.Error("WithGroup(\"\") should return the same handler")
	}
}

func TestSlogHandler_LevelFiltered(t *testing.T) {
	logger, buf := newBufferedSlog(t, zerolog.WarnLevel)

	logger.Info("dropped")
	logger.Error("kept")

	out := buf.String()
	if strings.Contains(out, "dropped") || !strings.Contains(out, "kept") {
		t.Errorf("unexpected output %q", out)
	}
}

func TestSlogToZerologLevel(t *testing.T) {
	tests := []struct {
		in   slog.Level
		want zerolog.Level
	}{
		{slog.LevelDebug - 4, zerolog.TraceLevel},
		{slog.LevelDebug, zerolog.DebugLevel},
		{slog.LevelInfo, zerolog.InfoLevel},
		{slog.LevelInfo + 2, zerolog.InfoLevel},
		{slog.LevelWarn, zerolog.WarnLevel},
		{slog.LevelError, zerolog.ErrorLevel},
		{slog.LevelError + 4, zerolog.ErrorLevel},
	}
	for _, tt := range tests {
		if got := slogToZerologLevel(tt.in); got != tt.want {
			t.Errorf("slogToZerologLevel(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
