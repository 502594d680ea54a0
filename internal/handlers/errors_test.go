package handlers

import (
	"errors"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestRespondWithErrorWritesStatusAndBody(t *testing.T) {
	recorder := httptest.NewRecorder()

	respondWithError(zap.NewNop(), recorder, 418, "Teapot", "", nil)

	if recorder.Code != 418 {
		t.Fatalf("expected status 418, got %d", recorder.Code)
	}

	body := strings.TrimSpace(recorder.Body.String())
	if body != "Teapot" {
		t.Fatalf("expected body 'Teapot', got %q", body)
	}
}

func TestRespondWithErrorLogsMessage(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)

	recorder := httptest.NewRecorder()
	err := errors.New("boom")

	respondWithError(zap.New(core), recorder, 500, "Internal server error", "", err)

	entries := logs.FilterMessage("Internal server error").All()
	if len(entries) != 1 {
		t.Fatalf("expected one log entry with the user message, got %d", len(entries))
	}
	if got := entries[0].ContextMap()["error"]; got != "boom" {
		t.Fatalf("expected logged error 'boom', got %v", got)
	}
}

func TestRespondWithErrorSkipsLogWithoutError(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)

	respondWithError(zap.New(core), httptest.NewRecorder(), 404, "Not found", "", nil)

	if logs.Len() != 0 {
		t.Fatalf("expected no log entries, got %d", logs.Len())
	}
}
