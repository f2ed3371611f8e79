package logging

import (
	"context"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestFromContextFallsBackToDefault(t *testing.T) {
	if FromContext(context.Background()) != DefaultLogger() {
		t.Fatalf("expected default logger for empty context")
	}
}

func TestWithFieldsKeepsFieldsOnContextLogger(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	ctx := WithLogger(context.Background(), zap.New(core))
	ctx = WithFields(ctx, zap.String("route", "western_horoscope"))

	L(ctx).Info("hello")

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if got := entries[0].ContextMap()["route"]; got != "western_horoscope" {
		t.Fatalf("expected route field, got %v", got)
	}
}
