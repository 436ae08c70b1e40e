package services_test

import (
	"context"
	"testing"

	"multicam/internal/services"
)

func TestContextHelpers(t *testing.T) {
	ctx := context.Background()
	ctx = services.WithRunID(ctx, "run-42")
	ctx = services.WithStage(ctx, "sanitize")
	ctx = services.WithSpeaker(ctx, "speaker2")

	if id, ok := services.RunIDFromContext(ctx); !ok || id != "run-42" {
		t.Fatalf("unexpected run id: %v %v", id, ok)
	}
	if stage, ok := services.StageFromContext(ctx); !ok || stage != "sanitize" {
		t.Fatalf("unexpected stage: %v %v", stage, ok)
	}
	if speaker, ok := services.SpeakerFromContext(ctx); !ok || speaker != "speaker2" {
		t.Fatalf("unexpected speaker: %v %v", speaker, ok)
	}
}

func TestBlankValuesPreserveContext(t *testing.T) {
	ctx := context.Background()
	ctx = services.WithStage(ctx, "")
	ctx = services.WithRunID(ctx, "")
	if _, ok := services.StageFromContext(ctx); ok {
		t.Fatal("expected no stage value")
	}
	if _, ok := services.RunIDFromContext(ctx); ok {
		t.Fatal("expected no run id value")
	}
}
