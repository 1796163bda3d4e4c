package service

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/risegum/internal/content"
	"github.com/risegum/internal/db"
)

func TestContentServiceFallsBackToDefault(t *testing.T) {
	cleanup := setupServiceTestDB(t)
	defer cleanup()

	svc := NewContentService(db.DB)
	model, stored, err := svc.Get(context.Background())
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if stored {
		t.Fatal("expected bundled content when nothing is stored")
	}
	if !reflect.DeepEqual(model, content.Default()) {
		t.Fatal("expected bundled default model")
	}
}

func TestContentServiceSaveReplacesWholeModel(t *testing.T) {
	cleanup := setupServiceTestDB(t)
	defer cleanup()

	svc := NewContentService(db.DB)
	ctx := context.Background()

	first := content.Default()
	first.SocialProofStats.InterestedStudents = 2000
	if _, err := svc.Save(ctx, first); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	second := content.Default()
	second.Testimonials = second.Testimonials[:1]
	if _, err := svc.Save(ctx, second); err != nil {
		t.Fatalf("second Save returned error: %v", err)
	}

	got, stored, err := svc.Get(ctx)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if !stored {
		t.Fatal("expected stored content")
	}
	if got.SocialProofStats.InterestedStudents != 1247 {
		t.Fatalf("expected second save to replace stats, got %d", got.SocialProofStats.InterestedStudents)
	}
	if len(got.Testimonials) != 1 {
		t.Fatalf("expected one testimonial, got %d", len(got.Testimonials))
	}

	var count int64
	db.DB.Model(&db.ContentDocument{}).Count(&count)
	if count != 1 {
		t.Fatalf("expected a single content document, got %d", count)
	}
}

func TestContentServiceRejectsIncompleteModel(t *testing.T) {
	cleanup := setupServiceTestDB(t)
	defer cleanup()

	svc := NewContentService(db.DB)
	broken := content.Default()
	broken.ContactInfo.Email = ""

	if _, err := svc.Save(context.Background(), broken); !errors.Is(err, content.ErrIncomplete) {
		t.Fatalf("expected ErrIncomplete, got %v", err)
	}
}

func TestContentServiceIgnoresCorruptDocument(t *testing.T) {
	cleanup := setupServiceTestDB(t)
	defer cleanup()

	if err := db.DB.Create(&db.ContentDocument{Slug: db.ContentSlugLanding, Payload: "{not json"}).Error; err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	svc := NewContentService(db.DB)
	model, stored, err := svc.Get(context.Background())
	if err == nil {
		t.Fatal("expected decode error to be reported")
	}
	if stored || !reflect.DeepEqual(model, content.Default()) {
		t.Fatal("expected bundled content alongside the error")
	}

	if err := svc.Reset(context.Background()); err != nil {
		t.Fatalf("Reset returned error: %v", err)
	}
	if _, stored, err := svc.Get(context.Background()); err != nil || stored {
		t.Fatalf("expected clean fallback after reset, stored=%v err=%v", stored, err)
	}
}
