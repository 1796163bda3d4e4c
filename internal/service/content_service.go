package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/risegum/internal/content"
	"github.com/risegum/internal/db"
	"gorm.io/gorm"
)

// ContentService serves the landing page content model. A stored document
// wins over the bundled default; a corrupt or incomplete document is ignored.
type ContentService struct {
	db *gorm.DB
}

// NewContentService returns a new ContentService instance.
func NewContentService(gdb *gorm.DB) *ContentService {
	return &ContentService{db: gdb}
}

// Get returns the current content model and whether it came from storage.
func (s *ContentService) Get(ctx context.Context) (content.Model, bool, error) {
	var doc db.ContentDocument
	if err := s.db.WithContext(ctx).Where("slug = ?", db.ContentSlugLanding).First(&doc).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return content.Default(), false, nil
		}
		return content.Default(), false, fmt.Errorf("load content document: %w", err)
	}

	var model content.Model
	if err := json.Unmarshal([]byte(doc.Payload), &model); err != nil {
		return content.Default(), false, fmt.Errorf("decode content document: %w", err)
	}
	if err := model.Validate(); err != nil {
		return content.Default(), false, err
	}
	return model, true, nil
}

// Save replaces the stored content model as a whole.
func (s *ContentService) Save(ctx context.Context, model content.Model) (content.Model, error) {
	if err := model.Validate(); err != nil {
		return content.Model{}, err
	}

	payload, err := json.Marshal(model)
	if err != nil {
		return content.Model{}, fmt.Errorf("encode content document: %w", err)
	}

	var doc db.ContentDocument
	err = s.db.WithContext(ctx).Where("slug = ?", db.ContentSlugLanding).First(&doc).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return content.Model{}, fmt.Errorf("load content document: %w", err)
		}
		doc = db.ContentDocument{Slug: db.ContentSlugLanding, Payload: string(payload)}
		if err := s.db.WithContext(ctx).Create(&doc).Error; err != nil {
			return content.Model{}, fmt.Errorf("create content document: %w", err)
		}
		return model, nil
	}

	doc.Payload = string(payload)
	if err := s.db.WithContext(ctx).Save(&doc).Error; err != nil {
		return content.Model{}, fmt.Errorf("update content document: %w", err)
	}
	return model, nil
}

// Reset drops the stored document so the bundled default is served again.
func (s *ContentService) Reset(ctx context.Context) error {
	if err := s.db.WithContext(ctx).Unscoped().
		Where("slug = ?", db.ContentSlugLanding).
		Delete(&db.ContentDocument{}).Error; err != nil {
		return fmt.Errorf("reset content document: %w", err)
	}
	return nil
}
