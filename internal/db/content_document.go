package db

import "gorm.io/gorm"

// ContentSlugLanding identifies the landing page content document.
const ContentSlugLanding = "landing"

// ContentDocument stores a serialized content model keyed by slug.
// Payload holds the JSON encoding of content.Model.
type ContentDocument struct {
	gorm.Model
	Slug    string `gorm:"size:64;uniqueIndex;not null"`
	Payload string `gorm:"type:text;not null"`
}
