package content

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestDefaultIsComplete(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("bundled content should be complete: %v", err)
	}
}

func TestDefaultReturnsIndependentCopies(t *testing.T) {
	first := Default()
	first.Testimonials[0].Name = "Changed"
	first.SocialLinks = nil

	second := Default()
	if second.Testimonials[0].Name != "Arjun Sharma" {
		t.Fatalf("mutating a copy leaked into the bundled model: %q", second.Testimonials[0].Name)
	}
	if len(second.SocialLinks) != 4 {
		t.Fatalf("expected 4 social links, got %d", len(second.SocialLinks))
	}
}

func TestValidateRejectsGaps(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Model)
		want   string
	}{
		{name: "no testimonials", mutate: func(m *Model) { m.Testimonials = nil }, want: "testimonials"},
		{name: "blank quote", mutate: func(m *Model) { m.Testimonials[1].Quote = "  " }, want: "testimonial 1"},
		{name: "rating", mutate: func(m *Model) { m.Testimonials[0].Rating = 6 }, want: "rating"},
		{name: "no benefits", mutate: func(m *Model) { m.ProductBenefits = []Point{} }, want: "product benefit"},
		{name: "blank problem", mutate: func(m *Model) { m.ProblemPoints[2].Title = "" }, want: "problem point 2"},
		{name: "growth", mutate: func(m *Model) { m.SocialProofStats.GrowthRate = "" }, want: "growth rate"},
		{name: "link", mutate: func(m *Model) { m.SocialLinks[0].URL = "" }, want: "social link 0"},
		{name: "contact", mutate: func(m *Model) { m.ContactInfo.Email = "" }, want: "contact email"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Default()
			tt.mutate(&m)
			err := m.Validate()
			if !errors.Is(err, ErrIncomplete) {
				t.Fatalf("expected ErrIncomplete, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected error to mention %q, got %v", tt.want, err)
			}
		})
	}
}

func TestModelUsesCamelCaseKeys(t *testing.T) {
	raw, err := json.Marshal(Default())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	for _, key := range []string{`"socialProofStats"`, `"interestedStudents"`, `"problemPoints"`, `"contactInfo"`} {
		if !strings.Contains(string(raw), key) {
			t.Fatalf("expected key %s in %s", key, raw)
		}
	}
}
