package content

import (
	"errors"
	"fmt"
	"strings"
)

// ErrIncomplete 表示内容模型缺少页面渲染所需的字段。
var ErrIncomplete = errors.New("content model is incomplete")

// Testimonial is a visitor quote shown in the social proof section.
type Testimonial struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Role   string `json:"role"`
	City   string `json:"city"`
	Quote  string `json:"quote"`
	Rating int    `json:"rating"`
}

// Point is a card in the problem or benefits section. Type is only used by
// problem points ("problem", "neutral", "solution").
type Point struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Type        string `json:"type,omitempty"`
}

// Stats 为社交证明区块的统计数字。
type Stats struct {
	InterestedStudents int    `json:"interestedStudents"`
	Universities       int    `json:"universities"`
	Cities             int    `json:"cities"`
	GrowthRate         string `json:"growthRate"`
}

// SocialLink is a footer link rendered with an icon.
type SocialLink struct {
	Platform string `json:"platform"`
	Icon     string `json:"icon"`
	URL      string `json:"url"`
}

// ContactInfo 页脚联系方式。
type ContactInfo struct {
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// Model is everything the landing page renders besides fixed copy.
type Model struct {
	Testimonials     []Testimonial `json:"testimonials"`
	ProblemPoints    []Point       `json:"problemPoints"`
	ProductBenefits  []Point       `json:"productBenefits"`
	SocialProofStats Stats         `json:"socialProofStats"`
	SocialLinks      []SocialLink  `json:"socialLinks"`
	ContactInfo      ContactInfo   `json:"contactInfo"`
}

// Validate reports the first gap that would leave a section blank.
func (m Model) Validate() error {
	if len(m.Testimonials) == 0 {
		return fmt.Errorf("%w: testimonials are required", ErrIncomplete)
	}
	for i, t := range m.Testimonials {
		if blank(t.Name, t.Quote) {
			return fmt.Errorf("%w: testimonial %d needs name and quote", ErrIncomplete, i)
		}
		if t.Rating < 0 || t.Rating > 5 {
			return fmt.Errorf("%w: testimonial %d rating out of range", ErrIncomplete, i)
		}
	}
	if err := validatePoints("problem point", m.ProblemPoints); err != nil {
		return err
	}
	if err := validatePoints("product benefit", m.ProductBenefits); err != nil {
		return err
	}
	if strings.TrimSpace(m.SocialProofStats.GrowthRate) == "" {
		return fmt.Errorf("%w: growth rate is required", ErrIncomplete)
	}
	for i, link := range m.SocialLinks {
		if blank(link.Platform, link.URL) {
			return fmt.Errorf("%w: social link %d needs platform and url", ErrIncomplete, i)
		}
	}
	if blank(m.ContactInfo.Email) {
		return fmt.Errorf("%w: contact email is required", ErrIncomplete)
	}
	return nil
}

// Clone returns a deep copy so callers can never mutate the bundled default.
func (m Model) Clone() Model {
	out := m
	out.Testimonials = append([]Testimonial(nil), m.Testimonials...)
	out.ProblemPoints = append([]Point(nil), m.ProblemPoints...)
	out.ProductBenefits = append([]Point(nil), m.ProductBenefits...)
	out.SocialLinks = append([]SocialLink(nil), m.SocialLinks...)
	return out
}

func validatePoints(label string, points []Point) error {
	if len(points) == 0 {
		return fmt.Errorf("%w: at least one %s is required", ErrIncomplete, label)
	}
	for i, p := range points {
		if blank(p.Title, p.Description) {
			return fmt.Errorf("%w: %s %d needs title and description", ErrIncomplete, label, i)
		}
	}
	return nil
}

func blank(values ...string) bool {
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			return true
		}
	}
	return false
}
