package view

import (
	"bytes"
	"image/png"
	"strings"
	"testing"

	"github.com/risegum/internal/content"
	"github.com/risegum/internal/db"
	"github.com/risegum/internal/landing"
	g "maragu.dev/gomponents"
)

func render(t *testing.T, n g.Node) string {
	t.Helper()
	var buf bytes.Buffer
	if err := n.Render(&buf); err != nil {
		t.Fatalf("render failed: %v", err)
	}
	return buf.String()
}

func TestIconSVG(t *testing.T) {
	if svg := IconSVG("heart", "w-6 h-6"); !strings.Contains(svg, `class="w-6 h-6"`) || !strings.Contains(svg, "<path") {
		t.Fatalf("unexpected svg %q", svg)
	}
	if IconSVG("Unknown", "") != "" {
		t.Fatal("unknown icon should render nothing")
	}
	if !HasIcon(" MessageCircle ") {
		t.Fatal("expected MessageCircle to be registered")
	}
	if IconSVG("X", `"><script>`) == "" || strings.Contains(IconSVG("X", `"><script>`), "<script>") {
		t.Fatal("class must be escaped")
	}
	if len(IconKeys()) != 15 {
		t.Fatalf("expected 15 icons, got %d", len(IconKeys()))
	}
}

func TestMarkdownInline(t *testing.T) {
	out := render(t, Markdown("Zero **sugar**, zero calories."))
	if out != "Zero <strong>sugar</strong>, zero calories." {
		t.Fatalf("unexpected markdown output %q", out)
	}

	out = render(t, Markdown("click <script>alert(1)</script> now"))
	if strings.Contains(out, "<script>") {
		t.Fatalf("markdown output not sanitized: %q", out)
	}
}

func TestLandingPageRendersFallbackContent(t *testing.T) {
	state := landing.PageState{Content: content.Default(), Loaded: true}
	html := render(t, LandingPage(PageMeta{Year: 2025}, state))

	def := content.Default()
	for _, want := range []string{
		"Get Energy Anywhere",
		def.Testimonials[0].Quote,
		def.Testimonials[0].Name,
		"1247+ students already interested",
		def.SocialProofStats.GrowthRate,
		def.ProblemPoints[0].Title,
		def.ProductBenefits[2].Title,
		def.ContactInfo.Email,
		"© 2025 Rise Gum",
		submitLabelIdle,
		`hx-post="/waitlist"`,
		`hx-disabled-elt="find button"`,
		`property="og:image" content="/og.png"`,
	} {
		if !strings.Contains(html, want) {
			t.Errorf("page missing %q", want)
		}
	}
	if strings.Count(html, `class="card card-problem"`) != 1 || strings.Count(html, `class="card card-solution"`) != 1 {
		t.Error("expected problem and solution modifiers on problem cards")
	}
}

func TestWaitlistCardStates(t *testing.T) {
	html := render(t, WaitlistCard(landing.PageState{
		Form:   landing.Form{Name: "Priya", Email: "bad", City: "Mumbai"},
		Status: landing.Status{Message: landing.MsgInvalidEmail},
	}))
	if !strings.Contains(html, `value="Priya"`) || !strings.Contains(html, "status-error") || !strings.Contains(html, landing.MsgInvalidEmail) {
		t.Fatalf("unexpected error card %s", html)
	}

	html = render(t, WaitlistCard(landing.PageState{Status: landing.Status{Message: landing.MsgJoined, Success: true}}))
	if !strings.Contains(html, "status-success") || strings.Contains(html, `value="Priya"`) {
		t.Fatalf("unexpected success card %s", html)
	}

	html = render(t, WaitlistCard(landing.PageState{Submitting: true}))
	if !strings.Contains(html, `class="btn-primary" disabled`) || strings.Contains(html, submitLabelIdle) || !strings.Contains(html, submitLabelBusy) {
		t.Fatalf("submitting card should be disabled %s", html)
	}
}

func TestAdminWaitlistPage(t *testing.T) {
	entries := []db.WaitlistEntry{{ID: "1", Name: "Arjun", Email: "arjun@example.com", City: "Delhi", Status: db.WaitlistStatusPending}}
	html := render(t, AdminWaitlistPage(WaitlistPageData{Entries: entries, Total: 3, Skip: 0, Limit: 1}))
	if !strings.Contains(html, "arjun@example.com") || !strings.Contains(html, "Waitlist (3)") {
		t.Fatalf("unexpected admin page %s", html)
	}
	if !strings.Contains(html, "skip=1&amp;limit=1") {
		t.Fatalf("expected next page link %s", html)
	}
}

func TestRenderSocialCard(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderSocialCard(&buf, SocialCardText{Title: "Rise Gum", Tagline: "Get Energy Anywhere", Subtitle: "Sugar-free caffeine gum"}); err != nil {
		t.Fatalf("RenderSocialCard returned error: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("output is not png: %v", err)
	}
	if b := img.Bounds(); b.Dx() != SocialCardWidth || b.Dy() != SocialCardHeight {
		t.Fatalf("unexpected bounds %v", b)
	}
}
