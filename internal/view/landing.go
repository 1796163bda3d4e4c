package view

import (
	"strconv"

	"github.com/risegum/internal/content"
	"github.com/risegum/internal/landing"
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

const (
	waitlistCardID   = "waitlist-card"
	submitLabelIdle  = "Notify me when available"
	submitLabelBusy  = "Joining..."
	waitlistFormPath = "/waitlist"
)

// LandingPage renders the whole landing page from state.
func LandingPage(meta PageMeta, state landing.PageState) g.Node {
	meta = meta.withDefaults()
	c := state.Content

	return Layout(meta,
		pageHeader(),
		Main(
			hero(),
			problemSection(c.ProblemPoints),
			solutionSection(c.ProductBenefits),
			socialProofSection(c.SocialProofStats, c.Testimonials),
			waitlistSection(state),
		),
		pageFooter(c, meta.Year),
	)
}

// WaitlistCard renders only the form card; HTMX swaps it in place after a submit.
func WaitlistCard(state landing.PageState) g.Node {
	submitting := state.Submitting

	return Div(
		ID(waitlistCardID),
		Class("card"),
		FormEl(
			Class("waitlist-form"),
			Method("post"),
			Action(waitlistFormPath),
			g.Attr("hx-post", waitlistFormPath),
			g.Attr("hx-target", "#"+waitlistCardID),
			g.Attr("hx-swap", "outerHTML"),
			g.Attr("hx-disabled-elt", "find button"),
			g.Attr("novalidate"),
			Div(
				Class("form-row"),
				Input(Type("text"), Name("name"), Placeholder("Your Name"), Value(state.Form.Name), Required(), g.Attr("autocomplete", "name")),
				Input(Type("email"), Name("email"), Placeholder("Email Address"), Value(state.Form.Email), Required(), g.Attr("autocomplete", "email")),
			),
			Input(Type("text"), Name("city"), Placeholder("Your City"), Value(state.Form.City), Required()),
			Button(
				Type("submit"),
				Class("btn-primary"),
				g.If(submitting, Disabled()),
				g.If(!submitting, Span(Class("label-idle"), g.Text(submitLabelIdle))),
				Span(
					g.If(!submitting, Class("label-busy")),
					g.Text(submitLabelBusy),
				),
			),
		),
		statusLine(state.Status),
	)
}

func statusLine(s landing.Status) g.Node {
	if s.Empty() {
		return nil
	}
	cls := "status status-error"
	if s.Success {
		cls = "status status-success"
	}
	return P(Class(cls), g.Attr("role", "status"), g.Text(s.Message))
}

func brand() g.Node {
	return Div(
		Class("brand"),
		Span(Class("brand-mark"), g.Text("R")),
		Span(g.Text("Rise Gum")),
	)
}

func pageHeader() g.Node {
	return Header(
		Class("nav-header"),
		brand(),
		Nav(
			Class("nav-links"),
			A(Href("#problem"), Class("nav-link"), g.Text("Problem")),
			A(Href("#solution"), Class("nav-link"), g.Text("Solution")),
			A(Href("#waitlist"), Class("nav-link"), g.Text("Join Waitlist")),
		),
		A(Href("#waitlist"), Class("btn-primary"), g.Text("Get Early Access")),
	)
}

func hero() g.Node {
	return Section(
		Class("hero"),
		Span(Class("badge"), g.Text("Fast, Portable, Smart Energy")),
		H1(Class("heading-1"), g.Text("Get Energy Anywhere")),
		P(Class("body-large"), g.Text("India's first sugar-free caffeine gum for students & professionals. Clean energy that fits in your pocket.")),
		Div(
			A(Href("#waitlist"), Class("btn-primary"), g.Text("Join Waitlist"), Icon("Mail", "")),
			g.Text(" "),
			A(Href("#solution"), Class("btn-secondary"), g.Text("Learn More")),
		),
	)
}

func problemSection(points []content.Point) g.Node {
	return Section(
		ID("problem"),
		Class("section section-alt"),
		Div(
			Class("container"),
			H2(Class("heading-2"), g.Text("90% of energy comes from unhealthy drinks")),
			P(Class("body-large"), g.Text("We're changing that.")),
			Div(
				Class("grid-3"),
				g.Map(points, func(p content.Point) g.Node {
					return pointCard(p, "card"+typeSuffix("card", p.Type), "icon-tile"+typeSuffix("icon-tile", p.Type))
				}),
			),
		),
	)
}

func solutionSection(benefits []content.Point) g.Node {
	return Section(
		ID("solution"),
		Class("section"),
		Div(
			Class("container"),
			H2(Class("heading-2"), g.Text("Rise Gum delivers clean energy in seconds")),
			P(Class("body-large"), g.Text("Everything you need for sustained focus and energy.")),
			Div(
				Class("grid-3"),
				g.Map(benefits, func(p content.Point) g.Node {
					return pointCard(p, "card", "icon-tile icon-tile-solution")
				}),
			),
		),
	)
}

// typeSuffix maps problem/solution point types to a modifier class.
func typeSuffix(base, pointType string) string {
	switch pointType {
	case "problem", "solution":
		return " " + base + "-" + pointType
	default:
		return ""
	}
}

func pointCard(p content.Point, cardClass, tileClass string) g.Node {
	return Div(
		Class(cardClass),
		Div(Class(tileClass), Icon(p.Icon, "")),
		H3(Class("heading-3"), g.Text(p.Title)),
		P(Class("body-small"), Markdown(p.Description)),
	)
}

func socialProofSection(stats content.Stats, testimonials []content.Testimonial) g.Node {
	return Section(
		Class("section section-alt"),
		Div(
			Class("container-narrow"),
			H2(
				Class("heading-2"),
				Icon("TrendingUp", ""),
				g.Textf(" %d+ students already interested", stats.InterestedStudents),
			),
			Div(
				Class("grid-4"),
				statItem(strconv.Itoa(stats.InterestedStudents)+"+", "Students"),
				statItem(strconv.Itoa(stats.Universities)+"+", "Universities"),
				statItem(strconv.Itoa(stats.Cities)+"+", "Cities"),
				statItem(stats.GrowthRate, "Growth"),
			),
			g.If(len(testimonials) > 0, testimonialCard(firstTestimonial(testimonials))),
		),
	)
}

func firstTestimonial(ts []content.Testimonial) content.Testimonial {
	if len(ts) == 0 {
		return content.Testimonial{}
	}
	return ts[0]
}

func statItem(value, label string) g.Node {
	return Div(
		Div(Class("stat-value"), g.Text(value)),
		Div(Class("body-small"), g.Text(label)),
	)
}

func testimonialCard(t content.Testimonial) g.Node {
	stars := make([]g.Node, 0, 5)
	for i := 0; i < t.Rating && i < 5; i++ {
		stars = append(stars, Icon("Star", ""))
	}

	return Div(
		Class("card testimonial"),
		Div(Class("stars"), g.Group(stars)),
		BlockQuote(g.Textf("\"%s\"", t.Quote)),
		Div(Class("testimonial-name"), Strong(g.Text(t.Name))),
		Div(Class("body-small"), g.Textf("%s • %s", t.Role, t.City)),
	)
}

func waitlistSection(state landing.PageState) g.Node {
	return Section(
		ID("waitlist"),
		Class("section"),
		Div(
			Class("container-narrow"),
			H2(Class("heading-2"), g.Text("Be the first to try Rise Gum")),
			P(Class("body-large"), g.Text("Join our waitlist and get notified when we launch in your city.")),
			WaitlistCard(state),
		),
	)
}

func pageFooter(c content.Model, year int) g.Node {
	return Footer(
		Class("footer"),
		Div(
			Class("footer-grid"),
			Div(
				brand(),
				P(Class("body-small"), g.Text(c.ContactInfo.Address)),
			),
			Div(
				H4(g.Text("Contact")),
				Div(Class("contact-line"), Icon("Mail", ""), Span(Class("body-small"), g.Text(c.ContactInfo.Email))),
				g.If(c.ContactInfo.Phone != "",
					Div(Class("contact-line"), Icon("Phone", ""), Span(Class("body-small"), g.Text(c.ContactInfo.Phone))),
				),
			),
			Div(
				H4(g.Text("Follow Us")),
				Div(
					Class("social"),
					g.Map(c.SocialLinks, func(link content.SocialLink) g.Node {
						return A(
							Href(link.URL),
							g.Attr("aria-label", link.Platform),
							Icon(link.Icon, ""),
						)
					}),
				),
			),
		),
		Div(
			Class("container"),
			P(Class("body-small"), g.Textf("© %d Rise Gum. All rights reserved. Made with ❤️ in India.", year)),
		),
	)
}
