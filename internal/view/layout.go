package view

import (
	"strings"
	"time"

	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

const htmxScript = "https://unpkg.com/htmx.org@2.0.4"

// PageMeta carries head metadata for a full page render.
type PageMeta struct {
	Title       string
	Description string
	SiteURL     string
	OGImage     string
	Year        int
}

func (m PageMeta) withDefaults() PageMeta {
	if m.Title == "" {
		m.Title = "Rise Gum - Get Energy Anywhere"
	}
	if m.Description == "" {
		m.Description = "India's first sugar-free caffeine gum for students & professionals. Clean energy that fits in your pocket."
	}
	if m.Year == 0 {
		m.Year = time.Now().Year()
	}
	if m.OGImage == "" {
		m.OGImage = "/og.png"
	}
	if m.SiteURL != "" && strings.HasPrefix(m.OGImage, "/") {
		m.OGImage = strings.TrimRight(m.SiteURL, "/") + m.OGImage
	}
	return m
}

// Layout wraps body nodes into a full HTML document.
func Layout(meta PageMeta, body ...g.Node) g.Node {
	meta = meta.withDefaults()

	return g.Group([]g.Node{
		g.Raw("<!DOCTYPE html>"),
		HTML(
			Lang("en"),
			Head(
				Meta(Charset("utf-8")),
				Meta(Name("viewport"), Content("width=device-width, initial-scale=1.0")),
				TitleEl(g.Text(meta.Title)),
				Meta(Name("description"), Content(meta.Description)),

				Meta(g.Attr("property", "og:title"), Content(meta.Title)),
				Meta(g.Attr("property", "og:description"), Content(meta.Description)),
				Meta(g.Attr("property", "og:type"), Content("website")),
				Meta(g.Attr("property", "og:image"), Content(meta.OGImage)),
				g.If(meta.SiteURL != "", Meta(g.Attr("property", "og:url"), Content(meta.SiteURL))),
				Meta(Name("twitter:card"), Content("summary_large_image")),

				StyleEl(g.Raw(stylesheet)),
				Script(Src(htmxScript), Defer()),
			),
			Body(body...),
		),
	})
}

const stylesheet = `
:root{--text-primary:#0f172a;--text-secondary:#475569;--text-muted:#94a3b8;--accent:#16a34a;--accent-text:#15803d;--bg-section:#f8fafc;--border-light:#e2e8f0}
*{box-sizing:border-box}
body{margin:0;font-family:Inter,system-ui,-apple-system,sans-serif;color:var(--text-primary);background:#fff}
a{color:inherit}
.nav-header{display:flex;align-items:center;justify-content:space-between;padding:1rem 1.5rem;position:sticky;top:0;background:rgba(255,255,255,.9);backdrop-filter:blur(8px);z-index:10}
.brand{display:flex;align-items:center;gap:.5rem;font-weight:700;font-size:1.25rem}
.brand-mark{width:2rem;height:2rem;border-radius:9999px;background:linear-gradient(135deg,#4ade80,#16a34a);color:#fff;display:flex;align-items:center;justify-content:center;font-size:.875rem}
.nav-links{display:flex;gap:1.5rem}
.nav-link{text-decoration:none;color:var(--text-secondary)}
.btn-primary{display:inline-flex;align-items:center;justify-content:center;gap:.5rem;background:var(--accent);color:#fff;border:0;border-radius:9999px;padding:.75rem 1.5rem;font-weight:600;text-decoration:none;cursor:pointer}
.btn-primary[disabled]{opacity:.6;cursor:not-allowed}
.btn-secondary{display:inline-flex;align-items:center;border:1px solid var(--border-light);border-radius:9999px;padding:.75rem 1.5rem;text-decoration:none}
.section{padding:6rem 1.5rem}
.section-alt{background:var(--bg-section)}
.container{max-width:72rem;margin:0 auto;text-align:center}
.container-narrow{max-width:42rem;margin:0 auto;text-align:center}
.hero{padding:6rem 1.5rem 4rem;text-align:center}
.badge{display:inline-block;padding:.25rem .75rem;border-radius:9999px;background:#dcfce7;color:#166534;border:1px solid #bbf7d0;font-size:.875rem}
.heading-1{font-size:3.5rem;line-height:1.1;margin:1rem 0 1.5rem}
.heading-2{font-size:2.25rem;margin:0 0 1rem}
.heading-3{font-size:1.25rem;margin:0 0 .75rem}
.body-large{font-size:1.25rem;color:var(--text-secondary)}
.body-small{font-size:.95rem;color:var(--text-secondary)}
.grid-3{display:grid;grid-template-columns:repeat(auto-fit,minmax(16rem,1fr));gap:2rem}
.grid-4{display:grid;grid-template-columns:repeat(auto-fit,minmax(8rem,1fr));gap:2rem;margin-bottom:3rem}
.card{border:1px solid var(--border-light);border-radius:1.5rem;padding:2rem;background:#fff}
.card-problem{border-color:#fecaca;background:#fef2f2}
.card-solution{border-color:#bbf7d0;background:#f0fdf4}
.icon-tile{width:5rem;height:5rem;margin:0 auto 1.5rem;border-radius:1rem;display:flex;align-items:center;justify-content:center;color:#fff;background:linear-gradient(135deg,#9ca3af,#4b5563)}
.icon-tile-problem{background:linear-gradient(135deg,#f87171,#dc2626)}
.icon-tile-solution{background:linear-gradient(135deg,#4ade80,#16a34a)}
.stat-value{font-size:1.875rem;font-weight:700;color:var(--accent-text)}
.stars{display:flex;justify-content:center;gap:.25rem;color:#facc15;margin-bottom:1rem}
.stars svg{fill:#facc15}
.waitlist-form{display:grid;gap:1rem}
.waitlist-form input{width:100%;border:1px solid var(--border-light);border-radius:9999px;padding:.75rem 1rem;font-size:1rem}
.form-row{display:grid;grid-template-columns:repeat(auto-fit,minmax(12rem,1fr));gap:1rem}
.status{margin-top:1rem;font-size:.875rem}
.status-success{color:#16a34a}
.status-error{color:#dc2626}
.label-busy{display:none}
.htmx-request .label-idle,.htmx-request.label-idle{display:none}
.htmx-request .label-busy,.htmx-request.label-busy{display:inline}
.footer{padding:3rem 1.5rem;border-top:1px solid var(--border-light)}
.footer-grid{max-width:56rem;margin:0 auto 2rem;display:grid;grid-template-columns:repeat(auto-fit,minmax(14rem,1fr));gap:2rem}
.contact-line{display:flex;align-items:center;gap:.5rem;margin-bottom:.5rem}
.social{display:flex;gap:1rem}
.social a{width:2.5rem;height:2.5rem;border-radius:9999px;background:#f3f4f6;display:flex;align-items:center;justify-content:center}
.admin{max-width:64rem;margin:2rem auto;padding:0 1.5rem}
.admin table{width:100%;border-collapse:collapse;font-size:.9rem}
.admin th,.admin td{text-align:left;padding:.5rem;border-bottom:1px solid var(--border-light)}
`
