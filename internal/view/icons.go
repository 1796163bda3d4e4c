package view

import (
	"html"
	"sort"
	"strings"

	g "maragu.dev/gomponents"
)

type iconAsset struct {
	Key  string
	Body string
}

var (
	iconDefinitions = []iconAsset{
		{Key: "Heart", Body: `<path d="M19 14c1.49-1.46 3-3.21 3-5.5A5.5 5.5 0 0 0 16.5 3c-1.76 0-3 .5-4.5 2-1.5-1.5-2.74-2-4.5-2A5.5 5.5 0 0 0 2 8.5c0 2.3 1.5 4.05 3 5.5l7 7Z"/>`},
		{Key: "Zap", Body: `<polygon points="13 2 3 14 12 14 11 22 21 10 12 10 13 2"/>`},
		{Key: "Clock", Body: `<circle cx="12" cy="12" r="10"/><polyline points="12 6 12 12 16 14"/>`},
		{Key: "X", Body: `<path d="M18 6 6 18"/><path d="m6 6 12 12"/>`},
		{Key: "Minus", Body: `<path d="M5 12h14"/>`},
		{Key: "CheckCircle", Body: `<path d="M22 11.08V12a10 10 0 1 1-5.93-9.14"/><polyline points="22 4 12 14.01 9 11.01"/>`},
		{Key: "Instagram", Body: `<rect width="20" height="20" x="2" y="2" rx="5" ry="5"/><path d="M16 11.37A4 4 0 1 1 12.63 8 4 4 0 0 1 16 11.37z"/><line x1="17.5" x2="17.51" y1="6.5" y2="6.5"/>`},
		{Key: "Twitter", Body: `<path d="M22 4s-.7 2.1-2 3.4c1.6 10-9.4 17.3-18 11.6 2.2.1 4.4-.6 6-2C3 15.5.5 9.6 3 5c2.2 2.6 5.6 4.1 9 4-.9-4.2 4-6.6 7-3.8 1.1 0 3-1.2 3-1.2z"/>`},
		{Key: "Linkedin", Body: `<path d="M16 8a6 6 0 0 1 6 6v7h-4v-7a2 2 0 0 0-2-2 2 2 0 0 0-2 2v7h-4v-7a6 6 0 0 1 6-6z"/><rect width="4" height="12" x="2" y="9"/><circle cx="4" cy="4" r="2"/>`},
		{Key: "MessageCircle", Body: `<path d="M7.9 20A9 9 0 1 0 4 16.1L2 22Z"/>`},
		{Key: "Mail", Body: `<rect width="20" height="16" x="2" y="4" rx="2"/><path d="m22 7-8.97 5.7a1.94 1.94 0 0 1-2.06 0L2 7"/>`},
		{Key: "Phone", Body: `<path d="M22 16.92v3a2 2 0 0 1-2.18 2 19.79 19.79 0 0 1-8.63-3.07 19.5 19.5 0 0 1-6-6 19.79 19.79 0 0 1-3.07-8.67A2 2 0 0 1 4.11 2h3a2 2 0 0 1 2 1.72 12.84 12.84 0 0 0 .7 2.81 2 2 0 0 1-.45 2.11L8.09 9.91a16 16 0 0 0 6 6l1.27-1.27a2 2 0 0 1 2.11-.45 12.84 12.84 0 0 0 2.81.7A2 2 0 0 1 22 16.92z"/>`},
		{Key: "MapPin", Body: `<path d="M20 10c0 6-8 12-8 12s-8-6-8-12a8 8 0 0 1 16 0Z"/><circle cx="12" cy="10" r="3"/>`},
		{Key: "Star", Body: `<polygon points="12 2 15.09 8.26 22 9.27 17 14.14 18.18 21.02 12 17.77 5.82 21.02 7 14.14 2 9.27 8.91 8.26 12 2"/>`},
		{Key: "TrendingUp", Body: `<polyline points="22 7 13.5 15.5 8.5 10.5 2 17"/><polyline points="16 7 22 7 22 13"/>`},
	}
	iconLookup = func() map[string]iconAsset {
		lookup := make(map[string]iconAsset, len(iconDefinitions))
		for _, icon := range iconDefinitions {
			lookup[strings.ToLower(icon.Key)] = icon
		}
		return lookup
	}()
)

// IconKeys lists the registered icon names in sorted order.
func IconKeys() []string {
	keys := make([]string, 0, len(iconDefinitions))
	for _, icon := range iconDefinitions {
		keys = append(keys, icon.Key)
	}
	sort.Strings(keys)
	return keys
}

// HasIcon reports whether key resolves to an icon.
func HasIcon(key string) bool {
	_, ok := iconLookup[strings.ToLower(strings.TrimSpace(key))]
	return ok
}

// IconSVG resolves key case-insensitively. Unknown keys yield an empty string,
// so content referencing a missing icon renders nothing in its place.
func IconSVG(key, class string) string {
	icon, ok := iconLookup[strings.ToLower(strings.TrimSpace(key))]
	if !ok {
		return ""
	}
	var b strings.Builder
	b.WriteString(`<svg xmlns="http://www.w3.org/2000/svg"`)
	if class = strings.TrimSpace(class); class != "" {
		b.WriteString(` class="`)
		b.WriteString(html.EscapeString(class))
		b.WriteString(`"`)
	}
	b.WriteString(` width="24" height="24" viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="2" stroke-linecap="round" stroke-linejoin="round" aria-hidden="true">`)
	b.WriteString(icon.Body)
	b.WriteString(`</svg>`)
	return b.String()
}

// Icon is IconSVG as a node.
func Icon(key, class string) g.Node {
	svg := IconSVG(key, class)
	if svg == "" {
		return nil
	}
	return g.Raw(svg)
}
