package view

import (
	"strconv"

	"github.com/risegum/internal/db"
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

// AdminLoginPage 渲染后台登录页。
func AdminLoginPage(errMsg string) g.Node {
	return Layout(PageMeta{Title: "Rise Gum Admin - Login"},
		Div(
			Class("admin"),
			brand(),
			H1(Class("heading-2"), g.Text("Admin login")),
			g.If(errMsg != "", P(Class("status status-error"), g.Text(errMsg))),
			FormEl(
				Class("waitlist-form"),
				Method("post"),
				Action("/admin/login"),
				Input(Type("text"), Name("username"), Placeholder("Username"), Required()),
				Input(Type("password"), Name("password"), Placeholder("Password"), Required()),
				Button(Type("submit"), Class("btn-primary"), g.Text("Sign in")),
			),
		),
	)
}

// WaitlistPageData is the admin table page input.
type WaitlistPageData struct {
	Entries []db.WaitlistEntry
	Total   int64
	Skip    int
	Limit   int
}

// AdminWaitlistPage lists waitlist entries newest first with paging links.
func AdminWaitlistPage(data WaitlistPageData) g.Node {
	return Layout(PageMeta{Title: "Rise Gum Admin - Waitlist"},
		Div(
			Class("admin"),
			Header(
				Class("nav-header"),
				brand(),
				Nav(
					Class("nav-links"),
					A(Href("/admin/waitlist/export.xlsx"), Class("nav-link"), g.Text("Export xlsx")),
					FormEl(Method("post"), Action("/admin/logout"),
						Button(Type("submit"), Class("btn-secondary"), g.Text("Log out")),
					),
				),
			),
			H1(Class("heading-2"), g.Textf("Waitlist (%d)", data.Total)),
			g.If(len(data.Entries) == 0, P(Class("body-small"), g.Text("No entries yet."))),
			g.If(len(data.Entries) > 0, waitlistTable(data.Entries)),
			pager(data),
		),
	)
}

func waitlistTable(entries []db.WaitlistEntry) g.Node {
	return Table(
		THead(Tr(
			Th(g.Text("Name")),
			Th(g.Text("Email")),
			Th(g.Text("City")),
			Th(g.Text("Status")),
			Th(g.Text("Joined")),
		)),
		TBody(g.Map(entries, func(e db.WaitlistEntry) g.Node {
			return Tr(
				Td(g.Text(e.Name)),
				Td(g.Text(e.Email)),
				Td(g.Text(e.City)),
				Td(g.Text(e.Status)),
				Td(g.Text(e.CreatedAt.Format("2006-01-02 15:04"))),
			)
		})),
	)
}

func pager(data WaitlistPageData) g.Node {
	if data.Limit <= 0 {
		return nil
	}
	var links []g.Node
	if data.Skip > 0 {
		prev := data.Skip - data.Limit
		if prev < 0 {
			prev = 0
		}
		links = append(links, A(Href(pageHref(prev, data.Limit)), Class("nav-link"), g.Text("← Newer")))
	}
	if int64(data.Skip+len(data.Entries)) < data.Total {
		links = append(links, A(Href(pageHref(data.Skip+data.Limit, data.Limit)), Class("nav-link"), g.Text("Older →")))
	}
	if len(links) == 0 {
		return nil
	}
	return Nav(Class("nav-links"), g.Group(links))
}

func pageHref(skip, limit int) string {
	return "/admin/waitlist?skip=" + strconv.Itoa(skip) + "&limit=" + strconv.Itoa(limit)
}
