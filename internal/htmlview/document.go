package htmlview

import (
	. "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

const stylesheet = `
.paged-table { border-collapse: collapse; }
.paged-table th, .paged-table td { border: 1px solid #ccc; padding: 4px 8px; }
.td-image { width: 48px; height: 48px; }
.controls .btn { display: inline-block; padding: 2px 8px; margin: 4px 2px; border: 1px solid #ccc; text-decoration: none; color: inherit; }
.controls .btn-primary { background: #337ab7; color: #fff; }
.controls .disabled { opacity: 0.4; }
.sortable a { color: inherit; text-decoration: none; }
`

// Document wraps body in a complete HTML page.
func Document(title string, body ...Node) Node {
	return Doctype(
		HTML(
			Lang("en"),
			Head(
				Meta(Charset("utf-8")),
				Meta(Name("viewport"), Content("width=device-width, initial-scale=1")),
				TitleEl(Text(title)),
				StyleEl(Raw(stylesheet)),
			),
			Body(
				Main(
					H1(Text(title)),
					Group(body),
				),
			),
		),
	)
}

// ErrorPage renders a page reporting message, with a link back to href.
func ErrorPage(title, message, href string) Node {
	return Document(title,
		P(Class("error"), Text(message)),
		P(A(Href(href), Text("Back to table"))),
	)
}
