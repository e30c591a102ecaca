package handlers

import (
	"html/template"
	"net/http"

	"rustref/internal/redirects"
)

// indexTemplate renders the human-facing list of redirects. Each rule is a
// clickable link labelled "{short}.{domain} → {url}".
var indexTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Domain}}</title>
</head>
<body>
<h1>{{.Domain}}</h1>
<p>Rust documentation shortcuts. Every subdomain below is a 302 redirect.</p>
<ul>
{{- range .Entries}}
<li><a href="{{.URL}}">{{.Short}}.{{$.Domain}} &rarr; {{.URL}}</a></li>
{{- end}}
</ul>
</body>
</html>
`))

// IndexHandler renders the index page listing every redirect sorted by short.
func (con *Controller) IndexHandler() http.HandlerFunc {
	return func(res http.ResponseWriter, req *http.Request) {
		entries, err := con.service.Entries()
		if err != nil {
			http.Error(res, "redirect table not initialized", http.StatusServiceUnavailable)
			return
		}

		data := struct {
			Domain  string
			Entries []redirects.Entry
		}{
			Domain:  con.conf.BaseDomain,
			Entries: entries,
		}

		res.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := indexTemplate.Execute(res, data); err != nil {
			con.sugar.Errorf("error rendering index page: %v", err)
		}
	}
}
