package server

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

//go:embed web/templates/*.html
var templateFS embed.FS

// Raw HTML in model output is dropped by goldmark's default renderer.
var md = goldmark.New(goldmark.WithExtensions(extension.GFM))

var funcs = template.FuncMap{
	"markdown": renderMarkdown,
	"join":     strings.Join,
	"title":    titleCase,
	"has": func(vals url.Values, key, v string) bool {
		return slices.Contains(vals[key], v)
	},
}

func renderMarkdown(s string) template.HTML {
	var buf bytes.Buffer
	if err := md.Convert([]byte(s), &buf); err != nil {
		return template.HTML("<pre>" + template.HTMLEscapeString(s) + "</pre>")
	}
	return template.HTML(buf.String())
}

func titleCase(s string) string {
	r, n := utf8.DecodeRuneInString(s)
	if n == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + s[n:]
}

func loadPages() (map[string]*template.Template, error) {
	pages := make(map[string]*template.Template, len(pageList))
	for _, p := range pageList {
		t, err := template.New("layout.html").Funcs(funcs).ParseFS(templateFS,
			"web/templates/layout.html", "web/templates/"+p.name()+".html")
		if err != nil {
			return nil, fmt.Errorf("parse %s template: %w", p.name(), err)
		}
		pages[p.Path] = t
	}
	return pages, nil
}

func (s *Server) render(w http.ResponseWriter, v *view) {
	var buf bytes.Buffer
	if err := s.pages[v.Page.Path].ExecuteTemplate(&buf, "layout", v); err != nil {
		s.log.WithError(err).WithField("page", v.Page.Path).Error("render page")
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if v.status != 0 {
		w.WriteHeader(v.status)
	}
	_, _ = buf.WriteTo(w)
}
