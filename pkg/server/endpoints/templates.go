package endpoints

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
)

//go:embed templates/*.html
var templateFiles embed.FS

var pageNames = []string{"home", "library", "detail", "about", "status"}

// pages holds one template set per page, each pairing the layout with the
// page's content block
var pages = mustParsePages()

func mustParsePages() map[string]*template.Template {
	parsed := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		t, err := template.ParseFS(templateFiles, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			panic(fmt.Sprintf("failed to parse %s template: %v", name, err))
		}
		parsed[name] = t
	}
	return parsed
}

// renderPage executes a page into a buffer first so a template error never
// produces a half written response
func renderPage(w http.ResponseWriter, code int, name string, data pageData) error {
	t, ok := pages[name]
	if !ok {
		return fmt.Errorf("unknown page %q", name)
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		return fmt.Errorf("failed to render %s: %w", name, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(code)
	_, _ = buf.WriteTo(w)
	return nil
}
