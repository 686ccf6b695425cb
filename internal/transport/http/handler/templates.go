package handler

import (
	"embed"
	"html/template"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

// Templates parses the page templates. Pages are rendered by name, e.g.
// c.HTML(200, "urls_index", data).
func Templates() *template.Template {
	return template.Must(template.New("").ParseFS(templatesFS, "templates/*.tmpl"))
}
