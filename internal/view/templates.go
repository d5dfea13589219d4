package view

import (
	"embed"
	"html/template"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static/app.js
var appJS []byte

var pageTmpl = template.Must(template.ParseFS(templateFS, "templates/*.html"))
