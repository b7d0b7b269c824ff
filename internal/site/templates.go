package site

import (
	"embed"
	"html/template"
)

//go:embed templates
var templateFS embed.FS

var (
	pageTemplate  = template.Must(template.ParseFS(templateFS, "templates/page.html.tmpl"))
	indexTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html.tmpl"))

	baseStyle = template.CSS(mustReadTemplate("templates/style.css"))
)

func mustReadTemplate(name string) string {
	data, err := templateFS.ReadFile(name)
	if err != nil {
		panic(err)
	}
	return string(data)
}

// pageData is the template context for a single rendered page.
type pageData struct {
	Language   string
	Title      string
	Style      template.CSS
	BackHref   string
	SourcePath string
	Body       template.HTML
	Generated  string
}

// indexData is the template context for the site index.
type indexData struct {
	Language    string
	Title       string
	Heading     string
	Description string
	Style       template.CSS
	Tree        template.HTML
}
