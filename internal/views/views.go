// Package views carries the embedded HTML templates and builds the template
// engine the server renders with.
package views

import (
	"embed"
	"io/fs"
	"net/http"

	"github.com/gofiber/template/html/v2"
)

//go:embed templates
var templateFS embed.FS

// Layout is the shared page frame every view renders inside.
const Layout = "layouts/main"

// Engine returns a template engine backed by the embedded template tree.
func Engine() *html.Engine {
	sub, err := fs.Sub(templateFS, "templates")
	if err != nil {
		panic("views: embedded template tree is malformed: " + err.Error())
	}
	return html.NewFileSystem(http.FS(sub), ".html")
}
