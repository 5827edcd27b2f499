package templates

import (
	"embed"
	"net/http"

	"github.com/gofiber/template/html/v2"
)

//go:embed layouts fragments index.html error.html
var FS embed.FS

// NewEngine returns the view engine over the embedded templates. A non-empty
// dir loads them from disk instead and reloads on every render.
func NewEngine(dir string) *html.Engine {
	if dir != "" {
		engine := html.New(dir, ".html")
		engine.Reload(true)
		return engine
	}
	return html.NewFileSystem(http.FS(FS), ".html")
}
