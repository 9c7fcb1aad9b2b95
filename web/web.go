// Package web holds the server-rendered templates, embedded into the binary.
package web

import (
	"embed"
	"io/fs"
	"net/http"
	"strconv"

	"github.com/dustin/go-humanize"
	html "github.com/gofiber/template/html/v2"
)

//go:embed templates
var templatesFS embed.FS

// Engine returns the view engine over the embedded templates. Partials live
// under partials/ and are referenced by path, e.g. {{template "partials/header" .}}.
func Engine() *html.Engine {
	sub, err := fs.Sub(templatesFS, "templates")
	if err != nil {
		panic(err)
	}
	engine := html.NewFileSystem(http.FS(sub), ".html")
	engine.AddFunc("price", Price)
	engine.AddFunc("count", func(n int) string { return humanize.Comma(int64(n)) })
	engine.AddFunc("add", func(a, b int) int { return a + b })
	engine.AddFunc("itoa", strconv.Itoa)
	return engine
}

// Price formats whole rupees with thousands separators.
func Price(v int) string {
	return "₹" + humanize.Comma(int64(v))
}
