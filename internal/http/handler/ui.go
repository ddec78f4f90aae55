package handler

import (
	"bytes"
	_ "embed"
	"html/template"

	"github.com/gofiber/fiber/v2"
)

//go:embed ui/index.html
var indexSource string

var indexTemplate = template.Must(template.New("index").Parse(indexSource))

// Index serves the single-page upload form.
func Index() fiber.Handler {
	var page bytes.Buffer
	if err := indexTemplate.Execute(&page, struct{ Modes []modeOption }{modeOptions()}); err != nil {
		panic(err)
	}
	body := page.Bytes()

	return func(c *fiber.Ctx) error {
		c.Type("html", "utf-8")
		return c.Send(body)
	}
}
