package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"
)

//go:embed templates/*.html
var templateFS embed.FS

// Pages rendered inside layout.html.
var Pages = []string{"home.html", "login.html", "admin.html"}

// Raw HTML in markdown is escaped since WithUnsafe is not set.
var md = goldmark.New(
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

// Renderer implements echo.Renderer over the embedded templates.
type Renderer struct {
	pages map[string]*template.Template
}

// NewRenderer parses every page once.
func NewRenderer() (*Renderer, error) {
	r := &Renderer{pages: make(map[string]*template.Template, len(Pages))}
	for _, page := range Pages {
		tpl, err := template.New("layout.html").Funcs(FuncMap()).ParseFS(templateFS, "templates/layout.html", "templates/"+page)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", page, err)
		}
		r.pages[page] = tpl
	}
	return r, nil
}

func (r *Renderer) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	tpl, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("unknown page %q", name)
	}
	// render to a buffer so a template error never leaves half a page behind
	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		return err
	}
	_, err := buf.WriteTo(w)
	return err
}

// FuncMap holds the helpers available to templates.
func FuncMap() template.FuncMap {
	return template.FuncMap{
		"markdown": Markdown,
		"date": func(t time.Time) string {
			return t.Format("Jan 2, 2006")
		},
		"money": func(d decimal.Decimal) string {
			return "$" + d.StringFixed(2)
		},
		"year": func() int {
			return time.Now().Year()
		},
	}
}

// Markdown renders md as HTML, falling back to escaped text.
func Markdown(src string) template.HTML {
	var buf bytes.Buffer
	if err := md.Convert([]byte(src), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(src))
	}
	return template.HTML(buf.String())
}
