// Package report renders filled plot specs into a standalone HTML page
// and serves it with live reload during development.
package report

import (
	"fmt"
	"html/template"
	"io"
	"os"
)

// Plot is one rendered visualization on the page.
type Plot struct {
	// Name identifies the plot, usually the metric file path.
	Name string
	// Spec is the filled visualization spec as a JSON document.
	Spec string
}

// Page describes a report to render.
type Page struct {
	Title      string
	Plots      []Plot
	LiveReload bool
}

// Render writes the report page to w. Specs embed verbatim into a script
// block, everything else is escaped by html/template.
func Render(w io.Writer, page Page) error {
	type plotView struct {
		ID   string
		Name string
		Spec template.JS
	}
	views := make([]plotView, 0, len(page.Plots))
	for i, p := range page.Plots {
		views = append(views, plotView{
			ID:   fmt.Sprintf("plot-%d", i),
			Name: p.Name,
			Spec: template.JS(p.Spec), //nolint:gosec // G203: specs are generated JSON, not user markup
		})
	}

	data := struct {
		Title      string
		Plots      []plotView
		LiveReload bool
	}{
		Title:      page.Title,
		Plots:      views,
		LiveReload: page.LiveReload,
	}
	return pageTemplate.Execute(w, data)
}

// WriteFile renders the report page to path.
func WriteFile(path string, page Page) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating report file: %w", err)
	}
	if err := Render(f, page); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

var pageTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <title>{{.Title}}</title>
  <script src="https://cdn.jsdelivr.net/npm/vega@5"></script>
  <script src="https://cdn.jsdelivr.net/npm/vega-lite@5"></script>
  <script src="https://cdn.jsdelivr.net/npm/vega-embed@6"></script>
  <style>
    body { font-family: sans-serif; margin: 2rem; }
    .plot { margin-bottom: 2rem; }
    .plot h2 { font-size: 1rem; font-weight: 600; }
  </style>
</head>
<body>
  <h1>{{.Title}}</h1>
{{- range .Plots}}
  <div class="plot">
    <h2>{{.Name}}</h2>
    <div id="{{.ID}}"></div>
  </div>
{{- end}}
  <script>
{{- range .Plots}}
    vegaEmbed("#{{.ID}}", {{.Spec}}, {actions: false});
{{- end}}
{{- if .LiveReload}}
    (function() {
      var es = new EventSource("/__reload");
      es.onmessage = function(e) {
        if (e.data === "reload") window.location.reload();
      };
      es.onerror = function() {
        setTimeout(function() { window.location.reload(); }, 1000);
      };
    })();
{{- end}}
  </script>
</body>
</html>
`))
