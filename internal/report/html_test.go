package report

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	var buf bytes.Buffer
	err := Render(&buf, Page{
		Title: "plots",
		Plots: []Plot{
			{Name: "metrics/train.json", Spec: `{"data": {"values": []}}`},
			{Name: "logs.csv", Spec: `{"mark": "point"}`},
		},
	})
	require.NoError(t, err)

	html := buf.String()
	assert.Contains(t, html, "<title>plots</title>")
	assert.Contains(t, html, "vega-embed@6")
	assert.Contains(t, html, `vegaEmbed("#plot-0", {"data": {"values": []}}`)
	assert.Contains(t, html, `vegaEmbed("#plot-1", {"mark": "point"}`)
	assert.NotContains(t, html, "__reload")

	// page order follows the plots slice
	assert.Less(t,
		strings.Index(html, "metrics/train.json"),
		strings.Index(html, "logs.csv"))
}

func TestRenderLiveReload(t *testing.T) {
	var buf bytes.Buffer
	err := Render(&buf, Page{Title: "plots", LiveReload: true})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `new EventSource("/__reload")`)
}

func TestRenderEscapesNames(t *testing.T) {
	var buf bytes.Buffer
	err := Render(&buf, Page{
		Title: "plots",
		Plots: []Plot{{Name: "<script>alert(1)</script>", Spec: "{}"}},
	})
	require.NoError(t, err)
	assert.NotContains(t, buf.String(), "<script>alert(1)</script>")
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plots.html")
	require.NoError(t, WriteFile(path, Page{
		Title: "plots",
		Plots: []Plot{{Name: "m.json", Spec: "{}"}},
	}))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "m.json")
}
