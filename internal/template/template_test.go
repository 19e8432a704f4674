package template

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/plotline/internal/plotdata"
)

func datapoints(t *testing.T, raw string) []*plotdata.Record {
	t.Helper()
	records, err := plotdata.Extract(plotdata.Source{
		Path:     "metric.json",
		Revision: "workspace",
		Format:   plotdata.FormatJSON,
		Content:  []byte(raw),
	}, plotdata.Props{})
	require.NoError(t, err)
	return records
}

func TestFillDefaultTemplate(t *testing.T) {
	store := NewStore("")
	tmpl, err := store.Resolve("")
	require.NoError(t, err)
	assert.Equal(t, DefaultName, tmpl.Name)

	out, err := tmpl.Fill(FillParams{
		Datapoints: datapoints(t, `[{"val": 2}, {"val": 3}]`),
		X:          plotdata.IndexField,
		Y:          "val",
		Title:      "mytitle",
	})
	require.NoError(t, err)

	var spec map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &spec), "filled template must be valid JSON")

	assert.Equal(t, "mytitle", spec["title"])

	data := spec["data"].(map[string]any)
	assert.Equal(t, []any{
		map[string]any{"val": float64(2), "index": float64(0), "rev": "workspace"},
		map[string]any{"val": float64(3), "index": float64(1), "rev": "workspace"},
	}, data["values"])

	encoding := spec["encoding"].(map[string]any)
	x := encoding["x"].(map[string]any)
	y := encoding["y"].(map[string]any)
	assert.Equal(t, "index", x["field"])
	assert.Equal(t, "val", y["field"])
	// labels default to the field names
	assert.Equal(t, "index", x["title"])
	assert.Equal(t, "val", y["title"])
}

func TestFillExplicitLabels(t *testing.T) {
	store := NewStore("")
	tmpl, err := store.Resolve(DefaultName)
	require.NoError(t, err)

	out, err := tmpl.Fill(FillParams{
		Datapoints: datapoints(t, `[{"val": 2}]`),
		X:          plotdata.IndexField,
		Y:          "val",
		XLabel:     "x_title",
		YLabel:     "y_title",
	})
	require.NoError(t, err)

	var spec map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &spec))

	encoding := spec["encoding"].(map[string]any)
	assert.Equal(t, "x_title", encoding["x"].(map[string]any)["title"])
	assert.Equal(t, "y_title", encoding["y"].(map[string]any)["title"])
	assert.Equal(t, "", spec["title"])
}

func TestFillIdempotent(t *testing.T) {
	store := NewStore("")
	tmpl, err := store.Resolve("scatter")
	require.NoError(t, err)

	params := FillParams{
		Datapoints: datapoints(t, `[{"val": 2}, {"val": 3}]`),
		X:          plotdata.IndexField,
		Y:          "val",
	}
	first, err := tmpl.Fill(params)
	require.NoError(t, err)
	second, err := tmpl.Fill(params)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestFillEscapesTitles(t *testing.T) {
	store := NewStore("")
	tmpl, err := store.Resolve(DefaultName)
	require.NoError(t, err)

	out, err := tmpl.Fill(FillParams{
		Datapoints: datapoints(t, `[{"val": 2}]`),
		X:          plotdata.IndexField,
		Y:          "val",
		Title:      `say "hi"`,
	})
	require.NoError(t, err)

	var spec map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &spec))
	assert.Equal(t, `say "hi"`, spec["title"])
}

func TestBadTemplate(t *testing.T) {
	tmpl := &Template{Name: "template.json", Content: `{"a": "b", "c": "d"}`}

	_, err := tmpl.Fill(FillParams{X: "a", Y: "b"})

	var badErr *BadTemplateError
	require.ErrorAs(t, err, &badErr)
}

func TestStoreResolveNotFound(t *testing.T) {
	store := NewStore("")

	_, err := store.Resolve("non_existing_template.json")

	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestStoreProjectDirOverridesBuiltin(t *testing.T) {
	dir := t.TempDir()
	custom := `{"data": {"values": "<PLOTLINE_DATA>"}, "mark": "bar"}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "default.json"), []byte(custom), 0o644))

	store := NewStore(dir)
	tmpl, err := store.Resolve(DefaultName)
	require.NoError(t, err)
	assert.Equal(t, custom, tmpl.Content)
}

func TestStoreResolveExplicitPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.json")
	content := `{"data": {"values": "<PLOTLINE_DATA>"}}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	store := NewStore("")
	tmpl, err := store.Resolve(path)
	require.NoError(t, err)
	assert.Equal(t, content, tmpl.Content)
}

func TestStoreListContainsBuiltins(t *testing.T) {
	store := NewStore("")
	entries := store.List()

	names := make(map[string]string, len(entries))
	for _, e := range entries {
		names[e.Name] = e.Source
	}
	for _, want := range []string{"default", "scatter", "confusion", "smooth"} {
		assert.Equal(t, "builtin", names[want], "missing builtin template %s", want)
	}
}
