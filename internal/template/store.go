package template

import (
	"embed"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

//go:embed templates/*.json
var builtinFS embed.FS

const templateExt = ".json"

// Store locates templates by name or path.
//
// Lookup order: the project templates directory, the builtin set shipped
// with the binary, then the name interpreted as a filesystem path. Names
// may omit the conventional .json extension.
type Store struct {
	dir string
}

// NewStore creates a template store. dir is the project templates
// directory and may be empty.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Resolve looks up a template by name or path.
func (s *Store) Resolve(name string) (*Template, error) {
	if name == "" {
		name = DefaultName
	}

	for _, candidate := range candidates(name) {
		if s.dir != "" {
			if content, err := os.ReadFile(filepath.Join(s.dir, candidate)); err == nil {
				return &Template{Name: name, Content: string(content)}, nil
			}
		}
		if content, err := builtinFS.ReadFile("templates/" + candidate); err == nil {
			return &Template{Name: name, Content: string(content)}, nil
		}
	}

	// Fall back to treating the name as a path relative to the working
	// directory (or absolute).
	for _, candidate := range candidates(name) {
		if content, err := os.ReadFile(candidate); err == nil {
			return &Template{Name: name, Content: string(content)}, nil
		}
	}

	return nil, NewNotFoundError(name)
}

// candidates returns the file names tried for a template name.
func candidates(name string) []string {
	if strings.HasSuffix(name, templateExt) {
		return []string{name}
	}
	return []string{name + templateExt, name}
}

// Entry describes one available template.
type Entry struct {
	Name   string `json:"name"`
	Source string `json:"source"` // "builtin" or "project"
}

// List returns the available templates, project ones first, sorted by
// name within each source.
func (s *Store) List() []Entry {
	var entries []Entry
	seen := make(map[string]struct{})

	if s.dir != "" {
		if names, err := templateNames(os.DirFS(s.dir), "."); err == nil {
			for _, name := range names {
				entries = append(entries, Entry{Name: name, Source: "project"})
				seen[name] = struct{}{}
			}
		}
	}

	builtins, _ := templateNames(builtinFS, "templates")
	for _, name := range builtins {
		if _, ok := seen[name]; ok {
			continue
		}
		entries = append(entries, Entry{Name: name, Source: "builtin"})
	}
	return entries
}

func templateNames(fsys fs.FS, dir string) ([]string, error) {
	items, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, item := range items {
		if item.IsDir() || !strings.HasSuffix(item.Name(), templateExt) {
			continue
		}
		names = append(names, strings.TrimSuffix(item.Name(), templateExt))
	}
	sort.Strings(names)
	return names, nil
}
