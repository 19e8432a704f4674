// Package plots turns tracked metric files into rendered visualization
// specs. It aggregates datapoints across project revisions and fills the
// resolved template per target, while the actual content retrieval,
// plot registry and template lookup are injected collaborators.
package plots

import (
	"context"
	"errors"
	"fmt"

	"github.com/leapstack-labs/plotline/internal/template"
)

// WorkspaceRevision identifies the live working tree state.
const WorkspaceRevision = "workspace"

// Sentinel errors a ContentProvider reports for soft failures. Both are
// tolerated per revision: the revision contributes no datapoints and
// aggregation continues.
var (
	// ErrNotFound means the path does not exist at the requested revision.
	ErrNotFound = errors.New("file not found at revision")
	// ErrObjectMissing means the path is tracked at the revision but its
	// content is unavailable (e.g. a partial cache).
	ErrObjectMissing = errors.New("tracked object content missing")
)

// ContentProvider retrieves a file's byte content as of a revision.
type ContentProvider interface {
	Get(ctx context.Context, path, rev string) ([]byte, error)
}

// ConfigProvider exposes the registered plots and their declared default
// rendering options.
type ConfigProvider interface {
	ListTargets() []string
	DefaultProps(path string) map[string]any
}

// TemplateResolver locates templates by name or path. An empty name
// resolves the global default.
type TemplateResolver interface {
	Resolve(name string) (*template.Template, error)
}

// NoPlotsError indicates that no targets were requested and none are
// registered.
type NoPlotsError struct{}

func (e *NoPlotsError) Error() string {
	return "no plots found: register plots in the project config or pass explicit targets"
}

// NoMetricInHistoryError indicates that a target yielded zero datapoints
// across all requested revisions.
type NoMetricInHistoryError struct {
	Path string
}

// NewNoMetricInHistoryError creates a new empty-history error.
func NewNoMetricInHistoryError(path string) *NoMetricInHistoryError {
	return &NoMetricInHistoryError{Path: path}
}

func (e *NoMetricInHistoryError) Error() string {
	return fmt.Sprintf("could not find '%s' in any of the requested revisions", e.Path)
}
