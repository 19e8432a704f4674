package plots

import (
	"context"
	"io"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/leapstack-labs/plotline/internal/plotdata"
	"github.com/leapstack-labs/plotline/internal/template"
)

// Service renders registered metric files into visualization specs.
type Service struct {
	content   ContentProvider
	registry  ConfigProvider
	templates TemplateResolver
	logger    *slog.Logger
}

// Options holds the collaborators a Service needs.
type Options struct {
	Content   ContentProvider
	Registry  ConfigProvider
	Templates TemplateResolver
	// Logger is the structured logger (optional, uses discard if nil)
	Logger *slog.Logger
}

// New creates a plots service.
func New(opts Options) *Service {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Service{
		content:   opts.Content,
		registry:  opts.Registry,
		templates: opts.Templates,
		logger:    logger,
	}
}

// Show renders every requested target across the requested revisions.
//
// Empty targets means all registered plots; none registered is a
// NoPlotsError. Empty revs defaults to the workspace state. props
// override each target's registered default options key by key.
//
// Targets render independently and in parallel; the first hard error in
// request order fails the whole call. Missing files at individual
// revisions are only logged (see collect).
func (s *Service) Show(ctx context.Context, targets, revs []string, props map[string]any) (map[string]string, error) {
	if len(revs) == 0 {
		revs = []string{WorkspaceRevision}
	}
	if len(targets) == 0 {
		targets = s.registry.ListTargets()
		if len(targets) == 0 {
			return nil, &NoPlotsError{}
		}
	}

	specs := make([]string, len(targets))
	errs := make([]error, len(targets))

	var g errgroup.Group
	for i, target := range targets {
		i, target := i, target
		g.Go(func() error {
			specs[i], errs[i] = s.renderTarget(ctx, target, revs, props)
			return nil
		})
	}
	_ = g.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	result := make(map[string]string, len(targets))
	for i, target := range targets {
		result[target] = specs[i]
	}
	return result, nil
}

// renderTarget aggregates one target's datapoints and fills its template.
func (s *Service) renderTarget(ctx context.Context, path string, revs []string, explicit map[string]any) (string, error) {
	props, err := plotdata.MergeProps(s.registry.DefaultProps(path), explicit)
	if err != nil {
		return "", err
	}

	datapoints, err := s.Collect(ctx, path, revs, props)
	if err != nil {
		return "", err
	}

	tmpl, err := s.templates.Resolve(props.Template)
	if err != nil {
		return "", err
	}

	x, y, err := plotdata.ResolveAxes(datapoints[0], props)
	if err != nil {
		return "", err
	}

	return tmpl.Fill(template.FillParams{
		Datapoints: datapoints,
		X:          x,
		Y:          y,
		XLabel:     props.XLabel,
		YLabel:     props.YLabel,
		Title:      props.Title,
	})
}
