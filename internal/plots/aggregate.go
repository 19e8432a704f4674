package plots

import (
	"context"
	"errors"
	"fmt"

	"github.com/leapstack-labs/plotline/internal/plotdata"
)

// Collect fetches and extracts one target's datapoints for every
// requested revision and concatenates them in revision-request order.
//
// A revision where the file is missing, the tracked content is
// unavailable, or the read fails contributes nothing and is reported as a
// warning only. Content that is not plottable aborts the target. A target
// with zero datapoints over all revisions is a NoMetricInHistoryError.
func (s *Service) Collect(ctx context.Context, path string, revs []string, props plotdata.Props) ([]*plotdata.Record, error) {
	var datapoints []*plotdata.Record
	for _, rev := range revs {
		content, err := s.content.Get(ctx, path, rev)
		if err != nil {
			if errors.Is(err, ErrNotFound) || errors.Is(err, ErrObjectMissing) {
				s.logger.Warn(fmt.Sprintf("File '%s' was not found at: '%s'. It will not be plotted.", path, rev))
			} else {
				s.logger.Warn(fmt.Sprintf("File '%s' could not be read at: '%s'. It will not be plotted.", path, rev), "error", err)
			}
			continue
		}

		records, err := plotdata.Extract(plotdata.Source{
			Path:     path,
			Revision: rev,
			Format:   plotdata.DetectFormat(path),
			Content:  content,
		}, props)
		if err != nil {
			return nil, err
		}
		datapoints = append(datapoints, records...)
	}

	if len(datapoints) == 0 {
		return nil, NewNoMetricInHistoryError(path)
	}
	return datapoints, nil
}
