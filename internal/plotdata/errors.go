package plotdata

import "fmt"

// MetricTypeError indicates that a metric file's content is not
// tabular/record-shaped data in a supported format.
type MetricTypeError struct {
	Path string
}

// NewMetricTypeError creates a new metric type error.
func NewMetricTypeError(path string) *MetricTypeError {
	return &MetricTypeError{Path: path}
}

func (e *MetricTypeError) Error() string {
	return fmt.Sprintf("'%s' is not in a plottable format: only CSV, TSV, JSON and YAML tabular data are supported", e.Path)
}

// NoFieldInDataError indicates that a requested or defaulted axis field is
// absent from the data, or that a default could not be inferred
// unambiguously.
type NoFieldInDataError struct {
	Field string
}

// NewNoFieldInDataError creates a new missing-field error.
func NewNoFieldInDataError(field string) *NoFieldInDataError {
	return &NoFieldInDataError{Field: field}
}

func (e *NoFieldInDataError) Error() string {
	return fmt.Sprintf("field '%s' does not exist in provided data", e.Field)
}
