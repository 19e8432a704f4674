package template

import "fmt"

// NotFoundError indicates that a template name or path did not resolve to
// an existing template.
type NotFoundError struct {
	Name string
}

// NewNotFoundError creates a new template lookup error.
func NewNotFoundError(name string) *NotFoundError {
	return &NotFoundError{Name: name}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("template '%s' not found", e.Name)
}

// BadTemplateError indicates that a located template lacks the required
// placeholder structure.
type BadTemplateError struct {
	Name string
}

// NewBadTemplateError creates a new malformed-template error.
func NewBadTemplateError(name string) *BadTemplateError {
	return &BadTemplateError{Name: name}
}

func (e *BadTemplateError) Error() string {
	return fmt.Sprintf("template '%s' has no data anchor %s", e.Name, AnchorData)
}
