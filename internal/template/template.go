// Package template resolves and fills visualization-spec templates.
//
// A template is a Vega-Lite JSON document carrying anchor strings for the
// data payload, axis fields and display titles. Filling a template is a
// pure string substitution: the same inputs always produce the same
// output.
package template

import (
	"encoding/json"
	"strings"

	"github.com/leapstack-labs/plotline/internal/plotdata"
)

// Anchors recognized inside template documents.
const (
	AnchorData   = "<PLOTLINE_DATA>"
	AnchorX      = "<PLOTLINE_X>"
	AnchorY      = "<PLOTLINE_Y>"
	AnchorXLabel = "<PLOTLINE_X_LABEL>"
	AnchorYLabel = "<PLOTLINE_Y_LABEL>"
	AnchorTitle  = "<PLOTLINE_TITLE>"
)

// DefaultName is the template used when none is specified.
const DefaultName = "default"

// Template is a resolved, read-only template document.
type Template struct {
	Name    string
	Content string
}

// Validate checks that the document carries the data anchor. A document
// with none of the recognized placeholder structure cannot be filled.
func (t *Template) Validate() error {
	if !strings.Contains(t.Content, AnchorData) {
		return NewBadTemplateError(t.Name)
	}
	return nil
}

// HasAnchor reports whether the document contains the given anchor.
func (t *Template) HasAnchor(anchor string) bool {
	return strings.Contains(t.Content, anchor)
}

// FillParams carries everything substituted into a template.
type FillParams struct {
	Datapoints []*plotdata.Record
	X, Y       string
	// Display titles; empty labels fall back to the field names, an empty
	// title stays empty.
	XLabel, YLabel string
	Title          string
}

// Fill substitutes the datapoint sequence, axis field names and titles
// into the template and returns the rendered specification string.
func (t *Template) Fill(p FillParams) (string, error) {
	if err := t.Validate(); err != nil {
		return "", err
	}

	datapoints := p.Datapoints
	if datapoints == nil {
		datapoints = []*plotdata.Record{}
	}
	data, err := json.Marshal(datapoints)
	if err != nil {
		return "", err
	}

	xLabel := p.XLabel
	if xLabel == "" {
		xLabel = p.X
	}
	yLabel := p.YLabel
	if yLabel == "" {
		yLabel = p.Y
	}

	// The data anchor stands in for a JSON value, so the quoted anchor is
	// replaced wholesale; the remaining anchors are plain text inside
	// JSON strings.
	out := strings.ReplaceAll(t.Content, `"`+AnchorData+`"`, string(data))
	out = replaceAnchor(out, AnchorX, p.X)
	out = replaceAnchor(out, AnchorY, p.Y)
	out = replaceAnchor(out, AnchorXLabel, xLabel)
	out = replaceAnchor(out, AnchorYLabel, yLabel)
	out = replaceAnchor(out, AnchorTitle, p.Title)
	return out, nil
}

// replaceAnchor substitutes an anchor with a JSON-escaped string value.
func replaceAnchor(content, anchor, value string) string {
	escaped, _ := json.Marshal(value)
	return strings.ReplaceAll(content, anchor, string(escaped[1:len(escaped)-1]))
}
