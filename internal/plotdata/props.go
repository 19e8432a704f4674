package plotdata

import (
	"fmt"

	"github.com/go-viper/mapstructure/v2"
)

// Props holds the recognized rendering options for a single plot.
// A nil Header means the default (delimited sources have a header row).
type Props struct {
	Template string   `mapstructure:"template"`
	X        string   `mapstructure:"x"`
	Y        string   `mapstructure:"y"`
	Fields   []string `mapstructure:"fields"`
	XLabel   string   `mapstructure:"x_label"`
	YLabel   string   `mapstructure:"y_label"`
	Title    string   `mapstructure:"title"`
	Header   *bool    `mapstructure:"header"`
}

// HasHeader reports whether the first row of a delimited source should be
// treated as field names.
func (p Props) HasHeader() bool {
	return p.Header == nil || *p.Header
}

// MergeProps combines per-target default options with explicitly passed
// options, explicit keys taking precedence, and decodes the result.
func MergeProps(defaults, explicit map[string]any) (Props, error) {
	merged := make(map[string]any, len(defaults)+len(explicit))
	for k, v := range defaults {
		merged[k] = v
	}
	for k, v := range explicit {
		merged[k] = v
	}
	return DecodeProps(merged)
}

// DecodeProps decodes a raw option mapping into Props.
// Unrecognized keys are ignored.
func DecodeProps(raw map[string]any) (Props, error) {
	var p Props
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &p,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return Props{}, err
	}
	if err := dec.Decode(raw); err != nil {
		return Props{}, fmt.Errorf("invalid plot options: %w", err)
	}
	return p, nil
}
