package plotdata

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// extractJSON parses JSON content and locates the tabular data in it.
// Numbers are kept as json.Number so they round-trip without being
// re-stringified (2 stays 2, not 2.0).
func extractJSON(src Source) ([]*Record, error) {
	dec := json.NewDecoder(bytes.NewReader(src.Content))
	dec.UseNumber()

	root, err := decodeJSONValue(dec)
	if err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %v", NewMetricTypeError(src.Path), err)
	}
	return findRecords(root, src.Path)
}

// decodeJSONValue decodes the next JSON value off the decoder, preserving
// object key order by building Records instead of maps.
func decodeJSONValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	delim, ok := tok.(json.Delim)
	if !ok {
		return tok, nil
	}

	switch delim {
	case '{':
		rec := NewRecord()
		for dec.More() {
			keyTok, err := dec.Token()
			if err != nil {
				return nil, err
			}
			key, ok := keyTok.(string)
			if !ok {
				return nil, fmt.Errorf("unexpected object key %v", keyTok)
			}
			val, err := decodeJSONValue(dec)
			if err != nil {
				return nil, err
			}
			rec.Set(key, val)
		}
		// consume '}'
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return rec, nil
	case '[':
		var seq []any
		for dec.More() {
			val, err := decodeJSONValue(dec)
			if err != nil {
				return nil, err
			}
			seq = append(seq, val)
		}
		// consume ']'
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return seq, nil
	default:
		return nil, fmt.Errorf("unexpected delimiter %q", delim)
	}
}

// extractYAML parses YAML content and locates the tabular data in it.
// Mapping key order is taken from the document, not sorted.
func extractYAML(src Source) ([]*Record, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(src.Content, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", NewMetricTypeError(src.Path), err)
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return nil, nil
	}

	root, err := decodeYAMLNode(doc.Content[0])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", NewMetricTypeError(src.Path), err)
	}
	return findRecords(root, src.Path)
}

// decodeYAMLNode converts a YAML node tree into Records, sequences and
// native scalars, preserving mapping key order.
func decodeYAMLNode(node *yaml.Node) (any, error) {
	switch node.Kind {
	case yaml.MappingNode:
		rec := NewRecord()
		for i := 0; i+1 < len(node.Content); i += 2 {
			var key string
			if err := node.Content[i].Decode(&key); err != nil {
				return nil, err
			}
			val, err := decodeYAMLNode(node.Content[i+1])
			if err != nil {
				return nil, err
			}
			rec.Set(key, val)
		}
		return rec, nil
	case yaml.SequenceNode:
		var seq []any
		for _, item := range node.Content {
			val, err := decodeYAMLNode(item)
			if err != nil {
				return nil, err
			}
			seq = append(seq, val)
		}
		return seq, nil
	case yaml.AliasNode:
		return decodeYAMLNode(node.Alias)
	default:
		var val any
		if err := node.Decode(&val); err != nil {
			return nil, err
		}
		return val, nil
	}
}

// findRecords locates the datapoint sequence in a parsed document.
//
// A root sequence of mappings is the data directly. A root mapping is
// searched for the first value (in document order) that is a sequence of
// mappings; this is a deliberate best-effort heuristic for metrics wrapped
// under a named key, e.g. {"train": [...]}. Anything else is not
// plottable.
func findRecords(root any, path string) ([]*Record, error) {
	switch v := root.(type) {
	case []any:
		return asRecords(v, path)
	case *Record:
		for _, key := range v.Keys() {
			val, _ := v.Get(key)
			seq, ok := val.([]any)
			if !ok {
				continue
			}
			if records, err := asRecords(seq, path); err == nil {
				return records, nil
			}
		}
		return nil, NewMetricTypeError(path)
	case nil:
		return nil, nil
	default:
		return nil, NewMetricTypeError(path)
	}
}

// asRecords asserts that every element of a sequence is a mapping.
func asRecords(seq []any, path string) ([]*Record, error) {
	records := make([]*Record, 0, len(seq))
	for _, item := range seq {
		rec, ok := item.(*Record)
		if !ok {
			return nil, NewMetricTypeError(path)
		}
		records = append(records, rec)
	}
	return records, nil
}
