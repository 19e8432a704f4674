// Package plotdata extracts uniform datapoint records from tracked metric
// files. It understands delimited text (CSV/TSV) and structured documents
// (JSON/YAML) and normalizes all of them into ordered field→value records
// tagged with the revision that produced them.
package plotdata

import (
	"bytes"
	"encoding/json"
)

// Field names injected into every extracted datapoint.
const (
	// IndexField holds the 0-based position of a datapoint within its
	// source document. Used as the default x axis when no better ordering
	// field exists.
	IndexField = "index"

	// RevisionField holds the revision identifier the datapoint came from.
	RevisionField = "rev"
)

// Record is a single datapoint: an ordered mapping from field name to value.
// Field order is insertion order and is preserved through JSON serialization,
// so rendering the same record twice yields byte-identical output.
type Record struct {
	keys []string
	vals map[string]any
}

// NewRecord creates an empty record.
func NewRecord() *Record {
	return &Record{vals: make(map[string]any)}
}

// Set stores a field value, appending the field to the order on first set.
func (r *Record) Set(key string, val any) {
	if _, ok := r.vals[key]; !ok {
		r.keys = append(r.keys, key)
	}
	r.vals[key] = val
}

// Get returns the value for a field and whether the field exists.
func (r *Record) Get(key string) (any, bool) {
	v, ok := r.vals[key]
	return v, ok
}

// Has reports whether the field exists in the record.
func (r *Record) Has(key string) bool {
	_, ok := r.vals[key]
	return ok
}

// Delete removes a field, keeping the relative order of the rest.
func (r *Record) Delete(key string) {
	if _, ok := r.vals[key]; !ok {
		return
	}
	delete(r.vals, key)
	for i, k := range r.keys {
		if k == key {
			r.keys = append(r.keys[:i], r.keys[i+1:]...)
			break
		}
	}
}

// Keys returns the field names in insertion order.
// The returned slice is shared; callers must not modify it.
func (r *Record) Keys() []string {
	return r.keys
}

// Len returns the number of fields.
func (r *Record) Len() int {
	return len(r.keys)
}

// MarshalJSON serializes the record as a JSON object with fields in
// insertion order.
func (r *Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range r.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(r.vals[k])
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
