package codec

import (
	"bytes"

	json "github.com/goccy/go-json"
)

// Record is a JSON object that keeps its fields in input order. Parse
// returns records for objects when mapping is false.
//
// A Record is not safe for concurrent mutation.
type Record struct {
	keys   []string
	values map[string]any
}

// NewRecord returns an empty record.
func NewRecord() *Record {
	return &Record{values: make(map[string]any)}
}

// Set assigns a field. A new field is appended; an existing one keeps its
// position and takes the new value.
func (r *Record) Set(name string, v any) {
	if r.values == nil {
		r.values = make(map[string]any)
	}
	if _, ok := r.values[name]; !ok {
		r.keys = append(r.keys, name)
	}
	r.values[name] = v
}

// Get returns the value of a field.
func (r *Record) Get(name string) (any, bool) {
	if r == nil {
		return nil, false
	}
	v, ok := r.values[name]
	return v, ok
}

// Has reports whether the record has the field.
func (r *Record) Has(name string) bool {
	_, ok := r.Get(name)
	return ok
}

// Len returns the number of fields.
func (r *Record) Len() int {
	if r == nil {
		return 0
	}
	return len(r.keys)
}

// Keys returns the field names in order.
func (r *Record) Keys() []string {
	if r == nil {
		return nil
	}
	keys := make([]string, len(r.keys))
	copy(keys, r.keys)
	return keys
}

// Range calls fn for each field in order until fn returns false.
func (r *Record) Range(fn func(name string, v any) bool) {
	if r == nil {
		return
	}
	for _, k := range r.keys {
		if !fn(k, r.values[k]) {
			return
		}
	}
}

// Map converts the record to a map, recursively converting nested records.
func (r *Record) Map() map[string]any {
	if r == nil {
		return nil
	}
	m := make(map[string]any, len(r.keys))
	for _, k := range r.keys {
		m[k] = ToMappings(r.values[k])
	}
	return m
}

// MarshalJSON writes the fields in order, encoding names and values with
// go-json. The encoding/json backend does not call it for records it reaches
// through []any, map[string]any or other records; see stdRecord.
func (r *Record) MarshalJSON() ([]byte, error) {
	return r.encode(func(v any) ([]byte, error) {
		return json.MarshalWithOption(v, json.DisableHTMLEscape())
	})
}

// encode writes the fields in order, encoding each name and value with
// marshal.
func (r *Record) encode(marshal func(any) ([]byte, error)) ([]byte, error) {
	if r == nil {
		return []byte("null"), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range r.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		vb, err := marshal(r.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// ToMappings returns v with every *Record replaced by a map[string]any,
// descending into slices and maps.
func ToMappings(v any) any {
	switch val := v.(type) {
	case *Record:
		return val.Map()
	case []any:
		cp := make([]any, len(val))
		for i, item := range val {
			cp[i] = ToMappings(item)
		}
		return cp
	case map[string]any:
		cp := make(map[string]any, len(val))
		for k, item := range val {
			cp[k] = ToMappings(item)
		}
		return cp
	default:
		return v
	}
}
