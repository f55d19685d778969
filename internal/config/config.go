// Package config defines the JSON-serializable pipeline model: one source,
// an ordered list of cleaning steps, and one or more sinks.
//
// Decoding is plain encoding/json with a light Options helper for typed
// access; field names in Go mirror the JSON structure used in pipeline files
// under configs/pipelines/*.json. Shapes here should only change in
// backwards-compatible ways: step and sink options are free-form maps
// precisely so new knobs never break old files.
//
// Example (trimmed):
//
//	{
//	  "job":    "contact_list",
//	  "source": { "kind": "csv", "path": "data/contacts.csv",
//	              "options": { "has_header": true } },
//	  "clean":  [ { "kind": "dedupe" },
//	              { "kind": "clean_phone", "options": { "column": "phone_number" } } ],
//	  "sinks":  [ { "kind": "csv", "options": { "path": "out/contacts_clean.csv" } } ]
//	}
package config

import "encoding/json"

// Pipeline is the top-level object decoded from a pipeline file.
type Pipeline struct {
	// Job names the run for logs and metrics labels.
	Job string `json:"job"`

	// Source describes where the input table comes from.
	Source Source `json:"source"`

	// Clean lists the ordered cleaning steps. Each step has a kind and an
	// options bag whose shape is defined by the step implementation.
	Clean []Step `json:"clean"`

	// Sinks lists every destination the cleaned table is written to.
	Sinks []Sink `json:"sinks"`
}

// Source identifies the input reader.
type Source struct {
	// Kind selects the reader implementation: "csv" or "xlsx".
	Kind string `json:"kind"`

	// Path is the local filesystem path to the input file.
	Path string `json:"path"`

	// Options is a free-form map interpreted by the reader. Typical keys:
	//   has_header (bool), comma (string), trim_space (bool),
	//   sheet (string), header_map (object)
	Options Options `json:"options"`
}

// Step defines a single cleaning step; the sequence forms the chain.
type Step struct {
	// Kind selects the step implementation (e.g., "dedupe", "drop_columns",
	// "clean_phone"). Implementations define their own options.
	Kind string `json:"kind"`

	// Options is a free-form map interpreted by the selected step.
	Options Options `json:"options"`
}

// Sink selects one destination for the cleaned table.
type Sink struct {
	// Kind selects the sink implementation (e.g., "csv", "xlsx", "sqlite",
	// "postgres", "mysql", "mssql").
	Kind string `json:"kind"`

	// Options is a free-form map interpreted by the sink. File sinks take a
	// path; database sinks take dsn and table plus backend knobs.
	Options Options `json:"options"`
}

// Options fetches typed values from arbitrary JSON maps without a
// third-party configuration library. It performs only minimal coercion and
// returns the provided default when a key is absent or of an unexpected
// type.
type Options map[string]any

// String returns the string value for key or def if key is missing or not a string.
func (o Options) String(key, def string) string {
	if v, ok := o[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return def
}

// Bool returns the bool value for key or def if key is missing or not a bool.
func (o Options) Bool(key string, def bool) bool {
	if v, ok := o[key]; ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return def
}

// Int returns the int value for key or def. JSON numbers decode as float64,
// so this accepts float64 and casts.
func (o Options) Int(key string, def int) int {
	if v, ok := o[key]; ok {
		switch n := v.(type) {
		case float64:
			return int(n)
		case int:
			return n
		}
	}
	return def
}

// Rune returns the first rune of a string value for key, or def when the key
// is missing or empty. Used for single-character settings such as the CSV
// delimiter.
func (o Options) Rune(key string, def rune) rune {
	if v, ok := o[key]; ok {
		if s, ok := v.(string); ok && len(s) > 0 {
			return []rune(s)[0]
		}
	}
	return def
}

// StringMap returns a map[string]string for key when the value is an object
// with string values (either the JSON-decoded map[string]any form or a
// literal map[string]string). Non-string values are ignored. Returns an
// empty map when the key is missing or not an object.
func (o Options) StringMap(key string) map[string]string {
	res := map[string]string{}
	switch m := o[key].(type) {
	case map[string]any:
		for k, v := range m {
			if s, ok := v.(string); ok {
				res[k] = s
			}
		}
	case map[string]string:
		for k, v := range m {
			res[k] = v
		}
	}
	return res
}

// StringSlice returns a []string for key when the value is an array of
// strings (or an array of interface values containing strings). Returns nil
// when the key is missing or not an array.
func (o Options) StringSlice(key string) []string {
	if v, ok := o[key]; ok {
		switch vv := v.(type) {
		case []any:
			out := make([]string, 0, len(vv))
			for _, x := range vv {
				if s, ok := x.(string); ok {
					out = append(out, s)
				}
			}
			return out
		case []string:
			return vv
		}
	}
	return nil
}

// Any returns the raw value for key (which may itself be a nested
// map[string]any, []any, or primitive), or nil when absent.
func (o Options) Any(key string) any {
	if v, ok := o[key]; ok {
		return v
	}
	return nil
}

// UnmarshalJSON implements json.Unmarshaler so a missing or null "options"
// object decodes to a non-nil, empty Options map; call sites never nil-check.
func (o *Options) UnmarshalJSON(b []byte) error {
	var tmp map[string]any
	if len(b) == 0 || string(b) == "null" {
		*o = Options{}
		return nil
	}
	if err := json.Unmarshal(b, &tmp); err != nil {
		return err
	}
	*o = Options(tmp)
	return nil
}
