package registry

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Field identifies one of the seven fields every record carries.
type Field int

const (
	FieldDescription Field = iota
	FieldVersion
	FieldPreviousVersions
	FieldCommands
	FieldInstallationMethod
	FieldDependencies
	FieldCategories
)

// fieldKeys maps each Field to its key in the database file. The keys contain
// spaces because that is what existing databases use.
var fieldKeys = map[Field]string{
	FieldDescription:        "description",
	FieldVersion:            "version",
	FieldPreviousVersions:   "previous versions",
	FieldCommands:           "commands",
	FieldInstallationMethod: "installation method",
	FieldDependencies:       "dependencies",
	FieldCategories:         "categories",
}

var fieldsByKey = func() map[string]Field {
	m := make(map[string]Field, len(fieldKeys))
	for f, key := range fieldKeys {
		m[key] = f
	}
	return m
}()

// Fields returns every field in declaration order.
func Fields() []Field {
	return []Field{
		FieldDescription,
		FieldVersion,
		FieldPreviousVersions,
		FieldCommands,
		FieldInstallationMethod,
		FieldDependencies,
		FieldCategories,
	}
}

// Key returns the JSON key of the field.
func (f Field) Key() string {
	return fieldKeys[f]
}

func (f Field) String() string {
	return f.Key()
}

// IsSequence reports whether the field holds a list of strings.
func (f Field) IsSequence() bool {
	switch f {
	case FieldPreviousVersions, FieldCommands, FieldDependencies, FieldCategories:
		return true
	}
	return false
}

// FieldByKey looks up a field by its JSON key.
func FieldByKey(key string) (Field, bool) {
	f, ok := fieldsByKey[key]
	return f, ok
}

// Record is one registry entry: a program or reference database.
//
// Every record held by a Store has all seven fields defined; missing values are
// the empty string or an empty (non-nil) slice.
type Record struct {
	Description        string
	Version            string
	PreviousVersions   []string
	Commands           []string
	InstallationMethod string
	Dependencies       []string
	Categories         []string

	// extra keeps keys this tool does not know about so they survive a
	// load/save cycle untouched.
	extra map[string]any
}

// Scalar returns the value of a string field, or "" for sequence fields.
func (r Record) Scalar(f Field) string {
	if p := r.scalar(f); p != nil {
		return *p
	}
	return ""
}

// Sequence returns a copy of a list field, or nil for string fields.
func (r Record) Sequence(f Field) []string {
	if p := r.sequence(f); p != nil {
		return append([]string{}, (*p)...)
	}
	return nil
}

// Clone returns a deep copy of r.
func (r Record) Clone() Record {
	c := r
	c.PreviousVersions = append([]string{}, r.PreviousVersions...)
	c.Commands = append([]string{}, r.Commands...)
	c.Dependencies = append([]string{}, r.Dependencies...)
	c.Categories = append([]string{}, r.Categories...)
	if r.extra != nil {
		c.extra = make(map[string]any, len(r.extra))
		for k, v := range r.extra {
			c.extra[k] = v
		}
	}
	return c
}

func (r *Record) scalar(f Field) *string {
	switch f {
	case FieldDescription:
		return &r.Description
	case FieldVersion:
		return &r.Version
	case FieldInstallationMethod:
		return &r.InstallationMethod
	}
	return nil
}

func (r *Record) sequence(f Field) *[]string {
	switch f {
	case FieldPreviousVersions:
		return &r.PreviousVersions
	case FieldCommands:
		return &r.Commands
	case FieldDependencies:
		return &r.Dependencies
	case FieldCategories:
		return &r.Categories
	}
	return nil
}

// normalize fills absent sequence fields with empty slices.
func (r *Record) normalize() {
	for _, f := range Fields() {
		if p := r.sequence(f); p != nil && *p == nil {
			*p = []string{}
		}
	}
}

// UnmarshalJSON decodes a record object. Known keys must hold a string (or
// null) for string fields and an array of strings (or null) for list fields;
// anything else is kept aside verbatim.
func (r *Record) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil {
		return errors.New("record is not a JSON object")
	}

	*r = Record{}
	for key, val := range raw {
		f, known := FieldByKey(key)
		if !known {
			v, err := decodeOpaque(val)
			if err != nil {
				return fmt.Errorf("field %q: %w", key, err)
			}
			if r.extra == nil {
				r.extra = make(map[string]any)
			}
			r.extra[key] = v
			continue
		}

		var target any = r.sequence(f)
		if !f.IsSequence() {
			target = r.scalar(f)
		}
		if err := json.Unmarshal(val, target); err != nil {
			return fmt.Errorf("field %q: %w", key, err)
		}
	}

	r.normalize()
	return nil
}

// decodeOpaque decodes an unknown value keeping numbers as written.
func decodeOpaque(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}
